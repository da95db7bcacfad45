package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwalitptl/frontdesk-api/pkg/auth"
)

// tokenCmd mints an operator token for local development.
func tokenCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for an operator",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)
			token, err := jwtSvc.GenerateOperatorToken(email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "operator email")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}
