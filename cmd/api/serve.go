package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/frontdesk-api/internal/config"
	"github.com/jwalitptl/frontdesk-api/internal/email"
	"github.com/jwalitptl/frontdesk-api/internal/handler"
	agendah "github.com/jwalitptl/frontdesk-api/internal/handler/agenda"
	appointmenth "github.com/jwalitptl/frontdesk-api/internal/handler/appointment"
	catalogh "github.com/jwalitptl/frontdesk-api/internal/handler/catalog"
	consultationh "github.com/jwalitptl/frontdesk-api/internal/handler/consultation"
	"github.com/jwalitptl/frontdesk-api/internal/handler/health"
	operatorh "github.com/jwalitptl/frontdesk-api/internal/handler/operator"
	patienth "github.com/jwalitptl/frontdesk-api/internal/handler/patient"
	"github.com/jwalitptl/frontdesk-api/internal/repository/postgres"
	"github.com/jwalitptl/frontdesk-api/internal/router"
	"github.com/jwalitptl/frontdesk-api/internal/service/agenda"
	"github.com/jwalitptl/frontdesk-api/internal/service/appointment"
	"github.com/jwalitptl/frontdesk-api/internal/service/catalog"
	"github.com/jwalitptl/frontdesk-api/internal/service/consultation"
	"github.com/jwalitptl/frontdesk-api/internal/service/event"
	"github.com/jwalitptl/frontdesk-api/internal/service/operator"
	"github.com/jwalitptl/frontdesk-api/internal/service/patient"
	"github.com/jwalitptl/frontdesk-api/internal/service/referral"
	"github.com/jwalitptl/frontdesk-api/pkg/auth"
	"github.com/jwalitptl/frontdesk-api/pkg/security"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runServer(cmd.Context(), cfg)
		},
	}
}

func runServer(ctx context.Context, cfg *config.Config) error {
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Repositories
	operatorRepo := postgres.NewOperatorRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	consultationRepo := postgres.NewConsultationRepository(db)
	appointmentRepo := postgres.NewAppointmentRepository(db)
	catalogRepo := postgres.NewCatalogRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	// Services
	events := event.NewEventService(outboxRepo)
	operatorSvc := operator.NewService(operatorRepo)
	catalogSvc := catalog.NewService(catalogRepo, cfg.Cache.CatalogTTL)
	drafts := consultation.NewDraftStore(catalogSvc, cfg.Cache.DraftTTL)
	patientSvc := patient.NewService(patientRepo, consultationRepo, operatorSvc,
		security.NewBcryptHasher(bcrypt.DefaultCost), events, cfg.Clinic.ConsultationPath)
	consultationSvc := consultation.NewService(consultationRepo, patientRepo, operatorSvc, drafts, events)
	referralSvc := referral.NewService(operatorSvc, patientRepo, email.NewService(cfg.SMTP), events)
	appointmentSvc := appointment.NewService(appointmentRepo, patientRepo, operatorSvc, events)
	agendaSvc := agenda.NewService(appointmentRepo, operatorSvc, cfg.Clinic.Location())

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.TTL)

	r := router.NewRouter(jwtSvc, health.NewHandler(db), []handler.Registrar{
		operatorh.NewHandler(operatorSvc),
		catalogh.NewHandler(catalogSvc),
		patienth.NewHandler(patientSvc),
		consultationh.NewHandler(consultationSvc, drafts, referralSvc),
		appointmenth.NewHandler(appointmentSvc),
		agendah.NewHandler(agendaSvc),
	}, router.RouterConfigFrom(cfg))
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Str("env", cfg.Server.Env).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("Server exited")
	return nil
}
