package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/frontdesk-api/internal/config"
)

type Service interface {
	SendCustom(ctx context.Context, to string, subject string, content string) error
}

type mailer struct {
	from string
	send func(msgs ...*gomail.Message) error
}

// NewService picks the SMTP mailer when a host is configured and the log
// mailer otherwise.
func NewService(cfg config.SMTPConfig) Service {
	if cfg.Host == "" {
		return NewLogService()
	}
	return NewSMTPService(cfg)
}

func NewSMTPService(cfg config.SMTPConfig) Service {
	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return &mailer{from: cfg.From, send: d.DialAndSend}
}

// NewSenderService delivers through an already open gomail.Sender.
func NewSenderService(from string, sender gomail.Sender) Service {
	return &mailer{
		from: from,
		send: func(msgs ...*gomail.Message) error { return gomail.Send(sender, msgs...) },
	}
}

func (m *mailer) SendCustom(ctx context.Context, to string, subject string, content string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", content)

	if err := m.send(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	log.Info().Str("to", to).Str("subject", subject).Msg("Email sent")
	return nil
}

type logService struct{}

func NewLogService() Service {
	return logService{}
}

func (logService) SendCustom(_ context.Context, to string, subject string, content string) error {
	log.Info().
		Str("to", to).
		Str("subject", subject).
		Int("length", len(content)).
		Msg("SMTP not configured, email logged only")
	return nil
}
