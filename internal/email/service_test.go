package email

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/frontdesk-api/internal/config"
)

type captureSender struct {
	from string
	to   []string
	body bytes.Buffer
	err  error
}

func (c *captureSender) Send(from string, to []string, msg io.WriterTo) error {
	if c.err != nil {
		return c.err
	}
	c.from = from
	c.to = to
	_, err := msg.WriteTo(&c.body)
	return err
}

func TestSenderServiceWritesMessage(t *testing.T) {
	sender := &captureSender{}
	svc := NewSenderService("agenda@clinica.bo", sender)

	err := svc.SendCustom(context.Background(), "luis@clinica.bo", "Derivación: Ana Lopez", "Por favor evaluar.")
	require.NoError(t, err)
	assert.Equal(t, "agenda@clinica.bo", sender.from)
	assert.Equal(t, []string{"luis@clinica.bo"}, sender.to)
	assert.Contains(t, sender.body.String(), "Por favor evaluar.")
}

func TestSenderServiceWrapsFailure(t *testing.T) {
	svc := NewSenderService("agenda@clinica.bo", &captureSender{err: errors.New("relay denied")})

	err := svc.SendCustom(context.Background(), "luis@clinica.bo", "s", "b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relay denied")
}

func TestSendHonoursCancelledContext(t *testing.T) {
	sender := &captureSender{}
	svc := NewSenderService("agenda@clinica.bo", sender)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, svc.SendCustom(ctx, "luis@clinica.bo", "s", "b"), context.Canceled)
	assert.Empty(t, sender.to)
}

func TestNewServiceWithoutHostLogsOnly(t *testing.T) {
	svc := NewService(config.SMTPConfig{})
	assert.IsType(t, logService{}, svc)
	assert.NoError(t, svc.SendCustom(context.Background(), "x@y.z", "s", "b"))

	assert.IsType(t, &mailer{}, NewService(config.SMTPConfig{Host: "smtp.clinica.bo", Port: 587}))
}
