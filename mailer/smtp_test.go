package mailer

import (
	"context"
	"testing"

	"newsroom-cms/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSMTP(t *testing.T) {
	assert.Nil(t, NewSMTP(config.MailConfig{}))

	m := NewSMTP(config.MailConfig{Host: "smtp.example.com", Port: 2525, From: "news@example.com"})
	require.NotNil(t, m)
	assert.Equal(t, "news@example.com", m.from)
	assert.Equal(t, "smtp.example.com", m.dialer.Host)
	assert.Equal(t, 2525, m.dialer.Port)
}

func TestSend_CancelledContext(t *testing.T) {
	m := NewSMTP(config.MailConfig{Host: "smtp.invalid", Port: 25})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, m.Send(ctx, "a@example.com", "s", "b"), context.Canceled)
}
