package notifications

import (
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/healthconnect/navigator-api/pkg/config"
)

func TestNewEmailSender_RequiresHost(t *testing.T) {
	_, err := NewEmailSender(&config.NotificationsConfig{})
	assert.Error(t, err)
}

func TestSend_BuildsMessage(t *testing.T) {
	sender, err := NewEmailSender(&config.NotificationsConfig{
		SMTPHost:    "smtp.example.com",
		SMTPPort:    587,
		FromAddress: "alerts@healthconnect.example",
	})
	require.NoError(t, err)

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	sender.send = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, sender.Send("ama@example.com", "Emergency alert", "I need help"))

	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "alerts@healthconnect.example", gotFrom)
	assert.Equal(t, []string{"ama@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Emergency alert\r\n")
	assert.Contains(t, string(gotMsg), "To: ama@example.com\r\n")
	assert.Contains(t, string(gotMsg), "\r\n\r\nI need help")
}

func TestSend_RequiresRecipient(t *testing.T) {
	sender, err := NewEmailSender(&config.NotificationsConfig{SMTPHost: "smtp.example.com", SMTPPort: 587})
	require.NoError(t, err)

	assert.Error(t, sender.Send("  ", "subject", "body"))
}

func TestSend_WrapsTransportError(t *testing.T) {
	sender, err := NewEmailSender(&config.NotificationsConfig{SMTPHost: "smtp.example.com", SMTPPort: 587})
	require.NoError(t, err)

	sendErr := errors.New("connection refused")
	sender.send = func(string, smtp.Auth, string, []string, []byte) error {
		return sendErr
	}

	err = sender.Send("ama@example.com", "subject", "body")
	require.Error(t, err)
	assert.ErrorIs(t, err, sendErr)
}
