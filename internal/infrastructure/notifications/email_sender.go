package notifications

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/healthconnect/navigator-api/pkg/config"
)

// EmailSender delivers emergency alert emails over SMTP.
type EmailSender struct {
	addr string
	from string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmailSender creates a new SMTP email sender
func NewEmailSender(cfg *config.NotificationsConfig) (*EmailSender, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("SMTP_HOST must be set")
	}

	var auth smtp.Auth
	if cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPHost)
	}

	return &EmailSender{
		addr: cfg.SMTPAddr(),
		from: cfg.FromAddress,
		auth: auth,
		send: smtp.SendMail,
	}, nil
}

// Send delivers a plain-text email to a single recipient
func (s *EmailSender) Send(to, subject, body string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient address is required")
	}

	msg := strings.Join([]string{
		"From: " + s.from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"utf-8\"",
		"",
		body,
	}, "\r\n")

	if err := s.send(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
