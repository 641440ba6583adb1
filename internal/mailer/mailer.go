package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
)

// Config holds SMTP connection details and the public base URL used in
// confirmation links.
type Config struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
	BaseURL  string
}

// Mailer sends account emails over SMTP.
type Mailer struct {
	cfg Config
}

// New creates a new Mailer.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg}
}

// SendConfirmation sends the email-confirmation message carrying the signed
// confirmation token as a link.
func (m *Mailer) SendConfirmation(to, username, token string) error {
	link := fmt.Sprintf("%s/api/auth/confirmed_email/%s", strings.TrimRight(m.cfg.BaseURL, "/"), token)

	headers := []string{
		"From: " + m.cfg.From,
		"To: " + to,
		"Subject: Confirm your email",
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=utf-8",
	}
	body := fmt.Sprintf(
		"Hello %s,\r\n\r\nPlease confirm your email address by opening the link below:\r\n\r\n%s\r\n\r\nThe link is valid for 7 days.\r\n",
		username, link,
	)
	msg := []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)

	addr := m.cfg.Host + ":" + m.cfg.Port
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send confirmation email to %s: %w", to, err)
	}
	return nil
}
