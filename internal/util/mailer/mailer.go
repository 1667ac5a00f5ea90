package mailer

import (
	"fmt"
	"net/smtp"
	"strings"
	"sync"

	"eagleflow/internal/config"
	"eagleflow/internal/util/logger"
)

// Mailer sends plain-text emails over SMTP. When SMTP_HOST is not
// configured, sending is a no-op so local setups work without a relay.
type Mailer struct {
	host     string
	port     string
	username string
	password string
	from     string
}

var (
	once   sync.Once
	mailer *Mailer
)

func GetMailer() *Mailer {
	once.Do(func() {
		env := config.GetEnv()

		mailer = &Mailer{
			host:     env.SmtpHost,
			port:     env.SmtpPort,
			username: env.SmtpUsername,
			password: env.SmtpPassword,
			from:     env.SmtpFrom,
		}
	})

	return mailer
}

func (m *Mailer) IsConfigured() bool {
	return m.host != ""
}

func (m *Mailer) Send(to, subject, body string) error {
	if !m.IsConfigured() {
		logger.GetLogger().Info("SMTP is not configured, skipping email", "to", to, "subject", subject)
		return nil
	}

	port := m.port
	if port == "" {
		port = "587"
	}

	from := m.from
	if from == "" {
		from = m.username
	}

	message := strings.Join([]string{
		"From: " + from,
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	addr := m.host + ":" + port
	if err := smtp.SendMail(addr, auth, from, []string{to}, []byte(message)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}
