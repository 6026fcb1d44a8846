package services

import (
	"encoding/base64"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/gymbrah/GymBrah-backend/internal/config"
)

// Mailer envoie les emails transactionnels (rappels de streak)
type Mailer struct {
	host     string
	port     int
	username string
	password string
	from     string
	fromName string
}

func NewMailer(cfg *config.Config) *Mailer {
	return &Mailer{
		host:     cfg.SMTPHost,
		port:     cfg.SMTPPort,
		username: cfg.SMTPUsername,
		password: cfg.SMTPPassword,
		from:     cfg.SMTPFrom,
		fromName: cfg.SMTPFromName,
	}
}

// Enabled retourne false si le SMTP n'est pas configuré (dev local)
func (m *Mailer) Enabled() bool {
	return m.host != "" && m.from != ""
}

// Send envoie un email texte encodé en UTF-8
func (m *Mailer) Send(to, subject, body string) error {
	if !m.Enabled() {
		return fmt.Errorf("smtp is not configured")
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", m.fromName, m.from))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	// Sujet encodé en base64 pour supporter les accents
	msg.WriteString(fmt.Sprintf("Subject: =?UTF-8?B?%s?=\r\n",
		base64.StdEncoding.EncodeToString([]byte(subject))))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(body)

	addr := fmt.Sprintf("%s:%d", m.host, m.port)
	auth := smtp.PlainAuth("", m.username, m.password, m.host)

	if err := smtp.SendMail(addr, auth, m.from, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("could not send mail to %s: %w", to, err)
	}
	return nil
}
