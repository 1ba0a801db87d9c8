// Package mailer sends registration confirmation and notification
// emails over SMTP.
package mailer

import (
	"fmt"
	"net/smtp"

	"github.com/domodwyer/mailyak/v3"
)

// Sender dispatches a single plain-text email.
type Sender interface {
	Send(to, subject, body string) error
}

// SMTPConfig holds settings for the SMTP sender.
type SMTPConfig struct {
	Host        string
	Port        int
	User        string
	Pass        string
	FromAddress string
	FromName    string
}

// SMTPSender sends mail through an SMTP relay using mailyak.
type SMTPSender struct {
	cfg SMTPConfig
}

// NewSMTPSender creates an SMTP sender.
func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	return &SMTPSender{cfg: cfg}
}

// Send dispatches one plain-text email.
func (s *SMTPSender) Send(to, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	var auth smtp.Auth
	if s.cfg.User != "" {
		auth = smtp.PlainAuth("", s.cfg.User, s.cfg.Pass, s.cfg.Host)
	}
	mail := mailyak.New(addr, auth)
	mail.To(to)
	mail.From(s.cfg.FromAddress)
	mail.FromName(s.cfg.FromName)
	mail.Subject(subject)
	mail.Plain().Set(body)
	if err := mail.Send(); err != nil {
		return fmt.Errorf("send mail to %s: %w", to, err)
	}
	return nil
}
