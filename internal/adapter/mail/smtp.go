package mail

import (
	"context"
	"fmt"

	"github.com/go-gomail/gomail"
	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"bookpress/internal/config/configs"
	"bookpress/internal/core/port"
)

// SMTPMailer delivers mail through a plain SMTP relay. SMTP has no
// provider message id, so one is generated locally and stamped on the
// Message-ID header.
type SMTPMailer struct {
	dialer   *gomail.Dialer
	from     string
	fromName string
	host     string
	limiter  *rate.Limiter
}

// NewSMTPMailer creates an SMTP transport.
func NewSMTPMailer(cfg configs.Mail, limiter *rate.Limiter) *SMTPMailer {
	return &SMTPMailer{
		dialer:   gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		from:     cfg.From,
		fromName: cfg.FromName,
		host:     cfg.SMTPHost,
		limiter:  limiter,
	}
}

// Send delivers a single email over SMTP.
func (m *SMTPMailer) Send(ctx context.Context, e port.Email) (string, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", err
	}

	messageID := fmt.Sprintf("<%s@%s>", uuid.NewString(), m.host)

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.fromName)
	msg.SetHeader("To", e.To)
	msg.SetHeader("Subject", e.Subject)
	msg.SetHeader("Message-ID", messageID)
	msg.SetBody("text/html", e.HTML)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("smtp send to %s: %w", e.To, err)
	}
	return messageID, nil
}
