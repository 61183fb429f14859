package service

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
)

// Mailer delivers two-factor codes. The real implementation lives with the
// platform's notification stack; this service only depends on the contract.
type Mailer interface {
	SendTwoFactorCode(ctx context.Context, email, code string) error
}

// LogMailer writes codes to the log instead of sending mail. Dev and test
// environments only.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) SendTwoFactorCode(_ context.Context, email, code string) error {
	m.Logger.Info("two-factor code (log mailer)", "email", email, "code", code)
	return nil
}

// SMTPMailer delivers codes through a plain SMTP relay.
type SMTPMailer struct {
	Addr string // host:port of the relay
	From string
	Auth smtp.Auth // nil for an unauthenticated relay
}

func (m *SMTPMailer) SendTwoFactorCode(_ context.Context, email, code string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Your verification code\r\n\r\n"+
			"Your verification code is %s. It expires in 10 minutes.\r\n",
		m.From, email, code,
	)
	if err := smtp.SendMail(m.Addr, m.Auth, m.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}
