package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"

	mail "github.com/go-mail/mail/v2"
)

// Sender delivers a single HTML email.
type Sender interface {
	Send(ctx context.Context, to []string, subject, html string) error
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTPSender struct {
	dialer *mail.Dialer
	from   string
}

func NewSMTPSender(cfg SMTPConfig) *SMTPSender {
	d := mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.StartTLSPolicy = mail.MandatoryStartTLS
	d.TLSConfig = &tls.Config{ServerName: cfg.Host}

	return &SMTPSender{dialer: d, from: cfg.From}
}

func (s *SMTPSender) Send(ctx context.Context, to []string, subject, html string) error {
	if len(to) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := mail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// LogSender writes emails to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, to []string, subject, html string) error {
	s.logger.InfoContext(ctx, "Email not sent, SMTP disabled", "to", to, "subject", subject)
	return nil
}
