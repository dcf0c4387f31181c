// Package mail delivers transactional mail — in this starter that is the
// magic-link sign-in message.
package mail

import (
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"github.com/km-arc/go-saas-starter/framework/config"
)

// Message is one outgoing mail.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Mailer delivers messages.
type Mailer interface {
	Send(msg Message) error
}

// FromConfig picks the mailer for the configured driver.
func FromConfig(cfg config.MailConfig, logger *slog.Logger) Mailer {
	if cfg.Driver == "log" {
		return NewLog(logger)
	}
	return NewSMTP(cfg)
}

// ── SMTP ─────────────────────────────────────────────────────────────────────

// SMTPMailer delivers through the configured SMTP relay.
type SMTPMailer struct {
	addr string
	from string
}

// NewSMTP builds a mailer for the MailConfig relay.
func NewSMTP(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{
		addr: cfg.Host + ":" + cfg.Port,
		from: cfg.From,
	}
}

func (m *SMTPMailer) Send(msg Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", m.from)
	fmt.Fprintf(&b, "To: %s\r\n", msg.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", msg.Subject)
	b.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(msg.Body)

	if err := smtp.SendMail(m.addr, nil, m.from, []string{msg.To}, []byte(b.String())); err != nil {
		return fmt.Errorf("mail: send to %s: %w", msg.To, err)
	}
	return nil
}

// ── Log ──────────────────────────────────────────────────────────────────────

// LogMailer writes mail to the log instead of delivering it (MAIL_DRIVER=log).
type LogMailer struct {
	logger *slog.Logger
}

func NewLog(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(msg Message) error {
	m.logger.Info("mail",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}

// ── Debug decorator ──────────────────────────────────────────────────────────

// DebugMailer wraps another mailer and logs every delivery. The local
// environment installs it via the container's Extend.
type DebugMailer struct {
	inner  Mailer
	logger *slog.Logger
}

func NewDebug(inner Mailer, logger *slog.Logger) *DebugMailer {
	return &DebugMailer{inner: inner, logger: logger}
}

func (m *DebugMailer) Send(msg Message) error {
	m.logger.Debug("mail outgoing", slog.String("to", msg.To), slog.String("subject", msg.Subject))
	err := m.inner.Send(msg)
	if err != nil {
		m.logger.Debug("mail failed", slog.String("to", msg.To), slog.Any("error", err))
	}
	return err
}
