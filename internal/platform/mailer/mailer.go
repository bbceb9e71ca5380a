// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mailer provides outgoing email delivery for the platform.

Its single production use is sending signup confirmation codes. The
[Mailer] interface keeps the transport swappable: SMTP in production,
a structured-log sink in development and tests.

Delivery is best-effort: a failed send is reported to the caller, who
decides whether the surrounding operation should fail. No retries are
performed here.
*/
package mailer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"
)

// Mailer is the outgoing email collaborator.
type Mailer interface {
	// Send delivers a plain-text message to a single recipient.
	Send(ctx context.Context, recipient, subject, body string) error
}

// # SMTP Delivery

// SMTPConfig holds the connection settings for the SMTP transport.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers mail over authenticated SMTP using wneessen/go-mail.
type SMTPMailer struct {
	config SMTPConfig
	logger *slog.Logger
}

// NewSMTPMailer constructs an SMTP-backed [Mailer].
func NewSMTPMailer(config SMTPConfig, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{config: config, logger: logger}
}

// Send composes and delivers a plain-text message.
func (mailer *SMTPMailer) Send(ctx context.Context, recipient, subject, body string) error {
	message := mail.NewMsg()
	if err := message.From(mailer.config.From); err != nil {
		return fmt.Errorf("mailer: invalid sender address: %w", err)
	}
	if err := message.To(recipient); err != nil {
		return fmt.Errorf("mailer: invalid recipient address: %w", err)
	}
	message.Subject(subject)
	message.SetBodyString(mail.TypeTextPlain, body)

	client, err := mail.NewClient(mailer.config.Host,
		mail.WithPort(mailer.config.Port),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(mailer.config.Username),
		mail.WithPassword(mailer.config.Password),
	)
	if err != nil {
		return fmt.Errorf("mailer: failed to create SMTP client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, message); err != nil {
		return fmt.Errorf("mailer: delivery to %s failed: %w", recipient, err)
	}

	mailer.logger.Info("mail_sent",
		slog.String("recipient", recipient),
		slog.String("subject", subject),
	)
	return nil
}

// # Development Delivery

// LogMailer writes outgoing mail to the structured log instead of the wire.
// Used when no SMTP host is configured, and as a capture point in tests.
type LogMailer struct {
	logger *slog.Logger
}

// NewLogMailer constructs a log-backed [Mailer].
func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

// Send logs the message instead of delivering it.
func (mailer *LogMailer) Send(ctx context.Context, recipient, subject, body string) error {
	mailer.logger.InfoContext(ctx, "mail_logged_instead_of_sent",
		slog.String("recipient", recipient),
		slog.String("subject", subject),
		slog.String("body", body),
	)
	return nil
}
