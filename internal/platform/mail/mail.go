// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mail delivers outgoing messages.

Two senders exist: [SMTPSender] talks to a relay and [LogSender] writes the
message to the structured log for local development. Callers depend only on
the [Sender] interface.
*/
package mail

import (
	"context"
	"fmt"
	"log/slog"

	gomail "github.com/wneessen/go-mail"
)

// Message is a plain-text email.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Sender delivers a [Message]. Implementations do not retry.
type Sender interface {
	Name() string
	Send(ctx context.Context, message Message) error
}

// # SMTP

// deliverFunc hands a composed message to the relay.
type deliverFunc func(ctx context.Context, message *gomail.Msg) error

// SMTPSender delivers through an SMTP relay, upgrading to STARTTLS when offered.
type SMTPSender struct {
	from    string
	deliver deliverFunc
}

// NewSMTPSender builds a sender for host:port. Empty credentials disable AUTH.
func NewSMTPSender(host string, port int, username, password, from string) (*SMTPSender, error) {
	options := []gomail.Option{
		gomail.WithPort(port),
		gomail.WithTLSPortPolicy(gomail.TLSOpportunistic),
	}
	if username != "" {
		options = append(options,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(username),
			gomail.WithPassword(password),
		)
	}

	client, err := gomail.NewClient(host, options...)
	if err != nil {
		return nil, fmt.Errorf("mail: smtp client for %s: %w", host, err)
	}

	return &SMTPSender{
		from: from,
		deliver: func(ctx context.Context, message *gomail.Msg) error {
			return client.DialAndSendWithContext(ctx, message)
		},
	}, nil
}

func (s *SMTPSender) Name() string { return "smtp" }

// Send composes message and delivers it. Cancelling ctx aborts the SMTP session.
func (s *SMTPSender) Send(ctx context.Context, message Message) error {
	composed, err := s.compose(message)
	if err != nil {
		return err
	}
	if err := s.deliver(ctx, composed); err != nil {
		return fmt.Errorf("mail: smtp send failed: %w", err)
	}
	return nil
}

// compose builds the MIME message. Addresses that do not parse are rejected.
func (s *SMTPSender) compose(message Message) (*gomail.Msg, error) {
	composed := gomail.NewMsg()
	if err := composed.From(s.from); err != nil {
		return nil, fmt.Errorf("mail: invalid sender %q: %w", s.from, err)
	}
	if err := composed.To(message.To); err != nil {
		return nil, fmt.Errorf("mail: invalid recipient: %w", err)
	}
	composed.Subject(message.Subject)
	composed.SetBodyString(gomail.TypeTextPlain, message.Body)
	return composed, nil
}

// # Development

// LogSender writes messages to the log instead of delivering them.
type LogSender struct {
	logger *slog.Logger
}

// NewLogSender creates a log-backed sender.
func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Name() string { return "log" }

func (s *LogSender) Send(ctx context.Context, message Message) error {
	s.logger.InfoContext(ctx, "mail_logged",
		slog.String("to", message.To),
		slog.String("subject", message.Subject),
		slog.String("body", message.Body),
	)
	return nil
}
