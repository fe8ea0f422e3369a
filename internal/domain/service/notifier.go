package service

import "context"

// EmailMessage is one outgoing email.
type EmailMessage struct {
	To       string
	ToName   string
	Subject  string
	HTMLBody string
	TextBody string
}

// Mailer delivers email.
type Mailer interface {
	Send(ctx context.Context, msg *EmailMessage) error
	// Enabled is false when no SMTP server is configured.
	Enabled() bool
}

// SMSSender delivers text messages.
type SMSSender interface {
	Send(ctx context.Context, to, body string) error
	Enabled() bool
}
