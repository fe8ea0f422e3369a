package notification

import (
	"context"
	"log/slog"

	"solar/config"
	"solar/internal/domain/service"
	"solar/internal/errors"

	"github.com/sony/gobreaker/v2"
	"gopkg.in/gomail.v2"
)

type sendFunc func(msgs ...*gomail.Message) error

type smtpMailer struct {
	from    string
	name    string
	send    sendFunc
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  *slog.Logger
}

// NewMailer returns an SMTP mailer, or a disabled one when smtp.host is unset.
func NewMailer(cfg *config.Config, logger *slog.Logger) service.Mailer {
	smtp := cfg.SMTP
	if smtp == nil || smtp.Host == "" {
		logger.Info("SMTP not configured, emails will be skipped")

		return disabledMailer{}
	}

	dialer := gomail.NewDialer(smtp.Host, smtp.Port, smtp.User, smtp.Pass)

	from := smtp.FromEmail
	if from == "" {
		from = smtp.User
	}

	return newSMTPMailer(from, smtp.FromName, dialer.DialAndSend, logger)
}

func newSMTPMailer(from, name string, send sendFunc, logger *slog.Logger) *smtpMailer {
	return &smtpMailer{
		from:    from,
		name:    name,
		send:    send,
		breaker: newBreaker("smtp", logger),
		logger:  logger,
	}
}

func (m *smtpMailer) Enabled() bool {
	return true
}

func (m *smtpMailer) Send(ctx context.Context, email *service.EmailMessage) error {
	if email.To == "" {
		return errors.New("email recipient is empty")
	}

	msg := gomail.NewMessage()
	msg.SetAddressHeader("From", m.from, m.name)
	if email.ToName != "" {
		msg.SetAddressHeader("To", email.To, email.ToName)
	} else {
		msg.SetHeader("To", email.To)
	}
	msg.SetHeader("Subject", email.Subject)

	switch {
	case email.HTMLBody != "" && email.TextBody != "":
		msg.SetBody("text/plain", email.TextBody)
		msg.AddAlternative("text/html", email.HTMLBody)
	case email.HTMLBody != "":
		msg.SetBody("text/html", email.HTMLBody)
	default:
		msg.SetBody("text/plain", email.TextBody)
	}

	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	_, err := m.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, m.send(msg)
	})
	if err != nil {
		return errors.Wrapf(err, "failed to send email to %s", email.To)
	}

	m.logger.DebugContext(ctx, "Email sent", slog.String("to", email.To), slog.String("subject", email.Subject))

	return nil
}

type disabledMailer struct{}

func (disabledMailer) Enabled() bool { return false }

func (disabledMailer) Send(context.Context, *service.EmailMessage) error { return nil }
