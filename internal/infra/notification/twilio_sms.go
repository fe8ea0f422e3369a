package notification

import (
	"context"
	"log/slog"

	"solar/config"
	"solar/internal/domain/service"
	"solar/internal/errors"

	"github.com/sony/gobreaker/v2"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator is the part of the Twilio REST client used here.
type messageCreator interface {
	CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error)
}

type twilioSender struct {
	from    string
	api     messageCreator
	breaker *gobreaker.CircuitBreaker[struct{}]
	logger  *slog.Logger
}

// NewSMSSender returns a Twilio sender, or a disabled one without credentials.
func NewSMSSender(cfg *config.Config, logger *slog.Logger) service.SMSSender {
	tw := cfg.Twilio
	if tw == nil || tw.AccountSID == "" || tw.AuthToken == "" || tw.PhoneNumber == "" {
		logger.Info("Twilio not configured, SMS will be skipped")

		return disabledSMS{}
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: tw.AccountSID,
		Password: tw.AuthToken,
	})

	return newTwilioSender(tw.PhoneNumber, client.Api, logger)
}

func newTwilioSender(from string, api messageCreator, logger *slog.Logger) *twilioSender {
	return &twilioSender{
		from:    from,
		api:     api,
		breaker: newBreaker("twilio", logger),
		logger:  logger,
	}
}

func (s *twilioSender) Enabled() bool {
	return true
}

func (s *twilioSender) Send(ctx context.Context, to, body string) error {
	if to == "" {
		return errors.New("sms recipient is empty")
	}
	if err := ctx.Err(); err != nil {
		return errors.WithStack(err)
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.breaker.Execute(func() (struct{}, error) {
		_, err := s.api.CreateMessage(params)

		return struct{}{}, err
	})
	if err != nil {
		return errors.Wrapf(err, "failed to send sms to %s", to)
	}

	s.logger.DebugContext(ctx, "SMS sent", slog.String("to", to))

	return nil
}

type disabledSMS struct{}

func (disabledSMS) Enabled() bool { return false }

func (disabledSMS) Send(context.Context, string, string) error { return nil }
