package notification

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"solar/config"
	"solar/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
	"gopkg.in/gomail.v2"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewMailer_DisabledWithoutHost(t *testing.T) {
	mailer := NewMailer(&config.Config{}, discardLogger())

	assert.False(t, mailer.Enabled())
	assert.NoError(t, mailer.Send(context.Background(), &service.EmailMessage{To: "a@b.c"}))
}

func TestSMTPMailer_Send(t *testing.T) {
	var sent []*gomail.Message
	mailer := newSMTPMailer("sales@solar.test", "Solar", func(msgs ...*gomail.Message) error {
		sent = append(sent, msgs...)

		return nil
	}, discardLogger())

	err := mailer.Send(context.Background(), &service.EmailMessage{
		To:       "buyer@example.com",
		ToName:   "Buyer",
		Subject:  "Your quote QT-20260101-ABCDEF",
		HTMLBody: "<p>Total 1180.00</p>",
		TextBody: "Total 1180.00",
	})
	require.NoError(t, err)
	require.Len(t, sent, 1)

	assert.Equal(t, []string{"Your quote QT-20260101-ABCDEF"}, sent[0].GetHeader("Subject"))
	assert.Contains(t, sent[0].GetHeader("To")[0], "buyer@example.com")

	var buf bytes.Buffer
	_, err = sent[0].WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Total 1180.00")
}

func TestSMTPMailer_SendFailureTripsBreaker(t *testing.T) {
	calls := 0
	mailer := newSMTPMailer("sales@solar.test", "", func(...*gomail.Message) error {
		calls++

		return errors.New("connection refused")
	}, discardLogger())

	msg := &service.EmailMessage{To: "buyer@example.com", Subject: "s", TextBody: "b"}
	for range breakerFailureThreshold {
		assert.Error(t, mailer.Send(context.Background(), msg))
	}

	err := mailer.Send(context.Background(), msg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, gobreaker.ErrOpenState))
	assert.Equal(t, breakerFailureThreshold, calls)
}

func TestSMTPMailer_RejectsEmptyRecipient(t *testing.T) {
	mailer := newSMTPMailer("sales@solar.test", "", func(...*gomail.Message) error { return nil }, discardLogger())

	assert.Error(t, mailer.Send(context.Background(), &service.EmailMessage{Subject: "s"}))
}

type fakeMessages struct {
	params []*twilioapi.CreateMessageParams
	err    error
}

func (f *fakeMessages) CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error) {
	f.params = append(f.params, params)
	if f.err != nil {
		return nil, f.err
	}

	return &twilioapi.ApiV2010Message{}, nil
}

func TestNewSMSSender_DisabledWithoutCredentials(t *testing.T) {
	sender := NewSMSSender(&config.Config{Twilio: &config.TwilioConfig{AccountSID: "AC1"}}, discardLogger())

	assert.False(t, sender.Enabled())
	assert.NoError(t, sender.Send(context.Background(), "+15550001", "hi"))
}

func TestTwilioSender_Send(t *testing.T) {
	api := &fakeMessages{}
	sender := newTwilioSender("+15550000", api, discardLogger())

	require.NoError(t, sender.Send(context.Background(), "+15550001", "Order ORD-1 is now shipped"))
	require.Len(t, api.params, 1)
	assert.Equal(t, "+15550001", *api.params[0].To)
	assert.Equal(t, "+15550000", *api.params[0].From)
	assert.Equal(t, "Order ORD-1 is now shipped", *api.params[0].Body)
}

func TestTwilioSender_SendError(t *testing.T) {
	sender := newTwilioSender("+15550000", &fakeMessages{err: errors.New("401")}, discardLogger())

	assert.Error(t, sender.Send(context.Background(), "+15550001", "x"))
	assert.Error(t, sender.Send(context.Background(), "", "x"))
}
