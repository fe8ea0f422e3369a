package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"solar/config"
	"solar/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testEvent() *service.DomainEvent {
	return &service.DomainEvent{
		ID:         "evt-1",
		Type:       service.EventOrderCreated,
		RequestID:  "req-1",
		EntityID:   "order-1",
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Payload:    map[string]any{"orderNumber": "ORD-20260102-ABCDEF"},
	}
}

func TestLocalHTTPPublisher_Publish(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	require.NoError(t, publisher.Publish(context.Background(), testEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, "evt-1", received.Message.MessageID)
	assert.Equal(t, service.EventOrderCreated, received.Message.Attributes["event_type"])

	raw, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var event service.DomainEvent
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, "order-1", event.EntityID)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, discardLogger())
	assert.Error(t, publisher.Publish(context.Background(), testEvent()))
}

func TestNoopPublisher_Publish(t *testing.T) {
	publisher := &noopPublisher{logger: discardLogger()}

	assert.NoError(t, publisher.Publish(context.Background(), testEvent()))
	assert.NoError(t, publisher.Close())
}

func TestNewEventPublisher_Providers(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.PubSubConfig
		wantErr bool
	}{
		{"not configured", nil, false},
		{"local", &config.PubSubConfig{Provider: ProviderLocal, LocalEndpoint: "http://localhost:9/events"}, false},
		{"local without endpoint", &config.PubSubConfig{Provider: ProviderLocal}, true},
		{"google without project", &config.PubSubConfig{Provider: ProviderGoogle, TopicID: "t"}, true},
		{"unknown", &config.PubSubConfig{Provider: "kafka"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     fxtest.NewLifecycle(t),
				Config: &config.Config{PubSub: tt.cfg},
				Logger: discardLogger(),
			})
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.NotNil(t, publisher)
		})
	}
}
