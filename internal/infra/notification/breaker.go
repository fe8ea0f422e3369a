// Package notification delivers email over SMTP and text messages over
// Twilio. Both senders trip a circuit breaker after repeated failures.
package notification

import (
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"
)

const (
	breakerFailureThreshold = 5
	breakerOpenTimeout      = 60 * time.Second
)

func newBreaker(name string, logger *slog.Logger) *gobreaker.CircuitBreaker[struct{}] {
	return gobreaker.NewCircuitBreaker[struct{}](gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Timeout:     breakerOpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
}
