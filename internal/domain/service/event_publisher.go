package service

import (
	"context"
	"time"
)

// Domain event types.
const (
	EventQuoteAccepted      = "quote.accepted"
	EventQuoteSent          = "quote.sent"
	EventOrderCreated       = "order.created"
	EventOrderStatusChanged = "order.status_changed"
	EventInvoiceGenerated   = "invoice.generated"
)

// DomainEvent is a fact about the sales lifecycle published to subscribers.
type DomainEvent struct {
	ID         string         `json:"id"`
	Type       string         `json:"type"`
	RequestID  string         `json:"request_id,omitempty"` // For distributed tracing
	EntityID   string         `json:"entity_id"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// Publish delivers the event. Callers treat failures as best-effort.
	Publish(ctx context.Context, event *DomainEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
