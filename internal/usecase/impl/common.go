// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"solar/config"
	deliverycontext "solar/internal/delivery/context"
	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/pricing"
	"solar/internal/domain/repository"
	"solar/internal/domain/service"
	"solar/internal/errors"
	"solar/internal/infra/metrics"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// blogPageSize is the default page size of article listings.
const blogPageSize = 10

func normalizeList(params repository.ListParams) repository.ListParams {
	return params.Normalize(repository.DefaultLimit)
}

func page[T any](items []*T, total int64, params repository.ListParams) *entity.Page[T] {
	return entity.NewPage(items, total, params.Skip, params.Limit)
}

// validationError reports invalid input with a client-visible detail.
func validationError(details string) error {
	return domainerrors.ErrValidationFailed.WithDetails(details)
}

// isNotFound reports whether err is any of the NotFound domain errors.
func isNotFound(err error) bool {
	appErr, ok := errors.AsType[domainerrors.AppError](err)

	return ok && appErr.HTTPCode() == http.StatusNotFound
}

// idOrSlug parses s as a uuid; ok is false for slugs.
func idOrSlug(s string) (uuid.UUID, bool) {
	id, err := uuid.Parse(strings.TrimSpace(s))

	return id, err == nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}

	return *v
}

// eventPublisher wraps the domain publisher with best-effort semantics.
type eventPublisher struct {
	publisher service.EventPublisher
	logger    *slog.Logger
}

// publish sends an event and only logs failures.
func (p eventPublisher) publish(ctx context.Context, eventType, entityID string, payload map[string]any) {
	if p.publisher == nil {
		return
	}

	event := &service.DomainEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		RequestID:  deliverycontext.GetRequestIDFromContext(ctx),
		EntityID:   entityID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}

	if err := p.publisher.Publish(ctx, event); err != nil {
		metrics.RecordOutboundFailure(metrics.ChannelEvents)
		deliverycontext.GetLoggerOrDefault(ctx, p.logger).Warn("Failed to publish event",
			slog.String("event_type", eventType),
			slog.String("entity_id", entityID),
			slog.Any("error", err),
		)
	}
}

// taxRate parses the configured rate, falling back to the default rate.
func taxRate(cfg *config.Config) decimal.Decimal {
	rate, err := decimal.NewFromString(cfg.Pricing.TaxRate)
	if err != nil || rate.IsNegative() {
		return pricing.DefaultTaxRate
	}

	return rate
}
