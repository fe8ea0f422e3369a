// Package context carries request-scoped values between the HTTP layer and
// the use cases: the request id, the request logger and the session.
package context

import (
	"context"
	"log/slog"

	"solar/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// ContextKey is a custom type for context keys to avoid collisions.
type ContextKey string

const (
	// KeyRequestID is the key for storing request ID in context.
	KeyRequestID ContextKey = "request_id"

	// KeyLogger is the key for storing request-scoped logger in context.
	KeyLogger ContextKey = "logger"

	// KeySession is the key for storing the decoded session.
	KeySession ContextKey = "session"

	// HeaderXRequestID is the HTTP header name for request ID.
	HeaderXRequestID = "X-Request-Id"
)

// GetRequestID extracts the request ID from echo.Context, or "" when the
// request id middleware did not run.
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(string(KeyRequestID)).(string); ok {
		return id
	}

	return ""
}

// SetRequestID sets the request ID in echo.Context.
func SetRequestID(c echo.Context, requestID string) {
	c.Set(string(KeyRequestID), requestID)
}

// GetRequestIDFromContext extracts the request ID from standard context.Context.
// If not found, returns empty string.
func GetRequestIDFromContext(ctx context.Context) string {
	if id, ok := ctx.Value(KeyRequestID).(string); ok {
		return id
	}

	return ""
}

// WithRequestID returns a new context with the request ID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, KeyRequestID, requestID)
}

// GetLogger extracts the request-scoped logger from context.Context.
// If not found, returns nil.
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(KeyLogger).(*slog.Logger); ok {
		return logger
	}

	return nil
}

// GetLoggerOrDefault extracts the request-scoped logger from context.Context.
// If not found, returns the provided fallback logger.
func GetLoggerOrDefault(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if logger := GetLogger(ctx); logger != nil {
		return logger
	}

	return fallback
}

// WithLogger returns a new context with the logger.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, KeyLogger, logger)
}

// SetSession stores the decoded session on both the echo context and the
// request context.
func SetSession(c echo.Context, session *entity.SessionData) {
	c.Set(string(KeySession), session)
	c.SetRequest(c.Request().WithContext(WithSession(c.Request().Context(), session)))
}

// GetSession returns the session of a signed-in request.
func GetSession(c echo.Context) (*entity.SessionData, bool) {
	session, ok := c.Get(string(KeySession)).(*entity.SessionData)

	return session, ok && session != nil
}

// WithSession returns a new context with the session.
func WithSession(ctx context.Context, session *entity.SessionData) context.Context {
	return context.WithValue(ctx, KeySession, session)
}

// SessionFromContext extracts the session from standard context.Context.
func SessionFromContext(ctx context.Context) (*entity.SessionData, bool) {
	session, ok := ctx.Value(KeySession).(*entity.SessionData)

	return session, ok && session != nil
}
