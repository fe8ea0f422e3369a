package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"solar/config"
	deliverycontext "solar/internal/delivery/context"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/errors"
	"solar/internal/infra/metrics"

	"github.com/labstack/echo/v4"
)

// LoggerMiddleware records request metrics and, in debug mode, logs every request.
type LoggerMiddleware struct {
	logger *slog.Logger
	debug  bool
}

// NewLoggerMiddleware creates a new logger middleware
func NewLoggerMiddleware(logger *slog.Logger, config *config.Config) *LoggerMiddleware {
	return &LoggerMiddleware{
		logger: logger,
		debug:  config.Env.Debug,
	}
}

// Handle processes request logging
func (m *LoggerMiddleware) Handle(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()

		err := next(c)

		status := c.Response().Status
		// The error handler has not written the response yet.
		if err != nil && !c.Response().Committed {
			status = statusOf(err)
		}

		m.observe(c, start, status)
		if m.debug || status >= http.StatusInternalServerError {
			m.logRequest(c, start, status, err)
		}

		return err
	}
}

func (m *LoggerMiddleware) observe(c echo.Context, start time.Time, status int) {
	route := c.Path()
	if route == "" {
		route = "unmatched"
	}
	method := c.Request().Method

	metrics.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	metrics.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
}

// logRequest logs request details
func (m *LoggerMiddleware) logRequest(c echo.Context, start time.Time, status int, err error) {
	req := c.Request()

	fields := []slog.Attr{
		slog.String("request_id", deliverycontext.GetRequestID(c)),
		slog.String("method", req.Method),
		slog.String("uri", req.URL.Path),
		slog.Int("status", status),
		slog.Duration("latency", time.Since(start)),
		slog.String("remote_ip", c.RealIP()),
		slog.String("user_agent", req.UserAgent()),
	}

	if len(req.URL.RawQuery) > 0 {
		fields = append(fields, slog.String("query", req.URL.RawQuery))
	}

	if session, ok := deliverycontext.GetSession(c); ok {
		fields = append(fields, slog.String("user_id", session.UserID.String()), slog.String("role", session.Role))
	}

	if err != nil {
		fields = append(fields, slog.Any("error", err))
	}

	logLevel := slog.LevelInfo
	if status >= http.StatusBadRequest {
		logLevel = slog.LevelWarn
	}
	if status >= http.StatusInternalServerError {
		logLevel = slog.LevelError
	}

	m.logger.LogAttrs(context.Background(), logLevel, "HTTP Request", fields...)
}

func statusOf(err error) int {
	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		return appErr.HTTPCode()
	}
	if httpErr, ok := errors.AsType[*echo.HTTPError](err); ok {
		return httpErr.Code
	}

	return http.StatusInternalServerError
}
