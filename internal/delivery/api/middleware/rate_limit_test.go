package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"solar/config"
	"solar/internal/delivery/api/response"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLimitedEcho(cfg *config.Config) *echo.Echo {
	e := echo.New()
	e.HTTPErrorHandler = NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil))).HandleHTTPError
	e.POST("/login", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, NewLoginRateLimiter(cfg))

	return e
}

func postLogin(e *echo.Echo, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = ip + ":40000"
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestLoginRateLimiter_DeniesAfterBurst(t *testing.T) {
	cfg := &config.Config{}
	cfg.RateLimit = config.RateLimitConfig{LoginPerMinute: 1, LoginBurst: 3}
	e := newLimitedEcho(cfg)

	for i := range cfg.RateLimit.LoginBurst {
		assert.Equal(t, http.StatusOK, postLogin(e, "203.0.113.7").Code, "attempt %d", i+1)
	}

	rec := postLogin(e, "203.0.113.7")
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	var env response.Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Equal(t, http.StatusTooManyRequests, env.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "TOO_MANY_REQUESTS", env.Error.Code)

	// Other clients keep their own budget.
	assert.Equal(t, http.StatusOK, postLogin(e, "198.51.100.9").Code)
}

func TestLoginRateLimiter_ZeroConfigUsesFallback(t *testing.T) {
	var e *echo.Echo
	require.NotPanics(t, func() { e = newLimitedEcho(&config.Config{}) })

	for range fallbackLoginRatePerMinute {
		assert.Equal(t, http.StatusOK, postLogin(e, "203.0.113.8").Code)
	}
	assert.Equal(t, http.StatusTooManyRequests, postLogin(e, "203.0.113.8").Code)
}
