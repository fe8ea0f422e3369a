package middleware

import (
	"time"

	"solar/config"
	domainerrors "solar/internal/domain/errors"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

const (
	rateLimitEntryTTL          = 3 * time.Minute
	fallbackLoginRatePerMinute = 10
)

// NewLoginRateLimiter throttles sign-in attempts per client IP. Unset limits
// fall back to fallbackLoginRatePerMinute with an equal burst.
func NewLoginRateLimiter(cfg *config.Config) echo.MiddlewareFunc {
	perMinute := cfg.RateLimit.LoginPerMinute
	if perMinute <= 0 {
		perMinute = fallbackLoginRatePerMinute
	}
	burst := cfg.RateLimit.LoginBurst
	if burst <= 0 {
		burst = perMinute
	}

	store := echomiddleware.NewRateLimiterMemoryStoreWithConfig(echomiddleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Every(time.Minute / time.Duration(perMinute)),
		Burst:     burst,
		ExpiresIn: rateLimitEntryTTL,
	})

	return echomiddleware.RateLimiterWithConfig(echomiddleware.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(_ echo.Context, err error) error {
			return domainerrors.ErrInternalError.WithDetails(err.Error())
		},
		DenyHandler: func(_ echo.Context, _ string, _ error) error {
			return domainerrors.ErrTooManyRequests
		},
	})
}
