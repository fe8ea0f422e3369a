package middleware

import (
	"log/slog"
	"net/http"

	"solar/config"
	deliverycontext "solar/internal/delivery/context"
	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/service"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	Codec      service.SessionCodec
	Authorizer service.Authorizer
	Config     *config.Config
	Logger     *slog.Logger
}

// AuthMiddleware resolves the session cookie and enforces the permission store.
type AuthMiddleware struct {
	codec      service.SessionCodec
	authorizer service.Authorizer
	cookieName string
	logger     *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	return &AuthMiddleware{
		codec:      params.Codec,
		authorizer: params.Authorizer,
		cookieName: params.Config.Session.CookieName,
		logger:     params.Logger,
	}
}

// LoadSession decodes the session cookie when present. A missing or invalid
// cookie leaves the request anonymous.
func (m *AuthMiddleware) LoadSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		cookie, err := c.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			return next(c)
		}

		session, err := m.codec.Decode(cookie.Value)
		if err != nil {
			deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).
				Debug("Ignoring invalid session cookie", slog.Any("error", err))

			return next(c)
		}

		deliverycontext.SetSession(c, session)

		return next(c)
	}
}

// Authenticate rejects anonymous requests with 401. It must run after LoadSession.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if _, ok := deliverycontext.GetSession(c); !ok {
			return domainerrors.ErrUnauthorized
		}

		return next(c)
	}
}

// RequirePermission allows the request when the session role may perform
// action on resource: 401 without a session, 403 without the grant.
func (m *AuthMiddleware) RequirePermission(resource entity.Resource, action entity.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			session, ok := deliverycontext.GetSession(c)
			if !ok {
				return domainerrors.ErrUnauthorized
			}

			if !m.authorizer.Can(c.Request().Context(), session.Role, resource, action) {
				deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger).Info("Permission denied",
					slog.String("role", session.Role),
					slog.String("resource", string(resource)),
					slog.String("action", string(action)),
				)

				return domainerrors.ErrForbidden
			}

			return next(c)
		}
	}
}

// SessionCookie builds the session cookie carrying token.
func SessionCookie(cfg *config.Config, token string, maxAgeSeconds int) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.Session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAgeSeconds,
		HttpOnly: true,
		Secure:   cfg.Session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ExpiredSessionCookie builds the cookie that clears the session.
func ExpiredSessionCookie(cfg *config.Config) *http.Cookie {
	return SessionCookie(cfg, "", -1)
}
