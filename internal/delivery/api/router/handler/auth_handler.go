package handler

import (
	"log/slog"
	"net/http"

	"solar/config"
	"solar/internal/delivery/api/middleware"
	"solar/internal/delivery/api/response"
	"solar/internal/domain/entity"
	"solar/internal/domain/service"
	"solar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// AuthHandlerParams holds dependencies for AuthHandler, injected by Fx.
type AuthHandlerParams struct {
	fx.In

	AuthUC usecase.AuthUsecase
	Codec  service.SessionCodec
	Config *config.Config
	Logger *slog.Logger
}

// AuthHandler serves sign-in and the signed-in user's own account.
type AuthHandler struct {
	authUC usecase.AuthUsecase
	codec  service.SessionCodec
	cfg    *config.Config
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler
func NewAuthHandler(params AuthHandlerParams) *AuthHandler {
	return &AuthHandler{
		authUC: params.AuthUC,
		codec:  params.Codec,
		cfg:    params.Config,
		logger: params.Logger,
	}
}

// SessionResponse is the identity returned after signing in.
type SessionResponse struct {
	User    *entity.User       `json:"user,omitempty"`
	Session entity.SessionData `json:"session"`
}

// Login godoc
// @Summary Sign in
// @Description Verifies credentials and sets the httpOnly session cookie.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body usecase.LoginInput true "Credentials"
// @Success 200 {object} response.Envelope{data=SessionResponse}
// @Failure 401 {object} response.Envelope "Invalid email or password"
// @Failure 403 {object} response.Envelope "Account is disabled"
// @Failure 429 {object} response.Envelope "Too many attempts"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var input usecase.LoginInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.authUC.Login(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.setSessionCookie(c, out.Token)

	return response.SuccessWithMessage(c, http.StatusOK, "Signed in", SessionResponse{User: out.User, Session: out.Session})
}

// Register godoc
// @Summary Register a storefront account
// @Description Creates a customer-role user and signs it in.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body usecase.RegisterInput true "Account"
// @Success 201 {object} response.Envelope{data=SessionResponse}
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope "Email is already registered"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var input usecase.RegisterInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.authUC.Register(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	h.setSessionCookie(c, out.Token)

	return response.SuccessWithMessage(c, http.StatusCreated, "Registered", SessionResponse{User: out.User, Session: out.Session})
}

// Logout godoc
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	c.SetCookie(middleware.ExpiredSessionCookie(h.cfg))

	return response.SuccessWithMessage(c, http.StatusOK, "Signed out", nil)
}

// Me godoc
// @Summary Current user
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Envelope{data=entity.User}
// @Failure 401 {object} response.Envelope
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.authUC.Me(c.Request().Context(), session)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body usecase.UpdateProfileInput true "Profile fields"
// @Success 200 {object} response.Envelope{data=entity.User}
// @Failure 401 {object} response.Envelope
// @Router /auth/me [patch]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateProfileInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	user, err := h.authUC.UpdateProfile(c.Request().Context(), session.UserID, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, user)
}

// ChangePassword godoc
// @Summary Change own password
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body usecase.ChangePasswordInput true "Passwords"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	session, err := currentSession(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.ChangePasswordInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.authUC.ChangePassword(c.Request().Context(), session.UserID, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "Password changed", nil)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string) {
	c.SetCookie(middleware.SessionCookie(h.cfg, token, int(h.codec.MaxAge().Seconds())))
}
