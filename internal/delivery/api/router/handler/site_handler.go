package handler

import (
	"io"
	"log/slog"
	"net/http"

	"solar/internal/delivery/api/response"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const uploadField = "file"

// SiteHandlerParams holds dependencies for SiteHandler, injected by Fx.
type SiteHandlerParams struct {
	fx.In

	SettingsUC usecase.SettingsUsecase
	MediaUC    usecase.MediaUsecase
	Logger     *slog.Logger
}

// SiteHandler serves the site settings and media uploads.
type SiteHandler struct {
	settingsUC usecase.SettingsUsecase
	mediaUC    usecase.MediaUsecase
	logger     *slog.Logger
}

// NewSiteHandler is the constructor for SiteHandler
func NewSiteHandler(params SiteHandlerParams) *SiteHandler {
	return &SiteHandler{
		settingsUC: params.SettingsUC,
		mediaUC:    params.MediaUC,
		logger:     params.Logger,
	}
}

// HealthCheck godoc
// @Summary Liveness probe
// @Tags Core
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /health [get]
func HealthCheck(c echo.Context) error {
	return response.SuccessWithMessage(c, http.StatusOK, "Service is healthy", map[string]string{"status": "ok"})
}

// GetSettings godoc
// @Summary Site settings
// @Description Returns defaults until the settings are first saved.
// @Tags Settings
// @Produce json
// @Success 200 {object} response.Envelope{data=entity.SiteSetting}
// @Router /settings [get]
func (h *SiteHandler) GetSettings(c echo.Context) error {
	settings, err := h.settingsUC.Get(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, settings)
}

// UpdateSettings godoc
// @Summary Replace the site settings
// @Tags Settings
// @Accept json
// @Produce json
// @Param body body usecase.SiteSettingInput true "Settings"
// @Success 200 {object} response.Envelope{data=entity.SiteSetting}
// @Router /settings [put]
func (h *SiteHandler) UpdateSettings(c echo.Context) error {
	var input usecase.SiteSettingInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	settings, err := h.settingsUC.Upsert(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, settings)
}

// Upload godoc
// @Summary Upload a file
// @Description Stores the multipart field "file" and returns its public URL.
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to store"
// @Success 201 {object} response.Envelope{data=service.StoredObject}
// @Failure 400 {object} response.Envelope
// @Router /upload [post]
func (h *SiteHandler) Upload(c echo.Context) error {
	header, err := c.FormFile(uploadField)
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrValidationFailed.WithDetails("multipart field \"file\" is required"))
	}

	file, err := header.Open()
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrUploadFailed.WithDetails(err.Error()))
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return response.HandleAppError(c, domainerrors.ErrUploadFailed.WithDetails(err.Error()))
	}

	stored, err := h.mediaUC.Upload(c.Request().Context(), &usecase.UploadInput{
		Filename:    header.Filename,
		ContentType: header.Header.Get(echo.HeaderContentType),
		Data:        data,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusCreated, "File uploaded", stored)
}
