package impl

import (
	"context"
	"log/slog"

	"solar/internal/domain/entity"
	"solar/internal/domain/repository"
	"solar/internal/errors"
	"solar/internal/usecase"

	"go.uber.org/fx"
)

const defaultSiteName = "Solar"

func defaultSettings() *entity.SiteSetting {
	return &entity.SiteSetting{
		SiteName:    defaultSiteName,
		SocialLinks: map[string]string{},
	}
}

// loadSettings never fails: documents rendered for customers fall back to
// defaults when the settings cannot be read.
func loadSettings(ctx context.Context, repo repository.SiteSettingRepository, logger *slog.Logger) *entity.SiteSetting {
	settings, err := repo.Get(ctx)
	if err != nil {
		if !isNotFound(err) {
			logger.Warn("Failed to load site settings, using defaults", slog.Any("error", err))
		}

		return defaultSettings()
	}

	return settings
}

type settingsService struct {
	settingsRepo repository.SiteSettingRepository
	logger       *slog.Logger
}

// SettingsServiceParams holds dependencies for SettingsService, injected by Fx.
type SettingsServiceParams struct {
	fx.In

	SettingsRepo repository.SiteSettingRepository
	Logger       *slog.Logger
}

// NewSettingsService is the constructor for settingsService.
func NewSettingsService(params SettingsServiceParams) usecase.SettingsUsecase {
	return &settingsService{
		settingsRepo: params.SettingsRepo,
		logger:       params.Logger,
	}
}

func (srv *settingsService) Get(ctx context.Context) (*entity.SiteSetting, error) {
	settings, err := srv.settingsRepo.Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return defaultSettings(), nil
		}

		return nil, errors.Wrap(err, "failed to get settings")
	}

	return settings, nil
}

func (srv *settingsService) Upsert(ctx context.Context, input *usecase.SiteSettingInput) (*entity.SiteSetting, error) {
	settings := &entity.SiteSetting{
		SiteName:     input.SiteName,
		Tagline:      input.Tagline,
		Logo:         input.Logo,
		Favicon:      input.Favicon,
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
		Address:      input.Address,
		SocialLinks:  input.SocialLinks,
		FooterText:   input.FooterText,
	}
	if settings.SocialLinks == nil {
		settings.SocialLinks = map[string]string{}
	}

	if err := srv.settingsRepo.Upsert(ctx, settings); err != nil {
		return nil, errors.Wrap(err, "failed to save settings")
	}

	return settings, nil
}
