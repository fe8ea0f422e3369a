package impl

import (
	"context"
	"log/slog"

	"solar/config"
	"solar/internal/domain/entity"
	"solar/internal/domain/repository"
	"solar/internal/domain/service"
	"solar/internal/errors"
	"solar/internal/usecase"

	"go.uber.org/fx"
)

type seedService struct {
	roleRepo   repository.RoleRepository
	userRepo   repository.UserRepository
	hasher     service.PasswordHasher
	authorizer service.Authorizer
	cfg        *config.Config
	logger     *slog.Logger
}

// SeedServiceParams holds dependencies for SeedService, injected by Fx.
type SeedServiceParams struct {
	fx.In

	RoleRepo   repository.RoleRepository
	UserRepo   repository.UserRepository
	Hasher     service.PasswordHasher
	Authorizer service.Authorizer
	Config     *config.Config
	Logger     *slog.Logger
}

// NewSeedService is the constructor for seedService.
func NewSeedService(params SeedServiceParams) usecase.SeedUsecase {
	return &seedService{
		roleRepo:   params.RoleRepo,
		userRepo:   params.UserRepo,
		hasher:     params.Hasher,
		authorizer: params.Authorizer,
		cfg:        params.Config,
		logger:     params.Logger,
	}
}

// Seed is idempotent: existing roles and users are left untouched.
func (srv *seedService) Seed(ctx context.Context) error {
	for _, role := range entity.BuiltinRoles() {
		_, err := srv.roleRepo.FindByName(ctx, role.Name)
		if err == nil {
			continue
		}
		if !isNotFound(err) {
			return errors.Wrapf(err, "failed to look up role %s", role.Name)
		}

		if err := srv.roleRepo.Create(ctx, role); err != nil {
			return errors.Wrapf(err, "failed to seed role %s", role.Name)
		}
		srv.logger.Info("Seeded role", slog.String("role", role.Name))
	}

	if err := srv.seedAdmin(ctx); err != nil {
		return err
	}

	return errors.Wrap(srv.authorizer.Reload(ctx), "failed to load authorization policy")
}

func (srv *seedService) seedAdmin(ctx context.Context) error {
	admin := srv.cfg.Admin
	if admin.Email == "" || admin.Password == "" {
		return nil
	}

	email := entity.NormalizeEmail(admin.Email)

	_, err := srv.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return errors.Wrap(err, "failed to look up admin user")
	}

	hash, err := srv.hasher.Hash(admin.Password)
	if err != nil {
		return errors.Wrap(err, "failed to hash admin password")
	}

	user := &entity.User{
		Email:        email,
		PasswordHash: hash,
		Name:         admin.Name,
		Role:         entity.RoleAdmin,
		IsActive:     true,
	}
	if err := srv.userRepo.Create(ctx, user); err != nil {
		return errors.Wrap(err, "failed to seed admin user")
	}

	srv.logger.Info("Seeded admin user", slog.String("email", email))

	return nil
}
