package impl

import (
	"context"
	"log/slog"

	"solar/config"
	deliverycontext "solar/internal/delivery/context"
	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/repository"
	"solar/internal/domain/service"
	"solar/internal/errors"
	"solar/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	userRepo   repository.UserRepository
	hasher     service.PasswordHasher
	authorizer service.Authorizer
	cfg        *config.Config
	logger     *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo   repository.UserRepository
	Hasher     service.PasswordHasher
	Authorizer service.Authorizer
	Config     *config.Config
	Logger     *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:   params.UserRepo,
		hasher:     params.Hasher,
		authorizer: params.Authorizer,
		cfg:        params.Config,
		logger:     params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *userService) List(ctx context.Context, filter repository.UserFilter) (*entity.Page[entity.User], error) {
	filter.ListParams = normalizeList(filter.ListParams)

	users, total, err := srv.userRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}

	return page(users, total, filter.ListParams), nil
}

func (srv *userService) Get(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}

	return user, nil
}

// checkRole only accepts names of existing role documents.
func (srv *userService) checkRole(role string) error {
	if !srv.authorizer.HasRole(role) {
		return domainerrors.ErrUnknownRole.WithDetails(role)
	}

	return nil
}

func (srv *userService) Create(ctx context.Context, input *usecase.CreateUserInput) (*entity.User, error) {
	if err := srv.checkRole(input.Role); err != nil {
		return nil, err
	}
	if err := checkPasswordStrength(srv.cfg, input.Password); err != nil {
		return nil, err
	}

	hash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}

	user := &entity.User{
		Email:        entity.NormalizeEmail(input.Email),
		PasswordHash: hash,
		Name:         input.Name,
		Role:         input.Role,
		Phone:        input.Phone,
		IsActive:     boolOr(input.IsActive, true),
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to create user")
	}

	srv.log(ctx).Info("User created", slog.String("user_id", user.ID.String()), slog.String("role", user.Role))

	return user, nil
}

func (srv *userService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user")
	}

	if input.Role != nil && *input.Role != user.Role {
		if err := srv.checkRole(*input.Role); err != nil {
			return nil, err
		}
		user.Role = *input.Role
	}

	if input.Password != nil {
		if err := checkPasswordStrength(srv.cfg, *input.Password); err != nil {
			return nil, err
		}
		hash, err := srv.hasher.Hash(*input.Password)
		if err != nil {
			return nil, errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
		}
		user.PasswordHash = hash
	}

	if input.Email != nil {
		user.Email = entity.NormalizeEmail(*input.Email)
	}
	set(&user.Name, input.Name)
	set(&user.Phone, input.Phone)
	set(&user.IsActive, input.IsActive)

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update user")
	}

	return user, nil
}

func (srv *userService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.userRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}

	srv.log(ctx).Info("User deleted", slog.String("user_id", id.String()))

	return nil
}
