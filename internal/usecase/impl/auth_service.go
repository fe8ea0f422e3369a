package impl

import (
	"context"
	"log/slog"
	"strconv"

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

// authService implements the AuthUsecase interface.
type authService struct {
	userRepo repository.UserRepository
	hasher   service.PasswordHasher
	codec    service.SessionCodec
	cfg      *config.Config
	logger   *slog.Logger
}

// AuthServiceParams holds dependencies for AuthService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	UserRepo repository.UserRepository
	Hasher   service.PasswordHasher
	Codec    service.SessionCodec
	Config   *config.Config
	Logger   *slog.Logger
}

// NewAuthService is the constructor for authService.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		userRepo: params.UserRepo,
		hasher:   params.Hasher,
		codec:    params.Codec,
		cfg:      params.Config,
		logger:   params.Logger,
	}
}

func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.SessionOutput, error) {
	email := entity.NormalizeEmail(input.Email)

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			srv.log(ctx).Warn("Login for unknown email", slog.String("email", email))

			return nil, domainerrors.ErrInvalidCredentials
		}

		if fallback := srv.devFallback(email, input.Password); fallback != nil {
			srv.log(ctx).Warn("Database unavailable, signing in configured admin without a user record",
				slog.String("email", email), slog.Any("error", err))

			return srv.issue(fallback)
		}

		return nil, errors.Wrap(err, "failed to find user for login")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login with wrong password", slog.String("email", email))

		return nil, domainerrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domainerrors.ErrAccountDisabled
	}

	if err := srv.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		return nil, errors.Wrap(err, "failed to record login")
	}

	srv.log(ctx).Info("User signed in", slog.String("user_id", user.ID.String()), slog.String("role", user.Role))

	return srv.issue(user)
}

// devFallback lets the configured admin in while the database is down,
// outside production only.
func (srv *authService) devFallback(email, password string) *entity.User {
	admin := srv.cfg.Admin
	if srv.cfg.IsProduction() || admin.Email == "" || admin.Password == "" {
		return nil
	}
	if email != entity.NormalizeEmail(admin.Email) || password != admin.Password {
		return nil
	}

	return &entity.User{
		ID:       uuid.Nil,
		Email:    email,
		Name:     admin.Name,
		Role:     entity.RoleAdmin,
		IsActive: true,
	}
}

func (srv *authService) issue(user *entity.User) (*usecase.SessionOutput, error) {
	session := entity.SessionFromUser(user)

	token, err := srv.codec.Encode(session)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode session")
	}

	return &usecase.SessionOutput{User: user, Session: session, Token: token}, nil
}

func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.SessionOutput, error) {
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
		Role:         entity.RoleCustomer,
		Phone:        input.Phone,
		IsActive:     true,
	}

	if err := srv.userRepo.Create(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to register user")
	}

	srv.log(ctx).Info("User registered", slog.String("user_id", user.ID.String()))

	return srv.issue(user)
}

func (srv *authService) Me(ctx context.Context, session *entity.SessionData) (*entity.User, error) {
	if session == nil {
		return nil, domainerrors.ErrUnauthorized
	}

	// Sessions issued by the development fallback have no user record.
	if session.UserID == uuid.Nil {
		return &entity.User{
			Email:    session.Email,
			Name:     session.Name,
			Role:     session.Role,
			IsActive: true,
		}, nil
	}

	user, err := srv.userRepo.FindByID(ctx, session.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, domainerrors.ErrUnauthorized
		}

		return nil, errors.Wrap(err, "failed to load session user")
	}

	if !user.IsActive {
		return nil, domainerrors.ErrAccountDisabled
	}

	return user, nil
}

func (srv *authService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateProfileInput) (*entity.User, error) {
	if userID == uuid.Nil {
		return nil, domainerrors.ErrForbidden.WithDetails("this session has no account to update")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	set(&user.Name, input.Name)
	set(&user.Phone, input.Phone)

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	return user, nil
}

func (srv *authService) ChangePassword(ctx context.Context, userID uuid.UUID, input *usecase.ChangePasswordInput) error {
	if userID == uuid.Nil {
		return domainerrors.ErrForbidden.WithDetails("this session has no account to update")
	}

	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return errors.Wrap(err, "failed to load account")
	}

	if !srv.hasher.Check(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials.WithDetails("current password is incorrect")
	}

	if err := checkPasswordStrength(srv.cfg, input.NewPassword); err != nil {
		return err
	}

	hash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(domainerrors.ErrPasswordHashFailed, err.Error())
	}
	user.PasswordHash = hash

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store new password")
	}

	srv.log(ctx).Info("Password changed", slog.String("user_id", user.ID.String()))

	return nil
}

func checkPasswordStrength(cfg *config.Config, password string) error {
	minLength := 8
	if cfg.Auth != nil && cfg.Auth.MinPasswordLength > 0 {
		minLength = cfg.Auth.MinPasswordLength
	}

	if len([]rune(password)) < minLength {
		return domainerrors.ErrPasswordStrength.WithDetails("minimum length is " + strconv.Itoa(minLength))
	}

	return nil
}
