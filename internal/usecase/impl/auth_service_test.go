package impl

import (
	"context"
	"testing"

	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/errors"
	"solar/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_LoginSeededAdmin(t *testing.T) {
	h := newHarness(t)
	srv := h.authService(t)

	out, err := srv.Login(context.Background(), &usecase.LoginInput{Email: "ADMIN@example.com", Password: "admin12345"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleAdmin, out.Session.Role)
	assert.Equal(t, "admin@example.com", out.Session.Email)

	stored, err := h.users.FindByEmail(context.Background(), "admin@example.com")
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLogin)
}

func TestAuthService_LoginFailures(t *testing.T) {
	h := newHarness(t)
	srv := h.authService(t)
	ctx := context.Background()

	_, err := srv.Login(ctx, &usecase.LoginInput{Email: "nobody@example.com", Password: "whatever1"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	_, err = srv.Login(ctx, &usecase.LoginInput{Email: "admin@example.com", Password: "wrong-password"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	admin, err := h.users.FindByEmail(ctx, "admin@example.com")
	require.NoError(t, err)
	admin.IsActive = false
	require.NoError(t, h.users.Update(ctx, admin))

	_, err = srv.Login(ctx, &usecase.LoginInput{Email: "admin@example.com", Password: "admin12345"})
	assert.True(t, errors.Is(err, domainerrors.ErrAccountDisabled))
}

func TestAuthService_DevFallbackOnlyOutsideProduction(t *testing.T) {
	h := newHarness(t)
	srv := h.authService(t)

	user := srv.devFallback("admin@example.com", "admin12345")
	require.NotNil(t, user)
	assert.Equal(t, uuid.Nil, user.ID)
	assert.Equal(t, entity.RoleAdmin, user.Role)

	assert.Nil(t, srv.devFallback("admin@example.com", "nope"))

	h.cfg.Env.Env = "production"
	assert.Nil(t, srv.devFallback("admin@example.com", "admin12345"))
}

func TestAuthService_RegisterAndProfile(t *testing.T) {
	h := newHarness(t)
	srv := h.authService(t)
	ctx := context.Background()

	out, err := srv.Register(ctx, &usecase.RegisterInput{Name: "Ravi", Email: "Ravi@Example.com", Password: "sunshine42"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleCustomer, out.User.Role)
	assert.Equal(t, "ravi@example.com", out.User.Email)

	_, err = srv.Register(ctx, &usecase.RegisterInput{Name: "Ravi", Email: "ravi@example.com", Password: "sunshine42"})
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))

	_, err = srv.Register(ctx, &usecase.RegisterInput{Name: "Short", Email: "short@example.com", Password: "abc"})
	assert.True(t, errors.Is(err, domainerrors.ErrPasswordStrength))

	phone := "+15551234567"
	updated, err := srv.UpdateProfile(ctx, out.User.ID, &usecase.UpdateProfileInput{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, phone, updated.Phone)

	me, err := srv.Me(ctx, &out.Session)
	require.NoError(t, err)
	assert.Equal(t, phone, me.Phone)
}

func TestAuthService_ChangePassword(t *testing.T) {
	h := newHarness(t)
	srv := h.authService(t)
	ctx := context.Background()

	out, err := srv.Register(ctx, &usecase.RegisterInput{Name: "Mei", Email: "mei@example.com", Password: "original-pw"})
	require.NoError(t, err)

	err = srv.ChangePassword(ctx, out.User.ID, &usecase.ChangePasswordInput{CurrentPassword: "bad", NewPassword: "brand-new-pw"})
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidCredentials))

	require.NoError(t, srv.ChangePassword(ctx, out.User.ID, &usecase.ChangePasswordInput{
		CurrentPassword: "original-pw", NewPassword: "brand-new-pw",
	}))

	_, err = srv.Login(ctx, &usecase.LoginInput{Email: "mei@example.com", Password: "brand-new-pw"})
	require.NoError(t, err)
}
