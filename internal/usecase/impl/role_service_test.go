package impl

import (
	"context"
	"testing"

	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/errors"
	"solar/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (h *harness) roleService() *roleService {
	return NewRoleService(RoleServiceParams{
		TxManager: h.tx, RoleRepo: h.roles, Authorizer: h.authorizer, Logger: h.logger,
	}).(*roleService)
}

func (h *harness) userService() *userService {
	return NewUserService(UserServiceParams{
		UserRepo: h.users, Hasher: h.hasher, Authorizer: h.authorizer, Config: h.cfg, Logger: h.logger,
	}).(*userService)
}

func TestSeed_IsIdempotent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	require.NoError(t, h.seedService().Seed(ctx))

	roles, err := h.roles.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, roles, len(entity.BuiltinRoles()))

	count, err := h.users.CountByRole(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestRoleService_CreateReloadsAuthorizer(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	assert.False(t, h.authorizer.Can(ctx, "editor", entity.ResourceBlogs, entity.ActionCreate))

	role, err := h.roleService().Create(ctx, &usecase.RoleInput{
		Name:        "editor",
		Permissions: map[entity.Resource]entity.Grant{entity.ResourceBlogs: {Create: true, Read: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, "editor", role.Name)

	assert.True(t, h.authorizer.HasRole("editor"))
	assert.True(t, h.authorizer.Can(ctx, "editor", entity.ResourceBlogs, entity.ActionCreate))
	assert.False(t, h.authorizer.Can(ctx, "editor", entity.ResourceBlogs, entity.ActionDelete))
}

func TestRoleService_RejectsUnknownResource(t *testing.T) {
	h := newHarness(t)

	_, err := h.roleService().Create(context.Background(), &usecase.RoleInput{
		Name:        "odd",
		Permissions: map[entity.Resource]entity.Grant{"spaceships": {Read: true}},
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestRoleService_BuiltinAndAssignedRolesAreProtected(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	roles := h.roleService()

	admin, err := h.roles.FindByName(ctx, entity.RoleAdmin)
	require.NoError(t, err)
	err = roles.Delete(ctx, admin.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrBuiltinRole))

	editor, err := roles.Create(ctx, &usecase.RoleInput{Name: "editor"})
	require.NoError(t, err)

	_, err = h.userService().Create(ctx, &usecase.CreateUserInput{
		Email: "ed@example.com", Password: "editor-pass", Name: "Ed", Role: "editor",
	})
	require.NoError(t, err)

	err = roles.Delete(ctx, editor.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrConflict))

	renamed := "writer"
	_, err = roles.Update(ctx, editor.ID, &usecase.UpdateRoleInput{Name: &renamed})
	assert.True(t, errors.Is(err, domainerrors.ErrConflict))
}

func TestRoleService_DeleteUnusedRole(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	roles := h.roleService()

	temp, err := roles.Create(ctx, &usecase.RoleInput{Name: "temp"})
	require.NoError(t, err)
	require.True(t, h.authorizer.HasRole("temp"))

	require.NoError(t, roles.Delete(ctx, temp.ID))
	assert.False(t, h.authorizer.HasRole("temp"))
}

func TestUserService_RoleMustExist(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	users := h.userService()

	_, err := users.Create(ctx, &usecase.CreateUserInput{
		Email: "x@example.com", Password: "long-enough", Name: "X", Role: "ghost",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrUnknownRole))

	user, err := users.Create(ctx, &usecase.CreateUserInput{
		Email: "x@example.com", Password: "long-enough", Name: "X", Role: entity.RoleViewer,
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)

	ghost := "ghost"
	_, err = users.Update(ctx, user.ID, &usecase.UpdateUserInput{Role: &ghost})
	assert.True(t, errors.Is(err, domainerrors.ErrUnknownRole))
}
