package authz

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"solar/internal/domain/entity"
	"solar/internal/domain/repository"
	"solar/internal/infra/persistence/postgres"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRoles(t *testing.T) repository.RoleRepository {
	t.Helper()

	db, err := postgres.OpenMemory("")
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	roles := postgres.NewRoleRepository(db)
	for _, role := range entity.BuiltinRoles() {
		require.NoError(t, roles.Create(context.Background(), role))
	}

	return roles
}

func newTestAuthorizer(t *testing.T, roles repository.RoleRepository) *casbinAuthorizer {
	t.Helper()

	a, err := New(Params{Roles: roles, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	return a.(*casbinAuthorizer)
}

func TestAuthorizer_BuiltinRoles(t *testing.T) {
	a := newTestAuthorizer(t, newTestRoles(t))
	ctx := context.Background()

	for _, resource := range entity.Resources() {
		for _, action := range entity.Actions() {
			assert.True(t, a.Can(ctx, entity.RoleAdmin, resource, action), "admin %s %s", resource, action)
		}
	}

	assert.True(t, a.Can(ctx, entity.RoleViewer, entity.ResourceProducts, entity.ActionRead))
	assert.False(t, a.Can(ctx, entity.RoleViewer, entity.ResourceCategories, entity.ActionCreate))
	assert.False(t, a.Can(ctx, entity.RoleViewer, entity.ResourceUsers, entity.ActionRead))

	assert.True(t, a.Can(ctx, entity.RoleCustomer, entity.ResourceQuotes, entity.ActionCreate))
	assert.False(t, a.Can(ctx, entity.RoleCustomer, entity.ResourceQuotes, entity.ActionRead))
	assert.False(t, a.Can(ctx, entity.RoleCustomer, entity.ResourceOrders, entity.ActionUpdate))
}

func TestAuthorizer_UngrantedIsDenied(t *testing.T) {
	a := newTestAuthorizer(t, newTestRoles(t))
	ctx := context.Background()

	for _, role := range entity.BuiltinRoles() {
		for _, resource := range entity.Resources() {
			grant := role.Permissions[resource]
			for _, action := range entity.Actions() {
				assert.Equal(t, grant.Allows(action), a.Can(ctx, role.Name, resource, action),
					"%s %s %s", role.Name, resource, action)
			}
		}
	}
}

func TestAuthorizer_UnknownRoleFallsBackToViewer(t *testing.T) {
	a := newTestAuthorizer(t, newTestRoles(t))
	ctx := context.Background()

	assert.False(t, a.HasRole("adminn"))
	assert.True(t, a.Can(ctx, "adminn", entity.ResourceBlogs, entity.ActionRead))
	assert.False(t, a.Can(ctx, "adminn", entity.ResourceBlogs, entity.ActionDelete))
	assert.False(t, a.Can(ctx, "", entity.ResourceRoles, entity.ActionRead))
}

func TestAuthorizer_ReloadPicksUpRoleChanges(t *testing.T) {
	roles := newTestRoles(t)
	a := newTestAuthorizer(t, roles)
	ctx := context.Background()

	editor := &entity.Role{
		Name: "editor",
		Permissions: map[entity.Resource]entity.Grant{
			entity.ResourceBlogs: {Create: true, Read: true, Update: true},
		},
	}
	require.NoError(t, roles.Create(ctx, editor))

	assert.False(t, a.HasRole("editor"))
	assert.False(t, a.Can(ctx, "editor", entity.ResourceBlogs, entity.ActionCreate))

	require.NoError(t, a.Reload(ctx))
	assert.True(t, a.HasRole("editor"))
	assert.True(t, a.Can(ctx, "editor", entity.ResourceBlogs, entity.ActionCreate))
	assert.False(t, a.Can(ctx, "editor", entity.ResourceBlogs, entity.ActionDelete))

	require.NoError(t, roles.Delete(ctx, editor.ID))
	require.NoError(t, a.Reload(ctx))
	assert.False(t, a.HasRole("editor"))
	assert.False(t, a.Can(ctx, "editor", entity.ResourceBlogs, entity.ActionCreate))
}

func TestPolicyRules(t *testing.T) {
	role := &entity.Role{
		Name: "r",
		Permissions: map[entity.Resource]entity.Grant{
			entity.ResourceFAQs: {Read: true, Delete: true},
		},
	}

	rules := policyRules(role)
	assert.ElementsMatch(t, [][]string{{"r", "faqs", "read"}, {"r", "faqs", "delete"}}, rules)
}
