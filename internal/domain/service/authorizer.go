package service

import (
	"context"

	"solar/internal/domain/entity"
)

// Authorizer answers role/resource/action questions from the persisted roles.
type Authorizer interface {
	// Can reports whether role may perform action on resource. Unknown roles
	// are evaluated as the viewer role.
	Can(ctx context.Context, role string, resource entity.Resource, action entity.Action) bool

	// Reload rebuilds the policy from the role store.
	Reload(ctx context.Context) error

	// HasRole reports whether a role with this name is loaded.
	HasRole(role string) bool
}
