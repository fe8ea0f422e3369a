// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"solar/internal/domain/entity"

	"github.com/google/uuid"
)

// UserFilter narrows a user listing.
type UserFilter struct {
	ListParams
	Role     string
	IsActive *bool
}

// UserRepository defines the standard operations for user persistence.
// The application layer will depend on this interface, not the concrete implementation.
type UserRepository interface {
	// FindByID retrieves a single user by their unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a single user by their (normalized) email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	List(ctx context.Context, filter UserFilter) ([]*entity.User, int64, error)

	// CountByRole reports how many users carry the given role name.
	CountByRole(ctx context.Context, role string) (int64, error)

	// Create persists a new user entity to the storage.
	Create(ctx context.Context, user *entity.User) error

	// Update modifies an existing user entity in the storage.
	Update(ctx context.Context, user *entity.User) error

	// UpdateLastLogin stamps the login time without touching other columns.
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error

	Delete(ctx context.Context, id uuid.UUID) error
}

// RoleRepository persists the role documents that back authorization.
type RoleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Role, error)
	FindByName(ctx context.Context, name string) (*entity.Role, error)
	List(ctx context.Context, params ListParams) ([]*entity.Role, int64, error)
	// ListAll returns every role; the authorizer loads its policy from it.
	ListAll(ctx context.Context) ([]*entity.Role, error)
	Create(ctx context.Context, role *entity.Role) error
	Update(ctx context.Context, role *entity.Role) error
	Delete(ctx context.Context, id uuid.UUID) error
}
