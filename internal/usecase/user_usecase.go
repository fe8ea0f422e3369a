package usecase

import (
	"context"

	"solar/internal/domain/entity"
	"solar/internal/domain/repository"

	"github.com/google/uuid"
)

// CreateUserInput defines an account created by an administrator.
type CreateUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name" validate:"required,max=120"`
	Role     string `json:"role" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
	IsActive *bool  `json:"isActive"`
}

// UpdateUserInput is a partial account update; nil fields are left unchanged.
type UpdateUserInput struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=120"`
	Role     *string `json:"role" validate:"omitempty,min=1"`
	Phone    *string `json:"phone" validate:"omitempty,max=32"`
	IsActive *bool   `json:"isActive"`
}

// UserUsecase manages login accounts.
type UserUsecase interface {
	List(ctx context.Context, filter repository.UserFilter) (*entity.Page[entity.User], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Create(ctx context.Context, input *CreateUserInput) (*entity.User, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateUserInput) (*entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// RoleInput defines a role document.
type RoleInput struct {
	Name        string                           `json:"name" validate:"required,max=64"`
	Description string                           `json:"description" validate:"max=255"`
	Permissions map[entity.Resource]entity.Grant `json:"permissions"`
}

// UpdateRoleInput is a partial role update. A non-nil Permissions map
// replaces the whole matrix of the role.
type UpdateRoleInput struct {
	Name        *string                          `json:"name" validate:"omitempty,min=1,max=64"`
	Description *string                          `json:"description" validate:"omitempty,max=255"`
	Permissions map[entity.Resource]entity.Grant `json:"permissions"`
}

// RoleUsecase manages the role documents. Every change reloads the authorizer.
type RoleUsecase interface {
	List(ctx context.Context, params repository.ListParams) (*entity.Page[entity.Role], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Role, error)
	Create(ctx context.Context, input *RoleInput) (*entity.Role, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateRoleInput) (*entity.Role, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SeedUsecase prepares a fresh database.
type SeedUsecase interface {
	// Seed creates missing built-in roles and the configured admin account.
	Seed(ctx context.Context) error
}
