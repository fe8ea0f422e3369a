// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"solar/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterInput defines the data required to register a storefront account.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,max=120"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Phone    string `json:"phone" validate:"omitempty,max=32"`
}

// UpdateProfileInput carries the self-editable profile fields.
type UpdateProfileInput struct {
	Name  *string `json:"name" validate:"omitempty,min=1,max=120"`
	Phone *string `json:"phone" validate:"omitempty,max=32"`
}

// ChangePasswordInput carries a password change of the signed-in user.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// --- Output DTOs ---

// SessionOutput is a signed-in identity and the token that carries it.
type SessionOutput struct {
	User    *entity.User
	Session entity.SessionData
	Token   string
}

// AuthUsecase covers sign-in and the signed-in user's own account.
type AuthUsecase interface {
	Login(ctx context.Context, input *LoginInput) (*SessionOutput, error)
	// Register creates a customer-role user and signs it in.
	Register(ctx context.Context, input *RegisterInput) (*SessionOutput, error)
	Me(ctx context.Context, session *entity.SessionData) (*entity.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, input *UpdateProfileInput) (*entity.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, input *ChangePasswordInput) error
}
