package usecase

import (
	"context"

	"solar/internal/domain/entity"
	"solar/internal/domain/repository"

	"github.com/google/uuid"
)

// CustomerInput defines a new customer record.
type CustomerInput struct {
	Name        string         `json:"name" validate:"required,max=120"`
	Email       string         `json:"email" validate:"required,email"`
	Phone       string         `json:"phone" validate:"omitempty,max=32"`
	Address     string         `json:"address"`
	CompanyName string         `json:"companyName" validate:"max=200"`
	GSTNumber   string         `json:"gstNumber" validate:"max=20"`
	Segment     entity.Segment `json:"segment" validate:"omitempty,oneof=residential commercial industrial"`
	IsActive    *bool          `json:"isActive"`
}

// UpdateCustomerInput is a partial customer update.
type UpdateCustomerInput struct {
	Name        *string         `json:"name" validate:"omitempty,min=1,max=120"`
	Email       *string         `json:"email" validate:"omitempty,email"`
	Phone       *string         `json:"phone" validate:"omitempty,max=32"`
	Address     *string         `json:"address"`
	CompanyName *string         `json:"companyName" validate:"omitempty,max=200"`
	GSTNumber   *string         `json:"gstNumber" validate:"omitempty,max=20"`
	Segment     *entity.Segment `json:"segment" validate:"omitempty,oneof=residential commercial industrial"`
	IsActive    *bool           `json:"isActive"`
}

// CustomerUsecase manages buyer records.
type CustomerUsecase interface {
	List(ctx context.Context, filter repository.CustomerFilter) (*entity.Page[entity.Customer], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Create(ctx context.Context, input *CustomerInput) (*entity.Customer, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error)
	// Delete removes the customer only; its quotes and orders stay.
	Delete(ctx context.Context, id uuid.UUID) error
}
