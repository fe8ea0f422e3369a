package repository

import (
	"context"

	"solar/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryFilter narrows a category listing.
type CategoryFilter struct {
	ListParams
	ParentID *uuid.UUID
	// RootOnly selects categories without a parent; ignored when ParentID is set.
	RootOnly bool
	IsActive *bool
}

// CategoryRepository persists product categories.
type CategoryRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	List(ctx context.Context, filter CategoryFilter) ([]*entity.Category, int64, error)
	Create(ctx context.Context, category *entity.Category) error
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductFilter narrows a product listing.
type ProductFilter struct {
	ListParams
	CategoryID *uuid.UUID
	IsActive   *bool
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// ProductRepository persists products. Reads populate Product.Category.
type ProductRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Product, error)
	// FindByIDs returns the products found; missing ids are skipped.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, int64, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
}
