package usecase

import (
	"context"

	"solar/internal/domain/entity"
	"solar/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryQuery narrows a category listing. Parent is a slug or id, or
// "root" for top-level categories.
type CategoryQuery struct {
	repository.ListParams
	Parent   string
	IsActive *bool
}

// CategoryInput defines a new category. Parent is a slug or id.
type CategoryInput struct {
	Name         string         `json:"name" validate:"required,max=120"`
	Slug         string         `json:"slug" validate:"required,slug"`
	Description  string         `json:"description"`
	Image        string         `json:"image"`
	VideoURL     string         `json:"videoUrl" validate:"omitempty,url"`
	Parent       string         `json:"parent"`
	SeoTags      entity.SeoMeta `json:"seoTags"`
	IsActive     *bool          `json:"isActive"`
	DisplayOrder int            `json:"displayOrder"`
}

// UpdateCategoryInput is a partial category update. An empty Parent
// string detaches the category from its parent.
type UpdateCategoryInput struct {
	Name         *string         `json:"name" validate:"omitempty,min=1,max=120"`
	Slug         *string         `json:"slug" validate:"omitempty,slug"`
	Description  *string         `json:"description"`
	Image        *string         `json:"image"`
	VideoURL     *string         `json:"videoUrl" validate:"omitempty,url"`
	Parent       *string         `json:"parent"`
	SeoTags      *entity.SeoMeta `json:"seoTags"`
	IsActive     *bool           `json:"isActive"`
	DisplayOrder *int            `json:"displayOrder"`
}

// CategoryUsecase manages product categories.
type CategoryUsecase interface {
	List(ctx context.Context, query CategoryQuery) (*entity.Page[entity.Category], error)
	// Get finds a category by id or slug.
	Get(ctx context.Context, idOrSlug string) (*entity.Category, error)
	Create(ctx context.Context, input *CategoryInput) (*entity.Category, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateCategoryInput) (*entity.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ProductQuery narrows a product listing. Category is a slug or id.
type ProductQuery struct {
	repository.ListParams
	Category string
	IsActive *bool
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
}

// ProductInput defines a new product. Category is a slug or id.
type ProductInput struct {
	Name           string           `json:"name" validate:"required,max=200"`
	Slug           string           `json:"slug" validate:"required,slug"`
	Description    string           `json:"description"`
	Category       string           `json:"category" validate:"required"`
	Price          *decimal.Decimal `json:"price" validate:"required"`
	SalePrice      *decimal.Decimal `json:"salePrice"`
	Images         []string         `json:"images"`
	Videos         []string         `json:"videos"`
	Stock          int              `json:"stock" validate:"min=0"`
	SKU            string           `json:"sku" validate:"required,max=64"`
	Specifications map[string]any   `json:"specifications"`
	Rating         float64          `json:"rating" validate:"min=0,max=5"`
	ReviewCount    int              `json:"reviewCount" validate:"min=0"`
	SeoTags        entity.SeoMeta   `json:"seoTags"`
	IsActive       *bool            `json:"isActive"`
	DisplayOrder   int              `json:"displayOrder"`
}

// UpdateProductInput is a partial product update.
type UpdateProductInput struct {
	Name           *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Slug           *string          `json:"slug" validate:"omitempty,slug"`
	Description    *string          `json:"description"`
	Category       *string          `json:"category" validate:"omitempty,min=1"`
	Price          *decimal.Decimal `json:"price"`
	SalePrice      *decimal.Decimal `json:"salePrice"`
	Images         []string         `json:"images"`
	Videos         []string         `json:"videos"`
	Stock          *int             `json:"stock" validate:"omitempty,min=0"`
	SKU            *string          `json:"sku" validate:"omitempty,min=1,max=64"`
	Specifications map[string]any   `json:"specifications"`
	Rating         *float64         `json:"rating" validate:"omitempty,min=0,max=5"`
	ReviewCount    *int             `json:"reviewCount" validate:"omitempty,min=0"`
	SeoTags        *entity.SeoMeta  `json:"seoTags"`
	IsActive       *bool            `json:"isActive"`
	DisplayOrder   *int             `json:"displayOrder"`
}

// ProductUsecase manages the catalog.
type ProductUsecase interface {
	List(ctx context.Context, query ProductQuery) (*entity.Page[entity.Product], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Product, error)
	Create(ctx context.Context, input *ProductInput) (*entity.Product, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
