package repository

import (
	"context"

	"solar/internal/domain/entity"

	"github.com/google/uuid"
)

// BlogFilter narrows a blog listing.
type BlogFilter struct {
	ListParams
	Published *bool
	Tag       string
}

type BlogRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Blog, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Blog, error)
	List(ctx context.Context, filter BlogFilter) ([]*entity.Blog, int64, error)
	Create(ctx context.Context, blog *entity.Blog) error
	Update(ctx context.Context, blog *entity.Blog) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// FAQFilter narrows a FAQ listing.
type FAQFilter struct {
	ListParams
	Category string
	IsActive *bool
}

type FAQRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.FAQ, error)
	List(ctx context.Context, filter FAQFilter) ([]*entity.FAQ, int64, error)
	Create(ctx context.Context, faq *entity.FAQ) error
	Update(ctx context.Context, faq *entity.FAQ) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// CarouselFilter narrows a carousel listing.
type CarouselFilter struct {
	ListParams
	IsActive *bool
}

type CarouselRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.CarouselItem, error)
	List(ctx context.Context, filter CarouselFilter) ([]*entity.CarouselItem, int64, error)
	Create(ctx context.Context, item *entity.CarouselItem) error
	Update(ctx context.Context, item *entity.CarouselItem) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type SeoTagRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SeoTag, error)
	FindByPath(ctx context.Context, path string) (*entity.SeoTag, error)
	List(ctx context.Context, params ListParams) ([]*entity.SeoTag, int64, error)
	Create(ctx context.Context, tag *entity.SeoTag) error
	Update(ctx context.Context, tag *entity.SeoTag) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// SiteSettingRepository holds the single site settings document.
type SiteSettingRepository interface {
	// Get returns the settings, or a NotFound error before the first Upsert.
	Get(ctx context.Context) (*entity.SiteSetting, error)
	// Upsert creates the document or replaces the existing one.
	Upsert(ctx context.Context, setting *entity.SiteSetting) error
}
