package usecase

import (
	"context"
	"time"

	"solar/internal/domain/entity"
	"solar/internal/domain/repository"
	"solar/internal/domain/service"

	"github.com/google/uuid"
)

// BlogInput defines a new article.
type BlogInput struct {
	Title       string         `json:"title" validate:"required,max=200"`
	Slug        string         `json:"slug" validate:"required,slug"`
	Excerpt     string         `json:"excerpt" validate:"max=500"`
	Content     string         `json:"content" validate:"required"`
	CoverImage  string         `json:"coverImage"`
	Author      string         `json:"author" validate:"max=120"`
	Tags        []string       `json:"tags"`
	IsPublished bool           `json:"isPublished"`
	PublishedAt *time.Time     `json:"publishedAt"`
	SeoTags     entity.SeoMeta `json:"seoTags"`
}

// UpdateBlogInput is a partial article update. Publishing an article
// without a date stamps the current time.
type UpdateBlogInput struct {
	Title       *string         `json:"title" validate:"omitempty,min=1,max=200"`
	Slug        *string         `json:"slug" validate:"omitempty,slug"`
	Excerpt     *string         `json:"excerpt" validate:"omitempty,max=500"`
	Content     *string         `json:"content" validate:"omitempty,min=1"`
	CoverImage  *string         `json:"coverImage"`
	Author      *string         `json:"author" validate:"omitempty,max=120"`
	Tags        []string        `json:"tags"`
	IsPublished *bool           `json:"isPublished"`
	PublishedAt *time.Time      `json:"publishedAt"`
	SeoTags     *entity.SeoMeta `json:"seoTags"`
}

// BlogUsecase manages articles.
type BlogUsecase interface {
	List(ctx context.Context, filter repository.BlogFilter) (*entity.Page[entity.Blog], error)
	// Get finds an article by id or slug.
	Get(ctx context.Context, idOrSlug string) (*entity.Blog, error)
	Create(ctx context.Context, input *BlogInput) (*entity.Blog, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateBlogInput) (*entity.Blog, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// FAQInput defines a question and its answer.
type FAQInput struct {
	Question     string `json:"question" validate:"required,max=500"`
	Answer       string `json:"answer" validate:"required"`
	Category     string `json:"category" validate:"max=120"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
}

// UpdateFAQInput is a partial FAQ update.
type UpdateFAQInput struct {
	Question     *string `json:"question" validate:"omitempty,min=1,max=500"`
	Answer       *string `json:"answer" validate:"omitempty,min=1"`
	Category     *string `json:"category" validate:"omitempty,max=120"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

// FAQUsecase manages FAQs.
type FAQUsecase interface {
	List(ctx context.Context, filter repository.FAQFilter) (*entity.Page[entity.FAQ], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.FAQ, error)
	Create(ctx context.Context, input *FAQInput) (*entity.FAQ, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateFAQInput) (*entity.FAQ, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// CarouselInput defines a home-page slide.
type CarouselInput struct {
	Title        string `json:"title" validate:"required,max=200"`
	Subtitle     string `json:"subtitle" validate:"max=300"`
	Image        string `json:"image" validate:"required"`
	Link         string `json:"link"`
	ButtonText   string `json:"buttonText" validate:"max=60"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
}

// UpdateCarouselInput is a partial slide update.
type UpdateCarouselInput struct {
	Title        *string `json:"title" validate:"omitempty,min=1,max=200"`
	Subtitle     *string `json:"subtitle" validate:"omitempty,max=300"`
	Image        *string `json:"image" validate:"omitempty,min=1"`
	Link         *string `json:"link"`
	ButtonText   *string `json:"buttonText" validate:"omitempty,max=60"`
	DisplayOrder *int    `json:"displayOrder"`
	IsActive     *bool   `json:"isActive"`
}

// CarouselUsecase manages home-page slides.
type CarouselUsecase interface {
	List(ctx context.Context, filter repository.CarouselFilter) (*entity.Page[entity.CarouselItem], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.CarouselItem, error)
	Create(ctx context.Context, input *CarouselInput) (*entity.CarouselItem, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateCarouselInput) (*entity.CarouselItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SeoTagInput defines the metadata of one site path.
type SeoTagInput struct {
	Path        string   `json:"path" validate:"required,startswith=/"`
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=500"`
	Keywords    []string `json:"keywords"`
	OGImage     string   `json:"ogImage"`
	Canonical   string   `json:"canonical" validate:"omitempty,url"`
}

// UpdateSeoTagInput is a partial SEO tag update.
type UpdateSeoTagInput struct {
	Path        *string  `json:"path" validate:"omitempty,startswith=/"`
	Title       *string  `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string  `json:"description" validate:"omitempty,max=500"`
	Keywords    []string `json:"keywords"`
	OGImage     *string  `json:"ogImage"`
	Canonical   *string  `json:"canonical" validate:"omitempty,url"`
}

// SeoTagUsecase manages per-path search metadata.
type SeoTagUsecase interface {
	List(ctx context.Context, params repository.ListParams) (*entity.Page[entity.SeoTag], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.SeoTag, error)
	GetByPath(ctx context.Context, path string) (*entity.SeoTag, error)
	Create(ctx context.Context, input *SeoTagInput) (*entity.SeoTag, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateSeoTagInput) (*entity.SeoTag, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// SiteSettingInput replaces the site settings document.
type SiteSettingInput struct {
	SiteName     string            `json:"siteName" validate:"required,max=120"`
	Tagline      string            `json:"tagline" validate:"max=200"`
	Logo         string            `json:"logo"`
	Favicon      string            `json:"favicon"`
	ContactEmail string            `json:"contactEmail" validate:"omitempty,email"`
	ContactPhone string            `json:"contactPhone" validate:"max=32"`
	Address      string            `json:"address"`
	SocialLinks  map[string]string `json:"socialLinks"`
	FooterText   string            `json:"footerText"`
}

// SettingsUsecase reads and replaces the singleton site settings.
type SettingsUsecase interface {
	// Get returns the stored settings, or defaults before the first save.
	Get(ctx context.Context) (*entity.SiteSetting, error)
	Upsert(ctx context.Context, input *SiteSettingInput) (*entity.SiteSetting, error)
}

// UploadInput is one received file.
type UploadInput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// MediaUsecase stores uploaded files.
type MediaUsecase interface {
	Upload(ctx context.Context, input *UploadInput) (*service.StoredObject, error)
}
