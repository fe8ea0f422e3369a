package entity

import (
	"time"

	"github.com/google/uuid"
)

// Blog is a published article.
type Blog struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	Excerpt     string     `json:"excerpt,omitempty"`
	Content     string     `json:"content"`
	CoverImage  string     `json:"coverImage,omitempty"`
	Author      string     `json:"author,omitempty"`
	Tags        []string   `json:"tags"`
	IsPublished bool       `json:"isPublished"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	SeoTags     SeoMeta    `json:"seoTags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

// FAQ is a question/answer pair shown on the storefront.
type FAQ struct {
	ID           uuid.UUID `json:"id"`
	Question     string    `json:"question"`
	Answer       string    `json:"answer"`
	Category     string    `json:"category,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CarouselItem is a home-page slide.
type CarouselItem struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Subtitle     string    `json:"subtitle,omitempty"`
	Image        string    `json:"image"`
	Link         string    `json:"link,omitempty"`
	ButtonText   string    `json:"buttonText,omitempty"`
	DisplayOrder int       `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SeoTag is the search metadata for one site path.
type SeoTag struct {
	ID          uuid.UUID `json:"id"`
	Path        string    `json:"path"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Keywords    []string  `json:"keywords"`
	OGImage     string    `json:"ogImage,omitempty"`
	Canonical   string    `json:"canonical,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SiteSetting is the singleton site configuration document.
type SiteSetting struct {
	ID           uuid.UUID         `json:"id"`
	SiteName     string            `json:"siteName"`
	Tagline      string            `json:"tagline,omitempty"`
	Logo         string            `json:"logo,omitempty"`
	Favicon      string            `json:"favicon,omitempty"`
	ContactEmail string            `json:"contactEmail,omitempty"`
	ContactPhone string            `json:"contactPhone,omitempty"`
	Address      string            `json:"address,omitempty"`
	SocialLinks  map[string]string `json:"socialLinks"`
	FooterText   string            `json:"footerText,omitempty"`
	CreatedAt    time.Time         `json:"createdAt"`
	UpdatedAt    time.Time         `json:"updatedAt"`
}
