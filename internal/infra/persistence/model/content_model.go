package model

import (
	"time"

	"gorm.io/datatypes"
)

// BlogModel mirrors the 'blogs' table.
type BlogModel struct {
	Base
	Title       string                       `gorm:"type:varchar(300);not null"`
	Slug        string                       `gorm:"type:varchar(300);uniqueIndex;not null"`
	Excerpt     string                       `gorm:"type:text"`
	Content     string                       `gorm:"type:text;not null"`
	CoverImage  string                       `gorm:"type:text"`
	Author      string                       `gorm:"type:varchar(200)"`
	Tags        datatypes.JSONType[[]string] `gorm:"not null"`
	IsPublished bool                         `gorm:"not null;default:false;index"`
	PublishedAt *time.Time
	SeoTags     datatypes.JSONType[SeoMeta] `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (BlogModel) TableName() string {
	return "blogs"
}

// FAQModel mirrors the 'faqs' table.
type FAQModel struct {
	Base
	Question     string `gorm:"type:text;not null"`
	Answer       string `gorm:"type:text;not null"`
	Category     string `gorm:"type:varchar(100);index"`
	DisplayOrder int    `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (FAQModel) TableName() string {
	return "faqs"
}

// CarouselItemModel mirrors the 'carousel_items' table.
type CarouselItemModel struct {
	Base
	Title        string `gorm:"type:varchar(200);not null"`
	Subtitle     string `gorm:"type:text"`
	Image        string `gorm:"type:text;not null"`
	Link         string `gorm:"type:text"`
	ButtonText   string `gorm:"type:varchar(100)"`
	DisplayOrder int    `gorm:"not null;default:0"`
	IsActive     bool   `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (CarouselItemModel) TableName() string {
	return "carousel_items"
}

// SeoTagModel mirrors the 'seo_tags' table.
type SeoTagModel struct {
	Base
	Path        string                       `gorm:"type:varchar(300);uniqueIndex;not null"`
	Title       string                       `gorm:"type:varchar(300);not null"`
	Description string                       `gorm:"type:text"`
	Keywords    datatypes.JSONType[[]string] `gorm:"not null"`
	OGImage     string                       `gorm:"column:og_image;type:text"`
	Canonical   string                       `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (SeoTagModel) TableName() string {
	return "seo_tags"
}

// SiteSettingModel mirrors the single-row 'site_settings' table.
type SiteSettingModel struct {
	Base
	SiteName     string                                `gorm:"type:varchar(200);not null"`
	Tagline      string                                `gorm:"type:text"`
	Logo         string                                `gorm:"type:text"`
	Favicon      string                                `gorm:"type:text"`
	ContactEmail string                                `gorm:"type:varchar(255)"`
	ContactPhone string                                `gorm:"type:varchar(30)"`
	Address      string                                `gorm:"type:text"`
	SocialLinks  datatypes.JSONType[map[string]string] `gorm:"not null"`
	FooterText   string                                `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (SiteSettingModel) TableName() string {
	return "site_settings"
}
