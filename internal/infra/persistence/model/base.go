package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base carries the primary key and timestamps shared by every table.
// IDs are generated client side so the same schema runs on PostgreSQL and SQLite.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns a time-ordered UUID when none is set.
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID != uuid.Nil {
		return nil
	}

	id, err := uuid.NewV7()
	if err != nil {
		return err
	}
	b.ID = id

	return nil
}

// SeoMeta is the search metadata stored as JSON on catalog tables.
type SeoMeta struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// All lists every model for auto-migration.
func All() []any {
	return []any{
		&UserModel{},
		&RoleModel{},
		&CustomerModel{},
		&CategoryModel{},
		&ProductModel{},
		&QuoteModel{},
		&OrderModel{},
		&InvoiceModel{},
		&BlogModel{},
		&FAQModel{},
		&CarouselItemModel{},
		&SeoTagModel{},
		&SiteSettingModel{},
	}
}
