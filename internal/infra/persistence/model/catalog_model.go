package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// CustomerModel mirrors the 'customers' table.
type CustomerModel struct {
	Base
	Name        string `gorm:"type:varchar(200);not null"`
	Email       string `gorm:"type:varchar(255);not null;index"`
	Phone       string `gorm:"type:varchar(30)"`
	Address     string `gorm:"type:text"`
	CompanyName string `gorm:"type:varchar(200)"`
	GSTNumber   string `gorm:"type:varchar(30)"`
	Segment     string `gorm:"type:varchar(20);not null;default:'residential'"`
	IsActive    bool   `gorm:"not null"`
}

// TableName explicitly sets the table name for GORM.
func (CustomerModel) TableName() string {
	return "customers"
}

// CategoryModel mirrors the 'categories' table. ParentID is a soft self-reference.
type CategoryModel struct {
	Base
	Name         string                      `gorm:"type:varchar(200);not null"`
	Slug         string                      `gorm:"type:varchar(200);uniqueIndex;not null"`
	Description  string                      `gorm:"type:text"`
	Image        string                      `gorm:"type:text"`
	VideoURL     string                      `gorm:"type:text"`
	ParentID     *uuid.UUID                  `gorm:"type:uuid;index"`
	SeoTags      datatypes.JSONType[SeoMeta] `gorm:"not null"`
	IsActive     bool                        `gorm:"not null"`
	DisplayOrder int                         `gorm:"not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (CategoryModel) TableName() string {
	return "categories"
}

// ProductModel mirrors the 'products' table.
type ProductModel struct {
	Base
	Name           string                             `gorm:"type:varchar(200);not null"`
	Slug           string                             `gorm:"type:varchar(200);uniqueIndex;not null"`
	Description    string                             `gorm:"type:text"`
	CategoryID     uuid.UUID                          `gorm:"type:uuid;not null;index"`
	Price          decimal.Decimal                    `gorm:"type:decimal(16,2);not null"`
	SalePrice      decimal.Decimal                    `gorm:"type:decimal(16,2);not null;default:0"`
	Images         datatypes.JSONType[[]string]       `gorm:"not null"`
	Videos         datatypes.JSONType[[]string]       `gorm:"not null"`
	Stock          int                                `gorm:"not null;default:0"`
	SKU            string                             `gorm:"column:sku;type:varchar(100);uniqueIndex;not null"`
	Specifications datatypes.JSONType[map[string]any] `gorm:"not null"`
	Rating         float64                            `gorm:"not null;default:0"`
	ReviewCount    int                                `gorm:"not null;default:0"`
	SeoTags        datatypes.JSONType[SeoMeta]        `gorm:"not null"`
	IsActive       bool                               `gorm:"not null"`
	DisplayOrder   int                                `gorm:"not null;default:0"`
}

// TableName explicitly sets the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}
