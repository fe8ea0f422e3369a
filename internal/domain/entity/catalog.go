package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SeoMeta is the per-page search metadata embedded in catalog records.
type SeoMeta struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Category groups products; ParentID makes categories a tree.
type Category struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Slug         string     `json:"slug"`
	Description  string     `json:"description,omitempty"`
	Image        string     `json:"image,omitempty"`
	VideoURL     string     `json:"videoUrl,omitempty"`
	ParentID     *uuid.UUID `json:"parentId,omitempty"`
	SeoTags      SeoMeta    `json:"seoTags"`
	IsActive     bool       `json:"isActive"`
	DisplayOrder int        `json:"displayOrder"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Product is a sellable catalog item.
type Product struct {
	ID             uuid.UUID       `json:"id"`
	Name           string          `json:"name"`
	Slug           string          `json:"slug"`
	Description    string          `json:"description,omitempty"`
	CategoryID     uuid.UUID       `json:"categoryId"`
	Category       *Category       `json:"category,omitempty"` // Populated on reads.
	Price          decimal.Decimal `json:"price"`
	SalePrice      decimal.Decimal `json:"salePrice"`
	Images         []string        `json:"images"`
	Videos         []string        `json:"videos"`
	Stock          int             `json:"stock"`
	SKU            string          `json:"sku"`
	Specifications map[string]any  `json:"specifications,omitempty"`
	Rating         float64         `json:"rating"`
	ReviewCount    int             `json:"reviewCount"`
	SeoTags        SeoMeta         `json:"seoTags"`
	IsActive       bool            `json:"isActive"`
	DisplayOrder   int             `json:"displayOrder"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// EffectivePrice is the sale price when one is set, otherwise the list price.
func (p *Product) EffectivePrice() decimal.Decimal {
	if p.SalePrice.IsPositive() {
		return p.SalePrice
	}

	return p.Price
}

// ProductSummary is the populated view of a product reference inside line items.
type ProductSummary struct {
	ID    uuid.UUID       `json:"id"`
	Name  string          `json:"name"`
	Slug  string          `json:"slug"`
	SKU   string          `json:"sku"`
	Price decimal.Decimal `json:"price"`
}

// Summary returns the populated view of the product.
func (p *Product) Summary() *ProductSummary {
	return &ProductSummary{
		ID:    p.ID,
		Name:  p.Name,
		Slug:  p.Slug,
		SKU:   p.SKU,
		Price: p.Price,
	}
}
