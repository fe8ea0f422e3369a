package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// LineItem is the stored form of a quote or order line.
type LineItem struct {
	ProductID uuid.UUID       `json:"product"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
}

// QuoteModel mirrors the 'quotes' table. CustomerID is a soft reference.
type QuoteModel struct {
	Base
	QuoteNumber     string                         `gorm:"type:varchar(40);uniqueIndex;not null"`
	CustomerID      uuid.UUID                      `gorm:"type:uuid;not null;index"`
	Items           datatypes.JSONType[[]LineItem] `gorm:"not null"`
	Subtotal        decimal.Decimal                `gorm:"type:decimal(16,2);not null"`
	Tax             decimal.Decimal                `gorm:"type:decimal(16,2);not null"`
	TotalAmount     decimal.Decimal                `gorm:"type:decimal(16,2);not null"`
	Status          string                         `gorm:"type:varchar(20);not null;index"`
	ValidUntil      *time.Time
	SentAt          *time.Time
	AcceptedAt      *time.Time
	RejectedAt      *time.Time
	RejectionReason string `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (QuoteModel) TableName() string {
	return "quotes"
}

// OrderModel mirrors the 'orders' table.
type OrderModel struct {
	Base
	OrderNumber     string                         `gorm:"type:varchar(40);uniqueIndex;not null"`
	CustomerID      uuid.UUID                      `gorm:"type:uuid;not null;index"`
	QuoteID         *uuid.UUID                     `gorm:"type:uuid;index"`
	Items           datatypes.JSONType[[]LineItem] `gorm:"not null"`
	Subtotal        decimal.Decimal                `gorm:"type:decimal(16,2);not null"`
	Tax             decimal.Decimal                `gorm:"type:decimal(16,2);not null"`
	TotalAmount     decimal.Decimal                `gorm:"type:decimal(16,2);not null"`
	PaymentStatus   string                         `gorm:"type:varchar(20);not null;index"`
	OrderStatus     string                         `gorm:"type:varchar(20);not null;index"`
	InvoiceID       *uuid.UUID                     `gorm:"type:uuid"`
	ShippingAddress string                         `gorm:"type:text"`
	Notes           string                         `gorm:"type:text"`
}

// TableName explicitly sets the table name for GORM.
func (OrderModel) TableName() string {
	return "orders"
}

// InvoiceItem is the stored form of an invoice line.
type InvoiceItem struct {
	ProductID   *uuid.UUID      `json:"product,omitempty"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// InvoiceModel mirrors the 'invoices' table. PDFURL may hold an inline data URL.
type InvoiceModel struct {
	Base
	InvoiceNumber string     `gorm:"type:varchar(40);uniqueIndex;not null"`
	OrderID       uuid.UUID  `gorm:"type:uuid;not null;index"`
	CustomerID    *uuid.UUID `gorm:"type:uuid;index"`
	IssueDate     time.Time  `gorm:"not null"`
	DueDate       *time.Time
	PaidDate      *time.Time
	Items         datatypes.JSONType[[]InvoiceItem] `gorm:"not null"`
	Subtotal      decimal.Decimal                   `gorm:"type:decimal(16,2);not null"`
	Tax           decimal.Decimal                   `gorm:"type:decimal(16,2);not null"`
	TotalAmount   decimal.Decimal                   `gorm:"type:decimal(16,2);not null"`
	PaymentStatus string                            `gorm:"type:varchar(20);not null;index"`
	PDFURL        string                            `gorm:"column:pdf_url;type:text"`
}

// TableName explicitly sets the table name for GORM.
func (InvoiceModel) TableName() string {
	return "invoices"
}
