package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Amounts are rendered as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// LineItem is one product line of a quote or an order.
// Discount is stored but not applied to any computed total.
type LineItem struct {
	ProductID uuid.UUID       `json:"product"`
	Product   *ProductSummary `json:"productInfo,omitempty"` // Populated on reads.
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	Discount  decimal.Decimal `json:"discount"`
}

// QuoteStatus is the lifecycle state of a quote.
type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusViewed   QuoteStatus = "viewed"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
	QuoteStatusExpired  QuoteStatus = "expired"
)

// IsValid checks if the QuoteStatus is a valid value.
func (s QuoteStatus) IsValid() bool {
	switch s {
	case QuoteStatusDraft, QuoteStatusSent, QuoteStatusViewed,
		QuoteStatusAccepted, QuoteStatusRejected, QuoteStatusExpired:
		return true
	default:
		return false
	}
}

// Quote is a priced, non-binding proposal to a customer.
type Quote struct {
	ID              uuid.UUID       `json:"id"`
	QuoteNumber     string          `json:"quoteNumber"`
	CustomerID      uuid.UUID       `json:"customerId"`
	Customer        *Customer       `json:"customer,omitempty"` // Populated on reads.
	Items           []LineItem      `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	Status          QuoteStatus     `json:"status"`
	ValidUntil      *time.Time      `json:"validUntil,omitempty"`
	SentAt          *time.Time      `json:"sentAt,omitempty"`
	AcceptedAt      *time.Time      `json:"acceptedAt,omitempty"`
	RejectedAt      *time.Time      `json:"rejectedAt,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusConfirmed  OrderStatus = "confirmed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// IsValid checks if the OrderStatus is a valid value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

// IsValid checks if the PaymentStatus is a valid value.
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusPaid, PaymentStatusFailed, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// Order is a confirmed purchase.
type Order struct {
	ID              uuid.UUID       `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	CustomerID      uuid.UUID       `json:"customerId"`
	Customer        *Customer       `json:"customer,omitempty"` // Populated on reads.
	QuoteID         *uuid.UUID      `json:"quoteId,omitempty"`
	Items           []LineItem      `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             decimal.Decimal `json:"tax"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus"`
	OrderStatus     OrderStatus     `json:"orderStatus"`
	InvoiceID       *uuid.UUID      `json:"invoiceId,omitempty"`
	ShippingAddress string          `json:"shippingAddress,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// InvoicePaymentStatus is the settlement state of an invoice.
type InvoicePaymentStatus string

const (
	InvoiceUnpaid  InvoicePaymentStatus = "unpaid"
	InvoicePartial InvoicePaymentStatus = "partial"
	InvoicePaid    InvoicePaymentStatus = "paid"
)

// IsValid checks if the InvoicePaymentStatus is a valid value.
func (s InvoicePaymentStatus) IsValid() bool {
	switch s {
	case InvoiceUnpaid, InvoicePartial, InvoicePaid:
		return true
	default:
		return false
	}
}

// InvoiceItem is one billed line.
type InvoiceItem struct {
	ProductID   *uuid.UUID      `json:"product,omitempty"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Tax         decimal.Decimal `json:"tax"`
	Total       decimal.Decimal `json:"total"`
}

// Invoice is the billing document generated from an order.
type Invoice struct {
	ID            uuid.UUID            `json:"id"`
	InvoiceNumber string               `json:"invoiceNumber"`
	OrderID       uuid.UUID            `json:"orderId"`
	CustomerID    *uuid.UUID           `json:"customerId,omitempty"`
	IssueDate     time.Time            `json:"issueDate"`
	DueDate       *time.Time           `json:"dueDate,omitempty"`
	PaidDate      *time.Time           `json:"paidDate,omitempty"`
	Items         []InvoiceItem        `json:"items"`
	Subtotal      decimal.Decimal      `json:"subtotal"`
	Tax           decimal.Decimal      `json:"tax"`
	TotalAmount   decimal.Decimal      `json:"totalAmount"`
	PaymentStatus InvoicePaymentStatus `json:"paymentStatus"`
	PDFURL        string               `json:"pdfUrl,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}
