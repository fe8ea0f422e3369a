package usecase

import (
	"context"
	"time"

	"solar/internal/domain/entity"
	"solar/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItemInput is one requested line. A nil Price takes the product's
// sale price when set, otherwise its list price.
type LineItemInput struct {
	Product  uuid.UUID        `json:"product" validate:"required"`
	Quantity int              `json:"quantity" validate:"required,min=1"`
	Price    *decimal.Decimal `json:"price"`
	Discount decimal.Decimal  `json:"discount"`
}

// CreateQuoteInput defines a new draft quote. A nil Tax is computed from
// the configured rate.
type CreateQuoteInput struct {
	CustomerID uuid.UUID        `json:"customerId" validate:"required"`
	Items      []LineItemInput  `json:"items" validate:"required,min=1,dive"`
	Tax        *decimal.Decimal `json:"tax"`
	ValidUntil *time.Time       `json:"validUntil"`
}

// UpdateQuoteInput is a partial quote update. Changing Items or Tax
// recomputes the totals.
type UpdateQuoteInput struct {
	Status          *entity.QuoteStatus `json:"status" validate:"omitempty,oneof=draft sent viewed accepted rejected expired"`
	RejectionReason *string             `json:"rejectionReason"`
	ValidUntil      *time.Time          `json:"validUntil"`
	Items           []LineItemInput     `json:"items" validate:"omitempty,min=1,dive"`
	Tax             *decimal.Decimal    `json:"tax"`
}

// AcceptQuoteOutput is the accepted quote and the order created from it.
type AcceptQuoteOutput struct {
	Quote *entity.Quote `json:"quote"`
	Order *entity.Order `json:"order"`
}

// QuoteUsecase runs the quote lifecycle.
type QuoteUsecase interface {
	List(ctx context.Context, filter repository.QuoteFilter) (*entity.Page[entity.Quote], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	Create(ctx context.Context, input *CreateQuoteInput) (*entity.Quote, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateQuoteInput) (*entity.Quote, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// Send emails the quote to its customer and marks it sent. A delivery
	// failure leaves the quote unchanged.
	Send(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	// Accept creates exactly one order from the quote, atomically with
	// marking it accepted.
	Accept(ctx context.Context, id uuid.UUID) (*AcceptQuoteOutput, error)
}

// CreateOrderInput defines an order entered directly by staff.
type CreateOrderInput struct {
	CustomerID      uuid.UUID        `json:"customerId" validate:"required"`
	Items           []LineItemInput  `json:"items" validate:"required,min=1,dive"`
	Tax             *decimal.Decimal `json:"tax"`
	ShippingAddress string           `json:"shippingAddress"`
	Notes           string           `json:"notes"`
}

// UpdateOrderInput is a partial order update. Statuses may move freely
// between any of their values.
type UpdateOrderInput struct {
	OrderStatus     *entity.OrderStatus   `json:"orderStatus" validate:"omitempty,oneof=pending confirmed processing shipped delivered cancelled"`
	PaymentStatus   *entity.PaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=pending paid failed refunded"`
	ShippingAddress *string               `json:"shippingAddress"`
	Notes           *string               `json:"notes"`
}

// OrderUsecase manages orders.
type OrderUsecase interface {
	List(ctx context.Context, filter repository.OrderFilter) (*entity.Page[entity.Order], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	Create(ctx context.Context, input *CreateOrderInput) (*entity.Order, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateOrderInput) (*entity.Order, error)
	// Delete removes the order and its invoices together.
	Delete(ctx context.Context, id uuid.UUID) error
}

// GenerateInvoiceOutput is a new invoice and where its PDF can be fetched.
type GenerateInvoiceOutput struct {
	Invoice *entity.Invoice `json:"invoice"`
	PDFURL  string          `json:"pdfUrl"`
}

// UpdateInvoiceInput is a partial invoice update. Setting the status to
// paid without a PaidDate stamps the current time.
type UpdateInvoiceInput struct {
	PaymentStatus *entity.InvoicePaymentStatus `json:"paymentStatus" validate:"omitempty,oneof=unpaid partial paid"`
	PaidDate      *time.Time                   `json:"paidDate"`
	DueDate       *time.Time                   `json:"dueDate"`
}

// InvoiceUsecase generates and manages invoices.
type InvoiceUsecase interface {
	Generate(ctx context.Context, orderID uuid.UUID) (*GenerateInvoiceOutput, error)
	List(ctx context.Context, filter repository.InvoiceFilter) (*entity.Page[entity.Invoice], error)
	Get(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	Update(ctx context.Context, id uuid.UUID, input *UpdateInvoiceInput) (*entity.Invoice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
