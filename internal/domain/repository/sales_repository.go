package repository

import (
	"context"

	"solar/internal/domain/entity"

	"github.com/google/uuid"
)

// CustomerFilter narrows a customer listing.
type CustomerFilter struct {
	ListParams
	Segment  entity.Segment
	IsActive *bool
}

// CustomerRepository persists customers. Deleting one never touches its
// quotes or orders.
type CustomerRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]*entity.Customer, int64, error)
	Create(ctx context.Context, customer *entity.Customer) error
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// QuoteFilter narrows a quote listing.
type QuoteFilter struct {
	ListParams
	Status     entity.QuoteStatus
	CustomerID *uuid.UUID
}

// QuoteRepository persists quotes. Reads populate the customer and the
// product summary of each item.
type QuoteRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error)
	List(ctx context.Context, filter QuoteFilter) ([]*entity.Quote, int64, error)
	Create(ctx context.Context, quote *entity.Quote) error
	Update(ctx context.Context, quote *entity.Quote) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// OrderFilter narrows an order listing.
type OrderFilter struct {
	ListParams
	OrderStatus   entity.OrderStatus
	PaymentStatus entity.PaymentStatus
	CustomerID    *uuid.UUID
}

// OrderRepository persists orders. Reads populate the customer and the
// product summary of each item.
type OrderRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)
	FindByQuoteID(ctx context.Context, quoteID uuid.UUID) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, int64, error)
	Create(ctx context.Context, order *entity.Order) error
	Update(ctx context.Context, order *entity.Order) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// InvoiceFilter narrows an invoice listing.
type InvoiceFilter struct {
	ListParams
	OrderID       *uuid.UUID
	PaymentStatus entity.InvoicePaymentStatus
}

// InvoiceRepository persists invoices.
type InvoiceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error)
	List(ctx context.Context, filter InvoiceFilter) ([]*entity.Invoice, int64, error)
	Create(ctx context.Context, invoice *entity.Invoice) error
	Update(ctx context.Context, invoice *entity.Invoice) error
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByOrderID removes every invoice of an order and reports how many went.
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error)
}
