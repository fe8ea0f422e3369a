package service

import (
	"context"

	"solar/internal/domain/entity"
)

// InvoiceDocument is everything printed on an invoice.
type InvoiceDocument struct {
	Invoice  *entity.Invoice
	Order    *entity.Order
	Customer *entity.Customer
	Seller   *entity.SiteSetting
	Currency string
	// LinkURL is encoded in the QR code; empty omits the code.
	LinkURL string
}

// InvoiceRenderer renders invoices to PDF.
type InvoiceRenderer interface {
	Render(ctx context.Context, doc *InvoiceDocument) ([]byte, error)
}
