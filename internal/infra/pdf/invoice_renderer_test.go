package pdf

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"solar/internal/domain/entity"
	"solar/internal/domain/service"
	"solar/internal/infra/qrcode"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingQR struct{}

func (failingQR) GeneratePNG(string) ([]byte, error) {
	return nil, errors.New("qr unavailable")
}

func testDocument() *service.InvoiceDocument {
	due := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	return &service.InvoiceDocument{
		Invoice: &entity.Invoice{
			InvoiceNumber: "INV-20260102-A1B2C3",
			IssueDate:     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
			DueDate:       &due,
			Items: []entity.InvoiceItem{
				{Description: "Mono PERC panel 540W", Quantity: 2, UnitPrice: decimal.NewFromInt(500), Total: decimal.NewFromInt(1000)},
			},
			Subtotal:      decimal.NewFromInt(1000),
			Tax:           decimal.NewFromInt(180),
			TotalAmount:   decimal.NewFromInt(1180),
			PaymentStatus: entity.InvoiceUnpaid,
		},
		Order:    &entity.Order{OrderNumber: "ORD-20260102-FFFFFF"},
		Customer: &entity.Customer{Name: "Asha Rao", Email: "asha@example.com", GSTNumber: "29ABCDE1234F1Z5"},
		Seller:   &entity.SiteSetting{SiteName: "Solar Co", Address: "Bengaluru"},
		Currency: "INR",
		LinkURL:  "https://solar.example.com/api/invoices/1",
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestInvoiceRenderer_Render(t *testing.T) {
	renderer := NewInvoiceRenderer(qrcode.NewQRCodeService(256, "M"), discardLogger())

	out, err := renderer.Render(context.Background(), testDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Greater(t, len(out), 1000)
}

func TestInvoiceRenderer_RenderWithoutQRCode(t *testing.T) {
	renderer := NewInvoiceRenderer(failingQR{}, discardLogger())

	out, err := renderer.Render(context.Background(), testDocument())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestInvoiceRenderer_EmptyDocument(t *testing.T) {
	renderer := NewInvoiceRenderer(failingQR{}, discardLogger())

	_, err := renderer.Render(context.Background(), &service.InvoiceDocument{})
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abcd...", truncate("abcdefghij", 5))
}
