// Package pdf renders invoices with fpdf.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"solar/internal/domain/service"
	"solar/internal/errors"

	"github.com/go-pdf/fpdf"
	"github.com/shopspring/decimal"
)

const (
	dateLayout = "02 Jan 2006"
	qrImage    = "invoice-qr"
	qrSizeMM   = 32.0
	lineHeight = 6.0
)

// column widths of the line item table, in mm.
var columns = []float64{80, 20, 30, 25, 35}

type invoiceRenderer struct {
	qr     service.QRCodeService
	logger *slog.Logger
}

// NewInvoiceRenderer creates the fpdf-based invoice renderer.
func NewInvoiceRenderer(qr service.QRCodeService, logger *slog.Logger) service.InvoiceRenderer {
	return &invoiceRenderer{qr: qr, logger: logger}
}

func (r *invoiceRenderer) Render(ctx context.Context, doc *service.InvoiceDocument) ([]byte, error) {
	if doc == nil || doc.Invoice == nil {
		return nil, errors.New("invoice document is empty")
	}

	inv := doc.Invoice
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(inv.InvoiceNumber, true)
	pdf.SetCreator("solar", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()

	r.header(pdf, tr, doc)
	r.parties(pdf, tr, doc)
	r.items(pdf, tr, doc)
	r.totals(pdf, doc)

	if doc.LinkURL != "" {
		if err := r.qrCode(pdf, doc.LinkURL); err != nil {
			// The invoice is still valid without the code.
			r.logger.WarnContext(ctx, "Invoice QR code skipped",
				slog.String("invoice", inv.InvoiceNumber),
				slog.Any("error", err))
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, errors.Wrap(err, "failed to lay out invoice")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "failed to write invoice pdf")
	}

	return buf.Bytes(), nil
}

func (r *invoiceRenderer) header(pdf *fpdf.Fpdf, tr func(string) string, doc *service.InvoiceDocument) {
	inv := doc.Invoice

	seller := "Solar"
	if doc.Seller != nil && doc.Seller.SiteName != "" {
		seller = doc.Seller.SiteName
	}

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(120, 10, tr(seller), "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(70, 10, "INVOICE", "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	if doc.Seller != nil {
		for _, line := range []string{doc.Seller.Address, doc.Seller.ContactEmail, doc.Seller.ContactPhone} {
			if line != "" {
				pdf.CellFormat(120, 5, tr(line), "", 1, "L", false, 0, "")
			}
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Helvetica", "", 10)
	meta := [][2]string{
		{"Invoice number", inv.InvoiceNumber},
		{"Issue date", inv.IssueDate.Format(dateLayout)},
	}
	if inv.DueDate != nil {
		meta = append(meta, [2]string{"Due date", inv.DueDate.Format(dateLayout)})
	}
	if doc.Order != nil {
		meta = append(meta, [2]string{"Order", doc.Order.OrderNumber})
	}
	meta = append(meta, [2]string{"Status", string(inv.PaymentStatus)})

	for _, kv := range meta {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, lineHeight, kv[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(80, lineHeight, tr(kv[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

func (r *invoiceRenderer) parties(pdf *fpdf.Fpdf, tr func(string) string, doc *service.InvoiceDocument) {
	customer := doc.Customer
	if customer == nil {
		return
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(0, lineHeight, "Bill to", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	lines := []string{customer.Name, customer.CompanyName, customer.Address, customer.Email, customer.Phone}
	if customer.GSTNumber != "" {
		lines = append(lines, "GSTIN: "+customer.GSTNumber)
	}
	for _, line := range lines {
		if line != "" {
			pdf.MultiCell(120, 5, tr(line), "", "L", false)
		}
	}
	pdf.Ln(4)
}

func (r *invoiceRenderer) items(pdf *fpdf.Fpdf, tr func(string) string, doc *service.InvoiceDocument) {
	headers := []string{"Description", "Qty", "Unit price", "Tax", "Total"}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(235, 235, 235)
	for i, h := range headers {
		align := "R"
		if i == 0 {
			align = "L"
		}
		pdf.CellFormat(columns[i], 8, h, "1", 0, align, true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range doc.Invoice.Items {
		pdf.CellFormat(columns[0], 7, tr(truncate(item.Description, 45)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(columns[1], 7, strconv.Itoa(item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columns[2], 7, money(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columns[3], 7, money(item.Tax), "1", 0, "R", false, 0, "")
		pdf.CellFormat(columns[4], 7, money(item.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(2)
}

func (r *invoiceRenderer) totals(pdf *fpdf.Fpdf, doc *service.InvoiceDocument) {
	inv := doc.Invoice
	label := columns[0] + columns[1] + columns[2] + columns[3]

	rows := []struct {
		name  string
		value decimal.Decimal
		bold  bool
	}{
		{"Subtotal", inv.Subtotal, false},
		{"Tax", inv.Tax, false},
		{fmt.Sprintf("Total (%s)", doc.Currency), inv.TotalAmount, true},
	}

	for _, row := range rows {
		style := ""
		if row.bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 10)
		pdf.CellFormat(label, 7, row.name, "", 0, "R", false, 0, "")
		pdf.CellFormat(columns[4], 7, money(row.value), "", 1, "R", false, 0, "")
	}

	if inv.PaidDate != nil {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.CellFormat(0, 6, "Paid on "+inv.PaidDate.Format(dateLayout), "", 1, "R", false, 0, "")
	}
}

func (r *invoiceRenderer) qrCode(pdf *fpdf.Fpdf, link string) error {
	png, err := r.qr.GeneratePNG(link)
	if err != nil {
		return err
	}

	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(qrImage, opts, bytes.NewReader(png))
	if err := pdf.Error(); err != nil {
		return errors.Wrap(err, "failed to register qr image")
	}

	pdf.Ln(6)
	y := pdf.GetY()
	pdf.ImageOptions(qrImage, 15, y, qrSizeMM, qrSizeMM, false, opts, 0, link)
	pdf.SetXY(15+qrSizeMM+4, y+qrSizeMM/2-3)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(0, 6, "Scan to view this invoice online", "", 1, "L", false, 0, link)

	return nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}

	return string(runes[:n-1]) + "..."
}
