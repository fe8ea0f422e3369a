// Package pricing computes quote, order and invoice totals.
package pricing

import (
	"github.com/shopspring/decimal"

	"solar/internal/domain/entity"
)

// DefaultTaxRate is the flat tax applied when the caller supplies no tax.
var DefaultTaxRate = decimal.RequireFromString("0.18")

// Totals is the computed money summary of a document.
type Totals struct {
	Subtotal    decimal.Decimal
	Tax         decimal.Decimal
	TotalAmount decimal.Decimal
}

// Round rounds an amount to cents.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Subtotal is the exact Σ price × quantity. Line discounts are not
// subtracted and only the tax is rounded.
func Subtotal(items []entity.LineItem) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		sum = sum.Add(it.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	return sum
}

// Tax returns subtotal × rate, rounded.
func Tax(subtotal, rate decimal.Decimal) decimal.Decimal {
	return Round(subtotal.Mul(rate))
}

// Calculate computes totals for the items. A non-nil tax overrides the rate.
func Calculate(items []entity.LineItem, tax *decimal.Decimal, rate decimal.Decimal) Totals {
	subtotal := Subtotal(items)

	t := Tax(subtotal, rate)
	if tax != nil {
		t = Round(*tax)
	}

	return Totals{
		Subtotal:    subtotal,
		Tax:         t,
		TotalAmount: subtotal.Add(t),
	}
}

// InvoiceLines builds invoice lines from populated order items. A missing
// product falls back to a generic description; zero quantity becomes 1.
func InvoiceLines(items []entity.LineItem) ([]entity.InvoiceItem, decimal.Decimal) {
	lines := make([]entity.InvoiceItem, 0, len(items))
	subtotal := decimal.Zero

	for _, it := range items {
		qty := it.Quantity
		if qty <= 0 {
			qty = 1
		}

		desc := "Item"
		if it.Product != nil && it.Product.Name != "" {
			desc = it.Product.Name
		}

		productID := it.ProductID
		total := it.Price.Mul(decimal.NewFromInt(int64(qty)))
		subtotal = subtotal.Add(total)

		lines = append(lines, entity.InvoiceItem{
			ProductID:   &productID,
			Description: desc,
			Quantity:    qty,
			UnitPrice:   it.Price,
			Tax:         decimal.Zero,
			Total:       total,
		})
	}

	return lines, subtotal
}
