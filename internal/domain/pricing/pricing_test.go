package pricing

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solar/internal/domain/entity"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestCalculate_DefaultTaxRate(t *testing.T) {
	items := []entity.LineItem{
		{ProductID: uuid.New(), Quantity: 2, Price: dec("500")},
	}

	got := Calculate(items, nil, DefaultTaxRate)

	assert.True(t, got.Subtotal.Equal(dec("1000")), got.Subtotal.String())
	assert.True(t, got.Tax.Equal(dec("180")), got.Tax.String())
	assert.True(t, got.TotalAmount.Equal(dec("1180")), got.TotalAmount.String())
}

func TestCalculate_DiscountIsNotApplied(t *testing.T) {
	items := []entity.LineItem{
		{Quantity: 3, Price: dec("10.50"), Discount: dec("5")},
		{Quantity: 1, Price: dec("0.25"), Discount: dec("0.25")},
	}

	got := Calculate(items, nil, DefaultTaxRate)

	assert.True(t, got.Subtotal.Equal(dec("31.75")))
	assert.True(t, got.TotalAmount.Equal(got.Subtotal.Add(got.Tax)))
}

func TestCalculate_SubtotalIsExactSum(t *testing.T) {
	items := []entity.LineItem{
		{Quantity: 3, Price: dec("0.333")},
		{Quantity: 1, Price: dec("0.005")},
	}

	got := Calculate(items, nil, DefaultTaxRate)

	assert.True(t, got.Subtotal.Equal(dec("1.004")), got.Subtotal.String())
	assert.True(t, got.Tax.Equal(dec("0.18")), got.Tax.String())
	assert.True(t, got.TotalAmount.Equal(got.Subtotal.Add(got.Tax)))

	lines, subtotal := InvoiceLines(items)
	require.Len(t, lines, 2)
	assert.True(t, lines[0].Total.Equal(dec("0.999")), lines[0].Total.String())
	assert.True(t, subtotal.Equal(got.Subtotal), subtotal.String())
}

func TestCalculate_CallerSuppliedTax(t *testing.T) {
	tax := dec("12.345")
	items := []entity.LineItem{{Quantity: 1, Price: dec("100")}}

	got := Calculate(items, &tax, DefaultTaxRate)

	assert.True(t, got.Tax.Equal(dec("12.35")), got.Tax.String())
	assert.True(t, got.TotalAmount.Equal(dec("112.35")))
}

func TestCalculate_NoItems(t *testing.T) {
	got := Calculate(nil, nil, DefaultTaxRate)

	assert.True(t, got.Subtotal.IsZero())
	assert.True(t, got.Tax.IsZero())
	assert.True(t, got.TotalAmount.IsZero())
}

func TestInvoiceLines_Defaults(t *testing.T) {
	items := []entity.LineItem{
		{Quantity: 0, Price: dec("40"), Product: &entity.ProductSummary{Name: "Inverter"}},
		{Quantity: 2, Price: decimal.Zero},
	}

	lines, subtotal := InvoiceLines(items)

	assert.Len(t, lines, 2)
	assert.Equal(t, "Inverter", lines[0].Description)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.True(t, lines[0].Total.Equal(dec("40")))
	assert.Equal(t, "Item", lines[1].Description)
	assert.True(t, lines[1].Total.IsZero())
	assert.True(t, subtotal.Equal(dec("40")))
}

func TestNewNumber_Format(t *testing.T) {
	now := time.Date(2026, 3, 7, 10, 0, 0, 0, time.UTC)
	re := regexp.MustCompile(`^QT-20260307-[0-9A-F]{6}$`)

	a := NewNumber(QuotePrefix, now)
	b := NewNumber(QuotePrefix, now)

	assert.Regexp(t, re, a)
	assert.Regexp(t, re, b)
	assert.NotEqual(t, a, b)
}
