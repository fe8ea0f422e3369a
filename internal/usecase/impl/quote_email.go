package impl

import (
	"bytes"
	"html/template"
	"strings"
	texttemplate "text/template"

	"solar/internal/domain/entity"
	"solar/internal/domain/service"
	"solar/internal/errors"

	"github.com/shopspring/decimal"
)

type quoteEmailData struct {
	SiteName string
	Currency string
	Quote    *entity.Quote
	Customer *entity.Customer
}

const quoteEmailHTML = `<!DOCTYPE html>
<html><body style="font-family:Arial,sans-serif;color:#222">
<h2>{{.SiteName}} quotation {{.Quote.QuoteNumber}}</h2>
<p>Dear {{.Customer.Name}},</p>
<p>Thank you for your interest. Please find your quotation below.</p>
<table cellpadding="6" cellspacing="0" border="1" style="border-collapse:collapse">
<tr><th align="left">Item</th><th>Qty</th><th align="right">Price</th><th align="right">Amount</th></tr>
{{range .Quote.Items}}<tr><td>{{itemName .}}</td><td align="center">{{.Quantity}}</td><td align="right">{{money .Price}}</td><td align="right">{{lineTotal .}}</td></tr>
{{end}}</table>
<p>Subtotal: {{.Currency}} {{money .Quote.Subtotal}}<br>
Tax: {{.Currency}} {{money .Quote.Tax}}<br>
<strong>Total: {{.Currency}} {{money .Quote.TotalAmount}}</strong></p>
{{with .Quote.ValidUntil}}<p>This quotation is valid until {{.Format "02 Jan 2006"}}.</p>{{end}}
<p>Regards,<br>{{.SiteName}}</p>
</body></html>`

const quoteEmailText = `Dear {{.Customer.Name}},

Your quotation {{.Quote.QuoteNumber}} from {{.SiteName}}:
{{range .Quote.Items}}
- {{itemName .}} x{{.Quantity}} @ {{money .Price}} = {{lineTotal .}}{{end}}

Subtotal: {{.Currency}} {{money .Quote.Subtotal}}
Tax: {{.Currency}} {{money .Quote.Tax}}
Total: {{.Currency}} {{money .Quote.TotalAmount}}
{{with .Quote.ValidUntil}}
Valid until {{.Format "02 Jan 2006"}}.{{end}}

Regards,
{{.SiteName}}
`

//nolint:gochecknoglobals
var (
	quoteEmailFuncs = map[string]any{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
		"itemName": func(it entity.LineItem) string {
			if it.Product != nil && it.Product.Name != "" {
				return it.Product.Name
			}

			return "Item"
		},
		"lineTotal": func(it entity.LineItem) string {
			return lineTotal(it).StringFixed(2)
		},
	}

	quoteHTMLTemplate = template.Must(template.New("quote_html").Funcs(quoteEmailFuncs).Parse(quoteEmailHTML))
	quoteTextTemplate = texttemplate.Must(texttemplate.New("quote_text").Funcs(quoteEmailFuncs).Parse(quoteEmailText))
)

// quoteEmail renders the message announcing a quote to its customer.
func quoteEmail(siteName, currency string, quote *entity.Quote, customer *entity.Customer) (*service.EmailMessage, error) {
	data := quoteEmailData{
		SiteName: siteName,
		Currency: currency,
		Quote:    quote,
		Customer: customer,
	}

	var html, text bytes.Buffer
	if err := quoteHTMLTemplate.Execute(&html, data); err != nil {
		return nil, errors.Wrap(err, "failed to render quote email")
	}
	if err := quoteTextTemplate.Execute(&text, data); err != nil {
		return nil, errors.Wrap(err, "failed to render quote email")
	}

	return &service.EmailMessage{
		To:       customer.Email,
		ToName:   customer.Name,
		Subject:  strings.TrimSpace(siteName + " quotation " + quote.QuoteNumber),
		HTMLBody: html.String(),
		TextBody: text.String(),
	}, nil
}
