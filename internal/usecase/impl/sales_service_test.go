package impl

import (
	"context"
	"strings"
	"testing"

	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/repository"
	"solar/internal/domain/service"
	"solar/internal/errors"
	"solar/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func createQuote(t *testing.T, h *harness) *entity.Quote {
	t.Helper()

	product, customer := h.seedSale(t)
	quote, err := h.quoteService().Create(context.Background(), &usecase.CreateQuoteInput{
		CustomerID: customer.ID,
		Items:      []usecase.LineItemInput{{Product: product.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	return quote
}

func TestQuoteService_CreateComputesTotals(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)

	assert.True(t, quote.Subtotal.Equal(dec("1000")), quote.Subtotal.String())
	assert.True(t, quote.Tax.Equal(dec("180")), quote.Tax.String())
	assert.True(t, quote.TotalAmount.Equal(dec("1180")), quote.TotalAmount.String())
	assert.Equal(t, entity.QuoteStatusDraft, quote.Status)
	assert.True(t, strings.HasPrefix(quote.QuoteNumber, "QT-"))
	require.NotNil(t, quote.ValidUntil)
	require.NotNil(t, quote.Customer)
	assert.Equal(t, "Asha", quote.Customer.Name)
}

func TestQuoteService_CreateWithExplicitTaxAndPrice(t *testing.T) {
	h := newHarness(t)
	product, customer := h.seedSale(t)

	price := dec("250")
	tax := dec("10")
	quote, err := h.quoteService().Create(context.Background(), &usecase.CreateQuoteInput{
		CustomerID: customer.ID,
		Items:      []usecase.LineItemInput{{Product: product.ID, Quantity: 4, Price: &price, Discount: dec("50")}},
		Tax:        &tax,
	})
	require.NoError(t, err)

	// The discount is stored but does not reduce the subtotal.
	assert.True(t, quote.Subtotal.Equal(dec("1000")))
	assert.True(t, quote.Tax.Equal(dec("10")))
	assert.True(t, quote.TotalAmount.Equal(dec("1010")))
	assert.True(t, quote.Items[0].Discount.Equal(dec("50")))
}

func TestQuoteService_CreateRejectsUnknownReferences(t *testing.T) {
	h := newHarness(t)
	product, customer := h.seedSale(t)
	srv := h.quoteService()

	_, err := srv.Create(context.Background(), &usecase.CreateQuoteInput{
		CustomerID: uuid.New(),
		Items:      []usecase.LineItemInput{{Product: product.ID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	_, err = srv.Create(context.Background(), &usecase.CreateQuoteInput{
		CustomerID: customer.ID,
		Items:      []usecase.LineItemInput{{Product: uuid.New(), Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestQuoteService_AcceptCreatesExactlyOneOrder(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)
	srv := h.quoteService()
	ctx := context.Background()

	out, err := srv.Accept(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusAccepted, out.Quote.Status)
	assert.NotNil(t, out.Quote.AcceptedAt)
	require.NotNil(t, out.Order.QuoteID)
	assert.Equal(t, quote.ID, *out.Order.QuoteID)
	assert.Equal(t, entity.OrderStatusPending, out.Order.OrderStatus)
	assert.Equal(t, entity.PaymentStatusPending, out.Order.PaymentStatus)
	assert.True(t, out.Order.TotalAmount.Equal(dec("1180")))

	_, err = srv.Accept(ctx, quote.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrQuoteAlreadyAccepted))

	_, total, err := h.orders.List(ctx, repository.OrderFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)

	assert.Contains(t, h.events.types(), service.EventQuoteAccepted)
	assert.Contains(t, h.events.types(), service.EventOrderCreated)
}

func TestQuoteService_AcceptUnknownQuote(t *testing.T) {
	h := newHarness(t)

	_, err := h.quoteService().Accept(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrQuoteNotFound))
}

func TestQuoteService_SendMarksSent(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)

	sent, err := h.quoteService().Send(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusSent, sent.Status)
	assert.NotNil(t, sent.SentAt)

	require.Len(t, h.mailer.sent, 1)
	msg := h.mailer.sent[0]
	assert.Equal(t, "asha@example.com", msg.To)
	assert.Contains(t, msg.Subject, quote.QuoteNumber)
	assert.Contains(t, msg.HTMLBody, "Mono 400W")
	assert.Contains(t, msg.TextBody, "1180.00")
}

func TestQuoteService_SendFailureKeepsDraft(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)
	h.mailer.err = errBoom

	_, err := h.quoteService().Send(context.Background(), quote.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrEmailDeliveryFailed))

	stored, err := h.quotes.FindByID(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusDraft, stored.Status)
	assert.Nil(t, stored.SentAt)
}

func TestQuoteService_SendWithoutMailer(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)
	h.mailer.enabled = false

	sent, err := h.quoteService().Send(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusSent, sent.Status)
	assert.Empty(t, h.mailer.sent)
}

func TestQuoteService_UpdateStatus(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)
	srv := h.quoteService()
	ctx := context.Background()

	accepted := entity.QuoteStatusAccepted
	_, err := srv.Update(ctx, quote.ID, &usecase.UpdateQuoteInput{Status: &accepted})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	rejected := entity.QuoteStatusRejected
	reason := "too expensive"
	updated, err := srv.Update(ctx, quote.ID, &usecase.UpdateQuoteInput{Status: &rejected, RejectionReason: &reason})
	require.NoError(t, err)
	assert.Equal(t, entity.QuoteStatusRejected, updated.Status)
	assert.NotNil(t, updated.RejectedAt)
	assert.Equal(t, reason, updated.RejectionReason)
}

func TestQuoteService_UpdateItemsRecomputesTotals(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)

	updated, err := h.quoteService().Update(context.Background(), quote.ID, &usecase.UpdateQuoteInput{
		Items: []usecase.LineItemInput{{Product: quote.Items[0].ProductID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, updated.Subtotal.Equal(dec("500")))
	assert.True(t, updated.Tax.Equal(dec("90")))
	assert.True(t, updated.TotalAmount.Equal(dec("590")))
}

func TestOrderService_UpdateStatusNotifies(t *testing.T) {
	h := newHarness(t)
	product, customer := h.seedSale(t)
	srv := h.orderService()
	ctx := context.Background()

	order, err := srv.Create(ctx, &usecase.CreateOrderInput{
		CustomerID: customer.ID,
		Items:      []usecase.LineItemInput{{Product: product.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(order.OrderNumber, "ORD-"))

	shipped := entity.OrderStatusShipped
	updated, err := srv.Update(ctx, order.ID, &usecase.UpdateOrderInput{OrderStatus: &shipped})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusShipped, updated.OrderStatus)

	assert.Contains(t, h.events.types(), service.EventOrderStatusChanged)
	require.Len(t, h.sms.to, 1)
	assert.Equal(t, customer.Phone, h.sms.to[0])
	assert.Contains(t, h.sms.body[0], "shipped")
}

func TestOrderService_DeleteRemovesInvoices(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)
	ctx := context.Background()

	out, err := h.quoteService().Accept(ctx, quote.ID)
	require.NoError(t, err)

	generated, err := h.invoiceService(stubRenderer{}).Generate(ctx, out.Order.ID)
	require.NoError(t, err)

	require.NoError(t, h.orderService().Delete(ctx, out.Order.ID))

	_, err = h.invoices.FindByID(ctx, generated.Invoice.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrInvoiceNotFound))
	_, err = h.orders.FindByID(ctx, out.Order.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrOrderNotFound))
}

func TestCustomerDelete_KeepsOrders(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)
	ctx := context.Background()

	out, err := h.quoteService().Accept(ctx, quote.ID)
	require.NoError(t, err)

	customers := NewCustomerService(CustomerServiceParams{CustomerRepo: h.customers, Logger: h.logger})
	require.NoError(t, customers.Delete(ctx, quote.CustomerID))

	order, err := h.orders.FindByID(ctx, out.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, quote.CustomerID, order.CustomerID)
	assert.Nil(t, order.Customer)
}

func TestInvoiceService_Generate(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)
	ctx := context.Background()

	out, err := h.quoteService().Accept(ctx, quote.ID)
	require.NoError(t, err)

	generated, err := h.invoiceService(stubRenderer{}).Generate(ctx, out.Order.ID)
	require.NoError(t, err)

	invoice := generated.Invoice
	assert.True(t, strings.HasPrefix(invoice.InvoiceNumber, "INV-"))
	assert.Equal(t, entity.InvoiceUnpaid, invoice.PaymentStatus)
	assert.True(t, invoice.Subtotal.Equal(dec("1000")))
	assert.True(t, invoice.Tax.Equal(dec("180")))
	assert.True(t, invoice.TotalAmount.Equal(dec("1180")))
	require.Len(t, invoice.Items, 1)
	assert.Equal(t, "Mono 400W", invoice.Items[0].Description)
	require.NotNil(t, invoice.DueDate)
	assert.Equal(t, 30, int(invoice.DueDate.Sub(invoice.IssueDate).Hours()/24))

	assert.Equal(t, "https://cdn.test/invoices/"+invoice.InvoiceNumber+".pdf", generated.PDFURL)
	assert.Contains(t, h.storage.objects, "invoices/"+invoice.InvoiceNumber+".pdf")

	order, err := h.orders.FindByID(ctx, out.Order.ID)
	require.NoError(t, err)
	require.NotNil(t, order.InvoiceID)
	assert.Equal(t, invoice.ID, *order.InvoiceID)
	assert.Contains(t, h.events.types(), service.EventInvoiceGenerated)
}

func TestInvoiceService_GenerateFallsBackToDataURL(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)
	ctx := context.Background()
	h.storage.err = errBoom

	out, err := h.quoteService().Accept(ctx, quote.ID)
	require.NoError(t, err)

	generated, err := h.invoiceService(stubRenderer{}).Generate(ctx, out.Order.ID)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(generated.PDFURL, "data:application/pdf;base64,"))
}

func TestInvoiceService_RenderFailurePersistsNothing(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)
	ctx := context.Background()

	out, err := h.quoteService().Accept(ctx, quote.ID)
	require.NoError(t, err)

	_, err = h.invoiceService(stubRenderer{err: errBoom}).Generate(ctx, out.Order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrInvoiceRenderFailed))

	_, total, err := h.invoices.List(ctx, repository.InvoiceFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)

	order, err := h.orders.FindByID(ctx, out.Order.ID)
	require.NoError(t, err)
	assert.Nil(t, order.InvoiceID)
}

// orderUpdateFails runs the real transaction but fails every order update
// made through it.
type orderUpdateFails struct {
	repository.TransactionManager
}

func (m orderUpdateFails) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	return m.TransactionManager.Execute(ctx, func(factory repository.RepositoryFactory) error {
		return fn(failingOrderFactory{factory})
	})
}

type failingOrderFactory struct {
	repository.RepositoryFactory
}

func (f failingOrderFactory) NewOrderRepository() repository.OrderRepository {
	return failingOrderRepo{f.RepositoryFactory.NewOrderRepository()}
}

type failingOrderRepo struct {
	repository.OrderRepository
}

func (failingOrderRepo) Update(context.Context, *entity.Order) error {
	return errBoom
}

func TestInvoiceService_RollbackRemovesUploadedPDF(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)
	ctx := context.Background()

	out, err := h.quoteService().Accept(ctx, quote.ID)
	require.NoError(t, err)

	srv := h.invoiceService(stubRenderer{})
	srv.txManager = orderUpdateFails{h.tx}

	_, err = srv.Generate(ctx, out.Order.ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errBoom))

	assert.Empty(t, h.storage.objects)

	_, total, err := h.invoices.List(ctx, repository.InvoiceFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)

	order, err := h.orders.FindByID(ctx, out.Order.ID)
	require.NoError(t, err)
	assert.Nil(t, order.InvoiceID)
}

func TestInvoiceService_UpdatePaidStampsDate(t *testing.T) {
	h := newHarness(t)
	quote := createQuote(t, h)
	ctx := context.Background()

	out, err := h.quoteService().Accept(ctx, quote.ID)
	require.NoError(t, err)
	srv := h.invoiceService(stubRenderer{})
	generated, err := srv.Generate(ctx, out.Order.ID)
	require.NoError(t, err)

	paid := entity.InvoicePaid
	updated, err := srv.Update(ctx, generated.Invoice.ID, &usecase.UpdateInvoiceInput{PaymentStatus: &paid})
	require.NoError(t, err)
	assert.Equal(t, entity.InvoicePaid, updated.PaymentStatus)
	assert.NotNil(t, updated.PaidDate)
}
