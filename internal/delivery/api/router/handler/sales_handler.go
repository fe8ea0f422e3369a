package handler

import (
	"log/slog"
	"net/http"

	"solar/internal/delivery/api/response"
	"solar/internal/domain/entity"
	"solar/internal/domain/repository"
	"solar/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SalesHandlerParams holds dependencies for SalesHandler, injected by Fx.
type SalesHandlerParams struct {
	fx.In

	CustomerUC usecase.CustomerUsecase
	QuoteUC    usecase.QuoteUsecase
	OrderUC    usecase.OrderUsecase
	InvoiceUC  usecase.InvoiceUsecase
	Logger     *slog.Logger
}

// SalesHandler serves customers and the quote, order and invoice lifecycle.
type SalesHandler struct {
	customerUC usecase.CustomerUsecase
	quoteUC    usecase.QuoteUsecase
	orderUC    usecase.OrderUsecase
	invoiceUC  usecase.InvoiceUsecase
	logger     *slog.Logger
}

// NewSalesHandler is the constructor for SalesHandler
func NewSalesHandler(params SalesHandlerParams) *SalesHandler {
	return &SalesHandler{
		customerUC: params.CustomerUC,
		quoteUC:    params.QuoteUC,
		orderUC:    params.OrderUC,
		invoiceUC:  params.InvoiceUC,
		logger:     params.Logger,
	}
}

// QuoteActionRequest names the quote of a send or accept action.
type QuoteActionRequest struct {
	QuoteID string `json:"quoteId" validate:"required,uuid"`
}

// ListCustomers godoc
// @Summary List customers
// @Tags Customers
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param search query string false "Name, email or company contains"
// @Param segment query string false "residential, commercial or industrial"
// @Param isActive query bool false "Active flag"
// @Success 200 {object} response.Envelope{data=entity.Page[entity.Customer]}
// @Router /customers [get]
func (h *SalesHandler) ListCustomers(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	isActive, err := queryBool(c, "isActive")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.customerUC.List(c.Request().Context(), repository.CustomerFilter{
		ListParams: params,
		Segment:    entity.Segment(c.QueryParam("segment")),
		IsActive:   isActive,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetCustomer godoc
// @Summary Get a customer
// @Tags Customers
// @Produce json
// @Param id path string true "Customer id"
// @Success 200 {object} response.Envelope{data=entity.Customer}
// @Failure 404 {object} response.Envelope
// @Router /customers/{id} [get]
func (h *SalesHandler) GetCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	customer, err := h.customerUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customer)
}

// CreateCustomer godoc
// @Summary Create a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param body body usecase.CustomerInput true "Customer"
// @Success 201 {object} response.Envelope{data=entity.Customer}
// @Failure 409 {object} response.Envelope "Email is already in use"
// @Router /customers [post]
func (h *SalesHandler) CreateCustomer(c echo.Context) error {
	var input usecase.CustomerInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	customer, err := h.customerUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, customer)
}

// UpdateCustomer godoc
// @Summary Update a customer
// @Tags Customers
// @Accept json
// @Produce json
// @Param id path string true "Customer id"
// @Param body body usecase.UpdateCustomerInput true "Changed fields"
// @Success 200 {object} response.Envelope{data=entity.Customer}
// @Router /customers/{id} [patch]
func (h *SalesHandler) UpdateCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateCustomerInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	customer, err := h.customerUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, customer)
}

// DeleteCustomer godoc
// @Summary Delete a customer
// @Description Quotes and orders of the customer are kept.
// @Tags Customers
// @Param id path string true "Customer id"
// @Success 200 {object} response.Envelope
// @Router /customers/{id} [delete]
func (h *SalesHandler) DeleteCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.customerUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "Customer deleted", nil)
}

// ListQuotes godoc
// @Summary List quotes
// @Tags Quotes
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param search query string false "Quote number contains"
// @Param status query string false "Quote status"
// @Param customer query string false "Customer id"
// @Success 200 {object} response.Envelope{data=entity.Page[entity.Quote]}
// @Router /quotes [get]
func (h *SalesHandler) ListQuotes(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	customerID, err := queryUUID(c, "customer")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.quoteUC.List(c.Request().Context(), repository.QuoteFilter{
		ListParams: params,
		Status:     entity.QuoteStatus(c.QueryParam("status")),
		CustomerID: customerID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetQuote godoc
// @Summary Get a quote
// @Tags Quotes
// @Produce json
// @Param id path string true "Quote id"
// @Success 200 {object} response.Envelope{data=entity.Quote}
// @Failure 404 {object} response.Envelope
// @Router /quotes/{id} [get]
func (h *SalesHandler) GetQuote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	quote, err := h.quoteUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, quote)
}

// CreateQuote godoc
// @Summary Create a draft quote
// @Description subtotal is the sum of price times quantity; tax defaults to the configured rate.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param body body usecase.CreateQuoteInput true "Quote"
// @Success 201 {object} response.Envelope{data=entity.Quote}
// @Failure 400 {object} response.Envelope "Unknown customer or product"
// @Router /quotes [post]
func (h *SalesHandler) CreateQuote(c echo.Context) error {
	var input usecase.CreateQuoteInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	quote, err := h.quoteUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, quote)
}

// UpdateQuote godoc
// @Summary Update a quote
// @Description Manual status changes; accepting goes through /quotes/accept.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param id path string true "Quote id"
// @Param body body usecase.UpdateQuoteInput true "Changed fields"
// @Success 200 {object} response.Envelope{data=entity.Quote}
// @Failure 409 {object} response.Envelope "Quote has already been accepted"
// @Router /quotes/{id} [patch]
func (h *SalesHandler) UpdateQuote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateQuoteInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	quote, err := h.quoteUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, quote)
}

// DeleteQuote godoc
// @Summary Delete a quote
// @Tags Quotes
// @Param id path string true "Quote id"
// @Success 200 {object} response.Envelope
// @Router /quotes/{id} [delete]
func (h *SalesHandler) DeleteQuote(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.quoteUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "Quote deleted", nil)
}

// SendQuote godoc
// @Summary Email a quote to its customer
// @Description Marks the quote sent once the email is delivered.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param body body QuoteActionRequest true "Quote reference"
// @Success 200 {object} response.Envelope{data=entity.Quote}
// @Failure 502 {object} response.Envelope "Email delivery failed; the quote is unchanged"
// @Router /quotes/send [post]
func (h *SalesHandler) SendQuote(c echo.Context) error {
	var req QuoteActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := parseID(req.QuoteID, "quoteId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	quote, err := h.quoteUC.Send(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "Quote sent", quote)
}

// AcceptQuote godoc
// @Summary Accept a quote
// @Description Creates exactly one order from the quote.
// @Tags Quotes
// @Accept json
// @Produce json
// @Param body body QuoteActionRequest true "Quote reference"
// @Success 200 {object} response.Envelope{data=usecase.AcceptQuoteOutput}
// @Failure 409 {object} response.Envelope "Quote has already been accepted"
// @Router /quotes/accept [post]
func (h *SalesHandler) AcceptQuote(c echo.Context) error {
	var req QuoteActionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return response.HandleAppError(c, err)
	}
	id, err := parseID(req.QuoteID, "quoteId")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.quoteUC.Accept(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "Quote accepted", out)
}

// ListOrders godoc
// @Summary List orders
// @Tags Orders
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param search query string false "Order number contains"
// @Param status query string false "Order status"
// @Param paymentStatus query string false "Payment status"
// @Param customer query string false "Customer id"
// @Success 200 {object} response.Envelope{data=entity.Page[entity.Order]}
// @Router /orders [get]
func (h *SalesHandler) ListOrders(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	customerID, err := queryUUID(c, "customer")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.orderUC.List(c.Request().Context(), repository.OrderFilter{
		ListParams:    params,
		OrderStatus:   entity.OrderStatus(c.QueryParam("status")),
		PaymentStatus: entity.PaymentStatus(c.QueryParam("paymentStatus")),
		CustomerID:    customerID,
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetOrder godoc
// @Summary Get an order
// @Tags Orders
// @Produce json
// @Param id path string true "Order id"
// @Success 200 {object} response.Envelope{data=entity.Order}
// @Failure 404 {object} response.Envelope
// @Router /orders/{id} [get]
func (h *SalesHandler) GetOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// CreateOrder godoc
// @Summary Create an order
// @Tags Orders
// @Accept json
// @Produce json
// @Param body body usecase.CreateOrderInput true "Order"
// @Success 201 {object} response.Envelope{data=entity.Order}
// @Router /orders [post]
func (h *SalesHandler) CreateOrder(c echo.Context) error {
	var input usecase.CreateOrderInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.Create(c.Request().Context(), &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Created(c, order)
}

// UpdateOrder godoc
// @Summary Update an order
// @Description Any status may be set from any other; the customer gets an SMS on status changes.
// @Tags Orders
// @Accept json
// @Produce json
// @Param id path string true "Order id"
// @Param body body usecase.UpdateOrderInput true "Changed fields"
// @Success 200 {object} response.Envelope{data=entity.Order}
// @Router /orders/{id} [patch]
func (h *SalesHandler) UpdateOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateOrderInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	order, err := h.orderUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, order)
}

// DeleteOrder godoc
// @Summary Delete an order
// @Description The invoices of the order are deleted with it.
// @Tags Orders
// @Param id path string true "Order id"
// @Success 200 {object} response.Envelope
// @Router /orders/{id} [delete]
func (h *SalesHandler) DeleteOrder(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.orderUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "Order deleted", nil)
}

// GenerateInvoice godoc
// @Summary Generate the invoice of an order
// @Description Renders the PDF and stores it; pdfUrl falls back to a data URL when storage fails.
// @Tags Invoices
// @Produce json
// @Param id path string true "Order id"
// @Success 201 {object} response.Envelope{data=usecase.GenerateInvoiceOutput}
// @Failure 404 {object} response.Envelope
// @Failure 500 {object} response.Envelope "PDF rendering failed; nothing is stored"
// @Router /orders/{id}/invoice [post]
func (h *SalesHandler) GenerateInvoice(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	out, err := h.invoiceUC.Generate(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusCreated, "Invoice generated", out)
}

// ListInvoices godoc
// @Summary List invoices
// @Tags Invoices
// @Produce json
// @Param skip query int false "Offset"
// @Param limit query int false "Page size"
// @Param search query string false "Invoice number contains"
// @Param order query string false "Order id"
// @Param paymentStatus query string false "unpaid, partial or paid"
// @Success 200 {object} response.Envelope{data=entity.Page[entity.Invoice]}
// @Router /invoices [get]
func (h *SalesHandler) ListInvoices(c echo.Context) error {
	params, err := listParams(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}
	orderID, err := queryUUID(c, "order")
	if err != nil {
		return response.HandleAppError(c, err)
	}

	page, err := h.invoiceUC.List(c.Request().Context(), repository.InvoiceFilter{
		ListParams:    params,
		OrderID:       orderID,
		PaymentStatus: entity.InvoicePaymentStatus(c.QueryParam("paymentStatus")),
	})
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, page)
}

// GetInvoice godoc
// @Summary Get an invoice
// @Tags Invoices
// @Produce json
// @Param id path string true "Invoice id"
// @Success 200 {object} response.Envelope{data=entity.Invoice}
// @Failure 404 {object} response.Envelope
// @Router /invoices/{id} [get]
func (h *SalesHandler) GetInvoice(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	invoice, err := h.invoiceUC.Get(c.Request().Context(), id)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, invoice)
}

// UpdateInvoice godoc
// @Summary Update an invoice
// @Description Setting paid without a paidDate stamps the current time.
// @Tags Invoices
// @Accept json
// @Produce json
// @Param id path string true "Invoice id"
// @Param body body usecase.UpdateInvoiceInput true "Changed fields"
// @Success 200 {object} response.Envelope{data=entity.Invoice}
// @Router /invoices/{id} [patch]
func (h *SalesHandler) UpdateInvoice(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	var input usecase.UpdateInvoiceInput
	if err := bindAndValidate(c, &input); err != nil {
		return response.HandleAppError(c, err)
	}

	invoice, err := h.invoiceUC.Update(c.Request().Context(), id, &input)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, invoice)
}

// DeleteInvoice godoc
// @Summary Delete an invoice
// @Tags Invoices
// @Param id path string true "Invoice id"
// @Success 200 {object} response.Envelope
// @Router /invoices/{id} [delete]
func (h *SalesHandler) DeleteInvoice(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	if err := h.invoiceUC.Delete(c.Request().Context(), id); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.SuccessWithMessage(c, http.StatusOK, "Invoice deleted", nil)
}
