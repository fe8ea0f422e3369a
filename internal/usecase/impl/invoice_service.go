package impl

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"
	"time"

	"solar/config"
	deliverycontext "solar/internal/delivery/context"
	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/pricing"
	"solar/internal/domain/repository"
	"solar/internal/domain/service"
	"solar/internal/errors"
	"solar/internal/infra/metrics"
	"solar/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

const pdfContentType = "application/pdf"

type invoiceService struct {
	txManager    repository.TransactionManager
	orderRepo    repository.OrderRepository
	invoiceRepo  repository.InvoiceRepository
	settingsRepo repository.SiteSettingRepository
	renderer     service.InvoiceRenderer
	storage      service.ObjectStorage
	events       eventPublisher
	cfg          *config.Config
	logger       *slog.Logger
}

// InvoiceServiceParams holds dependencies for InvoiceService, injected by Fx.
type InvoiceServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	OrderRepo    repository.OrderRepository
	InvoiceRepo  repository.InvoiceRepository
	SettingsRepo repository.SiteSettingRepository
	Renderer     service.InvoiceRenderer
	Storage      service.ObjectStorage
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewInvoiceService is the constructor for invoiceService.
func NewInvoiceService(params InvoiceServiceParams) usecase.InvoiceUsecase {
	return &invoiceService{
		txManager:    params.TxManager,
		orderRepo:    params.OrderRepo,
		invoiceRepo:  params.InvoiceRepo,
		settingsRepo: params.SettingsRepo,
		renderer:     params.Renderer,
		storage:      params.Storage,
		events:       eventPublisher{publisher: params.Publisher, logger: params.Logger},
		cfg:          params.Config,
		logger:       params.Logger,
	}
}

func (srv *invoiceService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// newInvoice derives an unpaid invoice from a populated order.
func newInvoice(order *entity.Order, now time.Time, dueDays int) *entity.Invoice {
	lines, subtotal := pricing.InvoiceLines(order.Items)

	total := order.TotalAmount
	if !total.IsPositive() {
		total = subtotal.Add(order.Tax)
	}

	customerID := order.CustomerID
	due := now.AddDate(0, 0, dueDays)

	return &entity.Invoice{
		InvoiceNumber: pricing.NewNumber(pricing.InvoicePrefix, now),
		OrderID:       order.ID,
		CustomerID:    &customerID,
		IssueDate:     now,
		DueDate:       &due,
		Items:         lines,
		Subtotal:      subtotal,
		Tax:           order.Tax,
		TotalAmount:   total,
		PaymentStatus: entity.InvoiceUnpaid,
	}
}

func (srv *invoiceService) invoiceLink(id uuid.UUID) string {
	base := strings.TrimRight(srv.cfg.HTTP.PublicURL, "/")
	if base == "" {
		return ""
	}

	return base + "/api/invoices/" + id.String()
}

// Generate reads everything it needs up front, then persists the invoice,
// its PDF location and the order link in one transaction.
func (srv *invoiceService) Generate(ctx context.Context, orderID uuid.UUID) (*usecase.GenerateInvoiceOutput, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load order")
	}

	seller := loadSettings(ctx, srv.settingsRepo, srv.log(ctx))
	invoice := newInvoice(order, time.Now().UTC(), srv.cfg.Pricing.InvoiceDueDays)

	// Key of the uploaded PDF, removed again if the transaction rolls back.
	var uploadedKey string
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		invoiceRepo := repoFactory.NewInvoiceRepository()

		if err := invoiceRepo.Create(ctx, invoice); err != nil {
			return err
		}

		data, err := srv.renderer.Render(ctx, &service.InvoiceDocument{
			Invoice:  invoice,
			Order:    order,
			Customer: order.Customer,
			Seller:   seller,
			Currency: srv.cfg.Pricing.Currency,
			LinkURL:  srv.invoiceLink(invoice.ID),
		})
		if err != nil {
			return domainerrors.ErrInvoiceRenderFailed.WithDetails(err.Error())
		}

		invoice.PDFURL, uploadedKey = srv.storePDF(ctx, invoice, data)
		if err := invoiceRepo.Update(ctx, invoice); err != nil {
			return err
		}

		invoiceID := invoice.ID
		order.InvoiceID = &invoiceID

		return repoFactory.NewOrderRepository().Update(ctx, order)
	})
	if err != nil {
		if uploadedKey != "" {
			srv.discardPDF(ctx, uploadedKey)
		}

		return nil, errors.Wrap(err, "failed to generate invoice")
	}

	srv.log(ctx).Info("Invoice generated",
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.String("order_number", order.OrderNumber),
	)
	srv.events.publish(ctx, service.EventInvoiceGenerated, invoice.ID.String(), map[string]any{
		"invoiceNumber": invoice.InvoiceNumber,
		"orderId":       order.ID.String(),
		"totalAmount":   invoice.TotalAmount.String(),
	})

	return &usecase.GenerateInvoiceOutput{Invoice: invoice, PDFURL: invoice.PDFURL}, nil
}

// storePDF uploads the document and returns its URL and storage key. When
// storage is unavailable the URL is an inline data URL and the key is empty.
func (srv *invoiceService) storePDF(ctx context.Context, invoice *entity.Invoice, data []byte) (string, string) {
	key := "invoices/" + invoice.InvoiceNumber + ".pdf"

	obj, err := srv.storage.Put(ctx, key, data, pdfContentType)
	if err == nil {
		return obj.URL, key
	}

	metrics.RecordOutboundFailure(metrics.ChannelStorage)
	srv.log(ctx).Warn("Failed to upload invoice PDF, embedding it instead",
		slog.String("invoice_number", invoice.InvoiceNumber),
		slog.Any("error", err),
	)

	return "data:" + pdfContentType + ";base64," + base64.StdEncoding.EncodeToString(data), ""
}

func (srv *invoiceService) discardPDF(ctx context.Context, key string) {
	if err := srv.storage.Delete(ctx, key); err != nil {
		metrics.RecordOutboundFailure(metrics.ChannelStorage)
		srv.log(ctx).Warn("Failed to remove PDF of rolled back invoice",
			slog.String("key", key),
			slog.Any("error", err),
		)
	}
}

func (srv *invoiceService) List(ctx context.Context, filter repository.InvoiceFilter) (*entity.Page[entity.Invoice], error) {
	filter.ListParams = normalizeList(filter.ListParams)

	invoices, total, err := srv.invoiceRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list invoices")
	}

	return page(invoices, total, filter.ListParams), nil
}

func (srv *invoiceService) Get(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	invoice, err := srv.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get invoice")
	}

	return invoice, nil
}

func (srv *invoiceService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateInvoiceInput) (*entity.Invoice, error) {
	invoice, err := srv.invoiceRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load invoice")
	}

	if input.PaymentStatus != nil {
		if !input.PaymentStatus.IsValid() {
			return nil, validationError("unknown payment status " + string(*input.PaymentStatus))
		}
		invoice.PaymentStatus = *input.PaymentStatus
	}
	if input.PaidDate != nil {
		invoice.PaidDate = input.PaidDate
	}
	if input.DueDate != nil {
		invoice.DueDate = input.DueDate
	}
	if invoice.PaymentStatus == entity.InvoicePaid && invoice.PaidDate == nil {
		now := time.Now().UTC()
		invoice.PaidDate = &now
	}

	if err := srv.invoiceRepo.Update(ctx, invoice); err != nil {
		return nil, errors.Wrap(err, "failed to update invoice")
	}

	return invoice, nil
}

func (srv *invoiceService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.invoiceRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete invoice")
	}

	return nil
}
