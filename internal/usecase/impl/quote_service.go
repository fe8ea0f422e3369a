package impl

import (
	"context"
	"log/slog"
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

type quoteService struct {
	txManager    repository.TransactionManager
	quoteRepo    repository.QuoteRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	settingsRepo repository.SiteSettingRepository
	mailer       service.Mailer
	events       eventPublisher
	cfg          *config.Config
	logger       *slog.Logger
}

// QuoteServiceParams holds dependencies for QuoteService, injected by Fx.
type QuoteServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	QuoteRepo    repository.QuoteRepository
	ProductRepo  repository.ProductRepository
	CustomerRepo repository.CustomerRepository
	SettingsRepo repository.SiteSettingRepository
	Mailer       service.Mailer
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewQuoteService is the constructor for quoteService.
func NewQuoteService(params QuoteServiceParams) usecase.QuoteUsecase {
	return &quoteService{
		txManager:    params.TxManager,
		quoteRepo:    params.QuoteRepo,
		productRepo:  params.ProductRepo,
		customerRepo: params.CustomerRepo,
		settingsRepo: params.SettingsRepo,
		mailer:       params.Mailer,
		events:       eventPublisher{publisher: params.Publisher, logger: params.Logger},
		cfg:          params.Config,
		logger:       params.Logger,
	}
}

func (srv *quoteService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *quoteService) List(ctx context.Context, filter repository.QuoteFilter) (*entity.Page[entity.Quote], error) {
	filter.ListParams = normalizeList(filter.ListParams)

	quotes, total, err := srv.quoteRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list quotes")
	}

	return page(quotes, total, filter.ListParams), nil
}

func (srv *quoteService) Get(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := srv.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get quote")
	}

	return quote, nil
}

// findCustomer loads the buyer a document refers to; a missing one is a client error.
func findCustomer(ctx context.Context, repo repository.CustomerRepository, id uuid.UUID) (*entity.Customer, error) {
	customer, err := repo.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, validationError("customer " + id.String() + " not found")
		}

		return nil, errors.Wrap(err, "failed to load customer")
	}

	return customer, nil
}

func (srv *quoteService) Create(ctx context.Context, input *usecase.CreateQuoteInput) (*entity.Quote, error) {
	customer, err := findCustomer(ctx, srv.customerRepo, input.CustomerID)
	if err != nil {
		return nil, err
	}

	items, err := buildLineItems(ctx, srv.productRepo, input.Items)
	if err != nil {
		return nil, err
	}

	if input.Tax != nil && input.Tax.IsNegative() {
		return nil, validationError("tax must not be negative")
	}

	now := time.Now().UTC()
	validUntil := input.ValidUntil
	if validUntil == nil {
		v := now.AddDate(0, 0, srv.cfg.Pricing.QuoteValidDays)
		validUntil = &v
	}

	totals := pricing.Calculate(items, input.Tax, taxRate(srv.cfg))
	quote := &entity.Quote{
		QuoteNumber: pricing.NewNumber(pricing.QuotePrefix, now),
		CustomerID:  customer.ID,
		Items:       items,
		Subtotal:    totals.Subtotal,
		Tax:         totals.Tax,
		TotalAmount: totals.TotalAmount,
		Status:      entity.QuoteStatusDraft,
		ValidUntil:  validUntil,
	}

	if err := srv.quoteRepo.Create(ctx, quote); err != nil {
		return nil, errors.Wrap(err, "failed to create quote")
	}
	quote.Customer = customer

	srv.log(ctx).Info("Quote created",
		slog.String("quote_number", quote.QuoteNumber),
		slog.String("total", quote.TotalAmount.String()),
	)

	return quote, nil
}

func (srv *quoteService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateQuoteInput) (*entity.Quote, error) {
	quote, err := srv.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load quote")
	}

	if input.Status != nil && *input.Status != quote.Status {
		if err := applyQuoteStatus(quote, *input.Status, time.Now().UTC()); err != nil {
			return nil, err
		}
	}
	set(&quote.RejectionReason, input.RejectionReason)
	if input.ValidUntil != nil {
		quote.ValidUntil = input.ValidUntil
	}

	if input.Items != nil || input.Tax != nil {
		if quote.Status == entity.QuoteStatusAccepted {
			return nil, domainerrors.ErrQuoteAlreadyAccepted.WithDetails("items of an accepted quote cannot change")
		}
		if input.Tax != nil && input.Tax.IsNegative() {
			return nil, validationError("tax must not be negative")
		}
		if input.Items != nil {
			items, err := buildLineItems(ctx, srv.productRepo, input.Items)
			if err != nil {
				return nil, err
			}
			quote.Items = items
		}

		// Without an explicit tax the configured rate applies to the new subtotal.
		totals := pricing.Calculate(quote.Items, input.Tax, taxRate(srv.cfg))
		quote.Subtotal = totals.Subtotal
		quote.Tax = totals.Tax
		quote.TotalAmount = totals.TotalAmount
	}

	if err := srv.quoteRepo.Update(ctx, quote); err != nil {
		return nil, errors.Wrap(err, "failed to update quote")
	}

	return quote, nil
}

// applyQuoteStatus moves a quote by manual edit. Acceptance only happens
// through Accept, which also creates the order.
func applyQuoteStatus(quote *entity.Quote, status entity.QuoteStatus, now time.Time) error {
	if !status.IsValid() {
		return validationError("unknown quote status " + string(status))
	}
	if quote.Status == entity.QuoteStatusAccepted {
		return domainerrors.ErrQuoteAlreadyAccepted
	}
	if status == entity.QuoteStatusAccepted {
		return validationError("use POST /api/quotes/accept to accept a quote")
	}

	quote.Status = status
	switch status {
	case entity.QuoteStatusRejected:
		quote.RejectedAt = &now
	case entity.QuoteStatusSent:
		if quote.SentAt == nil {
			quote.SentAt = &now
		}
	}

	return nil
}

func (srv *quoteService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.quoteRepo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete quote")
	}

	srv.log(ctx).Info("Quote deleted", slog.String("quote_id", id.String()))

	return nil
}

func (srv *quoteService) Send(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	quote, err := srv.quoteRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load quote")
	}

	if quote.Status == entity.QuoteStatusAccepted {
		return nil, domainerrors.ErrQuoteAlreadyAccepted
	}

	customer := quote.Customer
	if customer == nil {
		return nil, validationError("quote customer no longer exists")
	}
	if customer.Email == "" {
		return nil, validationError("customer has no email address")
	}

	if srv.mailer.Enabled() {
		settings := loadSettings(ctx, srv.settingsRepo, srv.log(ctx))

		msg, err := quoteEmail(settings.SiteName, srv.cfg.Pricing.Currency, quote, customer)
		if err != nil {
			return nil, err
		}

		if err := srv.mailer.Send(ctx, msg); err != nil {
			metrics.RecordOutboundFailure(metrics.ChannelEmail)
			srv.log(ctx).Error("Failed to email quote",
				slog.String("quote_number", quote.QuoteNumber),
				slog.Any("error", err),
			)

			return nil, domainerrors.ErrEmailDeliveryFailed.WithDetails(err.Error())
		}
	} else {
		srv.log(ctx).Warn("Mailer not configured, marking quote as sent without email",
			slog.String("quote_number", quote.QuoteNumber))
	}

	now := time.Now().UTC()
	quote.Status = entity.QuoteStatusSent
	quote.SentAt = &now

	if err := srv.quoteRepo.Update(ctx, quote); err != nil {
		return nil, errors.Wrap(err, "failed to mark quote as sent")
	}

	srv.events.publish(ctx, service.EventQuoteSent, quote.ID.String(), map[string]any{
		"quoteNumber": quote.QuoteNumber,
		"customerId":  quote.CustomerID.String(),
	})

	return quote, nil
}

func (srv *quoteService) Accept(ctx context.Context, id uuid.UUID) (*usecase.AcceptQuoteOutput, error) {
	var out usecase.AcceptQuoteOutput

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		quoteRepo := repoFactory.NewQuoteRepository()
		orderRepo := repoFactory.NewOrderRepository()

		quote, err := quoteRepo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if quote.Status == entity.QuoteStatusAccepted {
			return domainerrors.ErrQuoteAlreadyAccepted
		}

		existing, err := orderRepo.FindByQuoteID(ctx, quote.ID)
		if err == nil && existing != nil {
			return domainerrors.ErrQuoteAlreadyAccepted.WithDetails("order " + existing.OrderNumber)
		}
		if err != nil && !isNotFound(err) {
			return err
		}

		now := time.Now().UTC()
		quoteID := quote.ID
		order := &entity.Order{
			OrderNumber:   pricing.NewNumber(pricing.OrderPrefix, now),
			CustomerID:    quote.CustomerID,
			QuoteID:       &quoteID,
			Items:         quote.Items,
			Subtotal:      quote.Subtotal,
			Tax:           quote.Tax,
			TotalAmount:   quote.TotalAmount,
			PaymentStatus: entity.PaymentStatusPending,
			OrderStatus:   entity.OrderStatusPending,
		}
		if err := orderRepo.Create(ctx, order); err != nil {
			return err
		}
		order.Customer = quote.Customer

		quote.Status = entity.QuoteStatusAccepted
		quote.AcceptedAt = &now
		if err := quoteRepo.Update(ctx, quote); err != nil {
			return err
		}

		out.Quote = quote
		out.Order = order

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to accept quote")
	}

	srv.log(ctx).Info("Quote accepted",
		slog.String("quote_number", out.Quote.QuoteNumber),
		slog.String("order_number", out.Order.OrderNumber),
	)

	srv.events.publish(ctx, service.EventQuoteAccepted, out.Quote.ID.String(), map[string]any{
		"quoteNumber": out.Quote.QuoteNumber,
		"orderId":     out.Order.ID.String(),
	})
	srv.events.publish(ctx, service.EventOrderCreated, out.Order.ID.String(), map[string]any{
		"orderNumber": out.Order.OrderNumber,
		"totalAmount": out.Order.TotalAmount.String(),
	})

	return &out, nil
}
