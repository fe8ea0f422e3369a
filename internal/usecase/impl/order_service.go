package impl

import (
	"context"
	"log/slog"
	"time"

	"solar/config"
	deliverycontext "solar/internal/delivery/context"
	"solar/internal/domain/entity"
	"solar/internal/domain/pricing"
	"solar/internal/domain/repository"
	"solar/internal/domain/service"
	"solar/internal/errors"
	"solar/internal/infra/metrics"
	"solar/internal/usecase"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type orderService struct {
	txManager    repository.TransactionManager
	orderRepo    repository.OrderRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	sms          service.SMSSender
	events       eventPublisher
	cfg          *config.Config
	logger       *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	OrderRepo    repository.OrderRepository
	ProductRepo  repository.ProductRepository
	CustomerRepo repository.CustomerRepository
	SMS          service.SMSSender
	Publisher    service.EventPublisher
	Config       *config.Config
	Logger       *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:    params.TxManager,
		orderRepo:    params.OrderRepo,
		productRepo:  params.ProductRepo,
		customerRepo: params.CustomerRepo,
		sms:          params.SMS,
		events:       eventPublisher{publisher: params.Publisher, logger: params.Logger},
		cfg:          params.Config,
		logger:       params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *orderService) List(ctx context.Context, filter repository.OrderFilter) (*entity.Page[entity.Order], error) {
	filter.ListParams = normalizeList(filter.ListParams)

	orders, total, err := srv.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return page(orders, total, filter.ListParams), nil
}

func (srv *orderService) Get(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get order")
	}

	return order, nil
}

func (srv *orderService) Create(ctx context.Context, input *usecase.CreateOrderInput) (*entity.Order, error) {
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

	totals := pricing.Calculate(items, input.Tax, taxRate(srv.cfg))
	order := &entity.Order{
		OrderNumber:     pricing.NewNumber(pricing.OrderPrefix, time.Now()),
		CustomerID:      customer.ID,
		Items:           items,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		TotalAmount:     totals.TotalAmount,
		PaymentStatus:   entity.PaymentStatusPending,
		OrderStatus:     entity.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
		Notes:           input.Notes,
	}
	if order.ShippingAddress == "" {
		order.ShippingAddress = customer.Address
	}

	if err := srv.orderRepo.Create(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to create order")
	}
	order.Customer = customer

	srv.log(ctx).Info("Order created", slog.String("order_number", order.OrderNumber))
	srv.events.publish(ctx, service.EventOrderCreated, order.ID.String(), map[string]any{
		"orderNumber": order.OrderNumber,
		"totalAmount": order.TotalAmount.String(),
	})

	return order, nil
}

func (srv *orderService) Update(ctx context.Context, id uuid.UUID, input *usecase.UpdateOrderInput) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load order")
	}

	previous := order.OrderStatus
	if input.OrderStatus != nil {
		if !input.OrderStatus.IsValid() {
			return nil, validationError("unknown order status " + string(*input.OrderStatus))
		}
		order.OrderStatus = *input.OrderStatus
	}
	if input.PaymentStatus != nil {
		if !input.PaymentStatus.IsValid() {
			return nil, validationError("unknown payment status " + string(*input.PaymentStatus))
		}
		order.PaymentStatus = *input.PaymentStatus
	}
	set(&order.ShippingAddress, input.ShippingAddress)
	set(&order.Notes, input.Notes)

	if err := srv.orderRepo.Update(ctx, order); err != nil {
		return nil, errors.Wrap(err, "failed to update order")
	}

	if order.OrderStatus != previous {
		srv.log(ctx).Info("Order status changed",
			slog.String("order_number", order.OrderNumber),
			slog.String("from", string(previous)),
			slog.String("to", string(order.OrderStatus)),
		)
		srv.events.publish(ctx, service.EventOrderStatusChanged, order.ID.String(), map[string]any{
			"orderNumber": order.OrderNumber,
			"from":        string(previous),
			"to":          string(order.OrderStatus),
		})
		srv.notifyStatus(ctx, order)
	}

	return order, nil
}

// notifyStatus texts the customer about a status change. Failures are logged only.
func (srv *orderService) notifyStatus(ctx context.Context, order *entity.Order) {
	if !srv.sms.Enabled() || order.Customer == nil || order.Customer.Phone == "" {
		return
	}

	body := "Your order " + order.OrderNumber + " is now " + string(order.OrderStatus) + "."
	if err := srv.sms.Send(ctx, order.Customer.Phone, body); err != nil {
		metrics.RecordOutboundFailure(metrics.ChannelSMS)
		srv.log(ctx).Warn("Failed to send order status SMS",
			slog.String("order_number", order.OrderNumber),
			slog.Any("error", err),
		)
	}
}

func (srv *orderService) Delete(ctx context.Context, id uuid.UUID) error {
	var removed int64

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		n, err := repoFactory.NewInvoiceRepository().DeleteByOrderID(ctx, id)
		if err != nil {
			return err
		}
		removed = n

		return repoFactory.NewOrderRepository().Delete(ctx, id)
	})
	if err != nil {
		return errors.Wrap(err, "failed to delete order")
	}

	srv.log(ctx).Info("Order deleted",
		slog.String("order_id", id.String()),
		slog.Int64("invoices_removed", removed),
	)

	return nil
}
