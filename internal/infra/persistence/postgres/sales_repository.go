package postgres

import (
	"context"

	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/repository"
	"solar/internal/infra/persistence/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var errDocumentNumberConflict = domainerrors.ErrConflict.WithDetails("document number already exists")

// populateLines fills customers and product summaries for quotes and orders.
func populateLines(ctx context.Context, db *gorm.DB, customerIDs []uuid.UUID, lines [][]entity.LineItem) (map[uuid.UUID]*entity.Customer, error) {
	customers, err := loadCustomers(ctx, db, customerIDs)
	if err != nil {
		return nil, err
	}

	var productIDs []uuid.UUID
	for _, items := range lines {
		for _, it := range items {
			productIDs = append(productIDs, it.ProductID)
		}
	}

	products, err := loadProductSummaries(ctx, db, productIDs)
	if err != nil {
		return nil, err
	}
	for _, items := range lines {
		for i := range items {
			items[i].Product = products[items[i].ProductID]
		}
	}

	return customers, nil
}

type quoteRepository struct {
	db *gorm.DB
}

// NewQuoteRepository creates the GORM-backed quote store.
func NewQuoteRepository(db *gorm.DB) repository.QuoteRepository {
	return &quoteRepository{db: db}
}

func (repo *quoteRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Quote, error) {
	var quoteM model.QuoteModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&quoteM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrQuoteNotFound, "failed to find quote")
	}

	quotes := []*entity.Quote{toQuoteDomain(&quoteM)}
	if err := repo.populate(ctx, quotes); err != nil {
		return nil, err
	}

	return quotes[0], nil
}

func (repo *quoteRepository) List(ctx context.Context, filter repository.QuoteFilter) ([]*entity.Quote, int64, error) {
	rows, total, err := findPage[model.QuoteModel](ctx, repo.db, filter.ListParams, "created_at DESC",
		searchScope(filter.Search, "quote_number"),
		func(db *gorm.DB) *gorm.DB {
			if filter.Status != "" {
				db = db.Where("status = ?", string(filter.Status))
			}
			if filter.CustomerID != nil {
				db = db.Where("customer_id = ?", *filter.CustomerID)
			}

			return db
		},
	)
	if err != nil {
		return nil, 0, err
	}

	quotes := make([]*entity.Quote, 0, len(rows))
	for i := range rows {
		quotes = append(quotes, toQuoteDomain(&rows[i]))
	}
	if err := repo.populate(ctx, quotes); err != nil {
		return nil, 0, err
	}

	return quotes, total, nil
}

func (repo *quoteRepository) populate(ctx context.Context, quotes []*entity.Quote) error {
	customerIDs := make([]uuid.UUID, 0, len(quotes))
	lines := make([][]entity.LineItem, 0, len(quotes))
	for _, q := range quotes {
		customerIDs = append(customerIDs, q.CustomerID)
		lines = append(lines, q.Items)
	}

	customers, err := populateLines(ctx, repo.db, customerIDs, lines)
	if err != nil {
		return err
	}
	for _, q := range quotes {
		q.Customer = customers[q.CustomerID]
	}

	return nil
}

func (repo *quoteRepository) Create(ctx context.Context, quote *entity.Quote) error {
	quoteM := fromQuoteDomain(quote)
	if err := repo.db.WithContext(ctx).Create(quoteM).Error; err != nil {
		return translateWriteError(err, errDocumentNumberConflict, "failed to create quote")
	}

	quote.ID = quoteM.ID
	quote.CreatedAt = quoteM.CreatedAt
	quote.UpdatedAt = quoteM.UpdatedAt

	return nil
}

func (repo *quoteRepository) Update(ctx context.Context, quote *entity.Quote) error {
	quoteM := fromQuoteDomain(quote)
	if err := saveExisting(ctx, repo.db, quote.ID, quoteM, domainerrors.ErrQuoteNotFound, errDocumentNumberConflict); err != nil {
		return err
	}
	quote.UpdatedAt = quoteM.UpdatedAt

	return nil
}

func (repo *quoteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.QuoteModel](ctx, repo.db, id, domainerrors.ErrQuoteNotFound)
}

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates the GORM-backed order store.
func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepository{db: db}
}

func (repo *orderRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&orderM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrOrderNotFound, "failed to find order")
	}

	orders := []*entity.Order{toOrderDomain(&orderM)}
	if err := repo.populate(ctx, orders); err != nil {
		return nil, err
	}

	return orders[0], nil
}

func (repo *orderRepository) FindByQuoteID(ctx context.Context, quoteID uuid.UUID) (*entity.Order, error) {
	var orderM model.OrderModel
	if err := repo.db.WithContext(ctx).Where("quote_id = ?", quoteID).First(&orderM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrOrderNotFound, "failed to find order by quote")
	}

	return toOrderDomain(&orderM), nil
}

func (repo *orderRepository) List(ctx context.Context, filter repository.OrderFilter) ([]*entity.Order, int64, error) {
	rows, total, err := findPage[model.OrderModel](ctx, repo.db, filter.ListParams, "created_at DESC",
		searchScope(filter.Search, "order_number", "shipping_address", "notes"),
		func(db *gorm.DB) *gorm.DB {
			if filter.OrderStatus != "" {
				db = db.Where("order_status = ?", string(filter.OrderStatus))
			}
			if filter.PaymentStatus != "" {
				db = db.Where("payment_status = ?", string(filter.PaymentStatus))
			}
			if filter.CustomerID != nil {
				db = db.Where("customer_id = ?", *filter.CustomerID)
			}

			return db
		},
	)
	if err != nil {
		return nil, 0, err
	}

	orders := make([]*entity.Order, 0, len(rows))
	for i := range rows {
		orders = append(orders, toOrderDomain(&rows[i]))
	}
	if err := repo.populate(ctx, orders); err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (repo *orderRepository) populate(ctx context.Context, orders []*entity.Order) error {
	customerIDs := make([]uuid.UUID, 0, len(orders))
	lines := make([][]entity.LineItem, 0, len(orders))
	for _, o := range orders {
		customerIDs = append(customerIDs, o.CustomerID)
		lines = append(lines, o.Items)
	}

	customers, err := populateLines(ctx, repo.db, customerIDs, lines)
	if err != nil {
		return err
	}
	for _, o := range orders {
		o.Customer = customers[o.CustomerID]
	}

	return nil
}

func (repo *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)
	if err := repo.db.WithContext(ctx).Create(orderM).Error; err != nil {
		return translateWriteError(err, errDocumentNumberConflict, "failed to create order")
	}

	order.ID = orderM.ID
	order.CreatedAt = orderM.CreatedAt
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

func (repo *orderRepository) Update(ctx context.Context, order *entity.Order) error {
	orderM := fromOrderDomain(order)
	if err := saveExisting(ctx, repo.db, order.ID, orderM, domainerrors.ErrOrderNotFound, errDocumentNumberConflict); err != nil {
		return err
	}
	order.UpdatedAt = orderM.UpdatedAt

	return nil
}

func (repo *orderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.OrderModel](ctx, repo.db, id, domainerrors.ErrOrderNotFound)
}

type invoiceRepository struct {
	db *gorm.DB
}

// NewInvoiceRepository creates the GORM-backed invoice store.
func NewInvoiceRepository(db *gorm.DB) repository.InvoiceRepository {
	return &invoiceRepository{db: db}
}

func (repo *invoiceRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Invoice, error) {
	var invoiceM model.InvoiceModel
	if err := repo.db.WithContext(ctx).Where("id = ?", id).First(&invoiceM).Error; err != nil {
		return nil, translateReadError(err, domainerrors.ErrInvoiceNotFound, "failed to find invoice")
	}

	return toInvoiceDomain(&invoiceM), nil
}

func (repo *invoiceRepository) List(ctx context.Context, filter repository.InvoiceFilter) ([]*entity.Invoice, int64, error) {
	rows, total, err := findPage[model.InvoiceModel](ctx, repo.db, filter.ListParams, "issue_date DESC",
		searchScope(filter.Search, "invoice_number"),
		func(db *gorm.DB) *gorm.DB {
			if filter.OrderID != nil {
				db = db.Where("order_id = ?", *filter.OrderID)
			}
			if filter.PaymentStatus != "" {
				db = db.Where("payment_status = ?", string(filter.PaymentStatus))
			}

			return db
		},
	)
	if err != nil {
		return nil, 0, err
	}

	invoices := make([]*entity.Invoice, 0, len(rows))
	for i := range rows {
		invoices = append(invoices, toInvoiceDomain(&rows[i]))
	}

	return invoices, total, nil
}

func (repo *invoiceRepository) Create(ctx context.Context, invoice *entity.Invoice) error {
	invoiceM := fromInvoiceDomain(invoice)
	if err := repo.db.WithContext(ctx).Create(invoiceM).Error; err != nil {
		return translateWriteError(err, errDocumentNumberConflict, "failed to create invoice")
	}

	invoice.ID = invoiceM.ID
	invoice.CreatedAt = invoiceM.CreatedAt
	invoice.UpdatedAt = invoiceM.UpdatedAt

	return nil
}

func (repo *invoiceRepository) Update(ctx context.Context, invoice *entity.Invoice) error {
	invoiceM := fromInvoiceDomain(invoice)
	if err := saveExisting(ctx, repo.db, invoice.ID, invoiceM, domainerrors.ErrInvoiceNotFound, errDocumentNumberConflict); err != nil {
		return err
	}
	invoice.UpdatedAt = invoiceM.UpdatedAt

	return nil
}

func (repo *invoiceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return deleteByID[model.InvoiceModel](ctx, repo.db, id, domainerrors.ErrInvoiceNotFound)
}

func (repo *invoiceRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) (int64, error) {
	res := repo.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.InvoiceModel{})
	if res.Error != nil {
		return 0, domainerrors.NewDatabaseExecuteError(res.Error, "failed to delete order invoices")
	}

	return res.RowsAffected, nil
}
