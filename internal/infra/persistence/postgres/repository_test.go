package postgres

import (
	"context"
	"testing"

	"solar/internal/domain/entity"
	domainerrors "solar/internal/domain/errors"
	"solar/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := OpenMemory("")
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) (*entity.Category, *entity.Product) {
	t.Helper()
	ctx := context.Background()

	category := &entity.Category{Name: "Panels", Slug: "panels", IsActive: true}
	require.NoError(t, NewCategoryRepository(db).Create(ctx, category))

	product := &entity.Product{
		Name:       "X",
		Slug:       "x",
		CategoryID: category.ID,
		Price:      decimal.NewFromInt(100),
		SKU:        "SKU1",
		IsActive:   true,
	}
	require.NoError(t, NewProductRepository(db).Create(ctx, product))

	return category, product
}

func TestUserRepository_CreateAndFindByEmail(t *testing.T) {
	db := newTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := &entity.User{Email: " Admin@Example.com ", Name: "Admin", Role: entity.RoleAdmin, PasswordHash: "x", IsActive: true}
	require.NoError(t, repo.Create(ctx, user))
	assert.NotEqual(t, uuid.Nil, user.ID)
	assert.Equal(t, "admin@example.com", user.Email)

	found, err := repo.FindByEmail(ctx, "ADMIN@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)

	dup := &entity.User{Email: "admin@example.com", Name: "Other", Role: entity.RoleCustomer, PasswordHash: "y"}
	err = repo.Create(ctx, dup)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserRepository_UpdateMissing(t *testing.T) {
	repo := NewUserRepository(newTestDB(t))

	err := repo.Update(context.Background(), &entity.User{ID: uuid.New(), Email: "a@b.c", Name: "n", Role: "viewer"})
	assert.True(t, errors.Is(err, domainerrors.ErrUserNotFound))
}

func TestProductRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	category, product := seedCatalog(t, db)

	other := &entity.Category{Name: "Inverters", Slug: "inverters"}
	require.NoError(t, NewCategoryRepository(db).Create(ctx, other))
	require.NoError(t, NewProductRepository(db).Create(ctx, &entity.Product{
		Name: "Hybrid Inverter", Slug: "hybrid", CategoryID: other.ID, Price: decimal.NewFromInt(900), SKU: "INV1",
	}))

	repo := NewProductRepository(db)

	items, total, err := repo.List(ctx, repository.ProductFilter{
		ListParams: repository.ListParams{Limit: 20},
		CategoryID: &category.ID,
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, product.ID, items[0].ID)
	require.NotNil(t, items[0].Category)
	assert.Equal(t, "panels", items[0].Category.Slug)

	minPrice := decimal.NewFromInt(500)
	items, _, err = repo.List(ctx, repository.ProductFilter{ListParams: repository.ListParams{Limit: 20}, MinPrice: &minPrice})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "hybrid", items[0].Slug)

	items, _, err = repo.List(ctx, repository.ProductFilter{ListParams: repository.ListParams{Limit: 20, Search: "INVERTER"}})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "INV1", items[0].SKU)
}

func TestProductRepository_DuplicateSKU(t *testing.T) {
	db := newTestDB(t)
	category, _ := seedCatalog(t, db)

	err := NewProductRepository(db).Create(context.Background(), &entity.Product{
		Name: "Y", Slug: "y", CategoryID: category.ID, Price: decimal.NewFromInt(1), SKU: "SKU1",
	})
	assert.True(t, errors.Is(err, domainerrors.ErrConflict))
}

func TestQuoteRepository_PopulatesReferences(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	_, product := seedCatalog(t, db)

	customer := &entity.Customer{Name: "Acme", Email: "ops@acme.test", Segment: entity.SegmentCommercial, IsActive: true}
	require.NoError(t, NewCustomerRepository(db).Create(ctx, customer))

	quote := &entity.Quote{
		QuoteNumber: "QT-20260101-ABCDEF",
		CustomerID:  customer.ID,
		Items:       []entity.LineItem{{ProductID: product.ID, Quantity: 2, Price: decimal.NewFromInt(500)}},
		Subtotal:    decimal.NewFromInt(1000),
		Tax:         decimal.NewFromInt(180),
		TotalAmount: decimal.NewFromInt(1180),
		Status:      entity.QuoteStatusDraft,
	}
	repo := NewQuoteRepository(db)
	require.NoError(t, repo.Create(ctx, quote))

	found, err := repo.FindByID(ctx, quote.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Customer)
	assert.Equal(t, "Acme", found.Customer.Name)
	require.Len(t, found.Items, 1)
	require.NotNil(t, found.Items[0].Product)
	assert.Equal(t, "X", found.Items[0].Product.Name)
	assert.True(t, found.TotalAmount.Equal(decimal.NewFromInt(1180)))
}

func TestCustomerRepository_DeleteKeepsQuotesAndOrders(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	customer := &entity.Customer{Name: "Acme", Email: "ops@acme.test", Segment: entity.SegmentResidential}
	require.NoError(t, NewCustomerRepository(db).Create(ctx, customer))

	quote := &entity.Quote{QuoteNumber: "QT-1", CustomerID: customer.ID, Status: entity.QuoteStatusDraft}
	require.NoError(t, NewQuoteRepository(db).Create(ctx, quote))
	order := &entity.Order{
		OrderNumber: "ORD-1", CustomerID: customer.ID,
		OrderStatus: entity.OrderStatusPending, PaymentStatus: entity.PaymentStatusPending,
	}
	require.NoError(t, NewOrderRepository(db).Create(ctx, order))

	require.NoError(t, NewCustomerRepository(db).Delete(ctx, customer.ID))

	_, err := NewQuoteRepository(db).FindByID(ctx, quote.ID)
	require.NoError(t, err)
	foundOrder, err := NewOrderRepository(db).FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Nil(t, foundOrder.Customer)
}

func TestInvoiceRepository_DeleteByOrderID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	repo := NewInvoiceRepository(db)
	orderID := uuid.New()
	otherOrderID := uuid.New()

	for i, oid := range []uuid.UUID{orderID, orderID, otherOrderID} {
		require.NoError(t, repo.Create(ctx, &entity.Invoice{
			InvoiceNumber: "INV-" + string(rune('A'+i)),
			OrderID:       oid,
			PaymentStatus: entity.InvoiceUnpaid,
		}))
	}

	n, err := repo.DeleteByOrderID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, total, err := repo.List(ctx, repository.InvoiceFilter{ListParams: repository.ListParams{Limit: 10}})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	tm := NewTransactionManager(db)
	boom := errors.New("boom")

	err := tm.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.NewCustomerRepository().Create(ctx, &entity.Customer{Name: "Temp", Email: "t@t.t", Segment: entity.SegmentResidential}); err != nil {
			return err
		}

		return boom
	})
	require.ErrorIs(t, err, boom)

	_, total, err := NewCustomerRepository(db).List(ctx, repository.CustomerFilter{ListParams: repository.ListParams{Limit: 10}})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestSiteSettingRepository_Upsert(t *testing.T) {
	repo := NewSiteSettingRepository(newTestDB(t))
	ctx := context.Background()

	_, err := repo.Get(ctx)
	assert.True(t, errors.Is(err, domainerrors.ErrNotFound))

	first := &entity.SiteSetting{SiteName: "Sunrise Solar", SocialLinks: map[string]string{"x": "https://x.test"}}
	require.NoError(t, repo.Upsert(ctx, first))

	second := &entity.SiteSetting{SiteName: "Sunrise Solar Pvt"}
	require.NoError(t, repo.Upsert(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sunrise Solar Pvt", got.SiteName)
	assert.Empty(t, got.SocialLinks)
}

func TestBlogRepository_TagFilter(t *testing.T) {
	repo := NewBlogRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &entity.Blog{Title: "Net metering", Slug: "net-metering", Content: "...", Tags: []string{"Policy", "grid"}, IsPublished: true}))
	require.NoError(t, repo.Create(ctx, &entity.Blog{Title: "Cleaning panels", Slug: "cleaning", Content: "...", Tags: []string{"maintenance"}}))

	published := true
	items, total, err := repo.List(ctx, repository.BlogFilter{ListParams: repository.ListParams{Limit: 10}, Tag: "policy", Published: &published})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, items, 1)
	assert.Equal(t, "net-metering", items[0].Slug)
}

func TestRepositories_CreateKeepsInactiveFlag(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	user := &entity.User{Email: "off@example.com", Name: "Off", Role: entity.RoleViewer, PasswordHash: "x"}
	require.NoError(t, NewUserRepository(db).Create(ctx, user))
	foundUser, err := NewUserRepository(db).FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, foundUser.IsActive)

	customer := &entity.Customer{Name: "Off", Email: "off@example.com", Segment: entity.SegmentResidential}
	require.NoError(t, NewCustomerRepository(db).Create(ctx, customer))
	foundCustomer, err := NewCustomerRepository(db).FindByID(ctx, customer.ID)
	require.NoError(t, err)
	assert.False(t, foundCustomer.IsActive)

	category := &entity.Category{Name: "Hidden", Slug: "hidden"}
	require.NoError(t, NewCategoryRepository(db).Create(ctx, category))
	foundCategory, err := NewCategoryRepository(db).FindByID(ctx, category.ID)
	require.NoError(t, err)
	assert.False(t, foundCategory.IsActive)

	product := &entity.Product{Name: "Hidden", Slug: "hidden", CategoryID: category.ID, Price: decimal.NewFromInt(1), SKU: "HID-1"}
	require.NoError(t, NewProductRepository(db).Create(ctx, product))
	foundProduct, err := NewProductRepository(db).FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.False(t, foundProduct.IsActive)

	faq := &entity.FAQ{Question: "Q?", Answer: "A."}
	require.NoError(t, NewFAQRepository(db).Create(ctx, faq))
	foundFAQ, err := NewFAQRepository(db).FindByID(ctx, faq.ID)
	require.NoError(t, err)
	assert.False(t, foundFAQ.IsActive)

	slide := &entity.CarouselItem{Title: "Slide", Image: "/uploads/slide.png"}
	require.NoError(t, NewCarouselRepository(db).Create(ctx, slide))
	foundSlide, err := NewCarouselRepository(db).FindByID(ctx, slide.ID)
	require.NoError(t, err)
	assert.False(t, foundSlide.IsActive)
}
