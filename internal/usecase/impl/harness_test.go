package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"solar/config"
	"solar/internal/domain/entity"
	"solar/internal/domain/repository"
	"solar/internal/domain/service"
	"solar/internal/errors"
	"solar/internal/infra/auth"
	"solar/internal/infra/authz"
	"solar/internal/infra/persistence/postgres"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeMailer struct {
	enabled bool
	err     error
	sent    []*service.EmailMessage
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) Send(_ context.Context, msg *service.EmailMessage) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)

	return nil
}

type fakeSMS struct {
	to   []string
	body []string
}

func (s *fakeSMS) Enabled() bool { return true }

func (s *fakeSMS) Send(_ context.Context, to, body string) error {
	s.to = append(s.to, to)
	s.body = append(s.body, body)

	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []*service.DomainEvent
}

func (p *recordingPublisher) Publish(_ context.Context, event *service.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}

	return out
}

type memoryStorage struct {
	err     error
	objects map[string][]byte
}

func (s *memoryStorage) Put(_ context.Context, key string, data []byte, _ string) (*service.StoredObject, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.objects == nil {
		s.objects = map[string][]byte{}
	}
	s.objects[key] = data

	return &service.StoredObject{Key: key, URL: "https://cdn.test/" + key}, nil
}

func (s *memoryStorage) Delete(_ context.Context, key string) error {
	delete(s.objects, key)

	return nil
}

type stubRenderer struct {
	err error
}

func (r stubRenderer) Render(context.Context, *service.InvoiceDocument) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}

	return []byte("%PDF-1.3 stub"), nil
}

// harness wires the use cases against a fresh in-memory database.
type harness struct {
	db         *gorm.DB
	cfg        *config.Config
	logger     *slog.Logger
	tx         repository.TransactionManager
	users      repository.UserRepository
	roles      repository.RoleRepository
	customers  repository.CustomerRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
	quotes     repository.QuoteRepository
	orders     repository.OrderRepository
	invoices   repository.InvoiceRepository
	settings   repository.SiteSettingRepository
	hasher     service.PasswordHasher
	authorizer service.Authorizer
	mailer     *fakeMailer
	sms        *fakeSMS
	events     *recordingPublisher
	storage    *memoryStorage
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Env.Env = "test"
	cfg.HTTP.PublicURL = "http://localhost:8080"
	cfg.Session = config.SessionConfig{Secret: "test-secret", CookieName: "session", MaxAge: time.Hour}
	cfg.Auth = &config.AuthConfig{BcryptCost: bcrypt.MinCost, MinPasswordLength: 8}
	cfg.Admin = config.AdminConfig{Email: "admin@example.com", Password: "admin12345", Name: "Administrator"}
	cfg.Pricing = config.PricingConfig{TaxRate: "0.18", InvoiceDueDays: 30, QuoteValidDays: 30, Currency: "INR"}

	return cfg
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	db, err := postgres.OpenMemory("")
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	h := &harness{
		db:         db,
		cfg:        testConfig(),
		logger:     logger,
		tx:         postgres.NewTransactionManager(db),
		users:      postgres.NewUserRepository(db),
		roles:      postgres.NewRoleRepository(db),
		customers:  postgres.NewCustomerRepository(db),
		categories: postgres.NewCategoryRepository(db),
		products:   postgres.NewProductRepository(db),
		quotes:     postgres.NewQuoteRepository(db),
		orders:     postgres.NewOrderRepository(db),
		invoices:   postgres.NewInvoiceRepository(db),
		settings:   postgres.NewSiteSettingRepository(db),
		hasher:     auth.NewBcryptHasherWithCost(bcrypt.MinCost),
		mailer:     &fakeMailer{enabled: true},
		sms:        &fakeSMS{},
		events:     &recordingPublisher{},
		storage:    &memoryStorage{},
	}

	h.authorizer, err = authz.New(authz.Params{Roles: h.roles, Logger: logger})
	require.NoError(t, err)

	require.NoError(t, h.seedService().Seed(context.Background()))

	return h
}

func (h *harness) seedService() *seedService {
	return NewSeedService(SeedServiceParams{
		RoleRepo: h.roles, UserRepo: h.users, Hasher: h.hasher,
		Authorizer: h.authorizer, Config: h.cfg, Logger: h.logger,
	}).(*seedService)
}

func (h *harness) authService(t *testing.T) *authService {
	t.Helper()

	codec, err := auth.NewSessionCodec(h.cfg)
	require.NoError(t, err)

	return NewAuthService(AuthServiceParams{
		UserRepo: h.users, Hasher: h.hasher, Codec: codec, Config: h.cfg, Logger: h.logger,
	}).(*authService)
}

func (h *harness) quoteService() *quoteService {
	return NewQuoteService(QuoteServiceParams{
		TxManager: h.tx, QuoteRepo: h.quotes, ProductRepo: h.products, CustomerRepo: h.customers,
		SettingsRepo: h.settings, Mailer: h.mailer, Publisher: h.events, Config: h.cfg, Logger: h.logger,
	}).(*quoteService)
}

func (h *harness) orderService() *orderService {
	return NewOrderService(OrderServiceParams{
		TxManager: h.tx, OrderRepo: h.orders, ProductRepo: h.products, CustomerRepo: h.customers,
		SMS: h.sms, Publisher: h.events, Config: h.cfg, Logger: h.logger,
	}).(*orderService)
}

func (h *harness) invoiceService(renderer service.InvoiceRenderer) *invoiceService {
	return NewInvoiceService(InvoiceServiceParams{
		TxManager: h.tx, OrderRepo: h.orders, InvoiceRepo: h.invoices, SettingsRepo: h.settings,
		Renderer: renderer, Storage: h.storage, Publisher: h.events, Config: h.cfg, Logger: h.logger,
	}).(*invoiceService)
}

// seedSale creates a category, a product priced 500 and a customer.
func (h *harness) seedSale(t *testing.T) (*entity.Product, *entity.Customer) {
	t.Helper()
	ctx := context.Background()

	category := &entity.Category{Name: "Panels", Slug: "panels", IsActive: true}
	require.NoError(t, h.categories.Create(ctx, category))

	product := &entity.Product{
		Name: "Mono 400W", Slug: "mono-400w", CategoryID: category.ID,
		Price: decimal.NewFromInt(500), SKU: "PNL-400", IsActive: true,
	}
	require.NoError(t, h.products.Create(ctx, product))

	customer := &entity.Customer{
		Name: "Asha", Email: "asha@example.com", Phone: "+15550001111",
		Segment: entity.SegmentResidential, IsActive: true,
	}
	require.NoError(t, h.customers.Create(ctx, customer))

	return product, customer
}

var errBoom = errors.New("boom")

func testConfigLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
