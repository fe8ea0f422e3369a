package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"solar/config"
	apimiddleware "solar/internal/delivery/api/middleware"
	"solar/internal/delivery/api/router"
	"solar/internal/delivery/api/router/handler"
	"solar/internal/domain/entity"
	"solar/internal/domain/repository"
	"solar/internal/domain/service"
	"solar/internal/infra/auth"
	"solar/internal/infra/authz"
	"solar/internal/infra/notification"
	"solar/internal/infra/pdf"
	"solar/internal/infra/persistence/postgres"
	"solar/internal/infra/qrcode"
	"solar/internal/infra/storage"
	"solar/internal/usecase"
	"solar/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminEmail    = "admin@example.com"
	adminPassword = "admin12345"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []string
}

func (p *recordingPublisher) Publish(_ context.Context, event *service.DomainEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event.Type)

	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data"`
	Error      *struct {
		Code    string `json:"code"`
		Details any    `json:"details"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	echo   *echo.Echo
	cfg    *config.Config
	hasher service.PasswordHasher
	users  repository.UserRepository
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Env.Env = "test"
	cfg.HTTP.PublicURL = "http://localhost:8080"
	cfg.HTTP.MaxRequestBodySize = "10M"
	cfg.Session = config.SessionConfig{Secret: "test-secret", CookieName: "session", MaxAge: time.Hour}
	cfg.Auth = &config.AuthConfig{BcryptCost: bcrypt.MinCost, MinPasswordLength: 8}
	cfg.Admin = config.AdminConfig{Email: adminEmail, Password: adminPassword, Name: "Administrator"}
	cfg.Pricing = config.PricingConfig{TaxRate: "0.18", InvoiceDueDays: 30, QuoteValidDays: 30, Currency: "INR"}
	cfg.Storage = config.StorageConfig{BucketURL: "mem://", PublicBaseURL: "https://cdn.test"}
	cfg.RateLimit = config.RateLimitConfig{LoginPerMinute: 600, LoginBurst: 600}

	return cfg
}

// newTestServer wires the full API against a fresh in-memory database.
func newTestServer(t *testing.T, configure ...func(*config.Config)) *testServer {
	t.Helper()
	ctx := context.Background()

	cfg := testConfig()
	for _, fn := range configure {
		fn(cfg)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := postgres.OpenMemory("")
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	tx := postgres.NewTransactionManager(db)
	users := postgres.NewUserRepository(db)
	roles := postgres.NewRoleRepository(db)
	customers := postgres.NewCustomerRepository(db)
	categories := postgres.NewCategoryRepository(db)
	products := postgres.NewProductRepository(db)
	quotes := postgres.NewQuoteRepository(db)
	orders := postgres.NewOrderRepository(db)
	invoices := postgres.NewInvoiceRepository(db)
	settings := postgres.NewSiteSettingRepository(db)

	hasher := auth.NewBcryptHasherWithCost(bcrypt.MinCost)
	codec, err := auth.NewSessionCodec(cfg)
	require.NoError(t, err)
	authorizer, err := authz.New(authz.Params{Roles: roles, Logger: logger})
	require.NoError(t, err)

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	objects := storage.NewBucketStorage(bucket, cfg.Storage.PublicBaseURL)
	publisher := &recordingPublisher{}
	mailer := notification.NewMailer(cfg, logger)
	sms := notification.NewSMSSender(cfg, logger)
	renderer := pdf.NewInvoiceRenderer(qrcode.New(cfg), logger)

	seed := impl.NewSeedService(impl.SeedServiceParams{
		RoleRepo: roles, UserRepo: users, Hasher: hasher, Authorizer: authorizer, Config: cfg, Logger: logger,
	})
	require.NoError(t, seed.Seed(ctx))

	routerParams := router.RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
			AuthUC: impl.NewAuthService(impl.AuthServiceParams{
				UserRepo: users, Hasher: hasher, Codec: codec, Config: cfg, Logger: logger,
			}),
			Codec: codec, Config: cfg, Logger: logger,
		}),
		UserHandler: handler.NewUserHandler(handler.UserHandlerParams{
			UserUC: impl.NewUserService(impl.UserServiceParams{
				UserRepo: users, Hasher: hasher, Authorizer: authorizer, Config: cfg, Logger: logger,
			}),
			RoleUC: impl.NewRoleService(impl.RoleServiceParams{
				TxManager: tx, RoleRepo: roles, Authorizer: authorizer, Logger: logger,
			}),
			Logger: logger,
		}),
		CatalogHandler: handler.NewCatalogHandler(handler.CatalogHandlerParams{
			CategoryUC: impl.NewCategoryService(impl.CategoryServiceParams{CategoryRepo: categories, Logger: logger}),
			ProductUC: impl.NewProductService(impl.ProductServiceParams{
				ProductRepo: products, CategoryRepo: categories, Logger: logger,
			}),
			Logger: logger,
		}),
		SalesHandler: handler.NewSalesHandler(handler.SalesHandlerParams{
			CustomerUC: impl.NewCustomerService(impl.CustomerServiceParams{CustomerRepo: customers, Logger: logger}),
			QuoteUC: impl.NewQuoteService(impl.QuoteServiceParams{
				TxManager: tx, QuoteRepo: quotes, ProductRepo: products, CustomerRepo: customers,
				SettingsRepo: settings, Mailer: mailer, Publisher: publisher, Config: cfg, Logger: logger,
			}),
			OrderUC: impl.NewOrderService(impl.OrderServiceParams{
				TxManager: tx, OrderRepo: orders, ProductRepo: products, CustomerRepo: customers,
				SMS: sms, Publisher: publisher, Config: cfg, Logger: logger,
			}),
			InvoiceUC: impl.NewInvoiceService(impl.InvoiceServiceParams{
				TxManager: tx, OrderRepo: orders, InvoiceRepo: invoices, SettingsRepo: settings,
				Renderer: renderer, Storage: objects, Publisher: publisher, Config: cfg, Logger: logger,
			}),
			Logger: logger,
		}),
		ContentHandler: handler.NewContentHandler(handler.ContentHandlerParams{
			BlogUC:     impl.NewBlogService(impl.BlogServiceParams{BlogRepo: postgres.NewBlogRepository(db), Logger: logger}),
			FAQUC:      impl.NewFAQService(impl.FAQServiceParams{FAQRepo: postgres.NewFAQRepository(db), Logger: logger}),
			CarouselUC: impl.NewCarouselService(impl.CarouselServiceParams{CarouselRepo: postgres.NewCarouselRepository(db), Logger: logger}),
			SeoTagUC:   impl.NewSeoTagService(impl.SeoTagServiceParams{SeoRepo: postgres.NewSeoTagRepository(db), Logger: logger}),
			Authorizer: authorizer,
			Logger:     logger,
		}),
		SiteHandler: handler.NewSiteHandler(handler.SiteHandlerParams{
			SettingsUC: impl.NewSettingsService(impl.SettingsServiceParams{SettingsRepo: settings, Logger: logger}),
			MediaUC:    impl.NewMediaService(impl.MediaServiceParams{Storage: objects, Logger: logger}),
			Logger:     logger,
		}),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(apimiddleware.AuthMiddlewareParams{
			Codec: codec, Authorizer: authorizer, Config: cfg, Logger: logger,
		}),
		Config: cfg,
	}

	return &testServer{
		t:      t,
		echo:   NewEcho(cfg, logger, routerParams),
		cfg:    cfg,
		hasher: hasher,
		users:  users,
	}
}

func (s *testServer) do(method, path string, body any, cookies ...*http.Cookie) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func (s *testServer) login(email, password string) *http.Cookie {
	s.t.Helper()

	rec, _ := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	cookie := sessionCookie(rec, s.cfg.Session.CookieName)
	require.NotNil(s.t, cookie)

	return cookie
}

func (s *testServer) createUser(email, role string, active bool) {
	s.t.Helper()

	hash, err := s.hasher.Hash("password123")
	require.NoError(s.t, err)
	require.NoError(s.t, s.users.Create(context.Background(), &entity.User{
		Email: email, PasswordHash: hash, Name: "Test User", Role: role, IsActive: active,
	}))
}

func sessionCookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == name {
			return cookie
		}
	}

	return nil
}

func decodeData[T any](t *testing.T, env envelope) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out))

	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/health", "/api/health"} {
		rec, env := s.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, http.StatusOK, env.StatusCode)
		assert.Equal(t, "Service is healthy", env.Message)
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	}
}

func TestLogin(t *testing.T) {
	s := newTestServer(t)

	t.Run("wrong password", func(t *testing.T) {
		rec, env := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": adminEmail, "password": "nope-nope"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		require.NotNil(t, env.Error)
		assert.Nil(t, env.Error.Details)
		assert.Nil(t, sessionCookie(rec, s.cfg.Session.CookieName))
	})

	t.Run("disabled account", func(t *testing.T) {
		s.createUser("off@example.com", entity.RoleViewer, false)

		rec, env := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "off@example.com", "password": "password123"})
		assert.Equal(t, http.StatusForbidden, rec.Code)
		require.NotNil(t, env.Error)
		assert.Nil(t, sessionCookie(rec, s.cfg.Session.CookieName))
	})

	t.Run("invalid body", func(t *testing.T) {
		rec, env := s.do(http.MethodPost, "/api/auth/login", map[string]string{"email": "not-an-email"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.NotNil(t, env.Error)
		assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
		assert.NotNil(t, env.Error.Details)
	})

	t.Run("success then me then logout", func(t *testing.T) {
		cookie := s.login("Admin@Example.com", adminPassword)
		assert.True(t, cookie.HttpOnly)
		assert.Equal(t, "/", cookie.Path)

		rec, env := s.do(http.MethodGet, "/api/auth/me", nil, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		me := decodeData[entity.User](t, env)
		assert.Equal(t, adminEmail, me.Email)
		assert.Equal(t, entity.RoleAdmin, me.Role)

		rec, _ = s.do(http.MethodPost, "/api/auth/logout", nil, cookie)
		require.Equal(t, http.StatusOK, rec.Code)
		cleared := sessionCookie(rec, s.cfg.Session.CookieName)
		require.NotNil(t, cleared)
		assert.Empty(t, cleared.Value)
		assert.Negative(t, cleared.MaxAge)
	})

	t.Run("tampered cookie is anonymous", func(t *testing.T) {
		rec, _ := s.do(http.MethodGet, "/api/auth/me", nil, &http.Cookie{Name: "session", Value: "garbage"})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRegisterSignsIn(t *testing.T) {
	s := newTestServer(t)

	body := map[string]string{"name": "Ravi", "email": "ravi@example.com", "password": "password123"}
	rec, env := s.do(http.MethodPost, "/api/auth/register", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, sessionCookie(rec, s.cfg.Session.CookieName))

	out := decodeData[handler.SessionResponse](t, env)
	assert.Equal(t, entity.RoleCustomer, out.User.Role)

	rec, env = s.do(http.MethodPost, "/api/auth/register", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	require.NotNil(t, env.Error)
}

func TestCategoryPermissions(t *testing.T) {
	s := newTestServer(t)
	body := map[string]any{"name": "Panels", "slug": "panels", "isActive": true}

	rec, env := s.do(http.MethodPost, "/api/categories", body)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)

	s.createUser("viewer@example.com", entity.RoleViewer, true)
	viewer := s.login("viewer@example.com", "password123")
	rec, env = s.do(http.MethodPost, "/api/categories", body, viewer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Nil(t, env.Error.Details)

	admin := s.login(adminEmail, adminPassword)
	rec, env = s.do(http.MethodPost, "/api/categories", body, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decodeData[entity.Category](t, env)
	assert.Equal(t, "panels", created.Slug)

	// Catalog reads stay public.
	rec, _ = s.do(http.MethodGet, "/api/categories/panels", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = s.do(http.MethodPost, "/api/categories", map[string]any{"name": "Bad", "slug": "Not A Slug"}, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestBackOfficeReadsNeedGrant(t *testing.T) {
	s := newTestServer(t)

	rec, _ := s.do(http.MethodGet, "/api/customers", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	s.createUser("viewer@example.com", entity.RoleViewer, true)
	viewer := s.login("viewer@example.com", "password123")
	rec, _ = s.do(http.MethodGet, "/api/customers", nil, viewer)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = s.do(http.MethodGet, "/api/invoices", nil, viewer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProductsFilterByCategory(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	for _, cat := range []string{"panels", "inverters"} {
		rec, _ := s.do(http.MethodPost, "/api/categories", map[string]any{"name": cat, "slug": cat, "isActive": true}, admin)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	products := []map[string]any{
		{"name": "Mono 400W", "slug": "mono-400w", "sku": "PNL-400", "category": "panels", "price": "500", "isActive": true},
		{"name": "Mono 550W", "slug": "mono-550w", "sku": "PNL-550", "category": "panels", "price": "650", "isActive": true},
		{"name": "Hybrid 5kW", "slug": "hybrid-5kw", "sku": "INV-5K", "category": "inverters", "price": "900", "isActive": true},
	}
	for _, p := range products {
		rec, _ := s.do(http.MethodPost, "/api/products", p, admin)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	rec, env := s.do(http.MethodGet, "/api/products?category=panels", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decodeData[entity.Page[entity.Product]](t, env)
	assert.EqualValues(t, 2, page.Total)
	require.Len(t, page.Items, 2)
	for _, item := range page.Items {
		assert.Contains(t, []string{"mono-400w", "mono-550w"}, item.Slug)
	}

	rec, env = s.do(http.MethodGet, "/api/products?category=missing", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	page = decodeData[entity.Page[entity.Product]](t, env)
	assert.Zero(t, page.Total)
	assert.Empty(t, page.Items)

	rec, env = s.do(http.MethodGet, "/api/products/slug/hybrid-5kw", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "INV-5K", decodeData[entity.Product](t, env).SKU)

	rec, env = s.do(http.MethodGet, "/api/products/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
}

func TestQuoteToInvoice(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	rec, _ := s.do(http.MethodPost, "/api/categories", map[string]any{"name": "Panels", "slug": "panels", "isActive": true}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, env := s.do(http.MethodPost, "/api/products", map[string]any{
		"name": "Mono 400W", "slug": "mono-400w", "sku": "PNL-400", "category": "panels", "price": "500", "stock": 10, "isActive": true,
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	product := decodeData[entity.Product](t, env)

	rec, env = s.do(http.MethodPost, "/api/customers", map[string]any{
		"name": "Asha", "email": "asha@example.com", "segment": "residential",
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	customer := decodeData[entity.Customer](t, env)

	rec, env = s.do(http.MethodPost, "/api/quotes", map[string]any{
		"customerId": customer.ID,
		"items":      []map[string]any{{"product": product.ID, "quantity": 2}},
	}, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	quote := decodeData[entity.Quote](t, env)
	assert.True(t, decimal.NewFromInt(1000).Equal(quote.Subtotal), quote.Subtotal.String())
	assert.True(t, decimal.NewFromInt(180).Equal(quote.Tax), quote.Tax.String())
	assert.True(t, decimal.NewFromInt(1180).Equal(quote.TotalAmount), quote.TotalAmount.String())
	assert.Equal(t, entity.QuoteStatusDraft, quote.Status)

	rec, env = s.do(http.MethodPost, "/api/quotes/accept", map[string]string{"quoteId": quote.ID.String()}, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	accepted := decodeData[usecase.AcceptQuoteOutput](t, env)
	require.NotNil(t, accepted.Order)
	assert.Equal(t, entity.QuoteStatusAccepted, accepted.Quote.Status)
	assert.True(t, decimal.NewFromInt(1180).Equal(accepted.Order.TotalAmount))

	rec, _ = s.do(http.MethodPost, "/api/quotes/accept", map[string]string{"quoteId": quote.ID.String()}, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = s.do(http.MethodPost, "/api/orders/"+accepted.Order.ID.String()+"/invoice", nil, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	generated := decodeData[usecase.GenerateInvoiceOutput](t, env)
	require.NotNil(t, generated.Invoice)
	assert.True(t, decimal.NewFromInt(1180).Equal(generated.Invoice.TotalAmount))
	assert.True(t, strings.HasPrefix(generated.PDFURL, "https://cdn.test/"), generated.PDFURL)

	rec, env = s.do(http.MethodGet, "/api/invoices?order="+accepted.Order.ID.String(), nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 1, decodeData[entity.Page[entity.Invoice]](t, env).Total)
}

func TestUnknownRouteEnvelope(t *testing.T) {
	s := newTestServer(t)

	rec, env := s.do(http.MethodGet, "/api/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, env.StatusCode)
	require.NotNil(t, env.Error)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestSwaggerDocument(t *testing.T) {
	s := newTestServer(t)

	rec := httptest.NewRecorder()
	s.echo.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/swagger.json", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		BasePath string         `json:"basePath"`
		Paths    map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))
	assert.Equal(t, "/api", doc.BasePath)
	assert.Contains(t, doc.Paths, "/quotes/accept")
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.RateLimit = config.RateLimitConfig{LoginPerMinute: 1, LoginBurst: 2}
	})
	body := map[string]string{"email": adminEmail, "password": "wrong-password"}

	for range s.cfg.RateLimit.LoginBurst {
		rec, _ := s.do(http.MethodPost, "/api/auth/login", body)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	rec, env := s.do(http.MethodPost, "/api/auth/login", body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "TOO_MANY_REQUESTS", env.Error.Code)
	assert.Nil(t, sessionCookie(rec, s.cfg.Session.CookieName))
}

func TestDraftBlogsHiddenWithoutEditGrant(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(adminEmail, adminPassword)

	for _, blog := range []map[string]any{
		{"title": "Net metering explained", "slug": "net-metering", "content": "Body", "isPublished": true},
		{"title": "Upcoming battery range", "slug": "battery-draft", "content": "Body", "isPublished": false},
	} {
		rec, _ := s.do(http.MethodPost, "/api/blogs", blog, admin)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	}

	s.createUser("viewer@example.com", entity.RoleViewer, true)
	viewer := s.login("viewer@example.com", "password123")

	for name, cookies := range map[string][]*http.Cookie{"anonymous": nil, "viewer": {viewer}} {
		t.Run(name, func(t *testing.T) {
			for _, path := range []string{"/api/blogs", "/api/blogs?published=false"} {
				rec, env := s.do(http.MethodGet, path, nil, cookies...)
				require.Equal(t, http.StatusOK, rec.Code)
				page := decodeData[entity.Page[entity.Blog]](t, env)
				assert.EqualValues(t, 1, page.Total, path)
				require.Len(t, page.Items, 1)
				assert.Equal(t, "net-metering", page.Items[0].Slug)
			}

			rec, env := s.do(http.MethodGet, "/api/blogs/battery-draft", nil, cookies...)
			assert.Equal(t, http.StatusNotFound, rec.Code)
			require.NotNil(t, env.Error)
		})
	}

	rec, env := s.do(http.MethodGet, "/api/blogs", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.EqualValues(t, 2, decodeData[entity.Page[entity.Blog]](t, env).Total)

	rec, env = s.do(http.MethodGet, "/api/blogs?published=false", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	drafts := decodeData[entity.Page[entity.Blog]](t, env)
	require.Len(t, drafts.Items, 1)
	assert.Equal(t, "battery-draft", drafts.Items[0].Slug)

	rec, _ = s.do(http.MethodGet, "/api/blogs/battery-draft", nil, admin)
	assert.Equal(t, http.StatusOK, rec.Code)
}
