// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"net/http"

	"solar/config"
	"solar/docs"
	"solar/internal/delivery/api/middleware"
	"solar/internal/delivery/api/router/handler"
	"solar/internal/domain/entity"
	"solar/internal/infra/metrics"
	"solar/internal/infra/storage"

	"github.com/labstack/echo/v4"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/fx"
)

const swaggerDocPath = "/api/swagger.json"

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	CatalogHandler *handler.CatalogHandler
	SalesHandler   *handler.SalesHandler
	ContentHandler *handler.ContentHandler
	SiteHandler    *handler.SiteHandler
	AuthMiddleware *middleware.AuthMiddleware
	Config         *config.Config
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	userHandler    *handler.UserHandler
	catalogHandler *handler.CatalogHandler
	salesHandler   *handler.SalesHandler
	contentHandler *handler.ContentHandler
	siteHandler    *handler.SiteHandler
	authMiddleware *middleware.AuthMiddleware
	config         *config.Config
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		userHandler:    params.UserHandler,
		catalogHandler: params.CatalogHandler,
		salesHandler:   params.SalesHandler,
		contentHandler: params.ContentHandler,
		siteHandler:    params.SiteHandler,
		authMiddleware: params.AuthMiddleware,
		config:         params.Config,
	}
}

// crud is the standard handler set of one resource.
type crud struct {
	list, get, create, update, remove echo.HandlerFunc
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	if storage.IsLocal(r.config) {
		e.Static(storage.LocalURLPrefix, r.config.Storage.LocalDir)
	}

	api := e.Group("/api", r.authMiddleware.LoadSession)
	api.GET("/health", handler.HealthCheck)
	r.registerDocs(api)

	perm := r.authMiddleware.RequirePermission
	loginLimiter := middleware.NewLoginRateLimiter(r.config)

	// Auth routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", r.authHandler.Login, loginLimiter)
		authGroup.POST("/register", r.authHandler.Register, loginLimiter)
		authGroup.POST("/logout", r.authHandler.Logout)
		authGroup.GET("/me", r.authHandler.Me, r.authMiddleware.Authenticate)
		authGroup.PATCH("/me", r.authHandler.UpdateProfile, r.authMiddleware.Authenticate)
		authGroup.PUT("/password", r.authHandler.ChangePassword, r.authMiddleware.Authenticate)
	}

	// Storefront content is readable without a session.
	r.registerResource(api, "/categories", entity.ResourceCategories, true, crud{
		r.catalogHandler.ListCategories, r.catalogHandler.GetCategory,
		r.catalogHandler.CreateCategory, r.catalogHandler.UpdateCategory, r.catalogHandler.DeleteCategory,
	})
	api.GET("/products/slug/:slug", r.catalogHandler.GetProductBySlug)
	r.registerResource(api, "/products", entity.ResourceProducts, true, crud{
		r.catalogHandler.ListProducts, r.catalogHandler.GetProduct,
		r.catalogHandler.CreateProduct, r.catalogHandler.UpdateProduct, r.catalogHandler.DeleteProduct,
	})
	r.registerResource(api, "/blogs", entity.ResourceBlogs, true, crud{
		r.contentHandler.ListBlogs, r.contentHandler.GetBlog,
		r.contentHandler.CreateBlog, r.contentHandler.UpdateBlog, r.contentHandler.DeleteBlog,
	})
	r.registerResource(api, "/faqs", entity.ResourceFAQs, true, crud{
		r.contentHandler.ListFAQs, r.contentHandler.GetFAQ,
		r.contentHandler.CreateFAQ, r.contentHandler.UpdateFAQ, r.contentHandler.DeleteFAQ,
	})
	r.registerResource(api, "/carousel", entity.ResourceCarousel, true, crud{
		r.contentHandler.ListCarousel, r.contentHandler.GetCarouselItem,
		r.contentHandler.CreateCarouselItem, r.contentHandler.UpdateCarouselItem, r.contentHandler.DeleteCarouselItem,
	})
	api.GET("/seo-tags/path", r.contentHandler.GetSeoTagByPath)
	r.registerResource(api, "/seo-tags", entity.ResourceSEO, true, crud{
		r.contentHandler.ListSeoTags, r.contentHandler.GetSeoTag,
		r.contentHandler.CreateSeoTag, r.contentHandler.UpdateSeoTag, r.contentHandler.DeleteSeoTag,
	})

	api.GET("/settings", r.siteHandler.GetSettings)
	api.PUT("/settings", r.siteHandler.UpdateSettings, perm(entity.ResourceSettings, entity.ActionUpdate))
	api.POST("/upload", r.siteHandler.Upload, perm(entity.ResourceMedia, entity.ActionCreate))

	// Back-office resources need a session and a grant for every action.
	r.registerResource(api, "/customers", entity.ResourceCustomers, false, crud{
		r.salesHandler.ListCustomers, r.salesHandler.GetCustomer,
		r.salesHandler.CreateCustomer, r.salesHandler.UpdateCustomer, r.salesHandler.DeleteCustomer,
	})

	api.POST("/quotes/send", r.salesHandler.SendQuote, perm(entity.ResourceQuotes, entity.ActionUpdate))
	api.POST("/quotes/accept", r.salesHandler.AcceptQuote, perm(entity.ResourceQuotes, entity.ActionUpdate))
	r.registerResource(api, "/quotes", entity.ResourceQuotes, false, crud{
		r.salesHandler.ListQuotes, r.salesHandler.GetQuote,
		r.salesHandler.CreateQuote, r.salesHandler.UpdateQuote, r.salesHandler.DeleteQuote,
	})

	api.POST("/orders/:id/invoice", r.salesHandler.GenerateInvoice, perm(entity.ResourceOrders, entity.ActionUpdate))
	r.registerResource(api, "/orders", entity.ResourceOrders, false, crud{
		r.salesHandler.ListOrders, r.salesHandler.GetOrder,
		r.salesHandler.CreateOrder, r.salesHandler.UpdateOrder, r.salesHandler.DeleteOrder,
	})

	// Invoices are part of the order grant.
	invoiceGroup := api.Group("/invoices")
	{
		invoiceGroup.GET("", r.salesHandler.ListInvoices, perm(entity.ResourceOrders, entity.ActionRead))
		invoiceGroup.GET("/:id", r.salesHandler.GetInvoice, perm(entity.ResourceOrders, entity.ActionRead))
		invoiceGroup.PATCH("/:id", r.salesHandler.UpdateInvoice, perm(entity.ResourceOrders, entity.ActionUpdate))
		invoiceGroup.DELETE("/:id", r.salesHandler.DeleteInvoice, perm(entity.ResourceOrders, entity.ActionDelete))
	}

	r.registerResource(api, "/users", entity.ResourceUsers, false, crud{
		r.userHandler.ListUsers, r.userHandler.GetUser,
		r.userHandler.CreateUser, r.userHandler.UpdateUser, r.userHandler.DeleteUser,
	})
	r.registerResource(api, "/roles", entity.ResourceRoles, false, crud{
		r.userHandler.ListRoles, r.userHandler.GetRole,
		r.userHandler.CreateRole, r.userHandler.UpdateRole, r.userHandler.DeleteRole,
	})
}

func (r *router) registerResource(api *echo.Group, prefix string, resource entity.Resource, publicRead bool, h crud) {
	perm := r.authMiddleware.RequirePermission

	var readMiddleware []echo.MiddlewareFunc
	if !publicRead {
		readMiddleware = append(readMiddleware, perm(resource, entity.ActionRead))
	}

	group := api.Group(prefix)
	group.GET("", h.list, readMiddleware...)
	group.GET("/:id", h.get, readMiddleware...)
	group.POST("", h.create, perm(resource, entity.ActionCreate))
	group.PATCH("/:id", h.update, perm(resource, entity.ActionUpdate))
	group.DELETE("/:id", h.remove, perm(resource, entity.ActionDelete))
}

func (r *router) registerDocs(api *echo.Group) {
	api.GET("/swagger.json", func(c echo.Context) error {
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, []byte(docs.SwaggerInfo.ReadDoc()))
	})
	api.GET("/docs", func(c echo.Context) error {
		return c.Redirect(http.StatusMovedPermanently, "/api/docs/index.html")
	})
	api.GET("/docs/*", echo.WrapHandler(httpSwagger.Handler(
		httpSwagger.URL(swaggerDocPath),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	)))
}
