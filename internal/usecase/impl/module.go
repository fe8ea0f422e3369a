package impl

import "go.uber.org/fx"

// Module provides every use case implementation.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		NewAuthService,
		NewUserService,
		NewRoleService,
		NewSeedService,
		NewCategoryService,
		NewProductService,
		NewCustomerService,
		NewQuoteService,
		NewOrderService,
		NewInvoiceService,
		NewBlogService,
		NewFAQService,
		NewCarouselService,
		NewSeoTagService,
		NewSettingsService,
		NewMediaService,
	),
)
