package postgres

import "go.uber.org/fx"

// Module provides the database handle, every repository and the transaction manager.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(
		New,
		NewUserRepository,
		NewRoleRepository,
		NewCustomerRepository,
		NewCategoryRepository,
		NewProductRepository,
		NewQuoteRepository,
		NewOrderRepository,
		NewInvoiceRepository,
		NewBlogRepository,
		NewFAQRepository,
		NewCarouselRepository,
		NewSeoTagRepository,
		NewSiteSettingRepository,
		NewTransactionManager,
	),
)
