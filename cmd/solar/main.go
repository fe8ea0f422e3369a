package main

import (
	"context"
	"log/slog"
	"os"

	"solar/config"
	"solar/internal/delivery"
	"solar/internal/delivery/api"
	apimiddleware "solar/internal/delivery/api/middleware"
	"solar/internal/delivery/api/router/handler"
	"solar/internal/infra/auth"
	"solar/internal/infra/authz"
	logs "solar/internal/infra/log"
	"solar/internal/infra/notification"
	"solar/internal/infra/pdf"
	"solar/internal/infra/persistence/postgres"
	"solar/internal/infra/pubsub"
	"solar/internal/infra/qrcode"
	"solar/internal/infra/storage"
	"solar/internal/usecase"
	"solar/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			seedDatabase,
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			storage.New,
			qrcode.New,
			pdf.NewInvoiceRenderer,
		),
		notification.Module,
		pubsub.Module,
	)
}

func injectRepo() fx.Option {
	return postgres.Module
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewSessionCodec,
			authz.New,
		),
	)
}

func injectUsecase() fx.Option {
	return impl.Module
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			apimiddleware.NewAuthMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewUserHandler,
			handler.NewCatalogHandler,
			handler.NewSalesHandler,
			handler.NewContentHandler,
			handler.NewSiteHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// seedDatabase creates the built-in roles and the configured admin before any
// delivery starts accepting requests.
func seedDatabase(ctx context.Context, seed usecase.SeedUsecase, logger *slog.Logger) error {
	if err := seed.Seed(ctx); err != nil {
		logger.Error("Failed to seed database", slog.Any("error", err))

		return err
	}

	return nil
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
