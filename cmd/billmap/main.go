package main

import (
	"context"
	"log/slog"
	"os"

	"billmap/config"
	"billmap/internal/delivery"
	"billmap/internal/delivery/http"
	"billmap/internal/delivery/http/router/handler"
	"billmap/internal/domain/repository"
	logs "billmap/internal/infra/log"
	"billmap/internal/infra/maps/google"
	"billmap/internal/infra/memory"
	"billmap/internal/usecase/impl"

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
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			memory.NewInventoryStore,
			newMapStateStore,
		),
	)
}

// newMapStateStore creates the map state store seeded with the configured
// default radius
func newMapStateStore(cfg *config.Config) repository.MapStateRepository {
	return memory.NewMapStateStore(cfg.Proximity.DefaultRadius)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			google.NewClient,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewInventoryService,
			impl.NewProximityService,
			impl.NewAvailabilityService,
			impl.NewExportService,
			impl.NewSearchService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewInventoryHandler,
			handler.NewProximityHandler,
			handler.NewAvailabilityHandler,
			handler.NewExportHandler,
			handler.NewSearchHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
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
