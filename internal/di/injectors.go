//go:build wireinject
// +build wireinject

package di

import (
	"context"
	wire "github.com/google/wire"
	"talkmigrate/internal"
	"talkmigrate/internal/canonical"
	"talkmigrate/internal/controllers"
	"talkmigrate/internal/providers"
	"talkmigrate/internal/schema"
	"talkmigrate/internal/services"
	"talkmigrate/internal/storage"
	"talkmigrate/internal/structures"
)

func InitApp(ctx context.Context, cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewRecordValidator,
		providers.NewConfirmProvider,

		storage.NewZstdCompressor,
		storage.NewSnapshotManager,
		storage.NewSourceStore,
		storage.NewTargetStore,
		schema.NewValidator,
		canonical.NewCanonicalizer,
		services.NewMigrationService,
		wire.Bind(new(services.MigrationServiceInterface), new(*services.MigrationService)),
		controllers.NewHealthController,
		internal.InitRoutes,
		internal.NewApp,
	)

	return nil, nil
}
