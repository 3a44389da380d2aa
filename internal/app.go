package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"talkmigrate/internal/models"
	"talkmigrate/internal/providers"
	"talkmigrate/internal/services"
	"talkmigrate/internal/storage"
	"talkmigrate/internal/structures"
	"time"
)

type App struct {
	StatusServer *http.Server
	conf         *structures.Config
	logger       providers.Logger
	migration    services.MigrationServiceInterface
	source       storage.SourceStore
	target       storage.TargetStore
	compressor   storage.CompressorInterface
}

func NewApp(migration services.MigrationServiceInterface, source storage.SourceStore, target storage.TargetStore, compressor storage.CompressorInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface) *App {
	app := &App{
		conf:       conf,
		logger:     logger,
		migration:  migration,
		source:     source,
		target:     target,
		compressor: compressor,
	}
	if conf.Metrics.Enabled {
		app.StatusServer = &http.Server{
			Addr:         conf.Metrics.Host + ":" + strconv.Itoa(conf.Metrics.Port),
			Handler:      router.Mux(metrics),
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		}
	}
	return app
}

// Run executes one migration. SIGINT and SIGTERM cancel it; nothing is
// written to the target unless the run reaches the commit.
func (app *App) Run() (*models.Report, error) {
	app.logger.Infof(providers.TypeApp, "Starting %s", app.conf.AppName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if app.StatusServer != nil {
		go func() {
			app.logger.Infof(providers.TypeApp, "Serving status on %s", app.StatusServer.Addr)
			if err := app.StatusServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				app.logger.Errorf(providers.TypeApp, "Status server error: %s", err)
			}
		}()
	}

	report, err := app.migration.Run(ctx)
	if errors.Is(ctx.Err(), context.Canceled) {
		app.logger.Infof(providers.TypeApp, "Shutdown signal received")
	}

	if cerr := app.close(); cerr != nil && err == nil {
		err = cerr
	}
	return report, err
}

func (app *App) close() error {
	defer app.logger.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var errs []error
	if app.StatusServer != nil {
		errs = append(errs, app.StatusServer.Shutdown(ctx))
	}
	errs = append(errs, app.source.Close(ctx), app.target.Close(ctx))
	app.compressor.Close()
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	app.logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}

// ExitCode maps a run error onto the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, models.ErrAborted):
		return 2
	default:
		return 1
	}
}
