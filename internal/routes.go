package internal

import (
	"net/http"
	"talkmigrate/internal/controllers"
	"talkmigrate/internal/providers"
	"talkmigrate/internal/structures"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func InitRoutes(healthController *controllers.HealthController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/health", http.HandlerFunc(healthController.Health))
	routers.Get("/progress", http.HandlerFunc(healthController.Progress))
	if conf.Metrics.Enabled {
		routers.Get("/metrics", promhttp.Handler())
	}
	return routers
}
