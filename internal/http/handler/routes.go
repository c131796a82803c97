package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"calldash/internal/service"
)

// Services groups the use cases served over HTTP.
type Services struct {
	Callers service.CallerService
	Exports service.ExportService
}

// RegisterRoutes attaches every API route to app. gatherer backs /metrics.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc Services, gatherer prometheus.Gatherer) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	callers := app.Group("/callers")
	callers.Get("/", ListCallers(svc.Callers))
	callers.Post("/", CreateCaller(svc.Callers))
	callers.Get("/:id", GetCaller(svc.Callers))
	callers.Delete("/:id", DeleteCaller(svc.Callers))

	exports := app.Group("/exports")
	exports.Post("/callers", CreateExport(svc.Exports))
	exports.Get("/:name", DownloadExport(svc.Exports))
}
