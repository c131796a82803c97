package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"calldash/internal/config"
	"calldash/internal/database"
	"calldash/internal/database/migration"
	handlers "calldash/internal/http/handler"
	"calldash/internal/http/middleware"
	"calldash/internal/logger"
	"calldash/internal/metrics"
	"calldash/internal/otel"
	"calldash/internal/repository/postgres"
	"calldash/internal/service"
	"calldash/internal/storage"
)

// @title Calldash API
// @version 1.0
// @description Caller-analysis table with server-side pagination and CSV exports.
// @BasePath /
func main() {
	cfg := config.Load()

	log, err := logger.New(cfg.Log)
	if err != nil {
		fallback := zerolog.New(os.Stderr)
		fallback.Fatal().Err(err).Msg("invalid log config")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, cfg.Log.Service, cfg.Log.Version, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize tracing")
	}

	db, err := database.NewPostgres(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, log); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	objStore, err := storage.NewMinIO(ctx, cfg.MinIO, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize object storage")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register http metrics")
	}
	pagerMetrics, err := metrics.NewPaginatorMetrics(reg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to register paginator metrics")
	}

	callerSvc := service.NewCallerService(postgres.NewCallerPostgres(db), cfg.Pagination.DefaultPageSize, log)
	exportSvc := service.NewExportService(callerSvc, objStore, cfg.Export, pagerMetrics.For("export"), log)

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		DisableStartupMessage: true,
		ReadTimeout:           30 * time.Second,
		// exports walk the whole table before answering
		WriteTimeout: 5 * time.Minute,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware())
	app.Use(middleware.Logger(log))
	app.Use(promMW.Handler())

	handlers.RegisterRoutes(app, db, handlers.Services{Callers: callerSvc, Exports: exportSvc}, reg)

	handlers.RegisterDocs(app, cfg.AppHost)

	addr := ":" + cfg.Port
	listenErr := make(chan error, 1)
	go func() { listenErr <- app.Listen(addr) }()
	log.Info().Str("addr", addr).Msg("listening")

	select {
	case err := <-listenErr:
		log.Fatal().Err(err).Msg("failed to start server")
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("tracing shutdown")
	}
}
