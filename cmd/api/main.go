package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/fuatkeles/aufmass-app-sub001/api/routes"
	"github.com/fuatkeles/aufmass-app-sub001/internal/branches"
	"github.com/fuatkeles/aufmass-app-sub001/internal/catalog"
	"github.com/fuatkeles/aufmass-app-sub001/internal/documents"
	"github.com/fuatkeles/aufmass-app-sub001/internal/measurements"
	"github.com/fuatkeles/aufmass-app-sub001/internal/quotes"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/config"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/db"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/logger"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/metrics"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/migrate"
	"github.com/fuatkeles/aufmass-app-sub001/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := openDatabase(cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	pricingMetrics := metrics.NewPricingMetrics(registry)
	httpMetrics := metrics.NewHTTPMetrics(registry)

	catalogService, err := catalog.NewService(
		catalog.NewRepository(dbClient.DB()),
		redisClient,
		cfg.Catalog.CacheTTL,
		logg,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create catalog service", err)
		os.Exit(1)
	}

	measurementService, err := measurements.NewService(measurements.NewRepository(dbClient.DB()), dbClient)
	if err != nil {
		logg.Error(context.Background(), "failed to create measurement service", err)
		os.Exit(1)
	}

	quoteService, err := quotes.NewService(
		quotes.NewRepository(dbClient.DB()),
		dbClient,
		catalogService,
		measurementService,
		pricingMetrics,
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create quote service", err)
		os.Exit(1)
	}

	branchService, err := branches.NewService(branches.NewRepository(dbClient.DB()))
	if err != nil {
		logg.Error(context.Background(), "failed to create branch service", err)
		os.Exit(1)
	}

	documentBuilder, err := documents.NewBuilder(quoteService, measurementService, branchService)
	if err != nil {
		logg.Error(context.Background(), "failed to create document builder", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:       cfg,
			Logger:       logg,
			DB:           dbClient,
			Redis:        redisClient,
			Registry:     registry,
			HTTPMetrics:  httpMetrics,
			Catalog:      catalogService,
			Measurements: measurementService,
			Quotes:       quoteService,
			Branches:     branchService,
			Documents:    documentBuilder,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

func openDatabase(cfg *config.Config, logg *logger.Logger) (*db.Client, error) {
	if cfg.FeatureFlags.UseSQLite {
		return db.NewSQLite(cfg.DB.DSN)
	}
	return db.New(context.Background(), cfg.DB, logg)
}
