package app

import (
	"context"
	"database/sql"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"fraudwatch/internal/cache"
	"fraudwatch/internal/config"
	"fraudwatch/internal/db"
	httpserver "fraudwatch/internal/http"
	"fraudwatch/internal/http/handlers"
	"fraudwatch/internal/http/middleware"
	"fraudwatch/internal/meter"
	"fraudwatch/internal/repository"
	"fraudwatch/internal/service"
	"fraudwatch/internal/web"
)

// App wires fraudwatch dependencies.
type App struct {
	server      *httpserver.Server
	db          *sql.DB
	redisClient *redis.Client
	logger      *zap.Logger
}

// New constructs the application graph.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	sqlDB, err := db.NewPostgres(cfg.Database.DSN)
	if err != nil {
		return nil, err
	}

	var redisClient *redis.Client
	var metricsCache service.MetricsCache
	if cfg.CacheEnabled() {
		redisClient, err = cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			sqlDB.Close()
			return nil, err
		}
		metricsCache = cache.NewMetricsStore(redisClient, cfg.MetricsCacheTTL())
	}

	customerRepo := repository.NewCustomerRepository(sqlDB)
	consumptionRepo := repository.NewConsumptionRepository(sqlDB)
	fraudRepo := repository.NewFraudDashboardRepository(sqlDB)

	dashboardSvc := service.NewDashboardService(fraudRepo, customerRepo, metricsCache, logger)
	readingsSvc := service.NewReadingsService(
		customerRepo,
		consumptionRepo,
		meter.NewSyntheticSource(),
		cfg.Billing.RatePerUnit,
		logger,
	)

	readingsHandler := handlers.NewReadingsHandler(readingsSvc, dashboardSvc, logger)

	routes := httpserver.Routes{
		DashboardMetrics: handlers.NewDashboardMetricsHandler(dashboardSvc, logger),
		CriticalCases:    handlers.NewCriticalCasesHandler(dashboardSvc, logger),
		RiskBuckets:      handlers.NewRiskBucketsHandler(dashboardSvc, logger),
		AddReading:       readingsHandler.HandleAddReading,
		RecentReadings:   readingsHandler.HandleRecentReadings,
		Health:           handlers.NewHealthHandler(),
		Assets:           web.Handler(),
	}

	router := middleware.Chain(
		httpserver.NewRouter(routes),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.CORS.AllowedOrigin),
	)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:      server,
		db:          sqlDB,
		redisClient: redisClient,
		logger:      logger,
	}, nil
}

// Run starts HTTP server.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
