package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"openpilotlog/logbook/internal/api"
	"openpilotlog/logbook/internal/common"
	"openpilotlog/logbook/internal/config"
	"openpilotlog/logbook/internal/db"
	"openpilotlog/logbook/internal/jobs"
	"openpilotlog/logbook/internal/logging"
	"openpilotlog/logbook/internal/metrics"
	"openpilotlog/logbook/internal/routes"
	"openpilotlog/logbook/internal/workers"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Logbook starting up",
		"environment", cfg.AppEnv,
		"db_driver", string(cfg.DBDriver),
		"night_angle", cfg.NightAngle,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	orm, err := db.InitORM(cfg)
	if err != nil {
		logging.Fatal("Failed to open database (GORM)", "error", err)
	}
	sqlxDB, err := db.InitSQLX(cfg, orm)
	if err != nil {
		logging.Fatal("Failed to open database (sqlx)", "error", err)
	}

	cache, err := newCache(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to Redis", "error", err)
	}
	defer cache.Close()

	metricsReg := metrics.NewMetricsRegistry(prometheus.DefaultRegisterer)
	deps := api.InitDependencies(cfg, orm, sqlxDB, cache, metricsReg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := deps.Services.Currencies.EnsureDefaults(ctx); err != nil {
		logging.Fatal("Failed to seed currencies", "error", err)
	}

	count, err := deps.Services.AirportLoader.Count(ctx)
	if err != nil {
		logging.Fatal("Failed to count airports", "error", err)
	}
	if count == 0 {
		logging.Warn("Airport table is empty, POST /api/v1/admin/airports/sync to import the dataset")
	}

	container := workers.InitWorkers(ctx, deps.Services.Flights, cfg.RecalcWorkers, metricsReg)
	deps.Queue = container.NightTime

	jobs.InitializeJobs(ctx, deps.Services.Statistics, deps.Services.Currencies, cfg.CurrencyRefreshInterval, metricsReg)

	upSince := time.Now()
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           routes.RegisterRoutes(deps, prometheus.DefaultGatherer, upSince),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logging.Info("Server starting", "port", cfg.HTTPPort, "environment", cfg.AppEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Fatal("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	logging.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error("Graceful shutdown failed", "error", err)
	}
}

// newCache returns Redis when REDIS_HOST is set and the in-process cache otherwise.
func newCache(cfg *config.Config) (common.CacheInterface, error) {
	if cfg.RedisHost == "" {
		logging.Info("Using in-memory cache")
		return common.NewCacheService(cfg.CacheTTL), nil
	}
	redisCache, err := common.NewRedisCacheService(cfg.RedisAddr(), cfg.RedisPassword)
	if err != nil {
		return nil, err
	}
	logging.Info("Using Redis cache", "addr", cfg.RedisAddr())
	return redisCache, nil
}
