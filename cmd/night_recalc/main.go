package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"

	"github.com/prometheus/client_golang/prometheus"

	"openpilotlog/logbook/internal/api"
	"openpilotlog/logbook/internal/common"
	"openpilotlog/logbook/internal/config"
	"openpilotlog/logbook/internal/db"
	"openpilotlog/logbook/internal/logging"
	"openpilotlog/logbook/internal/metrics"
)

// night_recalc recomputes night minutes and day/night take-off and landing
// counters for every stored flight.
func main() {
	angle := flag.Float64("angle", 0, "sun elevation threshold in degrees (default NIGHT_ANGLE)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := logging.Init(cfg.AppEnv); err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logging.Close()

	nightAngle := cfg.NightAngle
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "angle" {
			nightAngle = *angle
		}
	})
	if nightAngle < -18 || nightAngle > 0 {
		logging.Fatal("angle must be between -18 and 0", "angle", nightAngle)
	}

	orm, err := db.InitORM(cfg)
	if err != nil {
		logging.Fatal("Failed to open database (GORM)", "error", err)
	}
	sqlxDB, err := db.InitSQLX(cfg, orm)
	if err != nil {
		logging.Fatal("Failed to open database (sqlx)", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	deps := api.InitDependencies(cfg, orm, sqlxDB, common.NewCacheService(cfg.CacheTTL),
		metrics.NewMetricsRegistry(prometheus.NewRegistry()))

	resp, err := deps.Services.Recalculation.RecalculateAll(ctx, nightAngle)
	if err != nil {
		logging.Fatal("Recalculation failed", "error", err)
	}

	logging.Info("Recalculation complete",
		"total", resp.Total,
		"updated", resp.Updated,
		"failed", resp.Failed,
		"duration_ms", resp.DurationMs,
	)
}
