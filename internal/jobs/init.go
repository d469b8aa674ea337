package jobs

import (
	"context"
	"time"

	"openpilotlog/logbook/internal/metrics"
)

// InitializeJobs initializes and starts all background jobs
func InitializeJobs(
	ctx context.Context,
	calculator ExpiryCalculator,
	recorder ExpiryRecorder,
	refreshInterval time.Duration,
	m *metrics.MetricsRegistry,
) *CurrencyRefreshJob {
	currencyJob := NewCurrencyRefreshJob(calculator, recorder, m)

	// Start scheduled refresh in background
	go currencyJob.RunScheduled(ctx, refreshInterval)

	return currencyJob
}
