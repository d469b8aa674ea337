package jobs

import (
	"context"
	"fmt"
	"time"

	"openpilotlog/logbook/internal/calc"
	"openpilotlog/logbook/internal/logging"
	"openpilotlog/logbook/internal/metrics"
)

const currencyRefreshJobName = "currency_refresh"

// ExpiryCalculator derives the take-off/landing currency expiry from the logbook.
type ExpiryCalculator interface {
	CurrencyTakeOffLandingExpiry(ctx context.Context, windowDays int) (time.Time, error)
	CurrencyWindowDays() int
}

// ExpiryRecorder stores the derived expiry in the currencies table.
type ExpiryRecorder interface {
	RecordTakeoffLandingExpiry(ctx context.Context, expiry time.Time) error
}

// CurrencyRefreshJob keeps the take-off/landing currency row in step with the
// flights, so currency listings see an expiry that moves as days pass.
type CurrencyRefreshJob struct {
	calculator ExpiryCalculator
	recorder   ExpiryRecorder
	metrics    *metrics.MetricsRegistry
}

func NewCurrencyRefreshJob(calculator ExpiryCalculator, recorder ExpiryRecorder, m *metrics.MetricsRegistry) *CurrencyRefreshJob {
	return &CurrencyRefreshJob{
		calculator: calculator,
		recorder:   recorder,
		metrics:    m,
	}
}

// Run recomputes and stores the expiry once.
func (j *CurrencyRefreshJob) Run(ctx context.Context) error {
	start := time.Now()
	window := j.calculator.CurrencyWindowDays()

	expiry, err := j.calculator.CurrencyTakeOffLandingExpiry(ctx, window)
	if err != nil {
		return fmt.Errorf("failed to compute take-off/landing expiry: %w", err)
	}
	if err := j.recorder.RecordTakeoffLandingExpiry(ctx, expiry); err != nil {
		return fmt.Errorf("failed to store take-off/landing expiry: %w", err)
	}

	elapsed := time.Since(start)
	if j.metrics != nil {
		j.metrics.RecalcJobDuration.WithLabelValues(currencyRefreshJobName).Observe(elapsed.Seconds())
	}

	logging.Info("Take-off/landing currency refreshed",
		"window_days", window,
		"expiry", expiry.Format(calc.DateLayout),
		"duration_ms", elapsed.Milliseconds(),
	)
	return nil
}

// RunScheduled runs the job immediately and then on every tick until ctx is done.
func (j *CurrencyRefreshJob) RunScheduled(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	if err := j.Run(ctx); err != nil {
		logging.Error("Currency refresh failed in initial run", "error", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := j.Run(ctx); err != nil {
				logging.Error("Currency refresh failed in scheduled run", "error", err)
			}
		case <-ctx.Done():
			logging.Info("Shutting down scheduled currency refresh")
			return
		}
	}
}
