package services

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/logging"
	"openpilotlog/logbook/internal/metrics"
	"openpilotlog/logbook/internal/models/dtos"
)

// RecalculationService recomputes the night data of every flight, e.g. after
// the night angle setting or the airport database changed.
type RecalculationService struct {
	flights FlightStore
	updater *FlightService
	workers int
	metrics *metrics.MetricsRegistry
}

func NewRecalculationService(flights FlightStore, updater *FlightService, workers int, m *metrics.MetricsRegistry) *RecalculationService {
	if workers <= 0 {
		workers = 1
	}
	return &RecalculationService{flights: flights, updater: updater, workers: workers, metrics: m}
}

// RecalculateAll updates every flight. Individual failures are counted and
// logged; only listing the flights or cancellation aborts the run.
func (s *RecalculationService) RecalculateAll(ctx context.Context, nightAngle float64) (*dtos.RecalculationResponse, error) {
	start := time.Now()

	ids, err := s.flights.ListIDs(ctx)
	if err != nil {
		return nil, newError(constants.ErrCodeDatabaseError, err)
	}

	var updated, failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for _, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := s.updater.UpdateNightTime(gctx, id, nightAngle); err != nil {
				failed.Add(1)
				s.count("failed")
				logging.Warn("Night time recalculation failed", "flight_id", id, "error", err)
				return nil
			}
			updated.Add(1)
			s.count("updated")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.RecalcJobDuration.WithLabelValues("night_recalculation").Observe(elapsed.Seconds())
	}

	logging.Info("Night time recalculation finished",
		"total", len(ids),
		"updated", updated.Load(),
		"failed", failed.Load(),
		"duration_ms", elapsed.Milliseconds(),
	)

	return &dtos.RecalculationResponse{
		Total:      len(ids),
		Updated:    int(updated.Load()),
		Failed:     int(failed.Load()),
		NightAngle: nightAngle,
		DurationMs: elapsed.Milliseconds(),
	}, nil
}

func (s *RecalculationService) count(result string) {
	if s.metrics != nil {
		s.metrics.FlightsRecalculatedTotal.WithLabelValues(result).Inc()
	}
}
