package workers

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"openpilotlog/logbook/internal/logging"
	"openpilotlog/logbook/internal/metrics"
	"openpilotlog/logbook/internal/models/dtos"
)

// ErrQueueFull is returned by Enqueue when the buffer has no free slot.
var ErrQueueFull = errors.New("night time queue is full")

type NightTimeRequest struct {
	FlightID   string
	NightAngle float64
}

// NightTimeUpdater recomputes and persists the night data of one flight.
type NightTimeUpdater interface {
	UpdateNightTime(ctx context.Context, id string, nightAngle float64) (*dtos.FlightNightTimeResponse, error)
}

// NightTimeQueue buffers flight IDs whose night data must be recomputed after an
// edit and drains them with a fixed number of goroutines.
type NightTimeQueue struct {
	requests chan NightTimeRequest
	updater  NightTimeUpdater
	metrics  *metrics.MetricsRegistry

	processed atomic.Int64
	failed    atomic.Int64
}

func NewNightTimeQueue(updater NightTimeUpdater, size int, m *metrics.MetricsRegistry) *NightTimeQueue {
	if size <= 0 {
		size = 100
	}
	return &NightTimeQueue{
		requests: make(chan NightTimeRequest, size),
		updater:  updater,
		metrics:  m,
	}
}

// Enqueue schedules a recalculation without blocking.
func (q *NightTimeQueue) Enqueue(req NightTimeRequest) error {
	select {
	case q.requests <- req:
		return nil
	default:
		logging.Warn("Night time queue full, dropping request", "flight_id", req.FlightID)
		return ErrQueueFull
	}
}

// Pending is the number of buffered requests.
func (q *NightTimeQueue) Pending() int {
	return len(q.requests)
}

// Stats returns the number of processed and failed requests so far.
func (q *NightTimeQueue) Stats() (processed, failed int64) {
	return q.processed.Load(), q.failed.Load()
}

// Start consumes the queue with numWorkers goroutines until ctx is cancelled.
func (q *NightTimeQueue) Start(ctx context.Context, numWorkers int) {
	if numWorkers <= 0 {
		numWorkers = 1
	}
	logging.Info("Night time queue started", "workers", numWorkers, "capacity", cap(q.requests))

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			q.process(ctx, worker)
		}(i)
	}
	wg.Wait()

	processed, failed := q.Stats()
	logging.Info("Night time queue stopped", "processed", processed, "failed", failed)
}

func (q *NightTimeQueue) process(ctx context.Context, worker int) {
	for {
		select {
		case <-ctx.Done():
			return
		case req := <-q.requests:
			resp, err := q.updater.UpdateNightTime(ctx, req.FlightID, req.NightAngle)
			if err != nil {
				q.failed.Add(1)
				q.count("failed")
				logging.Warn("Queued night time update failed",
					"worker", worker,
					"flight_id", req.FlightID,
					"error", err,
				)
				continue
			}
			q.processed.Add(1)
			q.count("updated")
			logging.Debug("Queued night time update done",
				"worker", worker,
				"flight_id", req.FlightID,
				"night_minutes", resp.NightMinutes,
			)
		}
	}
}

func (q *NightTimeQueue) count(result string) {
	if q.metrics != nil {
		q.metrics.FlightsRecalculatedTotal.WithLabelValues(result).Inc()
	}
}
