package workers

import (
	"context"

	"openpilotlog/logbook/internal/metrics"
)

type WorkersContainer struct {
	NightTime *NightTimeQueue
}

// InitWorkers creates the background workers and starts them on ctx.
func InitWorkers(ctx context.Context, updater NightTimeUpdater, numWorkers int, m *metrics.MetricsRegistry) *WorkersContainer {
	q := NewNightTimeQueue(updater, 100, m)

	go q.Start(ctx, numWorkers)

	return &WorkersContainer{
		NightTime: q,
	}
}
