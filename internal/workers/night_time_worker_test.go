package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"openpilotlog/logbook/internal/models/dtos"
)

type mockUpdater struct {
	mu    sync.Mutex
	calls []NightTimeRequest
	fail  map[string]bool
	done  chan struct{}
}

func (m *mockUpdater) UpdateNightTime(ctx context.Context, id string, nightAngle float64) (*dtos.FlightNightTimeResponse, error) {
	m.mu.Lock()
	m.calls = append(m.calls, NightTimeRequest{FlightID: id, NightAngle: nightAngle})
	m.mu.Unlock()
	defer func() {
		if m.done != nil {
			m.done <- struct{}{}
		}
	}()

	if m.fail[id] {
		return nil, errors.New("airport not found")
	}
	return &dtos.FlightNightTimeResponse{FlightID: id, NightMinutes: 60}, nil
}

func TestNightTimeQueue_EnqueueFull(t *testing.T) {
	q := NewNightTimeQueue(&mockUpdater{}, 2, nil)

	require.NoError(t, q.Enqueue(NightTimeRequest{FlightID: "a"}))
	require.NoError(t, q.Enqueue(NightTimeRequest{FlightID: "b"}))
	assert.ErrorIs(t, q.Enqueue(NightTimeRequest{FlightID: "c"}), ErrQueueFull)
	assert.Equal(t, 2, q.Pending())
}

func TestNightTimeQueue_Processes(t *testing.T) {
	updater := &mockUpdater{
		fail: map[string]bool{"bad": true},
		done: make(chan struct{}, 3),
	}
	q := NewNightTimeQueue(updater, 10, nil)

	for _, id := range []string{"one", "bad", "two"} {
		require.NoError(t, q.Enqueue(NightTimeRequest{FlightID: id, NightAngle: -6}))
	}

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		q.Start(ctx, 2)
		close(stopped)
	}()

	for i := 0; i < 3; i++ {
		select {
		case <-updater.done:
		case <-time.After(5 * time.Second):
			t.Fatal("timed out waiting for the queue to drain")
		}
	}
	cancel()
	<-stopped

	processed, failed := q.Stats()
	assert.Equal(t, int64(2), processed)
	assert.Equal(t, int64(1), failed)
	assert.Zero(t, q.Pending())

	updater.mu.Lock()
	defer updater.mu.Unlock()
	assert.Len(t, updater.calls, 3)
	for _, c := range updater.calls {
		assert.Equal(t, -6.0, c.NightAngle)
	}
}
