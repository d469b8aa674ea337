package repositories

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"openpilotlog/logbook/internal/calc"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/metrics"
	"openpilotlog/logbook/internal/models/entities"
)

// StatisticsRepository runs aggregate queries over the flights table. Date
// bounds are inclusive and compared as YYYY-MM-DD strings.
type StatisticsRepository struct {
	db      *sqlx.DB
	metrics *metrics.MetricsRegistry
}

func NewStatisticsRepository(db *sqlx.DB, m *metrics.MetricsRegistry) *StatisticsRepository {
	return &StatisticsRepository{db: db, metrics: m}
}

// SumBlockMinutes returns the total block time of flights dated within [start, end].
func (r *StatisticsRepository) SumBlockMinutes(ctx context.Context, start, end time.Time) (int, error) {
	defer r.observe("sum_block_minutes", time.Now())

	var total int
	err := r.db.GetContext(ctx, &total, r.db.Rebind(constants.SumBlockMinutes),
		start.Format(calc.DateLayout), end.Format(calc.DateLayout))
	return total, err
}

// CountTakeoffsLandings returns day plus night take-offs and landings within [start, end].
func (r *StatisticsRepository) CountTakeoffsLandings(ctx context.Context, start, end time.Time) (int, int, error) {
	defer r.observe("count_takeoffs_landings", time.Now())

	var count entities.TakeoffLandingCount
	err := r.db.GetContext(ctx, &count, r.db.Rebind(constants.SumTakeoffsLandings),
		start.Format(calc.DateLayout), end.Format(calc.DateLayout))
	if err != nil {
		return 0, 0, err
	}
	return count.Takeoffs, count.Landings, nil
}

func (r *StatisticsRepository) Totals(ctx context.Context) (*entities.LogbookTotals, error) {
	defer r.observe("logbook_totals", time.Now())

	var totals entities.LogbookTotals
	if err := r.db.GetContext(ctx, &totals, constants.LogbookTotals); err != nil {
		return nil, err
	}
	return &totals, nil
}

func (r *StatisticsRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *StatisticsRepository) observe(queryType string, start time.Time) {
	r.metrics.ObserveDB(queryType, time.Since(start).Seconds())
}
