package services

import (
	"context"
	"time"

	"openpilotlog/logbook/internal/calc"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/models/dtos"
	"openpilotlog/logbook/internal/models/entities"
)

// Aggregator sums flight data over inclusive date ranges.
type Aggregator interface {
	SumBlockMinutes(ctx context.Context, start, end time.Time) (int, error)
	CountTakeoffsLandings(ctx context.Context, start, end time.Time) (int, int, error)
	Totals(ctx context.Context) (*entities.LogbookTotals, error)
}

// StatisticsService computes flight time limitation totals and take-off/landing
// currency relative to today.
type StatisticsService struct {
	agg                 Aggregator
	now                 func() time.Time
	currencyWindowDays  int
	ftlWarningThreshold float64
}

type StatisticsOption func(*StatisticsService)

// WithClock fixes the reference date, mostly for tests.
func WithClock(now func() time.Time) StatisticsOption {
	return func(s *StatisticsService) { s.now = now }
}

func WithCurrencyWindow(days int) StatisticsOption {
	return func(s *StatisticsService) { s.currencyWindowDays = days }
}

func WithFTLWarningThreshold(threshold float64) StatisticsOption {
	return func(s *StatisticsService) { s.ftlWarningThreshold = threshold }
}

func NewStatisticsService(agg Aggregator, opts ...StatisticsOption) *StatisticsService {
	s := &StatisticsService{
		agg:                 agg,
		now:                 time.Now,
		currencyWindowDays:  90,
		ftlWarningThreshold: 0.8,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *StatisticsService) today() time.Time {
	return calc.StartOfDay(s.now())
}

// CurrencyWindowDays is the configured take-off/landing currency window.
func (s *StatisticsService) CurrencyWindowDays() int {
	return s.currencyWindowDays
}

// TotalTime sums the block time of all flights dated within the time frame.
func (s *StatisticsService) TotalTime(ctx context.Context, tf calc.TimeFrame) (int, error) {
	start, end := tf.Window(s.today())
	total, err := s.agg.SumBlockMinutes(ctx, start, end)
	if err != nil {
		return 0, newError(constants.ErrCodeDatabaseError, err)
	}
	return total, nil
}

// CountTakeOffLanding returns the take-offs and landings dated within the last
// days days, today included.
func (s *StatisticsService) CountTakeOffLanding(ctx context.Context, days int) (int, int, error) {
	today := s.today()
	takeoffs, landings, err := s.agg.CountTakeoffsLandings(ctx, today.AddDate(0, 0, -days), today)
	if err != nil {
		return 0, 0, newError(constants.ErrCodeDatabaseError, err)
	}
	return takeoffs, landings, nil
}

// CurrencyTakeOffLandingExpiry returns the date the take-off/landing currency
// lapses. Without three take-offs and three landings in the window the currency
// has already lapsed and today is returned. Otherwise the window is shrunk from
// today backwards one day at a time until three of each are found; the oldest of
// those drops out of the window windowDays after that day.
func (s *StatisticsService) CurrencyTakeOffLandingExpiry(ctx context.Context, windowDays int) (time.Time, error) {
	today := s.today()

	takeoffs, landings, err := s.CountTakeOffLanding(ctx, windowDays)
	if err != nil {
		return time.Time{}, err
	}
	if takeoffs < constants.RequiredTakeoffsLandings || landings < constants.RequiredTakeoffsLandings {
		return today, nil
	}

	days := 0
	for i := 0; i <= windowDays; i++ {
		takeoffs, landings, err := s.CountTakeOffLanding(ctx, i)
		if err != nil {
			return time.Time{}, err
		}
		if takeoffs >= constants.RequiredTakeoffsLandings && landings >= constants.RequiredTakeoffsLandings {
			days = i
			break
		}
	}

	return today.AddDate(0, 0, windowDays-days), nil
}

// FTLStatus grades the block time accrued in a time frame against its limit.
func (s *StatisticsService) FTLStatus(ctx context.Context, tf calc.TimeFrame) (*dtos.FTLStatusResponse, error) {
	accrued, err := s.TotalTime(ctx, tf)
	if err != nil {
		return nil, err
	}

	start, end := tf.Window(s.today())
	limit := calc.FTLLimit(tf)
	status := &dtos.FTLStatusResponse{
		TimeFrame:      tf.String(),
		To:             end.Format(calc.DateLayout),
		AccruedMinutes: accrued,
		Accrued:        calc.ClockMinutes(accrued).String(),
		LimitMinutes:   limit,
		Level:          calc.ClassifyFTL(accrued, limit, s.ftlWarningThreshold),
	}
	if !start.IsZero() {
		status.From = start.Format(calc.DateLayout)
	}
	if limit > 0 {
		status.Limit = calc.ClockMinutes(limit).String()
	}
	return status, nil
}

// FTLStatuses reports the 28 day, 12 month and calendar year limits.
func (s *StatisticsService) FTLStatuses(ctx context.Context) ([]dtos.FTLStatusResponse, error) {
	frames := []calc.TimeFrame{calc.Rolling28Days, calc.Rolling12Months, calc.CalendarYear}

	out := make([]dtos.FTLStatusResponse, 0, len(frames))
	for _, tf := range frames {
		status, err := s.FTLStatus(ctx, tf)
		if err != nil {
			return nil, err
		}
		out = append(out, *status)
	}
	return out, nil
}

// TakeoffLandingStatus reports the take-off/landing currency over the configured window.
func (s *StatisticsService) TakeoffLandingStatus(ctx context.Context) (*dtos.TakeoffLandingStatusResponse, error) {
	takeoffs, landings, err := s.CountTakeOffLanding(ctx, s.currencyWindowDays)
	if err != nil {
		return nil, err
	}
	expiry, err := s.CurrencyTakeOffLandingExpiry(ctx, s.currencyWindowDays)
	if err != nil {
		return nil, err
	}

	return &dtos.TakeoffLandingStatusResponse{
		WindowDays: s.currencyWindowDays,
		Takeoffs:   takeoffs,
		Landings:   landings,
		Expiry:     expiry.Format(calc.DateLayout),
		Expired:    !expiry.After(s.today()),
	}, nil
}

// Totals returns all-time logbook totals.
func (s *StatisticsService) Totals(ctx context.Context) (*dtos.TotalsResponse, error) {
	t, err := s.agg.Totals(ctx)
	if err != nil {
		return nil, newError(constants.ErrCodeDatabaseError, err)
	}

	return &dtos.TotalsResponse{
		Flights:       t.Flights,
		BlockMinutes:  t.BlockMinutes,
		BlockTime:     calc.ClockMinutes(t.BlockMinutes).String(),
		NightMinutes:  t.NightMinutes,
		NightTime:     calc.ClockMinutes(t.NightMinutes).String(),
		TakeoffsDay:   t.TakeoffsDay,
		TakeoffsNight: t.TakeoffsNight,
		LandingsDay:   t.LandingsDay,
		LandingsNight: t.LandingsNight,
	}, nil
}
