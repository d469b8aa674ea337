package services

import (
	"context"
	"time"

	"openpilotlog/logbook/internal/calc"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/logging"
	"openpilotlog/logbook/internal/metrics"
	"openpilotlog/logbook/internal/models/dtos"
)

// AirportResolver resolves an ICAO or IATA code to coordinates, failing with
// AIRPORT_NOT_FOUND for unknown codes.
type AirportResolver interface {
	Resolve(ctx context.Context, code string) (calc.Airport, error)
}

// NightTimeService classifies flights into day and night time.
type NightTimeService struct {
	airports   AirportResolver
	nightAngle float64
	metrics    *metrics.MetricsRegistry
}

func NewNightTimeService(airports AirportResolver, nightAngle float64, m *metrics.MetricsRegistry) *NightTimeService {
	return &NightTimeService{airports: airports, nightAngle: nightAngle, metrics: m}
}

// DefaultNightAngle is the configured sun elevation below which it is night.
func (s *NightTimeService) DefaultNightAngle() float64 {
	return s.nightAngle
}

// CalculateNightTime returns the minutes of a flight flown at night.
func (s *NightTimeService) CalculateNightTime(ctx context.Context, dept, dest string, departure time.Time, blockMinutes int, nightAngle float64) (int, error) {
	from, to, err := s.resolvePair(ctx, dept, dest, blockMinutes)
	if err != nil {
		return 0, err
	}
	return calc.NightMinutes(from.Coordinate(), to.Coordinate(), departure, blockMinutes, nightAngle), nil
}

// IsNight reports whether it is night at an airport at the given instant.
func (s *NightTimeService) IsNight(ctx context.Context, code string, instant time.Time, nightAngle float64) (bool, error) {
	airport, err := s.airports.Resolve(ctx, code)
	if err != nil {
		return false, err
	}
	return calc.IsNightAt(airport.Coordinate(), instant, nightAngle), nil
}

// NightTimeValues computes night minutes and take-off/landing flags for a flight.
func (s *NightTimeService) NightTimeValues(ctx context.Context, dept, dest string, departure time.Time, blockMinutes int, nightAngle float64) (calc.NightTimeValues, error) {
	from, to, err := s.resolvePair(ctx, dept, dest, blockMinutes)
	if err != nil {
		return calc.NightTimeValues{}, err
	}

	start := time.Now()
	v := calc.NewNightTimeValues(from.Coordinate(), to.Coordinate(), departure, blockMinutes, nightAngle)
	s.observe(v, blockMinutes, time.Since(start))

	logging.Debug("Night time calculated",
		"dept", from.ICAO,
		"dest", to.ICAO,
		"departure", departure.UTC().Format(time.RFC3339),
		"block_minutes", blockMinutes,
		"night_minutes", v.NightMinutes,
	)
	return v, nil
}

// Classify serves an ad-hoc night time request.
func (s *NightTimeService) Classify(ctx context.Context, req dtos.NightTimeReq) (*dtos.NightTimeResponse, error) {
	if req.Departure.IsZero() {
		return nil, newErrorf(constants.ErrCodeInvalidInput, "departure is required")
	}

	angle := s.nightAngle
	if req.NightAngle != nil {
		angle = *req.NightAngle
	}

	v, err := s.NightTimeValues(ctx, req.Dept, req.Dest, req.Departure, req.BlockMinutes, angle)
	if err != nil {
		return nil, err
	}

	return &dtos.NightTimeResponse{
		NightTimeValues: v,
		Dept:            req.Dept,
		Dest:            req.Dest,
		Departure:       req.Departure.UTC(),
		BlockMinutes:    req.BlockMinutes,
		NightAngle:      angle,
		NightTime:       calc.ClockMinutes(v.NightMinutes).String(),
		Classification:  classification(v, req.BlockMinutes),
	}, nil
}

func (s *NightTimeService) resolvePair(ctx context.Context, dept, dest string, blockMinutes int) (calc.Airport, calc.Airport, error) {
	if blockMinutes < 0 || blockMinutes >= calc.MinutesPerDay {
		return calc.Airport{}, calc.Airport{}, newErrorf(constants.ErrCodeInvalidInput,
			"block minutes must be in [0, %d), got %d", calc.MinutesPerDay, blockMinutes)
	}
	from, err := s.airports.Resolve(ctx, dept)
	if err != nil {
		return calc.Airport{}, calc.Airport{}, err
	}
	to, err := s.airports.Resolve(ctx, dest)
	if err != nil {
		return calc.Airport{}, calc.Airport{}, err
	}
	return from, to, nil
}

func (s *NightTimeService) observe(v calc.NightTimeValues, blockMinutes int, elapsed time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.NightCalculationsTotal.WithLabelValues(classification(v, blockMinutes)).Inc()
	s.metrics.NightCalculationDuration.Observe(elapsed.Seconds())
}

// classification names the light conditions of a flight for responses and metrics.
func classification(v calc.NightTimeValues, blockMinutes int) string {
	switch {
	case v.NightMinutes == 0:
		return "all_day"
	case v.NightMinutes == blockMinutes:
		return "all_night"
	case v.IsDayToNight():
		return "day_to_night"
	case v.IsNightToDay():
		return "night_to_day"
	default:
		return "mixed"
	}
}
