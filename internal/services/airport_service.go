package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"openpilotlog/logbook/internal/calc"
	"openpilotlog/logbook/internal/common"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/metrics"
	"openpilotlog/logbook/internal/models/dtos"
	"openpilotlog/logbook/internal/models/gorm"
)

// AirportStore looks airports up by ICAO or IATA code; unknown codes give (nil, nil).
type AirportStore interface {
	FindByCode(ctx context.Context, code string) (*gorm.Airport, error)
}

// AirportService resolves airport codes through a cache in front of the airports table.
type AirportService struct {
	store   AirportStore
	cache   common.CacheInterface
	ttl     time.Duration
	metrics *metrics.MetricsRegistry
}

func NewAirportService(store AirportStore, cache common.CacheInterface, ttl time.Duration, m *metrics.MetricsRegistry) *AirportService {
	return &AirportService{store: store, cache: cache, ttl: ttl, metrics: m}
}

// Get returns the airport for an ICAO or IATA code.
func (s *AirportService) Get(ctx context.Context, code string) (*dtos.AirportResponse, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, newErrorf(constants.ErrCodeInvalidInput, "airport code is required")
	}

	key := string(constants.CachePrefixAirport) + code
	loaded := false
	val, err := s.cache.GetOrSet(key, s.ttl, func() (any, error) {
		loaded = true
		return s.load(ctx, code)
	})
	if err != nil {
		return nil, err
	}
	s.countLookup(constants.CachePrefixAirport, loaded)

	airport, ok := common.DecodeCached[dtos.AirportResponse](val)
	if !ok {
		// unreadable entry, replace it
		s.cache.Delete(key)
		fresh, err := s.load(ctx, code)
		if err != nil {
			return nil, err
		}
		s.cache.Set(key, fresh, s.ttl)
		airport = fresh
	}
	return &airport, nil
}

func (s *AirportService) load(ctx context.Context, code string) (dtos.AirportResponse, error) {
	model, err := s.store.FindByCode(ctx, code)
	if err != nil {
		return dtos.AirportResponse{}, newError(constants.ErrCodeDatabaseError, err)
	}
	if model == nil {
		return dtos.AirportResponse{}, &LogbookError{
			Code:    constants.ErrCodeAirportNotFound,
			Message: fmt.Sprintf("airport %s not found", code),
		}
	}

	return dtos.AirportResponse{
		ICAO:      model.ICAO,
		IATA:      model.IATA,
		Name:      model.Name,
		City:      model.City,
		Country:   model.Country,
		Latitude:  model.Latitude,
		Longitude: model.Longitude,
		Timezone:  model.Timezone,
	}, nil
}

func (s *AirportService) countLookup(prefix constants.CachePrefix, loaded bool) {
	if loaded {
		s.metrics.CacheMiss(string(prefix))
		return
	}
	s.metrics.CacheHit(string(prefix))
}

// Resolve returns the coordinates and timezone of an airport.
func (s *AirportService) Resolve(ctx context.Context, code string) (calc.Airport, error) {
	a, err := s.Get(ctx, code)
	if err != nil {
		return calc.Airport{}, err
	}
	return calc.Airport{
		ICAO:     a.ICAO,
		IATA:     a.IATA,
		Name:     a.Name,
		Lat:      a.Latitude,
		Lon:      a.Longitude,
		Timezone: a.Timezone,
	}, nil
}

// Distance returns the great circle distance between two airports.
func (s *AirportService) Distance(ctx context.Context, dept, dest string) (*dtos.DistanceResponse, error) {
	from, err := s.Resolve(ctx, dept)
	if err != nil {
		return nil, err
	}
	to, err := s.Resolve(ctx, dest)
	if err != nil {
		return nil, err
	}

	rad := calc.GreatCircleDistance(from.Lat, from.Lon, to.Lat, to.Lon)
	return &dtos.DistanceResponse{
		Dept:       from.ICAO,
		Dest:       to.ICAO,
		Radians:    rad,
		DistanceNM: calc.RadToNauticalMiles(rad),
	}, nil
}

// Daylight returns sunrise, sunset and twilight times at an airport on date.
func (s *AirportService) Daylight(ctx context.Context, code string, date time.Time) (*calc.Daylight, error) {
	airport, err := s.Resolve(ctx, code)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s%s_%s", constants.CachePrefixDaylight, airport.ICAO, calc.StartOfDay(date).Format(calc.DateLayout))
	loaded := false
	val, err := s.cache.GetOrSet(key, s.ttl, func() (any, error) {
		loaded = true
		return calc.DaylightAt(airport, date), nil
	})
	if err != nil {
		return nil, err
	}
	s.countLookup(constants.CachePrefixDaylight, loaded)

	d, ok := common.DecodeCached[calc.Daylight](val)
	if !ok {
		d = calc.DaylightAt(airport, date)
		s.cache.Set(key, d, s.ttl)
	}
	return &d, nil
}

// Invalidate drops cached airports and daylight reports, e.g. after the airport
// table was reimported. Caches without prefix deletion are left alone.
func (s *AirportService) Invalidate(ctx context.Context) error {
	deleter, ok := s.cache.(common.PrefixDeleter)
	if !ok {
		return nil
	}
	for _, prefix := range []constants.CachePrefix{constants.CachePrefixAirport, constants.CachePrefixDaylight} {
		if err := deleter.DeletePrefix(ctx, string(prefix)); err != nil {
			return fmt.Errorf("failed to invalidate %s cache: %w", prefix, err)
		}
	}
	return nil
}
