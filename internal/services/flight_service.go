package services

import (
	"context"
	"errors"
	"strings"

	gormlib "gorm.io/gorm"

	"openpilotlog/logbook/internal/calc"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/logging"
	"openpilotlog/logbook/internal/models/dtos"
	"openpilotlog/logbook/internal/models/gorm"
)

// FlightStore is the flight persistence the night time write-back needs.
type FlightStore interface {
	FindByID(ctx context.Context, id string) (*gorm.Flight, error)
	Create(ctx context.Context, flight *gorm.Flight) error
	UpdateNightData(ctx context.Context, flight *gorm.Flight) error
	ListIDs(ctx context.Context) ([]string, error)
}

type FlightService struct {
	flights FlightStore
	night   *NightTimeService
}

func NewFlightService(flights FlightStore, night *NightTimeService) *FlightService {
	return &FlightService{flights: flights, night: night}
}

// UpdateNightTime recomputes the night data of a stored flight and writes it back.
func (s *FlightService) UpdateNightTime(ctx context.Context, id string, nightAngle float64) (*dtos.FlightNightTimeResponse, error) {
	flight, err := s.flights.FindByID(ctx, id)
	if err != nil {
		return nil, newError(constants.ErrCodeDatabaseError, err)
	}
	if flight == nil {
		return nil, newError(constants.ErrCodeFlightNotFound, nil)
	}

	v, err := s.apply(ctx, flight, nightAngle)
	if err != nil {
		return nil, err
	}

	if err := s.flights.UpdateNightData(ctx, flight); err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, newError(constants.ErrCodeFlightNotFound, err)
		}
		return nil, newError(constants.ErrCodeDatabaseError, err)
	}

	logging.Info("Flight night time updated",
		"flight_id", flight.ID,
		"night_minutes", flight.NightMinutes,
		"takeoff_night", v.TakeOffNight,
		"landing_night", v.LandingNight,
	)
	return toFlightNightTime(flight, v), nil
}

// CreateFlight stores a new flight with its night time already classified.
func (s *FlightService) CreateFlight(ctx context.Context, req dtos.CreateFlightReq, nightAngle float64) (*dtos.FlightNightTimeResponse, error) {
	if _, err := calc.ParseDate(req.Doft); err != nil {
		return nil, newError(constants.ErrCodeInvalidDate, err)
	}
	off := calc.ParseClockMinutes(calc.FixupTimeInput(req.OffBlocks, calc.DefaultTimeFormat), calc.DefaultTimeFormat)
	on := calc.ParseClockMinutes(calc.FixupTimeInput(req.OnBlocks, calc.DefaultTimeFormat), calc.DefaultTimeFormat)
	if !off.IsValidTimeOfDay() || !on.IsValidTimeOfDay() {
		return nil, newError(constants.ErrCodeInvalidTime, nil)
	}
	if req.Takeoffs < 0 || req.Landings < 0 {
		return nil, newErrorf(constants.ErrCodeInvalidInput, "take-offs and landings must not be negative")
	}

	flight := &gorm.Flight{
		Doft:         req.Doft,
		Dept:         strings.ToUpper(strings.TrimSpace(req.Dept)),
		Dest:         strings.ToUpper(strings.TrimSpace(req.Dest)),
		OffBlocks:    off.String(),
		OnBlocks:     on.String(),
		BlockMinutes: calc.BlockMinutes(off, on),
		TakeoffsDay:  req.Takeoffs,
		LandingsDay:  req.Landings,
		Remarks:      req.Remarks,
	}

	v, err := s.apply(ctx, flight, nightAngle)
	if err != nil {
		return nil, err
	}

	if err := s.flights.Create(ctx, flight); err != nil {
		return nil, newError(constants.ErrCodeDatabaseError, err)
	}
	return toFlightNightTime(flight, v), nil
}

// apply classifies a flight and stores the result on it without persisting.
func (s *FlightService) apply(ctx context.Context, flight *gorm.Flight, nightAngle float64) (calc.NightTimeValues, error) {
	departure, err := flight.DepartureInstant()
	if err != nil {
		return calc.NightTimeValues{}, newError(constants.ErrCodeFlightIncomplete, err)
	}

	v, err := s.night.NightTimeValues(ctx, flight.Dept, flight.Dest, departure, flight.BlockMinutes, nightAngle)
	if err != nil {
		return calc.NightTimeValues{}, err
	}

	flight.ApplyNightTime(v)
	return v, nil
}

func toFlightNightTime(f *gorm.Flight, v calc.NightTimeValues) *dtos.FlightNightTimeResponse {
	return &dtos.FlightNightTimeResponse{
		FlightID:      f.ID,
		BlockMinutes:  f.BlockMinutes,
		NightMinutes:  v.NightMinutes,
		TakeOffNight:  v.TakeOffNight,
		LandingNight:  v.LandingNight,
		TakeoffsDay:   f.TakeoffsDay,
		TakeoffsNight: f.TakeoffsNight,
		LandingsDay:   f.LandingsDay,
		LandingsNight: f.LandingsNight,
	}
}
