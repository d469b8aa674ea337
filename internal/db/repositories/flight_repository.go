package repositories

import (
	"context"
	"errors"

	"openpilotlog/logbook/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

type FlightRepository struct {
	db *gormlib.DB
}

func NewFlightRepository(db *gormlib.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// FindByID returns (nil, nil) when no flight has the given ID.
func (r *FlightRepository) FindByID(ctx context.Context, id string) (*gorm.Flight, error) {
	var flight gorm.Flight

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&flight).Error
	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &flight, nil
}

// ListIDs returns every flight ID ordered by date of flight.
func (r *FlightRepository) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&gorm.Flight{}).
		Order("doft, tofb").
		Pluck("id", &ids).Error
	return ids, err
}

func (r *FlightRepository) Create(ctx context.Context, flight *gorm.Flight) error {
	return r.db.WithContext(ctx).Create(flight).Error
}

// UpdateNightData writes back the night time columns of a flight.
func (r *FlightRepository) UpdateNightData(ctx context.Context, flight *gorm.Flight) error {
	res := r.db.WithContext(ctx).
		Model(&gorm.Flight{}).
		Where("id = ?", flight.ID).
		Updates(map[string]interface{}{
			"night_minutes":  flight.NightMinutes,
			"takeoffs_day":   flight.TakeoffsDay,
			"takeoffs_night": flight.TakeoffsNight,
			"landings_day":   flight.LandingsDay,
			"landings_night": flight.LandingsNight,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gormlib.ErrRecordNotFound
	}
	return nil
}

func (r *FlightRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.Flight{}).Count(&count).Error
	return count, err
}
