package repositories

import (
	"context"
	"errors"
	"strings"

	"openpilotlog/logbook/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// AirportRepository handles airport table operations
type AirportRepository struct {
	db *gormlib.DB
}

// NewAirportRepository creates a new airport repository
func NewAirportRepository(db *gormlib.DB) *AirportRepository {
	return &AirportRepository{db: db}
}

// FindByICAO finds an airport by ICAO code (case-insensitive). A missing airport is (nil, nil).
func (r *AirportRepository) FindByICAO(ctx context.Context, icao string) (*gorm.Airport, error) {
	return r.findOne(ctx, "UPPER(icao) = ?", icao)
}

// FindByIATA finds an airport by IATA code (case-insensitive)
func (r *AirportRepository) FindByIATA(ctx context.Context, iata string) (*gorm.Airport, error) {
	return r.findOne(ctx, "UPPER(iata) = ?", iata)
}

// FindByCode resolves a four letter code as ICAO and a three letter code as IATA.
func (r *AirportRepository) FindByCode(ctx context.Context, code string) (*gorm.Airport, error) {
	code = strings.TrimSpace(code)
	if len(code) == 3 {
		return r.FindByIATA(ctx, code)
	}
	return r.FindByICAO(ctx, code)
}

func (r *AirportRepository) findOne(ctx context.Context, cond, code string) (*gorm.Airport, error) {
	var airport gorm.Airport

	err := r.db.WithContext(ctx).
		Where(cond, strings.ToUpper(strings.TrimSpace(code))).
		First(&airport).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &airport, nil
}

// BatchInsert inserts multiple airports
func (r *AirportRepository) BatchInsert(ctx context.Context, airports []gorm.Airport) error {
	return r.db.WithContext(ctx).
		CreateInBatches(airports, 100).Error
}

// ReplaceAll swaps the airport table contents in one transaction.
func (r *AirportRepository) ReplaceAll(ctx context.Context, airports []gorm.Airport) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gormlib.DB) error {
		if err := tx.Where("1 = 1").Delete(&gorm.Airport{}).Error; err != nil {
			return err
		}
		return tx.CreateInBatches(airports, 100).Error
	})
}

// DeleteAll deletes all airports (useful for re-importing)
func (r *AirportRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Where("1 = 1").
		Delete(&gorm.Airport{}).Error
}

// Count returns total number of airports
func (r *AirportRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gorm.Airport{}).Count(&count).Error
	return count, err
}
