package repositories

import (
	"context"
	"errors"

	"openpilotlog/logbook/internal/models/gorm"

	gormlib "gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CurrencyRepository struct {
	db *gormlib.DB
}

func NewCurrencyRepository(db *gormlib.DB) *CurrencyRepository {
	return &CurrencyRepository{db: db}
}

func (r *CurrencyRepository) List(ctx context.Context) ([]gorm.Currency, error) {
	var currencies []gorm.Currency
	err := r.db.WithContext(ctx).Order("name").Find(&currencies).Error
	return currencies, err
}

func (r *CurrencyRepository) FindByID(ctx context.Context, id string) (*gorm.Currency, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *CurrencyRepository) FindByName(ctx context.Context, name string) (*gorm.Currency, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *CurrencyRepository) findOne(ctx context.Context, cond, arg string) (*gorm.Currency, error) {
	var currency gorm.Currency
	err := r.db.WithContext(ctx).Where(cond, arg).First(&currency).Error
	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &currency, nil
}

// UpdateExpiry sets the expiry date of a currency, returning ErrRecordNotFound for unknown IDs.
func (r *CurrencyRepository) UpdateExpiry(ctx context.Context, id, expiryDate string) error {
	res := r.db.WithContext(ctx).
		Model(&gorm.Currency{}).
		Where("id = ?", id).
		Update("expiry_date", expiryDate)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gormlib.ErrRecordNotFound
	}
	return nil
}

// UpsertByName creates the named currency or updates its expiry date.
func (r *CurrencyRepository) UpsertByName(ctx context.Context, name, expiryDate string) error {
	currency := gorm.Currency{Name: name, ExpiryDate: expiryDate}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"expiry_date", "updated_at"}),
		}).
		Create(&currency).Error
}

// EnsureDefaults creates any missing currency from names with no expiry date.
func (r *CurrencyRepository) EnsureDefaults(ctx context.Context, names []string) error {
	for _, name := range names {
		currency := gorm.Currency{Name: name}
		err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&currency).Error
		if err != nil {
			return err
		}
	}
	return nil
}
