package services

import (
	"context"
	"errors"
	"strings"
	"time"

	gormlib "gorm.io/gorm"

	"openpilotlog/logbook/internal/calc"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/models/dtos"
	"openpilotlog/logbook/internal/models/gorm"
)

type CurrencyStatus string

const (
	CurrencyValid    CurrencyStatus = "VALID"
	CurrencyExpiring CurrencyStatus = "EXPIRING"
	CurrencyExpired  CurrencyStatus = "EXPIRED"
	CurrencyNotSet   CurrencyStatus = "NOT_SET"
)

type CurrencyStore interface {
	List(ctx context.Context) ([]gorm.Currency, error)
	FindByID(ctx context.Context, id string) (*gorm.Currency, error)
	UpdateExpiry(ctx context.Context, id, expiryDate string) error
	UpsertByName(ctx context.Context, name, expiryDate string) error
	EnsureDefaults(ctx context.Context, names []string) error
}

// CurrencyService manages dated currencies such as licences and medicals.
type CurrencyService struct {
	store       CurrencyStore
	now         func() time.Time
	warningDays int
}

func NewCurrencyService(store CurrencyStore, warningDays int, now func() time.Time) *CurrencyService {
	if now == nil {
		now = time.Now
	}
	return &CurrencyService{store: store, now: now, warningDays: warningDays}
}

// EnsureDefaults seeds the standard currencies into an empty logbook.
func (s *CurrencyService) EnsureDefaults(ctx context.Context) error {
	if err := s.store.EnsureDefaults(ctx, constants.DefaultCurrencies); err != nil {
		return newError(constants.ErrCodeDatabaseError, err)
	}
	return nil
}

func (s *CurrencyService) List(ctx context.Context) ([]dtos.CurrencyResponse, error) {
	currencies, err := s.store.List(ctx)
	if err != nil {
		return nil, newError(constants.ErrCodeDatabaseError, err)
	}

	today := calc.StartOfDay(s.now())
	out := make([]dtos.CurrencyResponse, 0, len(currencies))
	for _, c := range currencies {
		out = append(out, s.toResponse(c, today))
	}
	return out, nil
}

// UpdateExpiry sets or, with an empty date, clears the expiry of a currency.
func (s *CurrencyService) UpdateExpiry(ctx context.Context, id, expiryDate string) (*dtos.CurrencyResponse, error) {
	expiryDate = strings.TrimSpace(expiryDate)
	if expiryDate != "" {
		if _, err := calc.ParseDate(expiryDate); err != nil {
			return nil, newError(constants.ErrCodeInvalidDate, err)
		}
	}

	if err := s.store.UpdateExpiry(ctx, id, expiryDate); err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, newError(constants.ErrCodeCurrencyNotFound, nil)
		}
		return nil, newError(constants.ErrCodeDatabaseError, err)
	}

	c, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, newError(constants.ErrCodeDatabaseError, err)
	}
	if c == nil {
		return nil, newError(constants.ErrCodeCurrencyNotFound, nil)
	}

	resp := s.toResponse(*c, calc.StartOfDay(s.now()))
	return &resp, nil
}

// RecordTakeoffLandingExpiry stores the computed take-off/landing currency expiry.
func (s *CurrencyService) RecordTakeoffLandingExpiry(ctx context.Context, expiry time.Time) error {
	if err := s.store.UpsertByName(ctx, constants.CurrencyTakeoffLanding, expiry.Format(calc.DateLayout)); err != nil {
		return newError(constants.ErrCodeDatabaseError, err)
	}
	return nil
}

func (s *CurrencyService) toResponse(c gorm.Currency, today time.Time) dtos.CurrencyResponse {
	status, days := EvaluateCurrency(c.ExpiryDate, today, s.warningDays)
	return dtos.CurrencyResponse{
		ID:            c.ID,
		Name:          c.Name,
		ExpiryDate:    c.ExpiryDate,
		Status:        string(status),
		DaysRemaining: days,
	}
}

// EvaluateCurrency grades an expiry date. A currency expiring today or earlier
// is expired; one expiring within warningDays is expiring.
func EvaluateCurrency(expiryDate string, today time.Time, warningDays int) (CurrencyStatus, *int) {
	if expiryDate == "" {
		return CurrencyNotSet, nil
	}
	expiry, err := calc.ParseDate(expiryDate)
	if err != nil {
		return CurrencyNotSet, nil
	}

	days := int(expiry.Sub(calc.StartOfDay(today)).Hours() / 24)
	switch {
	case days <= 0:
		return CurrencyExpired, &days
	case days <= warningDays:
		return CurrencyExpiring, &days
	default:
		return CurrencyValid, &days
	}
}
