package gorm

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"

	"openpilotlog/logbook/internal/calc"
)

// Airport represents an airport record with geographic coordinates
type Airport struct {
	ID        string        `gorm:"column:id;primaryKey;type:varchar(36)"`
	ICAO      string        `gorm:"column:icao;type:varchar(4);not null;uniqueIndex"`
	IATA      string        `gorm:"column:iata;type:varchar(3);index"`
	Name      string        `gorm:"column:name;type:text;not null"`
	City      string        `gorm:"column:city;type:varchar(100)"`
	Country   string        `gorm:"column:country;type:varchar(100)"`
	Elevation sql.NullInt64 `gorm:"column:elevation;type:integer"`
	Latitude  float64       `gorm:"column:latitude;type:numeric(10,6);not null"`
	Longitude float64       `gorm:"column:longitude;type:numeric(10,6);not null"`
	Timezone  string        `gorm:"column:timezone;type:varchar(50)"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (Airport) TableName() string {
	return "airports"
}

func (a *Airport) BeforeCreate(tx *gormlib.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// ToCalc returns the fields the night time calculations need.
func (a Airport) ToCalc() calc.Airport {
	return calc.Airport{
		ICAO:     a.ICAO,
		IATA:     a.IATA,
		Name:     a.Name,
		Lat:      a.Latitude,
		Lon:      a.Longitude,
		Timezone: a.Timezone,
	}
}
