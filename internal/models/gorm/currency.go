package gorm

import (
	"time"

	"github.com/google/uuid"
	gormlib "gorm.io/gorm"
)

// Currency is a dated qualification such as a licence or medical. ExpiryDate
// is YYYY-MM-DD, empty when not set.
type Currency struct {
	ID         string    `gorm:"column:id;primaryKey;type:varchar(36)"`
	Name       string    `gorm:"column:name;type:varchar(100);not null;uniqueIndex"`
	ExpiryDate string    `gorm:"column:expiry_date;type:varchar(10)"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Currency) TableName() string {
	return "currencies"
}

func (c *Currency) BeforeCreate(tx *gormlib.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
