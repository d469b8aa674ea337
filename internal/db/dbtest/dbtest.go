package dbtest

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"openpilotlog/logbook/internal/db"
)

// NewTestDB opens a migrated in-memory sqlite database that is closed with the test.
func NewTestDB(t testing.TB) (*gorm.DB, *sqlx.DB) {
	t.Helper()

	orm, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := orm.DB()
	if err != nil {
		t.Fatalf("Failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.Migrate(orm); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}

	return orm, sqlx.NewDb(sqlDB, "sqlite3")
}
