package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"openpilotlog/logbook/internal/config"
)

// InitSQLX returns a sqlx handle for the raw aggregate queries. For sqlite it
// shares gorm's connection pool; for postgres it opens its own pool through lib/pq.
func InitSQLX(cfg *config.Config, orm *gorm.DB) (*sqlx.DB, error) {
	if cfg.DBDriver == config.DriverPostgres {
		return connectPostgres(cfg.PostgresDSN())
	}
	return WrapSQLX(orm)
}

// WrapSQLX exposes a sqlite gorm connection through sqlx.
func WrapSQLX(orm *gorm.DB) (*sqlx.DB, error) {
	sqlDB, err := orm.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB from gorm: %w", err)
	}
	return sqlx.NewDb(sqlDB, "sqlite3"), nil
}

func connectPostgres(dsn string) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	for i := 0; i < 10; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return db, nil
		}
		time.Sleep(500 * time.Millisecond)
	}
	return nil, err
}
