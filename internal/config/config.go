// Package config reads the logbook server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type DBDriver string

const (
	DriverSQLite   DBDriver = "sqlite"
	DriverPostgres DBDriver = "postgres"
)

// Config holds all runtime configuration.
type Config struct {
	AppEnv   string
	HTTPPort int

	// Database
	DBDriver   DBDriver
	DBPath     string // sqlite file, ":memory:" for an ephemeral database
	PGHost     string
	PGPort     string
	PGUser     string
	PGPassword string
	PGDatabase string

	// Cache
	RedisHost     string // empty selects the in-process cache
	RedisPort     string
	RedisPassword string
	CacheTTL      time.Duration

	// Calculations
	NightAngle          float64
	CurrencyWindowDays  int
	CurrencyWarningDays int
	FTLWarningThreshold float64

	// Background work
	RecalcWorkers           int
	CurrencyRefreshInterval time.Duration

	// HTTP
	APISecret      string // empty disables bearer auth
	RateLimitRPS   float64
	RateLimitBurst int
}

// Default returns the configuration used when no environment is set.
func Default() Config {
	return Config{
		AppEnv:                  "development",
		HTTPPort:                8080,
		DBDriver:                DriverSQLite,
		DBPath:                  "logbook.db",
		PGPort:                  "5432",
		RedisPort:               "6379",
		CacheTTL:                time.Hour,
		NightAngle:              -6,
		CurrencyWindowDays:      90,
		CurrencyWarningDays:     30,
		FTLWarningThreshold:     0.8,
		RecalcWorkers:           4,
		CurrencyRefreshInterval: time.Hour,
		RateLimitRPS:            5,
		RateLimitBurst:          10,
	}
}

// Load builds a Config from the defaults overridden by environment variables.
// Malformed or out of range values are reported rather than ignored.
func Load() (*Config, error) {
	cfg := Default()
	var err error

	if v := os.Getenv("APP_ENV"); v != "" {
		cfg.AppEnv = v
	}
	if cfg.HTTPPort, err = envInt("HTTP_PORT", cfg.HTTPPort); err != nil {
		return nil, err
	}

	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.DBDriver = DBDriver(v)
	}
	if v := os.Getenv("DB_PATH"); v != "" {
		cfg.DBPath = v
	}
	cfg.PGHost = os.Getenv("PG_HOST")
	if v := os.Getenv("PG_PORT"); v != "" {
		cfg.PGPort = v
	}
	cfg.PGUser = os.Getenv("PG_USER")
	cfg.PGPassword = os.Getenv("PG_PASSWORD")
	cfg.PGDatabase = os.Getenv("PG_DB")

	cfg.RedisHost = os.Getenv("REDIS_HOST")
	if v := os.Getenv("REDIS_PORT"); v != "" {
		cfg.RedisPort = v
	}
	cfg.RedisPassword = os.Getenv("REDIS_PASSWORD")
	ttl, err := envInt("CACHE_TTL_SECONDS", int(cfg.CacheTTL/time.Second))
	if err != nil {
		return nil, err
	}
	cfg.CacheTTL = time.Duration(ttl) * time.Second

	if cfg.NightAngle, err = envFloat("NIGHT_ANGLE", cfg.NightAngle); err != nil {
		return nil, err
	}
	if cfg.CurrencyWindowDays, err = envInt("CURRENCY_WINDOW_DAYS", cfg.CurrencyWindowDays); err != nil {
		return nil, err
	}
	if cfg.CurrencyWarningDays, err = envInt("CURRENCY_WARNING_DAYS", cfg.CurrencyWarningDays); err != nil {
		return nil, err
	}
	if cfg.FTLWarningThreshold, err = envFloat("FTL_WARNING_THRESHOLD", cfg.FTLWarningThreshold); err != nil {
		return nil, err
	}

	if cfg.RecalcWorkers, err = envInt("RECALC_WORKERS", cfg.RecalcWorkers); err != nil {
		return nil, err
	}
	if v := os.Getenv("CURRENCY_REFRESH_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("CURRENCY_REFRESH_INTERVAL: %w", err)
		}
		cfg.CurrencyRefreshInterval = d
	}

	cfg.APISecret = os.Getenv("API_SECRET")
	if cfg.RateLimitRPS, err = envFloat("RATE_LIMIT_RPS", cfg.RateLimitRPS); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst, err = envInt("RATE_LIMIT_BURST", cfg.RateLimitBurst); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite:
		if c.DBPath == "" {
			return fmt.Errorf("DB_PATH is required for the sqlite driver")
		}
	case DriverPostgres:
		if c.PGHost == "" || c.PGDatabase == "" {
			return fmt.Errorf("PG_HOST and PG_DB are required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}

	if c.HTTPPort <= 0 || c.HTTPPort > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTPPort)
	}
	if c.NightAngle < -18 || c.NightAngle > 0 {
		return fmt.Errorf("NIGHT_ANGLE must be between -18 and 0, got %v", c.NightAngle)
	}
	if c.CurrencyWindowDays <= 0 {
		return fmt.Errorf("CURRENCY_WINDOW_DAYS must be positive, got %d", c.CurrencyWindowDays)
	}
	if c.CurrencyWarningDays < 0 {
		return fmt.Errorf("CURRENCY_WARNING_DAYS must not be negative, got %d", c.CurrencyWarningDays)
	}
	if c.FTLWarningThreshold <= 0 || c.FTLWarningThreshold > 1 {
		return fmt.Errorf("FTL_WARNING_THRESHOLD must be in (0, 1], got %v", c.FTLWarningThreshold)
	}
	if c.RecalcWorkers <= 0 {
		return fmt.Errorf("RECALC_WORKERS must be positive, got %d", c.RecalcWorkers)
	}
	if c.CurrencyRefreshInterval <= 0 {
		return fmt.Errorf("CURRENCY_REFRESH_INTERVAL must be positive")
	}
	if c.CacheTTL <= 0 {
		return fmt.Errorf("CACHE_TTL_SECONDS must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	return nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// PostgresDSN builds the connection string used by both gorm and sqlx.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PGUser, c.PGPassword, c.PGHost, c.PGPort, c.PGDatabase)
}

func (c Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func envInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
