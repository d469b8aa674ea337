package api

import (
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"openpilotlog/logbook/internal/auth"
	"openpilotlog/logbook/internal/common"
	"openpilotlog/logbook/internal/config"
	"openpilotlog/logbook/internal/db/repositories"
	"openpilotlog/logbook/internal/metrics"
	"openpilotlog/logbook/internal/services"
	"openpilotlog/logbook/internal/workers"
)

type Repositories struct {
	Airports   *repositories.AirportRepository
	Flights    *repositories.FlightRepository
	Currencies *repositories.CurrencyRepository
	Statistics *repositories.StatisticsRepository
}

type Services struct {
	Airports      *services.AirportService
	NightTime     *services.NightTimeService
	Flights       *services.FlightService
	Recalculation *services.RecalculationService
	Statistics    *services.StatisticsService
	Currencies    *services.CurrencyService
	AirportLoader *common.AirportLoaderService
}

type Dependencies struct {
	Config   *config.Config
	Repo     *Repositories
	Services *Services
	Cache    common.CacheInterface
	Metrics  *metrics.MetricsRegistry
	// Tokens is nil when API_SECRET is empty and auth is disabled.
	Tokens *auth.TokenService
	// Queue is set once the background workers are running.
	Queue *workers.NightTimeQueue
}

func InitDependencies(
	cfg *config.Config,
	orm *gorm.DB,
	sqlxDB *sqlx.DB,
	cache common.CacheInterface,
	m *metrics.MetricsRegistry,
) *Dependencies {
	repos := &Repositories{
		Airports:   repositories.NewAirportRepository(orm),
		Flights:    repositories.NewFlightRepository(orm),
		Currencies: repositories.NewCurrencyRepository(orm),
		Statistics: repositories.NewStatisticsRepository(sqlxDB, m),
	}

	airportSvc := services.NewAirportService(repos.Airports, cache, cfg.CacheTTL, m)
	nightSvc := services.NewNightTimeService(airportSvc, cfg.NightAngle, m)
	flightSvc := services.NewFlightService(repos.Flights, nightSvc)

	svcs := &Services{
		Airports:      airportSvc,
		NightTime:     nightSvc,
		Flights:       flightSvc,
		Recalculation: services.NewRecalculationService(repos.Flights, flightSvc, cfg.RecalcWorkers, m),
		Statistics: services.NewStatisticsService(repos.Statistics,
			services.WithCurrencyWindow(cfg.CurrencyWindowDays),
			services.WithFTLWarningThreshold(cfg.FTLWarningThreshold),
		),
		Currencies:    services.NewCurrencyService(repos.Currencies, cfg.CurrencyWarningDays, time.Now),
		AirportLoader: common.NewAirportLoaderService(repos.Airports, &http.Client{Timeout: 2 * time.Minute}),
	}

	var tokens *auth.TokenService
	if cfg.APISecret != "" {
		tokens = auth.NewTokenService([]byte(cfg.APISecret))
	}

	return &Dependencies{
		Config:   cfg,
		Repo:     repos,
		Services: svcs,
		Cache:    cache,
		Metrics:  m,
		Tokens:   tokens,
	}
}
