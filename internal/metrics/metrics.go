package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// MetricsRegistry holds all Prometheus metrics for the logbook server
type MetricsRegistry struct {
	// HTTP Metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight *prometheus.GaugeVec

	// Database Metrics
	DBQueriesTotal  *prometheus.CounterVec
	DBQueryDuration *prometheus.HistogramVec

	// Cache Metrics
	CacheHitsTotal   *prometheus.CounterVec
	CacheMissesTotal *prometheus.CounterVec

	// Calculation Metrics
	NightCalculationsTotal   *prometheus.CounterVec
	NightCalculationDuration prometheus.Histogram
	FlightsRecalculatedTotal *prometheus.CounterVec
	RecalcJobDuration        *prometheus.HistogramVec
}

// NewMetricsRegistry registers all metrics with reg. Pass prometheus.DefaultRegisterer
// in the server and a fresh prometheus.NewRegistry() in tests.
func NewMetricsRegistry(reg prometheus.Registerer) *MetricsRegistry {
	factory := promauto.With(reg)

	return &MetricsRegistry{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_http_requests_total",
				Help: "Total HTTP requests processed by endpoint, method, and status code",
			},
			[]string{"endpoint", "method", "status_code"},
		),
		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logbook_http_request_duration_seconds",
				Help:    "HTTP request latency distribution in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"endpoint", "method"},
		),
		HTTPRequestsInFlight: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "logbook_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"endpoint"},
		),

		DBQueriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_db_queries_total",
				Help: "Total database queries by operation type",
			},
			[]string{"query_type"},
		),
		DBQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logbook_db_query_duration_seconds",
				Help:    "Database query execution time in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"query_type"},
		),

		CacheHitsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_cache_hits_total",
				Help: "Total cache hits by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),
		CacheMissesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_cache_misses_total",
				Help: "Total cache misses by cache key pattern",
			},
			[]string{"cache_key_pattern"},
		),

		NightCalculationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_night_calculations_total",
				Help: "Night time classifications by outcome (all_day, all_night, day_to_night, night_to_day, mixed)",
			},
			[]string{"outcome"},
		),
		NightCalculationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "logbook_night_calculation_duration_seconds",
				Help:    "Time spent sampling a flight track for night time",
				Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
		),
		FlightsRecalculatedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "logbook_flights_recalculated_total",
				Help: "Flights whose night data was recomputed, by result",
			},
			[]string{"result"},
		),
		RecalcJobDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "logbook_job_duration_seconds",
				Help:    "Background job execution time in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120, 300, 600},
			},
			[]string{"job_name"},
		),
	}
}

// ObserveDB records one database query.
func (m *MetricsRegistry) ObserveDB(queryType string, seconds float64) {
	if m == nil {
		return
	}
	m.DBQueriesTotal.WithLabelValues(queryType).Inc()
	m.DBQueryDuration.WithLabelValues(queryType).Observe(seconds)
}

func (m *MetricsRegistry) CacheHit(pattern string) {
	if m == nil {
		return
	}
	m.CacheHitsTotal.WithLabelValues(pattern).Inc()
}

func (m *MetricsRegistry) CacheMiss(pattern string) {
	if m == nil {
		return
	}
	m.CacheMissesTotal.WithLabelValues(pattern).Inc()
}
