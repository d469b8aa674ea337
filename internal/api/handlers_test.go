package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"openpilotlog/logbook/internal/common"
	"openpilotlog/logbook/internal/config"
	"openpilotlog/logbook/internal/db/dbtest"
	"openpilotlog/logbook/internal/metrics"
	"openpilotlog/logbook/internal/models/dtos"
	"openpilotlog/logbook/internal/models/gorm"
	"openpilotlog/logbook/internal/workers"
)

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupTestHandlers(t *testing.T) (*Dependencies, http.Handler) {
	t.Helper()

	orm, sqlxDB := dbtest.NewTestDB(t)
	cfg := config.Default()
	cfg.CacheTTL = time.Minute

	deps := InitDependencies(&cfg, orm, sqlxDB, common.NewCacheService(time.Minute),
		metrics.NewMetricsRegistry(prometheus.NewRegistry()))

	err := deps.Repo.Airports.BatchInsert(context.Background(), []gorm.Airport{
		{ICAO: "KJFK", IATA: "JFK", Name: "John F Kennedy International Airport", Latitude: 40.6413, Longitude: -73.7781, Timezone: "America/New_York"},
		{ICAO: "EGLL", IATA: "LHR", Name: "London Heathrow Airport", Latitude: 51.47, Longitude: -0.4543, Timezone: "Europe/London"},
		{ICAO: "ENTC", IATA: "TOS", Name: "Tromso Airport", Latitude: 69.6833, Longitude: 18.9189, Timezone: "Europe/Oslo"},
		{ICAO: "ENBO", IATA: "BOO", Name: "Bodo Airport", Latitude: 67.2692, Longitude: 14.3653, Timezone: "Europe/Oslo"},
	})
	if err != nil {
		t.Fatalf("Failed to seed airports: %v", err)
	}

	h := NewHandlers(deps)
	r := chi.NewRouter()
	r.Get("/healthCheck", h.HealthCheckHandler(time.Now()))
	r.Get("/block-time", h.BlockTimeHandler())
	r.Get("/distance", h.DistanceHandler())
	r.Post("/night-time", h.NightTimeHandler())
	r.Get("/airports/{code}", h.GetAirportHandler())
	r.Get("/airports/{code}/daylight", h.AirportDaylightHandler())
	r.Post("/airports/sync", h.SyncAirportsHandler())
	r.Post("/flights", h.CreateFlightHandler())
	r.Post("/flights/night-time/recalculate", h.RecalculateAllHandler())
	r.Post("/flights/{id}/night-time", h.UpdateFlightNightTimeHandler())
	r.Post("/flights/{id}/night-time/enqueue", h.EnqueueFlightNightTimeHandler())
	r.Get("/statistics/totals", h.TotalsHandler())
	r.Get("/statistics/ftl", h.FTLHandler())
	r.Get("/statistics/takeoff-landing", h.TakeoffLandingHandler())
	r.Get("/currencies", h.ListCurrenciesHandler())
	r.Put("/currencies/{id}", h.UpdateCurrencyHandler())

	return deps, r
}

func doRequest(t *testing.T, handler http.Handler, method, target string, body any) (int, envelope) {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("Failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	var env envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("Response is not a JSON envelope: %v (%s)", err, rr.Body.String())
	}
	return rr.Code, env
}

func decodeData(t *testing.T, env envelope, v any) {
	t.Helper()
	if err := json.Unmarshal(env.Data, v); err != nil {
		t.Fatalf("Failed to decode data: %v (%s)", err, env.Data)
	}
}

func TestHealthCheckHandler(t *testing.T) {
	_, h := setupTestHandlers(t)

	code, env := doRequest(t, h, http.MethodGet, "/healthCheck", nil)
	if code != http.StatusOK || env.Message != "Healthy" {
		t.Fatalf("Expected healthy 200, got %d %q", code, env.Message)
	}

	var data struct {
		Status   string `json:"status"`
		Airports int64  `json:"airports"`
	}
	decodeData(t, env, &data)
	if data.Status != "ok" || data.Airports != 4 {
		t.Errorf("Unexpected health payload %+v", data)
	}
}

func TestBlockTimeHandler(t *testing.T) {
	_, h := setupTestHandlers(t)

	code, env := doRequest(t, h, http.MethodGet, "/block-time?off=2330&on=0025", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", code, env.Message)
	}
	var resp dtos.BlockTimeResponse
	decodeData(t, env, &resp)
	if resp.BlockMinutes != 55 || resp.BlockTime != "00:55" || resp.OffBlocks != "23:30" {
		t.Errorf("Unexpected block time %+v", resp)
	}

	code, env = doRequest(t, h, http.MethodGet, "/block-time?off=25:00&on=01:00", nil)
	if code != http.StatusBadRequest || env.Status != "error" {
		t.Errorf("Expected 400 error, got %d %q", code, env.Status)
	}

	code, _ = doRequest(t, h, http.MethodGet, "/block-time?off=10:00&on=11:00&format=custom", nil)
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for custom format without layout, got %d", code)
	}
}

func TestNightTimeHandler(t *testing.T) {
	_, h := setupTestHandlers(t)
	departure := time.Date(2023, 12, 21, 22, 0, 0, 0, time.UTC)

	code, env := doRequest(t, h, http.MethodPost, "/night-time", dtos.NightTimeReq{
		Dept: "ENTC", Dest: "ENBO", Departure: departure, BlockMinutes: 60,
	})
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", code, env.Message)
	}
	var resp dtos.NightTimeResponse
	decodeData(t, env, &resp)
	if resp.NightMinutes != 60 || resp.Classification != "all_night" {
		t.Errorf("Unexpected night time %+v", resp)
	}

	tests := []struct {
		name  string
		block int
	}{
		{"negative block", -1},
		{"full day", 1440},
		{"oversized block", 3_000_000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := doRequest(t, h, http.MethodPost, "/night-time", dtos.NightTimeReq{
				Dept: "KJFK", Dest: "KJFK", Departure: departure, BlockMinutes: tt.block,
			})
			if code != http.StatusBadRequest {
				t.Errorf("Expected 400, got %d (%s)", code, env.Message)
			}
		})
	}
}

func TestDistanceHandler(t *testing.T) {
	_, h := setupTestHandlers(t)

	code, env := doRequest(t, h, http.MethodGet, "/distance?dept=JFK&dest=LHR", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", code, env.Message)
	}
	var resp dtos.DistanceResponse
	decodeData(t, env, &resp)
	if resp.Dept != "KJFK" || resp.Dest != "EGLL" || resp.DistanceNM < 2990 || resp.DistanceNM > 2993 {
		t.Errorf("Unexpected distance %+v", resp)
	}

	code, _ = doRequest(t, h, http.MethodGet, "/distance?dept=JFK&dest=ZZZZ", nil)
	if code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", code)
	}
}

func TestAirportHandlers(t *testing.T) {
	_, h := setupTestHandlers(t)

	code, env := doRequest(t, h, http.MethodGet, "/airports/lhr", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", code, env.Message)
	}
	var airport dtos.AirportResponse
	decodeData(t, env, &airport)
	if airport.ICAO != "EGLL" {
		t.Errorf("Expected EGLL, got %s", airport.ICAO)
	}

	code, _ = doRequest(t, h, http.MethodGet, "/airports/ZZZZ", nil)
	if code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", code)
	}

	code, env = doRequest(t, h, http.MethodGet, "/airports/EGLL/daylight?date=2023-06-21", nil)
	if code != http.StatusOK {
		t.Errorf("Expected 200, got %d (%s)", code, env.Message)
	}

	code, _ = doRequest(t, h, http.MethodGet, "/airports/EGLL/daylight?date=21.06.2023", nil)
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for a malformed date, got %d", code)
	}
}

func TestSyncAirportsHandler(t *testing.T) {
	deps, h := setupTestHandlers(t)

	// Prime the cache so the sync has something to invalidate.
	if code, _ := doRequest(t, h, http.MethodGet, "/airports/KJFK", nil); code != http.StatusOK {
		t.Fatalf("Expected KJFK before sync, got %d", code)
	}

	dataset := `{"EDDF": {"icao": "EDDF", "iata": "FRA", "name": "Frankfurt am Main", "lat": 50.0333, "lon": 8.5706, "tz": "Europe/Berlin"}}`
	code, env := doRequest(t, h, http.MethodPost, "/airports/sync", dataset)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", code, env.Message)
	}
	var resp dtos.AirportImportResponse
	decodeData(t, env, &resp)
	if resp.Imported != 1 || resp.Total != 1 {
		t.Errorf("Unexpected import result %+v", resp)
	}

	if code, _ := doRequest(t, h, http.MethodGet, "/airports/KJFK", nil); code != http.StatusNotFound {
		t.Errorf("Expected KJFK to be gone after sync, got %d", code)
	}

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer upstream.Close()

	code, _ = doRequest(t, h, http.MethodPost, "/airports/sync?url="+upstream.URL, nil)
	if code != http.StatusBadGateway {
		t.Errorf("Expected 502 for a failing upstream, got %d", code)
	}

	count, err := deps.Repo.Airports.Count(context.Background())
	if err != nil || count != 1 {
		t.Errorf("Expected the previous import to survive, got %d (%v)", count, err)
	}
}

func TestFlightHandlers(t *testing.T) {
	_, h := setupTestHandlers(t)

	code, env := doRequest(t, h, http.MethodPost, "/flights", dtos.CreateFlightReq{
		Doft: "2023-12-21", Dept: "ENTC", Dest: "ENBO",
		OffBlocks: "2200", OnBlocks: "2300",
		Takeoffs: 1, Landings: 1,
	})
	if code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d (%s)", code, env.Message)
	}
	var created dtos.FlightNightTimeResponse
	decodeData(t, env, &created)
	if created.NightMinutes != 60 || created.TakeoffsNight != 1 {
		t.Errorf("Unexpected created flight %+v", created)
	}

	code, env = doRequest(t, h, http.MethodPost, "/flights/"+created.FlightID+"/night-time", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", code, env.Message)
	}

	code, _ = doRequest(t, h, http.MethodPost, "/flights/"+created.FlightID+"/night-time", `{"night_angle": -20}`)
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an out of range angle, got %d", code)
	}

	code, _ = doRequest(t, h, http.MethodPost, "/flights/missing/night-time", nil)
	if code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", code)
	}

	code, _ = doRequest(t, h, http.MethodPost, "/flights", `{"doft": "2023-12-21", "unknown": 1}`)
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown fields, got %d", code)
	}

	code, env = doRequest(t, h, http.MethodPost, "/flights/night-time/recalculate", `{"night_angle": -12}`)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", code, env.Message)
	}
	var recalc dtos.RecalculationResponse
	decodeData(t, env, &recalc)
	if recalc.Total != 1 || recalc.Updated != 1 || recalc.NightAngle != -12 {
		t.Errorf("Unexpected recalculation %+v", recalc)
	}
}

type nopUpdater struct{}

func (nopUpdater) UpdateNightTime(ctx context.Context, id string, nightAngle float64) (*dtos.FlightNightTimeResponse, error) {
	return &dtos.FlightNightTimeResponse{FlightID: id}, nil
}

func TestEnqueueFlightNightTimeHandler(t *testing.T) {
	deps, h := setupTestHandlers(t)

	code, _ := doRequest(t, h, http.MethodPost, "/flights/abc/night-time/enqueue", nil)
	if code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 without workers, got %d", code)
	}

	// The queue is never started, so the second request finds it full.
	deps.Queue = workers.NewNightTimeQueue(nopUpdater{}, 1, nil)

	code, env := doRequest(t, h, http.MethodPost, "/flights/abc/night-time/enqueue", nil)
	if code != http.StatusAccepted {
		t.Fatalf("Expected 202, got %d (%s)", code, env.Message)
	}

	code, _ = doRequest(t, h, http.MethodPost, "/flights/def/night-time/enqueue", nil)
	if code != http.StatusServiceUnavailable {
		t.Errorf("Expected 503 for a full queue, got %d", code)
	}
}

func TestStatisticsHandlers(t *testing.T) {
	_, h := setupTestHandlers(t)

	code, env := doRequest(t, h, http.MethodGet, "/statistics/totals", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", code, env.Message)
	}

	code, env = doRequest(t, h, http.MethodGet, "/statistics/ftl", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", code, env.Message)
	}
	var statuses []dtos.FTLStatusResponse
	decodeData(t, env, &statuses)
	if len(statuses) == 0 {
		t.Error("Expected at least one FTL status")
	}

	code, env = doRequest(t, h, http.MethodGet, "/statistics/ftl?time_frame=rolling_28_days", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", code, env.Message)
	}
	var status dtos.FTLStatusResponse
	decodeData(t, env, &status)
	if status.TimeFrame != "rolling_28_days" {
		t.Errorf("Unexpected time frame %s", status.TimeFrame)
	}

	code, _ = doRequest(t, h, http.MethodGet, "/statistics/ftl?time_frame=fortnight", nil)
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400 for an unknown time frame, got %d", code)
	}

	code, _ = doRequest(t, h, http.MethodGet, "/statistics/takeoff-landing", nil)
	if code != http.StatusOK {
		t.Errorf("Expected 200, got %d", code)
	}
}

func TestCurrencyHandlers(t *testing.T) {
	deps, h := setupTestHandlers(t)
	if err := deps.Services.Currencies.EnsureDefaults(context.Background()); err != nil {
		t.Fatalf("Failed to seed currencies: %v", err)
	}

	code, env := doRequest(t, h, http.MethodGet, "/currencies", nil)
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", code, env.Message)
	}
	var list []dtos.CurrencyResponse
	decodeData(t, env, &list)
	if len(list) == 0 {
		t.Fatal("Expected default currencies")
	}

	expiry := time.Now().UTC().AddDate(1, 0, 0).Format("2006-01-02")
	code, env = doRequest(t, h, http.MethodPut, "/currencies/"+list[0].ID, dtos.UpdateCurrencyReq{ExpiryDate: expiry})
	if code != http.StatusOK {
		t.Fatalf("Expected 200, got %d (%s)", code, env.Message)
	}

	code, _ = doRequest(t, h, http.MethodPut, "/currencies/"+list[0].ID, dtos.UpdateCurrencyReq{ExpiryDate: "next year"})
	if code != http.StatusBadRequest {
		t.Errorf("Expected 400, got %d", code)
	}

	code, _ = doRequest(t, h, http.MethodPut, "/currencies/missing", dtos.UpdateCurrencyReq{ExpiryDate: expiry})
	if code != http.StatusNotFound {
		t.Errorf("Expected 404, got %d", code)
	}
}

func TestMapErrorCodeToHTTPStatus(t *testing.T) {
	tests := map[string]int{
		"INVALID_INPUT":     http.StatusBadRequest,
		"AIRPORT_NOT_FOUND": http.StatusNotFound,
		"FLIGHT_INCOMPLETE": http.StatusUnprocessableEntity,
		"IMPORT_FAILED":     http.StatusBadGateway,
		"QUEUE_FULL":        http.StatusServiceUnavailable,
		"DATABASE_ERROR":    http.StatusInternalServerError,
	}
	for code, want := range tests {
		if got := mapErrorCodeToHTTPStatus(code); got != want {
			t.Errorf("%s: expected %d, got %d", code, want, got)
		}
	}
}
