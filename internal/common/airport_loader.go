package common

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"openpilotlog/logbook/internal/db/repositories"
	"openpilotlog/logbook/internal/logging"
	"openpilotlog/logbook/internal/models/gorm"
)

// DefaultAirportsURL is the mwgg/Airports dataset keyed by ICAO code.
const DefaultAirportsURL = "https://raw.githubusercontent.com/mwgg/Airports/refs/heads/master/airports.json"

// AirportLoaderService handles loading airport data from JSON
type AirportLoaderService struct {
	repo   *repositories.AirportRepository
	client *http.Client
}

// RawAirportData represents the structure of airport data from JSON
type RawAirportData struct {
	ICAO      string  `json:"icao"`
	IATA      string  `json:"iata"`
	Name      string  `json:"name"`
	City      string  `json:"city"`
	State     string  `json:"state"`
	Country   string  `json:"country"`
	Elevation int     `json:"elevation"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	TZ        string  `json:"tz"`
}

// NewAirportLoaderService creates a new airport loader service
func NewAirportLoaderService(repo *repositories.AirportRepository, client *http.Client) *AirportLoaderService {
	if client == nil {
		client = http.DefaultClient
	}
	return &AirportLoaderService{repo: repo, client: client}
}

// ParseAirports streams airports out of a JSON object keyed by code, e.g.
// {"KJFK": {"icao": "KJFK", "name": "John F Kennedy International Airport", ...}}.
// Records without an ICAO code, a name or a valid position are skipped.
func ParseAirports(reader io.Reader) ([]gorm.Airport, error) {
	it := jsoniter.Parse(jsoniter.ConfigCompatibleWithStandardLibrary, reader, 8192)

	var airports []gorm.Airport
	for key := it.ReadObject(); key != ""; key = it.ReadObject() {
		var raw RawAirportData
		it.ReadVal(&raw)
		if it.Error != nil {
			break
		}

		if airport, ok := raw.toModel(); ok {
			airports = append(airports, airport)
		}
	}

	if it.Error != nil && it.Error != io.EOF {
		return nil, fmt.Errorf("failed to decode JSON: %w", it.Error)
	}
	if len(airports) == 0 {
		return nil, fmt.Errorf("no valid airports found after parsing")
	}
	return airports, nil
}

func (raw RawAirportData) toModel() (gorm.Airport, bool) {
	timezone := raw.TZ
	if timezone == "" && raw.State != "" {
		timezone = raw.State
	}

	var elevation sql.NullInt64
	if raw.Elevation > 0 {
		elevation = sql.NullInt64{Int64: int64(raw.Elevation), Valid: true}
	}

	airport := gorm.Airport{
		ICAO:      strings.ToUpper(strings.TrimSpace(raw.ICAO)),
		IATA:      strings.ToUpper(strings.TrimSpace(raw.IATA)),
		Name:      strings.TrimSpace(raw.Name),
		City:      strings.TrimSpace(raw.City),
		Country:   strings.TrimSpace(raw.Country),
		Elevation: elevation,
		Latitude:  raw.Lat,
		Longitude: raw.Lon,
		Timezone:  timezone,
	}

	if airport.ICAO == "" || len(airport.ICAO) > 4 || airport.Name == "" {
		return airport, false
	}
	if len(airport.IATA) != 3 {
		airport.IATA = ""
	}
	if raw.Lat < -90 || raw.Lat > 90 || raw.Lon < -180 || raw.Lon > 180 {
		return airport, false
	}
	return airport, true
}

// LoadFromJSON replaces the airport table with the airports read from reader.
func (s *AirportLoaderService) LoadFromJSON(ctx context.Context, reader io.Reader) (int, error) {
	airports, err := ParseAirports(reader)
	if err != nil {
		return 0, err
	}

	logging.Info("Parsed airports", "count", len(airports))

	if err := s.repo.ReplaceAll(ctx, airports); err != nil {
		return 0, fmt.Errorf("failed to insert airports: %w", err)
	}

	logging.Info("Imported airports", "count", len(airports))
	return len(airports), nil
}

// LoadFromURL downloads the dataset at url and imports it.
func (s *AirportLoaderService) LoadFromURL(ctx context.Context, url string) (int, error) {
	logging.Info("Fetching airports", "url", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to fetch airports: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("failed to fetch airports: HTTP %d", resp.StatusCode)
	}

	return s.LoadFromJSON(ctx, resp.Body)
}

// Count returns the number of airports currently loaded.
func (s *AirportLoaderService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
