package dtos

import (
	"time"

	"openpilotlog/logbook/internal/calc"
)

type APIResponse struct {
	Status       string `json:"status"`
	Message      string `json:"message"`
	ResponseTime string `json:"response_time"`
	Data         any    `json:"data,omitempty"`
}

type BlockTimeResponse struct {
	OffBlocks    string `json:"off_blocks"`
	OnBlocks     string `json:"on_blocks"`
	BlockMinutes int    `json:"block_minutes"`
	BlockTime    string `json:"block_time"`
}

type NightTimeResponse struct {
	calc.NightTimeValues
	Dept           string    `json:"dept"`
	Dest           string    `json:"dest"`
	Departure      time.Time `json:"departure"`
	BlockMinutes   int       `json:"block_minutes"`
	NightAngle     float64   `json:"night_angle"`
	NightTime      string    `json:"night_time"`
	Classification string    `json:"classification"`
}

type AirportResponse struct {
	ICAO      string  `json:"icao"`
	IATA      string  `json:"iata,omitempty"`
	Name      string  `json:"name"`
	City      string  `json:"city,omitempty"`
	Country   string  `json:"country,omitempty"`
	Latitude  float64 `json:"lat"`
	Longitude float64 `json:"lon"`
	Timezone  string  `json:"timezone,omitempty"`
}

type DistanceResponse struct {
	Dept       string  `json:"dept"`
	Dest       string  `json:"dest"`
	Radians    float64 `json:"radians"`
	DistanceNM float64 `json:"distance_nm"`
}

type FlightNightTimeResponse struct {
	FlightID      string `json:"flight_id"`
	BlockMinutes  int    `json:"block_minutes"`
	NightMinutes  int    `json:"night_minutes"`
	TakeOffNight  bool   `json:"takeoff_night"`
	LandingNight  bool   `json:"landing_night"`
	TakeoffsDay   int    `json:"takeoffs_day"`
	TakeoffsNight int    `json:"takeoffs_night"`
	LandingsDay   int    `json:"landings_day"`
	LandingsNight int    `json:"landings_night"`
}

type RecalculationResponse struct {
	Total      int     `json:"total"`
	Updated    int     `json:"updated"`
	Failed     int     `json:"failed"`
	NightAngle float64 `json:"night_angle"`
	DurationMs int64   `json:"duration_ms"`
}

type TotalsResponse struct {
	Flights       int    `json:"flights"`
	BlockMinutes  int    `json:"block_minutes"`
	BlockTime     string `json:"block_time"`
	NightMinutes  int    `json:"night_minutes"`
	NightTime     string `json:"night_time"`
	TakeoffsDay   int    `json:"takeoffs_day"`
	TakeoffsNight int    `json:"takeoffs_night"`
	LandingsDay   int    `json:"landings_day"`
	LandingsNight int    `json:"landings_night"`
}

type FTLStatusResponse struct {
	TimeFrame      string        `json:"time_frame"`
	From           string        `json:"from"`
	To             string        `json:"to"`
	AccruedMinutes int           `json:"accrued_minutes"`
	Accrued        string        `json:"accrued"`
	LimitMinutes   int           `json:"limit_minutes"`
	Limit          string        `json:"limit"`
	Level          calc.FTLLevel `json:"level"`
}

type TakeoffLandingStatusResponse struct {
	WindowDays int    `json:"window_days"`
	Takeoffs   int    `json:"takeoffs"`
	Landings   int    `json:"landings"`
	Expiry     string `json:"expiry"`
	Expired    bool   `json:"expired"`
}

type CurrencyResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ExpiryDate    string `json:"expiry_date,omitempty"`
	Status        string `json:"status"`
	DaysRemaining *int   `json:"days_remaining,omitempty"`
}

type AirportImportResponse struct {
	Imported int   `json:"imported"`
	Total    int64 `json:"total"`
}
