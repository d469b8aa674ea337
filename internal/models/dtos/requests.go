package dtos

import "time"

// NightTimeReq classifies an ad-hoc flight. Departure is an RFC 3339 instant.
// NightAngle falls back to the configured default when omitted.
type NightTimeReq struct {
	Dept         string    `json:"dept"`
	Dest         string    `json:"dest"`
	Departure    time.Time `json:"departure"`
	BlockMinutes int       `json:"block_minutes"`
	NightAngle   *float64  `json:"night_angle,omitempty"`
}

// RecalculateReq optionally overrides the night angle for a batch run.
type RecalculateReq struct {
	NightAngle *float64 `json:"night_angle,omitempty"`
}

type UpdateCurrencyReq struct {
	ExpiryDate string `json:"expiry_date"`
}

type CreateFlightReq struct {
	Doft      string `json:"doft"`
	Dept      string `json:"dept"`
	Dest      string `json:"dest"`
	OffBlocks string `json:"off_blocks"`
	OnBlocks  string `json:"on_blocks"`
	Takeoffs  int    `json:"takeoffs"`
	Landings  int    `json:"landings"`
	Remarks   string `json:"remarks,omitempty"`
}
