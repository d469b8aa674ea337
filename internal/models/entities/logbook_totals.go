package entities

// LogbookTotals is the all-time aggregate row over the flights table.
type LogbookTotals struct {
	Flights       int `db:"flights"`
	BlockMinutes  int `db:"block_minutes"`
	NightMinutes  int `db:"night_minutes"`
	TakeoffsDay   int `db:"takeoffs_day"`
	TakeoffsNight int `db:"takeoffs_night"`
	LandingsDay   int `db:"landings_day"`
	LandingsNight int `db:"landings_night"`
}

// TakeoffLandingCount is the number of take-offs and landings in a date range.
type TakeoffLandingCount struct {
	Takeoffs int `db:"takeoffs"`
	Landings int `db:"landings"`
}
