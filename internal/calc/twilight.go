package calc

import (
	"time"
	_ "time/tzdata"

	"github.com/nathan-osman/go-sunrise"
	"github.com/sixdouglas/suncalc"
)

// Daylight lists the sun events at a position on a calendar date. Events that do
// not occur on that date (polar day or night) are nil.
type Daylight struct {
	Date         string     `json:"date"`
	Timezone     string     `json:"timezone"`
	NauticalDawn *time.Time `json:"nautical_dawn,omitempty"`
	CivilDawn    *time.Time `json:"civil_dawn,omitempty"`
	Sunrise      *time.Time `json:"sunrise,omitempty"`
	Sunset       *time.Time `json:"sunset,omitempty"`
	CivilDusk    *time.Time `json:"civil_dusk,omitempty"`
	NauticalDusk *time.Time `json:"nautical_dusk,omitempty"`
}

// DaylightAt computes sunrise, sunset and twilight times for an airport on the given
// date. Times are expressed in the airport's timezone when it is known, UTC otherwise.
func DaylightAt(airport Airport, date time.Time) Daylight {
	loc := time.UTC
	if airport.Timezone != "" {
		if l, err := time.LoadLocation(airport.Timezone); err == nil {
			loc = l
		}
	}

	day := StartOfDay(date)
	out := Daylight{
		Date:     day.Format(DateLayout),
		Timezone: loc.String(),
	}

	rise, set := sunrise.SunriseSunset(airport.Lat, airport.Lon, day.Year(), day.Month(), day.Day())
	out.Sunrise = sunEvent(rise, day, loc)
	out.Sunset = sunEvent(set, day, loc)

	// anchor on approximate local noon so the events belong to the requested date
	noon := day.Add(12*time.Hour - time.Duration(airport.Lon/15*float64(time.Hour)))
	times := suncalc.GetTimes(noon, airport.Lat, airport.Lon)
	out.CivilDawn = sunEvent(times[suncalc.Dawn].Value, day, loc)
	out.CivilDusk = sunEvent(times[suncalc.Dusk].Value, day, loc)
	out.NauticalDawn = sunEvent(times[suncalc.NauticalDawn].Value, day, loc)
	out.NauticalDusk = sunEvent(times[suncalc.NauticalDusk].Value, day, loc)

	return out
}

// sunEvent discards missing events and values that are clearly not on the
// requested date, which is what the libraries return when the sun never
// reaches the relevant angle.
func sunEvent(t time.Time, day time.Time, loc *time.Location) *time.Time {
	if t.IsZero() {
		return nil
	}
	if t.Before(day.Add(-24*time.Hour)) || t.After(day.Add(48*time.Hour)) {
		return nil
	}
	local := t.In(loc)
	return &local
}
