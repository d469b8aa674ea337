package calc

import "time"

// Airport is the subset of airport data the calculations need.
type Airport struct {
	ICAO     string  `json:"icao"`
	IATA     string  `json:"iata,omitempty"`
	Name     string  `json:"name,omitempty"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Timezone string  `json:"timezone,omitempty"`
}

func (a Airport) Coordinate() Coordinate {
	return Coordinate{Lat: a.Lat, Lon: a.Lon}
}

// NightMinutes counts the minutes of a flight flown in night conditions.
//
// The aircraft is assumed to follow the great circle from dept to dest at constant
// speed. Minute i is sampled at departure+i minutes on track point i, for i in
// [0, blockMinutes), and counts as night when the sun is below nightAngle there.
func NightMinutes(dept, dest Coordinate, departure time.Time, blockMinutes int, nightAngle float64) int {
	night := 0
	for i, pos := range Track(dept, dest, blockMinutes) {
		instant := departure.Add(time.Duration(i) * time.Minute)
		if IsNightAt(pos, instant, nightAngle) {
			night++
		}
	}
	return night
}

// NightTimeValues holds the night time of a flight and whether take-off and
// landing happened at night.
type NightTimeValues struct {
	NightMinutes int  `json:"night_minutes"`
	TakeOffNight bool `json:"takeoff_night"`
	LandingNight bool `json:"landing_night"`
}

// NewNightTimeValues computes night minutes and take-off/landing flags for a flight.
//
// A flight without any night minutes is all day and one flown entirely at night is
// all night. Only flights that cross from one to the other have their take-off and
// landing evaluated at the exact departure and arrival instants.
func NewNightTimeValues(dept, dest Coordinate, departure time.Time, blockMinutes int, nightAngle float64) NightTimeValues {
	v := NightTimeValues{
		NightMinutes: NightMinutes(dept, dest, departure, blockMinutes, nightAngle),
	}

	switch {
	case v.NightMinutes == 0:
		v.TakeOffNight = false
		v.LandingNight = false
	case v.NightMinutes == blockMinutes:
		v.TakeOffNight = true
		v.LandingNight = true
	default:
		arrival := departure.Add(time.Duration(blockMinutes) * time.Minute)
		v.TakeOffNight = IsNightAt(dept, departure, nightAngle)
		v.LandingNight = IsNightAt(dest, arrival, nightAngle)
	}

	return v
}

func (v NightTimeValues) IsAllDay() bool     { return !v.TakeOffNight && !v.LandingNight }
func (v NightTimeValues) IsAllNight() bool   { return v.TakeOffNight && v.LandingNight }
func (v NightTimeValues) IsDayToNight() bool { return !v.TakeOffNight && v.LandingNight }
func (v NightTimeValues) IsNightToDay() bool { return v.TakeOffNight && !v.LandingNight }
