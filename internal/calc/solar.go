package calc

import (
	"math"
	"time"
)

const (
	// DefaultNightAngle is the end of evening civil twilight.
	DefaultNightAngle = -6.0

	// cruiseAltitudeKm is the assumed cruising height of the aircraft.
	cruiseAltitudeKm = 11.0
	kmPerAU          = 149598000.0
)

// j2000Day0 is 2000 January 0.0 UT, the epoch for the orbital elements below.
var j2000Day0 = time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC)

// SolarElevation returns the elevation of the sun in degrees above the horizon for
// the given instant and position in decimal degrees.
//
// It is a low precision ephemeris (about one degree) based on the mean orbital
// elements of the sun, good enough to tell day from night but nothing more.
// See http://stjarnhimlen.se/comp/tutorial.html#5.
func SolarElevation(instant time.Time, lat, lon float64) float64 {
	instant = instant.UTC()
	d := instant.Sub(j2000Day0).Hours() / 24

	// orbital elements in degrees: longitude of perihelion, eccentricity,
	// mean anomaly, obliquity of the ecliptic and mean longitude
	w := 282.9404 + 4.70935e-5*d
	e := 0.016709 - 1.151e-9*d
	m := normalizeDegrees(356.0470 + 0.9856002585*d)
	oblecl := 23.4393 - 3.563e-7*d
	l := normalizeDegrees(w + m)

	// eccentric anomaly
	ea := m + RadToDeg(e*sinDeg(m)*(1+e*cosDeg(m)))

	// rectangular coordinates in the plane of the ecliptic
	x := cosDeg(ea) - e
	y := sinDeg(ea) * math.Sqrt(1-e*e)

	r := math.Hypot(x, y)
	v := RadToDeg(math.Atan2(y, x))
	sunLon := v + w

	xEclip := r * cosDeg(sunLon)
	yEclip := r * sinDeg(sunLon)

	xEquat := xEclip
	yEquat := yEclip * cosDeg(oblecl)
	zEquat := yEclip * sinDeg(oblecl)

	r = math.Sqrt(xEquat*xEquat+yEquat*yEquat+zEquat*zEquat) - cruiseAltitudeKm/kmPerAU
	ra := RadToDeg(math.Atan2(yEquat, xEquat))
	decl := RadToDeg(math.Asin(zEquat / r))

	uth := float64(instant.Hour()) + float64(instant.Minute())/60 + float64(instant.Second())/3600
	gmst0 := normalizeDegrees(l+180) / 15
	sidereal := gmst0 + uth + lon/15
	hourAngle := sidereal*15 - ra

	x = cosDeg(hourAngle) * cosDeg(decl)
	z := sinDeg(decl)

	zHor := x*cosDeg(lat) + z*sinDeg(lat)
	return RadToDeg(math.Asin(clamp(zHor, -1, 1)))
}

// IsNightAt reports whether the sun is below nightAngle at the position and instant.
func IsNightAt(pos Coordinate, instant time.Time, nightAngle float64) bool {
	return SolarElevation(instant, pos.Lat, pos.Lon) < nightAngle
}

func sinDeg(deg float64) float64 { return math.Sin(DegToRad(deg)) }
func cosDeg(deg float64) float64 { return math.Cos(DegToRad(deg)) }

func normalizeDegrees(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
