package calc

import (
	"iter"
	"math"
)

// EarthRadiusNM is the mean earth radius in nautical miles.
const EarthRadiusNM = 3440.06479482

// Coordinate is a position in decimal degrees. Latitude is positive north,
// longitude positive east.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func RadToDeg(rad float64) float64 {
	return rad * (180 / math.Pi)
}

func DegToRad(deg float64) float64 {
	return deg * (math.Pi / 180)
}

func RadToNauticalMiles(rad float64) float64 {
	return rad * EarthRadiusNM
}

// GreatCircleDistance returns the angular distance in radians between two
// positions given in decimal degrees (haversine formula).
func GreatCircleDistance(lat1, lon1, lat2, lon2 float64) float64 {
	lat1, lon1 = DegToRad(lat1), DegToRad(lon1)
	lat2, lon2 = DegToRad(lat2), DegToRad(lon2)

	deltaLat := lat2 - lat1
	deltaLon := lon2 - lon1

	h := math.Pow(math.Sin(deltaLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(deltaLon/2), 2)

	// rounding can push h marginally past 1 for antipodal points
	return 2 * math.Asin(math.Sqrt(math.Min(h, 1)))
}

// DistanceNM is GreatCircleDistance between two coordinates in nautical miles.
func DistanceNM(from, to Coordinate) float64 {
	return RadToNauticalMiles(GreatCircleDistance(from.Lat, from.Lon, to.Lat, to.Lon))
}

// IntermediatePointsOnGreatCircle yields one position per minute of block time along
// the great circle from the first to the second position.
//
// The sequence has exactly blockMinutes elements. Element i lies at fraction
// i/blockMinutes of the arc, so the first element is the departure point and the
// destination itself is never yielded. The sequence is lazy and can be ranged over
// any number of times.
func IntermediatePointsOnGreatCircle(lat1, lon1, lat2, lon2 float64, blockMinutes int) iter.Seq2[int, Coordinate] {
	return func(yield func(int, Coordinate) bool) {
		if blockMinutes <= 0 {
			return
		}

		d := GreatCircleDistance(lat1, lon1, lat2, lon2)
		if d == 0 || math.Sin(d) == 0 {
			start := Coordinate{Lat: lat1, Lon: lon1}
			for i := 0; i < blockMinutes; i++ {
				if !yield(i, start) {
					return
				}
			}
			return
		}

		phi1, lambda1 := DegToRad(lat1), DegToRad(lon1)
		phi2, lambda2 := DegToRad(lat2), DegToRad(lon2)
		sinD := math.Sin(d)

		for i := 0; i < blockMinutes; i++ {
			f := float64(i) / float64(blockMinutes)
			a := math.Sin((1-f)*d) / sinD
			b := math.Sin(f*d) / sinD

			x := a*math.Cos(phi1)*math.Cos(lambda1) + b*math.Cos(phi2)*math.Cos(lambda2)
			y := a*math.Cos(phi1)*math.Sin(lambda1) + b*math.Cos(phi2)*math.Sin(lambda2)
			z := a*math.Sin(phi1) + b*math.Sin(phi2)

			point := Coordinate{
				Lat: RadToDeg(math.Atan2(z, math.Sqrt(x*x+y*y))),
				Lon: RadToDeg(math.Atan2(y, x)),
			}
			if !yield(i, point) {
				return
			}
		}
	}
}

// Track is IntermediatePointsOnGreatCircle between two coordinates.
func Track(from, to Coordinate, blockMinutes int) iter.Seq2[int, Coordinate] {
	return IntermediatePointsOnGreatCircle(from.Lat, from.Lon, to.Lat, to.Lon, blockMinutes)
}
