package calc

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	kjfk = Coordinate{Lat: 40.6413, Lon: -73.7781}
	egll = Coordinate{Lat: 51.4700, Lon: -0.4543}
	entc = Coordinate{Lat: 69.6833, Lon: 18.9189}
	enbo = Coordinate{Lat: 67.2692, Lon: 14.3653}
)

func TestGreatCircleDistance(t *testing.T) {
	assert.InDelta(t, math.Pi/2, GreatCircleDistance(0, 0, 0, 90), 1e-12)
	assert.InDelta(t, math.Pi, GreatCircleDistance(0, 0, 0, 180), 1e-12)
	assert.InDelta(t, math.Pi, GreatCircleDistance(90, 0, -90, 0), 1e-12)
	assert.Equal(t, 0.0, GreatCircleDistance(kjfk.Lat, kjfk.Lon, kjfk.Lat, kjfk.Lon))
}

func TestDistanceNM(t *testing.T) {
	assert.InDelta(t, 2991.4, DistanceNM(kjfk, egll), 0.5)
	assert.InDelta(t, 176.2, DistanceNM(entc, enbo), 0.5)
	assert.InDelta(t, DistanceNM(kjfk, egll), DistanceNM(egll, kjfk), 1e-9)
}

func TestIntermediatePointsOnGreatCircle_Equator(t *testing.T) {
	var points []Coordinate
	for i, p := range IntermediatePointsOnGreatCircle(0, 0, 0, 90, 90) {
		require.Equal(t, len(points), i)
		points = append(points, p)
	}

	require.Len(t, points, 90)
	for i, p := range points {
		assert.InDelta(t, 0, p.Lat, 1e-9)
		assert.InDelta(t, float64(i), p.Lon, 1e-9)
	}
}

func TestTrack_EndpointsAndOrder(t *testing.T) {
	const block = 420

	var points []Coordinate
	for _, p := range Track(kjfk, egll, block) {
		points = append(points, p)
	}
	require.Len(t, points, block)

	assert.InDelta(t, kjfk.Lat, points[0].Lat, 1e-9)
	assert.InDelta(t, kjfk.Lon, points[0].Lon, 1e-9)

	// the last sample is one minute short of the destination
	step := DistanceNM(kjfk, egll) / block
	assert.InDelta(t, step, DistanceNM(points[block-1], egll), 0.01)

	prev := DistanceNM(points[0], egll)
	for _, p := range points[1:] {
		d := DistanceNM(p, egll)
		assert.Less(t, d, prev)
		prev = d
	}
}

func TestTrack_Restartable(t *testing.T) {
	seq := Track(entc, enbo, 30)

	var first, second []Coordinate
	for _, p := range seq {
		first = append(first, p)
	}
	for _, p := range seq {
		second = append(second, p)
	}
	assert.Equal(t, first, second)
}

func TestTrack_EarlyBreak(t *testing.T) {
	n := 0
	for i := range Track(kjfk, egll, 100) {
		if i == 9 {
			break
		}
		n++
	}
	assert.Equal(t, 9, n)
}

func TestTrack_ZeroLengthArc(t *testing.T) {
	n := 0
	for _, p := range Track(kjfk, kjfk, 60) {
		assert.Equal(t, kjfk, p)
		n++
	}
	assert.Equal(t, 60, n)
}

func TestTrack_NoBlockTime(t *testing.T) {
	for range Track(kjfk, egll, 0) {
		t.Fatal("expected no samples")
	}
	for range Track(kjfk, egll, -5) {
		t.Fatal("expected no samples")
	}
}
