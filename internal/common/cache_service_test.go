package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedAirport struct {
	ICAO string  `json:"icao"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

func newTestRedisCache(t *testing.T) (*RedisCacheService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	cache := NewRedisCacheServiceWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestCacheService_GetOrSet(t *testing.T) {
	cache := NewCacheService(time.Minute)

	calls := 0
	loader := func() (any, error) {
		calls++
		return cachedAirport{ICAO: "EGLL"}, nil
	}

	for i := 0; i < 3; i++ {
		val, err := cache.GetOrSet("AIRPORT_EGLL", time.Minute, loader)
		require.NoError(t, err)
		assert.Equal(t, cachedAirport{ICAO: "EGLL"}, val)
	}
	assert.Equal(t, 1, calls)

	_, err := cache.GetOrSet("AIRPORT_ZZZZ", time.Minute, func() (any, error) { return nil, errors.New("boom") })
	assert.Error(t, err)
	_, found := cache.Get("AIRPORT_ZZZZ")
	assert.False(t, found)

	cache.Delete("AIRPORT_EGLL")
	_, found = cache.Get("AIRPORT_EGLL")
	assert.False(t, found)

	cache.Set("AIRPORT_KJFK", 1, time.Minute)
	cache.Set("DAYLIGHT_KJFK_2023-06-21", 2, time.Minute)
	require.NoError(t, cache.DeletePrefix(context.Background(), "AIRPORT_"))
	_, found = cache.Get("AIRPORT_KJFK")
	assert.False(t, found)
	_, found = cache.Get("DAYLIGHT_KJFK_2023-06-21")
	assert.True(t, found)
}

func TestRedisCacheService_RoundTrip(t *testing.T) {
	cache, mr := newTestRedisCache(t)

	cache.Set("AIRPORT_KJFK", cachedAirport{ICAO: "KJFK", Lat: 40.6413, Lon: -73.7781}, time.Minute)

	val, found := cache.Get("AIRPORT_KJFK")
	require.True(t, found)

	// Redis returns generic JSON, DecodeCached restores the struct
	_, isStruct := val.(cachedAirport)
	assert.False(t, isStruct)
	airport, ok := DecodeCached[cachedAirport](val)
	require.True(t, ok)
	assert.Equal(t, "KJFK", airport.ICAO)
	assert.InDelta(t, -73.7781, airport.Lon, 1e-9)

	mr.FastForward(2 * time.Minute)
	_, found = cache.Get("AIRPORT_KJFK")
	assert.False(t, found)
}

func TestRedisCacheService_GetOrSetAndDelete(t *testing.T) {
	cache, _ := newTestRedisCache(t)

	calls := 0
	loader := func() (any, error) {
		calls++
		return cachedAirport{ICAO: "ENTC"}, nil
	}
	for i := 0; i < 2; i++ {
		_, err := cache.GetOrSet("AIRPORT_ENTC", time.Minute, loader)
		require.NoError(t, err)
	}
	assert.Equal(t, 1, calls)

	cache.Set("DAYLIGHT_ENTC_2023-12-21", "x", time.Minute)
	require.NoError(t, cache.DeletePrefix(t.Context(), "AIRPORT_"))
	_, found := cache.Get("AIRPORT_ENTC")
	assert.False(t, found)
	_, found = cache.Get("DAYLIGHT_ENTC_2023-12-21")
	assert.True(t, found)

	cache.Delete("DAYLIGHT_ENTC_2023-12-21")
	_, found = cache.Get("DAYLIGHT_ENTC_2023-12-21")
	assert.False(t, found)

	assert.NoError(t, cache.Ping(t.Context()))
}

func TestNewRedisCacheService_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = NewRedisCacheService(addr, "")
	assert.Error(t, err)
}

func TestDecodeCached(t *testing.T) {
	v, ok := DecodeCached[cachedAirport](cachedAirport{ICAO: "EGLL"})
	assert.True(t, ok)
	assert.Equal(t, "EGLL", v.ICAO)

	v, ok = DecodeCached[cachedAirport](&cachedAirport{ICAO: "EDDF"})
	assert.True(t, ok)
	assert.Equal(t, "EDDF", v.ICAO)

	v, ok = DecodeCached[cachedAirport](map[string]interface{}{"icao": "LFPG", "lat": 49.0})
	assert.True(t, ok)
	assert.Equal(t, "LFPG", v.ICAO)
	assert.Equal(t, 49.0, v.Lat)

	_, ok = DecodeCached[cachedAirport]("not an airport")
	assert.False(t, ok)
}
