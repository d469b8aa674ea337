package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormlib "gorm.io/gorm"

	"openpilotlog/logbook/internal/db/dbtest"
	"openpilotlog/logbook/internal/metrics"
	"openpilotlog/logbook/internal/models/gorm"
)

func TestAirportRepository(t *testing.T) {
	orm, _ := dbtest.NewTestDB(t)
	repo := NewAirportRepository(orm)
	ctx := context.Background()

	require.NoError(t, repo.BatchInsert(ctx, []gorm.Airport{
		{ICAO: "KJFK", IATA: "JFK", Name: "John F Kennedy International Airport", Latitude: 40.6413, Longitude: -73.7781, Timezone: "America/New_York"},
		{ICAO: "EGLL", IATA: "LHR", Name: "London Heathrow Airport", Latitude: 51.47, Longitude: -0.4543, Timezone: "Europe/London"},
	}))

	a, err := repo.FindByICAO(ctx, "kjfk")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "KJFK", a.ICAO)
	assert.NotEmpty(t, a.ID)
	assert.InDelta(t, 40.6413, a.Latitude, 1e-6)

	a, err = repo.FindByCode(ctx, "lhr")
	require.NoError(t, err)
	require.NotNil(t, a)
	assert.Equal(t, "EGLL", a.ICAO)

	a, err = repo.FindByCode(ctx, "ZZZZ")
	require.NoError(t, err)
	assert.Nil(t, a)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, repo.ReplaceAll(ctx, []gorm.Airport{
		{ICAO: "ENTC", IATA: "TOS", Name: "Tromso Airport", Latitude: 69.6833, Longitude: 18.9189},
	}))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	require.NoError(t, repo.DeleteAll(ctx))
	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestFlightRepository(t *testing.T) {
	orm, _ := dbtest.NewTestDB(t)
	repo := NewFlightRepository(orm)
	ctx := context.Background()

	flight := &gorm.Flight{
		Doft: "2023-12-21", Dept: "ENTC", Dest: "ENBO",
		OffBlocks: "23:30", OnBlocks: "00:25",
		TakeoffsDay: 1, LandingsDay: 1,
	}
	require.NoError(t, repo.Create(ctx, flight))
	assert.NotEmpty(t, flight.ID)
	assert.Equal(t, 55, flight.BlockMinutes)

	got, err := repo.FindByID(ctx, flight.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 55, got.BlockMinutes)

	dep, err := got.DepartureInstant()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 12, 21, 23, 30, 0, 0, time.UTC), dep)

	got.NightMinutes = 55
	got.TakeoffsDay, got.TakeoffsNight = 0, 1
	got.LandingsDay, got.LandingsNight = 0, 1
	require.NoError(t, repo.UpdateNightData(ctx, got))

	got, err = repo.FindByID(ctx, flight.ID)
	require.NoError(t, err)
	assert.Equal(t, 55, got.NightMinutes)
	assert.Equal(t, 1, got.TakeoffsNight)
	assert.Equal(t, 1, got.LandingsNight)
	assert.Zero(t, got.TakeoffsDay)

	missing, err := repo.FindByID(ctx, "does-not-exist")
	require.NoError(t, err)
	assert.Nil(t, missing)

	err = repo.UpdateNightData(ctx, &gorm.Flight{ID: "does-not-exist"})
	assert.ErrorIs(t, err, gormlib.ErrRecordNotFound)

	require.NoError(t, repo.Create(ctx, &gorm.Flight{Doft: "2023-01-05", Dept: "EGLL", Dest: "KJFK", OffBlocks: "10:00", OnBlocks: "18:00"}))
	ids, err := repo.ListIDs(ctx)
	require.NoError(t, err)
	require.Len(t, ids, 2)
	assert.Equal(t, flight.ID, ids[1])
}

func TestCurrencyRepository(t *testing.T) {
	orm, _ := dbtest.NewTestDB(t)
	repo := NewCurrencyRepository(orm)
	ctx := context.Background()

	require.NoError(t, repo.EnsureDefaults(ctx, []string{"Medical", "Licence"}))
	require.NoError(t, repo.EnsureDefaults(ctx, []string{"Medical"}))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Licence", list[0].Name)

	medical, err := repo.FindByName(ctx, "Medical")
	require.NoError(t, err)
	require.NotNil(t, medical)
	assert.Empty(t, medical.ExpiryDate)

	require.NoError(t, repo.UpdateExpiry(ctx, medical.ID, "2025-01-31"))
	medical, err = repo.FindByID(ctx, medical.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-01-31", medical.ExpiryDate)

	assert.ErrorIs(t, repo.UpdateExpiry(ctx, "nope", "2025-01-31"), gormlib.ErrRecordNotFound)

	require.NoError(t, repo.UpsertByName(ctx, "Take-off/Landing", "2024-03-01"))
	require.NoError(t, repo.UpsertByName(ctx, "Take-off/Landing", "2024-04-01"))
	tol, err := repo.FindByName(ctx, "Take-off/Landing")
	require.NoError(t, err)
	require.NotNil(t, tol)
	assert.Equal(t, "2024-04-01", tol.ExpiryDate)

	list, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 3)
}

func TestStatisticsRepository(t *testing.T) {
	orm, sqlxDB := dbtest.NewTestDB(t)
	flights := NewFlightRepository(orm)
	repo := NewStatisticsRepository(sqlxDB, metrics.NewMetricsRegistry(prometheus.NewRegistry()))
	ctx := context.Background()

	for _, f := range []gorm.Flight{
		{Doft: "2024-03-01", Dept: "EGLL", Dest: "EGCC", OffBlocks: "08:00", OnBlocks: "09:00", TakeoffsDay: 1, LandingsDay: 1},
		{Doft: "2024-03-10", Dept: "EGCC", Dest: "EGLL", OffBlocks: "20:00", OnBlocks: "21:30", TakeoffsNight: 1, LandingsNight: 1, NightMinutes: 90},
		{Doft: "2024-03-15", Dept: "EGLL", Dest: "EDDF", OffBlocks: "12:00", OnBlocks: "12:45", TakeoffsDay: 2, LandingsDay: 2},
		{Doft: "2024-02-04", Dept: "EDDF", Dest: "EGLL", OffBlocks: "06:00", OnBlocks: "14:20", TakeoffsDay: 1, LandingsDay: 1},
	} {
		f := f
		require.NoError(t, flights.Create(ctx, &f))
	}

	day := func(m time.Month, d int) time.Time { return time.Date(2024, m, d, 0, 0, 0, 0, time.UTC) }

	sum, err := repo.SumBlockMinutes(ctx, day(2, 16), day(3, 15))
	require.NoError(t, err)
	assert.Equal(t, 195, sum)

	sum, err = repo.SumBlockMinutes(ctx, time.Time{}, day(12, 31))
	require.NoError(t, err)
	assert.Equal(t, 695, sum)

	sum, err = repo.SumBlockMinutes(ctx, day(5, 1), day(5, 31))
	require.NoError(t, err)
	assert.Zero(t, sum)

	takeoffs, landings, err := repo.CountTakeoffsLandings(ctx, day(3, 10), day(3, 15))
	require.NoError(t, err)
	assert.Equal(t, 3, takeoffs)
	assert.Equal(t, 3, landings)

	totals, err := repo.Totals(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, totals.Flights)
	assert.Equal(t, 695, totals.BlockMinutes)
	assert.Equal(t, 90, totals.NightMinutes)
	assert.Equal(t, 4, totals.TakeoffsDay)
	assert.Equal(t, 1, totals.LandingsNight)

	assert.NoError(t, repo.Ping(ctx))
}
