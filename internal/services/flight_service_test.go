package services

import (
	"context"
	"testing"

	"openpilotlog/logbook/internal/calc"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/models/dtos"
	"openpilotlog/logbook/internal/models/gorm"
)

func TestFlightService_UpdateNightTime(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	flight := &gorm.Flight{
		Doft: "2023-12-21", Dept: "ENTC", Dest: "ENBO",
		OffBlocks: "22:00", OnBlocks: "23:00",
		TakeoffsDay: 1, LandingsDay: 1,
	}
	if err := env.flights.Create(ctx, flight); err != nil {
		t.Fatalf("Failed to create flight: %v", err)
	}

	resp, err := env.flightSvc.UpdateNightTime(ctx, flight.ID, calc.DefaultNightAngle)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.FlightID != flight.ID || resp.BlockMinutes != 60 || resp.NightMinutes != 60 {
		t.Errorf("Unexpected response %+v", resp)
	}
	if !resp.TakeOffNight || !resp.LandingNight {
		t.Errorf("Expected night take-off and landing, got %+v", resp)
	}

	stored, err := env.flights.FindByID(ctx, flight.ID)
	if err != nil || stored == nil {
		t.Fatalf("Failed to reload flight: %v", err)
	}
	if stored.NightMinutes != 60 || stored.TakeoffsNight != 1 || stored.LandingsNight != 1 || stored.TakeoffsDay != 0 {
		t.Errorf("Night data not written back: %+v", stored)
	}
}

func TestFlightService_UpdateNightTime_Crossing(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	flight := &gorm.Flight{
		Doft: "2023-06-21", Dept: "KJFK", Dest: "KJFK",
		OffBlocks: "08:00", OnBlocks: "10:00",
		TakeoffsDay: 1, LandingsDay: 1,
	}
	if err := env.flights.Create(ctx, flight); err != nil {
		t.Fatalf("Failed to create flight: %v", err)
	}

	resp, err := env.flightSvc.UpdateNightTime(ctx, flight.ID, calc.DefaultNightAngle)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.NightMinutes < 49 || resp.NightMinutes > 53 {
		t.Errorf("Expected about 51 night minutes, got %d", resp.NightMinutes)
	}
	if !resp.TakeOffNight || resp.LandingNight {
		t.Errorf("Expected night take-off and day landing, got %+v", resp)
	}
	if resp.TakeoffsNight != 1 || resp.LandingsDay != 1 {
		t.Errorf("Unexpected counters %+v", resp)
	}
}

func TestFlightService_UpdateNightTime_Errors(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	_, err := env.flightSvc.UpdateNightTime(ctx, "missing", calc.DefaultNightAngle)
	assertErrorCode(t, err, constants.ErrCodeFlightNotFound)

	incomplete := &gorm.Flight{Doft: "2023-12-21", Dept: "ENTC", Dest: "ENBO"}
	if err := env.flights.Create(ctx, incomplete); err != nil {
		t.Fatalf("Failed to create flight: %v", err)
	}
	_, err = env.flightSvc.UpdateNightTime(ctx, incomplete.ID, calc.DefaultNightAngle)
	assertErrorCode(t, err, constants.ErrCodeFlightIncomplete)

	unknown := &gorm.Flight{Doft: "2023-12-21", Dept: "ZZZZ", Dest: "ENBO", OffBlocks: "22:00", OnBlocks: "23:00"}
	if err := env.flights.Create(ctx, unknown); err != nil {
		t.Fatalf("Failed to create flight: %v", err)
	}
	_, err = env.flightSvc.UpdateNightTime(ctx, unknown.ID, calc.DefaultNightAngle)
	assertErrorCode(t, err, constants.ErrCodeAirportNotFound)
}

func TestFlightService_CreateFlight(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	resp, err := env.flightSvc.CreateFlight(ctx, dtos.CreateFlightReq{
		Doft:      "2023-12-21",
		Dept:      "entc",
		Dest:      " enbo",
		OffBlocks: "2200",
		OnBlocks:  "2300",
		Takeoffs:  1,
		Landings:  1,
	}, calc.DefaultNightAngle)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if resp.FlightID == "" {
		t.Fatal("Expected a flight ID")
	}
	if resp.BlockMinutes != 60 || resp.NightMinutes != 60 || resp.TakeoffsNight != 1 || resp.LandingsNight != 1 {
		t.Errorf("Unexpected response %+v", resp)
	}

	stored, err := env.flights.FindByID(ctx, resp.FlightID)
	if err != nil || stored == nil {
		t.Fatalf("Failed to reload flight: %v", err)
	}
	if stored.Dept != "ENTC" || stored.Dest != "ENBO" || stored.OffBlocks != "22:00" || stored.OnBlocks != "23:00" {
		t.Errorf("Unexpected stored flight %+v", stored)
	}
}

func TestFlightService_CreateFlight_Validation(t *testing.T) {
	env := setupTestEnv(t)
	ctx := context.Background()

	valid := dtos.CreateFlightReq{Doft: "2023-12-21", Dept: "ENTC", Dest: "ENBO", OffBlocks: "22:00", OnBlocks: "23:00"}

	tests := []struct {
		name   string
		mutate func(r *dtos.CreateFlightReq)
		code   string
	}{
		{"bad date", func(r *dtos.CreateFlightReq) { r.Doft = "21/12/2023" }, constants.ErrCodeInvalidDate},
		{"bad off blocks", func(r *dtos.CreateFlightReq) { r.OffBlocks = "25:00" }, constants.ErrCodeInvalidTime},
		{"bad on blocks", func(r *dtos.CreateFlightReq) { r.OnBlocks = "noon" }, constants.ErrCodeInvalidTime},
		{"negative landings", func(r *dtos.CreateFlightReq) { r.Landings = -1 }, constants.ErrCodeInvalidInput},
		{"unknown airport", func(r *dtos.CreateFlightReq) { r.Dest = "XXXX" }, constants.ErrCodeAirportNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			_, err := env.flightSvc.CreateFlight(ctx, req, calc.DefaultNightAngle)
			assertErrorCode(t, err, tt.code)
		})
	}

	ids, err := env.flights.ListIDs(ctx)
	if err != nil {
		t.Fatalf("Failed to list flights: %v", err)
	}
	if len(ids) != 0 {
		t.Errorf("Expected no stored flights, got %d", len(ids))
	}
}
