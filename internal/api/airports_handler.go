package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"openpilotlog/logbook/internal/auth"
	"openpilotlog/logbook/internal/calc"
	"openpilotlog/logbook/internal/common"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/logging"
	"openpilotlog/logbook/internal/models/dtos"
)

// GetAirportHandler handles GET /api/v1/airports/{code}
func (h *Handlers) GetAirportHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		airport, err := h.deps.Services.Airports.Get(r.Context(), chi.URLParam(r, "code"))
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Airport fetched successfully", airport)
	}
}

// AirportDaylightHandler handles GET /api/v1/airports/{code}/daylight?date=
// The date defaults to today (UTC).
func (h *Handlers) AirportDaylightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		date := calc.StartOfDay(time.Now())
		if raw := r.URL.Query().Get("date"); raw != "" {
			d, err := calc.ParseDate(raw)
			if err != nil {
				respondErrorCode(w, initTime, constants.ErrCodeInvalidDate)
				return
			}
			date = d
		}

		daylight, err := h.deps.Services.Airports.Daylight(r.Context(), chi.URLParam(r, "code"), date)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Daylight times calculated", daylight)
	}
}

// SyncAirportsHandler handles POST /api/v1/admin/airports/sync
// A JSON request body is imported as is; without a body the dataset is
// downloaded from ?url= or the default dataset URL.
func (h *Handlers) SyncAirportsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		ctx := r.Context()
		loader := h.deps.Services.AirportLoader

		var (
			count int
			err   error
		)
		if r.ContentLength > 0 {
			count, err = loader.LoadFromJSON(ctx, r.Body)
		} else {
			url := r.URL.Query().Get("url")
			if url == "" {
				url = common.DefaultAirportsURL
			}
			count, err = loader.LoadFromURL(ctx, url)
		}
		if err != nil {
			logging.Error("Airport import failed",
				"request_id", auth.GetRequestID(ctx),
				"error", err,
			)
			respondErrorCode(w, initTime, constants.ErrCodeImportFailed, err.Error())
			return
		}

		if err := h.deps.Services.Airports.Invalidate(ctx); err != nil {
			logging.Warn("Airport cache invalidation failed", "error", err)
		}

		total, err := loader.Count(ctx)
		if err != nil {
			respondErrorCode(w, initTime, constants.ErrCodeDatabaseError)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgAirportsSynced, dtos.AirportImportResponse{
			Imported: count,
			Total:    total,
		})
	}
}
