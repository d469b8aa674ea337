package api

import (
	"net/http"
	"time"

	"openpilotlog/logbook/internal/calc"
	"openpilotlog/logbook/internal/common"
	"openpilotlog/logbook/internal/constants"
)

// TotalsHandler handles GET /api/v1/statistics/totals
func (h *Handlers) TotalsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		totals, err := h.deps.Services.Statistics.Totals(r.Context())
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Totals fetched successfully", totals)
	}
}

// FTLHandler handles GET /api/v1/statistics/ftl[?time_frame=]
// Without a time frame all limited frames are reported.
func (h *Handlers) FTLHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		stats := h.deps.Services.Statistics

		raw := r.URL.Query().Get("time_frame")
		if raw == "" {
			statuses, err := stats.FTLStatuses(r.Context())
			if err != nil {
				handleServiceError(w, r, initTime, err)
				return
			}
			common.RespondSuccess(w, initTime, "FTL status fetched successfully", statuses)
			return
		}

		tf, err := calc.ParseTimeFrame(raw)
		if err != nil {
			respondErrorCode(w, initTime, constants.ErrCodeInvalidTimeFrame, raw)
			return
		}
		status, err := stats.FTLStatus(r.Context(), tf)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "FTL status fetched successfully", status)
	}
}

// TakeoffLandingHandler handles GET /api/v1/statistics/takeoff-landing
func (h *Handlers) TakeoffLandingHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		status, err := h.deps.Services.Statistics.TakeoffLandingStatus(r.Context())
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Take-off/landing currency fetched successfully", status)
	}
}
