package api

import (
	"net/http"
	"time"

	"openpilotlog/logbook/internal/calc"
	"openpilotlog/logbook/internal/common"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/models/dtos"
)

// BlockTimeHandler handles GET /api/v1/block-time?off=&on=&format=&layout=
func (h *Handlers) BlockTimeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		format := calc.TimeFormat{Kind: calc.ParseTimeFormatKind(q.Get("format")), Layout: q.Get("layout")}
		if format.Kind == calc.TimeFormatCustom && format.Layout == "" {
			respondErrorCode(w, initTime, constants.ErrCodeInvalidInput, "layout is required for the custom format")
			return
		}

		off := calc.ParseClockMinutes(calc.FixupTimeInput(q.Get("off"), format), format)
		on := calc.ParseClockMinutes(calc.FixupTimeInput(q.Get("on"), format), format)
		if !off.IsValidTimeOfDay() || !on.IsValidTimeOfDay() {
			respondErrorCode(w, initTime, constants.ErrCodeInvalidTime)
			return
		}

		block := calc.BlockTime(off, on)
		common.RespondSuccess(w, initTime, "Block time calculated", dtos.BlockTimeResponse{
			OffBlocks:    off.Format(format),
			OnBlocks:     on.Format(format),
			BlockMinutes: block.Minutes(),
			BlockTime:    block.Format(format),
		})
	}
}

// NightTimeHandler handles POST /api/v1/night-time
func (h *Handlers) NightTimeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.NightTimeReq
		if err := common.DecodeJSON(r, &req); err != nil {
			respondErrorCode(w, initTime, constants.ErrCodeInvalidInput, err.Error())
			return
		}
		if _, ok := h.nightAngle(req.NightAngle); !ok {
			respondErrorCode(w, initTime, constants.ErrCodeInvalidInput, "night_angle must be between -18 and 0")
			return
		}

		resp, err := h.deps.Services.NightTime.Classify(r.Context(), req)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Night time calculated", resp)
	}
}

// DistanceHandler handles GET /api/v1/distance?dept=&dest=
func (h *Handlers) DistanceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()
		q := r.URL.Query()

		resp, err := h.deps.Services.Airports.Distance(r.Context(), q.Get("dept"), q.Get("dest"))
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Distance calculated", resp)
	}
}
