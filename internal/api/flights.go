package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"openpilotlog/logbook/internal/common"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/models/dtos"
	"openpilotlog/logbook/internal/workers"
)

// CreateFlightHandler handles POST /api/v1/flights
func (h *Handlers) CreateFlightHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.CreateFlightReq
		if err := common.DecodeJSON(r, &req); err != nil {
			respondErrorCode(w, initTime, constants.ErrCodeInvalidInput, err.Error())
			return
		}

		resp, err := h.deps.Services.Flights.CreateFlight(r.Context(), req, h.deps.Services.NightTime.DefaultNightAngle())
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgFlightCreated, resp, http.StatusCreated)
	}
}

// UpdateFlightNightTimeHandler handles POST /api/v1/flights/{id}/night-time
func (h *Handlers) UpdateFlightNightTimeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		angle, ok := h.requestNightAngle(w, r, initTime)
		if !ok {
			return
		}

		resp, err := h.deps.Services.Flights.UpdateNightTime(r.Context(), chi.URLParam(r, "id"), angle)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgNightTimeUpdated, resp)
	}
}

// EnqueueFlightNightTimeHandler handles POST /api/v1/flights/{id}/night-time/enqueue
func (h *Handlers) EnqueueFlightNightTimeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		angle, ok := h.requestNightAngle(w, r, initTime)
		if !ok {
			return
		}
		if h.deps.Queue == nil {
			respondErrorCode(w, initTime, constants.ErrCodeQueueFull, "background workers are not running")
			return
		}

		id := chi.URLParam(r, "id")
		err := h.deps.Queue.Enqueue(workers.NightTimeRequest{FlightID: id, NightAngle: angle})
		if errors.Is(err, workers.ErrQueueFull) {
			respondErrorCode(w, initTime, constants.ErrCodeQueueFull)
			return
		}

		common.RespondSuccess(w, initTime, constants.MsgNightTimeQueued, map[string]interface{}{
			"flight_id": id,
			"pending":   h.deps.Queue.Pending(),
		}, http.StatusAccepted)
	}
}

// RecalculateAllHandler handles POST /api/v1/flights/night-time/recalculate
func (h *Handlers) RecalculateAllHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		angle, ok := h.requestNightAngle(w, r, initTime)
		if !ok {
			return
		}

		resp, err := h.deps.Services.Recalculation.RecalculateAll(r.Context(), angle)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgNightRecalculated, resp)
	}
}

// requestNightAngle reads an optional {"night_angle": n} body, writing the
// error response itself when the body is unusable.
func (h *Handlers) requestNightAngle(w http.ResponseWriter, r *http.Request, initTime time.Time) (float64, bool) {
	var req dtos.RecalculateReq
	if err := decodeOptionalJSON(r, &req); err != nil {
		respondErrorCode(w, initTime, constants.ErrCodeInvalidInput, err.Error())
		return 0, false
	}
	angle, ok := h.nightAngle(req.NightAngle)
	if !ok {
		respondErrorCode(w, initTime, constants.ErrCodeInvalidInput, "night_angle must be between -18 and 0")
		return 0, false
	}
	return angle, true
}
