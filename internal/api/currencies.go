package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"openpilotlog/logbook/internal/common"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/models/dtos"
)

// ListCurrenciesHandler handles GET /api/v1/currencies
func (h *Handlers) ListCurrenciesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		list, err := h.deps.Services.Currencies.List(r.Context())
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, "Currencies fetched successfully", list)
	}
}

// UpdateCurrencyHandler handles PUT /api/v1/currencies/{id}
func (h *Handlers) UpdateCurrencyHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.UpdateCurrencyReq
		if err := common.DecodeJSON(r, &req); err != nil {
			respondErrorCode(w, initTime, constants.ErrCodeInvalidInput, err.Error())
			return
		}

		currency, err := h.deps.Services.Currencies.UpdateExpiry(r.Context(), chi.URLParam(r, "id"), req.ExpiryDate)
		if err != nil {
			handleServiceError(w, r, initTime, err)
			return
		}
		common.RespondSuccess(w, initTime, constants.MsgCurrencyUpdated, currency)
	}
}
