package api

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"openpilotlog/logbook/internal/auth"
	"openpilotlog/logbook/internal/common"
	"openpilotlog/logbook/internal/constants"
	"openpilotlog/logbook/internal/logging"
	"openpilotlog/logbook/internal/services"
)

type Handlers struct {
	deps *Dependencies
}

// NewHandlers creates a new handlers instance with injected dependencies
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		deps: deps,
	}
}

// nightAngle returns the requested angle or the configured default.
func (h *Handlers) nightAngle(requested *float64) (float64, bool) {
	if requested == nil {
		return h.deps.Services.NightTime.DefaultNightAngle(), true
	}
	if *requested < -18 || *requested > 0 {
		return 0, false
	}
	return *requested, true
}

// decodeOptionalJSON decodes r's body into v, accepting an empty body.
func decodeOptionalJSON(r *http.Request, v any) error {
	if r.Body == nil || r.ContentLength == 0 {
		return nil
	}
	if err := common.DecodeJSON(r, v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// handleServiceError maps service errors to appropriate HTTP responses
func handleServiceError(w http.ResponseWriter, r *http.Request, initTime time.Time, err error) {
	var le *services.LogbookError
	if !errors.As(err, &le) {
		logging.Error("Unhandled error",
			"request_id", auth.GetRequestID(r.Context()),
			"path", r.URL.Path,
			"error", err,
		)
		common.RespondError(w, initTime, nil, "An unexpected error occurred", http.StatusInternalServerError)
		return
	}

	statusCode := mapErrorCodeToHTTPStatus(le.Code)
	if statusCode >= http.StatusInternalServerError {
		logging.Error("Request failed",
			"request_id", auth.GetRequestID(r.Context()),
			"path", r.URL.Path,
			"code", le.Code,
			"error", err,
		)
	}

	message := le.Message
	if message == "" {
		message = constants.GetErrorMessage(le.Code)
	}
	common.RespondError(w, initTime, nil, message, statusCode)
}

// mapErrorCodeToHTTPStatus maps error codes to HTTP status codes
func mapErrorCodeToHTTPStatus(errorCode string) int {
	switch errorCode {
	// 400 Bad Request - malformed input
	case constants.ErrCodeInvalidInput,
		constants.ErrCodeInvalidTime,
		constants.ErrCodeInvalidDate,
		constants.ErrCodeInvalidTimeFrame:
		return http.StatusBadRequest

	// 401 Unauthorized
	case constants.ErrCodeUnauthorized:
		return http.StatusUnauthorized

	// 404 Not Found - Resource doesn't exist
	case constants.ErrCodeAirportNotFound,
		constants.ErrCodeFlightNotFound,
		constants.ErrCodeCurrencyNotFound:
		return http.StatusNotFound

	// 422 - stored data cannot be processed
	case constants.ErrCodeFlightIncomplete:
		return http.StatusUnprocessableEntity

	// 502 - upstream dataset download
	case constants.ErrCodeImportFailed:
		return http.StatusBadGateway

	// 503 - try again later
	case constants.ErrCodeQueueFull:
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

func respondErrorCode(w http.ResponseWriter, initTime time.Time, code string, detail ...string) {
	message := constants.GetErrorMessage(code)
	if len(detail) > 0 && detail[0] != "" {
		message += ": " + strings.Join(detail, " ")
	}
	common.RespondError(w, initTime, nil, message, mapErrorCodeToHTTPStatus(code))
}
