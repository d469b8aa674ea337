package constants

// Lookup errors
const (
	ErrCodeAirportNotFound  = "AIRPORT_NOT_FOUND"
	ErrCodeFlightNotFound   = "FLIGHT_NOT_FOUND"
	ErrCodeCurrencyNotFound = "CURRENCY_NOT_FOUND"
)

// Input errors
const (
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeInvalidTime      = "INVALID_TIME"
	ErrCodeInvalidDate      = "INVALID_DATE"
	ErrCodeInvalidTimeFrame = "INVALID_TIME_FRAME"
	ErrCodeFlightIncomplete = "FLIGHT_INCOMPLETE"
)

// Infrastructure errors
const (
	ErrCodeDatabaseError = "DATABASE_ERROR"
	ErrCodeQueueFull     = "QUEUE_FULL"
	ErrCodeImportFailed  = "IMPORT_FAILED"
	ErrCodeUnauthorized  = "UNAUTHORIZED"
)

// ErrorMessages maps error codes to human-readable messages
var ErrorMessages = map[string]string{
	ErrCodeAirportNotFound:  "The airport code is not in the airport database",
	ErrCodeFlightNotFound:   "No flight exists with this ID",
	ErrCodeCurrencyNotFound: "No currency exists with this ID",

	ErrCodeInvalidInput:     "The request is malformed",
	ErrCodeInvalidTime:      "The time value could not be parsed",
	ErrCodeInvalidDate:      "The date must be formatted as YYYY-MM-DD",
	ErrCodeInvalidTimeFrame: "Unknown time frame",
	ErrCodeFlightIncomplete: "The flight is missing airports, date or block times",

	ErrCodeDatabaseError: "A database error occurred",
	ErrCodeQueueFull:     "The recalculation queue is full. Please try again later",
	ErrCodeImportFailed:  "The airport dataset could not be imported",
	ErrCodeUnauthorized:  "Missing or invalid bearer token",
}

// GetErrorMessage returns the human-readable message for an error code
func GetErrorMessage(code string) string {
	if msg, exists := ErrorMessages[code]; exists {
		return msg
	}
	return "An unknown error occurred"
}
