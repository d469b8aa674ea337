package services

import (
	"errors"
	"fmt"

	"openpilotlog/logbook/internal/constants"
)

// LogbookError carries an error code that the API layer maps to an HTTP status.
type LogbookError struct {
	Code    string
	Message string
	Err     error
}

func (e *LogbookError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *LogbookError) Unwrap() error {
	return e.Err
}

func newError(code string, err error) *LogbookError {
	return &LogbookError{
		Code:    code,
		Message: constants.GetErrorMessage(code),
		Err:     err,
	}
}

func newErrorf(code, format string, args ...any) *LogbookError {
	return &LogbookError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode returns the code of the first LogbookError in err's chain, or "".
func ErrorCode(err error) string {
	var le *LogbookError
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}
