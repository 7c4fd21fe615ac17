package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/lib/pq"
)

// PostgreSQL error codes the API translates into client errors.
const (
	codeInvalidTextRepresentation = "22P02"
	codeStringDataRightTruncation = "22001"
	codeNumericValueOutOfRange    = "22003"
	codeForeignKeyViolation       = "23503"
	codeUniqueViolation           = "23505"
)

// Error is a rejection carrying the HTTP status and the message shown to the caller.
type Error struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

// BadRequest creates a 400 rejection
func BadRequest(format string, args ...any) *Error {
	return &Error{Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a 404 rejection
func NotFound(format string, args ...any) *Error {
	return &Error{Status: http.StatusNotFound, Message: fmt.Sprintf(format, args...)}
}

// Conflict creates a 409 rejection
func Conflict(format string, args ...any) *Error {
	return &Error{Status: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

// FromDB converts a database error caused by a known input into a rejection
// naming that input. Errors it does not recognise are returned unchanged.
func FromDB(err error, field string, value any) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch string(pqErr.Code) {
	case codeInvalidTextRepresentation, codeNumericValueOutOfRange:
		return BadRequest("Invalid %s %q", field, fmt.Sprint(value))
	case codeStringDataRightTruncation:
		return BadRequest("%s exceeds the maximum length", field)
	case codeForeignKeyViolation:
		return NotFound("Referenced %s %q not found", field, fmt.Sprint(value))
	case codeUniqueViolation:
		return Conflict("%s %q already exists", field, fmt.Sprint(value))
	}
	return err
}

// Translate maps any error reaching the HTTP boundary to a rejection.
// The second return value is false for unexpected errors, which callers log.
func Translate(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case codeInvalidTextRepresentation, codeNumericValueOutOfRange:
			return BadRequest("Invalid input syntax"), true
		case codeStringDataRightTruncation:
			return BadRequest("Text exceeds the maximum length"), true
		case codeForeignKeyViolation:
			return NotFound("Referenced resource not found"), true
		case codeUniqueViolation:
			return Conflict("Resource already exists"), true
		}
	}

	return &Error{Status: http.StatusInternalServerError, Message: "Internal server error"}, false
}
