package dto

import (
	"net/http"

	"github.com/atelier/backend/internal/domain/shared"
)

// Error code constants used by the API layer itself
const (
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeValidation is used for request validation failures
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
	// ErrCodeUnauthorized is used when authentication is required but missing
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the actor lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeConflict is used for resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
)

// KindHTTPStatus maps domain error kinds to HTTP status codes. Domain errors
// carry their kind from the point of failure, so the API layer never has to
// parse codes or messages.
var KindHTTPStatus = map[shared.ErrorKind]int{
	shared.KindValidation:    http.StatusBadRequest,
	shared.KindBusinessRule:  http.StatusUnprocessableEntity,
	shared.KindAuthorization: http.StatusForbidden,
	shared.KindNotFound:      http.StatusNotFound,
	shared.KindConflict:      http.StatusConflict,
}

// statusOverrides adjusts specific domain codes whose semantics carry a more
// precise HTTP status than their kind's default.
var statusOverrides = map[string]int{
	// A double-booking is a conflict with existing state, not a 422
	"DOUBLE_BOOKING": http.StatusConflict,
	// Duplicate invoice numbers collide with an existing resource
	"ALREADY_EXISTS": http.StatusConflict,
}

// DomainErrorStatus returns the HTTP status code for a domain error
func DomainErrorStatus(err *shared.DomainError) int {
	if status, ok := statusOverrides[err.Code]; ok {
		return status
	}
	if status, ok := KindHTTPStatus[err.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
