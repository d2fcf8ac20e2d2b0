package shared

import "errors"

// ErrorKind classifies a domain error so the API layer can map it to the
// right response class without inspecting messages.
type ErrorKind string

const (
	// KindValidation marks malformed input rejected before any storage access.
	KindValidation ErrorKind = "VALIDATION"
	// KindBusinessRule marks a caller-correctable business rule violation.
	KindBusinessRule ErrorKind = "BUSINESS_RULE"
	// KindAuthorization marks a missing permission for a privileged operation.
	KindAuthorization ErrorKind = "AUTHORIZATION"
	// KindNotFound marks a missing resource.
	KindNotFound ErrorKind = "NOT_FOUND"
	// KindConflict marks a concurrent-modification conflict.
	KindConflict ErrorKind = "CONFLICT"
)

// DomainError represents a domain-level error with an explicit kind tag
// attached at the point of failure. Infrastructure failures (storage
// unreachable, lock timeout) are never DomainErrors; they propagate as
// plain wrapped errors.
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new business-rule domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Kind: KindBusinessRule, Code: code, Message: message}
}

// NewValidationError creates a domain error for malformed input
func NewValidationError(code, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Code: code, Message: message}
}

// NewAuthorizationError creates a domain error for a denied privileged action
func NewAuthorizationError(code, message string) *DomainError {
	return &DomainError{Kind: KindAuthorization, Code: code, Message: message}
}

// NewNotFoundError creates a domain error for a missing resource
func NewNotFoundError(code, message string) *DomainError {
	return &DomainError{Kind: KindNotFound, Code: code, Message: message}
}

// AsDomainError unwraps err to a DomainError if one is in its chain
func AsDomainError(err error) (*DomainError, bool) {
	var de *DomainError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// IsKind reports whether err is a DomainError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	de, ok := AsDomainError(err)
	return ok && de.Kind == kind
}

// IsBusinessError reports whether err is a business-rule violation
func IsBusinessError(err error) bool { return IsKind(err, KindBusinessRule) }

// IsValidationError reports whether err is a validation error
func IsValidationError(err error) bool { return IsKind(err, KindValidation) }

// IsAuthorizationError reports whether err is an authorization error
func IsAuthorizationError(err error) bool { return IsKind(err, KindAuthorization) }

// IsNotFoundError reports whether err is a not-found error
func IsNotFoundError(err error) bool { return IsKind(err, KindNotFound) }

// Common domain errors
var (
	ErrNotFound            = NewNotFoundError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewValidationError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = &DomainError{Kind: KindConflict, Code: "CONCURRENCY_CONFLICT", Message: "Resource was modified by another process"}
	ErrForbidden           = NewAuthorizationError("FORBIDDEN", "Access to this resource is forbidden")
	ErrInvalidState        = NewDomainError("INVALID_STATE", "Operation not allowed in current state")
)
