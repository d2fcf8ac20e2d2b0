package dto

import (
	"net/http"
	"testing"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestDomainErrorStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      *shared.DomainError
		expected int
	}{
		{
			name:     "validation errors map to 400",
			err:      shared.NewValidationError("INVALID_AMOUNT", "Amount must be positive"),
			expected: http.StatusBadRequest,
		},
		{
			name:     "business rule errors map to 422",
			err:      shared.NewDomainError("OVERPAYMENT", "Payment exceeds remaining balance"),
			expected: http.StatusUnprocessableEntity,
		},
		{
			name:     "authorization errors map to 403",
			err:      shared.NewAuthorizationError("PERMISSION_DENIED", "Deleting payments requires the payments:delete permission"),
			expected: http.StatusForbidden,
		},
		{
			name:     "not found errors map to 404",
			err:      shared.NewNotFoundError("NOT_FOUND", "Invoice not found"),
			expected: http.StatusNotFound,
		},
		{
			name:     "concurrency conflicts map to 409",
			err:      shared.ErrConcurrencyConflict,
			expected: http.StatusConflict,
		},
		{
			name:     "double-booking overrides its kind to 409",
			err:      shared.NewDomainError("DOUBLE_BOOKING", "Product is already booked for these dates"),
			expected: http.StatusConflict,
		},
		{
			name:     "duplicate invoice numbers override to 409",
			err:      shared.NewDomainError("ALREADY_EXISTS", "Invoice number is already in use"),
			expected: http.StatusConflict,
		},
		{
			name:     "unknown kinds fall back to 500",
			err:      &shared.DomainError{Kind: "UNMAPPED", Code: "X", Message: "x"},
			expected: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DomainErrorStatus(tt.err))
		})
	}
}
