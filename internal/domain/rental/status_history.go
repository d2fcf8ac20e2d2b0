package rental

import (
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// StatusHistoryEntry is one row of the append-only transition audit trail.
// Exactly one entry is written per successful transition, in the same
// transaction as the status change itself.
type StatusHistoryEntry struct {
	shared.BaseEntity
	StoreID    uuid.UUID
	InvoiceID  uuid.UUID
	FromStatus InvoiceStatus
	ToStatus   InvoiceStatus
	ChangedBy  uuid.UUID
	Notes      string
}

// NewStatusHistoryEntry creates an audit trail entry for a transition
func NewStatusHistoryEntry(
	storeID uuid.UUID,
	invoiceID uuid.UUID,
	from, to InvoiceStatus,
	changedBy uuid.UUID,
	notes string,
) (*StatusHistoryEntry, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if !from.IsValid() || !to.IsValid() {
		return nil, shared.NewValidationError("INVALID_STATUS", "History statuses must be valid")
	}
	if changedBy == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_ACTOR", "Actor ID cannot be empty")
	}

	return &StatusHistoryEntry{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		InvoiceID:  invoiceID,
		FromStatus: from,
		ToStatus:   to,
		ChangedBy:  changedBy,
		Notes:      notes,
	}, nil
}
