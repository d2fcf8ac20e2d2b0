package rental

import (
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
)

// BookingWindow is the read model of a product commitment: the slice of an
// invoice that matters for double-booking checks.
type BookingWindow struct {
	InvoiceID     uuid.UUID             `json:"invoice_id"`
	InvoiceNumber string                `json:"invoice_number"`
	ProductID     uuid.UUID             `json:"product_id"`
	CustomerName  string                `json:"customer_name"`
	Window        valueobject.DateRange `json:"window"`
	Status        InvoiceStatus         `json:"status"`
}

// ConflictsWith reports whether this booking collides with the proposed
// window. Boundaries are inclusive: a window touching another window's
// boundary date is a conflict, since collection and return cannot share a
// day across bookings.
func (b BookingWindow) ConflictsWith(proposed valueobject.DateRange) bool {
	return b.Window.Overlaps(proposed)
}

// AvailabilityResult is the outcome of a double-booking check
type AvailabilityResult struct {
	Available bool            `json:"available"`
	Conflicts []BookingWindow `json:"conflicts"`
}
