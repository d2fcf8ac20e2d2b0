package rental

import (
	"context"
	"time"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AvailabilityService answers whether a product can be committed to a rental
// window without colliding with another active booking.
type AvailabilityService struct {
	invoices rental.InvoiceRepository
	logger   *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService
func NewAvailabilityService(invoices rental.InvoiceRepository, logger *zap.Logger) *AvailabilityService {
	return &AvailabilityService{invoices: invoices, logger: logger}
}

// CheckAvailabilityRequest represents a double-booking check
type CheckAvailabilityRequest struct {
	StoreID        uuid.UUID
	ProductID      uuid.UUID
	CollectionDate time.Time
	ReturnDate     time.Time
	// ExcludeInvoiceID removes the invoice being edited from its own
	// conflict check.
	ExcludeInvoiceID *uuid.UUID
}

// CheckAvailability returns whether the proposed window is free, listing
// every active booking it collides with. Canceled and soft-deleted invoices
// never count. Boundaries are inclusive: touching windows conflict.
func (s *AvailabilityService) CheckAvailability(ctx context.Context, req CheckAvailabilityRequest) (*rental.AvailabilityResult, error) {
	return s.CheckAvailabilityWith(ctx, s.invoices, req)
}

// CheckAvailabilityWith runs the same check against an explicit repository.
// Callers inside a transaction pass their transactional repository so the
// conflict read shares the transaction's snapshot.
func (s *AvailabilityService) CheckAvailabilityWith(ctx context.Context, invoices rental.InvoiceRepository, req CheckAvailabilityRequest) (*rental.AvailabilityResult, error) {
	if req.ProductID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	proposed, err := valueRange(req.CollectionDate, req.ReturnDate)
	if err != nil {
		return nil, err
	}

	windows, err := invoices.FindBookedWindows(ctx, req.StoreID, req.ProductID, req.ExcludeInvoiceID)
	if err != nil {
		s.logger.Error("booking lookup failed",
			zap.String("store_id", req.StoreID.String()),
			zap.String("product_id", req.ProductID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	conflicts := make([]rental.BookingWindow, 0)
	for _, w := range windows {
		if w.ConflictsWith(proposed) {
			conflicts = append(conflicts, w)
		}
	}

	return &rental.AvailabilityResult{
		Available: len(conflicts) == 0,
		Conflicts: conflicts,
	}, nil
}

// valueRange builds a DateRange, translating range errors into validation
// errors the API layer can surface as bad requests.
func valueRange(collection, returnDate time.Time) (valueobject.DateRange, error) {
	if collection.IsZero() || returnDate.IsZero() {
		return valueobject.DateRange{}, shared.NewValidationError("INVALID_DATES", "Collection and return dates are required")
	}
	r, err := valueobject.NewDateRange(collection, returnDate)
	if err != nil {
		return valueobject.DateRange{}, shared.NewValidationError("INVALID_DATES", err.Error())
	}
	return r, nil
}
