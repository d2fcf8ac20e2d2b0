package rental

import (
	"context"
	"fmt"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LifecycleService drives invoice status transitions. Every successful
// transition updates the invoice, stamps the relevant timestamp and appends
// a history entry inside one transaction; a failure partway rolls the whole
// change back.
type LifecycleService struct {
	invoices     rental.InvoiceRepository
	history      rental.StatusHistoryRepository
	tx           rental.TransactionManager
	permissions  rental.PermissionChecker
	availability *AvailabilityService
	logger       *zap.Logger
}

// NewLifecycleService creates a new LifecycleService
func NewLifecycleService(
	invoices rental.InvoiceRepository,
	history rental.StatusHistoryRepository,
	tx rental.TransactionManager,
	permissions rental.PermissionChecker,
	availability *AvailabilityService,
	logger *zap.Logger,
) *LifecycleService {
	return &LifecycleService{
		invoices:     invoices,
		history:      history,
		tx:           tx,
		permissions:  permissions,
		availability: availability,
		logger:       logger,
	}
}

// TransitionResult reports the outcome of a successful transition
type TransitionResult struct {
	InvoiceID      uuid.UUID            `json:"invoice_id"`
	NewStatus      rental.InvoiceStatus `json:"new_status"`
	HistoryEntryID uuid.UUID            `json:"history_entry_id"`
}

// ChangeStatusRequest is the general-purpose transition request
type ChangeStatusRequest struct {
	StoreID      uuid.UUID
	InvoiceID    uuid.UUID
	TargetStatus rental.InvoiceStatus
	ActorID      uuid.UUID
	Notes        string
	// ReturnCondition is required when transitioning to returned
	ReturnCondition rental.ReturnCondition
	// Reason is required when transitioning to canceled
	Reason string
}

// ChangeStatus is the general-purpose entry point. It dispatches to the
// named transitions so every guard applies regardless of how the caller
// phrased the request.
func (s *LifecycleService) ChangeStatus(ctx context.Context, req ChangeStatusRequest) (*TransitionResult, error) {
	if !req.TargetStatus.IsValid() {
		return nil, shared.NewValidationError("INVALID_STATUS", "Target status is not valid")
	}
	switch req.TargetStatus {
	case rental.InvoiceStatusDelivered:
		return s.DeliverInvoice(ctx, req.StoreID, req.InvoiceID, req.ActorID, req.Notes)
	case rental.InvoiceStatusReturned:
		return s.ReturnInvoice(ctx, req.StoreID, req.InvoiceID, req.ActorID, req.ReturnCondition, req.Notes)
	case rental.InvoiceStatusClosed:
		return s.CloseInvoice(ctx, req.StoreID, req.InvoiceID, req.ActorID, req.Notes)
	case rental.InvoiceStatusCanceled:
		return s.CancelInvoice(ctx, req.StoreID, req.InvoiceID, req.ActorID, req.Reason)
	default:
		return nil, shared.NewDomainError("INVALID_TARGET",
			fmt.Sprintf("Invoices cannot be moved to %s by the API", req.TargetStatus))
	}
}

// DeliverInvoice marks the dress as handed over to the customer
func (s *LifecycleService) DeliverInvoice(ctx context.Context, storeID, invoiceID, actorID uuid.UUID, notes string) (*TransitionResult, error) {
	return s.transition(ctx, storeID, invoiceID, actorID, notes, func(ctx context.Context, repos rental.Repositories, inv *rental.Invoice) error {
		return inv.Deliver()
	})
}

// ReturnInvoice marks the dress as back in the shop, recording its condition
func (s *LifecycleService) ReturnInvoice(ctx context.Context, storeID, invoiceID, actorID uuid.UUID, condition rental.ReturnCondition, notes string) (*TransitionResult, error) {
	return s.transition(ctx, storeID, invoiceID, actorID, notes, func(ctx context.Context, repos rental.Repositories, inv *rental.Invoice) error {
		return inv.Return(condition)
	})
}

// CloseInvoice settles the invoice. The fully-paid guard is evaluated on the
// live ledger inside the same transaction that locks the invoice row, so a
// racing payment reversal cannot slip an unpaid invoice into closed.
func (s *LifecycleService) CloseInvoice(ctx context.Context, storeID, invoiceID, actorID uuid.UUID, notes string) (*TransitionResult, error) {
	return s.transition(ctx, storeID, invoiceID, actorID, notes, func(ctx context.Context, repos rental.Repositories, inv *rental.Invoice) error {
		events, err := repos.Payments.FindByInvoice(ctx, storeID, invoiceID)
		if err != nil {
			return fmt.Errorf("failed to load ledger: %w", err)
		}
		return inv.Close(rental.ComputeSummary(inv, events))
	})
}

// CancelInvoice cancels and soft-deletes the invoice. Requires the
// invoices:cancel permission and a reason.
func (s *LifecycleService) CancelInvoice(ctx context.Context, storeID, invoiceID, actorID uuid.UUID, reason string) (*TransitionResult, error) {
	allowed, err := s.permissions.HasPermission(ctx, storeID, actorID, rental.PermissionCancelInvoice)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !allowed {
		return nil, shared.NewAuthorizationError("PERMISSION_DENIED", "Actor is not allowed to cancel invoices")
	}
	return s.transition(ctx, storeID, invoiceID, actorID, reason, func(ctx context.Context, repos rental.Repositories, inv *rental.Invoice) error {
		return inv.Cancel(reason)
	})
}

// ConfirmReservation validates the rental window against existing bookings
// and commits it to the invoice. The conflict check runs inside the same
// transaction that locks the invoice row, against the transactional
// repository, so a booking committed in between cannot be missed.
func (s *LifecycleService) ConfirmReservation(ctx context.Context, storeID, invoiceID, productID, actorID uuid.UUID, window CheckAvailabilityRequest) (*TransitionResult, error) {
	return s.transition(ctx, storeID, invoiceID, actorID, "", func(ctx context.Context, repos rental.Repositories, inv *rental.Invoice) error {
		check, err := s.availability.CheckAvailabilityWith(ctx, repos.Invoices, CheckAvailabilityRequest{
			StoreID:          storeID,
			ProductID:        productID,
			CollectionDate:   window.CollectionDate,
			ReturnDate:       window.ReturnDate,
			ExcludeInvoiceID: &invoiceID,
		})
		if err != nil {
			return err
		}
		if !check.Available {
			return shared.NewDomainError("DOUBLE_BOOKING",
				fmt.Sprintf("Product is already booked for an overlapping window (%d conflicts)", len(check.Conflicts)))
		}

		r, err := valueRange(window.CollectionDate, window.ReturnDate)
		if err != nil {
			return err
		}
		return inv.SetRentalWindow(productID, r)
	})
}

// GetStatusHistory lists the transition audit trail of an invoice
func (s *LifecycleService) GetStatusHistory(ctx context.Context, storeID, invoiceID uuid.UUID, filter shared.Filter) (shared.Paginated[rental.StatusHistoryEntry], error) {
	entries, total, err := s.history.FindByInvoice(ctx, storeID, invoiceID, filter)
	if err != nil {
		return shared.Paginated[rental.StatusHistoryEntry]{}, err
	}
	return shared.NewPaginated(entries, total, filter.Page, filter.PageSize), nil
}

// transition runs one guarded state change as a single atomic unit:
// lock the invoice row, apply the aggregate transition, persist the invoice
// and its history entry together.
func (s *LifecycleService) transition(
	ctx context.Context,
	storeID, invoiceID, actorID uuid.UUID,
	notes string,
	apply func(ctx context.Context, repos rental.Repositories, inv *rental.Invoice) error,
) (*TransitionResult, error) {
	if actorID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_ACTOR", "Actor ID cannot be empty")
	}

	var result *TransitionResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos rental.Repositories) error {
		invoice, err := repos.Invoices.FindByIDForUpdate(ctx, storeID, invoiceID)
		if err != nil {
			return err
		}

		from := invoice.Status
		if err := apply(ctx, repos, invoice); err != nil {
			return err
		}
		// Every transition bumps the aggregate version, so the optimistic
		// write doubles as a guard against a stale snapshot.
		if err := repos.Invoices.SaveWithLock(ctx, invoice); err != nil {
			return err
		}

		var historyID uuid.UUID
		if invoice.Status != from {
			entry, err := rental.NewStatusHistoryEntry(storeID, invoiceID, from, invoice.Status, actorID, notes)
			if err != nil {
				return err
			}
			if err := repos.History.Create(ctx, entry); err != nil {
				return fmt.Errorf("failed to append status history: %w", err)
			}
			historyID = entry.ID
		}

		result = &TransitionResult{
			InvoiceID:      invoiceID,
			NewStatus:      invoice.Status,
			HistoryEntryID: historyID,
		}

		for _, event := range invoice.GetDomainEvents() {
			s.logger.Info("lifecycle audit",
				zap.String("event", event.EventType()),
				zap.String("invoice_id", invoiceID.String()),
				zap.String("store_id", storeID.String()),
				zap.String("actor_id", actorID.String()),
			)
		}
		invoice.ClearDomainEvents()
		return nil
	})
	if err != nil {
		s.logFailure(storeID, invoiceID, actorID, err)
		return nil, err
	}
	return result, nil
}

func (s *LifecycleService) logFailure(storeID, invoiceID, actorID uuid.UUID, err error) {
	fields := []zap.Field{
		zap.String("store_id", storeID.String()),
		zap.String("invoice_id", invoiceID.String()),
		zap.String("actor_id", actorID.String()),
		zap.Error(err),
	}
	if _, ok := shared.AsDomainError(err); ok {
		s.logger.Debug("transition rejected", fields...)
		return
	}
	s.logger.Error("transition failed", fields...)
}
