package rental

import (
	"context"
	"fmt"
	"time"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// LedgerService is the single entry point for recording and reading money
// events against invoices. Every check-then-append sequence runs inside a
// transaction with the invoice row locked, so concurrent submissions against
// the same invoice are linearized.
type LedgerService struct {
	invoices    rental.InvoiceRepository
	payments    rental.PaymentEventRepository
	tx          rental.TransactionManager
	permissions rental.PermissionChecker
	cache       RevenueCache
	logger      *zap.Logger
}

// NewLedgerService creates a new LedgerService. cache may be nil when no
// revenue cache is configured.
func NewLedgerService(
	invoices rental.InvoiceRepository,
	payments rental.PaymentEventRepository,
	tx rental.TransactionManager,
	permissions rental.PermissionChecker,
	cache RevenueCache,
	logger *zap.Logger,
) *LedgerService {
	return &LedgerService{
		invoices:    invoices,
		payments:    payments,
		tx:          tx,
		permissions: permissions,
		cache:       cache,
		logger:      logger,
	}
}

// AddPaymentRequest represents a request to record a ledger entry
type AddPaymentRequest struct {
	StoreID    uuid.UUID
	InvoiceID  uuid.UUID
	Amount     decimal.Decimal
	Kind       rental.PaymentKind
	Method     rental.PaymentMethod
	Notes      string
	ActorID    *uuid.UUID
	OccurredOn *time.Time // business date; defaults to today
}

// PaymentResult is returned after a successful ledger write, carrying the
// freshly recomputed financial summary.
type PaymentResult struct {
	PaymentID uuid.UUID             `json:"payment_id"`
	Summary   rental.PaymentSummary `json:"summary"`
}

// AddPayment appends a ledger entry of any kind to an invoice.
// For kind=payment, an amount exceeding the remaining balance is rejected as
// a business error and nothing is written.
func (s *LedgerService) AddPayment(ctx context.Context, req AddPaymentRequest) (*PaymentResult, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Amount must be positive")
	}
	if !req.Kind.IsValid() {
		return nil, shared.NewValidationError("INVALID_KIND", "Payment kind is not valid")
	}
	if !req.Method.IsValid() {
		return nil, shared.NewValidationError("INVALID_METHOD", "Payment method is not valid")
	}

	occurredOn := time.Now()
	if req.OccurredOn != nil {
		occurredOn = *req.OccurredOn
	}

	var result *PaymentResult
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context, repos rental.Repositories) error {
		invoice, err := repos.Invoices.FindByIDForUpdate(ctx, req.StoreID, req.InvoiceID)
		if err != nil {
			return err
		}
		if !invoice.CanAcceptLedgerEntries() {
			return shared.NewDomainError("INVOICE_NOT_ACTIVE", "Cannot record money events on a canceled or deleted invoice")
		}

		events, err := repos.Payments.FindByInvoice(ctx, req.StoreID, req.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to load ledger: %w", err)
		}
		summary := rental.ComputeSummary(invoice, events)

		amount := valueobject.NewMoneyUSD(req.Amount)
		if req.Kind == rental.PaymentKindPayment {
			// Strict comparison. An amount even one cent over the remaining
			// balance is rejected; paying the exact remainder is allowed.
			exceeds, err := amount.GreaterThan(summary.GetRemainingBalanceMoney())
			if err != nil {
				return err
			}
			if exceeds {
				return shared.NewDomainError("OVERPAYMENT",
					fmt.Sprintf("Payment amount %s exceeds remaining balance %s",
						amount.StringFixed(2), summary.RemainingBalance.StringFixed(2)))
			}
		}
		if req.Kind == rental.PaymentKindRefund {
			if req.Amount.GreaterThan(summary.TotalPaid) {
				return shared.NewDomainError("REFUND_EXCEEDS_PAID",
					fmt.Sprintf("Refund amount %s exceeds net paid %s",
						req.Amount.StringFixed(2), summary.TotalPaid.StringFixed(2)))
			}
		}

		event, err := rental.NewPaymentEvent(req.StoreID, req.InvoiceID, req.Kind, req.Method, amount, occurredOn, req.ActorID, req.Notes)
		if err != nil {
			return err
		}
		if err := repos.Payments.Create(ctx, event); err != nil {
			return fmt.Errorf("failed to append ledger entry: %w", err)
		}

		updated := rental.ComputeSummary(invoice, append(events, *event))
		result = &PaymentResult{PaymentID: event.ID, Summary: updated}

		s.audit(rental.NewPaymentRecordedEvent(event, updated), req.ActorID)
		return nil
	})
	if err != nil {
		s.logFailure("add_payment", req.StoreID, req.InvoiceID, req.ActorID, err)
		return nil, err
	}
	if req.Kind == rental.PaymentKindPayment {
		s.invalidateRevenueDay(ctx, req.StoreID, occurredOn)
	}
	return result, nil
}

// AddRefund records money returned to the customer. The net amount paid
// never goes below zero.
func (s *LedgerService) AddRefund(ctx context.Context, storeID, invoiceID uuid.UUID, amount decimal.Decimal, reason string, actorID *uuid.UUID) (*PaymentResult, error) {
	if reason == "" {
		return nil, shared.NewValidationError("INVALID_REASON", "Refund reason is required")
	}
	return s.AddPayment(ctx, AddPaymentRequest{
		StoreID:   storeID,
		InvoiceID: invoiceID,
		Amount:    amount,
		Kind:      rental.PaymentKindRefund,
		Method:    rental.PaymentMethodCash,
		Notes:     reason,
		ActorID:   actorID,
	})
}

// AddPenalty records a charge on top of the invoice price, e.g. for damage
// or a late return. Penalties increase the amount owed.
func (s *LedgerService) AddPenalty(ctx context.Context, storeID, invoiceID uuid.UUID, amount decimal.Decimal, reason string, actorID *uuid.UUID) (*PaymentResult, error) {
	if reason == "" {
		return nil, shared.NewValidationError("INVALID_REASON", "Penalty reason is required")
	}
	return s.AddPayment(ctx, AddPaymentRequest{
		StoreID:   storeID,
		InvoiceID: invoiceID,
		Amount:    amount,
		Kind:      rental.PaymentKindPenalty,
		Method:    rental.PaymentMethodMixed,
		Notes:     reason,
		ActorID:   actorID,
	})
}

// DeletePayment reverses a ledger entry. The row is kept with its reversal
// metadata; the entry simply stops counting. Requires the payments:delete
// permission and always records the reason.
func (s *LedgerService) DeletePayment(ctx context.Context, storeID, paymentID, actorID uuid.UUID, reason string) (*rental.PaymentSummary, error) {
	if reason == "" {
		return nil, shared.NewValidationError("INVALID_REASON", "Deletion reason is required")
	}
	allowed, err := s.permissions.HasPermission(ctx, storeID, actorID, rental.PermissionDeletePayment)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !allowed {
		return nil, shared.NewAuthorizationError("PERMISSION_DENIED", "Actor is not allowed to delete payments")
	}

	var summary rental.PaymentSummary
	var reversed *rental.PaymentEvent
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context, repos rental.Repositories) error {
		event, err := repos.Payments.FindByID(ctx, storeID, paymentID)
		if err != nil {
			return err
		}
		// Lock the invoice so the reversal serializes with concurrent
		// payment submissions against the same invoice.
		invoice, err := repos.Invoices.FindByIDForUpdate(ctx, storeID, event.InvoiceID)
		if err != nil {
			return err
		}
		// The pre-lock read only resolved the owning invoice. The entry may
		// have been reversed while we waited for the lock, so re-read it
		// before the guard in Reverse runs.
		event, err = repos.Payments.FindByID(ctx, storeID, paymentID)
		if err != nil {
			return err
		}
		if err := event.Reverse(actorID, reason); err != nil {
			return err
		}
		if err := repos.Payments.Update(ctx, event); err != nil {
			return fmt.Errorf("failed to reverse ledger entry: %w", err)
		}

		events, err := repos.Payments.FindByInvoice(ctx, storeID, event.InvoiceID)
		if err != nil {
			return fmt.Errorf("failed to load ledger: %w", err)
		}
		summary = rental.ComputeSummary(invoice, events)
		reversed = event

		s.audit(rental.NewPaymentReversedEvent(event), &actorID)
		return nil
	})
	if err != nil {
		s.logFailure("delete_payment", storeID, paymentID, &actorID, err)
		return nil, err
	}
	if reversed.Kind == rental.PaymentKindPayment {
		s.invalidateRevenueDay(ctx, storeID, reversed.OccurredOn)
	}
	return &summary, nil
}

// invalidateRevenueDay drops the cached daily revenue figure for the day a
// ledger entry landed on. Only closed days are ever cached, so days from
// today onward are skipped. Failures are logged and swallowed; the cache
// entry expires on its own.
func (s *LedgerService) invalidateRevenueDay(ctx context.Context, storeID uuid.UUID, occurredOn time.Time) {
	if s.cache == nil {
		return
	}
	day := startOfDay(occurredOn)
	if !day.Before(startOfDay(time.Now())) {
		return
	}
	if err := s.cache.InvalidateDailyRevenue(ctx, storeID, day); err != nil {
		s.logger.Warn("revenue cache invalidation failed",
			zap.String("store_id", storeID.String()),
			zap.Time("day", day),
			zap.Error(err))
	}
}

// GetPaymentSummary derives the live financial summary for an invoice.
// Always recomputed from the ledger; never cached.
func (s *LedgerService) GetPaymentSummary(ctx context.Context, storeID, invoiceID uuid.UUID) (*rental.PaymentSummary, error) {
	invoice, err := s.invoices.FindByID(ctx, storeID, invoiceID)
	if err != nil {
		return nil, err
	}
	events, err := s.payments.FindByInvoice(ctx, storeID, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}
	summary := rental.ComputeSummary(invoice, events)
	return &summary, nil
}

// CalculateTotalPaid returns the net amount paid against an invoice
func (s *LedgerService) CalculateTotalPaid(ctx context.Context, storeID, invoiceID uuid.UUID) (decimal.Decimal, error) {
	summary, err := s.GetPaymentSummary(ctx, storeID, invoiceID)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.TotalPaid, nil
}

// CalculateRemainingBalance returns the outstanding balance of an invoice
func (s *LedgerService) CalculateRemainingBalance(ctx context.Context, storeID, invoiceID uuid.UUID) (decimal.Decimal, error) {
	summary, err := s.GetPaymentSummary(ctx, storeID, invoiceID)
	if err != nil {
		return decimal.Zero, err
	}
	return summary.RemainingBalance, nil
}

// ListPayments returns the full ledger of an invoice, including reversed
// entries, oldest first.
func (s *LedgerService) ListPayments(ctx context.Context, storeID, invoiceID uuid.UUID) ([]rental.PaymentEvent, error) {
	return s.payments.FindByInvoice(ctx, storeID, invoiceID)
}

// audit writes a structured audit line for a domain event
func (s *LedgerService) audit(event shared.DomainEvent, actorID *uuid.UUID) {
	fields := []zap.Field{
		zap.String("event", event.EventType()),
		zap.String("invoice_id", event.AggregateID().String()),
		zap.String("store_id", event.StoreID().String()),
	}
	if actorID != nil {
		fields = append(fields, zap.String("actor_id", actorID.String()))
	}
	s.logger.Info("ledger audit", fields...)
}

// logFailure logs infrastructure failures with context; business rejections
// are logged at debug level only.
func (s *LedgerService) logFailure(op string, storeID, targetID uuid.UUID, actorID *uuid.UUID, err error) {
	fields := []zap.Field{
		zap.String("op", op),
		zap.String("store_id", storeID.String()),
		zap.String("target_id", targetID.String()),
		zap.Error(err),
	}
	if actorID != nil {
		fields = append(fields, zap.String("actor_id", actorID.String()))
	}
	if _, ok := shared.AsDomainError(err); ok {
		s.logger.Debug("ledger operation rejected", fields...)
		return
	}
	s.logger.Error("ledger operation failed", fields...)
}
