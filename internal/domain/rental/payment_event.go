package rental

import (
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentKind represents the kind of monetary event recorded on the ledger
type PaymentKind string

const (
	PaymentKindPayment PaymentKind = "PAYMENT" // money received against the invoice
	PaymentKindRefund  PaymentKind = "REFUND"  // money returned to the customer
	PaymentKindPenalty PaymentKind = "PENALTY" // charge added on top of the invoice price
)

// IsValid checks if the kind is a valid PaymentKind
func (k PaymentKind) IsValid() bool {
	switch k {
	case PaymentKindPayment, PaymentKindRefund, PaymentKindPenalty:
		return true
	}
	return false
}

// String returns the string representation of PaymentKind
func (k PaymentKind) String() string {
	return string(k)
}

// PaymentMethod represents how the money moved
type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
	PaymentMethodMixed    PaymentMethod = "MIXED"
)

// IsValid checks if the method is a valid PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodMixed:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentEventStatus tracks whether a ledger entry still counts.
// The ledger is append-only: entries are never removed, only reversed.
type PaymentEventStatus string

const (
	PaymentEventStatusActive   PaymentEventStatus = "ACTIVE"
	PaymentEventStatusReversed PaymentEventStatus = "REVERSED"
)

// IsValid checks if the status is a valid PaymentEventStatus
func (s PaymentEventStatus) IsValid() bool {
	return s == PaymentEventStatusActive || s == PaymentEventStatusReversed
}

// PaymentEvent is a single entry on an invoice's payment ledger.
// Amounts always carry a positive magnitude; the Kind decides the sign
// the entry contributes to the invoice's financial summary.
type PaymentEvent struct {
	shared.BaseEntity
	StoreID        uuid.UUID
	InvoiceID      uuid.UUID
	Kind           PaymentKind
	Method         PaymentMethod
	Amount         decimal.Decimal
	OccurredOn     time.Time // business date of the money event; may differ from CreatedAt
	CreatedBy      *uuid.UUID
	Notes          string
	Status         PaymentEventStatus
	ReversedAt     *time.Time
	ReversedBy     *uuid.UUID
	ReversalReason string
}

// NewPaymentEvent creates a new ledger entry after validating its shape.
// Validation failures are reported before any storage access.
func NewPaymentEvent(
	storeID uuid.UUID,
	invoiceID uuid.UUID,
	kind PaymentKind,
	method PaymentMethod,
	amount valueobject.Money,
	occurredOn time.Time,
	createdBy *uuid.UUID,
	notes string,
) (*PaymentEvent, error) {
	if invoiceID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_INVOICE", "Invoice ID cannot be empty")
	}
	if !kind.IsValid() {
		return nil, shared.NewValidationError("INVALID_KIND", "Payment kind is not valid")
	}
	if !method.IsValid() {
		return nil, shared.NewValidationError("INVALID_METHOD", "Payment method is not valid")
	}
	if amount.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Amount must be positive")
	}
	if occurredOn.IsZero() {
		occurredOn = time.Now()
	}

	return &PaymentEvent{
		BaseEntity: shared.NewBaseEntity(),
		StoreID:    storeID,
		InvoiceID:  invoiceID,
		Kind:       kind,
		Method:     method,
		Amount:     amount.Amount(),
		OccurredOn: occurredOn,
		CreatedBy:  createdBy,
		Notes:      notes,
		Status:     PaymentEventStatusActive,
	}, nil
}

// GetAmountMoney returns the amount as Money value object
func (e *PaymentEvent) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(e.Amount)
}

// IsActive returns true if the entry still counts toward the summary.
// Legacy rows without a status are considered active.
func (e *PaymentEvent) IsActive() bool {
	return e.Status == PaymentEventStatusActive || e.Status == ""
}

// IsReversed returns true if the entry has been reversed
func (e *PaymentEvent) IsReversed() bool {
	return e.Status == PaymentEventStatusReversed
}

// Reverse marks the entry as reversed. Reversal is the only "delete" the
// ledger supports and always records who did it and why.
func (e *PaymentEvent) Reverse(actorID uuid.UUID, reason string) error {
	if e.IsReversed() {
		return shared.NewDomainError("ALREADY_REVERSED", "Payment event has already been reversed")
	}
	if reason == "" {
		return shared.NewValidationError("INVALID_REASON", "Reversal reason is required")
	}
	now := time.Now()
	e.Status = PaymentEventStatusReversed
	e.ReversedAt = &now
	e.ReversedBy = &actorID
	e.ReversalReason = reason
	e.Touch()
	return nil
}
