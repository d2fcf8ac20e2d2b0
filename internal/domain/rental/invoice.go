package rental

import (
	"fmt"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the lifecycle state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusReserved  InvoiceStatus = "RESERVED"  // initial state, dress and dates committed
	InvoiceStatusDelivered InvoiceStatus = "DELIVERED" // handed over to the customer
	InvoiceStatusReturned  InvoiceStatus = "RETURNED"  // back in the shop, condition recorded
	InvoiceStatusClosed    InvoiceStatus = "CLOSED"    // terminal, fully settled
	InvoiceStatusCanceled  InvoiceStatus = "CANCELED"  // terminal, soft-deleted
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusReserved, InvoiceStatusDelivered, InvoiceStatusReturned,
		InvoiceStatusClosed, InvoiceStatusCanceled:
		return true
	}
	return false
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// IsTerminal returns true if no further transition is permitted
func (s InvoiceStatus) IsTerminal() bool {
	return s == InvoiceStatusClosed || s == InvoiceStatusCanceled
}

// CanTransitionTo checks if the status can transition to the target status.
// Same-state transitions are rejected, not silently accepted.
func (s InvoiceStatus) CanTransitionTo(target InvoiceStatus) bool {
	switch s {
	case InvoiceStatusReserved:
		return target == InvoiceStatusDelivered || target == InvoiceStatusCanceled
	case InvoiceStatusDelivered:
		return target == InvoiceStatusReturned || target == InvoiceStatusClosed ||
			target == InvoiceStatusCanceled
	case InvoiceStatusReturned:
		return target == InvoiceStatusClosed || target == InvoiceStatusCanceled
	case InvoiceStatusClosed, InvoiceStatusCanceled:
		return false
	}
	return false
}

// ReturnCondition classifies the state of the dress when it comes back
type ReturnCondition string

const (
	ReturnConditionGood    ReturnCondition = "GOOD"
	ReturnConditionDamaged ReturnCondition = "DAMAGED"
)

// IsValid checks if the condition is a valid ReturnCondition
func (c ReturnCondition) IsValid() bool {
	return c == ReturnConditionGood || c == ReturnConditionDamaged
}

// Invoice represents a rental/sale invoice aggregate root.
// TotalPrice and DepositAmount are immutable after creation; everything the
// customer has paid since lives on the payment ledger, and the financial
// summary is always recomputed from the ledger rather than stored here.
type Invoice struct {
	shared.StoreAggregateRoot
	InvoiceNumber   string
	CustomerID      uuid.UUID
	CustomerName    string
	ProductID       *uuid.UUID // rentable product; nil for pure sales
	TotalPrice      decimal.Decimal
	DepositAmount   decimal.Decimal // legacy field, counted as an implicit first ledger entry
	Status          InvoiceStatus
	CollectionDate  *time.Time // rental window start; nil for pure sales
	ReturnDate      *time.Time // rental window end; nil for pure sales
	ReturnCondition ReturnCondition
	Notes           string
	DeliveredAt     *time.Time
	ReturnedAt      *time.Time
	ClosedAt        *time.Time
	CanceledAt      *time.Time
	CancelReason    string
	DeletedAt       *time.Time // soft delete marker; set on cancellation
}

// NewInvoice creates a new invoice in the reserved state
func NewInvoice(
	storeID uuid.UUID,
	invoiceNumber string,
	customerID uuid.UUID,
	customerName string,
	totalPrice valueobject.Money,
	deposit valueobject.Money,
) (*Invoice, error) {
	if invoiceNumber == "" {
		return nil, shared.NewValidationError("INVALID_INVOICE_NUMBER", "Invoice number cannot be empty")
	}
	if len(invoiceNumber) > 50 {
		return nil, shared.NewValidationError("INVALID_INVOICE_NUMBER", "Invoice number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if customerName == "" {
		return nil, shared.NewValidationError("INVALID_CUSTOMER_NAME", "Customer name cannot be empty")
	}
	if totalPrice.Amount().LessThanOrEqual(decimal.Zero) {
		return nil, shared.NewValidationError("INVALID_AMOUNT", "Total price must be positive")
	}
	if deposit.Amount().IsNegative() {
		return nil, shared.NewValidationError("INVALID_DEPOSIT", "Deposit cannot be negative")
	}
	if gt, _ := deposit.GreaterThan(totalPrice); gt {
		return nil, shared.NewDomainError("DEPOSIT_EXCEEDS_PRICE", "Deposit cannot exceed total price")
	}

	inv := &Invoice{
		StoreAggregateRoot: shared.NewStoreAggregateRoot(storeID),
		InvoiceNumber:      invoiceNumber,
		CustomerID:         customerID,
		CustomerName:       customerName,
		TotalPrice:         totalPrice.Amount(),
		DepositAmount:      deposit.Amount(),
		Status:             InvoiceStatusReserved,
	}

	inv.AddDomainEvent(NewInvoiceReservedEvent(inv))

	return inv, nil
}

// SetRentalWindow sets the product and collection/return dates for a rental.
// Only allowed before delivery; availability is checked by the caller.
func (inv *Invoice) SetRentalWindow(productID uuid.UUID, window valueobject.DateRange) error {
	if inv.Status != InvoiceStatusReserved {
		return shared.NewDomainError("INVALID_STATE", "Rental window can only change while reserved")
	}
	if productID == uuid.Nil {
		return shared.NewValidationError("INVALID_PRODUCT", "Product ID cannot be empty")
	}

	start := window.Start()
	end := window.End()
	inv.ProductID = &productID
	inv.CollectionDate = &start
	inv.ReturnDate = &end
	inv.Touch()
	inv.IncrementVersion()

	return nil
}

// RentalWindow returns the booking window, if the invoice is a rental
func (inv *Invoice) RentalWindow() (valueobject.DateRange, bool) {
	if inv.CollectionDate == nil || inv.ReturnDate == nil {
		return valueobject.DateRange{}, false
	}
	r, err := valueobject.NewDateRange(*inv.CollectionDate, *inv.ReturnDate)
	if err != nil {
		return valueobject.DateRange{}, false
	}
	return r, true
}

// IsDeleted returns true if the invoice is soft-deleted
func (inv *Invoice) IsDeleted() bool {
	return inv.DeletedAt != nil
}

// IsLate reports whether the invoice is past its collection date and the
// dress was never delivered. This is a derived label, never a stored state.
func (inv *Invoice) IsLate(now time.Time) bool {
	if inv.Status != InvoiceStatusReserved || inv.CollectionDate == nil {
		return false
	}
	return now.After(*inv.CollectionDate)
}

// CanAcceptLedgerEntries reports whether new ledger entries may be recorded.
// A soft-deleted or canceled invoice never accepts money events.
func (inv *Invoice) CanAcceptLedgerEntries() bool {
	return !inv.IsDeleted() && inv.Status != InvoiceStatusCanceled
}

// guardTransition validates a transition request against the state machine
func (inv *Invoice) guardTransition(target InvoiceStatus) error {
	if inv.IsDeleted() {
		return shared.NewDomainError("INVOICE_DELETED", "Invoice has been deleted")
	}
	if inv.Status == target {
		return shared.NewDomainError("NO_OP_TRANSITION", fmt.Sprintf("Invoice is already %s", inv.Status))
	}
	if !inv.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition invoice from %s to %s", inv.Status, target))
	}
	return nil
}

// Deliver marks the dress as handed over to the customer
func (inv *Invoice) Deliver() error {
	if err := inv.guardTransition(InvoiceStatusDelivered); err != nil {
		return err
	}

	now := time.Now()
	from := inv.Status
	inv.Status = InvoiceStatusDelivered
	inv.DeliveredAt = &now
	inv.Touch()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, from))

	return nil
}

// Return marks the dress as back in the shop with its condition recorded.
// The condition classification is required.
func (inv *Invoice) Return(condition ReturnCondition) error {
	if !condition.IsValid() {
		return shared.NewValidationError("INVALID_RETURN_CONDITION", "Return condition must be good or damaged")
	}
	if err := inv.guardTransition(InvoiceStatusReturned); err != nil {
		return err
	}

	now := time.Now()
	from := inv.Status
	inv.Status = InvoiceStatusReturned
	inv.ReturnedAt = &now
	inv.ReturnCondition = condition
	inv.Touch()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, from))

	return nil
}

// Close settles the invoice. The caller supplies the live financial summary;
// closing with an outstanding balance is a business error.
func (inv *Invoice) Close(summary PaymentSummary) error {
	if err := inv.guardTransition(InvoiceStatusClosed); err != nil {
		return err
	}
	if !summary.IsSettled() {
		return shared.NewDomainError("OUTSTANDING_BALANCE",
			fmt.Sprintf("Cannot close invoice with outstanding balance %s", summary.RemainingBalance.StringFixed(2)))
	}

	now := time.Now()
	from := inv.Status
	inv.Status = InvoiceStatusClosed
	inv.ClosedAt = &now
	inv.Touch()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, from))

	return nil
}

// Cancel cancels the invoice and soft-deletes it. A reason is always
// required; the permission check happens in the application layer.
func (inv *Invoice) Cancel(reason string) error {
	if reason == "" {
		return shared.NewValidationError("INVALID_REASON", "Cancel reason is required")
	}
	if err := inv.guardTransition(InvoiceStatusCanceled); err != nil {
		return err
	}

	now := time.Now()
	from := inv.Status
	inv.Status = InvoiceStatusCanceled
	inv.CanceledAt = &now
	inv.CancelReason = reason
	inv.DeletedAt = &now
	inv.Touch()
	inv.IncrementVersion()

	inv.AddDomainEvent(NewInvoiceStatusChangedEvent(inv, from))

	return nil
}

// GetTotalPriceMoney returns the total price as Money
func (inv *Invoice) GetTotalPriceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.TotalPrice)
}

// GetDepositAmountMoney returns the legacy deposit as Money
func (inv *Invoice) GetDepositAmountMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(inv.DepositAmount)
}

// IsReserved returns true if the invoice is reserved
func (inv *Invoice) IsReserved() bool { return inv.Status == InvoiceStatusReserved }

// IsDelivered returns true if the invoice is delivered
func (inv *Invoice) IsDelivered() bool { return inv.Status == InvoiceStatusDelivered }

// IsReturned returns true if the invoice is returned
func (inv *Invoice) IsReturned() bool { return inv.Status == InvoiceStatusReturned }

// IsClosed returns true if the invoice is closed
func (inv *Invoice) IsClosed() bool { return inv.Status == InvoiceStatusClosed }

// IsCanceled returns true if the invoice is canceled
func (inv *Invoice) IsCanceled() bool { return inv.Status == InvoiceStatusCanceled }

// IsTerminal returns true if the invoice is in a terminal state
func (inv *Invoice) IsTerminal() bool { return inv.Status.IsTerminal() }
