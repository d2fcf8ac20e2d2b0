package rental

import (
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceReservedEvent is raised when a new invoice is created
type InvoiceReservedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	CustomerName  string          `json:"customer_name"`
	TotalPrice    decimal.Decimal `json:"total_price"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
}

// EventType returns the event type name
func (e *InvoiceReservedEvent) EventType() string {
	return "InvoiceReserved"
}

// NewInvoiceReservedEvent creates a new InvoiceReservedEvent
func NewInvoiceReservedEvent(inv *Invoice) *InvoiceReservedEvent {
	return &InvoiceReservedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceReserved", "Invoice", inv.ID, inv.StoreID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		TotalPrice:      inv.TotalPrice,
		DepositAmount:   inv.DepositAmount,
	}
}

// InvoiceStatusChangedEvent is raised on every successful lifecycle transition
type InvoiceStatusChangedEvent struct {
	shared.BaseDomainEvent
	InvoiceID     uuid.UUID     `json:"invoice_id"`
	InvoiceNumber string        `json:"invoice_number"`
	FromStatus    InvoiceStatus `json:"from_status"`
	ToStatus      InvoiceStatus `json:"to_status"`
	CancelReason  string        `json:"cancel_reason,omitempty"`
}

// EventType returns the event type name
func (e *InvoiceStatusChangedEvent) EventType() string {
	return "InvoiceStatusChanged"
}

// NewInvoiceStatusChangedEvent creates a new InvoiceStatusChangedEvent
func NewInvoiceStatusChangedEvent(inv *Invoice, from InvoiceStatus) *InvoiceStatusChangedEvent {
	return &InvoiceStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("InvoiceStatusChanged", "Invoice", inv.ID, inv.StoreID),
		InvoiceID:       inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		FromStatus:      from,
		ToStatus:        inv.Status,
		CancelReason:    inv.CancelReason,
	}
}

// PaymentRecordedEvent is raised when a ledger entry is appended
type PaymentRecordedEvent struct {
	shared.BaseDomainEvent
	PaymentID        uuid.UUID       `json:"payment_id"`
	InvoiceID        uuid.UUID       `json:"invoice_id"`
	Kind             PaymentKind     `json:"kind"`
	Method           PaymentMethod   `json:"method"`
	Amount           decimal.Decimal `json:"amount"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
}

// EventType returns the event type name
func (e *PaymentRecordedEvent) EventType() string {
	return "PaymentRecorded"
}

// NewPaymentRecordedEvent creates a new PaymentRecordedEvent
func NewPaymentRecordedEvent(event *PaymentEvent, summary PaymentSummary) *PaymentRecordedEvent {
	return &PaymentRecordedEvent{
		BaseDomainEvent:  shared.NewBaseDomainEvent("PaymentRecorded", "Invoice", event.InvoiceID, event.StoreID),
		PaymentID:        event.ID,
		InvoiceID:        event.InvoiceID,
		Kind:             event.Kind,
		Method:           event.Method,
		Amount:           event.Amount,
		RemainingBalance: summary.RemainingBalance,
		PaymentStatus:    summary.PaymentStatus,
	}
}

// PaymentReversedEvent is raised when a ledger entry is reversed
type PaymentReversedEvent struct {
	shared.BaseDomainEvent
	PaymentID uuid.UUID       `json:"payment_id"`
	InvoiceID uuid.UUID       `json:"invoice_id"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
}

// EventType returns the event type name
func (e *PaymentReversedEvent) EventType() string {
	return "PaymentReversed"
}

// NewPaymentReversedEvent creates a new PaymentReversedEvent
func NewPaymentReversedEvent(event *PaymentEvent) *PaymentReversedEvent {
	return &PaymentReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("PaymentReversed", "Invoice", event.InvoiceID, event.StoreID),
		PaymentID:       event.ID,
		InvoiceID:       event.InvoiceID,
		Amount:          event.Amount,
		Reason:          event.ReversalReason,
	}
}
