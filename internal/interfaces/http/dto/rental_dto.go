package dto

import (
	"time"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateInvoiceRequest is the payload for reserving a new invoice
type CreateInvoiceRequest struct {
	InvoiceNumber string          `json:"invoice_number" binding:"required,max=50"`
	CustomerID    string          `json:"customer_id" binding:"required,uuid"`
	CustomerName  string          `json:"customer_name" binding:"required,max=200"`
	TotalPrice    decimal.Decimal `json:"total_price" binding:"required"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
	Notes         string          `json:"notes"`
	// Rental window, set together or not at all
	ProductID      string `json:"product_id" binding:"omitempty,uuid"`
	CollectionDate string `json:"collection_date" binding:"omitempty,datetime=2006-01-02"`
	ReturnDate     string `json:"return_date" binding:"omitempty,datetime=2006-01-02"`
}

// ChangeStatusRequest is the payload for a lifecycle transition
type ChangeStatusRequest struct {
	TargetStatus    string `json:"target_status" binding:"required,oneof=DELIVERED RETURNED CLOSED CANCELED"`
	Notes           string `json:"notes"`
	ReturnCondition string `json:"return_condition" binding:"omitempty,oneof=GOOD DAMAGED"`
	Reason          string `json:"reason"`
}

// ConfirmReservationRequest commits a rental window to a reserved invoice
type ConfirmReservationRequest struct {
	ProductID      string `json:"product_id" binding:"required,uuid"`
	CollectionDate string `json:"collection_date" binding:"required,datetime=2006-01-02"`
	ReturnDate     string `json:"return_date" binding:"required,datetime=2006-01-02"`
}

// AddPaymentRequest is the payload for recording a ledger entry
type AddPaymentRequest struct {
	Amount     decimal.Decimal `json:"amount" binding:"required"`
	Kind       string          `json:"kind" binding:"required,oneof=PAYMENT REFUND PENALTY"`
	Method     string          `json:"method" binding:"required,oneof=CASH CARD TRANSFER MIXED"`
	Notes      string          `json:"notes"`
	OccurredOn string          `json:"occurred_on" binding:"omitempty,datetime=2006-01-02"`
}

// ReversePaymentRequest is the payload for reversing a ledger entry
type ReversePaymentRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// CheckAvailabilityRequest queries the double-booking checker
type CheckAvailabilityRequest struct {
	ProductID        string `form:"product_id" binding:"required,uuid"`
	CollectionDate   string `form:"collection_date" binding:"required,datetime=2006-01-02"`
	ReturnDate       string `form:"return_date" binding:"required,datetime=2006-01-02"`
	ExcludeInvoiceID string `form:"exclude_invoice_id" binding:"omitempty,uuid"`
}

// RevenueQuery selects the reporting period
type RevenueQuery struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to" binding:"required,datetime=2006-01-02"`
}

// InvoiceFilterQuery carries invoice list filters
type InvoiceFilterQuery struct {
	ListRequest
	CustomerID string `form:"customer_id" binding:"omitempty,uuid"`
	ProductID  string `form:"product_id" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=RESERVED DELIVERED RETURNED CLOSED CANCELED"`
}

// InvoiceResponse is the API shape of an invoice
type InvoiceResponse struct {
	ID              uuid.UUID       `json:"id"`
	InvoiceNumber   string          `json:"invoice_number"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	ProductID       *uuid.UUID      `json:"product_id,omitempty"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	DepositAmount   decimal.Decimal `json:"deposit_amount"`
	Status          string          `json:"status"`
	IsLate          bool            `json:"is_late"`
	CollectionDate  *time.Time      `json:"collection_date,omitempty"`
	ReturnDate      *time.Time      `json:"return_date,omitempty"`
	ReturnCondition string          `json:"return_condition,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	ReturnedAt      *time.Time      `json:"returned_at,omitempty"`
	ClosedAt        *time.Time      `json:"closed_at,omitempty"`
	CanceledAt      *time.Time      `json:"canceled_at,omitempty"`
	CancelReason    string          `json:"cancel_reason,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// InvoiceResponseFromDomain converts a domain invoice to its API shape
func InvoiceResponseFromDomain(inv *rental.Invoice) InvoiceResponse {
	return InvoiceResponse{
		ID:              inv.ID,
		InvoiceNumber:   inv.InvoiceNumber,
		CustomerID:      inv.CustomerID,
		CustomerName:    inv.CustomerName,
		ProductID:       inv.ProductID,
		TotalPrice:      inv.TotalPrice,
		DepositAmount:   inv.DepositAmount,
		Status:          inv.Status.String(),
		IsLate:          inv.IsLate(time.Now()),
		CollectionDate:  inv.CollectionDate,
		ReturnDate:      inv.ReturnDate,
		ReturnCondition: string(inv.ReturnCondition),
		Notes:           inv.Notes,
		DeliveredAt:     inv.DeliveredAt,
		ReturnedAt:      inv.ReturnedAt,
		ClosedAt:        inv.ClosedAt,
		CanceledAt:      inv.CanceledAt,
		CancelReason:    inv.CancelReason,
		CreatedAt:       inv.CreatedAt,
		UpdatedAt:       inv.UpdatedAt,
	}
}

// PaymentEventResponse is the API shape of a ledger entry
type PaymentEventResponse struct {
	ID             uuid.UUID       `json:"id"`
	InvoiceID      uuid.UUID       `json:"invoice_id"`
	Kind           string          `json:"kind"`
	Method         string          `json:"method"`
	Amount         decimal.Decimal `json:"amount"`
	OccurredOn     time.Time       `json:"occurred_on"`
	CreatedBy      *uuid.UUID      `json:"created_by,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	Status         string          `json:"status"`
	ReversedAt     *time.Time      `json:"reversed_at,omitempty"`
	ReversedBy     *uuid.UUID      `json:"reversed_by,omitempty"`
	ReversalReason string          `json:"reversal_reason,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// PaymentEventResponseFromDomain converts a domain ledger entry to its API shape
func PaymentEventResponseFromDomain(e *rental.PaymentEvent) PaymentEventResponse {
	status := e.Status
	if status == "" {
		status = rental.PaymentEventStatusActive
	}
	return PaymentEventResponse{
		ID:             e.ID,
		InvoiceID:      e.InvoiceID,
		Kind:           e.Kind.String(),
		Method:         e.Method.String(),
		Amount:         e.Amount,
		OccurredOn:     e.OccurredOn,
		CreatedBy:      e.CreatedBy,
		Notes:          e.Notes,
		Status:         string(status),
		ReversedAt:     e.ReversedAt,
		ReversedBy:     e.ReversedBy,
		ReversalReason: e.ReversalReason,
		CreatedAt:      e.CreatedAt,
	}
}

// PaymentSummaryResponse is the API shape of an invoice's financial summary
type PaymentSummaryResponse struct {
	InvoiceID        uuid.UUID       `json:"invoice_id"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	PenaltyTotal     decimal.Decimal `json:"penalty_total"`
	TotalDue         decimal.Decimal `json:"total_due"`
	DepositAmount    decimal.Decimal `json:"deposit_amount"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	PaymentStatus    string          `json:"payment_status"`
}

// PaymentSummaryResponseFromDomain converts a domain summary to its API shape
func PaymentSummaryResponseFromDomain(s *rental.PaymentSummary) PaymentSummaryResponse {
	return PaymentSummaryResponse{
		InvoiceID:        s.InvoiceID,
		TotalPrice:       s.TotalPrice,
		PenaltyTotal:     s.PenaltyTotal,
		TotalDue:         s.TotalDue,
		DepositAmount:    s.DepositAmount,
		TotalPaid:        s.TotalPaid,
		RemainingBalance: s.RemainingBalance,
		PaymentStatus:    string(s.PaymentStatus),
	}
}

// StatusHistoryResponse is the API shape of one audit trail entry
type StatusHistoryResponse struct {
	ID         uuid.UUID `json:"id"`
	InvoiceID  uuid.UUID `json:"invoice_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	ChangedBy  uuid.UUID `json:"changed_by"`
	Notes      string    `json:"notes,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// StatusHistoryResponseFromDomain converts a domain history entry to its API shape
func StatusHistoryResponseFromDomain(e *rental.StatusHistoryEntry) StatusHistoryResponse {
	return StatusHistoryResponse{
		ID:         e.ID,
		InvoiceID:  e.InvoiceID,
		FromStatus: e.FromStatus.String(),
		ToStatus:   e.ToStatus.String(),
		ChangedBy:  e.ChangedBy,
		Notes:      e.Notes,
		CreatedAt:  e.CreatedAt,
	}
}

// RevenueResponse is the API shape of a revenue figure
type RevenueResponse struct {
	From    time.Time       `json:"from"`
	To      time.Time       `json:"to"`
	Revenue decimal.Decimal `json:"revenue"`
}
