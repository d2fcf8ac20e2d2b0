package rental

import (
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the derived settlement state of an invoice. It is never
// stored as a source of truth; it is recomputed from the ledger on every read.
type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "UNPAID"
	PaymentStatusPartial PaymentStatus = "PARTIAL"
	PaymentStatusPaid    PaymentStatus = "PAID"
)

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// PaymentSummary is the live financial view of an invoice, derived from the
// invoice record and its active ledger entries. It is never persisted.
//
// Penalties increase the amount owed: TotalDue = TotalPrice + PenaltyTotal.
// TotalPaid = legacy deposit + payments - refunds, and never goes below zero
// in reporting. RemainingBalance is floored at zero.
type PaymentSummary struct {
	InvoiceID        uuid.UUID       `json:"invoice_id"`
	TotalPrice       decimal.Decimal `json:"total_price"`
	PenaltyTotal     decimal.Decimal `json:"penalty_total"`
	TotalDue         decimal.Decimal `json:"total_due"`
	DepositAmount    decimal.Decimal `json:"deposit_amount"`
	TotalPaid        decimal.Decimal `json:"total_paid"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
}

// ComputeSummary derives the financial summary for an invoice from its
// ledger entries. Reversed entries do not count. The legacy deposit recorded
// at invoice creation is treated as an implicit first payment.
func ComputeSummary(inv *Invoice, events []PaymentEvent) PaymentSummary {
	payments := decimal.Zero
	refunds := decimal.Zero
	penalties := decimal.Zero

	for i := range events {
		e := &events[i]
		if !e.IsActive() {
			continue
		}
		switch e.Kind {
		case PaymentKindPayment:
			payments = payments.Add(e.Amount)
		case PaymentKindRefund:
			refunds = refunds.Add(e.Amount)
		case PaymentKindPenalty:
			penalties = penalties.Add(e.Amount)
		}
	}

	totalPaid := inv.DepositAmount.Add(payments).Sub(refunds)
	totalDue := inv.TotalPrice.Add(penalties)
	remaining := totalDue.Sub(totalPaid)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return PaymentSummary{
		InvoiceID:        inv.ID,
		TotalPrice:       inv.TotalPrice,
		PenaltyTotal:     penalties,
		TotalDue:         totalDue,
		DepositAmount:    inv.DepositAmount,
		TotalPaid:        totalPaid,
		RemainingBalance: remaining,
		PaymentStatus:    derivePaymentStatus(totalPaid, remaining),
	}
}

// derivePaymentStatus classifies the settlement state using the Epsilon
// tolerance so rounding artifacts from legacy float data never block closing.
func derivePaymentStatus(totalPaid, remaining decimal.Decimal) PaymentStatus {
	if remaining.LessThanOrEqual(valueobject.Epsilon) {
		return PaymentStatusPaid
	}
	if totalPaid.GreaterThan(decimal.Zero) {
		return PaymentStatusPartial
	}
	return PaymentStatusUnpaid
}

// IsSettled reports whether the remaining balance is within tolerance of zero
func (s PaymentSummary) IsSettled() bool {
	return s.RemainingBalance.LessThanOrEqual(valueobject.Epsilon)
}

// GetTotalPaidMoney returns the total paid as Money
func (s PaymentSummary) GetTotalPaidMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(s.TotalPaid)
}

// GetRemainingBalanceMoney returns the remaining balance as Money
func (s PaymentSummary) GetRemainingBalanceMoney() valueobject.Money {
	return valueobject.NewMoneyUSD(s.RemainingBalance)
}
