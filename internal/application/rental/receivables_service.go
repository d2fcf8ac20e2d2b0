package rental

import (
	"context"
	"fmt"
	"time"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// AgingBucket classifies unpaid invoices by days overdue
type AgingBucket string

const (
	AgingBucketCurrent AgingBucket = "CURRENT" // not yet due
	AgingBucket30      AgingBucket = "0-30"
	AgingBucket60      AgingBucket = "31-60"
	AgingBucket90      AgingBucket = "61-90"
	AgingBucketOver90  AgingBucket = "90+"
)

// AgingLine is one row of the receivables aging report
type AgingLine struct {
	InvoiceID        uuid.UUID       `json:"invoice_id"`
	InvoiceNumber    string          `json:"invoice_number"`
	CustomerName     string          `json:"customer_name"`
	RemainingBalance decimal.Decimal `json:"remaining_balance"`
	DaysOverdue      int             `json:"days_overdue"`
	Bucket           AgingBucket     `json:"bucket"`
}

// AgingReport is the receivables aging report for a store
type AgingReport struct {
	AsOf         time.Time                       `json:"as_of"`
	Lines        []AgingLine                     `json:"lines"`
	BucketTotals map[AgingBucket]decimal.Decimal `json:"bucket_totals"`
	Total        decimal.Decimal                 `json:"total"`
}

// ReceivablesService reports on money still owed across open invoices.
// Balances are derived from the ledger in bulk; nothing here is stored.
type ReceivablesService struct {
	invoices rental.InvoiceRepository
	payments rental.PaymentEventRepository
	logger   *zap.Logger
}

// NewReceivablesService creates a new ReceivablesService
func NewReceivablesService(
	invoices rental.InvoiceRepository,
	payments rental.PaymentEventRepository,
	logger *zap.Logger,
) *ReceivablesService {
	return &ReceivablesService{invoices: invoices, payments: payments, logger: logger}
}

// AgingReport buckets every open invoice with an outstanding balance by how
// many days it is overdue. An invoice is due on its return date; invoices
// without a rental window are never overdue.
func (s *ReceivablesService) AgingReport(ctx context.Context, storeID uuid.UUID, asOf time.Time) (*AgingReport, error) {
	invoices, err := s.invoices.FindOpen(ctx, storeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load open invoices: %w", err)
	}

	ids := make([]uuid.UUID, len(invoices))
	for i := range invoices {
		ids[i] = invoices[i].ID
	}
	totals, err := s.payments.TotalsByInvoice(ctx, storeID, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate ledger totals: %w", err)
	}

	report := &AgingReport{
		AsOf:         asOf,
		Lines:        make([]AgingLine, 0, len(invoices)),
		BucketTotals: make(map[AgingBucket]decimal.Decimal),
		Total:        decimal.Zero,
	}

	for i := range invoices {
		inv := &invoices[i]
		t := totals[inv.ID]

		totalPaid := inv.DepositAmount.Add(t.Payments).Sub(t.Refunds)
		remaining := inv.TotalPrice.Add(t.Penalties).Sub(totalPaid)
		if remaining.LessThanOrEqual(decimal.Zero) {
			continue
		}

		days := daysOverdue(inv, asOf)
		line := AgingLine{
			InvoiceID:        inv.ID,
			InvoiceNumber:    inv.InvoiceNumber,
			CustomerName:     inv.CustomerName,
			RemainingBalance: remaining,
			DaysOverdue:      days,
			Bucket:           bucketFor(days, inv.ReturnDate != nil),
		}
		report.Lines = append(report.Lines, line)
		report.BucketTotals[line.Bucket] = report.BucketTotals[line.Bucket].Add(remaining)
		report.Total = report.Total.Add(remaining)
	}

	return report, nil
}

func daysOverdue(inv *rental.Invoice, asOf time.Time) int {
	if inv.ReturnDate == nil || !asOf.After(*inv.ReturnDate) {
		return 0
	}
	return int(asOf.Sub(*inv.ReturnDate).Hours() / 24)
}

func bucketFor(days int, hasDueDate bool) AgingBucket {
	switch {
	case !hasDueDate || days <= 0:
		return AgingBucketCurrent
	case days <= 30:
		return AgingBucket30
	case days <= 60:
		return AgingBucket60
	case days <= 90:
		return AgingBucket90
	default:
		return AgingBucketOver90
	}
}
