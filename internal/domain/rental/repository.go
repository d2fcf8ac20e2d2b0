package rental

import (
	"context"
	"time"

	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceFilter represents filter options for invoice queries
type InvoiceFilter struct {
	shared.Filter
	CustomerID *uuid.UUID
	ProductID  *uuid.UUID
	Status     *InvoiceStatus
	FromDate   *time.Time
	ToDate     *time.Time
}

// InvoiceRepository persists the Invoice aggregate
type InvoiceRepository interface {
	// FindByID loads an invoice including soft-deleted ones; history and
	// summaries of canceled invoices remain readable.
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*Invoice, error)
	// FindByIDForUpdate loads an invoice with a row-level lock. Only
	// meaningful inside a transaction; serializes check-then-write sequences
	// per invoice.
	FindByIDForUpdate(ctx context.Context, storeID, id uuid.UUID) (*Invoice, error)
	FindAll(ctx context.Context, storeID uuid.UUID, filter InvoiceFilter) ([]Invoice, int64, error)
	Save(ctx context.Context, invoice *Invoice) error
	// SaveWithLock saves guarded by the aggregate version; returns
	// shared.ErrConcurrencyConflict when another writer got there first.
	SaveWithLock(ctx context.Context, invoice *Invoice) error
	// FindBookedWindows returns the active (non-canceled, non-deleted)
	// rental windows committed for a product, optionally excluding the
	// invoice currently being edited.
	FindBookedWindows(ctx context.Context, storeID, productID uuid.UUID, excludeInvoiceID *uuid.UUID) ([]BookingWindow, error)
	// SumDepositsCreatedBetween sums legacy deposit amounts on invoices
	// created in the half-open range [from, to). Deposits predate the
	// ledger and are counted once, at invoice creation.
	SumDepositsCreatedBetween(ctx context.Context, storeID uuid.UUID, from, to time.Time) (decimal.Decimal, error)
	// FindOpen returns non-terminal, non-deleted invoices for receivables
	// reporting.
	FindOpen(ctx context.Context, storeID uuid.UUID) ([]Invoice, error)
}

// PaymentEventRepository persists ledger entries. The ledger is append-only:
// entries are created and reversed, never removed.
type PaymentEventRepository interface {
	Create(ctx context.Context, event *PaymentEvent) error
	FindByID(ctx context.Context, storeID, id uuid.UUID) (*PaymentEvent, error)
	FindByInvoice(ctx context.Context, storeID, invoiceID uuid.UUID) ([]PaymentEvent, error)
	// Update persists reversal metadata on an existing entry
	Update(ctx context.Context, event *PaymentEvent) error
	// SumActiveByKindBetween sums active entries of one kind whose business
	// date falls in the half-open range [from, to).
	SumActiveByKindBetween(ctx context.Context, storeID uuid.UUID, kind PaymentKind, from, to time.Time) (decimal.Decimal, error)
	// TotalsByInvoice aggregates active entries per invoice for bulk
	// summary derivation in reports.
	TotalsByInvoice(ctx context.Context, storeID uuid.UUID, invoiceIDs []uuid.UUID) (map[uuid.UUID]LedgerTotals, error)
}

// LedgerTotals aggregates the active ledger entries of one invoice by kind
type LedgerTotals struct {
	Payments  decimal.Decimal
	Refunds   decimal.Decimal
	Penalties decimal.Decimal
}

// StatusHistoryRepository persists the transition audit trail
type StatusHistoryRepository interface {
	Create(ctx context.Context, entry *StatusHistoryEntry) error
	FindByInvoice(ctx context.Context, storeID, invoiceID uuid.UUID, filter shared.Filter) ([]StatusHistoryEntry, int64, error)
}

// Repositories bundles the transaction-scoped repositories handed to a unit
// of work by the TransactionManager.
type Repositories struct {
	Invoices InvoiceRepository
	Payments PaymentEventRepository
	History  StatusHistoryRepository
}

// TransactionManager runs a function within a single storage transaction.
// Everything done through the provided repositories commits or rolls back
// together; a failure partway leaves no observable partial state.
type TransactionManager interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
