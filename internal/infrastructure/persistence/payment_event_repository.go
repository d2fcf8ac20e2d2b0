package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentEventRepository implements rental.PaymentEventRepository using GORM
type GormPaymentEventRepository struct {
	db *gorm.DB
}

// NewGormPaymentEventRepository creates a new GormPaymentEventRepository
func NewGormPaymentEventRepository(db *gorm.DB) *GormPaymentEventRepository {
	return &GormPaymentEventRepository{db: db}
}

// Create appends a new ledger entry
func (r *GormPaymentEventRepository) Create(ctx context.Context, event *rental.PaymentEvent) error {
	model := models.PaymentEventModelFromDomain(event)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID finds a ledger entry by ID for a store
func (r *GormPaymentEventRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*rental.PaymentEvent, error) {
	var model models.PaymentEventModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByInvoice finds all ledger entries of an invoice, reversed ones
// included, in the order they were recorded.
func (r *GormPaymentEventRepository) FindByInvoice(ctx context.Context, storeID, invoiceID uuid.UUID) ([]rental.PaymentEvent, error) {
	var eventModels []models.PaymentEventModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND invoice_id = ?", storeID, invoiceID).
		Order("created_at ASC").
		Find(&eventModels).Error; err != nil {
		return nil, err
	}
	events := make([]rental.PaymentEvent, len(eventModels))
	for i, model := range eventModels {
		events[i] = *model.ToDomain()
	}
	return events, nil
}

// Update persists reversal metadata on an existing entry
func (r *GormPaymentEventRepository) Update(ctx context.Context, event *rental.PaymentEvent) error {
	model := models.PaymentEventModelFromDomain(event)
	return r.db.WithContext(ctx).Save(model).Error
}

// SumActiveByKindBetween sums active entries of one kind whose business date
// falls in [from, to)
func (r *GormPaymentEventRepository) SumActiveByKindBetween(ctx context.Context, storeID uuid.UUID, kind rental.PaymentKind, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentEventModel{}).
		Select("COALESCE(SUM(amount), 0) as total").
		Where("store_id = ? AND kind = ? AND status = ? AND occurred_on >= ? AND occurred_on < ?",
			storeID, kind, rental.PaymentEventStatusActive, from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// TotalsByInvoice aggregates active entries per invoice by kind
func (r *GormPaymentEventRepository) TotalsByInvoice(ctx context.Context, storeID uuid.UUID, invoiceIDs []uuid.UUID) (map[uuid.UUID]rental.LedgerTotals, error) {
	totals := make(map[uuid.UUID]rental.LedgerTotals, len(invoiceIDs))
	if len(invoiceIDs) == 0 {
		return totals, nil
	}

	var rows []struct {
		InvoiceID uuid.UUID
		Kind      rental.PaymentKind
		Total     decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentEventModel{}).
		Select("invoice_id, kind, COALESCE(SUM(amount), 0) as total").
		Where("store_id = ? AND status = ? AND invoice_id IN ?",
			storeID, rental.PaymentEventStatusActive, invoiceIDs).
		Group("invoice_id, kind").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		t := totals[row.InvoiceID]
		switch row.Kind {
		case rental.PaymentKindPayment:
			t.Payments = row.Total
		case rental.PaymentKindRefund:
			t.Refunds = row.Total
		case rental.PaymentKindPenalty:
			t.Penalties = row.Total
		}
		totals[row.InvoiceID] = t
	}
	return totals, nil
}

// Ensure GormPaymentEventRepository implements rental.PaymentEventRepository
var _ rental.PaymentEventRepository = (*GormPaymentEventRepository)(nil)
