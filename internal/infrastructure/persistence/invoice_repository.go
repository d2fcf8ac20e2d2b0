package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormInvoiceRepository implements rental.InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByID finds an invoice by ID for a store, including soft-deleted ones.
// Canceled invoices stay readable for history and summaries.
func (r *GormInvoiceRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*rental.Invoice, error) {
	var model models.InvoiceModel
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

// FindByIDForUpdate loads an invoice with a row-level lock. Must run inside a
// transaction; serializes concurrent ledger writes per invoice.
func (r *GormInvoiceRepository) FindByIDForUpdate(ctx context.Context, storeID, id uuid.UUID) (*rental.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("store_id = ? AND id = ?", storeID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds invoices for a store with filtering and pagination
func (r *GormInvoiceRepository) FindAll(ctx context.Context, storeID uuid.UUID, filter rental.InvoiceFilter) ([]rental.Invoice, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("store_id = ? AND deleted_at IS NULL", storeID)
	query = r.applyInvoiceFilterWithoutPagination(query, filter)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = r.applyPagination(query, filter)

	var invoiceModels []models.InvoiceModel
	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, 0, err
	}
	invoices := make([]rental.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, total, nil
}

// Save creates or updates an invoice
func (r *GormInvoiceRepository) Save(ctx context.Context, invoice *rental.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithLock saves with optimistic locking on the aggregate version
func (r *GormInvoiceRepository) SaveWithLock(ctx context.Context, invoice *rental.Invoice) error {
	model := models.InvoiceModelFromDomain(invoice)
	result := r.db.WithContext(ctx).
		Model(model).
		Where("id = ? AND version = ?", invoice.ID, invoice.Version-1).
		Updates(model)

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// FindBookedWindows returns the committed rental windows for a product.
// Canceled and soft-deleted invoices hold no commitment, and invoices without
// dates never block anything.
func (r *GormInvoiceRepository) FindBookedWindows(ctx context.Context, storeID, productID uuid.UUID, excludeInvoiceID *uuid.UUID) ([]rental.BookingWindow, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).
		Where("store_id = ? AND product_id = ?", storeID, productID).
		Where("deleted_at IS NULL AND status <> ?", rental.InvoiceStatusCanceled).
		Where("collection_date IS NOT NULL AND return_date IS NOT NULL")
	if excludeInvoiceID != nil {
		query = query.Where("id <> ?", *excludeInvoiceID)
	}

	var invoiceModels []models.InvoiceModel
	if err := query.Order("collection_date ASC").Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	windows := make([]rental.BookingWindow, 0, len(invoiceModels))
	for _, model := range invoiceModels {
		window, err := valueobject.NewDateRange(*model.CollectionDate, *model.ReturnDate)
		if err != nil {
			continue
		}
		windows = append(windows, rental.BookingWindow{
			InvoiceID:     model.ID,
			InvoiceNumber: model.InvoiceNumber,
			ProductID:     *model.ProductID,
			CustomerName:  model.CustomerName,
			Window:        window,
			Status:        model.Status,
		})
	}
	return windows, nil
}

// SumDepositsCreatedBetween sums deposits on invoices created in [from, to)
func (r *GormInvoiceRepository) SumDepositsCreatedBetween(ctx context.Context, storeID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	var result struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Select("COALESCE(SUM(deposit_amount), 0) as total").
		Where("store_id = ? AND deleted_at IS NULL AND created_at >= ? AND created_at < ?", storeID, from, to).
		Scan(&result).Error; err != nil {
		return decimal.Zero, err
	}
	return result.Total, nil
}

// FindOpen finds non-terminal, non-deleted invoices for a store
func (r *GormInvoiceRepository) FindOpen(ctx context.Context, storeID uuid.UUID) ([]rental.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("store_id = ? AND deleted_at IS NULL AND status NOT IN ?", storeID,
			[]rental.InvoiceStatus{rental.InvoiceStatusClosed, rental.InvoiceStatusCanceled}).
		Order("created_at ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}
	invoices := make([]rental.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// applyInvoiceFilterWithoutPagination applies filter options without pagination
func (r *GormInvoiceRepository) applyInvoiceFilterWithoutPagination(query *gorm.DB, filter rental.InvoiceFilter) *gorm.DB {
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.FromDate != nil {
		query = query.Where("created_at >= ?", *filter.FromDate)
	}
	if filter.ToDate != nil {
		query = query.Where("created_at <= ?", *filter.ToDate)
	}
	return query
}

// applyPagination applies pagination and ordering to the query
func (r *GormInvoiceRepository) applyPagination(query *gorm.DB, filter rental.InvoiceFilter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderDir := "ASC"
		if strings.ToLower(filter.OrderDir) == "desc" {
			orderDir = "DESC"
		}
		query = query.Order(filter.OrderBy + " " + orderDir)
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// Ensure GormInvoiceRepository implements rental.InvoiceRepository
var _ rental.InvoiceRepository = (*GormInvoiceRepository)(nil)
