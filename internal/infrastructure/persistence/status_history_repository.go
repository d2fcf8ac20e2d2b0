package persistence

import (
	"context"
	"strings"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStatusHistoryRepository implements rental.StatusHistoryRepository using GORM
type GormStatusHistoryRepository struct {
	db *gorm.DB
}

// NewGormStatusHistoryRepository creates a new GormStatusHistoryRepository
func NewGormStatusHistoryRepository(db *gorm.DB) *GormStatusHistoryRepository {
	return &GormStatusHistoryRepository{db: db}
}

// Create appends an audit trail entry
func (r *GormStatusHistoryRepository) Create(ctx context.Context, entry *rental.StatusHistoryEntry) error {
	model := models.StatusHistoryModelFromDomain(entry)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByInvoice finds the audit trail of an invoice with pagination
func (r *GormStatusHistoryRepository) FindByInvoice(ctx context.Context, storeID, invoiceID uuid.UUID, filter shared.Filter) ([]rental.StatusHistoryEntry, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.StatusHistoryModel{}).
		Where("store_id = ? AND invoice_id = ?", storeID, invoiceID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

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
		query = query.Order("created_at ASC")
	}

	var entryModels []models.StatusHistoryModel
	if err := query.Find(&entryModels).Error; err != nil {
		return nil, 0, err
	}
	entries := make([]rental.StatusHistoryEntry, len(entryModels))
	for i, model := range entryModels {
		entries[i] = *model.ToDomain()
	}
	return entries, total, nil
}

// Ensure GormStatusHistoryRepository implements rental.StatusHistoryRepository
var _ rental.StatusHistoryRepository = (*GormStatusHistoryRepository)(nil)
