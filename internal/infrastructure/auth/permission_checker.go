package auth

import (
	"context"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPermissionChecker answers permission checks from the staff_permissions
// table. A grant row present means the permission is held; there is no
// deny semantics.
type GormPermissionChecker struct {
	db *gorm.DB
}

// NewGormPermissionChecker creates a new GormPermissionChecker
func NewGormPermissionChecker(db *gorm.DB) *GormPermissionChecker {
	return &GormPermissionChecker{db: db}
}

// HasPermission reports whether the actor holds the permission in the store
func (c *GormPermissionChecker) HasPermission(ctx context.Context, storeID, actorID uuid.UUID, permission string) (bool, error) {
	var count int64
	if err := c.db.WithContext(ctx).
		Model(&models.StaffPermissionModel{}).
		Where("store_id = ? AND staff_id = ? AND permission = ?", storeID, actorID, permission).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Ensure GormPermissionChecker implements rental.PermissionChecker
var _ rental.PermissionChecker = (*GormPermissionChecker)(nil)
