package auth

import (
	"context"
	"testing"
	"time"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupPermissionTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.StaffPermissionModel{}))
	return db
}

func grant(t *testing.T, db *gorm.DB, storeID, staffID uuid.UUID, permission string) {
	t.Helper()
	now := time.Now()
	err := db.Create(&models.StaffPermissionModel{
		BaseModel:  models.BaseModel{ID: uuid.New(), CreatedAt: now, UpdatedAt: now},
		StoreID:    storeID,
		StaffID:    staffID,
		Permission: permission,
	}).Error
	require.NoError(t, err)
}

func TestGormPermissionChecker_HasPermission(t *testing.T) {
	db := setupPermissionTestDB(t)
	checker := NewGormPermissionChecker(db)
	ctx := context.Background()

	storeID := uuid.New()
	managerID := uuid.New()
	clerkID := uuid.New()

	grant(t, db, storeID, managerID, rental.PermissionDeletePayment)
	grant(t, db, storeID, managerID, rental.PermissionCancelInvoice)
	grant(t, db, storeID, clerkID, rental.PermissionCancelInvoice)

	t.Run("granted permission is held", func(t *testing.T) {
		held, err := checker.HasPermission(ctx, storeID, managerID, rental.PermissionDeletePayment)
		require.NoError(t, err)
		assert.True(t, held)
	})

	t.Run("missing grant means not held", func(t *testing.T) {
		held, err := checker.HasPermission(ctx, storeID, clerkID, rental.PermissionDeletePayment)
		require.NoError(t, err)
		assert.False(t, held)
	})

	t.Run("grants do not leak across stores", func(t *testing.T) {
		held, err := checker.HasPermission(ctx, uuid.New(), managerID, rental.PermissionDeletePayment)
		require.NoError(t, err)
		assert.False(t, held)
	})

	t.Run("unknown actor holds nothing", func(t *testing.T) {
		held, err := checker.HasPermission(ctx, storeID, uuid.New(), rental.PermissionCancelInvoice)
		require.NoError(t, err)
		assert.False(t, held)
	})
}
