package models

import (
	"github.com/google/uuid"
)

// StaffPermissionModel is one permission grant for a staff member in a store.
// Grants are flat strings such as "payments:delete"; a row present means the
// permission is held.
type StaffPermissionModel struct {
	BaseModel
	StoreID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_staff_permission_grant,priority:1"`
	StaffID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_staff_permission_grant,priority:2"`
	Permission string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_staff_permission_grant,priority:3"`
}

// TableName returns the table name for GORM
func (StaffPermissionModel) TableName() string {
	return "staff_permissions"
}
