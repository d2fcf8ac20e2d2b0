package persistence

import (
	"context"

	"github.com/atelier/backend/internal/domain/rental"
	"gorm.io/gorm"
)

// GormTransactionManager implements rental.TransactionManager on top of a
// single GORM transaction. The repositories handed to the unit of work all
// share the transaction, so row locks taken through them hold until commit.
type GormTransactionManager struct {
	db *gorm.DB
}

// NewGormTransactionManager creates a new GormTransactionManager
func NewGormTransactionManager(db *gorm.DB) *GormTransactionManager {
	return &GormTransactionManager{db: db}
}

// WithinTransaction runs fn inside one database transaction. The transaction
// commits when fn returns nil and rolls back otherwise.
func (m *GormTransactionManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos rental.Repositories) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := rental.Repositories{
			Invoices: NewGormInvoiceRepository(tx),
			Payments: NewGormPaymentEventRepository(tx),
			History:  NewGormStatusHistoryRepository(tx),
		}
		return fn(ctx, repos)
	})
}

// Ensure GormTransactionManager implements rental.TransactionManager
var _ rental.TransactionManager = (*GormTransactionManager)(nil)
