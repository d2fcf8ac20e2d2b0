package persistence

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// newMockInvoiceRepo creates a repository over a mocked postgres connection.
// The SQLite-backed tests cannot see postgres-only SQL such as row locks, so
// those paths are asserted against the generated statements here.
func newMockInvoiceRepo(t *testing.T) (*GormInvoiceRepository, sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormInvoiceRepository(gormDB), mock, mockDB
}

func mockLockedInvoice(t *testing.T, storeID uuid.UUID) *rental.Invoice {
	t.Helper()
	inv, err := rental.NewInvoice(storeID, "INV-9001", uuid.New(), "Dalia Rahhal",
		valueobject.NewMoneyUSDFromFloat(500), valueobject.NewMoneyUSDFromFloat(100))
	require.NoError(t, err)
	inv.ClearDomainEvents()
	return inv
}

func TestGormInvoiceRepository_FindByIDForUpdate_SQL(t *testing.T) {
	t.Run("locks the row for the transaction", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepo(t)
		defer mockDB.Close()

		storeID := uuid.New()
		invoiceID := uuid.New()

		rows := sqlmock.NewRows([]string{"id", "store_id", "invoice_number", "customer_id", "customer_name", "total_price", "deposit_amount", "status", "version"}).
			AddRow(invoiceID.String(), storeID.String(), "INV-9001", uuid.New().String(), "Dalia Rahhal", "500", "100", "RESERVED", 1)
		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE .* FOR UPDATE`).
			WillReturnRows(rows)

		found, err := repo.FindByIDForUpdate(context.Background(), storeID, invoiceID)

		require.NoError(t, err)
		assert.Equal(t, invoiceID, found.ID)
		assert.Equal(t, rental.InvoiceStatusReserved, found.Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps missing rows to not found", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepo(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "invoices" WHERE .* FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := repo.FindByIDForUpdate(context.Background(), uuid.New(), uuid.New())

		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormInvoiceRepository_SaveWithLock_SQL(t *testing.T) {
	t.Run("guards the update with the previous version", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepo(t)
		defer mockDB.Close()

		inv := mockLockedInvoice(t, uuid.New())
		require.NoError(t, inv.Deliver())

		mock.ExpectExec(`UPDATE "invoices" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), inv)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("reports a conflict when no row matches the version", func(t *testing.T) {
		repo, mock, mockDB := newMockInvoiceRepo(t)
		defer mockDB.Close()

		inv := mockLockedInvoice(t, uuid.New())
		require.NoError(t, inv.Deliver())

		mock.ExpectExec(`UPDATE "invoices" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), inv)

		assert.Equal(t, shared.ErrConcurrencyConflict, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
