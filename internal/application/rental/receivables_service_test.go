package rental

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type receivablesFixture struct {
	invoices *MockInvoiceRepository
	payments *MockPaymentEventRepository
	service  *ReceivablesService
}

func newReceivablesFixture() *receivablesFixture {
	invoices := new(MockInvoiceRepository)
	payments := new(MockPaymentEventRepository)
	return &receivablesFixture{
		invoices: invoices,
		payments: payments,
		service:  NewReceivablesService(invoices, payments, zap.NewNop()),
	}
}

// openInvoice builds a reserved invoice whose return date lies the given
// number of days before asOf. days < 0 leaves the invoice without a window.
func openInvoice(t *testing.T, asOf time.Time, overdueDays int, price, deposit float64) *rental.Invoice {
	t.Helper()
	inv := newReservedInvoice(t, price, deposit)
	if overdueDays >= 0 {
		due := asOf.AddDate(0, 0, -overdueDays)
		inv.ReturnDate = &due
	}
	return inv
}

func TestReceivablesService_AgingReport(t *testing.T) {
	ctx := context.Background()
	asOf := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	t.Run("buckets open invoices by days overdue", func(t *testing.T) {
		f := newReceivablesFixture()
		storeID := uuid.New()

		invoices := []rental.Invoice{
			*openInvoice(t, asOf, -1, 200, 0), // no window, CURRENT
			*openInvoice(t, asOf, 0, 200, 0),  // due today, CURRENT
			*openInvoice(t, asOf, 30, 200, 0),
			*openInvoice(t, asOf, 31, 200, 0),
			*openInvoice(t, asOf, 60, 200, 0),
			*openInvoice(t, asOf, 61, 200, 0),
			*openInvoice(t, asOf, 90, 200, 0),
			*openInvoice(t, asOf, 91, 200, 0),
		}
		f.invoices.On("FindOpen", mock.Anything, storeID).Return(invoices, nil)
		f.payments.On("TotalsByInvoice", mock.Anything, storeID, mock.Anything).
			Return(map[uuid.UUID]rental.LedgerTotals{}, nil)

		report, err := f.service.AgingReport(ctx, storeID, asOf)
		require.NoError(t, err)
		require.Len(t, report.Lines, 8)

		buckets := make([]AgingBucket, len(report.Lines))
		for i, line := range report.Lines {
			buckets[i] = line.Bucket
			assert.True(t, line.RemainingBalance.Equal(decimal.NewFromInt(200)))
		}
		assert.Equal(t, []AgingBucket{
			AgingBucketCurrent, AgingBucketCurrent,
			AgingBucket30, AgingBucket60,
			AgingBucket60, AgingBucket90,
			AgingBucket90, AgingBucketOver90,
		}, buckets)

		assert.True(t, report.BucketTotals[AgingBucketCurrent].Equal(decimal.NewFromInt(400)))
		assert.True(t, report.BucketTotals[AgingBucketOver90].Equal(decimal.NewFromInt(200)))
		assert.True(t, report.Total.Equal(decimal.NewFromInt(1600)))
		assert.Equal(t, asOf, report.AsOf)
	})

	t.Run("balance derives from deposit, ledger payments, refunds and penalties", func(t *testing.T) {
		f := newReceivablesFixture()
		storeID := uuid.New()

		inv := openInvoice(t, asOf, 10, 500, 100)
		f.invoices.On("FindOpen", mock.Anything, storeID).Return([]rental.Invoice{*inv}, nil)
		f.payments.On("TotalsByInvoice", mock.Anything, storeID, []uuid.UUID{inv.ID}).
			Return(map[uuid.UUID]rental.LedgerTotals{
				inv.ID: {
					Payments:  decimal.NewFromInt(150),
					Refunds:   decimal.NewFromInt(50),
					Penalties: decimal.NewFromInt(25),
				},
			}, nil)

		report, err := f.service.AgingReport(ctx, storeID, asOf)
		require.NoError(t, err)
		require.Len(t, report.Lines, 1)

		line := report.Lines[0]
		// 500 + 25 penalties - (100 deposit + 150 payments - 50 refunds)
		assert.True(t, line.RemainingBalance.Equal(decimal.NewFromInt(325)))
		assert.Equal(t, 10, line.DaysOverdue)
		assert.Equal(t, AgingBucket30, line.Bucket)
		assert.Equal(t, inv.InvoiceNumber, line.InvoiceNumber)
		assert.Equal(t, inv.CustomerName, line.CustomerName)
	})

	t.Run("settled invoices are excluded", func(t *testing.T) {
		f := newReceivablesFixture()
		storeID := uuid.New()

		settled := openInvoice(t, asOf, 45, 300, 0)
		owing := openInvoice(t, asOf, 45, 300, 0)
		f.invoices.On("FindOpen", mock.Anything, storeID).
			Return([]rental.Invoice{*settled, *owing}, nil)
		f.payments.On("TotalsByInvoice", mock.Anything, storeID, mock.Anything).
			Return(map[uuid.UUID]rental.LedgerTotals{
				settled.ID: {Payments: decimal.NewFromInt(300)},
				owing.ID:   {Payments: decimal.NewFromInt(100)},
			}, nil)

		report, err := f.service.AgingReport(ctx, storeID, asOf)
		require.NoError(t, err)
		require.Len(t, report.Lines, 1)
		assert.Equal(t, owing.ID, report.Lines[0].InvoiceID)
		assert.True(t, report.Total.Equal(decimal.NewFromInt(200)))
	})

	t.Run("overpaid invoices are excluded", func(t *testing.T) {
		f := newReceivablesFixture()
		storeID := uuid.New()

		inv := openInvoice(t, asOf, 5, 100, 0)
		f.invoices.On("FindOpen", mock.Anything, storeID).Return([]rental.Invoice{*inv}, nil)
		f.payments.On("TotalsByInvoice", mock.Anything, storeID, mock.Anything).
			Return(map[uuid.UUID]rental.LedgerTotals{
				inv.ID: {Payments: decimal.NewFromInt(120)},
			}, nil)

		report, err := f.service.AgingReport(ctx, storeID, asOf)
		require.NoError(t, err)
		assert.Empty(t, report.Lines)
		assert.True(t, report.Total.IsZero())
	})

	t.Run("empty store yields an empty report", func(t *testing.T) {
		f := newReceivablesFixture()
		storeID := uuid.New()

		f.invoices.On("FindOpen", mock.Anything, storeID).Return([]rental.Invoice{}, nil)
		f.payments.On("TotalsByInvoice", mock.Anything, storeID, []uuid.UUID{}).
			Return(map[uuid.UUID]rental.LedgerTotals{}, nil)

		report, err := f.service.AgingReport(ctx, storeID, asOf)
		require.NoError(t, err)
		assert.Empty(t, report.Lines)
		assert.True(t, report.Total.IsZero())
	})

	t.Run("storage failure propagates", func(t *testing.T) {
		f := newReceivablesFixture()
		storeID := uuid.New()

		f.invoices.On("FindOpen", mock.Anything, storeID).
			Return([]rental.Invoice(nil), errors.New("connection reset"))

		_, err := f.service.AgingReport(ctx, storeID, asOf)
		assert.Error(t, err)
	})
}
