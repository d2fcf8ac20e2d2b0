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

type revenueFixture struct {
	invoices *MockInvoiceRepository
	payments *MockPaymentEventRepository
	cache    *MockRevenueCache
	service  *RevenueService
}

func newRevenueFixture() *revenueFixture {
	invoices := new(MockInvoiceRepository)
	payments := new(MockPaymentEventRepository)
	cache := new(MockRevenueCache)
	return &revenueFixture{
		invoices: invoices,
		payments: payments,
		cache:    cache,
		service:  NewRevenueService(invoices, payments, cache, zap.NewNop()),
	}
}

func TestRevenueService_CalculateRevenueForPeriod(t *testing.T) {
	ctx := context.Background()

	t.Run("sums ledger payments and legacy deposits", func(t *testing.T) {
		f := newRevenueFixture()
		storeID := uuid.New()
		from := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, 6, 30, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

		f.payments.On("SumActiveByKindBetween", mock.Anything, storeID, rental.PaymentKindPayment, from, end).
			Return(decimal.NewFromInt(1200), nil)
		f.invoices.On("SumDepositsCreatedBetween", mock.Anything, storeID, from, end).
			Return(decimal.NewFromInt(300), nil)

		total, err := f.service.CalculateRevenueForPeriod(ctx, storeID, from, to)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(1500)))
	})

	t.Run("period boundaries are normalized to whole days", func(t *testing.T) {
		f := newRevenueFixture()
		storeID := uuid.New()
		from := time.Date(2026, 6, 1, 13, 45, 0, 0, time.UTC)
		to := time.Date(2026, 6, 1, 18, 0, 0, 0, time.UTC)
		dayStart := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
		dayEnd := time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC)

		f.payments.On("SumActiveByKindBetween", mock.Anything, storeID, rental.PaymentKindPayment, dayStart, dayEnd).
			Return(decimal.NewFromInt(80), nil)
		f.invoices.On("SumDepositsCreatedBetween", mock.Anything, storeID, dayStart, dayEnd).
			Return(decimal.Zero, nil)

		total, err := f.service.CalculateRevenueForPeriod(ctx, storeID, from, to)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(80)))
		f.payments.AssertExpectations(t)
	})

	t.Run("rejects inverted periods", func(t *testing.T) {
		f := newRevenueFixture()
		from := time.Date(2026, 6, 10, 0, 0, 0, 0, time.UTC)
		_, err := f.service.CalculateRevenueForPeriod(ctx, uuid.New(), from, from.AddDate(0, 0, -1))
		assertCode(t, err, "INVALID_PERIOD")
	})

	t.Run("propagates storage failure", func(t *testing.T) {
		f := newRevenueFixture()
		storeID := uuid.New()
		f.payments.On("SumActiveByKindBetween", mock.Anything, storeID, rental.PaymentKindPayment, mock.Anything, mock.Anything).
			Return(decimal.Zero, errors.New("connection reset"))

		_, err := f.service.CalculateRevenueForPeriod(ctx, storeID,
			time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC))
		assert.Error(t, err)
	})
}

func TestRevenueService_CalculateDailyRevenue(t *testing.T) {
	ctx := context.Background()
	pastDay := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	pastEnd := pastDay.AddDate(0, 0, 1)

	t.Run("past day served from cache", func(t *testing.T) {
		f := newRevenueFixture()
		storeID := uuid.New()
		f.cache.On("GetDailyRevenue", mock.Anything, storeID, pastDay).
			Return(decimal.NewFromInt(420), true, nil)

		total, err := f.service.CalculateDailyRevenue(ctx, storeID, pastDay)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(420)))
		f.payments.AssertNotCalled(t, "SumActiveByKindBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache miss computes and backfills", func(t *testing.T) {
		f := newRevenueFixture()
		storeID := uuid.New()

		f.cache.On("GetDailyRevenue", mock.Anything, storeID, pastDay).
			Return(decimal.Zero, false, nil)
		f.payments.On("SumActiveByKindBetween", mock.Anything, storeID, rental.PaymentKindPayment, pastDay, pastEnd).
			Return(decimal.NewFromInt(300), nil)
		f.invoices.On("SumDepositsCreatedBetween", mock.Anything, storeID, pastDay, pastEnd).
			Return(decimal.NewFromInt(120), nil)
		f.cache.On("SetDailyRevenue", mock.Anything, storeID, pastDay, decimal.NewFromInt(420)).
			Return(nil)

		total, err := f.service.CalculateDailyRevenue(ctx, storeID, pastDay)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(420)))
		f.cache.AssertExpectations(t)
	})

	t.Run("cache read failure falls through to live figures", func(t *testing.T) {
		f := newRevenueFixture()
		storeID := uuid.New()

		f.cache.On("GetDailyRevenue", mock.Anything, storeID, pastDay).
			Return(decimal.Zero, false, errors.New("redis down"))
		f.payments.On("SumActiveByKindBetween", mock.Anything, storeID, rental.PaymentKindPayment, pastDay, pastEnd).
			Return(decimal.NewFromInt(300), nil)
		f.invoices.On("SumDepositsCreatedBetween", mock.Anything, storeID, pastDay, pastEnd).
			Return(decimal.Zero, nil)
		f.cache.On("SetDailyRevenue", mock.Anything, storeID, pastDay, decimal.NewFromInt(300)).
			Return(errors.New("redis down"))

		total, err := f.service.CalculateDailyRevenue(ctx, storeID, pastDay)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(300)))
	})

	t.Run("today is never cached", func(t *testing.T) {
		f := newRevenueFixture()
		storeID := uuid.New()
		now := time.Now().UTC()
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

		f.payments.On("SumActiveByKindBetween", mock.Anything, storeID, rental.PaymentKindPayment, today, today.AddDate(0, 0, 1)).
			Return(decimal.NewFromInt(55), nil)
		f.invoices.On("SumDepositsCreatedBetween", mock.Anything, storeID, today, today.AddDate(0, 0, 1)).
			Return(decimal.Zero, nil)

		total, err := f.service.CalculateDailyRevenue(ctx, storeID, today)
		require.NoError(t, err)
		assert.True(t, total.Equal(decimal.NewFromInt(55)))
		f.cache.AssertNotCalled(t, "GetDailyRevenue", mock.Anything, mock.Anything, mock.Anything)
		f.cache.AssertNotCalled(t, "SetDailyRevenue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("storage failure propagates instead of zeroing the report", func(t *testing.T) {
		f := newRevenueFixture()
		storeID := uuid.New()

		f.cache.On("GetDailyRevenue", mock.Anything, storeID, pastDay).
			Return(decimal.Zero, false, nil)
		f.payments.On("SumActiveByKindBetween", mock.Anything, storeID, rental.PaymentKindPayment, pastDay, pastEnd).
			Return(decimal.Zero, errors.New("connection reset"))

		_, err := f.service.CalculateDailyRevenue(ctx, storeID, pastDay)
		assert.Error(t, err)
		f.cache.AssertNotCalled(t, "SetDailyRevenue", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
