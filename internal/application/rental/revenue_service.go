package rental

import (
	"context"
	"fmt"
	"time"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// RevenueCache caches finished days of the revenue report. Only days fully
// in the past are cached; backdated writes and reversals invalidate the
// affected day so the next read recomputes it.
type RevenueCache interface {
	GetDailyRevenue(ctx context.Context, storeID uuid.UUID, day time.Time) (decimal.Decimal, bool, error)
	SetDailyRevenue(ctx context.Context, storeID uuid.UUID, day time.Time, amount decimal.Decimal) error
	InvalidateDailyRevenue(ctx context.Context, storeID uuid.UUID, day time.Time) error
}

// RevenueService derives cash-based revenue reports. Revenue combines two
// sources that were historically tracked apart and must never be
// double-counted: ledger payment events (dated by their business date) and
// legacy deposit amounts (counted once, at invoice creation). Storage errors
// propagate - reports never silently degrade to zeroed figures.
type RevenueService struct {
	invoices rental.InvoiceRepository
	payments rental.PaymentEventRepository
	cache    RevenueCache
	logger   *zap.Logger
}

// NewRevenueService creates a new RevenueService
func NewRevenueService(
	invoices rental.InvoiceRepository,
	payments rental.PaymentEventRepository,
	cache RevenueCache,
	logger *zap.Logger,
) *RevenueService {
	return &RevenueService{
		invoices: invoices,
		payments: payments,
		cache:    cache,
		logger:   logger,
	}
}

// CalculateRevenueForPeriod returns cash received in [from, to], inclusive
// of both dates.
func (s *RevenueService) CalculateRevenueForPeriod(ctx context.Context, storeID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	if to.Before(from) {
		return decimal.Zero, shared.NewValidationError("INVALID_PERIOD", "Period end cannot precede period start")
	}
	start := startOfDay(from)
	end := startOfDay(to).AddDate(0, 0, 1)
	return s.revenueBetween(ctx, storeID, start, end)
}

// CalculateDailyRevenue returns cash received on a single date. Days fully
// in the past are served from the report cache when available.
func (s *RevenueService) CalculateDailyRevenue(ctx context.Context, storeID uuid.UUID, date time.Time) (decimal.Decimal, error) {
	day := startOfDay(date)
	closedDay := day.Before(startOfDay(time.Now()))

	if closedDay && s.cache != nil {
		if amount, ok, err := s.cache.GetDailyRevenue(ctx, storeID, day); err != nil {
			// A cache failure must not take down reporting; fall through
			// to the live computation.
			s.logger.Warn("revenue cache read failed",
				zap.String("store_id", storeID.String()),
				zap.Time("day", day),
				zap.Error(err),
			)
		} else if ok {
			return amount, nil
		}
	}

	amount, err := s.revenueBetween(ctx, storeID, day, day.AddDate(0, 0, 1))
	if err != nil {
		return decimal.Zero, err
	}

	if closedDay && s.cache != nil {
		if err := s.cache.SetDailyRevenue(ctx, storeID, day, amount); err != nil {
			s.logger.Warn("revenue cache write failed",
				zap.String("store_id", storeID.String()),
				zap.Time("day", day),
				zap.Error(err),
			)
		}
	}
	return amount, nil
}

// revenueBetween computes the dual-source sum over the half-open range
// [start, end).
func (s *RevenueService) revenueBetween(ctx context.Context, storeID uuid.UUID, start, end time.Time) (decimal.Decimal, error) {
	paid, err := s.payments.SumActiveByKindBetween(ctx, storeID, rental.PaymentKindPayment, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ledger payments: %w", err)
	}
	deposits, err := s.invoices.SumDepositsCreatedBetween(ctx, storeID, start, end)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum legacy deposits: %w", err)
	}
	return paid.Add(deposits), nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
