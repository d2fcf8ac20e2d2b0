package rental

import (
	"context"
	"time"

	"github.com/atelier/backend/internal/domain/rental"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockInvoiceRepository is a mock implementation of rental.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*rental.Invoice, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByIDForUpdate(ctx context.Context, storeID, id uuid.UUID) (*rental.Invoice, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAll(ctx context.Context, storeID uuid.UUID, filter rental.InvoiceFilter) ([]rental.Invoice, int64, error) {
	args := m.Called(ctx, storeID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]rental.Invoice), args.Get(1).(int64), args.Error(2)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, invoice *rental.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) SaveWithLock(ctx context.Context, invoice *rental.Invoice) error {
	args := m.Called(ctx, invoice)
	return args.Error(0)
}

func (m *MockInvoiceRepository) FindBookedWindows(ctx context.Context, storeID, productID uuid.UUID, excludeInvoiceID *uuid.UUID) ([]rental.BookingWindow, error) {
	args := m.Called(ctx, storeID, productID, excludeInvoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.BookingWindow), args.Error(1)
}

func (m *MockInvoiceRepository) SumDepositsCreatedBetween(ctx context.Context, storeID uuid.UUID, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, storeID, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockInvoiceRepository) FindOpen(ctx context.Context, storeID uuid.UUID) ([]rental.Invoice, error) {
	args := m.Called(ctx, storeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.Invoice), args.Error(1)
}

// MockPaymentEventRepository is a mock implementation of rental.PaymentEventRepository
type MockPaymentEventRepository struct {
	mock.Mock
}

func (m *MockPaymentEventRepository) Create(ctx context.Context, event *rental.PaymentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPaymentEventRepository) FindByID(ctx context.Context, storeID, id uuid.UUID) (*rental.PaymentEvent, error) {
	args := m.Called(ctx, storeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rental.PaymentEvent), args.Error(1)
}

func (m *MockPaymentEventRepository) FindByInvoice(ctx context.Context, storeID, invoiceID uuid.UUID) ([]rental.PaymentEvent, error) {
	args := m.Called(ctx, storeID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]rental.PaymentEvent), args.Error(1)
}

func (m *MockPaymentEventRepository) Update(ctx context.Context, event *rental.PaymentEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockPaymentEventRepository) SumActiveByKindBetween(ctx context.Context, storeID uuid.UUID, kind rental.PaymentKind, from, to time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, storeID, kind, from, to)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockPaymentEventRepository) TotalsByInvoice(ctx context.Context, storeID uuid.UUID, invoiceIDs []uuid.UUID) (map[uuid.UUID]rental.LedgerTotals, error) {
	args := m.Called(ctx, storeID, invoiceIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]rental.LedgerTotals), args.Error(1)
}

// MockStatusHistoryRepository is a mock implementation of rental.StatusHistoryRepository
type MockStatusHistoryRepository struct {
	mock.Mock
}

func (m *MockStatusHistoryRepository) Create(ctx context.Context, entry *rental.StatusHistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockStatusHistoryRepository) FindByInvoice(ctx context.Context, storeID, invoiceID uuid.UUID, filter shared.Filter) ([]rental.StatusHistoryEntry, int64, error) {
	args := m.Called(ctx, storeID, invoiceID, filter)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]rental.StatusHistoryEntry), args.Get(1).(int64), args.Error(2)
}

// MockPermissionChecker is a mock implementation of rental.PermissionChecker
type MockPermissionChecker struct {
	mock.Mock
}

func (m *MockPermissionChecker) HasPermission(ctx context.Context, storeID, actorID uuid.UUID, permission string) (bool, error) {
	args := m.Called(ctx, storeID, actorID, permission)
	return args.Bool(0), args.Error(1)
}

// MockRevenueCache is a mock implementation of RevenueCache
type MockRevenueCache struct {
	mock.Mock
}

func (m *MockRevenueCache) GetDailyRevenue(ctx context.Context, storeID uuid.UUID, day time.Time) (decimal.Decimal, bool, error) {
	args := m.Called(ctx, storeID, day)
	return args.Get(0).(decimal.Decimal), args.Bool(1), args.Error(2)
}

func (m *MockRevenueCache) SetDailyRevenue(ctx context.Context, storeID uuid.UUID, day time.Time, amount decimal.Decimal) error {
	args := m.Called(ctx, storeID, day, amount)
	return args.Error(0)
}

func (m *MockRevenueCache) InvalidateDailyRevenue(ctx context.Context, storeID uuid.UUID, day time.Time) error {
	args := m.Called(ctx, storeID, day)
	return args.Error(0)
}

// fakeTxManager runs the unit of work directly against the given repositories,
// standing in for a real database transaction.
type fakeTxManager struct {
	repos rental.Repositories
	// calls counts how many units of work were started
	calls int
}

func (f *fakeTxManager) WithinTransaction(ctx context.Context, fn func(ctx context.Context, repos rental.Repositories) error) error {
	f.calls++
	return fn(ctx, f.repos)
}
