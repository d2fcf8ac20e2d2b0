package rental

import (
	"testing"
	"time"

	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEvent(t *testing.T, kind PaymentKind, amount float64) *PaymentEvent {
	t.Helper()
	actor := uuid.New()
	e, err := NewPaymentEvent(
		uuid.New(),
		uuid.New(),
		kind,
		PaymentMethodCash,
		valueobject.NewMoneyUSDFromFloat(amount),
		time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC),
		&actor,
		"",
	)
	require.NoError(t, err)
	return e
}

func TestPaymentKind_IsValid(t *testing.T) {
	assert.True(t, PaymentKindPayment.IsValid())
	assert.True(t, PaymentKindRefund.IsValid())
	assert.True(t, PaymentKindPenalty.IsValid())
	assert.False(t, PaymentKind("DISCOUNT").IsValid())
	assert.False(t, PaymentKind("").IsValid())
}

func TestPaymentMethod_IsValid(t *testing.T) {
	assert.True(t, PaymentMethodCash.IsValid())
	assert.True(t, PaymentMethodCard.IsValid())
	assert.True(t, PaymentMethodTransfer.IsValid())
	assert.True(t, PaymentMethodMixed.IsValid())
	assert.False(t, PaymentMethod("CHEQUE").IsValid())
}

func TestNewPaymentEvent(t *testing.T) {
	t.Run("creates active ledger entry", func(t *testing.T) {
		storeID := uuid.New()
		invoiceID := uuid.New()
		actor := uuid.New()
		occurred := time.Date(2026, 6, 12, 0, 0, 0, 0, time.UTC)

		e, err := NewPaymentEvent(storeID, invoiceID, PaymentKindPayment, PaymentMethodCard,
			valueobject.NewMoneyUSDFromFloat(150), occurred, &actor, "second installment")
		require.NoError(t, err)

		assert.Equal(t, storeID, e.StoreID)
		assert.Equal(t, invoiceID, e.InvoiceID)
		assert.Equal(t, PaymentKindPayment, e.Kind)
		assert.Equal(t, PaymentMethodCard, e.Method)
		assert.True(t, e.Amount.Equal(decimal.NewFromInt(150)))
		assert.Equal(t, occurred, e.OccurredOn)
		assert.Equal(t, actor, *e.CreatedBy)
		assert.Equal(t, PaymentEventStatusActive, e.Status)
		assert.True(t, e.IsActive())
		assert.False(t, e.IsReversed())
	})

	t.Run("zero occurred date defaults to now", func(t *testing.T) {
		e, err := NewPaymentEvent(uuid.New(), uuid.New(), PaymentKindPayment, PaymentMethodCash,
			valueobject.NewMoneyUSDFromFloat(10), time.Time{}, nil, "")
		require.NoError(t, err)
		assert.False(t, e.OccurredOn.IsZero())
	})

	t.Run("rejects nil invoice", func(t *testing.T) {
		_, err := NewPaymentEvent(uuid.New(), uuid.Nil, PaymentKindPayment, PaymentMethodCash,
			valueobject.NewMoneyUSDFromFloat(10), time.Time{}, nil, "")
		assertDomainCode(t, err, "INVALID_INVOICE")
	})

	t.Run("rejects invalid kind", func(t *testing.T) {
		_, err := NewPaymentEvent(uuid.New(), uuid.New(), PaymentKind("TIP"), PaymentMethodCash,
			valueobject.NewMoneyUSDFromFloat(10), time.Time{}, nil, "")
		assertDomainCode(t, err, "INVALID_KIND")
	})

	t.Run("rejects invalid method", func(t *testing.T) {
		_, err := NewPaymentEvent(uuid.New(), uuid.New(), PaymentKindPayment, PaymentMethod("IOU"),
			valueobject.NewMoneyUSDFromFloat(10), time.Time{}, nil, "")
		assertDomainCode(t, err, "INVALID_METHOD")
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		_, err := NewPaymentEvent(uuid.New(), uuid.New(), PaymentKindPayment, PaymentMethodCash,
			valueobject.ZeroUSD(), time.Time{}, nil, "")
		assertDomainCode(t, err, "INVALID_AMOUNT")

		_, err = NewPaymentEvent(uuid.New(), uuid.New(), PaymentKindRefund, PaymentMethodCash,
			valueobject.NewMoneyUSDFromFloat(-5), time.Time{}, nil, "")
		assertDomainCode(t, err, "INVALID_AMOUNT")
	})
}

func TestPaymentEvent_Reverse(t *testing.T) {
	t.Run("marks entry reversed with audit fields", func(t *testing.T) {
		e := createTestEvent(t, PaymentKindPayment, 100)
		actor := uuid.New()

		require.NoError(t, e.Reverse(actor, "recorded twice"))

		assert.Equal(t, PaymentEventStatusReversed, e.Status)
		assert.True(t, e.IsReversed())
		assert.False(t, e.IsActive())
		assert.Equal(t, actor, *e.ReversedBy)
		assert.Equal(t, "recorded twice", e.ReversalReason)
		assert.NotNil(t, e.ReversedAt)
	})

	t.Run("requires a reason", func(t *testing.T) {
		e := createTestEvent(t, PaymentKindPayment, 100)
		err := e.Reverse(uuid.New(), "")
		assertDomainCode(t, err, "INVALID_REASON")
		assert.True(t, e.IsActive())
	})

	t.Run("reversal is idempotent only by rejection", func(t *testing.T) {
		e := createTestEvent(t, PaymentKindPayment, 100)
		require.NoError(t, e.Reverse(uuid.New(), "recorded twice"))
		err := e.Reverse(uuid.New(), "again")
		assertDomainCode(t, err, "ALREADY_REVERSED")
	})
}

func TestPaymentEvent_LegacyRowsWithoutStatusAreActive(t *testing.T) {
	e := createTestEvent(t, PaymentKindPayment, 100)
	e.Status = ""
	assert.True(t, e.IsActive())
}
