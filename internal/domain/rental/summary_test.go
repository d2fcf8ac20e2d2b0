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

func ledgerEntry(t *testing.T, inv *Invoice, kind PaymentKind, amount float64) PaymentEvent {
	t.Helper()
	e, err := NewPaymentEvent(inv.StoreID, inv.ID, kind, PaymentMethodCash,
		valueobject.NewMoneyUSDFromFloat(amount), time.Now(), nil, "")
	require.NoError(t, err)
	return *e
}

func TestComputeSummary(t *testing.T) {
	t.Run("no ledger entries, deposit only", func(t *testing.T) {
		inv := createTestInvoice(t) // price 500, deposit 100

		s := ComputeSummary(inv, nil)

		assert.Equal(t, inv.ID, s.InvoiceID)
		assert.True(t, s.TotalDue.Equal(decimal.NewFromInt(500)))
		assert.True(t, s.TotalPaid.Equal(decimal.NewFromInt(100)))
		assert.True(t, s.RemainingBalance.Equal(decimal.NewFromInt(400)))
		assert.Equal(t, PaymentStatusPartial, s.PaymentStatus)
		assert.False(t, s.IsSettled())
	})

	t.Run("payments accumulate toward settlement", func(t *testing.T) {
		inv := createTestInvoice(t)
		events := []PaymentEvent{
			ledgerEntry(t, inv, PaymentKindPayment, 250),
			ledgerEntry(t, inv, PaymentKindPayment, 150),
		}

		s := ComputeSummary(inv, events)

		assert.True(t, s.TotalPaid.Equal(decimal.NewFromInt(500)))
		assert.True(t, s.RemainingBalance.IsZero())
		assert.Equal(t, PaymentStatusPaid, s.PaymentStatus)
		assert.True(t, s.IsSettled())
	})

	t.Run("refunds reduce total paid", func(t *testing.T) {
		inv := createTestInvoice(t)
		events := []PaymentEvent{
			ledgerEntry(t, inv, PaymentKindPayment, 400),
			ledgerEntry(t, inv, PaymentKindRefund, 100),
		}

		s := ComputeSummary(inv, events)

		// 100 deposit + 400 - 100 = 400 paid against 500 due
		assert.True(t, s.TotalPaid.Equal(decimal.NewFromInt(400)))
		assert.True(t, s.RemainingBalance.Equal(decimal.NewFromInt(100)))
		assert.Equal(t, PaymentStatusPartial, s.PaymentStatus)
	})

	t.Run("penalties raise the total due", func(t *testing.T) {
		inv := createTestInvoice(t)
		events := []PaymentEvent{
			ledgerEntry(t, inv, PaymentKindPayment, 400),
			ledgerEntry(t, inv, PaymentKindPenalty, 75),
		}

		s := ComputeSummary(inv, events)

		assert.True(t, s.PenaltyTotal.Equal(decimal.NewFromInt(75)))
		assert.True(t, s.TotalDue.Equal(decimal.NewFromInt(575)))
		assert.True(t, s.RemainingBalance.Equal(decimal.NewFromInt(75)))
	})

	t.Run("reversed entries do not count", func(t *testing.T) {
		inv := createTestInvoice(t)
		reversed := ledgerEntry(t, inv, PaymentKindPayment, 400)
		require.NoError(t, reversed.Reverse(uuid.New(), "entered twice"))
		events := []PaymentEvent{
			reversed,
			ledgerEntry(t, inv, PaymentKindPayment, 50),
		}

		s := ComputeSummary(inv, events)

		assert.True(t, s.TotalPaid.Equal(decimal.NewFromInt(150)))
		assert.True(t, s.RemainingBalance.Equal(decimal.NewFromInt(350)))
	})

	t.Run("legacy entries without status still count", func(t *testing.T) {
		inv := createTestInvoice(t)
		legacy := ledgerEntry(t, inv, PaymentKindPayment, 400)
		legacy.Status = ""

		s := ComputeSummary(inv, []PaymentEvent{legacy})

		assert.True(t, s.TotalPaid.Equal(decimal.NewFromInt(500)))
		assert.Equal(t, PaymentStatusPaid, s.PaymentStatus)
	})

	t.Run("overpayment floors remaining balance at zero", func(t *testing.T) {
		inv := createTestInvoice(t)
		events := []PaymentEvent{
			ledgerEntry(t, inv, PaymentKindPayment, 600),
		}

		s := ComputeSummary(inv, events)

		assert.True(t, s.TotalPaid.Equal(decimal.NewFromInt(700)))
		assert.True(t, s.RemainingBalance.IsZero())
		assert.Equal(t, PaymentStatusPaid, s.PaymentStatus)
	})

	t.Run("nothing paid is unpaid", func(t *testing.T) {
		inv, err := NewInvoice(uuid.New(), "INV-002", uuid.New(), "Nadia",
			valueobject.NewMoneyUSDFromFloat(500), valueobject.ZeroUSD())
		require.NoError(t, err)

		s := ComputeSummary(inv, nil)

		assert.Equal(t, PaymentStatusUnpaid, s.PaymentStatus)
		assert.True(t, s.RemainingBalance.Equal(decimal.NewFromInt(500)))
	})

	t.Run("residual within epsilon counts as paid", func(t *testing.T) {
		inv := createTestInvoice(t)
		events := []PaymentEvent{
			ledgerEntry(t, inv, PaymentKindPayment, 399.995),
		}

		s := ComputeSummary(inv, events)

		assert.Equal(t, PaymentStatusPaid, s.PaymentStatus)
		assert.True(t, s.IsSettled())
	})
}
