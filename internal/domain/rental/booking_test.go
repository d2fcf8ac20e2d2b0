package rental

import (
	"testing"
	"time"

	"github.com/atelier/backend/internal/domain/shared/valueobject"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func window(t *testing.T, startDay, endDay int) valueobject.DateRange {
	t.Helper()
	r, err := valueobject.NewDateRange(
		time.Date(2026, 6, startDay, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 6, endDay, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)
	return r
}

func TestBookingWindow_ConflictsWith(t *testing.T) {
	booked := BookingWindow{
		InvoiceID:     uuid.New(),
		InvoiceNumber: "INV-100",
		ProductID:     uuid.New(),
		CustomerName:  "Dana",
		Window:        window(t, 10, 14),
		Status:        InvoiceStatusReserved,
	}

	tests := []struct {
		name      string
		proposed  valueobject.DateRange
		conflicts bool
	}{
		{"overlapping middle", window(t, 12, 16), true},
		{"contained", window(t, 11, 13), true},
		{"covering", window(t, 1, 30), true},
		{"touching return date", window(t, 14, 20), true},
		{"touching collection date", window(t, 5, 10), true},
		{"ends the day before", window(t, 5, 9), false},
		{"starts the day after", window(t, 15, 20), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.conflicts, booked.ConflictsWith(tt.proposed))
		})
	}
}

func TestStatusHistoryEntry(t *testing.T) {
	t.Run("captures transition", func(t *testing.T) {
		storeID := uuid.New()
		invoiceID := uuid.New()
		actor := uuid.New()

		entry, err := NewStatusHistoryEntry(storeID, invoiceID,
			InvoiceStatusReserved, InvoiceStatusDelivered, actor, "picked up in store")
		require.NoError(t, err)

		assert.Equal(t, storeID, entry.StoreID)
		assert.Equal(t, invoiceID, entry.InvoiceID)
		assert.Equal(t, InvoiceStatusReserved, entry.FromStatus)
		assert.Equal(t, InvoiceStatusDelivered, entry.ToStatus)
		assert.Equal(t, actor, entry.ChangedBy)
		assert.Equal(t, "picked up in store", entry.Notes)
	})

	t.Run("rejects nil invoice", func(t *testing.T) {
		_, err := NewStatusHistoryEntry(uuid.New(), uuid.Nil,
			InvoiceStatusReserved, InvoiceStatusDelivered, uuid.New(), "")
		assertDomainCode(t, err, "INVALID_INVOICE")
	})

	t.Run("rejects invalid statuses", func(t *testing.T) {
		_, err := NewStatusHistoryEntry(uuid.New(), uuid.New(),
			InvoiceStatus("BOGUS"), InvoiceStatusDelivered, uuid.New(), "")
		assertDomainCode(t, err, "INVALID_STATUS")
	})

	t.Run("rejects nil actor", func(t *testing.T) {
		_, err := NewStatusHistoryEntry(uuid.New(), uuid.New(),
			InvoiceStatusReserved, InvoiceStatusDelivered, uuid.Nil, "")
		assertDomainCode(t, err, "INVALID_ACTOR")
	})
}
