package booking

import (
	"testing"
	"time"

	"github.com/StudioSpot/service-booking/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBooking(t *testing.T) *Booking {
	t.Helper()
	bk, err := NewBooking(
		uuid.New(), uuid.New(), uuid.New(),
		day(10, 0), day(12, 0),
		[]InstrumentLine{{InstrumentID: uuid.New(), Name: "SM58", UnitPrice: 1500, Quantity: 2}},
		10000, "JPY",
	)
	require.NoError(t, err)
	return bk
}

func TestNewBooking_Validation(t *testing.T) {
	userID, studioID, roomID := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name       string
		userID     uuid.UUID
		start, end time.Time
		total      int64
	}{
		{"missing user", uuid.Nil, day(10, 0), day(12, 0), 1000},
		{"end equals start", userID, day(10, 0), day(10, 0), 1000},
		{"end before start", userID, day(12, 0), day(10, 0), 1000},
		{"multi-day span", userID, day(22, 0), day(22, 0).AddDate(0, 0, 1), 1000},
		{"negative total", userID, day(10, 0), day(12, 0), -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBooking(tt.userID, studioID, roomID, tt.start, tt.end, nil, tt.total, "JPY")
			require.Error(t, err)

			var vErr *domain.ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestNewBooking_StartsPending(t *testing.T) {
	bk := validBooking(t)
	assert.Equal(t, StatusPending, bk.Status())
	assert.False(t, bk.IsPaid())
	assert.Equal(t, int64(1), bk.Version())
}

func TestBooking_MarkPaidConfirms(t *testing.T) {
	bk := validBooking(t)

	require.NoError(t, bk.MarkPaid("pi_123"))
	assert.Equal(t, StatusConfirmed, bk.Status())
	assert.True(t, bk.IsPaid())
	require.NotNil(t, bk.PaymentIntentID())
	assert.Equal(t, "pi_123", *bk.PaymentIntentID())

	// Paying twice conflicts.
	assert.Error(t, bk.MarkPaid("pi_123"))
}

func TestBooking_CancelFromPendingAndConfirmed(t *testing.T) {
	bk := validBooking(t)
	require.NoError(t, bk.Cancel("schedule conflict"))
	assert.Equal(t, StatusCancelled, bk.Status())
	assert.Equal(t, "schedule conflict", bk.CancelReason())
	assert.NotNil(t, bk.CancelledAt())

	bk = validBooking(t)
	require.NoError(t, bk.MarkPaid("pi_1"))
	require.NoError(t, bk.Cancel("illness"))
	assert.Equal(t, StatusCancelled, bk.Status())
}

func TestBooking_TerminalStatesRejectTransitions(t *testing.T) {
	bk := validBooking(t)
	require.NoError(t, bk.Cancel("changed plans"))
	assert.Error(t, bk.Cancel("again"))
	assert.Error(t, bk.Complete())
	assert.Error(t, bk.MarkPaid("pi_x"))

	bk = validBooking(t)
	require.NoError(t, bk.MarkPaid("pi_y"))
	require.NoError(t, bk.Complete())
	assert.Error(t, bk.Cancel("too late"))
}

func TestBooking_CompleteRequiresConfirmed(t *testing.T) {
	bk := validBooking(t)
	assert.Error(t, bk.Complete(), "pending bookings cannot complete")

	require.NoError(t, bk.MarkPaid("pi_z"))
	require.NoError(t, bk.Complete())
	assert.Equal(t, StatusCompleted, bk.Status())
}

func TestStatusStateMachine(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusConfirmed))
	assert.True(t, StatusPending.CanBeCancelled())
	assert.True(t, StatusConfirmed.CanBeCancelled())
	assert.False(t, StatusCompleted.CanBeCancelled())
	assert.False(t, StatusCancelled.CanBeCancelled())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())

	_, err := ParseStatus("pending")
	assert.NoError(t, err)
	_, err = ParseStatus("unknown")
	assert.Error(t, err)
}

func TestInstrumentLine_Subtotal(t *testing.T) {
	line := InstrumentLine{UnitPrice: 1500, Quantity: 2}
	assert.Equal(t, int64(3000), line.Subtotal())
}
