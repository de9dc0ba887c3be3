package booking

import (
	"fmt"
	"time"

	"github.com/StudioSpot/service-booking/internal/domain"
	"github.com/google/uuid"
)

// InstrumentLine is a rented add-on instrument line item on a booking.
type InstrumentLine struct {
	InstrumentID uuid.UUID `json:"instrument_id"`
	Name         string    `json:"name"`
	UnitPrice    int64     `json:"unit_price"`
	Quantity     int       `json:"quantity"`
}

// Subtotal returns the line's contribution to the booking total.
func (l InstrumentLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Booking is the aggregate root for a room reservation over [start, end).
type Booking struct {
	id              uuid.UUID
	userID          uuid.UUID
	studioID        uuid.UUID
	roomID          uuid.UUID
	startTime       time.Time
	endTime         time.Time
	status          Status
	instruments     []InstrumentLine
	totalPrice      int64
	currency        string
	isPaid          bool
	paymentIntentID *string
	cancelReason    string
	cancelledAt     *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a pending booking with validated fields. The interval
// must be strictly positive and contained in a single calendar day.
func NewBooking(
	userID, studioID, roomID uuid.UUID,
	startTime, endTime time.Time,
	instruments []InstrumentLine,
	totalPrice int64,
	currency string,
) (*Booking, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if studioID == uuid.Nil {
		return nil, domain.NewValidationError("studio ID is required")
	}
	if roomID == uuid.Nil {
		return nil, domain.NewValidationError("room ID is required")
	}
	if !endTime.After(startTime) {
		return nil, domain.NewValidationError("end time must be after start time")
	}
	if !sameCalendarDay(startTime, endTime) {
		return nil, domain.NewValidationError("bookings cannot span multiple days")
	}
	if totalPrice < 0 {
		return nil, domain.NewValidationError("total price cannot be negative")
	}
	for _, line := range instruments {
		if line.Quantity <= 0 {
			return nil, domain.NewValidationError(fmt.Sprintf("invalid quantity for instrument %s", line.InstrumentID))
		}
	}

	now := time.Now().UTC()
	return &Booking{
		id:          uuid.New(),
		userID:      userID,
		studioID:    studioID,
		roomID:      roomID,
		startTime:   startTime,
		endTime:     endTime,
		status:      StatusPending,
		instruments: instruments,
		totalPrice:  totalPrice,
		currency:    currency,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, userID, studioID, roomID uuid.UUID,
	startTime, endTime time.Time,
	status Status,
	instruments []InstrumentLine,
	totalPrice int64,
	currency string,
	isPaid bool,
	paymentIntentID *string,
	cancelReason string,
	cancelledAt *time.Time,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		userID:          userID,
		studioID:        studioID,
		roomID:          roomID,
		startTime:       startTime,
		endTime:         endTime,
		status:          status,
		instruments:     instruments,
		totalPrice:      totalPrice,
		currency:        currency,
		isPaid:          isPaid,
		paymentIntentID: paymentIntentID,
		cancelReason:    cancelReason,
		cancelledAt:     cancelledAt,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// UserID returns the booking musician's user ID.
func (b *Booking) UserID() uuid.UUID { return b.userID }

// StudioID returns the studio the booked room belongs to.
func (b *Booking) StudioID() uuid.UUID { return b.studioID }

// RoomID returns the booked room's ID.
func (b *Booking) RoomID() uuid.UUID { return b.roomID }

// StartTime returns the start of the reserved interval.
func (b *Booking) StartTime() time.Time { return b.startTime }

// EndTime returns the exclusive end of the reserved interval.
func (b *Booking) EndTime() time.Time { return b.endTime }

// Status returns the current booking status.
func (b *Booking) Status() Status { return b.status }

// Instruments returns the rented instrument line items.
func (b *Booking) Instruments() []InstrumentLine { return b.instruments }

// TotalPrice returns the total charge in minor currency units.
func (b *Booking) TotalPrice() int64 { return b.totalPrice }

// Currency returns the currency code.
func (b *Booking) Currency() string { return b.currency }

// IsPaid returns whether the booking has been paid.
func (b *Booking) IsPaid() bool { return b.isPaid }

// PaymentIntentID returns the payment provider reference, or nil before payment starts.
func (b *Booking) PaymentIntentID() *string { return b.paymentIntentID }

// CancelReason returns the cancellation reason, empty unless cancelled.
func (b *Booking) CancelReason() string { return b.cancelReason }

// CancelledAt returns the time the booking was cancelled.
func (b *Booking) CancelledAt() *time.Time { return b.cancelledAt }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsOwnedBy returns true if the booking belongs to the given user.
func (b *Booking) IsOwnedBy(userID uuid.UUID) bool { return b.userID == userID }

// AttachPaymentIntent records the payment provider reference for this booking.
func (b *Booking) AttachPaymentIntent(intentID string) {
	b.paymentIntentID = &intentID
	b.updatedAt = time.Now().UTC()
}

// MarkPaid records a successful payment and confirms the booking.
func (b *Booking) MarkPaid(intentID string) error {
	if b.isPaid {
		return domain.NewConflictError("booking is already paid")
	}
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewInvalidStateError(string(b.status), string(StatusConfirmed))
	}
	b.isPaid = true
	b.paymentIntentID = &intentID
	b.status = StatusConfirmed
	b.updatedAt = time.Now().UTC()
	return nil
}

// Complete transitions a confirmed booking to completed after the session.
func (b *Booking) Complete() error {
	if !b.status.CanTransitionTo(StatusCompleted) {
		return domain.NewInvalidStateError(string(b.status), string(StatusCompleted))
	}
	b.status = StatusCompleted
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel transitions the booking to cancelled if it is not in a terminal state.
func (b *Booking) Cancel(reason string) error {
	if !b.status.CanBeCancelled() {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	now := time.Now().UTC()
	b.status = StatusCancelled
	b.cancelReason = reason
	b.cancelledAt = &now
	b.updatedAt = now
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}

func sameCalendarDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	return ay == by && am == bm && ad == bd
}
