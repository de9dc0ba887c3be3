package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics carrying booking and payment events.
const (
	TopicBookingEvents = "booking.events"
	TopicPaymentEvents = "payment.events"
)

// Event types published on booking.events.
const (
	BookingRequested = "booking.requested"
	BookingConfirmed = "booking.confirmed"
	BookingCancelled = "booking.cancelled"
	BookingCompleted = "booking.completed"
)

// Event types consumed from payment.events.
const (
	PaymentSucceeded = "payment.succeeded"
)

// BookingRequestedEvent is published when a musician creates a booking.
type BookingRequestedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	StudioID   uuid.UUID `json:"studio_id"`
	RoomID     uuid.UUID `json:"room_id"`
	StartTime  time.Time `json:"start_time"`
	EndTime    time.Time `json:"end_time"`
	TotalPrice int64     `json:"total_price"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

// BookingConfirmedEvent is published when payment succeeds and the booking
// is confirmed.
type BookingConfirmedEvent struct {
	BookingID       uuid.UUID `json:"booking_id"`
	UserID          uuid.UUID `json:"user_id"`
	RoomID          uuid.UUID `json:"room_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	TotalPrice      int64     `json:"total_price"`
	Currency        string    `json:"currency"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// BookingCancelledEvent is published when a booking is cancelled.
type BookingCancelledEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	UserID      uuid.UUID `json:"user_id"`
	RoomID      uuid.UUID `json:"room_id"`
	Reason      string    `json:"reason"`
	CancelledAt time.Time `json:"cancelled_at"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BookingCompletedEvent is published when a booking finishes.
type BookingCompletedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	UserID     uuid.UUID `json:"user_id"`
	RoomID     uuid.UUID `json:"room_id"`
	TotalPrice int64     `json:"total_price"`
	Currency   string    `json:"currency"`
	OccurredAt time.Time `json:"occurred_at"`
}

// PaymentSucceededEvent arrives on payment.events once the payment provider
// confirms a charge for a booking.
type PaymentSucceededEvent struct {
	BookingID       uuid.UUID `json:"booking_id"`
	PaymentIntentID string    `json:"payment_intent_id"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	OccurredAt      time.Time `json:"occurred_at"`
}
