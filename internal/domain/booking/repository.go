package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByUserID retrieves bookings belonging to a specific user with pagination.
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// CountCancelledBetween counts the user's bookings cancelled in [from, to),
	// matched on their last update time.
	CountCancelledBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)

	// ExistsOverlapping reports whether the room already has a non-cancelled
	// booking overlapping [start, end).
	ExistsOverlapping(ctx context.Context, roomID uuid.UUID, start, end time.Time) (bool, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
