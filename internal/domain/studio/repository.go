package studio

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for studios, rooms and
// instrument catalogs.
type Repository interface {
	// FindByID retrieves a studio with its rooms.
	FindByID(ctx context.Context, id uuid.UUID) (*Studio, error)

	// FindRoomByID retrieves a room with its instrument catalog.
	FindRoomByID(ctx context.Context, id uuid.UUID) (*Room, error)

	// List retrieves studios with pagination, optionally filtered by city.
	List(ctx context.Context, city string, page, limit int) ([]*Studio, int64, error)

	// Save persists a new studio.
	Save(ctx context.Context, studio *Studio) error

	// SaveRoom persists a new room for an existing studio.
	SaveRoom(ctx context.Context, room Room) error

	// SaveInstrument persists a new catalog instrument for an existing room.
	SaveInstrument(ctx context.Context, instrument Instrument) error
}
