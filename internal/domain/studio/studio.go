package studio

import (
	"time"

	"github.com/StudioSpot/service-booking/internal/domain"
	"github.com/google/uuid"
)

// Instrument is a rentable add-on item attached to a room, billed per
// booking by quantity.
type Instrument struct {
	ID        uuid.UUID `json:"id"`
	RoomID    uuid.UUID `json:"room_id"`
	Name      string    `json:"name"`
	UnitPrice int64     `json:"unit_price"`
	Available bool      `json:"available"`
}

// Room is a bookable space belonging to a studio, with its own hourly rate,
// minimum booking duration and instrument catalog.
type Room struct {
	ID           uuid.UUID    `json:"id"`
	StudioID     uuid.UUID    `json:"studio_id"`
	Name         string       `json:"name"`
	PricePerHour int64        `json:"price_per_hour"`
	MinHours     float64      `json:"min_hours"`
	Instruments  []Instrument `json:"instruments,omitempty"`
}

// InstrumentByID returns the room's catalog entry for the given id.
func (r Room) InstrumentByID(id uuid.UUID) (Instrument, bool) {
	for _, inst := range r.Instruments {
		if inst.ID == id {
			return inst, true
		}
	}
	return Instrument{}, false
}

// Studio is the aggregate root for a recording/rehearsal studio listing.
type Studio struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	name        string
	description string
	address     string
	city        string
	rooms       []Room
	version     int64
	createdAt   time.Time
	updatedAt   time.Time
}

// NewStudio creates a new studio listing with validated fields.
func NewStudio(ownerID uuid.UUID, name, description, address, city string) (*Studio, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("studio name is required")
	}
	if city == "" {
		return nil, domain.NewValidationError("studio city is required")
	}

	now := time.Now().UTC()
	return &Studio{
		id:          uuid.New(),
		ownerID:     ownerID,
		name:        name,
		description: description,
		address:     address,
		city:        city,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructStudio rebuilds a Studio from persistence data (no validation).
func ReconstructStudio(
	id, ownerID uuid.UUID,
	name, description, address, city string,
	rooms []Room,
	version int64,
	createdAt, updatedAt time.Time,
) *Studio {
	return &Studio{
		id:          id,
		ownerID:     ownerID,
		name:        name,
		description: description,
		address:     address,
		city:        city,
		rooms:       rooms,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ID returns the studio's unique identifier.
func (s *Studio) ID() uuid.UUID { return s.id }

// OwnerID returns the studio owner's user ID.
func (s *Studio) OwnerID() uuid.UUID { return s.ownerID }

// Name returns the studio's display name.
func (s *Studio) Name() string { return s.name }

// Description returns the studio's description.
func (s *Studio) Description() string { return s.description }

// Address returns the street address.
func (s *Studio) Address() string { return s.address }

// City returns the studio's city.
func (s *Studio) City() string { return s.city }

// Rooms returns the studio's rooms.
func (s *Studio) Rooms() []Room { return s.rooms }

// Version returns the entity version for optimistic locking.
func (s *Studio) Version() int64 { return s.version }

// CreatedAt returns the creation timestamp.
func (s *Studio) CreatedAt() time.Time { return s.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (s *Studio) UpdatedAt() time.Time { return s.updatedAt }

// IsOwnedBy returns true if the studio belongs to the given owner.
func (s *Studio) IsOwnedBy(ownerID uuid.UUID) bool { return s.ownerID == ownerID }

// AddRoom validates and attaches a new room to the studio.
func (s *Studio) AddRoom(name string, pricePerHour int64, minHours float64) (Room, error) {
	if name == "" {
		return Room{}, domain.NewValidationError("room name is required")
	}
	if pricePerHour < 0 {
		return Room{}, domain.NewValidationError("price per hour cannot be negative")
	}
	if minHours < 1 {
		return Room{}, domain.NewValidationError("minimum hours must be at least 1")
	}

	room := Room{
		ID:           uuid.New(),
		StudioID:     s.id,
		Name:         name,
		PricePerHour: pricePerHour,
		MinHours:     minHours,
	}
	s.rooms = append(s.rooms, room)
	s.updatedAt = time.Now().UTC()
	return room, nil
}

// RoomByID returns the studio's room with the given id.
func (s *Studio) RoomByID(id uuid.UUID) (Room, bool) {
	for _, room := range s.rooms {
		if room.ID == id {
			return room, true
		}
	}
	return Room{}, false
}
