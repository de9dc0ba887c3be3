package booking

import (
	"fmt"

	"github.com/google/uuid"
)

// InstrumentSelection tracks add-on instrument quantities for the currently
// selected room. Quantities are only meaningful for the active room:
// switching to a different room clears every selection, so line items can
// never leak across rooms.
type InstrumentSelection struct {
	roomID     uuid.UUID
	quantities map[uuid.UUID]int
}

// NewInstrumentSelection creates an empty selection for the given room.
func NewInstrumentSelection(roomID uuid.UUID) *InstrumentSelection {
	return &InstrumentSelection{
		roomID:     roomID,
		quantities: make(map[uuid.UUID]int),
	}
}

// RoomID returns the room the selection is scoped to.
func (s *InstrumentSelection) RoomID() uuid.UUID { return s.roomID }

// SelectRoom switches the active room. Selecting a different room resets all
// quantities to zero; re-selecting the current room is a no-op.
func (s *InstrumentSelection) SelectRoom(roomID uuid.UUID) {
	if roomID == s.roomID {
		return
	}
	s.roomID = roomID
	s.quantities = make(map[uuid.UUID]int)
}

// SetQuantity sets the selected quantity for an instrument. A room must be
// selected first, and quantities cannot be negative.
func (s *InstrumentSelection) SetQuantity(instrumentID uuid.UUID, qty int) error {
	if s.roomID == uuid.Nil {
		return fmt.Errorf("select a room before selecting instruments")
	}
	if qty < 0 {
		return fmt.Errorf("instrument quantity cannot be negative")
	}
	if qty == 0 {
		delete(s.quantities, instrumentID)
		return nil
	}
	s.quantities[instrumentID] = qty
	return nil
}

// Quantity returns the selected quantity for an instrument, zero if unselected.
func (s *InstrumentSelection) Quantity(instrumentID uuid.UUID) int {
	return s.quantities[instrumentID]
}

// Quantities returns a copy of all non-zero selections.
func (s *InstrumentSelection) Quantities() map[uuid.UUID]int {
	out := make(map[uuid.UUID]int, len(s.quantities))
	for id, qty := range s.quantities {
		out[id] = qty
	}
	return out
}
