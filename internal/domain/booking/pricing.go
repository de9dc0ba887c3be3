package booking

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

// PricingStrategy defines the interface for calculating booking prices.
type PricingStrategy interface {
	// Calculate returns the price breakdown for the given parameters.
	Calculate(params PricingParams) (Quote, error)
}

// CatalogInstrument is a priced catalog entry scoped to the selected room.
type CatalogInstrument struct {
	ID        uuid.UUID
	UnitPrice int64
}

// PricingParams holds the inputs for price calculation. Amounts are in minor
// currency units.
type PricingParams struct {
	PricePerHour int64
	MinHours     float64
	StartTime    time.Time
	EndTime      time.Time
	Selections   map[uuid.UUID]int
	Catalog      []CatalogInstrument
}

// Quote is the result of a price calculation.
type Quote struct {
	RawHours         float64 `json:"raw_hours"`
	EffectiveHours   float64 `json:"effective_hours"`
	RoomTotal        int64   `json:"room_total"`
	InstrumentsTotal int64   `json:"instruments_total"`
	Total            int64   `json:"total"`
}

// StandardPricingStrategy implements the marketplace's default pricing rules.
type StandardPricingStrategy struct{}

// NewStandardPricingStrategy creates a new StandardPricingStrategy.
func NewStandardPricingStrategy() *StandardPricingStrategy {
	return &StandardPricingStrategy{}
}

// Calculate computes the total charge for a room booking.
//
// Pricing rules:
//   - Raw duration is (end - start) in hours; a non-positive interval counts
//     as zero (the caller surfaces that as a validation failure).
//   - Billable hours are floored at the room's minimum booking duration.
//   - Each selected instrument adds unit price x quantity. Selections for
//     ids not present in the catalog are ignored.
func (s *StandardPricingStrategy) Calculate(params PricingParams) (Quote, error) {
	if params.PricePerHour < 0 {
		return Quote{}, fmt.Errorf("price per hour cannot be negative")
	}
	if params.MinHours < 1 {
		return Quote{}, fmt.Errorf("minimum hours must be at least 1")
	}

	rawHours := params.EndTime.Sub(params.StartTime).Hours()
	if rawHours < 0 {
		rawHours = 0
	}

	effectiveHours := math.Max(rawHours, params.MinHours)

	var instrumentsTotal int64
	for _, item := range params.Catalog {
		qty := params.Selections[item.ID]
		if qty < 0 {
			return Quote{}, fmt.Errorf("instrument quantity cannot be negative")
		}
		instrumentsTotal += item.UnitPrice * int64(qty)
	}

	roomTotal := int64(math.Round(float64(params.PricePerHour) * effectiveHours))

	return Quote{
		RawHours:         rawHours,
		EffectiveHours:   effectiveHours,
		RoomTotal:        roomTotal,
		InstrumentsTotal: instrumentsTotal,
		Total:            roomTotal + instrumentsTotal,
	}, nil
}
