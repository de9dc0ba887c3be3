package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(hour, min int) time.Time {
	return time.Date(2026, time.March, 14, hour, min, 0, 0, time.UTC)
}

func TestCalculate_MinimumHoursFloor(t *testing.T) {
	s := NewStandardPricingStrategy()

	tests := []struct {
		name         string
		start, end   time.Time
		minHours     float64
		wantEffHours float64
	}{
		{"below floor", day(10, 0), day(11, 0), 2, 2},
		{"well below floor", day(10, 0), day(10, 30), 3, 3},
		{"exactly at floor", day(10, 0), day(12, 0), 2, 2},
		{"above floor", day(10, 0), day(13, 0), 2, 3},
		{"fractional above floor", day(10, 0), day(12, 30), 2, 2.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote, err := s.Calculate(PricingParams{
				PricePerHour: 1000,
				MinHours:     tt.minHours,
				StartTime:    tt.start,
				EndTime:      tt.end,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.wantEffHours, quote.EffectiveHours)
		})
	}
}

func TestCalculate_ReferenceExample(t *testing.T) {
	// 3500/hour room, 2h minimum, 1h selected, two instruments at 1500 each.
	s := NewStandardPricingStrategy()
	instID := uuid.New()

	quote, err := s.Calculate(PricingParams{
		PricePerHour: 3500,
		MinHours:     2,
		StartTime:    day(10, 0),
		EndTime:      day(11, 0),
		Selections:   map[uuid.UUID]int{instID: 2},
		Catalog:      []CatalogInstrument{{ID: instID, UnitPrice: 1500}},
	})
	require.NoError(t, err)

	assert.Equal(t, 2.0, quote.EffectiveHours)
	assert.Equal(t, int64(7000), quote.RoomTotal)
	assert.Equal(t, int64(3000), quote.InstrumentsTotal)
	assert.Equal(t, int64(10000), quote.Total)
}

func TestCalculate_InstrumentsLinearInQuantity(t *testing.T) {
	s := NewStandardPricingStrategy()
	instID := uuid.New()
	params := PricingParams{
		PricePerHour: 2000,
		MinHours:     1,
		StartTime:    day(10, 0),
		EndTime:      day(12, 0),
		Catalog:      []CatalogInstrument{{ID: instID, UnitPrice: 500}},
	}

	params.Selections = map[uuid.UUID]int{instID: 1}
	one, err := s.Calculate(params)
	require.NoError(t, err)

	params.Selections = map[uuid.UUID]int{instID: 2}
	two, err := s.Calculate(params)
	require.NoError(t, err)

	assert.Equal(t, one.InstrumentsTotal*2, two.InstrumentsTotal)
	assert.Equal(t, int64(500), two.Total-one.Total)
}

func TestCalculate_UnknownInstrumentIDsIgnored(t *testing.T) {
	s := NewStandardPricingStrategy()
	known := uuid.New()

	quote, err := s.Calculate(PricingParams{
		PricePerHour: 1000,
		MinHours:     1,
		StartTime:    day(10, 0),
		EndTime:      day(11, 0),
		Selections: map[uuid.UUID]int{
			known:      1,
			uuid.New(): 99, // not in catalog, must not contribute
		},
		Catalog: []CatalogInstrument{{ID: known, UnitPrice: 700}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(700), quote.InstrumentsTotal)
}

func TestCalculate_InvertedIntervalClampsToFloor(t *testing.T) {
	s := NewStandardPricingStrategy()

	quote, err := s.Calculate(PricingParams{
		PricePerHour: 1000,
		MinHours:     2,
		StartTime:    day(12, 0),
		EndTime:      day(10, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0.0, quote.RawHours)
	assert.Equal(t, 2.0, quote.EffectiveHours)
	assert.Equal(t, int64(2000), quote.Total)
}

func TestCalculate_InvalidInputs(t *testing.T) {
	s := NewStandardPricingStrategy()
	instID := uuid.New()

	_, err := s.Calculate(PricingParams{PricePerHour: -1, MinHours: 1})
	assert.Error(t, err)

	_, err = s.Calculate(PricingParams{PricePerHour: 100, MinHours: 0})
	assert.Error(t, err)

	_, err = s.Calculate(PricingParams{
		PricePerHour: 100,
		MinHours:     1,
		StartTime:    day(10, 0),
		EndTime:      day(11, 0),
		Selections:   map[uuid.UUID]int{instID: -1},
		Catalog:      []CatalogInstrument{{ID: instID, UnitPrice: 500}},
	})
	assert.Error(t, err)
}
