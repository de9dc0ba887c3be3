package booking

import (
	"testing"
	"time"

	"github.com/StudioSpot/service-booking/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock pins the policy's "now" for deterministic boundary tests.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

func TestCancellationPolicy_LeadTimeBoundary(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	policy := NewCancellationPolicy(fixedClock{now})

	tests := []struct {
		name      string
		startTime time.Time
		allowed   bool
	}{
		{"well outside window", now.Add(72 * time.Hour), true},
		{"exactly 48h is inclusive", now.Add(48 * time.Hour), true},
		{"one second inside window", now.Add(48*time.Hour - time.Second), false},
		{"ten hours before start", now.Add(10 * time.Hour), false},
		{"already started", now.Add(-time.Hour), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			elig := policy.Evaluate(tt.startTime, 0)
			assert.Equal(t, tt.allowed, elig.Allowed)
			assert.Equal(t, tt.allowed, elig.LeadTimeOK)
			assert.True(t, elig.QuotaOK)
		})
	}
}

func TestCancellationPolicy_DailyQuota(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	policy := NewCancellationPolicy(fixedClock{now})
	start := now.Add(72 * time.Hour)

	assert.True(t, policy.Evaluate(start, 0).Allowed)
	assert.True(t, policy.Evaluate(start, 1).Allowed)

	// Third cancellation of the day is rejected despite ample lead time.
	elig := policy.Evaluate(start, 2)
	assert.False(t, elig.Allowed)
	assert.True(t, elig.LeadTimeOK)
	assert.False(t, elig.QuotaOK)
}

func TestCancellationPolicy_BothRulesFail(t *testing.T) {
	now := time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC)
	policy := NewCancellationPolicy(fixedClock{now})

	elig := policy.Evaluate(now.Add(10*time.Hour), 2)
	assert.False(t, elig.Allowed)

	err := elig.Err()
	require.Error(t, err)

	var eligErr *domain.EligibilityError
	require.ErrorAs(t, err, &eligErr)
	assert.Len(t, eligErr.Reasons, 2)
}

func TestEligibility_ErrNilWhenAllowed(t *testing.T) {
	elig := Eligibility{Allowed: true, LeadTimeOK: true, QuotaOK: true}
	assert.NoError(t, elig.Err())
}

func TestCountCancelledOn_CalendarDayMatch(t *testing.T) {
	ref := time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC)

	cancelledAt := func(ts time.Time) *Booking {
		return Reconstruct(
			uuid.New(), uuid.New(), uuid.New(), uuid.New(),
			ref.Add(100*time.Hour), ref.Add(102*time.Hour),
			StatusCancelled, nil, 1000, "JPY",
			false, nil, "changed plans", &ts,
			2, ts.Add(-time.Hour), ts,
		)
	}
	active := Reconstruct(
		uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		ref.Add(100*time.Hour), ref.Add(102*time.Hour),
		StatusConfirmed, nil, 1000, "JPY",
		true, nil, "", nil,
		1, ref, ref,
	)

	bookings := []*Booking{
		cancelledAt(ref.Add(-2 * time.Hour)),                                     // today
		cancelledAt(time.Date(2026, time.March, 14, 0, 1, 0, 0, time.UTC)),       // 00:01 today
		cancelledAt(time.Date(2026, time.March, 13, 23, 59, 0, 0, time.UTC)),     // 23:59 yesterday
		cancelledAt(ref.AddDate(0, 0, -7)),                                       // last week
		active,                                                                   // not cancelled
	}

	// Calendar-date match: the 23:59 cancellation two minutes before the
	// 00:01 one counts as a different day.
	assert.Equal(t, 2, CountCancelledOn(bookings, ref))
}

func TestDayBounds(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	from, to := DayBounds(time.Date(2026, time.March, 14, 23, 59, 0, 0, loc))
	assert.Equal(t, time.Date(2026, time.March, 14, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2026, time.March, 15, 0, 0, 0, 0, loc), to)
}
