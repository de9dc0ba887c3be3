package booking

import (
	"fmt"
	"time"

	"github.com/StudioSpot/service-booking/internal/domain"
)

// Clock provides the current time. Injecting it keeps the cancellation
// policy deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock is the production Clock backed by the wall clock.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }

const (
	// DefaultCancellationLeadTime is the minimum time before a booking's
	// start for a cancellation to be permitted. The boundary is inclusive:
	// exactly 48h out is still allowed.
	DefaultCancellationLeadTime = 48 * time.Hour

	// DefaultDailyCancellationQuota caps how many bookings a user may cancel
	// per calendar day.
	DefaultDailyCancellationQuota = 2
)

// Eligibility is the outcome of a cancellation check. Both rules are
// evaluated independently so the caller can report every violated
// constraint.
type Eligibility struct {
	Allowed    bool
	LeadTimeOK bool
	QuotaOK    bool
}

// Err returns nil when cancellation is allowed, otherwise an EligibilityError
// naming each failed rule.
func (e Eligibility) Err() error {
	if e.Allowed {
		return nil
	}
	var reasons []string
	if !e.LeadTimeOK {
		reasons = append(reasons, fmt.Sprintf("bookings can only be cancelled at least %d hours before the start time", int(DefaultCancellationLeadTime.Hours())))
	}
	if !e.QuotaOK {
		reasons = append(reasons, fmt.Sprintf("at most %d bookings can be cancelled per day", DefaultDailyCancellationQuota))
	}
	return domain.NewEligibilityError(reasons...)
}

// CancellationPolicy decides whether a booking may be cancelled right now.
type CancellationPolicy struct {
	leadTime   time.Duration
	dailyQuota int
	clock      Clock
}

// NewCancellationPolicy creates a CancellationPolicy with the default lead
// time and daily quota.
func NewCancellationPolicy(clock Clock) *CancellationPolicy {
	return &CancellationPolicy{
		leadTime:   DefaultCancellationLeadTime,
		dailyQuota: DefaultDailyCancellationQuota,
		clock:      clock,
	}
}

// Evaluate checks the lead-time rule and the daily-quota rule for a booking
// starting at startTime, given how many bookings the user has already
// cancelled today.
func (p *CancellationPolicy) Evaluate(startTime time.Time, cancelledToday int) Eligibility {
	now := p.clock.Now()

	leadTimeOK := startTime.Sub(now) >= p.leadTime
	quotaOK := cancelledToday < p.dailyQuota

	return Eligibility{
		Allowed:    leadTimeOK && quotaOK,
		LeadTimeOK: leadTimeOK,
		QuotaOK:    quotaOK,
	}
}

// DayBounds returns the [start, end) interval of the calendar day containing
// t, in t's location. The quota window is a calendar-date match, not a rolling
// 24h window: cancellations at 23:59 and 00:01 fall on different days.
func DayBounds(t time.Time) (time.Time, time.Time) {
	year, month, day := t.Date()
	start := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

// CountCancelledOn returns how many of the given bookings were cancelled on
// the calendar day containing ref, matched by year/month/day in ref's
// location against the booking's last update.
func CountCancelledOn(bookings []*Booking, ref time.Time) int {
	refYear, refMonth, refDay := ref.Date()
	count := 0
	for _, bk := range bookings {
		if bk.Status() != StatusCancelled {
			continue
		}
		y, m, d := bk.UpdatedAt().In(ref.Location()).Date()
		if y == refYear && m == refMonth && d == refDay {
			count++
		}
	}
	return count
}
