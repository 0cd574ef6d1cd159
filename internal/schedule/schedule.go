// Package schedule implements the pure scheduling decisions of the
// settlement auto-close mechanism: whether a configured close is due
// at a given instant, and which period a due close should finalize.
//
// All functions take an explicit "now" that must already be in the
// service's local time zone; the conversion happens once at the job
// boundary (see LoadLocation), never inside this package.
package schedule

import (
	"time"

	"github.com/loungeap/spaceops/internal/models"
)

// DefaultTimeZone is the zone the guesthouses operate in.
const DefaultTimeZone = "Asia/Seoul"

// ToleranceMinutes is how far the current time may drift from the
// configured close time and still count as due. The external trigger
// fires at coarse granularity (hourly), so an exact-minute match
// would never hit.
const ToleranceMinutes = 5

// LoadLocation resolves the service's local time zone. An empty name
// falls back to DefaultTimeZone.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		name = DefaultTimeZone
	}
	return time.LoadLocation(name)
}

// IsDue reports whether a settlement close should fire at now for the
// given schedule. A nil or disabled schedule is never due.
//
// The time-of-day check is an inclusive ±ToleranceMinutes window on
// minutes-of-day; the recurrence anchor is then matched according to
// the schedule's frequency.
func IsDue(cfg *models.SettlementSchedule, now time.Time) bool {
	if cfg == nil || !cfg.Enabled {
		return false
	}

	current := now.Hour()*60 + now.Minute()
	target := cfg.Hour*60 + cfg.Minute
	diff := current - target
	if diff < 0 {
		diff = -diff
	}
	if diff > ToleranceMinutes {
		return false
	}

	switch cfg.Frequency {
	case models.FrequencyWeekly:
		return now.Weekday() == cfg.WeeklyDay
	case models.FrequencyMonthly:
		return now.Day() == cfg.MonthlyDay
	case models.FrequencyYearly:
		return now.Month() == cfg.YearlyMonth && now.Day() == cfg.YearlyDay
	}
	return false
}
