package models

import (
	"errors"
	"fmt"
	"time"
)

// Frequency determines how often a space's settlement period closes.
type Frequency string

const (
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

var (
	ErrUnknownFrequency = errors.New("unknown settlement frequency")
	ErrInvalidSchedule  = errors.New("invalid settlement schedule")
)

// SettlementSchedule is a space's auto-close configuration.
//
// Exactly one anchor shape is meaningful, selected by Frequency:
// WeeklyDay for weekly, MonthlyDay for monthly, YearlyMonth+YearlyDay
// for yearly. Validate enforces this at the storage boundary so the
// schedule evaluator can dispatch on Frequency without nil checks.
type SettlementSchedule struct {
	// Enabled is the master switch for automatic closing.
	Enabled bool `json:"enabled"`

	// Frequency selects the recurrence: weekly, monthly or yearly.
	Frequency Frequency `json:"frequency"`

	// Hour and Minute are the close time of day in the service's
	// local time zone.
	Hour   int `json:"hour"`
	Minute int `json:"minute"`

	// WeeklyDay is the weekday anchor for weekly schedules.
	// Sunday is 0, matching time.Weekday.
	WeeklyDay time.Weekday `json:"weeklyDay,omitempty"`

	// MonthlyDay is the day-of-month anchor (1-31) for monthly
	// schedules. A day that a short month lacks simply never fires
	// that month; the management UI owns that tradeoff.
	MonthlyDay int `json:"monthlyDay,omitempty"`

	// YearlyMonth and YearlyDay anchor yearly schedules.
	YearlyMonth time.Month `json:"yearlyMonth,omitempty"`
	YearlyDay   int        `json:"yearlyDay,omitempty"`
}

// Validate checks that the schedule is internally consistent: the
// close time is a real wall-clock time and the anchor selected by
// Frequency is in range.
func (s SettlementSchedule) Validate() error {
	if s.Hour < 0 || s.Hour > 23 || s.Minute < 0 || s.Minute > 59 {
		return fmt.Errorf("%w: time %02d:%02d out of range", ErrInvalidSchedule, s.Hour, s.Minute)
	}
	switch s.Frequency {
	case FrequencyWeekly:
		if s.WeeklyDay < time.Sunday || s.WeeklyDay > time.Saturday {
			return fmt.Errorf("%w: weekly day %d out of range", ErrInvalidSchedule, s.WeeklyDay)
		}
	case FrequencyMonthly:
		if s.MonthlyDay < 1 || s.MonthlyDay > 31 {
			return fmt.Errorf("%w: monthly day %d out of range", ErrInvalidSchedule, s.MonthlyDay)
		}
	case FrequencyYearly:
		if s.YearlyMonth < time.January || s.YearlyMonth > time.December {
			return fmt.Errorf("%w: yearly month %d out of range", ErrInvalidSchedule, s.YearlyMonth)
		}
		if s.YearlyDay < 1 || s.YearlyDay > 31 {
			return fmt.Errorf("%w: yearly day %d out of range", ErrInvalidSchedule, s.YearlyDay)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFrequency, s.Frequency)
	}
	return nil
}

// TimeString renders the close time as "HH:MM" for logs and reports.
func (s SettlementSchedule) TimeString() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// EmailSettings is a space's expense-reminder notification
// configuration. The first recipient is the primary "to" address;
// the remainder are carbon-copied.
type EmailSettings struct {
	// Enabled toggles pending-expense reminder emails.
	Enabled bool `json:"enabled"`

	// Recipients is the ordered list of notification addresses.
	Recipients []string `json:"recipients"`
}
