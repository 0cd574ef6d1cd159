package schedule

import (
	"testing"
	"time"

	"github.com/loungeap/spaceops/internal/models"
)

func TestWeekID(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		// Jan 1 2025 is a Wednesday.
		{"new year's day", at(2025, time.January, 1, 12, 0), "2025-W01"},
		{"mid february", at(2025, time.February, 10, 18, 0), "2025-W07"},
		{"start of year with thursday jan 1", at(2026, time.January, 1, 0, 0), "2026-W01"},
		{"late december", at(2025, time.December, 29, 10, 0), "2025-W53"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekID(tt.date); got != tt.want {
				t.Errorf("WeekID(%s) = %s, want %s", tt.date.Format("2006-01-02"), got, tt.want)
			}
		})
	}
}

func TestWeekID_Deterministic(t *testing.T) {
	now := at(2025, time.June, 3, 14, 41)
	first := WeekID(now)
	for i := 0; i < 10; i++ {
		if got := WeekID(now); got != first {
			t.Fatalf("WeekID not deterministic: %s then %s", first, got)
		}
	}
}

func TestPeriodToClose_WeeklyStepsBackOneWeek(t *testing.T) {
	// 2025-02-10 falls in week 2025-W07; the period to close is the
	// preceding week, never the current one.
	now := at(2025, time.February, 10, 18, 0)

	got := PeriodToClose(models.FrequencyWeekly, now)
	if got != "2025-W06" {
		t.Errorf("PeriodToClose(weekly) = %s, want 2025-W06", got)
	}
	if got == WeekID(now) {
		t.Error("PeriodToClose must never return the current week")
	}
}

func TestPeriodToClose_MonthlyNormalization(t *testing.T) {
	// March 31 minus one month normalizes past February's end to
	// March 3 (AddDate semantics), which lands in week 2025-W10.
	now := at(2025, time.March, 31, 18, 0)

	if got := PeriodToClose(models.FrequencyMonthly, now); got != "2025-W10" {
		t.Errorf("PeriodToClose(monthly) = %s, want 2025-W10", got)
	}
}

func TestPeriodToClose_Yearly(t *testing.T) {
	now := at(2025, time.February, 10, 18, 0)

	if got := PeriodToClose(models.FrequencyYearly, now); got != WeekID(at(2024, time.February, 10, 18, 0)) {
		t.Errorf("PeriodToClose(yearly) = %s, want week of the same date last year", got)
	}
}

func TestPeriodToClose_UnknownFrequencyKeepsCurrentDate(t *testing.T) {
	now := at(2025, time.February, 10, 18, 0)

	if got := PeriodToClose(models.Frequency("quarterly"), now); got != WeekID(now) {
		t.Errorf("PeriodToClose(unknown) = %s, want %s", got, WeekID(now))
	}
}

func TestWeekRange(t *testing.T) {
	t.Run("midweek", func(t *testing.T) {
		start, end := WeekRange(at(2025, time.February, 12, 15, 30)) // Wednesday

		wantStart := time.Date(2025, time.February, 10, 0, 0, 0, 0, kst)
		wantEnd := time.Date(2025, time.February, 16, 23, 59, 59, 999e6, kst)
		if !start.Equal(wantStart) {
			t.Errorf("start = %v, want %v", start, wantStart)
		}
		if !end.Equal(wantEnd) {
			t.Errorf("end = %v, want %v", end, wantEnd)
		}
	})

	t.Run("sunday belongs to the week started the previous monday", func(t *testing.T) {
		start, _ := WeekRange(at(2025, time.February, 16, 8, 0)) // Sunday

		wantStart := time.Date(2025, time.February, 10, 0, 0, 0, 0, kst)
		if !start.Equal(wantStart) {
			t.Errorf("start = %v, want %v", start, wantStart)
		}
	})
}
