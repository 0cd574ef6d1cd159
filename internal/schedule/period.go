package schedule

import (
	"fmt"
	"time"

	"github.com/loungeap/spaceops/internal/models"
)

// WeekID returns the period identifier for the week containing t, in
// the form "YYYY-Www". The week number counts Jan 1 as part of week
// one: week = ceil((dayOfYear-1 + weekdayOfJan1 + 1) / 7), with
// Sunday as weekday 0.
func WeekID(t time.Time) string {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, t.Location())
	days := t.YearDay() - 1
	week := (days + int(jan1.Weekday()) + 1 + 6) / 7
	return fmt.Sprintf("%d-W%02d", t.Year(), week)
}

// PeriodToClose returns the identifier of the period a due close
// should finalize: always the immediately preceding completed unit of
// the given frequency, never the current one. Month and year steps
// use AddDate normalization (Mar 31 minus one month rolls forward
// past Feb's end).
//
// Every settlement document is keyed by week ID, including the ones
// belonging to monthly and yearly spaces; that is how the settlement
// writer in the management application keys them.
func PeriodToClose(freq models.Frequency, now time.Time) string {
	target := now
	switch freq {
	case models.FrequencyWeekly:
		target = now.AddDate(0, 0, -7)
	case models.FrequencyMonthly:
		target = now.AddDate(0, -1, 0)
	case models.FrequencyYearly:
		target = now.AddDate(-1, 0, 0)
	}
	return WeekID(target)
}

// WeekRange returns the boundaries of the settlement week containing
// t: Monday 00:00:00.000 through Sunday 23:59:59.999 in t's location.
// Sunday counts as day 7 of the week when locating the Monday start.
func WeekRange(t time.Time) (start, end time.Time) {
	offset := (int(t.Weekday()) + 6) % 7 // days since Monday
	y, m, d := t.AddDate(0, 0, -offset).Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	last := start.AddDate(0, 0, 6)
	end = time.Date(last.Year(), last.Month(), last.Day(), 23, 59, 59, 999e6, t.Location())
	return start, end
}
