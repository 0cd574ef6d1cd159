package job

import "time"

// SettlementSummary is the report of one settlement auto-close run.
type SettlementSummary struct {
	Timestamp      time.Time `json:"timestamp"`
	TotalSpaces    int       `json:"totalSpaces"`
	Settled        int       `json:"settled"`
	AlreadySettled int       `json:"alreadySettled"`
	NoData         int       `json:"noData"`
	NoSettings     int       `json:"noSettings"`
	Disabled       int       `json:"disabled"`
	NotTime        int       `json:"notTime"`
	Errors         int       `json:"errors"`
	Results        []Outcome `json:"results"`
}

// ReminderSummary is the report of one pending-expense reminder run.
type ReminderSummary struct {
	Timestamp       time.Time `json:"timestamp"`
	TotalSpaces     int       `json:"totalSpaces"`
	Sent            int       `json:"sent"`
	NoPending       int       `json:"noPending"`
	EmailDisabled   int       `json:"emailDisabled"`
	NoEmailSettings int       `json:"noEmailSettings"`
	EmailFailed     int       `json:"emailFailed"`
	Errors          int       `json:"errors"`
	Results         []Outcome `json:"results"`
}

func countByStatus(outcomes []Outcome) map[Status]int {
	counts := make(map[Status]int)
	for _, o := range outcomes {
		counts[o.Status]++
	}
	return counts
}

// SummarizeSettlements folds settlement outcomes into a report.
func SummarizeSettlements(outcomes []Outcome, timestamp time.Time) *SettlementSummary {
	counts := countByStatus(outcomes)
	return &SettlementSummary{
		Timestamp:      timestamp,
		TotalSpaces:    len(outcomes),
		Settled:        counts[StatusSettled],
		AlreadySettled: counts[StatusAlreadySettled],
		NoData:         counts[StatusNoData],
		NoSettings:     counts[StatusNoSettings],
		Disabled:       counts[StatusDisabled],
		NotTime:        counts[StatusNotTime],
		Errors:         counts[StatusError],
		Results:        outcomes,
	}
}

// SummarizeReminders folds reminder outcomes into a report.
func SummarizeReminders(outcomes []Outcome, timestamp time.Time) *ReminderSummary {
	counts := countByStatus(outcomes)
	return &ReminderSummary{
		Timestamp:       timestamp,
		TotalSpaces:     len(outcomes),
		Sent:            counts[StatusSent],
		NoPending:       counts[StatusNoPending],
		EmailDisabled:   counts[StatusEmailDisabled],
		NoEmailSettings: counts[StatusNoEmailSettings],
		EmailFailed:     counts[StatusEmailFailed],
		Errors:          counts[StatusError],
		Results:         outcomes,
	}
}
