package job

import (
	"testing"
	"time"
)

func jobNames(store *fakeStore) []string {
	names := make([]string, 0, len(store.runs))
	for _, run := range store.runs {
		names = append(names, run.Job)
	}
	return names
}

func TestScheduler_TickRunsSettlementCheckEveryTime(t *testing.T) {
	store := newFakeStore()
	runner := newTestRunner(store, &fakeSender{}, mondayEvening)
	scheduler := NewScheduler(runner, kst, 10)

	scheduler.tick()
	scheduler.tick()

	got := jobNames(store)
	if len(got) != 2 || got[0] != JobSettlementAutoClose || got[1] != JobSettlementAutoClose {
		t.Errorf("expected two settlement runs, got %v", got)
	}
}

func TestScheduler_ReminderFiresOncePerDay(t *testing.T) {
	store := newFakeStore()
	tenAM := time.Date(2025, time.February, 10, 10, 1, 0, 0, kst)
	runner := newTestRunner(store, &fakeSender{}, tenAM)
	scheduler := NewScheduler(runner, kst, 10)

	scheduler.tick()
	scheduler.tick()

	reminders := 0
	for _, name := range jobNames(store) {
		if name == JobPendingExpenseReminder {
			reminders++
		}
	}
	if reminders != 1 {
		t.Errorf("expected exactly one reminder run for the day, got %d", reminders)
	}

	// The next day it fires again.
	runner.now = func() time.Time { return tenAM.AddDate(0, 0, 1) }
	scheduler.tick()

	reminders = 0
	for _, name := range jobNames(store) {
		if name == JobPendingExpenseReminder {
			reminders++
		}
	}
	if reminders != 2 {
		t.Errorf("expected a second reminder run the next day, got %d", reminders)
	}
}

func TestScheduler_NoReminderOutsideConfiguredHour(t *testing.T) {
	store := newFakeStore()
	runner := newTestRunner(store, &fakeSender{}, mondayEvening) // 18:02
	scheduler := NewScheduler(runner, kst, 10)

	scheduler.tick()

	for _, name := range jobNames(store) {
		if name == JobPendingExpenseReminder {
			t.Error("reminder must not run outside the configured hour")
		}
	}
}

func TestScheduler_StartStop(t *testing.T) {
	store := newFakeStore()
	runner := newTestRunner(store, &fakeSender{}, mondayEvening)
	scheduler := NewScheduler(runner, kst, 10)
	scheduler.CheckInterval = time.Hour

	scheduler.Start()
	scheduler.Stop()

	// The immediate first check ran before Stop returned.
	if len(store.runs) == 0 {
		t.Error("expected at least one run from the initial tick")
	}
}
