package job

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler drives the runner from an internal ticker, replacing the
// external cron trigger in deployments that prefer a single binary.
//
// The settlement check runs on every tick; the schedule evaluator's
// tolerance window decides whether anything actually closes. The
// reminder runs at most once per calendar day, at the configured
// local hour.
type Scheduler struct {
	Runner        *Runner
	CheckInterval time.Duration
	ReminderHour  int

	loc             *time.Location
	lastReminderDay string
	stop            chan struct{}
	wg              sync.WaitGroup
	mu              sync.Mutex
	started         bool
}

// NewScheduler creates a scheduler with an hourly check interval,
// matching the cadence of the cron trigger it replaces.
func NewScheduler(runner *Runner, loc *time.Location, reminderHour int) *Scheduler {
	return &Scheduler{
		Runner:        runner,
		CheckInterval: time.Hour,
		ReminderHour:  reminderHour,
		loc:           loc,
		stop:          make(chan struct{}),
	}
}

// Start begins the ticker goroutine. The first check runs
// immediately.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	s.wg.Add(1)
	go s.run()
	slog.Info("scheduler started", "check_interval", s.CheckInterval, "reminder_hour", s.ReminderHour)
}

// Stop halts the ticker and waits for an in-flight check to finish.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false

	close(s.stop)
	s.wg.Wait()
	slog.Info("scheduler stopped")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.CheckInterval)
	defer ticker.Stop()

	s.tick()
	for {
		select {
		case <-ticker.C:
			s.tick()
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) tick() {
	ctx := context.Background()

	if _, err := s.Runner.CloseSettlements(ctx); err != nil {
		slog.Error("settlement auto-close run failed", "error", err)
	}

	now := s.Runner.now().In(s.loc)
	day := now.Format("2006-01-02")
	if now.Hour() == s.ReminderHour && day != s.lastReminderDay {
		if _, err := s.Runner.SendPendingReminders(ctx); err != nil {
			slog.Error("pending-expense reminder run failed", "error", err)
		} else {
			s.lastReminderDay = day
		}
	}
}
