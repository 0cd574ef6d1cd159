// Package job implements the two scheduled jobs of the service: the
// settlement auto-close and the pending-expense reminder.
//
// Both jobs iterate every space, run a per-space action inside an
// outcome boundary, and fold the outcomes into a summary report. A
// fault while processing one space is recorded as an error outcome
// and never aborts the siblings; only a failure to enumerate spaces
// at all fails the whole invocation.
package job

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/loungeap/spaceops/internal/metrics"
	"github.com/loungeap/spaceops/internal/models"
	"github.com/loungeap/spaceops/internal/notify"
	"github.com/loungeap/spaceops/internal/schedule"
	"github.com/loungeap/spaceops/internal/storage"
)

// Job names, used in run records, logs and metrics.
const (
	JobSettlementAutoClose    = "settlement-auto-close"
	JobPendingExpenseReminder = "pending-expense-reminder"
)

// Runner executes the scheduled jobs against a store and a
// notification sender. "Now" is injected for tests and converted to
// the configured local zone exactly once per space check; all
// schedule arithmetic downstream is zone-agnostic.
type Runner struct {
	store  storage.Store
	sender notify.Sender
	loc    *time.Location
	now    func() time.Time
}

// NewRunner creates a runner operating in the given local time zone.
func NewRunner(store storage.Store, sender notify.Sender, loc *time.Location) *Runner {
	return NewRunnerWithClock(store, sender, loc, time.Now)
}

// NewRunnerWithClock creates a runner with an injected clock, for
// tests that need a fixed "now".
func NewRunnerWithClock(store storage.Store, sender notify.Sender, loc *time.Location, clock func() time.Time) *Runner {
	return &Runner{
		store:  store,
		sender: sender,
		loc:    loc,
		now:    clock,
	}
}

// CloseSettlements runs the settlement auto-close check over every
// space and returns the run summary. It fails only if the space list
// cannot be loaded.
func (r *Runner) CloseSettlements(ctx context.Context) (*SettlementSummary, error) {
	started := r.now().In(r.loc)
	slog.Info("settlement auto-close check started", "time", started)

	spaces, err := r.store.ListSpaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}

	outcomes := make([]Outcome, 0, len(spaces))
	for _, space := range spaces {
		outcome := r.closeSpaceSettlement(ctx, space)
		metrics.CountOutcome(JobSettlementAutoClose, string(outcome.Status))
		r.logOutcome(JobSettlementAutoClose, outcome)
		outcomes = append(outcomes, outcome)
	}

	summary := SummarizeSettlements(outcomes, r.now().In(r.loc))
	r.recordRun(ctx, JobSettlementAutoClose, started, summary)
	slog.Info("settlement auto-close check finished",
		"total_spaces", summary.TotalSpaces,
		"settled", summary.Settled,
		"errors", summary.Errors,
	)
	return summary, nil
}

// closeSpaceSettlement runs the close decision chain for one space.
func (r *Runner) closeSpaceSettlement(ctx context.Context, space models.Space) Outcome {
	out := Outcome{SpaceID: space.ID, SpaceName: space.DisplayName()}

	cfg, err := r.store.GetSettlementSchedule(ctx, space.ID)
	if errors.Is(err, storage.ErrNotFound) {
		out.Status = StatusNoSettings
		out.Message = "no settlement schedule configured"
		return out
	}
	if err != nil {
		return errorOutcome(out, err)
	}

	if !cfg.Enabled {
		out.Status = StatusDisabled
		out.Message = "automatic close disabled"
		return out
	}

	now := r.now().In(r.loc)
	if !schedule.IsDue(cfg, now) {
		out.Status = StatusNotTime
		out.Message = fmt.Sprintf("not close time (schedule: %s %s)", cfg.Frequency, cfg.TimeString())
		return out
	}

	periodID := schedule.PeriodToClose(cfg.Frequency, now)

	settlement, err := r.store.GetSettlement(ctx, space.ID, periodID)
	if errors.Is(err, storage.ErrNotFound) {
		out.Status = StatusNoData
		out.Message = fmt.Sprintf("no settlement data for period %s", periodID)
		return out
	}
	if err != nil {
		return errorOutcome(out, err)
	}

	if settlement.Status == models.SettlementSettled {
		out.Status = StatusAlreadySettled
		out.Message = "already settled"
		return out
	}

	err = r.store.CloseSettlement(ctx, space.ID, periodID, now, *cfg)
	if errors.Is(err, storage.ErrAlreadySettled) {
		// Lost a race against a concurrent trigger; the period is
		// closed either way.
		out.Status = StatusAlreadySettled
		out.Message = "already settled"
		return out
	}
	if err != nil {
		return errorOutcome(out, err)
	}

	out.Status = StatusSettled
	out.Message = "auto close succeeded"
	out.PeriodID = periodID
	out.Participants = len(settlement.Participants)
	out.TotalAmount = settlement.TotalAmount
	out.Schedule = fmt.Sprintf("%s %s", cfg.Frequency, cfg.TimeString())
	return out
}

// SendPendingReminders runs the pending-expense reminder check over
// every space and returns the run summary.
func (r *Runner) SendPendingReminders(ctx context.Context) (*ReminderSummary, error) {
	started := r.now().In(r.loc)
	slog.Info("pending-expense reminder check started", "time", started)

	spaces, err := r.store.ListSpaces(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}

	outcomes := make([]Outcome, 0, len(spaces))
	for _, space := range spaces {
		outcome := r.remindSpace(ctx, space)
		metrics.CountOutcome(JobPendingExpenseReminder, string(outcome.Status))
		r.logOutcome(JobPendingExpenseReminder, outcome)
		outcomes = append(outcomes, outcome)
	}

	summary := SummarizeReminders(outcomes, r.now().In(r.loc))
	r.recordRun(ctx, JobPendingExpenseReminder, started, summary)
	slog.Info("pending-expense reminder check finished",
		"total_spaces", summary.TotalSpaces,
		"sent", summary.Sent,
		"errors", summary.Errors,
	)
	return summary, nil
}

// remindSpace runs the reminder decision chain for one space.
func (r *Runner) remindSpace(ctx context.Context, space models.Space) Outcome {
	out := Outcome{SpaceID: space.ID, SpaceName: space.DisplayName()}

	settings, err := r.store.GetEmailSettings(ctx, space.ID)
	if errors.Is(err, storage.ErrNotFound) {
		out.Status = StatusNoEmailSettings
		out.Message = "no email settings configured"
		return out
	}
	if err != nil {
		return errorOutcome(out, err)
	}

	if !settings.Enabled || len(settings.Recipients) == 0 {
		out.Status = StatusEmailDisabled
		out.Message = "expense reminder email disabled or no recipients"
		return out
	}

	pending, err := r.store.CountPendingExpenses(ctx, space.ID)
	if err != nil {
		return errorOutcome(out, err)
	}
	if pending == 0 {
		out.Status = StatusNoPending
		out.Message = "no expenses awaiting approval"
		return out
	}

	msg := notify.Message{
		Type:         notify.TypeExpenseReminder,
		SpaceName:    space.DisplayName(),
		PendingCount: pending,
		Recipients: notify.Recipients{
			To: settings.Recipients[0],
			CC: settings.Recipients[1:],
		},
	}
	if err := r.sender.Send(ctx, msg); err != nil {
		// Dispatch failure is non-fatal and not retried this run;
		// the next scheduled tick tries again.
		out.Status = StatusEmailFailed
		out.Message = fmt.Sprintf("reminder dispatch failed: %v", err)
		out.PendingCount = pending
		return out
	}

	out.Status = StatusSent
	out.Message = "reminder sent"
	out.PendingCount = pending
	out.Recipients = settings.Recipients
	return out
}

// errorOutcome marks an outcome as an unexpected per-space failure.
func errorOutcome(out Outcome, err error) Outcome {
	out.Status = StatusError
	out.Message = err.Error()
	return out
}

func (r *Runner) logOutcome(jobName string, out Outcome) {
	switch out.Status {
	case StatusError, StatusEmailFailed:
		slog.Warn("space check failed",
			"job", jobName,
			"space_id", out.SpaceID,
			"space", out.SpaceName,
			"status", out.Status,
			"message", out.Message,
		)
	default:
		slog.Debug("space checked",
			"job", jobName,
			"space_id", out.SpaceID,
			"space", out.SpaceName,
			"status", out.Status,
		)
	}
}

// recordRun persists the invocation's summary for the audit trail.
// A failure to record is logged but does not fail the run.
func (r *Runner) recordRun(ctx context.Context, jobName string, started time.Time, summary any) {
	finished := r.now().In(r.loc)
	metrics.ObserveRun(jobName, finished.Sub(started))

	encoded, err := json.Marshal(summary)
	if err != nil {
		slog.Warn("failed to encode run summary", "job", jobName, "error", err)
		return
	}
	run := &models.JobRun{
		Job:        jobName,
		StartedAt:  started.UnixMilli(),
		FinishedAt: finished.UnixMilli(),
		Summary:    encoded,
	}
	if err := r.store.SaveJobRun(ctx, run); err != nil {
		slog.Warn("failed to record job run", "job", jobName, "error", err)
	}
}
