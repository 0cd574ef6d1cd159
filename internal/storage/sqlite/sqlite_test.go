package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/loungeap/spaceops/internal/models"
	"github.com/loungeap/spaceops/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "spaceops-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestSQLiteStore_Spaces(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("ListSpaces preserves creation order", func(t *testing.T) {
		for i, id := range []string{"guesthouse-a", "guesthouse-b", "guesthouse-c"} {
			err := store.CreateSpace(ctx, &models.Space{ID: id, Name: id, CreatedAt: int64(100 + i)})
			if err != nil {
				t.Fatalf("CreateSpace failed: %v", err)
			}
		}

		spaces, err := store.ListSpaces(ctx)
		if err != nil {
			t.Fatalf("ListSpaces failed: %v", err)
		}
		if len(spaces) != 3 {
			t.Fatalf("expected 3 spaces, got %d", len(spaces))
		}
		if spaces[0].ID != "guesthouse-a" || spaces[2].ID != "guesthouse-c" {
			t.Errorf("unexpected order: %v", spaces)
		}
	})
}

func TestSQLiteStore_SettlementSchedule(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateSpace(ctx, &models.Space{ID: "sp1", Name: "Lounge"}); err != nil {
		t.Fatalf("CreateSpace failed: %v", err)
	}

	t.Run("missing schedule returns ErrNotFound", func(t *testing.T) {
		_, err := store.GetSettlementSchedule(ctx, "sp1")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("roundtrip", func(t *testing.T) {
		schedule := models.SettlementSchedule{
			Enabled:   true,
			Frequency: models.FrequencyWeekly,
			Hour:      18,
			Minute:    0,
			WeeklyDay: time.Monday,
		}
		if err := store.PutSettlementSchedule(ctx, "sp1", schedule); err != nil {
			t.Fatalf("PutSettlementSchedule failed: %v", err)
		}

		got, err := store.GetSettlementSchedule(ctx, "sp1")
		if err != nil {
			t.Fatalf("GetSettlementSchedule failed: %v", err)
		}
		if !got.Enabled || got.Frequency != models.FrequencyWeekly || got.WeeklyDay != time.Monday || got.Hour != 18 {
			t.Errorf("unexpected schedule: %+v", got)
		}
	})

	t.Run("invalid schedule rejected", func(t *testing.T) {
		bad := models.SettlementSchedule{
			Enabled:   true,
			Frequency: models.Frequency("fortnightly"),
			Hour:      18,
		}
		if err := store.PutSettlementSchedule(ctx, "sp1", bad); !errors.Is(err, models.ErrUnknownFrequency) {
			t.Errorf("expected ErrUnknownFrequency, got %v", err)
		}
	})
}

func TestSQLiteStore_EmailSettings(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateSpace(ctx, &models.Space{ID: "sp1", Name: "Lounge"}); err != nil {
		t.Fatalf("CreateSpace failed: %v", err)
	}

	t.Run("missing settings return ErrNotFound", func(t *testing.T) {
		_, err := store.GetEmailSettings(ctx, "sp1")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("recipient order preserved", func(t *testing.T) {
		settings := models.EmailSettings{
			Enabled:    true,
			Recipients: []string{"manager@example.com", "owner@example.com", "backup@example.com"},
		}
		if err := store.PutEmailSettings(ctx, "sp1", settings); err != nil {
			t.Fatalf("PutEmailSettings failed: %v", err)
		}

		got, err := store.GetEmailSettings(ctx, "sp1")
		if err != nil {
			t.Fatalf("GetEmailSettings failed: %v", err)
		}
		if !got.Enabled {
			t.Error("expected enabled settings")
		}
		if len(got.Recipients) != 3 || got.Recipients[0] != "manager@example.com" {
			t.Errorf("unexpected recipients: %v", got.Recipients)
		}
	})

	t.Run("replace clears old recipients", func(t *testing.T) {
		settings := models.EmailSettings{Enabled: true, Recipients: []string{"solo@example.com"}}
		if err := store.PutEmailSettings(ctx, "sp1", settings); err != nil {
			t.Fatalf("PutEmailSettings failed: %v", err)
		}

		got, err := store.GetEmailSettings(ctx, "sp1")
		if err != nil {
			t.Fatalf("GetEmailSettings failed: %v", err)
		}
		if len(got.Recipients) != 1 || got.Recipients[0] != "solo@example.com" {
			t.Errorf("unexpected recipients: %v", got.Recipients)
		}
	})
}

func TestSQLiteStore_Settlements(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateSpace(ctx, &models.Space{ID: "sp1", Name: "Lounge"}); err != nil {
		t.Fatalf("CreateSpace failed: %v", err)
	}

	schedule := models.SettlementSchedule{
		Enabled:   true,
		Frequency: models.FrequencyWeekly,
		Hour:      18,
		WeeklyDay: time.Monday,
	}
	settledAt := time.Date(2025, time.February, 10, 18, 0, 0, 0, time.UTC)

	t.Run("close missing settlement returns ErrNotFound", func(t *testing.T) {
		err := store.CloseSettlement(ctx, "sp1", "2025-W06", settledAt, schedule)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("close transitions open settlement", func(t *testing.T) {
		settlement := &models.Settlement{
			SpaceID:     "sp1",
			PeriodID:    "2025-W06",
			TotalAmount: 145000,
			Participants: map[string]int64{
				"jisoo":  70000,
				"minjun": 75000,
			},
		}
		if err := store.CreateSettlement(ctx, settlement); err != nil {
			t.Fatalf("CreateSettlement failed: %v", err)
		}

		if err := store.CloseSettlement(ctx, "sp1", "2025-W06", settledAt, schedule); err != nil {
			t.Fatalf("CloseSettlement failed: %v", err)
		}

		got, err := store.GetSettlement(ctx, "sp1", "2025-W06")
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if got.Status != models.SettlementSettled {
			t.Errorf("status = %s, want settled", got.Status)
		}
		if !got.AutoSettled {
			t.Error("expected autoSettled")
		}
		if got.SettledAt == nil || !got.SettledAt.Equal(settledAt) {
			t.Errorf("settledAt = %v, want %v", got.SettledAt, settledAt)
		}
		if got.SettledBySchedule == nil || got.SettledBySchedule.Frequency != models.FrequencyWeekly {
			t.Errorf("schedule snapshot missing or wrong: %+v", got.SettledBySchedule)
		}
		if len(got.Participants) != 2 || got.Participants["jisoo"] != 70000 {
			t.Errorf("unexpected participants: %v", got.Participants)
		}
	})

	t.Run("second close is rejected and leaves record unchanged", func(t *testing.T) {
		later := settledAt.Add(time.Hour)
		err := store.CloseSettlement(ctx, "sp1", "2025-W06", later, schedule)
		if !errors.Is(err, storage.ErrAlreadySettled) {
			t.Fatalf("expected ErrAlreadySettled, got %v", err)
		}

		got, err := store.GetSettlement(ctx, "sp1", "2025-W06")
		if err != nil {
			t.Fatalf("GetSettlement failed: %v", err)
		}
		if !got.SettledAt.Equal(settledAt) {
			t.Errorf("settledAt changed to %v on repeat close", got.SettledAt)
		}
	})
}

func TestSQLiteStore_Expenses(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.CreateSpace(ctx, &models.Space{ID: "sp1", Name: "Lounge"}); err != nil {
		t.Fatalf("CreateSpace failed: %v", err)
	}

	expenses := []*models.Expense{
		{SpaceID: "sp1", Title: "Gas bill", Amount: 52000, Status: models.ExpensePending},
		{SpaceID: "sp1", Title: "Groceries", Amount: 31000, Status: models.ExpensePending},
		{SpaceID: "sp1", Title: "Cleaning", Amount: 20000, Status: models.ExpenseApproved},
	}
	for _, e := range expenses {
		if err := store.CreateExpense(ctx, e); err != nil {
			t.Fatalf("CreateExpense failed: %v", err)
		}
		if e.ID == "" {
			t.Error("expected expense ID to be generated")
		}
	}

	count, err := store.CountPendingExpenses(ctx, "sp1")
	if err != nil {
		t.Fatalf("CountPendingExpenses failed: %v", err)
	}
	if count != 2 {
		t.Errorf("pending count = %d, want 2", count)
	}

	count, err = store.CountPendingExpenses(ctx, "no-such-space")
	if err != nil {
		t.Fatalf("CountPendingExpenses failed: %v", err)
	}
	if count != 0 {
		t.Errorf("pending count for unknown space = %d, want 0", count)
	}
}

func TestSQLiteStore_JobRuns(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	for i := int64(0); i < 3; i++ {
		run := &models.JobRun{
			Job:        "settlement-auto-close",
			StartedAt:  1000 + i,
			FinishedAt: 1001 + i,
			Summary:    []byte(`{"totalSpaces":0}`),
		}
		if err := store.SaveJobRun(ctx, run); err != nil {
			t.Fatalf("SaveJobRun failed: %v", err)
		}
		if run.ID == "" {
			t.Error("expected run ID to be generated")
		}
	}

	runs, err := store.ListJobRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListJobRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].StartedAt != 1002 {
		t.Errorf("expected newest run first, got started_at=%d", runs[0].StartedAt)
	}
}
