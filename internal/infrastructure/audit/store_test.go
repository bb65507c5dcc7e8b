package audit

import (
	"path/filepath"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "reports.db"), "")
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecentReturnsNewestFirst(t *testing.T) {
	store := openStore(t)
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 3; i++ {
		report := Report{
			StartedAt: base.Add(time.Duration(i) * time.Hour),
			Succeeded: i,
			Outcome:   OutcomeAll,
		}
		if err := store.Save(report); err != nil {
			t.Fatalf("save failed: %v", err)
		}
	}

	reports, err := store.Recent(2)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].Succeeded != 2 || reports[1].Succeeded != 1 {
		t.Fatalf("expected newest first, got %+v", reports)
	}
}

func TestSaveAssignsIDWhenMissing(t *testing.T) {
	store := openStore(t)

	if err := store.Save(Report{Outcome: OutcomeAll, Message: "no rows to sync"}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	reports, err := store.Recent(1)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(reports) != 1 || reports[0].ID == "" {
		t.Fatalf("expected generated ID, got %+v", reports)
	}
}

func TestCleanupDropsOldReportsOnly(t *testing.T) {
	store := openStore(t)
	base := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	old := Report{StartedAt: base.AddDate(0, 0, -30), Outcome: OutcomeNone}
	fresh := Report{StartedAt: base, Outcome: OutcomeAll}
	if err := store.Save(old); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Save(fresh); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if err := store.Cleanup(base.AddDate(0, 0, -7)); err != nil {
		t.Fatalf("cleanup failed: %v", err)
	}

	reports, err := store.Recent(10)
	if err != nil {
		t.Fatalf("recent failed: %v", err)
	}
	if len(reports) != 1 || reports[0].Outcome != OutcomeAll {
		t.Fatalf("expected only the fresh report, got %+v", reports)
	}
}
