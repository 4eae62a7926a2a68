package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"dotsync/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.StateDir = filepath.Join(base, "state")
	return &cfg
}

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(testConfig(t))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleRun(created int) Run {
	started := time.Now().Add(-time.Duration(created) * time.Minute)
	return Run{
		ID:              uuid.NewString(),
		StartedAt:       started,
		FinishedAt:      started.Add(30 * time.Second),
		Created:         created,
		Updated:         2,
		Unchanged:       40,
		CoveragePercent: 81.5,
	}
}

func TestRecordAndListRuns(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	first := sampleRun(5)
	second := sampleRun(1)
	second.DryRun = true
	for _, run := range []Run{first, second} {
		if err := store.RecordRun(ctx, run); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(ctx, 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("runs = %d", len(runs))
	}
	// Newest first: second started a minute ago, first five minutes ago.
	if runs[0].ID != second.ID {
		t.Errorf("order wrong: %v", runs)
	}
	if !runs[0].DryRun {
		t.Error("dry_run flag lost")
	}
	if runs[1].Created != 5 || runs[1].CoveragePercent != 81.5 {
		t.Errorf("row = %+v", runs[1])
	}
	if runs[1].FinishedAt.Sub(runs[1].StartedAt) != 30*time.Second {
		t.Errorf("timestamps = %v / %v", runs[1].StartedAt, runs[1].FinishedAt)
	}
}

func TestRecentRunsHonorsLimit(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := store.RecordRun(ctx, sampleRun(i)); err != nil {
			t.Fatalf("RecordRun failed: %v", err)
		}
	}

	runs, err := store.RecentRuns(ctx, 3)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("runs = %d", len(runs))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	cfg := testConfig(t)

	store, err := Open(cfg)
	if err != nil {
		t.Fatalf("first Open failed: %v", err)
	}
	if err := store.RecordRun(context.Background(), sampleRun(1)); err != nil {
		t.Fatalf("RecordRun failed: %v", err)
	}
	store.Close()

	reopened, err := Open(cfg)
	if err != nil {
		t.Fatalf("second Open failed: %v", err)
	}
	defer reopened.Close()

	runs, err := reopened.RecentRuns(context.Background(), 10)
	if err != nil {
		t.Fatalf("RecentRuns failed: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("runs = %d", len(runs))
	}
}
