package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func run(id, worldID string, level, kills int, ended time.Time) RunRecord {
	return RunRecord{
		RunID:        id,
		WorldID:      worldID,
		Level:        level,
		Kills:        kills,
		RoomsVisited: 2,
		Duration:     90 * time.Second,
		Outcome:      "defeated",
		Cause:        "slain by Rat",
		StartedAt:    ended.Add(-90 * time.Second),
		EndedAt:      ended,
	}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTemp(t)
	base := time.UnixMilli(1_700_000_000_000)

	for i, r := range []RunRecord{
		run("a", "crypt", 2, 3, base),
		run("b", "crypt", 4, 1, base.Add(time.Minute)),
		run("c", "tower", 1, 0, base.Add(2*time.Minute)),
	} {
		if err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun(%d) failed: %v", i, err)
		}
	}

	runs, err := store.RecentRuns("crypt", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 || runs[0].RunID != "b" || runs[1].RunID != "a" {
		t.Fatalf("Expected [b a], got %+v", runs)
	}

	got := runs[1]
	want := run("a", "crypt", 2, 3, base)
	if !got.StartedAt.Equal(want.StartedAt) || !got.EndedAt.Equal(want.EndedAt) {
		t.Errorf("Times mismatch: got %v..%v, want %v..%v", got.StartedAt, got.EndedAt, want.StartedAt, want.EndedAt)
	}
	got.StartedAt, got.EndedAt = want.StartedAt, want.EndedAt
	if got != want {
		t.Errorf("Round trip mismatch:\n got %+v\nwant %+v", got, want)
	}

	all, err := store.RecentRuns("", 2)
	if err != nil {
		t.Fatalf("RecentRuns(all) failed: %v", err)
	}
	if len(all) != 2 || all[0].RunID != "c" {
		t.Errorf("Expected newest-first limit 2 starting with c, got %+v", all)
	}
}

func TestStoreSaveReplacesSameRun(t *testing.T) {
	store := openTemp(t)
	base := time.UnixMilli(1_700_000_000_000)

	if err := store.SaveRun(run("a", "crypt", 2, 3, base)); err != nil {
		t.Fatal(err)
	}
	// Revived run that fell again later
	if err := store.SaveRun(run("a", "crypt", 5, 9, base.Add(time.Hour))); err != nil {
		t.Fatal(err)
	}

	runs, err := store.RecentRuns("crypt", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Level != 5 || runs[0].Kills != 9 {
		t.Errorf("Expected one replaced run, got %+v", runs)
	}
}

func TestStoreSaveRejectsMissingID(t *testing.T) {
	store := openTemp(t)
	if err := store.SaveRun(RunRecord{WorldID: "crypt"}); err == nil {
		t.Error("Expected error for run without id")
	}
}

func TestStoreBestRun(t *testing.T) {
	store := openTemp(t)
	base := time.UnixMilli(1_700_000_000_000)

	best, err := store.BestRun("crypt")
	if err != nil || best != nil {
		t.Fatalf("Expected no best run, got %+v, %v", best, err)
	}

	for _, r := range []RunRecord{
		run("a", "crypt", 3, 1, base),
		run("b", "crypt", 3, 4, base),
		run("c", "crypt", 2, 10, base),
		run("d", "tower", 9, 9, base),
	} {
		if err := store.SaveRun(r); err != nil {
			t.Fatal(err)
		}
	}

	best, err = store.BestRun("crypt")
	if err != nil {
		t.Fatalf("BestRun() failed: %v", err)
	}
	if best == nil || best.RunID != "b" {
		t.Errorf("Expected best run b, got %+v", best)
	}
}

func TestStoreStatsAndClear(t *testing.T) {
	store := openTemp(t)
	base := time.UnixMilli(1_700_000_000_000)

	stats, err := store.Stats("crypt")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRun(run("a", "crypt", 3, 2, base))
	store.SaveRun(run("b", "crypt", 5, 4, base.Add(time.Minute)))

	stats, err = store.Stats("crypt")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 || stats.BestLevel != 5 || stats.TotalKills != 6 || stats.AvgRooms != 2 {
		t.Errorf("Unexpected stats %+v", stats)
	}
	if !stats.LastPlayed.Equal(base.Add(time.Minute)) {
		t.Errorf("LastPlayed = %v", stats.LastPlayed)
	}

	if err := store.ClearRuns("crypt"); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, _ := store.RecentRuns("crypt", 10)
	if len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestStoreEmptyWorldMatchesAll(t *testing.T) {
	store := openTemp(t)
	base := time.UnixMilli(1_700_000_000_000)
	store.SaveRun(run("a", "crypt", 2, 3, base))
	store.SaveRun(run("b", "tower", 5, 0, base.Add(time.Minute)))

	best, err := store.BestRun("")
	if err != nil || best == nil || best.RunID != "b" {
		t.Fatalf("BestRun(\"\") = %+v, %v", best, err)
	}
	stats, err := store.Stats("")
	if err != nil || stats.Runs != 2 || stats.TotalKills != 3 {
		t.Fatalf("Stats(\"\") = %+v, %v", stats, err)
	}
	if err := store.ClearRuns(""); err != nil {
		t.Fatalf("ClearRuns(\"\") failed: %v", err)
	}
	if runs, _ := store.RecentRuns("", 10); len(runs) != 0 {
		t.Errorf("Expected no runs after clearing all, got %d", len(runs))
	}
}
