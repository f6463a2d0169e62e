package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRecent(t *testing.T) {
	store := openTestStore(t)

	first := SessionRecord{
		GameID:     "invaders",
		Platform:   PlatformTerminal,
		User:       "alice",
		Ticks:      1200,
		Overruns:   3,
		ShotsFired: 42,
		Duration:   12 * time.Second,
	}
	if _, err := store.SaveSession(first); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	second := SessionRecord{GameID: "invaders", Platform: PlatformWindow, Ticks: 50, Duration: 500 * time.Millisecond}
	if _, err := store.SaveSession(second); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	if _, err := store.SaveSession(SessionRecord{GameID: "other", Platform: PlatformSSH}); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}

	records, err := store.RecentSessions("invaders", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("Expected 2 invaders sessions, got %d", len(records))
	}

	// Newest first
	if records[0].Platform != PlatformWindow {
		t.Errorf("Expected newest session first, got platform %q", records[0].Platform)
	}

	got := records[1]
	if got.User != "alice" || got.Ticks != 1200 || got.Overruns != 3 || got.ShotsFired != 42 {
		t.Errorf("Session fields not round-tripped: %+v", got)
	}
	if got.Duration != 12*time.Second {
		t.Errorf("Expected duration 12s, got %v", got.Duration)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt should be populated")
	}
}

func TestStoreRecentAllGames(t *testing.T) {
	store := openTestStore(t)

	store.SaveSession(SessionRecord{GameID: "invaders", Platform: PlatformTerminal})
	store.SaveSession(SessionRecord{GameID: "other", Platform: PlatformTerminal})

	records, err := store.RecentSessions("", 10)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("Expected 2 sessions across games, got %d", len(records))
	}
}

func TestStoreRecentLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveSession(SessionRecord{GameID: "invaders", Platform: PlatformTerminal, Ticks: i})
	}

	records, err := store.RecentSessions("invaders", 3)
	if err != nil {
		t.Fatalf("RecentSessions() failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 sessions with limit, got %d", len(records))
	}
	if records[0].Ticks != 4 || records[2].Ticks != 2 {
		t.Errorf("Sessions not in expected order: %+v", records)
	}
}

func TestStoreSaveRequiresGameID(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveSession(SessionRecord{Platform: PlatformTerminal}); err == nil {
		t.Error("Expected error for session without game id")
	}
}

func TestStoreGameTotals(t *testing.T) {
	store := openTestStore(t)

	totals, err := store.GameTotals("invaders")
	if err != nil {
		t.Fatalf("GameTotals() failed: %v", err)
	}
	if totals.Sessions != 0 || !totals.LastPlayed.IsZero() {
		t.Errorf("Expected empty totals, got %+v", totals)
	}

	store.SaveSession(SessionRecord{GameID: "invaders", Platform: PlatformTerminal, Ticks: 100, Overruns: 1, ShotsFired: 5, Duration: time.Second})
	store.SaveSession(SessionRecord{GameID: "invaders", Platform: PlatformSSH, Ticks: 300, Overruns: 2, ShotsFired: 7, Duration: 3 * time.Second})

	totals, err = store.GameTotals("invaders")
	if err != nil {
		t.Fatalf("GameTotals() failed: %v", err)
	}
	if totals.Sessions != 2 {
		t.Errorf("Expected 2 sessions, got %d", totals.Sessions)
	}
	if totals.Ticks != 400 || totals.Overruns != 3 || totals.ShotsFired != 12 {
		t.Errorf("Unexpected sums: %+v", totals)
	}
	if totals.PlayTime != 4*time.Second {
		t.Errorf("Expected 4s play time, got %v", totals.PlayTime)
	}
	if totals.LastPlayed.IsZero() {
		t.Error("LastPlayed should be populated")
	}
}

func TestStoreClearSessions(t *testing.T) {
	store := openTestStore(t)

	store.SaveSession(SessionRecord{GameID: "invaders", Platform: PlatformTerminal})
	store.SaveSession(SessionRecord{GameID: "other", Platform: PlatformTerminal})

	if err := store.ClearSessions("invaders"); err != nil {
		t.Fatalf("ClearSessions() failed: %v", err)
	}

	records, _ := store.RecentSessions("invaders", 10)
	if len(records) != 0 {
		t.Errorf("Expected 0 invaders sessions after clear, got %d", len(records))
	}

	other, _ := store.RecentSessions("other", 10)
	if len(other) != 1 {
		t.Error("Other game sessions should not be affected")
	}
}

func TestStoreNestedPath(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
