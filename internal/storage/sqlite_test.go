package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/blindfour/internal/core"
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

func result(id string, winner core.PlayerID, reason string, moves int) core.MatchResult {
	return core.MatchResult{
		MatchID:  id,
		GameID:   "blindfour",
		Rules:    "classic",
		Winner:   winner,
		Reason:   reason,
		Moves:    moves,
		Duration: 90 * time.Second,
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

func TestStoreSaveAndLookup(t *testing.T) {
	store := openTestStore(t)

	in := result("m-1", core.Player2, "mutual_inversion", 17)
	in.Inversions = 2
	in.Rules = "invert, blind h3"
	if _, err := store.SaveMatchResult(in); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	rec, err := store.ResultByID("m-1")
	if err != nil {
		t.Fatalf("ResultByID() failed: %v", err)
	}
	if rec == nil {
		t.Fatal("ResultByID() returned nil for a stored match")
	}
	if rec.Winner != core.Player2 || rec.Reason != "mutual_inversion" {
		t.Errorf("winner/reason = %v/%s", rec.Winner, rec.Reason)
	}
	if rec.Moves != 17 || rec.Inversions != 2 {
		t.Errorf("moves/inversions = %d/%d", rec.Moves, rec.Inversions)
	}
	if rec.Duration != 90*time.Second {
		t.Errorf("duration = %v, want 1m30s", rec.Duration)
	}
	if rec.Rules != "invert, blind h3" || rec.GameID != "blindfour" {
		t.Errorf("rules/game = %q/%q", rec.Rules, rec.GameID)
	}

	missing, err := store.ResultByID("nope")
	if err != nil || missing != nil {
		t.Errorf("ResultByID(missing) = %v, %v; want nil, nil", missing, err)
	}
}

func TestStoreRejectsDuplicateAndEmptyIDs(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveMatchResult(result("dup", core.Player1, "line", 7)); err != nil {
		t.Fatal(err)
	}
	if _, err := store.SaveMatchResult(result("dup", core.Player1, "line", 7)); err == nil {
		t.Error("duplicate match id should fail")
	}
	if _, err := store.SaveMatchResult(result("", core.Player1, "line", 7)); err == nil {
		t.Error("empty match id should fail")
	}
}

func TestStoreRecentResults(t *testing.T) {
	store := openTestStore(t)

	for i := range 25 {
		r := result(fmt.Sprintf("m-%02d", i), core.Player1, "line", 7+i)
		if i%5 == 0 {
			r.GameID = "blindfour_chaos"
		}
		if _, err := store.SaveMatchResult(r); err != nil {
			t.Fatal(err)
		}
	}

	recent, err := store.RecentResults("", 0)
	if err != nil {
		t.Fatalf("RecentResults() failed: %v", err)
	}
	if len(recent) != 20 {
		t.Errorf("Expected default limit of 20, got %d", len(recent))
	}
	if recent[0].MatchID != "m-24" {
		t.Errorf("newest first: got %s", recent[0].MatchID)
	}

	chaos, err := store.RecentResults("blindfour_chaos", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(chaos) != 5 {
		t.Errorf("Expected 5 chaos matches, got %d", len(chaos))
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	empty, err := store.Stats("")
	if err != nil {
		t.Fatalf("Stats() on empty db failed: %v", err)
	}
	if empty.Matches != 0 || empty.AvgMoves != 0 {
		t.Errorf("empty stats = %+v", empty)
	}

	for _, r := range []core.MatchResult{
		result("a", core.Player1, "line", 10),
		result("b", core.Player1, "timeout", 4),
		result("c", core.Player2, "inversion", 12),
		result("d", core.PlayerNone, "draw", 42),
	} {
		if _, err := store.SaveMatchResult(r); err != nil {
			t.Fatal(err)
		}
	}

	st, err := store.Stats("blindfour")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if st.Matches != 4 || st.P1Wins != 2 || st.P2Wins != 1 || st.Draws != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.AvgMoves != 17 {
		t.Errorf("AvgMoves = %v, want 17", st.AvgMoves)
	}
	if st.ByReason["line"] != 1 || st.ByReason["draw"] != 1 || len(st.ByReason) != 4 {
		t.Errorf("ByReason = %v", st.ByReason)
	}

	other, err := store.Stats("blindfour_timed")
	if err != nil {
		t.Fatal(err)
	}
	if other.Matches != 0 {
		t.Errorf("filtered stats = %+v", other)
	}
}

func TestStoreClearResults(t *testing.T) {
	store := openTestStore(t)

	store.SaveMatchResult(result("x", core.Player1, "line", 7))
	chaos := result("y", core.Player2, "line", 8)
	chaos.GameID = "blindfour_chaos"
	store.SaveMatchResult(chaos)

	if err := store.ClearResults("blindfour"); err != nil {
		t.Fatalf("ClearResults() failed: %v", err)
	}
	left, _ := store.RecentResults("", 10)
	if len(left) != 1 || left[0].MatchID != "y" {
		t.Errorf("after clearing one game: %+v", left)
	}

	if err := store.ClearResults(""); err != nil {
		t.Fatal(err)
	}
	left, _ = store.RecentResults("", 10)
	if len(left) != 0 {
		t.Errorf("Expected no matches, got %d", len(left))
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
