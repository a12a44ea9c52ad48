package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

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

func TestStoreSaveAndRetrieve(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save some scores
	_, err = store.SaveRun(Run{GameID: "platformer", Score: 100})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	_, err = store.SaveRun(Run{GameID: "platformer", Score: 50})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	_, err = store.SaveRun(Run{GameID: "platformer", Score: 200})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	// Different game
	_, err = store.SaveRun(Run{GameID: "platformer_course", Score: 500})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	// Retrieve top scores for endless
	scores, err := store.TopScores("platformer", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 {
		t.Errorf("Expected highest score to be 200, got %d", scores[0].Score)
	}
	if scores[1].Score != 100 {
		t.Errorf("Expected second score to be 100, got %d", scores[1].Score)
	}
	if scores[2].Score != 50 {
		t.Errorf("Expected third score to be 50, got %d", scores[2].Score)
	}

	// Retrieve top scores for course
	courseScores, err := store.TopScores("platformer_course", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(courseScores) != 1 {
		t.Errorf("Expected 1 course score, got %d", len(courseScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Save 5 scores
	for i := 0; i < 5; i++ {
		store.SaveRun(Run{GameID: "test", Score: (i + 1) * 100})
	}

	// Request only top 3
	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// No scores yet
	high, err := store.HighScore("platformer")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	// Add scores
	store.SaveRun(Run{GameID: "platformer", Score: 100})
	store.SaveRun(Run{GameID: "platformer", Score: 300})
	store.SaveRun(Run{GameID: "platformer", Score: 200})

	high, err = store.HighScore("platformer")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	store.SaveRun(Run{GameID: "platformer", Score: 100})
	store.SaveRun(Run{GameID: "platformer", Score: 200})
	store.SaveRun(Run{GameID: "platformer_course", Score: 300})

	// Clear only endless scores
	err = store.ClearScores("platformer")
	if err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	// Endless should be empty
	endlessScores, _ := store.TopScores("platformer", 10)
	if len(endlessScores) != 0 {
		t.Errorf("Expected 0 endless scores after clear, got %d", len(endlessScores))
	}

	// Course should still have scores
	courseScores, _ := store.TopScores("platformer_course", 10)
	if len(courseScores) != 1 {
		t.Errorf("Course scores should not be affected by clearing endless")
	}
}

func TestStoreAllScores(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Add many scores
	for i := 0; i < 20; i++ {
		store.SaveRun(Run{GameID: "test", Score: i*10})
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	// Test that ~ expansion works (we won't actually write to home)
	// Just verify the function doesn't crash
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

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveRunWithReplay(t *testing.T) {
	store := openTestStore(t)

	data := []byte{0x85, 0xa1, 0x76, 0x01}
	scoreID, err := store.SaveRun(Run{
		GameID:  "platformer_course",
		Score:   625,
		Cleared: true,
		Seed:    -42,
		Replay:  data,
	})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if scoreID == 0 {
		t.Error("SaveRun() returned zero score ID")
	}

	scores, err := store.TopScores("platformer_course", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("Expected 1 score, got %d", len(scores))
	}
	entry := scores[0]
	if !entry.Cleared || entry.Score != 625 || entry.ReplayID == 0 {
		t.Errorf("Unexpected score entry: %+v", entry)
	}

	r, err := store.Replay(entry.ReplayID)
	if err != nil {
		t.Fatalf("Replay() failed: %v", err)
	}
	if r.GameID != "platformer_course" || r.Seed != -42 || r.Score != 625 {
		t.Errorf("Unexpected replay header: %+v", r)
	}
	if string(r.Data) != string(data) {
		t.Errorf("Replay data = %x, want %x", r.Data, data)
	}
}

func TestStoreSaveRunWithoutReplay(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.SaveRun(Run{GameID: "platformer", Score: 10}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	scores, _ := store.TopScores("platformer", 10)
	if len(scores) != 1 || scores[0].ReplayID != 0 || scores[0].Cleared {
		t.Errorf("Unexpected scores: %+v", scores)
	}

	replays, err := store.RecentReplays("", 10)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(replays) != 0 {
		t.Errorf("Expected no replays, got %d", len(replays))
	}
}

func TestStoreReplayNotFound(t *testing.T) {
	store := openTestStore(t)

	_, err := store.Replay(99)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestStoreRecentReplays(t *testing.T) {
	store := openTestStore(t)

	for i := 1; i <= 5; i++ {
		store.SaveRun(Run{GameID: "platformer", Score: i * 10, Seed: int64(i), Replay: []byte{byte(i)}})
	}
	store.SaveRun(Run{GameID: "platformer_course", Score: 1, Replay: []byte{0xff}})

	replays, err := store.RecentReplays("platformer", 3)
	if err != nil {
		t.Fatalf("RecentReplays() failed: %v", err)
	}
	if len(replays) != 3 {
		t.Fatalf("Expected 3 replays, got %d", len(replays))
	}
	// Newest first
	if replays[0].Seed != 5 || replays[2].Seed != 3 {
		t.Errorf("Replays not newest first: %+v", replays)
	}
	if replays[0].Data != nil {
		t.Error("RecentReplays should not load replay data")
	}

	all, _ := store.RecentReplays("", 100)
	if len(all) != 6 {
		t.Errorf("Expected 6 replays across games, got %d", len(all))
	}
}

func TestStoreClearScoresRemovesReplays(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "platformer", Score: 10, Replay: []byte{1}})
	store.SaveRun(Run{GameID: "platformer_course", Score: 20, Replay: []byte{2}})

	if err := store.ClearScores("platformer"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	left, _ := store.RecentReplays("", 10)
	if len(left) != 1 || left[0].GameID != "platformer_course" {
		t.Errorf("Expected only the course replay to remain, got %+v", left)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(Run{GameID: "platformer_course", Score: 625, Cleared: true})
	store.SaveRun(Run{GameID: "platformer_course", Score: 125})
	store.SaveRun(Run{GameID: "platformer", Score: 40})

	stats, err := store.GetGameStats("platformer_course")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.Clears != 1 || stats.HighScore != 625 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.AvgScore != 375 || stats.TotalScore != 750 {
		t.Errorf("Unexpected avg/total: %v/%d", stats.AvgScore, stats.TotalScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed should be set")
	}

	empty, err := store.GetGameStats("unknown")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("Expected stats for 2 games, got %d", len(all))
	}
	if all["platformer"].HighScore != 40 || all["platformer_course"].Clears != 1 {
		t.Errorf("Unexpected per-game stats: %+v %+v", all["platformer"], all["platformer_course"])
	}
}
