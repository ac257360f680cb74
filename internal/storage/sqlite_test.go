package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/star-collider/internal/games/starcollider"
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

func win(score int, elapsed int64) Run {
	return Run{Frontend: "sim", Outcome: starcollider.OutcomeWin, Score: score, ElapsedMillis: elapsed, Stage: 3}
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveRun(win(150, 29_000)); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()
	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 150 {
		t.Errorf("high = %d after reopen, want 150", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	runs := []Run{
		win(100, 79_000),
		win(150, 29_000),
		{Frontend: "terminal", Outcome: starcollider.OutcomeLose, Stage: 2, LoseReason: "health"},
		win(150, 28_500),
		{Frontend: "window", Outcome: starcollider.OutcomeQuit},
	}
	for _, r := range runs {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 winning runs, got %d", len(top))
	}
	if top[0].Score != 150 || top[0].ElapsedMillis != 28_500 {
		t.Errorf("top[0] = %+v, want the faster 150", top[0])
	}
	if top[1].Score != 150 || top[2].Score != 100 {
		t.Errorf("order = %d, %d", top[1].Score, top[2].Score)
	}
	if top[0].Outcome != starcollider.OutcomeWin || top[0].Stage != 3 {
		t.Errorf("top[0] fields lost: %+v", top[0])
	}
	if top[0].CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}

	recent, err := store.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(recent) != 2 || recent[0].Outcome != starcollider.OutcomeQuit || recent[0].Frontend != "window" {
		t.Errorf("recent = %+v", recent)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := range 5 {
		if _, err := store.SaveRun(win((i+1)*10, 60_000)); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	top, err := store.TopScores(3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(top) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(top))
	}
	if top[0].Score != 50 || top[1].Score != 40 || top[2].Score != 30 {
		t.Errorf("Scores not in expected order: %v", top)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 with no runs, got %d", high)
	}

	// Losses never count, whatever their score field says.
	store.SaveRun(Run{Frontend: "sim", Outcome: starcollider.OutcomeLose, Score: 999})
	store.SaveRun(win(120, 59_000))

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 120 {
		t.Errorf("Expected high score of 120, got %d", high)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.Stats()
	if err != nil {
		t.Fatalf("Stats() on empty store failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveRun(win(100, 79_000))
	store.SaveRun(win(140, 39_000))
	store.SaveRun(Run{Frontend: "sim", Outcome: starcollider.OutcomeLose, Stage: 1, LoseReason: "time"})
	store.SaveRun(Run{Frontend: "sim", Outcome: starcollider.OutcomeQuit})

	stats, err = store.Stats()
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 4 || stats.Wins != 2 || stats.Losses != 1 || stats.Quits != 1 {
		t.Errorf("counts = %+v", stats)
	}
	if stats.HighScore != 140 {
		t.Errorf("high = %d, want 140", stats.HighScore)
	}
	if stats.AvgScore != 120 {
		t.Errorf("avg = %v, want 120", stats.AvgScore)
	}
	if stats.FastestWin != 39*time.Second {
		t.Errorf("fastest = %v, want 39s", stats.FastestWin)
	}
	if stats.StageCounts != [4]int{1, 1, 0, 2} {
		t.Errorf("stage counts = %v", stats.StageCounts)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("last played not set")
	}
}

func TestStoreClearRuns(t *testing.T) {
	store := openTestStore(t)
	store.SaveRun(win(100, 79_000))

	if err := store.ClearRuns(); err != nil {
		t.Fatalf("ClearRuns() failed: %v", err)
	}
	runs, err := store.RecentRuns(10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("Expected no runs after clear, got %d", len(runs))
	}
}

func TestNewRun(t *testing.T) {
	res := starcollider.Result{
		Outcome:       starcollider.OutcomeLose,
		ElapsedMillis: 12_000,
		StageReached:  2,
		LoseReason:    "health",
		Frames:        720,
		Seed:          8,
	}
	r := NewRun("ssh", "alice", res)
	if r.Frontend != "ssh" || r.Player != "alice" || r.Stage != 2 || r.LoseReason != "health" || r.Seed != 8 || r.Frames != 720 {
		t.Errorf("NewRun = %+v", r)
	}
}
