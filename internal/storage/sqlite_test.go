package storage

import (
	"sync"
	"testing"

	"github.com/google/uuid"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open()
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveRun(RunResult{GameID: "asteroids", Score: score}); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}
	// Different game
	if _, err := store.SaveRun(RunResult{GameID: "other", Score: 500}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	scores, err := store.TopScores("asteroids", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, w)
		}
	}
}

func TestStoreSaveRun(t *testing.T) {
	store := openTestStore(t)

	runID, err := store.SaveRun(RunResult{GameID: "asteroids", Player: "ada", Score: 340, Level: 4})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := uuid.Parse(runID); err != nil {
		t.Errorf("SaveRun() run ID %q is not a UUID: %v", runID, err)
	}

	got, err := store.RunByID(runID)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got == nil {
		t.Fatal("RunByID() = nil, expected the saved run")
	}
	if got.Player != "ada" || got.Score != 340 || got.Level != 4 {
		t.Errorf("RunByID() = %+v, expected ada/340/4", got)
	}

	missing, err := store.RunByID(uuid.NewString())
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if missing != nil {
		t.Errorf("RunByID() unknown = %+v, expected nil", missing)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(RunResult{GameID: "test", Score: (i + 1) * 100}) //nolint:errcheck
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("asteroids")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveRun(RunResult{GameID: "asteroids", Score: 100}) //nolint:errcheck
	store.SaveRun(RunResult{GameID: "asteroids", Score: 300}) //nolint:errcheck
	store.SaveRun(RunResult{GameID: "asteroids", Score: 200}) //nolint:errcheck

	high, err = store.HighScore("asteroids")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveRun(RunResult{GameID: "asteroids", Score: 100, Level: 2}) //nolint:errcheck
	store.SaveRun(RunResult{GameID: "asteroids", Score: 300, Level: 5}) //nolint:errcheck

	stats, err := store.GetGameStats("asteroids")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 2 || stats.HighScore != 300 || stats.BestLevel != 5 {
		t.Errorf("GetGameStats() = %+v, expected 2 games, high 300, level 5", stats)
	}
	if stats.AvgScore != 200 || stats.TotalScore != 400 {
		t.Errorf("GetGameStats() avg/total = %v/%d, expected 200/400", stats.AvgScore, stats.TotalScore)
	}
}

func TestStoresAreIndependent(t *testing.T) {
	a := openTestStore(t)
	b := openTestStore(t)

	a.SaveRun(RunResult{GameID: "asteroids", Score: 100}) //nolint:errcheck

	scores, err := b.TopScores("asteroids", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 0 {
		t.Errorf("a second in-memory store saw %d scores, expected 0", len(scores))
	}
}

func TestStoreConcurrentSaves(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			if _, err := store.SaveRun(RunResult{GameID: "asteroids", Score: n * 10}); err != nil {
				t.Errorf("SaveRun() failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	stats, err := store.GetGameStats("asteroids")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 8 {
		t.Errorf("GamesCount = %d, expected 8", stats.GamesCount)
	}
}
