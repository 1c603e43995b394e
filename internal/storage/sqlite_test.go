package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/session"
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
	dbPath := filepath.Join(tmpDir, "nested", "test.db")

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

func TestRecordBestKeepsBetterResult(t *testing.T) {
	store := openTestStore(t)

	steps := []struct {
		name      string
		moves     int
		elapsed   time.Duration
		wantMoves int
		wantTime  time.Duration
	}{
		{"first result", 20, 30 * time.Second, 20, 30 * time.Second},
		{"more moves ignored", 25, 10 * time.Second, 20, 30 * time.Second},
		{"fewer moves replace", 18, 40 * time.Second, 18, 40 * time.Second},
		{"same moves slower ignored", 18, 50 * time.Second, 18, 40 * time.Second},
		{"same moves faster replace", 18, 35 * time.Second, 18, 35 * time.Second},
	}

	for _, st := range steps {
		if err := store.RecordBest("normal", 7, st.moves, st.elapsed); err != nil {
			t.Fatalf("%s: RecordBest() failed: %v", st.name, err)
		}
		r, err := store.BestRecord("normal", 7)
		if err != nil {
			t.Fatalf("%s: BestRecord() failed: %v", st.name, err)
		}
		if r.Moves != st.wantMoves || r.Time != st.wantTime {
			t.Errorf("%s: record = %d moves in %v, expected %d in %v",
				st.name, r.Moves, r.Time, st.wantMoves, st.wantTime)
		}
	}
}

func TestMarkLevelCompleted(t *testing.T) {
	store := openTestStore(t)

	if err := store.MarkLevelCompleted("hard", 3); err != nil {
		t.Fatalf("MarkLevelCompleted() failed: %v", err)
	}
	r, err := store.BestRecord("hard", 3)
	if err != nil {
		t.Fatalf("BestRecord() failed: %v", err)
	}
	if !r.Completed || r.Solved {
		t.Errorf("expected completed without a result, got %+v", r)
	}

	// A later result fills in moves and keeps the flag.
	if err := store.RecordBest("hard", 3, 12, time.Second); err != nil {
		t.Fatalf("RecordBest() failed: %v", err)
	}
	r, _ = store.BestRecord("hard", 3)
	if !r.Completed || !r.Solved || r.Moves != 12 {
		t.Errorf("unexpected record %+v", r)
	}
}

func TestBestRecordNotFound(t *testing.T) {
	store := openTestStore(t)
	if _, err := store.BestRecord("normal", 1); !errors.Is(err, ErrNotFound) {
		t.Errorf("BestRecord() = %v, expected ErrNotFound", err)
	}
}

func TestBestRecordsByDifficulty(t *testing.T) {
	store := openTestStore(t)

	for seed := int64(1); seed <= 5; seed++ {
		store.RecordBest("normal", seed, 10+int(seed), time.Second)
	}
	store.RecordBest("expert", 1, 40, time.Minute)

	records, err := store.BestRecords("normal", 3)
	if err != nil {
		t.Fatalf("BestRecords() failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records with limit, got %d", len(records))
	}
	for _, r := range records {
		if r.Difficulty != "normal" {
			t.Errorf("record from wrong difficulty: %+v", r)
		}
	}
}

func TestStreak(t *testing.T) {
	store := openTestStore(t)

	st, err := store.Streak("normal")
	if err != nil {
		t.Fatalf("Streak() failed: %v", err)
	}
	if st != (Streak{}) {
		t.Errorf("expected empty streak, got %+v", st)
	}

	store.IncrementStreak("normal")
	store.IncrementStreak("normal")
	store.IncrementStreak("normal")
	store.ResetStreak("normal")
	store.IncrementStreak("normal")

	st, _ = store.Streak("normal")
	if st.Current != 1 || st.Best != 3 {
		t.Errorf("Streak() = %+v, expected current 1 best 3", st)
	}

	other, _ := store.Streak("hard")
	if other.Current != 0 {
		t.Errorf("streaks should be per difficulty, got %+v", other)
	}
}

func TestGetStats(t *testing.T) {
	store := openTestStore(t)
	rec := store.Recorder("normal")

	rec.RecordBest(1, 30, time.Second)
	rec.RecordBest(2, 22, time.Second)
	rec.MarkLevelCompleted(1)
	rec.MarkLevelCompleted(5)
	rec.IncrementStreak()

	stats, err := store.GetStats("normal")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Solved != 2 {
		t.Errorf("Solved = %d, expected 2", stats.Solved)
	}
	if stats.Completed != 2 {
		t.Errorf("Completed = %d, expected 2", stats.Completed)
	}
	if stats.FewestMoves != 22 {
		t.Errorf("FewestMoves = %d, expected 22", stats.FewestMoves)
	}
	if stats.Streak.Current != 1 {
		t.Errorf("Streak.Current = %d, expected 1", stats.Streak.Current)
	}

	if err := store.ClearRecords("normal"); err != nil {
		t.Fatalf("ClearRecords() failed: %v", err)
	}
	stats, _ = store.GetStats("normal")
	if stats.Solved != 0 || stats.Streak.Best != 0 {
		t.Errorf("expected cleared stats, got %+v", stats)
	}
}

func TestRecorderDrivesSession(t *testing.T) {
	store := openTestStore(t)
	cfg := core.LevelConfig{Seed: 11, Colors: 3, Capacity: 2, ExtraEmpty: 1, Difficulty: "custom"}
	layout := core.Layout{{0, 1}, {0}, {2, 2}, {1}}

	s := session.NewWithLayout(cfg, layout, session.Options{
		Policy:   session.DefaultPolicy(),
		Recorder: store.Recorder("custom"),
	})
	s.SelectTube(0)
	s.SelectTube(3)
	s.SelectTube(0)
	if out := s.SelectTube(1); !out.Won || out.Err != nil {
		t.Fatalf("expected clean win, got %+v", out)
	}
	if err := s.AdvanceLevel(); err != nil {
		t.Fatalf("AdvanceLevel() = %v", err)
	}

	r, err := store.BestRecord("custom", 11)
	if err != nil {
		t.Fatalf("BestRecord() failed: %v", err)
	}
	if r.Moves != 2 || !r.Completed {
		t.Errorf("unexpected record %+v", r)
	}
	st, _ := store.Streak("custom")
	if st.Current != 1 {
		t.Errorf("Streak.Current = %d, expected 1", st.Current)
	}
}

func TestSaveLoadSession(t *testing.T) {
	store := openTestStore(t)
	cfg := core.PresetConfig(core.DifficultyHard, 5)
	s := session.New(cfg, session.Options{Policy: session.DefaultPolicy()})
	m := s.Layout().LegalMoves(cfg.Capacity)[0]
	s.SelectTube(m.From)
	s.SelectTube(m.To)

	id, err := store.SaveSession("", s.Snapshot())
	if err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	if id == "" {
		t.Fatal("expected a generated id")
	}

	saved, err := store.LoadSession(id)
	if err != nil {
		t.Fatalf("LoadSession() failed: %v", err)
	}
	if saved.Difficulty != "hard" || saved.Seed != 5 {
		t.Errorf("unexpected metadata %+v", saved)
	}

	restored, err := session.Restore(saved.Snapshot, session.Options{Policy: session.DefaultPolicy()})
	if err != nil {
		t.Fatalf("Restore() failed: %v", err)
	}
	if !restored.Layout().Equal(s.Layout()) {
		t.Error("layout changed through storage")
	}
	if restored.Moves() != 1 {
		t.Errorf("Moves() = %d, expected 1", restored.Moves())
	}
	if !saved.Snapshot.StartedAt.Equal(s.Snapshot().StartedAt) {
		t.Error("start time changed through storage")
	}
}

func TestLatestSession(t *testing.T) {
	store := openTestStore(t)
	clock := time.Unix(100, 0)
	store.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	first := session.New(core.PresetConfig(core.DifficultyNormal, 1), session.Options{})
	second := session.New(core.PresetConfig(core.DifficultyNormal, 2), session.Options{})

	id1, _ := store.SaveSession("", first.Snapshot())
	id2, _ := store.SaveSession("", second.Snapshot())

	latest, err := store.LatestSession("normal")
	if err != nil {
		t.Fatalf("LatestSession() failed: %v", err)
	}
	if latest.ID != id2 {
		t.Errorf("LatestSession() = %s, expected %s", latest.ID, id2)
	}

	// Overwriting the first makes it the latest.
	if _, err := store.SaveSession(id1, first.Snapshot()); err != nil {
		t.Fatalf("SaveSession() failed: %v", err)
	}
	latest, _ = store.LatestSession("normal")
	if latest.ID != id1 {
		t.Errorf("LatestSession() = %s, expected %s", latest.ID, id1)
	}

	store.DeleteSession(id1)
	store.DeleteSession(id2)
	if _, err := store.LatestSession("normal"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LatestSession() = %v, expected ErrNotFound", err)
	}
}
