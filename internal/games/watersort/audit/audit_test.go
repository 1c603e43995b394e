package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

func seeds(d core.Difficulty, from int64, n int) []core.LevelConfig {
	cfgs := make([]core.LevelConfig, n)
	for i := range cfgs {
		cfgs[i] = core.PresetConfig(d, from+int64(i))
	}
	return cfgs
}

func TestRunKeepsOrderAndFindsNoInvalid(t *testing.T) {
	cfgs := seeds(core.DifficultyNormal, 100, 40)

	sum, err := Run(context.Background(), cfgs, Options{Workers: 4})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if len(sum.Reports) != len(cfgs) {
		t.Fatalf("len(Reports) = %d, expected %d", len(sum.Reports), len(cfgs))
	}
	for i, r := range sum.Reports {
		if r.Config.Seed != cfgs[i].Seed {
			t.Errorf("Reports[%d].Seed = %d, expected %d", i, r.Config.Seed, cfgs[i].Seed)
		}
		if r.Err != nil {
			t.Errorf("seed %d: %v", r.Config.Seed, r.Err)
		}
	}
	if sum.Invalid != 0 {
		t.Errorf("Invalid = %d, expected 0", sum.Invalid)
	}
}

func TestCheckFallback(t *testing.T) {
	// One color fills its only tube, so every shuffle is already solved.
	r := Check(core.LevelConfig{Seed: 3, Colors: 1, Capacity: 4, ExtraEmpty: 1}, 0)
	if !r.Fallback {
		t.Fatal("expected fallback")
	}
	if r.Err != nil {
		t.Errorf("fallback reported error: %v", r.Err)
	}
	if r.Attempts != core.MaxAttempts {
		t.Errorf("Attempts = %d, expected %d", r.Attempts, core.MaxAttempts)
	}
}

func TestCheckSolvesSmallLevel(t *testing.T) {
	cfg := core.LevelConfig{Seed: 8, Colors: 2, Capacity: 2, ExtraEmpty: 1}
	r := Check(cfg, time.Second)
	if r.Err != nil {
		t.Fatalf("Check() error: %v", r.Err)
	}
	if r.Fallback {
		t.Skip("seed produced the fallback layout")
	}
	if r.Solved && r.Plan == 0 {
		t.Error("solved level reported an empty plan")
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, seeds(core.DifficultyHard, 1, 10), Options{Workers: 2})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, expected context.Canceled", err)
	}
}

func TestReplayRejectsBadPlans(t *testing.T) {
	l := core.Layout{{0, 1}, {0}, {2, 2}, {1}}
	good := []core.Move{
		{From: 0, To: 3, Amount: 1, Color: 1},
		{From: 0, To: 1, Amount: 1, Color: 0},
	}

	tests := []struct {
		name    string
		moves   []core.Move
		wantErr bool
	}{
		{"complete plan", good, false},
		{"stops early", good[:1], true},
		{"illegal move", []core.Move{{From: 1, To: 2, Amount: 1, Color: 0}}, true},
		{"wrong amount", []core.Move{{From: 0, To: 3, Amount: 2, Color: 1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := replay(l, 2, tt.moves)
			if (err != nil) != tt.wantErr {
				t.Errorf("replay() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
