package watersort

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/watersort/internal/config"
	platformcore "github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/registry"
	"github.com/vovakirdan/watersort/internal/storage"
)

func useDeps(t *testing.T, d Deps) {
	t.Helper()
	Configure(d)
	t.Cleanup(func() { Configure(Deps{}) })
}

func press(a platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	f.Set(a)
	return f
}

func pick(i int) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	f.SetPick(i)
	return f
}

func newSeeded(t *testing.T, difficulty string, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: seed, Difficulty: difficulty})
	return g
}

func newCustom(t *testing.T, level string) *Game {
	t.Helper()
	g := NewCustom()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Level: level})
	return g
}

func TestRegistered(t *testing.T) {
	for _, id := range []string{"watersort", "watersort_custom"} {
		g, err := registry.Create(id)
		if err != nil {
			t.Fatalf("Create(%q) failed: %v", id, err)
		}
		if g.ID() != id {
			t.Errorf("ID() = %q, expected %q", g.ID(), id)
		}
	}
}

func TestResetUsesConfiguredDifficulty(t *testing.T) {
	useDeps(t, Deps{Config: config.DefaultConfig()})

	g := newSeeded(t, "hard", 42)
	cfg := g.Session().Config()
	want := config.DefaultConfig().Difficulties["hard"]
	if cfg.Colors != want.Colors || cfg.Capacity != want.Capacity {
		t.Errorf("Config() = %+v, expected colors %d capacity %d", cfg, want.Colors, want.Capacity)
	}
	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, expected 42", cfg.Seed)
	}

	unknown := newSeeded(t, "nightmare", 42)
	if got := string(unknown.Session().Config().Difficulty); got != "normal" {
		t.Errorf("unknown difficulty resolved to %q, expected normal", got)
	}
}

func TestResetIsDeterministic(t *testing.T) {
	useDeps(t, Deps{})

	a := newSeeded(t, "normal", 99)
	b := newSeeded(t, "normal", 99)
	if !a.Session().Layout().Equal(b.Session().Layout()) {
		t.Error("same seed produced different layouts")
	}
}

func TestPickPoursBetweenTubes(t *testing.T) {
	useDeps(t, Deps{})
	g := newCustom(t, "01")

	g.Step(pick(0))
	if sel, ok := g.Session().Selected(); !ok || sel != 0 {
		t.Fatalf("Selected() = %d, %v, expected 0, true", sel, ok)
	}

	res := g.Step(pick(2))
	if res.State.Moves != 1 {
		t.Errorf("Moves = %d, expected 1", res.State.Moves)
	}
	if got := len(g.Session().Layout()[2]); got != 1 {
		t.Errorf("tube 2 holds %d units, expected 1", got)
	}
	if g.Cursor() != 2 {
		t.Errorf("Cursor() = %d, expected 2", g.Cursor())
	}
}

func TestCursorAndSelect(t *testing.T) {
	useDeps(t, Deps{})
	g := newCustom(t, "01")

	g.Step(press(platformcore.ActionLeft))
	if g.Cursor() != 3 {
		t.Errorf("Cursor() after left = %d, expected wrap to 3", g.Cursor())
	}
	g.Step(press(platformcore.ActionRight))
	g.Step(press(platformcore.ActionSelect))
	if sel, ok := g.Session().Selected(); !ok || sel != 0 {
		t.Fatalf("Selected() = %d, %v, expected 0, true", sel, ok)
	}
	g.Step(press(platformcore.ActionBack))
	if _, ok := g.Session().Selected(); ok {
		t.Error("Back should clear the selection")
	}
}

func TestRejectedPourShowsMessage(t *testing.T) {
	useDeps(t, Deps{})
	g := newCustom(t, "01")

	// Tube 0 tops with blue and tube 1 with red.
	g.Step(pick(0))
	g.Step(pick(1))
	if g.Message() == "" {
		t.Error("expected a message after an illegal pour")
	}
	if g.State().Moves != 0 {
		t.Errorf("Moves = %d, expected 0", g.State().Moves)
	}
}

func TestUndoRedoActions(t *testing.T) {
	useDeps(t, Deps{})
	g := newCustom(t, "01")

	g.Step(pick(0))
	g.Step(pick(2))
	g.Step(press(platformcore.ActionUndo))
	if g.State().Moves != 0 {
		t.Errorf("Moves after undo = %d, expected 0", g.State().Moves)
	}
	g.Step(press(platformcore.ActionRedo))
	if g.State().Moves != 1 {
		t.Errorf("Moves after redo = %d, expected 1", g.State().Moves)
	}
}

func TestHintMovesCursor(t *testing.T) {
	useDeps(t, Deps{})
	g := newCustom(t, "01")

	g.Step(press(platformcore.ActionHint))
	if g.hint == nil {
		t.Fatal("expected a hint")
	}
	if g.Cursor() != g.hint.From {
		t.Errorf("Cursor() = %d, expected hint source %d", g.Cursor(), g.hint.From)
	}
	if g.Session().CanHint() {
		t.Error("single hint policy should close the hint gate")
	}

	g.Step(press(platformcore.ActionHint))
	if g.Message() != "Hint already used" {
		t.Errorf("Message() = %q, expected %q", g.Message(), "Hint already used")
	}
}

func TestDebugLogFields(t *testing.T) {
	var buf bytes.Buffer
	useDeps(t, Deps{Logger: log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})})

	newSeeded(t, "normal", 5)
	g := newCustom(t, "01")
	g.Step(pick(0))
	g.Step(pick(1))
	g.Step(press(platformcore.ActionHint))

	out := buf.String()
	for _, want := range []string{"level generated", "attempts=", "pour rejected", "complete=", "plan="} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestPauseBlocksInput(t *testing.T) {
	useDeps(t, Deps{})
	g := newCustom(t, "01")

	res := g.Step(press(platformcore.ActionPause))
	if !res.State.Paused {
		t.Fatal("expected paused state")
	}
	g.Step(pick(0))
	if _, ok := g.Session().Selected(); ok {
		t.Error("input should be ignored while paused")
	}
	g.Step(press(platformcore.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestTooSmallScreen(t *testing.T) {
	useDeps(t, Deps{})
	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 20, ScreenH: 8, Seed: 1})

	if !g.State().Paused {
		t.Error("tiny screen should report paused")
	}
	screen := platformcore.NewScreen(20, 8)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too small message")
	}
}

func TestCustomAdvanceWalksCatalog(t *testing.T) {
	useDeps(t, Deps{})
	g := newCustom(t, "02")

	if g.catalog[g.levelIdx].ID != "02" {
		t.Fatalf("started at %q, expected 02", g.catalog[g.levelIdx].ID)
	}
	g.Step(press(platformcore.ActionNext))
	if got := g.catalog[g.levelIdx].ID; got != "03" {
		t.Errorf("level after next = %q, expected 03", got)
	}
	if got := g.Session().Config().Capacity; got != 3 {
		t.Errorf("Capacity = %d, expected 3", got)
	}

	g.Step(press(platformcore.ActionNext))
	if got := g.catalog[g.levelIdx].ID; got != "03" {
		t.Errorf("next on the last level moved to %q", got)
	}
}

func TestSeededAdvanceUsesNextSeed(t *testing.T) {
	useDeps(t, Deps{})
	g := newSeeded(t, "normal", 10)

	g.Step(press(platformcore.ActionNext))
	if got := g.Session().Config().Seed; got != 11 {
		t.Errorf("Seed after next = %d, expected 11", got)
	}
}

func TestSuspendAndResume(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	useDeps(t, Deps{Store: store})

	g := newSeeded(t, "normal", 7)
	capacity := g.Session().Config().Capacity
	moves := g.Session().Layout().LegalMoves(capacity)
	if len(moves) == 0 {
		t.Fatal("generated level has no legal move")
	}
	g.Step(pick(moves[0].From))
	g.Step(pick(moves[0].To))
	if err := g.Suspend(); err != nil {
		t.Fatalf("Suspend() failed: %v", err)
	}

	resumed := New()
	resumed.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 999, Difficulty: "normal", Resume: true})
	if resumed.State().Moves != 1 {
		t.Errorf("Moves after resume = %d, expected 1", resumed.State().Moves)
	}
	if got := resumed.Session().Config().Seed; got != 7 {
		t.Errorf("resumed seed = %d, expected 7", got)
	}
	if !resumed.Session().Layout().Equal(g.Session().Layout()) {
		t.Error("resumed layout differs from the saved one")
	}
}

func TestResumeWithoutSaveStartsFresh(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	useDeps(t, Deps{Store: store})

	g := New()
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 5, Resume: true})
	if got := g.Session().Config().Seed; got != 5 {
		t.Errorf("Seed = %d, expected 5", got)
	}
}

func TestRenderShowsHUDAndTubes(t *testing.T) {
	useDeps(t, Deps{})
	g := newCustom(t, "01")

	screen := platformcore.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"Moves: 0", "First Pour", "└──┘", "▲"} {
		if !strings.Contains(out, want) {
			t.Errorf("render output missing %q", want)
		}
	}
}

func TestScreenColorCoversPalette(t *testing.T) {
	seen := make(map[platformcore.Color]bool)
	for c, sc := range liquidColors {
		if seen[sc] {
			t.Errorf("color %v shares a screen color", c)
		}
		seen[sc] = true
	}
	if len(liquidColors) != 14 {
		t.Errorf("len(liquidColors) = %d, expected 14", len(liquidColors))
	}
}

func TestResizeKeepsProgress(t *testing.T) {
	useDeps(t, Deps{})
	g := newCustom(t, "01")

	g.Step(pick(0))
	g.Step(pick(2))
	g.Resize(10, 5)
	if !g.State().Paused {
		t.Error("small resize should pause")
	}
	g.Resize(80, 24)
	if g.State().Paused {
		t.Error("resize back should resume")
	}
	if g.State().Moves != 1 {
		t.Errorf("Moves after resize = %d, expected 1", g.State().Moves)
	}
}
