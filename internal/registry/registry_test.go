package registry

import (
	"testing"

	"github.com/vovakirdan/watersort/internal/core"
)

type stubGame struct{ id string }

func (g *stubGame) ID() string { return g.id }
func (g *stubGame) Title() string { return "Stub " + g.id }
func (g *stubGame) Reset(core.RuntimeConfig) {}
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen) {}
func (g *stubGame) State() core.GameState { return core.GameState{} }

func stubFactory(id string) Factory {
	return func() Game { return &stubGame{id: id} }
}

func TestRegisterListCreate(t *testing.T) {
	Register("zz_stub_b", stubFactory("zz_stub_b"))
	Register("zz_stub_a", stubFactory("zz_stub_a"))

	var got []GameInfo
	for _, info := range List() {
		if info.ID == "zz_stub_a" || info.ID == "zz_stub_b" {
			got = append(got, info)
		}
	}
	if len(got) != 2 {
		t.Fatalf("List() returned %d stub entries, expected 2", len(got))
	}
	if got[0].ID != "zz_stub_a" || got[1].ID != "zz_stub_b" {
		t.Errorf("List() order = %v, expected sorted by ID", got)
	}
	if got[0].Title != "Stub zz_stub_a" {
		t.Errorf("Title = %q, expected %q", got[0].Title, "Stub zz_stub_a")
	}

	g, err := Create("zz_stub_a")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	if g.ID() != "zz_stub_a" {
		t.Errorf("Create().ID() = %q, expected %q", g.ID(), "zz_stub_a")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no_such_game"); err == nil {
		t.Error("Create() of unknown id should fail")
	}
}

func TestRegisterPanics(t *testing.T) {
	Register("zz_stub_dup", stubFactory("zz_stub_dup"))

	tests := []struct {
		name string
		id   string
	}{
		{"duplicate", "zz_stub_dup"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("Register(%q) did not panic", tt.id)
				}
			}()
			Register(tt.id, stubFactory(tt.id))
		})
	}
}
