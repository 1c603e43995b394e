package session

import (
	"errors"
	"testing"
	"time"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	s, _, clock := newTestSession(DefaultPolicy())
	s.RequestHint()
	s.SelectTube(0)
	s.SelectTube(3)
	clock.Advance(7 * time.Second)

	snap := s.Snapshot()
	restored, err := Restore(snap, Options{Policy: DefaultPolicy(), Now: clock.Now})
	if err != nil {
		t.Fatalf("Restore() = %v", err)
	}

	if !restored.Layout().Equal(s.Layout()) {
		t.Error("layout differs after restore")
	}
	if restored.Moves() != 1 {
		t.Errorf("Moves() = %d, expected 1", restored.Moves())
	}
	if restored.Elapsed() != 7*time.Second {
		t.Errorf("Elapsed() = %v, expected 7s", restored.Elapsed())
	}
	if restored.CanHint() {
		t.Error("used hint should stay used after restore")
	}

	if !restored.Undo() {
		t.Fatal("Undo() after restore failed")
	}
	if !restored.CanRedo() {
		t.Error("undo after restore should allow redo")
	}
	if err := restored.Restart(); err != nil {
		t.Fatalf("Restart() = %v", err)
	}
	_, initial := twoMove()
	if !restored.Layout().Equal(initial) {
		t.Error("restart after restore should use the initial layout")
	}
}

func TestSnapshotKeepsRedo(t *testing.T) {
	s, _, _ := newTestSession(Unlimited())
	s.SelectTube(0)
	s.SelectTube(3)
	s.Undo()

	restored, err := Restore(s.Snapshot(), Options{Policy: Unlimited()})
	if err != nil {
		t.Fatalf("Restore() = %v", err)
	}
	if out := restored.Redo(); out.Event != EventMoved {
		t.Errorf("Redo() = %v, expected moved", out.Event)
	}
}

func TestRestoreRejectsCorruptHistory(t *testing.T) {
	s, _, _ := newTestSession(DefaultPolicy())
	s.SelectTube(0)
	s.SelectTube(3)

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"history does not reverse", func(sn *Snapshot) { sn.History[0].Color = 2 }},
		{"history missing", func(sn *Snapshot) { sn.History = nil }},
		{"tube over capacity", func(sn *Snapshot) { sn.Layout[3] = core.Tube{1, 1, 1} }},
		{"shape mismatch", func(sn *Snapshot) { sn.Initial = sn.Initial[:2] }},
		{"bad redo", func(sn *Snapshot) { sn.Redo = []core.Move{{From: 1, To: 1, Amount: 1}} }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := s.Snapshot()
			tc.mutate(&snap)
			_, err := Restore(snap, Options{Policy: DefaultPolicy()})
			if !errors.Is(err, ErrCorruptSnapshot) {
				t.Errorf("Restore() = %v, expected ErrCorruptSnapshot", err)
			}
		})
	}
}
