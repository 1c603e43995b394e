package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

// ErrCorruptSnapshot is returned when a snapshot does not describe a reachable state.
var ErrCorruptSnapshot = errors.New("session: corrupt snapshot")

// Snapshot is the complete resumable state of a session.
type Snapshot struct {
	Config    core.LevelConfig `json:"config"`
	Initial   core.Layout      `json:"initial"`
	Layout    core.Layout      `json:"layout"`
	History   []core.Move      `json:"history"`
	Redo      []core.Move      `json:"redo,omitempty"`
	StartedAt time.Time        `json:"started_at"`
	Won       bool             `json:"won"`
	WonAfter  time.Duration    `json:"won_after,omitempty"`
	UndosUsed int              `json:"undos_used"`
	HintsUsed int              `json:"hints_used"`
	Fallback  bool             `json:"fallback,omitempty"`
}

// Snapshot captures the session. The selection cursor is not part of it.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Config:    s.cfg,
		Initial:   s.initial.Clone(),
		Layout:    s.layout.Clone(),
		History:   append([]core.Move(nil), s.history...),
		Redo:      append([]core.Move(nil), s.redo...),
		StartedAt: s.start,
		Won:       s.won,
		WonAfter:  s.wonAfter,
		UndosUsed: s.undosUsed,
		HintsUsed: s.hintsUsed,
		Fallback:  s.fallback,
	}
}

// Restore rebuilds a session from a snapshot. The history must reverse from
// the current layout back to the initial one.
func Restore(snap Snapshot, opts Options) (*Session, error) {
	capacity := snap.Config.Capacity
	if capacity < 1 || len(snap.Layout) != len(snap.Initial) {
		return nil, fmt.Errorf("%w: bad shape", ErrCorruptSnapshot)
	}
	for i, t := range snap.Layout {
		if len(t) > capacity {
			return nil, fmt.Errorf("%w: tube %d over capacity", ErrCorruptSnapshot, i)
		}
	}

	cur := snap.Layout
	for i := len(snap.History) - 1; i >= 0; i-- {
		prev, ok := cur.Reverse(snap.History[i])
		if !ok {
			return nil, fmt.Errorf("%w: move %d does not reverse", ErrCorruptSnapshot, i)
		}
		cur = prev
	}
	if !cur.Equal(snap.Initial) {
		return nil, fmt.Errorf("%w: history does not lead back to the initial layout", ErrCorruptSnapshot)
	}
	for i, m := range snap.Redo {
		if m.Amount < 1 || m.From == m.To {
			return nil, fmt.Errorf("%w: redo move %d is invalid", ErrCorruptSnapshot, i)
		}
	}

	s := newSession(snap.Config, opts)
	s.initial = snap.Initial.Clone()
	s.layout = snap.Layout.Clone()
	s.fallback = snap.Fallback
	s.history = append([]core.Move(nil), snap.History...)
	s.redo = append([]core.Move(nil), snap.Redo...)
	s.start = snap.StartedAt
	s.won = s.layout.IsWon(capacity)
	s.wonAfter = snap.WonAfter
	s.undosUsed = snap.UndosUsed
	s.hintsUsed = snap.HintsUsed
	return s, nil
}
