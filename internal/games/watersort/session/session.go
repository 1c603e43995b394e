// Package session drives a single water sort game: tube selection, pours,
// undo and redo, hints, win reporting and level progression.
//
// A Session is not safe for concurrent use. Hint searches run on a copy of
// the layout.
package session

import (
	"errors"
	"time"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/solver"
)

// Recorder receives progress events. Implementations decide what a best
// record is; the session only reports.
type Recorder interface {
	RecordBest(seed int64, moves int, elapsed time.Duration) error
	IncrementStreak() error
	ResetStreak() error
	MarkLevelCompleted(seed int64) error
}

// Policy gates undo and hint usage for each level.
type Policy struct {
	UndoLimit  int           // Undos per level; negative means unlimited
	SingleHint bool          // Revoke the hint after it is used once
	HintBudget time.Duration // Solver wall-clock budget
}

// DefaultPolicy returns three undos per level and a single hint.
func DefaultPolicy() Policy {
	return Policy{
		UndoLimit:  3,
		SingleHint: true,
		HintBudget: solver.DefaultBudget,
	}
}

// Unlimited returns a policy without undo or hint restrictions.
func Unlimited() Policy {
	return Policy{UndoLimit: -1, HintBudget: solver.DefaultBudget}
}

// Options configures a Session.
type Options struct {
	Policy   Policy
	Recorder Recorder         // May be nil
	Now      func() time.Time // Clock for elapsed time, defaults to time.Now
}

// Event describes what SelectTube did.
type Event int

const (
	EventIgnored    Event = iota // Nothing happened
	EventSelected                // A tube is now selected
	EventDeselected              // The selected tube was chosen again
	EventMoved                   // A pour was applied
	EventRejected                // The pour was illegal; selection cleared
)

func (e Event) String() string {
	switch e {
	case EventSelected:
		return "selected"
	case EventDeselected:
		return "deselected"
	case EventMoved:
		return "moved"
	case EventRejected:
		return "rejected"
	default:
		return "ignored"
	}
}

// Outcome is the result of a selection or redo.
type Outcome struct {
	Event Event
	Move  core.Move // Set for EventMoved
	Won   bool      // The move solved the level
	Err   error     // Recorder failure; game state is already updated
}

// Hint is a suggested pour and the search that produced it.
type Hint struct {
	From, To int
	Result   solver.Result
}

// Session is the mutable state of one level in play.
type Session struct {
	cfg      core.LevelConfig
	policy   Policy
	recorder Recorder
	now      func() time.Time
	solver   *solver.Solver

	initial  core.Layout
	layout   core.Layout
	fallback bool
	attempts int
	history  []core.Move
	redo     []core.Move
	selected int

	start     time.Time
	won       bool
	wonAfter  time.Duration
	undosUsed int
	hintsUsed int
}

// New generates the layout for cfg and starts a session on it.
func New(cfg core.LevelConfig, opts Options) *Session {
	s := newSession(cfg, opts)
	s.load(cfg)
	return s
}

// NewWithLayout starts a session on a prepared layout, such as a custom level.
// The layout is copied.
func NewWithLayout(cfg core.LevelConfig, layout core.Layout, opts Options) *Session {
	s := newSession(cfg, opts)
	s.initial = layout.Clone()
	s.reset()
	return s
}

func newSession(cfg core.LevelConfig, opts Options) *Session {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Session{
		cfg:      cfg,
		policy:   opts.Policy,
		recorder: opts.Recorder,
		now:      opts.Now,
		solver:   solver.New(solver.Options{Budget: opts.Policy.HintBudget}),
		selected: -1,
	}
}

// load generates a fresh layout for cfg and resets play state.
func (s *Session) load(cfg core.LevelConfig) {
	res := core.Generate(cfg)
	s.cfg = cfg
	s.initial = res.Layout
	s.fallback = res.Fallback
	s.attempts = res.Attempts
	s.reset()
}

// reset returns to the initial layout with empty history and fresh gates.
// A layout that starts solved is marked won without reporting a record.
func (s *Session) reset() {
	s.layout = s.initial.Clone()
	s.history = nil
	s.redo = nil
	s.selected = -1
	s.start = s.now()
	s.undosUsed = 0
	s.hintsUsed = 0
	s.won = s.layout.IsWon(s.cfg.Capacity)
	s.wonAfter = 0
}

// Config returns the level configuration.
func (s *Session) Config() core.LevelConfig { return s.cfg }

// Policy returns the undo and hint policy.
func (s *Session) Policy() Policy { return s.policy }

// Layout returns a copy of the current layout.
func (s *Session) Layout() core.Layout { return s.layout.Clone() }

// Fallback reports whether generation gave up and produced a solved layout.
func (s *Session) Fallback() bool { return s.fallback }

// Attempts returns how many layouts the generator tried for this level.
// It is zero for prepared and restored layouts.
func (s *Session) Attempts() int { return s.attempts }

// Moves returns the number of pours in the history.
func (s *Session) Moves() int { return len(s.history) }

// History returns a copy of the applied moves, oldest first.
func (s *Session) History() []core.Move {
	return append([]core.Move(nil), s.history...)
}

// Elapsed returns play time. It stops advancing once the level is won.
func (s *Session) Elapsed() time.Duration {
	if s.won {
		return s.wonAfter
	}
	return s.now().Sub(s.start)
}

// IsWon reports whether the level is solved.
func (s *Session) IsWon() bool { return s.won }

// Selected returns the selected tube, if any.
func (s *Session) Selected() (int, bool) {
	return s.selected, s.selected >= 0
}

// UndosLeft returns how many undos remain, or -1 when unlimited.
func (s *Session) UndosLeft() int {
	if s.policy.UndoLimit < 0 {
		return -1
	}
	return max(0, s.policy.UndoLimit-s.undosUsed)
}

// CanUndo reports whether Undo would do something.
func (s *Session) CanUndo() bool {
	return !s.won && len(s.history) > 0 && s.UndosLeft() != 0
}

// CanRedo reports whether an undone move is waiting to be replayed.
func (s *Session) CanRedo() bool {
	return !s.won && len(s.redo) > 0
}

// CanHint reports whether RequestHint may run.
func (s *Session) CanHint() bool {
	if s.won {
		return false
	}
	return !s.policy.SingleHint || s.hintsUsed == 0
}

// SelectTube advances the selection state machine.
//
// With nothing selected, choosing a non-empty tube selects it. Choosing the
// selected tube again clears the selection. Choosing another tube pours into
// it when legal; the selection is cleared whether or not the pour happened.
// An out-of-range destination counts as an illegal pour.
func (s *Session) SelectTube(i int) Outcome {
	if s.won {
		return Outcome{Event: EventIgnored}
	}
	inRange := i >= 0 && i < len(s.layout)

	if s.selected < 0 {
		if !inRange || len(s.layout[i]) == 0 {
			return Outcome{Event: EventIgnored}
		}
		s.selected = i
		return Outcome{Event: EventSelected}
	}

	src := s.selected
	s.selected = -1
	if src == i {
		return Outcome{Event: EventDeselected}
	}
	if !inRange {
		return Outcome{Event: EventRejected}
	}

	next, m, ok := s.layout.Apply(s.cfg.Capacity, src, i)
	if !ok {
		return Outcome{Event: EventRejected}
	}
	s.redo = nil
	return s.commit(next, m)
}

// commit records an applied move and reports a win.
func (s *Session) commit(next core.Layout, m core.Move) Outcome {
	s.layout = next
	s.history = append(s.history, m)

	out := Outcome{Event: EventMoved, Move: m}
	if s.layout.IsWon(s.cfg.Capacity) {
		out.Won = true
		out.Err = s.win()
	}
	return out
}

func (s *Session) win() error {
	s.won = true
	s.wonAfter = s.now().Sub(s.start)
	if s.recorder == nil {
		return nil
	}
	return errors.Join(
		s.recorder.RecordBest(s.cfg.Seed, len(s.history), s.wonAfter),
		s.recorder.IncrementStreak(),
	)
}

// Undo reverses the last move and keeps it for Redo.
func (s *Session) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	m := s.history[len(s.history)-1]
	prev, ok := s.layout.Reverse(m)
	if !ok {
		return false
	}
	s.layout = prev
	s.history = s.history[:len(s.history)-1]
	s.redo = append(s.redo, m)
	s.selected = -1
	s.undosUsed++
	return true
}

// Redo replays the most recently undone move.
func (s *Session) Redo() Outcome {
	if !s.CanRedo() {
		return Outcome{Event: EventIgnored}
	}
	m := s.redo[len(s.redo)-1]
	next, applied, ok := s.layout.Apply(s.cfg.Capacity, m.From, m.To)
	if !ok || applied != m {
		s.redo = nil
		return Outcome{Event: EventRejected}
	}
	s.redo = s.redo[:len(s.redo)-1]
	s.selected = -1
	return s.commit(next, applied)
}

// RequestHint searches the current layout and returns the first suggested pour.
// Using a hint closes the gate when the policy allows a single hint.
func (s *Session) RequestHint() (Hint, bool) {
	if !s.CanHint() {
		return Hint{}, false
	}
	res := s.solver.Solve(s.layout.Clone(), s.cfg.Capacity)
	m, ok := res.First()
	if !ok {
		return Hint{Result: res}, false
	}
	s.hintsUsed++
	return Hint{From: m.From, To: m.To, Result: res}, true
}

// Restart replays the same level from its initial layout and resets the streak.
func (s *Session) Restart() error {
	s.reset()
	if s.recorder == nil {
		return nil
	}
	return s.recorder.ResetStreak()
}

// AdvanceLevel marks a won level completed, then generates the level with
// the next seed.
func (s *Session) AdvanceLevel() error {
	var err error
	if s.won && s.recorder != nil {
		err = s.recorder.MarkLevelCompleted(s.cfg.Seed)
	}
	s.load(s.cfg.Next())
	return err
}
