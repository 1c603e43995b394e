// Package solver finds move plans and hints for water sort layouts.
//
// Search runs in three stages under a wall-clock budget:
//  1. iterative deepening depth-first search for a complete plan
//  2. heuristic scoring of single moves when the budget runs out
//  3. the first legal move, if scoring produced nothing
//
// Layouts are values, so a search never aliases the caller's state and can
// run on a snapshot off the interactive path.
package solver

import (
	"time"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

// DefaultBudget is the wall-clock budget used for interactive hints.
const DefaultBudget = 100 * time.Millisecond

// Strategy names the stage that produced a Result.
type Strategy int

const (
	StrategyNone       Strategy = iota // No legal move exists
	StrategyPlan                       // Complete plan from iterative deepening
	StrategyHeuristic                  // Best-scoring single move
	StrategyFirstLegal                 // First legal move in scan order
)

func (s Strategy) String() string {
	switch s {
	case StrategyPlan:
		return "plan"
	case StrategyHeuristic:
		return "heuristic"
	case StrategyFirstLegal:
		return "first-legal"
	default:
		return "none"
	}
}

// Result is always returned, even when nothing could be suggested.
type Result struct {
	Moves    []core.Move   // Full plan when Complete, otherwise at most one move
	Complete bool          // Moves solves the layout
	Elapsed  time.Duration // Time spent searching
	Depth    int           // Deepest iteration started
	Nodes    int           // Search nodes expanded
	Strategy Strategy
}

// First returns the first suggested move.
func (r Result) First() (core.Move, bool) {
	if len(r.Moves) == 0 {
		return core.Move{}, false
	}
	return r.Moves[0], true
}

// Options configures a Solver.
type Options struct {
	Budget   time.Duration    // Wall-clock budget; zero or negative skips the search
	MaxDepth int              // Deepest iteration to try; zero means unbounded
	Now      func() time.Time // Clock, defaults to time.Now
}

// Solver runs time-boxed searches. It holds no per-search state and is safe
// for concurrent use.
type Solver struct {
	opts Options
}

// New creates a solver.
func New(opts Options) *Solver {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Solver{opts: opts}
}

// FindHint searches layout with the configuration's capacity and the given budget.
func FindHint(layout core.Layout, cfg core.LevelConfig, budget time.Duration) Result {
	return New(Options{Budget: budget}).Solve(layout, cfg.Capacity)
}

// Solve looks for a complete plan within the budget and falls back to a
// single suggested move. A layout that is already solved yields a complete
// empty plan.
func (s *Solver) Solve(layout core.Layout, capacity int) Result {
	start := s.opts.Now()
	if layout.IsWon(capacity) {
		return Result{Complete: true, Strategy: StrategyPlan}
	}

	res := s.iterativeDeepening(layout, capacity, start)
	if res.Complete {
		res.Elapsed = s.opts.Now().Sub(start)
		return res
	}

	if m, ok := BestMove(layout, capacity); ok {
		res.Moves = []core.Move{m}
		res.Strategy = StrategyHeuristic
	} else if m, ok := firstLegal(layout, capacity); ok {
		res.Moves = []core.Move{m}
		res.Strategy = StrategyFirstLegal
	}
	res.Elapsed = s.opts.Now().Sub(start)
	return res
}

// iterativeDeepening runs depth-limited searches with limits 1, 2, 3, ...
// until a plan is found, the deadline passes, or an iteration finishes
// without reaching its limit, which means the reachable space is exhausted.
func (s *Solver) iterativeDeepening(layout core.Layout, capacity int, start time.Time) Result {
	st := &search{
		capacity: capacity,
		deadline: start.Add(s.opts.Budget),
		now:      s.opts.Now,
	}

	var res Result
	for limit := 1; s.opts.MaxDepth == 0 || limit <= s.opts.MaxDepth; limit++ {
		if st.expiredNow() {
			break
		}
		res.Depth = limit
		st.reset()

		found := st.dfs(layout, 0, limit)
		res.Nodes = st.nodes
		if found {
			res.Moves = append([]core.Move(nil), st.path...)
			res.Complete = true
			res.Strategy = StrategyPlan
			return res
		}
		if st.expired || !st.cutoff {
			break
		}
	}
	return res
}

// search holds the mutable state of one depth-limited traversal.
type search struct {
	capacity int
	deadline time.Time
	now      func() time.Time

	visited map[string]struct{}
	path    []core.Move
	nodes   int
	cutoff  bool // Some branch stopped at the depth limit
	expired bool
}

func (s *search) reset() {
	s.visited = make(map[string]struct{})
	s.path = s.path[:0]
	s.cutoff = false
}

func (s *search) expiredNow() bool {
	if !s.now().Before(s.deadline) {
		s.expired = true
	}
	return s.expired
}

// dfs extends s.path towards a solved layout. Pairs are tried in ascending
// source then destination order and the first success wins.
func (s *search) dfs(layout core.Layout, depth, limit int) bool {
	if s.expiredNow() {
		return false
	}
	s.nodes++

	if layout.IsWon(s.capacity) {
		return true
	}
	if depth >= limit {
		s.cutoff = true
		return false
	}

	key := layout.Key()
	if _, seen := s.visited[key]; seen {
		return false
	}
	s.visited[key] = struct{}{}

	for src := range layout {
		for dst := range layout {
			next, m, ok := layout.Apply(s.capacity, src, dst)
			if !ok {
				continue
			}
			s.path = append(s.path, m)
			if s.dfs(next, depth+1, limit) {
				return true
			}
			s.path = s.path[:len(s.path)-1]
			if s.expired {
				return false
			}
		}
	}
	return false
}

func firstLegal(layout core.Layout, capacity int) (core.Move, bool) {
	moves := layout.LegalMoves(capacity)
	if len(moves) == 0 {
		return core.Move{}, false
	}
	return moves[0], true
}
