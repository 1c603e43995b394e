// Package audit checks generated levels in bulk.
package audit

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/solver"
)

// Options configures a run.
type Options struct {
	Workers     int           // Parallel levels; zero means GOMAXPROCS
	SolveBudget time.Duration // Per-level search budget; zero skips solving
}

// Report is the result for one level.
type Report struct {
	Config   core.LevelConfig
	Attempts int
	Fallback bool
	Err      error // Set when the generated layout breaks a rule
	Solved   bool  // A complete plan was found and replays to a win
	Plan     int   // Length of the plan when Solved
	Strategy solver.Strategy
	Elapsed  time.Duration
}

// Summary aggregates a run. Reports keep the order of the input configs.
type Summary struct {
	Reports   []Report
	Fallbacks int
	Invalid   int
	Solved    int
}

// Run generates and checks every config. Levels are independent, so they
// are spread over a bounded pool of workers. It returns early only when
// ctx is cancelled.
func Run(ctx context.Context, cfgs []core.LevelConfig, opts Options) (Summary, error) {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	reports := make([]Report, len(cfgs))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, cfg := range cfgs {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			reports[i] = Check(cfg, opts.SolveBudget)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Summary{}, err
	}

	sum := Summary{Reports: reports}
	for _, r := range reports {
		if r.Fallback {
			sum.Fallbacks++
		}
		if r.Err != nil {
			sum.Invalid++
		}
		if r.Solved {
			sum.Solved++
		}
	}
	return sum, nil
}

// Check generates one level and verifies it.
//
// An accepted layout must hold capacity units of every color, must not be
// solved already and must offer a legal move. A fallback layout must be the
// sorted one. With a positive budget the solver runs and a complete plan is
// replayed move by move.
func Check(cfg core.LevelConfig, budget time.Duration) Report {
	start := time.Now()
	res := core.Generate(cfg)
	cfg = cfg.Normalize()
	r := Report{Config: cfg, Attempts: res.Attempts, Fallback: res.Fallback}

	if res.Fallback {
		if !res.Layout.Equal(core.SortedLayout(cfg)) {
			r.Err = errors.New("fallback layout is not the sorted layout")
		}
		r.Elapsed = time.Since(start)
		return r
	}

	if err := core.Accept(res.Layout, cfg); err != nil {
		r.Err = err
	} else if err := core.ValidateLayout(res.Layout, cfg.Capacity); err != nil {
		r.Err = err
	}
	if r.Err != nil || budget <= 0 {
		r.Elapsed = time.Since(start)
		return r
	}

	plan := solver.New(solver.Options{Budget: budget}).Solve(res.Layout, cfg.Capacity)
	r.Strategy = plan.Strategy
	if plan.Complete {
		if err := replay(res.Layout, cfg.Capacity, plan.Moves); err != nil {
			r.Err = err
		} else {
			r.Solved = true
			r.Plan = len(plan.Moves)
		}
	}
	r.Elapsed = time.Since(start)
	return r
}

// replay applies a plan and checks that every move is legal, matches what
// the layout produces and ends in a win.
func replay(l core.Layout, capacity int, moves []core.Move) error {
	for i, m := range moves {
		next, applied, ok := l.Apply(capacity, m.From, m.To)
		if !ok {
			return fmt.Errorf("plan move %d (%v) is illegal", i+1, m)
		}
		if applied != m {
			return fmt.Errorf("plan move %d is %v, layout gives %v", i+1, m, applied)
		}
		l = next
	}
	if !l.IsWon(capacity) {
		return errors.New("plan does not solve the level")
	}
	return nil
}
