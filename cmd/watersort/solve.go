package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/levels"
	"github.com/vovakirdan/watersort/internal/games/watersort/solver"
)

var (
	flagSolveBudget   time.Duration
	flagSolveMaxDepth int
)

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Print a solution for a level",
	Long: `Generate a level (or load a custom one) and search for a solution.
If no complete plan is found within the budget, the suggested next move
is printed instead.

Examples:
  watersort solve --seed 42
  watersort solve --seed 7 --difficulty expert --budget 5s
  watersort solve --level 03`,
	Args: cobra.NoArgs,
	RunE: runSolve,
}

func init() {
	solveCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset (default from config)")
	solveCmd.Flags().StringVar(&flagLevel, "level", "", "Custom level ID to solve")
	solveCmd.Flags().DurationVar(&flagSolveBudget, "budget", 2*time.Second, "Search time budget")
	solveCmd.Flags().IntVar(&flagSolveMaxDepth, "max-depth", 0, "Deepest search iteration (0 = unbounded)")
}

func runSolve(_ *cobra.Command, _ []string) error {
	var (
		cfg    core.LevelConfig
		layout core.Layout
	)

	if flagLevel != "" {
		catalog, err := levels.Catalog(levelLoaders()...)
		if err != nil {
			return err
		}
		l, err := levels.Find(catalog, flagLevel)
		if err != nil {
			return fmt.Errorf("level %q: %w", flagLevel, err)
		}
		cfg, layout = l.Config(), l.Layout()
		fmt.Printf("Level %s: %s (capacity %d)\n", l.ID, l.Name, l.Capacity)
	} else {
		seed := flagSeed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		cfg = appCfg.LevelFor(flagDifficulty, seed)
		res := core.Generate(cfg)
		layout = res.Layout
		fmt.Printf("Level %s, seed %d: %d colors, capacity %d, %d tubes\n",
			cfg.Difficulty, cfg.Seed, cfg.Colors, cfg.Capacity, cfg.TubeCount())
		if res.Fallback {
			fmt.Printf("Generator fell back to the sorted layout after %d attempts\n", res.Attempts)
		}
	}

	fmt.Println()
	fmt.Println(layout.String())
	fmt.Println()

	s := solver.New(solver.Options{Budget: flagSolveBudget, MaxDepth: flagSolveMaxDepth})
	res := s.Solve(layout, cfg.Capacity)
	logger.Debug("solve", "strategy", res.Strategy, "depth", res.Depth, "nodes", res.Nodes, "elapsed", res.Elapsed)

	fmt.Printf("Strategy: %s  depth: %d  nodes: %d  time: %s\n",
		res.Strategy, res.Depth, res.Nodes, res.Elapsed.Round(time.Millisecond))

	switch {
	case res.Complete && len(res.Moves) == 0:
		fmt.Println("Already solved.")
	case res.Complete:
		fmt.Printf("Solution in %d moves:\n", len(res.Moves))
		for i, m := range res.Moves {
			fmt.Printf("  %3d. pour %d into %d (%d x %s)\n", i+1, m.From+1, m.To+1, m.Amount, m.Color)
		}
	case len(res.Moves) > 0:
		m := res.Moves[0]
		fmt.Println("No complete solution found within the budget.")
		fmt.Printf("Suggested move: pour %d into %d (%d x %s)\n", m.From+1, m.To+1, m.Amount, m.Color)
	default:
		fmt.Println("No legal moves.")
	}
	return nil
}
