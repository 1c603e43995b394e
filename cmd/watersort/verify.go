package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/games/watersort/audit"
	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

var (
	flagVerifyFrom    int64
	flagVerifyCount   int
	flagVerifyWorkers int
	flagVerifyBudget  time.Duration
	flagVerifyAll     bool
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Check generated levels in bulk",
	Long: `Generate a range of seeds and check every level: accepted layouts
must be valid, unsolved and playable; fallbacks must be the sorted layout.
With --budget each level is also solved and the plan replayed.

Examples:
  watersort verify --count 1000
  watersort verify --difficulty expert --from 500 --count 200 --budget 200ms
  watersort verify --all --workers 8`,
	Args: cobra.NoArgs,
	RunE: runVerify,
}

func init() {
	verifyCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset (default from config)")
	verifyCmd.Flags().BoolVar(&flagVerifyAll, "all", false, "Check every configured difficulty")
	verifyCmd.Flags().Int64Var(&flagVerifyFrom, "from", 1, "First seed")
	verifyCmd.Flags().IntVar(&flagVerifyCount, "count", 100, "Number of seeds")
	verifyCmd.Flags().IntVar(&flagVerifyWorkers, "workers", 0, "Parallel workers (0 = GOMAXPROCS)")
	verifyCmd.Flags().DurationVar(&flagVerifyBudget, "budget", 0, "Per-level solve budget (0 = skip solving)")
}

func runVerify(cmd *cobra.Command, _ []string) error {
	if flagVerifyCount <= 0 {
		return fmt.Errorf("--count must be positive")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	difficulties := []string{appCfg.Resolve(flagDifficulty)}
	if flagVerifyAll {
		difficulties = appCfg.DifficultyNames()
	}

	invalid := 0
	for _, d := range difficulties {
		n, err := verifyDifficulty(ctx, d)
		if err != nil {
			return err
		}
		invalid += n
	}
	if invalid > 0 {
		return fmt.Errorf("%d invalid level(s)", invalid)
	}
	return nil
}

func verifyDifficulty(ctx context.Context, difficulty string) (int, error) {
	cfgs := make([]core.LevelConfig, flagVerifyCount)
	for i := range cfgs {
		cfgs[i] = appCfg.LevelFor(difficulty, flagVerifyFrom+int64(i))
	}

	start := time.Now()
	sum, err := audit.Run(ctx, cfgs, audit.Options{Workers: flagVerifyWorkers, SolveBudget: flagVerifyBudget})
	if err != nil {
		return 0, fmt.Errorf("verify %s: %w", difficulty, err)
	}
	elapsed := time.Since(start)

	for _, r := range sum.Reports {
		if r.Err != nil {
			fmt.Printf("  %s seed %d: %v\n", difficulty, r.Config.Seed, r.Err)
		}
	}

	fmt.Printf("%s: %d levels, %d fallbacks, %d invalid", difficulty, len(sum.Reports), sum.Fallbacks, sum.Invalid)
	if flagVerifyBudget > 0 {
		fmt.Printf(", %d solved", sum.Solved)
	}
	fmt.Printf(" (%s)\n", elapsed.Round(time.Millisecond))

	logger.Info("verify",
		"difficulty", difficulty,
		"levels", len(sum.Reports),
		"fallbacks", sum.Fallbacks,
		"invalid", sum.Invalid,
		"solved", sum.Solved,
		"elapsed", elapsed,
	)
	return sum.Invalid, nil
}
