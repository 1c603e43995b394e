package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/storage"
)

var (
	flagRecordsLimit int
	flagRecordsClear bool
)

var recordsCmd = &cobra.Command{
	Use:   "records [difficulty]",
	Short: "Show best results",
	Long: `Display best results and the win streak for a difficulty.
Without an argument every configured difficulty is shown.

Examples:
  watersort records
  watersort records hard --limit 20
  watersort records expert --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRecords,
}

func init() {
	recordsCmd.Flags().IntVar(&flagRecordsLimit, "limit", 10, "Number of records to show")
	recordsCmd.Flags().BoolVar(&flagRecordsClear, "clear", false, "Delete records and streak for the difficulty")
}

func runRecords(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("open progress database: %w", err)
	}
	defer store.Close()

	difficulties := appCfg.DifficultyNames()
	if len(args) == 1 {
		difficulties = args[:1]
	}

	if flagRecordsClear {
		if len(args) == 0 {
			return fmt.Errorf("--clear needs a difficulty")
		}
		if err := store.ClearRecords(args[0]); err != nil {
			return err
		}
		logger.Info("records cleared", "difficulty", args[0])
		fmt.Printf("Cleared records for %s\n", args[0])
		return nil
	}

	for i, d := range difficulties {
		if i > 0 {
			fmt.Println()
		}
		if err := printRecords(store, d); err != nil {
			return err
		}
	}
	return nil
}

func printRecords(store *storage.Store, difficulty string) error {
	stats, err := store.GetStats(difficulty)
	if err != nil {
		return err
	}
	records, err := store.BestRecords(difficulty, flagRecordsLimit)
	if err != nil {
		return err
	}

	fmt.Printf("Records - %s\n", difficulty)
	fmt.Printf("Solved: %d  Completed: %d  Streak: %d (best %d)\n",
		stats.Solved, stats.Completed, stats.Streak.Current, stats.Streak.Best)
	fmt.Println()

	if len(records) == 0 {
		fmt.Println("No levels solved yet.")
		fmt.Printf("Run 'watersort play --difficulty %s' to set the first record!\n", difficulty)
		return nil
	}

	// Print header
	fmt.Printf("  %-20s  %-5s  %-6s  %-4s  %s\n", "Seed", "Moves", "Time", "Done", "Date")
	fmt.Printf("  %-20s  %-5s  %-6s  %-4s  %s\n", "----", "-----", "----", "----", "----")

	for _, r := range records {
		moves, elapsed := "-", "-"
		if r.Solved {
			moves = fmt.Sprintf("%d", r.Moves)
			elapsed = r.Time.Round(time.Second / 10).String()
		}
		done := ""
		if r.Completed {
			done = "yes"
		}
		fmt.Printf("  %-20d  %-5s  %-6s  %-4s  %s\n", r.Seed, moves, elapsed, done, r.UpdatedAt.Format("2006-01-02 15:04"))
	}

	if stats.FewestMoves > 0 {
		fmt.Println()
		fmt.Printf("Fewest moves: %d\n", stats.FewestMoves)
	}
	return nil
}
