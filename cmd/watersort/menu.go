package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/platform/tui"
	"github.com/vovakirdan/watersort/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Left/Right to change difficulty and
Enter to start. Leaving a level returns you to the menu.

Controls:
  Up/Down/j/k     - Navigate menu
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Select
  Tab             - Records
  Q               - Quit

Examples:
  watersort menu
  watersort menu --fps 60
  watersort menu --db ./progress.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}
	configureGame(store)

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Difficulty: appCfg.DefaultDifficulty,
	}
	difficulties := appCfg.DifficultyNames()

	for {
		menuResult, err := tui.RunMenu(store, cfg, difficulties)
		if err != nil {
			return fmt.Errorf("menu: %w", err)
		}

		// Keep size and difficulty changes for the next round
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, difficulties, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return nil
		}

		game, err := registry.Create(menuResult.GameID)
		if err != nil {
			logger.Error("create game", "id", menuResult.GameID, "err", err)
			continue
		}

		runCfg := cfg
		runCfg.Seed = flagSeed
		if runCfg.Seed == 0 {
			runCfg.Seed = time.Now().UnixNano()
		}
		cfg.Resume = false

		if err := tui.Run(game, runCfg, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		}
	}
}
