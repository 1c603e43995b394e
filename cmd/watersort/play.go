package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/platform/tui"
	"github.com/vovakirdan/watersort/internal/registry"
)

var (
	flagDifficulty string
	flagLevel      string
	flagCustom     bool
	flagResume     bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level",
	Long: `Start playing a generated level, or the custom level catalog.

Controls:
  Left/Right, A/D  - Move the tube cursor
  Space/Enter      - Pick up or pour at the cursor
  1-9, 0           - Pick a tube directly
  Esc/B            - Cancel the selection
  U/Z, Y           - Undo, redo
  H                - Hint
  R                - Restart the level
  N                - Next level
  P                - Pause
  Q/Ctrl+C         - Quit (progress is saved)

Examples:
  watersort play
  watersort play --difficulty expert --seed 42
  watersort play --resume
  watersort play --custom
  watersort play --level 03 --levels ./my-levels`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset (default from config)")
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Custom level ID to start at (implies --custom)")
	playCmd.Flags().BoolVar(&flagCustom, "custom", false, "Play the custom level catalog")
	playCmd.Flags().BoolVar(&flagResume, "resume", false, "Continue the latest unfinished level")
}

// terminalSize returns the current terminal size, or 80x24.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return width, height
}

func runPlay(_ *cobra.Command, _ []string) error {
	if flagDifficulty != "" {
		if _, ok := appCfg.Difficulties[flagDifficulty]; !ok {
			return fmt.Errorf("unknown difficulty %q (have %v)", flagDifficulty, appCfg.DifficultyNames())
		}
	}

	gameID := "watersort"
	if flagCustom || flagLevel != "" {
		gameID = "watersort_custom"
	}

	width, height := terminalSize()
	cfg := core.RuntimeConfig{
		ScreenW:    width,
		ScreenH:    height,
		TickRate:   flagFPS,
		Seed:       flagSeed,
		Difficulty: flagDifficulty,
		Level:      flagLevel,
		Resume:     flagResume,
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	configureGame(store)

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("create game: %w", err)
	}

	logger.Info("play", "game", gameID, "difficulty", appCfg.Resolve(flagDifficulty), "seed", flagSeed, "resume", flagResume)
	if err := tui.Run(game, cfg, logger); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}
