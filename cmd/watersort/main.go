// watersort is a liquid sort puzzle for the terminal.
//
// Usage:
//
//	watersort list              - List difficulties and custom levels
//	watersort play              - Play a generated level
//	watersort menu              - Start menu to pick a mode interactively
//	watersort serve             - Start SSH server for remote play
//	watersort records           - Show best results per difficulty
//	watersort solve             - Print a solution for a level
//	watersort verify            - Check generated levels in bulk
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 30)
//	--seed <value>      - Set level seed (default: time based)
//	--db <path>         - Set database path (default: ~/.watersort/progress.db)
//	--config <path>     - Use a custom watersort.yaml
//	--levels <dir>      - Add custom levels from a directory
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Log destination (default: ~/.watersort/watersort.log)
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/config"
	"github.com/vovakirdan/watersort/internal/games/watersort"
	"github.com/vovakirdan/watersort/internal/storage"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagDBPath    string
	flagConfig    string
	flagLevelsDir string
	flagLogLevel  string
	flagLogFile   string
)

// Shared state set up before every command runs.
var (
	logger  *log.Logger
	appCfg  config.Config
	logSink io.Closer
)

func main() {
	err := rootCmd.Execute()
	if logSink != nil {
		logSink.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "watersort",
	Short: "Water Sort - sort colored liquid in your terminal",
	Long: `Water Sort is a terminal puzzle: pour colored liquid between tubes
until every tube holds a single color.

Available commands:
  list     - Show difficulties and custom levels
  play     - Play a generated or custom level
  menu     - Interactive start menu
  serve    - Start SSH server for remote play
  records  - View best results
  solve    - Print a solution for a level
  verify   - Check generated levels in bulk

Examples:
  watersort play --difficulty hard
  watersort play --seed 42
  watersort play --level 03
  watersort menu
  watersort serve --ssh :2222
  watersort solve --seed 42 --difficulty expert`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "Level seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.watersort/progress.db", "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom watersort.yaml")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels", "~/.watersort/levels", "Directory with extra custom levels")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.watersort/watersort.log", "Log file path (\"-\" for stderr)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(recordsCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(verifyCmd)
}

// setup builds the logger and loads the configuration.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out, err := logWriter(flagLogFile)
	if err != nil {
		return err
	}
	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "watersort",
		Level:           level,
	})

	appCfg, err = config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger.Debug("config loaded", "difficulties", appCfg.DifficultyNames(), "default", appCfg.DefaultDifficulty)
	return nil
}

// logWriter opens the log destination. The terminal belongs to the game,
// so logs go to a file unless "-" asks for stderr.
func logWriter(path string) (io.Writer, error) {
	if path == "-" {
		return os.Stderr, nil
	}
	path = expandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logSink = f
	return f, nil
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

// levelsDir returns the custom level directory with ~ expanded.
// Empty disables it.
func levelsDir() string {
	if flagLevelsDir == "" {
		return ""
	}
	return expandHome(flagLevelsDir)
}

// openStore opens the progress database. Games still work without it,
// so a failure is reported and nil returned.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		logger.Warn("progress database unavailable", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

// configureGame hands the shared services to the water sort game.
func configureGame(store *storage.Store) {
	watersort.Configure(watersort.Deps{
		Config:    appCfg,
		Store:     store,
		Logger:    logger,
		LevelsDir: levelsDir(),
	})
}
