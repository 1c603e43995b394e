package main

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/watersort/internal/games/watersort/levels"
)

var flagListCheck bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List difficulties and custom levels",
	Long: `Shows the configured difficulty presets and the custom level catalog.
With --check, broken level files are reported instead of skipped.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&flagListCheck, "check", false, "Report level files that fail to load")
}

func levelLoaders() []*levels.Loader {
	loaders := []*levels.Loader{levels.Builtin()}
	if dir := levelsDir(); dir != "" {
		loaders = append(loaders, levels.NewDirLoader(dir))
	}
	return loaders
}

func runList(_ *cobra.Command, _ []string) error {
	fmt.Println("Difficulties:")
	fmt.Println()
	fmt.Printf("  %-10s  %-6s  %-8s  %s\n", "Name", "Colors", "Capacity", "Empty")
	fmt.Printf("  %-10s  %-6s  %-8s  %s\n", "----", "------", "--------", "-----")
	for _, name := range appCfg.DifficultyNames() {
		p := appCfg.Difficulties[name]
		marker := ""
		if name == appCfg.DefaultDifficulty {
			marker = "  (default)"
		}
		fmt.Printf("  %-10s  %-6d  %-8d  %d%s\n", name, p.Colors, p.Capacity, p.ExtraEmpty, marker)
	}

	if flagListCheck {
		problems := 0
		for _, l := range levelLoaders() {
			errs, err := l.Check()
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return err
			}
			for _, e := range errs {
				fmt.Printf("  invalid: %v\n", e)
				problems++
			}
		}
		if problems > 0 {
			return fmt.Errorf("%d level file(s) failed to load", problems)
		}
	}

	catalog, err := levels.Catalog(levelLoaders()...)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println("Custom levels:")
	fmt.Println()
	if len(catalog) == 0 {
		fmt.Println("  none")
		return nil
	}
	fmt.Printf("  %-8s  %-20s  %-10s  %s\n", "ID", "Name", "Difficulty", "Tubes")
	fmt.Printf("  %-8s  %-20s  %-10s  %s\n", "--", "----", "----------", "-----")
	for _, l := range catalog {
		fmt.Printf("  %-8s  %-20s  %-10s  %d x %d\n", l.ID, l.Name, l.Difficulty, len(l.Tubes), l.Capacity)
	}

	fmt.Println()
	fmt.Println("Run 'watersort play --level <id>' to play a custom level.")
	return nil
}
