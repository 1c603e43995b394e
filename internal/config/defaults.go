package config

import (
	_ "embed"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/session"
)

//go:embed defaults/watersort.yaml
var defaultWatersortYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	presets := make(map[string]PresetConfig)
	for _, d := range []core.Difficulty{core.DifficultyNormal, core.DifficultyHard, core.DifficultyExpert} {
		lc := core.PresetConfig(d, 0)
		presets[string(d)] = PresetConfig{Colors: lc.Colors, Capacity: lc.Capacity, ExtraEmpty: lc.ExtraEmpty}
	}

	p := session.DefaultPolicy()
	return Config{
		DefaultDifficulty: string(core.DifficultyNormal),
		Difficulties:      presets,
		Policy: PolicyConfig{
			UndoLimit:  p.UndoLimit,
			SingleHint: p.SingleHint,
			HintBudget: p.HintBudget,
		},
	}
}
