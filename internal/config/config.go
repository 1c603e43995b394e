// Package config provides YAML-based configuration loading and
// difficulty preset resolution for watersort.
package config

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/session"
)

var configValidate *validator.Validate

func init() {
	configValidate = validator.New()
}

// Config contains all configuration for watersort.
type Config struct {
	DefaultDifficulty string                  `yaml:"default_difficulty" validate:"required"`
	Difficulties      map[string]PresetConfig `yaml:"difficulties" validate:"required,min=1,dive"`
	Policy            PolicyConfig            `yaml:"policy"`
}

// PresetConfig defines the generator parameters of one difficulty.
type PresetConfig struct {
	Colors     int `yaml:"colors" validate:"min=1,max=14"`
	Capacity   int `yaml:"capacity" validate:"min=1,max=16"`
	ExtraEmpty int `yaml:"extra_empty" validate:"min=0,max=8"`
}

// PolicyConfig defines undo and hint gating.
type PolicyConfig struct {
	UndoLimit  int           `yaml:"undo_limit"`   // Negative means unlimited
	SingleHint bool          `yaml:"single_hint"`  // Revoke hint after one use per level
	HintBudget time.Duration `yaml:"hint_budget" validate:"gt=0"`
}

// Validate checks field constraints and that the default difficulty exists.
func (c *Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return err
	}
	if _, ok := c.Difficulties[c.DefaultDifficulty]; !ok {
		return fmt.Errorf("default_difficulty %q is not a configured difficulty", c.DefaultDifficulty)
	}
	return nil
}

// Session converts the policy section to a session policy.
func (p PolicyConfig) Session() session.Policy {
	return session.Policy{
		UndoLimit:  p.UndoLimit,
		SingleHint: p.SingleHint,
		HintBudget: p.HintBudget,
	}
}

// DifficultyNames returns the configured difficulties, easiest first by
// tube count and then by name.
func (c *Config) DifficultyNames() []string {
	names := make([]string, 0, len(c.Difficulties))
	for name := range c.Difficulties {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := c.Difficulties[names[i]], c.Difficulties[names[j]]
		if wa, wb := a.Colors*a.Capacity, b.Colors*b.Capacity; wa != wb {
			return wa < wb
		}
		return names[i] < names[j]
	})
	return names
}

// Resolve returns the name actually used for a requested difficulty.
// Empty or unknown names resolve to the default difficulty.
func (c *Config) Resolve(name string) string {
	if _, ok := c.Difficulties[name]; ok {
		return name
	}
	return c.DefaultDifficulty
}

// LevelFor builds the level configuration for a difficulty and seed.
func (c *Config) LevelFor(name string, seed int64) core.LevelConfig {
	name = c.Resolve(name)
	p := c.Difficulties[name]
	return core.LevelConfig{
		Seed:       seed,
		Colors:     p.Colors,
		Capacity:   p.Capacity,
		ExtraEmpty: p.ExtraEmpty,
		Difficulty: core.Difficulty(name),
	}
}
