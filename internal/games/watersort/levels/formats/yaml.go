// Package formats provides pluggable level file format parsers.
package formats

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

var levelValidate *validator.Validate

func init() {
	levelValidate = validator.New()
}

// YAMLLevel represents the YAML structure for a level file.
type YAMLLevel struct {
	ID         string            `yaml:"id" validate:"required"`
	Name       string            `yaml:"name"`
	Difficulty string            `yaml:"difficulty,omitempty"`
	Capacity   int               `yaml:"capacity" validate:"min=1,max=16"`
	Tubes      [][]string        `yaml:"tubes" validate:"min=2,max=24"`
	Created    time.Time         `yaml:"created,omitempty"`
	Metadata   map[string]string `yaml:"metadata,omitempty"`
}

// Validate checks field constraints.
func (y *YAMLLevel) Validate() error {
	return levelValidate.Struct(y)
}

// Level represents a parsed level ready for use.
type Level struct {
	ID         string
	Name       string
	Difficulty core.Difficulty
	Capacity   int
	Tubes      core.Layout
	Created    time.Time
	Metadata   map[string]string
}

// ParseYAML parses a YAML level file. Tubes list colors bottom to top, by
// palette name or numeric id.
func ParseYAML(data []byte) (Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Level{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if err := yl.Validate(); err != nil {
		return Level{}, fmt.Errorf("invalid level: %w", err)
	}

	difficulty := core.Difficulty(yl.Difficulty)
	if difficulty == "" {
		difficulty = core.DifficultyCustom
	}

	level := Level{
		ID:         yl.ID,
		Name:       yl.Name,
		Difficulty: difficulty,
		Capacity:   yl.Capacity,
		Tubes:      make(core.Layout, len(yl.Tubes)),
		Created:    yl.Created,
		Metadata:   yl.Metadata,
	}
	if level.Name == "" {
		level.Name = yl.ID
	}

	for i, tube := range yl.Tubes {
		t := make(core.Tube, 0, len(tube))
		for _, name := range tube {
			color, ok := core.ParseColor(name)
			if !ok {
				return Level{}, fmt.Errorf("tube %d: unknown color %q", i, name)
			}
			t = append(t, color)
		}
		level.Tubes[i] = t
	}

	return level, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
