package core

// Difficulty is a classification label for a level configuration.
type Difficulty string

const (
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
	DifficultyCustom Difficulty = "custom"
)

// LevelConfig describes a generated level. It is a value; progression
// produces a new config rather than mutating the old one.
type LevelConfig struct {
	Seed       int64      `json:"seed"`
	Colors     int        `json:"colors"`      // Distinct colors, one filled tube each
	Capacity   int        `json:"capacity"`    // Units per tube
	ExtraEmpty int        `json:"extra_empty"` // Empty tubes appended after the filled ones
	Difficulty Difficulty `json:"difficulty"`
}

// PresetConfig returns the built-in parameters for a difficulty.
// Unknown labels map to normal.
func PresetConfig(d Difficulty, seed int64) LevelConfig {
	switch d {
	case DifficultyHard:
		return LevelConfig{Seed: seed, Colors: 6, Capacity: 5, ExtraEmpty: 1, Difficulty: d}
	case DifficultyExpert:
		return LevelConfig{Seed: seed, Colors: 7, Capacity: 5, ExtraEmpty: 1, Difficulty: d}
	default:
		return LevelConfig{Seed: seed, Colors: 5, Capacity: 4, ExtraEmpty: 2, Difficulty: DifficultyNormal}
	}
}

// TubeCount returns the number of tubes a generated layout has.
func (c LevelConfig) TubeCount() int {
	return c.Colors + c.ExtraEmpty
}

// Next returns the configuration of the following level.
func (c LevelConfig) Next() LevelConfig {
	c.Seed++
	return c
}

// Normalize clamps the numeric fields into a range the generator supports.
func (c LevelConfig) Normalize() LevelConfig {
	c.Colors = max(1, min(c.Colors, PaletteSize))
	c.Capacity = max(1, c.Capacity)
	c.ExtraEmpty = max(0, c.ExtraEmpty)
	return c
}
