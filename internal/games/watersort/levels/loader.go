// Package levels loads hand-made water sort levels.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/levels/formats"
)

//go:embed data/*.yaml
var builtinFS embed.FS

// Level represents a complete level definition.
type Level struct {
	formats.Level
	Source string // Path of the file the level came from
}

// Config describes the level for the session: distinct colors, capacity and
// the number of tubes that start empty.
func (l Level) Config() core.LevelConfig {
	empty := 0
	for _, t := range l.Tubes {
		if len(t) == 0 {
			empty++
		}
	}
	return core.LevelConfig{
		Colors:     len(l.Tubes.ColorCounts()),
		Capacity:   l.Capacity,
		ExtraEmpty: empty,
		Difficulty: l.Difficulty,
	}
}

// Layout returns a copy of the starting tubes.
func (l Level) Layout() core.Layout {
	return l.Tubes.Clone()
}

// Loader handles loading levels from a file system.
type Loader struct {
	fsys fs.FS
	root string
}

// NewLoader creates a loader reading *.yaml files under root in fsys.
func NewLoader(fsys fs.FS, root string) *Loader {
	return &Loader{fsys: fsys, root: root}
}

// NewDirLoader creates a loader for a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir), ".")
}

// Builtin returns a loader for the levels shipped with the binary.
func Builtin() *Loader {
	return NewLoader(builtinFS, "data")
}

// LoadAll scans and loads all valid level files, skipping broken ones.
// Returns levels sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	levels, _, err := l.scan()
	return levels, err
}

// Check returns one error per level file that fails to load.
func (l *Loader) Check() ([]error, error) {
	_, problems, err := l.scan()
	return problems, err
}

func (l *Loader) scan() ([]Level, []error, error) {
	var levels []Level
	var problems []error

	err := fs.WalkDir(l.fsys, l.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !isSupportedExtension(strings.ToLower(path.Ext(p))) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			problems = append(problems, err)
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("levels: cannot walk %s: %w", l.root, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		return levels[i].ID < levels[j].ID
	})
	return levels, problems, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: cannot read %s: %w", p, err)
	}

	parsed, err := formats.ParseYAML(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: cannot parse %s: %w", p, err)
	}
	if err := core.ValidateLayout(parsed.Tubes, parsed.Capacity); err != nil {
		return Level{}, fmt.Errorf("levels: %s: %w", p, err)
	}

	return Level{Level: parsed, Source: p}, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}
	return Find(levels, id)
}

// ErrNotFound is returned when no level has the requested ID.
var ErrNotFound = errors.New("levels: level not found")

// Find returns the level with the given ID.
func Find(levels []Level, id string) (Level, error) {
	i := slices.IndexFunc(levels, func(lvl Level) bool { return lvl.ID == id })
	if i < 0 {
		return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return levels[i], nil
}

// Catalog merges levels from several loaders. Later loaders override
// earlier ones with the same ID.
func Catalog(loaders ...*Loader) ([]Level, error) {
	byID := make(map[string]Level)
	for _, ld := range loaders {
		levels, err := ld.LoadAll()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, err
		}
		for _, lvl := range levels {
			byID[lvl.ID] = lvl
		}
	}

	out := make([]Level, 0, len(byID))
	for _, lvl := range byID {
		out = append(out, lvl)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	return slices.Contains(formats.FormatExtensions(), ext)
}
