// Package registry maps game variant IDs to factories. Variants register
// themselves from init(), so the CLI, the menu and the SSH server can list
// and create them without importing each one.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/watersort/internal/core"
)

// Game is a playable variant driven by the platform loop.
// Implementations hold pure game logic and never touch Bubble Tea; the
// platform owns input mapping, ticking and terminal output.
type Game interface {
	// ID is the stable identifier used on the command line and in menus.
	ID() string

	// Title is the name shown to players.
	Title() string

	// Reset starts a level for the given screen size, seed and difficulty.
	Reset(cfg core.RuntimeConfig)

	// Step applies one tick of input.
	Step(in core.InputFrame) core.StepResult

	// Render draws the board into a cleared screen buffer.
	Render(dst *core.Screen)

	// State reports moves, win and pause status.
	State() core.GameState
}

// Resizer is implemented by games that can adapt to a new screen size
// without losing progress. Games without it are reset on resize.
type Resizer interface {
	Resize(width, height int)
}

// Suspender is implemented by games that persist progress when the
// player leaves.
type Suspender interface {
	Suspend() error
}

// GameInfo describes a registered variant.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a factory under id. The title is taken from a throwaway
// instance. It panics on an empty or duplicate id.
func Register(id string, f Factory) {
	if id == "" {
		panic("registry: empty game id")
	}

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns every registered variant ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	infos := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		infos = append(infos, GameInfo{ID: id, Title: e.title})
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ID < infos[j].ID })
	return infos
}

// Create returns a new instance of the variant registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}
