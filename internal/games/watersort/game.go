// Package watersort provides the liquid sort puzzle for the game platform.
package watersort

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/watersort/internal/config"
	platformcore "github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/levels"
	"github.com/vovakirdan/watersort/internal/games/watersort/session"
	"github.com/vovakirdan/watersort/internal/registry"
	"github.com/vovakirdan/watersort/internal/storage"
)

var (
	_ registry.Game      = (*Game)(nil)
	_ registry.Resizer   = (*Game)(nil)
	_ registry.Suspender = (*Game)(nil)
)

// Mode selects where levels come from.
type Mode string

const (
	ModeSeeded Mode = "seeded" // Generated from difficulty and seed
	ModeCustom Mode = "custom" // Hand-made levels from the catalog
)

// Deps are the shared services a game uses. They are set once at startup.
type Deps struct {
	Config    config.Config
	Store     *storage.Store // Optional; nil disables records and saves
	Logger    *log.Logger
	LevelsDir string // Optional directory with extra custom levels
}

var deps = Deps{
	Config: config.DefaultConfig(),
	Logger: log.New(io.Discard),
}

// Configure installs the shared services for games created afterwards.
func Configure(d Deps) {
	if d.Logger == nil {
		d.Logger = log.New(io.Discard)
	}
	if len(d.Config.Difficulties) == 0 {
		d.Config = config.DefaultConfig()
	}
	deps = d
}

const (
	hintShowTicks    = 90
	messageShowTicks = 60
)

// Game implements registry.Game for water sort.
type Game struct {
	mode Mode
	log  *log.Logger

	sess       *session.Session
	difficulty string
	saveID     string

	catalog  []levels.Level
	levelIdx int

	screenW  int
	screenH  int
	tooSmall bool
	paused   bool
	cursor   int

	hint      *session.Hint
	hintTicks int
	message   string
	msgTicks  int
}

func init() {
	registry.Register("watersort", func() registry.Game {
		return New()
	})
	registry.Register("watersort_custom", func() registry.Game {
		return NewCustom()
	})
}

// New creates a game that generates levels from a difficulty and seed.
func New() *Game {
	return &Game{mode: ModeSeeded}
}

// NewCustom creates a game that plays the custom level catalog in order.
func NewCustom() *Game {
	return &Game{mode: ModeCustom}
}

// ID returns the game identifier.
func (g *Game) ID() string {
	if g.mode == ModeCustom {
		return "watersort_custom"
	}
	return "watersort"
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode == ModeCustom {
		return "Water Sort (Custom Levels)"
	}
	return "Water Sort"
}

// Reset starts a new session. For seeded games cfg.Seed and cfg.Difficulty
// pick the level; cfg.Resume continues the latest unfinished save instead.
// For custom games cfg.Level names the first level to play.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.log = deps.Logger.With("game", g.ID())
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.paused = false
	g.cursor = 0
	g.saveID = ""
	g.clearHint()
	g.message = ""
	g.msgTicks = 0

	if g.mode == ModeCustom {
		g.resetCustom(cfg.Level)
	} else {
		g.resetSeeded(cfg)
	}
	g.checkScreenSize()
}

func (g *Game) resetSeeded(cfg platformcore.RuntimeConfig) {
	g.difficulty = deps.Config.Resolve(cfg.Difficulty)
	opts := g.sessionOptions(g.difficulty)

	if cfg.Resume && deps.Store != nil {
		saved, err := deps.Store.LatestSession(g.difficulty)
		switch {
		case err == nil:
			sess, rerr := session.Restore(saved.Snapshot, opts)
			if rerr == nil {
				g.sess = sess
				g.saveID = saved.ID
				g.log.Info("resumed session", "id", saved.ID, "seed", saved.Seed, "moves", sess.Moves())
				return
			}
			g.log.Warn("discarding saved session", "id", saved.ID, "err", rerr)
		case errors.Is(err, storage.ErrNotFound):
			g.log.Debug("no saved session", "difficulty", g.difficulty)
		default:
			g.log.Error("load saved session", "err", err)
		}
	}

	level := deps.Config.LevelFor(g.difficulty, cfg.Seed)
	g.sess = session.New(level, opts)
	g.logLevel()
}

func (g *Game) resetCustom(startID string) {
	loaders := []*levels.Loader{levels.Builtin()}
	if deps.LevelsDir != "" {
		loaders = append(loaders, levels.NewDirLoader(deps.LevelsDir))
	}
	catalog, err := levels.Catalog(loaders...)
	if err != nil {
		g.log.Error("load level catalog", "err", err)
	}
	if len(catalog) == 0 {
		// The builtin set always validates, so this only happens on a broken build.
		g.catalog = nil
		g.sess = session.New(deps.Config.LevelFor("", 1), g.sessionOptions(""))
		g.setMessage("No custom levels found")
		return
	}
	g.catalog = catalog
	g.levelIdx = 0
	for i, l := range catalog {
		if l.ID == startID {
			g.levelIdx = i
			break
		}
	}
	g.loadCustom()
}

func (g *Game) loadCustom() {
	l := g.catalog[g.levelIdx]
	g.difficulty = customDifficulty(l.ID)
	g.sess = session.NewWithLayout(l.Config(), l.Layout(), g.sessionOptions(g.difficulty))
	g.log.Info("custom level loaded", "id", l.ID, "source", l.Source)
}

// customDifficulty is the records key for a hand-made level.
func customDifficulty(id string) string {
	return string(core.DifficultyCustom) + "/" + id
}

func (g *Game) sessionOptions(difficulty string) session.Options {
	opts := session.Options{Policy: deps.Config.Policy.Session()}
	if deps.Store != nil && difficulty != "" {
		opts.Recorder = deps.Store.Recorder(difficulty)
	}
	return opts
}

func (g *Game) logLevel() {
	cfg := g.sess.Config()
	g.log.Info("level generated",
		"difficulty", g.difficulty,
		"seed", cfg.Seed,
		"tubes", cfg.TubeCount(),
		"attempts", g.sess.Attempts(),
		"fallback", g.sess.Fallback(),
	)
	if g.sess.Fallback() {
		g.log.Warn("generator fell back to a sorted layout", "seed", cfg.Seed)
	}
}

// checkScreenSize checks if the screen is large enough for the current level.
func (g *Game) checkScreenSize() {
	cfg := g.sess.Config()
	minW := len(g.sess.Layout())*tubeStride + 2
	if minW < 40 {
		minW = 40
	}
	minH := hudHeight + cfg.Capacity + 6
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Resize adapts to a new screen size and keeps the session.
func (g *Game) Resize(width, height int) {
	g.screenW = width
	g.screenH = height
	g.checkScreenSize()
}

// Session exposes the running session.
func (g *Game) Session() *session.Session { return g.sess }

// Cursor returns the tube under the cursor.
func (g *Game) Cursor() int { return g.cursor }

// Message returns the current status line.
func (g *Game) Message() string { return g.message }

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	if g.msgTicks > 0 {
		g.msgTicks--
		if g.msgTicks == 0 {
			g.message = ""
		}
	}
	if g.hintTicks > 0 {
		g.hintTicks--
		if g.hintTicks == 0 {
			g.hint = nil
		}
	}

	if g.tooSmall {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return platformcore.StepResult{State: g.State()}
	}

	tubes := len(g.sess.Layout())
	switch {
	case in.Has(platformcore.ActionLeft):
		g.cursor = (g.cursor - 1 + tubes) % tubes
	case in.Has(platformcore.ActionRight):
		g.cursor = (g.cursor + 1) % tubes
	}

	switch {
	case in.Has(platformcore.ActionPick):
		if in.Pick >= 0 && in.Pick < tubes {
			g.cursor = in.Pick
			g.selectTube(g.cursor)
		}
	case in.Has(platformcore.ActionSelect):
		g.selectTube(g.cursor)
	case in.Has(platformcore.ActionBack):
		if i, ok := g.sess.Selected(); ok {
			g.sess.SelectTube(i)
		}
	case in.Has(platformcore.ActionUndo):
		g.undo()
	case in.Has(platformcore.ActionRedo):
		g.redo()
	case in.Has(platformcore.ActionHint):
		g.requestHint()
	case in.Has(platformcore.ActionRestart):
		g.restart()
	case in.Has(platformcore.ActionNext):
		g.advance()
	}

	return platformcore.StepResult{State: g.State()}
}

func (g *Game) selectTube(i int) {
	from, _ := g.sess.Selected()
	out := g.sess.SelectTube(i)
	switch out.Event {
	case session.EventMoved:
		g.clearHint()
		g.afterMove(out)
	case session.EventRejected:
		g.log.Debug("pour rejected", "from", from, "to", i)
		g.setMessage("Can't pour there")
	}
}

func (g *Game) afterMove(out session.Outcome) {
	if out.Err != nil {
		g.log.Error("record result", "err", out.Err)
	}
	if out.Won {
		g.log.Info("level solved",
			"difficulty", g.difficulty,
			"seed", g.sess.Config().Seed,
			"moves", g.sess.Moves(),
			"elapsed", g.sess.Elapsed(),
		)
	}
}

func (g *Game) undo() {
	if g.sess.IsWon() {
		return
	}
	if !g.sess.Undo() {
		if g.sess.UndosLeft() == 0 {
			g.setMessage("No undos left")
		}
		return
	}
	g.clearHint()
}

func (g *Game) redo() {
	out := g.sess.Redo()
	if out.Event == session.EventMoved {
		g.clearHint()
		g.afterMove(out)
	}
}

func (g *Game) requestHint() {
	if g.sess.IsWon() {
		return
	}
	if !g.sess.CanHint() {
		g.setMessage("Hint already used")
		return
	}
	h, ok := g.sess.RequestHint()
	if !ok {
		g.setMessage("No moves left, try undo or restart")
		return
	}
	g.hint = &h
	g.hintTicks = hintShowTicks
	g.cursor = h.From
	g.setMessage(fmt.Sprintf("Hint: pour %d into %d", h.From+1, h.To+1))
	g.log.Debug("hint",
		"from", h.From,
		"to", h.To,
		"complete", h.Result.Complete,
		"plan", len(h.Result.Moves),
		"strategy", h.Result.Strategy,
		"depth", h.Result.Depth,
		"nodes", h.Result.Nodes,
		"elapsed", h.Result.Elapsed,
	)
}

func (g *Game) restart() {
	if err := g.sess.Restart(); err != nil {
		g.log.Error("reset streak", "err", err)
	}
	g.clearHint()
	g.cursor = 0
	g.setMessage("Level restarted")
}

// advance moves to the next level. Seeded games use the next seed; custom
// games walk the catalog and stop after the last level.
func (g *Game) advance() {
	g.clearHint()
	g.cursor = 0

	if g.mode == ModeCustom {
		if len(g.catalog) == 0 {
			return
		}
		if g.sess.IsWon() && deps.Store != nil {
			if err := deps.Store.MarkLevelCompleted(g.difficulty, g.sess.Config().Seed); err != nil {
				g.log.Error("mark level completed", "err", err)
			}
		}
		if g.levelIdx >= len(g.catalog)-1 {
			g.setMessage("That was the last level")
			return
		}
		g.levelIdx++
		g.loadCustom()
		g.checkScreenSize()
		return
	}

	if err := g.sess.AdvanceLevel(); err != nil {
		g.log.Error("mark level completed", "err", err)
	}
	g.logLevel()
	g.checkScreenSize()
}

// Suspend saves an unfinished seeded session so it can be resumed later.
func (g *Game) Suspend() error {
	if g.mode != ModeSeeded || deps.Store == nil || g.sess == nil {
		return nil
	}
	id, err := deps.Store.SaveSession(g.saveID, g.sess.Snapshot())
	if err != nil {
		return err
	}
	g.saveID = id
	g.log.Debug("session saved", "id", id, "moves", g.sess.Moves())
	return nil
}

func (g *Game) clearHint() {
	g.hint = nil
	g.hintTicks = 0
}

func (g *Game) setMessage(msg string) {
	g.message = msg
	g.msgTicks = messageShowTicks
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	return platformcore.GameState{
		Moves:  g.sess.Moves(),
		Won:    g.sess.IsWon(),
		Paused: g.paused || g.tooSmall,
	}
}
