package watersort

import (
	"fmt"
	"time"

	platformcore "github.com/vovakirdan/watersort/internal/core"
	"github.com/vovakirdan/watersort/internal/games/watersort/core"
)

const (
	hudHeight  = 3
	tubeWidth  = 4 // │██│
	tubeStride = tubeWidth + 1
)

var liquidColors = map[core.Color]platformcore.Color{
	core.ColorRed:    platformcore.ColorRed,
	core.ColorBlue:   platformcore.ColorBlue,
	core.ColorGreen:  platformcore.ColorGreen,
	core.ColorYellow: platformcore.ColorYellow,
	core.ColorOrange: platformcore.ColorOrange,
	core.ColorPurple: platformcore.ColorPurple,
	core.ColorPink:   platformcore.ColorPink,
	core.ColorCyan:   platformcore.ColorCyan,
	core.ColorBrown:  platformcore.ColorBrown,
	core.ColorMint:   platformcore.ColorMint,
	core.ColorIndigo: platformcore.ColorIndigo,
	core.ColorTeal:   platformcore.ColorTeal,
	core.ColorGray:   platformcore.ColorGray,
	core.ColorBlack:  platformcore.ColorCharcoal,
}

// ScreenColor maps a liquid color to a terminal color.
func ScreenColor(c core.Color) platformcore.Color {
	if sc, ok := liquidColors[c]; ok {
		return sc
	}
	return platformcore.ColorWhite
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	layout := g.sess.Layout()
	capacity := g.sess.Config().Capacity
	boardW := len(layout)*tubeStride - 1
	boardX := (g.screenW - boardW) / 2
	boardY := hudHeight + 2 // One row above the tubes for a lifted selection

	g.renderHUD(dst)
	g.renderTubes(dst, layout, capacity, boardX, boardY)

	footerY := boardY + capacity + 4
	if g.message != "" {
		dst.DrawTextCenteredColored(footerY, g.message, platformcore.ColorBrightYellow)
	}
	dst.DrawTextCentered(g.screenH-1, "←/→ move  space pour  1-9 pick  u/y undo/redo  h hint  r restart  n next  q quit")

	g.renderOverlays(dst, boardY+capacity/2)
}

func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	cfg := g.sess.Config()

	var title string
	if g.mode == ModeCustom && len(g.catalog) > 0 {
		l := g.catalog[g.levelIdx]
		title = fmt.Sprintf("Water Sort · %s (%d/%d)", l.Name, g.levelIdx+1, len(g.catalog))
	} else {
		title = fmt.Sprintf("Water Sort · %s · seed %d", g.difficulty, cfg.Seed)
	}
	dst.DrawTextCentered(0, title)

	undos := "∞"
	if n := g.sess.UndosLeft(); n >= 0 {
		undos = fmt.Sprintf("%d", n)
	}
	hint := "ready"
	if !g.sess.CanHint() {
		hint = "used"
	}
	stats := fmt.Sprintf("Moves: %d   Time: %s   Undos: %s   Hint: %s",
		g.sess.Moves(), formatElapsed(g.sess.Elapsed()), undos, hint)
	dst.DrawTextCentered(1, stats)
}

func (g *Game) renderTubes(dst *platformcore.Screen, layout core.Layout, capacity, boardX, boardY int) {
	selected, hasSel := g.sess.Selected()

	for i, tube := range layout {
		x := boardX + i*tubeStride
		top := boardY
		if hasSel && i == selected {
			top--
		}

		border := platformcore.ColorDefault
		if g.hint != nil && (i == g.hint.From || i == g.hint.To) {
			border = platformcore.ColorBrightYellow
		}
		if len(tube) == capacity && tube.IsUniform() {
			border = platformcore.ColorBrightGreen
		}

		for row := 0; row < capacity; row++ {
			y := top + row
			dst.SetColored(x, y, '│', border)
			dst.SetColored(x+tubeWidth-1, y, '│', border)

			// Row 0 is the mouth; unit k sits capacity-1-k rows down.
			k := capacity - 1 - row
			if k < len(tube) {
				c := ScreenColor(tube[k])
				dst.SetColored(x+1, y, '█', c)
				dst.SetColored(x+2, y, '█', c)
			}
		}
		bottom := top + capacity
		dst.SetColored(x, bottom, '└', border)
		dst.SetColored(x+1, bottom, '─', border)
		dst.SetColored(x+2, bottom, '─', border)
		dst.SetColored(x+tubeWidth-1, bottom, '┘', border)

		if i == g.cursor {
			dst.SetColored(x+1, boardY+capacity+1, '▲', platformcore.ColorBrightCyan)
		}
		if i < 10 {
			dst.DrawText(x+1, boardY+capacity+2, fmt.Sprintf("%d", (i+1)%10))
		}
	}
}

func (g *Game) renderOverlays(dst *platformcore.Screen, centerY int) {
	if g.paused {
		g.drawOverlay(dst, centerY, "PAUSED", "Press P to resume")
		return
	}
	if g.sess.IsWon() {
		summary := fmt.Sprintf("%d moves in %s", g.sess.Moves(), formatElapsed(g.sess.Elapsed()))
		g.drawOverlay(dst, centerY, "SOLVED!", summary, "N next level  R replay")
	}
}

// drawOverlay draws a centered boxed text overlay.
func (g *Game) drawOverlay(dst *platformcore.Screen, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > maxLen {
			maxLen = n
		}
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	x := platformcore.Clamp((g.screenW-boxW)/2, 0, g.screenW)
	y := platformcore.Clamp(centerY-boxH/2, hudHeight, g.screenH)
	box := platformcore.NewRect(x, y, boxW, boxH)

	dst.DrawRect(box, ' ')
	dst.DrawBox(box)
	for i, line := range lines {
		dst.DrawTextCentered(box.Y+1+i, line)
	}
}

func formatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}
