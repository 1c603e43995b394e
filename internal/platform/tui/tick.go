// Package tui runs water sort in the terminal with Bubble Tea: the game
// loop, key bindings, menus, the records board and the SSH server.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const maxTickRate = 120

// TickMsg drives one Step of the running game.
type TickMsg time.Time

// tickInterval converts a frame rate to a tick period, clamped to
// 1..maxTickRate frames per second.
func tickInterval(rate int) time.Duration {
	rate = min(max(rate, 1), maxTickRate)
	return time.Second / time.Duration(rate)
}

func tickCmd(rate int) tea.Cmd {
	return tea.Tick(tickInterval(rate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
