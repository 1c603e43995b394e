package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/watersort/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		name     string
		msg      tea.KeyMsg
		expected core.Action
		quit     bool
	}{
		{"q quits", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"digit picks", runeKey("3"), core.ActionPick, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"d moves right", runeKey("d"), core.ActionRight, false},
		{"space selects", tea.KeyMsg{Type: tea.KeySpace}, core.ActionSelect, false},
		{"enter selects", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionSelect, false},
		{"u undoes", runeKey("u"), core.ActionUndo, false},
		{"y redoes", runeKey("y"), core.ActionRedo, false},
		{"h hints", runeKey("h"), core.ActionHint, false},
		{"n advances", runeKey("n"), core.ActionNext, false},
		{"esc backs out", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"p pauses", runeKey("p"), core.ActionPause, false},
		{"r restarts", runeKey("r"), core.ActionRestart, false},
		{"unbound", runeKey("x"), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.expected || quit != tt.quit {
				t.Errorf("MapKey(%q) = (%v, %v), expected (%v, %v)", tt.msg.String(), action, quit, tt.expected, tt.quit)
			}
		})
	}
}

func TestPickIndex(t *testing.T) {
	tests := []struct {
		key      string
		expected int
		ok       bool
	}{
		{"1", 0, true},
		{"9", 8, true},
		{"0", 9, true},
		{"a", 0, false},
		{"12", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		i, ok := PickIndex(tt.key)
		if i != tt.expected || ok != tt.ok {
			t.Errorf("PickIndex(%q) = (%d, %v), expected (%d, %v)", tt.key, i, ok, tt.expected, tt.ok)
		}
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper()
	frame := core.NewInputFrame()

	if quit := km.MapKeyToFrame(runeKey("4"), &frame); quit {
		t.Error("digit reported quit")
	}
	if !frame.Has(core.ActionPick) || frame.Pick != 3 {
		t.Errorf("frame after '4' = %+v, expected pick of tube 3", frame)
	}

	frame.Clear()
	if quit := km.MapKeyToFrame(runeKey("q"), &frame); !quit {
		t.Error("q did not report quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit should not be queued as a game action")
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()

	tests := []struct {
		msg      tea.KeyMsg
		expected MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey("j"), MenuActionDown},
		{runeKey("h"), MenuActionLeft},
		{tea.KeyMsg{Type: tea.KeyRight}, MenuActionRight},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyTab}, MenuActionScoreboard},
		{runeKey("q"), MenuActionQuit},
		{runeKey("x"), MenuActionNone},
	}

	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.expected {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.expected)
		}
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorTeal)
	s.DrawTextColored(2, 0, "cd", core.ColorPink)
	s.DrawText(0, 1, "ef")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen() produced %d lines, expected 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "ef"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() = %q, missing %q", out, want)
		}
	}
}

func TestEveryScreenColorHasStyle(t *testing.T) {
	for c := range ansiCodes {
		if _, ok := colorStyles[c]; !ok {
			t.Errorf("color %d has no style", c)
		}
	}
	if _, ok := colorStyles[core.ColorDefault]; !ok {
		t.Error("default color has no style")
	}
}

func TestTickInterval(t *testing.T) {
	tests := []struct {
		rate     int
		expected time.Duration
	}{
		{30, time.Second / 30},
		{1, time.Second},
		{0, time.Second},
		{-5, time.Second},
		{1000, time.Second / maxTickRate},
	}

	for _, tt := range tests {
		if got := tickInterval(tt.rate); got != tt.expected {
			t.Errorf("tickInterval(%d) = %v, expected %v", tt.rate, got, tt.expected)
		}
	}
}
