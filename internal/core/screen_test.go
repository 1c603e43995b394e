package core

import (
	"strings"
	"testing"
)

func rows(lines ...string) string {
	return strings.Join(lines, "\n")
}

func TestNewScreenIsBlank(t *testing.T) {
	s := NewScreen(4, 2)

	if s.Width() != 4 || s.Height() != 2 {
		t.Errorf("size = %dx%d, expected 4x2", s.Width(), s.Height())
	}
	if got := s.String(); got != rows("    ", "    ") {
		t.Errorf("String() = %q, expected blank rows", got)
	}
}

func TestScreenDrawing(t *testing.T) {
	tests := []struct {
		name     string
		w, h     int
		draw     func(s *Screen)
		expected string
	}{
		{
			name:     "text clipped at the right edge",
			w:        6,
			h:        1,
			draw:     func(s *Screen) { s.DrawText(3, 0, "pour") },
			expected: "   pou",
		},
		{
			name:     "out of bounds writes are dropped",
			w:        3,
			h:        1,
			draw:     func(s *Screen) {
				s.Set(-1, 0, 'x')
				s.Set(3, 0, 'x')
				s.Set(0, 1, 'x')
				s.Set(1, 0, 'o')
			},
			expected: " o ",
		},
		{
			name:     "centered multibyte label",
			w:        9,
			h:        1,
			draw:     func(s *Screen) { s.DrawTextCentered(0, "▲▲▲") },
			expected: "   ▲▲▲   ",
		},
		{
			name:     "filled rect",
			w:        5,
			h:        3,
			draw:     func(s *Screen) { s.DrawRect(NewRect(1, 1, 3, 2), '█') },
			expected: rows("     ", " ███ ", " ███ "),
		},
		{
			name:     "box outline",
			w:        4,
			h:        3,
			draw:     func(s *Screen) { s.DrawBox(NewRect(0, 0, 4, 3)) },
			expected: rows("┌──┐", "│  │", "└──┘"),
		},
		{
			name:     "tube with liquid",
			w:        4,
			h:        3,
			draw:     func(s *Screen) {
				s.DrawText(0, 0, "│  │")
				s.DrawText(0, 1, "│██│")
				s.DrawText(0, 2, "└──┘")
			},
			expected: rows("│  │", "│██│", "└──┘"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScreen(tt.w, tt.h)
			tt.draw(s)
			if got := s.String(); got != tt.expected {
				t.Errorf("String() =\n%s\nexpected\n%s", got, tt.expected)
			}
		})
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(3, 2)
	s.DrawRectColored(NewRect(0, 0, 3, 2), '█', ColorRed)

	s.Clear()
	if got := s.String(); got != rows("   ", "   ") {
		t.Errorf("String() after Clear = %q", got)
	}
	if c := s.GetCell(1, 1); c.Color != ColorDefault {
		t.Errorf("Clear() kept color %v", c.Color)
	}
}

func TestScreenResizeKeepsTopLeft(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawText(0, 0, "tubes")
	s.DrawText(0, 2, "moves")

	s.Resize(3, 2)
	if got := s.String(); got != rows("tub", "   ") {
		t.Errorf("after shrinking String() = %q", got)
	}

	s.Resize(5, 3)
	if got := s.String(); got != rows("tub  ", "     ", "     ") {
		t.Errorf("after growing String() = %q", got)
	}
}

func TestScreenColoredCells(t *testing.T) {
	s := NewScreen(10, 3)

	s.DrawTextColored(1, 1, "ab", ColorTeal)
	if c := s.GetCell(1, 1); c.Rune != 'a' || c.Color != ColorTeal {
		t.Errorf("GetCell(1, 1) = %+v, expected teal 'a'", c)
	}
	if c := s.GetCell(0, 1); c.Color != ColorDefault {
		t.Errorf("untouched cell has color %v", c.Color)
	}

	s.DrawBoxColored(NewRect(0, 0, 3, 3), ColorBrightGreen)
	if c := s.GetCell(2, 2); c.Rune != '┘' || c.Color != ColorBrightGreen {
		t.Errorf("GetCell(2, 2) = %+v, expected green corner", c)
	}

	s.DrawTextCenteredColored(2, "ok", ColorBrightYellow)
	if c := s.GetCell(4, 2); c.Rune != 'o' || c.Color != ColorBrightYellow {
		t.Errorf("GetCell(4, 2) = %+v, expected yellow 'o'", c)
	}

	if c := s.GetCell(-1, 0); c != blank {
		t.Errorf("out of bounds GetCell() = %+v", c)
	}
}
