package core

import (
	"fmt"
	"strconv"
	"strings"
)

// Color identifies a liquid color. Values are small non-negative integers
// so a Layout can be hashed cheaply.
type Color uint8

const (
	ColorRed Color = iota
	ColorBlue
	ColorGreen
	ColorYellow
	ColorOrange
	ColorPurple
	ColorPink
	ColorCyan
	ColorBrown
	ColorMint
	ColorIndigo
	ColorTeal
	ColorGray
	ColorBlack
	PaletteSize int = iota // Number of named colors
)

var colorNames = [...]string{
	"red", "blue", "green", "yellow", "orange", "purple", "pink",
	"cyan", "brown", "mint", "indigo", "teal", "gray", "black",
}

// String returns the palette name of a color.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "color(" + strconv.Itoa(int(c)) + ")"
}

// Char returns a single letter used by ASCII renderers.
// Colors sharing a first letter are disambiguated with upper/lower case.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorBlue:
		return 'B'
	case ColorGreen:
		return 'G'
	case ColorYellow:
		return 'Y'
	case ColorOrange:
		return 'O'
	case ColorPurple:
		return 'P'
	case ColorPink:
		return 'p'
	case ColorCyan:
		return 'C'
	case ColorBrown:
		return 'b'
	case ColorMint:
		return 'M'
	case ColorIndigo:
		return 'I'
	case ColorTeal:
		return 'T'
	case ColorGray:
		return 'g'
	case ColorBlack:
		return 'K'
	default:
		return '?'
	}
}

// Valid reports whether the color is part of the palette.
func (c Color) Valid() bool {
	return int(c) < PaletteSize
}

// ParseColor converts a palette name or decimal id to a Color.
func ParseColor(s string) (Color, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range colorNames {
		if name == s {
			return Color(i), true
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n >= PaletteSize {
		return 0, false
	}
	return Color(n), true
}

// MarshalText encodes palette colors by name and anything else as a decimal id.
func (c Color) MarshalText() ([]byte, error) {
	if c.Valid() {
		return []byte(colorNames[c]), nil
	}
	return []byte(strconv.Itoa(int(c))), nil
}

// UnmarshalText accepts anything ParseColor does.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("core: unknown color %q", text)
	}
	*c = parsed
	return nil
}

// Palette returns the first n colors of the palette.
func Palette(n int) []Color {
	if n > PaletteSize {
		n = PaletteSize
	}
	out := make([]Color, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Color(i))
	}
	return out
}
