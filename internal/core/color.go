package core

// Color is the foreground color of a screen cell. The renderer maps each
// value to an ANSI 256-color code.
type Color uint8

// Interface colors.
const (
	ColorDefault Color = iota
	ColorWhite
	ColorBrightGreen  // solved tubes
	ColorBrightYellow // hint highlight
	ColorBrightCyan   // selection and titles
)

// Liquid colors. One per puzzle color, so neighbouring tubes stay
// distinguishable on a 256-color terminal.
const (
	ColorRed Color = iota + 16
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
	ColorCharcoal
)
