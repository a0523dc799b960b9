// Package engine provides the core logic for the liquid-sorting puzzle:
// the bottle/state model, pour rules, the breadth-first optimal solver,
// and the level generation and difficulty calibration pipeline.
// This package is UI-agnostic and deterministic.
package engine

import "strings"

// Color represents a liquid color in the puzzle.
type Color uint8

const (
	ColorRed Color = iota
	ColorOrange
	ColorYellow
	ColorGreen
	ColorCyan
	ColorBlue
	ColorPurple
	ColorPink
	ColorCount // Sentinel value for iteration
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorOrange:
		return "orange"
	case ColorYellow:
		return "yellow"
	case ColorGreen:
		return "green"
	case ColorCyan:
		return "cyan"
	case ColorBlue:
		return "blue"
	case ColorPurple:
		return "purple"
	case ColorPink:
		return "pink"
	default:
		return "unknown"
	}
}

// Char returns a single character representation for compact dumps.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorOrange:
		return 'O'
	case ColorYellow:
		return 'Y'
	case ColorGreen:
		return 'G'
	case ColorCyan:
		return 'C'
	case ColorBlue:
		return 'B'
	case ColorPurple:
		return 'P'
	case ColorPink:
		return 'K'
	default:
		return '?'
	}
}

// ParseColor converts a string to a Color.
// Returns ColorRed and false if the string is not recognized.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(s) {
	case "red", "r":
		return ColorRed, true
	case "orange", "o":
		return ColorOrange, true
	case "yellow", "y":
		return ColorYellow, true
	case "green", "g":
		return ColorGreen, true
	case "cyan", "c":
		return ColorCyan, true
	case "blue", "b":
		return ColorBlue, true
	case "purple", "p":
		return ColorPurple, true
	case "pink", "k":
		return ColorPink, true
	default:
		return ColorRed, false
	}
}

// AllColors returns a slice of all valid colors in enumeration order.
func AllColors() []Color {
	colors := make([]Color, 0, int(ColorCount))
	for c := Color(0); c < ColorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}
