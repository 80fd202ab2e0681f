package core

import "strings"

// Color is the palette index of a piece.
type Color uint8

const (
	ColorRed Color = iota
	ColorGreen
	ColorBlue
	ColorYellow
	ColorPurple
	ColorCyan
	ColorCount // Sentinel value for iteration
)

// String returns the lowercase name of the color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorGreen:
		return "green"
	case ColorBlue:
		return "blue"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorCyan:
		return "cyan"
	default:
		return "unknown"
	}
}

// Char returns a single character for ASCII rendering.
func (c Color) Char() rune {
	switch c {
	case ColorRed:
		return 'R'
	case ColorGreen:
		return 'G'
	case ColorBlue:
		return 'B'
	case ColorYellow:
		return 'Y'
	case ColorPurple:
		return 'P'
	case ColorCyan:
		return 'C'
	default:
		return '?'
	}
}

// Valid reports whether c is a palette color.
func (c Color) Valid() bool {
	return c < ColorCount
}

// ParseColor converts a name or single-letter code to a Color.
func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "red", "r":
		return ColorRed, true
	case "green", "g":
		return ColorGreen, true
	case "blue", "b":
		return ColorBlue, true
	case "yellow", "y":
		return ColorYellow, true
	case "purple", "p":
		return ColorPurple, true
	case "cyan", "c":
		return ColorCyan, true
	default:
		return ColorRed, false
	}
}

// Palette returns the first n palette colors, clamped to [1, ColorCount].
func Palette(n int) []Color {
	if n < 1 {
		n = 1
	}
	if n > int(ColorCount) {
		n = int(ColorCount)
	}
	out := make([]Color, n)
	for i := range out {
		out[i] = Color(i)
	}
	return out
}
