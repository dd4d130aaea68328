package core

// Color represents a foreground color for a screen cell.
// Themes map each color to an ANSI 256-color style.
type Color uint8

// Predefined colors for tiles, HUD and menus.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorBrown
	ColorGray

	colorCount
)

// Colors returns every predefined color in declaration order.
func Colors() []Color {
	colors := make([]Color, 0, colorCount)
	for c := ColorDefault; c < colorCount; c++ {
		colors = append(colors, c)
	}
	return colors
}

// Valid reports whether c is a predefined color.
func (c Color) Valid() bool {
	return c < colorCount
}
