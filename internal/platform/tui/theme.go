package tui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/blockdude/internal/core"
)

// Theme contains the visual styles for the game screen and menus.
type Theme struct {
	// Palette maps screen colors to terminal styles.
	Palette map[core.Color]lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	MenuControls    lipgloss.Style

	// Table styles
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
	TableBorder   lipgloss.Color
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// DefaultTheme returns the default ANSI theme.
func DefaultTheme() Theme {
	return Theme{
		Palette: map[core.Color]lipgloss.Style{
			core.ColorDefault:      lipgloss.NewStyle(),
			core.ColorRed:          fg("1"),
			core.ColorGreen:        fg("2"),
			core.ColorYellow:       fg("3"),
			core.ColorBlue:         fg("4"),
			core.ColorMagenta:      fg("5"),
			core.ColorCyan:         fg("6"),
			core.ColorWhite:        fg("7"),
			core.ColorBrightRed:    fg("9"),
			core.ColorBrightGreen:  fg("10"),
			core.ColorBrightYellow: fg("11"),
			core.ColorBrightBlue:   fg("12"),
			core.ColorBrightCyan:   fg("14"),
			core.ColorBrightWhite:  fg("15"),
			core.ColorOrange:       fg("208"),
			core.ColorBrown:        fg("130"),
			core.ColorGray:         fg("245"),
		},

		MenuTitle:       fg("51").Bold(true),
		MenuItemNormal:  fg("252"),
		MenuItemActive:  fg("226").Bold(true),
		MenuDescription: fg("245"),
		MenuControls:    fg("241"),

		TableHeader:   lipgloss.NewStyle().Bold(true),
		TableSelected: fg("229").Background(lipgloss.Color("57")),
		TableBorder:   lipgloss.Color("240"),
	}
}

// ClassicTheme returns brick-red and timber colors closer to the calculator
// game's sprites.
func ClassicTheme() Theme {
	theme := DefaultTheme()
	theme.Palette[core.ColorRed] = fg("160")
	theme.Palette[core.ColorBrown] = fg("94")
	theme.Palette[core.ColorBrightYellow] = fg("220")
	theme.Palette[core.ColorBrightCyan] = fg("33")
	return theme
}

// MonochromeTheme returns a grayscale theme.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	for _, c := range core.Colors() {
		if c != core.ColorDefault {
			theme.Palette[c] = fg("250")
		}
	}
	theme.Palette[core.ColorBrown] = fg("242")
	theme.Palette[core.ColorGray] = fg("240")
	theme.MenuTitle = fg("255").Bold(true)
	theme.MenuItemActive = fg("255").Bold(true).Underline(true)
	theme.TableSelected = fg("0").Background(lipgloss.Color("250"))
	return theme
}

var themes = map[string]func() Theme{
	"default": DefaultTheme,
	"classic": ClassicTheme,
	"mono":    MonochromeTheme,
}

// ThemeNames returns the names accepted by ThemeByName.
func ThemeNames() []string {
	names := make([]string, 0, len(themes))
	for name := range themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ThemeByName returns a named theme. An empty name is the default theme.
func ThemeByName(name string) (Theme, error) {
	if name == "" {
		return DefaultTheme(), nil
	}
	fn, ok := themes[name]
	if !ok {
		return Theme{}, fmt.Errorf("unknown theme %q (have %v)", name, ThemeNames())
	}
	return fn(), nil
}

// Global theme variable (can be changed at runtime)
var currentTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	currentTheme = theme
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return currentTheme
}
