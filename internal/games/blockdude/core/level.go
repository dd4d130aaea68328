package core

import (
	"fmt"
	"strings"
)

// LevelData is a parsed level before it is built into a Grid.
type LevelData struct {
	ID         int
	Name       string
	Width      int
	Height     int
	Placements []Cell
}

// Build constructs the playable grid for the level.
func (l LevelData) Build(opts ...BuildOption) (*Grid, error) {
	return BuildGrid(l.ID, l.Width, l.Height, l.Placements, opts...)
}

// Title returns the level name, or "Level N" when it has none.
func (l LevelData) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return fmt.Sprintf("Level %d", l.ID)
}

// LevelFromGrid captures the current contents of a grid as level data.
func LevelFromGrid(g *Grid, name string) LevelData {
	return LevelData{
		ID:         g.ID(),
		Name:       name,
		Width:      g.Width(),
		Height:     g.Height(),
		Placements: g.Placements(),
	}
}

// PlacementsFromRows converts ASCII rows, top row first, into placements.
// The width is the longest row; shorter rows are padded with air.
func PlacementsFromRows(rows []string) (width, height int, cells []Cell, err error) {
	height = len(rows)
	for _, row := range rows {
		if n := len([]rune(row)); n > width {
			width = n
		}
	}

	for i, row := range rows {
		y := height - 1 - i
		for x, r := range []rune(row) {
			t, ok := TileFromRune(r)
			if !ok {
				return 0, 0, nil, fmt.Errorf("row %d column %d: unknown glyph %q", i+1, x+1, r)
			}
			if t != Air {
				cells = append(cells, At(t, x, y))
			}
		}
	}
	return width, height, cells, nil
}

// Rows renders placements as ASCII rows, top row first. It is the inverse of
// PlacementsFromRows for in-bounds cells.
func Rows(width, height int, cells []Cell) []string {
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(".", width))
	}
	for _, c := range cells {
		if c.X < 0 || c.X >= width || c.Y < 0 || c.Y >= height {
			continue
		}
		grid[height-1-c.Y][c.X] = c.Kind.Rune()
	}
	rows := make([]string, height)
	for i, r := range grid {
		rows[i] = string(r)
	}
	return rows
}
