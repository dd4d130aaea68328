package core

import (
	"fmt"
	"strings"
)

// Grid is the mutable state of one level: the tile cells plus the player's
// position, facing and carry status, and the door location.
// Cells are stored in row-major order: index = y*width + x, with y=0 the ground row.
//
// A carried block is not a separate object. While Carrying is set, the block
// is the Wood tile directly above the player.
type Grid struct {
	id     int
	width  int
	height int
	cells  []TileType

	player    Coord
	facing    Dir
	carrying  bool
	goal      Coord
	hasPlayer bool
	hasDoor   bool
}

// NewGrid creates an all-air grid with no player and no door.
// The result is not playable until a Player and a Door are placed; use
// BuildGrid to construct a validated level.
func NewGrid(id, width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, levelErr("BAD_SIZE", "dimensions %dx%d must be positive", width, height)
	}
	return &Grid{
		id:     id,
		width:  width,
		height: height,
		cells:  make([]TileType, width*height),
		facing: Left,
	}, nil
}

// BuildOption customizes BuildGrid.
type BuildOption func(*buildOptions)

type buildOptions struct {
	allowDuplicates bool
}

// AllowDuplicateSingletons makes a repeated Player or Door placement move the
// singleton (last write wins) instead of failing the build.
func AllowDuplicateSingletons() BuildOption {
	return func(o *buildOptions) {
		o.allowDuplicates = true
	}
}

// BuildGrid constructs a level grid from its header and block placements,
// applied in order. It fails with ErrInvalidLevel when the level has no
// player or no door.
func BuildGrid(id, width, height int, placements []Cell, opts ...BuildOption) (*Grid, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	g, err := NewGrid(id, width, height)
	if err != nil {
		return nil, err
	}

	players, doors := 0, 0
	for i, c := range placements {
		if !c.Kind.Valid() {
			return nil, levelErr("BAD_TILE", "placement %d has unknown tile type %d", i, c.Kind)
		}
		if !g.InBounds(c.X, c.Y) {
			return nil, levelErr("OUT_OF_BOUNDS", "placement %d at %v outside %dx%d", i, c.Pos(), width, height)
		}
		switch c.Kind {
		case Player:
			players++
		case Door:
			doors++
		}
		if !o.allowDuplicates && (players > 1 || doors > 1) {
			return nil, levelErr("DUPLICATE", "second %s placed at %v", c.Kind, c.Pos())
		}
		// In bounds was checked above, Place cannot fail.
		_ = g.Place(c)
	}

	if !g.hasPlayer {
		return nil, levelErr("NO_PLAYER", "level %d has no player", id)
	}
	if !g.hasDoor {
		return nil, levelErr("NO_DOOR", "level %d has no door", id)
	}
	return g, nil
}

// ID returns the level id.
func (g *Grid) ID() int {
	return g.id
}

// Width returns the grid width in blocks.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in blocks.
func (g *Grid) Height() int {
	return g.height
}

// Player returns the player position.
func (g *Grid) Player() Coord {
	return g.player
}

// Facing returns the direction the player last attempted to move.
func (g *Grid) Facing() Dir {
	return g.facing
}

// SetFacing turns the player without moving.
func (g *Grid) SetFacing(d Dir) {
	g.facing = d
}

// Carrying reports whether the player holds a wood block overhead.
func (g *Grid) Carrying() bool {
	return g.carrying
}

// Goal returns the door position.
func (g *Grid) Goal() Coord {
	return g.goal
}

// HasPlayer reports whether a player has been placed.
func (g *Grid) HasPlayer() bool {
	return g.hasPlayer
}

// HasDoor reports whether a door has been placed.
func (g *Grid) HasDoor() bool {
	return g.hasDoor
}

// Complete reports whether the player stands on the door.
func (g *Grid) Complete() bool {
	return g.hasPlayer && g.hasDoor && g.player == g.goal
}

// InBounds returns true if (x, y) is within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// At returns the cell at (x, y).
func (g *Grid) At(x, y int) (Cell, error) {
	if !g.InBounds(x, y) {
		return Cell{}, fmt.Errorf("cell %v in %dx%d grid: %w", C(x, y), g.width, g.height, ErrOutOfBounds)
	}
	return At(g.cells[g.index(x, y)], x, y), nil
}

// Kind returns the tile type at (x, y). Positions outside the grid read as
// Brick so they are never walkable.
func (g *Grid) Kind(x, y int) TileType {
	if !g.InBounds(x, y) {
		return Brick
	}
	return g.cells[g.index(x, y)]
}

// Place overwrites the cell at (cell.X, cell.Y). Placing a Player or Door
// records the singleton; placing one a second time moves it and clears the
// previous cell.
func (g *Grid) Place(c Cell) error {
	if !g.InBounds(c.X, c.Y) {
		return fmt.Errorf("place %s at %v: %w", c.Kind, c.Pos(), ErrOutOfBounds)
	}
	pos := c.Pos()

	switch g.cells[g.index(c.X, c.Y)] {
	case Player:
		if c.Kind != Player && g.player == pos {
			g.hasPlayer = false
			g.carrying = false
		}
	case Door:
		if c.Kind != Door && g.goal == pos {
			g.hasDoor = false
		}
	}

	switch c.Kind {
	case Player:
		if g.hasPlayer && g.player != pos && g.Kind(g.player.X, g.player.Y) == Player {
			g.set(g.player, Air)
		}
		g.player = pos
		g.hasPlayer = true
		g.carrying = false
	case Door:
		if g.hasDoor && g.goal != pos && g.Kind(g.goal.X, g.goal.Y) == Door {
			g.set(g.goal, Air)
		}
		g.goal = pos
		g.hasDoor = true
	}

	g.set(pos, c.Kind)
	return nil
}

// Clear sets the cell at (x, y) to Air.
func (g *Grid) Clear(x, y int) error {
	return g.Place(At(Air, x, y))
}

// set writes a tile without singleton bookkeeping. Callers guarantee bounds.
func (g *Grid) set(c Coord, t TileType) {
	g.cells[g.index(c.X, c.Y)] = t
}

// vacate empties the cell the player is leaving. The door stays in place
// when the player walks off it.
func (g *Grid) vacate(c Coord) {
	if g.hasDoor && c == g.goal {
		g.set(c, Door)
		return
	}
	g.set(c, Air)
}

// Count returns the number of cells of the given kind.
func (g *Grid) Count(t TileType) int {
	n := 0
	for _, k := range g.cells {
		if k == t {
			n++
		}
	}
	return n
}

// Placements returns every non-air cell, bottom row first.
// The result rebuilds an equivalent grid when passed to BuildGrid.
func (g *Grid) Placements() []Cell {
	cells := make([]Cell, 0)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			if k := g.cells[g.index(x, y)]; k != Air {
				cells = append(cells, At(k, x, y))
			}
		}
	}
	return cells
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := *g
	clone.cells = make([]TileType, len(g.cells))
	copy(clone.cells, g.cells)
	return &clone
}

// Equal returns true if two grids have the same dimensions, contents and
// player state.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	if g.player != other.player || g.facing != other.facing || g.carrying != other.carrying {
		return false
	}
	if g.goal != other.goal || g.hasPlayer != other.hasPlayer || g.hasDoor != other.hasDoor {
		return false
	}
	for i, k := range g.cells {
		if k != other.cells[i] {
			return false
		}
	}
	return true
}

// Validate checks the grid invariants: exactly one player cell at the
// recorded position, a door at the goal unless the player stands on it, and
// a wood block overhead whenever the player is carrying.
func (g *Grid) Validate() error {
	if !g.hasPlayer {
		return levelErr("NO_PLAYER", "no player")
	}
	if !g.hasDoor {
		return levelErr("NO_DOOR", "no door")
	}
	if n := g.Count(Player); n != 1 {
		return levelErr("PLAYER_COUNT", "%d player cells", n)
	}
	if k := g.Kind(g.player.X, g.player.Y); k != Player {
		return levelErr("PLAYER_CELL", "player recorded at %v holds %s", g.player, k)
	}
	if g.player != g.goal {
		if k := g.Kind(g.goal.X, g.goal.Y); k != Door {
			return levelErr("DOOR_CELL", "door recorded at %v holds %s", g.goal, k)
		}
	}
	if g.carrying {
		above := g.player.Add(0, 1)
		if !g.InBounds(above.X, above.Y) || g.Kind(above.X, above.Y) != Wood {
			return levelErr("CARRY", "carrying but %v is not wood", above)
		}
	}
	return nil
}

// String renders the grid as ASCII rows, top row first.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := g.height - 1; y >= 0; y-- {
		for x := 0; x < g.width; x++ {
			sb.WriteRune(g.cells[g.index(x, y)].Rune())
		}
		if y > 0 {
			sb.WriteRune('\n')
		}
	}
	return sb.String()
}
