// Package core provides the level simulation for Block Dude.
// This package is UI-agnostic and deterministic: it knows nothing about
// terminals, files or clocks.
package core

import "strings"

// TileType is the kind of block occupying a grid cell.
// The numeric values are the codes used by the .bdl level format.
type TileType uint8

const (
	Air TileType = iota
	Brick
	Player
	Wood
	Door
)

// tileCount is the number of defined tile types.
const tileCount = 5

// String returns the upper-case tile name.
func (t TileType) String() string {
	switch t {
	case Air:
		return "AIR"
	case Brick:
		return "BRICK"
	case Player:
		return "PLAYER"
	case Wood:
		return "WOOD"
	case Door:
		return "DOOR"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether t is one of the defined tile types.
func (t TileType) Valid() bool {
	return t < tileCount
}

// Next returns the following tile type, wrapping after Door.
func (t TileType) Next() TileType {
	return (t + 1) % tileCount
}

// Rune returns the ASCII glyph used for grid dumps and row-based levels.
func (t TileType) Rune() rune {
	switch t {
	case Brick:
		return '#'
	case Player:
		return 'P'
	case Wood:
		return 'W'
	case Door:
		return 'D'
	default:
		return '.'
	}
}

// ParseTileType parses a tile name (case-insensitive, e.g. "wood").
func ParseTileType(s string) (TileType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "air":
		return Air, true
	case "brick":
		return Brick, true
	case "player":
		return Player, true
	case "wood":
		return Wood, true
	case "door":
		return Door, true
	}
	return Air, false
}

// TileFromRune parses an ASCII glyph as produced by Rune.
func TileFromRune(r rune) (TileType, bool) {
	switch r {
	case '.', ' ':
		return Air, true
	case '#':
		return Brick, true
	case 'P', 'p':
		return Player, true
	case 'W', 'w':
		return Wood, true
	case 'D', 'd':
		return Door, true
	}
	return Air, false
}

// Cell is a single grid cell. Its position is redundant with the grid slot
// and kept so placements round-trip through level files.
type Cell struct {
	Kind TileType
	X    int
	Y    int
}

// At returns a cell of kind t at (x, y).
func At(t TileType, x, y int) Cell {
	return Cell{Kind: t, X: x, Y: y}
}

// Pos returns the cell position.
func (c Cell) Pos() Coord {
	return Coord{X: c.X, Y: c.Y}
}
