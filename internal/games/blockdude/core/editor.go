package core

// Editor paints tiles onto a grid under a movable cursor.
type Editor struct {
	grid   *Grid
	name   string
	cursor Coord
	brush  TileType
	dirty  bool
}

// NewEditor opens an editor on a copy of g. The cursor starts on the player.
func NewEditor(g *Grid, name string) *Editor {
	return &Editor{
		grid:   g.Clone(),
		name:   name,
		cursor: g.Player(),
		brush:  Brick,
	}
}

// NewBlankEditor opens an editor on an empty level of the given size.
func NewBlankEditor(id, width, height int) (*Editor, error) {
	g, err := NewGrid(id, width, height)
	if err != nil {
		return nil, err
	}
	return &Editor{grid: g, brush: Brick}, nil
}

// Grid returns the grid being edited.
func (e *Editor) Grid() *Grid {
	return e.grid
}

// Cursor returns the cursor position.
func (e *Editor) Cursor() Coord {
	return e.cursor
}

// Brush returns the tile type Paint writes.
func (e *Editor) Brush() TileType {
	return e.brush
}

// SetBrush selects the tile type Paint writes.
func (e *Editor) SetBrush(t TileType) {
	if t.Valid() {
		e.brush = t
	}
}

// CycleBrush selects the next tile type, skipping Air.
func (e *Editor) CycleBrush() TileType {
	e.brush = e.brush.Next()
	if e.brush == Air {
		e.brush = e.brush.Next()
	}
	return e.brush
}

// Dirty reports whether the grid changed since the editor opened or was last
// marked saved.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// MarkSaved clears the dirty flag.
func (e *Editor) MarkSaved() {
	e.dirty = false
}

// MoveCursor shifts the cursor, clamped to the grid.
func (e *Editor) MoveCursor(dx, dy int) {
	e.cursor.X = clamp(e.cursor.X+dx, 0, e.grid.Width()-1)
	e.cursor.Y = clamp(e.cursor.Y+dy, 0, e.grid.Height()-1)
}

// Paint writes the brush at the cursor. Painting a Player or Door moves that
// singleton to the cursor.
func (e *Editor) Paint() {
	e.place(e.brush)
}

// Erase sets the cell under the cursor to Air.
func (e *Editor) Erase() {
	e.place(Air)
}

func (e *Editor) place(t TileType) {
	if e.grid.Kind(e.cursor.X, e.cursor.Y) == t {
		return
	}
	// The cursor is always in bounds.
	_ = e.grid.Place(At(t, e.cursor.X, e.cursor.Y))
	e.dirty = true
}

// Level exports the edited grid. It fails with ErrInvalidLevel when the
// level could not be played.
func (e *Editor) Level() (LevelData, error) {
	if !e.grid.HasPlayer() {
		return LevelData{}, levelErr("NO_PLAYER", "place a player before saving")
	}
	if !e.grid.HasDoor() {
		return LevelData{}, levelErr("NO_DOOR", "place a door before saving")
	}
	return LevelFromGrid(e.grid, e.name), nil
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
