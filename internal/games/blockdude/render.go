package blockdude

import (
	"fmt"

	platformcore "github.com/vovakirdan/blockdude/internal/core"
	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
)

const (
	blockW    = 2 // Terminal columns per block
	hudHeight = 4
)

// glyph is the two-column picture of one block.
type glyph struct {
	text  string
	color platformcore.Color
}

var tileGlyphs = map[core.TileType]glyph{
	core.Air:   {"  ", platformcore.ColorDefault},
	core.Brick: {"▓▓", platformcore.ColorRed},
	core.Wood:  {"▒▒", platformcore.ColorBrown},
	core.Door:  {"[]", platformcore.ColorBrightYellow},
}

func playerGlyph(facing core.Dir) glyph {
	if facing == core.Right {
		return glyph{"o>", platformcore.ColorBrightCyan}
	}
	return glyph{"<o", platformcore.ColorBrightCyan}
}

// Render draws the session to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	switch g.machine.Mode() {
	case core.ModePre:
		g.renderPre(dst)
	case core.ModeGameOver:
		g.renderGameOver(dst)
	case core.ModePlaying:
		g.renderHUD(dst,
			fmt.Sprintf(" Block Dude | Level %d/%d | Moves: %d | Time: %ds",
				g.index+1, len(g.levels), g.moves, int(g.LevelElapsed().Seconds())),
			" ←/→ j/l: Walk | ↑ i: Jump | ↓ k: Pick up/Drop | R: Restart | Esc: Abandon")
		g.renderGrid(dst, g.grid, nil)
	case core.ModeEditing:
		e := g.editor
		state := "saved"
		if e.Dirty() {
			state = "modified"
		}
		g.renderHUD(dst,
			fmt.Sprintf(" Editor | Level %d | Brush: %s | Cursor %v | %s", g.Level().ID, e.Brush(), e.Cursor(), state),
			" Arrows/ijkl: Move | Space: Paint | T: Tile | X: Erase | Ctrl+S: Save | Esc: Done")
		cursor := e.Cursor()
		g.renderGrid(dst, e.Grid(), &cursor)
	}

	if g.status != "" {
		dst.DrawTextWithColor(1, dst.Height()-1, g.status, platformcore.ColorYellow)
	}
}

func (g *Game) renderPre(dst *platformcore.Screen) {
	lvl := g.Level()
	midY := dst.Height()/2 - 2

	dst.DrawTextCenteredWithColor(midY, fmt.Sprintf("Level %d", lvl.ID), platformcore.ColorBrightWhite)
	if lvl.Name != "" {
		dst.DrawTextCenteredWithColor(midY+1, lvl.Name, platformcore.ColorCyan)
	}
	dst.DrawTextCentered(midY+3, "Press space to begin.")
	dst.DrawTextCenteredWithColor(midY+5, "E: Edit level | Esc/Q: Quit", platformcore.ColorGray)
}

func (g *Game) renderGameOver(dst *platformcore.Screen) {
	midY := dst.Height()/2 - 2

	dst.DrawTextCenteredWithColor(midY, "You Win!", platformcore.ColorBrightYellow)
	dst.DrawTextCenteredWithColor(midY+2, fmt.Sprintf("%.2fs", g.elapsed.Seconds()), platformcore.ColorRed)
	dst.DrawTextCenteredWithColor(midY+4, "R: Play again | Esc/Q: Quit", platformcore.ColorGray)
}

// renderHUD draws the status bar and the controls hint.
func (g *Game) renderHUD(dst *platformcore.Screen, status, controls string) {
	dst.DrawTextWithColor(0, 0, status, platformcore.ColorCyan)
	dst.DrawHLine(0, 1, dst.Width(), '─', platformcore.ColorGray)
	dst.DrawTextWithColor(0, 2, controls, platformcore.ColorGray)
	dst.DrawHLine(0, 3, dst.Width(), '─', platformcore.ColorGray)
}

// renderGrid draws the viewport of grid inside a box, top row first.
// A non-nil cursor is highlighted.
func (g *Game) renderGrid(dst *platformcore.Screen, grid *core.Grid, cursor *core.Coord) {
	v := g.viewport
	cols, rows := v.Visible(grid.Width(), grid.Height())
	boxW := cols*blockW + 2
	boxH := rows + 2

	if dst.Width() < boxW || dst.Height() < hudHeight+boxH+1 {
		dst.DrawTextCenteredWithColor(dst.Height()/2, "Window too small", platformcore.ColorRed)
		return
	}

	offX := (dst.Width() - boxW) / 2
	offY := hudHeight + (dst.Height()-hudHeight-1-boxH)/2
	dst.DrawBox(platformcore.NewRect(offX, offY, boxW, boxH), platformcore.ColorGray)

	for r := 0; r < rows; r++ {
		gy := v.Y + rows - 1 - r
		sy := offY + 1 + r
		for c := 0; c < cols; c++ {
			gx := v.X + c
			gl := g.glyphAt(grid, gx, gy)
			if cursor != nil && *cursor == core.C(gx, gy) {
				gl.color = platformcore.ColorBrightGreen
				if grid.Kind(gx, gy) == core.Air {
					gl.text = "░░"
				}
			}
			sx := offX + 1 + c*blockW
			dst.DrawTextWithColor(sx, sy, gl.text, gl.color)
		}
	}
}

func (g *Game) glyphAt(grid *core.Grid, x, y int) glyph {
	k := grid.Kind(x, y)
	if k == core.Player {
		return playerGlyph(grid.Facing())
	}
	return tileGlyphs[k]
}
