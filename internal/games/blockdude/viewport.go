package blockdude

import (
	platformcore "github.com/vovakirdan/blockdude/internal/core"
	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
)

// defaultMargin is how close, in blocks, the player may get to a viewport
// edge before the window scrolls.
const defaultMargin = 3

// Viewport is the window of the level that is drawn, in grid coordinates.
// X, Y is the bottom-left visible block.
type Viewport struct {
	X, Y   int
	W, H   int
	Margin int
}

// NewViewport creates a w×h viewport at the level origin.
func NewViewport(w, h int) Viewport {
	return Viewport{W: platformcore.Max(w, 1), H: platformcore.Max(h, 1), Margin: defaultMargin}
}

// margins returns the scroll margins, shrunk so they fit the window.
func (v Viewport) margins() (mx, my int) {
	mx = platformcore.Min(v.Margin, (v.W-1)/2)
	my = platformcore.Min(v.Margin, (v.H-1)/2)
	return mx, my
}

// Center places the window around focus, clamped to the level.
func (v *Viewport) Center(focus core.Coord, levelW, levelH int) {
	v.X = focus.X - v.W/2
	v.Y = focus.Y - v.H/2
	v.clamp(levelW, levelH)
}

// Follow scrolls the window the least amount that keeps focus at least
// Margin blocks from every edge, clamped to the level.
func (v *Viewport) Follow(focus core.Coord, levelW, levelH int) {
	mx, my := v.margins()

	if focus.X < v.X+mx {
		v.X = focus.X - mx
	} else if focus.X > v.X+v.W-1-mx {
		v.X = focus.X - (v.W - 1 - mx)
	}

	if focus.Y < v.Y+my {
		v.Y = focus.Y - my
	} else if focus.Y > v.Y+v.H-1-my {
		v.Y = focus.Y - (v.H - 1 - my)
	}

	v.clamp(levelW, levelH)
}

func (v *Viewport) clamp(levelW, levelH int) {
	v.X = platformcore.Clamp(v.X, 0, platformcore.Max(levelW-v.W, 0))
	v.Y = platformcore.Clamp(v.Y, 0, platformcore.Max(levelH-v.H, 0))
}

// Contains reports whether the block at c is visible.
func (v Viewport) Contains(c core.Coord) bool {
	return c.X >= v.X && c.X < v.X+v.W && c.Y >= v.Y && c.Y < v.Y+v.H
}

// Visible returns the number of columns and rows drawn for a level.
func (v Viewport) Visible(levelW, levelH int) (cols, rows int) {
	return platformcore.Min(v.W, levelW), platformcore.Min(v.H, levelH)
}
