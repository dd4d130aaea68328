package core_test

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
)

var commands = []core.Command{core.CmdLeft, core.CmdRight, core.CmdJump, core.CmdInteract}

// randomGrid draws a level with a brick floor, a random scatter of bricks
// and wood, and a supported player and door on the first row above ground.
func randomGrid(t *rapid.T) *core.Grid {
	w := rapid.IntRange(3, 10).Draw(t, "w")
	h := rapid.IntRange(3, 8).Draw(t, "h")
	px := rapid.IntRange(0, w-1).Draw(t, "px")
	dx := rapid.IntRange(0, w-2).Draw(t, "dx")
	if dx >= px {
		dx++
	}

	var cells []core.Cell
	for x := 0; x < w; x++ {
		cells = append(cells, core.At(core.Brick, x, 0))
	}
	fill := rapid.SampledFrom([]core.TileType{core.Air, core.Air, core.Air, core.Brick, core.Wood})
	for y := 1; y < h; y++ {
		for x := 0; x < w; x++ {
			if y == 1 && (x == px || x == dx) {
				continue
			}
			if k := fill.Draw(t, "tile"); k != core.Air {
				cells = append(cells, core.At(k, x, y))
			}
		}
	}
	cells = append(cells, core.At(core.Player, px, 1), core.At(core.Door, dx, 1))

	g, err := core.BuildGrid(1, w, h, cells)
	if err != nil {
		t.Fatalf("BuildGrid: %v", err)
	}
	return g
}

func TestCommandsPreserveInvariants(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := randomGrid(t)
		wood := g.Count(core.Wood)
		steps := rapid.SliceOfN(rapid.SampledFrom(commands), 1, 60).Draw(t, "commands")

		for i, cmd := range steps {
			before := g.Clone()
			changed := core.Apply(g, cmd)

			if !changed && !g.Equal(before) {
				t.Fatalf("step %d %s reported no change but the grid changed", i, cmd)
			}
			if err := g.Validate(); err != nil {
				t.Fatalf("step %d %s: %v\n%s", i, cmd, err, g)
			}
			if n := g.Count(core.Player); n != 1 {
				t.Fatalf("step %d %s: %d player cells", i, cmd, n)
			}
			doors := g.Count(core.Door)
			if g.Complete() {
				doors++
			}
			if doors != 1 {
				t.Fatalf("step %d %s: door lost\n%s", i, cmd, g)
			}
			if n := g.Count(core.Wood); n != wood {
				t.Fatalf("step %d %s: wood count %d, want %d", i, cmd, n, wood)
			}

			p := g.Player()
			if !g.Complete() && p.Y > 0 && g.Kind(p.X, p.Y-1) == core.Air {
				t.Fatalf("step %d %s: player floating at %v\n%s", i, cmd, p, g)
			}
			if cmd == core.CmdLeft && g.Facing() != core.Left || cmd == core.CmdRight && g.Facing() != core.Right {
				t.Fatalf("step %d %s: facing %s", i, cmd, g.Facing())
			}
		}
	})
}

func TestBlockedMovesAreIdempotentProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := randomGrid(t)
		d := rapid.SampledFrom([]core.Dir{core.Left, core.Right}).Draw(t, "dir")

		g.SetFacing(d)
		before := g.Clone()
		if core.Move(g, d) {
			return
		}
		for i := 0; i < 3; i++ {
			if core.Move(g, d) {
				t.Fatalf("blocked move succeeded on retry %d", i+1)
			}
		}
		if !g.Equal(before) {
			t.Fatalf("blocked move changed the grid\n%s", g)
		}
	})
}

func TestJumpWithoutSteppingStoneProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		g := randomGrid(t)
		d := rapid.SampledFrom([]core.Dir{core.Left, core.Right}).Draw(t, "dir")
		g.SetFacing(d)

		p := g.Player()
		step := g.Kind(p.X+d.Delta(), p.Y)
		if !g.InBounds(p.X+d.Delta(), p.Y) || step == core.Brick || step == core.Wood {
			return
		}
		before := g.Clone()
		if core.Jump(g) || !g.Equal(before) {
			t.Fatalf("jump over %s succeeded\n%s", step, g)
		}
	})
}
