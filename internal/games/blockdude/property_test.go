package blockdude

import (
	"testing"

	"pgregory.net/rapid"

	platformcore "github.com/vovakirdan/blockdude/internal/core"
	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
	"github.com/vovakirdan/blockdude/internal/games/blockdude/levels"
)

var sessionActions = []platformcore.Action{
	platformcore.ActionLeft,
	platformcore.ActionRight,
	platformcore.ActionJump,
	platformcore.ActionInteract,
	platformcore.ActionConfirm,
	platformcore.ActionBack,
	platformcore.ActionRestart,
}

// Random play over the built-in levels never corrupts the grid, and the
// session never leaves the level range.
func TestBuiltinSessionProperty(t *testing.T) {
	lvls, err := levels.Builtin().LoadAll()
	if err != nil {
		t.Fatal(err)
	}

	rapid.Check(t, func(t *rapid.T) {
		g, err := New(lvls)
		if err != nil {
			t.Fatal(err)
		}
		g.Reset(platformcore.DefaultConfig())

		n := rapid.IntRange(1, 200).Draw(t, "steps")
		for i := 0; i < n && !g.Quitting(); i++ {
			a := rapid.SampledFrom(sessionActions).Draw(t, "action")
			before := g.Moves()
			mode := g.Mode()
			res := g.Step(platformcore.FrameOf(a))

			if g.LevelIndex() < 0 || g.LevelIndex() >= g.LevelCount() {
				t.Fatalf("level index %d out of range", g.LevelIndex())
			}
			if res.State.GameOver {
				continue
			}
			if err := g.Grid().Validate(); err != nil {
				t.Fatalf("after %s in %s: %v\n%s", a, mode, err, g.Grid())
			}
			if a != platformcore.ActionRestart && mode == core.ModePlaying && g.Mode() == core.ModePlaying && g.Moves() < before {
				t.Fatalf("moves went down from %d to %d without leaving the level", before, g.Moves())
			}
			if g.Mode() != core.ModePlaying && g.Moves() != 0 {
				t.Fatalf("moves %d counted outside play", g.Moves())
			}
		}
	})
}
