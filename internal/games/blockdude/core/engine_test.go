package core_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
)

func TestMoveOntoDoorCompletesLevel(t *testing.T) {
	g := mustGrid(t,
		"...",
		"P.D",
		"##.",
	)
	g.SetFacing(core.Right)

	require.True(t, core.Move(g, core.Right))
	assert.Equal(t, core.C(1, 1), g.Player(), "brick below stops the fall")
	assert.Equal(t, core.Air, g.Kind(0, 1))
	assert.False(t, g.Complete())

	require.True(t, core.Move(g, core.Right))
	assert.Equal(t, core.C(2, 1), g.Player())
	assert.True(t, g.Complete())
}

func TestMoveFalls(t *testing.T) {
	g := mustGrid(t,
		"P...",
		"#...",
		"#..D",
		"####",
	)

	require.True(t, core.Move(g, core.Right))
	assert.Equal(t, core.C(1, 1), g.Player())
	assert.Equal(t, core.Right, g.Facing())
	assert.Equal(t, core.Air, g.Kind(0, 3))
	assert.Equal(t, core.Air, g.Kind(1, 3))
	assert.Equal(t, core.Air, g.Kind(1, 2))
}

func TestMoveFacing(t *testing.T) {
	testCases := []struct {
		name    string
		start   core.Dir
		move    core.Dir
		changed bool
		pos     core.Coord
	}{
		{"turn into wall", core.Right, core.Left, true, core.C(1, 1)},
		{"blocked, already facing", core.Left, core.Left, false, core.C(1, 1)},
		{"open side", core.Left, core.Right, true, core.C(2, 1)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGrid(t,
				"....",
				"#P.D",
				"####",
			)
			g.SetFacing(tc.start)

			assert.Equal(t, tc.changed, core.Move(g, tc.move))
			assert.Equal(t, tc.move, g.Facing())
			assert.Equal(t, tc.pos, g.Player())
		})
	}
}

func TestBlockedMoveIsIdempotent(t *testing.T) {
	g := mustGrid(t,
		"....",
		"#P.D",
		"####",
	)
	g.SetFacing(core.Right)

	core.Move(g, core.Left)
	snapshot := g.Clone()
	for i := 0; i < 3; i++ {
		assert.False(t, core.Move(g, core.Left))
		assert.True(t, g.Equal(snapshot), "state changed on blocked move %d", i+1)
	}
}

func TestMoveOutOfBounds(t *testing.T) {
	g := mustGrid(t,
		"P.D",
		"###",
	)
	assert.False(t, core.Move(g, core.Left))
	assert.Equal(t, core.C(0, 1), g.Player())
}

func TestMoveCarrying(t *testing.T) {
	g := mustGrid(t,
		".....",
		"WP...",
		"##..D",
		"#####",
	)

	require.True(t, core.Interact(g))
	require.True(t, g.Carrying())
	assert.Equal(t, core.Wood, g.Kind(1, 3))

	require.True(t, core.Move(g, core.Right))
	assert.Equal(t, core.C(2, 1), g.Player())
	assert.Equal(t, core.Air, g.Kind(1, 3))
	assert.Equal(t, core.Wood, g.Kind(2, 2), "block rides on the player's final cell")
	assert.NoError(t, g.Validate())

	require.True(t, core.Move(g, core.Right))
	require.True(t, core.Move(g, core.Right))
	assert.True(t, g.Complete())
	assert.True(t, g.Carrying())
	assert.Equal(t, core.Wood, g.Kind(4, 2))
	assert.Equal(t, 1, g.Count(core.Wood))
}

func TestMoveCarryingBlockedOverhead(t *testing.T) {
	g := mustGrid(t,
		"..#.",
		"WP.D",
		"####",
	)
	require.True(t, core.Interact(g))

	assert.True(t, core.Move(g, core.Right), "turning counts as a change")
	assert.Equal(t, core.C(1, 1), g.Player())
	assert.False(t, core.Move(g, core.Right))
	assert.Equal(t, core.Wood, g.Kind(1, 2))
}

func TestJump(t *testing.T) {
	g := mustGrid(t,
		"....",
		"P#.D",
		"####",
	)
	g.SetFacing(core.Right)

	require.True(t, core.Jump(g))
	assert.Equal(t, core.C(1, 2), g.Player())
	assert.Equal(t, core.Air, g.Kind(0, 1))

	require.True(t, core.Move(g, core.Right))
	assert.Equal(t, core.C(2, 1), g.Player())
	require.True(t, core.Move(g, core.Right))
	assert.True(t, g.Complete())
}

func TestJumpRejected(t *testing.T) {
	testCases := []struct {
		name string
		rows []string
	}{
		{"no stepping stone", []string{"....", "P..D", "####"}},
		{"landing blocked", []string{".#..", "P#.D", "####"}},
		{"landing out of bounds", []string{"P#.D", "####"}},
		{"edge of level", []string{"....", ".#.P", "#D##"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGrid(t, tc.rows...)
			g.SetFacing(core.Right)
			snapshot := g.Clone()

			assert.False(t, core.Jump(g))
			assert.True(t, g.Equal(snapshot))
		})
	}
}

func TestJumpOntoWood(t *testing.T) {
	g := mustGrid(t,
		"....",
		"PW.D",
		"####",
	)
	g.SetFacing(core.Right)

	require.True(t, core.Jump(g))
	assert.Equal(t, core.C(1, 2), g.Player())
	assert.Equal(t, core.Wood, g.Kind(1, 1))
}

func TestJumpCarrying(t *testing.T) {
	t.Run("no room for block", func(t *testing.T) {
		g := mustGrid(t,
			".....",
			"WP#.D",
			"#####",
		)
		require.True(t, core.Interact(g))
		g.SetFacing(core.Right)
		snapshot := g.Clone()

		assert.False(t, core.Jump(g))
		assert.True(t, g.Equal(snapshot))
	})

	t.Run("block follows", func(t *testing.T) {
		g := mustGrid(t,
			".....",
			".....",
			"WP#.D",
			"#####",
		)
		require.True(t, core.Interact(g))
		g.SetFacing(core.Right)

		require.True(t, core.Jump(g))
		assert.Equal(t, core.C(2, 2), g.Player())
		assert.Equal(t, core.Wood, g.Kind(2, 3))
		assert.Equal(t, core.Air, g.Kind(1, 2))
		assert.Equal(t, core.Air, g.Kind(1, 1))
		assert.True(t, g.Carrying())
		assert.NoError(t, g.Validate())
	})
}

func TestInteractPickup(t *testing.T) {
	g := mustGrid(t,
		".....",
		"PW.D.",
		"#####",
	)
	g.SetFacing(core.Right)

	require.True(t, core.Interact(g))
	assert.True(t, g.Carrying())
	assert.Equal(t, core.Air, g.Kind(1, 1))
	assert.Equal(t, core.Wood, g.Kind(0, 2))
	assert.NoError(t, g.Validate())
}

func TestInteractPickupRejected(t *testing.T) {
	testCases := []struct {
		name   string
		rows   []string
		facing core.Dir
	}{
		{"stacked wood", []string{".W..", "PW.D", "####"}, core.Right},
		{"head blocked", []string{"#...", "PW.D", "####"}, core.Right},
		{"head out of bounds", []string{"PW.D", "####"}, core.Right},
		{"nothing there", []string{"....", "P#.D", "####"}, core.Right},
		{"facing edge", []string{"....", "PW.D", "####"}, core.Left},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustGrid(t, tc.rows...)
			g.SetFacing(tc.facing)
			snapshot := g.Clone()

			assert.False(t, core.Interact(g))
			assert.False(t, g.Carrying())
			assert.True(t, g.Equal(snapshot))
		})
	}
}

func TestInteractDropSettles(t *testing.T) {
	g := mustGrid(t,
		"....",
		".PW.",
		".##.",
		".##D",
		"####",
	)
	g.SetFacing(core.Right)
	require.True(t, core.Interact(g))
	require.True(t, g.Carrying())

	g.SetFacing(core.Left)
	require.True(t, core.Interact(g))
	assert.False(t, g.Carrying())
	assert.Equal(t, core.Wood, g.Kind(0, 1), "dropped block rests on the floor")
	assert.Equal(t, core.Air, g.Kind(0, 2))
	assert.Equal(t, core.Air, g.Kind(0, 3))
	assert.Equal(t, core.Air, g.Kind(1, 4))
	assert.NoError(t, g.Validate())
}

func TestInteractStack(t *testing.T) {
	g := mustGrid(t,
		".....",
		".....",
		"WPW.D",
		"#####",
	)
	require.True(t, core.Interact(g))
	g.SetFacing(core.Right)

	require.True(t, core.Interact(g))
	assert.False(t, g.Carrying())
	assert.Equal(t, core.Wood, g.Kind(2, 1))
	assert.Equal(t, core.Wood, g.Kind(2, 2))
	assert.Equal(t, core.Air, g.Kind(1, 2))

	// A stacked block cannot be lifted.
	assert.False(t, core.Interact(g))
}

func TestInteractDropRejected(t *testing.T) {
	g := mustGrid(t,
		".....",
		"WP#.D",
		"#####",
	)
	require.True(t, core.Interact(g))
	g.SetFacing(core.Right)
	snapshot := g.Clone()

	assert.False(t, core.Interact(g))
	assert.True(t, g.Carrying())
	assert.True(t, g.Equal(snapshot))
}

func TestApply(t *testing.T) {
	testCases := []struct {
		cmd  core.Command
		name string
	}{
		{core.CmdNone, "None"},
		{core.CmdLeft, "Move(Left)"},
		{core.CmdRight, "Move(Right)"},
		{core.CmdJump, "Jump"},
		{core.CmdInteract, "Interact"},
	}
	for _, tc := range testCases {
		if got := tc.cmd.String(); got != tc.name {
			t.Errorf("Command(%d).String() = %q, want %q", tc.cmd, got, tc.name)
		}
	}

	g := mustGrid(t,
		"....",
		"P#.D",
		"####",
	)
	assert.False(t, core.Apply(g, core.CmdNone))
	assert.True(t, core.Apply(g, core.CmdRight))
	assert.True(t, core.Apply(g, core.CmdJump))
	assert.True(t, core.Apply(g, core.CmdRight))
	assert.True(t, core.Apply(g, core.CmdRight))
	assert.True(t, g.Complete())
}
