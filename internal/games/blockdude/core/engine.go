package core

// Command is one discrete player command fed to the engine.
type Command uint8

const (
	CmdNone Command = iota
	CmdLeft
	CmdRight
	CmdJump
	CmdInteract
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdLeft:
		return "Move(Left)"
	case CmdRight:
		return "Move(Right)"
	case CmdJump:
		return "Jump"
	case CmdInteract:
		return "Interact"
	default:
		return "None"
	}
}

// Apply runs a single command against the grid and reports whether the grid
// changed.
func Apply(g *Grid, cmd Command) bool {
	switch cmd {
	case CmdLeft:
		return Move(g, Left)
	case CmdRight:
		return Move(g, Right)
	case CmdJump:
		return Jump(g)
	case CmdInteract:
		return Interact(g)
	default:
		return false
	}
}

// Move turns the player toward d and walks one block that way if the side
// cell is open, then lets the player fall until supported. A carried block
// travels with the player and ends directly above the resting cell.
//
// The door catches the player: walking into it never falls, and a fall stops
// on top of it. Facing is updated even when the move is blocked. The result reports
// whether anything changed, so turning in place counts as a change.
func Move(g *Grid, d Dir) bool {
	turned := g.facing != d
	g.facing = d

	from := g.player
	tx := from.X + d.Delta()
	if !g.InBounds(tx, from.Y) {
		return turned
	}
	if k := g.Kind(tx, from.Y); k != Air && k != Door {
		return turned
	}
	// The block overhead passes through the row above the side cell.
	if g.carrying && g.Kind(tx, from.Y+1) != Air {
		return turned
	}

	g.vacate(from)
	to := C(tx, from.Y)
	// Stepping into the door ends the level where it stands; no fall.
	for to != g.goal && to.Y-1 >= 0 && g.Kind(to.X, to.Y-1) == Air {
		to.Y--
	}
	g.player = to
	g.set(to, Player)

	if g.carrying {
		g.set(from.Add(0, 1), Air)
		g.set(to.Add(0, 1), Wood)
	}
	return true
}

// Jump climbs diagonally one block up in the facing direction. It needs a
// brick or wood stepping stone beside the player and an open landing cell
// above it. When carrying, the cell above the landing must be free for the
// block or the jump is refused. No gravity follows a jump.
func Jump(g *Grid) bool {
	from := g.player
	to := from.Add(g.facing.Delta(), 1)
	if !g.InBounds(to.X, to.Y) {
		return false
	}

	if step := g.Kind(to.X, from.Y); step != Brick && step != Wood {
		return false
	}
	if land := g.Kind(to.X, to.Y); land != Air && land != Door {
		return false
	}

	if g.carrying {
		block := to.Add(0, 1)
		if !g.InBounds(block.X, block.Y) || g.Kind(block.X, block.Y) != Air {
			return false
		}
		g.set(block, Wood)
		g.set(from.Add(0, 1), Air)
	}

	g.vacate(from)
	g.player = to
	g.set(to, Player)
	return true
}

// Interact picks up or drops a wood block in the facing direction.
//
// Not carrying, a single wood block beside the player (nothing wooden stacked
// on it) is lifted overhead. Carrying, the block is dropped into an open side
// cell and falls to the lowest open row, or stacked onto a wood block beside
// the player when the cell above that block is open.
func Interact(g *Grid) bool {
	p := g.player
	dx := p.X + g.facing.Delta()
	if !g.InBounds(dx, p.Y) {
		return false
	}
	side := C(dx, p.Y)
	head := p.Add(0, 1)

	if !g.carrying {
		if g.Kind(side.X, side.Y) != Wood || g.Kind(side.X, side.Y+1) == Wood {
			return false
		}
		if !g.InBounds(head.X, head.Y) || g.Kind(head.X, head.Y) != Air {
			return false
		}
		g.set(side, Air)
		g.set(head, Wood)
		g.carrying = true
		return true
	}

	switch g.Kind(side.X, side.Y) {
	case Air:
		rest := side
		for rest.Y-1 >= 0 && g.Kind(rest.X, rest.Y-1) == Air {
			rest.Y--
		}
		g.set(rest, Wood)
	case Wood:
		top := side.Add(0, 1)
		if g.Kind(top.X, top.Y) != Air {
			return false
		}
		g.set(top, Wood)
	default:
		return false
	}
	g.set(head, Air)
	g.carrying = false
	return true
}
