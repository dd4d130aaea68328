// Package tui provides the Bubble Tea integration for Block Dude.
// It handles the terminal UI loop, key mapping, the level picker, the
// scoreboard and SSH sessions.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/blockdude/internal/core"
)

// TickMsg redraws the screen so the HUD clock keeps running. The game itself
// only advances on key presses.
type TickMsg time.Time

// tickInterval converts a redraw rate to an interval. Non-positive rates use
// the default rate.
func tickInterval(tickRate int) time.Duration {
	if tickRate <= 0 {
		tickRate = core.DefaultConfig().TickRate
	}
	return time.Second / time.Duration(tickRate)
}

// tickCmd schedules the next redraw.
func tickCmd(tickRate int) tea.Cmd {
	return tea.Tick(tickInterval(tickRate), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
