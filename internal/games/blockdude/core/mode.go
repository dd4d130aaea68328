package core

import (
	"fmt"
	"strings"
)

// Mode is the session state: which screen the driver shows and which inputs
// it accepts.
type Mode int

const (
	ModePre      Mode = iota // "Level N / Press space to begin"
	ModePlaying              // Commands go to the engine
	ModeGameOver             // Every level has been completed
	ModeEditing              // Level editor
)

// String returns the display name of the mode.
func (m Mode) String() string {
	switch m {
	case ModePre:
		return "pre-level"
	case ModePlaying:
		return "in level"
	case ModeGameOver:
		return "game over"
	case ModeEditing:
		return "editor"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses a mode name as produced by String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pre-level", "pre":
		return ModePre, nil
	case "in level", "playing":
		return ModePlaying, nil
	case "game over", "gameover":
		return ModeGameOver, nil
	case "editor", "editing":
		return ModeEditing, nil
	}
	return ModePre, fmt.Errorf("unknown mode %q", s)
}

// Transition records one mode change.
type Transition struct {
	From Mode
	To   Mode
}

// Machine holds the current mode and allows only the defined transitions.
type Machine struct {
	mode     Mode
	observer func(Transition)
}

// NewMachine returns a machine in ModePre.
func NewMachine() *Machine {
	return &Machine{mode: ModePre}
}

// Mode returns the current mode.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Observe registers fn to be called after every successful transition.
// Passing nil removes the observer.
func (m *Machine) Observe(fn func(Transition)) {
	m.observer = fn
}

// Start begins the level: Pre -> Playing.
func (m *Machine) Start() error {
	return m.move(ModePlaying, ModePre)
}

// Abandon leaves the level being played: Playing -> Pre.
func (m *Machine) Abandon() error {
	return m.move(ModePre, ModePlaying)
}

// Next advances after a completed level that was not the last: Playing -> Pre.
func (m *Machine) Next() error {
	return m.move(ModePre, ModePlaying)
}

// Finish ends the game after the last level: Playing -> GameOver.
func (m *Machine) Finish() error {
	return m.move(ModeGameOver, ModePlaying)
}

// Edit opens the editor: Pre or Playing -> Editing.
func (m *Machine) Edit() error {
	return m.move(ModeEditing, ModePre, ModePlaying)
}

// StopEditing closes the editor: Editing -> Pre.
func (m *Machine) StopEditing() error {
	return m.move(ModePre, ModeEditing)
}

func (m *Machine) move(to Mode, from ...Mode) error {
	for _, f := range from {
		if m.mode != f {
			continue
		}
		t := Transition{From: m.mode, To: to}
		m.mode = to
		if m.observer != nil {
			m.observer(t)
		}
		return nil
	}
	return fmt.Errorf("%s -> %s: %w", m.mode, to, ErrIllegalTransition)
}
