package core

// RuntimeConfig contains configuration passed to the game at initialization.
type RuntimeConfig struct {
	ScreenW   int    // Screen width in characters
	ScreenH   int    // Screen height in characters
	TickRate  int    // Clock ticks per second (default 10)
	ViewportW int    // Visible level width in blocks
	ViewportH int    // Visible level height in blocks
	Player    string // Name runs and progress are recorded under
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:   80,
		ScreenH:   24,
		TickRate:  10,
		ViewportW: 12,
		ViewportH: 12,
		Player:    "local",
	}
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Level    int  // Current level id
	Moves    int  // Commands that changed the grid on the current level
	GameOver bool // Whether every level has been completed
	Playing  bool // Whether a level is being played (clock running)
	Editing  bool // Whether the level editor is open
	Quit     bool // Whether the session asked to end
}

// Event is something that happened during a step the platform may react to.
type Event int

const (
	EventNone Event = iota
	EventLevelComplete
	EventGameComplete
	EventLevelSaved
)

// StepResult is returned by Game.Step() after each input frame.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events []Event
}

// Has returns true if the event occurred during the step.
func (r StepResult) Has(e Event) bool {
	for _, got := range r.Events {
		if got == e {
			return true
		}
	}
	return false
}
