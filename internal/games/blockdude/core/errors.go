package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidLevel is returned when a level cannot be built into a playable grid.
	ErrInvalidLevel = errors.New("invalid level")

	// ErrOutOfBounds is returned when a coordinate lies outside the grid.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrIllegalTransition is returned by the mode machine for a transition
	// that is not allowed from the current mode.
	ErrIllegalTransition = errors.New("illegal mode transition")
)

// LevelError describes why level construction failed.
// It matches ErrInvalidLevel with errors.Is.
type LevelError struct {
	Code    string
	Message string
}

func (e LevelError) Error() string {
	return fmt.Sprintf("invalid level [%s] %s", e.Code, e.Message)
}

// Is reports whether target is ErrInvalidLevel.
func (e LevelError) Is(target error) bool {
	return target == ErrInvalidLevel
}

func levelErr(code, format string, args ...any) error {
	return LevelError{Code: code, Message: fmt.Sprintf(format, args...)}
}
