package core_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
)

func TestMachineTransitions(t *testing.T) {
	type op struct {
		name string
		fn   func(*core.Machine) error
	}
	start := op{"Start", (*core.Machine).Start}
	abandon := op{"Abandon", (*core.Machine).Abandon}
	next := op{"Next", (*core.Machine).Next}
	finish := op{"Finish", (*core.Machine).Finish}
	edit := op{"Edit", (*core.Machine).Edit}
	stop := op{"StopEditing", (*core.Machine).StopEditing}

	testCases := []struct {
		from core.Mode
		op   op
		to   core.Mode
		ok   bool
	}{
		{core.ModePre, start, core.ModePlaying, true},
		{core.ModePre, abandon, core.ModePre, false},
		{core.ModePre, finish, core.ModePre, false},
		{core.ModePre, edit, core.ModeEditing, true},
		{core.ModePre, stop, core.ModePre, false},
		{core.ModePlaying, start, core.ModePlaying, false},
		{core.ModePlaying, abandon, core.ModePre, true},
		{core.ModePlaying, next, core.ModePre, true},
		{core.ModePlaying, finish, core.ModeGameOver, true},
		{core.ModePlaying, edit, core.ModeEditing, true},
		{core.ModeGameOver, start, core.ModeGameOver, false},
		{core.ModeGameOver, edit, core.ModeGameOver, false},
		{core.ModeGameOver, next, core.ModeGameOver, false},
		{core.ModeEditing, stop, core.ModePre, true},
		{core.ModeEditing, start, core.ModeEditing, false},
		{core.ModeEditing, edit, core.ModeEditing, false},
	}

	for _, tc := range testCases {
		t.Run(tc.from.String()+"/"+tc.op.name, func(t *testing.T) {
			m := machineIn(t, tc.from)
			err := tc.op.fn(m)
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, core.ErrIllegalTransition), "expected ErrIllegalTransition, got %v", err)
			}
			assert.Equal(t, tc.to, m.Mode())
		})
	}
}

// machineIn drives a fresh machine into the requested mode.
func machineIn(t *testing.T, mode core.Mode) *core.Machine {
	t.Helper()
	m := core.NewMachine()
	switch mode {
	case core.ModePlaying:
		require.NoError(t, m.Start())
	case core.ModeGameOver:
		require.NoError(t, m.Start())
		require.NoError(t, m.Finish())
	case core.ModeEditing:
		require.NoError(t, m.Edit())
	}
	require.Equal(t, mode, m.Mode())
	return m
}

func TestMachineObserver(t *testing.T) {
	m := core.NewMachine()
	var seen []core.Transition
	m.Observe(func(tr core.Transition) {
		seen = append(seen, tr)
	})

	require.NoError(t, m.Start())
	require.Error(t, m.Start())
	require.NoError(t, m.Next())
	require.NoError(t, m.Start())
	require.NoError(t, m.Finish())

	assert.Equal(t, []core.Transition{
		{From: core.ModePre, To: core.ModePlaying},
		{From: core.ModePlaying, To: core.ModePre},
		{From: core.ModePre, To: core.ModePlaying},
		{From: core.ModePlaying, To: core.ModeGameOver},
	}, seen)

	m.Observe(nil)
	assert.Error(t, m.Start())
}

func TestParseMode(t *testing.T) {
	for _, mode := range []core.Mode{core.ModePre, core.ModePlaying, core.ModeGameOver, core.ModeEditing} {
		got, err := core.ParseMode(mode.String())
		require.NoError(t, err)
		assert.Equal(t, mode, got)
	}

	_, err := core.ParseMode("paused")
	assert.Error(t, err)
	assert.Equal(t, "mode(9)", core.Mode(9).String())
}
