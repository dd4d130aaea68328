package formats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
	"github.com/vovakirdan/blockdude/internal/registry"
)

func TestParseBDL(t *testing.T) {
	data := []byte("%010503%\n" +
		"010000\n" +
		"010100\n" +
		"010200\n" +
		"020001\n" +
		"\n" +
		"040201\r\n")

	level, warnings, err := ParseBDL(data)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 1, level.ID)
	assert.Equal(t, 5, level.Width)
	assert.Equal(t, 3, level.Height)
	assert.Equal(t, []core.Cell{
		core.At(core.Brick, 0, 0),
		core.At(core.Brick, 1, 0),
		core.At(core.Brick, 2, 0),
		core.At(core.Player, 0, 1),
		core.At(core.Door, 2, 1),
	}, level.Placements)

	g, err := level.Build()
	require.NoError(t, err)
	assert.Equal(t, core.C(0, 1), g.Player())
}

func TestParseBDLHeaderErrors(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"short header", "%0105%\n020000\n"},
		{"long header", "%01050300%\n"},
		{"letters", "%01AB03%\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseBDL([]byte(tc.data))
			assert.True(t, errors.Is(err, ErrLevelParse), "expected ErrLevelParse, got %v", err)
		})
	}
}

func TestParseBDLWarnings(t *testing.T) {
	data := []byte("%020404%\n" +
		"0200\n" + // too short
		"02000100\n" + // too long
		"02a001\n" + // not digits
		"090000\n" + // unknown tile
		"010400\n" + // x out of bounds
		"020001\n" +
		"040301\n")

	level, warnings, err := ParseBDL(data)
	require.NoError(t, err)
	require.Len(t, warnings, 5)

	lines := make([]int, len(warnings))
	for i, w := range warnings {
		lines[i] = w.Line
	}
	assert.Equal(t, []int{2, 3, 4, 5, 6}, lines)
	assert.Equal(t, "0200", warnings[0].Text)
	assert.Contains(t, warnings[3].Reason, "unknown tile type 09")
	assert.Contains(t, warnings[4].Reason, "outside 4x4")

	assert.Len(t, level.Placements, 2)
}

func TestEncodeBDLRoundTrip(t *testing.T) {
	level := core.LevelData{
		ID:     3,
		Width:  12,
		Height: 6,
		Placements: []core.Cell{
			core.At(core.Brick, 0, 0),
			core.At(core.Air, 1, 0),
			core.At(core.Wood, 11, 5),
			core.At(core.Player, 1, 1),
			core.At(core.Door, 10, 1),
		},
	}

	data, err := EncodeBDL(level)
	require.NoError(t, err)
	assert.Equal(t, "%031206%\n010000\n031105\n020101\n041001\n", string(data))

	parsed, warnings, err := ParseBDL(data)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 3, parsed.ID)
	assert.Len(t, parsed.Placements, 4)
}

func TestEncodeBDLRejectsLargeValues(t *testing.T) {
	_, err := EncodeBDL(core.LevelData{ID: 1, Width: 100, Height: 5})
	assert.Error(t, err)

	_, err = EncodeBDL(core.LevelData{ID: 1, Width: 5, Height: 5, Placements: []core.Cell{{Kind: 7}}})
	assert.Error(t, err)
}

func TestFormatsRegistered(t *testing.T) {
	for _, ext := range []string{".bdl", ".yaml", ".yml"} {
		f, err := registry.ForExtension(ext)
		require.NoError(t, err, ext)
		assert.NotNil(t, f.Parse)
		assert.NotNil(t, f.Encode)
	}
}
