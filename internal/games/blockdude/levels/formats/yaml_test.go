package formats

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
)

func TestParseYAMLRows(t *testing.T) {
	data := []byte(`
id: 4
name: Overhang
rows:
  - "....."
  - "P.W.D"
  - "#####"
`)
	level, warnings, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, 4, level.ID)
	assert.Equal(t, "Overhang", level.Name)
	assert.Equal(t, 5, level.Width)
	assert.Equal(t, 3, level.Height)

	g, err := level.Build()
	require.NoError(t, err)
	assert.Equal(t, core.C(0, 1), g.Player())
	assert.Equal(t, core.C(4, 1), g.Goal())
	assert.Equal(t, core.Wood, g.Kind(2, 1))
}

func TestParseYAMLRowsInTallerLevel(t *testing.T) {
	data := []byte(`
id: 1
size: {w: 4, h: 4}
rows:
  - "P..D"
  - "####"
`)
	level, _, err := ParseYAML(data)
	require.NoError(t, err)

	g, err := level.Build()
	require.NoError(t, err)
	assert.Equal(t, core.C(0, 3), g.Player(), "rows are anchored to the top")
	assert.Equal(t, core.Brick, g.Kind(0, 2))
}

func TestParseYAMLBlocks(t *testing.T) {
	data := []byte(`
id: 2
size: {w: 3, h: 2}
blocks:
  - {type: brick, x: 0, y: 0}
  - {type: player, x: 0, y: 1}
  - {type: DOOR, x: 2, y: 1}
  - {type: lava, x: 1, y: 0}
  - {type: wood, x: 3, y: 0}
`)
	level, warnings, err := ParseYAML(data)
	require.NoError(t, err)
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0].Reason, "unknown tile type")
	assert.Contains(t, warnings[1].Reason, "outside 3x2")
	assert.Len(t, level.Placements, 3)

	_, err = level.Build()
	assert.NoError(t, err)
}

func TestParseYAMLErrors(t *testing.T) {
	testCases := []struct {
		name string
		data string
	}{
		{"bad yaml", "id: [1"},
		{"no size", "id: 1\n"},
		{"bad glyph", "id: 1\nrows: [\"P?D\"]\n"},
		{"rows exceed size", "id: 1\nsize: {w: 2, h: 1}\nrows: [\"P.D\"]\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := ParseYAML([]byte(tc.data))
			assert.True(t, errors.Is(err, ErrLevelParse), "expected ErrLevelParse, got %v", err)
		})
	}
}

func TestEncodeYAMLRoundTrip(t *testing.T) {
	level := core.LevelData{
		ID:     9,
		Name:   "Saved",
		Width:  4,
		Height: 3,
		Placements: []core.Cell{
			core.At(core.Brick, 0, 0), core.At(core.Brick, 1, 0), core.At(core.Brick, 2, 0), core.At(core.Brick, 3, 0),
			core.At(core.Player, 0, 1),
			core.At(core.Wood, 1, 2),
			core.At(core.Door, 3, 1),
		},
	}

	data, err := EncodeYAML(level)
	require.NoError(t, err)

	parsed, warnings, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assert.Equal(t, level.ID, parsed.ID)
	assert.Equal(t, level.Name, parsed.Name)
	assert.ElementsMatch(t, level.Placements, parsed.Placements)
}
