package formats

import (
	"fmt"

	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
	"github.com/vovakirdan/blockdude/internal/registry"
	"gopkg.in/yaml.v3"
)

func init() {
	registry.Register(registry.Format{
		Name:       "yaml",
		Extensions: []string{".yaml", ".yml"},
		Parse:      ParseYAML,
		Encode:     EncodeYAML,
	})
}

// YAMLLevel represents the YAML structure for a level file.
// A level lists its blocks explicitly, draws them as ASCII rows, or both
// (blocks are applied after rows).
type YAMLLevel struct {
	ID     int         `yaml:"id"`
	Name   string      `yaml:"name,omitempty"`
	Size   YAMLSize    `yaml:"size,omitempty"`
	Rows   []string    `yaml:"rows,omitempty"`
	Blocks []YAMLBlock `yaml:"blocks,omitempty"`
}

// YAMLSize represents grid dimensions.
type YAMLSize struct {
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// YAMLBlock represents a single block placement.
type YAMLBlock struct {
	Type string `yaml:"type"` // Tile name, e.g. "wood"
	X    int    `yaml:"x"`
	Y    int    `yaml:"y"`
}

// ParseYAML parses a YAML level file.
// Rows are drawn top row first with '#' brick, 'W' wood, 'P' player,
// 'D' door and '.' or ' ' air. The size defaults to the extent of the rows.
func ParseYAML(data []byte) (core.LevelData, []registry.ParseWarning, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return core.LevelData{}, nil, fmt.Errorf("%w: yaml unmarshal: %v", ErrLevelParse, err)
	}

	level := core.LevelData{
		ID:     yl.ID,
		Name:   yl.Name,
		Width:  yl.Size.W,
		Height: yl.Size.H,
	}

	if len(yl.Rows) > 0 {
		w, h, cells, err := core.PlacementsFromRows(yl.Rows)
		if err != nil {
			return core.LevelData{}, nil, fmt.Errorf("%w: rows: %v", ErrLevelParse, err)
		}
		if level.Width == 0 {
			level.Width = w
		}
		if level.Height == 0 {
			level.Height = h
		}
		if level.Width < w || level.Height < h {
			return core.LevelData{}, nil, fmt.Errorf("%w: rows %dx%d exceed size %dx%d",
				ErrLevelParse, w, h, level.Width, level.Height)
		}
		// Rows are anchored to the top of a taller level.
		shift := level.Height - h
		for _, c := range cells {
			level.Placements = append(level.Placements, core.At(c.Kind, c.X, c.Y+shift))
		}
	}

	if level.Width <= 0 || level.Height <= 0 {
		return core.LevelData{}, nil, fmt.Errorf("%w: size %dx%d must be positive", ErrLevelParse, level.Width, level.Height)
	}

	var warnings []registry.ParseWarning
	for i, b := range yl.Blocks {
		kind, ok := core.ParseTileType(b.Type)
		if !ok {
			warnings = append(warnings, registry.ParseWarning{
				Text:   b.Type,
				Reason: fmt.Sprintf("block %d: unknown tile type %q", i+1, b.Type),
			})
			continue
		}
		if b.X < 0 || b.X >= level.Width || b.Y < 0 || b.Y >= level.Height {
			warnings = append(warnings, registry.ParseWarning{
				Text:   fmt.Sprintf("%s %d,%d", b.Type, b.X, b.Y),
				Reason: fmt.Sprintf("block %d: position (%d, %d) outside %dx%d", i+1, b.X, b.Y, level.Width, level.Height),
			})
			continue
		}
		level.Placements = append(level.Placements, core.At(kind, b.X, b.Y))
	}

	return level, warnings, nil
}

// EncodeYAML writes a level as YAML using ASCII rows.
func EncodeYAML(level core.LevelData) ([]byte, error) {
	yl := YAMLLevel{
		ID:   level.ID,
		Name: level.Name,
		Size: YAMLSize{W: level.Width, H: level.Height},
		Rows: core.Rows(level.Width, level.Height, level.Placements),
	}
	out, err := yaml.Marshal(&yl)
	if err != nil {
		return nil, fmt.Errorf("yaml marshal: %w", err)
	}
	return out, nil
}
