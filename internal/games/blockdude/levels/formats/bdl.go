// Package formats provides pluggable level file format parsers.
// Each format registers itself with the registry in init().
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
	"github.com/vovakirdan/blockdude/internal/registry"
)

// ErrLevelParse is returned when a level file cannot be read at all.
var ErrLevelParse = errors.New("level parse error")

const (
	bdlHeaderLen = 8 // %IIWWHH%
	bdlRecordLen = 6 // TTXXYY
	bdlMaxField  = 99
)

func init() {
	registry.Register(registry.Format{
		Name:       "bdl",
		Extensions: []string{".bdl"},
		Parse:      ParseBDL,
		Encode:     EncodeBDL,
	})
}

// ParseBDL parses the line oriented .bdl format.
//
// The first line is the header: a delimiter, a 2-digit id, 2-digit width,
// 2-digit height and a closing delimiter. Every following line is one block
// record TTXXYY (tile type, x, y). A bad header fails the parse; bad records
// are skipped and reported as warnings.
func ParseBDL(data []byte) (core.LevelData, []registry.ParseWarning, error) {
	sc := bufio.NewScanner(bytes.NewReader(data))

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return core.LevelData{}, nil, fmt.Errorf("%w: %v", ErrLevelParse, err)
		}
		return core.LevelData{}, nil, fmt.Errorf("%w: empty file", ErrLevelParse)
	}
	header := strings.TrimRight(sc.Text(), "\r")
	level, err := parseBDLHeader(header)
	if err != nil {
		return core.LevelData{}, nil, err
	}

	var warnings []registry.ParseWarning
	line := 1
	for sc.Scan() {
		line++
		text := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}
		cell, reason := parseBDLRecord(text, level.Width, level.Height)
		if reason != "" {
			warnings = append(warnings, registry.ParseWarning{Line: line, Text: text, Reason: reason})
			continue
		}
		level.Placements = append(level.Placements, cell)
	}
	if err := sc.Err(); err != nil {
		return core.LevelData{}, warnings, fmt.Errorf("%w: line %d: %v", ErrLevelParse, line+1, err)
	}

	return level, warnings, nil
}

func parseBDLHeader(h string) (core.LevelData, error) {
	if len(h) != bdlHeaderLen {
		return core.LevelData{}, fmt.Errorf("%w: header %q must be %d characters", ErrLevelParse, h, bdlHeaderLen)
	}
	fields, ok := digitPairs(h[1:7])
	if !ok {
		return core.LevelData{}, fmt.Errorf("%w: header %q must hold 6 digits", ErrLevelParse, h)
	}
	return core.LevelData{ID: fields[0], Width: fields[1], Height: fields[2]}, nil
}

// parseBDLRecord returns the parsed cell, or a non-empty reason the record
// was rejected.
func parseBDLRecord(r string, width, height int) (core.Cell, string) {
	if len(r) != bdlRecordLen {
		return core.Cell{}, fmt.Sprintf("record must be %d digits, got %d characters", bdlRecordLen, len(r))
	}
	fields, ok := digitPairs(r)
	if !ok {
		return core.Cell{}, "record must be digits only"
	}
	kind := core.TileType(fields[0])
	if fields[0] > int(core.Door) {
		return core.Cell{}, fmt.Sprintf("unknown tile type %02d", fields[0])
	}
	x, y := fields[1], fields[2]
	if x >= width || y >= height {
		return core.Cell{}, fmt.Sprintf("position (%d, %d) outside %dx%d", x, y, width, height)
	}
	return core.At(kind, x, y), ""
}

// digitPairs splits s into 2-digit decimal numbers.
func digitPairs(s string) ([]int, bool) {
	if len(s)%2 != 0 {
		return nil, false
	}
	out := make([]int, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		pair := s[i : i+2]
		if pair[0] < '0' || pair[0] > '9' || pair[1] < '0' || pair[1] > '9' {
			return nil, false
		}
		n, err := strconv.Atoi(pair)
		if err != nil {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

// EncodeBDL writes a level in the .bdl format. Air placements are omitted.
func EncodeBDL(level core.LevelData) ([]byte, error) {
	for _, v := range []int{level.ID, level.Width, level.Height} {
		if v < 0 || v > bdlMaxField {
			return nil, fmt.Errorf("bdl: header value %d does not fit in 2 digits", v)
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%%%02d%02d%02d%%\n", level.ID, level.Width, level.Height)
	for _, c := range level.Placements {
		if c.Kind == core.Air {
			continue
		}
		if !c.Kind.Valid() {
			return nil, fmt.Errorf("bdl: unknown tile type %d at (%d, %d)", c.Kind, c.X, c.Y)
		}
		if c.X < 0 || c.X > bdlMaxField || c.Y < 0 || c.Y > bdlMaxField {
			return nil, fmt.Errorf("bdl: position (%d, %d) does not fit in 2 digits", c.X, c.Y)
		}
		fmt.Fprintf(&buf, "%02d%02d%02d\n", int(c.Kind), c.X, c.Y)
	}
	return buf.Bytes(), nil
}
