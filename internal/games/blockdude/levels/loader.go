// Package levels provides level discovery and loading for Block Dude.
// This package depends on core but core does not depend on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
	_ "github.com/vovakirdan/blockdude/internal/games/blockdude/levels/formats" // register formats
	"github.com/vovakirdan/blockdude/internal/registry"
)

//go:embed builtin/*
var builtinFS embed.FS

// ErrNotFound is returned when no level matches a lookup.
var ErrNotFound = errors.New("level not found")

// Level is a parsed level file.
type Level struct {
	core.LevelData
	Path     string // Path within the loader's file system
	Format   string // Registered format name
	Warnings []registry.ParseWarning
}

// Loader discovers and parses level files in a file system.
type Loader struct {
	fsys   fs.FS
	name   string
	logger *log.Logger
	opts   []core.BuildOption
}

// NewLoader creates a loader over fsys. name is used in log and error
// messages.
func NewLoader(fsys fs.FS, name string) *Loader {
	return &Loader{fsys: fsys, name: name}
}

// NewDirLoader creates a loader over a directory on disk.
func NewDirLoader(dir string) *Loader {
	return NewLoader(os.DirFS(dir), dir)
}

// Builtin returns a loader over the levels compiled into the binary.
func Builtin() *Loader {
	sub, err := fs.Sub(builtinFS, "builtin")
	if err != nil {
		panic(fmt.Sprintf("levels: builtin: %v", err))
	}
	return NewLoader(sub, "builtin")
}

// WithLogger sets the logger parse warnings and skipped files are reported to.
func (l *Loader) WithLogger(logger *log.Logger) *Loader {
	l.logger = logger
	return l
}

// WithBuildOptions sets the options levels are validated with.
func (l *Loader) WithBuildOptions(opts ...core.BuildOption) *Loader {
	l.opts = opts
	return l
}

// Name returns the loader's display name.
func (l *Loader) Name() string {
	return l.name
}

// BuildOptions returns the options levels are validated with.
func (l *Loader) BuildOptions() []core.BuildOption {
	return l.opts
}

// LoadAll recursively scans and loads all level files.
// Files that fail to parse or do not build into a playable grid are skipped
// and logged. Returns levels sorted by ID, then path, for deterministic
// ordering.
func (l *Loader) LoadAll() ([]Level, error) {
	var levels []Level

	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !registry.Supports(path.Ext(p)) {
			return nil
		}

		level, err := l.LoadFile(p)
		if err != nil {
			l.warn("skipping level file", "path", p, "err", err)
			return nil
		}
		levels = append(levels, level)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("levels: walking %s: %w", l.name, err)
	}

	sort.Slice(levels, func(i, j int) bool {
		if levels[i].ID != levels[j].ID {
			return levels[i].ID < levels[j].ID
		}
		return levels[i].Path < levels[j].Path
	})

	return levels, nil
}

// LoadFile loads and validates a single level file.
func (l *Loader) LoadFile(p string) (Level, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}

	level, err := parse(p, data)
	if err != nil {
		return Level{}, err
	}
	for _, w := range level.Warnings {
		l.warn("level parse warning", "path", p, "line", w.Line, "record", w.Text, "reason", w.Reason)
	}

	if _, err := level.Build(l.opts...); err != nil {
		return level, fmt.Errorf("levels: %s: %w", p, err)
	}
	return level, nil
}

// LoadByID loads a specific level by ID.
func (l *Loader) LoadByID(id int) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("levels: id %d: %w", id, ErrNotFound)
}

// Sequence loads level1, level2, ... from the root of the file system,
// stopping at the first number with no file in any supported format.
func (l *Loader) Sequence() ([]Level, error) {
	var levels []Level
	for n := 1; ; n++ {
		p, ok := l.sequenceFile(n)
		if !ok {
			break
		}
		level, err := l.LoadFile(p)
		if err != nil {
			return levels, err
		}
		levels = append(levels, level)
	}
	if len(levels) == 0 {
		return nil, fmt.Errorf("levels: no level1 file in %s: %w", l.name, ErrNotFound)
	}
	return levels, nil
}

func (l *Loader) sequenceFile(n int) (string, bool) {
	for _, ext := range registry.Extensions() {
		p := fmt.Sprintf("level%d%s", n, ext)
		if _, err := fs.Stat(l.fsys, p); err == nil {
			return p, true
		}
	}
	return "", false
}

func (l *Loader) warn(msg string, keyvals ...any) {
	if l.logger != nil {
		l.logger.Warn(msg, keyvals...)
	}
}

// ReadFile parses a level file on disk without building it, so callers can
// inspect warnings and construction errors separately.
func ReadFile(p string) (Level, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Level{}, fmt.Errorf("levels: reading %s: %w", p, err)
	}
	return parse(p, data)
}

// WriteFile encodes level in the format matching the file extension.
func WriteFile(p string, level core.LevelData) error {
	f, err := registry.ForExtension(filepath.Ext(p))
	if err != nil {
		return fmt.Errorf("levels: %w", err)
	}
	if f.Encode == nil {
		return fmt.Errorf("levels: format %q cannot be written", f.Name)
	}

	data, err := f.Encode(level)
	if err != nil {
		return fmt.Errorf("levels: encoding %s: %w", p, err)
	}
	if dir := filepath.Dir(p); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("levels: creating %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(p, data, 0644); err != nil {
		return fmt.Errorf("levels: writing %s: %w", p, err)
	}
	return nil
}

func parse(p string, data []byte) (Level, error) {
	f, err := registry.ForExtension(strings.ToLower(path.Ext(filepath.ToSlash(p))))
	if err != nil {
		return Level{}, fmt.Errorf("levels: %s: %w", p, err)
	}

	parsed, warnings, err := f.Parse(data)
	if err != nil {
		return Level{}, fmt.Errorf("levels: parsing %s: %w", p, err)
	}

	return Level{
		LevelData: parsed,
		Path:      p,
		Format:    f.Name,
		Warnings:  warnings,
	}, nil
}
