// Package registry provides a global registry of level file formats.
// Formats register themselves in init() functions, allowing the level loader
// to discover parsers by file extension without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/vovakirdan/blockdude/internal/games/blockdude/core"
)

// ParseWarning is a non-fatal problem found while parsing a level file.
// The offending record is skipped and parsing continues.
type ParseWarning struct {
	Line   int    // 1-based line number (0 when not line oriented)
	Text   string // The offending record
	Reason string
}

func (w ParseWarning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s (%q)", w.Line, w.Reason, w.Text)
	}
	return w.Reason
}

// ParseFunc parses level file contents.
type ParseFunc func(data []byte) (core.LevelData, []ParseWarning, error)

// EncodeFunc serializes a level. Formats that are read-only leave it nil.
type EncodeFunc func(level core.LevelData) ([]byte, error)

// Format describes one level file format.
type Format struct {
	// Name is a short identifier (e.g., "bdl", "yaml").
	Name string

	// Extensions lists the lower-case file extensions handled, with the dot.
	Extensions []string

	Parse  ParseFunc
	Encode EncodeFunc
}

var (
	formats = make(map[string]Format)
	byExt   = make(map[string]string)
	mu      sync.RWMutex
)

// Register adds a level format to the registry.
// Typically called from a format's init() function.
// Panics if the name or one of the extensions is already registered.
func Register(f Format) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := formats[f.Name]; exists {
		panic(fmt.Sprintf("registry: format %q already registered", f.Name))
	}
	if f.Parse == nil {
		panic(fmt.Sprintf("registry: format %q has no parser", f.Name))
	}
	for _, ext := range f.Extensions {
		if owner, exists := byExt[strings.ToLower(ext)]; exists {
			panic(fmt.Sprintf("registry: extension %q already handled by %q", ext, owner))
		}
	}
	for _, ext := range f.Extensions {
		byExt[strings.ToLower(ext)] = f.Name
	}

	formats[f.Name] = f
}

// List returns all registered formats, sorted by name.
func List() []Format {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Format, 0, len(formats))
	for _, f := range formats {
		result = append(result, f)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})

	return result
}

// Extensions returns every registered extension, sorted.
func Extensions() []string {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]string, 0, len(byExt))
	for ext := range byExt {
		result = append(result, ext)
	}
	sort.Strings(result)
	return result
}

// ForExtension returns the format handling ext (e.g. ".bdl").
// Returns an error if no format handles it.
func ForExtension(ext string) (Format, error) {
	mu.RLock()
	defer mu.RUnlock()

	name, ok := byExt[strings.ToLower(ext)]
	if !ok {
		return Format{}, fmt.Errorf("registry: unsupported extension %q", ext)
	}
	return formats[name], nil
}

// Get returns a format by name.
func Get(name string) (Format, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := formats[name]
	if !ok {
		return Format{}, fmt.Errorf("registry: unknown format %q", name)
	}
	return f, nil
}

// Supports checks if a format handles the given extension.
func Supports(ext string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := byExt[strings.ToLower(ext)]
	return ok
}
