package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdude/internal/games/blockdude"
	"github.com/vovakirdan/blockdude/internal/games/blockdude/levels"
	"github.com/vovakirdan/blockdude/internal/platform/tui"
	"github.com/vovakirdan/blockdude/internal/registry"
)

var (
	flagEditSize string
	flagEditID   int
)

var editCmd = &cobra.Command{
	Use:   "edit <file>",
	Short: "Edit a level file",
	Long: `Open a level file in the editor. A file that does not exist yet starts
from a template: a brick floor with the player on the left and the door on
the right.

Editor controls:
  Arrows, IJKL, WASD    - Move the cursor
  T                     - Next tile type
  Space                 - Paint
  X/Backspace           - Erase
  Ctrl+S                - Save
  Esc                   - Leave the editor and play the level

Examples:
  blockdude edit ./levels/level1.bdl
  blockdude edit ./my-levels/level4.yaml --size 20x10 --id 4`,
	Args: cobra.ExactArgs(1),
	Run:  runEdit,
}

func init() {
	editCmd.Flags().StringVar(&flagEditSize, "size", "16x8", "Size of a new level, WxH in blocks")
	editCmd.Flags().IntVar(&flagEditID, "id", 1, "ID of a new level")
}

func runEdit(_ *cobra.Command, args []string) {
	e := setup(true)
	defer e.close()

	file := args[0]
	if !registry.Supports(strings.ToLower(filepath.Ext(file))) {
		fatal("unsupported level format %q (use one of %s)", filepath.Ext(file), strings.Join(registry.Extensions(), ", "))
	}

	lvl, err := editTarget(file, flagEditSize, flagEditID)
	if err != nil {
		fatal("%v", err)
	}

	game, err := blockdude.New([]levels.Level{lvl},
		blockdude.WithLogger(e.logger),
		blockdude.WithBuildOptions(e.buildOptions()...),
		blockdude.WithSaveDir(filepath.Dir(file)),
		blockdude.StartInEditor(),
	)
	if err != nil {
		fatal("%v (run 'blockdude check %s' for details)", err, file)
	}

	if err := tui.Run(game, e.runtime()); err != nil {
		fatal("running editor: %v", err)
	}
}

// editTarget loads file, or builds a template level when it does not exist.
// Path is the base name so the editor saves back to the same file.
func editTarget(file, size string, id int) (levels.Level, error) {
	lvl, err := levels.ReadFile(file)
	switch {
	case err == nil:
		lvl.Path = filepath.Base(file)
		return lvl, nil
	case !errors.Is(err, fs.ErrNotExist):
		return levels.Level{}, err
	}

	w, h, err := parseSize(size)
	if err != nil {
		return levels.Level{}, err
	}
	data, err := blockdude.TemplateLevel(id, w, h)
	if err != nil {
		return levels.Level{}, err
	}
	return levels.Level{LevelData: data, Path: filepath.Base(file)}, nil
}

// parseSize parses "WxH".
func parseSize(s string) (width, height int, err error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q: want WxH", s)
	}
	if width, err = strconv.Atoi(ws); err != nil {
		return 0, 0, fmt.Errorf("size %q: bad width: %w", s, err)
	}
	if height, err = strconv.Atoi(hs); err != nil {
		return 0, 0, fmt.Errorf("size %q: bad height: %w", s, err)
	}
	if width <= 0 || height <= 0 {
		return 0, 0, fmt.Errorf("size %q: dimensions must be positive", s)
	}
	return width, height, nil
}
