package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdude/internal/games/blockdude/levels"
	"github.com/vovakirdan/blockdude/internal/registry"
)

var checkCmd = &cobra.Command{
	Use:   "check <file|dir>",
	Short: "Validate level files",
	Long: `Parse and build level files, printing skipped records and the reason
a level cannot be played. Exits non-zero if any level fails to build.

Supported formats: ` + strings.Join(registry.Extensions(), ", ") + `

Examples:
  blockdude check ./levels/level1.bdl
  blockdude check ./levels`,
	Args: cobra.ExactArgs(1),
	Run:  runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	e := setup(false)
	defer e.close()

	files, err := levelFiles(args[0])
	if err != nil {
		fatal("%v", err)
	}
	if len(files) == 0 {
		fatal("no level files in %s", args[0])
	}

	failed := 0
	for _, p := range files {
		if !checkFile(e, p) {
			failed++
		}
	}

	fmt.Println()
	fmt.Printf("%d checked, %d failed\n", len(files), failed)
	if failed > 0 {
		os.Exit(1)
	}
}

// levelFiles returns root itself if it is a file, or every supported level
// file below it.
func levelFiles(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && registry.Supports(strings.ToLower(filepath.Ext(p))) {
			files = append(files, p)
		}
		return nil
	})
	return files, err
}

func checkFile(e *env, p string) bool {
	lvl, err := levels.ReadFile(p)
	if err != nil {
		fmt.Printf("FAIL  %s: %v\n", p, err)
		return false
	}
	for _, w := range lvl.Warnings {
		fmt.Printf("      %s: %s\n", p, w)
	}
	if _, err := lvl.Build(e.buildOptions()...); err != nil {
		fmt.Printf("FAIL  %s: %v\n", p, err)
		return false
	}
	fmt.Printf("ok    %s: %s %dx%d (%s)\n", p, lvl.Title(), lvl.Width, lvl.Height, lvl.Format)
	return true
}
