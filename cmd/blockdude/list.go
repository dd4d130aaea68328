package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the loaded levels",
	Long:  `Shows every playable level from the configured level source, in play order.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	e := setup(false)
	defer e.close()
	lvls := e.loadLevels()

	fmt.Printf("Levels from %s:\n", e.loader().Name())
	fmt.Println()

	// Calculate column widths
	maxTitleLen := 5 // "Title" header
	for _, lvl := range lvls {
		if n := len(lvl.Title()); n > maxTitleLen {
			maxTitleLen = n
		}
	}

	// Print header
	fmt.Printf("  %-4s  %-*s  %-7s  %s\n", "ID", maxTitleLen, "Title", "Size", "File")
	fmt.Printf("  %-4s  %-*s  %-7s  %s\n", "--", maxTitleLen, "-----", "----", "----")

	for _, lvl := range lvls {
		size := fmt.Sprintf("%dx%d", lvl.Width, lvl.Height)
		file := lvl.Path
		if n := len(lvl.Warnings); n > 0 {
			file = fmt.Sprintf("%s (%d warnings)", file, n)
		}
		fmt.Printf("  %-4d  %-*s  %-7s  %s\n", lvl.ID, maxTitleLen, lvl.Title(), size, file)
	}

	fmt.Println()
	fmt.Println("Run 'blockdude play --level <n>' to start at the n-th level.")
}
