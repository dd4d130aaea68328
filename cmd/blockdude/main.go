// blockdude is a terminal Block Dude: walk, jump and stack wood blocks to
// reach the door on each level.
//
// Usage:
//
//	blockdude play               - Pick a level and play
//	blockdude list               - List the loaded levels
//	blockdude check <path>       - Validate level files
//	blockdude edit <file>        - Open a level file in the editor
//	blockdude scores [level]     - Show best runs
//	blockdude serve              - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default: search ~/.blockdude, ./configs)
//	--levels <dir>      - Level directory (default: built-in levels)
//	--db <path>         - Runs database (default: ~/.blockdude/runs.db)
//	--log-level <lvl>   - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagConfig   string
	flagLevels   string
	flagDBPath   string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "blockdude",
	Short: "Block Dude - a tile puzzle for your terminal",
	Long: `Block Dude is a side-view tile puzzle. Walk, climb single steps and
carry wood blocks to build your way to the door.

Available commands:
  play     - Pick a level and play (default)
  list     - Show the loaded levels
  check    - Validate level files
  edit     - Edit a level file
  scores   - View best runs
  serve    - Start SSH server for remote play

Examples:
  blockdude play
  blockdude play --level 2
  blockdude --levels ./my-levels list
  blockdude edit ./my-levels/level4.bdl --size 16x8
  blockdude serve`,
	Run: runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Directory of level files (default: built-in levels)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(editCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
