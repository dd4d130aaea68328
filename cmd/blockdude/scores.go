package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdude/internal/storage"
)

var flagClearRuns bool

var scoresCmd = &cobra.Command{
	Use:   "scores [level]",
	Short: "Show best runs",
	Long: `Without an argument, show a summary of every level that has been
completed. With a level id, show the 10 best runs for that level, fewest
moves first.

Examples:
  blockdude scores
  blockdude scores 2
  blockdude scores 2 --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClearRuns, "clear", false, "Delete the recorded runs for the level")
}

func runScores(_ *cobra.Command, args []string) {
	e := setup(false)
	defer e.close()

	store, err := storage.Open(e.cfg.Storage.DBPath)
	if err != nil {
		fatal("opening runs database: %v", err)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagClearRuns {
			fatal("--clear needs a level id")
		}
		printSummary(store)
		return
	}

	levelID, err := strconv.Atoi(args[0])
	if err != nil {
		fatal("level id %q is not a number", args[0])
	}

	if flagClearRuns {
		if err := store.ClearRuns(levelID); err != nil {
			fatal("%v", err)
		}
		fmt.Printf("Cleared runs for level %d.\n", levelID)
		return
	}
	printLevel(store, levelID)
}

func printSummary(store *storage.Store) {
	stats, err := store.AllLevelStats()
	if err != nil {
		fatal("retrieving stats: %v", err)
	}

	fmt.Println("Best Runs")
	fmt.Println()

	if len(stats) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'blockdude play' to set the first best run!")
		return
	}

	fmt.Printf("  %-5s  %-4s  %-10s  %-9s  %s\n", "Level", "Runs", "Best Moves", "Best Time", "Last Played")
	fmt.Printf("  %-5s  %-4s  %-10s  %-9s  %s\n", "-----", "----", "----------", "---------", "-----------")
	for _, st := range stats {
		fmt.Printf("  %-5d  %-4d  %-10d  %-9s  %s\n",
			st.LevelID, st.Runs, st.BestMoves,
			fmt.Sprintf("%.1fs", st.BestDuration.Seconds()),
			st.LastPlayed.Format("2006-01-02 15:04"))
	}
}

func printLevel(store *storage.Store, levelID int) {
	runs, err := store.BestRuns(levelID, 10)
	if err != nil {
		fatal("retrieving runs: %v", err)
	}

	fmt.Printf("Best Runs - Level %d\n", levelID)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return
	}

	fmt.Printf("  %-4s  %-5s  %-8s  %s\n", "Rank", "Moves", "Time", "Date")
	fmt.Printf("  %-4s  %-5s  %-8s  %s\n", "----", "-----", "----", "----")
	for i, run := range runs {
		fmt.Printf("  %-4d  %-5d  %-8s  %s\n",
			i+1, run.Moves,
			fmt.Sprintf("%.1fs", run.Duration().Seconds()),
			run.CreatedAt.Format("2006-01-02 15:04"))
	}
}
