package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/blockdude/internal/core"
	"github.com/vovakirdan/blockdude/internal/games/blockdude"
	"github.com/vovakirdan/blockdude/internal/games/blockdude/levels"
	"github.com/vovakirdan/blockdude/internal/platform/tui"
	"github.com/vovakirdan/blockdude/internal/storage"
)

var flagStartLevel int

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Pick a level and play",
	Long: `Open the level picker and play. Finishing a level moves straight on to
the next one; finishing the last one shows your total time.

Controls:
  Left/Right, J/L, A/D  - Walk
  Up, I, W              - Jump onto a one-block step
  Down, K, S            - Pick up or drop a wood block
  Space                 - Begin the level
  R                     - Restart the level
  E                     - Edit the level
  Esc                   - Back
  Q/Ctrl+C              - Quit

Examples:
  blockdude play
  blockdude play --level 3
  blockdude play --levels ./my-levels --db ./runs.db`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagStartLevel, "level", 0, "Skip the picker and start at this level (1-indexed)")
}

func runPlay(_ *cobra.Command, _ []string) {
	e := setup(true)
	defer e.close()
	lvls := e.loadLevels()

	// Open run storage
	store, err := storage.Open(e.cfg.Storage.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := e.runtime()

	if flagStartLevel > 0 {
		if flagStartLevel > len(lvls) {
			fatal("level %d out of range, %d levels loaded", flagStartLevel, len(lvls))
		}
		if err := playLevels(e, lvls, store, flagStartLevel, cfg); err != nil {
			fatal("running game: %v", err)
		}
		return
	}

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(lvls, store, cfg.Player, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(lvls, store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		if err := playLevels(e, lvls, store, menuResult.StartLevel, cfg); err != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
			return
		}
	}
}

// playLevels runs one session starting at the 1-indexed level start.
func playLevels(e *env, lvls []levels.Level, store *storage.Store, start int, cfg core.RuntimeConfig) error {
	opts := append(tui.GameOptions(store, e.logger, e.buildOptions()),
		blockdude.WithStartLevel(start),
		blockdude.WithSaveDir(e.saveDir()),
	)
	game, err := blockdude.New(lvls, opts...)
	if err != nil {
		return err
	}
	return tui.Run(game, cfg)
}
