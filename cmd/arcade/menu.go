package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aprende-arcade/internal/platform/tui"
	"github.com/vovakirdan/aprende-arcade/internal/registry"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a game.
After a game ends, you return to the menu to play again.
Results of every game played are kept until the arcade is closed.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select game
  Tab          - Session results
  Q            - Quit

Examples:
  arcade menu
  arcade menu --fps 30
  arcade menu --levels-dir ./levels`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	// Menu loop
	for {
		menuResult, err := tui.RunMenu(cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsResults {
			goBack, err := tui.RunResults(store, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if goBack {
				continue
			}
			return nil
		}

		gameID := menuResult.GameID
		if gameID == "" {
			return nil
		}

		var ok bool
		cfg, ok, err = prepareGame(gameID, cfg, 0, "")
		if err != nil {
			logger.Error("picker failed", "game", gameID, "error", err)
			continue
		}
		if !ok {
			continue
		}

		game, err := registry.Create(gameID)
		if err != nil {
			logger.Error("could not create game", "game", gameID, "error", err)
			continue
		}

		// A fresh seed for each game unless --seed pins it
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		runIDs, err := tui.Run(game, store, cfg, playLogger)
		if err != nil {
			logger.Error("game stopped", "game", gameID, "error", err)
			continue
		}
		playLogger.Info("game closed", "game", gameID, "runs", len(runIDs))
	}
}
