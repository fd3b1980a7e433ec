package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/aprende-arcade/internal/config"
	"github.com/vovakirdan/aprende-arcade/internal/core"
	"github.com/vovakirdan/aprende-arcade/internal/games/orientation"
	"github.com/vovakirdan/aprende-arcade/internal/games/pixelart"
	pixelcore "github.com/vovakirdan/aprende-arcade/internal/games/pixelart/core"
	"github.com/vovakirdan/aprende-arcade/internal/games/pixelart/levels"
	"github.com/vovakirdan/aprende-arcade/internal/platform/tui"
	"github.com/vovakirdan/aprende-arcade/internal/registry"
	"github.com/vovakirdan/aprende-arcade/internal/storage"
)

var (
	flagLevel      int
	flagDifficulty string
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows/WASD  - Move
  Space/Enter  - Paint / confirm
  1-9          - Pick a color or an answer
  P/Esc        - Pause
  R            - Restart (after the last screen)
  Q/Ctrl+C     - Quit

Without --level (pixelart) or --difficulty (orientation) a picker is shown
before the game starts.

Difficulty options:
  easy   - Smaller walk board, fewer questions; Pixel Art always shows the model
  normal - Default settings from the config
  hard   - Bigger walk board, more questions

Examples:
  arcade play pixelart
  arcade play pixelart --level 3
  arcade play orientation --difficulty hard
  arcade play orientation --config ./my-orientation.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Pixel Art level to start at (1-N, 0 = pick)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// pixelArtCatalog returns the level catalog the game will play: built-in
// levels plus the ones under --levels-dir or the configured directory.
func pixelArtCatalog() *pixelcore.Catalog {
	dir := flagLevelsDir
	if dir == "" {
		cfg, _, err := config.LoadPixelArt(flagConfig)
		if err != nil {
			logger.Warn("using default pixel art config", "error", err)
		}
		dir = cfg.Levels.Dir
	}

	cat, err := levels.Catalog(dir, logger)
	if err != nil {
		logger.Warn("could not load extra levels", "dir", dir, "error", err)
	}
	return cat
}

// openStore opens the session results store. Play continues without it.
func openStore() *storage.Store {
	store, err := storage.Open()
	if err != nil {
		logger.Warn("results store unavailable", "error", err)
		return nil
	}
	return store
}

// prepareGame applies selections for gameID, showing the level or
// difficulty picker when the flags leave a choice open. ok is false when
// the player backed out of the picker.
func prepareGame(gameID string, cfg core.RuntimeConfig, level int, difficulty string) (core.RuntimeConfig, bool, error) {
	pixelart.SetStartLevel(0)
	pixelart.SetDifficultyPreset(difficulty)
	orientation.SetDifficultyPreset(difficulty)

	switch gameID {
	case "pixelart":
		if level > 0 {
			pixelart.SetStartLevel(level)
			return cfg, true, nil
		}

		selection, updatedCfg, err := tui.RunPixelArtLevelSelector(pixelArtCatalog(), cfg)
		if err != nil {
			return cfg, false, err
		}
		if selection == nil {
			return updatedCfg, false, nil
		}
		pixelart.SetStartLevel(selection.Level)
		return updatedCfg, true, nil

	case "orientation":
		if difficulty != "" {
			return cfg, true, nil
		}

		selection, updatedCfg, err := tui.RunOrientationDifficultySelector(cfg)
		if err != nil {
			return cfg, false, err
		}
		if selection == nil {
			return updatedCfg, false, nil
		}
		orientation.SetDifficultyPreset(string(selection.Difficulty))
		return updatedCfg, true, nil
	}

	return cfg, true, nil
}

func runPlay(_ *cobra.Command, args []string) error {
	gameID := args[0]

	// Check if game exists
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", gameID)
	}
	if _, err := config.ParseDifficulty(flagDifficulty); err != nil {
		return err
	}
	if flagLevel < 0 {
		return fmt.Errorf("invalid --level %d", flagLevel)
	}

	cfg, ok, err := prepareGame(gameID, runtimeConfig(), flagLevel, flagDifficulty)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	game, err := registry.Create(gameID)
	if err != nil {
		return err
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	runIDs, err := tui.Run(game, store, cfg, playLogger)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	printRunResults(os.Stdout, store, gameID, game.Title(), runIDs)
	return nil
}
