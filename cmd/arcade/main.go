// arcade is a terminal arcade of small learning games for children.
//
// Usage:
//
//	arcade list                    - List available games
//	arcade play <game>             - Play a game
//	arcade menu                    - Start menu to pick games interactively
//	arcade levels                  - List the Pixel Art levels
//	arcade levels show <n>         - Print the target drawing of a level
//	arcade check <n> <file>        - Score a text drawing against a level
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--config <path>       - Custom game config YAML
//	--levels-dir <dir>    - Extra Pixel Art levels directory
//	--log-level <level>   - debug, info, warn or error (default: warn)
//	--log-file <path>     - Also write logs produced while playing to this file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/aprende-arcade/internal/games/orientation"
	"github.com/vovakirdan/aprende-arcade/internal/games/pixelart"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagConfig    string
	flagLevelsDir string
	flagLogLevel  string
	flagLogFile   string
)

var (
	// logger writes to stderr and is used outside the TUI.
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "arcade",
	})
	// playLogger is handed to code that runs while Bubble Tea owns the
	// terminal. It writes to --log-file or nowhere.
	playLogger = log.New(io.Discard)
	logFile    *os.File
)

func main() {
	err := rootCmd.Execute()
	closeLogFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Aprende Arcade - learning games in your terminal",
	Long: `Aprende Arcade is a terminal arcade of small learning games.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive game picker menu
  levels   - List or show Pixel Art levels
  check    - Score a drawing file against a Pixel Art level

Examples:
  arcade list
  arcade play pixelart --level 2
  arcade play orientation --difficulty easy
  arcade menu --levels-dir ./levels
  arcade check 1 ./bandera.txt`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLevelsDir, "levels-dir", "", "Directory with extra Pixel Art levels (YAML)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs produced during play to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(checkCmd)
}

// setup configures logging and hands the global flags to the games.
func setup(_ *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	logger.SetLevel(level)

	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		logFile = f
		playLogger = log.NewWithOptions(f, log.Options{
			ReportTimestamp: true,
			Prefix:          "arcade",
			Level:           level,
		})
	}

	pixelart.SetLogger(playLogger)
	pixelart.SetConfigPath(flagConfig)
	pixelart.SetLevelsDir(flagLevelsDir)
	orientation.SetLogger(playLogger)
	orientation.SetConfigPath(flagConfig)

	logger.Debug("arcade starting", "fps", flagFPS, "seed", flagSeed, "config", flagConfig, "levels_dir", flagLevelsDir)
	return nil
}

func closeLogFile() {
	if logFile == nil {
		return
	}
	if err := logFile.Close(); err != nil {
		logger.Warn("could not close log file", "path", flagLogFile, "error", err)
	}
}
