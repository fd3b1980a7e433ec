package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	pixelcore "github.com/vovakirdan/aprende-arcade/internal/games/pixelart/core"
)

var checkCmd = &cobra.Command{
	Use:   "check <n> <file>",
	Short: "Score a drawing file against a Pixel Art level",
	Long: `Score a drawing against the target of level n (1-N).

The file uses the text grid format printed by 'arcade levels show':
one row per line, one key letter (R O Y G C B P K W) or '.' per cell.
Use '-' to read the drawing from standard input.

Examples:
  arcade levels show 1 --plain > bandera.txt
  arcade check 1 bandera.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&flagPlain, "plain", false, "Do not print the colored preview")
}

func readDrawing(path string) (*pixelcore.Grid, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("read drawing: %w", err)
	}

	g, err := pixelcore.ParseGrid(string(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return g, nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	cat := pixelArtCatalog()
	i, err := levelArg(cat, args[0])
	if err != nil {
		return err
	}
	def, _ := cat.Level(i)

	player, err := readDrawing(args[1])
	if err != nil {
		return err
	}
	if player.Size != def.Size {
		return fmt.Errorf("drawing is %d×%d but %s is %d×%d",
			player.Size, player.Size, pixelcore.LevelLabel(i, def.Title), def.Size, def.Size)
	}

	result, marks := pixelcore.Check(cat.Build(i), player)
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, pixelcore.LevelLabel(i, def.Title))
	fmt.Fprintln(out, pixelcore.ScoreLine(result))
	fmt.Fprintln(out, pixelcore.Feedback(result))

	if !flagPlain && isTerminal(os.Stdout) {
		fmt.Fprintln(out)
		writePreview(out, player, marks)
	}
	return nil
}
