package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pixelcore "github.com/vovakirdan/aprende-arcade/internal/games/pixelart/core"
	"github.com/vovakirdan/aprende-arcade/internal/storage"
)

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		flagLogLevel = "warn"
		flagDifficulty = ""
		flagLevel = 0
		flagPlain = false
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func writeDrawing(t *testing.T, g *pixelcore.Grid) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "drawing.txt")
	require.NoError(t, os.WriteFile(path, []byte(g.String()+"\n"), 0o600))
	return path
}

func TestListCommand(t *testing.T) {
	out, err := execute(t, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "pixelart")
	assert.Contains(t, out, "orientation")
	assert.Contains(t, out, "Copia el dibujo del modelo")
}

func TestLevelsCommand(t *testing.T) {
	out, err := execute(t, "levels")
	require.NoError(t, err)

	assert.Contains(t, out, "Nivel 1: Bandera de Colombia")
	assert.Contains(t, out, "Nivel 5: Patrón tribal")
}

func TestLevelsShowCommand(t *testing.T) {
	out, err := execute(t, "levels", "show", "1", "--plain")
	require.NoError(t, err)

	target := pixelcore.NewCatalog().Build(0)
	assert.Contains(t, out, "# Nivel 1: Bandera de Colombia (12×12)")
	assert.Contains(t, out, target.String())

	_, err = execute(t, "levels", "show", "9")
	assert.Error(t, err)
}

func TestCheckCommand(t *testing.T) {
	cat := pixelcore.NewCatalog()

	perfect := writeDrawing(t, cat.Build(0))
	out, err := execute(t, "check", "1", perfect)
	require.NoError(t, err)
	assert.Contains(t, out, "100% correcto")
	assert.Contains(t, out, "Incorrectos: 0")

	blank := writeDrawing(t, pixelcore.NewGrid(12))
	out, err = execute(t, "check", "1", blank)
	require.NoError(t, err)
	assert.Contains(t, out, "\n0% correcto")
	assert.Contains(t, out, "Correctos: 0")
}

func TestCheckCommandErrors(t *testing.T) {
	small := pixelcore.NewGrid(3)
	small.Set(pixelcore.C(0, 0), pixelcore.Red)
	path := writeDrawing(t, small)

	_, err := execute(t, "check", "1", path)
	assert.ErrorContains(t, err, "drawing is 3×3")

	_, err = execute(t, "check", "1", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)

	_, err = execute(t, "check", "0", path)
	assert.ErrorContains(t, err, "level must be a number from 1 to 5")
}

func TestPlayRejectsBadFlags(t *testing.T) {
	_, err := execute(t, "play", "tetris")
	assert.ErrorContains(t, err, "unknown game")

	_, err = execute(t, "play", "orientation", "--difficulty", "extreme")
	assert.Error(t, err)

	_, err = execute(t, "play", "pixelart", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid --log-level")
}

func TestPrintRunResults(t *testing.T) {
	store, err := storage.Open()
	require.NoError(t, err)
	defer store.Close()

	run, err := store.StartRun("pixelart")
	require.NoError(t, err)
	require.NoError(t, store.RecordResult(storage.Result{
		RunID: run.ID, Key: "level-1", Label: "Nivel 1: Bandera de Colombia", Score: 75, Detail: "75% · C:108 · I:36 · SU:0",
	}))
	pending, err := store.StartRun("pixelart")
	require.NoError(t, err)

	var out bytes.Buffer
	printRunResults(&out, store, "pixelart", "Pixel Art", []string{run.ID, pending.ID})

	text := out.String()
	assert.Contains(t, text, "Resultados - Pixel Art")
	assert.Contains(t, text, "Partida 1 (sin terminar)")
	assert.Contains(t, text, "Nivel 1: Bandera de Colombia    75")
	assert.NotContains(t, text, "Partida 2", "empty unfinished runs are skipped")

	out.Reset()
	printRunResults(&out, nil, "pixelart", "Pixel Art", []string{run.ID})
	assert.Empty(t, out.String())
}
