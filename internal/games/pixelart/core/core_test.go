package core

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustGrid(t *testing.T, text string) *Grid {
	t.Helper()
	g, err := ParseGrid(text)
	require.NoError(t, err)
	return g
}

func countKey(g *Grid, k ColorKey) int {
	n := 0
	for _, c := range g.Cells {
		if c == k {
			n++
		}
	}
	return n
}

func TestParseColorKey(t *testing.T) {
	tests := []struct {
		in   rune
		want ColorKey
		ok   bool
	}{
		{'R', Red, true},
		{'k', Black, true},
		{'W', Gray, true},
		{'.', Empty, true},
		{' ', Empty, true},
		{'X', Empty, false},
		{'ñ', Empty, false},
	}
	for _, tt := range tests {
		got, ok := ParseColorKey(tt.in)
		assert.Equal(t, tt.ok, ok, "%q", tt.in)
		assert.Equal(t, tt.want, got, "%q", tt.in)
	}
}

func TestPalette(t *testing.T) {
	require.Len(t, Palette, 9)
	keys := ""
	for _, c := range Palette {
		keys += c.Key.String()
	}
	assert.Equal(t, "ROYGCBPKW", keys)

	k, ok := PaletteKey(9)
	assert.True(t, ok)
	assert.Equal(t, Gray, k)
	_, ok = PaletteKey(0)
	assert.False(t, ok)

	assert.Equal(t, "Gris claro", Gray.Name())
	assert.Equal(t, "#7c5cff", Purple.Hex())
	assert.Equal(t, EraserName, Empty.Name())
	assert.Equal(t, "", Empty.Hex())
	assert.False(t, Empty.Valid())
}

func TestParseGridAndString(t *testing.T) {
	g := mustGrid(t, "# comment\nRR.\n.G\n\nK..\n")
	assert.Equal(t, 3, g.Size)
	assert.Equal(t, "RR.\n.G.\nK..", g.String())
	assert.Equal(t, Green, g.At(1, 1))
	assert.Equal(t, Empty, g.At(1, 2), "short rows are padded")

	_, err := ParseGrid("RX\n..")
	assert.ErrorContains(t, err, "unknown color")
	_, err = ParseGrid("RRR\n..")
	assert.Error(t, err, "row wider than the grid")
	_, err = ParseGrid("\n# only comments\n")
	assert.Error(t, err)
}

func TestGridBasics(t *testing.T) {
	g := NewGrid(4)
	g.Set(C(1, 2), Red)
	g.Set(C(9, 9), Red)

	assert.Equal(t, Red, g.Get(C(1, 2)))
	assert.Equal(t, Empty, g.Get(C(-1, 0)))
	assert.Equal(t, 1, g.FilledCount())

	clone := g.Clone()
	clone.Set(C(0, 0), Blue)
	assert.False(t, g.Equal(clone))
	assert.Equal(t, Empty, g.Get(C(0, 0)))

	g.Clear()
	assert.Equal(t, 0, g.FilledCount())
	assert.True(t, g.Equal(NewGridLike(clone)))
}

func TestCatalogSizes(t *testing.T) {
	c := NewCatalog()
	require.Equal(t, 5, c.Len())

	want := []int{12, 12, 14, 16, 16}
	for i, size := range want {
		g := c.Build(i)
		assert.Equal(t, size, g.Size, "level %d", i+1)
		assert.Len(t, g.Cells, size*size)
	}
}

func TestCatalogFlag(t *testing.T) {
	g := NewCatalog().Build(0)

	for row := 0; row < 12; row++ {
		want := Red
		switch {
		case row <= 5:
			want = Yellow
		case row <= 8:
			want = Blue
		}
		for col := 0; col < 12; col++ {
			require.Equal(t, want, g.At(row, col), "row %d col %d", row, col)
		}
	}
}

func TestCatalogCup(t *testing.T) {
	g := NewCatalog().Build(1)
	assert.Equal(t, cupMask, g.Rows())
	assert.Equal(t, 4, countKey(g, Blue))
}

func TestCatalogSnake(t *testing.T) {
	g := NewCatalog().Build(2)

	assert.Equal(t, 4, countKey(g, Black))
	assert.Equal(t, 18, countKey(g, Green))
	assert.Equal(t, 22, g.FilledCount())
	assert.Equal(t, Green, g.At(2, 2))
	assert.Equal(t, Green, g.At(2, 3))
	assert.Equal(t, Green, g.At(11, 11))
	assert.Equal(t, Empty, g.At(11, 12), "body stops before the border")
	assert.Equal(t, Black, g.At(4, 4))
}

func TestCatalogPitch(t *testing.T) {
	g := NewCatalog().Build(3)

	assert.Equal(t, 256, g.FilledCount())
	assert.Equal(t, Green, g.At(0, 0))
	assert.Equal(t, Gray, g.At(1, 1))
	assert.Equal(t, Gray, g.At(14, 7))
	assert.Equal(t, Gray, g.At(8, 2), "midline")
	assert.Equal(t, Gray, g.At(1, 8), "ring row 1")
	assert.Equal(t, Gray, g.At(5, 8), "circle top")
	assert.Equal(t, Green, g.At(3, 3))
	assert.Equal(t, Green, g.At(7, 7), "inside the circle")
}

func TestCatalogTribal(t *testing.T) {
	g := NewCatalog().Build(4)

	rows := g.Rows()
	assert.Equal(t, strings.Repeat(".", 16), rows[15])
	assert.Equal(t, "....R..O..Y.....", rows[0], "15-char rows are padded")
	assert.Equal(t, Purple, g.At(4, 1))
}

func TestCatalogIsPure(t *testing.T) {
	c := NewCatalog()
	for i := 0; i < c.Len(); i++ {
		a := c.Build(i)
		a.Set(C(0, 0), Cyan)
		b := c.Build(i)
		assert.True(t, b.Equal(c.Build(i)))
		assert.NotEqual(t, Cyan, b.Get(C(0, 0)), "builds must not share cells")
	}
}

func TestCatalogOutOfRange(t *testing.T) {
	c := NewCatalog()
	assert.PanicsWithValue(t, "pixelart: level index 5 out of range [0,5)", func() { c.Build(5) })
	assert.Panics(t, func() { c.Build(-1) })
	_, ok := c.Level(5)
	assert.False(t, ok)
}

func TestCatalogExtra(t *testing.T) {
	extra := LevelDef{ID: "dot", Title: "Punto", Size: 2, Mask: []string{"R"}}
	c := NewCatalog(extra)
	require.Equal(t, 6, c.Len())

	def, ok := c.Level(5)
	require.True(t, ok)
	assert.Equal(t, "Punto", def.Title)
	assert.Equal(t, "R.\n..", c.Build(5).String())
}

func TestScoreWorkedExample(t *testing.T) {
	target := mustGrid(t, "RR.\n...\n...")
	player := mustGrid(t, "RGG\n...\n...")

	res, marks := Check(target, player)
	assert.Equal(t, Result{Required: 2, Correct: 1, Incorrect: 1, Unused: 1, Percentage: 50}, res)
	assert.Equal(t, []Mark{MarkCorrect, MarkIncorrect, MarkIncorrect}, marks[:3])
	assert.Equal(t, MarkNone, marks[3])
}

func TestScoreIdentity(t *testing.T) {
	c := NewCatalog()
	for i := 0; i < c.Len(); i++ {
		target := c.Build(i)
		res := Score(target, target.Clone())
		assert.Equal(t, res.Required, res.Correct)
		assert.Zero(t, res.Incorrect)
		assert.Zero(t, res.Unused)
		assert.Equal(t, 100, res.Percentage)
	}
}

func TestScoreEmptyTarget(t *testing.T) {
	res := Score(NewGrid(3), mustGrid(t, "R..\n...\n..."))
	assert.Equal(t, 0, res.Required)
	assert.Equal(t, 1, res.Unused)
	assert.Equal(t, 100, res.Percentage)
}

func TestScoreMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { Score(NewGrid(3), NewGrid(4)) })
}

func TestScoreProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	keys := []ColorKey{Empty, Empty, Red, Green, Blue}

	for iter := 0; iter < 500; iter++ {
		n := 1 + rng.Intn(10)
		target, player := NewGrid(n), NewGrid(n)
		for i := range target.Cells {
			target.Cells[i] = keys[rng.Intn(len(keys))]
			player.Cells[i] = keys[rng.Intn(len(keys))]
		}

		res := Score(target, player)
		assert.Equal(t, res.Required, res.Correct+res.Incorrect)
		assert.LessOrEqual(t, res.Correct+res.Incorrect+res.Unused, n*n)
		assert.Equal(t, res, Score(target, player), "scoring must be pure")
		assert.GreaterOrEqual(t, res.Percentage, 0)
		assert.LessOrEqual(t, res.Percentage, 100)
	}
}

func TestPercentageRounding(t *testing.T) {
	tests := []struct {
		correct, required, want int
	}{
		{0, 0, 100},
		{0, 5, 0},
		{1, 8, 13},
		{5, 8, 63},
		{1, 3, 33},
		{2, 3, 67},
		{1, 200, 1},
		{199, 200, 100},
		{7, 7, 100},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Percentage(tt.correct, tt.required), "%d/%d", tt.correct, tt.required)
	}
}

func TestTiersAndFeedback(t *testing.T) {
	assert.Equal(t, TierPerfect, TierFor(100))
	assert.Equal(t, TierGood, TierFor(99))
	assert.Equal(t, TierGood, TierFor(80))
	assert.Equal(t, TierKeepTrying, TierFor(79))

	r := Result{Required: 10, Correct: 8, Incorrect: 2, Unused: 1, Percentage: 80}
	assert.Equal(t, "Muy bien, revisa los puntos en rojo. | Correctos: 8 · Incorrectos: 2 · Sin usar: 1", Feedback(r))
	assert.Equal(t, "80% correcto", ScoreLine(r))
	assert.Equal(t, "80% · C:8 · I:2 · SU:1", Compact(r))
}

func TestSummaryOverwrite(t *testing.T) {
	c := NewCatalog()
	s := NewSummary()

	s.Record(1, Result{Required: 4, Correct: 1, Incorrect: 3, Percentage: 25})
	s.Record(1, Result{Required: 4, Correct: 4, Percentage: 100})

	assert.Equal(t, 1, s.Checked())
	assert.Equal(t, 1, s.PerfectCount())
	assert.Equal(t, 100, s.Total())

	lines := s.Lines(c)
	require.Len(t, lines, 5)
	assert.Equal(t, SummaryLine{Label: "Nivel 1: Bandera de Colombia", Status: PendingText}, lines[0])
	assert.Equal(t, "Nivel 2: Vaso", lines[1].Label)
	assert.Equal(t, "100% · C:4 · I:0 · SU:0", lines[1].Status)
	assert.True(t, lines[1].Done)
}
