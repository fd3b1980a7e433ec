package core

import "fmt"

// Mark is the per-cell verdict shown after a check.
type Mark uint8

const (
	MarkNone Mark = iota
	MarkCorrect
	MarkIncorrect
)

// Result is the outcome of comparing a player grid with its target.
//
// Required counts target cells that carry a color; Correct and Incorrect
// split them, so Correct+Incorrect == Required. Unused counts colored
// player cells over empty target cells.
type Result struct {
	Required   int
	Correct    int
	Incorrect  int
	Unused     int
	Percentage int
}

// Score compares player against target. Both grids must have the same
// size; a mismatch is a programming error and panics.
func Score(target, player *Grid) Result {
	res, _ := Check(target, player)
	return res
}

// Check scores like Score and also returns one Mark per cell in row-major
// order. Unused cells are marked incorrect.
func Check(target, player *Grid) (Result, []Mark) {
	if target.Size != player.Size || len(target.Cells) != len(player.Cells) {
		panic(fmt.Sprintf("pixelart: grid size mismatch: target %d, player %d", target.Size, player.Size))
	}

	var res Result
	marks := make([]Mark, len(target.Cells))

	for i, want := range target.Cells {
		got := player.Cells[i]
		switch {
		case want != Empty && got == want:
			res.Correct++
			marks[i] = MarkCorrect
		case want != Empty:
			res.Incorrect++
			marks[i] = MarkIncorrect
		case got != Empty:
			res.Unused++
			marks[i] = MarkIncorrect
		}
	}

	res.Required = res.Correct + res.Incorrect
	res.Percentage = Percentage(res.Correct, res.Required)
	return res, marks
}

// Percentage returns 100*correct/required rounded half away from zero,
// or 100 when nothing is required.
func Percentage(correct, required int) int {
	if required <= 0 {
		return 100
	}
	return (200*correct + required) / (2 * required)
}

// Perfect reports whether every required cell matched.
func (r Result) Perfect() bool {
	return r.Percentage == 100
}
