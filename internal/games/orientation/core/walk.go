package core

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrNoTarget is returned when no cell satisfies the target distance rule.
var ErrNoTarget = errors.New("orientation: no cell far enough from the start")

// Dir is a walk direction.
type Dir int

const (
	DirUp Dir = iota
	DirDown
	DirLeft
	DirRight
)

// Delta returns the (dx, dy) step of the direction.
func (d Dir) Delta() (int, int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	case DirRight:
		return 1, 0
	default:
		return 0, 0
	}
}

func (d Dir) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// Cell is a board position. X is the column, Y the row.
type Cell struct {
	X int
	Y int
}

// Manhattan returns the Manhattan distance to other.
func (c Cell) Manhattan(other Cell) int {
	return abs(c.X-other.X) + abs(c.Y-other.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// MoveResult reports the outcome of one move attempt.
type MoveResult struct {
	Accepted bool
	Arrived  bool
}

// Walk is the "take the avatar home" board. Its only states are in
// progress and arrived.
type Walk struct {
	size    int
	pos     Cell
	start   Cell
	target  Cell
	arrived bool
	moves   int
}

// NewWalk places the avatar at the board center and draws the target
// uniformly among the cells other than the start whose Manhattan distance
// from it is at least minDistance.
func NewWalk(size, minDistance int, rng *rand.Rand) (*Walk, error) {
	if size < 1 {
		return nil, fmt.Errorf("orientation: walk size %d: %w", size, ErrNoTarget)
	}
	start := Cell{X: size / 2, Y: size / 2}

	var candidates []Cell
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := Cell{X: x, Y: y}
			if c != start && c.Manhattan(start) >= minDistance {
				candidates = append(candidates, c)
			}
		}
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("orientation: size %d, min distance %d: %w", size, minDistance, ErrNoTarget)
	}

	return &Walk{
		size:   size,
		pos:    start,
		start:  start,
		target: candidates[rng.Intn(len(candidates))],
	}, nil
}

// NewWalkWithTarget builds a walk with a fixed target. Used by tests and
// replays.
func NewWalkWithTarget(size int, target Cell) *Walk {
	start := Cell{X: size / 2, Y: size / 2}
	return &Walk{size: size, pos: start, start: start, target: target}
}

// AttemptMove tries one step. Moves that would leave the board, and any
// move after arriving, are rejected without changing state.
func (w *Walk) AttemptMove(d Dir) MoveResult {
	if w.arrived {
		return MoveResult{Accepted: false, Arrived: true}
	}
	dx, dy := d.Delta()
	next := Cell{X: w.pos.X + dx, Y: w.pos.Y + dy}
	if (dx == 0 && dy == 0) || !w.inBounds(next) {
		return MoveResult{}
	}

	w.pos = next
	w.moves++
	if w.pos == w.target {
		w.arrived = true
	}
	return MoveResult{Accepted: true, Arrived: w.arrived}
}

func (w *Walk) inBounds(c Cell) bool {
	return c.X >= 0 && c.X < w.size && c.Y >= 0 && c.Y < w.size
}

// Size returns the board side length.
func (w *Walk) Size() int { return w.size }

// Pos returns the avatar position.
func (w *Walk) Pos() Cell { return w.pos }

// Start returns the starting cell.
func (w *Walk) Start() Cell { return w.start }

// Target returns the home cell.
func (w *Walk) Target() Cell { return w.target }

// Arrived reports whether the avatar reached home.
func (w *Walk) Arrived() bool { return w.arrived }

// Moves returns the number of accepted moves.
func (w *Walk) Moves() int { return w.moves }

// StepsLeft returns the Manhattan distance to home.
func (w *Walk) StepsLeft() int {
	return w.pos.Manhattan(w.target)
}
