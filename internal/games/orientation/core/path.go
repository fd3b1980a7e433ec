package core

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"regexp"
	"strconv"
)

// ErrTie is returned when more than one slot holds the extreme length.
var ErrTie = errors.New("orientation: several paths share the extreme length")

// LengthTolerance absorbs floating point error when comparing lengths.
const LengthTolerance = 0.01

// Slot is a display position for a path.
type Slot int

const (
	SlotLeft Slot = iota
	SlotCenter
	SlotRight
)

// Slots lists the slots in display order.
var Slots = []Slot{SlotLeft, SlotCenter, SlotRight}

func (s Slot) String() string {
	switch s {
	case SlotLeft:
		return "left"
	case SlotCenter:
		return "center"
	case SlotRight:
		return "right"
	default:
		return "unknown"
	}
}

// Label returns the Spanish slot name.
func (s Slot) Label() string {
	switch s {
	case SlotLeft:
		return "izquierda"
	case SlotCenter:
		return "centro"
	case SlotRight:
		return "derecha"
	default:
		return "?"
	}
}

// PathShapes are the fixed polylines in a 100×100 box.
var PathShapes = []string{
	"M10 90 L30 10 L60 60 L90 20",
	"M12 85 L50 35 L88 85",
	"M20 75 L40 50 L80 75",
}

var coordPair = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)\s+([0-9]+(?:\.[0-9]+)?)`)

// ParsePath extracts the "x y" pairs of an SVG-style path in order.
// Commands are ignored, so only straight segments are meaningful.
func ParsePath(d string) []Point {
	matches := coordPair.FindAllStringSubmatch(d, -1)
	points := make([]Point, 0, len(matches))
	for _, m := range matches {
		x, errX := strconv.ParseFloat(m[1], 64)
		y, errY := strconv.ParseFloat(m[2], 64)
		if errX != nil || errY != nil {
			continue
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points
}

// Length returns the summed segment lengths of a polyline.
func Length(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Dist(points[i])
	}
	return total
}

// PickExtreme returns the slot with the longest (or shortest) length.
// Lengths within LengthTolerance of each other are equal; if more than one
// slot matches the extreme, ErrTie is returned.
func PickExtreme(lengths map[Slot]float64, wantLongest bool) (Slot, error) {
	if len(lengths) == 0 {
		return 0, fmt.Errorf("orientation: no paths to compare")
	}

	target := math.Inf(1)
	if wantLongest {
		target = math.Inf(-1)
	}
	for _, l := range lengths {
		if wantLongest {
			target = math.Max(target, l)
		} else {
			target = math.Min(target, l)
		}
	}

	var matches []Slot
	for _, s := range Slots {
		l, ok := lengths[s]
		if ok && math.Abs(l-target) < LengthTolerance {
			matches = append(matches, s)
		}
	}
	if len(matches) != 1 {
		return 0, fmt.Errorf("%w: %v", ErrTie, matches)
	}
	return matches[0], nil
}

// Path is a polyline shown in a slot.
type Path struct {
	Shape  string
	Points []Point
	Length float64
}

// PathChallenge asks for the longest or shortest of three paths.
type PathChallenge struct {
	Paths       map[Slot]Path
	WantLongest bool
}

// NewPathChallenge shuffles the fixed shapes over the slots and picks
// longest or shortest with equal probability.
func NewPathChallenge(rng *rand.Rand) PathChallenge {
	order := []Slot{SlotLeft, SlotCenter, SlotRight}
	rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })

	c := PathChallenge{Paths: make(map[Slot]Path, len(order))}
	for i, slot := range order {
		pts := ParsePath(PathShapes[i])
		c.Paths[slot] = Path{Shape: PathShapes[i], Points: pts, Length: Length(pts)}
	}
	c.WantLongest = rng.Float64() < 0.5
	return c
}

// Lengths returns the length of each slot.
func (c PathChallenge) Lengths() map[Slot]float64 {
	out := make(map[Slot]float64, len(c.Paths))
	for s, p := range c.Paths {
		out[s] = p.Length
	}
	return out
}

// Answer returns the slot holding the extreme path.
func (c PathChallenge) Answer() (Slot, error) {
	return PickExtreme(c.Lengths(), c.WantLongest)
}

// Check reports whether slot holds a path within tolerance of the extreme.
func (c PathChallenge) Check(slot Slot) bool {
	p, ok := c.Paths[slot]
	if !ok {
		return false
	}
	target := p.Length
	for _, other := range c.Paths {
		if c.WantLongest {
			target = math.Max(target, other.Length)
		} else {
			target = math.Min(target, other.Length)
		}
	}
	return math.Abs(p.Length-target) < LengthTolerance
}

// Prompt returns the Spanish question text.
func (c PathChallenge) Prompt() string {
	if c.WantLongest {
		return "¿Cuál camino es MÁS LARGO?"
	}
	return "¿Cuál camino es MÁS CORTO?"
}
