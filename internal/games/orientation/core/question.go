package core

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

var (
	// ErrInvalidArea is returned for non-positive area dimensions.
	ErrInvalidArea = errors.New("orientation: area dimensions must be positive")
	// ErrAreaTooSmall is returned when the markers cannot be placed far
	// enough apart to make every question unambiguous.
	ErrAreaTooSmall = errors.New("orientation: area too small for unambiguous placement")
)

// Kind is the type of position question.
type Kind int

const (
	KindDistance Kind = iota
	KindVertical
	KindHorizontal
)

// Kinds lists all question kinds in draw order.
var Kinds = []Kind{KindDistance, KindVertical, KindHorizontal}

func (k Kind) String() string {
	switch k {
	case KindDistance:
		return "distance"
	case KindVertical:
		return "vertical"
	case KindHorizontal:
		return "horizontal"
	default:
		return "unknown"
	}
}

// Options returns the two answers allowed for the kind, in button order.
func (k Kind) Options() []Answer {
	switch k {
	case KindDistance:
		return []Answer{AnswerNear, AnswerFar}
	case KindVertical:
		return []Answer{AnswerUp, AnswerDown}
	case KindHorizontal:
		return []Answer{AnswerLeft, AnswerRight}
	default:
		return nil
	}
}

// Answer is a position question answer.
type Answer string

const (
	AnswerNear  Answer = "CERCA"
	AnswerFar   Answer = "LEJOS"
	AnswerUp    Answer = "ARRIBA"
	AnswerDown  Answer = "ABAJO"
	AnswerLeft  Answer = "IZQUIERDA"
	AnswerRight Answer = "DERECHA"
)

// Item is a scene object that can be a marker.
type Item struct {
	Name     string
	Symbol   rune
	Feminine bool
}

// Article returns the Spanish definite article for the item.
func (it Item) Article() string {
	if it.Feminine {
		return "la"
	}
	return "el"
}

var (
	// References are the items the question is asked relative to.
	References = []Item{
		{Name: "mesa", Symbol: 'π', Feminine: true},
		{Name: "caja", Symbol: '■', Feminine: true},
		{Name: "niño", Symbol: '☺', Feminine: false},
	}
	// Objects are the items the question is asked about.
	Objects = []Item{
		{Name: "pelota", Symbol: '●', Feminine: true},
		{Name: "gato", Symbol: '&', Feminine: false},
		{Name: "mochila", Symbol: '▲', Feminine: true},
	}
)

// Marker is a placed item. Pos is the top-left corner of its box.
type Marker struct {
	Item Item
	Pos  Point
	Size float64
}

// Center returns the center of the marker box.
func (m Marker) Center() Point {
	return Point{X: m.Pos.X + m.Size/2, Y: m.Pos.Y + m.Size/2}
}

// PlacementConfig holds the marker geometry and ambiguity rules.
type PlacementConfig struct {
	ReferenceSize  float64
	ObjectSize     float64
	Margin         float64
	ThresholdRatio float64
	MinDeltaRatio  float64
	NearFactor     float64
	FarFactor      float64
}

// DefaultPlacement returns the standard marker geometry.
func DefaultPlacement() PlacementConfig {
	return PlacementConfig{
		ReferenceSize:  120,
		ObjectSize:     90,
		Margin:         16,
		ThresholdRatio: 0.35,
		MinDeltaRatio:  0.12,
		NearFactor:     0.75,
		FarFactor:      1.35,
	}
}

// Question is one generated position challenge with its answer key.
type Question struct {
	Kind      Kind
	Answer    Answer
	Reference Marker
	Object    Marker
	Width     float64
	Height    float64
	Threshold float64
	MinDelta  float64
}

// Options returns the two answers the player may pick from.
func (q Question) Options() []Answer {
	return q.Kind.Options()
}

// Check reports whether a is the correct answer.
func (q Question) Check(a Answer) bool {
	return a == q.Answer
}

// Delta returns the object position minus the reference position.
func (q Question) Delta() Point {
	return q.Object.Pos.Sub(q.Reference.Pos)
}

// Distance returns the distance between the marker positions.
func (q Question) Distance() float64 {
	return q.Object.Pos.Dist(q.Reference.Pos)
}

// Clearance returns how far the deciding signal is from its ambiguity
// boundary. It is at least MinDelta for every generated question.
func (q Question) Clearance() float64 {
	d := q.Delta()
	switch q.Kind {
	case KindVertical:
		return math.Abs(d.Y)
	case KindHorizontal:
		return math.Abs(d.X)
	default:
		return math.Abs(q.Distance() - q.Threshold)
	}
}

// Prompt returns the Spanish question text.
func (q Question) Prompt() string {
	obj := q.Object.Item
	ref := q.Reference.Item
	of := "de " + ref.Article()
	if of == "de el" {
		of = "del"
	}
	subject := capitalize(obj.Article()) + " " + obj.Name

	switch q.Kind {
	case KindVertical:
		return fmt.Sprintf("¿%s está ARRIBA o ABAJO %s %s?", subject, of, ref.Name)
	case KindHorizontal:
		return fmt.Sprintf("¿%s está a la IZQUIERDA o a la DERECHA %s %s?", subject, of, ref.Name)
	default:
		return fmt.Sprintf("¿%s está CERCA o LEJOS %s %s?", subject, of, ref.Name)
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}

// QuestionGenerator places two markers and asks an unambiguous question
// about them.
type QuestionGenerator struct {
	rng *rand.Rand
	cfg PlacementConfig
}

// NewQuestionGenerator creates a generator drawing from rng.
func NewQuestionGenerator(rng *rand.Rand, cfg PlacementConfig) *QuestionGenerator {
	return &QuestionGenerator{rng: rng, cfg: cfg}
}

// maxShrinkSteps bounds the distance fallback loop.
const maxShrinkSteps = 64

// Generate places the markers inside a width×height area, draws a question
// kind and derives its answer. Placements whose signal falls within
// MinDelta of the decision boundary are moved until it does not.
func (g *QuestionGenerator) Generate(width, height float64) (Question, error) {
	if width <= 0 || height <= 0 || math.IsNaN(width) || math.IsNaN(height) {
		return Question{}, fmt.Errorf("%w: %gx%g", ErrInvalidArea, width, height)
	}

	cfg := g.cfg
	m := cfg.Margin
	side := math.Min(width, height)
	threshold := side * cfg.ThresholdRatio
	minDelta := math.Round(side * cfg.MinDeltaRatio)

	objBox := Box{
		MinX: m, MinY: m,
		MaxX: width - cfg.ObjectSize - m,
		MaxY: height - cfg.ObjectSize - m,
	}
	if objBox.MaxX-objBox.MinX < 2*minDelta || objBox.MaxY-objBox.MinY < 2*minDelta ||
		threshold <= minDelta || cfg.ReferenceSize < cfg.ObjectSize {
		return Question{}, fmt.Errorf("%w: %gx%g", ErrAreaTooSmall, width, height)
	}
	refBox := Box{
		MinX: m, MinY: m,
		MaxX: math.Max(m, width-cfg.ReferenceSize-m),
		MaxY: math.Max(m, height-cfg.ReferenceSize-m),
	}

	q := Question{
		Width:     width,
		Height:    height,
		Threshold: threshold,
		MinDelta:  minDelta,
		Reference: Marker{Item: References[g.rng.Intn(len(References))], Size: cfg.ReferenceSize},
		Object:    Marker{Item: Objects[g.rng.Intn(len(Objects))], Size: cfg.ObjectSize},
	}

	ref := Point{X: g.randIn(refBox.MinX, refBox.MaxX), Y: g.randIn(refBox.MinY, refBox.MaxY)}
	obj := Point{X: g.randIn(objBox.MinX, objBox.MaxX), Y: g.randIn(objBox.MinY, objBox.MaxY)}
	q.Kind = Kinds[g.rng.Intn(len(Kinds))]

	switch q.Kind {
	case KindDistance:
		obj = disambiguateDistance(ref, obj, objBox, threshold, minDelta, cfg)
		if obj.Dist(ref) < threshold {
			q.Answer = AnswerNear
		} else {
			q.Answer = AnswerFar
		}
	case KindVertical:
		obj.Y = disambiguateAxis(ref.Y, obj.Y, objBox.MinY, objBox.MaxY, minDelta)
		if obj.Y-ref.Y < 0 {
			q.Answer = AnswerUp
		} else {
			q.Answer = AnswerDown
		}
	case KindHorizontal:
		obj.X = disambiguateAxis(ref.X, obj.X, objBox.MinX, objBox.MaxX, minDelta)
		if obj.X-ref.X < 0 {
			q.Answer = AnswerLeft
		} else {
			q.Answer = AnswerRight
		}
	}

	q.Reference.Pos = ref
	q.Object.Pos = obj
	return q, nil
}

// randIn returns a whole number in [lo, hi].
func (g *QuestionGenerator) randIn(lo, hi float64) float64 {
	lo = math.Ceil(lo)
	span := int(math.Floor(hi) - lo)
	if span <= 0 {
		return lo
	}
	return lo + float64(g.rng.Intn(span+1))
}

// disambiguateDistance first pushes the object along the reference→object
// vector (0.75 when near, 1.35 when far; a zero component is replaced by
// minDelta) and clamps it into the box. If clamping left it inside the
// band, the object is pulled toward the reference until it is clearly
// near. Both markers lie in the box, so every pulled position does too.
func disambiguateDistance(ref, obj Point, box Box, threshold, minDelta float64, cfg PlacementConfig) Point {
	if math.Abs(obj.Dist(ref)-threshold) >= minDelta {
		return obj
	}

	d := obj.Sub(ref)
	if d.X == 0 {
		d.X = minDelta
	}
	if d.Y == 0 {
		d.Y = minDelta
	}
	factor := cfg.FarFactor
	if obj.Dist(ref) < threshold {
		factor = cfg.NearFactor
	}
	obj = box.Clamp(ref.Add(d.Scale(factor)))
	if math.Abs(obj.Dist(ref)-threshold) >= minDelta {
		return obj
	}

	d = obj.Sub(ref)
	for i := 0; i < maxShrinkSteps; i++ {
		d = d.Scale(cfg.NearFactor)
		if d.Dist(Point{}) < threshold-minDelta {
			return ref.Add(d)
		}
	}
	return ref
}

// disambiguateAxis applies the same rule to one coordinate: shift by
// ±minDelta keeping the sign of the delta (down/right when zero), clamp,
// and if the clamp ate the shift place the object exactly minDelta from
// the reference on whichever side fits.
func disambiguateAxis(ref, obj, lo, hi, minDelta float64) float64 {
	delta := obj - ref
	if math.Abs(delta) >= minDelta {
		return obj
	}

	shift := minDelta
	if delta < 0 {
		shift = -minDelta
	}
	obj = clamp(obj+shift, lo, hi)
	if math.Abs(obj-ref) >= minDelta {
		return obj
	}

	if pref := ref + shift; pref >= lo && pref <= hi {
		return pref
	}
	return ref - shift
}
