package core

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-9

func checkQuestion(t *testing.T, q Question, cfg PlacementConfig) {
	t.Helper()

	side := math.Min(q.Width, q.Height)
	require.InDelta(t, side*cfg.ThresholdRatio, q.Threshold, eps)
	require.Equal(t, math.Round(side*cfg.MinDeltaRatio), q.MinDelta)

	// No ambiguous placement escapes.
	require.GreaterOrEqual(t, q.Clearance()+eps, q.MinDelta, "kind %s", q.Kind)

	// The answer agrees with the final geometry.
	d := q.Delta()
	switch q.Kind {
	case KindDistance:
		want := AnswerFar
		if q.Distance() < q.Threshold {
			want = AnswerNear
		}
		require.Equal(t, want, q.Answer)
	case KindVertical:
		want := AnswerDown
		if d.Y < 0 {
			want = AnswerUp
		}
		require.Equal(t, want, q.Answer)
	case KindHorizontal:
		want := AnswerRight
		if d.X < 0 {
			want = AnswerLeft
		}
		require.Equal(t, want, q.Answer)
	}
	require.Contains(t, q.Options(), q.Answer)

	// Marker boxes stay inside the area margins.
	m := cfg.Margin
	for _, mk := range []Marker{q.Reference, q.Object} {
		require.GreaterOrEqual(t, mk.Pos.X+eps, m)
		require.GreaterOrEqual(t, mk.Pos.Y+eps, m)
		require.LessOrEqual(t, mk.Pos.X+mk.Size, q.Width-m+eps+math.Max(0, cfg.ReferenceSize+2*m-q.Width))
		require.LessOrEqual(t, mk.Pos.Y+mk.Size, q.Height-m+eps+math.Max(0, cfg.ReferenceSize+2*m-q.Height))
	}
	require.LessOrEqual(t, q.Object.Pos.X+q.Object.Size, q.Width-m+eps)
	require.LessOrEqual(t, q.Object.Pos.Y+q.Object.Size, q.Height-m+eps)
}

func TestGenerateStress(t *testing.T) {
	cfg := DefaultPlacement()
	rng := rand.New(rand.NewSource(2024))
	gen := NewQuestionGenerator(rng, cfg)

	kinds := make(map[Kind]int)
	for i := 0; i < 20000; i++ {
		w := 200 + float64(rng.Intn(1000))
		h := 200 + float64(rng.Intn(1000))
		q, err := gen.Generate(w, h)
		require.NoError(t, err, "%gx%g", w, h)
		checkQuestion(t, q, cfg)
		kinds[q.Kind]++
	}
	assert.Len(t, kinds, 3, "every kind is drawn")
}

func TestGenerateDefaultArea(t *testing.T) {
	cfg := DefaultPlacement()
	gen := NewQuestionGenerator(rand.New(rand.NewSource(5)), cfg)

	answers := make(map[Answer]bool)
	for i := 0; i < 3000; i++ {
		q, err := gen.Generate(640, 400)
		require.NoError(t, err)
		checkQuestion(t, q, cfg)
		assert.Equal(t, 140.0, math.Round(q.Threshold))
		assert.Equal(t, 48.0, q.MinDelta)
		answers[q.Answer] = true
	}
	assert.Len(t, answers, 6, "all six answers occur")
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := NewQuestionGenerator(rand.New(rand.NewSource(11)), DefaultPlacement()).Generate(640, 400)
	require.NoError(t, err)
	b, err := NewQuestionGenerator(rand.New(rand.NewSource(11)), DefaultPlacement()).Generate(640, 400)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestGenerateErrors(t *testing.T) {
	gen := NewQuestionGenerator(rand.New(rand.NewSource(1)), DefaultPlacement())

	for _, size := range [][2]float64{{0, 400}, {640, -1}, {math.NaN(), 10}} {
		_, err := gen.Generate(size[0], size[1])
		assert.ErrorIs(t, err, ErrInvalidArea, "%v", size)
	}

	_, err := gen.Generate(150, 150)
	assert.ErrorIs(t, err, ErrAreaTooSmall)

	bad := DefaultPlacement()
	bad.ReferenceSize = 50
	_, err = NewQuestionGenerator(rand.New(rand.NewSource(1)), bad).Generate(640, 400)
	assert.ErrorIs(t, err, ErrAreaTooSmall)
}

func TestDisambiguateAxis(t *testing.T) {
	tests := []struct {
		name               string
		ref, obj, lo, hi   float64
		minDelta, expected float64
	}{
		{"clear already", 100, 200, 16, 300, 48, 200},
		{"shift keeps sign", 100, 105, 16, 300, 48, 153},
		{"negative shift", 100, 95, 16, 300, 48, 47},
		{"zero goes down", 100, 100, 16, 300, 48, 148},
		{"clamped flips side", 290, 295, 16, 300, 48, 242},
		{"clamped at low edge", 30, 20, 16, 300, 48, 78},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := disambiguateAxis(tt.ref, tt.obj, tt.lo, tt.hi, tt.minDelta)
			assert.InDelta(t, tt.expected, got, eps)
			assert.GreaterOrEqual(t, math.Abs(got-tt.ref)+eps, tt.minDelta)
		})
	}
}

func TestDisambiguateDistance(t *testing.T) {
	cfg := DefaultPlacement()
	box := Box{MinX: 16, MinY: 16, MaxX: 534, MaxY: 294}
	const threshold, minDelta = 140.0, 48.0

	t.Run("near nudge", func(t *testing.T) {
		ref := P(500, 16)
		obj := disambiguateDistance(ref, P(534, 130), box, threshold, minDelta, cfg)
		assert.InDelta(t, 525.5, obj.X, eps)
		assert.InDelta(t, 101.5, obj.Y, eps)
		assert.Less(t, obj.Dist(ref), threshold-minDelta)
	})

	t.Run("far nudge clamped then pulled in", func(t *testing.T) {
		// dx is zero, so the push uses minDelta sideways and the clamp at
		// the bottom edge leaves the object inside the band.
		ref := P(16, 150)
		obj := disambiguateDistance(ref, P(16, 294), box, threshold, minDelta, cfg)
		assert.True(t, box.Contains(obj))
		assert.Greater(t, obj.X, ref.X)
		assert.Less(t, obj.Dist(ref), threshold-minDelta)
	})

	t.Run("near nudge then pulled in", func(t *testing.T) {
		ref := P(520, 280)
		obj := disambiguateDistance(ref, P(534, 150), box, threshold, minDelta, cfg)
		assert.True(t, box.Contains(obj))
		assert.GreaterOrEqual(t, math.Abs(obj.Dist(ref)-threshold), minDelta)
	})

	t.Run("zero vector uses minDelta", func(t *testing.T) {
		// Same spot: distance 0 is already clear of the band.
		ref := P(100, 100)
		assert.Equal(t, ref, disambiguateDistance(ref, ref, box, threshold, minDelta, cfg))
	})

	t.Run("untouched outside band", func(t *testing.T) {
		ref := P(16, 16)
		assert.Equal(t, P(400, 250), disambiguateDistance(ref, P(400, 250), box, threshold, minDelta, cfg))
	})
}

func TestPrompt(t *testing.T) {
	q := Question{
		Kind:      KindDistance,
		Reference: Marker{Item: References[2]},
		Object:    Marker{Item: Objects[1]},
	}
	assert.Equal(t, "¿El gato está CERCA o LEJOS del niño?", q.Prompt())

	q.Kind = KindVertical
	q.Reference.Item = References[0]
	q.Object.Item = Objects[0]
	assert.Equal(t, "¿La pelota está ARRIBA o ABAJO de la mesa?", q.Prompt())

	q.Kind = KindHorizontal
	assert.Equal(t, "¿La pelota está a la IZQUIERDA o a la DERECHA de la mesa?", q.Prompt())
}

func TestKindOptions(t *testing.T) {
	assert.Equal(t, []Answer{AnswerNear, AnswerFar}, KindDistance.Options())
	assert.Equal(t, []Answer{AnswerUp, AnswerDown}, KindVertical.Options())
	assert.Equal(t, []Answer{AnswerLeft, AnswerRight}, KindHorizontal.Options())
}
