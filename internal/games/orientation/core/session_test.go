package core

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T, seed int64) *Session {
	t.Helper()
	s, err := NewSession(DefaultSessionConfig(), rand.New(rand.NewSource(seed)))
	require.NoError(t, err)
	return s
}

// walkHome moves straight to the target.
func walkHome(t *testing.T, s *Session) Outcome {
	t.Helper()
	var out Outcome
	for !s.Walk().Arrived() {
		pos, target := s.Walk().Pos(), s.Walk().Target()
		dir := DirRight
		switch {
		case pos.X > target.X:
			dir = DirLeft
		case pos.Y < target.Y:
			dir = DirDown
		case pos.Y > target.Y:
			dir = DirUp
		}
		var err error
		out, err = s.Move(dir)
		require.NoError(t, err)
		require.True(t, out.Accepted)
	}
	return out
}

func wrongAnswer(q Question) Answer {
	for _, a := range q.Options() {
		if a != q.Answer {
			return a
		}
	}
	return ""
}

func TestSessionPerfectRun(t *testing.T) {
	s := newSession(t, 42)
	require.Equal(t, StageWalk, s.Stage())
	assert.Equal(t, 7, s.MaxTotal())

	out := walkHome(t, s)
	assert.Equal(t, Outcome{Accepted: true, Correct: true, Message: MsgArrived}, out)
	assert.True(t, s.Solved())

	changed, err := s.Advance()
	require.NoError(t, err)
	assert.True(t, changed)
	require.Equal(t, StagePosition, s.Stage())

	for i := 0; i < 3; i++ {
		assert.Equal(t, StagePosition, s.Stage())
		out, err := s.Answer(s.Question().Answer)
		require.NoError(t, err)
		assert.True(t, out.Correct)
		assert.Equal(t, MsgCorrect, out.Message)
		_, err = s.Advance()
		require.NoError(t, err)
	}

	require.Equal(t, StageDistance, s.Stage())
	for i := 0; i < 3; i++ {
		slot, err := s.Paths().Answer()
		require.NoError(t, err)
		out, err := s.ChoosePath(slot)
		require.NoError(t, err)
		assert.True(t, out.Correct)
		_, err = s.Advance()
		require.NoError(t, err)
	}

	assert.True(t, s.Done())
	assert.Equal(t, 7, s.Total())
	assert.Equal(t, 1, s.StageCorrect(StageWalk))
	assert.Equal(t, 3, s.StageCorrect(StagePosition))
	assert.Equal(t, 3, s.StageCorrect(StageDistance))
	assert.Equal(t, Rating{Stars: 3, Message: "¡Excelente!"}, s.Rating())
}

func TestSessionWrongAnswerKeepsChallenge(t *testing.T) {
	s := newSession(t, 8)
	walkHome(t, s)
	_, err := s.Advance()
	require.NoError(t, err)

	q := s.Question()
	out, err := s.Answer(wrongAnswer(q))
	require.NoError(t, err)
	assert.Equal(t, Outcome{Accepted: true, Message: MsgTryAgain}, out)
	assert.False(t, s.Solved())
	assert.Equal(t, q, s.Question(), "the same challenge stays up")
	assert.Equal(t, 1, s.Total())

	_, err = s.Advance()
	assert.ErrorIs(t, err, ErrNotNow)
}

func TestSessionRejectsInputsOutOfStage(t *testing.T) {
	s := newSession(t, 1)

	_, err := s.Answer(AnswerNear)
	assert.ErrorIs(t, err, ErrNotNow)
	_, err = s.ChoosePath(SlotLeft)
	assert.ErrorIs(t, err, ErrNotNow)

	walkHome(t, s)
	// Solved challenges wait for Advance.
	_, err = s.Move(DirUp)
	assert.ErrorIs(t, err, ErrNotNow)
}

func TestSessionOffBoardMove(t *testing.T) {
	s := newSession(t, 3)
	w := s.Walk()

	// Walk to the top edge away from home, then one more step.
	for w.Pos().Y > 0 {
		if w.Pos().X == w.Target().X && w.Pos().Y-1 == w.Target().Y {
			t.Skip("target blocks the straight path for this seed")
		}
		_, err := s.Move(DirUp)
		require.NoError(t, err)
	}
	out, err := s.Move(DirUp)
	require.NoError(t, err)
	assert.Equal(t, Outcome{Message: MsgOffBoard}, out)
}

func TestSessionProgress(t *testing.T) {
	s := newSession(t, 5)
	assert.Contains(t, s.Progress(), "paso(s) hasta la casa")

	walkHome(t, s)
	_, err := s.Advance()
	require.NoError(t, err)
	assert.Equal(t, "Reto 1 de 3", s.Progress())
}

func TestSessionInvalidConfig(t *testing.T) {
	cfg := DefaultSessionConfig()
	cfg.GridSize = 3
	_, err := NewSession(cfg, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrNoTarget)

	cfg = DefaultSessionConfig()
	cfg.AreaWidth = 100
	_, err = NewSession(cfg, rand.New(rand.NewSource(1)))
	assert.ErrorIs(t, err, ErrAreaTooSmall)
}

func TestRateTotal(t *testing.T) {
	tests := []struct {
		total int
		stars int
		msg   string
	}{
		{7, 3, "¡Excelente!"},
		{9, 3, "¡Excelente!"},
		{6, 2, "¡Muy bien!"},
		{4, 2, "¡Muy bien!"},
		{3, 1, "Sigue practicando"},
		{0, 1, "Sigue practicando"},
	}
	for _, tt := range tests {
		got := RateTotal(tt.total, 7, 4)
		assert.Equal(t, Rating{Stars: tt.stars, Message: tt.msg}, got, "total %d", tt.total)
	}
}
