package core

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrNotNow is returned for an input the current stage does not accept,
// including any answer while a solved challenge waits to advance.
var ErrNotNow = errors.New("orientation: input not accepted in this state")

// Stage is one screen of the session.
type Stage int

const (
	StageWalk Stage = iota
	StagePosition
	StageDistance
	StageResult
)

func (s Stage) String() string {
	switch s {
	case StageWalk:
		return "walk"
	case StagePosition:
		return "position"
	case StageDistance:
		return "distance"
	case StageResult:
		return "result"
	default:
		return "unknown"
	}
}

// Title returns the Spanish stage heading.
func (s Stage) Title() string {
	switch s {
	case StageWalk:
		return "Dirección"
	case StagePosition:
		return "Posición"
	case StageDistance:
		return "Distancia"
	default:
		return "Resultado"
	}
}

// Feedback texts.
const (
	MsgArrived    = "¡Llegaste a la casa!"
	MsgOffBoard   = "No puedes salir del tablero"
	MsgCorrect    = "¡Muy bien!"
	MsgTryAgain   = "Intenta otra vez"
	MsgWalkPrompt = "Usa las flechas para llegar a la casa"
)

// SessionConfig sets the board, the stage lengths and the rating.
type SessionConfig struct {
	GridSize           int
	MinTargetDistance  int
	PositionChallenges int
	DistanceChallenges int
	AreaWidth          float64
	AreaHeight         float64
	Placement          PlacementConfig
	ThreeStars         int
	TwoStars           int
}

// DefaultSessionConfig returns the standard session.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		GridSize:           7,
		MinTargetDistance:  3,
		PositionChallenges: 3,
		DistanceChallenges: 3,
		AreaWidth:          640,
		AreaHeight:         400,
		Placement:          DefaultPlacement(),
		ThreeStars:         7,
		TwoStars:           4,
	}
}

// Rating is the final star score.
type Rating struct {
	Stars   int
	Message string
}

// RateTotal maps a total of correct answers to stars.
func RateTotal(total, threeStars, twoStars int) Rating {
	switch {
	case total >= threeStars:
		return Rating{Stars: 3, Message: "¡Excelente!"}
	case total >= twoStars:
		return Rating{Stars: 2, Message: "¡Muy bien!"}
	default:
		return Rating{Stars: 1, Message: "Sigue practicando"}
	}
}

// Outcome is the result of one player input.
type Outcome struct {
	Correct  bool
	Accepted bool
	Message  string
}

// Session runs walk → position → distance → result. A correct answer
// marks the challenge solved; the caller then invokes Advance, usually
// after a short delay.
type Session struct {
	cfg          SessionConfig
	rng          *rand.Rand
	gen          *QuestionGenerator
	stage        Stage
	challenge    int
	total        int
	stageCorrect [3]int
	solved       bool

	walk     *Walk
	question Question
	paths    PathChallenge
}

// NewSession starts a session at the walk stage.
func NewSession(cfg SessionConfig, rng *rand.Rand) (*Session, error) {
	s := &Session{
		cfg: cfg,
		rng: rng,
		gen: NewQuestionGenerator(rng, cfg.Placement),
	}
	walk, err := NewWalk(cfg.GridSize, cfg.MinTargetDistance, rng)
	if err != nil {
		return nil, err
	}
	s.walk = walk

	// Fail early on an area the generator cannot use.
	if _, err := NewQuestionGenerator(rand.New(rand.NewSource(1)), cfg.Placement).Generate(cfg.AreaWidth, cfg.AreaHeight); err != nil {
		return nil, fmt.Errorf("orientation: session area: %w", err)
	}
	return s, nil
}

// Stage returns the current stage.
func (s *Session) Stage() Stage { return s.stage }

// Challenge returns the 0-based challenge index within the stage.
func (s *Session) Challenge() int { return s.challenge }

// Total returns the number of correct answers so far.
func (s *Session) Total() int { return s.total }

// MaxTotal returns the highest reachable total.
func (s *Session) MaxTotal() int {
	return 1 + s.cfg.PositionChallenges + s.cfg.DistanceChallenges
}

// StageCorrect returns the correct answers in stage st.
func (s *Session) StageCorrect(st Stage) int {
	if st < StageWalk || st > StageDistance {
		return 0
	}
	return s.stageCorrect[st]
}

// Solved reports whether the current challenge waits for Advance.
func (s *Session) Solved() bool { return s.solved }

// Done reports whether the result stage was reached.
func (s *Session) Done() bool { return s.stage == StageResult }

// Walk returns the walk board.
func (s *Session) Walk() *Walk { return s.walk }

// Question returns the current position question.
func (s *Session) Question() Question { return s.question }

// Paths returns the current path challenge.
func (s *Session) Paths() PathChallenge { return s.paths }

// ChallengesIn returns the number of challenges in stage st.
func (s *Session) ChallengesIn(st Stage) int {
	switch st {
	case StageWalk:
		return 1
	case StagePosition:
		return s.cfg.PositionChallenges
	case StageDistance:
		return s.cfg.DistanceChallenges
	default:
		return 0
	}
}

// Progress returns "Reto i de n" for question stages and the steps left
// for the walk.
func (s *Session) Progress() string {
	switch s.stage {
	case StageWalk:
		return fmt.Sprintf("Faltan %d paso(s) hasta la casa", s.walk.StepsLeft())
	case StagePosition, StageDistance:
		return fmt.Sprintf("Reto %d de %d", s.challenge+1, s.ChallengesIn(s.stage))
	default:
		return ""
	}
}

// Rating returns the stars for the current total.
func (s *Session) Rating() Rating {
	return RateTotal(s.total, s.cfg.ThreeStars, s.cfg.TwoStars)
}

// Move handles an arrow press during the walk.
func (s *Session) Move(d Dir) (Outcome, error) {
	if s.stage != StageWalk || s.solved {
		return Outcome{}, ErrNotNow
	}
	res := s.walk.AttemptMove(d)
	switch {
	case !res.Accepted:
		return Outcome{Message: MsgOffBoard}, nil
	case res.Arrived:
		s.score()
		return Outcome{Accepted: true, Correct: true, Message: MsgArrived}, nil
	default:
		return Outcome{Accepted: true}, nil
	}
}

// Answer handles a position question answer.
func (s *Session) Answer(a Answer) (Outcome, error) {
	if s.stage != StagePosition || s.solved {
		return Outcome{}, ErrNotNow
	}
	if !s.question.Check(a) {
		return Outcome{Accepted: true, Message: MsgTryAgain}, nil
	}
	s.score()
	return Outcome{Accepted: true, Correct: true, Message: MsgCorrect}, nil
}

// ChoosePath handles a path pick.
func (s *Session) ChoosePath(slot Slot) (Outcome, error) {
	if s.stage != StageDistance || s.solved {
		return Outcome{}, ErrNotNow
	}
	if !s.paths.Check(slot) {
		return Outcome{Accepted: true, Message: MsgTryAgain}, nil
	}
	s.score()
	return Outcome{Accepted: true, Correct: true, Message: MsgCorrect}, nil
}

func (s *Session) score() {
	s.total++
	s.stageCorrect[s.stage]++
	s.solved = true
}

// Advance moves past a solved challenge to the next challenge, the next
// stage, or the result. It returns true when the stage changed.
func (s *Session) Advance() (bool, error) {
	if !s.solved {
		return false, ErrNotNow
	}
	s.solved = false

	s.challenge++
	if s.challenge < s.ChallengesIn(s.stage) {
		return false, s.prepare()
	}

	s.stage++
	s.challenge = 0
	return true, s.prepare()
}

// prepare generates content for the current challenge.
func (s *Session) prepare() error {
	switch s.stage {
	case StagePosition:
		q, err := s.gen.Generate(s.cfg.AreaWidth, s.cfg.AreaHeight)
		if err != nil {
			return err
		}
		s.question = q
	case StageDistance:
		s.paths = NewPathChallenge(s.rng)
	}
	return nil
}
