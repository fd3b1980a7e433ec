package core

import "fmt"

// EventKind identifies what happened during a step.
type EventKind int

const (
	// EventLevelChecked is emitted when a puzzle level is scored.
	EventLevelChecked EventKind = iota
	// EventStageCompleted is emitted when a stage of challenges is finished.
	EventStageCompleted
	// EventRunFinished is emitted once when a run reaches its final screen.
	EventRunFinished
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventLevelChecked:
		return "level_checked"
	case EventStageCompleted:
		return "stage_completed"
	case EventRunFinished:
		return "run_finished"
	default:
		return "unknown"
	}
}

// Event is a result worth recording, reported by a game through StepResult.
// Key identifies the result within a run: a later event with the same Key
// replaces the earlier one.
type Event struct {
	Kind   EventKind
	Key    string // e.g. "level-3", "stage-position"
	Label  string // display label, e.g. "Nivel 3: Serpiente"
	Score  int    // percentage or correct count
	Detail string // free-form summary line
}

// LevelKey builds the event key for a 0-based level index.
func LevelKey(index int) string {
	return fmt.Sprintf("level-%d", index+1)
}
