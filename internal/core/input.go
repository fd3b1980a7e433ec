package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move cursor/avatar up
	ActionDown           // S, Down arrow - move cursor/avatar down
	ActionLeft           // A, Left arrow - move cursor/avatar left
	ActionRight          // D, Right arrow - move cursor/avatar right
	ActionConfirm        // Enter, Space - paint / confirm
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game
	ActionPause          // P - pause/unpause game
	ActionCheck          // C - score the current drawing
	ActionClear          // X - clear the current drawing
	ActionErase          // 0, E - select the eraser
	ActionPrevLevel      // [ - previous level
	ActionNextLevel      // ] - next level
	ActionChoice1        // 1..9 - numbered choice (palette color, answer, path)
	ActionChoice2
	ActionChoice3
	ActionChoice4
	ActionChoice5
	ActionChoice6
	ActionChoice7
	ActionChoice8
	ActionChoice9
)

// ChoiceAction returns the action for the numbered choice n (1-9).
// Returns ActionNone when n is out of range.
func ChoiceAction(n int) Action {
	if n < 1 || n > 9 {
		return ActionNone
	}
	return ActionChoice1 + Action(n-1)
}

// Choice returns the 1-based choice number of a choice action.
func (a Action) Choice() (int, bool) {
	if a < ActionChoice1 || a > ActionChoice9 {
		return 0, false
	}
	return int(a-ActionChoice1) + 1, true
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if n, ok := a.Choice(); ok {
		return "Choice" + string(rune('0'+n))
	}
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionCheck:
		return "Check"
	case ActionClear:
		return "Clear"
	case ActionErase:
		return "Erase"
	case ActionPrevLevel:
		return "PrevLevel"
	case ActionNextLevel:
		return "NextLevel"
	default:
		return "Unknown"
	}
}

// InputFrame represents the input state for a single player during one simulation tick.
// It contains all actions that were triggered during this frame.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	// Using a map allows checking multiple actions without order dependency.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// FirstChoice returns the lowest numbered choice set in this frame.
func (f InputFrame) FirstChoice() (int, bool) {
	for n := 1; n <= 9; n++ {
		if f.Has(ChoiceAction(n)) {
			return n, true
		}
	}
	return 0, false
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
