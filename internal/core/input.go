package core

// Action is a semantic input, decoupled from physical keys.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up
	ActionPause          // Escape, P
	ActionQuit           // Q, Ctrl+C
	ActionHistory        // H
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	case ActionHistory:
		return "History"
	default:
		return "Unknown"
	}
}

// InputFrame is the input observed during one simulation tick.
// Key presses are edges: an action is set for the tick in which the key was pressed.
type InputFrame struct {
	Actions map[Action]bool
	anyKey  bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{Actions: make(map[Action]bool)}
}

// Set marks an action as pressed. Any action also counts as a key press.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
	f.anyKey = true
}

// Press records a key press that maps to no action.
func (f *InputFrame) Press() {
	f.anyKey = true
}

// Has reports whether a was pressed this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Actions[a]
}

// AnyKey reports whether any key was pressed this frame.
func (f InputFrame) AnyKey() bool {
	return f.anyKey
}

// Clear resets the frame for reuse.
func (f *InputFrame) Clear() {
	clear(f.Actions)
	f.anyKey = false
}
