package core

// Action represents a semantic game action, abstracted from physical key presses.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionConfirm        // Enter
	ActionBack           // B, Escape
	ActionRestart        // R
	ActionQuit           // Q, Ctrl+C
	ActionPause          // P
)

// String returns a human-readable name for the action.
func (a Action) String() string {
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
	default:
		return "Unknown"
	}
}

// InputFrame holds the actions triggered during one simulation tick.
type InputFrame struct {
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

// Direction returns the motion implied by the directional actions in the
// frame. Opposite directions cancel out.
func (f InputFrame) Direction() Vector2 {
	var d Vector2
	if f.Has(ActionUp) {
		d.Add(Up)
	}
	if f.Has(ActionDown) {
		d.Add(Down)
	}
	if f.Has(ActionLeft) {
		d.Add(Left)
	}
	if f.Has(ActionRight) {
		d.Add(Right)
	}
	return d
}

// ParseActions converts a compact move script into input frames, one frame
// per rune: U/D/L/R for directions, P for pause and '.' for an idle tick.
// Unknown runes produce idle frames.
func ParseActions(script string) []InputFrame {
	frames := make([]InputFrame, 0, len(script))
	for _, r := range script {
		f := NewInputFrame()
		switch r {
		case 'U', 'u':
			f.Set(ActionUp)
		case 'D', 'd':
			f.Set(ActionDown)
		case 'L', 'l':
			f.Set(ActionLeft)
		case 'R', 'r':
			f.Set(ActionRight)
		case 'P', 'p':
			f.Set(ActionPause)
		}
		frames = append(frames, f)
	}
	return frames
}
