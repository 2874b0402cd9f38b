package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - move up / next initial letter
	ActionDown           // S, Down arrow - move down / previous initial letter
	ActionLeft           // A, Left arrow - move left / previous initials slot
	ActionRight          // D, Right arrow - move right / next initials slot
	ActionLaunch         // Space - serve or launch the ball
	ActionConfirm        // Enter - confirm initials, select in menu
	ActionClose          // Esc - close the title (also the overlay safety gesture)
	ActionRestart        // R key - restart after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause
	ActionMute           // M - toggle sound
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
	case ActionLaunch:
		return "Launch"
	case ActionConfirm:
		return "Confirm"
	case ActionClose:
		return "Close"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	case ActionMute:
		return "Mute"
	default:
		return "Unknown"
	}
}

// Pointer is a continuous pointer position normalized to the screen:
// X and Y are in [0, 1]. Active is false when no pointer event arrived yet.
type Pointer struct {
	X, Y   float64
	Active bool
}

// InputFrame represents the input state for the player during one frame.
// Actions are edge-triggered: each press is seen by exactly one tick.
// The pointer is level-triggered and persists until replaced.
type InputFrame struct {
	Actions map[Action]bool
	Pointer Pointer
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

// Any returns true if any of the given actions was triggered.
func (f InputFrame) Any(actions ...Action) bool {
	for _, a := range actions {
		if f.Has(a) {
			return true
		}
	}
	return false
}

// Axis folds two opposing buttons into -1, 0 or +1.
func (f InputFrame) Axis(neg, pos Action) float64 {
	v := 0.0
	if f.Has(neg) {
		v--
	}
	if f.Has(pos) {
		v++
	}
	return v
}

// MovePointer records a pointer position in screen cells.
func (f *InputFrame) MovePointer(x, y, screenW, screenH int) {
	if screenW <= 1 || screenH <= 1 {
		return
	}
	f.Pointer = Pointer{
		X:      ClampF(float64(x)/float64(screenW-1), 0, 1),
		Y:      ClampF(float64(y)/float64(screenH-1), 0, 1),
		Active: true,
	}
}

// Clear resets all buttons for the next frame. The pointer is kept.
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
	clone.Pointer = f.Pointer
	return clone
}

// TouchAction maps a tap at (x, y) on a w×h surface to a discrete action.
// The surface is split into a 3×3 grid: left and right columns steer
// horizontally, the top and bottom cells of the middle column steer
// vertically and the center cell launches.
func TouchAction(x, y, w, h int) Action {
	if w <= 0 || h <= 0 || x < 0 || y < 0 || x >= w || y >= h {
		return ActionNone
	}
	col := x * 3 / w
	row := y * 3 / h
	switch {
	case col == 0:
		return ActionLeft
	case col == 2:
		return ActionRight
	case row == 0:
		return ActionUp
	case row == 2:
		return ActionDown
	default:
		return ActionLaunch
	}
}
