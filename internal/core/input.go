package core

// Action represents a semantic game action, abstracted from physical key presses.
// Games work with these intents rather than raw keys.
type Action int

const (
	ActionNone    Action = iota
	ActionThrust         // Up, W - accelerate along the heading
	ActionLeft           // Left, A - rotate counter-clockwise
	ActionRight          // Right, D - rotate clockwise
	ActionFire           // Space, X, Down - shoot
	ActionSlow           // Z - bullet time
	ActionUp             // menu cursor up
	ActionDown           // menu cursor down
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // Escape - back to the menu
	ActionRestart        // R - start a new game
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
)

var actionNames = map[Action]string{
	ActionNone:    "None",
	ActionThrust:  "Thrust",
	ActionLeft:    "Left",
	ActionRight:   "Right",
	ActionFire:    "Fire",
	ActionSlow:    "Slow",
	ActionUp:      "Up",
	ActionDown:    "Down",
	ActionConfirm: "Confirm",
	ActionBack:    "Back",
	ActionRestart: "Restart",
	ActionQuit:    "Quit",
	ActionPause:   "Pause",
}

// String returns a human-readable name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "Unknown"
}

// ControlActions are the actions that are held down rather than tapped.
var ControlActions = []Action{ActionThrust, ActionLeft, ActionRight, ActionFire, ActionSlow}

// InputFrame is the player input for one simulation tick.
//
// Actions holds one-shot presses seen this frame. Held holds the actions
// whose keys are currently down; games diff it against the previous frame
// to find presses and releases.
type InputFrame struct {
	Actions map[Action]bool
	Held    map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
		Held:    make(map[Action]bool),
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
	return f.Actions[a]
}

// Hold marks a control action as down or up.
func (f *InputFrame) Hold(a Action, down bool) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	if down {
		f.Held[a] = true
	} else {
		delete(f.Held, a)
	}
}

// IsHeld reports whether the key for a is down.
func (f InputFrame) IsHeld(a Action) bool {
	return f.Held[a]
}

// Clear resets the one-shot actions for the next frame. Held keys stay.
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
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	return clone
}
