package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-asteroids/internal/core"
)

// GameKeyMap defines the in-game key bindings.
type GameKeyMap struct {
	Thrust  key.Binding
	Left    key.Binding
	Right   key.Binding
	Fire    key.Binding
	Slow    key.Binding
	Pause   key.Binding
	Menu    key.Binding
	Restart key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Thrust, k.Left, k.Right, k.Fire, k.Pause, k.Menu}
}

// FullHelp returns key bindings for the full help view.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Thrust, k.Left, k.Right, k.Fire, k.Slow},
		{k.Pause, k.Menu, k.Restart, k.Quit},
	}
}

// DefaultGameKeyMap returns default key bindings.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Thrust: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("up/w", "thrust"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("left/a", "turn left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("right/d", "turn right"),
		),
		Fire: key.NewBinding(
			key.WithKeys(" ", "space", "down", "x"),
			key.WithHelp("space/down/x", "fire"),
		),
		Slow: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "slow time"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Menu: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "menu"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart after game over"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct {
	keys GameKeyMap
}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{keys: DefaultGameKeyMap()}
}

// Keys returns the bindings in use.
func (km *KeyMapper) Keys() GameKeyMap {
	return km.keys
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch {
	case key.Matches(msg, km.keys.Quit):
		return core.ActionQuit, true
	case key.Matches(msg, km.keys.Thrust):
		return core.ActionThrust, false
	case key.Matches(msg, km.keys.Left):
		return core.ActionLeft, false
	case key.Matches(msg, km.keys.Right):
		return core.ActionRight, false
	case key.Matches(msg, km.keys.Fire):
		return core.ActionFire, false
	case key.Matches(msg, km.keys.Slow):
		return core.ActionSlow, false
	case key.Matches(msg, km.keys.Pause):
		return core.ActionPause, false
	case key.Matches(msg, km.keys.Menu):
		return core.ActionBack, false
	case key.Matches(msg, km.keys.Restart):
		return core.ActionRestart, false
	}

	return core.ActionNone, false
}

// IsControl reports whether a is held rather than tapped.
func IsControl(a core.Action) bool {
	for _, c := range core.ControlActions {
		if c == a {
			return true
		}
	}
	return false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ", "space":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}

	return MenuActionNone
}

// Hold windows. Terminals only report key presses; a held key shows up as
// one press, a pause of roughly half a second, then a stream of repeats.
const (
	DefaultInitialHold = 550 * time.Millisecond
	DefaultRepeatHold  = 120 * time.Millisecond
)

// HoldTracker turns key presses into held control state. A control stays
// down until its hold window passes without another press.
type HoldTracker struct {
	initial time.Duration
	repeat  time.Duration
	until   map[core.Action]time.Time
}

// NewHoldTracker creates a tracker with the given hold windows.
// Zero values select the defaults.
func NewHoldTracker(initial, repeat time.Duration) *HoldTracker {
	if initial <= 0 {
		initial = DefaultInitialHold
	}
	if repeat <= 0 {
		repeat = DefaultRepeatHold
	}
	return &HoldTracker{
		initial: initial,
		repeat:  repeat,
		until:   make(map[core.Action]time.Time),
	}
}

// Press records a press of a at now. The first press gets the initial
// window so the key survives until auto-repeat starts.
func (h *HoldTracker) Press(a core.Action, now time.Time) {
	window := h.initial
	if h.IsHeld(a, now) {
		window = h.repeat
	}
	deadline := now.Add(window)
	if cur, ok := h.until[a]; ok && cur.After(deadline) {
		return
	}
	h.until[a] = deadline
}

// IsHeld reports whether a is down at now.
func (h *HoldTracker) IsHeld(a core.Action, now time.Time) bool {
	deadline, ok := h.until[a]
	return ok && now.Before(deadline)
}

// Release drops a immediately.
func (h *HoldTracker) Release(a core.Action) {
	delete(h.until, a)
}

// ReleaseAll drops every held control, for example when the terminal
// loses focus.
func (h *HoldTracker) ReleaseAll() {
	for a := range h.until {
		delete(h.until, a)
	}
}

// Apply writes the held state at now into frame and forgets expired keys.
func (h *HoldTracker) Apply(frame *core.InputFrame, now time.Time) {
	for _, a := range core.ControlActions {
		held := h.IsHeld(a, now)
		if !held {
			delete(h.until, a)
		}
		frame.Hold(a, held)
	}
}
