package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/kuzushi/internal/core"
)

// KeyBinding is what one key event means to the game: an edge-triggered
// press and, for movement keys, a level-triggered hold.
type KeyBinding struct {
	Press core.Action
	Hold  core.Action
}

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a binding.
// Unbound printable keys map to ActionOther so they still break the cheat sequence.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) KeyBinding {
	switch msg.String() {
	case "ctrl+c", "q", "esc":
		return KeyBinding{Press: core.ActionQuit}
	case "w", "up":
		return KeyBinding{Press: core.ActionUp}
	case "s", "down":
		return KeyBinding{Press: core.ActionDown}
	case "left":
		return KeyBinding{Press: core.ActionLeft, Hold: core.ActionMoveLeft}
	case "right":
		return KeyBinding{Press: core.ActionRight, Hold: core.ActionMoveRight}
	case "a":
		return KeyBinding{Press: core.ActionA, Hold: core.ActionMoveLeft}
	case "d":
		return KeyBinding{Press: core.ActionOther, Hold: core.ActionMoveRight}
	case " ":
		return KeyBinding{Press: core.ActionLaunch}
	case "enter":
		return KeyBinding{Press: core.ActionConfirm}
	case "y":
		return KeyBinding{Press: core.ActionYes}
	case "n":
		return KeyBinding{Press: core.ActionNo}
	case "b":
		return KeyBinding{Press: core.ActionB}
	case "p":
		return KeyBinding{Press: core.ActionPause}
	}

	if msg.Type == tea.KeyRunes {
		return KeyBinding{Press: core.ActionOther}
	}
	return KeyBinding{}
}

// MapKeyToFrame records a key message in frame and in held.
// Returns true if the key was a quit request.
func (km *KeyMapper) MapKeyToFrame(msg tea.KeyMsg, frame *core.InputFrame, held *HeldKeys, now time.Time) bool {
	b := km.MapKey(msg)
	frame.Press(b.Press)
	if b.Hold != core.ActionNone && held != nil {
		held.Touch(b.Hold, now)
	}
	return b.Press == core.ActionQuit
}

// DefaultHoldWindow is how long a movement key counts as held after its
// last key event. Terminals report no key releases, only auto-repeat.
const DefaultHoldWindow = 200 * time.Millisecond

// HeldKeys emulates held movement keys from repeated key events.
type HeldKeys struct {
	window time.Duration
	seen   map[core.Action]time.Time
}

// NewHeldKeys creates a tracker that keeps a key held for window after each event.
func NewHeldKeys(window time.Duration) *HeldKeys {
	if window <= 0 {
		window = DefaultHoldWindow
	}
	return &HeldKeys{window: window, seen: make(map[core.Action]time.Time)}
}

// Touch marks a as held at now. Pressing one direction releases the other.
func (h *HeldKeys) Touch(a core.Action, now time.Time) {
	switch a {
	case core.ActionMoveLeft:
		delete(h.seen, core.ActionMoveRight)
	case core.ActionMoveRight:
		delete(h.seen, core.ActionMoveLeft)
	}
	h.seen[a] = now
}

// Apply adds every action still inside the hold window to frame and forgets the rest.
func (h *HeldKeys) Apply(frame *core.InputFrame, now time.Time) {
	for a, t := range h.seen {
		if now.Sub(t) > h.window {
			delete(h.seen, a)
			continue
		}
		frame.Hold(a)
	}
}

// Reset releases every key.
func (h *HeldKeys) Reset() {
	clear(h.seen)
}
