package core

// Action represents a semantic game action, abstracted from physical key presses.
// Frontends translate their own key events into actions so the game never sees
// raw key codes.
type Action int

const (
	ActionNone      Action = iota
	ActionUp               // Up arrow, W - menu up, cheat sequence
	ActionDown             // Down arrow, S - menu down, cheat sequence
	ActionLeft             // Left arrow - cheat sequence
	ActionRight            // Right arrow - cheat sequence
	ActionMoveLeft         // A, Left arrow held - paddle left
	ActionMoveRight        // D, Right arrow held - paddle right
	ActionConfirm          // Enter - select menu entry
	ActionLaunch           // Space - launch ball, also selects menu entry
	ActionYes              // Y - accept next level
	ActionNo               // N - decline next level
	ActionA                // A - cheat sequence
	ActionB                // B - cheat sequence
	ActionPause            // P - pause/unpause
	ActionQuit             // Q, Esc, Ctrl+C - exit
	ActionOther            // Any other printable key
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
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionConfirm:
		return "Confirm"
	case ActionLaunch:
		return "Launch"
	case ActionYes:
		return "Yes"
	case ActionNo:
		return "No"
	case ActionA:
		return "A"
	case ActionB:
		return "B"
	case ActionPause:
		return "Pause"
	case ActionQuit:
		return "Quit"
	case ActionOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// InputFrame is the input snapshot for one frame.
//
// Presses are edge-triggered and consumed once, in the order they arrived.
// Held is level-triggered: an action stays in it for as long as the key is down.
// DT is the elapsed wall-clock time since the previous frame, in seconds.
type InputFrame struct {
	Presses []Action
	Held    map[Action]bool
	DT      float64
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Held: make(map[Action]bool),
	}
}

// Press records a discrete key press for this frame.
func (f *InputFrame) Press(a Action) {
	if a == ActionNone {
		return
	}
	f.Presses = append(f.Presses, a)
}

// Hold marks an action as held down for this frame.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Pressed returns true if the action was pressed this frame.
func (f InputFrame) Pressed(a Action) bool {
	for _, p := range f.Presses {
		if p == a {
			return true
		}
	}
	return false
}

// IsHeld returns true if the action is held down this frame.
func (f InputFrame) IsHeld(a Action) bool {
	if f.Held == nil {
		return false
	}
	return f.Held[a]
}

// Clear resets presses and held keys for the next frame.
func (f *InputFrame) Clear() {
	f.Presses = f.Presses[:0]
	for k := range f.Held {
		delete(f.Held, k)
	}
	f.DT = 0
}
