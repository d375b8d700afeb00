package window

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/kuzushi/internal/core"
)

// KeyBinding maps one physical key to game actions.
type KeyBinding struct {
	Key   ebiten.Key
	Press core.Action // Sent on the frame the key goes down
	Hold  core.Action // Sent every frame the key is down
}

// DefaultBindings are the window key bindings.
var DefaultBindings = []KeyBinding{
	{Key: ebiten.KeyEscape, Press: core.ActionQuit},
	{Key: ebiten.KeyQ, Press: core.ActionQuit},
	{Key: ebiten.KeyArrowUp, Press: core.ActionUp},
	{Key: ebiten.KeyW, Press: core.ActionUp},
	{Key: ebiten.KeyArrowDown, Press: core.ActionDown},
	{Key: ebiten.KeyS, Press: core.ActionDown},
	{Key: ebiten.KeyArrowLeft, Press: core.ActionLeft, Hold: core.ActionMoveLeft},
	{Key: ebiten.KeyA, Press: core.ActionA, Hold: core.ActionMoveLeft},
	{Key: ebiten.KeyArrowRight, Press: core.ActionRight, Hold: core.ActionMoveRight},
	{Key: ebiten.KeyD, Press: core.ActionOther, Hold: core.ActionMoveRight},
	{Key: ebiten.KeySpace, Press: core.ActionLaunch},
	{Key: ebiten.KeyEnter, Press: core.ActionConfirm},
	{Key: ebiten.KeyNumpadEnter, Press: core.ActionConfirm},
	{Key: ebiten.KeyY, Press: core.ActionYes},
	{Key: ebiten.KeyN, Press: core.ActionNo},
	{Key: ebiten.KeyB, Press: core.ActionB},
	{Key: ebiten.KeyP, Press: core.ActionPause},
}

// KeyState is the keyboard as seen by one Update call.
type KeyState interface {
	// JustPressed returns the keys that went down this tick.
	JustPressed() []ebiten.Key
	// IsPressed reports whether k is currently down.
	IsPressed(k ebiten.Key) bool
}

// KeyMapper translates keyboard state to input frames.
type KeyMapper struct {
	bindings []KeyBinding
	byKey    map[ebiten.Key]KeyBinding
}

// NewKeyMapper creates a mapper for bindings. Nil selects DefaultBindings.
func NewKeyMapper(bindings []KeyBinding) *KeyMapper {
	if bindings == nil {
		bindings = DefaultBindings
	}
	byKey := make(map[ebiten.Key]KeyBinding, len(bindings))
	for _, b := range bindings {
		byKey[b.Key] = b
	}
	return &KeyMapper{bindings: bindings, byKey: byKey}
}

// Fill records presses and held keys from ks into frame.
// Keys without a binding are pressed as ActionOther so they break the cheat sequence.
// Returns true if a quit key went down.
func (km *KeyMapper) Fill(ks KeyState, frame *core.InputFrame) bool {
	quit := false
	for _, k := range ks.JustPressed() {
		b, ok := km.byKey[k]
		if !ok {
			frame.Press(core.ActionOther)
			continue
		}
		frame.Press(b.Press)
		if b.Press == core.ActionQuit {
			quit = true
		}
	}

	for _, b := range km.bindings {
		if b.Hold != core.ActionNone && ks.IsPressed(b.Key) {
			frame.Hold(b.Hold)
		}
	}
	return quit
}
