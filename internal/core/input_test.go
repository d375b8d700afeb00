package core

import "testing"

func TestInputFramePresses(t *testing.T) {
	in := NewInputFrame()
	in.Press(ActionUp)
	in.Press(ActionNone)
	in.Press(ActionUp)
	in.Press(ActionB)

	if len(in.Presses) != 3 {
		t.Fatalf("expected 3 presses, got %d", len(in.Presses))
	}
	if !in.Pressed(ActionUp) || !in.Pressed(ActionB) {
		t.Error("expected Up and B to be pressed")
	}
	if in.Pressed(ActionA) {
		t.Error("A should not be pressed")
	}
	if in.Presses[2] != ActionB {
		t.Errorf("presses out of order: %v", in.Presses)
	}
}

func TestInputFrameHeld(t *testing.T) {
	var in InputFrame
	if in.IsHeld(ActionMoveLeft) {
		t.Error("zero frame should hold nothing")
	}

	in.Hold(ActionMoveLeft)
	if !in.IsHeld(ActionMoveLeft) || in.IsHeld(ActionMoveRight) {
		t.Errorf("held = %v", in.Held)
	}
}

func TestInputFrameClear(t *testing.T) {
	in := NewInputFrame()
	in.Press(ActionLaunch)
	in.Hold(ActionMoveRight)
	in.DT = 0.016

	in.Clear()

	if len(in.Presses) != 0 || in.IsHeld(ActionMoveRight) || in.DT != 0 {
		t.Errorf("Clear left state behind: %+v", in)
	}
	if in.Pressed(ActionLaunch) {
		t.Error("press survived Clear")
	}
}

func TestActionString(t *testing.T) {
	tests := []struct {
		action Action
		want   string
	}{
		{ActionNone, "None"},
		{ActionMoveLeft, "MoveLeft"},
		{ActionQuit, "Quit"},
		{Action(99), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.action.String(); got != tt.want {
			t.Errorf("Action(%d).String() = %q, want %q", tt.action, got, tt.want)
		}
	}
}
