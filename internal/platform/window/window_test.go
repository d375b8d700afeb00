package window

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/vovakirdan/kuzushi/internal/config"
	"github.com/vovakirdan/kuzushi/internal/core"
	"github.com/vovakirdan/kuzushi/internal/games/kuzushi"
	"github.com/vovakirdan/kuzushi/internal/platform/session"
)

type fakeKeys struct {
	just []ebiten.Key
	down map[ebiten.Key]bool
}

func (f fakeKeys) JustPressed() []ebiten.Key    { return f.just }
func (f fakeKeys) IsPressed(k ebiten.Key) bool { return f.down[k] }

func TestKeyMapperFill(t *testing.T) {
	tests := []struct {
		name    string
		keys    fakeKeys
		presses []core.Action
		held    []core.Action
		quit    bool
	}{
		{
			name:    "escape quits",
			keys:    fakeKeys{just: []ebiten.Key{ebiten.KeyEscape}},
			presses: []core.Action{core.ActionQuit},
			quit:    true,
		},
		{
			name:    "left arrow presses and holds",
			keys:    fakeKeys{just: []ebiten.Key{ebiten.KeyArrowLeft}, down: map[ebiten.Key]bool{ebiten.KeyArrowLeft: true}},
			presses: []core.Action{core.ActionLeft},
			held:    []core.Action{core.ActionMoveLeft},
		},
		{
			name: "held without a new press",
			keys: fakeKeys{down: map[ebiten.Key]bool{ebiten.KeyD: true}},
			held: []core.Action{core.ActionMoveRight},
		},
		{
			name:    "unbound key breaks sequences",
			keys:    fakeKeys{just: []ebiten.Key{ebiten.KeyZ}},
			presses: []core.Action{core.ActionOther},
		},
		{
			name:    "menu keys in arrival order",
			keys:    fakeKeys{just: []ebiten.Key{ebiten.KeyW, ebiten.KeyEnter}},
			presses: []core.Action{core.ActionUp, core.ActionConfirm},
		},
	}

	km := NewKeyMapper(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := core.NewInputFrame()
			quit := km.Fill(tt.keys, &frame)

			if quit != tt.quit {
				t.Errorf("quit = %v, want %v", quit, tt.quit)
			}
			if len(frame.Presses) != len(tt.presses) {
				t.Fatalf("presses = %v, want %v", frame.Presses, tt.presses)
			}
			for i, a := range tt.presses {
				if frame.Presses[i] != a {
					t.Errorf("press %d = %v, want %v", i, frame.Presses[i], a)
				}
			}
			if len(frame.Held) != len(tt.held) {
				t.Errorf("held = %v, want %v", frame.Held, tt.held)
			}
			for _, a := range tt.held {
				if !frame.IsHeld(a) {
					t.Errorf("%v not held", a)
				}
			}
		})
	}
}

func TestGameStep(t *testing.T) {
	sess := session.New(session.Options{Config: config.DefaultKuzushiConfig(), Seed: 3})
	g := NewGame(sess, 60)

	if w, h := g.Layout(640, 480); w != 1800 || h != 900 {
		t.Errorf("Layout = %dx%d, want 1800x900", w, h)
	}

	g.input.Press(core.ActionConfirm)
	if err := g.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if sess.Frame().Phase != kuzushi.PhasePlaying.String() {
		t.Errorf("phase = %q, want playing", sess.Frame().Phase)
	}
	if len(g.input.Presses) != 0 {
		t.Error("input not cleared after step")
	}

	g.input.Press(core.ActionQuit)
	if err := g.step(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("step after quit = %v, want Termination", err)
	}
}
