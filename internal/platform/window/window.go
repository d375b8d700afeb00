// Package window runs Block Kuzushi in a native window with Ebitengine.
package window

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/vovakirdan/kuzushi/internal/core"
	"github.com/vovakirdan/kuzushi/internal/games/kuzushi"
	"github.com/vovakirdan/kuzushi/internal/platform/session"
)

// Debug font cell size in pixels.
const (
	glyphW = 6
	glyphH = 16
)

// maxCachedLabels bounds the rendered text cache.
const maxCachedLabels = 256

var background = color.RGBA{A: 255}

// Game adapts a session to the ebiten.Game interface.
type Game struct {
	session *session.Session
	keys    *KeyMapper
	input   core.InputFrame
	dt      float64
	worldW  int
	worldH  int
	labels  map[string]*ebiten.Image
}

// NewGame creates a window game that advances sess tickRate times per second.
func NewGame(sess *session.Session, tickRate int) *Game {
	if tickRate <= 0 {
		tickRate = 60
	}
	screen := sess.Game().Config().Screen
	return &Game{
		session: sess,
		keys:    NewKeyMapper(nil),
		input:   core.NewInputFrame(),
		dt:      1 / float64(tickRate),
		worldW:  int(screen.Width),
		worldH:  int(screen.Height),
		labels:  make(map[string]*ebiten.Image),
	}
}

// ebitenKeys reads the live keyboard.
type ebitenKeys struct {
	buf []ebiten.Key
}

func (k *ebitenKeys) JustPressed() []ebiten.Key {
	k.buf = inpututil.AppendJustPressedKeys(k.buf[:0])
	return k.buf
}

func (k *ebitenKeys) IsPressed(key ebiten.Key) bool {
	return ebiten.IsKeyPressed(key)
}

var liveKeys = &ebitenKeys{}

// Update advances the session by one frame.
func (g *Game) Update() error {
	g.keys.Fill(liveKeys, &g.input)
	if ebiten.IsWindowBeingClosed() {
		g.input.Press(core.ActionQuit)
	}
	return g.step()
}

// step advances the session with the pending input and reports termination on quit.
func (g *Game) step() error {
	g.input.DT = g.dt
	f := g.session.Advance(g.input)
	g.input.Clear()
	if f.Quit {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the latest frame.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	for _, c := range g.session.Frame().Commands {
		g.drawCmd(screen, c)
	}
}

// Layout keeps the logical screen at world size; ebiten scales it to the window.
func (g *Game) Layout(_, _ int) (int, int) {
	return g.worldW, g.worldH
}

func (g *Game) drawCmd(screen *ebiten.Image, c kuzushi.DrawCmd) {
	clr := c.Color.RGBA()
	switch c.Kind {
	case kuzushi.DrawRect:
		vector.DrawFilledRect(screen, float32(c.X), float32(c.Y), float32(c.W), float32(c.H), clr, false)
	case kuzushi.DrawCircle:
		vector.DrawFilledCircle(screen, float32(c.X), float32(c.Y), float32(c.R), clr, true)
	case kuzushi.DrawText:
		g.drawText(screen, c, clr)
	}
}

// drawText scales the debug font to the command's pixel height.
func (g *Game) drawText(screen *ebiten.Image, c kuzushi.DrawCmd, clr color.RGBA) {
	if c.Text == "" {
		return
	}
	img := g.label(c.Text)

	scale := 1.0
	if c.Size > 0 {
		scale = c.Size / glyphH
	}
	w := float64(img.Bounds().Dx()) * scale

	x := c.X
	if c.Align == kuzushi.AlignCenter {
		x -= w / 2
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, c.Y)
	op.ColorScale.ScaleWithColor(clr)
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(img, op)
}

// label returns a white rendering of text, cached by content.
func (g *Game) label(text string) *ebiten.Image {
	if img, ok := g.labels[text]; ok {
		return img
	}
	if len(g.labels) >= maxCachedLabels {
		for k, img := range g.labels {
			img.Deallocate()
			delete(g.labels, k)
		}
	}
	img := ebiten.NewImage(len([]rune(text))*glyphW, glyphH)
	ebitenutil.DebugPrintAt(img, text, 0, 0)
	g.labels[text] = img
	return img
}

// Run opens a window for sess and blocks until the player quits or closes it.
// The session is closed before Run returns.
func Run(sess *session.Session, cfg core.RuntimeConfig) error {
	tps := cfg.TickRate
	if tps <= 0 {
		tps = 60
	}
	g := NewGame(sess, tps)

	w, h := g.worldW, g.worldH
	if cfg.ScreenW > 0 && cfg.ScreenH > 0 {
		w, h = cfg.ScreenW, cfg.ScreenH
	}
	ebiten.SetWindowTitle("Block Kuzushi")
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(tps)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if err != nil {
		err = fmt.Errorf("window: %w", err)
	}
	if closeErr := sess.Close(); err == nil {
		err = closeErr
	}
	return err
}
