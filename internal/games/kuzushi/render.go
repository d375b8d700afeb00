package kuzushi

import (
	"fmt"

	"github.com/vovakirdan/kuzushi/internal/core"
)

// DrawKind selects the primitive of a DrawCmd.
type DrawKind uint8

const (
	DrawRect DrawKind = iota
	DrawCircle
	DrawText
)

// Align is the horizontal anchor of a text command.
type Align uint8

const (
	AlignLeft   Align = iota // X is the left edge
	AlignCenter              // X is the centre
)

// DrawCmd is one world-space drawing instruction.
// Rect uses X, Y, W, H. Circle uses X, Y as centre and R. Text uses X, Y
// (top), Size as pixel height, Text and Align.
type DrawCmd struct {
	Kind  DrawKind   `msgpack:"k"`
	X     float64    `msgpack:"x"`
	Y     float64    `msgpack:"y"`
	W     float64    `msgpack:"w,omitempty"`
	H     float64    `msgpack:"h,omitempty"`
	R     float64    `msgpack:"r,omitempty"`
	Size  float64    `msgpack:"s,omitempty"`
	Text  string     `msgpack:"t,omitempty"`
	Align Align      `msgpack:"a,omitempty"`
	Color core.Color `msgpack:"c"`
}

// RectCmd draws a filled rectangle.
func RectCmd(r core.RectF, c core.Color) DrawCmd {
	return DrawCmd{Kind: DrawRect, X: r.X, Y: r.Y, W: r.W, H: r.H, Color: c}
}

// CircleCmd draws a filled circle.
func CircleCmd(center core.Vec2, radius float64, c core.Color) DrawCmd {
	return DrawCmd{Kind: DrawCircle, X: center.X, Y: center.Y, R: radius, Color: c}
}

// TextCmd draws a line of text.
func TextCmd(x, y, size float64, text string, c core.Color, align Align) DrawCmd {
	return DrawCmd{Kind: DrawText, X: x, Y: y, Size: size, Text: text, Color: c, Align: align}
}

// Text sizes in world pixels.
const (
	titleSize = 100
	menuSize  = 50
	hudSize   = 50
	labelSize = 20
)

// Draw returns the commands for the current phase, back to front.
func (g *Game) Draw() []DrawCmd {
	cmds := make([]DrawCmd, 0, len(g.grid.Blocks)*2+16)

	switch DerivePhase(g.flags) {
	case PhaseNotStarted:
		cmds = g.drawTitle(cmds)
	case PhasePlaying:
		cmds = g.drawPlaying(cmds)
	case PhaseWon:
		cmds = g.drawWon(cmds)
	case PhaseLost:
		cmds = g.drawLost(cmds)
	}
	return cmds
}

func (g *Game) drawTitle(cmds []DrawCmd) []DrawCmd {
	w, h := g.cfg.Screen.Width, g.cfg.Screen.Height

	cmds = append(cmds, TextCmd(w/2, h/3-100, titleSize, "Block Kuzushi", core.ColorWhite, AlignCenter))
	cmds = g.drawMenu(cmds, &g.titleMenu, h/2, core.ColorGreen)
	cmds = append(cmds, TextCmd(w/2, h-100, labelSize, fmt.Sprintf("Highscore: %d", g.tracker.High), core.ColorGray, AlignCenter))
	return cmds
}

func (g *Game) drawPlaying(cmds []DrawCmd) []DrawCmd {
	w, h := g.cfg.Screen.Width, g.cfg.Screen.Height

	// HUD
	cmds = append(cmds,
		TextCmd(w/2, h-100, hudSize, fmt.Sprintf("%d", g.tracker.Score), core.ColorWhite, AlignCenter),
		TextCmd(w-400, h-100, hudSize, fmt.Sprintf("Highscore: %d", g.tracker.High), core.ColorWhite, AlignLeft),
		TextCmd(100, h-100, hudSize, fmt.Sprintf("Lives: %d", g.tracker.Lives), core.ColorWhite, AlignLeft),
	)

	for _, blk := range g.grid.Blocks {
		if !blk.Active {
			continue
		}
		center := blk.Rect.Center()
		cmds = append(cmds,
			RectCmd(blk.Rect, blk.Color),
			TextCmd(center.X, center.Y-labelSize/2, labelSize, fmt.Sprintf("%d", blk.Health), core.ColorWhite, AlignCenter),
		)
	}

	cmds = append(cmds, RectCmd(g.paddle.Rect(), core.ColorWhite))

	for i, b := range g.balls.Balls {
		if !b.Active {
			continue
		}
		c := core.ColorYellow
		if i == MainBall {
			c = core.ColorWhite
		}
		cmds = append(cmds, CircleCmd(b.Pos, g.balls.Radius, c))
	}

	if g.paused {
		cmds = append(cmds,
			TextCmd(w/2, h/2-50, titleSize, "PAUSED", core.ColorWhite, AlignCenter),
			TextCmd(w/2, h/2+60, labelSize*2, "Press P to resume", core.ColorGray, AlignCenter),
		)
	}
	return cmds
}

func (g *Game) drawWon(cmds []DrawCmd) []DrawCmd {
	w, h := g.cfg.Screen.Width, g.cfg.Screen.Height
	return append(cmds,
		TextCmd(w/2, h/2, menuSize, "YOU WIN!", core.ColorGreen, AlignCenter),
		TextCmd(w/2, h/2+60, menuSize, "GENERATE NEXT LEVEL (Y/N)", core.ColorWhite, AlignCenter),
	)
}

func (g *Game) drawLost(cmds []DrawCmd) []DrawCmd {
	w, h := g.cfg.Screen.Width, g.cfg.Screen.Height
	cmds = append(cmds, TextCmd(w/2, h/2-100, menuSize, "GAME OVER!", core.ColorRed, AlignCenter))
	return g.drawMenu(cmds, &g.lostMenu, h/2, core.ColorYellow)
}

// drawMenu lists options from y downward, highlighting the cursor.
func (g *Game) drawMenu(cmds []DrawCmd, m *Menu, y float64, highlight core.Color) []DrawCmd {
	for i, opt := range m.Options {
		c := core.ColorGray
		if i == m.Cursor {
			c = highlight
		}
		cmds = append(cmds, TextCmd(g.cfg.Screen.Width/2, y+float64(i)*70, menuSize, opt, c, AlignCenter))
	}
	return cmds
}
