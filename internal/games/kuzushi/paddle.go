package kuzushi

import (
	"github.com/vovakirdan/kuzushi/internal/config"
	"github.com/vovakirdan/kuzushi/internal/core"
)

// Paddle is the player's horizontally movable bar.
type Paddle struct {
	X, Y  float64 // Top-left corner
	W, H  float64
	Speed float64

	screenW float64
}

// NewPaddle creates a paddle at its start position.
func NewPaddle(cfg config.PaddleConfig, screen config.ScreenConfig) *Paddle {
	p := &Paddle{
		W:       cfg.Width,
		H:       cfg.Height,
		Speed:   cfg.Speed,
		Y:       screen.Height - cfg.BottomOffset,
		screenW: screen.Width,
	}
	p.Reset()
	return p
}

// Reset puts the paddle's left edge at the horizontal center of the screen.
func (p *Paddle) Reset() {
	p.X = core.ClampF(p.screenW/2, 0, p.screenW-p.W)
}

// Move displaces the paddle by direction*Speed*dt and keeps it fully on screen.
// direction is -1 (left), 0 or 1 (right).
func (p *Paddle) Move(direction int, dt float64) {
	p.X += float64(direction) * p.Speed * dt
	p.X = core.ClampF(p.X, 0, p.screenW-p.W)
}

// Rect returns the paddle's bounding rectangle.
func (p *Paddle) Rect() core.RectF {
	return core.RectF{X: p.X, Y: p.Y, W: p.W, H: p.H}
}
