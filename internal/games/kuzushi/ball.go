package kuzushi

import (
	"math"
	"math/rand/v2"

	"github.com/vovakirdan/kuzushi/internal/config"
	"github.com/vovakirdan/kuzushi/internal/core"
)

// MainBall is the index of the player-launched ball in BallSet.Balls.
const MainBall = 0

// Ball is one simulated circle. Radius and speed are shared through BallSet.
type Ball struct {
	Pos    core.Vec2
	Vel    core.Vec2
	Active bool
}

// BallSet holds the main ball at index 0 followed by the bonus balls.
// Every ball is updated by the same code path.
type BallSet struct {
	Balls  []Ball
	Radius float64
	Speed  float64 // Base speed, px/s

	bonusSpawned bool
}

// NewBallSet creates an inactive main ball plus bonusCount inactive bonus balls.
func NewBallSet(cfg config.BallConfig, bonusCount int) *BallSet {
	return &BallSet{
		Balls:  make([]Ball, 1+bonusCount),
		Radius: cfg.Radius,
		Speed:  cfg.Speed,
	}
}

// Main returns the main ball.
func (s *BallSet) Main() *Ball {
	return &s.Balls[MainBall]
}

// Launch activates b at the paddle position plus offset, moving up at base
// speed with a random horizontal sign at half speed.
func (s *BallSet) Launch(b *Ball, p *Paddle, offset core.Vec2, rng *rand.Rand) {
	b.Active = true
	b.Pos = core.Vec2{X: p.X, Y: p.Y}.Add(offset)
	b.Vel.Y = -s.Speed
	if rng.IntN(2) == 0 {
		b.Vel.X = -s.Speed / 2
	} else {
		b.Vel.X = s.Speed / 2
	}
}

// LaunchAngle activates b at pos with base speed along angle degrees.
func (s *BallSet) LaunchAngle(b *Ball, pos core.Vec2, degrees int) {
	rad := float64(degrees) * math.Pi / 180
	b.Active = true
	b.Pos = pos
	b.Vel = core.Vec2{X: math.Cos(rad) * s.Speed, Y: math.Sin(rad) * s.Speed}
}

// SpawnBonus activates every bonus ball at the main ball's position the first
// time score reaches threshold in a run. Returns true if balls were spawned.
func (s *BallSet) SpawnBonus(score, threshold int, rng *rand.Rand) bool {
	if s.bonusSpawned || score < threshold {
		return false
	}
	origin := s.Main().Pos
	for i := MainBall + 1; i < len(s.Balls); i++ {
		s.LaunchAngle(&s.Balls[i], origin, rng.IntN(360))
	}
	s.bonusSpawned = true
	return true
}

// BonusSpawned reports whether the bonus balls were already released this run.
func (s *BallSet) BonusSpawned() bool {
	return s.bonusSpawned
}

// ResetRun deactivates every ball and re-arms the bonus spawn.
func (s *BallSet) ResetRun() {
	s.DeactivateAll()
	s.bonusSpawned = false
}

// DeactivateAll stops every ball.
func (s *BallSet) DeactivateAll() {
	for i := range s.Balls {
		s.Balls[i].Active = false
	}
}

// ActiveCount returns the number of balls in play.
func (s *BallSet) ActiveCount() int {
	n := 0
	for i := range s.Balls {
		if s.Balls[i].Active {
			n++
		}
	}
	return n
}

// Step integrates b over dt and applies wall rules for a width x height field.
// Side and top walls reflect a ball moving into them. Crossing the bottom
// deactivates the ball and returns true; it never reflects.
func (b *Ball) Step(dt, radius, width, height float64) (lost bool) {
	b.Pos = b.Pos.Add(b.Vel.Scale(dt))

	if (b.Pos.X-radius <= 0 && b.Vel.X < 0) || (b.Pos.X+radius >= width && b.Vel.X > 0) {
		b.Vel.X = -b.Vel.X
	}
	if b.Pos.Y-radius <= 0 && b.Vel.Y < 0 {
		b.Vel.Y = -b.Vel.Y
	}
	if b.Pos.Y+radius >= height {
		b.Active = false
		return true
	}
	return false
}

// BouncePaddle sends b back up when it overlaps the paddle. The horizontal
// speed follows the hit position: centre hits go straight up, edge hits
// angle sharply. Glancing hits outside the paddle span are not clamped.
func (s *BallSet) BouncePaddle(b *Ball, p *Paddle) bool {
	if !CircleIntersectsRect(b.Pos, s.Radius, p.Rect()) {
		return false
	}
	hit := (b.Pos.X - p.X) / p.W
	b.Vel.Y = -s.Speed
	b.Vel.X = (hit - 0.5) * s.Speed * 2
	return true
}
