// Package kuzushi implements Block Kuzushi, a Breakout clone: a paddle, a
// main ball with bonus balls, and a grid of blocks with 1 to 3 health.
//
// The package is pure simulation. A frontend calls AdvanceFrame once per
// frame with that frame's input and draws the returned commands.
package kuzushi

import (
	"math/rand/v2"

	"github.com/vovakirdan/kuzushi/internal/config"
	"github.com/vovakirdan/kuzushi/internal/core"
)

// Menu entries.
const (
	optionRestart = 0
	optionQuit    = 1
)

// Outcome is how a run ended.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
)

// RunSummary describes a finished run.
type RunSummary struct {
	Outcome Outcome
	Score   int
	Level   int
	Lives   int
	Frames  uint64
}

// State is the externally visible game state.
type State struct {
	Phase        Phase
	Score        int
	High         int
	Lives        int
	Level        int
	Paused       bool
	ActiveBlocks int
	ActiveBalls  int
}

// StepResult is returned by Step after each frame.
type StepResult struct {
	State State
	// Quit is set when the player asked to leave the game.
	Quit bool
	// RunEnded is set on the frame a run is won or lost.
	RunEnded *RunSummary
}

// Frame is everything a frontend needs after one AdvanceFrame call.
type Frame struct {
	Seq      uint64      `msgpack:"seq"`
	Phase    string      `msgpack:"phase"`
	Score    int         `msgpack:"score"`
	High     int         `msgpack:"high"`
	Lives    int         `msgpack:"lives"`
	Level    int         `msgpack:"level"`
	Commands []DrawCmd   `msgpack:"cmds"`
	Quit     bool        `msgpack:"-"`
	RunEnded *RunSummary `msgpack:"-"`
}

// Game owns every piece of simulation state.
type Game struct {
	cfg config.KuzushiConfig

	pcg *rand.PCG
	rng *rand.Rand

	grid    *Grid
	paddle  *Paddle
	balls   *BallSet
	tracker *Tracker
	flags   Flags
	cheat   CheatCode

	titleMenu Menu
	lostMenu  Menu

	paused     bool
	level      int    // 1-based level number within the run
	rows       int    // Rows requested for the current level
	frame      uint64 // Frames advanced since New
	runStarted uint64 // Frame on which the current run began
}

// New creates a game on the title menu.
func New(cfg config.KuzushiConfig, seed uint64) *Game {
	pcg := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	g := &Game{
		cfg:       cfg,
		pcg:       pcg,
		rng:       rand.New(pcg),
		grid:      NewGrid(cfg.Grid),
		paddle:    NewPaddle(cfg.Paddle, cfg.Screen),
		balls:     NewBallSet(cfg.Ball, cfg.Gameplay.BonusBalls),
		tracker:   NewTracker(cfg.Gameplay.Lives, cfg.Gameplay.BlockPoints, 0),
		titleMenu: Menu{Options: []string{"PLAY GAME", "QUIT"}},
		lostMenu:  Menu{Options: []string{"RESTART GAME", "QUIT"}},
		rows:      cfg.Grid.Rows,
	}
	return g
}

// SetHighScore seeds the high score, typically from persistent storage.
// It never lowers the current high score.
func (g *Game) SetHighScore(high int) {
	if high > g.tracker.High {
		g.tracker.High = high
	}
}

// Phase returns the phase derived from the current flags.
func (g *Game) Phase() Phase {
	return DerivePhase(g.flags)
}

// State returns the current game state.
func (g *Game) State() State {
	return State{
		Phase:        g.Phase(),
		Score:        g.tracker.Score,
		High:         g.tracker.High,
		Lives:        g.tracker.Lives,
		Level:        g.level,
		Paused:       g.paused,
		ActiveBlocks: g.grid.ActiveCount(),
		ActiveBalls:  g.balls.ActiveCount(),
	}
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.KuzushiConfig {
	return g.cfg
}

// AdvanceFrame runs one frame and returns what to draw.
func (g *Game) AdvanceFrame(in core.InputFrame) Frame {
	res := g.Step(in)
	f := g.CurrentFrame()
	f.Quit = res.Quit
	f.RunEnded = res.RunEnded
	return f
}

// CurrentFrame describes the current state without advancing it.
func (g *Game) CurrentFrame() Frame {
	st := g.State()
	return Frame{
		Seq:      g.frame,
		Phase:    st.Phase.String(),
		Score:    st.Score,
		High:     st.High,
		Lives:    st.Lives,
		Level:    st.Level,
		Commands: g.Draw(),
	}
}

// Step advances the simulation by one frame.
func (g *Game) Step(in core.InputFrame) StepResult {
	g.frame++

	if in.Pressed(core.ActionQuit) {
		return StepResult{State: g.State(), Quit: true}
	}

	var res StepResult
	switch phase := g.Phase(); phase {
	case PhaseNotStarted:
		res.Quit = g.stepMenu(in, &g.titleMenu, func() { g.startRun() })
	case PhasePlaying:
		res.RunEnded = g.stepPlaying(in)
	case PhaseWon:
		res.Quit = g.stepWon(in)
	case PhaseLost:
		res.Quit = g.stepMenu(in, &g.lostMenu, func() { g.startRun() })
	}

	res.State = g.State()
	return res
}

// stepMenu handles a two-entry menu whose first entry calls onSelect and
// whose second quits. Returns true when quit was chosen.
func (g *Game) stepMenu(in core.InputFrame, m *Menu, onSelect func()) bool {
	for _, a := range in.Presses {
		switch a {
		case core.ActionUp:
			m.Up()
		case core.ActionDown:
			m.Down()
		case core.ActionConfirm, core.ActionLaunch:
			if m.Cursor == optionQuit {
				return true
			}
			onSelect()
			return false
		}
	}
	return false
}

// stepWon waits for the next-level decision. Returns true when declined.
func (g *Game) stepWon(in core.InputFrame) bool {
	for _, a := range in.Presses {
		switch a {
		case core.ActionYes:
			g.nextLevel()
			return false
		case core.ActionNo:
			return true
		}
	}
	return false
}

// stepPlaying runs the simulation for one frame.
func (g *Game) stepPlaying(in core.InputFrame) *RunSummary {
	if in.Pressed(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return nil
	}

	if g.cfg.Cheat.Enabled {
		for _, a := range in.Presses {
			if g.cheat.Feed(a) {
				g.tracker.AddLives(g.cfg.Cheat.Lives)
			}
		}
	}

	dt := core.ClampF(in.DT, 0, g.cfg.Gameplay.MaxFrameTime)

	main := g.balls.Main()
	if in.Pressed(core.ActionLaunch) && !main.Active && g.flags.Alive {
		g.balls.Launch(main, g.paddle, g.launchOffset(), g.rng)
	}

	for i := range g.balls.Balls {
		b := &g.balls.Balls[i]
		if !b.Active {
			continue
		}
		if b.Step(dt, g.balls.Radius, g.cfg.Screen.Width, g.cfg.Screen.Height) {
			g.tracker.LoseLife()
			continue
		}
		g.balls.BouncePaddle(b, g.paddle)
		ResolveBallBlock(b, g.balls.Radius, g.grid, g.tracker)
	}

	g.balls.SpawnBonus(g.tracker.Score, g.cfg.Gameplay.BonusThreshold, g.rng)

	switch {
	case in.IsHeld(core.ActionMoveLeft):
		g.paddle.Move(-1, dt)
	case in.IsHeld(core.ActionMoveRight):
		g.paddle.Move(1, dt)
	}

	return g.settle()
}

// settle applies the end-of-frame outcome checks and reports a finished run.
func (g *Game) settle() *RunSummary {
	if g.tracker.Depleted() && g.flags.Alive {
		g.flags.Alive = false
		g.balls.DeactivateAll()
		g.lostMenu.Cursor = optionRestart
	}
	if g.grid.AllCleared() && !g.flags.Won {
		g.flags.Won = true
		g.balls.DeactivateAll()
	}

	switch g.Phase() {
	case PhaseWon:
		return g.summary(OutcomeWon)
	case PhaseLost:
		return g.summary(OutcomeLost)
	}
	return nil
}

func (g *Game) summary(o Outcome) *RunSummary {
	return &RunSummary{
		Outcome: o,
		Score:   g.tracker.Score,
		Level:   g.level,
		Lives:   g.tracker.Lives,
		Frames:  g.frame - g.runStarted,
	}
}

// startRun begins a fresh run from the first level with full lives.
func (g *Game) startRun() {
	g.level = 1
	g.rows = g.cfg.Grid.Rows
	g.tracker.ResetLives()
	g.enterPlaying()
}

// nextLevel doubles the rows and plays on with the remaining lives.
func (g *Game) nextLevel() {
	g.level++
	g.rows *= 2
	g.enterPlaying()
	if g.rows > g.cfg.Grid.MaxRows {
		g.rows = g.cfg.Grid.MaxRows
	}
}

// enterPlaying resets the per-run state and launches the main ball.
func (g *Game) enterPlaying() {
	g.tracker.ResetScore()
	g.flags = Flags{Started: true, Alive: true, Won: false}
	g.grid.Initialize(g.rows, g.cfg.Grid.Cols, g.rng)
	g.paddle.Reset()
	g.balls.ResetRun()
	g.balls.Launch(g.balls.Main(), g.paddle, core.Vec2{X: g.cfg.Ball.StartOffsetX, Y: g.cfg.Ball.StartOffsetY}, g.rng)
	g.cheat.Reset()
	g.paused = false
	g.runStarted = g.frame
}

func (g *Game) launchOffset() core.Vec2 {
	return core.Vec2{X: g.cfg.Ball.LaunchOffsetX, Y: g.cfg.Ball.LaunchOffsetY}
}
