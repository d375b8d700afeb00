package kuzushi

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Snapshot contains the complete game state for replay and determinism checks.
// Uses primitive types only for stable serialization.
type Snapshot struct {
	Frame      uint64
	RunStarted uint64
	Phase      string
	Started    bool
	Alive      bool
	Won        bool
	Paused     bool
	Level      int
	Rows       int // Rows requested for the level
	GridRows   int // Rows the grid was laid out with
	GridCols   int

	Score int
	High  int
	Lives int

	PaddleX float64

	// Each ball is 5 floats: X, Y, VX, VY, Active (0/1)
	BallData     []float64
	BonusSpawned bool

	// Each block is 2 ints: Active (0/1), Health
	BlockData []int

	CheatIndex int
	TitleMenu  int
	LostMenu   int

	// RNG state from rand.PCG.MarshalBinary
	RNGState []byte
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	ballData := make([]float64, 0, len(g.balls.Balls)*5)
	for _, b := range g.balls.Balls {
		active := 0.0
		if b.Active {
			active = 1
		}
		ballData = append(ballData, b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y, active)
	}

	blockData := make([]int, 0, len(g.grid.Blocks)*2)
	for _, blk := range g.grid.Blocks {
		active := 0
		if blk.Active {
			active = 1
		}
		blockData = append(blockData, active, blk.Health)
	}

	rngState, _ := g.pcg.MarshalBinary() // PCG never fails to marshal

	return Snapshot{
		Frame:        g.frame,
		RunStarted:   g.runStarted,
		Phase:        g.Phase().String(),
		Started:      g.flags.Started,
		Alive:        g.flags.Alive,
		Won:          g.flags.Won,
		Paused:       g.paused,
		Level:        g.level,
		Rows:         g.rows,
		GridRows:     g.grid.Rows,
		GridCols:     g.grid.Cols,
		Score:        g.tracker.Score,
		High:         g.tracker.High,
		Lives:        g.tracker.Lives,
		PaddleX:      g.paddle.X,
		BallData:     ballData,
		BonusSpawned: g.balls.bonusSpawned,
		BlockData:    blockData,
		CheatIndex:   g.cheat.index,
		TitleMenu:    g.titleMenu.Cursor,
		LostMenu:     g.lostMenu.Cursor,
		RNGState:     rngState,
	}
}

// ApplySnapshot restores game state from a snapshot taken with the same config.
// A snapshot that does not fit the game is rejected before any state changes.
func (g *Game) ApplySnapshot(snap Snapshot) error {
	if len(snap.BallData) != len(g.balls.Balls)*5 {
		return fmt.Errorf("kuzushi: snapshot has %d ball values, want %d", len(snap.BallData), len(g.balls.Balls)*5)
	}
	if snap.GridRows < 0 || snap.GridCols < 0 {
		return fmt.Errorf("kuzushi: snapshot grid %dx%d is negative", snap.GridRows, snap.GridCols)
	}
	blocks := min(snap.GridRows*snap.GridCols, g.grid.Capacity())
	if len(snap.BlockData) != blocks*2 {
		return fmt.Errorf("kuzushi: snapshot has %d block values, want %d", len(snap.BlockData), blocks*2)
	}
	var pcg rand.PCG
	if err := pcg.UnmarshalBinary(snap.RNGState); err != nil {
		return fmt.Errorf("kuzushi: restore rng: %w", err)
	}

	*g.pcg = pcg

	g.frame = snap.Frame
	g.runStarted = snap.RunStarted
	g.flags = Flags{Started: snap.Started, Alive: snap.Alive, Won: snap.Won}
	g.paused = snap.Paused
	g.level = snap.Level
	g.rows = snap.Rows
	g.tracker.Score = snap.Score
	g.tracker.High = snap.High
	g.tracker.Lives = snap.Lives
	g.paddle.X = snap.PaddleX
	g.cheat.index = snap.CheatIndex
	g.titleMenu.Cursor = snap.TitleMenu
	g.lostMenu.Cursor = snap.LostMenu

	for i := range g.balls.Balls {
		idx := i * 5
		b := &g.balls.Balls[i]
		b.Pos.X = snap.BallData[idx]
		b.Pos.Y = snap.BallData[idx+1]
		b.Vel.X = snap.BallData[idx+2]
		b.Vel.Y = snap.BallData[idx+3]
		b.Active = snap.BallData[idx+4] == 1
	}
	g.balls.bonusSpawned = snap.BonusSpawned

	g.grid.layout(snap.GridRows, snap.GridCols)
	for i := range g.grid.Blocks {
		blk := &g.grid.Blocks[i]
		blk.Active = snap.BlockData[i*2] == 1
		blk.Health = snap.BlockData[i*2+1]
		blk.Color = HealthColor(blk.Health)
	}
	return nil
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := snap.Frame
	h = h*31 + uint64(snap.Score)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.High)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Lives)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Rows)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.GridRows) //#nosec G115 -- hash computation
	h = h*31 + math.Float64bits(snap.PaddleX)
	h = h*31 + uint64(len(snap.Phase))
	for _, c := range []byte(snap.Phase) {
		h = h*31 + uint64(c)
	}

	for _, v := range snap.BallData {
		h = h*31 + math.Float64bits(v)
	}

	for _, v := range snap.BlockData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	for _, c := range snap.RNGState {
		h = h*31 + uint64(c)
	}

	return h
}
