package kuzushi

import (
	"math/rand/v2"

	"github.com/vovakirdan/kuzushi/internal/config"
	"github.com/vovakirdan/kuzushi/internal/core"
)

// Block is one destructible target.
type Block struct {
	Rect   core.RectF
	Health int
	Active bool
	Color  core.Color
}

// HealthColor returns the display color for a block health value.
func HealthColor(health int) core.Color {
	switch health {
	case 1:
		return core.ColorGreen
	case 2:
		return core.ColorYellow
	default:
		return core.ColorRed
	}
}

// Grid holds the blocks of the current level in row-major order.
// Blocks are only damaged through ResolveBallBlock.
type Grid struct {
	cfg    config.GridConfig
	Blocks []Block
	Rows   int // Requested rows of the current level
	Cols   int // Requested columns of the current level
}

// NewGrid creates an empty grid.
func NewGrid(cfg config.GridConfig) *Grid {
	return &Grid{
		cfg:    cfg,
		Blocks: make([]Block, 0, cfg.Capacity()),
	}
}

// Capacity returns the maximum number of blocks the grid can hold.
func (g *Grid) Capacity() int {
	return g.cfg.Capacity()
}

// Initialize replaces every block with a fresh rows x cols layout.
// Health is drawn uniformly from [1, MaxHealth]. Cells past the grid
// capacity are skipped.
func (g *Grid) Initialize(rows, cols int, rng *rand.Rand) {
	g.layout(rows, cols)
	for i := range g.Blocks {
		b := &g.Blocks[i]
		b.Health = rng.IntN(g.cfg.MaxHealth) + 1
		b.Active = true
		b.Color = HealthColor(b.Health)
	}
}

// layout positions inactive, zero-health blocks for a rows x cols level.
func (g *Grid) layout(rows, cols int) {
	g.Rows, g.Cols = rows, cols
	g.Blocks = g.Blocks[:0]

	capacity := g.cfg.Capacity()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			if len(g.Blocks) >= capacity {
				return
			}
			g.Blocks = append(g.Blocks, Block{
				Rect: core.RectF{
					X: float64(col)*(g.cfg.BlockWidth+g.cfg.Spacing) + g.cfg.OffsetX,
					Y: float64(row)*(g.cfg.BlockHeight+g.cfg.Spacing) + g.cfg.OffsetY,
					W: g.cfg.BlockWidth,
					H: g.cfg.BlockHeight,
				},
			})
		}
	}
}

// AllCleared reports whether no block is active.
func (g *Grid) AllCleared() bool {
	for i := range g.Blocks {
		if g.Blocks[i].Active {
			return false
		}
	}
	return true
}

// ActiveCount returns the number of blocks still standing.
func (g *Grid) ActiveCount() int {
	n := 0
	for i := range g.Blocks {
		if g.Blocks[i].Active {
			n++
		}
	}
	return n
}

// damage removes one health point from block i and reports whether it was destroyed.
func (g *Grid) damage(i int) bool {
	b := &g.Blocks[i]
	b.Health--
	if b.Health <= 0 {
		b.Health = 0
		b.Active = false
		return true
	}
	b.Color = HealthColor(b.Health)
	return false
}
