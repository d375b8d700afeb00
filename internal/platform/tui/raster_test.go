package tui

import (
	"testing"

	"github.com/vovakirdan/kuzushi/internal/core"
	"github.com/vovakirdan/kuzushi/internal/games/kuzushi"
)

func TestRasterize(t *testing.T) {
	s := core.NewScreen(18, 9)
	cmds := []kuzushi.DrawCmd{
		kuzushi.RectCmd(core.RectF{X: 100, Y: 50, W: 100, H: 30}, core.ColorRed),
		kuzushi.CircleCmd(core.Vec2{X: 945, Y: 745}, 8, core.ColorWhite),
		kuzushi.TextCmd(900, 100, 50, "ab", core.ColorGreen, kuzushi.AlignCenter),
		kuzushi.TextCmd(0, 800, 50, "L", core.ColorWhite, kuzushi.AlignLeft),
	}

	Rasterize(s, cmds, 1800, 900)

	tests := []struct {
		name  string
		x, y  int
		rune  rune
		color core.Color
	}{
		{"block", 1, 0, runeRect, core.ColorRed},
		{"ball", 9, 7, runeBall, core.ColorWhite},
		{"centered text", 8, 1, 'a', core.ColorGreen},
		{"centered text end", 9, 1, 'b', core.ColorGreen},
		{"left text", 0, 8, 'L', core.ColorWhite},
		{"empty", 5, 5, ' ', core.ColorDefault},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cell := s.GetCell(tt.x, tt.y)
			if cell.Rune != tt.rune || cell.Color != tt.color {
				t.Errorf("cell (%d,%d) = %q/%v, want %q/%v", tt.x, tt.y, cell.Rune, cell.Color, tt.rune, tt.color)
			}
		})
	}
}

func TestRasterizeClearsPreviousFrame(t *testing.T) {
	s := core.NewScreen(18, 9)
	Rasterize(s, []kuzushi.DrawCmd{kuzushi.CircleCmd(core.Vec2{X: 945, Y: 745}, 8, core.ColorWhite)}, 1800, 900)
	Rasterize(s, nil, 1800, 900)

	if got := s.Get(9, 7); got != ' ' {
		t.Errorf("stale cell %q after empty frame", got)
	}
}

func TestRasterizeEmptyScreen(t *testing.T) {
	s := core.NewScreen(0, 0)
	Rasterize(s, []kuzushi.DrawCmd{kuzushi.RectCmd(core.RectF{W: 10, H: 10}, core.ColorRed)}, 1800, 900)
}

func TestRenderScreenPlainText(t *testing.T) {
	s := core.NewScreen(3, 2)
	s.SetColored(0, 0, 'x', core.ColorRed)
	s.Set(2, 1, 'y')

	lines := RenderScreen(s)
	if len([]rune(lines)) < 7 {
		t.Errorf("rendered output too short: %q", lines)
	}
}
