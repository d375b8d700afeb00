package tui

import (
	"math"

	"github.com/vovakirdan/kuzushi/internal/core"
	"github.com/vovakirdan/kuzushi/internal/games/kuzushi"
)

// Runes used for shapes on the terminal grid.
const (
	runeRect = '█'
	runeBall = '●'
)

// Rasterize draws world-space commands onto a cell screen, scaling the
// worldW x worldH playfield to the screen size. Later commands overwrite
// earlier ones.
func Rasterize(s *core.Screen, cmds []kuzushi.DrawCmd, worldW, worldH float64) {
	s.Clear()
	if s.Width() == 0 || s.Height() == 0 || worldW <= 0 || worldH <= 0 {
		return
	}

	sx := float64(s.Width()) / worldW
	sy := float64(s.Height()) / worldH

	for _, c := range cmds {
		switch c.Kind {
		case kuzushi.DrawRect:
			x0 := int(math.Floor(c.X * sx))
			y0 := int(math.Floor(c.Y * sy))
			x1 := max(int(math.Ceil((c.X+c.W)*sx)), x0+1)
			y1 := max(int(math.Ceil((c.Y+c.H)*sy)), y0+1)
			// Leave a gap column between adjacent blocks.
			if x1-x0 > 2 {
				x1--
			}
			s.FillRect(core.NewRect(x0, y0, x1-x0, y1-y0), runeRect, c.Color)

		case kuzushi.DrawCircle:
			s.SetColored(int(c.X*sx), int(c.Y*sy), runeBall, c.Color)

		case kuzushi.DrawText:
			x := int(c.X * sx)
			y := int(math.Floor(c.Y * sy))
			if c.Align == kuzushi.AlignCenter {
				s.DrawTextCentered(x, y, c.Text, c.Color)
			} else {
				s.DrawText(x, y, c.Text, c.Color)
			}
		}
	}
}
