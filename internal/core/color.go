package core

import "image/color"

// Color is a palette entry shared by every frontend.
// Terminal frontends map it to ANSI codes; the window frontend to RGBA.
type Color uint8

// Palette used by the game.
const (
	ColorDefault Color = iota
	ColorWhite
	ColorRed
	ColorGreen
	ColorYellow
	ColorGray
)

var colorNames = [...]string{
	ColorDefault: "default",
	ColorWhite:   "white",
	ColorRed:     "red",
	ColorGreen:   "green",
	ColorYellow:  "yellow",
	ColorGray:    "gray",
}

// String returns the palette name of the color.
func (c Color) String() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return "unknown"
}

// RGBA returns the color for the window frontend.
func (c Color) RGBA() color.RGBA {
	switch c {
	case ColorRed:
		return color.RGBA{R: 230, G: 41, B: 55, A: 255}
	case ColorGreen:
		return color.RGBA{R: 0, G: 228, B: 48, A: 255}
	case ColorYellow:
		return color.RGBA{R: 253, G: 249, B: 0, A: 255}
	case ColorGray:
		return color.RGBA{R: 130, G: 130, B: 130, A: 255}
	default:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
}
