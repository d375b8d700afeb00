package config

import (
	_ "embed"
)

//go:embed defaults/kuzushi.yaml
var defaultKuzushiYAML []byte

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultKuzushiYAML
}

// DefaultKuzushiConfig returns the hardcoded default configuration.
// It matches defaults/kuzushi.yaml and is used when the embedded file
// cannot be parsed.
func DefaultKuzushiConfig() KuzushiConfig {
	const screenW, screenH = 1800.0, 900.0

	return KuzushiConfig{
		Screen: ScreenConfig{
			Width:  screenW,
			Height: screenH,
		},
		Grid: GridConfig{
			Rows:        2,
			Cols:        14,
			MaxRows:     14,
			MaxCols:     14,
			BlockWidth:  100,
			BlockHeight: 30,
			Spacing:     10,
			OffsetX:     100,
			OffsetY:     50,
			MaxHealth:   3,
		},
		Paddle: PaddleConfig{
			Width:        screenW / 20,
			Height:       screenH / 50,
			Speed:        2000,
			BottomOffset: 150,
		},
		Ball: BallConfig{
			Radius:        8,
			Speed:         1000,
			LaunchOffsetX: screenW / 50,
			LaunchOffsetY: 0,
			StartOffsetX:  40,
			StartOffsetY:  -40,
		},
		Gameplay: GameplayConfig{
			Lives:          10,
			BlockPoints:    100,
			BonusThreshold: 4000,
			BonusBalls:     4,
			MaxFrameTime:   0.04,
		},
		Cheat: CheatConfig{
			Enabled: true,
			Lives:   9001,
		},
	}
}
