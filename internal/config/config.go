// Package config provides YAML-based game configuration loading, validation
// and difficulty presets.
package config

import (
	"errors"
	"fmt"
)

// KuzushiConfig contains all configuration for the game.
// Distances are world pixels, speeds are pixels per second.
type KuzushiConfig struct {
	Screen   ScreenConfig   `yaml:"screen"`
	Grid     GridConfig     `yaml:"grid"`
	Paddle   PaddleConfig   `yaml:"paddle"`
	Ball     BallConfig     `yaml:"ball"`
	Gameplay GameplayConfig `yaml:"gameplay"`
	Cheat    CheatConfig    `yaml:"cheat"`
}

// ScreenConfig defines the world playfield.
type ScreenConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// GridConfig defines the block layout.
type GridConfig struct {
	Rows        int     `yaml:"rows"`     // Rows on the first level
	Cols        int     `yaml:"cols"`     // Columns on every level
	MaxRows     int     `yaml:"max_rows"` // Row cap applied after a level is generated
	MaxCols     int     `yaml:"max_cols"` // Capacity = MaxRows * MaxCols
	BlockWidth  float64 `yaml:"block_width"`
	BlockHeight float64 `yaml:"block_height"`
	Spacing     float64 `yaml:"spacing"`
	OffsetX     float64 `yaml:"offset_x"`
	OffsetY     float64 `yaml:"offset_y"`
	MaxHealth   int     `yaml:"max_health"` // Health is drawn from [1, MaxHealth]
}

// Capacity returns the maximum number of blocks a level can hold.
func (g GridConfig) Capacity() int {
	return g.MaxRows * g.MaxCols
}

// PaddleConfig defines the paddle.
type PaddleConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	Speed        float64 `yaml:"speed"`
	BottomOffset float64 `yaml:"bottom_offset"` // Distance from the paddle top to the screen bottom
}

// BallConfig defines every ball, main and bonus.
type BallConfig struct {
	Radius        float64 `yaml:"radius"`
	Speed         float64 `yaml:"speed"`
	LaunchOffsetX float64 `yaml:"launch_offset_x"` // Relaunch position relative to the paddle
	LaunchOffsetY float64 `yaml:"launch_offset_y"`
	StartOffsetX  float64 `yaml:"start_offset_x"` // Run start position relative to the paddle
	StartOffsetY  float64 `yaml:"start_offset_y"`
}

// GameplayConfig defines scoring and lives.
type GameplayConfig struct {
	Lives          int     `yaml:"lives"`
	BlockPoints    int     `yaml:"block_points"`
	BonusThreshold int     `yaml:"bonus_threshold"`
	BonusBalls     int     `yaml:"bonus_balls"`
	MaxFrameTime   float64 `yaml:"max_frame_time"` // Upper bound on a single simulation step, seconds
}

// CheatConfig defines the cheat code reward.
type CheatConfig struct {
	Enabled bool `yaml:"enabled"`
	Lives   int  `yaml:"lives"`
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the configuration can drive a game.
func (c KuzushiConfig) Validate() error {
	checks := []struct {
		ok   bool
		what string
	}{
		{c.Screen.Width > 0 && c.Screen.Height > 0, "screen dimensions must be positive"},
		{c.Grid.Rows >= 1 && c.Grid.Cols >= 1, "grid rows and cols must be at least 1"},
		{c.Grid.MaxRows > 0 && c.Grid.MaxCols > 0, "grid max_rows and max_cols must be positive"},
		{c.Grid.BlockWidth > 0 && c.Grid.BlockHeight > 0, "block dimensions must be positive"},
		{c.Grid.MaxHealth >= 1 && c.Grid.MaxHealth <= 3, "grid max_health must be between 1 and 3"},
		{c.Paddle.Width > 0 && c.Paddle.Height > 0, "paddle dimensions must be positive"},
		{c.Paddle.Width <= c.Screen.Width, "paddle must fit on screen"},
		{c.Paddle.Speed > 0, "paddle speed must be positive"},
		{c.Ball.Radius > 0, "ball radius must be positive"},
		{c.Ball.Speed > 0, "ball speed must be positive"},
		{c.Gameplay.Lives > 0, "gameplay lives must be positive"},
		{c.Gameplay.BlockPoints > 0, "gameplay block_points must be positive"},
		{c.Gameplay.BonusBalls >= 0, "gameplay bonus_balls must not be negative"},
		{c.Gameplay.MaxFrameTime > 0, "gameplay max_frame_time must be positive"},
	}
	for _, chk := range checks {
		if !chk.ok {
			return fmt.Errorf("config: %w: %s", ErrInvalidConfig, chk.what)
		}
	}
	return nil
}
