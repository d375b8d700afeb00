package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParseDifficulty converts a flag value to a preset.
// An empty string selects normal.
func ParseDifficulty(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
}

// ApplyPreset modifies the config based on a difficulty preset.
// Normal leaves the loaded values untouched. Speeds are set, never scaled
// during a run.
func ApplyPreset(cfg *KuzushiConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 15
		cfg.Ball.Speed = 750
		cfg.Paddle.Width = cfg.Screen.Width / 15
	case DifficultyHard:
		cfg.Gameplay.Lives = 3
		cfg.Ball.Speed = 1250
		cfg.Paddle.Width = cfg.Screen.Width / 26
	}
}
