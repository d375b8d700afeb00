package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(embedded) failed: %v", err)
	}
	if cfg != DefaultKuzushiConfig() {
		t.Errorf("embedded YAML and DefaultKuzushiConfig differ:\n%+v\n%+v", cfg, DefaultKuzushiConfig())
	}
}

func TestDefaultsFollowScreenProportions(t *testing.T) {
	cfg := DefaultKuzushiConfig()

	if cfg.Paddle.Width != cfg.Screen.Width/20 {
		t.Errorf("paddle width = %v, expected screen width / 20", cfg.Paddle.Width)
	}
	if cfg.Paddle.Height != cfg.Screen.Height/50 {
		t.Errorf("paddle height = %v, expected screen height / 50", cfg.Paddle.Height)
	}
	if cfg.Grid.Capacity() != 196 {
		t.Errorf("capacity = %d, expected 196", cfg.Grid.Capacity())
	}
}

func TestLoadCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	doc := []byte("gameplay:\n  lives: 3\nball:\n  speed: 500\n")
	if err := os.WriteFile(path, doc, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Gameplay.Lives != 3 {
		t.Errorf("lives = %d, expected 3", cfg.Gameplay.Lives)
	}
	if cfg.Ball.Speed != 500 {
		t.Errorf("ball speed = %v, expected 500", cfg.Ball.Speed)
	}
	// Keys missing from the document keep their defaults
	if cfg.Grid.Cols != 14 {
		t.Errorf("grid cols = %d, expected default 14", cfg.Grid.Cols)
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		doc  string
	}{
		{"missing file", filepath.Join(dir, "nope.yaml"), ""},
		{"malformed yaml", filepath.Join(dir, "bad.yaml"), "screen: [1, 2"},
		{"invalid values", filepath.Join(dir, "invalid.yaml"), "ball:\n  speed: -1\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if tc.doc != "" {
				if err := os.WriteFile(tc.path, []byte(tc.doc), 0o600); err != nil {
					t.Fatal(err)
				}
			}
			if _, err := Load(tc.path); err == nil {
				t.Errorf("Load(%s) should fail", tc.path)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*KuzushiConfig)
		ok     bool
	}{
		{"defaults", func(*KuzushiConfig) {}, true},
		{"zero lives", func(c *KuzushiConfig) { c.Gameplay.Lives = 0 }, false},
		{"zero radius", func(c *KuzushiConfig) { c.Ball.Radius = 0 }, false},
		{"paddle wider than screen", func(c *KuzushiConfig) { c.Paddle.Width = c.Screen.Width + 1 }, false},
		{"no capacity", func(c *KuzushiConfig) { c.Grid.MaxRows = 0 }, false},
		{"empty first level", func(c *KuzushiConfig) { c.Grid.Rows = 0 }, false},
		{"no columns", func(c *KuzushiConfig) { c.Grid.Cols = 0 }, false},
		{"single block", func(c *KuzushiConfig) { c.Grid.Rows, c.Grid.Cols = 1, 1 }, true},
		{"max health 3", func(c *KuzushiConfig) { c.Grid.MaxHealth = 3 }, true},
		{"max health above colours", func(c *KuzushiConfig) { c.Grid.MaxHealth = 4 }, false},
		{"zero max health", func(c *KuzushiConfig) { c.Grid.MaxHealth = 0 }, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultKuzushiConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.ok && err != nil {
				t.Errorf("Validate() = %v, expected nil", err)
			}
			if !tc.ok && !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestParseRejectsUnplayableGrid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"health beyond colour table", "grid:\n  max_health: 7\n"},
		{"no rows", "grid:\n  rows: 0\n"},
		{"no cols", "grid:\n  cols: 0\n"},
		{"no health", "grid:\n  max_health: 0\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse([]byte(tc.doc)); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Parse(%q) = %v, expected ErrInvalidConfig", tc.doc, err)
			}
		})
	}

	cfg, err := Parse([]byte("grid:\n  rows: 1\n  max_health: 1\n"))
	if err != nil {
		t.Fatalf("Parse(one row) failed: %v", err)
	}
	if cfg.Grid.Rows != 1 || cfg.Grid.MaxHealth != 1 {
		t.Errorf("grid = %+v, expected rows 1 and max_health 1", cfg.Grid)
	}
}

func TestDifficultyPresets(t *testing.T) {
	tests := []struct {
		flag      string
		wantLives int
		wantSpeed float64
	}{
		{"", 10, 1000},
		{"normal", 10, 1000},
		{"easy", 15, 750},
		{"hard", 3, 1250},
	}

	for _, tc := range tests {
		t.Run(tc.flag, func(t *testing.T) {
			preset, err := ParseDifficulty(tc.flag)
			if err != nil {
				t.Fatalf("ParseDifficulty(%q) failed: %v", tc.flag, err)
			}
			cfg := DefaultKuzushiConfig()
			ApplyPreset(&cfg, preset)
			if cfg.Gameplay.Lives != tc.wantLives || cfg.Ball.Speed != tc.wantSpeed {
				t.Errorf("lives=%d speed=%v, expected %d %v", cfg.Gameplay.Lives, cfg.Ball.Speed, tc.wantLives, tc.wantSpeed)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset config invalid: %v", err)
			}
		})
	}

	if _, err := ParseDifficulty("nightmare"); err == nil {
		t.Error("ParseDifficulty should reject unknown presets")
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := Marshal(DefaultKuzushiConfig())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() failed: %v", err)
	}
	if cfg != DefaultKuzushiConfig() {
		t.Error("Marshal output should parse back to the same config")
	}
}
