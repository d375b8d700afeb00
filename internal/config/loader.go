package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in each search location.
const FileName = "kuzushi.yaml"

// Load loads the game configuration.
// Search order: customPath -> ~/.kuzushi/configs/kuzushi.yaml -> ./configs/kuzushi.yaml -> embedded default.
// Documents are decoded over the defaults, so a file only needs the keys it changes.
func Load(customPath string) (KuzushiConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return KuzushiConfig{}, fmt.Errorf("config: cannot read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return KuzushiConfig{}, fmt.Errorf("config: cannot parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultKuzushiYAML)
	if err != nil {
		return DefaultKuzushiConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes a YAML document over the hardcoded defaults and validates it.
func Parse(data []byte) (KuzushiConfig, error) {
	cfg := DefaultKuzushiConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return KuzushiConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return KuzushiConfig{}, err
	}
	return cfg, nil
}

// Marshal renders the configuration as YAML.
func Marshal(cfg KuzushiConfig) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".kuzushi", "configs", filename)
}
