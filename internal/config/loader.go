package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML
// nor TOML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// configExtensions lists the formats tried in the search directories, in order.
var configExtensions = []string{".yaml", ".toml"}

// LoadHexPop loads HexPop configuration.
// Search order: customPath -> ~/.hexpop/configs/hexpop.{yaml,toml} ->
// ./configs/hexpop.{yaml,toml} -> embedded default.
// Keys missing from a file keep their default values.
func LoadHexPop(customPath string) (HexPopConfig, error) {
	cfg := DefaultHexPopConfig()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := decode(data, filepath.Ext(customPath), &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		cfg.sanitize()
		return cfg, nil
	}

	var candidates []string
	if dir := userConfigDir(); dir != "" {
		for _, ext := range configExtensions {
			candidates = append(candidates, filepath.Join(dir, "hexpop"+ext))
		}
	}
	for _, ext := range configExtensions {
		candidates = append(candidates, filepath.Join("configs", "hexpop"+ext))
	}

	for _, p := range candidates {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		fileCfg := DefaultHexPopConfig()
		if err := decode(data, filepath.Ext(p), &fileCfg); err == nil {
			fileCfg.sanitize()
			return fileCfg, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultHexPopYAML, &cfg); err != nil {
		return DefaultHexPopConfig(), nil // Fallback to hardcoded if embed fails
	}
	cfg.sanitize()
	return cfg, nil
}

// decode unmarshals data into out, picking the format from ext.
func decode(data []byte, ext string, out *HexPopConfig) error {
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, out)
	case ".toml":
		_, err := toml.NewDecoder(bytes.NewReader(data)).Decode(out)
		return err
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
}

// userConfigDir returns ~/.hexpop/configs, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".hexpop", "configs")
}

// ApplyHexPopPreset modifies the config based on a difficulty preset.
func ApplyHexPopPreset(cfg *HexPopConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Colors = 3
		cfg.Gameplay.ShotsPerRow = 8
		cfg.Physics.ContactFactor = 0.8
	case DifficultyHard:
		cfg.Gameplay.Colors = 5
		cfg.Gameplay.ShotsPerRow = 4
		cfg.Gameplay.StartRows = 6
	}
	cfg.sanitize()
}
