package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadApples loads the apples demo configuration.
// Search order: customPath -> ~/.tui-kernel/configs/apples.yaml -> ./configs/apples.yaml -> embedded default
func LoadApples(customPath string) (ApplesConfig, error) {
	cfg, err := load(customPath, "apples.yaml", defaultApplesYAML, DefaultApplesConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// load reads a YAML file following the search order. Only an explicit
// customPath can fail; unreadable or malformed files further down the
// chain are skipped.
func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	var cfg T

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", filename)); err == nil {
		var local T
		if err := yaml.Unmarshal(data, &local); err == nil {
			return local, nil
		}
	}

	// Use embedded default YAML
	var def T
	if err := yaml.Unmarshal(embedded, &def); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return def, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tui-kernel", "configs", filename)
}

// Validate reports configuration values the demo cannot run with.
func (c ApplesConfig) Validate() error {
	switch {
	case c.Player.Speed < 1:
		return fmt.Errorf("config: player.speed must be at least 1, got %d", c.Player.Speed)
	case c.Apples.Count < 0:
		return fmt.Errorf("config: apples.count must not be negative, got %d", c.Apples.Count)
	case c.Apples.PoolSize < c.Apples.Count:
		return fmt.Errorf("config: apples.pool_size (%d) must be at least apples.count (%d)", c.Apples.PoolSize, c.Apples.Count)
	case c.Gameplay.TimeLimitTicks < 0:
		return fmt.Errorf("config: gameplay.time_limit_ticks must not be negative, got %d", c.Gameplay.TimeLimitTicks)
	}
	switch c.Physics.BroadPhase {
	case "", "box", "none":
	default:
		return fmt.Errorf("config: unknown physics.broad_phase %q", c.Physics.BroadPhase)
	}
	return nil
}

// ApplyApplesPreset modifies the config based on a difficulty preset.
func ApplyApplesPreset(cfg *ApplesConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Difficulty.Enabled = false
	} else {
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Apples.Count = 5
		cfg.Walls.Enabled = false
	case DifficultyHard:
		cfg.Apples.Count = 2
		cfg.Physics.Strategy = "exact"
		cfg.Physics.Options = nil
	}
	if cfg.Apples.PoolSize < cfg.Apples.Count {
		cfg.Apples.PoolSize = cfg.Apples.Count
	}
}
