package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	fromEmbed, err := load("", "does-not-exist.yaml", defaultApplesYAML, DefaultApplesConfig)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	want := DefaultApplesConfig()
	if !reflect.DeepEqual(fromEmbed, want) {
		t.Errorf("embedded defaults = %+v, expected %+v", fromEmbed, want)
	}
	if err := want.Validate(); err != nil {
		t.Errorf("Validate() on defaults = %v", err)
	}
}

func TestLoadApplesCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "apples.yaml")
	data := []byte(`
physics:
  strategy: aabb
  options:
    margin: 2
player:
  speed: 2
apples:
  count: 1
  pool_size: 1
`)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadApples(path)
	if err != nil {
		t.Fatalf("LoadApples() error = %v", err)
	}
	if cfg.Physics.Strategy != "aabb" {
		t.Errorf("Strategy = %q, expected %q", cfg.Physics.Strategy, "aabb")
	}
	if m, ok := cfg.Physics.Options["margin"].(int); !ok || m != 2 {
		t.Errorf("Options[margin] = %v, expected 2", cfg.Physics.Options["margin"])
	}
	if cfg.Player.Speed != 2 {
		t.Errorf("Speed = %d, expected 2", cfg.Player.Speed)
	}
}

func TestLoadApplesErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadApples(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadApples(missing) expected error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("player: [1, 2"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadApples(bad); err == nil {
		t.Error("LoadApples(bad yaml) expected error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("player:\n  speed: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadApples(invalid); err == nil {
		t.Error("LoadApples(speed 0) expected validation error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ApplesConfig)
		wantErr bool
	}{
		{"defaults", func(*ApplesConfig) {}, false},
		{"zero speed", func(c *ApplesConfig) { c.Player.Speed = 0 }, true},
		{"pool smaller than count", func(c *ApplesConfig) { c.Apples.PoolSize = 1 }, true},
		{"negative time limit", func(c *ApplesConfig) { c.Gameplay.TimeLimitTicks = -1 }, true},
		{"unknown broad phase", func(c *ApplesConfig) { c.Physics.BroadPhase = "octree" }, true},
		{"no broad phase", func(c *ApplesConfig) { c.Physics.BroadPhase = "none" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultApplesConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestApplyApplesPreset(t *testing.T) {
	tests := []struct {
		preset      DifficultyPreset
		wantEnabled bool
		wantLevel   float64
		wantCount   int
		wantWalls   bool
	}{
		{DifficultyEasy, true, 0.0, 5, false},
		{DifficultyNormal, true, 0.3, 3, true},
		{DifficultyHard, true, 0.7, 2, true},
		{DifficultyFixed, false, 0.0, 3, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.preset), func(t *testing.T) {
			cfg := DefaultApplesConfig()
			ApplyApplesPreset(&cfg, tt.preset)

			if cfg.Difficulty.Enabled != tt.wantEnabled {
				t.Errorf("Enabled = %v, expected %v", cfg.Difficulty.Enabled, tt.wantEnabled)
			}
			if cfg.Difficulty.InitialLevel != tt.wantLevel {
				t.Errorf("InitialLevel = %v, expected %v", cfg.Difficulty.InitialLevel, tt.wantLevel)
			}
			if cfg.Apples.Count != tt.wantCount {
				t.Errorf("Count = %d, expected %d", cfg.Apples.Count, tt.wantCount)
			}
			if cfg.Walls.Enabled != tt.wantWalls {
				t.Errorf("Walls = %v, expected %v", cfg.Walls.Enabled, tt.wantWalls)
			}
			if cfg.Apples.PoolSize < cfg.Apples.Count {
				t.Errorf("PoolSize %d < Count %d", cfg.Apples.PoolSize, cfg.Apples.Count)
			}
		})
	}
}

func TestDifficultyManager(t *testing.T) {
	cfg := DefaultApplesConfig().Difficulty

	d := NewDifficultyManager(cfg)
	if got := d.Level(0, 0); got != 0 {
		t.Errorf("Level(0, 0) = %v, expected 0", got)
	}
	if got := d.Level(150, 0); got != 0.5 {
		t.Errorf("Level(150, 0) = %v, expected 0.5", got)
	}
	if got := d.Level(9999, 0); got != 1 {
		t.Errorf("Level(9999, 0) = %v, expected 1", got)
	}
	if got := d.Points(10, 300, 0); got != 20 {
		t.Errorf("Points(10, 300, 0) = %d, expected 20", got)
	}
	if got := d.TimeLimit(1800); got != 1800 {
		t.Errorf("TimeLimit(1800) = %d, expected 1800", got)
	}

	d.SetInitialLevel(1)
	if got := d.TimeLimit(1800); got != 1200 {
		t.Errorf("TimeLimit(1800) at level 1 = %d, expected 1200", got)
	}
	if got := d.TimeLimit(100); got != 25 {
		t.Errorf("TimeLimit(100) at level 1 = %d, expected 25", got)
	}

	cfg.Enabled = false
	fixed := NewDifficultyManager(cfg)
	if fixed.IsEnabled() {
		t.Error("IsEnabled() = true for disabled config")
	}
	if got := fixed.Level(300, 0); got != 0 {
		t.Errorf("Level() with progression off = %v, expected 0", got)
	}
}

func TestParsePreset(t *testing.T) {
	if p, ok := ParsePreset("hard"); !ok || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, ok)
	}
	if _, ok := ParsePreset("insane"); ok {
		t.Error("ParsePreset(insane) expected false")
	}
}
