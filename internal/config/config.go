// Package config provides YAML-based configuration loading and difficulty
// management for the kernel demos.
package config

// ApplesConfig contains all configuration for the apples demo.
type ApplesConfig struct {
	Physics    PhysicsConfig    `yaml:"physics"`
	Player     ApplesPlayer     `yaml:"player"`
	Apples     ApplesItems      `yaml:"apples"`
	Walls      ApplesWalls      `yaml:"walls"`
	Gameplay   ApplesGameplay   `yaml:"gameplay"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// PhysicsConfig selects the collision strategy of moving colliders.
type PhysicsConfig struct {
	Strategy   string         `yaml:"strategy"`    // exact, aabb, distance or delegated
	Options    map[string]any `yaml:"options"`     // strategy options, e.g. margin or threshold
	BroadPhase string         `yaml:"broad_phase"` // "box" or "none"
}

// ApplesPlayer defines the player entity.
type ApplesPlayer struct {
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Glyph string `yaml:"glyph"`
	Speed int    `yaml:"speed"` // Cells per move
}

// ApplesItems defines the pickups.
type ApplesItems struct {
	Count    int    `yaml:"count"`     // Apples on the board at once
	PoolSize int    `yaml:"pool_size"` // Pre-cloned instances
	Glyph    string `yaml:"glyph"`
	Points   int    `yaml:"points"`
}

// ApplesWalls defines the border walls.
type ApplesWalls struct {
	Enabled bool   `yaml:"enabled"`
	Glyph   string `yaml:"glyph"`
}

// ApplesGameplay defines the run length.
type ApplesGameplay struct {
	TimeLimitTicks int `yaml:"time_limit_ticks"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	PointsBonus   int `yaml:"points_bonus"`   // Points added per apple at max difficulty
	TimeReduction int `yaml:"time_reduction"` // Ticks removed from the time limit at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Presets lists the known presets.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}
}

// ParsePreset returns the preset named s and whether it is known.
func ParsePreset(s string) (DifficultyPreset, bool) {
	for _, p := range Presets() {
		if string(p) == s {
			return p, true
		}
	}
	return "", false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}
