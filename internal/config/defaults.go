package config

import (
	_ "embed"
)

//go:embed defaults/apples.yaml
var defaultApplesYAML []byte

// DefaultApplesConfig returns the default apples configuration.
func DefaultApplesConfig() ApplesConfig {
	return ApplesConfig{
		Physics: PhysicsConfig{
			Strategy:   "aabb",
			Options:    map[string]any{"margin": 1},
			BroadPhase: "box",
		},
		Player: ApplesPlayer{
			X:     2,
			Y:     2,
			Glyph: "@",
			Speed: 1,
		},
		Apples: ApplesItems{
			Count:    3,
			PoolSize: 6,
			Glyph:    "*",
			Points:   10,
		},
		Walls: ApplesWalls{
			Enabled: true,
			Glyph:   "#",
		},
		Gameplay: ApplesGameplay{
			TimeLimitTicks: 1800, // one minute at 30fps
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "score",
				MaxAt: 300,
			},
			Scaling: ScalingConfig{
				PointsBonus:   10,
				TimeReduction: 600,
			},
		},
	}
}
