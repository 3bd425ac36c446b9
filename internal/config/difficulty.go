package config

import "github.com/vovakirdan/tui-kernel/internal/core"

// DifficultyManager scales apple points and the run length with the
// difficulty level.
type DifficultyManager struct {
	cfg     DifficultyConfig
	initial float64
}

// NewDifficultyManager creates a manager starting at cfg.InitialLevel.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, initial: core.ClampF(cfg.InitialLevel, 0, 1)}
}

// SetInitialLevel overrides the starting level, clamped to [0, 1].
func (d *DifficultyManager) SetInitialLevel(level float64) {
	d.initial = core.ClampF(level, 0, 1)
}

// IsEnabled reports whether the level progresses during a run.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the level in [0, 1]. With progression it moves linearly from
// the initial level to 1 as score or ticks approach Progression.MaxAt.
func (d *DifficultyManager) Level(score, ticks int) float64 {
	if !d.IsEnabled() {
		return d.initial
	}
	var done float64
	maxAt := float64(max(d.cfg.Progression.MaxAt, 1))
	switch d.cfg.Progression.Type {
	case "score":
		done = float64(score) / maxAt
	case "time":
		done = float64(ticks) / maxAt
	default:
		return d.initial
	}
	return d.initial + core.ClampF(done, 0, 1)*(1-d.initial)
}

// Points returns the points for one apple at the current level.
func (d *DifficultyManager) Points(base, score, ticks int) int {
	return base + int(d.Level(score, ticks)*float64(d.cfg.Scaling.PointsBonus))
}

// TimeLimit returns the run length for the initial level. Harder starts
// get less time, never under a quarter of base.
func (d *DifficultyManager) TimeLimit(base int) int {
	reduction := int(d.initial * float64(d.cfg.Scaling.TimeReduction))
	return max(base-reduction, base/4)
}
