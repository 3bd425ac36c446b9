package apples

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-kernel/internal/config"
	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/physics"
	"github.com/vovakirdan/tui-kernel/internal/registry"
)

func testConfig() config.ApplesConfig {
	cfg := config.DefaultApplesConfig()
	cfg.Difficulty.Enabled = false
	cfg.Difficulty.InitialLevel = 0
	return cfg
}

func newGame(t *testing.T, cfg config.ApplesConfig, w, h int) *Game {
	t.Helper()
	g := New()
	require.NoError(t, g.Configure(cfg))
	g.Reset(core.RuntimeConfig{ScreenW: w, ScreenH: h, TickRate: 30, Seed: 7})
	return g
}

func press(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestRegistered(t *testing.T) {
	assert.True(t, registry.Exists(ID))
	g, err := registry.Create(ID)
	require.NoError(t, err)
	assert.Equal(t, "Apples", g.Title())
	_, ok := g.(registry.Stats)
	assert.True(t, ok)
}

func TestDeterministicRuns(t *testing.T) {
	script := core.ParseActions("RRRDDDLLUU..RRRRDDDDLLLL")

	run := func() *Game {
		g := newGame(t, testConfig(), 40, 16)
		for _, in := range script {
			g.Step(in)
		}
		return g
	}

	g1, g2 := run(), run()
	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
	assert.Equal(t, g1.Stats(), g2.Stats())
	assert.Equal(t, g1.State(), g2.State())
}

func TestEatingAppleScoresAndRecycles(t *testing.T) {
	cfg := testConfig()
	cfg.Walls.Enabled = false
	cfg.Apples.Count = 1
	cfg.Apples.PoolSize = 2
	g := newGame(t, cfg, 20, 10)

	require.Len(t, g.apples, 1)
	require.Len(t, g.reserve, 1)
	apple, spare := g.apples[0], g.reserve[0]
	pos := g.player.Transform().Position()
	apple.Transform().SetPosition(core.Sum(pos, core.Right))

	res := g.Step(press(core.ActionRight))
	assert.Equal(t, 1, res.Collisions)
	assert.Equal(t, 10, res.State.Score)
	assert.Equal(t, core.Sum(pos, core.Right), g.player.Transform().Position())

	require.Len(t, g.apples, 1)
	assert.Same(t, spare, g.apples[0], "the oldest reserve apple is placed next")
	assert.True(t, spare.Started())
	assert.NotEqual(t, g.player.Transform().Position(), spare.Transform().Position())

	require.Len(t, g.reserve, 1)
	assert.Same(t, apple, g.reserve[0])
	assert.False(t, apple.Started())
	assert.False(t, apple.Destroyed())
	assert.Equal(t, 2, g.scene.Len())
	assert.Equal(t, 2, g.scene.Physics().Len())

	st := g.Stats()
	assert.Equal(t, 1, st.Moves)
	assert.Equal(t, 1, st.Collisions)
	assert.Equal(t, "aabb", st.Strategy)
}

func TestEatingWithPoolOfOneReusesTheSameApple(t *testing.T) {
	cfg := testConfig()
	cfg.Walls.Enabled = false
	cfg.Apples.Count = 1
	cfg.Apples.PoolSize = 1
	g := newGame(t, cfg, 20, 10)

	apple := g.apples[0]
	apple.Transform().SetPosition(core.Sum(g.player.Transform().Position(), core.Down))

	g.Step(press(core.ActionDown))
	assert.Equal(t, 10, g.State().Score)
	require.Len(t, g.apples, 1)
	assert.Same(t, apple, g.apples[0])
	assert.True(t, apple.Started())
	assert.Empty(t, g.reserve)
	assert.Equal(t, 2, g.scene.Len())
	assert.Equal(t, 2, g.scene.Physics().Len())
}

func TestWallBumpsDoNotBlock(t *testing.T) {
	cfg := testConfig()
	cfg.Apples.Count = 0
	cfg.Apples.PoolSize = 0
	cfg.Player.X = -5
	cfg.Player.Y = 3
	g := newGame(t, cfg, 20, 10)

	start := g.player.Transform().Position()
	require.Equal(t, core.Vec(1, 5), start)

	res := g.Step(press(core.ActionLeft))
	assert.Equal(t, 3, res.Collisions, "three wall cells are within one cell")
	assert.Equal(t, 3, g.bumps)
	assert.Equal(t, start, g.player.Transform().Position(), "movement stays inside the field")

	g.Step(press(core.ActionRight))
	assert.Equal(t, 6, g.bumps)
	assert.Equal(t, core.Vec(2, 5), g.player.Transform().Position())

	g.Step(press(core.ActionRight))
	assert.Equal(t, 6, g.bumps, "two cells away from the wall")
}

func TestExactStrategyIgnoresAdjacentWalls(t *testing.T) {
	cfg := testConfig()
	cfg.Physics.Strategy = "exact"
	cfg.Physics.Options = nil
	cfg.Apples.Count = 0
	cfg.Apples.PoolSize = 0
	cfg.Player.X = 0
	g := newGame(t, cfg, 20, 10)

	res := g.Step(press(core.ActionLeft))
	assert.Zero(t, res.Collisions)
	assert.Zero(t, g.bumps)
	assert.Equal(t, "exact", g.Stats().Strategy)
}

func TestTimeLimitEndsRun(t *testing.T) {
	cfg := testConfig()
	cfg.Gameplay.TimeLimitTicks = 3
	g := newGame(t, cfg, 20, 10)

	idle := core.NewInputFrame()
	assert.False(t, g.Step(idle).State.GameOver)
	assert.False(t, g.Step(idle).State.GameOver)
	assert.True(t, g.Step(idle).State.GameOver)

	g.Step(press(core.ActionRight))
	assert.Equal(t, 3, g.Stats().Ticks, "no ticks after game over")

	res := g.Step(press(core.ActionRestart))
	assert.False(t, res.State.GameOver)
	assert.Zero(t, g.Stats().Ticks)
}

func TestPauseSuspendsScene(t *testing.T) {
	g := newGame(t, testConfig(), 20, 10)
	start := g.player.Transform().Position()

	res := g.Step(press(core.ActionPause))
	assert.True(t, res.State.Paused)
	assert.True(t, g.scene.Suspended())

	g.Step(press(core.ActionRight))
	assert.Equal(t, start, g.player.Transform().Position())
	assert.Zero(t, g.Stats().Ticks)

	res = g.Step(press(core.ActionPause))
	assert.False(t, res.State.Paused)
	assert.Equal(t, 1, g.Stats().Ticks)
}

func TestInvalidStrategyFallsBackToExact(t *testing.T) {
	cfg := testConfig()
	cfg.Physics.Strategy = "octree"
	g := newGame(t, cfg, 20, 10)
	assert.Equal(t, "exact", g.strategy)
}

func TestSetStrategyOverridesConfig(t *testing.T) {
	g := New()
	require.NoError(t, g.Configure(testConfig()))
	g.SetStrategy(physics.KindDistance)
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 30, Seed: 1})
	assert.Equal(t, "distance", g.Stats().Strategy)

	g.SetStrategy(physics.KindAABB)
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, TickRate: 30, Seed: 1})
	assert.Equal(t, "aabb", g.Stats().Strategy)
}

func TestDelegatedWithoutBroadPhaseStillMoves(t *testing.T) {
	cfg := testConfig()
	cfg.Physics.Strategy = "delegated"
	cfg.Physics.Options = nil
	cfg.Physics.BroadPhase = "none"
	g := newGame(t, cfg, 20, 10)

	start := g.player.Transform().Position()
	res := g.Step(press(core.ActionRight))
	assert.Zero(t, res.Collisions)
	assert.Equal(t, core.Sum(start, core.Right), g.player.Transform().Position())
	assert.Zero(t, g.Stats().Moves, "failed checks are not counted as resolved moves")
	assert.Equal(t, 1, g.FailedMoves())

	g.Step(press(core.ActionDown))
	assert.Equal(t, 2, g.FailedMoves())
	g.Reset(core.RuntimeConfig{ScreenW: 20, ScreenH: 10, Seed: 1})
	assert.Zero(t, g.FailedMoves())
}

func TestExactMovesDoNotFail(t *testing.T) {
	g := newGame(t, testConfig(), 20, 10)

	g.Step(press(core.ActionRight))
	g.Step(press(core.ActionDown))
	assert.Zero(t, g.FailedMoves())
}

func TestRender(t *testing.T) {
	cfg := testConfig()
	cfg.Apples.Count = 0
	cfg.Apples.PoolSize = 0
	g := newGame(t, cfg, 20, 10)

	dst := core.NewScreen(20, 10)
	g.Render(dst)
	assert.Contains(t, dst.Row(0), "Score: 0")
	assert.Equal(t, strings.Repeat("#", 20), dst.Row(1))
	assert.Equal(t, strings.Repeat("#", 20), dst.Row(9))
	assert.Equal(t, '@', dst.Get(3, 4))

	g.Step(press(core.ActionPause))
	g.Render(dst)
	assert.Contains(t, dst.String(), "Paused")
}

func TestTooSmallScreen(t *testing.T) {
	g := newGame(t, testConfig(), 8, 4)
	assert.True(t, g.tooSmall)

	res := g.Step(press(core.ActionRight))
	assert.False(t, res.State.GameOver)
	assert.Zero(t, g.Stats().Ticks)

	dst := core.NewScreen(8, 4)
	g.Render(dst)
	assert.Contains(t, dst.String(), "too")
}
