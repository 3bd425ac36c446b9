// Package apples is a small demo built only from kernel parts. The player
// walks around a walled field through a CharacterController and collects
// apples that are recycled from a clone pool.
package apples

import (
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-kernel/internal/config"
	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/ecs"
	"github.com/vovakirdan/tui-kernel/internal/logging"
	"github.com/vovakirdan/tui-kernel/internal/physics"
	"github.com/vovakirdan/tui-kernel/internal/registry"
	"github.com/vovakirdan/tui-kernel/internal/render"
	"github.com/vovakirdan/tui-kernel/internal/scene"
)

// ID is the registry identifier of the demo.
const ID = "apples"

const (
	hudHeight  = 1
	minScreenW = 12
	minScreenH = 6
)

var (
	configPath       string
	difficultyPreset config.DifficultyPreset
	logger           = logging.Discard()
)

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	p, _ := config.ParsePreset(preset)
	difficultyPreset = p
}

// SetLogger sets the logger new games and their physics engines write to.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// Game implements registry.Game on top of a scene.
type Game struct {
	cfg        config.ApplesConfig
	configured bool
	override   physics.Kind // strategy picked in the menu
	runtime    core.RuntimeConfig
	rng        *rand.Rand
	difficulty *config.DifficultyManager
	logger     *log.Logger

	scene    *scene.Scene
	player   *ecs.Entity
	movement *CharacterMovement
	apples   []*ecs.Entity // on the field
	reserve  []*ecs.Entity // despawned, reused first in first out
	field    core.Rect     // cells the player may occupy

	strategy  string
	score     int
	eaten     int
	bumps     int
	failed    int // moves whose collision check returned an error
	timeLimit int
	gameOver  bool
	tooSmall  bool
}

// New creates a game that loads its configuration on Reset.
func New() *Game {
	return &Game{logger: logger}
}

// Configure uses cfg instead of loading a config file.
func (g *Game) Configure(cfg config.ApplesConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.cfg = cfg
	g.configured = true
	return nil
}

// SetStrategy overrides the configured collision strategy of the player.
// Options from the config only apply to the strategy they were written for.
func (g *Game) SetStrategy(kind physics.Kind) {
	g.override = kind
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return ID }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Apples" }

// Reset builds a fresh scene.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	if !g.configured {
		g.cfg = loadConfig(g.logger)
	}
	g.rng = rand.New(rand.NewSource(runtime.Seed))
	g.difficulty = config.NewDifficultyManager(g.cfg.Difficulty)
	g.timeLimit = g.difficulty.TimeLimit(g.cfg.Gameplay.TimeLimitTicks)

	g.score, g.eaten, g.bumps, g.failed = 0, 0, 0, 0
	g.gameOver = false
	g.apples, g.reserve = nil, nil
	g.player, g.movement = nil, nil
	g.tooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	g.build()
	g.scene.Start()
	g.logger.Debug("reset", "game", ID, "seed", runtime.Seed, "strategy", g.strategy, "time_limit", g.timeLimit)
}

func loadConfig(l *log.Logger) config.ApplesConfig {
	cfg, err := config.LoadApples(configPath)
	if err != nil {
		l.Warn("cannot load apples config, using defaults", "error", err)
		cfg = config.DefaultApplesConfig()
	}
	if difficultyPreset != "" {
		config.ApplyApplesPreset(&cfg, difficultyPreset)
	}
	return cfg
}

// build creates the engine, the scene and every entity.
func (g *Game) build() {
	opts := []physics.Option{physics.WithLogger(g.logger)}
	if g.cfg.Physics.BroadPhase != "none" {
		opts = append(opts, physics.WithBroadPhase(physics.NewBoxBroadPhase()))
	}
	engine := physics.NewEngine(opts...)

	kind, options := physics.Kind(g.cfg.Physics.Strategy), physics.Options(g.cfg.Physics.Options)
	if g.override != "" && g.override != kind {
		kind, options = g.override, nil
	}
	strategy, err := physics.NewStrategy(kind, options)
	if err != nil {
		g.logger.Warn("invalid collision strategy, using exact", "strategy", kind, "error", err)
		strategy = physics.ExactPosition{}
	}
	g.strategy = strategy.Name()

	g.scene = scene.New(ID,
		scene.WithEngine(engine),
		scene.WithLogger(g.logger),
		scene.WithRenderer(render.NewScreenRenderer(g.runtime.ScreenW, g.runtime.ScreenH)),
	)
	if g.tooSmall {
		return
	}

	outer := core.NewRect(0, hudHeight, g.runtime.ScreenW, g.runtime.ScreenH-hudHeight)
	g.field = outer
	if g.cfg.Walls.Enabled {
		g.field = outer.Inflate(-1)
		g.spawnWalls(engine, outer)
	}
	g.spawnPlayer(engine, strategy)
	g.spawnApples(engine)
}

// spawnWalls lines the border of area with wall entities cloned from one
// prototype.
func (g *Game) spawnWalls(engine *physics.Engine, area core.Rect) {
	var cells []core.Vector2
	for x := area.X; x < area.Right(); x++ {
		cells = append(cells, core.Vec(x, area.Y), core.Vec(x, area.Bottom()-1))
	}
	for y := area.Y + 1; y < area.Bottom()-1; y++ {
		cells = append(cells, core.Vec(area.X, y), core.Vec(area.Right()-1, y))
	}

	proto := ecs.New("wall")
	proto.SetTag(TagWall)
	mustAdd(proto, ecs.NewSprite(core.ColorGray, g.cfg.Walls.Glyph))
	mustAdd(proto, physics.NewCollider(engine, nil))

	walls, err := ecs.Pool(proto, len(cells))
	if err != nil {
		g.logger.Error("cannot build walls", "error", err)
		return
	}
	for i, w := range walls {
		w.Transform().SetPosition(cells[i])
		g.spawn(w)
	}
}

func (g *Game) spawnPlayer(engine *physics.Engine, strategy physics.Strategy) {
	p := ecs.New("player")
	p.SetTag(TagPlayer)
	p.Transform().SetPosition(core.Vec(
		core.Clamp(g.field.X+g.cfg.Player.X, g.field.X, g.field.Right()-1),
		core.Clamp(g.field.Y+g.cfg.Player.Y, g.field.Y, g.field.Bottom()-1),
	))
	mustAdd(p, ecs.NewSprite(core.ColorBrightYellow, g.cfg.Player.Glyph))
	mustAdd(p, physics.NewCharacterController(engine, strategy))

	m := ecs.Add[CharacterMovement](p)
	m.Speed = g.cfg.Player.Speed
	m.Bounds = g.field
	m.OnBump = func(*ecs.Entity) { g.bumps++ }
	m.OnMoveError = func(error) { g.failed++ }

	g.player, g.movement = p, m
	g.spawn(p)
}

// spawnApples fills the pool and puts the first Count apples on the field.
func (g *Game) spawnApples(engine *physics.Engine) {
	proto := ecs.New("apple")
	proto.SetTag(TagApple)
	mustAdd(proto, ecs.NewSprite(core.ColorBrightRed, g.cfg.Apples.Glyph))
	mustAdd(proto, physics.NewCollider(engine, nil))
	ac := ecs.Add[AppleController](proto)
	ac.Points = g.cfg.Apples.Points
	ac.OnEaten = g.eat

	pool, err := ecs.Pool(proto, g.cfg.Apples.PoolSize)
	if err != nil {
		g.logger.Error("cannot build apple pool", "error", err)
		return
	}
	g.reserve = pool
	for i := 0; i < g.cfg.Apples.Count; i++ {
		g.placeNext()
	}
}

// placeNext moves the oldest reserve apple to a random free cell.
func (g *Game) placeNext() {
	if len(g.reserve) == 0 {
		return
	}
	pos, ok := g.freeCell()
	if !ok {
		return
	}
	a := g.reserve[0]
	g.reserve = g.reserve[1:]
	a.Transform().SetPosition(pos)
	g.apples = append(g.apples, a)
	g.spawn(a)
}

// freeCell picks a field cell not taken by the player or an apple.
func (g *Game) freeCell() (core.Vector2, bool) {
	taken := make(map[core.Vector2]bool, len(g.apples)+1)
	if g.player != nil {
		taken[g.player.Transform().Position()] = true
	}
	for _, a := range g.apples {
		taken[a.Transform().Position()] = true
	}

	var free []core.Vector2
	for y := g.field.Y; y < g.field.Bottom(); y++ {
		for x := g.field.X; x < g.field.Right(); x++ {
			if p := core.Vec(x, y); !taken[p] {
				free = append(free, p)
			}
		}
	}
	if len(free) == 0 {
		return core.Vector2{}, false
	}
	return free[g.rng.Intn(len(free))], true
}

// eat scores the apple and recycles it through the pool.
func (g *Game) eat(apple, by *ecs.Entity) {
	base := g.cfg.Apples.Points
	if ac, ok := ecs.Get[*AppleController](apple); ok {
		base = ac.Points
	}
	points := g.difficulty.Points(base, g.score, int(g.scene.Ticks()))
	g.score += points
	g.eaten++

	if err := g.scene.Despawn(apple); err != nil {
		g.logger.Warn("cannot despawn apple", "apple", apple, "error", err)
		return
	}
	for i, a := range g.apples {
		if a == apple {
			g.apples = append(g.apples[:i], g.apples[i+1:]...)
			break
		}
	}
	g.reserve = append(g.reserve, apple)
	g.logger.Debug("apple eaten", "by", by, "points", points, "score", g.score)
	g.placeNext()
}

func (g *Game) spawn(e *ecs.Entity) {
	if err := g.scene.Spawn(e); err != nil {
		g.logger.Warn("cannot spawn", "entity", e, "error", err)
	}
}

func mustAdd(e *ecs.Entity, c ecs.Component) {
	if _, err := e.AddComponent(c); err != nil {
		panic(fmt.Sprintf("apples: %v", err))
	}
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) && g.gameOver {
		rc := g.runtime
		rc.Seed = g.rng.Int63()
		g.Reset(rc)
		return core.StepResult{State: g.State()}
	}
	if g.gameOver || g.tooSmall {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		if g.scene.Suspended() {
			g.scene.Resume()
		} else {
			g.scene.Suspend()
		}
	}
	if g.scene.Suspended() {
		return core.StepResult{State: g.State()}
	}

	g.movement.SetInput(in.Direction())
	n := g.scene.Tick()

	if g.timeLimit > 0 && int(g.scene.Ticks()) >= g.timeLimit {
		g.gameOver = true
		g.logger.Info("time up", "game", ID, "score", g.score, "eaten", g.eaten, "bumps", g.bumps, "failed_moves", g.failed)
	}
	return core.StepResult{State: g.State(), Collisions: n}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Paused:   g.scene != nil && g.scene.Suspended(),
	}
}

// FailedMoves returns how many player moves had a failing collision check
// this run.
func (g *Game) FailedMoves() int { return g.failed }

// Stats reports kernel statistics for the session log.
func (g *Game) Stats() registry.RunStats {
	if g.scene == nil {
		return registry.RunStats{Strategy: g.strategy}
	}
	moves, contacts := g.scene.Physics().Stats()
	return registry.RunStats{
		Ticks:        int(g.scene.Ticks()),
		Moves:        int(moves),
		Collisions:   int(contacts),
		Strategy:     g.strategy,
		SnapshotHash: g.scene.Snapshot().Hash(),
	}
}

// Snapshot returns the scene snapshot.
func (g *Game) Snapshot() scene.Snapshot {
	return g.scene.Snapshot()
}

// Render draws the field, the HUD and any overlay.
func (g *Game) Render(dst *core.Screen) {
	if g.tooSmall {
		dst.DrawTextCentered(dst.Height()/2, "Window too small")
		return
	}
	g.scene.Render(dst)

	hud := fmt.Sprintf(" Apples  Score: %d  Time: %s  Bumps: %d", g.score, g.remaining(), g.bumps)
	dst.DrawTextColored(0, 0, hud, core.ColorBrightWhite)

	switch {
	case g.gameOver:
		g.renderOverlay(dst, "Time's up!", fmt.Sprintf("Score: %d  Press R to restart", g.score))
	case g.scene.Suspended():
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

func (g *Game) remaining() string {
	if g.timeLimit <= 0 {
		return "--"
	}
	left := max(g.timeLimit-int(g.scene.Ticks()), 0)
	if g.runtime.TickRate <= 0 {
		return fmt.Sprintf("%d", left)
	}
	return fmt.Sprintf("%ds", (left+g.runtime.TickRate-1)/g.runtime.TickRate)
}

func (g *Game) renderOverlay(dst *core.Screen, title, subtitle string) {
	y := dst.Height() / 2
	dst.DrawTextCentered(y-1, title)
	dst.DrawTextCentered(y+1, subtitle)
}
