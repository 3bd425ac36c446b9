// Package scene drives entities through their lifecycle one tick at a time.
// A scene owns its root entities, one physics engine and one renderer.
package scene

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/ecs"
	"github.com/vovakirdan/tui-kernel/internal/logging"
	"github.com/vovakirdan/tui-kernel/internal/physics"
	"github.com/vovakirdan/tui-kernel/internal/render"
)

var (
	// ErrAlreadySpawned is returned when spawning an entity twice.
	ErrAlreadySpawned = errors.New("scene: entity already spawned")

	// ErrNotInScene is returned when destroying an entity the scene does
	// not own.
	ErrNotInScene = errors.New("scene: entity not in scene")
)

// Scene is the tick driver. It is not safe for concurrent use.
type Scene struct {
	name     string
	entities []*ecs.Entity
	doomed   []*ecs.Entity
	parked   []*ecs.Entity

	engine   *physics.Engine
	renderer *render.ScreenRenderer
	logger   *log.Logger

	running   bool
	suspended bool
	updating  bool
	tick      uint64
}

// Option configures a Scene.
type Option func(*Scene)

// WithEngine uses eng instead of a fresh engine.
func WithEngine(eng *physics.Engine) Option {
	return func(s *Scene) { s.engine = eng }
}

// WithRenderer uses r as the erase target and canvas.
func WithRenderer(r *render.ScreenRenderer) Option {
	return func(s *Scene) { s.renderer = r }
}

// WithLogger sets the scene logger. The default engine shares it.
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) { s.logger = l }
}

// New creates a stopped, empty scene.
func New(name string, opts ...Option) *Scene {
	s := &Scene{name: name}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.Discard()
	}
	if s.engine == nil {
		s.engine = physics.NewEngine(physics.WithLogger(s.logger))
	}
	if s.renderer == nil {
		d := core.DefaultConfig()
		s.renderer = render.NewScreenRenderer(d.ScreenW, d.ScreenH)
	}
	return s
}

// Name returns the scene name.
func (s *Scene) Name() string { return s.name }

// Physics returns the scene's physics engine.
func (s *Scene) Physics() *physics.Engine { return s.engine }

// Renderer returns the scene's renderer.
func (s *Scene) Renderer() *render.ScreenRenderer { return s.renderer }

// Running reports whether Start was called without a matching Stop.
func (s *Scene) Running() bool { return s.running }

// Suspended reports whether the scene is paused.
func (s *Scene) Suspended() bool { return s.suspended }

// Ticks returns the number of completed ticks.
func (s *Scene) Ticks() uint64 { return s.tick }

// Spawn adds e to the scene. Entities spawned into a running scene start
// immediately.
func (s *Scene) Spawn(e *ecs.Entity) error {
	if e == nil || e.Destroyed() {
		return fmt.Errorf("%w: cannot spawn a nil or destroyed entity", ecs.ErrInvalidArgument)
	}
	if i := indexOf(s.parked, e); i >= 0 {
		// Despawned and spawned again within one tick: it never left.
		s.parked = append(s.parked[:i], s.parked[i+1:]...)
		s.drop(e)
	}
	if s.index(e) >= 0 {
		return fmt.Errorf("%w: %s", ErrAlreadySpawned, e)
	}
	e.SetRenderer(s.renderer)
	s.entities = append(s.entities, e)
	if s.running {
		e.Start()
	}
	s.logger.Debug("spawn", "scene", s.name, "entity", e)
	return nil
}

// Destroy removes e from the scene. During a tick the removal is deferred
// to the end of the tick so the update loop never skips an entity.
func (s *Scene) Destroy(e *ecs.Entity) error {
	if s.index(e) < 0 {
		return fmt.Errorf("%w: %v", ErrNotInScene, e)
	}
	if s.updating {
		for _, d := range s.doomed {
			if d == e {
				return nil
			}
		}
		s.doomed = append(s.doomed, e)
		return nil
	}
	s.remove(e)
	return nil
}

// Despawn takes e out of the scene without destroying it, so it can be
// spawned again later. The entity is erased and stopped at once; during a
// tick it leaves the entity list at the end of the tick.
func (s *Scene) Despawn(e *ecs.Entity) error {
	if s.index(e) < 0 {
		return fmt.Errorf("%w: %v", ErrNotInScene, e)
	}
	s.renderer.Erase(e)
	e.Stop()
	e.SetRenderer(nil)
	if s.updating {
		s.parked = append(s.parked, e)
		return nil
	}
	s.drop(e)
	return nil
}

func (s *Scene) drop(e *ecs.Entity) {
	if i := s.index(e); i >= 0 {
		s.entities = append(s.entities[:i], s.entities[i+1:]...)
	}
}

func (s *Scene) remove(e *ecs.Entity) {
	i := s.index(e)
	if i < 0 {
		return
	}
	s.renderer.Erase(e)
	e.Destroy()
	s.entities = append(s.entities[:i], s.entities[i+1:]...)
	s.logger.Debug("destroy", "scene", s.name, "entity", e)
}

func (s *Scene) index(e *ecs.Entity) int {
	return indexOf(s.entities, e)
}

func indexOf(list []*ecs.Entity, e *ecs.Entity) int {
	for i, x := range list {
		if x == e {
			return i
		}
	}
	return -1
}

// Start starts every entity. Calling Start on a running scene is a no-op.
func (s *Scene) Start() {
	if s.running {
		return
	}
	s.running = true
	for _, e := range s.Entities() {
		e.Start()
	}
}

// Update runs one update pass over the entities in spawn order. Nothing
// happens while the scene is stopped or suspended.
func (s *Scene) Update() {
	if !s.running || s.suspended {
		return
	}
	s.updating = true
	for _, e := range s.Entities() {
		if !e.Destroyed() {
			e.Update()
		}
	}
	s.updating = false

	doomed, parked := s.doomed, s.parked
	s.doomed, s.parked = nil, nil
	for _, e := range doomed {
		s.remove(e)
	}
	for _, e := range parked {
		s.drop(e)
	}
}

// Tick runs one update pass and returns the number of collision contacts
// resolved during it.
func (s *Scene) Tick() int {
	if !s.running || s.suspended {
		return 0
	}
	_, before := s.engine.Stats()
	s.Update()
	s.tick++
	_, after := s.engine.Stats()
	return int(after - before)
}

// Suspend pauses the scene and forwards Suspend to every entity.
func (s *Scene) Suspend() {
	if s.suspended {
		return
	}
	s.suspended = true
	for _, e := range s.Entities() {
		e.Suspend()
	}
}

// Resume unpauses the scene and forwards Resume to every entity.
func (s *Scene) Resume() {
	if !s.suspended {
		return
	}
	s.suspended = false
	for _, e := range s.Entities() {
		e.Resume()
	}
}

// Stop stops every entity. Entities stay in the scene and start again on
// the next Start.
func (s *Scene) Stop() {
	if !s.running {
		return
	}
	for _, e := range s.Entities() {
		e.Stop()
	}
	s.running = false
	s.suspended = false
}

// Entities returns the live entities in spawn order.
func (s *Scene) Entities() []*ecs.Entity {
	out := make([]*ecs.Entity, len(s.entities))
	copy(out, s.entities)
	return out
}

// Len returns the number of entities in the scene.
func (s *Scene) Len() int { return len(s.entities) }

// Find returns the first entity with the given name.
func (s *Scene) Find(name string) (*ecs.Entity, bool) {
	for _, e := range s.entities {
		if e.Name() == name {
			return e, true
		}
	}
	return nil, false
}

// FindByTag returns every entity carrying tag, in spawn order.
func (s *Scene) FindByTag(tag string) []*ecs.Entity {
	var out []*ecs.Entity
	for _, e := range s.entities {
		if e.CompareTag(tag) {
			out = append(out, e)
		}
	}
	return out
}

// Render draws every entity onto the retained canvas and copies it to dst.
func (s *Scene) Render(dst *core.Screen) {
	if s.renderer.Canvas().Width() != dst.Width() || s.renderer.Canvas().Height() != dst.Height() {
		s.renderer.Resize(dst.Width(), dst.Height())
		s.renderer.Clear()
	}
	s.renderer.DrawAll(s.entities)
	s.renderer.Blit(dst)
}
