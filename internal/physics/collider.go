// Package physics implements collision detection for kernel entities:
// collider components, pluggable touching strategies, the engine that
// tracks registered colliders and the character controller that turns a
// move into collision notifications.
package physics

import (
	"fmt"

	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/ecs"
)

// Body is implemented by every collider flavour. Lookups through Body find
// plain colliders, rigidbodies and character controllers alike.
type Body interface {
	ecs.Component
	Body() *Collider
}

var (
	_ Body = (*Collider)(nil)
	_ Body = (*Rigidbody)(nil)
	_ Body = (*CharacterController)(nil)
)

// Collider makes an entity visible to the physics engine. A started
// collider is registered with its engine; stopping it unregisters it.
//
// IsTrigger is carried for callers that want to tell sensors apart. The
// engine treats triggers exactly like solid colliders: collisions only
// notify, nothing is blocked.
type Collider struct {
	ecs.Base

	IsTrigger bool

	strategy Strategy
	engine   *Engine
}

// NewCollider creates a collider bound to engine. A nil strategy falls back
// to ExactPosition.
func NewCollider(engine *Engine, strategy Strategy) *Collider {
	return &Collider{engine: engine, strategy: strategy}
}

// Body returns c itself. Rigidbody and CharacterController promote it, so
// their embedded collider is reachable through the Body interface.
func (c *Collider) Body() *Collider { return c }

// Engine returns the engine this collider registers with.
func (c *Collider) Engine() *Engine { return c.engine }

// SetEngine moves the collider to another engine. A registered collider is
// unregistered from the old one and registered with the new one.
func (c *Collider) SetEngine(e *Engine) error {
	if c.engine == e {
		return nil
	}
	registered := c.engine != nil && c.engine.Registered(c)
	if registered {
		c.engine.Unregister(c)
	}
	c.engine = e
	if registered && e != nil {
		return e.Register(c)
	}
	return nil
}

// Strategy returns the touching strategy.
func (c *Collider) Strategy() Strategy {
	if c.strategy == nil {
		return ExactPosition{}
	}
	return c.strategy
}

// SetStrategy replaces the touching strategy.
func (c *Collider) SetStrategy(s Strategy) { c.strategy = s }

// Position returns the world position of the owning entity.
func (c *Collider) Position() core.Vector2 {
	e := c.Entity()
	if e == nil {
		return core.Zero()
	}
	return e.Transform().WorldPosition()
}

// BoundingBox returns the world-space box of the entity's sprite.
func (c *Collider) BoundingBox() (core.Rect, error) {
	e := c.Entity()
	if e == nil {
		return core.Rect{}, ecs.ErrNotAttached
	}
	s, err := ecs.Require[*ecs.Sprite](e)
	if err != nil {
		return core.Rect{}, fmt.Errorf("physics: bounding box of %s: %w", e, err)
	}
	return s.Bounds()
}

// IsTouching asks the collider's strategy whether c touches other.
func (c *Collider) IsTouching(other *Collider) (bool, error) {
	return c.Strategy().IsTouching(c, other)
}

// Dynamic reports whether the owning entity moves under physics control,
// that is, it carries a Rigidbody or a CharacterController.
func (c *Collider) Dynamic() bool {
	e := c.Entity()
	if e == nil {
		return false
	}
	if _, ok := ecs.Get[*Rigidbody](e); ok {
		return true
	}
	_, ok := ecs.Get[*CharacterController](e)
	return ok
}

func (c *Collider) OnStart() {
	if c.engine == nil {
		return
	}
	if err := c.engine.Register(c); err != nil {
		c.engine.logger.Debug("collider already registered", "entity", c.Entity())
	}
}

func (c *Collider) OnStop() {
	if c.engine != nil {
		c.engine.Unregister(c)
	}
}

// Rigidbody is a collider whose entity is moved by game code rather than
// standing still. The engine uses it to tell static colliders from dynamic
// ones.
type Rigidbody struct {
	Collider
}

// NewRigidbody creates a rigidbody bound to engine.
func NewRigidbody(engine *Engine, strategy Strategy) *Rigidbody {
	return &Rigidbody{Collider: Collider{engine: engine, strategy: strategy}}
}

// sameEntity reports whether both colliders belong to the same entity.
func sameEntity(a, b *Collider) bool {
	ea, eb := a.Entity(), b.Entity()
	return ea != nil && ea.Equal(eb)
}

// attached returns ErrIncompatibleCollider when either collider is nil or
// detached.
func attached(self, other *Collider) error {
	if self == nil || other == nil {
		return fmt.Errorf("%w: nil collider", ErrIncompatibleCollider)
	}
	if self.Entity() == nil || other.Entity() == nil {
		return fmt.Errorf("%w: detached collider", ErrIncompatibleCollider)
	}
	return nil
}
