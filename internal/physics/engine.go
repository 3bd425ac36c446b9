package physics

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/logging"
)

// Engine tracks the colliders taking part in collision checks. Colliders
// register themselves when they start. Queries walk the registry in
// registration order, which is also the order collisions are reported in.
//
// Engine is not safe for concurrent use; the kernel runs one tick at a time.
type Engine struct {
	colliders []*Collider
	broad     BroadPhase
	logger    *log.Logger

	moves    uint64
	contacts uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithBroadPhase installs the broad phase used by Delegated colliders.
func WithBroadPhase(bp BroadPhase) Option {
	return func(e *Engine) {
		if bp != nil {
			e.broad = bp
		}
	}
}

// WithLogger sets the logger collision events are written to.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEngine creates an empty engine. Without WithBroadPhase, Delegated
// colliders fail with ErrNotImplemented.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		broad:  Unimplemented{},
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// BroadPhase returns the installed broad phase.
func (e *Engine) BroadPhase() BroadPhase { return e.broad }

// Logger returns the engine logger.
func (e *Engine) Logger() *log.Logger { return e.logger }

// Register adds c to the registry.
func (e *Engine) Register(c *Collider) error {
	if c == nil {
		return fmt.Errorf("%w: nil collider", ErrIncompatibleCollider)
	}
	if e.Registered(c) {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, c.Entity())
	}
	e.colliders = append(e.colliders, c)
	return nil
}

// Unregister removes c and reports whether it was registered.
func (e *Engine) Unregister(c *Collider) bool {
	for i, rc := range e.colliders {
		if rc == c {
			e.colliders = append(e.colliders[:i], e.colliders[i+1:]...)
			return true
		}
	}
	return false
}

// Registered reports whether c is in the registry.
func (e *Engine) Registered(c *Collider) bool {
	for _, rc := range e.colliders {
		if rc == c {
			return true
		}
	}
	return false
}

// Colliders returns a copy of the registry in registration order.
func (e *Engine) Colliders() []*Collider {
	out := make([]*Collider, len(e.colliders))
	copy(out, e.colliders)
	return out
}

// Len returns the number of registered colliders.
func (e *Engine) Len() int { return len(e.colliders) }

// CheckCollisions tests mover against every other registered collider and
// returns one Collision per touching collider, each holding a single
// contact. Colliders that are inactive or disabled are skipped, and so is
// the mover itself.
//
// Touching is evaluated at the current positions; callers check before
// applying motion. The first strategy error aborts the query.
func (e *Engine) CheckCollisions(mover *Collider, motion core.Vector2) ([]Collision, error) {
	if mover == nil || mover.Entity() == nil {
		return nil, fmt.Errorf("%w: mover is not attached", ErrIncompatibleCollider)
	}
	from := mover.Position()

	var out []Collision
	for _, other := range e.Colliders() {
		if other == mover || other.Entity() == nil {
			continue
		}
		if !other.IsActive() || !other.IsEnabled() {
			continue
		}
		touching, err := mover.IsTouching(other)
		if err != nil {
			return nil, fmt.Errorf("physics: %s against %s: %w", mover.Entity(), other.Entity(), err)
		}
		if !touching {
			continue
		}
		out = append(out, Collision{
			Entity:   other.Entity(),
			Collider: other,
			Contacts: []ContactPoint{{
				Point:  core.Sum(from, motion),
				Motion: motion,
				This:   mover,
				Other:  other,
			}},
		})
	}
	return out, nil
}

// Stats reports how many moves were resolved and how many contacts they
// produced since the engine was created.
func (e *Engine) Stats() (moves, contacts uint64) {
	return e.moves, e.contacts
}

func (e *Engine) record(contacts int) {
	e.moves++
	e.contacts += uint64(contacts)
}
