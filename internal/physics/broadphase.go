package physics

import (
	"fmt"

	"github.com/vovakirdan/tui-kernel/internal/core"
)

// BroadPhase answers the position queries behind the Delegated strategy.
// Static colliders never move on their own; dynamic ones carry a Rigidbody
// or a CharacterController.
type BroadPhase interface {
	IsTouchingStatic(self *Collider, at core.Vector2) (bool, error)
	IsTouchingDynamic(self *Collider, at core.Vector2) (bool, error)
}

// Unimplemented is the default broad phase. Every query fails with
// ErrNotImplemented, so a Delegated collider never silently misses a
// collision.
type Unimplemented struct{}

func (Unimplemented) IsTouchingStatic(self *Collider, at core.Vector2) (bool, error) {
	return false, fmt.Errorf("%w: static broad phase (query at %s)", ErrNotImplemented, at)
}

func (Unimplemented) IsTouchingDynamic(self *Collider, at core.Vector2) (bool, error) {
	return false, fmt.Errorf("%w: dynamic broad phase (query at %s)", ErrNotImplemented, at)
}

// BoxBroadPhase tests the query position against the sprite box of self.
// Dynamic objects may have moved by a cell since they were last drawn, so
// the dynamic query widens the box by DynamicSlack cells on every side.
type BoxBroadPhase struct {
	DynamicSlack int
}

// NewBoxBroadPhase returns a box broad phase with one cell of dynamic slack.
func NewBoxBroadPhase() BoxBroadPhase {
	return BoxBroadPhase{DynamicSlack: 1}
}

func (b BoxBroadPhase) IsTouchingStatic(self *Collider, at core.Vector2) (bool, error) {
	box, err := self.BoundingBox()
	if err != nil {
		return false, err
	}
	return box.ContainsCell(at), nil
}

func (b BoxBroadPhase) IsTouchingDynamic(self *Collider, at core.Vector2) (bool, error) {
	box, err := self.BoundingBox()
	if err != nil {
		return false, err
	}
	return box.Inflate(b.DynamicSlack).ContainsCell(at), nil
}
