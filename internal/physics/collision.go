package physics

import (
	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/ecs"
)

// MsgCollisionEnter is the broadcast method name used for collision
// notifications. The single argument is a *Collision.
const MsgCollisionEnter = "OnCollisionEnter"

// ContactPoint describes one touching pair found during a move.
//
// Point is the world-space cell the mover is heading to: its position
// before the move plus Motion. Motion is the move that produced the
// contact.
type ContactPoint struct {
	Point  core.Vector2
	Motion core.Vector2

	This  *Collider
	Other *Collider
}

// Normal is the unit vector, rounded to the grid, pointing from This toward
// Other at their current positions.
func (cp ContactPoint) Normal() core.Vector2 {
	if cp.This == nil || cp.Other == nil {
		return core.Zero()
	}
	return core.Normalized(core.Difference(cp.Other.Position(), cp.This.Position()))
}

// Separation is the current distance between both colliders.
func (cp ContactPoint) Separation() float64 {
	if cp.This == nil || cp.Other == nil {
		return 0
	}
	return core.Distance(cp.This.Position(), cp.Other.Position())
}

// Collision is the payload of an OnCollisionEnter broadcast. Entity and
// Collider name the collider that was hit; the mover is Contacts[0].This.
// Both parties receive the same value, use Counterpart to find the other
// side.
type Collision struct {
	Entity   *ecs.Entity
	Collider *Collider
	Contacts []ContactPoint
}

// Mover returns the entity whose move produced the collision.
func (c *Collision) Mover() *ecs.Entity {
	if len(c.Contacts) == 0 || c.Contacts[0].This == nil {
		return nil
	}
	return c.Contacts[0].This.Entity()
}

// Counterpart returns the other party of the collision as seen from e.
func (c *Collision) Counterpart(e *ecs.Entity) *ecs.Entity {
	if e != nil && e.Equal(c.Entity) {
		return c.Mover()
	}
	return c.Entity
}

// Contact returns the i-th contact point.
func (c *Collision) Contact(i int) (ContactPoint, bool) {
	if i < 0 || i >= len(c.Contacts) {
		return ContactPoint{}, false
	}
	return c.Contacts[i], true
}

// AsCollisionEnter unpacks an OnCollisionEnter broadcast. Receivers call it
// from their Receive method.
func AsCollisionEnter(method string, args []any) (*Collision, bool) {
	if method != MsgCollisionEnter || len(args) == 0 {
		return nil, false
	}
	col, ok := args[0].(*Collision)
	return col, ok && col != nil
}
