package ecs

import (
	"fmt"

	"github.com/vovakirdan/tui-kernel/internal/core"
)

// Transform holds an entity's placement on the grid. Every entity owns
// exactly one, created with the entity and listed first among its
// components.
//
// Moving a transform erases the entity's current on-screen representation
// before the position changes, so the renderer never leaves a stale copy.
type Transform struct {
	Base

	position core.Vector2
	Scale    core.Vector2
	Rotation int // degrees, clockwise
	parent   *Transform
}

func newTransform() *Transform {
	return &Transform{Scale: core.One()}
}

// Position returns the local position (relative to the parent, if any).
func (t *Transform) Position() core.Vector2 { return t.position }

// WorldPosition returns the position with every parent offset applied.
func (t *Transform) WorldPosition() core.Vector2 {
	p := t.position
	for cur := t.parent; cur != nil; cur = cur.parent {
		p.Add(cur.position)
	}
	return p
}

// SetPosition moves the transform to p, erasing the entity first.
func (t *Transform) SetPosition(p core.Vector2) {
	t.eraseOwner()
	t.position = p
}

// Translate moves the transform by delta, erasing the entity first.
// The erase happens even for a zero delta.
func (t *Transform) Translate(delta core.Vector2) {
	t.eraseOwner()
	t.position.Add(delta)
}

func (t *Transform) eraseOwner() {
	if e := t.Entity(); e != nil {
		e.erase()
	}
}

// Parent returns the parent transform, or nil.
func (t *Transform) Parent() *Transform { return t.parent }

// SetParent links t under p. Passing nil detaches it. A link that would
// create a cycle is rejected.
func (t *Transform) SetParent(p *Transform) error {
	for cur := p; cur != nil; cur = cur.parent {
		if cur == t {
			return fmt.Errorf("%w: transform parent cycle", ErrInvalidArgument)
		}
	}
	t.parent = p
	return nil
}
