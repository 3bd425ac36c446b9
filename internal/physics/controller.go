package physics

import (
	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/ecs"
)

// CharacterController is a collider that moves its entity and reports what
// it ran into. Moves are never blocked: collisions only notify.
type CharacterController struct {
	Collider
}

// NewCharacterController creates a controller bound to engine.
func NewCharacterController(engine *Engine, strategy Strategy) *CharacterController {
	return &CharacterController{Collider: Collider{engine: engine, strategy: strategy}}
}

// Move checks for collisions at the current position, translates the entity
// by motion and then broadcasts OnCollisionEnter with each Collision to the
// mover and to the entity that was hit, in registration order.
//
// The translation happens even when the check fails; the error is returned
// and nothing is broadcast.
func (cc *CharacterController) Move(motion core.Vector2) ([]Collision, error) {
	e := cc.Entity()
	if e == nil {
		return nil, ecs.ErrNotAttached
	}

	var (
		collisions []Collision
		err        error
	)
	if cc.engine == nil {
		err = ErrNoEngine
	} else {
		collisions, err = cc.engine.CheckCollisions(&cc.Collider, motion)
	}

	e.Transform().Translate(motion)

	if err != nil {
		if cc.engine != nil {
			cc.engine.logger.Warn("collision check failed", "entity", e, "motion", motion, "error", err)
		}
		return nil, err
	}

	for i := range collisions {
		col := &collisions[i]
		e.Broadcast(MsgCollisionEnter, col)
		if col.Entity != nil && !col.Entity.Equal(e) {
			col.Entity.Broadcast(MsgCollisionEnter, col)
		}
		cc.engine.logger.Debug("collision enter",
			"mover", e,
			"other", col.Entity,
			"point", col.Contacts[0].Point,
			"trigger", col.Collider.IsTrigger,
		)
	}
	cc.engine.record(len(collisions))
	return collisions, nil
}
