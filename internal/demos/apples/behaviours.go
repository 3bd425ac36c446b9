package apples

import (
	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/ecs"
	"github.com/vovakirdan/tui-kernel/internal/physics"
)

// Entity tags used by the demo.
const (
	TagPlayer = "player"
	TagApple  = "apple"
	TagWall   = "wall"
)

// CharacterMovement turns directional input into CharacterController moves.
// Steps are clamped to Bounds before they reach the controller, so the
// player stays on the field even though collisions never block.
type CharacterMovement struct {
	ecs.Base

	Speed  int
	Bounds core.Rect

	// OnBump is called for every wall the player touched during a move.
	OnBump func(wall *ecs.Entity)
	// OnMoveError is called when the collision check of a move failed. The
	// player has still moved.
	OnMoveError func(err error)

	controller *physics.CharacterController
	input      core.Vector2
	pending    bool
}

// OnAwake resolves the sibling controller. It runs again on clones.
func (m *CharacterMovement) OnAwake() {
	m.controller, _ = ecs.Get[*physics.CharacterController](m.Entity())
}

// SetInput queues the direction for the next update. A zero direction
// means the player stands still.
func (m *CharacterMovement) SetInput(dir core.Vector2) {
	m.input = dir
	m.pending = !dir.IsZero()
}

// OnUpdate performs at most one move per tick.
func (m *CharacterMovement) OnUpdate() {
	if !m.pending || m.controller == nil {
		return
	}
	m.pending = false

	pos := m.Entity().Transform().Position()
	dest := core.Sum(pos, core.Product(m.input, max(m.Speed, 1)))
	if m.Bounds.W > 0 && m.Bounds.H > 0 {
		dest.X = core.Clamp(dest.X, m.Bounds.X, m.Bounds.Right()-1)
		dest.Y = core.Clamp(dest.Y, m.Bounds.Y, m.Bounds.Bottom()-1)
	}
	// A step into the border still moves by zero, so pushing against a
	// wall reports it.
	if _, err := m.controller.Move(core.Difference(dest, pos)); err != nil && m.OnMoveError != nil {
		m.OnMoveError(err)
	}
}

// Receive counts wall contacts.
func (m *CharacterMovement) Receive(method string, args ...any) {
	col, ok := physics.AsCollisionEnter(method, args)
	if !ok {
		return
	}
	other := col.Counterpart(m.Entity())
	if other != nil && other.CompareTag(TagWall) && m.OnBump != nil {
		m.OnBump(other)
	}
}

// AppleController is the pickup behavior. When the player runs into the
// apple, OnEaten is called with the apple and the player.
type AppleController struct {
	ecs.Base

	Points  int
	OnEaten func(apple, by *ecs.Entity)
}

// Receive handles OnCollisionEnter.
func (a *AppleController) Receive(method string, args ...any) {
	col, ok := physics.AsCollisionEnter(method, args)
	if !ok {
		return
	}
	self := a.Entity()
	by := col.Counterpart(self)
	if by == nil || !by.CompareTag(TagPlayer) || !self.Started() {
		return
	}
	if a.OnEaten != nil {
		a.OnEaten(self, by)
	}
}
