package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/ecs"
)

// listener records every collision it is told about.
type listener struct {
	ecs.Base
	got []*Collision
}

func (l *listener) Receive(method string, args ...any) {
	if col, ok := AsCollisionEnter(method, args); ok {
		l.got = append(l.got, col)
	}
}

func spawn(t *testing.T, name string, pos core.Vector2, c ecs.Component) *ecs.Entity {
	t.Helper()
	e := ecs.New(name)
	e.Transform().SetPosition(pos)
	_, err := e.AddComponent(c)
	require.NoError(t, err)
	e.Start()
	return e
}

func TestExactPositionEndToEnd(t *testing.T) {
	eng := NewEngine()
	player := NewCharacterController(eng, ExactPosition{})
	a := spawn(t, "player", core.Vec(4, 4), player)
	wall := NewCollider(eng, ExactPosition{})
	b := spawn(t, "wall", core.Vec(4, 4), wall)

	la := ecs.Add[listener](a)
	lb := ecs.Add[listener](b)

	ok, err := player.IsTouching(wall)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = wall.IsTouching(&player.Collider)
	require.NoError(t, err)
	assert.True(t, ok)

	cols, err := player.Move(core.Vec(1, 0))
	require.NoError(t, err)
	require.Len(t, cols, 1)

	assert.Len(t, la.got, 1)
	assert.Len(t, lb.got, 1)
	assert.Same(t, la.got[0], lb.got[0], "both parties see the same collision")

	col := la.got[0]
	assert.Same(t, b, col.Entity)
	assert.Same(t, wall, col.Collider)
	require.Len(t, col.Contacts, 1)
	assert.Equal(t, core.Vec(5, 4), col.Contacts[0].Point)
	assert.Equal(t, core.Vec(1, 0), col.Contacts[0].Motion)
	assert.Same(t, a, col.Mover())
	assert.Same(t, b, col.Counterpart(a))
	assert.Same(t, a, col.Counterpart(b))

	assert.Equal(t, core.Vec(5, 4), a.Transform().Position())

	moves, contacts := eng.Stats()
	assert.Equal(t, uint64(1), moves)
	assert.Equal(t, uint64(1), contacts)
}

func TestStrategiesExcludeSameEntity(t *testing.T) {
	eng := NewEngine(WithBroadPhase(NewBoxBroadPhase()))
	e := ecs.New("twin")
	_, err := e.AddComponent(ecs.NewSprite(core.ColorWhite, "#"))
	require.NoError(t, err)
	a := NewCollider(eng, nil)
	b := NewCollider(eng, nil)
	_, err = e.AddComponent(a)
	require.NoError(t, err)
	_, err = e.AddComponent(b)
	require.NoError(t, err)

	for _, s := range []Strategy{ExactPosition{}, BoundingBox{Margin: 1}, SeparationDistance{Threshold: 1}, Delegated{}} {
		t.Run(s.Name(), func(t *testing.T) {
			ok, err := s.IsTouching(a, b)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestSameNameDifferentEntitiesTouch(t *testing.T) {
	eng := NewEngine()
	a := NewCollider(eng, SeparationDistance{Threshold: 1})
	b := NewCollider(eng, SeparationDistance{Threshold: 1})
	spawn(t, "apple", core.Vec(2, 2), a)
	spawn(t, "apple", core.Vec(2, 2), b)

	ok, err := a.IsTouching(b)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBoundingBoxWidening(t *testing.T) {
	tests := []struct {
		name string
		at   core.Vector2
		want bool
	}{
		{"overlapping", core.Vec(1, 0), true},
		{"sharing an edge", core.Vec(2, 0), true},
		{"one cell gap", core.Vec(3, 0), false},
		{"two cell gap", core.Vec(4, 0), false},
		{"diagonal corner", core.Vec(2, 2), true},
		{"below with gap", core.Vec(0, 4), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eng := NewEngine()
			a := NewCollider(eng, BoundingBox{Margin: 1})
			b := NewCollider(eng, BoundingBox{Margin: 1})
			ea := spawn(t, "a", core.Zero(), a)
			eb := spawn(t, "b", tc.at, b)
			ecs.Add[ecs.Sprite](ea).Rect = core.NewRect(0, 0, 2, 2)
			ecs.Add[ecs.Sprite](eb).Rect = core.NewRect(0, 0, 2, 2)

			ok, err := a.IsTouching(b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestBoundingBoxMatchesSpriteRect(t *testing.T) {
	c := NewCollider(NewEngine(), nil)
	e := spawn(t, "box", core.Vec(3, 7), c)

	_, err := c.BoundingBox()
	assert.ErrorIs(t, err, ecs.ErrMissingComponent)

	s := ecs.NewSprite(core.ColorRed, "###", "###")
	_, err = e.AddComponent(s)
	require.NoError(t, err)

	box, err := c.BoundingBox()
	require.NoError(t, err)
	assert.Equal(t, core.NewRect(3, 7, s.Rect.W, s.Rect.H), box)
}

func TestSeparationDistance(t *testing.T) {
	tests := []struct {
		name string
		at   core.Vector2
		want bool
	}{
		{"same cell", core.Vec(0, 0), true},
		{"adjacent", core.Vec(1, 0), false},
		{"diagonal", core.Vec(1, 1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			eng := NewEngine()
			a := NewCollider(eng, SeparationDistance{Threshold: 1})
			b := NewCollider(eng, SeparationDistance{Threshold: 1})
			spawn(t, "a", core.Zero(), a)
			spawn(t, "b", tc.at, b)

			ok, err := a.IsTouching(b)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestDelegatedDefaultFailsLoudly(t *testing.T) {
	eng := NewEngine()
	player := NewCharacterController(eng, Delegated{})
	a := spawn(t, "player", core.Zero(), player)
	spawn(t, "rock", core.Zero(), NewCollider(eng, nil))
	l := ecs.Add[listener](a)

	cols, err := player.Move(core.Vec(0, 1))
	assert.ErrorIs(t, err, ErrNotImplemented)
	assert.Nil(t, cols)
	assert.Empty(t, l.got)
	assert.Equal(t, core.Vec(0, 1), a.Transform().Position(), "the move is applied even when the check fails")
}

func TestBoxBroadPhase(t *testing.T) {
	eng := NewEngine(WithBroadPhase(NewBoxBroadPhase()))
	player := NewCharacterController(eng, Delegated{})
	a := spawn(t, "player", core.Vec(5, 5), player)
	ecs.Add[ecs.Sprite](a).Rect = core.NewRect(0, 0, 2, 1)

	rock := NewCollider(eng, nil)
	spawn(t, "rock", core.Vec(6, 5), rock)
	ok, err := player.IsTouching(rock)
	require.NoError(t, err)
	assert.True(t, ok, "static query inside the box")

	rock.Entity().Transform().SetPosition(core.Vec(7, 5))
	ok, err = player.IsTouching(rock)
	require.NoError(t, err)
	assert.False(t, ok, "static query one cell right of the box")

	mover := NewRigidbody(eng, nil)
	spawn(t, "ball", core.Vec(7, 6), mover)
	ok, err = player.IsTouching(&mover.Collider)
	require.NoError(t, err)
	assert.True(t, ok, "dynamic query gets one cell of slack")
}

func TestMoveIsNeverBlocked(t *testing.T) {
	eng := NewEngine()
	player := NewCharacterController(eng, ExactPosition{})
	a := spawn(t, "player", core.Vec(1, 1), player)
	wall := NewCollider(eng, nil)
	wall.IsTrigger = false
	spawn(t, "wall", core.Vec(1, 1), wall)

	_, err := player.Move(core.Vec(0, 1))
	require.NoError(t, err)
	assert.Equal(t, core.Vec(1, 2), a.Transform().Position())
}

func TestCollisionsFollowRegistrationOrder(t *testing.T) {
	eng := NewEngine()
	player := NewCharacterController(eng, SeparationDistance{Threshold: 2})
	spawn(t, "player", core.Zero(), player)

	var names []string
	for _, n := range []string{"c", "a", "b"} {
		spawn(t, n, core.Vec(1, 0), NewCollider(eng, nil))
		names = append(names, n)
	}
	far := NewCollider(eng, nil)
	spawn(t, "far", core.Vec(9, 9), far)

	cols, err := player.Move(core.Zero())
	require.NoError(t, err)
	require.Len(t, cols, 3)
	for i, c := range cols {
		assert.Equal(t, names[i], c.Entity.Name())
	}
}

func TestEngineSkipsInactiveColliders(t *testing.T) {
	eng := NewEngine()
	player := NewCharacterController(eng, ExactPosition{})
	spawn(t, "player", core.Zero(), player)
	off := NewCollider(eng, nil)
	spawn(t, "off", core.Zero(), off)
	hidden := NewCollider(eng, nil)
	spawn(t, "hidden", core.Zero(), hidden)

	off.Disable()
	hidden.Deactivate()

	cols, err := player.Move(core.Zero())
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestColliderLifecycleRegistration(t *testing.T) {
	eng := NewEngine()
	c := NewCollider(eng, nil)
	e := ecs.New("x")
	_, err := e.AddComponent(c)
	require.NoError(t, err)
	assert.False(t, eng.Registered(c), "registration happens on start")

	e.Start()
	assert.True(t, eng.Registered(c))
	assert.ErrorIs(t, eng.Register(c), ErrAlreadyRegistered)

	e.Stop()
	assert.False(t, eng.Registered(c))
	assert.Zero(t, eng.Len())

	other := NewEngine()
	e.Start()
	require.NoError(t, c.SetEngine(other))
	assert.False(t, eng.Registered(c))
	assert.True(t, other.Registered(c))
}

func TestClonedColliderRegistersSeparately(t *testing.T) {
	eng := NewEngine()
	proto := ecs.New("apple")
	_, err := proto.AddComponent(NewRigidbody(eng, nil))
	require.NoError(t, err)

	clones, err := ecs.Pool(proto, 3)
	require.NoError(t, err)
	for _, c := range clones {
		c.Start()
	}
	assert.Equal(t, 3, eng.Len())

	rb, ok := ecs.Get[*Rigidbody](clones[0])
	require.True(t, ok)
	assert.True(t, rb.Dynamic())
	body, ok := ecs.Get[Body](clones[1])
	require.True(t, ok)
	assert.Same(t, clones[1], body.Entity())
	assert.Same(t, clones[1], body.Body().Entity())
}

func TestBodyFindsEveryColliderKind(t *testing.T) {
	eng := NewEngine()
	tests := []struct {
		name string
		comp Body
	}{
		{"collider", NewCollider(eng, nil)},
		{"rigidbody", NewRigidbody(eng, nil)},
		{"controller", NewCharacterController(eng, nil)},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := spawn(t, tt.name, core.Vec(i, 0), tt.comp)

			body, ok := ecs.Get[Body](e)
			require.True(t, ok)
			assert.Same(t, e, body.Entity())
			assert.True(t, eng.Registered(body.Body()))
			assert.Equal(t, tt.name != "collider", body.Body().Dynamic())
		})
	}
}

func TestMoveWithoutEngine(t *testing.T) {
	cc := NewCharacterController(nil, nil)
	e := spawn(t, "loner", core.Zero(), cc)

	_, err := cc.Move(core.Vec(1, 1))
	assert.ErrorIs(t, err, ErrNoEngine)
	assert.Equal(t, core.Vec(1, 1), e.Transform().Position())

	_, err = NewCharacterController(nil, nil).Move(core.Vec(1, 0))
	assert.ErrorIs(t, err, ecs.ErrNotAttached)
}

func TestContactPointDerivedValues(t *testing.T) {
	eng := NewEngine()
	a := NewCollider(eng, nil)
	b := NewCollider(eng, nil)
	spawn(t, "a", core.Zero(), a)
	spawn(t, "b", core.Vec(3, 4), b)

	cp := ContactPoint{This: a, Other: b}
	assert.InDelta(t, 5.0, cp.Separation(), 1e-9)
	assert.Equal(t, core.Normalized(core.Vec(3, 4)), cp.Normal())
	assert.Equal(t, core.Zero(), ContactPoint{}.Normal())
}
