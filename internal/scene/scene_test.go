package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/ecs"
	"github.com/vovakirdan/tui-kernel/internal/physics"
)

// counter tracks lifecycle calls on its entity.
type counter struct {
	ecs.Base
	starts, updates, suspends, resumes, stops int
	onUpdate                                  func()
}

func (c *counter) OnStart()   { c.starts++ }
func (c *counter) OnStop()    { c.stops++ }
func (c *counter) OnSuspend() { c.suspends++ }
func (c *counter) OnResume()  { c.resumes++ }
func (c *counter) OnUpdate() {
	c.updates++
	if c.onUpdate != nil {
		c.onUpdate()
	}
}

// walker moves its entity right every tick.
type walker struct {
	ecs.Base
	cc *physics.CharacterController
}

func (w *walker) OnAwake() {
	w.cc, _ = ecs.Get[*physics.CharacterController](w.Entity())
}

func (w *walker) OnUpdate() {
	if w.cc != nil {
		_, _ = w.cc.Move(core.Vec(1, 0))
	}
}

func TestSpawnIntoRunningSceneStarts(t *testing.T) {
	s := New("test")
	early := ecs.New("early")
	c1 := ecs.Add[counter](early)
	require.NoError(t, s.Spawn(early))
	assert.Zero(t, c1.starts)

	s.Start()
	s.Start()
	assert.Equal(t, 1, c1.starts)

	late := ecs.New("late")
	c2 := ecs.Add[counter](late)
	require.NoError(t, s.Spawn(late))
	assert.Equal(t, 1, c2.starts)

	assert.ErrorIs(t, s.Spawn(late), ErrAlreadySpawned)
	assert.ErrorIs(t, s.Spawn(nil), ecs.ErrInvalidArgument)
}

func TestUpdateSkippedWhileSuspended(t *testing.T) {
	s := New("test")
	e := ecs.New("e")
	c := ecs.Add[counter](e)
	require.NoError(t, s.Spawn(e))

	s.Update()
	assert.Zero(t, c.updates, "stopped scene does not update")

	s.Start()
	s.Tick()
	s.Suspend()
	s.Tick()
	s.Suspend()
	s.Resume()
	s.Tick()

	assert.Equal(t, 2, c.updates)
	assert.Equal(t, 1, c.suspends)
	assert.Equal(t, 1, c.resumes)
	assert.Equal(t, uint64(2), s.Ticks())
}

func TestDestroyDuringTickIsDeferred(t *testing.T) {
	s := New("test")
	a, b := ecs.New("a"), ecs.New("b")
	ca := ecs.Add[counter](a)
	cb := ecs.Add[counter](b)
	ca.onUpdate = func() { require.NoError(t, s.Destroy(b)) }
	require.NoError(t, s.Spawn(a))
	require.NoError(t, s.Spawn(b))
	s.Start()

	s.Tick()
	assert.Equal(t, 1, cb.updates, "b still updates in the tick it was destroyed")
	assert.Equal(t, 1, cb.stops)
	assert.True(t, b.Destroyed())
	assert.Equal(t, 1, s.Len())

	assert.ErrorIs(t, s.Destroy(b), ErrNotInScene)
}

func TestStopThenStart(t *testing.T) {
	s := New("test")
	e := ecs.New("e")
	c := ecs.Add[counter](e)
	require.NoError(t, s.Spawn(e))

	s.Start()
	s.Stop()
	s.Start()

	assert.Equal(t, 2, c.starts)
	assert.Equal(t, 1, c.stops)
	assert.True(t, s.Running())
}

func TestFind(t *testing.T) {
	s := New("test")
	for _, n := range []string{"apple", "apple", "player"} {
		e := ecs.New(n)
		if n == "apple" {
			e.SetTag("food")
		}
		require.NoError(t, s.Spawn(e))
	}

	p, ok := s.Find("player")
	require.True(t, ok)
	assert.Equal(t, "player", p.Name())
	_, ok = s.Find("ghost")
	assert.False(t, ok)
	assert.Len(t, s.FindByTag("food"), 2)
}

func TestTickCountsCollisions(t *testing.T) {
	s := New("test")

	player := ecs.New("player")
	_, err := player.AddComponent(physics.NewCharacterController(s.Physics(), physics.SeparationDistance{Threshold: 2}))
	require.NoError(t, err)
	ecs.Add[walker](player)

	rock := ecs.New("rock")
	rock.Transform().SetPosition(core.Vec(1, 0))
	_, err = rock.AddComponent(physics.NewCollider(s.Physics(), nil))
	require.NoError(t, err)

	require.NoError(t, s.Spawn(player))
	require.NoError(t, s.Spawn(rock))
	s.Start()

	assert.Equal(t, 1, s.Tick(), "player at 0 is 1 away from rock")
	assert.Equal(t, 1, s.Tick(), "player at 1 is on the rock")
	assert.Equal(t, 1, s.Tick(), "player at 2 is 1 away again")
	assert.Equal(t, 0, s.Tick())
	assert.Equal(t, core.Vec(4, 0), player.Transform().Position())
}

func TestRenderDrawsSprites(t *testing.T) {
	s := New("test")
	e := ecs.New("hero")
	e.Transform().SetPosition(core.Vec(2, 0))
	_, err := e.AddComponent(ecs.NewSprite(core.ColorYellow, "@"))
	require.NoError(t, err)
	require.NoError(t, s.Spawn(e))
	s.Start()

	dst := core.NewScreen(5, 1)
	s.Render(dst)
	assert.Equal(t, "  @  ", dst.Row(0))

	e.Transform().Translate(core.Vec(-1, 0))
	s.Render(dst)
	assert.Equal(t, " @   ", dst.Row(0))

	require.NoError(t, s.Destroy(e))
	s.Render(dst)
	assert.Equal(t, "     ", dst.Row(0))
}

func TestSnapshotHashIsDeterministic(t *testing.T) {
	build := func() *Scene {
		s := New("det")
		for i, n := range []string{"a", "b"} {
			e := ecs.New(n)
			e.Transform().SetPosition(core.Vec(i, i*2))
			require.NoError(t, s.Spawn(e))
		}
		s.Start()
		s.Tick()
		return s
	}

	s1, s2 := build(), build()
	assert.Equal(t, s1.Snapshot(), s2.Snapshot())
	assert.Equal(t, s1.Snapshot().Hash(), s2.Snapshot().Hash())

	a, _ := s2.Find("a")
	a.Transform().Translate(core.Vec(1, 0))
	assert.NotEqual(t, s1.Snapshot().Hash(), s2.Snapshot().Hash())
}

func TestSnapshotKeepsSpawnOrder(t *testing.T) {
	build := func(names ...string) *Scene {
		s := New("order")
		for _, n := range names {
			require.NoError(t, s.Spawn(ecs.New(n)))
		}
		return s
	}

	ab, ba := build("b", "a"), build("a", "b")
	snap := ab.Snapshot()
	require.Len(t, snap.Entities, 2)
	assert.Equal(t, "b", snap.Entities[0].Name)
	assert.Equal(t, "a", snap.Entities[1].Name)
	assert.NotEqual(t, snap.Hash(), ba.Snapshot().Hash())
}

func TestDespawnKeepsEntityReusable(t *testing.T) {
	s := New("test")
	e := ecs.New("apple")
	c := ecs.Add[counter](e)
	col := physics.NewCollider(s.Physics(), nil)
	_, err := e.AddComponent(col)
	require.NoError(t, err)
	require.NoError(t, s.Spawn(e))
	s.Start()
	require.True(t, s.Physics().Registered(col))

	require.NoError(t, s.Despawn(e))
	assert.Equal(t, 0, s.Len())
	assert.False(t, e.Destroyed())
	assert.False(t, s.Physics().Registered(col), "stopped colliders leave the engine")
	assert.ErrorIs(t, s.Despawn(e), ErrNotInScene)

	require.NoError(t, s.Spawn(e))
	assert.Equal(t, 2, c.starts)
	assert.True(t, s.Physics().Registered(col))
}

func TestDespawnAndRespawnWithinTick(t *testing.T) {
	s := New("test")
	apple := ecs.New("apple")
	ca := ecs.Add[counter](apple)
	driver := ecs.New("driver")
	cd := ecs.Add[counter](driver)
	cd.onUpdate = func() {
		require.NoError(t, s.Despawn(apple))
		require.NoError(t, s.Spawn(apple))
	}
	require.NoError(t, s.Spawn(driver))
	require.NoError(t, s.Spawn(apple))
	s.Start()

	s.Tick()
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 2, ca.starts)
	assert.Equal(t, 1, ca.stops)
	assert.True(t, apple.Started())
}
