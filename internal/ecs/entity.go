package ecs

import (
	"fmt"
	"reflect"
)

// Receiver is implemented by components that accept broadcast messages.
// method names the hook being invoked (for example "OnCollisionEnter").
type Receiver interface {
	Receive(method string, args ...any)
}

// Entity is a named container owning one Transform and an ordered list of
// components. Names need not be unique; identity is the hash, which is
// regenerated for every clone.
type Entity struct {
	name       string
	tag        string
	hash       string
	transform  *Transform
	components []Component
	renderer   Renderer
	started    bool
	destroyed  bool
}

// New creates an entity with a Transform at the origin.
func New(name string) *Entity {
	e := &Entity{
		name: name,
		hash: newHash(),
	}
	t := newTransform()
	e.attach(t)
	e.transform = t
	return e
}

// attach binds c to e, runs its awake hook and appends it.
func (e *Entity) attach(c Component) {
	b := c.base()
	b.bind(e, c)
	b.awaken()
	e.components = append(e.components, c)
}

// Name returns the entity name.
func (e *Entity) Name() string { return e.name }

// SetName renames the entity.
func (e *Entity) SetName(name string) { e.name = name }

// Tag returns the optional tag.
func (e *Entity) Tag() string { return e.tag }

// SetTag sets the optional tag.
func (e *Entity) SetTag(tag string) { e.tag = tag }

// CompareTag reports whether the entity carries tag.
func (e *Entity) CompareTag(tag string) bool { return e.tag == tag }

// Hash returns the identity of the entity.
func (e *Entity) Hash() string { return e.hash }

// Equal reports identity equality.
func (e *Entity) Equal(other *Entity) bool {
	if e == nil || other == nil {
		return e == other
	}
	return e.hash == other.hash
}

// Transform returns the owned transform.
func (e *Entity) Transform() *Transform { return e.transform }

// Started reports whether Start has run and Stop has not.
func (e *Entity) Started() bool { return e.started }

// Destroyed reports whether Destroy has been called.
func (e *Entity) Destroyed() bool { return e.destroyed }

// SetRenderer installs the renderer notified when the entity moves.
// Clones inherit it.
func (e *Entity) SetRenderer(r Renderer) { e.renderer = r }

// Renderer returns the installed renderer, which may be nil.
func (e *Entity) Renderer() Renderer { return e.renderer }

func (e *Entity) erase() {
	if e.renderer != nil {
		e.renderer.Erase(e)
	}
}

// String implements fmt.Stringer.
func (e *Entity) String() string {
	return fmt.Sprintf("%s#%.8s", e.name, e.hash)
}

// AddComponent attaches a constructed component. The component runs its
// awake hook before it is appended, and is started immediately when the
// entity is already running.
func (e *Entity) AddComponent(c Component) (Component, error) {
	if c == nil || reflect.ValueOf(c).IsNil() {
		return nil, fmt.Errorf("%w: nil component", ErrInvalidArgument)
	}
	if c.Entity() != nil {
		return nil, fmt.Errorf("%w: %T on %s", ErrComponentOwned, c, c.Entity())
	}
	e.attach(c)
	if e.started && !e.destroyed {
		c.Start()
	}
	return c, nil
}

// Add constructs a zero-value component of type T bound to e.
//
//	spin := ecs.Add[Spin](e)
func Add[T any, PT interface {
	*T
	Component
}](e *Entity) PT {
	c := PT(new(T))
	e.attach(c)
	if e.started && !e.destroyed {
		c.Start()
	}
	return c
}

// RemoveComponent stops and detaches c. The Transform cannot be removed.
func (e *Entity) RemoveComponent(c Component) error {
	if c == nil {
		return fmt.Errorf("%w: nil component", ErrInvalidArgument)
	}
	if t, ok := c.(*Transform); ok && t == e.transform {
		return fmt.Errorf("%w: transform cannot be removed", ErrInvalidArgument)
	}
	for i, owned := range e.components {
		if owned != c {
			continue
		}
		if e.started {
			c.Stop()
		}
		e.components = append(e.components[:i], e.components[i+1:]...)
		c.base().unbind()
		return nil
	}
	return ErrNotAttached
}

// Components returns the attached components in insertion order.
func (e *Entity) Components() []Component {
	out := make([]Component, len(e.components))
	copy(out, e.components)
	return out
}

// Get returns the first component of type T in insertion order.
// T may be a concrete pointer type or an interface.
func Get[T any](e *Entity) (T, bool) {
	for _, c := range e.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}

// GetAll returns every component of type T in insertion order.
func GetAll[T any](e *Entity) []T {
	var out []T
	for _, c := range e.components {
		if t, ok := c.(T); ok {
			out = append(out, t)
		}
	}
	return out
}

// Require is Get that reports a missing component as an error.
func Require[T any](e *Entity) (T, error) {
	t, ok := Get[T](e)
	if !ok {
		return t, fmt.Errorf("%w: %s has no %s", ErrMissingComponent, e, reflect.TypeOf((*T)(nil)).Elem())
	}
	return t, nil
}

// Start starts every component in order. It runs once; later calls are
// ignored until Stop.
func (e *Entity) Start() {
	if e.started || e.destroyed {
		return
	}
	e.started = true
	for _, c := range e.Components() {
		c.Start()
	}
}

// Update updates every component in order. Components that are inactive
// or disabled skip their hook.
func (e *Entity) Update() {
	if !e.started || e.destroyed {
		return
	}
	for _, c := range e.Components() {
		c.Update()
	}
}

// Stop stops every component in order.
func (e *Entity) Stop() {
	if !e.started {
		return
	}
	e.started = false
	for _, c := range e.Components() {
		c.Stop()
	}
}

// Resume resumes every component in order.
func (e *Entity) Resume() {
	for _, c := range e.Components() {
		c.Resume()
	}
}

// Suspend suspends every component in order.
func (e *Entity) Suspend() {
	for _, c := range e.Components() {
		c.Suspend()
	}
}

// Destroy stops the entity and marks it dead. It is idempotent.
func (e *Entity) Destroy() {
	if e.destroyed {
		return
	}
	e.Stop()
	e.destroyed = true
}

// Broadcast invokes method on every component that implements Receiver,
// in component order, with the same arguments. It returns the number of
// components that received the message.
func (e *Entity) Broadcast(method string, args ...any) int {
	n := 0
	for _, c := range e.Components() {
		if r, ok := c.(Receiver); ok {
			r.Receive(method, args...)
			n++
		}
	}
	return n
}

// Clone copies the entity with a fresh hash. Each component is copied
// (through Cloner when implemented), bound to the clone with a new hash,
// and awakened. The clone is not started.
//
// Copies are shallow: components that cache pointers to siblings should
// resolve them in OnAwake, which runs again on the clone.
func (e *Entity) Clone() *Entity {
	clone := &Entity{
		name:     e.name,
		tag:      e.tag,
		hash:     newHash(),
		renderer: e.renderer,
	}
	for _, c := range e.components {
		cp := copyComponent(c)
		clone.attach(cp)
		if t, ok := cp.(*Transform); ok && clone.transform == nil {
			clone.transform = t
		}
	}
	return clone
}

func copyComponent(c Component) Component {
	if cl, ok := c.(Cloner); ok {
		if cp := cl.CloneComponent(); cp != nil {
			return cp
		}
	}
	v := reflect.ValueOf(c).Elem()
	cp := reflect.New(v.Type())
	cp.Elem().Set(v)
	return cp.Interface().(Component)
}

// Pool clones e size times. Every clone has its own hash.
func Pool(e *Entity, size int) ([]*Entity, error) {
	if e == nil {
		return nil, fmt.Errorf("%w: nil entity", ErrInvalidArgument)
	}
	if size < 0 {
		return nil, fmt.Errorf("%w: pool size %d", ErrInvalidArgument, size)
	}
	out := make([]*Entity, size)
	for i := range out {
		out[i] = e.Clone()
	}
	return out, nil
}
