// Package ecs implements the entity/component kernel: entities own a
// Transform and an ordered list of components, and every component shares
// the same lifecycle state machine.
//
// A component carries two independent flags, active and enabled, both true
// once it is attached. Update runs the OnUpdate hook only when both are set.
// Resume and Suspend run their hooks unconditionally, so a paused scene can
// be suspended without disabling anything.
//
// Concrete components embed Base and implement any of the optional hook
// interfaces (Starter, Updater, ...). Base dispatches to the hooks of the
// outer component it was bound to when the component was attached.
package ecs

import (
	"reflect"
	"strings"

	"github.com/google/uuid"
)

// Component is the capability set shared by every attached behavior.
// Implementations embed Base; the unexported method keeps the set closed to
// types that do.
type Component interface {
	Entity() *Entity
	Hash() string

	IsActive() bool
	IsEnabled() bool
	Activate()
	Deactivate()
	Enable()
	Disable()

	Start()
	Stop()
	Update()
	Resume()
	Suspend()

	base() *Base
}

// Optional lifecycle hooks. A component implements only the ones it needs.
type (
	Awaker      interface{ OnAwake() }
	Starter     interface{ OnStart() }
	Stopper     interface{ OnStop() }
	Updater     interface{ OnUpdate() }
	Resumer     interface{ OnResume() }
	Suspender   interface{ OnSuspend() }
	Activator   interface{ OnActivate() }
	Deactivator interface{ OnDeactivate() }
	Enabler     interface{ OnEnable() }
	Disabler    interface{ OnDisable() }
)

// Cloner lets a component control how it is copied when its entity is
// cloned. The returned component must be unattached; the kernel binds it to
// the clone and gives it a fresh hash. Components without a Cloner are
// copied field by field.
type Cloner interface {
	CloneComponent() Component
}

// Base holds the lifecycle state of a component.
type Base struct {
	entity  *Entity
	self    Component
	hash    string
	active  bool
	enabled bool
	awake   bool
}

func (b *Base) base() *Base { return b }

// bind attaches the component to e and resets its lifecycle state.
func (b *Base) bind(e *Entity, self Component) {
	b.entity = e
	b.self = self
	b.hash = newHash()
	b.active = true
	b.enabled = true
	b.awake = false
}

func (b *Base) unbind() {
	b.entity = nil
	b.self = nil
}

// awaken runs OnAwake once.
func (b *Base) awaken() {
	if b.awake {
		return
	}
	b.awake = true
	if h, ok := b.self.(Awaker); ok {
		h.OnAwake()
	}
}

// Entity returns the owning entity, or nil if the component is detached.
func (b *Base) Entity() *Entity { return b.entity }

// Hash returns the process-unique identity of the component.
func (b *Base) Hash() string { return b.hash }

// IsActive reports the active/inactive axis.
func (b *Base) IsActive() bool { return b.active }

// IsEnabled reports the enabled/disabled axis.
func (b *Base) IsEnabled() bool { return b.enabled }

// Activate sets the active flag and runs OnActivate.
func (b *Base) Activate() {
	b.active = true
	if h, ok := b.self.(Activator); ok {
		h.OnActivate()
	}
}

// Deactivate clears the active flag and runs OnDeactivate.
func (b *Base) Deactivate() {
	b.active = false
	if h, ok := b.self.(Deactivator); ok {
		h.OnDeactivate()
	}
}

// Enable sets the enabled flag and runs OnEnable.
func (b *Base) Enable() {
	b.enabled = true
	if h, ok := b.self.(Enabler); ok {
		h.OnEnable()
	}
}

// Disable clears the enabled flag and runs OnDisable.
func (b *Base) Disable() {
	b.enabled = false
	if h, ok := b.self.(Disabler); ok {
		h.OnDisable()
	}
}

// Start activates, enables, then runs OnStart.
func (b *Base) Start() {
	b.Activate()
	b.Enable()
	if h, ok := b.self.(Starter); ok {
		h.OnStart()
	}
}

// Stop deactivates, disables, then runs OnStop.
func (b *Base) Stop() {
	b.Deactivate()
	b.Disable()
	if h, ok := b.self.(Stopper); ok {
		h.OnStop()
	}
}

// Update runs OnUpdate only when the component is both active and enabled.
// Otherwise it is a silent no-op.
func (b *Base) Update() {
	if !b.active || !b.enabled {
		return
	}
	if h, ok := b.self.(Updater); ok {
		h.OnUpdate()
	}
}

// Resume runs OnResume regardless of the active and enabled flags.
func (b *Base) Resume() {
	if h, ok := b.self.(Resumer); ok {
		h.OnResume()
	}
}

// Suspend runs OnSuspend regardless of the active and enabled flags.
func (b *Base) Suspend() {
	if h, ok := b.self.(Suspender); ok {
		h.OnSuspend()
	}
}

// Compare orders a component against another value by hash.
// Comparing with anything that is not a Component is a programming error
// and returns ErrTypeMismatch.
func Compare(a Component, other any) (int, error) {
	b, ok := other.(Component)
	if !ok || isNil(a) || isNil(b) {
		return 0, ErrTypeMismatch
	}
	return strings.Compare(a.Hash(), b.Hash()), nil
}

// SameComponent reports whether a and b carry the same identity hash.
func SameComponent(a, b Component) bool {
	if isNil(a) || isNil(b) {
		return false
	}
	return a.Hash() == b.Hash()
}

// isNil also catches a nil pointer stored in a non-nil interface.
func isNil(c Component) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

func newHash() string {
	return uuid.NewString()
}
