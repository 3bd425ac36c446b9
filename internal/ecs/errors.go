package ecs

import "errors"

var (
	// ErrInvalidArgument covers malformed calls: nil components, negative
	// pool sizes, parent cycles.
	ErrInvalidArgument = errors.New("ecs: invalid argument")

	// ErrTypeMismatch is returned when a component is compared with a value
	// that is not a component.
	ErrTypeMismatch = errors.New("ecs: type mismatch")

	// ErrComponentOwned is returned when attaching a component that already
	// belongs to an entity.
	ErrComponentOwned = errors.New("ecs: component already owned by an entity")

	// ErrMissingComponent is returned when a required component is absent.
	ErrMissingComponent = errors.New("ecs: missing component")

	// ErrNotAttached is returned when removing a component the entity does
	// not own.
	ErrNotAttached = errors.New("ecs: component not attached to entity")
)
