package physics

import "errors"

var (
	// ErrNotImplemented is returned by the default broad phase. The
	// delegated strategy surfaces it instead of reporting "no collision".
	ErrNotImplemented = errors.New("physics: not implemented")

	// ErrNoEngine is returned when a collider is queried or moved without a
	// physics engine.
	ErrNoEngine = errors.New("physics: collider has no engine")

	// ErrUnknownStrategy is returned by NewStrategy for unknown kinds.
	ErrUnknownStrategy = errors.New("physics: unknown strategy")

	// ErrInvalidOption is returned for strategy options of the wrong type
	// or out of range.
	ErrInvalidOption = errors.New("physics: invalid strategy option")

	// ErrIncompatibleCollider is returned when a strategy is asked to test
	// a collider it cannot evaluate (nil or detached).
	ErrIncompatibleCollider = errors.New("physics: incompatible collider")

	// ErrAlreadyRegistered is returned when registering a collider twice.
	ErrAlreadyRegistered = errors.New("physics: collider already registered")
)
