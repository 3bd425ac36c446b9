package physics

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-kernel/internal/core"
)

// Strategy decides whether two colliders touch. Every strategy reports
// false when both colliders belong to the same entity.
type Strategy interface {
	Name() string
	IsTouching(self, other *Collider) (bool, error)
}

// Kind names a strategy for configuration.
type Kind string

const (
	KindExact     Kind = "exact"
	KindAABB      Kind = "aabb"
	KindDistance  Kind = "distance"
	KindDelegated Kind = "delegated"
)

// Kinds lists the known strategy kinds in a stable order.
func Kinds() []Kind {
	return []Kind{KindExact, KindAABB, KindDistance, KindDelegated}
}

// Options configures a strategy. Recognised keys: "margin" (aabb, int) and
// "threshold" (distance, number).
type Options map[string]any

// NewStrategy builds a strategy by kind. Unknown keys in opts are rejected.
func NewStrategy(kind Kind, opts Options) (Strategy, error) {
	allowed := map[Kind][]string{
		KindExact:     nil,
		KindAABB:      {"margin"},
		KindDistance:  {"threshold"},
		KindDelegated: nil,
	}
	kind = Kind(strings.ToLower(strings.TrimSpace(string(kind))))
	keys, ok := allowed[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, kind)
	}
	if err := checkKeys(opts, keys); err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}

	switch kind {
	case KindAABB:
		m, err := intOption(opts, "margin", 1)
		if err != nil {
			return nil, err
		}
		if m < 0 {
			return nil, fmt.Errorf("%w: margin %d is negative", ErrInvalidOption, m)
		}
		return BoundingBox{Margin: m}, nil
	case KindDistance:
		th, err := floatOption(opts, "threshold", 1)
		if err != nil {
			return nil, err
		}
		if th <= 0 {
			return nil, fmt.Errorf("%w: threshold %v must be positive", ErrInvalidOption, th)
		}
		return SeparationDistance{Threshold: th}, nil
	case KindDelegated:
		return Delegated{}, nil
	default:
		return ExactPosition{}, nil
	}
}

func checkKeys(opts Options, allowed []string) error {
	var unknown []string
	for k := range opts {
		found := false
		for _, a := range allowed {
			if k == a {
				found = true
				break
			}
		}
		if !found {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	sort.Strings(unknown)
	return fmt.Errorf("%w: unknown keys %s", ErrInvalidOption, strings.Join(unknown, ", "))
}

func intOption(opts Options, key string, def int) (int, error) {
	v, ok := opts[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: %s=%v is not an integer", ErrInvalidOption, key, n)
		}
		return int(n), nil
	}
	return 0, fmt.Errorf("%w: %s has type %T", ErrInvalidOption, key, v)
}

func floatOption(opts Options, key string, def float64) (float64, error) {
	v, ok := opts[key]
	if !ok {
		return def, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	}
	return 0, fmt.Errorf("%w: %s has type %T", ErrInvalidOption, key, v)
}

// ExactPosition reports touching when both entities stand on the same cell.
type ExactPosition struct{}

func (ExactPosition) Name() string { return string(KindExact) }

func (ExactPosition) IsTouching(self, other *Collider) (bool, error) {
	if err := attached(self, other); err != nil {
		return false, err
	}
	if sameEntity(self, other) {
		return false, nil
	}
	return self.Position().Equal(other.Position()), nil
}

// BoundingBox compares the sprite boxes of both entities, widened by Margin
// cells on the far edges, so boxes that share an edge already touch.
type BoundingBox struct {
	Margin int
}

func (BoundingBox) Name() string { return string(KindAABB) }

func (s BoundingBox) IsTouching(self, other *Collider) (bool, error) {
	if err := attached(self, other); err != nil {
		return false, err
	}
	if sameEntity(self, other) {
		return false, nil
	}
	a, err := self.BoundingBox()
	if err != nil {
		return false, err
	}
	b, err := other.BoundingBox()
	if err != nil {
		return false, err
	}
	return boxesTouch(a, b, s.Margin), nil
}

func boxesTouch(a, b core.Rect, m int) bool {
	return a.X < b.X+b.W+m &&
		a.X+a.W+m > b.X &&
		a.Y < b.Y+b.H+m &&
		a.Y+a.H+m > b.Y
}

// SeparationDistance reports touching when the entities are closer than
// Threshold.
type SeparationDistance struct {
	Threshold float64
}

func (SeparationDistance) Name() string { return string(KindDistance) }

func (s SeparationDistance) IsTouching(self, other *Collider) (bool, error) {
	if err := attached(self, other); err != nil {
		return false, err
	}
	if sameEntity(self, other) {
		return false, nil
	}
	return core.Distance(self.Position(), other.Position()) < s.Threshold, nil
}

// Delegated hands the decision to the engine's broad phase, picking the
// static or the dynamic query by the kind of the other collider.
type Delegated struct{}

func (Delegated) Name() string { return string(KindDelegated) }

func (Delegated) IsTouching(self, other *Collider) (bool, error) {
	if err := attached(self, other); err != nil {
		return false, err
	}
	if sameEntity(self, other) {
		return false, nil
	}
	if self.Engine() == nil {
		return false, ErrNoEngine
	}
	bp := self.Engine().BroadPhase()
	if other.Dynamic() {
		return bp.IsTouchingDynamic(self, other.Position())
	}
	return bp.IsTouchingStatic(self, other.Position())
}
