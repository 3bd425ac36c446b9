package core

import (
	"errors"
	"fmt"
	"math"
)

// ErrDivideByZero is returned by Quotient when the divisor is zero.
var ErrDivideByZero = errors.New("core: divide by zero")

// Vector2 is an integer 2D vector on the character grid.
// Equality is structural: two vectors are equal when both coordinates match.
type Vector2 struct {
	X, Y int
}

// Vec creates a vector from its coordinates.
func Vec(x, y int) Vector2 {
	return Vector2{X: x, Y: y}
}

// Zero returns the zero vector.
func Zero() Vector2 {
	return Vector2{}
}

// One returns the vector (1, 1).
func One() Vector2 {
	return Vector2{X: 1, Y: 1}
}

// Common unit directions in screen space (y grows downward).
var (
	Up    = Vector2{X: 0, Y: -1}
	Down  = Vector2{X: 0, Y: 1}
	Left  = Vector2{X: -1, Y: 0}
	Right = Vector2{X: 1, Y: 0}
)

// String implements fmt.Stringer.
func (v Vector2) String() string {
	return fmt.Sprintf("(%d,%d)", v.X, v.Y)
}

// Equal reports whether both coordinates match.
func (v Vector2) Equal(other Vector2) bool {
	return v.X == other.X && v.Y == other.Y
}

// IsZero reports whether v is the zero vector.
func (v Vector2) IsZero() bool {
	return v.X == 0 && v.Y == 0
}

// Add adds other to v in place.
func (v *Vector2) Add(other Vector2) {
	v.X += other.X
	v.Y += other.Y
}

// Subtract subtracts other from v in place.
func (v *Vector2) Subtract(other Vector2) {
	v.X -= other.X
	v.Y -= other.Y
}

// Scale multiplies both coordinates by k in place.
func (v *Vector2) Scale(k int) {
	v.X *= k
	v.Y *= k
}

// Normalize scales v in place to unit length, rounding each coordinate to
// the nearest integer. The zero vector stays zero.
func (v *Vector2) Normalize() {
	*v = Normalized(*v)
}

// Magnitude returns the Euclidean length of v.
func (v Vector2) Magnitude() float64 {
	return math.Hypot(float64(v.X), float64(v.Y))
}

// SqrMagnitude returns the squared length of v.
func (v Vector2) SqrMagnitude() int {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns v scaled to unit length with coordinates rounded to
// the nearest integer.
func Normalized(v Vector2) Vector2 {
	m := v.Magnitude()
	if m == 0 {
		return Vector2{}
	}
	return Vector2{
		X: int(math.Round(float64(v.X) / m)),
		Y: int(math.Round(float64(v.Y) / m)),
	}
}

// Sum returns a + b.
func Sum(a, b Vector2) Vector2 {
	return Vector2{X: a.X + b.X, Y: a.Y + b.Y}
}

// Difference returns a - b.
func Difference(a, b Vector2) Vector2 {
	return Vector2{X: a.X - b.X, Y: a.Y - b.Y}
}

// Product returns v scaled by k.
func Product(v Vector2, k int) Vector2 {
	return Vector2{X: v.X * k, Y: v.Y * k}
}

// Quotient returns v divided by d using integer division.
func Quotient(v Vector2, d int) (Vector2, error) {
	if d == 0 {
		return Vector2{}, ErrDivideByZero
	}
	return Vector2{X: v.X / d, Y: v.Y / d}, nil
}

// Dot returns the dot product of a and b.
func Dot(a, b Vector2) int {
	return a.X*b.X + a.Y*b.Y
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vector2) float64 {
	return Difference(b, a).Magnitude()
}

// Angle returns the unsigned angle in radians between a and b.
// It returns 0 when either vector is zero.
func Angle(a, b Vector2) float64 {
	ma, mb := a.Magnitude(), b.Magnitude()
	if ma == 0 || mb == 0 {
		return 0
	}
	cos := float64(Dot(a, b)) / (ma * mb)
	return math.Acos(ClampF(cos, -1, 1))
}

// Lerp interpolates between a and b by t in [0, 1], rounding to the grid.
// t is clamped to [0, 1].
func Lerp(a, b Vector2, t float64) Vector2 {
	t = ClampF(t, 0, 1)
	return Vector2{
		X: a.X + int(math.Round(float64(b.X-a.X)*t)),
		Y: a.Y + int(math.Round(float64(b.Y-a.Y)*t)),
	}
}

// Reflect mirrors direction across the surface described by normal.
// The normal is normalized first; a zero normal returns direction unchanged.
func Reflect(direction, normal Vector2) Vector2 {
	n := Normalized(normal)
	if n.IsZero() {
		return direction
	}
	d := 2 * Dot(direction, n)
	return Vector2{X: direction.X - d*n.X, Y: direction.Y - d*n.Y}
}

// Perpendicular returns v rotated 90 degrees counter-clockwise.
func Perpendicular(v Vector2) Vector2 {
	return Vector2{X: -v.Y, Y: v.X}
}

// MaxVec returns the component-wise maximum of a and b.
func MaxVec(a, b Vector2) Vector2 {
	return Vector2{X: Max(a.X, b.X), Y: Max(a.Y, b.Y)}
}

// MinVec returns the component-wise minimum of a and b.
func MinVec(a, b Vector2) Vector2 {
	return Vector2{X: Min(a.X, b.X), Y: Min(a.Y, b.Y)}
}
