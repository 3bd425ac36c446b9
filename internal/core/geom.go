// Package core provides the leaf types shared by the kernel: integer
// vectors, rectangles, the screen buffer and input frames. It has no
// dependencies on the rest of the module.
package core

import (
	"errors"
	"fmt"
)

// ErrInvalidRect is returned for rectangles with negative dimensions.
var ErrInvalidRect = errors.New("core: invalid rect")

// Rect is an axis-aligned rectangle: top-left position plus dimensions.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// RectAt creates a rectangle with its origin at pos.
func RectAt(pos Vector2, w, h int) Rect {
	return Rect{X: pos.X, Y: pos.Y, W: w, H: h}
}

// Validate reports ErrInvalidRect when either dimension is negative.
func (r Rect) Validate() error {
	if r.W < 0 || r.H < 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidRect, r.W, r.H)
	}
	return nil
}

// Origin returns the top-left corner.
func (r Rect) Origin() Vector2 {
	return Vector2{X: r.X, Y: r.Y}
}

// Size returns the dimensions as a vector.
func (r Rect) Size() Vector2 {
	return Vector2{X: r.W, Y: r.H}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Corners returns the four corners: top-left, top-right, bottom-left, bottom-right.
func (r Rect) Corners() [4]Vector2 {
	return [4]Vector2{
		{X: r.X, Y: r.Y},
		{X: r.Right(), Y: r.Y},
		{X: r.X, Y: r.Bottom()},
		{X: r.Right(), Y: r.Bottom()},
	}
}

// Contains reports whether p lies inside r. Both edges are inclusive, so a
// point on the right or bottom edge is contained.
func (r Rect) Contains(p Vector2) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// ContainsCell reports whether the grid cell p is covered by r, treating
// the right and bottom edges as exclusive.
func (r Rect) ContainsCell(p Vector2) bool {
	return p.X >= r.X && p.X < r.Right() && p.Y >= r.Y && p.Y < r.Bottom()
}

// Overlaps reports whether any corner of other lies inside r.
//
// This is a corner test, not a separating-axis test: two rectangles that
// cross like a plus sign, with no corner of other inside r, are reported
// as not overlapping.
func (r Rect) Overlaps(other Rect) bool {
	for _, c := range other.Corners() {
		if r.Contains(c) {
			return true
		}
	}
	return false
}

// Intersects returns true if the interiors of the two rectangles overlap.
// Uses standard half-open AABB collision detection.
func (r Rect) Intersects(other Rect) bool {
	if r.X >= other.Right() || other.X >= r.Right() {
		return false
	}
	if r.Y >= other.Bottom() || other.Y >= r.Bottom() {
		return false
	}
	return true
}

// Translate returns r moved by delta.
func (r Rect) Translate(delta Vector2) Rect {
	r.X += delta.X
	r.Y += delta.Y
	return r
}

// Inflate returns r grown by n cells on every side.
func (r Rect) Inflate(n int) Rect {
	return Rect{X: r.X - n, Y: r.Y - n, W: r.W + 2*n, H: r.H + 2*n}
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Abs returns the absolute value of an integer.
func Abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// Min returns the smaller of two integers.
func Min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
