package core

import (
	"errors"
	"testing"
)

func TestRectContainsInclusive(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		p        Vector2
		expected bool
	}{
		{"inside", Vec(15, 15), true},
		{"top-left corner", Vec(10, 10), true},
		{"bottom-right corner (inclusive)", Vec(30, 25), true},
		{"right edge", Vec(30, 12), true},
		{"outside left", Vec(9, 15), false},
		{"outside right", Vec(31, 15), false},
		{"outside top", Vec(15, 9), false},
		{"outside bottom", Vec(15, 26), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.p); got != tc.expected {
				t.Errorf("Contains(%v) = %v, expected %v", tc.p, got, tc.expected)
			}
		})
	}
}

func TestRectOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "corner of b inside a",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "b contained in a",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "touching edges count",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: true,
		},
		{
			name:     "one-unit gap horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(11, 0, 5, 5),
			expected: false,
		},
		{
			name:     "one-unit gap vertical",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(0, 11, 5, 5),
			expected: false,
		},
		{
			name:     "cross shape has no corner inside",
			a:        NewRect(4, 0, 2, 10),
			b:        NewRect(0, 4, 10, 2),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"adjacent (no overlap)", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"cross shape", NewRect(4, 0, 2, 10), NewRect(0, 4, 10, 2), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectValidate(t *testing.T) {
	if err := NewRect(0, 0, 0, 0).Validate(); err != nil {
		t.Errorf("empty rect should be valid, got %v", err)
	}
	if err := NewRect(0, 0, -1, 3).Validate(); !errors.Is(err, ErrInvalidRect) {
		t.Errorf("Validate() = %v, expected ErrInvalidRect", err)
	}
}

func TestRectHelpers(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("Right/Bottom = %d/%d, expected 25/25", r.Right(), r.Bottom())
	}
	if cx, cy := r.Center(); cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
	if got := r.Translate(Vec(1, -1)); got != NewRect(6, 9, 20, 15) {
		t.Errorf("Translate() = %+v", got)
	}
	if got := r.Inflate(1); got != NewRect(4, 9, 22, 17) {
		t.Errorf("Inflate() = %+v", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
