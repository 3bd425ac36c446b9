package ecs

import (
	"unicode/utf8"

	"github.com/vovakirdan/tui-kernel/internal/core"
)

// Renderer is the render-side collaborator of the kernel. Transforms call
// Erase before every move.
type Renderer interface {
	Erase(e *Entity)
}

// Sprite is the visible representation of an entity: rows of glyphs drawn
// at the transform position offset by Pivot and by the origin of Rect.
// Rect's size is the visible area.
type Sprite struct {
	Base

	Glyphs []string
	Pivot  core.Vector2
	Rect   core.Rect
	Color  core.Color
}

// NewSprite creates a sprite sized to its glyph rows.
func NewSprite(color core.Color, rows ...string) *Sprite {
	w := 0
	for _, r := range rows {
		w = core.Max(w, utf8.RuneCountInString(r))
	}
	return &Sprite{
		Glyphs: rows,
		Rect:   core.NewRect(0, 0, w, len(rows)),
		Color:  color,
	}
}

// Bounds returns the world-space area covered by the sprite.
func (s *Sprite) Bounds() (core.Rect, error) {
	if err := s.Rect.Validate(); err != nil {
		return core.Rect{}, err
	}
	e := s.Entity()
	if e == nil {
		return core.Rect{}, ErrNotAttached
	}
	pos := e.Transform().WorldPosition()
	return core.Rect{
		X: pos.X + s.Pivot.X + s.Rect.X,
		Y: pos.Y + s.Pivot.Y + s.Rect.Y,
		W: s.Rect.W,
		H: s.Rect.H,
	}, nil
}

// Glyph returns the rune at (col, row) of the sprite, and false for cells
// outside the glyph rows or holding a space (transparent).
func (s *Sprite) Glyph(col, row int) (rune, bool) {
	if row < 0 || row >= len(s.Glyphs) || col < 0 {
		return 0, false
	}
	i := 0
	for _, r := range s.Glyphs[row] {
		if i == col {
			return r, r != ' '
		}
		i++
	}
	return 0, false
}

// CloneComponent copies the glyph rows so clones can be edited separately.
func (s *Sprite) CloneComponent() Component {
	cp := *s
	cp.Glyphs = append([]string(nil), s.Glyphs...)
	return &cp
}
