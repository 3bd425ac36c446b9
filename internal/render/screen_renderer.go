// Package render paints entity sprites onto a retained terminal canvas.
//
// The canvas keeps what was drawn between frames. Transforms erase their
// entity through the ecs.Renderer contract before every move, so only the
// cells that changed are touched.
package render

import (
	"github.com/vovakirdan/tui-kernel/internal/core"
	"github.com/vovakirdan/tui-kernel/internal/ecs"
)

// ScreenRenderer is a retained canvas implementing ecs.Renderer.
type ScreenRenderer struct {
	canvas *core.Screen
	erased int
	drawn  int
}

// NewScreenRenderer creates a blank canvas of the given size.
func NewScreenRenderer(width, height int) *ScreenRenderer {
	return &ScreenRenderer{canvas: core.NewScreen(width, height)}
}

// Canvas returns the retained canvas.
func (r *ScreenRenderer) Canvas() *core.Screen { return r.canvas }

// Resize changes the canvas size, keeping the overlapping content.
func (r *ScreenRenderer) Resize(width, height int) {
	r.canvas.Resize(width, height)
}

// Clear blanks the whole canvas.
func (r *ScreenRenderer) Clear() { r.canvas.Clear() }

// Erase blanks the visible cells of every sprite on e at the entity's
// current position.
func (r *ScreenRenderer) Erase(e *ecs.Entity) {
	r.erased++
	r.paint(e, func(x, y int, _ rune, _ core.Color) {
		r.canvas.Set(x, y, ' ')
	})
}

// Draw paints every sprite of e that is both active and enabled.
func (r *ScreenRenderer) Draw(e *ecs.Entity) {
	r.drawn++
	r.paint(e, r.canvas.SetColored)
}

// DrawAll draws entities in order; later entities paint over earlier ones.
func (r *ScreenRenderer) DrawAll(entities []*ecs.Entity) {
	for _, e := range entities {
		if e.Destroyed() {
			continue
		}
		r.Draw(e)
	}
}

// Blit copies the canvas into dst.
func (r *ScreenRenderer) Blit(dst *core.Screen) {
	dst.Blit(r.canvas)
}

// Stats returns the number of erase and draw calls seen so far.
func (r *ScreenRenderer) Stats() (erased, drawn int) {
	return r.erased, r.drawn
}

func (r *ScreenRenderer) paint(e *ecs.Entity, set func(x, y int, ch rune, c core.Color)) {
	if e == nil {
		return
	}
	for _, s := range ecs.GetAll[*ecs.Sprite](e) {
		if !s.IsActive() || !s.IsEnabled() {
			continue
		}
		box, err := s.Bounds()
		if err != nil {
			continue
		}
		for row := 0; row < box.H; row++ {
			for col := 0; col < box.W; col++ {
				if ch, ok := s.Glyph(col, row); ok {
					set(box.X+col, box.Y+row, ch, s.Color)
				}
			}
		}
	}
}
