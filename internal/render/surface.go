package render

import (
	"fmt"
	"image/color"
	"time"

	"lattice-life/internal/lattice"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// handle is the visual state of one cell.
type handle struct {
	from, to color.RGBA
	cur      color.RGBA
	fade     *gween.Tween
}

// Surface owns one visual handle per cell and turns change notifications
// into colours. It never touches simulation state.
type Surface struct {
	palette Palette
	fade    float32

	handles map[lattice.Position]*handle
	order   []*handle
	active  map[*handle]struct{}
}

// NewSurface creates a dead-coloured handle for every position, in identity
// order. Incremental changes fade over fade; zero disables fading.
func NewSurface(positions []lattice.Position, p Palette, fade time.Duration) *Surface {
	s := &Surface{
		palette: p,
		fade:    float32(fade.Seconds()),
		handles: make(map[lattice.Position]*handle, len(positions)),
		order:   make([]*handle, len(positions)),
		active:  make(map[*handle]struct{}),
	}
	for i, pos := range positions {
		h := &handle{from: p.Dead, to: p.Dead, cur: p.Dead}
		s.handles[pos] = h
		s.order[i] = h
	}
	return s
}

// Palette returns the surface palette.
func (s *Surface) Palette() Palette { return s.palette }

func (s *Surface) lookup(pos lattice.Position) *handle {
	h, ok := s.handles[pos]
	if !ok {
		// Every cell receives a handle at construction; a miss is a wiring bug.
		panic(fmt.Sprintf("render: no visual handle for cell %v", pos))
	}
	return h
}

// CellChanged implements lattice.Observer. Repaints apply immediately;
// incremental changes fade from the current colour.
func (s *Surface) CellChanged(c lattice.Change) {
	h := s.lookup(c.Position)
	target := s.palette.Color(c.State)
	if c.Repaint || s.fade <= 0 {
		h.from, h.to, h.cur = target, target, target
		h.fade = nil
		delete(s.active, h)
		return
	}
	h.from, h.to = h.cur, target
	h.fade = gween.New(0, 1, s.fade, ease.OutQuad)
	s.active[h] = struct{}{}
}

// Update advances running fades by dt seconds.
func (s *Surface) Update(dt float32) {
	for h := range s.active {
		t, done := h.fade.Update(dt)
		h.cur = lerp(h.from, h.to, t)
		if done {
			h.cur = h.to
			h.fade = nil
			delete(s.active, h)
		}
	}
}

// Animating returns the number of cells mid-fade.
func (s *Surface) Animating() int { return len(s.active) }

// Color returns the displayed colour of the cell at pos.
func (s *Surface) Color(pos lattice.Position) color.RGBA {
	return s.lookup(pos).cur
}

// Colors returns the displayed colours in identity order.
func (s *Surface) Colors() []color.RGBA {
	out := make([]color.RGBA, len(s.order))
	for i, h := range s.order {
		out[i] = h.cur
	}
	return out
}

// Fill paints the displayed colours into buf using layout l.
func (s *Surface) Fill(buf []byte, l Layout, background color.RGBA) {
	fillRGBA(buf, l, s.Colors(), background)
}
