package render

import (
	"image/color"

	"lattice-life/internal/lattice"
)

// Layout maps lattice cells onto an RGBA pixel buffer. Each lattice unit is
// one pixel; a cell covers CellSize×CellSize pixels and cells sit Step
// pixels apart, leaving the gap in the background colour.
type Layout struct {
	Axis     int
	CellSize int
	Step     int
}

// LayoutFor derives the layout of a grid with axis cells per side.
func LayoutFor(cfg lattice.Config, axis int) Layout {
	return Layout{Axis: axis, CellSize: cfg.CellSize, Step: cfg.Step()}
}

// Extent returns the buffer edge length in pixels.
func (l Layout) Extent() int {
	if l.Axis == 0 {
		return 0
	}
	return (l.Axis-1)*l.Step + l.CellSize
}

// fillRGBA paints cell colours (identity order, row-major) into buf, which
// must hold 4*Extent()² bytes.
func fillRGBA(buf []byte, l Layout, colors []color.RGBA, background color.RGBA) {
	for i := 0; i+3 < len(buf); i += 4 {
		buf[i+0] = background.R
		buf[i+1] = background.G
		buf[i+2] = background.B
		buf[i+3] = background.A
	}
	extent := l.Extent()
	for id, c := range colors {
		cx := (id % l.Axis) * l.Step
		cy := (id / l.Axis) * l.Step
		for dy := 0; dy < l.CellSize; dy++ {
			row := (cy + dy) * extent
			for dx := 0; dx < l.CellSize; dx++ {
				base := (row + cx + dx) * 4
				buf[base+0] = c.R
				buf[base+1] = c.G
				buf[base+2] = c.B
				buf[base+3] = c.A
			}
		}
	}
}
