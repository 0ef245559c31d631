package ui

import (
	"image/color"

	"lattice-life/internal/render"
)

// fillCountsRGBA tints each cell by its neighbour count, fully transparent
// at zero and at tint's alpha at eight.
func fillCountsRGBA(buf []byte, l render.Layout, counts []uint8, tint color.RGBA) {
	for i := range buf {
		buf[i] = 0
	}
	extent := l.Extent()
	for id, n := range counts {
		if n == 0 {
			continue
		}
		a := uint8(uint16(tint.A) * uint16(min(n, 8)) / 8)
		// Premultiplied alpha, as ebiten expects.
		r := uint8(uint16(tint.R) * uint16(a) / 255)
		g := uint8(uint16(tint.G) * uint16(a) / 255)
		b := uint8(uint16(tint.B) * uint16(a) / 255)
		cx := (id % l.Axis) * l.Step
		cy := (id / l.Axis) * l.Step
		for dy := 0; dy < l.CellSize; dy++ {
			row := (cy + dy) * extent
			for dx := 0; dx < l.CellSize; dx++ {
				base := (row + cx + dx) * 4
				buf[base+0] = r
				buf[base+1] = g
				buf[base+2] = b
				buf[base+3] = a
			}
		}
	}
}
