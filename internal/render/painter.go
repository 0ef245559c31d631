//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads a Surface into a single image and draws it scaled.
type GridPainter struct {
	layout Layout
	img    *ebiten.Image
	buf    []byte
}

// NewGridPainter allocates a painter for the given layout.
func NewGridPainter(l Layout) *GridPainter {
	extent := l.Extent()
	if extent <= 0 {
		extent = 1
	}
	return &GridPainter{
		layout: l,
		img:    ebiten.NewImage(extent, extent),
		buf:    make([]byte, 4*extent*extent),
	}
}

// Blit paints the surface and draws it onto dst at the given scale.
func (gp *GridPainter) Blit(dst *ebiten.Image, s *Surface, background color.RGBA, scale int) {
	if gp.layout.Axis > 0 {
		s.Fill(gp.buf, gp.layout, background)
	}
	gp.img.WritePixels(gp.buf)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image in pixels.
func (gp *GridPainter) Size() (int, int) {
	b := gp.img.Bounds()
	return b.Dx(), b.Dy()
}
