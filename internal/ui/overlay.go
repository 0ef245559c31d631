//go:build ebiten

package ui

import (
	"image/color"

	"lattice-life/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// CountsProvider exposes per-cell live-neighbour counts in identity order.
type CountsProvider interface {
	NeighborCounts() []uint8
}

// Overlay draws the neighbour-count heat map over the lattice. Key 1
// toggles it.
type Overlay struct {
	source CountsProvider
	layout render.Layout
	scale  int
	tint   color.RGBA
	show   bool

	img *ebiten.Image
	buf []byte
}

// NewOverlay constructs a hidden overlay.
func NewOverlay(source CountsProvider, layout render.Layout, scale int) *Overlay {
	if scale <= 0 {
		scale = 1
	}
	extent := layout.Extent()
	return &Overlay{
		source: source,
		layout: layout,
		scale:  scale,
		tint:   color.RGBA{R: 230, G: 80, B: 60, A: 160},
		img:    ebiten.NewImage(max(extent, 1), max(extent, 1)),
		buf:    make([]byte, 4*extent*extent),
	}
}

// Visible reports whether the overlay is drawn.
func (o *Overlay) Visible() bool { return o.show }

// Update handles the toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.show = !o.show
	}
}

// Draw paints the overlay when visible.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.show || len(o.buf) == 0 {
		return
	}
	fillCountsRGBA(o.buf, o.layout, o.source.NeighborCounts(), o.tint)
	o.img.WritePixels(o.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(o.scale), float64(o.scale))
	screen.DrawImage(o.img, op)
}
