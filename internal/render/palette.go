package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"lattice-life/internal/lattice"
)

// Palette maps the two cell states to display colours.
type Palette struct {
	Alive color.RGBA
	Dead  color.RGBA
}

// DefaultPalette is a sand cube colour on a moss ground.
var DefaultPalette = Palette{
	Alive: color.RGBA{R: 204, G: 178, B: 153, A: 255},
	Dead:  color.RGBA{R: 77, G: 128, B: 77, A: 255},
}

// Color returns the colour for s.
func (p Palette) Color(s lattice.State) color.RGBA {
	if s == lattice.Alive {
		return p.Alive
	}
	return p.Dead
}

// ParseHex parses "#rrggbb", "rrggbb" or "#rrggbbaa".
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return color.RGBA{}, fmt.Errorf("render: colour %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("render: colour %q: %w", s, err)
	}
	if len(h) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// Hex formats c as "#rrggbb".
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func lerp(a, b color.RGBA, t float32) color.RGBA {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t + 0.5)
	}
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}
