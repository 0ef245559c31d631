package render

import (
	"bufio"
	"fmt"
	"io"

	"lattice-life/internal/core"
)

// ASCII glyphs for terminal output.
const (
	GlyphAlive = '#'
	GlyphDead  = '.'
)

// WriteASCII prints a row-major 0/1 cell buffer as text, one lattice row per
// line, preceded by a header line.
func WriteASCII(w io.Writer, header string, size core.Size, cells []uint8) error {
	bw := bufio.NewWriter(w)
	if header != "" {
		fmt.Fprintln(bw, header)
	}
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			glyph := byte(GlyphDead)
			if cells[y*size.W+x] != 0 {
				glyph = GlyphAlive
			}
			bw.WriteByte(glyph)
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
