// Package font5x7 is the 5x7 fixed bitmap font used for layout text.
//
// It implements tinyfont.Fonter so text widgets can draw through
// tinyfont.WriteLine onto any drivers.Displayer. Glyphs are drawn with (x, y)
// as the top-left corner of the cell and advance a fixed 6 pixels per rune.
// Runes outside the covered set render as a blank cell; rendering is total
// over any input string.
//
// Concurrent use of the Font value is not safe due to internal glyph reuse.
package font5x7

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

// Width and Height describe one glyph cell. XAdvance includes 1px spacing.
const (
	Width    = 5
	Height   = 7
	XAdvance = 6
)

// Font is the shared font instance.
var Font tinyfont.Fonter = &font5x7{}

type font5x7 struct {
	g glyph
}

type glyph struct {
	r rune
}

func (g *glyph) Draw(display drivers.Displayer, x, y int16, c color.RGBA) {
	idx := glyphIndex(g.r)
	if idx < 0 {
		return
	}
	base := idx * Width
	// Bytes are columns, bit0 = top pixel.
	for col := 0; col < Width; col++ {
		bits := glyphData[base+col]
		for row := 0; row < Height; row++ {
			if bits&(1<<row) == 0 {
				continue
			}
			display.SetPixel(x+int16(col), y+int16(row), c)
		}
	}
}

func (g *glyph) Info() tinyfont.GlyphInfo {
	return tinyfont.GlyphInfo{
		Rune:     g.r,
		Width:    Width,
		Height:   Height,
		XAdvance: XAdvance,
		XOffset:  0,
		YOffset:  0,
	}
}

func (f *font5x7) GetYAdvance() uint8 { return Height + 1 }

func (f *font5x7) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

// glyphIndex returns the table index for r, or -1 for an uncovered rune
// (which draws as a blank cell).
func glyphIndex(r rune) int {
	if r >= 0x20 && r <= 0x7E {
		return int(r) - 0x20
	}
	if r == '°' {
		return 95
	}
	return -1
}
