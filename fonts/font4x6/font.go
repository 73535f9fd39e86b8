// Package font4x6 is the compact 4x6 fixed bitmap font used for layout text.
//
// Coverage is digits, punctuation and uppercase letters; lowercase input is
// folded onto the uppercase glyphs. Runes outside the covered set render as a
// blank cell of the font's width. See font5x7 for the rendering contract.
//
// Concurrent use of the Font value is not safe due to internal glyph reuse.
package font4x6

import (
	"image/color"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
)

const (
	Width    = 4
	Height   = 6
	XAdvance = 5
)

// Font is the shared font instance.
var Font tinyfont.Fonter = &font4x6{}

type font4x6 struct {
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
	base := idx * Height
	// Bytes are rows, bit3 = leftmost pixel.
	for row := 0; row < Height; row++ {
		bits := glyphData[base+row]
		for col := 0; col < Width; col++ {
			if bits&(0x8>>col) == 0 {
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

func (f *font4x6) GetYAdvance() uint8 { return Height + 1 }

func (f *font4x6) GetGlyph(r rune) tinyfont.Glypher {
	f.g.r = r
	return &f.g
}

func glyphIndex(r rune) int {
	if r >= 'a' && r <= 'z' {
		r -= 'a' - 'A'
	}
	if r >= 0x20 && r <= 0x5F {
		return int(r) - 0x20
	}
	if r == '°' {
		return 64
	}
	return -1
}
