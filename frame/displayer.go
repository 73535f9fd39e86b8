package frame

import (
	"image/color"

	"tinygo.org/x/drivers"
)

type bufDisplay struct {
	b *Buffer
}

// Displayer adapts the buffer to the drivers.Displayer interface so tinyfont
// glyph renderers can draw into it.
func (b *Buffer) Displayer() drivers.Displayer {
	return bufDisplay{b: b}
}

func (d bufDisplay) Size() (x, y int16) {
	return int16(Size), int16(Size)
}

func (d bufDisplay) SetPixel(x, y int16, c color.RGBA) {
	d.b.SetPixel(int(x), int(y), c)
}

func (d bufDisplay) Display() error { return nil }
