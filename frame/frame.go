// Package frame implements the fixed 64x64 pixel buffer that layouts render
// into and the device transport consumes.
//
// A Buffer is backed by a flat RGB24 byte slice in row-major order, which is
// the exact shape the Pixoo wire protocol expects. All drawing operations clip
// to the canvas; out-of-bounds pixels are dropped, never an error.
package frame

import (
	"fmt"
	"image"
	"image/color"
)

// Size is the canvas edge length in logical pixels.
const Size = 64

// ParseColor parses a hex color string ("#RRGGBB", leading '#' optional).
func ParseColor(s string) (color.RGBA, error) {
	if len(s) > 0 && s[0] == '#' {
		s = s[1:]
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want RRGGBB", s)
	}
	var v [6]uint8
	for i := 0; i < 6; i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			return color.RGBA{}, fmt.Errorf("invalid color %q: bad hex digit %q", s, s[i])
		}
		v[i] = d
	}
	return color.RGBA{
		R: v[0]<<4 | v[1],
		G: v[2]<<4 | v[3],
		B: v[4]<<4 | v[5],
		A: 0xFF,
	}, nil
}

func hexDigit(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

// FormatColor renders c back to "#RRGGBB".
func FormatColor(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Buffer is one 64x64 frame. Each render pass allocates a fresh Buffer;
// buffers are never reused or partially updated across passes.
type Buffer struct {
	pix []byte
}

// New returns a buffer filled with the background color.
func New(background color.RGBA) *Buffer {
	b := &Buffer{pix: make([]byte, Size*Size*3)}
	b.Fill(background)
	return b
}

func (b *Buffer) Width() int  { return Size }
func (b *Buffer) Height() int { return Size }

// SetPixel writes one pixel. Coordinates outside the canvas are dropped.
func (b *Buffer) SetPixel(x, y int, c color.RGBA) {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return
	}
	off := (y*Size + x) * 3
	b.pix[off+0] = c.R
	b.pix[off+1] = c.G
	b.pix[off+2] = c.B
}

// At returns the pixel at (x, y), or black for out-of-bounds coordinates.
func (b *Buffer) At(x, y int) color.RGBA {
	if x < 0 || x >= Size || y < 0 || y >= Size {
		return color.RGBA{A: 0xFF}
	}
	off := (y*Size + x) * 3
	return color.RGBA{R: b.pix[off+0], G: b.pix[off+1], B: b.pix[off+2], A: 0xFF}
}

// Fill overwrites the whole buffer with one color.
func (b *Buffer) Fill(c color.RGBA) {
	for i := 0; i < len(b.pix); i += 3 {
		b.pix[i+0] = c.R
		b.pix[i+1] = c.G
		b.pix[i+2] = c.B
	}
}

// Rect draws a rectangle with its top-left corner at (x, y). A filled rect
// covers [x, x+w) x [y, y+h); an outline is its 1px border.
func (b *Buffer) Rect(x, y, w, h int, c color.RGBA, filled bool) {
	if w <= 0 || h <= 0 {
		return
	}
	if filled {
		for py := y; py < y+h; py++ {
			for px := x; px < x+w; px++ {
				b.SetPixel(px, py, c)
			}
		}
		return
	}
	for px := x; px < x+w; px++ {
		b.SetPixel(px, y, c)
		b.SetPixel(px, y+h-1, c)
	}
	for py := y; py < y+h; py++ {
		b.SetPixel(x, py, c)
		b.SetPixel(x+w-1, py, c)
	}
}

// Line draws a single-pixel-wide connected segment from (x0, y0) to (x1, y1)
// using Bresenham's algorithm.
func (b *Buffer) Line(x0, y0, x1, y1 int, c color.RGBA) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		b.SetPixel(x0, y0, c)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Bytes returns a copy of the raw RGB24 pixel data, row-major.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, len(b.pix))
	copy(out, b.pix)
	return out
}

// Image converts the buffer to an image.RGBA for PNG export and previews.
func (b *Buffer) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Size, Size))
	for i := 0; i < Size*Size; i++ {
		img.Pix[i*4+0] = b.pix[i*3+0]
		img.Pix[i*4+1] = b.pix[i*3+1]
		img.Pix[i*4+2] = b.pix[i*3+2]
		img.Pix[i*4+3] = 0xFF
	}
	return img
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
