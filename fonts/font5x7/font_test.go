package font5x7

import (
	"image/color"
	"testing"
)

// recorder captures SetPixel calls for glyph assertions.
type recorder struct {
	pixels map[[2]int16]struct{}
}

func newRecorder() *recorder {
	return &recorder{pixels: map[[2]int16]struct{}{}}
}

func (r *recorder) Size() (int16, int16)              { return 64, 64 }
func (r *recorder) SetPixel(x, y int16, c color.RGBA) { r.pixels[[2]int16{x, y}] = struct{}{} }
func (r *recorder) Display() error                    { return nil }

func TestGlyphsStayInCell(t *testing.T) {
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	for r := rune(0x20); r <= 0x7E; r++ {
		rec := newRecorder()
		Font.GetGlyph(r).Draw(rec, 10, 10, white)
		for p := range rec.pixels {
			if p[0] < 10 || p[0] >= 10+Width || p[1] < 10 || p[1] >= 10+Height {
				t.Fatalf("rune %q painted outside its cell at (%d,%d)", r, p[0], p[1])
			}
		}
	}
}

func TestPrintableGlyphsPaint(t *testing.T) {
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	for r := rune(0x21); r <= 0x7E; r++ {
		rec := newRecorder()
		Font.GetGlyph(r).Draw(rec, 0, 0, white)
		if len(rec.pixels) == 0 {
			t.Errorf("rune %q painted no pixels", r)
		}
	}
}

func TestSpaceAndUncoveredRunesAreBlank(t *testing.T) {
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	for _, r := range []rune{' ', 'é', '世', '\n'} {
		rec := newRecorder()
		Font.GetGlyph(r).Draw(rec, 0, 0, white)
		if len(rec.pixels) != 0 {
			t.Errorf("rune %q painted %d pixels, want blank", r, len(rec.pixels))
		}
	}
}

func TestDegreeSignCovered(t *testing.T) {
	white := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	rec := newRecorder()
	Font.GetGlyph('°').Draw(rec, 0, 0, white)
	if len(rec.pixels) == 0 {
		t.Fatalf("degree sign painted no pixels")
	}
}

func TestGlyphInfo(t *testing.T) {
	info := Font.GetGlyph('A').Info()
	if info.Width != Width || info.Height != Height || info.XAdvance != XAdvance {
		t.Fatalf("Info() = %+v, want %dx%d advance %d", info, Width, Height, XAdvance)
	}
	if info.YOffset != 0 {
		t.Fatalf("Info() YOffset = %d, want 0 (top-left anchored)", info.YOffset)
	}
}
