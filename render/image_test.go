package render

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"lumen/data"
)

func writePNG(t *testing.T, path string, c color.RGBA, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

func TestImageWidgetDraws(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "dot.png"), red, 4, 4)

	l := mustParse(t, `{"widgets": [{"type": "image", "x": 10, "y": 20, "src": "dot.png"}]}`)
	buf := New(dir).ComposeAt(l, nil, testNow)

	if got := buf.At(10, 20); got != red {
		t.Fatalf("At(10,20) = %v, want %v", got, red)
	}
	if got := buf.At(13, 23); got != red {
		t.Fatalf("At(13,23) = %v, want %v", got, red)
	}
	if got := buf.At(14, 20); got != black {
		t.Fatalf("At(14,20) = %v, want untouched background", got)
	}
}

func TestImageWidgetResizes(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "big.png"), red, 32, 32)

	l := mustParse(t, `{"widgets": [{"type": "image", "x": 0, "y": 0, "src": "big.png", "width": 8, "height": 8}]}`)
	buf := New(dir).ComposeAt(l, nil, testNow)

	if got := buf.At(7, 7); got != red {
		t.Fatalf("At(7,7) = %v, want resized image to cover 8x8", got)
	}
	if got := buf.At(8, 8); got != black {
		t.Fatalf("At(8,8) = %v, want background outside the resized box", got)
	}
}

func TestImageWidgetPathPlaceholder(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "icons", "rain.png"), red, 2, 2)

	l := mustParse(t, `{"widgets": [{"type": "image", "x": 0, "y": 0, "src": "icons/{weather.icon}.png"}]}`)
	snap := data.Snapshot{"weather": map[string]any{"icon": "rain"}}
	buf := New(dir).ComposeAt(l, snap, testNow)

	if got := buf.At(0, 0); got != red {
		t.Fatalf("At(0,0) = %v, want the placeholder-resolved icon", got)
	}
}

func TestImageWidgetMissingAssetDegrades(t *testing.T) {
	l := mustParse(t, `{"widgets": [
		{"type": "image", "x": 0, "y": 0, "src": "nope.png"},
		{"type": "rect", "x": 30, "y": 30, "width": 2, "height": 2, "color": "#FF0000"}
	]}`)
	buf := New(t.TempDir()).ComposeAt(l, nil, testNow)

	// The missing asset is skipped; later widgets still draw.
	if got := buf.At(30, 30); got != red {
		t.Fatalf("At(30,30) = %v, want later widget drawn despite missing asset", got)
	}
	if got := buf.At(0, 0); got != black {
		t.Fatalf("At(0,0) = %v, want untouched background", got)
	}
}

func TestImageWidgetClipsAtEdge(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "dot.png"), red, 8, 8)

	l := mustParse(t, `{"widgets": [{"type": "image", "x": 60, "y": 60, "src": "dot.png"}]}`)
	buf := New(dir).ComposeAt(l, nil, testNow)
	if got := buf.At(63, 63); got != red {
		t.Fatalf("At(63,63) = %v, want visible corner of clipped image", got)
	}
}
