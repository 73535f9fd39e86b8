package render

import (
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"regexp"

	"github.com/nfnt/resize"

	"lumen/data"
	"lumen/frame"
	"lumen/layout"
)

var srcPlaceholderPattern = regexp.MustCompile(`\{([^}]+)\}`)

// renderImage draws an image widget. A missing or unreadable asset skips the
// widget with a one-time warning; the rest of the layout still renders.
func (r *Renderer) renderImage(buf *frame.Buffer, w *layout.ImageWidget, snap data.Snapshot) {
	src := srcPlaceholderPattern.ReplaceAllStringFunc(w.Src, func(m string) string {
		path := srcPlaceholderPattern.FindStringSubmatch(m)[1]
		v, ok := snap.Resolve(path)
		if !ok {
			return ""
		}
		return data.String(v)
	})
	if src == "" {
		return
	}

	img := r.loadImage(src)
	if img == nil {
		return
	}
	if w.Width > 0 || w.Height > 0 {
		dw := uint(w.Width)
		dh := uint(w.Height)
		if dw == 0 {
			dw = uint(img.Bounds().Dx())
		}
		if dh == 0 {
			dh = uint(img.Bounds().Dy())
		}
		img = resize.Resize(dw, dh, img, resize.NearestNeighbor)
	}

	bounds := img.Bounds()
	for py := 0; py < bounds.Dy(); py++ {
		for px := 0; px < bounds.Dx(); px++ {
			c := img.At(bounds.Min.X+px, bounds.Min.Y+py)
			cr, cg, cb, ca := c.RGBA()
			if ca <= 0x8000 {
				continue
			}
			buf.SetPixel(w.X+px, w.Y+py, rgba8(cr, cg, cb))
		}
	}
}

// loadImage resolves src against the assets directory (falling back to an
// absolute/relative path) and caches the decoded image.
func (r *Renderer) loadImage(src string) image.Image {
	r.mu.Lock()
	img, cached := r.images[src]
	r.mu.Unlock()
	if cached {
		return img
	}

	path := src
	if r.assetsDir != "" {
		if p := filepath.Join(r.assetsDir, src); fileExists(p) {
			path = p
		}
	}
	f, err := os.Open(path)
	if err != nil {
		r.warnOnce("image:"+src, "image asset not found", "src", src)
		return nil
	}
	defer f.Close()

	img, _, err = image.Decode(f)
	if err != nil {
		r.warnOnce("image:"+src, "image asset undecodable", "src", src, "error", err)
		return nil
	}

	r.mu.Lock()
	r.images[src] = img
	r.mu.Unlock()
	return img
}

func fileExists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func rgba8(r16, g16, b16 uint32) color.RGBA {
	return color.RGBA{R: uint8(r16 >> 8), G: uint8(g16 >> 8), B: uint8(b16 >> 8), A: 0xFF}
}
