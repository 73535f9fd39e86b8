// Package preview opens a desktop window mirroring the frames sent to the
// device. Useful for layout work without hardware on the desk.
package preview

import (
	"image"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"

	"lumen/frame"
)

const scale = 8

// Window displays the latest frame. Push is safe to call from any goroutine;
// Run must be called from the main goroutine and blocks until the window
// closes.
type Window struct {
	mu    sync.Mutex
	buf   *frame.Buffer
	dirty bool
}

func NewWindow() *Window {
	return &Window{}
}

// Push hands the window a newly composed frame.
func (w *Window) Push(buf *frame.Buffer) {
	w.mu.Lock()
	w.buf = buf
	w.dirty = true
	w.mu.Unlock()
}

// Run opens the window and blocks until it is closed.
func (w *Window) Run(title string) error {
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(frame.Size*scale, frame.Size*scale)
	ebiten.SetTPS(30)
	return ebiten.RunGame(&game{w: w})
}

type game struct {
	w     *Window
	img   *image.RGBA
	fbImg *ebiten.Image
}

func (g *game) Update() error { return nil }

func (g *game) Draw(screen *ebiten.Image) {
	g.w.mu.Lock()
	buf := g.w.buf
	dirty := g.w.dirty
	g.w.dirty = false
	g.w.mu.Unlock()

	if g.fbImg == nil {
		g.fbImg = ebiten.NewImage(frame.Size, frame.Size)
	}
	if buf != nil && dirty {
		g.img = buf.Image()
		g.fbImg.WritePixels(g.img.Pix)
	}
	screen.DrawImage(g.fbImg, nil)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return frame.Size, frame.Size
}
