// Package render composes a layout and a data snapshot into a frame buffer.
//
// Compose is pure with respect to its inputs: the same layout, snapshot and
// clock time always produce a byte-identical buffer. Render-time problems
// (missing data, malformed condition expressions, unreadable image assets)
// degrade the affected widget and never abort the pass; the compositor always
// returns a complete buffer.
package render

import (
	"image"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"tinygo.org/x/tinyfont"

	"lumen/data"
	"lumen/fonts"
	"lumen/frame"
	"lumen/layout"
)

// Renderer renders layouts. The zero value is not usable; create it with New.
// A Renderer is safe for use from a single render loop; the internal caches
// only ever speed up repeat renders and never change pixel output.
type Renderer struct {
	assetsDir string
	log       *slog.Logger

	mu     sync.Mutex
	warned map[string]struct{}
	images map[string]image.Image
}

// New creates a renderer. assetsDir is the search root for image widget
// sources; it may be empty if layouts use absolute paths.
func New(assetsDir string) *Renderer {
	return &Renderer{
		assetsDir: assetsDir,
		log:       slog.Default(),
		warned:    map[string]struct{}{},
		images:    map[string]image.Image{},
	}
}

// Compose renders the layout against the snapshot at the current wall time.
func (r *Renderer) Compose(l *layout.Layout, snap data.Snapshot) *frame.Buffer {
	return r.ComposeAt(l, snap, time.Now())
}

// ComposeAt renders with an explicit clock time, which keeps clock widgets
// deterministic for callers that need it.
func (r *Renderer) ComposeAt(l *layout.Layout, snap data.Snapshot, now time.Time) *frame.Buffer {
	bg, err := frame.ParseColor(l.Background)
	if err != nil {
		// Layouts are validated at load; an unparseable background here
		// means the caller bypassed Validate. Degrade to black.
		r.warnOnce("background:"+l.Background, "unparseable background color", "color", l.Background)
		bg = color.RGBA{A: 0xFF}
	}
	buf := frame.New(bg)
	for _, w := range l.Widgets {
		r.renderWidget(buf, w, snap, now)
	}
	return buf
}

func (r *Renderer) renderWidget(buf *frame.Buffer, w layout.Widget, snap data.Snapshot, now time.Time) {
	switch w := w.(type) {
	case *layout.TextWidget:
		r.renderText(buf, w, snap)
	case *layout.RectWidget:
		c := r.resolveColor(&w.Color, snap)
		buf.Rect(w.X, w.Y, w.Width, w.Height, c, w.Filled)
	case *layout.LineWidget:
		c := r.resolveColor(&w.Color, snap)
		buf.Line(w.X1, w.Y1, w.X2, w.Y2, c)
	case *layout.ImageWidget:
		r.renderImage(buf, w, snap)
	case *layout.ClockWidget:
		r.renderClock(buf, w, snap, now)
	default:
		r.warnOnce("widget:"+w.Kind(), "unknown widget type", "type", w.Kind())
	}
}

func (r *Renderer) renderText(buf *frame.Buffer, w *layout.TextWidget, snap data.Snapshot) {
	text := w.Text
	if w.DataSource != "" {
		v, ok := snap.Resolve(w.DataSource)
		if !ok {
			v = nil // absent: the format substitutes an empty placeholder
		}
		text = r.formatValue(w.Format, v)
	}
	if text == "" {
		return
	}
	r.drawText(buf, w.Font, w.X, w.Y, text, r.resolveColor(&w.Color, snap))
}

func (r *Renderer) renderClock(buf *frame.Buffer, w *layout.ClockWidget, snap data.Snapshot, now time.Time) {
	text := clockString(w, now)
	r.drawText(buf, w.Font, w.X, w.Y, text, r.resolveColor(&w.Color, snap))
}

// drawText rasterizes glyphs left to right from the top-left corner (x, y).
// Pixels outside the canvas clip silently inside the buffer.
func (r *Renderer) drawText(buf *frame.Buffer, fontName string, x, y int, text string, c color.RGBA) {
	f, _, ok := fonts.Lookup(fontName)
	if !ok {
		// Unknown fonts are rejected at load time; fall back rather than drop.
		f, _, _ = fonts.Lookup(fonts.DefaultName)
	}
	tinyfont.WriteLine(buf.Displayer(), f, int16(x), int16(y), text, c)
}

// clockString formats the wall time the way the clock widget displays it.
func clockString(w *layout.ClockWidget, now time.Time) string {
	t := now.UTC()
	offset := w.TimezoneOffset
	if w.AutoDST && inUSDaylightTime(t) {
		offset++
	}
	t = t.Add(time.Duration(offset * float64(time.Hour)))

	if w.Format24h {
		if w.ShowSeconds {
			return t.Format("15:04:05")
		}
		return t.Format("15:04")
	}
	var s string
	if w.ShowSeconds {
		s = t.Format("3:04:05")
	} else {
		s = t.Format("3:04")
	}
	// Single-letter am/pm marker to save columns.
	if t.Format("PM") == "PM" {
		return s + "p"
	}
	return s + "a"
}

// inUSDaylightTime applies the US rule: DST runs from 02:00 on the second
// Sunday of March to 02:00 on the first Sunday of November.
func inUSDaylightTime(utc time.Time) bool {
	year := utc.Year()

	marchFirst := time.Date(year, time.March, 1, 0, 0, 0, 0, time.UTC)
	daysToSunday := (7 - int(marchFirst.Weekday())) % 7
	start := marchFirst.AddDate(0, 0, daysToSunday+7).Add(2 * time.Hour)

	novFirst := time.Date(year, time.November, 1, 0, 0, 0, 0, time.UTC)
	daysToSunday = (7 - int(novFirst.Weekday())) % 7
	end := novFirst.AddDate(0, 0, daysToSunday).Add(2 * time.Hour)

	return !utc.Before(start) && utc.Before(end)
}

// warnOnce logs a configuration warning the first time key is seen. Repeat
// renders of the same bad input stay quiet.
func (r *Renderer) warnOnce(key, msg string, args ...any) {
	r.mu.Lock()
	_, seen := r.warned[key]
	if !seen {
		r.warned[key] = struct{}{}
	}
	r.mu.Unlock()
	if !seen {
		r.log.Warn(msg, args...)
	}
}
