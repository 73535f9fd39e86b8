package layout

import (
	"errors"
	"path/filepath"
	"testing"
)

const sampleDoc = `{
  "name": "ticker",
  "background": "#101010",
  "refresh_seconds": 30,
  "widgets": [
    {"type": "text", "id": "sym", "x": 2, "y": 2, "data_source": "stocks.AAPL.symbol", "color": "#FFFFFF"},
    {"type": "text", "x": 2, "y": 10, "data_source": "stocks.AAPL.change", "format": "{value:+.2f}",
     "color": {"conditions": [{"when": "stocks.AAPL.change < 0", "color": "#FF0000"}], "default": "#00FF00"}},
    {"type": "rect", "x": 0, "y": 20, "width": 64, "height": 1},
    {"type": "line", "x1": 0, "y1": 30, "x2": 63, "y2": 30, "color": "#333333"},
    {"type": "image", "x": 40, "y": 40, "src": "icons/{weather.icon}.png", "width": 16, "height": 16},
    {"type": "clock", "x": 2, "y": 50, "format_24h": true, "timezone_offset": -5}
  ]
}`

func TestParseSampleDoc(t *testing.T) {
	l, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() err = %v", err)
	}
	if l.Name != "ticker" {
		t.Errorf("Name = %q, want %q", l.Name, "ticker")
	}
	if l.RefreshSeconds != 30 {
		t.Errorf("RefreshSeconds = %d, want 30", l.RefreshSeconds)
	}
	if len(l.Widgets) != 6 {
		t.Fatalf("len(Widgets) = %d, want 6", len(l.Widgets))
	}

	kinds := []string{"text", "text", "rect", "line", "image", "clock"}
	for i, want := range kinds {
		if got := l.Widgets[i].Kind(); got != want {
			t.Errorf("widget %d Kind() = %q, want %q", i, got, want)
		}
	}
}

func TestParseDefaults(t *testing.T) {
	l, err := Parse([]byte(`{"widgets": [{"type": "text", "text": "hi"}, {"type": "rect", "width": 4, "height": 4}, {"type": "clock"}]}`))
	if err != nil {
		t.Fatalf("Parse() err = %v", err)
	}
	if l.Background != DefaultBackground {
		t.Errorf("Background = %q, want %q", l.Background, DefaultBackground)
	}
	if l.RefreshSeconds != DefaultRefresh {
		t.Errorf("RefreshSeconds = %d, want %d", l.RefreshSeconds, DefaultRefresh)
	}

	text := l.Widgets[0].(*TextWidget)
	if text.Font != "5x7" {
		t.Errorf("text Font = %q, want %q", text.Font, "5x7")
	}
	if text.Format != "{value}" {
		t.Errorf("text Format = %q, want %q", text.Format, "{value}")
	}
	if text.Color.IsConditional() {
		t.Errorf("text Color.IsConditional() = true, want literal default")
	}

	rect := l.Widgets[1].(*RectWidget)
	if !rect.Filled {
		t.Errorf("rect Filled = false, want true by default")
	}

	clock := l.Widgets[2].(*ClockWidget)
	if !clock.AutoDST {
		t.Errorf("clock AutoDST = false, want true by default")
	}
	if clock.Format24h {
		t.Errorf("clock Format24h = true, want false by default")
	}
}

func TestParseRejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown widget type", `{"widgets": [{"type": "sparkline"}]}`},
		{"missing widget type", `{"widgets": [{"x": 1}]}`},
		{"bad background", `{"background": "red", "widgets": []}`},
		{"bad widget color", `{"widgets": [{"type": "rect", "color": "#ZZZZZZ"}]}`},
		{"empty widget color", `{"widgets": [{"type": "rect", "color": ""}]}`},
		{"bad condition color", `{"widgets": [{"type": "rect", "color": {"conditions": [{"when": "a.b < 0", "color": "nope"}]}}]}`},
		{"unknown font", `{"widgets": [{"type": "text", "text": "x", "font": "9x15"}]}`},
		{"image without src", `{"widgets": [{"type": "image", "x": 0, "y": 0}]}`},
		{"negative refresh", `{"refresh_seconds": -5, "widgets": []}`},
		{"not json", `{widgets}`},
	}
	for _, tt := range tests {
		if _, err := Parse([]byte(tt.doc)); err == nil {
			t.Errorf("%s: Parse() err = nil, want error", tt.name)
		}
	}
}

func TestParseConfigErrorType(t *testing.T) {
	_, err := Parse([]byte(`{"widgets": [{"type": "sparkline"}]}`))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Parse() err = %v, want *ConfigError", err)
	}
}

func TestColorSpecForms(t *testing.T) {
	l, err := Parse([]byte(`{"widgets": [
		{"type": "rect", "width": 1, "height": 1, "color": "#AA BBCC"},
		{"type": "rect", "width": 1, "height": 1, "color": {"conditions": [{"when": "a.b > 0", "color": "#112233"}], "default": "#445566"}},
		{"type": "rect", "width": 1, "height": 1, "color": {"conditions": [{"when": "a.b > 0", "color": "#112233"}]}}
	]}`))
	if err == nil {
		t.Fatalf("Parse() err = nil, want error for %q", "#AA BBCC")
	}

	l, err = Parse([]byte(`{"widgets": [
		{"type": "rect", "width": 1, "height": 1, "color": "#AABBCC"},
		{"type": "rect", "width": 1, "height": 1, "color": {"conditions": [{"when": "a.b > 0", "color": "#112233"}]}}
	]}`))
	if err != nil {
		t.Fatalf("Parse() err = %v", err)
	}

	lit := l.Widgets[0].(*RectWidget).Color
	if lit.IsConditional() || lit.Literal != "#AABBCC" {
		t.Errorf("literal color = %+v, want literal #AABBCC", lit)
	}
	cond := l.Widgets[1].(*RectWidget).Color
	if !cond.IsConditional() {
		t.Fatalf("conditional color parsed as literal")
	}
	if cond.Default != DefaultColor {
		t.Errorf("conditional Default = %q, want %q", cond.Default, DefaultColor)
	}
}

func TestColorSpecEmptyLiteral(t *testing.T) {
	// An explicit "" is a ConfigError; an omitted color takes the default.
	_, err := Parse([]byte(`{"widgets": [{"type": "line", "x2": 5, "color": ""}]}`))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Parse() err = %v, want *ConfigError for empty color", err)
	}

	l, err := Parse([]byte(`{"widgets": [{"type": "line", "x2": 5}]}`))
	if err != nil {
		t.Fatalf("Parse() err = %v for omitted color", err)
	}
	if got := l.Widgets[0].(*LineWidget).Color.Literal; got != DefaultColor {
		t.Errorf("omitted color = %q, want %q", got, DefaultColor)
	}
}

func TestWidgetLookupByID(t *testing.T) {
	l, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() err = %v", err)
	}
	if w := l.Widget("sym"); w == nil || w.Kind() != "text" {
		t.Errorf("Widget(%q) = %v, want the text widget", "sym", w)
	}
	if w := l.Widget("missing"); w != nil {
		t.Errorf("Widget(%q) = %v, want nil", "missing", w)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	l, err := Parse([]byte(sampleDoc))
	if err != nil {
		t.Fatalf("Parse() err = %v", err)
	}

	path := filepath.Join(t.TempDir(), "ticker.json")
	if err := Save(l, path); err != nil {
		t.Fatalf("Save() err = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err = %v", err)
	}
	if got.Name != l.Name || len(got.Widgets) != len(l.Widgets) {
		t.Fatalf("Load() = %q/%d widgets, want %q/%d", got.Name, len(got.Widgets), l.Name, len(l.Widgets))
	}
	for i := range l.Widgets {
		if got.Widgets[i].Kind() != l.Widgets[i].Kind() {
			t.Errorf("widget %d Kind() = %q, want %q", i, got.Widgets[i].Kind(), l.Widgets[i].Kind())
		}
	}
}

func TestRefreshInterval(t *testing.T) {
	l := &Layout{RefreshSeconds: 30}
	if got := l.Refresh().Seconds(); got != 30 {
		t.Errorf("Refresh() = %vs, want 30s", got)
	}
	l = &Layout{}
	if got := l.Refresh().Seconds(); got != DefaultRefresh {
		t.Errorf("Refresh() = %vs, want %ds", got, DefaultRefresh)
	}
}
