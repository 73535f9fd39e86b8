// Package layout defines the declarative display model and its JSON contract.
//
// A Layout is an ordered list of widgets plus a background color and refresh
// interval. It is parsed and validated once at load time; the render pipeline
// never sees an invalid structure. Loaded layouts are immutable and replaced
// wholesale on edit.
package layout

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"lumen/frame"
)

// Defaults applied when the JSON omits a field.
const (
	DefaultBackground = "#000000"
	DefaultRefresh    = 60
)

// Layout is one display configuration.
type Layout struct {
	Name           string   `json:"name"`
	Background     string   `json:"background"`
	RefreshSeconds int      `json:"refresh_seconds"`
	Widgets        []Widget `json:"widgets"`
}

// Refresh returns the display refresh interval.
func (l *Layout) Refresh() time.Duration {
	s := l.RefreshSeconds
	if s < 1 {
		s = DefaultRefresh
	}
	return time.Duration(s) * time.Second
}

// Widget returns the widget with the given id, or nil.
func (l *Layout) Widget(id string) Widget {
	for _, w := range l.Widgets {
		if w.WidgetID() == id {
			return w
		}
	}
	return nil
}

func (l *Layout) UnmarshalJSON(b []byte) error {
	var raw struct {
		Name           string            `json:"name"`
		Background     string            `json:"background"`
		RefreshSeconds int               `json:"refresh_seconds"`
		Widgets        []json.RawMessage `json:"widgets"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	l.Name = raw.Name
	l.Background = raw.Background
	if l.Background == "" {
		l.Background = DefaultBackground
	}
	l.RefreshSeconds = raw.RefreshSeconds
	if l.RefreshSeconds == 0 {
		l.RefreshSeconds = DefaultRefresh
	}
	l.Widgets = l.Widgets[:0]
	for i, m := range raw.Widgets {
		w, err := decodeWidget(m)
		if err != nil {
			return fmt.Errorf("widget %d: %w", i, err)
		}
		l.Widgets = append(l.Widgets, w)
	}
	return nil
}

// Validate checks everything the render pipeline assumes: parseable colors,
// known fonts, positive refresh interval. Coordinates are deliberately not
// checked; out-of-bounds widgets clip at render time.
func (l *Layout) Validate() error {
	if _, err := frame.ParseColor(l.Background); err != nil {
		return &ConfigError{Reason: fmt.Sprintf("background: %v", err)}
	}
	if l.RefreshSeconds < 1 {
		return &ConfigError{Reason: fmt.Sprintf("refresh_seconds must be >= 1, got %d", l.RefreshSeconds)}
	}
	for i, w := range l.Widgets {
		if err := w.Validate(); err != nil {
			return fmt.Errorf("widget %d (%s): %w", i, w.Kind(), err)
		}
	}
	return nil
}

// Parse decodes and validates a layout document.
func Parse(b []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(b, &l); err != nil {
		return nil, err
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}

// Load reads and validates a layout file.
func Load(path string) (*Layout, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := Parse(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Save writes the layout as indented JSON.
func Save(l *Layout, path string) error {
	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(b, '\n'), 0o644)
}
