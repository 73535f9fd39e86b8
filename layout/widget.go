package layout

import (
	"encoding/json"
	"fmt"

	"lumen/fonts"
)

// Widget is one drawable element. Concrete types are tagged in JSON by the
// "type" field; unknown types are a load-time ConfigError.
type Widget interface {
	Kind() string
	WidgetID() string
	Validate() error
}

// TextWidget draws a static string or a formatted data-bound value.
// When both text and data_source are set, data_source wins.
type TextWidget struct {
	Type       string    `json:"type"`
	ID         string    `json:"id,omitempty"`
	X          int       `json:"x"`
	Y          int       `json:"y"`
	Font       string    `json:"font"`
	DataSource string    `json:"data_source,omitempty"`
	Text       string    `json:"text,omitempty"`
	Format     string    `json:"format"`
	Color      ColorSpec `json:"color"`
}

func (w *TextWidget) Kind() string     { return "text" }
func (w *TextWidget) WidgetID() string { return w.ID }

func (w *TextWidget) Validate() error {
	if _, _, ok := fonts.Lookup(w.Font); !ok {
		return &ConfigError{Reason: fmt.Sprintf("unknown font %q", w.Font)}
	}
	return w.Color.Validate()
}

// RectWidget draws a filled or outlined rectangle.
type RectWidget struct {
	Type   string    `json:"type"`
	ID     string    `json:"id,omitempty"`
	X      int       `json:"x"`
	Y      int       `json:"y"`
	Width  int       `json:"width"`
	Height int       `json:"height"`
	Filled bool      `json:"filled"`
	Color  ColorSpec `json:"color"`
}

func (w *RectWidget) Kind() string     { return "rect" }
func (w *RectWidget) WidgetID() string { return w.ID }
func (w *RectWidget) Validate() error  { return w.Color.Validate() }

// LineWidget draws a straight segment between two points.
type LineWidget struct {
	Type  string    `json:"type"`
	ID    string    `json:"id,omitempty"`
	X1    int       `json:"x1"`
	Y1    int       `json:"y1"`
	X2    int       `json:"x2"`
	Y2    int       `json:"y2"`
	Color ColorSpec `json:"color"`
}

func (w *LineWidget) Kind() string     { return "line" }
func (w *LineWidget) WidgetID() string { return w.ID }
func (w *LineWidget) Validate() error  { return w.Color.Validate() }

// ImageWidget draws an image asset. Width/height of 0 keep the source size;
// src may contain {data.path} placeholders resolved at render time.
type ImageWidget struct {
	Type   string `json:"type"`
	ID     string `json:"id,omitempty"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Src    string `json:"src"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

func (w *ImageWidget) Kind() string     { return "image" }
func (w *ImageWidget) WidgetID() string { return w.ID }

func (w *ImageWidget) Validate() error {
	if w.Src == "" {
		return &ConfigError{Reason: "image widget needs a src"}
	}
	return nil
}

// ClockWidget draws the current wall time. TimezoneOffset is hours from UTC;
// AutoDST applies the US daylight saving rule on top of it.
type ClockWidget struct {
	Type           string    `json:"type"`
	ID             string    `json:"id,omitempty"`
	X              int       `json:"x"`
	Y              int       `json:"y"`
	Font           string    `json:"font"`
	Format24h      bool      `json:"format_24h"`
	ShowSeconds    bool      `json:"show_seconds"`
	TimezoneOffset float64   `json:"timezone_offset"`
	AutoDST        bool      `json:"auto_dst"`
	Color          ColorSpec `json:"color"`
}

func (w *ClockWidget) Kind() string     { return "clock" }
func (w *ClockWidget) WidgetID() string { return w.ID }

func (w *ClockWidget) Validate() error {
	if _, _, ok := fonts.Lookup(w.Font); !ok {
		return &ConfigError{Reason: fmt.Sprintf("unknown font %q", w.Font)}
	}
	return w.Color.Validate()
}

func decodeWidget(raw json.RawMessage) (Widget, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, err
	}
	switch tag.Type {
	case "text":
		w := &TextWidget{
			Font:   fonts.DefaultName,
			Format: "{value}",
			Color:  literalColor(DefaultColor),
		}
		if err := json.Unmarshal(raw, w); err != nil {
			return nil, err
		}
		if w.Font == "" {
			w.Font = fonts.DefaultName
		}
		if w.Format == "" {
			w.Format = "{value}"
		}
		return w, nil
	case "rect":
		w := &RectWidget{
			Filled: true,
			Color:  literalColor(DefaultColor),
		}
		if err := json.Unmarshal(raw, w); err != nil {
			return nil, err
		}
		return w, nil
	case "line":
		w := &LineWidget{Color: literalColor(DefaultColor)}
		if err := json.Unmarshal(raw, w); err != nil {
			return nil, err
		}
		return w, nil
	case "image":
		w := &ImageWidget{}
		if err := json.Unmarshal(raw, w); err != nil {
			return nil, err
		}
		return w, nil
	case "clock":
		w := &ClockWidget{
			Font:    fonts.DefaultName,
			AutoDST: true,
			Color:   literalColor(DefaultColor),
		}
		if err := json.Unmarshal(raw, w); err != nil {
			return nil, err
		}
		if w.Font == "" {
			w.Font = fonts.DefaultName
		}
		return w, nil
	case "":
		return nil, &ConfigError{Reason: "widget missing type"}
	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("unknown widget type %q", tag.Type)}
	}
}
