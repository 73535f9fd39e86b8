package layout

import (
	"encoding/json"
	"fmt"

	"lumen/frame"
)

// DefaultColor is used when a widget or conditional omits a color.
const DefaultColor = "#FFFFFF"

// ColorCondition pairs a condition expression with the color applied when the
// expression evaluates to true.
type ColorCondition struct {
	When  string `json:"when"`
	Color string `json:"color"`
}

// ColorSpec is either a literal hex color or an ordered conditional list with
// a mandatory default. In JSON a literal is a plain string, a conditional is
// {"conditions": [{"when": ..., "color": ...}], "default": ...}.
type ColorSpec struct {
	Literal    string
	Conditions []ColorCondition
	Default    string
}

// IsConditional reports whether the spec carries a condition list.
func (c *ColorSpec) IsConditional() bool { return len(c.Conditions) > 0 || c.Literal == "" }

func (c *ColorSpec) UnmarshalJSON(b []byte) error {
	*c = ColorSpec{}
	if len(b) > 0 && b[0] == '"' {
		return json.Unmarshal(b, &c.Literal)
	}
	var raw struct {
		Conditions []ColorCondition `json:"conditions"`
		Default    string           `json:"default"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	c.Conditions = raw.Conditions
	c.Default = raw.Default
	if c.Default == "" {
		c.Default = DefaultColor
	}
	return nil
}

func (c ColorSpec) MarshalJSON() ([]byte, error) {
	if !c.IsConditional() {
		return json.Marshal(c.Literal)
	}
	return json.Marshal(struct {
		Conditions []ColorCondition `json:"conditions"`
		Default    string           `json:"default"`
	}{c.Conditions, c.Default})
}

// Validate parses every hex color in the spec. Condition expressions are not
// validated here: a malformed expression is a render-time warning, not a
// load-time failure.
func (c *ColorSpec) Validate() error {
	if !c.IsConditional() {
		if _, err := frame.ParseColor(c.Literal); err != nil {
			return &ConfigError{Reason: err.Error()}
		}
		return nil
	}
	// A spec with no conditions and no default is an explicit empty color,
	// not an omitted one (omitted fields get a literal default upstream).
	if len(c.Conditions) == 0 && c.Default == "" {
		return &ConfigError{Reason: "empty color"}
	}
	for i, cond := range c.Conditions {
		if _, err := frame.ParseColor(cond.Color); err != nil {
			return &ConfigError{Reason: fmt.Sprintf("condition %d: %v", i, err)}
		}
	}
	if c.Default == "" {
		c.Default = DefaultColor
	}
	if _, err := frame.ParseColor(c.Default); err != nil {
		return &ConfigError{Reason: fmt.Sprintf("default: %v", err)}
	}
	return nil
}

func literalColor(s string) ColorSpec { return ColorSpec{Literal: s} }
