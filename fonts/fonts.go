// Package fonts registers the fixed bitmap fonts available to layouts.
package fonts

import (
	"tinygo.org/x/tinyfont"

	"lumen/fonts/font4x6"
	"lumen/fonts/font5x7"
)

// DefaultName is the font used when a widget does not select one.
const DefaultName = "5x7"

// Metrics describes a font's fixed cell geometry.
type Metrics struct {
	Width    int
	Height   int
	XAdvance int
}

type entry struct {
	font    tinyfont.Fonter
	metrics Metrics
}

var registry = map[string]entry{
	"5x7": {font5x7.Font, Metrics{font5x7.Width, font5x7.Height, font5x7.XAdvance}},
	"4x6": {font4x6.Font, Metrics{font4x6.Width, font4x6.Height, font4x6.XAdvance}},
}

// Lookup returns the font registered under name.
func Lookup(name string) (tinyfont.Fonter, Metrics, bool) {
	e, ok := registry[name]
	return e.font, e.metrics, ok
}

// Names lists the registered font names.
func Names() []string {
	return []string{"4x6", "5x7"}
}
