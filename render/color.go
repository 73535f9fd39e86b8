package render

import (
	"image/color"

	"lumen/data"
	"lumen/expr"
	"lumen/frame"
	"lumen/layout"
)

// resolveColor turns a color spec into a concrete RGB value against the
// current snapshot. Conditionals evaluate in declared order and the first
// true condition wins; exhaustion, absent data and malformed expressions all
// fall through to the default. Evaluation happens fresh on every render pass
// because the snapshot may have changed.
func (r *Renderer) resolveColor(spec *layout.ColorSpec, snap data.Snapshot) color.RGBA {
	if !spec.IsConditional() {
		return r.parseColor(spec.Literal)
	}
	for _, cond := range spec.Conditions {
		ok, err := expr.Eval(cond.When, snap)
		if err != nil {
			r.warnOnce("expr:"+cond.When, "invalid condition expression", "when", cond.When)
			continue
		}
		if ok {
			return r.parseColor(cond.Color)
		}
	}
	d := spec.Default
	if d == "" {
		d = layout.DefaultColor
	}
	return r.parseColor(d)
}

func (r *Renderer) parseColor(s string) color.RGBA {
	c, err := frame.ParseColor(s)
	if err != nil {
		r.warnOnce("color:"+s, "unparseable color", "color", s)
		return color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	}
	return c
}
