package render

import (
	"fmt"
	"regexp"
	"strconv"

	"lumen/data"
)

// Format templates are a restricted substitution language: the {value}
// placeholder with an optional numeric format spec ("{value:.2f}",
// "{value:+.1f}", "{value:d}"). Nothing in the template is executed; this is
// the render-side counterpart of the expression evaluator's sandbox.
var placeholderPattern = regexp.MustCompile(`\{value(?::([^}]*))?\}`)

var numericSpecPattern = regexp.MustCompile(`^(\+?)\.(\d+)f$`)

// formatValue applies the template to a resolved value. A nil value (absent
// data) substitutes the empty placeholder; a spec that does not apply to the
// value falls back to plain substitution with a one-time warning.
func (r *Renderer) formatValue(format string, v any) string {
	if format == "" {
		format = "{value}"
	}
	return placeholderPattern.ReplaceAllStringFunc(format, func(m string) string {
		sub := placeholderPattern.FindStringSubmatch(m)
		spec := sub[1]
		if v == nil {
			return ""
		}
		if spec == "" {
			return data.String(v)
		}
		if out, ok := applySpec(spec, v); ok {
			return out
		}
		r.warnOnce("format:"+format, "format spec does not apply", "format", format)
		return data.String(v)
	})
}

func applySpec(spec string, v any) (string, bool) {
	f, ok := data.Number(v)
	if !ok {
		return "", false
	}
	if spec == "d" {
		return strconv.FormatInt(int64(f), 10), true
	}
	m := numericSpecPattern.FindStringSubmatch(spec)
	if m == nil {
		return "", false
	}
	prec, err := strconv.Atoi(m[2])
	if err != nil {
		return "", false
	}
	if m[1] == "+" {
		return fmt.Sprintf("%+.*f", prec, f), true
	}
	return fmt.Sprintf("%.*f", prec, f), true
}
