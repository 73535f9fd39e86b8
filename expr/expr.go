// Package expr evaluates the restricted condition language used by
// conditional colors.
//
// The grammar is a single binary comparison: `<path> <op> <literal>` with
// op one of < <= > >= == != , a dotted data path on the left and a number,
// quoted string or boolean on the right. There are no boolean connectives and
// no function calls; the surface is deliberately too small to express
// anything but a comparison. Malformed expressions fail closed: Parse returns
// an error and callers treat the condition as non-matching.
package expr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"lumen/data"
)

var exprPattern = regexp.MustCompile(`^\s*([\w.]+)\s*(<=|>=|==|!=|<|>)\s*(.+?)\s*$`)

// Expr is a parsed condition.
type Expr struct {
	Path    string
	Op      string
	Literal any // float64, string or bool
}

// Parse parses a condition expression.
func Parse(s string) (*Expr, error) {
	m := exprPattern.FindStringSubmatch(s)
	if m == nil {
		return nil, fmt.Errorf("invalid expression %q", s)
	}
	return &Expr{Path: m[1], Op: m[2], Literal: parseLiteral(m[3])}, nil
}

func parseLiteral(s string) any {
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return strings.Trim(s, `'"`)
}

// Eval resolves the path against the snapshot and applies the comparison.
// A missing path, an uncoercible type mix, or an op unsupported for the
// operand types all evaluate to false; Eval never errors at evaluation time.
func (e *Expr) Eval(snap data.Snapshot) bool {
	v, ok := snap.Resolve(e.Path)
	if !ok {
		return false
	}

	if lf, lok := data.Number(v); lok {
		if rf, rok := data.Number(e.Literal); rok {
			return compareFloats(e.Op, lf, rf)
		}
	}
	if lb, lok := v.(bool); lok {
		if rb, rok := e.Literal.(bool); rok {
			switch e.Op {
			case "==":
				return lb == rb
			case "!=":
				return lb != rb
			}
			return false
		}
	}
	ls, lok := v.(string)
	rs, rok := e.Literal.(string)
	if !lok || !rok {
		return false
	}
	return compareStrings(e.Op, ls, rs)
}

// Eval is the one-shot form of Parse plus Expr.Eval. The error reports a
// malformed expression; the bool is false in that case.
func Eval(s string, snap data.Snapshot) (bool, error) {
	e, err := Parse(s)
	if err != nil {
		return false, err
	}
	return e.Eval(snap), nil
}

func compareFloats(op string, l, r float64) bool {
	switch op {
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	case "==":
		return l == r
	case "!=":
		return l != r
	}
	return false
}

func compareStrings(op string, l, r string) bool {
	switch op {
	case "<":
		return l < r
	case "<=":
		return l <= r
	case ">":
		return l > r
	case ">=":
		return l >= r
	case "==":
		return l == r
	case "!=":
		return l != r
	}
	return false
}
