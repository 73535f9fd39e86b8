// Package data holds the snapshot of live values that layouts bind against.
//
// A Snapshot maps source names to nested key/value maps with scalar leaves.
// It is produced by the data source manager once per refresh cycle and treated
// as immutable within a render pass. Lookups never fail hard: an unresolvable
// path reports absence, which callers turn into placeholder text or default
// colors.
package data

import "strconv"

// Snapshot is one fetch cycle's worth of named values.
type Snapshot map[string]any

// Resolve walks a dotted path ("stocks.AAPL.price") through the snapshot.
// It returns ok=false if the source is unknown, any intermediate key is
// missing, or the final value is not a scalar.
func (s Snapshot) Resolve(path string) (any, bool) {
	if s == nil || path == "" {
		return nil, false
	}
	var cur any = map[string]any(s)
	start := 0
	for i := 0; i <= len(path); i++ {
		if i < len(path) && path[i] != '.' {
			continue
		}
		key := path[start:i]
		start = i + 1
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok || cur == nil {
			return nil, false
		}
	}
	if !IsScalar(cur) {
		return nil, false
	}
	return cur, true
}

// IsScalar reports whether v is a value a widget can bind to.
func IsScalar(v any) bool {
	switch v.(type) {
	case string, bool,
		float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return true
	}
	return false
}

// Number coerces v to a float64 if it is numeric.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// String renders a scalar the way text widgets display it. Integral floats
// print without a decimal point, matching the JSON round trip of whole
// numbers.
func String(v any) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	case bool:
		if s {
			return "true"
		}
		return "false"
	}
	if f, ok := Number(v); ok {
		if f == float64(int64(f)) {
			return strconv.FormatInt(int64(f), 10)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}
