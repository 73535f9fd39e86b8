package data

import "testing"

func testSnapshot() Snapshot {
	return Snapshot{
		"stocks": map[string]any{
			"AAPL": map[string]any{"price": 150.25, "symbol": "AAPL"},
		},
		"weather": map[string]any{"temp": float64(72), "ok": true},
		"flat":    "value",
	}
}

func TestResolve(t *testing.T) {
	snap := testSnapshot()
	tests := []struct {
		path string
		want any
		ok   bool
	}{
		{"stocks.AAPL.price", 150.25, true},
		{"stocks.AAPL.symbol", "AAPL", true},
		{"weather.temp", float64(72), true},
		{"weather.ok", true, true},
		{"flat", "value", true},
		{"stocks.MSFT.price", nil, false},
		{"stocks.AAPL.volume", nil, false},
		{"stocks.AAPL", nil, false}, // non-scalar leaf
		{"stocks", nil, false},
		{"", nil, false},
		{"weather.temp.extra", nil, false}, // descend through a scalar
	}
	for _, tt := range tests {
		got, ok := snap.Resolve(tt.path)
		if ok != tt.ok {
			t.Errorf("Resolve(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("Resolve(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestResolveNilSnapshot(t *testing.T) {
	var snap Snapshot
	if _, ok := snap.Resolve("a.b"); ok {
		t.Fatalf("Resolve() ok = true on nil snapshot, want false")
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
		ok   bool
	}{
		{float64(1.5), 1.5, true},
		{float32(2), 2, true},
		{int(3), 3, true},
		{int64(-4), -4, true},
		{uint8(5), 5, true},
		{"6", 0, false},
		{true, 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		got, ok := Number(tt.in)
		if ok != tt.ok || got != tt.want {
			t.Errorf("Number(%v) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"text", "text"},
		{true, "true"},
		{false, "false"},
		{float64(42), "42"}, // integral float prints like an int
		{float64(3.14), "3.14"},
		{int(7), "7"},
		{nil, ""},
		{[]int{1}, ""},
	}
	for _, tt := range tests {
		if got := String(tt.in); got != tt.want {
			t.Errorf("String(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
