package expr

import (
	"testing"

	"lumen/data"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		path    string
		op      string
		literal any
	}{
		{"stocks.AAPL.change < 0", "stocks.AAPL.change", "<", float64(0)},
		{"weather.temp >= 90.5", "weather.temp", ">=", 90.5},
		{"  a.b  ==  'hot'  ", "a.b", "==", "hot"},
		{`weather.icon != "rain"`, "weather.icon", "!=", "rain"},
		{"system.online == true", "system.online", "==", true},
		{"system.online != FALSE", "system.online", "!=", false},
		{"a.b <= -3", "a.b", "<=", float64(-3)},
	}
	for _, tt := range tests {
		e, err := Parse(tt.in)
		if err != nil {
			t.Errorf("Parse(%q) err = %v", tt.in, err)
			continue
		}
		if e.Path != tt.path || e.Op != tt.op || e.Literal != tt.literal {
			t.Errorf("Parse(%q) = {%q %q %v}, want {%q %q %v}",
				tt.in, e.Path, e.Op, e.Literal, tt.path, tt.op, tt.literal)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	for _, in := range []string{
		"",
		"stocks.AAPL.price",
		"< 5",
		"a.b <",
		"a.b => 5",
		"a b == 5",
	} {
		if _, err := Parse(in); err == nil {
			t.Errorf("Parse(%q) err = nil, want error", in)
		}
	}
}

func TestEval(t *testing.T) {
	snap := data.Snapshot{
		"stocks": map[string]any{
			"AAPL": map[string]any{"change": -1.5, "price": float64(150)},
		},
		"weather": map[string]any{"temp": float64(91), "icon": "rain"},
		"system":  map[string]any{"online": true, "count": 3},
	}

	tests := []struct {
		in   string
		want bool
	}{
		{"stocks.AAPL.change < 0", true},
		{"stocks.AAPL.change > 0", false},
		{"stocks.AAPL.price == 150", true},
		{"weather.temp >= 90", true},
		{"weather.temp <= 90", false},
		{"weather.icon == 'rain'", true},
		{"weather.icon != 'rain'", false},
		{"weather.icon < 'snow'", true},
		{"system.online == true", true},
		{"system.online != true", false},
		{"system.count == 3", true},
		// Missing path fails closed.
		{"stocks.MSFT.change < 0", false},
		{"nowhere.at.all == 1", false},
		// Type mixes fail closed.
		{"weather.icon == 5", false},
		{"weather.temp == 'hot'", false},
		{"system.online < true", false},
	}
	for _, tt := range tests {
		got, err := Eval(tt.in, snap)
		if err != nil {
			t.Errorf("Eval(%q) err = %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Eval(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestEvalMalformedReportsError(t *testing.T) {
	got, err := Eval("not an expression", data.Snapshot{})
	if err == nil {
		t.Fatalf("Eval() err = nil, want error")
	}
	if got {
		t.Fatalf("Eval() = true on malformed expression, want false")
	}
}
