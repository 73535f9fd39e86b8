package datasource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newStockForTest(t *testing.T, baseURL string, symbols ...string) *stockSource {
	t.Helper()
	cfg, _ := json.Marshal(map[string]any{"type": "stocks", "symbols": symbols})
	src, err := New("portfolio", cfg)
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}
	s := src.(*stockSource)
	s.base = baseURL
	return s
}

func chartResponse(price, prevClose float64) map[string]any {
	return map[string]any{
		"chart": map[string]any{
			"result": []any{map[string]any{
				"meta": map[string]any{
					"regularMarketPrice": price,
					"chartPreviousClose": prevClose,
				},
			}},
		},
	}
}

func TestStockFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(chartResponse(152.50, 150.00))
	}))
	defer srv.Close()

	s := newStockForTest(t, srv.URL+"/", "AAPL")
	out, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() err = %v", err)
	}

	quote, ok := out["AAPL"].(map[string]any)
	if !ok {
		t.Fatalf("out[AAPL] = %v, want a quote map", out["AAPL"])
	}
	if quote["price"] != 152.50 {
		t.Errorf("price = %v, want 152.5", quote["price"])
	}
	if quote["previous_close"] != 150.00 {
		t.Errorf("previous_close = %v, want 150", quote["previous_close"])
	}
	if quote["change"] != 2.50 {
		t.Errorf("change = %v, want 2.5", quote["change"])
	}
	if quote["change_percent"] != 1.67 {
		t.Errorf("change_percent = %v, want 1.67", quote["change_percent"])
	}
	if quote["symbol"] != "AAPL" {
		t.Errorf("symbol = %v, want AAPL", quote["symbol"])
	}
}

func TestStockFetchSymbolFailureIsIsolated(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/BAD" {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(chartResponse(100, 100))
	}))
	defer srv.Close()

	s := newStockForTest(t, srv.URL+"/", "GOOD", "BAD")
	out, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() err = %v, want per-symbol isolation", err)
	}

	good := out["GOOD"].(map[string]any)
	if good["price"] != 100.0 {
		t.Errorf("GOOD price = %v, want 100", good["price"])
	}
	bad := out["BAD"].(map[string]any)
	if bad["error"] == "" || bad["error"] == nil {
		t.Errorf("BAD error = %v, want an error string", bad["error"])
	}
	if _, ok := bad["price"]; ok {
		t.Errorf("BAD carries a price, want none")
	}
}

func TestStockFetchEmptyResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"chart": map[string]any{"result": []any{}}})
	}))
	defer srv.Close()

	s := newStockForTest(t, srv.URL+"/", "GHOST")
	out, err := s.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() err = %v", err)
	}
	quote := out["GHOST"].(map[string]any)
	if quote["error"] == nil {
		t.Fatalf("GHOST = %v, want an error entry", quote)
	}
}
