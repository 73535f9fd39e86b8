package datasource

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func newWeatherForTest(t *testing.T, baseURL string) *weatherSource {
	t.Helper()
	src, err := New("wx", json.RawMessage(`{"type": "weather", "api_key": "${OWM_KEY}", "location": "Berlin,DE", "units": "metric"}`))
	if err != nil {
		t.Fatalf("New() err = %v", err)
	}
	s := src.(*weatherSource)
	s.base = baseURL
	return s
}

func TestWeatherFetch(t *testing.T) {
	t.Setenv("OWM_KEY", "k123")

	var gotKey, gotUnits string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.URL.Query().Get("appid")
		gotUnits = r.URL.Query().Get("units")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"main":    map[string]any{"temp": 21.6, "feels_like": 20.2, "humidity": 65.0},
			"weather": []any{map[string]any{"description": "light rain", "icon": "10d"}},
			"wind":    map[string]any{"speed": 3.456},
		})
	}))
	defer srv.Close()

	out, err := newWeatherForTest(t, srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() err = %v", err)
	}
	if gotKey != "k123" {
		t.Errorf("appid = %q, want env-resolved key", gotKey)
	}
	if gotUnits != "metric" {
		t.Errorf("units = %q, want metric", gotUnits)
	}
	if out["temp"] != 22.0 {
		t.Errorf("temp = %v, want 22 (rounded)", out["temp"])
	}
	if out["icon"] != "rain" {
		t.Errorf("icon = %v, want rain", out["icon"])
	}
	if out["icon_code"] != "10d" {
		t.Errorf("icon_code = %v, want 10d", out["icon_code"])
	}
	if out["description"] != "light rain" {
		t.Errorf("description = %v, want light rain", out["description"])
	}
	if out["wind_speed"] != 3.46 {
		t.Errorf("wind_speed = %v, want 3.46", out["wind_speed"])
	}
}

func TestWeatherMissingKey(t *testing.T) {
	t.Setenv("OWM_KEY", "")
	if _, err := newWeatherForTest(t, "http://unused").Fetch(context.Background()); err == nil {
		t.Fatalf("Fetch() err = nil without api key, want error")
	}
}

func TestWeatherUnknownIcon(t *testing.T) {
	t.Setenv("OWM_KEY", "k")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"main":    map[string]any{"temp": 10.0},
			"weather": []any{map[string]any{"description": "odd", "icon": "99x"}},
		})
	}))
	defer srv.Close()

	out, err := newWeatherForTest(t, srv.URL).Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch() err = %v", err)
	}
	if out["icon"] != "unknown" {
		t.Fatalf("icon = %v, want unknown", out["icon"])
	}
}

func TestWeatherRequiresLocation(t *testing.T) {
	if _, err := New("wx", json.RawMessage(`{"type": "weather", "api_key": "k"}`)); err == nil {
		t.Fatalf("New() err = nil without location, want error")
	}
}
