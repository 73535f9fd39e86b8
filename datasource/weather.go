package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"
)

const openWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// weatherIcons maps OpenWeatherMap icon codes to stable names layouts can
// switch image sources on.
var weatherIcons = map[string]string{
	"01d": "clear_day", "01n": "clear_night",
	"02d": "partly_cloudy_day", "02n": "partly_cloudy_night",
	"03d": "cloudy", "03n": "cloudy",
	"04d": "overcast", "04n": "overcast",
	"09d": "showers", "09n": "showers",
	"10d": "rain", "10n": "rain",
	"11d": "thunderstorm", "11n": "thunderstorm",
	"13d": "snow", "13n": "snow",
	"50d": "fog", "50n": "fog",
}

// WeatherConfig configures a "weather" source. APIKey supports the "${NAME}"
// environment reference form.
type WeatherConfig struct {
	Config
	APIKey   string `json:"api_key"`
	Location string `json:"location"`
	Units    string `json:"units"`
}

type weatherSource struct {
	name string
	cfg  WeatherConfig
	base string
	hc   *http.Client
}

func newWeatherSource(name string, raw json.RawMessage) (Source, error) {
	var cfg WeatherConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("source %q: %w", name, err)
	}
	if cfg.Location == "" {
		return nil, fmt.Errorf("source %q: location is required", name)
	}
	if cfg.Units == "" {
		cfg.Units = "imperial"
	}
	return &weatherSource{
		name: name,
		cfg:  cfg,
		base: openWeatherURL,
		hc:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (s *weatherSource) Name() string           { return s.name }
func (s *weatherSource) Type() string           { return "weather" }
func (s *weatherSource) Refresh() time.Duration { return s.cfg.refresh() }

func (s *weatherSource) Fetch(ctx context.Context) (map[string]any, error) {
	key := resolveEnv(s.cfg.APIKey)
	if key == "" {
		return nil, fmt.Errorf("weather: missing api key")
	}

	q := url.Values{}
	q.Set("q", s.cfg.Location)
	q.Set("appid", key)
	q.Set("units", s.cfg.Units)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: unexpected status %s", resp.Status)
	}

	var body struct {
		Main struct {
			Temp      float64 `json:"temp"`
			FeelsLike float64 `json:"feels_like"`
			Humidity  float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
		Wind struct {
			Speed float64 `json:"speed"`
		} `json:"wind"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}

	out := map[string]any{
		"temp":       math.Round(body.Main.Temp),
		"feels_like": math.Round(body.Main.FeelsLike),
		"humidity":   body.Main.Humidity,
		"wind_speed": round2(body.Wind.Speed),
		"location":   s.cfg.Location,
	}
	if len(body.Weather) > 0 {
		w := body.Weather[0]
		out["description"] = w.Description
		out["icon_code"] = w.Icon
		if name, ok := weatherIcons[w.Icon]; ok {
			out["icon"] = name
		} else {
			out["icon"] = "unknown"
		}
	}
	return out, nil
}
