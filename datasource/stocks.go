package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"
)

const yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart/"

// StockConfig configures a "stocks" source.
type StockConfig struct {
	Config
	Symbols []string `json:"symbols"`
}

// stockSource fetches quotes from the Yahoo Finance chart API. Per symbol it
// publishes price, previous_close, change, change_percent and symbol; a
// symbol that fails to fetch publishes nil values plus an error string so
// layouts can bind to it without breaking the whole source.
type stockSource struct {
	name string
	cfg  StockConfig
	base string
	hc   *http.Client
}

func newStockSource(name string, raw json.RawMessage) (Source, error) {
	var cfg StockConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("source %q: %w", name, err)
	}
	return &stockSource{
		name: name,
		cfg:  cfg,
		base: yahooChartURL,
		hc:   &http.Client{Timeout: 10 * time.Second},
	}, nil
}

func (s *stockSource) Name() string           { return s.name }
func (s *stockSource) Type() string           { return "stocks" }
func (s *stockSource) Refresh() time.Duration { return s.cfg.refresh() }

func (s *stockSource) Fetch(ctx context.Context) (map[string]any, error) {
	out := make(map[string]any, len(s.cfg.Symbols))
	for _, sym := range s.cfg.Symbols {
		quote, err := s.fetchSymbol(ctx, sym)
		if err != nil {
			slog.Error("stock fetch failed", "symbol", sym, "error", err)
			out[sym] = map[string]any{
				"symbol": sym,
				"error":  err.Error(),
			}
			continue
		}
		out[sym] = quote
	}
	return out, nil
}

func (s *stockSource) fetchSymbol(ctx context.Context, symbol string) (map[string]any, error) {
	u := s.base + url.PathEscape(symbol) + "?range=2d&interval=1d"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "lumen/1.0")

	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	var body struct {
		Chart struct {
			Result []struct {
				Meta struct {
					RegularMarketPrice float64 `json:"regularMarketPrice"`
					PreviousClose      float64 `json:"chartPreviousClose"`
				} `json:"meta"`
			} `json:"result"`
			Error *struct {
				Description string `json:"description"`
			} `json:"error"`
		} `json:"chart"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("%s", body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("no quote data")
	}

	meta := body.Chart.Result[0].Meta
	price := round2(meta.RegularMarketPrice)
	prev := round2(meta.PreviousClose)
	change := 0.0
	changePct := 0.0
	if prev > 0 {
		change = round2(price - prev)
		changePct = round2(change / prev * 100)
	}
	return map[string]any{
		"symbol":         symbol,
		"price":          price,
		"previous_close": prev,
		"change":         change,
		"change_percent": changePct,
	}, nil
}

func round2(f float64) float64 { return math.Round(f*100) / 100 }
