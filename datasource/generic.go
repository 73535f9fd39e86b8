package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lumen/data"
)

// GenericConfig configures a "generic" REST source. Header and param values
// support the "${NAME}" environment reference form. Extractions maps output
// keys to dotted paths into the response JSON; an empty map publishes the
// whole decoded body under "body".
type GenericConfig struct {
	Config
	Method         string            `json:"method"`
	URL            string            `json:"url"`
	Headers        map[string]string `json:"headers"`
	Params         map[string]string `json:"params"`
	Body           json.RawMessage   `json:"body"`
	TimeoutSeconds int               `json:"timeout_seconds"`
	Extractions    map[string]string `json:"extractions"`
}

type genericSource struct {
	name string
	cfg  GenericConfig
	hc   *http.Client
}

func newGenericSource(name string, raw json.RawMessage) (Source, error) {
	var cfg GenericConfig
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("source %q: %w", name, err)
	}
	if cfg.URL == "" {
		return nil, fmt.Errorf("source %q: url is required", name)
	}
	if cfg.Method == "" {
		cfg.Method = http.MethodGet
	}
	timeout := 10 * time.Second
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return &genericSource{
		name: name,
		cfg:  cfg,
		hc:   &http.Client{Timeout: timeout},
	}, nil
}

func (s *genericSource) Name() string           { return s.name }
func (s *genericSource) Type() string           { return "generic" }
func (s *genericSource) Refresh() time.Duration { return s.cfg.refresh() }

func (s *genericSource) Fetch(ctx context.Context) (map[string]any, error) {
	u := s.cfg.URL
	if len(s.cfg.Params) > 0 {
		q := url.Values{}
		for k, v := range resolveEnvMap(s.cfg.Params) {
			q.Set(k, v)
		}
		sep := "?"
		if strings.Contains(u, "?") {
			sep = "&"
		}
		u += sep + q.Encode()
	}

	var body io.Reader
	if len(s.cfg.Body) > 0 {
		body = strings.NewReader(string(s.cfg.Body))
	}
	req, err := http.NewRequestWithContext(ctx, strings.ToUpper(s.cfg.Method), u, body)
	if err != nil {
		return nil, err
	}
	for k, v := range resolveEnvMap(s.cfg.Headers) {
		req.Header.Set(k, v)
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.hc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("generic: unexpected status %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		// Non-JSON upstreams publish the raw text under "raw".
		return map[string]any{"raw": strings.TrimSpace(string(raw))}, nil
	}

	if len(s.cfg.Extractions) == 0 {
		if m, ok := decoded.(map[string]any); ok {
			return m, nil
		}
		return map[string]any{"body": decoded}, nil
	}

	out := make(map[string]any, len(s.cfg.Extractions))
	for key, path := range s.cfg.Extractions {
		out[key] = extract(decoded, path)
	}
	return out, nil
}

// extract walks a dotted path into decoded JSON. A leading "$." prefix is
// accepted and stripped. Missing segments yield nil.
func extract(v any, path string) any {
	path = strings.TrimPrefix(path, "$.")
	if path == "" {
		return v
	}
	if m, ok := v.(map[string]any); ok {
		snap := data.Snapshot(m)
		if val, ok := snap.Resolve(path); ok {
			return val
		}
	}
	return nil
}
