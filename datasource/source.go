// Package datasource fetches the live values that layouts bind against.
//
// Each source produces a flat-ish map of keys to scalars (or nested maps of
// them); the manager assembles the per-source results into one data.Snapshot
// keyed by source name. Fetch failures keep the previous values, so a render
// never blocks on or is emptied by a flaky upstream.
package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

// DefaultRefresh applies when a source config omits refresh_seconds.
const DefaultRefresh = 300 * time.Second

// Source is one named upstream of live values.
type Source interface {
	Name() string
	Type() string
	Refresh() time.Duration
	Fetch(ctx context.Context) (map[string]any, error)
}

// Config is the common part of every source entry in datasources.json.
type Config struct {
	Type           string `json:"type"`
	RefreshSeconds int    `json:"refresh_seconds"`
	Enabled        *bool  `json:"enabled,omitempty"`
}

// IsEnabled defaults to true when the field is omitted.
func (c *Config) IsEnabled() bool { return c.Enabled == nil || *c.Enabled }

func (c *Config) refresh() time.Duration {
	if c.RefreshSeconds < 1 {
		return DefaultRefresh
	}
	return time.Duration(c.RefreshSeconds) * time.Second
}

type factory func(name string, raw json.RawMessage) (Source, error)

var factories = map[string]factory{
	"stocks":  newStockSource,
	"weather": newWeatherSource,
	"generic": newGenericSource,
}

// New creates a source from its JSON config. The config must carry a known
// "type" field.
func New(name string, raw json.RawMessage) (Source, error) {
	var c Config
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("source %q: %w", name, err)
	}
	f, ok := factories[c.Type]
	if !ok {
		return nil, fmt.Errorf("source %q: unknown type %q", name, c.Type)
	}
	return f(name, raw)
}

// Types lists the registered source types.
func Types() []string {
	return []string{"generic", "stocks", "weather"}
}

// resolveEnv expands a "${NAME}" reference to the environment variable's
// value; any other string passes through unchanged.
func resolveEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	return s
}

func resolveEnvMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = resolveEnv(v)
	}
	return out
}
