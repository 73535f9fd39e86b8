package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"
	"time"

	"lumen/data"
)

// SourceInfo is one source's state for status reporting.
type SourceInfo struct {
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Refresh   int       `json:"refresh_seconds"`
	LastFetch time.Time `json:"last_fetch"`
	LastError string    `json:"last_error,omitempty"`
}

// Manager owns the registered sources and the cache of their last good data.
type Manager struct {
	mu        sync.Mutex
	sources   map[string]Source
	cache     map[string]map[string]any
	lastFetch map[string]time.Time
	lastErr   map[string]string
}

func NewManager() *Manager {
	return &Manager{
		sources:   map[string]Source{},
		cache:     map[string]map[string]any{},
		lastFetch: map[string]time.Time{},
		lastErr:   map[string]string{},
	}
}

// Register adds a source, replacing any previous one with the same name.
func (m *Manager) Register(src Source) {
	m.mu.Lock()
	m.sources[src.Name()] = src
	m.mu.Unlock()
	slog.Info("registered data source", "name", src.Name(), "type", src.Type())
}

// LoadConfig reads a datasources.json file:
// {"sources": {"<name>": {"type": ..., ...}, ...}}.
// Disabled entries are skipped.
func (m *Manager) LoadConfig(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var raw struct {
		Sources map[string]json.RawMessage `json:"sources"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	for name, cfg := range raw.Sources {
		var c Config
		if err := json.Unmarshal(cfg, &c); err != nil {
			return fmt.Errorf("%s: source %q: %w", path, name, err)
		}
		if !c.IsEnabled() {
			continue
		}
		src, err := New(name, cfg)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		m.Register(src)
	}
	return nil
}

// Sources lists registered sources sorted by name.
func (m *Manager) Sources() []Source {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Source, 0, len(m.sources))
	for _, s := range m.sources {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Refresh fetches one source and updates the cache. On failure the previous
// data stays in place and the error is recorded.
func (m *Manager) Refresh(ctx context.Context, name string) error {
	m.mu.Lock()
	src, ok := m.sources[name]
	m.mu.Unlock()
	if !ok {
		return fmt.Errorf("datasource: unknown source %q", name)
	}

	values, err := src.Fetch(ctx)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.lastErr[name] = err.Error()
		return fmt.Errorf("datasource %q: %w", name, err)
	}
	m.cache[name] = values
	m.lastFetch[name] = time.Now()
	delete(m.lastErr, name)
	return nil
}

// RefreshAll fetches every source concurrently and returns the resulting
// snapshot. Individual failures are logged and leave stale data in place.
func (m *Manager) RefreshAll(ctx context.Context) data.Snapshot {
	var wg sync.WaitGroup
	for _, src := range m.Sources() {
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			if err := m.Refresh(ctx, name); err != nil {
				slog.Error("data source refresh failed", "name", name, "error", err)
			}
		}(src.Name())
	}
	wg.Wait()
	return m.Snapshot()
}

// Snapshot assembles the cached data into a fresh snapshot keyed by source
// name. The returned value is never mutated afterwards.
func (m *Manager) Snapshot() data.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	snap := make(data.Snapshot, len(m.cache))
	for name, values := range m.cache {
		if len(values) > 0 {
			snap[name] = values
		}
	}
	return snap
}

// Info reports per-source status sorted by name.
func (m *Manager) Info() []SourceInfo {
	srcs := m.Sources()
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SourceInfo, 0, len(srcs))
	for _, s := range srcs {
		out = append(out, SourceInfo{
			Name:      s.Name(),
			Type:      s.Type(),
			Refresh:   int(s.Refresh() / time.Second),
			LastFetch: m.lastFetch[s.Name()],
			LastError: m.lastErr[s.Name()],
		})
	}
	return out
}
