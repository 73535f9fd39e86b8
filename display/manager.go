// Package display owns the render-and-push loop for one device.
//
// A Manager composes the active layout against the latest data snapshot and
// sends the resulting frame to the device. Renders happen on the layout's
// refresh interval and immediately after any data refresh; data refreshes run
// on their own per-source intervals. Send failures back off exponentially so
// an unplugged device does not flood the log.
package display

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"lumen/datasource"
	"lumen/frame"
	"lumen/layout"
	"lumen/pixoo"
	"lumen/render"
	"lumen/sched"
)

const (
	layoutsDir     = "layouts"
	activeFile     = "active_layout"
	minSendBackoff = 2 * time.Second
	maxSendBackoff = 60 * time.Second
)

// Status is a point-in-time view of the manager for the web API and CLI.
type Status struct {
	Connected  bool                    `json:"connected"`
	DeviceIP   string                  `json:"device_ip,omitempty"`
	Layout     string                  `json:"layout,omitempty"`
	Brightness int                     `json:"brightness"`
	ScreenOn   bool                    `json:"screen_on"`
	LastRender time.Time               `json:"last_render"`
	LastError  string                  `json:"last_error,omitempty"`
	Sources    []datasource.SourceInfo `json:"sources"`
}

// Manager drives one display.
type Manager struct {
	configDir string
	log       *slog.Logger
	sources   *datasource.Manager
	renderer  *render.Renderer
	trigger   *sched.Trigger

	// renderMu serializes whole render passes. Compose shares font glyph
	// state across calls and a device push is a two-command sequence, so
	// passes must never overlap.
	renderMu sync.Mutex

	mu         sync.Mutex
	client     *pixoo.Client
	layout     *layout.Layout
	layoutName string
	brightness int
	screenOn   bool
	lastFrame  *frame.Buffer
	lastRender time.Time
	lastErr    string
	failures   int
	retryAt    time.Time
	onFrame    func(*frame.Buffer)
}

// New creates a manager rooted at configDir. Image assets resolve relative
// to configDir/images.
func New(configDir string, log *slog.Logger) *Manager {
	if log == nil {
		log = slog.Default()
	}
	return &Manager{
		configDir:  configDir,
		log:        log,
		sources:    datasource.NewManager(),
		renderer:   render.New(filepath.Join(configDir, "images")),
		trigger:    sched.NewTrigger(),
		brightness: 100,
		screenOn:   true,
	}
}

// Sources exposes the data source manager.
func (m *Manager) Sources() *datasource.Manager { return m.sources }

// SetClient attaches a device client directly, bypassing discovery.
func (m *Manager) SetClient(c *pixoo.Client) {
	m.mu.Lock()
	m.client = c
	m.mu.Unlock()
}

// SetOnFrame registers a hook invoked with every composed frame, used by the
// preview window. Must be set before Run.
func (m *Manager) SetOnFrame(fn func(*frame.Buffer)) {
	m.mu.Lock()
	m.onFrame = fn
	m.mu.Unlock()
}

// Connect discovers the device and applies the persisted brightness.
func (m *Manager) Connect(ctx context.Context) error {
	c, err := pixoo.Connect(ctx, m.configDir)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.client = c
	level := m.brightness
	if cfg, _ := pixoo.LoadDeviceConfig(m.configDir); cfg != nil && cfg.Brightness > 0 {
		level = cfg.Brightness
		m.brightness = level
	}
	m.mu.Unlock()

	if err := c.SetBrightness(ctx, level); err != nil {
		m.log.Warn("could not set brightness", "error", err)
	}
	m.log.Info("connected to device", "ip", c.IP())
	return nil
}

// Client returns the attached device client, or nil when disconnected.
func (m *Manager) Client() *pixoo.Client {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.client
}

func (m *Manager) layoutPath(name string) string {
	return filepath.Join(m.configDir, layoutsDir, name+".json")
}

// LayoutNames lists the saved layouts sorted by name.
func (m *Manager) LayoutNames() ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(m.configDir, layoutsDir))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names, nil
}

// ReadLayout loads a saved layout by name without activating it.
func (m *Manager) ReadLayout(name string) (*layout.Layout, error) {
	return layout.Load(m.layoutPath(name))
}

// SaveLayout validates and persists a layout under the given name.
func (m *Manager) SaveLayout(name string, l *layout.Layout) error {
	if err := l.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Join(m.configDir, layoutsDir), 0o755); err != nil {
		return err
	}
	return layout.Save(l, m.layoutPath(name))
}

// LoadLayout activates a saved layout by name and remembers the choice for
// the next start.
func (m *Manager) LoadLayout(name string) error {
	l, err := layout.Load(m.layoutPath(name))
	if err != nil {
		return err
	}
	if err := l.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	m.layout = l
	m.layoutName = name
	m.mu.Unlock()

	if err := os.WriteFile(filepath.Join(m.configDir, activeFile), []byte(name+"\n"), 0o644); err != nil {
		m.log.Warn("could not persist active layout", "error", err)
	}
	m.log.Info("layout loaded", "name", name, "widgets", len(l.Widgets))
	m.trigger.Fire()
	return nil
}

// LoadActiveLayout restores the last activated layout, falling back to the
// first saved one.
func (m *Manager) LoadActiveLayout() error {
	if b, err := os.ReadFile(filepath.Join(m.configDir, activeFile)); err == nil {
		name := strings.TrimSpace(string(b))
		if name != "" {
			if err := m.LoadLayout(name); err == nil {
				return nil
			}
			m.log.Warn("saved active layout unusable", "name", name)
		}
	}
	names, err := m.LayoutNames()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return fmt.Errorf("display: no layouts in %s", filepath.Join(m.configDir, layoutsDir))
	}
	return m.LoadLayout(names[0])
}

// LoadDataSources reads configDir/datasources.json if present.
func (m *Manager) LoadDataSources() error {
	path := filepath.Join(m.configDir, "datasources.json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return m.sources.LoadConfig(path)
}

// Layout returns the active layout and its name.
func (m *Manager) Layout() (*layout.Layout, string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.layout, m.layoutName
}

// LastFrame returns the most recently composed frame, or nil before the
// first render.
func (m *Manager) LastFrame() *frame.Buffer {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastFrame
}

// SetBrightness applies and persists a brightness level.
func (m *Manager) SetBrightness(ctx context.Context, level int) error {
	m.mu.Lock()
	c := m.client
	m.mu.Unlock()
	if c == nil {
		return fmt.Errorf("display: not connected")
	}
	if err := c.SetBrightness(ctx, level); err != nil {
		return err
	}
	m.mu.Lock()
	m.brightness = level
	m.mu.Unlock()

	cfg, _ := pixoo.LoadDeviceConfig(m.configDir)
	if cfg == nil {
		cfg = &pixoo.DeviceConfig{IPAddress: c.IP()}
	}
	cfg.Brightness = level
	if err := pixoo.SaveDeviceConfig(m.configDir, cfg); err != nil {
		m.log.Warn("could not persist brightness", "error", err)
	}
	return nil
}

// SetScreenOn turns the device screen on or off.
func (m *Manager) SetScreenOn(ctx context.Context, on bool) error {
	m.mu.Lock()
	c := m.client
	m.mu.Unlock()
	if c == nil {
		return fmt.Errorf("display: not connected")
	}
	if err := c.SetScreenOn(ctx, on); err != nil {
		return err
	}
	m.mu.Lock()
	m.screenOn = on
	m.mu.Unlock()
	return nil
}

// Trigger requests a render outside the regular schedule, coalescing with
// any already pending request.
func (m *Manager) Trigger() { m.trigger.Fire() }

// RefreshData fetches all sources and triggers a render.
func (m *Manager) RefreshData(ctx context.Context) {
	m.sources.RefreshAll(ctx)
	m.trigger.Fire()
}

// Render composes the active layout against the current data snapshot and
// sends it to the device if one is attached. The composed frame is kept even
// when the send fails. Passes are serialized; a concurrent call waits for the
// in-flight one to finish.
func (m *Manager) Render(ctx context.Context) error {
	m.renderMu.Lock()
	defer m.renderMu.Unlock()

	m.mu.Lock()
	l := m.layout
	c := m.client
	onFrame := m.onFrame
	m.mu.Unlock()
	if l == nil {
		return fmt.Errorf("display: no layout loaded")
	}

	buf := m.renderer.Compose(l, m.sources.Snapshot())

	m.mu.Lock()
	m.lastFrame = buf
	m.lastRender = time.Now()
	m.mu.Unlock()

	if onFrame != nil {
		onFrame(buf)
	}
	if c == nil {
		return nil
	}
	return m.send(ctx, c, buf)
}

func (m *Manager) send(ctx context.Context, c *pixoo.Client, buf *frame.Buffer) error {
	m.mu.Lock()
	retryAt := m.retryAt
	m.mu.Unlock()
	if now := time.Now(); now.Before(retryAt) {
		return nil
	}

	err := c.SendFrame(ctx, buf)
	m.mu.Lock()
	defer m.mu.Unlock()
	if err != nil {
		m.failures++
		m.lastErr = err.Error()
		backoff := maxSendBackoff
		if m.failures < 6 {
			backoff = minSendBackoff << (m.failures - 1)
		}
		m.retryAt = time.Now().Add(backoff)
		m.log.Error("frame send failed", "error", err, "retry_in", backoff)
		return err
	}
	m.failures = 0
	m.lastErr = ""
	m.retryAt = time.Time{}
	return nil
}

// Run drives the refresh and render loops until the context is cancelled.
func (m *Manager) Run(ctx context.Context) error {
	s := sched.New(m.log)
	for _, src := range m.sources.Sources() {
		name := src.Name()
		s.Add(sched.Job{
			Name:     "refresh:" + name,
			Interval: src.Refresh(),
			Run: func(ctx context.Context) error {
				if err := m.sources.Refresh(ctx, name); err != nil {
					return err
				}
				m.trigger.Fire()
				return nil
			},
		})
	}

	// The scheduled job only fires the trigger; the drain goroutine below is
	// the sole render loop, so a tick during an in-flight pass coalesces.
	s.Add(sched.Job{
		Name: "render",
		Every: func() time.Duration {
			m.mu.Lock()
			l := m.layout
			m.mu.Unlock()
			if l == nil {
				return time.Minute
			}
			return l.Refresh()
		},
		Run: func(context.Context) error {
			m.trigger.Fire()
			return nil
		},
	})

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-m.trigger.Wait():
				if err := m.Render(ctx); err != nil {
					m.log.Error("triggered render failed", "error", err)
				}
			}
		}
	}()

	return s.Run(ctx)
}

// Status reports the manager's current state.
func (m *Manager) Status() Status {
	m.mu.Lock()
	st := Status{
		Connected:  m.client != nil,
		Layout:     m.layoutName,
		Brightness: m.brightness,
		ScreenOn:   m.screenOn,
		LastRender: m.lastRender,
		LastError:  m.lastErr,
	}
	if m.client != nil {
		st.DeviceIP = m.client.IP()
	}
	m.mu.Unlock()
	st.Sources = m.sources.Info()
	return st
}
