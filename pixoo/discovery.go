package pixoo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const (
	discoveryPort    = 8888
	discoveryWindow  = 3 * time.Second
	httpScanTimeout  = 500 * time.Millisecond
	httpScanWorkers  = 50
	deviceConfigFile = "device.json"
)

var discoveryMessage = []byte("divoom")

// DeviceConfig is the persisted device settings file (device.json).
type DeviceConfig struct {
	IPAddress  string `json:"ip_address,omitempty"`
	Brightness int    `json:"brightness"`
	DeviceID   int    `json:"device_id,omitempty"`
}

// LoadDeviceConfig reads the config file. A missing file is not an error;
// both return values are zero then.
func LoadDeviceConfig(configDir string) (*DeviceConfig, error) {
	b, err := os.ReadFile(filepath.Join(configDir, deviceConfigFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var cfg DeviceConfig
	if err := json.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("device config: %w", err)
	}
	return &cfg, nil
}

// SaveDeviceConfig writes the config file, creating the directory if needed.
func SaveDeviceConfig(configDir string, cfg *DeviceConfig) error {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return err
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(configDir, deviceConfigFile), append(b, '\n'), 0o644)
}

// ScanUDP discovers devices with the vendor's UDP broadcast. It collects
// replies until the discovery window or the context expires.
func ScanUDP(ctx context.Context) []string {
	conn, err := net.ListenPacket("udp4", ":0")
	if err != nil {
		slog.Warn("udp discovery unavailable", "error", err)
		return nil
	}
	defer conn.Close()

	baddr := &net.UDPAddr{IP: net.IPv4bcast, Port: discoveryPort}
	if _, err := conn.WriteTo(discoveryMessage, baddr); err != nil {
		slog.Warn("udp broadcast failed", "error", err)
		return nil
	}

	deadline := time.Now().Add(discoveryWindow)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = conn.SetReadDeadline(deadline)

	var found []string
	buf := make([]byte, 1024)
	for {
		_, addr, err := conn.ReadFrom(buf)
		if err != nil {
			return found
		}
		if udp, ok := addr.(*net.UDPAddr); ok {
			slog.Info("discovered device", "ip", udp.IP.String(), "via", "udp")
			found = append(found, udp.IP.String())
		}
	}
}

// ScanHTTP probes every host on the local /24 with a Channel/GetIndex
// command. Slower than broadcast but works on networks that filter it.
func ScanHTTP(ctx context.Context) []string {
	subnet := localSubnet()
	if subnet == "" {
		slog.Warn("could not determine local subnet")
		return nil
	}
	slog.Info("scanning subnet for devices", "subnet", subnet)

	hc := &http.Client{Timeout: httpScanTimeout}
	var (
		mu    sync.Mutex
		found []string
		wg    sync.WaitGroup
	)
	sem := make(chan struct{}, httpScanWorkers)
	for i := 1; i <= 254; i++ {
		ip := fmt.Sprintf("%s.%d", subnet, i)
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			if probeHTTP(ctx, hc, ip) {
				slog.Info("discovered device", "ip", ip, "via", "http")
				mu.Lock()
				found = append(found, ip)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return found
}

func probeHTTP(ctx context.Context, hc *http.Client, ip string) bool {
	body := bytes.NewReader([]byte(`{"Command":"Channel/GetIndex"}`))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+ip+":80/post", body)
	if err != nil {
		return false
	}
	resp, err := hc.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return false
	}
	_, ok := out["error_code"]
	return ok
}

// localSubnet returns the local /24 prefix ("192.168.1") or "".
func localSubnet() string {
	conn, err := net.Dial("udp4", "8.8.8.8:80")
	if err != nil {
		return ""
	}
	defer conn.Close()
	host, _, err := net.SplitHostPort(conn.LocalAddr().String())
	if err != nil {
		return ""
	}
	parts := strings.Split(host, ".")
	if len(parts) != 4 {
		return ""
	}
	return strings.Join(parts[:3], ".")
}

// Scan finds devices on the local network, trying the fast UDP broadcast
// first and falling back to the HTTP subnet scan.
func Scan(ctx context.Context) []string {
	if found := ScanUDP(ctx); len(found) > 0 {
		return found
	}
	return ScanHTTP(ctx)
}

// Discover resolves a device address: a configured IP wins, otherwise the
// network is scanned and the first hit is persisted for next time.
func Discover(ctx context.Context, configDir string) (string, error) {
	cfg, err := LoadDeviceConfig(configDir)
	if err != nil {
		slog.Warn("ignoring invalid device config", "error", err)
	}
	if cfg != nil && cfg.IPAddress != "" {
		slog.Info("using configured device", "ip", cfg.IPAddress)
		return cfg.IPAddress, nil
	}

	found := Scan(ctx)
	if len(found) == 0 {
		return "", fmt.Errorf("pixoo: no devices found")
	}
	ip := found[0]

	newCfg := &DeviceConfig{IPAddress: ip, Brightness: 100}
	if cfg != nil {
		newCfg.Brightness = cfg.Brightness
		newCfg.DeviceID = cfg.DeviceID
	}
	if err := SaveDeviceConfig(configDir, newCfg); err != nil {
		slog.Warn("could not persist device config", "error", err)
	}
	return ip, nil
}

// Connect discovers a device and verifies it answers.
func Connect(ctx context.Context, configDir string) (*Client, error) {
	ip, err := Discover(ctx, configDir)
	if err != nil {
		return nil, err
	}
	c := NewClient(ip)
	if cfg, _ := LoadDeviceConfig(configDir); cfg != nil {
		c.SetDeviceID(cfg.DeviceID)
	}
	if !c.Ping(ctx) {
		return nil, fmt.Errorf("pixoo: device at %s not responding", ip)
	}
	return c, nil
}
