// Package pixoo speaks the Divoom Pixoo 64 HTTP wire protocol.
//
// The device accepts JSON commands POSTed to http://<ip>:80/post and answers
// with a JSON object carrying an error_code field. Frames are pushed as
// base64-encoded RGB24 via the Draw/SendHttpGif command, preceded by a GIF
// buffer reset. Sends are whole-buffer or nothing; the device never sees a
// partial frame.
package pixoo

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/color"
	"net/http"
	"time"

	"lumen/frame"
)

// Size is the Pixoo 64 canvas edge length.
const Size = 64

// DefaultTimeout bounds one device command round trip.
const DefaultTimeout = 5 * time.Second

// DeviceError is a non-zero error_code answer from the device.
type DeviceError struct {
	Code int
}

func (e *DeviceError) Error() string {
	return fmt.Sprintf("pixoo: device error_code %d", e.Code)
}

// Client talks to one Pixoo device.
type Client struct {
	ip       string
	deviceID int
	base     string
	hc       *http.Client
}

// NewClient creates a client for the device at the given IP address.
func NewClient(ip string) *Client {
	return &Client{
		ip:   ip,
		base: "http://" + ip + ":80/post",
		hc:   &http.Client{Timeout: DefaultTimeout},
	}
}

// NewClientURL creates a client against an explicit endpoint URL. Intended
// for tests and nonstandard ports.
func NewClientURL(url string) *Client {
	return &Client{base: url, hc: &http.Client{Timeout: DefaultTimeout}}
}

// IP returns the device address the client was created with.
func (c *Client) IP() string { return c.ip }

// SetDeviceID selects the device id for multi-device setups.
func (c *Client) SetDeviceID(id int) { c.deviceID = id }

func (c *Client) command(ctx context.Context, cmd map[string]any) (map[string]any, error) {
	body, err := json.Marshal(cmd)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("pixoo: send %v: %w", cmd["Command"], err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("pixoo: send %v: unexpected status %s", cmd["Command"], resp.Status)
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("pixoo: decode response: %w", err)
	}
	if code, ok := out["error_code"].(float64); ok && code != 0 {
		return out, &DeviceError{Code: int(code)}
	}
	return out, nil
}

// DeviceInfo fetches the device configuration (Channel/GetAllConf).
func (c *Client) DeviceInfo(ctx context.Context) (map[string]any, error) {
	return c.command(ctx, map[string]any{"Command": "Channel/GetAllConf"})
}

// Ping reports whether the device answers commands.
func (c *Client) Ping(ctx context.Context) bool {
	_, err := c.DeviceInfo(ctx)
	return err == nil
}

// SetBrightness sets the display brightness, clamped to 0..100.
func (c *Client) SetBrightness(ctx context.Context, level int) error {
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	_, err := c.command(ctx, map[string]any{
		"Command":    "Channel/SetBrightness",
		"Brightness": level,
	})
	return err
}

// Brightness reads the current brightness level.
func (c *Client) Brightness(ctx context.Context) (int, error) {
	info, err := c.DeviceInfo(ctx)
	if err != nil {
		return 0, err
	}
	if b, ok := info["Brightness"].(float64); ok {
		return int(b), nil
	}
	return 100, nil
}

// SetScreenOn turns the screen on or off.
func (c *Client) SetScreenOn(ctx context.Context, on bool) error {
	v := 0
	if on {
		v = 1
	}
	_, err := c.command(ctx, map[string]any{
		"Command": "Channel/OnOffScreen",
		"OnOff":   v,
	})
	return err
}

// SetChannel selects the device channel
// (0=Faces, 1=Cloud, 2=Visualizer, 3=Custom, 4=Black).
func (c *Client) SetChannel(ctx context.Context, channel int) error {
	_, err := c.command(ctx, map[string]any{
		"Command":     "Channel/SetIndex",
		"SelectIndex": channel,
	})
	return err
}

// ResetGIF resets the device's HTTP GIF buffer. Required before each frame.
func (c *Client) ResetGIF(ctx context.Context) error {
	_, err := c.command(ctx, map[string]any{"Command": "Draw/ResetHttpGifId"})
	return err
}

// SendFrame pushes one complete frame buffer to the display.
func (c *Client) SendFrame(ctx context.Context, buf *frame.Buffer) error {
	if err := c.ResetGIF(ctx); err != nil {
		return err
	}
	_, err := c.command(ctx, map[string]any{
		"Command":   "Draw/SendHttpGif",
		"PicNum":    1,
		"PicWidth":  Size,
		"PicOffset": 0,
		"PicID":     0,
		"PicSpeed":  1000,
		"PicData":   base64.StdEncoding.EncodeToString(buf.Bytes()),
	})
	return err
}

// Clear fills the display with a solid color.
func (c *Client) Clear(ctx context.Context, r, g, b uint8) error {
	buf := frame.New(color.RGBA{R: r, G: g, B: b, A: 0xFF})
	return c.SendFrame(ctx, buf)
}
