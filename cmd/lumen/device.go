package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"lumen/frame"
	"lumen/pixoo"
)

func jsonIndent(v any) ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Find Pixoo devices on the local network",
	RunE: func(cmd *cobra.Command, args []string) error {
		found := pixoo.Scan(cmd.Context())
		if len(found) == 0 {
			return fmt.Errorf("no devices found")
		}
		for _, ip := range found {
			fmt.Println(ip)
		}
		if discoverSave {
			cfg, _ := pixoo.LoadDeviceConfig(configDir)
			if cfg == nil {
				cfg = &pixoo.DeviceConfig{Brightness: 100}
			}
			cfg.IPAddress = found[0]
			return pixoo.SaveDeviceConfig(configDir, cfg)
		}
		return nil
	},
}

var discoverSave bool

var brightnessCmd = &cobra.Command{
	Use:   "brightness <0-100>",
	Short: "Set the display brightness",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("brightness must be a number: %q", args[0])
		}
		c, err := pixoo.Connect(cmd.Context(), configDir)
		if err != nil {
			return err
		}
		if err := c.SetBrightness(cmd.Context(), level); err != nil {
			return err
		}
		cfg, _ := pixoo.LoadDeviceConfig(configDir)
		if cfg == nil {
			cfg = &pixoo.DeviceConfig{IPAddress: c.IP()}
		}
		cfg.Brightness = level
		return pixoo.SaveDeviceConfig(configDir, cfg)
	},
}

var onCmd = &cobra.Command{
	Use:   "on",
	Short: "Turn the screen on",
	RunE:  func(cmd *cobra.Command, args []string) error { return setScreen(cmd, true) },
}

var offCmd = &cobra.Command{
	Use:   "off",
	Short: "Turn the screen off",
	RunE:  func(cmd *cobra.Command, args []string) error { return setScreen(cmd, false) },
}

func setScreen(cmd *cobra.Command, on bool) error {
	c, err := pixoo.Connect(cmd.Context(), configDir)
	if err != nil {
		return err
	}
	return c.SetScreenOn(cmd.Context(), on)
}

var clearCmd = &cobra.Command{
	Use:   "clear [#RRGGBB]",
	Short: "Fill the display with a solid color (default black)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var r, g, b uint8
		if len(args) == 1 {
			col, err := frame.ParseColor(args[0])
			if err != nil {
				return err
			}
			r, g, b = col.R, col.G, col.B
		}
		c, err := pixoo.Connect(cmd.Context(), configDir)
		if err != nil {
			return err
		}
		return c.Clear(cmd.Context(), r, g, b)
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the device configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := pixoo.Connect(cmd.Context(), configDir)
		if err != nil {
			return err
		}
		info, err := c.DeviceInfo(cmd.Context())
		if err != nil {
			return err
		}
		return printJSON(info)
	},
}

func init() {
	discoverCmd.Flags().BoolVar(&discoverSave, "save", false, "persist the first device found")
	rootCmd.AddCommand(discoverCmd, brightnessCmd, onCmd, offCmd, clearCmd, statusCmd)
}
