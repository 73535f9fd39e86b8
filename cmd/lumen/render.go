package main

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"lumen/datasource"
	"lumen/layout"
	"lumen/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <layout.json>",
	Short: "Render a layout file to a PNG without a device",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		l, err := layout.Load(args[0])
		if err != nil {
			return err
		}
		if err := l.Validate(); err != nil {
			return err
		}

		mgr := datasource.NewManager()
		if renderFetch {
			path := filepath.Join(configDir, "datasources.json")
			if err := mgr.LoadConfig(path); err != nil {
				return err
			}
			mgr.RefreshAll(cmd.Context())
		}

		r := render.New(filepath.Join(configDir, "images"))
		buf := r.Compose(l, mgr.Snapshot())

		f, err := os.Create(renderOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := png.Encode(f, buf.Image()); err != nil {
			return err
		}
		slog.Info("rendered", "layout", l.Name, "out", renderOut)
		return nil
	},
}

var (
	renderOut   string
	renderFetch bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch all configured data sources and print the snapshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := datasource.NewManager()
		if err := mgr.LoadConfig(filepath.Join(configDir, "datasources.json")); err != nil {
			return err
		}
		snap := mgr.RefreshAll(cmd.Context())
		for _, info := range mgr.Info() {
			if info.LastError != "" {
				slog.Warn("source failed", "name", info.Name, "error", info.LastError)
			}
		}
		return printJSON(snap)
	},
}

func printJSON(v any) error {
	b, err := jsonIndent(v)
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func init() {
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "frame.png", "output PNG path")
	renderCmd.Flags().BoolVar(&renderFetch, "fetch", false, "fetch data sources before rendering")
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(fetchCmd)
}
