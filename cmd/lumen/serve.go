package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lumen/display"
	"lumen/pixoo"
	"lumen/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run only the web API, without touching a device",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mgr := display.New(configDir, slog.Default())
		if err := mgr.LoadDataSources(); err != nil {
			return err
		}
		if err := mgr.LoadActiveLayout(); err != nil {
			slog.Warn("no active layout", "error", err)
		}

		srv := web.NewServer(mgr, slog.Default())
		return srv.ListenAndServe(ctx, serveAddr)
	},
}

var serveAddr string

var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Check that a device can be reached",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := pixoo.Connect(cmd.Context(), configDir)
		if err != nil {
			return err
		}
		level, err := c.Brightness(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("device at %s responding, brightness %d\n", c.IP(), level)
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "web api listen address")
	rootCmd.AddCommand(serveCmd, testCmd)
}
