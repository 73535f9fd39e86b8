package main

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"lumen/display"
	"lumen/preview"
	"lumen/web"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the display loop and web API",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		mgr := display.New(configDir, slog.Default())
		if err := mgr.LoadDataSources(); err != nil {
			return err
		}
		if runLayout != "" {
			if err := mgr.LoadLayout(runLayout); err != nil {
				return err
			}
		} else if err := mgr.LoadActiveLayout(); err != nil {
			return err
		}

		if !runNoDevice {
			if err := mgr.Connect(ctx); err != nil {
				return err
			}
		}

		var win *preview.Window
		if runPreview {
			win = preview.NewWindow()
			mgr.SetOnFrame(win.Push)
		}

		mgr.RefreshData(ctx)

		go func() {
			if err := mgr.Run(ctx); err != nil && ctx.Err() == nil {
				slog.Error("display loop stopped", "error", err)
			}
		}()
		go func() {
			srv := web.NewServer(mgr, slog.Default())
			if err := srv.ListenAndServe(ctx, runAddr); err != nil && ctx.Err() == nil {
				slog.Error("web server stopped", "error", err)
				stop()
			}
		}()

		// The window must own the main goroutine; everything else already
		// runs in the background.
		if win != nil {
			defer stop()
			return win.Run("lumen preview")
		}
		<-ctx.Done()
		return nil
	},
}

var (
	runAddr     string
	runLayout   string
	runPreview  bool
	runNoDevice bool
)

func init() {
	runCmd.Flags().StringVar(&runAddr, "addr", ":8080", "web api listen address")
	runCmd.Flags().StringVar(&runLayout, "layout", "", "layout name to activate (default: last active)")
	runCmd.Flags().BoolVar(&runPreview, "preview", false, "open a desktop preview window")
	runCmd.Flags().BoolVar(&runNoDevice, "no-device", false, "render without a device (preview/api only)")
	rootCmd.AddCommand(runCmd)
}
