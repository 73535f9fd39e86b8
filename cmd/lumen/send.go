package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"lumen/display"
)

var sendCmd = &cobra.Command{
	Use:   "send [layout]",
	Short: "Render the active (or named) layout once and push it to the device",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := display.New(configDir, slog.Default())
		if err := mgr.LoadDataSources(); err != nil {
			return err
		}
		if len(args) == 1 {
			if err := mgr.LoadLayout(args[0]); err != nil {
				return err
			}
		} else if err := mgr.LoadActiveLayout(); err != nil {
			return err
		}
		if err := mgr.Connect(cmd.Context()); err != nil {
			return err
		}
		mgr.Sources().RefreshAll(cmd.Context())
		return mgr.Render(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
