package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arkottke/InkyPi/config"
	"github.com/arkottke/InkyPi/plugin"
	"github.com/arkottke/InkyPi/plugins/clock"
	"github.com/arkottke/InkyPi/plugins/script"
	"github.com/arkottke/InkyPi/tile"
)

var (
	layoutPath string
	outputPath string
	workers    int
	timeout    time.Duration
)

// renderCmd composes a layout document into a PNG.
var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render a tile layout to a PNG image",
	Long: `Render reads a layout document (device description plus grid settings
and tile placements), validates it, composes every tile through its
configured plugin, and writes the finished canvas as a PNG.

A rejected configuration produces no output file. A tile whose plugin
fails renders as a marked placeholder; the rest of the canvas is
unaffected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(layoutPath)
		if err != nil {
			return fmt.Errorf("read layout: %w", err)
		}

		f, err := config.ParseFile(data)
		if err != nil {
			return err
		}
		spec, tiles, err := config.Build(f.Device, f.Settings)
		if err != nil {
			return err
		}

		reg := plugin.NewRegistry()
		reg.Register(clock.ID, clock.New())
		reg.Register(script.ID, script.New())

		workers := viper.GetInt("workers")
		timeout := viper.GetDuration("timeout")

		slog.Info("composing layout",
			"tiles", len(tiles),
			"grid", fmt.Sprintf("%dx%d", spec.Cols, spec.Rows),
			"device", fmt.Sprintf("%dx%d", spec.DeviceWidth, spec.DeviceHeight),
			"workers", workers)

		cv, err := tile.Compose(cmd.Context(), spec, tiles, reg,
			tile.WithWorkers(workers),
			tile.WithRenderTimeout(timeout),
			tile.WithDevice(f.Device),
		)
		if err != nil {
			return err
		}

		if err := cv.SavePNG(outputPath); err != nil {
			return fmt.Errorf("write %s: %w", outputPath, err)
		}
		slog.Info("canvas written", "path", outputPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&layoutPath, "layout", "l", "layout.json",
		"Path to the layout document")
	renderCmd.Flags().StringVarP(&outputPath, "output", "o", "out.png",
		"Path the rendered PNG is written to")
	renderCmd.Flags().IntVarP(&workers, "workers", "w", 1,
		"Concurrent tile renders (0 = one per CPU)")
	renderCmd.Flags().DurationVarP(&timeout, "timeout", "t", 30*time.Second,
		"Per-plugin render timeout (0 = none)")

	_ = viper.BindPFlag("workers", renderCmd.Flags().Lookup("workers"))
	_ = viper.BindPFlag("timeout", renderCmd.Flags().Lookup("timeout"))
}
