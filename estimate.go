package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AnkushinDaniil/beamtime/app"
	"github.com/AnkushinDaniil/beamtime/config"
	"github.com/AnkushinDaniil/beamtime/entity/format"
)

var (
	outputFormat string
	outputPath   string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Print one frame of the saved estimators and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := format.UnmarshalText(outputFormat)
		if err != nil {
			return err
		}
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, cfg *config.Config) error {
			return app.Snapshot(cmd.OutOrStdout(), a, plotParameters(cfg, a.Mode, f))
		})
	},
}

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Write the CeBrA efficiency curves and expected counts as an HTML chart",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, cfg *config.Config) error {
			out, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("failed to create file: %w", err)
			}
			defer out.Close()
			return app.RenderChart(out, a.State, plotParameters(cfg, a.Mode, format.HTML))
		})
	},
}

func init() {
	estimateCmd.Flags().StringVarP(&outputFormat, "format", "f", format.Text.String(), "Output format: text, json or html")
	plotCmd.Flags().StringVarP(&outputPath, "output", "o", "efficiency.html", "Path of the HTML file")
}
