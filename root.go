package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/AnkushinDaniil/beamtime/app"
	"github.com/AnkushinDaniil/beamtime/config"
	"github.com/AnkushinDaniil/beamtime/entity/format"
	"github.com/AnkushinDaniil/beamtime/entity/mode"
	"github.com/AnkushinDaniil/beamtime/entity/parameters"
	"github.com/AnkushinDaniil/beamtime/storage"
)

var window bool

var rootCmd = &cobra.Command{
	Use:          "beamtime",
	Short:        "Estimate beam time and expected counts for SE-SPS, CeBrA and ICESPICE",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd.Context(), func(ctx context.Context, a *app.App, cfg *config.Config) error {
			params := plotParameters(cfg, a.Mode, format.HTML)
			return app.NewSession(a, params, cfg.Autosave).Run(ctx, os.Stdin, os.Stdout)
		})
	},
}

func init() {
	bindWindowFlag(rootCmd.PersistentFlags())
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(plotCmd)
}

func bindWindowFlag(fs *pflag.FlagSet) {
	fs.BoolVarP(&window, "window", "w", false, "Draw the estimators inside a floating window frame")
}

// withApp reads the configuration, opens the state store and loads the
// persisted state before calling fn.
func withApp(parent context.Context, fn func(context.Context, *app.App, *config.Config) error) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("reading configuration: %w", err)
	}
	logLvl, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		logLvl = log.InfoLevel
	}
	log.SetLevel(logLvl)
	log.WithField("config", cfg.String()).Debug("Configuration loaded")

	store, err := cfg.OpenStore()
	if err != nil {
		return fmt.Errorf("opening state store: %w", err)
	}
	defer closeStore(store)

	a := app.New(mode.FromWindowFlag(window), store)
	a.Load(ctx)
	return fn(ctx, a, cfg)
}

func closeStore(store storage.Store) {
	if err := store.Close(); err != nil {
		log.WithError(err).Warn("Failed to close state store")
	}
}

func plotParameters(cfg *config.Config, m mode.Mode, f format.Format) parameters.Parameters {
	return parameters.Parameters{
		Mode:      m,
		Format:    f,
		MinEnergy: cfg.Plot.MinEnergy,
		MaxEnergy: cfg.Plot.MaxEnergy,
		Step:      cfg.Plot.Step,
	}
}
