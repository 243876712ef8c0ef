package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/AnkushinDaniil/beamtime/entity"
	"github.com/AnkushinDaniil/beamtime/storage"
)

const (
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

type Config struct {
	Store     string        `envconfig:"BEAMTIME_STORE" default:"file"`
	StatePath string        `envconfig:"BEAMTIME_STATE_PATH" default:""`
	LogLevel  string        `envconfig:"BEAMTIME_LOG_LEVEL" default:"info"`
	Autosave  time.Duration `envconfig:"BEAMTIME_AUTOSAVE" default:"30s"`
	Plot      Plot
}

// Plot is the energy range, in keV, the efficiency curves are sampled over.
type Plot struct {
	MinEnergy float64 `envconfig:"BEAMTIME_PLOT_MIN_ENERGY" default:"0"`
	MaxEnergy float64 `envconfig:"BEAMTIME_PLOT_MAX_ENERGY" default:"4000"`
	Step      float64 `envconfig:"BEAMTIME_PLOT_STEP" default:"10"`
}

func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}
	if cfg.Store != StoreFile && cfg.Store != StoreSQLite {
		return nil, fmt.Errorf("invalid store: %q", cfg.Store)
	}
	if !entity.ValidRange(cfg.Plot.MinEnergy, cfg.Plot.MaxEnergy, cfg.Plot.Step) {
		return nil, fmt.Errorf("invalid plot range: %g..%g step %g",
			cfg.Plot.MinEnergy, cfg.Plot.MaxEnergy, cfg.Plot.Step)
	}
	if cfg.StatePath == "" {
		path, err := defaultStatePath(cfg.Store)
		if err != nil {
			return nil, err
		}
		cfg.StatePath = path
	}
	return cfg, nil
}

func defaultStatePath(store string) (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to find config directory: %w", err)
	}
	name := "state.json"
	if store == StoreSQLite {
		name = "state.db"
	}
	return filepath.Join(dir, "beamtime", name), nil
}

// OpenStore opens the configured state backend.
func (c *Config) OpenStore() (storage.Store, error) {
	if c.Store == StoreSQLite {
		if err := os.MkdirAll(filepath.Dir(c.StatePath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create state directory: %w", err)
		}
		return storage.NewSQLite(c.StatePath)
	}
	return storage.NewFile(c.StatePath)
}

func (c *Config) String() string {
	return fmt.Sprintf("store=%s path=%s log=%s autosave=%s", c.Store, c.StatePath, c.LogLevel, c.Autosave)
}
