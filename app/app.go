package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/AnkushinDaniil/beamtime/conversion"
	"github.com/AnkushinDaniil/beamtime/detectorarray"
	"github.com/AnkushinDaniil/beamtime/entity/mode"
	"github.com/AnkushinDaniil/beamtime/spectrometer"
	"github.com/AnkushinDaniil/beamtime/storage"
)

const Title = "Beam Time Estimator"

// State is everything that survives a restart.
type State struct {
	SPS          spectrometer.Settings  `json:"sps_settings"`
	CeBrA        detectorarray.Settings `json:"cebra_settings"`
	ICESPICE     conversion.Settings    `json:"icespice_settings"`
	ShowSPS      bool                   `json:"show_sps"`
	ShowCeBrA    bool                   `json:"show_cebra"`
	ShowICESPICE bool                   `json:"show_icespice"`
	Window       bool                   `json:"window"`
}

func DefaultState() State {
	return State{
		SPS:          spectrometer.Default(),
		CeBrA:        detectorarray.Default(),
		ICESPICE:     conversion.Default(),
		ShowSPS:      true,
		ShowCeBrA:    true,
		ShowICESPICE: true,
	}
}

// App owns the three estimators and their persistence.
type App struct {
	State State
	Mode  mode.Mode
	store storage.Store
}

// New builds an App with default state. The display mode is fixed here and
// is not taken from persisted state.
func New(m mode.Mode, store storage.Store) *App {
	state := DefaultState()
	state.Window = m == mode.Window
	return &App{State: state, Mode: m, store: store}
}

// Load replaces the state with the persisted one. Missing or unreadable
// state leaves the defaults in place and is only logged.
func (a *App) Load(ctx context.Context) {
	startTime := time.Now()
	defer func() {
		log.WithFields(log.Fields{
			"time": time.Since(startTime),
			"mode": a.Mode,
		}).Debug("State loaded")
	}()

	data, err := a.store.Get(ctx, storage.AppKey)
	if errors.Is(err, storage.ErrNotFound) {
		log.Info("No saved state, using defaults")
		return
	}
	if err != nil {
		log.WithError(err).Warn("Failed to read saved state, using defaults")
		return
	}

	a.State = Deserialize(data)
	a.State.Window = a.Mode == mode.Window
}

// Save writes the current state unconditionally.
func (a *App) Save(ctx context.Context) error {
	data, err := a.State.Serialize()
	if err != nil {
		return err
	}
	if err := a.store.Set(ctx, storage.AppKey, data); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	log.WithField("bytes", len(data)).Debug("State saved")
	return nil
}

// Reset restores the compiled-in defaults, keeping the display mode.
func (a *App) Reset() {
	a.State = DefaultState()
	a.State.Window = a.Mode == mode.Window
}
