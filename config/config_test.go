package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnkushinDaniil/beamtime/storage"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("BEAMTIME_STATE_PATH", "/tmp/beamtime-test/state.json")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, StoreFile, cfg.Store)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Autosave)
	assert.Equal(t, Plot{MinEnergy: 0, MaxEnergy: 4000, Step: 10}, cfg.Plot)
}

func TestNew_FromEnvironment(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("BEAMTIME_STORE", "sqlite")
	t.Setenv("BEAMTIME_STATE_PATH", filepath.Join(dir, "state.db"))
	t.Setenv("BEAMTIME_LOG_LEVEL", "debug")
	t.Setenv("BEAMTIME_AUTOSAVE", "2m")
	t.Setenv("BEAMTIME_PLOT_MAX_ENERGY", "3000")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Minute, cfg.Autosave)
	assert.Equal(t, 3000.0, cfg.Plot.MaxEnergy)

	store, err := cfg.OpenStore()
	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &storage.SQLite{}, store)
}

func TestNew_DefaultPathFollowsStore(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("BEAMTIME_STORE", "sqlite")

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, "state.db", filepath.Base(cfg.StatePath))
	assert.Equal(t, "beamtime", filepath.Base(filepath.Dir(cfg.StatePath)))
}

func TestNew_Invalid(t *testing.T) {
	t.Run("store", func(t *testing.T) {
		t.Setenv("BEAMTIME_STORE", "redis")
		_, err := New()
		assert.Error(t, err)
	})
	t.Run("plot step", func(t *testing.T) {
		t.Setenv("BEAMTIME_PLOT_STEP", "0")
		_, err := New()
		assert.Error(t, err)
	})
	t.Run("plot samples", func(t *testing.T) {
		t.Setenv("BEAMTIME_PLOT_STEP", "1e-9")
		_, err := New()
		assert.Error(t, err)
	})
	t.Run("plot nan", func(t *testing.T) {
		t.Setenv("BEAMTIME_PLOT_MAX_ENERGY", "NaN")
		_, err := New()
		assert.Error(t, err)
	})
	t.Run("autosave", func(t *testing.T) {
		t.Setenv("BEAMTIME_AUTOSAVE", "soon")
		_, err := New()
		assert.Error(t, err)
	})
}

func TestOpenStore_File(t *testing.T) {
	cfg := &Config{Store: StoreFile, StatePath: filepath.Join(t.TempDir(), "state.json")}
	store, err := cfg.OpenStore()
	require.NoError(t, err)
	defer store.Close()
	assert.IsType(t, &storage.File{}, store)
}
