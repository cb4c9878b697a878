package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/cropsim/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "default", cfg.Name)
	assert.Equal(t, int64(DefaultSeed), cfg.Seed)
	assert.Equal(t, 200, cfg.Weather.Days)
	assert.Equal(t, 1400.0, cfg.Crop.TuHAR)
	assert.Equal(t, 20, cfg.Carbon.Years)
	require.NoError(t, cfg.Validate())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("regenerative")
	cfg.Seed = 7
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	doc := "seed: 3\ncrop:\n  rue: 3.1\ncarbon:\n  rotation: tomato-wheat-soy\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3), cfg.Seed)
	assert.Equal(t, 3.1, cfg.Crop.RUE)
	assert.Equal(t, 0.6, cfg.Crop.KPAR)
	assert.Equal(t, "tomato-wheat-soy", cfg.Carbon.Rotation)
	assert.Equal(t, 50.0, cfg.Carbon.InitialSOC)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("crop: [1, 2"), 0644))
	_, err = Load(path)
	assert.True(t, errors.Is(err, sim.ErrConfiguration))
}

func TestValidateCollectsBundles(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shading = 150
	cfg.Crop.RUE = -1
	cfg.Carbon.Rotation = "rice"

	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, sim.ErrConfiguration))

	var ce *sim.ConfigError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "config", ce.Bundle)
	assert.Contains(t, err.Error(), "crop.rue")
}

func TestShading(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Shading = 40

	assert.InDelta(t, 0.4, cfg.ShadingFraction(), 1e-12)

	cfg.Shading = 120
	assert.Equal(t, 1.0, cfg.ShadingFraction())
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("agrivoltaic")
	require.NotNil(t, cfg)
	assert.Equal(t, 40.0, cfg.Shading)

	cfg.Shading = 90
	assert.Equal(t, 40.0, GetPreset("agrivoltaic").Shading)

	assert.Nil(t, GetPreset("nonexistent"))
}

func TestPresetsValidate(t *testing.T) {
	names := ListPresets()
	assert.Contains(t, names, "default")
	assert.IsIncreasing(t, names)
	for _, name := range names {
		assert.NoError(t, GetPreset(name).Validate(), name)
	}
}
