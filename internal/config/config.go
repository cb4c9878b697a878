// Package config holds every parameter bundle of a simulation run and its
// YAML form.
package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/cropsim/internal/carbon"
	"github.com/san-kum/cropsim/internal/crop"
	"github.com/san-kum/cropsim/internal/emergence"
	"github.com/san-kum/cropsim/internal/energy"
	"github.com/san-kum/cropsim/internal/photosynthesis"
	"github.com/san-kum/cropsim/internal/sim"
	"github.com/san-kum/cropsim/internal/soilwater"
	"github.com/san-kum/cropsim/internal/weather"
)

const (
	DefaultSeed       = 42
	DefaultEnergyDays = 3
)

type Config struct {
	Name        string               `yaml:"name"`
	Seed        int64                `yaml:"seed"`
	WeatherFile string               `yaml:"weather_file,omitempty"`
	Shading     float64              `yaml:"shading"`
	Weather     weather.Params       `yaml:"weather"`
	Crop        crop.Params          `yaml:"crop"`
	Soil        soilwater.Params     `yaml:"soil"`
	Germination emergence.Params     `yaml:"germination"`
	Carbon      carbon.Params        `yaml:"carbon"`
	Energy      EnergyConfig         `yaml:"energy"`
	Farquhar    photosynthesis.Input `yaml:"farquhar"`
}

// EnergyConfig drives the diurnal energy-balance run.
type EnergyConfig struct {
	Days   int           `yaml:"days"`
	Canopy energy.Canopy `yaml:"canopy"`
}

func DefaultConfig() *Config {
	return &Config{
		Name:        "default",
		Seed:        DefaultSeed,
		Weather:     weather.DefaultParams(),
		Crop:        crop.DefaultParams(),
		Soil:        soilwater.DefaultParams(),
		Germination: emergence.DefaultParams(),
		Carbon:      carbon.DefaultParams(),
		Energy: EnergyConfig{
			Days:   DefaultEnergyDays,
			Canopy: energy.DefaultCanopy(),
		},
		Farquhar: photosynthesis.DefaultInput(),
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", sim.ErrMalformedInput, path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate range-checks every bundle and joins the failures.
func (c *Config) Validate() error {
	return errors.Join(
		sim.NewValidator("config").
			Range("shading", c.Shading, 0, 100).
			Positive("energy.days", float64(c.Energy.Days)).
			Err(),
		c.Weather.Validate(),
		c.Crop.Validate(),
		c.Soil.Validate(),
		c.Germination.Validate(),
		c.Carbon.Validate(),
		c.Energy.Canopy.Validate(),
		c.Farquhar.Validate(),
	)
}

// ShadingFraction is Shading as a fraction in [0,1].
func (c *Config) ShadingFraction() float64 {
	return sim.Clamp(c.Shading/100, 0, 1)
}

// Clone returns a copy; every bundle is a plain value.
func (c *Config) Clone() *Config {
	out := *c
	return &out
}
