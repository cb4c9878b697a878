package config

import "sort"

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"agrivoltaic": with(func(c *Config) {
		c.Name = "agrivoltaic"
		c.Shading = 40
	}),
	"regenerative": with(func(c *Config) {
		c.Name = "regenerative"
		c.Carbon.MinimumTillage = true
		c.Carbon.CoverCrop = true
		c.Carbon.Manure = true
	}),
	"residue-removal": with(func(c *Config) {
		c.Name = "residue-removal"
		c.Carbon.IncorporateResidues = false
	}),
	"alfalfa": with(func(c *Config) {
		c.Name = "alfalfa"
		c.Carbon.Rotation = "tomato-wheat-alfalfa"
	}),
	"dry": with(func(c *Config) {
		c.Name = "dry"
		c.Weather.RainMean = 0.5
		c.Soil.W0 = 80
		c.Carbon.Clay = 10
	}),
	"cool": with(func(c *Config) {
		c.Name = "cool"
		c.Weather.TMean = 12
		c.Weather.TAmp = 10
		c.Weather.SRad = 14
	}),
	"clay": with(func(c *Config) {
		c.Name = "clay"
		c.Carbon.Clay = 45
		c.Soil.Wfc = 190
		c.Soil.Wsat = 270
	}),
}

func with(edit func(*Config)) *Config {
	c := DefaultConfig()
	edit(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg.Clone()
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
