package experiment

import (
	"context"

	"github.com/san-kum/cropsim/internal/config"
	"github.com/san-kum/cropsim/internal/soilwater"
	"github.com/san-kum/cropsim/internal/weather"
)

// ETShadingFactor is the share of the shaded fraction removed from reference
// evapotranspiration under panels.
const ETShadingFactor = 0.3

// Scenario rescales the daily forcing of a run.
type Scenario struct {
	RadFactor  float64 `json:"rad_factor" yaml:"rad_factor"`
	RainFactor float64 `json:"rain_factor" yaml:"rain_factor"`
	ET0Factor  float64 `json:"et0_factor" yaml:"et0_factor"`
}

// Baseline leaves the forcing unchanged.
func Baseline() Scenario {
	return Scenario{RadFactor: 1, RainFactor: 1, ET0Factor: 1}
}

// Shading is the microclimate under panels intercepting fraction of the
// incident radiation.
func Shading(fraction float64) Scenario {
	return Scenario{
		RadFactor:  1 - fraction,
		RainFactor: 1,
		ET0Factor:  1 - ETShadingFactor*fraction,
	}
}

// Then composes two scenarios.
func (s Scenario) Then(o Scenario) Scenario {
	return Scenario{
		RadFactor:  s.RadFactor * o.RadFactor,
		RainFactor: s.RainFactor * o.RainFactor,
		ET0Factor:  s.ET0Factor * o.ET0Factor,
	}
}

func (s Scenario) Weather() weather.Scenario {
	return weather.Scenario{RadFactor: s.RadFactor, RainFactor: s.RainFactor}
}

func (s Scenario) Soil(p soilwater.Params) soilwater.Params {
	p.ET0 *= s.ET0Factor
	return p
}

// Comparison pairs two runs over the same weather.
type Comparison struct {
	Baseline *Result `json:"baseline"`
	Scenario *Result `json:"scenario"`
}

// Change is the relative difference of a metric, scenario over baseline, in
// percent. It is 0 when the baseline value is 0.
func (c *Comparison) Change(metric string) float64 {
	base := c.Baseline.Metrics[metric]
	if base == 0 {
		return 0
	}
	return (c.Scenario.Metrics[metric] - base) / base * 100
}

// RunScenario runs cfg as is and again under sc, both on the weather cfg
// generates.
func RunScenario(ctx context.Context, cfg *config.Config, sc Scenario, opts ...Option) (*Comparison, error) {
	days, err := LoadWeather(cfg)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithWeather(days))

	base, err := New(cfg, opts...).Run(ctx)
	if err != nil {
		return nil, err
	}
	scen, err := New(cfg, append(opts, WithScenario(sc))...).Run(ctx)
	if err != nil {
		return nil, err
	}
	return &Comparison{Baseline: base, Scenario: scen}, nil
}

// Agrivoltaic compares open field against shadingPct percent panel cover.
func Agrivoltaic(ctx context.Context, cfg *config.Config, shadingPct float64, opts ...Option) (*Comparison, error) {
	open := cfg.Clone()
	open.Shading = 0
	shaded := cfg.Clone()
	shaded.Shading = shadingPct

	days, err := LoadWeather(open)
	if err != nil {
		return nil, err
	}
	opts = append(opts, WithWeather(days))

	base, err := New(open, opts...).Run(ctx)
	if err != nil {
		return nil, err
	}
	scen, err := New(shaded, opts...).Run(ctx)
	if err != nil {
		return nil, err
	}
	return &Comparison{Baseline: base, Scenario: scen}, nil
}
