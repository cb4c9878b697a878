package weather

import "math"

// Scenario rescales radiation and rain multiplicatively.
type Scenario struct {
	RadFactor  float64 `yaml:"rad_factor"`
	RainFactor float64 `yaml:"rain_factor"`
}

// Identity leaves the forcing unchanged.
func Identity() Scenario {
	return Scenario{RadFactor: 1, RainFactor: 1}
}

// Shade is the scenario produced by a panel cover intercepting the given
// fraction of incident radiation.
func Shade(fraction float64) Scenario {
	return Scenario{RadFactor: 1 - fraction, RainFactor: 1}
}

// Apply returns a rescaled copy; the input slice is not modified.
func (s Scenario) Apply(days []Day) []Day {
	out := make([]Day, len(days))
	for i, d := range days {
		d.SRad = math.Max(0, d.SRad*s.RadFactor)
		d.Rain = math.Max(0, d.Rain*s.RainFactor)
		out[i] = d
	}
	return out
}
