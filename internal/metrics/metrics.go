// Package metrics summarises simulated trajectories into scalar indicators.
package metrics

import (
	"github.com/san-kum/cropsim/internal/carbon"
	"github.com/san-kum/cropsim/internal/crop"
	"github.com/san-kum/cropsim/internal/soilwater"
)

// Sample is one observation. Daily samples carry Crop and/or Water; monthly
// samples carry Carbon. Metrics ignore the parts they do not use.
type Sample struct {
	Day    int
	Crop   *crop.Step
	Water  *soilwater.Step
	Carbon *carbon.Record
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

// Observe feeds every metric with one sample.
func Observe(ms []Metric, s Sample) {
	for _, m := range ms {
		m.Observe(s)
	}
}

// Values collects metric values by name.
func Values(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
