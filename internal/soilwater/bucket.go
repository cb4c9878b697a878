// Package soilwater implements a single-layer tipping-bucket water balance.
package soilwater

import (
	"math"

	"github.com/san-kum/cropsim/internal/sim"
	"github.com/san-kum/cropsim/internal/weather"
)

// Params describes the soil profile and its flux coefficients. Water
// contents are in mm over the rooting depth.
type Params struct {
	W0           float64 `yaml:"w0"`
	Wwp          float64 `yaml:"w_wp"`
	Wfc          float64 `yaml:"w_fc"`
	Wsat         float64 `yaml:"w_sat"`
	ET0          float64 `yaml:"et0"`
	Alpha        float64 `yaml:"alpha"`
	Beta         float64 `yaml:"beta"`
	Gamma        float64 `yaml:"gamma"`
	InfCap       float64 `yaml:"inf_cap"`
	LAIFullCover float64 `yaml:"lai_full_cover"`
}

func DefaultParams() Params {
	return Params{
		W0:           120,
		Wwp:          60,
		Wfc:          160,
		Wsat:         250,
		ET0:          4,
		Alpha:        0.25,
		Beta:         0.20,
		Gamma:        0.15,
		InfCap:       25,
		LAIFullCover: 3,
	}
}

func (p Params) Validate() error {
	return sim.NewValidator("soil").
		NonNegative("w0", p.W0).
		NonNegative("w_wp", p.Wwp).
		NonNegative("w_fc", p.Wfc).
		Positive("w_sat", p.Wsat).
		NonNegative("et0", p.ET0).
		Range("alpha", p.Alpha, 0, 1).
		Range("beta", p.Beta, 0, 1).
		Range("gamma", p.Gamma, 0, 1).
		NonNegative("inf_cap", p.InfCap).
		Positive("lai_full_cover", p.LAIFullCover).
		Err()
}

// Step is the water balance of one day.
type Step struct {
	Weather weather.Day `json:"weather"`
	LAI     float64     `json:"lai"`
	Runoff  float64     `json:"runoff"`
	ET0     float64     `json:"et0"`
	Tact    float64     `json:"tact"`
	Eact    float64     `json:"eact"`
	Drain   float64     `json:"drain"`
	W       float64     `json:"w"`
	ARID    float64     `json:"arid"`
}

// Bucket holds the soil water content between days.
type Bucket struct {
	params Params
	w      float64
}

func NewBucket(p Params) *Bucket {
	return &Bucket{params: p, w: sim.Clamp(p.W0, 0, p.Wsat)}
}

func (b *Bucket) Water() float64 { return b.w }

// Advance applies one day of rain and the given canopy LAI.
func (b *Bucket) Advance(d weather.Day, lai float64) Step {
	p := b.params

	cover := sim.Clamp(lai/p.LAIFullCover, 0, 1)
	tpot := p.ET0 * cover
	epot := p.ET0 * (1 - cover)

	aw := math.Max(b.w-p.Wwp, 0)
	tact := math.Min(tpot, p.Alpha*aw)
	eact := math.Min(epot, p.Gamma*aw)
	drain := math.Max(b.w-p.Wfc, 0) * p.Beta
	runoff := math.Max(d.Rain-p.InfCap, 0)

	b.w = sim.Clamp(b.w+d.Rain-runoff-tact-eact-drain, 0, p.Wsat)

	arid := 0.0
	if p.ET0 > 0 {
		arid = 1 - tact/p.ET0
	}

	return Step{
		Weather: d,
		LAI:     lai,
		Runoff:  runoff,
		ET0:     p.ET0,
		Tact:    tact,
		Eact:    eact,
		Drain:   drain,
		W:       b.w,
		ARID:    arid,
	}
}

// LAIAt returns lai[i], holding the last value once the series ends.
func LAIAt(lai []float64, i int) float64 {
	if len(lai) == 0 {
		return 0
	}
	if i < len(lai) {
		return lai[i]
	}
	return lai[len(lai)-1]
}

// Simulate emits one record per weather day.
func Simulate(days []weather.Day, p Params, lai []float64) []Step {
	b := NewBucket(p)
	steps := make([]Step, len(days))
	for i, d := range days {
		steps[i] = b.Advance(d, LAIAt(lai, i))
	}
	return steps
}

// WaterSeries extracts W from a trajectory.
func WaterSeries(steps []Step) []float64 {
	out := make([]float64, len(steps))
	for i, s := range steps {
		out[i] = s.W
	}
	return out
}
