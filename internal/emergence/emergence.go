// Package emergence accumulates pre-emergence thermal time with two models:
// a plain air-temperature growing-degree sum, and an effective thermal time
// driven by estimated soil temperature and modulated by soil moisture.
package emergence

import (
	"math"

	"github.com/san-kum/cropsim/internal/sim"
	"github.com/san-kum/cropsim/internal/soilwater"
	"github.com/san-kum/cropsim/internal/weather"
)

// RadSoilWarming is the topsoil warming above air temperature per MJ/m2 of
// unshaded radiation.
const RadSoilWarming = 0.25

// Params are the germination parameters. Moisture thresholds are fractions
// of saturation.
type Params struct {
	Tbase    float64 `yaml:"tbase"`
	Topt     float64 `yaml:"topt"`
	Tceiling float64 `yaml:"tceiling"`
	Target   float64 `yaml:"target"`
	WiltFrac float64 `yaml:"wilt_frac"`
	OptFrac  float64 `yaml:"opt_frac"`
}

func DefaultParams() Params {
	return Params{
		Tbase:    6,
		Topt:     20,
		Tceiling: 32,
		Target:   120,
		WiltFrac: 0.15,
		OptFrac:  0.35,
	}
}

func (p Params) Validate() error {
	return sim.NewValidator("germination").
		Range("tbase", p.Tbase, -5, 30).
		Range("topt", p.Topt, 0, 50).
		Range("tceiling", p.Tceiling, 0, 60).
		Positive("target", p.Target).
		Range("wilt_frac", p.WiltFrac, 0, 1).
		Range("opt_frac", p.OptFrac, 0, 1).
		Err()
}

// Step reports both accumulators on one day.
type Step struct {
	Day          int     `json:"day"`
	TSoil        float64 `json:"t_soil"`
	WSoil        float64 `json:"w_soil"`
	GDDDaily     float64 `json:"gdd_daily"`
	GDDCum       float64 `json:"gdd_cum"`
	HydroFactor  float64 `json:"hydro_factor"`
	ETTDaily     float64 `json:"ett_daily"`
	ETTCum       float64 `json:"ett_cum"`
	EmergencePct float64 `json:"emergence_pct"`
}

// SoilTemperature estimates topsoil temperature from mean air temperature
// and the radiation reaching the ground under the given shading.
func SoilTemperature(d weather.Day, shading float64) float64 {
	return d.TMean() + d.SRad*(1-shading)*RadSoilWarming
}

// TempFactor rises from Tbase to Topt and falls to Tceiling.
func (p Params) TempFactor(t float64) float64 {
	return sim.RiseFall(t, p.Tbase, p.Topt, p.Tceiling)
}

// WaterFactor rises linearly between the wilting and optimum fractions of
// saturation.
func (p Params) WaterFactor(w, wsat float64) float64 {
	if wsat <= 0 {
		return 0
	}
	return sim.Ramp(w/wsat, p.WiltFrac, p.OptFrac)
}

// Simulate accumulates both models over days. water[i] is the soil water
// content of day i; missing entries fall back to the soil's initial water.
func Simulate(days []weather.Day, water []float64, soil soilwater.Params, p Params, shading float64) []Step {
	shading = sim.Clamp(shading, 0, 1)
	steps := make([]Step, len(days))

	var gddCum, ettCum float64
	for i, d := range days {
		w := soil.W0
		if i < len(water) {
			w = water[i]
		}

		gdd := math.Max(0, d.TMean()-p.Tbase)
		gddCum += gdd

		tsoil := SoilTemperature(d, shading)
		wf := p.WaterFactor(w, soil.Wsat)
		ett := (p.Topt - p.Tbase) * p.TempFactor(tsoil) * wf
		ettCum += ett

		steps[i] = Step{
			Day:          d.Day,
			TSoil:        tsoil,
			WSoil:        w,
			GDDDaily:     gdd,
			GDDCum:       gddCum,
			HydroFactor:  wf,
			ETTDaily:     ett,
			ETTCum:       ettCum,
			EmergencePct: Percent(ettCum, p.Target),
		}
	}
	return steps
}

// Percent is progress toward target, capped at 100.
func Percent(cum, target float64) float64 {
	if target <= 0 {
		return 100
	}
	return math.Min(100, cum/target*100)
}

// DayReached returns the first day whose cumulative total reaches target,
// or 0 when it is never reached.
func DayReached(steps []Step, target float64, cum func(Step) float64) int {
	for _, s := range steps {
		if cum(s) >= target {
			return s.Day
		}
	}
	return 0
}

// GDD and ETT select the accumulator for DayReached.
func GDD(s Step) float64 { return s.GDDCum }
func ETT(s Step) float64 { return s.ETTCum }
