// Package crop implements the daily phenology, leaf-area and biomass model.
//
// Each day the thermal unit above Tbase advances the normalized development
// stage (NDS). LAI grows logistically inside the growth window and decays
// exponentially during senescence; intercepted radiation (Beer–Lambert) is
// converted to biomass through the radiation-use efficiency, scaled by a
// trapezoidal temperature response. The run stops the first day NDS
// reaches 1.
package crop

import (
	"math"

	"github.com/san-kum/cropsim/internal/sim"
	"github.com/san-kum/cropsim/internal/weather"
)

// PARFraction is the share of global radiation that is photosynthetically
// active.
const PARFraction = 0.48

// State is the set of accumulators carried from one day to the next.
type State struct {
	CTU float64
	NDS float64
	LAI float64
	B   float64
}

// Step is the output record of one simulated day.
type Step struct {
	Weather    weather.Day `json:"weather"`
	DTU        float64     `json:"dtu"`
	CTU        float64     `json:"ctu"`
	NDS        float64     `json:"nds"`
	LAI        float64     `json:"lai"`
	TempFactor float64     `json:"temp_factor"`
	DB         float64     `json:"db"`
	B          float64     `json:"b"`
}

// ThermalUnit is the daily growing-degree contribution.
func ThermalUnit(tmin, tmax, tbase float64) float64 {
	return math.Max((tmin+tmax)/2-tbase, 0)
}

// Interception is the Beer–Lambert fraction of radiation captured by the
// canopy.
func Interception(lai, k float64) float64 {
	return 1 - math.Exp(-k*lai)
}

// TempFactor is the trapezoidal response of radiation-use efficiency to
// mean air temperature.
func (p Params) TempFactor(tavg float64) float64 {
	return sim.Trapezoid(tavg, p.TBRUE, p.TP1RUE, p.TP2RUE, p.TCRUE)
}

// NextLAI applies one day of logistic growth or exponential senescence.
func (p Params) NextLAI(lai, nds float64) float64 {
	switch {
	case nds >= p.FrEMR && nds < p.FrBLS:
		return lai + p.Alpha*lai*math.Max(p.LAIMX-lai, 0)
	case nds >= p.FrBLS && nds < 1:
		return math.Max(lai-p.SenRate*lai, 0)
	default:
		return lai
	}
}

// Engine advances a State one day at a time.
type Engine struct {
	params Params
	state  State
}

func NewEngine(p Params) *Engine {
	return &Engine{
		params: p,
		state:  State{LAI: p.LAI0, B: p.B0},
	}
}

func (e *Engine) State() State { return e.state }

// Mature reports whether the terminal development stage was reached.
func (e *Engine) Mature() bool { return e.state.NDS >= 1 }

// Advance consumes one day of weather and returns its record.
func (e *Engine) Advance(w weather.Day) Step {
	p := e.params
	s := &e.state

	dtu := ThermalUnit(w.TMin, w.TMax, p.Tbase)
	s.CTU += dtu
	s.NDS = nds(s.CTU, p.TuHAR)

	tf := p.TempFactor(w.TMean())
	s.LAI = p.NextLAI(s.LAI, s.NDS)

	db := 0.0
	if s.NDS < 1 {
		db = w.SRad * PARFraction * Interception(s.LAI, p.KPAR) * p.RUE * tf
	}
	s.B += db

	return Step{
		Weather:    w,
		DTU:        dtu,
		CTU:        s.CTU,
		NDS:        s.NDS,
		LAI:        s.LAI,
		TempFactor: tf,
		DB:         db,
		B:          s.B,
	}
}

func nds(ctu, target float64) float64 {
	if target <= 0 {
		return 1
	}
	return sim.Clamp(ctu/target, 0, 1)
}

// Simulate runs the engine over days and truncates the trajectory on the
// first day maturity is reached. Remaining weather is left unused.
func Simulate(days []weather.Day, p Params) []Step {
	e := NewEngine(p)
	steps := make([]Step, 0, len(days))
	for _, w := range days {
		steps = append(steps, e.Advance(w))
		if e.Mature() {
			break
		}
	}
	return steps
}

// LAISeries extracts the leaf-area trajectory for the soil-water engine.
func LAISeries(steps []Step) []float64 {
	out := make([]float64, len(steps))
	for i, s := range steps {
		out[i] = s.LAI
	}
	return out
}

// FinalBiomass is the last cumulative biomass, or 0 for an empty run.
func FinalBiomass(steps []Step) float64 {
	if len(steps) == 0 {
		return 0
	}
	return steps[len(steps)-1].B
}
