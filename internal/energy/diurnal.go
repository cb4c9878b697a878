package energy

import (
	"math"

	"github.com/san-kum/cropsim/internal/sim"
)

const (
	stepHours     = 0.5
	peakRadiation = 1050.0 // W/m²
	directShare   = 0.85
	soilDepth     = 0.4 // m
	initialWater  = 0.22
	windSpeed     = 2.0
	seaLevel      = 101.3 // kPa
)

// Canopy holds the stand properties a diurnal run can override.
type Canopy struct {
	LAI             float64 `yaml:"lai" json:"lai"`
	Height          float64 `yaml:"height" json:"height"`
	MaxConductance  float64 `yaml:"max_conductance" json:"max_conductance"`
	DragCoefficient float64 `yaml:"drag_coefficient" json:"drag_coefficient"`
	Albedo          float64 `yaml:"albedo" json:"albedo"`
}

func DefaultCanopy() Canopy {
	return Canopy{
		LAI:             4,
		Height:          0.8,
		MaxConductance:  0.01,
		DragCoefficient: 0.2,
		Albedo:          0.23,
	}
}

func (c Canopy) Validate() error {
	return sim.NewValidator("energy.canopy").
		NonNegative("lai", c.LAI).
		NonNegative("height", c.Height).
		NonNegative("max_conductance", c.MaxConductance).
		NonNegative("drag_coefficient", c.DragCoefficient).
		Range("albedo", c.Albedo, 0, 1).
		Err()
}

// Params returns the solver settings for this canopy.
func (c Canopy) Params() Params {
	p := DefaultParams()
	p.MaxConductance = c.MaxConductance
	p.DragCoefficient = c.DragCoefficient
	p.Albedo = c.Albedo
	return p
}

// DiurnalStep is one half-hour of a synthetic diurnal run. Temperatures are
// in °C, VPD in kPa.
type DiurnalStep struct {
	Time       float64 `json:"time"`
	Hour       float64 `json:"hour"`
	Rad        float64 `json:"rad"`
	TempAir    float64 `json:"temp_air"`
	TempCanopy float64 `json:"temp_canopy"`
	TempSoil   float64 `json:"temp_soil"`
	ET         float64 `json:"et_mm_h"`
	SoilWater  float64 `json:"soil_water"`
	VPD        float64 `json:"vpd"`
	Converged  bool    `json:"converged"`
}

// Forcing is the synthetic weather at an hour of day.
type Forcing struct {
	Global float64
	TempC  float64
	RH     float64
}

// SyntheticForcing is a clear-sky day: radiation between 06:00 and 19:00,
// temperature peaking mid-afternoon, humidity moving against it.
func SyntheticForcing(hour float64) Forcing {
	s := math.Sin(math.Pi * (hour - 9) / 15)
	return Forcing{
		Global: math.Max(0, peakRadiation*math.Sin(math.Pi*(hour-6)/13)),
		TempC:  22 + 15*s,
		RH:     sim.Clamp(75-55*s, 20, 85),
	}
}

// SimulateDiurnal steps the sunlit/shaded solver every half hour for days
// under shadingPct percent shading, drawing soil water down by ET.
func SimulateDiurnal(days int, shadingPct float64, c Canopy) []DiurnalStep {
	p := c.Params()
	n := days * 48
	if n <= 0 {
		return nil
	}

	out := make([]DiurnalStep, 0, n)
	water := initialWater
	factor := 1 - shadingPct/100
	for i := 0; i < n; i++ {
		t := float64(i) * stepHours
		hour := math.Mod(t, 24)
		f := SyntheticForcing(hour)

		direct := f.Global * directShare * factor
		diffuse := f.Global * (1 - directShare) * factor

		air := CelsiusToKelvin(f.TempC)
		in := Inputs{
			MeasurementHeight: math.Max(2, c.Height+1.5),
			CanopyHeight:      c.Height,
			LAI:               c.LAI,
			SoilWater:         water,
			AirTemp:           air,
			WindSpeed:         windSpeed,
			RH:                f.RH,
			Pressure:          seaLevel,
			VaporPressure:     SaturationVaporPressure(f.TempC) * f.RH / 100,
			PARDirect:         direct * PARFraction,
			PARDiffuse:        diffuse * PARFraction,
		}
		res := Solve(SunlitShadedLayout, in, p)

		soil, _ := res.Component(Soil)
		et := res.LatentFlux * 3600 / LatentHeat
		water = math.Max(p.WiltingPoint, water-(et/1000)/soilDepth*stepHours)

		out = append(out, DiurnalStep{
			Time:       t,
			Hour:       hour,
			Rad:        direct + diffuse,
			TempAir:    f.TempC,
			TempCanopy: KelvinToCelsius(res.CanopyTemp(air)),
			TempSoil:   KelvinToCelsius(soil.Temp),
			ET:         et,
			SoilWater:  water,
			VPD:        VaporPressureDeficit(f.TempC, f.RH),
			Converged:  res.Convergence.Converged,
		})
	}
	return out
}

// DailyET sums the evapotranspiration of steps in mm.
func DailyET(steps []DiurnalStep) float64 {
	total := 0.0
	for _, s := range steps {
		total += s.ET * stepHours
	}
	return total
}
