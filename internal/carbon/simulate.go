package carbon

import "slices"

// coverCropMonths are the zero-based months (Jan, Feb, Mar, Nov, Dec) during
// which a winter cover crop shelters the soil.
var coverCropMonths = []int{0, 1, 2, 10, 11}

// Record is the state after one simulated month.
type Record struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Pools
	SOC   float64 `json:"soc"`
	CO2   float64 `json:"co2"`
	Input float64 `json:"input"`
}

// Modifiers for month m (zero-based) of the year under p.
func (p Params) Modifiers(m int, c Month) Modifiers {
	covered := c.Covered || (p.CoverCrop && slices.Contains(coverCropMonths, m))
	return Modifiers{
		Temp:     TempModifier(c.Temp),
		Moisture: MoistureModifier(c.Precip, p.ET0*MonthDays, p.Clay),
		Cover:    CoverModifier(covered) * TillageModifier(p.MinimumTillage),
	}
}

// Simulate projects the pools for p.Years years, 12 months each, drawing
// monthly climate cyclically from climate. It returns nil when climate is
// empty or the rotation is unknown.
func Simulate(p Params, climate []Month) []Record {
	rot, err := GetRotation(p.Rotation)
	if err != nil {
		return nil
	}
	return SimulateRotation(p, rot, climate)
}

// SimulateRotation is Simulate with an explicit biomass sequence.
func SimulateRotation(p Params, rot Rotation, climate []Month) []Record {
	if len(climate) == 0 || rot.Len() == 0 || p.Years <= 0 {
		return nil
	}

	pools := InitialPools(p.InitialSOC)
	out := make([]Record, 0, p.Years*12)
	for y := 0; y < p.Years; y++ {
		biomass, legume := rot.Year(y)
		monthly := p.AnnualInput(biomass) / 12
		in := SplitInput(monthly, legume)

		for m := 0; m < 12; m++ {
			mod := p.Modifiers(m, climate[m%len(climate)])
			var co2 float64
			pools, co2 = Step(pools, in, mod, p.Clay)
			out = append(out, Record{
				Year:  y + 1,
				Month: m + 1,
				Pools: pools,
				SOC:   pools.Total(),
				CO2:   co2,
				Input: monthly,
			})
		}
	}
	return out
}

// SOCSeries extracts total SOC per month.
func SOCSeries(recs []Record) []float64 {
	out := make([]float64, len(recs))
	for i, r := range recs {
		out[i] = r.SOC
	}
	return out
}

// Comparison pairs a management scenario with its conventional baseline.
type Comparison struct {
	Baseline []Record `json:"baseline"`
	Scenario []Record `json:"scenario"`
}

// Delta is the scenario SOC minus baseline SOC at the horizon.
func (c Comparison) Delta() float64 {
	if len(c.Baseline) == 0 || len(c.Scenario) == 0 {
		return 0
	}
	return c.Scenario[len(c.Scenario)-1].SOC - c.Baseline[len(c.Baseline)-1].SOC
}

// Compare runs p and p.Baseline() over the same climate.
func Compare(p Params, climate []Month) Comparison {
	return Comparison{
		Baseline: Simulate(p.Baseline(), climate),
		Scenario: Simulate(p, climate),
	}
}
