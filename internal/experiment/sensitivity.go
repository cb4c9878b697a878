package experiment

import (
	"fmt"

	"github.com/san-kum/cropsim/internal/crop"
	"github.com/san-kum/cropsim/internal/sim"
	"github.com/san-kum/cropsim/internal/weather"
)

// SensitivityParams are varied by default.
var SensitivityParams = []string{"rue", "kpar", "laimx", "tu_har", "tbase", "alpha"}

type SensitivityRow struct {
	Param        string  `json:"param"`
	Level        string  `json:"level"`
	Value        float64 `json:"value"`
	FinalBiomass float64 `json:"final_biomass"`
}

// Sensitivity perturbs each parameter by ±span (a fraction) one at a time
// and reports final biomass for the low, base and high levels.
func Sensitivity(days []weather.Day, base crop.Params, span float64, params []string) ([]SensitivityRow, error) {
	if span < 0 || span >= 1 {
		return nil, &sim.ConfigError{Bundle: "sensitivity", Field: "span", Value: span, Reason: "must be in [0, 1)"}
	}
	values := base.GetParams()
	baseB := crop.FinalBiomass(crop.Simulate(days, base))

	rows := make([]SensitivityRow, 0, 3*len(params))
	for _, name := range params {
		v0, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown crop parameter %q", sim.ErrConfiguration, name)
		}
		run := func(v float64) (float64, error) {
			p := base
			if err := p.SetParam(name, v); err != nil {
				return 0, err
			}
			return crop.FinalBiomass(crop.Simulate(days, p)), nil
		}

		lo, hi := v0*(1-span), v0*(1+span)
		bLo, err := run(lo)
		if err != nil {
			return nil, err
		}
		bHi, err := run(hi)
		if err != nil {
			return nil, err
		}
		rows = append(rows,
			SensitivityRow{Param: name, Level: "low", Value: lo, FinalBiomass: bLo},
			SensitivityRow{Param: name, Level: "base", Value: v0, FinalBiomass: baseB},
			SensitivityRow{Param: name, Level: "high", Value: hi, FinalBiomass: bHi},
		)
	}
	return rows, nil
}
