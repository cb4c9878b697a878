package experiment

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/cropsim/internal/crop"
	"github.com/san-kum/cropsim/internal/sim"
	"github.com/san-kum/cropsim/internal/weather"
)

// DefaultObservationSigma is the biomass noise of synthetic observations
// (g/m²).
const DefaultObservationSigma = 150.0

// SyntheticObservations perturbs the simulated biomass of each day with
// Gaussian noise of standard deviation sigma drawn from rng.
func SyntheticObservations(steps []crop.Step, sigma float64, rng *rand.Rand) []float64 {
	out := make([]float64, len(steps))
	for i, s := range steps {
		out[i] = s.B
		if sigma > 0 {
			out[i] += rng.NormFloat64() * sigma
		}
	}
	return out
}

// RMSE compares simulated biomass with observations over the days both
// cover. It is +Inf when they do not overlap.
func RMSE(steps []crop.Step, obs []float64) float64 {
	n := min(len(steps), len(obs))
	if n == 0 {
		return math.Inf(1)
	}
	sse := 0.0
	for i := 0; i < n; i++ {
		d := steps[i].B - obs[i]
		sse += d * d
	}
	return math.Sqrt(sse / float64(n))
}

// CalibrationPoint is the fit at one grid value.
type CalibrationPoint struct {
	Value        float64 `json:"value"`
	RMSE         float64 `json:"rmse"`
	FinalBiomass float64 `json:"final_biomass"`
}

type Calibration struct {
	Param  string             `json:"param"`
	Points []CalibrationPoint `json:"points"`
	Best   CalibrationPoint   `json:"best"`
}

// Calibrate searches grid for the value of param that minimises RMSE
// against obs, holding every other crop parameter at base.
func Calibrate(ctx context.Context, days []weather.Day, base crop.Params, param string, grid []float64, obs []float64) (*Calibration, error) {
	if _, ok := base.GetParams()[param]; !ok {
		return nil, fmt.Errorf("%w: unknown crop parameter %q", sim.ErrConfiguration, param)
	}
	if len(grid) == 0 {
		return nil, fmt.Errorf("%w: empty grid for %s", sim.ErrConfiguration, param)
	}

	cal := &Calibration{Param: param}
	objective := func(values map[string]float64) (float64, error) {
		p := base
		if err := p.SetParam(param, values[param]); err != nil {
			return 0, err
		}
		steps := crop.Simulate(days, p)
		pt := CalibrationPoint{
			Value:        values[param],
			RMSE:         RMSE(steps, obs),
			FinalBiomass: crop.FinalBiomass(steps),
		}
		cal.Points = append(cal.Points, pt)
		return pt.RMSE, nil
	}

	best, _, err := NewGridSearch([]string{param}, [][]float64{grid}).Search(ctx, objective)
	if err != nil {
		return nil, err
	}
	for _, pt := range cal.Points {
		if best != nil && pt.Value == best[param] {
			cal.Best = pt
			break
		}
	}
	return cal, nil
}
