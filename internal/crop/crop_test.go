package crop

import (
	"testing"

	"github.com/san-kum/cropsim/internal/weather"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constantWeather(n int, tmin, tmax, srad float64) []weather.Day {
	days := make([]weather.Day, n)
	for i := range days {
		days[i] = weather.Day{Day: i + 1, TMin: tmin, TMax: tmax, SRad: srad}
	}
	return days
}

func TestThermalUnit(t *testing.T) {
	assert.Equal(t, 10.0, ThermalUnit(13, 23, 8))
	assert.Equal(t, 0.0, ThermalUnit(0, 10, 8))
}

func TestInterception(t *testing.T) {
	assert.Equal(t, 0.0, Interception(0, 0.6))
	assert.InDelta(t, 1.0, Interception(50, 0.6), 1e-9)
}

func TestSimulateInvariants(t *testing.T) {
	days := weather.Generate(weather.DefaultParams(), weather.NewSource(11))
	steps := Simulate(days, DefaultParams())
	require.NotEmpty(t, steps)

	prevNDS, prevB := 0.0, 0.0
	for _, s := range steps {
		assert.GreaterOrEqual(t, s.NDS, prevNDS)
		assert.GreaterOrEqual(t, s.NDS, 0.0)
		assert.LessOrEqual(t, s.NDS, 1.0)
		assert.GreaterOrEqual(t, s.LAI, 0.0)
		assert.GreaterOrEqual(t, s.B, prevB)
		prevNDS, prevB = s.NDS, s.B
	}
}

func TestSimulateTruncatesAtMaturity(t *testing.T) {
	days := weather.Generate(weather.DefaultParams(), weather.NewSource(5))
	steps := Simulate(days, DefaultParams())

	last := steps[len(steps)-1]
	if last.NDS >= 1 {
		assert.LessOrEqual(t, len(steps), len(days))
		for _, s := range steps[:len(steps)-1] {
			assert.Less(t, s.NDS, 1.0, "maturity is reached exactly once")
		}
		assert.Zero(t, last.DB)
	} else {
		assert.Len(t, steps, len(days))
	}
}

func TestDefaultScenarioReachesMaturity(t *testing.T) {
	// Tmean 18, Tamp 8, Tbase 8: daily thermal units stay between 2 and 18
	// over the first 200 days, enough to accumulate 1400.
	days := weather.Generate(weather.DefaultParams(), weather.NewSource(1))
	steps := Simulate(days, DefaultParams())
	assert.Equal(t, 1.0, steps[len(steps)-1].NDS)
	assert.Less(t, len(steps), 200)
}

func TestZeroThermalTargetEmitsOneRecord(t *testing.T) {
	p := DefaultParams()
	p.TuHAR = 0
	steps := Simulate(constantWeather(30, 10, 20, 15), p)
	require.Len(t, steps, 1)
	assert.Equal(t, 1, steps[0].Weather.Day)
	assert.Equal(t, 1.0, steps[0].NDS)
	assert.Zero(t, steps[0].DB)
}

func TestColdWeatherNoDevelopment(t *testing.T) {
	steps := Simulate(constantWeather(50, 0, 6, 15), DefaultParams())
	require.Len(t, steps, 50)
	for _, s := range steps {
		assert.Zero(t, s.DTU)
		assert.Zero(t, s.DB, "temperature factor is 0 below TBRUE")
	}
}

func TestSimulateEmpty(t *testing.T) {
	assert.Empty(t, Simulate(nil, DefaultParams()))
	assert.Zero(t, FinalBiomass(nil))
}

func TestNextLAIWindows(t *testing.T) {
	p := DefaultParams()

	assert.Equal(t, 1.0, p.NextLAI(1.0, 0.01), "before emergence window")
	assert.InDelta(t, 1.0+0.02*1.0*4.0, p.NextLAI(1.0, 0.3), 1e-12)
	assert.InDelta(t, 0.98, p.NextLAI(1.0, 0.8), 1e-12)
	assert.Equal(t, 6.0, p.NextLAI(6.0, 0.3), "no growth above LAIMX")
	assert.Equal(t, 1.0, p.NextLAI(1.0, 1.0))
}

func TestBiomassIncrement(t *testing.T) {
	p := DefaultParams()
	p.FrEMR = 2 // freeze LAI
	p.LAI0 = 2
	steps := Simulate(constantWeather(1, 18, 28, 20), p)
	require.Len(t, steps, 1)

	want := 20 * PARFraction * Interception(2, p.KPAR) * p.RUE * 1.0
	assert.InDelta(t, want, steps[0].DB, 1e-12)
}

func TestSimulateDeterministic(t *testing.T) {
	days := weather.Generate(weather.DefaultParams(), weather.NewSource(21))
	assert.Equal(t, Simulate(days, DefaultParams()), Simulate(days, DefaultParams()))
}

func TestParamsByName(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, p.SetParam("rue", 3.1))
	assert.Equal(t, 3.1, p.RUE)
	assert.Equal(t, 3.1, p.GetParams()["rue"])
	assert.Error(t, p.SetParam("nope", 1))
	assert.Len(t, p.GetParams(), 15)
}

func TestParamsValidate(t *testing.T) {
	assert.NoError(t, DefaultParams().Validate())
	p := DefaultParams()
	p.LAIMX = 0
	p.FrBLS = 1.5
	assert.Error(t, p.Validate())
}
