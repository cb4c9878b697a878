package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/san-kum/cropsim/internal/carbon"
	"github.com/san-kum/cropsim/internal/crop"
	"github.com/san-kum/cropsim/internal/soilwater"
)

func all() []Metric {
	return []Metric{
		NewFinalBiomass(),
		NewPeakLAI(),
		NewMaturityDay(),
		NewMeanARID(),
		NewEvapotranspiration(),
		NewDrainage(),
		NewFinalSOC(),
		NewRespiredCO2(),
	}
}

func TestCropMetrics(t *testing.T) {
	ms := all()
	steps := []crop.Step{
		{NDS: 0.5, LAI: 1.0, B: 100},
		{NDS: 0.9, LAI: 3.5, B: 400},
		{NDS: 1.0, LAI: 2.0, B: 650},
	}
	for i := range steps {
		Observe(ms, Sample{Day: i + 1, Crop: &steps[i]})
	}

	v := Values(ms)
	assert.Equal(t, 650.0, v["final_biomass"])
	assert.Equal(t, 3.5, v["peak_lai"])
	assert.Equal(t, 3.0, v["maturity_day"])
	assert.Zero(t, v["mean_arid"])
	assert.Zero(t, v["final_soc"])
}

func TestMaturityNeverReached(t *testing.T) {
	m := NewMaturityDay()
	m.Observe(Sample{Day: 1, Crop: &crop.Step{NDS: 0.2}})
	assert.Zero(t, m.Value())
}

func TestWaterMetrics(t *testing.T) {
	ms := all()
	Observe(ms, Sample{Day: 1, Water: &soilwater.Step{ARID: 0.2, Tact: 1, Eact: 0.5, Drain: 2}})
	Observe(ms, Sample{Day: 2, Water: &soilwater.Step{ARID: 0.6, Tact: 2, Eact: 0.5}})

	v := Values(ms)
	assert.InDelta(t, 0.4, v["mean_arid"], 1e-12)
	assert.InDelta(t, 4.0, v["total_et"], 1e-12)
	assert.InDelta(t, 2.0, v["total_drainage"], 1e-12)
}

func TestCarbonMetrics(t *testing.T) {
	ms := all()
	Observe(ms, Sample{Carbon: &carbon.Record{SOC: 50.2, CO2: 0.3}})
	Observe(ms, Sample{Carbon: &carbon.Record{SOC: 50.1, CO2: 0.2}})

	v := Values(ms)
	assert.Equal(t, 50.1, v["final_soc"])
	assert.InDelta(t, 0.5, v["total_co2"], 1e-12)
}

func TestReset(t *testing.T) {
	ms := all()
	Observe(ms, Sample{
		Day:    4,
		Crop:   &crop.Step{NDS: 1, LAI: 2, B: 10},
		Water:  &soilwater.Step{ARID: 1, Tact: 1, Drain: 1},
		Carbon: &carbon.Record{SOC: 40, CO2: 1},
	})
	for _, m := range ms {
		assert.NotZero(t, m.Value(), m.Name())
		m.Reset()
		assert.Zero(t, m.Value(), m.Name())
	}
}
