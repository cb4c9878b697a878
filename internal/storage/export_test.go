package storage

import (
	"bytes"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/cropsim/internal/carbon"
	"github.com/san-kum/cropsim/internal/crop"
	"github.com/san-kum/cropsim/internal/photosynthesis"
	"github.com/san-kum/cropsim/internal/weather"
)

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestCropCSVGolden(t *testing.T) {
	steps := []crop.Step{
		{
			Weather: weather.Day{Day: 1, TMin: 10, TMax: 20, SRad: 15},
			DTU:     7, CTU: 7, NDS: 0.005, LAI: 0.02, TempFactor: 0.5,
		},
		{
			Weather: weather.Day{Day: 2, TMin: 11, TMax: 21, SRad: 16.5, Rain: 2.25},
			DTU:     8, CTU: 15, NDS: 0.0107, LAI: 0.0204, TempFactor: 0.75, DB: 1.25, B: 1.25,
		},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, CropSeries(steps)))
	golden(t).Assert(t, "crop", buf.Bytes())
}

func TestCarbonCSVGolden(t *testing.T) {
	recs := []carbon.Record{{
		Year:  1,
		Month: 1,
		Pools: carbon.Pools{DPM: 0.5, RPM: 7.5, BIO: 1, HUM: 37.5, IOM: 3.5},
		SOC:   50,
		CO2:   0.25,
		Input: 0.125,
	}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, CarbonSeries(recs)))
	golden(t).Assert(t, "carbon", buf.Bytes())
}

func TestCurveCSVGolden(t *testing.T) {
	pts := []photosynthesis.Point{{X: 0, Y: -0.5}, {X: 20, Y: 1.25}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, CurveSeries("light", "apar", "an", pts)))
	golden(t).Assert(t, "curve", buf.Bytes())
}
