package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/cropsim/internal/carbon"
	"github.com/san-kum/cropsim/internal/crop"
	"github.com/san-kum/cropsim/internal/emergence"
	"github.com/san-kum/cropsim/internal/energy"
	"github.com/san-kum/cropsim/internal/experiment"
	"github.com/san-kum/cropsim/internal/photosynthesis"
	"github.com/san-kum/cropsim/internal/sim"
	"github.com/san-kum/cropsim/internal/soilwater"
	"github.com/san-kum/cropsim/internal/weather"
)

// Series is one tabular output: a header and numeric rows.
type Series struct {
	Name   string
	Header []string
	Rows   [][]float64
}

// Column returns the values of a named column, or nil.
func (s Series) Column(name string) []float64 {
	idx := -1
	for i, h := range s.Header {
		if h == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	out := make([]float64, 0, len(s.Rows))
	for _, row := range s.Rows {
		if idx < len(row) {
			out = append(out, row[idx])
		}
	}
	return out
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func WeatherSeries(days []weather.Day) Series {
	s := Series{Name: "weather", Header: []string{"day", "tmin", "tmax", "rain", "srad"}}
	for _, d := range days {
		s.Rows = append(s.Rows, []float64{float64(d.Day), d.TMin, d.TMax, d.Rain, d.SRad})
	}
	return s
}

func CropSeries(steps []crop.Step) Series {
	s := Series{Name: "crop", Header: []string{
		"day", "tmin", "tmax", "srad", "rain", "dtu", "ctu", "nds", "lai", "temp_factor", "db", "b",
	}}
	for _, st := range steps {
		w := st.Weather
		s.Rows = append(s.Rows, []float64{
			float64(w.Day), w.TMin, w.TMax, w.SRad, w.Rain,
			st.DTU, st.CTU, st.NDS, st.LAI, st.TempFactor, st.DB, st.B,
		})
	}
	return s
}

func WaterSeries(steps []soilwater.Step) Series {
	s := Series{Name: "water", Header: []string{
		"day", "rain", "lai", "runoff", "et0", "tact", "eact", "drain", "w", "arid",
	}}
	for _, st := range steps {
		s.Rows = append(s.Rows, []float64{
			float64(st.Weather.Day), st.Weather.Rain, st.LAI, st.Runoff, st.ET0,
			st.Tact, st.Eact, st.Drain, st.W, st.ARID,
		})
	}
	return s
}

func EmergenceSeries(steps []emergence.Step) Series {
	s := Series{Name: "emergence", Header: []string{
		"day", "t_soil", "w_soil", "gdd", "gdd_cum", "hydro_factor", "ett", "ett_cum", "emergence_pct",
	}}
	for _, st := range steps {
		s.Rows = append(s.Rows, []float64{
			float64(st.Day), st.TSoil, st.WSoil, st.GDDDaily, st.GDDCum,
			st.HydroFactor, st.ETTDaily, st.ETTCum, st.EmergencePct,
		})
	}
	return s
}

func MonthlySeries(months []carbon.Month) Series {
	s := Series{Name: "monthly", Header: []string{"month", "temp", "precip", "covered"}}
	for i, m := range months {
		s.Rows = append(s.Rows, []float64{float64(i + 1), m.Temp, m.Precip, boolValue(m.Covered)})
	}
	return s
}

func CarbonSeries(recs []carbon.Record) Series {
	s := Series{Name: "carbon", Header: []string{
		"year", "month", "dpm", "rpm", "bio", "hum", "iom", "soc", "co2", "input",
	}}
	for _, r := range recs {
		s.Rows = append(s.Rows, []float64{
			float64(r.Year), float64(r.Month), r.DPM, r.RPM, r.BIO, r.HUM, r.IOM, r.SOC, r.CO2, r.Input,
		})
	}
	return s
}

func DiurnalSeries(steps []energy.DiurnalStep) Series {
	s := Series{Name: "energy", Header: []string{
		"time", "hour", "rad", "temp_air", "temp_canopy", "temp_soil", "et_mm_h", "soil_water", "vpd", "converged",
	}}
	for _, st := range steps {
		s.Rows = append(s.Rows, []float64{
			st.Time, st.Hour, st.Rad, st.TempAir, st.TempCanopy, st.TempSoil,
			st.ET, st.SoilWater, st.VPD, boolValue(st.Converged),
		})
	}
	return s
}

// CurveSeries tabulates a response curve under the given axis names.
func CurveSeries(name, x, y string, pts []photosynthesis.Point) Series {
	s := Series{Name: name, Header: []string{x, y}}
	for _, p := range pts {
		s.Rows = append(s.Rows, []float64{p.X, p.Y})
	}
	return s
}

// ResultSeries lists every series of a pipeline run.
func ResultSeries(r *experiment.Result) []Series {
	return []Series{
		WeatherSeries(r.Weather),
		CropSeries(r.Crop),
		WaterSeries(r.Water),
		EmergenceSeries(r.Emergence),
		MonthlySeries(r.Months),
		CarbonSeries(r.Carbon),
	}
}

func WriteCSV(w io.Writer, s Series) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.Header); err != nil {
		return err
	}
	for _, vals := range s.Rows {
		row := make([]string, len(vals))
		for i, v := range vals {
			row[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a series written by WriteCSV. Cells that do not parse are
// read as 0.
func ReadCSV(r io.Reader, name string) (Series, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		return Series{}, fmt.Errorf("%w: %s: %w", sim.ErrMalformedInput, name, err)
	}
	s := Series{Name: name}
	if len(records) == 0 {
		return s, nil
	}
	s.Header = records[0]
	for _, rec := range records[1:] {
		row := make([]float64, len(rec))
		for i, cell := range rec {
			row[i], _ = strconv.ParseFloat(cell, 64)
		}
		s.Rows = append(s.Rows, row)
	}
	return s, nil
}
