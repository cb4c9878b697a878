package weather

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/san-kum/cropsim/internal/sim"
)

// Column names recognised by ParseCSV, compared case-insensitively.
const (
	ColDay  = "DAY"
	ColTMin = "TMIN"
	ColTMax = "TMAX"
	ColRain = "RAIN"
	ColSRad = "SRAD"
)

// ParseCSV reads a header row followed by daily records. TMIN and TMAX are
// required; RAIN and SRAD default to 0 and DAY defaults to the row ordinal.
// Rows whose required columns do not parse are skipped.
func ParseCSV(r io.Reader) ([]Day, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty weather table", sim.ErrMalformedInput)
		}
		return nil, fmt.Errorf("%w: %v", sim.ErrMalformedInput, err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToUpper(strings.TrimSpace(h))] = i
	}
	for _, req := range []string{ColTMin, ColTMax} {
		if _, ok := cols[req]; !ok {
			return nil, fmt.Errorf("%w: missing column %s", sim.ErrMalformedInput, req)
		}
	}

	days := make([]Day, 0)
	for row := 1; ; row++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				continue
			}
			return nil, err
		}

		tmin, ok1 := field(record, cols, ColTMin)
		tmax, ok2 := field(record, cols, ColTMax)
		if !ok1 || !ok2 {
			continue
		}

		d := Day{Day: row, TMin: tmin, TMax: tmax}
		if v, ok := field(record, cols, ColDay); ok && v >= 1 && v == math.Trunc(v) {
			d.Day = int(v)
		}
		if v, ok := field(record, cols, ColRain); ok {
			d.Rain = v
		}
		if v, ok := field(record, cols, ColSRad); ok {
			d.SRad = v
		}
		days = append(days, d)
	}

	return days, nil
}

func field(record []string, cols map[string]int, name string) (float64, bool) {
	idx, ok := cols[name]
	if !ok || idx >= len(record) {
		return 0, false
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(record[idx]), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// WriteCSV writes days in the layout ParseCSV accepts.
func WriteCSV(w io.Writer, days []Day) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{ColDay, ColTMin, ColTMax, ColRain, ColSRad}); err != nil {
		return err
	}
	for _, d := range days {
		row := []string{
			strconv.Itoa(d.Day),
			strconv.FormatFloat(d.TMin, 'f', 3, 64),
			strconv.FormatFloat(d.TMax, 'f', 3, 64),
			strconv.FormatFloat(d.Rain, 'f', 3, 64),
			strconv.FormatFloat(d.SRad, 'f', 3, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
