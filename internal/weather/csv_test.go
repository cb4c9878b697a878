package weather

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/san-kum/cropsim/internal/sim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSV(t *testing.T) {
	in := "day,tmin,TMAX,Rain,srad\n1,5,15,2.5,12\n2,6,16,0,13\n"
	days, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, Day{Day: 1, TMin: 5, TMax: 15, Rain: 2.5, SRad: 12}, days[0])
	assert.Equal(t, 2, days[1].Day)
}

func TestParseCSVOptionalColumns(t *testing.T) {
	in := "TMIN,TMAX\n5,15\n6,16\n"
	days, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, 2, days[1].Day)
	assert.Zero(t, days[0].Rain)
	assert.Zero(t, days[0].SRad)
}

func TestParseCSVSkipsBadRows(t *testing.T) {
	in := "DAY,TMIN,TMAX,RAIN,SRAD\n1,5,15,1,10\n2,x,16,1,10\n\n3,7,17,bad,10\n"
	days, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, 3, days[1].Day)
	assert.Zero(t, days[1].Rain)
}

func TestParseCSVInvalidDayFallsBackToRow(t *testing.T) {
	in := "DAY,TMIN,TMAX\n-3,5,15\n2.5,6,16\n0,7,17\n9,8,18\n"
	days, err := ParseCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, days, 4)
	assert.Equal(t, 1, days[0].Day)
	assert.Equal(t, 2, days[1].Day)
	assert.Equal(t, 3, days[2].Day)
	assert.Equal(t, 9, days[3].Day)
}

func TestParseCSVMissingRequiredColumn(t *testing.T) {
	_, err := ParseCSV(strings.NewReader("DAY,TMAX\n1,15\n"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, sim.ErrMalformedInput))
	assert.True(t, errors.Is(err, sim.ErrConfiguration))
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, sim.ErrMalformedInput)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	days := Generate(Params{Days: 5, TMean: 18, TAmp: 8, SRad: 18, RainMean: 2}, NewSource(9))
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, days))

	parsed, err := ParseCSV(&buf)
	require.NoError(t, err)
	require.Len(t, parsed, len(days))
	for i := range days {
		assert.Equal(t, days[i].Day, parsed[i].Day)
		assert.InDelta(t, days[i].TMin, parsed[i].TMin, 1e-3)
		assert.InDelta(t, days[i].Rain, parsed[i].Rain, 1e-3)
	}
}
