package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/cropsim/internal/config"
	"github.com/san-kum/cropsim/internal/experiment"
)

func run(t *testing.T, cfg *config.Config) *experiment.Result {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	res, err := experiment.New(cfg, experiment.WithLogger(logger)).Run(context.Background())
	require.NoError(t, err)
	return res
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	cfg := config.GetPreset("regenerative")
	res := run(t, cfg)

	runID, err := st.Save(cfg, res)
	require.NoError(t, err)
	id, err := uuid.Parse(runID)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(7), id.Version())

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, "regenerative", meta.Name)
	assert.Equal(t, cfg.Seed, meta.Seed)
	assert.Equal(t, res.Metrics, meta.Metrics)
	assert.Equal(t, []string{"weather", "crop", "water", "emergence", "monthly", "carbon"}, meta.Series)

	back, err := st.LoadConfig(runID)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)

	crop, err := st.LoadSeries(runID, "crop")
	require.NoError(t, err)
	assert.Len(t, crop.Rows, len(res.Crop))
	assert.Equal(t, res.Crop[len(res.Crop)-1].B, crop.Column("b")[len(crop.Rows)-1])

	soc, err := st.LoadSeries(runID, "carbon")
	require.NoError(t, err)
	assert.Equal(t, res.Metrics["final_soc"], soc.Column("soc")[len(soc.Rows)-1])
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	cfg := config.DefaultConfig()
	res := run(t, cfg)
	first, err := st.Save(cfg, res)
	require.NoError(t, err)
	second, err := st.Save(cfg, res)
	require.NoError(t, err)

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0].ID)
	assert.Equal(t, second, runs[1].ID)
}

func TestStoreFailedSaveLeavesNoRun(t *testing.T) {
	base := t.TempDir()
	st := New(base)

	cfg := config.DefaultConfig()
	cfg.Weather.Days = 30
	res := run(t, cfg)
	res.Metrics["broken"] = math.NaN()

	_, err := st.Save(cfg, res)
	require.Error(t, err)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestStoreMissingRun(t *testing.T) {
	st := New(t.TempDir())
	_, err := st.Load("nope")
	assert.True(t, errors.Is(err, ErrRunNotFound))
	_, err = st.LoadSeries("nope", "crop")
	assert.True(t, errors.Is(err, ErrRunNotFound))
}

func TestCSVRoundTrip(t *testing.T) {
	in := Series{Name: "x", Header: []string{"a", "b"}, Rows: [][]float64{{1, 0.1}, {2, 1e-7}}}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, in))

	out, err := ReadCSV(&buf, "x")
	require.NoError(t, err)
	assert.Equal(t, in, out)
	assert.Nil(t, out.Column("c"))
}

func TestReadCSVMalformed(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("a,\"b\n1,2\n"), "bad")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Weather.Days = 40
	res := run(t, cfg)

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, res))
	var decoded experiment.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, res.Metrics, decoded.Metrics)
	assert.Len(t, decoded.Carbon, len(res.Carbon))

	dir := t.TempDir()
	path := filepath.Join(dir, "run.json")
	require.NoError(t, ExportJSONFile(path, res))

	paths, err := ExportCSVDir(filepath.Join(dir, "csv"), res)
	require.NoError(t, err)
	assert.Len(t, paths, 6)
}
