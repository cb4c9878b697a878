package storage

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/san-kum/cropsim/internal/experiment"
)

// ExportJSON encodes a run with every trajectory and metric.
func ExportJSON(w io.Writer, res *experiment.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

func ExportJSONFile(path string, res *experiment.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := ExportJSON(f, res); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ExportCSVDir writes one CSV per series of res into dir and returns the
// paths written.
func ExportCSVDir(dir string, res *experiment.Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	var paths []string
	for _, ser := range ResultSeries(res) {
		path := filepath.Join(dir, ser.Name+".csv")
		if err := writeSeriesFile(path, ser); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
