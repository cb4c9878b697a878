// Package storage writes simulation runs to disk, one directory per run,
// and reads them back.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/san-kum/cropsim/internal/config"
	"github.com/san-kum/cropsim/internal/experiment"
)

const (
	metadataFile = "metadata.json"
	configFile   = "config.yaml"
)

// ErrRunNotFound is returned for an unknown run ID.
var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
	now     func() time.Time
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, now: time.Now}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Timestamp    time.Time           `json:"timestamp"`
	Seed         int64               `json:"seed"`
	Shading      float64             `json:"shading"`
	Rotation     string              `json:"rotation"`
	Scenario     experiment.Scenario `json:"scenario"`
	EmergenceDay int                 `json:"emergence_day"`
	Metrics      map[string]float64  `json:"metrics"`
	Series       []string            `json:"series"`
}

// Save writes the config, metadata and every series of res under a fresh
// time-ordered run ID. A failed save leaves no run directory behind.
func (s *Store) Save(cfg *config.Config, res *experiment.Result) (string, error) {
	runID := uuid.Must(uuid.NewV7()).String()
	runDir := filepath.Join(s.baseDir, runID)
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}
	if err := s.writeRun(runDir, runID, cfg, res); err != nil {
		os.RemoveAll(runDir)
		return "", err
	}
	return runID, nil
}

func (s *Store) writeRun(runDir, runID string, cfg *config.Config, res *experiment.Result) error {
	series := ResultSeries(res)
	meta := RunMetadata{
		ID:           runID,
		Name:         cfg.Name,
		Timestamp:    s.now(),
		Seed:         res.Seed,
		Shading:      cfg.Shading,
		Rotation:     cfg.Carbon.Rotation,
		Scenario:     res.Scenario,
		EmergenceDay: res.EmergenceDay,
		Metrics:      res.Metrics,
	}
	for _, ser := range series {
		meta.Series = append(meta.Series, ser.Name)
		if err := writeSeriesFile(filepath.Join(runDir, ser.Name+".csv"), ser); err != nil {
			return err
		}
	}

	if err := config.Save(filepath.Join(runDir, configFile), cfg); err != nil {
		return err
	}
	return writeJSON(filepath.Join(runDir, metadataFile), meta)
}

func writeSeriesFile(path string, ser Series) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WriteCSV(f, ser); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}
	sort.Slice(runs, func(i, j int) bool { return runs[i].ID < runs[j].ID })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

// LoadConfig reads back the config a run was produced with.
func (s *Store) LoadConfig(runID string) (*config.Config, error) {
	return config.Load(filepath.Join(s.baseDir, runID, configFile))
}

// LoadSeries reads one named series of a run.
func (s *Store) LoadSeries(runID, name string) (Series, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, name+".csv"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Series{}, fmt.Errorf("%w: %s/%s", ErrRunNotFound, runID, name)
		}
		return Series{}, err
	}
	defer f.Close()
	return ReadCSV(f, name)
}
