package experiment

import (
	"context"
	"math"
	"sync"

	"github.com/san-kum/cropsim/internal/config"
)

// Ensemble repeats a configuration over consecutive seeds.
type Ensemble struct {
	cfg       *config.Config
	numRuns   int
	seedStart int64
	opts      []Option
}

func NewEnsemble(cfg *config.Config, numRuns int, seedStart int64, opts ...Option) *Ensemble {
	return &Ensemble{cfg: cfg, numRuns: numRuns, seedStart: seedStart, opts: opts}
}

// Run executes every member concurrently. Each member owns a copy of the
// config and its own random source.
func (e *Ensemble) Run(ctx context.Context) ([]*Result, error) {
	results := make([]*Result, e.numRuns)
	errs := make([]error, e.numRuns)

	var wg sync.WaitGroup
	for i := 0; i < e.numRuns; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			cfg := e.cfg.Clone()
			cfg.Seed = e.seedStart + int64(idx)
			results[idx], errs[idx] = New(cfg, e.opts...).Run(ctx)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}

type Stats struct {
	Mean float64 `json:"mean"`
	Std  float64 `json:"std"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Summarize computes the spread of one metric across results.
func Summarize(results []*Result, metric string) Stats {
	if len(results) == 0 {
		return Stats{}
	}
	s := Stats{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, r := range results {
		v := r.Metrics[metric]
		s.Mean += v
		s.Min = math.Min(s.Min, v)
		s.Max = math.Max(s.Max, v)
	}
	s.Mean /= float64(len(results))
	for _, r := range results {
		d := r.Metrics[metric] - s.Mean
		s.Std += d * d
	}
	s.Std = math.Sqrt(s.Std / float64(len(results)))
	return s
}
