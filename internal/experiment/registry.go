package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/cropsim/internal/metrics"
)

// defaultMetrics fixes the order summaries are printed in.
var defaultMetrics = []string{
	"final_biomass",
	"peak_lai",
	"maturity_day",
	"mean_arid",
	"total_et",
	"total_drainage",
	"final_soc",
	"total_co2",
}

type Registry struct {
	metrics map[string]func() metrics.Metric
	grids   map[string]func() []float64
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() metrics.Metric),
		grids:   make(map[string]func() []float64),
	}

	r.metrics["final_biomass"] = func() metrics.Metric { return metrics.NewFinalBiomass() }
	r.metrics["peak_lai"] = func() metrics.Metric { return metrics.NewPeakLAI() }
	r.metrics["maturity_day"] = func() metrics.Metric { return metrics.NewMaturityDay() }
	r.metrics["mean_arid"] = func() metrics.Metric { return metrics.NewMeanARID() }
	r.metrics["total_et"] = func() metrics.Metric { return metrics.NewEvapotranspiration() }
	r.metrics["total_drainage"] = func() metrics.Metric { return metrics.NewDrainage() }
	r.metrics["final_soc"] = func() metrics.Metric { return metrics.NewFinalSOC() }
	r.metrics["total_co2"] = func() metrics.Metric { return metrics.NewRespiredCO2() }

	r.grids["rue"] = func() []float64 { return linspace(0.8, 0.1, 38) }
	r.grids["kpar"] = func() []float64 { return linspace(0.25, 0.05, 20) }
	r.grids["laimx"] = func() []float64 { return linspace(2, 0.25, 25) }
	r.grids["tu_har"] = func() []float64 { return linspace(900, 50, 25) }

	return r
}

func linspace(start, step float64, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + float64(i)*step
	}
	return out
}

func (r *Registry) GetMetric(name string) (metrics.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics returns a fresh instance of every metric.
func (r *Registry) DefaultMetrics() []metrics.Metric {
	ms := make([]metrics.Metric, 0, len(defaultMetrics))
	for _, name := range defaultMetrics {
		ms = append(ms, r.metrics[name]())
	}
	return ms
}

// Grid is the calibration grid of a crop parameter.
func (r *Registry) Grid(param string) ([]float64, error) {
	fn, ok := r.grids[param]
	if !ok {
		return nil, fmt.Errorf("no calibration grid for %s", param)
	}
	return fn(), nil
}

func (r *Registry) ListCalibratable() []string {
	names := make([]string, 0, len(r.grids))
	for name := range r.grids {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MetricOrder is the display order of the default metrics.
func MetricOrder() []string {
	return append([]string(nil), defaultMetrics...)
}
