package experiment

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/cropsim/internal/carbon"
	"github.com/san-kum/cropsim/internal/config"
	"github.com/san-kum/cropsim/internal/crop"
	"github.com/san-kum/cropsim/internal/emergence"
	"github.com/san-kum/cropsim/internal/metrics"
	"github.com/san-kum/cropsim/internal/soilwater"
	"github.com/san-kum/cropsim/internal/weather"
)

type Result struct {
	Name         string             `json:"name"`
	Seed         int64              `json:"seed"`
	Scenario     Scenario           `json:"scenario"`
	Weather      []weather.Day      `json:"weather"`
	Crop         []crop.Step        `json:"crop"`
	Water        []soilwater.Step   `json:"water"`
	Emergence    []emergence.Step   `json:"emergence"`
	Months       []carbon.Month     `json:"months"`
	Carbon       []carbon.Record    `json:"carbon"`
	EmergenceDay int                `json:"emergence_day"`
	Metrics      map[string]float64 `json:"metrics"`
}

type Option func(*Pipeline)

func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithWeather replaces the generated weather with days. An empty, non-nil
// slice yields empty trajectories.
func WithWeather(days []weather.Day) Option {
	return func(p *Pipeline) { p.weather = days }
}

// WithScenario applies sc on top of the configured shading.
func WithScenario(sc Scenario) Option {
	return func(p *Pipeline) { p.scenario = p.scenario.Then(sc) }
}

// WithMetrics selects metrics by registry name.
func WithMetrics(names ...string) Option {
	return func(p *Pipeline) { p.metricNames = names }
}

// Pipeline runs the daily chain and the carbon projection for one config.
type Pipeline struct {
	cfg         *config.Config
	logger      *slog.Logger
	weather     []weather.Day
	scenario    Scenario
	metricNames []string
	registry    *Registry
}

func New(cfg *config.Config, opts ...Option) *Pipeline {
	p := &Pipeline{
		cfg:      cfg,
		logger:   slog.Default(),
		scenario: Baseline(),
		registry: NewRegistry(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadWeather reads cfg.WeatherFile when set and otherwise generates
// synthetic weather from cfg.Seed.
func LoadWeather(cfg *config.Config) ([]weather.Day, error) {
	if cfg.WeatherFile == "" {
		return weather.Generate(cfg.Weather, weather.NewSource(cfg.Seed)), nil
	}
	f, err := os.Open(cfg.WeatherFile)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	days, err := weather.ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.WeatherFile, err)
	}
	return days, nil
}

func (p *Pipeline) metrics() ([]metrics.Metric, error) {
	if p.metricNames == nil {
		return p.registry.DefaultMetrics(), nil
	}
	ms := make([]metrics.Metric, 0, len(p.metricNames))
	for _, name := range p.metricNames {
		m, err := p.registry.GetMetric(name)
		if err != nil {
			return nil, err
		}
		ms = append(ms, m)
	}
	return ms, nil
}

func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	cfg := p.cfg
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	ms, err := p.metrics()
	if err != nil {
		return nil, err
	}

	days := p.weather
	if days == nil {
		if days, err = LoadWeather(cfg); err != nil {
			return nil, err
		}
	}

	shade := cfg.ShadingFraction()
	sc := Shading(shade).Then(p.scenario)
	// emergence applies the panel shading to soil warming itself
	emDays := p.scenario.Weather().Apply(days)
	days = sc.Weather().Apply(days)
	soil := sc.Soil(cfg.Soil)
	log := p.logger.With("run", cfg.Name, "seed", cfg.Seed)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	steps := crop.Simulate(days, cfg.Crop)
	lai := crop.LAISeries(steps)
	water := soilwater.Simulate(days, soil, lai)
	em := emergence.Simulate(emDays, soilwater.WaterSeries(water), soil, cfg.Germination, shade)
	log.Debug("daily chain complete",
		"days", len(days),
		"crop_days", len(steps),
		"final_biomass", crop.FinalBiomass(steps))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	months := carbon.Aggregate(days, lai)
	cp := cfg.Carbon
	cp.ET0 = soil.ET0
	recs := carbon.Simulate(cp, months)
	log.Debug("carbon projection complete", "months", len(months), "records", len(recs))

	res := &Result{
		Name:         cfg.Name,
		Seed:         cfg.Seed,
		Scenario:     sc,
		Weather:      days,
		Crop:         steps,
		Water:        water,
		Emergence:    em,
		Months:       months,
		Carbon:       recs,
		EmergenceDay: emergence.DayReached(em, cfg.Germination.Target, emergence.ETT),
	}
	res.Metrics = observe(ms, res)

	log.Info("run complete", "metrics", res.Metrics)
	return res, nil
}

func observe(ms []metrics.Metric, r *Result) map[string]float64 {
	for _, m := range ms {
		m.Reset()
	}
	n := max(len(r.Crop), len(r.Water))
	for i := 0; i < n; i++ {
		s := metrics.Sample{Day: i + 1}
		if i < len(r.Crop) {
			s.Crop = &r.Crop[i]
		}
		if i < len(r.Water) {
			s.Water = &r.Water[i]
		}
		metrics.Observe(ms, s)
	}
	for i := range r.Carbon {
		metrics.Observe(ms, metrics.Sample{Carbon: &r.Carbon[i]})
	}
	return metrics.Values(ms)
}
