package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/cropsim/internal/carbon"
	"github.com/san-kum/cropsim/internal/crop"
	"github.com/san-kum/cropsim/internal/energy"
	"github.com/san-kum/cropsim/internal/experiment"
	"github.com/san-kum/cropsim/internal/photosynthesis"
	"github.com/san-kum/cropsim/internal/soilwater"
)

const (
	DefaultWidth  = 60
	DefaultHeight = 10
)

// Chart plots one series. An empty series renders as the empty string.
func Chart(values []float64, caption string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	return asciigraph.Plot(values,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
}

// ChartMany plots series on shared axes, colored in order.
func ChartMany(series [][]float64, caption string, width, height int) string {
	var data [][]float64
	for _, s := range series {
		if len(s) > 0 {
			data = append(data, s)
		}
	}
	if len(data) == 0 {
		return ""
	}
	return asciigraph.PlotMany(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Red, asciigraph.Blue),
	)
}

func biomass(steps []crop.Step) []float64 {
	out := make([]float64, len(steps))
	for i, s := range steps {
		out[i] = s.B
	}
	return out
}

// Season stacks the LAI, biomass and soil water charts of a run.
func Season(res *experiment.Result, width int) string {
	charts := []string{
		Chart(crop.LAISeries(res.Crop), "leaf area index", width, DefaultHeight),
		Chart(biomass(res.Crop), "biomass (g/m2)", width, DefaultHeight),
		Chart(soilwater.WaterSeries(res.Water), "soil water (mm)", width, DefaultHeight),
	}
	return joinCharts(charts)
}

// CarbonChart plots monthly SOC.
func CarbonChart(recs []carbon.Record, width int) string {
	return Chart(carbon.SOCSeries(recs), "soil organic carbon (t C/ha)", width, DefaultHeight)
}

// CarbonComparison overlays a scenario SOC trajectory on its baseline.
func CarbonComparison(c carbon.Comparison, width int) string {
	return ChartMany([][]float64{
		carbon.SOCSeries(c.Scenario),
		carbon.SOCSeries(c.Baseline),
	}, "SOC scenario (green) vs baseline (red)", width, DefaultHeight)
}

// DiurnalChart overlays canopy, air and soil temperatures.
func DiurnalChart(steps []energy.DiurnalStep, width int) string {
	canopy := make([]float64, len(steps))
	air := make([]float64, len(steps))
	soil := make([]float64, len(steps))
	for i, s := range steps {
		canopy[i] = s.TempCanopy
		air[i] = s.TempAir
		soil[i] = s.TempSoil
	}
	return ChartMany([][]float64{canopy, air, soil},
		"canopy (green) air (red) soil (blue) °C", width, DefaultHeight)
}

// CurveChart plots a response curve's Y values.
func CurveChart(pts []photosynthesis.Point, caption string, width int) string {
	return Chart(photosynthesis.Ys(pts), caption, width, DefaultHeight)
}

func joinCharts(charts []string) string {
	var parts []string
	for _, c := range charts {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return strings.Join(parts, "\n\n")
}

// Summary renders the metrics of a run in a panel, known metrics first.
func Summary(res *experiment.Result) string {
	var b strings.Builder
	b.WriteString(Title.Render(strings.ToUpper(res.Name)) + "\n")
	b.WriteString(Subtle.Render(fmt.Sprintf("seed %d", res.Seed)) + "\n\n")

	for _, name := range metricNames(res.Metrics) {
		b.WriteString(MetricLabel.Render(name) + MetricValue.Render(fmt.Sprintf("%.2f", res.Metrics[name])) + "\n")
	}
	day := "not reached"
	if res.EmergenceDay > 0 {
		day = fmt.Sprintf("day %d", res.EmergenceDay)
	}
	b.WriteString(MetricLabel.Render("emergence") + MetricValue.Render(day))
	return Panel.Render(b.String())
}

// CompareTable renders baseline and scenario metrics side by side.
func CompareTable(c *experiment.Comparison) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(fmt.Sprintf("%-18s%12s%12s%10s", "metric", "baseline", "scenario", "change")) + "\n")
	for _, name := range metricNames(c.Baseline.Metrics) {
		change := c.Change(name)
		style := SparkHigh
		if change < 0 {
			style = SparkLow
		}
		row := fmt.Sprintf("%-18s%12.2f%12.2f", name, c.Baseline.Metrics[name], c.Scenario.Metrics[name])
		b.WriteString(row + style.Render(fmt.Sprintf("%9.1f%%", change)) + "\n")
	}
	return Panel.Render(strings.TrimRight(b.String(), "\n"))
}

func metricNames(values map[string]float64) []string {
	seen := make(map[string]bool, len(values))
	var names []string
	for _, name := range experiment.MetricOrder() {
		if _, ok := values[name]; ok {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range values {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// Columns lays panels out side by side.
func Columns(panels ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}
