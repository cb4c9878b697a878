package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/cropsim/internal/crop"
	"github.com/san-kum/cropsim/internal/experiment"
	"github.com/san-kum/cropsim/internal/soilwater"
	"github.com/san-kum/cropsim/internal/weather"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)
	assert.Equal(t, rune(0x2801), c.Grid[0][0])
	assert.Equal(t, rune(0x2880), c.Grid[0][1])

	c.Clear()
	assert.Equal(t, "⠀⠀\n", c.String())
}

func TestCanvasColumn(t *testing.T) {
	c := NewCanvas(1, 1)
	c.Column(0, 1)
	assert.Equal(t, rune(0x2800|0x1|0x2|0x4|0x40), c.Grid[0][0])

	c.Clear()
	c.Column(1, 0.5)
	assert.Equal(t, rune(0x2800|0x20|0x80), c.Grid[0][0])
}

func TestCanvasTrace(t *testing.T) {
	c := NewCanvas(10, 2)
	c.Trace([]float64{0, 1}, 2, 0, 1)
	// bottom-left and top-right corners are both lit
	assert.NotEqual(t, rune(brailleBlank), c.Grid[1][0])
	assert.NotEqual(t, rune(brailleBlank), c.Grid[0][9])

	c.Clear()
	c.Trace(nil, 10, 0, 1)
	assert.Equal(t, strings.Repeat(string(rune(brailleBlank)), 10), strings.Split(c.String(), "\n")[0])
}

func TestSparklineEmpty(t *testing.T) {
	assert.Equal(t, "────", Sparkline(nil, 4))
	assert.Equal(t, "", Sparkline(nil, 0))
}

func TestChart(t *testing.T) {
	assert.Empty(t, Chart(nil, "empty", 20, 5))
	out := Chart([]float64{1, 2, 3, 2, 1}, "lai", 20, 5)
	assert.Contains(t, out, "lai")
	assert.Empty(t, ChartMany([][]float64{nil, {}}, "none", 20, 5))
}

func TestMetricNamesOrder(t *testing.T) {
	names := metricNames(map[string]float64{
		"zeta":          1,
		"final_soc":     2,
		"final_biomass": 3,
		"alpha":         4,
	})
	require.Len(t, names, 4)
	assert.Equal(t, []string{"alpha", "zeta"}, names[2:])
	assert.Contains(t, names[:2], "final_biomass")
	assert.Contains(t, names[:2], "final_soc")
}

func TestSummary(t *testing.T) {
	res := &experiment.Result{
		Name:    "demo",
		Seed:    7,
		Metrics: map[string]float64{"final_biomass": 1234.5},
	}
	out := Summary(res)
	assert.Contains(t, out, "DEMO")
	assert.Contains(t, out, "final_biomass")
	assert.Contains(t, out, "1234.50")
	assert.Contains(t, out, "not reached")
}

func replayResult(days int) *experiment.Result {
	res := &experiment.Result{Name: "replay"}
	for d := 1; d <= days; d++ {
		w := weather.Day{Day: d, TMin: 10, TMax: 20}
		res.Crop = append(res.Crop, crop.Step{Weather: w, LAI: float64(d) * 0.1, B: float64(d) * 10})
		res.Water = append(res.Water, soilwater.Step{Weather: w, W: 100, ARID: 0.2})
	}
	return res
}

func press(m Live, key string) Live {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return next.(Live)
}

func TestLivePlayback(t *testing.T) {
	m := NewLive(replayResult(5))
	assert.True(t, m.Running())

	next, cmd := m.Update(TickMsg(time.Now()))
	m = next.(Live)
	assert.NotNil(t, cmd)
	assert.Equal(t, 1, m.Day())

	m = press(m, "+")
	m = press(m, "+")
	assert.Equal(t, 4, m.Speed())
	next, _ = m.Update(TickMsg(time.Now()))
	m = next.(Live)
	assert.Equal(t, 4, m.Day())
	assert.False(t, m.Running(), "playback stops on the last day")

	m = press(m, "[")
	assert.Equal(t, 3, m.Day())
	m = press(m, "r")
	assert.Equal(t, 0, m.Day())
	assert.True(t, m.Running())
	m = press(m, " ")
	assert.False(t, m.Running())

	view := m.View()
	assert.Contains(t, view, "REPLAY")
	assert.Contains(t, view, "PAUSED")
}

func TestLiveEmpty(t *testing.T) {
	m := NewLive(&experiment.Result{})
	next, _ := m.Update(TickMsg(time.Now()))
	assert.Equal(t, 0, next.(Live).Day())
	assert.Contains(t, m.View(), "no crop days")
}

func TestNextThemeCycles(t *testing.T) {
	defer SetTheme(ThemeField.Name)
	SetTheme(ThemeField.Name)
	seen := map[string]bool{}
	for range Themes {
		seen[NextTheme().Name] = true
	}
	assert.Len(t, seen, len(Themes))
	assert.Equal(t, ThemeField.Name, CurrentTheme.Name)
	assert.Equal(t, ThemeField, GetTheme("unknown"))
}

func TestSeriesSVG(t *testing.T) {
	assert.Empty(t, SeriesSVG([]float64{1}, "one", 100, 50, "#5fd068"))

	out := SeriesSVG([]float64{0, 1}, "lai <crop>", 100, 60, "#5fd068")
	assert.True(t, strings.HasPrefix(out, "<?xml"))
	assert.Contains(t, out, "lai &lt;crop&gt;")
	// 0 and 1 map to 55 and 5 with the headroom
	assert.Contains(t, out, `d="M0.0,55.0 L100.0,5.0"`)
}
