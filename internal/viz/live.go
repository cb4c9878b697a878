package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/cropsim/internal/crop"
	"github.com/san-kum/cropsim/internal/experiment"
)

const (
	canvasWidth  = 60
	canvasHeight = 12
	tickInterval = time.Second / 10
	maxSpeed     = 16
)

type TickMsg time.Time

// Live replays a finished run one simulated day per tick.
type Live struct {
	res      *experiment.Result
	lai      []float64
	peakLAI  float64
	day      int
	speed    int
	running  bool
	showHelp bool
	canvas   *Canvas
}

func NewLive(res *experiment.Result) Live {
	lai := crop.LAISeries(res.Crop)
	peak := 0.0
	for _, v := range lai {
		peak = max(peak, v)
	}
	return Live{
		res:     res,
		lai:     lai,
		peakLAI: peak,
		speed:   1,
		running: true,
		canvas:  NewCanvas(canvasWidth, canvasHeight),
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Live) Init() tea.Cmd { return tick() }

// Day is the zero-based index of the day on screen.
func (m Live) Day() int      { return m.day }
func (m Live) Running() bool { return m.running }
func (m Live) Speed() int    { return m.speed }

func (m Live) last() int { return max(len(m.res.Crop)-1, 0) }

func (m Live) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "space":
			m.running = !m.running
		case "r":
			m.day = 0
			m.running = true
		case "[":
			m.running = false
			m.day = max(m.day-1, 0)
		case "]":
			m.running = false
			m.day = min(m.day+1, m.last())
		case "+", "=":
			m.speed = min(m.speed*2, maxSpeed)
		case "-", "_":
			m.speed = max(m.speed/2, 1)
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.day = min(m.day+m.speed, m.last())
			if m.day == m.last() {
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

func (m Live) View() string {
	if len(m.res.Crop) == 0 {
		return Subtle.Render("no crop days to replay") + "\n"
	}
	theme := CurrentTheme
	label := lipgloss.NewStyle().Foreground(theme.Muted).Width(12)
	value := lipgloss.NewStyle().Foreground(theme.Text)
	header := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).MarginBottom(1)

	m.canvas.Clear()
	m.canvas.Trace(m.lai[:m.day+1], len(m.lai), 0, m.peakLAI)
	field := lipgloss.NewStyle().Foreground(theme.Canopy).Padding(1, 2).Render(m.canvas.String())

	step := m.res.Crop[m.day]
	var s strings.Builder
	s.WriteString(header.Render(strings.ToUpper(m.res.Name)) + "\n")
	status := StatusRunning.Render(fmt.Sprintf("PLAYING x%d", m.speed))
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	s.WriteString(status + "\n")
	s.WriteString(ProgressBar(float64(m.day+1)/float64(len(m.res.Crop)), 24) + "\n\n")

	row := func(k, v string) { s.WriteString(label.Render(k) + value.Render(v) + "\n") }
	row("Day", fmt.Sprintf("%d", step.Weather.Day))
	row("Tmin/Tmax", fmt.Sprintf("%.1f / %.1f °C", step.Weather.TMin, step.Weather.TMax))
	row("CTU", fmt.Sprintf("%.0f °C·d", step.CTU))
	row("LAI", fmt.Sprintf("%.2f", step.LAI))
	row("Biomass", fmt.Sprintf("%.1f g/m2", step.B))
	if m.day < len(m.res.Water) {
		w := m.res.Water[m.day]
		row("Soil water", fmt.Sprintf("%.1f mm", w.W))
		s.WriteString(label.Render("ARID") + StressBar(w.ARID, 12) + "\n")
	}
	if m.day < len(m.res.Emergence) {
		row("Emergence", fmt.Sprintf("%.0f %%", m.res.Emergence[m.day].EmergencePct))
	}
	s.WriteString("\n" + Sparkline(biomass(m.res.Crop[:m.day+1]), 24) + "\n")
	s.WriteString(KeyHint.Render("\nSP:Pause R:Restart Q:Quit\n[ ]:Step +/-:Speed T:Theme ?:Help"))

	stats := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(theme.Soil).
		Padding(1, 2).
		Width(40).
		Render(s.String())
	view := lipgloss.JoinHorizontal(lipgloss.Top, field, stats)
	if m.showHelp {
		return helpText + "\n\n" + view
	}
	return view
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Restart from day one     ║
║  Q        - Quit                     ║
║  [ / ]    - Step one day back/ahead  ║
║  + / -    - Double/halve speed       ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝`

// RunLive replays res in the alternate screen until the user quits.
func RunLive(res *experiment.Result) error {
	_, err := tea.NewProgram(NewLive(res), tea.WithAltScreen()).Run()
	return err
}
