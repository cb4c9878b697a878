package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the color scheme of the live view.
type Theme struct {
	Name     string
	Canopy   lipgloss.Color
	Soil     lipgloss.Color
	Water    lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Good     lipgloss.Color
	Warning  lipgloss.Color
	Critical lipgloss.Color
}

var (
	ThemeField = Theme{
		Name:     "field",
		Canopy:   lipgloss.Color("#5fd068"),
		Soil:     lipgloss.Color("#a0784a"),
		Water:    lipgloss.Color("#00a8cc"),
		Accent:   lipgloss.Color("#ffd700"),
		Text:     lipgloss.Color("#f0f0e0"),
		Muted:    lipgloss.Color("#777766"),
		Good:     lipgloss.Color("#00ff88"),
		Warning:  lipgloss.Color("#ffaa00"),
		Critical: lipgloss.Color("#ff4444"),
	}

	ThemeDrought = Theme{
		Name:     "drought",
		Canopy:   lipgloss.Color("#c8b560"),
		Soil:     lipgloss.Color("#d2691e"),
		Water:    lipgloss.Color("#87ceeb"),
		Accent:   lipgloss.Color("#ff6b6b"),
		Text:     lipgloss.Color("#fff5e6"),
		Muted:    lipgloss.Color("#8b7355"),
		Good:     lipgloss.Color("#9acd32"),
		Warning:  lipgloss.Color("#ffc048"),
		Critical: lipgloss.Color("#ff4757"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Canopy:   lipgloss.Color("#ffffff"),
		Soil:     lipgloss.Color("#aaaaaa"),
		Water:    lipgloss.Color("#0088ff"),
		Accent:   lipgloss.Color("#ffffff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Good:     lipgloss.Color("#00ff00"),
		Warning:  lipgloss.Color("#ffaa00"),
		Critical: lipgloss.Color("#ff0000"),
	}

	CurrentTheme = ThemeField

	Themes = []Theme{ThemeField, ThemeDrought, ThemeMinimal}
)

// GetTheme returns the named theme, or the field theme.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeField
}

func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// NextTheme switches to the theme after the current one.
func NextTheme() Theme {
	names := ThemeNames()
	for i, name := range names {
		if name == CurrentTheme.Name {
			SetTheme(names[(i+1)%len(names)])
			break
		}
	}
	return CurrentTheme
}
