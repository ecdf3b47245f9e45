package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines color scheme for the TUI
type Theme struct {
	Name      string
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	High      lipgloss.Color
	Mid       lipgloss.Color
	Low       lipgloss.Color
}

var (
	ThemeCyberpunk = Theme{
		Name:      "cyberpunk",
		Primary:   lipgloss.Color("#ff00ff"),
		Secondary: lipgloss.Color("#00ffff"),
		Muted:     lipgloss.Color("#666688"),
		High:      lipgloss.Color("#00ff88"),
		Mid:       lipgloss.Color("#ffcc00"),
		Low:       lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:      "retro",
		Primary:   lipgloss.Color("#00ff00"),
		Secondary: lipgloss.Color("#88ff88"),
		Muted:     lipgloss.Color("#005500"),
		High:      lipgloss.Color("#88ff88"),
		Mid:       lipgloss.Color("#00cc00"),
		Low:       lipgloss.Color("#007700"),
	}

	ThemeOcean = Theme{
		Name:      "ocean",
		Primary:   lipgloss.Color("#0077be"),
		Secondary: lipgloss.Color("#00a8cc"),
		Muted:     lipgloss.Color("#4488aa"),
		High:      lipgloss.Color("#00ff88"),
		Mid:       lipgloss.Color("#ffd700"),
		Low:       lipgloss.Color("#ff4444"),
	}

	Themes = []Theme{
		ThemeCyberpunk,
		ThemeRetroGreen,
		ThemeOcean,
	}
)

// GetTheme returns a theme by name, falling back to cyberpunk.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeCyberpunk
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}

// Styles are the rendered styles of one theme.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	Selected lipgloss.Style
	Hint     lipgloss.Style
	Panel    lipgloss.Style
	High     lipgloss.Style
	Mid      lipgloss.Style
	Low      lipgloss.Style
}

func (t Theme) Styles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")),
		Value:    lipgloss.NewStyle().Bold(true).Foreground(t.Secondary),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Hint:     lipgloss.NewStyle().Italic(true).Foreground(t.Muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(t.Muted).
			Padding(0, 1),
		High: lipgloss.NewStyle().Foreground(t.High),
		Mid:  lipgloss.NewStyle().Foreground(t.Mid),
		Low:  lipgloss.NewStyle().Foreground(t.Low),
	}
}
