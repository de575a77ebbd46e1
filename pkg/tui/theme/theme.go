package theme

import "github.com/charmbracelet/lipgloss"

// Theme centralizes Lip Gloss styles for the account list.
type Theme struct {
	Name string

	Title    lipgloss.Style
	Count    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Active   lipgloss.Style
	Muted    lipgloss.Style
	Limited  lipgloss.Style
	Input    lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Badges   map[string]lipgloss.Style
}

// For returns the theme by name. Anything but "light" is dark.
func For(name string) Theme {
	if name == "light" {
		return Light()
	}
	return Dark()
}

// Dark is the default theme.
func Dark() Theme {
	return build("dark", palette{
		fg:        lipgloss.Color("252"),
		muted:     lipgloss.Color("244"),
		accent:    lipgloss.Color("212"),
		selection: lipgloss.Color("237"),
		active:    lipgloss.Color("#22c55e"),
		alert:     lipgloss.Color("#f59e0b"),
		danger:    lipgloss.Color("#ef4444"),
	})
}

// Light suits light terminal backgrounds.
func Light() Theme {
	return build("light", palette{
		fg:        lipgloss.Color("235"),
		muted:     lipgloss.Color("243"),
		accent:    lipgloss.Color("127"),
		selection: lipgloss.Color("254"),
		active:    lipgloss.Color("#15803d"),
		alert:     lipgloss.Color("#b45309"),
		danger:    lipgloss.Color("#b91c1c"),
	})
}

type palette struct {
	fg, muted, accent, selection, active, alert, danger lipgloss.Color
}

func build(name string, p palette) Theme {
	item := lipgloss.NewStyle().Foreground(p.fg)
	return Theme{
		Name:     name,
		Title:    lipgloss.NewStyle().Bold(true).Underline(true).Foreground(p.accent),
		Count:    lipgloss.NewStyle().Foreground(p.muted),
		Item:     item,
		Selected: item.Background(p.selection).Bold(true),
		Active:   lipgloss.NewStyle().Foreground(p.active),
		Muted:    lipgloss.NewStyle().Foreground(p.muted),
		Limited:  lipgloss.NewStyle().Foreground(p.alert),
		Input:    lipgloss.NewStyle().Foreground(p.accent),
		Status:   lipgloss.NewStyle().Foreground(p.muted),
		Error:    lipgloss.NewStyle().Foreground(p.danger),
		Help:     lipgloss.NewStyle().Foreground(p.muted),
		Badges: map[string]lipgloss.Style{
			"Pro":  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#a855f7")),
			"Team": lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6")),
			"Free": lipgloss.NewStyle().Foreground(p.muted),
		},
	}
}

// Tag styles a tag label with its own color.
func (t Theme) Tag(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}
