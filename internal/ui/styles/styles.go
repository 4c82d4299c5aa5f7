package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/HaPhanBaoMinh/podmon/internal/config"
	"github.com/HaPhanBaoMinh/podmon/internal/domain"
)

// Set is every style the TUI renders with, derived from the theme and the
// active colour scheme.
type Set struct {
	Title     lipgloss.Style
	TabActive lipgloss.Style
	Tab       lipgloss.Style
	Header    lipgloss.Style
	Footer    lipgloss.Style
	Box       lipgloss.Style
	Modal     lipgloss.Style
	Good      lipgloss.Style
	Danger    lipgloss.Style
	Warn      lipgloss.Style
	Faint     lipgloss.Style
	Canvas    lipgloss.Style
	Selected  lipgloss.Style

	theme config.Theme
}

func New(t config.Theme, dark bool) Set {
	fg := lipgloss.Color("#1E1E1E")
	faint := lipgloss.Color(t.TextSecondary)
	if dark {
		fg = lipgloss.Color("#EEEEEE")
	}
	bg := lipgloss.Color(t.Background(dark))
	accent := lipgloss.Color(t.Accent)

	return Set{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(fg),
		TabActive: lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true),
		Tab:       lipgloss.NewStyle().Foreground(faint),
		Header:    lipgloss.NewStyle().Foreground(faint),
		Footer:    lipgloss.NewStyle().Foreground(faint),
		Box:       lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(faint).Padding(0, 1),
		Modal: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Warning)).Padding(1, 2).Width(48),
		Good:     lipgloss.NewStyle().Foreground(accent),
		Danger:   lipgloss.NewStyle().Foreground(lipgloss.Color(t.Danger)),
		Warn:     lipgloss.NewStyle().Foreground(lipgloss.Color(t.Warning)),
		Faint:    lipgloss.NewStyle().Foreground(faint),
		Canvas:   lipgloss.NewStyle().Background(bg).Border(lipgloss.NormalBorder()).BorderForeground(faint),
		Selected: lipgloss.NewStyle().Bold(true).Reverse(true),
		theme:    t,
	}
}

// Token renders s in the colour a token resolves to.
func (s Set) Token(tok domain.ColorToken, str string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(s.theme.Color(tok))).Render(str)
}

// Status picks the badge style for a pod status.
func (s Set) Status(st domain.Status) lipgloss.Style {
	switch st {
	case domain.StatusAvailable:
		return s.Good
	case domain.StatusMaintenance:
		return s.Warn
	default:
		return s.Danger
	}
}

// Marker is the floorplan label style; a selected label inverts its badge.
func (s Set) Marker(st domain.Status, selected bool) lipgloss.Style {
	if selected {
		return s.Status(st).Inherit(s.Selected)
	}
	return s.Status(st)
}
