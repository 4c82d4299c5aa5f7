package app

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Dashboard key.Binding
	Analytics key.Binding
	Floorplan key.Binding
	Dark      key.Binding
	Help      key.Binding
	Quit      key.Binding

	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding

	PrevFrame     key.Binding
	NextFrame     key.Binding
	BusinessHours key.Binding
	Refresh       key.Binding
	Status        key.Binding

	EditMode key.Binding
	Focus    key.Binding
	Unfocus  key.Binding
	Popover  key.Binding

	Available   key.Binding
	Occupied    key.Binding
	Maintenance key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Dashboard: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
		Analytics: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "analytics")),
		Floorplan: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "floorplan")),
		Dark:      key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "dark mode")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:   key.NewBinding(key.WithKeys("left", "h")),
		Right:  key.NewBinding(key.WithKeys("right", "l")),
		Select: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),

		PrevFrame:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev frame")),
		NextFrame:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next frame")),
		BusinessHours: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "business hours")),
		Refresh:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "resample")),
		Status:        key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "status")),

		EditMode: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit layout")),
		Focus:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pod")),
		Unfocus:  key.NewBinding(key.WithKeys("shift+tab")),
		Popover:  key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "info")),

		Available:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "available")),
		Occupied:    key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "occupied")),
		Maintenance: key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "maintenance")),
	}
}

type mode int

const (
	modeDashboard mode = iota
	modeAnalytics
	modeFloorplan
	modeDetail
	modeModal
)

// contextKeys narrows the help footer to what the focused screen handles.
type contextKeys struct {
	k    keyMap
	mode mode
}

func (c contextKeys) ShortHelp() []key.Binding {
	k := c.k
	switch c.mode {
	case modeModal:
		return []key.Binding{k.Available, k.Occupied, k.Maintenance, k.Back}
	case modeDetail:
		return []key.Binding{k.Back, k.Status, k.PrevFrame, k.NextFrame, k.BusinessHours, k.Help}
	case modeAnalytics:
		return []key.Binding{k.PrevFrame, k.NextFrame, k.BusinessHours, k.Refresh, k.Help}
	case modeFloorplan:
		return []key.Binding{k.EditMode, k.Focus, k.Popover, k.Select, k.Help}
	default:
		return []key.Binding{k.Up, k.Down, k.Select, k.Help}
	}
}

func (c contextKeys) FullHelp() [][]key.Binding {
	k := c.k
	return [][]key.Binding{
		c.ShortHelp(),
		{k.Dashboard, k.Analytics, k.Floorplan},
		{k.Dark, k.Refresh, k.Quit},
	}
}
