// internal/app/app.go
package app

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/HaPhanBaoMinh/podmon/internal/config"
	"github.com/HaPhanBaoMinh/podmon/internal/coordinator"
	"github.com/HaPhanBaoMinh/podmon/internal/domain"
	"github.com/HaPhanBaoMinh/podmon/internal/floorplan"
	"github.com/HaPhanBaoMinh/podmon/internal/guard"
	"github.com/HaPhanBaoMinh/podmon/internal/ui/styles"
)

// seriesTarget names the chart a generated series belongs to.
type seriesTarget int

const (
	targetDashboard seriesTarget = iota
	targetAnalytics
	targetDetail
)

// chartState is one chart's filter plus its last generated series.
type chartState struct {
	frame         domain.TimeFrame
	businessHours bool
	points        []domain.SeriesPoint
}

type seriesMsg struct {
	target        seriesTarget
	frame         domain.TimeFrame
	businessHours bool
	points        []domain.SeriesPoint
	err           error
}

type Model struct {
	pods   domain.PodRepo
	series domain.SeriesRepo
	theme  config.Theme
	log    zerolog.Logger

	nav   *coordinator.Coordinator
	floor *floorplan.Interaction

	keys   keyMap
	help   help.Model
	styles styles.Set

	table    table.Model
	tableIDs []string

	charts [3]chartState

	// floorplan keyboard focus, index into the pod list
	focus int
	// highlighted row of the status modal
	modalCursor int

	width, height int
	err           error
}

func New(cfg config.Config, pods domain.PodRepo, series domain.SeriesRepo, log zerolog.Logger) Model {
	t := table.New()
	t.SetHeight(8)
	t.SetWidth(100)
	t.Focus()

	m := Model{
		pods:   pods,
		series: series,
		theme:  cfg.Theme,
		log:    log.With().Str("component", "tui").Logger(),
		nav:    coordinator.New(pods),
		floor:  floorplan.New(pods),
		keys:   defaultKeys(),
		help:   help.New(),
		styles: styles.New(cfg.Theme, false),
		table:  t,
		width:  100,
		height: 32,
	}
	m.charts[targetDashboard] = chartState{frame: domain.FrameToday}
	m.charts[targetAnalytics] = chartState{frame: domain.FrameToday, businessHours: true}
	m.charts[targetDetail] = chartState{frame: domain.FrameToday}
	m.rebuildTable()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.generate(targetDashboard), m.generate(targetAnalytics))
}

// generate samples a fresh series for target using its current filter.
func (m Model) generate(target seriesTarget) tea.Cmd {
	c := m.charts[target]
	return func() tea.Msg {
		pts, err := m.series.Generate(c.frame, c.businessHours)
		return seriesMsg{target: target, frame: c.frame, businessHours: c.businessHours, points: pts, err: err}
	}
}

func (m Model) mode() mode {
	st := m.nav.State()
	switch {
	case st.ModalOpen:
		return modeModal
	case st.SelectedPodID != "":
		return modeDetail
	case st.CurrentView == domain.ViewAnalytics:
		return modeAnalytics
	case st.CurrentView == domain.ViewFloorplan:
		return modeFloorplan
	default:
		return modeDashboard
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rebuildTable()
		return m, nil

	case seriesMsg:
		if msg.err != nil {
			m.err = msg.err
			m.log.Error().Err(msg.err).Msg("generate series")
			return m, nil
		}
		c := &m.charts[msg.target]
		// a filter change may have raced this result
		if c.frame == msg.frame && c.businessHours == msg.businessHours {
			c.points = msg.points
		}
		m.err = nil
		return m, nil

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionRelease {
			m.endDrag("released")
			return m, nil
		}
		if m.mode() != modeFloorplan {
			return m, nil
		}
		return m.handleMouse(msg), nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.mode() == modeModal {
			return m.updateModal(msg), nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Dark):
			dark := m.nav.ToggleDarkMode()
			m.styles = styles.New(m.theme, dark)
			m.rebuildTable()
			return m, nil
		case key.Matches(msg, m.keys.Dashboard):
			return m.switchView(domain.ViewDashboard)
		case key.Matches(msg, m.keys.Analytics):
			return m.switchView(domain.ViewAnalytics)
		case key.Matches(msg, m.keys.Floorplan):
			return m.switchView(domain.ViewFloorplan)
		}

		switch m.mode() {
		case modeDetail:
			return m.updateDetail(msg)
		case modeAnalytics:
			return m.updateChart(targetAnalytics, msg)
		case modeFloorplan:
			return m.updateFloorplan(msg)
		default:
			return m.updateDashboard(msg)
		}
	}
	return m, nil
}

func (m Model) switchView(v domain.View) (tea.Model, tea.Cmd) {
	if err := m.nav.SetView(v); err != nil {
		m.err = err
		return m, nil
	}
	m.endDrag("view switched")
	m.log.Debug().Str("view", string(v)).Msg("view switched")
	return m, nil
}

func (m Model) updateDashboard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		i := m.table.Cursor()
		if i < 0 || i >= len(m.tableIDs) {
			return m, nil
		}
		return m.selectPod(m.tableIDs[i])
	case key.Matches(msg, m.keys.Refresh):
		return m, m.generate(targetDashboard)
	case key.Matches(msg, m.keys.Up, m.keys.Down):
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// selectPod routes a selection through the maintenance guard.
func (m Model) selectPod(id string) (tea.Model, tea.Cmd) {
	m.endDrag("pod selected")
	d := m.nav.SelectPod(id)
	m.log.Debug().Str("pod", id).Stringer("decision", d.Action).Msg("pod selected")
	switch d.Action {
	case guard.OpenDetail:
		return m, m.generate(targetDetail)
	case guard.OpenConfirmation:
		m.modalCursor = 0
	}
	return m, nil
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.nav.ClearSelection()
		return m, nil
	case key.Matches(msg, m.keys.Status):
		if p, ok := m.nav.SelectedPod(); ok && m.nav.OpenStatusModal(p.ID) {
			m.modalCursor = statusIndex(p.Status)
		}
		return m, nil
	}
	return m.updateChart(targetDetail, msg)
}

// updateChart handles the time-scale selector and business-hours toggle.
func (m Model) updateChart(target seriesTarget, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	c := &m.charts[target]
	switch {
	case key.Matches(msg, m.keys.PrevFrame):
		c.frame = c.frame.Prev()
	case key.Matches(msg, m.keys.NextFrame):
		c.frame = c.frame.Next()
	case key.Matches(msg, m.keys.BusinessHours):
		c.businessHours = !c.businessHours
	case key.Matches(msg, m.keys.Refresh):
	default:
		return m, nil
	}
	return m, m.generate(target)
}

func (m Model) updateModal(msg tea.KeyMsg) Model {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.nav.CloseModal()
		return m
	case key.Matches(msg, m.keys.Up):
		if m.modalCursor > 0 {
			m.modalCursor--
		}
		return m
	case key.Matches(msg, m.keys.Down):
		if m.modalCursor < len(domain.Statuses)-1 {
			m.modalCursor++
		}
		return m
	case key.Matches(msg, m.keys.Select):
		return m.confirmStatus(domain.Statuses[m.modalCursor])
	case key.Matches(msg, m.keys.Available):
		return m.confirmStatus(domain.StatusAvailable)
	case key.Matches(msg, m.keys.Occupied):
		return m.confirmStatus(domain.StatusOccupied)
	case key.Matches(msg, m.keys.Maintenance):
		return m.confirmStatus(domain.StatusMaintenance)
	}
	return m
}

func (m Model) confirmStatus(s domain.Status) Model {
	id := m.nav.State().ModalPodID
	applied, err := m.nav.ConfirmStatus(s)
	if err != nil {
		m.err = err
		return m
	}
	if applied {
		m.log.Info().Str("pod", id).Str("status", string(s)).Msg("status override")
	}
	m.rebuildTable()
	return m
}

func statusIndex(s domain.Status) int {
	for i, st := range domain.Statuses {
		if st == s {
			return i
		}
	}
	return 0
}
