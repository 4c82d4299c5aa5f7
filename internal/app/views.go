package app

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/HaPhanBaoMinh/podmon/internal/analytics"
	"github.com/HaPhanBaoMinh/podmon/internal/domain"
	"github.com/HaPhanBaoMinh/podmon/internal/ui/widgets"
)

const (
	chartHeight   = 6
	popoverHeight = 5
)

var viewTitles = map[domain.View]string{
	domain.ViewDashboard: "Dashboard",
	domain.ViewAnalytics: "Analytics",
	domain.ViewFloorplan: "Floorplan",
}

func (m Model) View() string {
	var body string
	switch m.mode() {
	case modeModal:
		body = m.renderModal()
	case modeDetail:
		body = m.renderDetail()
	case modeAnalytics:
		body = m.renderAnalytics()
	case modeFloorplan:
		body = m.renderFloorplan()
	default:
		body = m.renderDashboard()
	}
	return lipgloss.JoinVertical(lipgloss.Left, m.renderHeader(), body, m.renderFooter())
}

func (m Model) renderHeader() string {
	st := m.nav.State()
	scheme := "light"
	if st.DarkMode {
		scheme = "dark"
	}
	head := m.styles.Title.Render("podmon") + m.styles.Header.Render(
		fmt.Sprintf("  │ %d pods │ %s", len(m.pods.List()), scheme))

	var tabs []string
	for i, v := range domain.Views {
		label := fmt.Sprintf("[%d] %s", i+1, viewTitles[v])
		if v == st.CurrentView && st.SelectedPodID == "" {
			tabs = append(tabs, m.styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, m.styles.Tab.Render(label))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, head, strings.Join(tabs, "  "))
}

func (m Model) renderFooter() string {
	footer := m.styles.Footer.Render(m.help.View(contextKeys{k: m.keys, mode: m.mode()}))
	if m.err != nil {
		footer = lipgloss.JoinVertical(lipgloss.Left, m.styles.Danger.Render("error: "+m.err.Error()), footer)
	}
	return footer
}

// bodyHeight is what is left between header and footer.
func (m Model) bodyHeight() int {
	return max(1, m.height-lipgloss.Height(m.renderHeader())-lipgloss.Height(m.renderFooter()))
}

func (m Model) renderDashboard() string {
	sum := analytics.Summarize(m.pods.List())
	cards := strings.Join([]string{
		m.styles.Title.Render(fmt.Sprintf("Total %d", sum.Total)),
		m.styles.Good.Render(fmt.Sprintf("Available %d", sum.Available)),
		m.styles.Danger.Render(fmt.Sprintf("Occupied %d", sum.Occupied)),
		m.styles.Warn.Render(fmt.Sprintf("Maintenance %d", sum.Maintenance)),
		m.styles.Good.Render(widgets.Bar(sum.AvailableRatio(), 16)) +
			m.styles.Faint.Render(fmt.Sprintf(" %.0f%% available, %d unavailable", sum.AvailableRatio()*100, sum.Unavailable())),
	}, "   ")

	w := m.width - 4
	usage := m.styles.Title.Render("Today's Usage") + "\n" +
		m.usageChart(m.charts[targetDashboard].points, w, chartHeight, false)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Box.Width(m.width-2).Render(cards),
		m.styles.Box.Width(m.width-2).Render(usage),
		lipgloss.NewStyle().Padding(0, 1).Render(m.table.View()),
	)
}

func (m Model) renderAnalytics() string {
	c := m.charts[targetAnalytics]
	w := m.width - 4
	sum := analytics.Summarize(m.pods.List())

	fleet := m.styles.Faint.Render(fmt.Sprintf("Fleet: %d available, %d occupied, %d in maintenance",
		sum.Available, sum.Occupied, sum.Maintenance))
	chart := m.styles.Title.Render("Utilization") + "\n" +
		m.usageChart(c.points, w, chartHeight+2, analytics.ShowDemarcation(c.frame, c.businessHours))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Box.Width(m.width-2).Render(m.filterLine(c)+"\n"+m.statsLine(c)),
		m.styles.Box.Width(m.width-2).Render(chart),
		lipgloss.NewStyle().Padding(0, 1).Render(fleet),
	)
}

func (m Model) renderDetail() string {
	// the registry never drops pods, so a selection always resolves
	p, _ := m.nav.SelectedPod()
	c := m.charts[targetDetail]
	w := m.width - 4

	badge := m.styles.Status(p.Status).Bold(true).Render("[ " + p.Status.Title() + " ]")
	title := m.styles.Title.Render(p.Name) + m.styles.Faint.Render("  "+p.Location+"  ") + badge +
		m.styles.Faint.Render("  (s) change status")

	occupied := "No"
	if p.Metrics.Occupancy {
		occupied = "Yes"
	}
	now := fmt.Sprintf("CO₂ %d ppm   Temp %.1f°C   Humidity %d%%   TVOC %d ppb   Noise %d dB   Occupied %s",
		p.Metrics.CO2, p.Metrics.Temp, p.Metrics.Humidity, p.Metrics.TVOC, p.Metrics.Noise, occupied)

	sparkW := max(1, len(c.points)*(chartColWidth(len(c.points), w)+1)-1)
	trends := strings.Join([]string{
		m.trend("Occupancy", c.points, func(sp domain.SeriesPoint) float64 { return float64(sp.Occupancy) }, "", 0, sparkW),
		m.trend("CO₂", c.points, func(sp domain.SeriesPoint) float64 { return float64(sp.CO2) }, "ppm", 0, sparkW),
		m.trend("Temperature", c.points, func(sp domain.SeriesPoint) float64 { return sp.Temp }, "°C", 1, sparkW),
		m.trend("TVOC", c.points, func(sp domain.SeriesPoint) float64 { return float64(sp.TVOC) }, "ppb", 0, sparkW),
		m.trend("Humidity", c.points, func(sp domain.SeriesPoint) float64 { return float64(sp.Humidity) }, "%", 0, sparkW),
	}, "\n")

	chart := m.styles.Title.Render("Usage") + "\n" +
		m.usageChart(c.points, w, chartHeight, analytics.ShowDemarcation(c.frame, c.businessHours))

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Box.Width(m.width-2).Render(title+"\n"+now),
		m.styles.Box.Width(m.width-2).Render(m.filterLine(c)+"\n"+m.statsLine(c)),
		m.styles.Box.Width(m.width-2).Render(chart),
		m.styles.Box.Width(m.width-2).Render(trends),
	)
}

func (m Model) renderFloorplan() string {
	g := m.canvas()
	status := m.styles.Faint.Render("Click a pod for details · e edit layout")
	if m.floor.EditMode() {
		status = m.styles.Warn.Render("Layout editing on · drag a pod to move it, e to finish")
	}

	pods := m.pods.List()
	byID := make(map[string]domain.Pod, len(pods))
	for _, p := range pods {
		byID[p.ID] = p
	}
	focused := ""
	if m.focus < len(pods) {
		focused = pods[m.focus].ID
	}

	rows := make([][]marker, g.height)
	for _, mk := range m.markers(g) {
		rows[mk.row] = append(rows[mk.row], mk)
	}
	lines := make([]string, g.height)
	for r, row := range rows {
		sort.Slice(row, func(a, b int) bool { return row[a].col < row[b].col })
		var b strings.Builder
		cur := 0
		for _, mk := range row {
			b.WriteString(strings.Repeat(" ", mk.col-cur))
			selected := mk.id == m.floor.DraggingID() || mk.id == focused
			b.WriteString(m.styles.Marker(byID[mk.id].Status, selected).Render(mk.text))
			cur = mk.col + utf8.RuneCountInString(mk.text)
		}
		b.WriteString(strings.Repeat(" ", g.width-cur))
		lines[r] = b.String()
	}
	canvas := m.styles.Canvas.Render(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, status, canvas, m.renderPopover())
}

// renderPopover always takes popoverHeight lines so the canvas does not move
// when it opens.
func (m Model) renderPopover() string {
	area := lipgloss.NewStyle().Height(popoverHeight).MaxHeight(popoverHeight)
	p, ok := m.pods.Get(m.floor.PopoverID())
	if !ok {
		return area.Render("")
	}
	box := m.styles.Box.Render(strings.Join([]string{
		m.styles.Title.Render(p.Name) + m.styles.Faint.Render("  "+p.Location),
		m.styles.Status(p.Status).Render(p.Status.Title()) +
			fmt.Sprintf("   %.1f°C   %d ppm", p.Metrics.Temp, p.Metrics.CO2),
		m.styles.Faint.Render("enter view details · esc close"),
	}, "\n"))
	return area.Render(box)
}

func (m Model) renderModal() string {
	p, ok := m.nav.ModalPod()
	if !ok {
		return ""
	}
	headline := "Manage Pod Status"
	sub := fmt.Sprintf("%s is currently %s.", p.Name, p.Status.Title())
	if p.Status == domain.StatusMaintenance {
		headline = "Out of Service"
		sub = fmt.Sprintf("%s is under maintenance. Update its status to continue.", p.Name)
	}

	opts := make([]string, len(domain.Statuses))
	for i, s := range domain.Statuses {
		cursor := "  "
		if i == m.modalCursor {
			cursor = "› "
		}
		label := fmt.Sprintf("%s[%c] %s", cursor, s[0], s.Title())
		if i == m.modalCursor {
			opts[i] = m.styles.Status(s).Bold(true).Render(label)
		} else {
			opts[i] = m.styles.Status(s).Render(label)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Title.Render(headline),
		m.styles.Faint.Render(sub),
		"",
		strings.Join(opts, "\n"),
		"",
		m.styles.Faint.Render("enter confirm · esc cancel"),
	)
	return lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center,
		m.styles.Modal.Render(content))
}

func (m Model) filterLine(c chartState) string {
	bh := "off"
	if c.businessHours {
		bh = "on"
	}
	return fmt.Sprintf("Time scale: ‹ %s ›   Business hours (08:00-18:00): %s",
		m.styles.TabActive.Render(c.frame.Label()), bh)
}

func (m Model) statsLine(c chartState) string {
	peak := analytics.Peak(c.points)
	return fmt.Sprintf("Average Utilization %s   %s %s %s",
		m.styles.Title.Render(fmt.Sprintf("%d%%", analytics.AverageUtilization(c.points))),
		analytics.PeakLabel(c.frame),
		m.styles.Title.Render(peak.Time),
		m.styles.Faint.Render(fmt.Sprintf("(%d%%)", peak.Usage)),
	)
}

// usageChart draws usage columns coloured by each bucket's token, with time
// labels and, if asked, the work-day start and end markers.
func (m Model) usageChart(pts []domain.SeriesPoint, width, height int, demarcate bool) string {
	if len(pts) == 0 {
		return m.styles.Faint.Render("No data for this filter")
	}
	colW := chartColWidth(len(pts), width)
	vals := make([]float64, len(pts))
	labels := make([]string, len(pts))
	longest := 0
	for i, p := range pts {
		vals[i] = float64(p.Usage) / 100
		labels[i] = p.Time
		longest = max(longest, utf8.RuneCountInString(p.Time))
	}
	lines := widgets.Columns(vals, height, colW, func(i int, cell string) string {
		return m.styles.Token(pts[i].Color, cell)
	})
	lines = append(lines, m.styles.Faint.Render(widgets.Labels(labels, colW, labelStep(longest, colW))))

	if demarcate {
		start, end := analytics.Demarcation(pts)
		marks := make([]string, len(pts))
		for i, p := range pts {
			switch p.Time {
			case start:
				marks[i] = "▲ start"
			case end:
				marks[i] = "▲ end"
			}
		}
		lines = append(lines, m.styles.Warn.Render(widgets.Labels(marks, colW, 1)))
	}
	return strings.Join(lines, "\n")
}

func (m Model) trend(name string, pts []domain.SeriesPoint, metric func(domain.SeriesPoint) float64, unit string, prec, width int) string {
	lo, hi, ok := analytics.Range(pts, metric)
	if !ok {
		return fmt.Sprintf("%-12s %s", name, m.styles.Faint.Render("n/a"))
	}
	vals := make([]float64, len(pts))
	for i, p := range pts {
		vals[i] = metric(p)
	}
	return fmt.Sprintf("%-12s %s  %s", name,
		m.styles.Good.Render(widgets.Spark8(widgets.Scale(vals, lo, hi), width)),
		m.styles.Faint.Render(fmt.Sprintf("%.*f..%.*f %s", prec, lo, prec, hi, unit)))
}

func (m *Model) rebuildTable() {
	total := max(40, m.width-4)
	wName, wLoc, wStatus, wCO2, wTemp, wHum, wTVOC, wNoise := podColWidths(total)
	cols := []table.Column{
		{Title: "POD", Width: wName},
		{Title: "LOCATION", Width: wLoc},
		{Title: "STATUS", Width: wStatus},
		{Title: "CO₂", Width: wCO2},
		{Title: "TEMP", Width: wTemp},
		{Title: "HUMID", Width: wHum},
		{Title: "TVOC", Width: wTVOC},
		{Title: "NOISE", Width: wNoise},
	}

	pods := m.pods.List()
	rows := make([]table.Row, 0, len(pods))
	ids := make([]string, 0, len(pods))
	for _, p := range pods {
		rows = append(rows, table.Row{
			p.Name,
			p.Location,
			p.Status.Title(),
			fmt.Sprintf("%d ppm", p.Metrics.CO2),
			fmt.Sprintf("%.1f°C", p.Metrics.Temp),
			fmt.Sprintf("%d%%", p.Metrics.Humidity),
			fmt.Sprintf("%d ppb", p.Metrics.TVOC),
			fmt.Sprintf("%d dB", p.Metrics.Noise),
		})
		ids = append(ids, p.ID)
	}
	m.tableIDs = ids

	// summary box, usage box, padding
	fixed := 3 + (chartHeight + 4) + 1
	m.table.SetColumns(cols)
	m.table.SetRows(rows)
	m.table.SetWidth(total)
	m.table.SetHeight(clamp(m.height-lipgloss.Height(m.renderHeader())-lipgloss.Height(m.renderFooter())-fixed, 3, 30))
	if c := m.table.Cursor(); len(rows) > 0 && (c < 0 || c >= len(rows)) {
		m.table.SetCursor(0)
	}
}
