package app

import (
	"math"
	"sort"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/HaPhanBaoMinh/podmon/internal/floorplan"
)

const markerGlyph = "●"

// geometry is the floorplan canvas interior in terminal cells.
type geometry struct {
	left, top     int
	width, height int
}

// rect is the canvas in pointer coordinates; the span between the first and
// last cell maps onto [0,100].
func (g geometry) rect() floorplan.Rect {
	return floorplan.Rect{
		Left:   float64(g.left),
		Top:    float64(g.top),
		Width:  float64(g.width - 1),
		Height: float64(g.height - 1),
	}
}

// cell places a normalised coordinate on the canvas.
func (g geometry) cell(x, y float64) (col, row int) {
	col = int(math.Round(x / 100 * float64(g.width-1)))
	row = int(math.Round(y / 100 * float64(g.height-1)))
	return col, row
}

func (m Model) canvas() geometry {
	// header, floorplan status line, then the canvas border
	top := lipgloss.Height(m.renderHeader()) + 1 + 1
	h := m.height - top - 1 - lipgloss.Height(m.renderFooter()) - popoverHeight
	w := m.width - 2
	return geometry{
		left:   1,
		top:    top,
		width:  clamp(w, 20, 400),
		height: clamp(h, 5, 200),
	}
}

// marker is a pod label as drawn on the canvas.
type marker struct {
	id       string
	row, col int
	text     string
}

func (mk marker) hit(x, y int) bool {
	return y == mk.row && x >= mk.col && x < mk.col+utf8.RuneCountInString(mk.text)
}

// markers lays out pod labels. The dragged or focused pod is placed first;
// labels that would overlap one already placed on the same row are dropped.
func (m Model) markers(g geometry) []marker {
	pods := m.pods.List()
	order := make([]int, len(pods))
	for i := range order {
		order[i] = i
	}
	front := m.floor.DraggingID()
	if front == "" && m.focus < len(pods) {
		front = pods[m.focus].ID
	}
	sort.SliceStable(order, func(a, b int) bool {
		return pods[order[a]].ID == front && pods[order[b]].ID != front
	})

	taken := make(map[int][][2]int)
	var out []marker
	for _, i := range order {
		p := pods[i]
		col, row := g.cell(p.X, p.Y)
		text := []rune(markerGlyph + p.Name)
		if col+len(text) > g.width {
			text = text[:g.width-col]
		}
		start, end := col, col+len(text)
		overlap := false
		for _, span := range taken[row] {
			if start < span[1] && span[0] < end {
				overlap = true
				break
			}
		}
		if overlap {
			continue
		}
		taken[row] = append(taken[row], [2]int{start, end})
		out = append(out, marker{id: p.ID, row: row, col: col, text: string(text)})
	}
	return out
}

// hitTest maps a terminal cell to the pod label under it.
func (m Model) hitTest(x, y int) string {
	g := m.canvas()
	for _, mk := range m.markers(g) {
		if mk.hit(x-g.left, y-g.top) {
			return mk.id
		}
	}
	return ""
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	g := m.canvas()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m
		}
		id := m.hitTest(msg.X, msg.Y)
		if id == "" {
			return m
		}
		m.floor.PointerDown(id)
		m.focusPod(id)
	case tea.MouseActionMotion:
		if m.floor.DraggingID() == "" {
			return m
		}
		if !g.rect().Contains(float64(msg.X), float64(msg.Y)) {
			m.endDrag("left canvas")
			return m
		}
		m.floor.PointerMove(float64(msg.X), float64(msg.Y), g.rect())
	}
	return m
}

func (m Model) endDrag(why string) {
	id := m.floor.DraggingID()
	if id == "" {
		return
	}
	m.floor.PointerUp()
	if p, ok := m.pods.Get(id); ok {
		m.log.Debug().Str("pod", id).Float64("x", p.X).Float64("y", p.Y).Str("reason", why).Msg("drag ended")
	}
}

func (m *Model) focusPod(id string) {
	for i, p := range m.pods.List() {
		if p.ID == id {
			m.focus = i
			return
		}
	}
}

func (m Model) updateFloorplan(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	pods := m.pods.List()
	if len(pods) == 0 {
		return m, nil
	}
	m.focus = clamp(m.focus, 0, len(pods)-1)
	focused := pods[m.focus]

	switch {
	case key.Matches(msg, m.keys.EditMode):
		on := m.floor.ToggleEditMode()
		m.log.Debug().Bool("edit_mode", on).Msg("floorplan edit mode")
	case key.Matches(msg, m.keys.Focus):
		m.focus = (m.focus + 1) % len(pods)
	case key.Matches(msg, m.keys.Unfocus):
		m.focus = (m.focus + len(pods) - 1) % len(pods)
	case key.Matches(msg, m.keys.Popover):
		if !m.floor.EditMode() {
			m.floor.PointerDown(focused.ID)
		}
	case key.Matches(msg, m.keys.Back):
		m.floor.ClosePopover()
	case key.Matches(msg, m.keys.Select):
		id := m.floor.PopoverID()
		if id == "" {
			id = focused.ID
		}
		m.floor.ClosePopover()
		return m.selectPod(id)
	case m.floor.EditMode() && key.Matches(msg, m.keys.Up, m.keys.Down, m.keys.Left, m.keys.Right):
		m.nudge(focused.ID, focused.X, focused.Y, msg)
	}
	return m, nil
}

// nudge moves a pod by one canvas cell in edit mode.
func (m Model) nudge(id string, x, y float64, msg tea.KeyMsg) {
	g := m.canvas()
	dx, dy := 100/float64(g.width-1), 100/float64(g.height-1)
	switch {
	case key.Matches(msg, m.keys.Up):
		y -= dy
	case key.Matches(msg, m.keys.Down):
		y += dy
	case key.Matches(msg, m.keys.Left):
		x -= dx
	case key.Matches(msg, m.keys.Right):
		x += dx
	}
	m.pods.SetPosition(id, floorplan.Clamp(x), floorplan.Clamp(y))
}
