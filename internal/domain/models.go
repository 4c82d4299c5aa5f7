package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownStatus    = errors.New("unknown pod status")
	ErrUnknownTimeFrame = errors.New("unknown time frame")
	ErrUnknownView      = errors.New("unknown view")
)

type Status string

const (
	StatusAvailable   Status = "available"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

// Statuses lists every status in the order the override modal presents them.
var Statuses = []Status{StatusAvailable, StatusOccupied, StatusMaintenance}

func (s Status) Valid() bool {
	switch s {
	case StatusAvailable, StatusOccupied, StatusMaintenance:
		return true
	}
	return false
}

// Title is the capitalised form used in headlines ("Maintenance").
func (s Status) Title() string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(string(s[:1])) + string(s[1:])
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

// Metrics is the latest environmental reading of a pod.
type Metrics struct {
	CO2       int     `json:"co2"`      // ppm
	Temp      float64 `json:"temp"`     // celsius
	Humidity  int     `json:"humidity"` // %
	TVOC      int     `json:"tvoc"`     // ppb
	Noise     int     `json:"noise"`    // dB
	Occupancy bool    `json:"occupancy"`
}

// Pod is one monitored workspace booth. X and Y are percentages of the
// floorplan canvas and always stay within [0, 100].
type Pod struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Location string  `json:"location"`
	Status   Status  `json:"status"`
	Metrics  Metrics `json:"metrics"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

type TimeFrame string

const (
	FrameToday TimeFrame = "today"
	FrameWeek  TimeFrame = "week"
	FrameMonth TimeFrame = "month"
)

var TimeFrames = []TimeFrame{FrameToday, FrameWeek, FrameMonth}

func (tf TimeFrame) Valid() bool {
	switch tf {
	case FrameToday, FrameWeek, FrameMonth:
		return true
	}
	return false
}

// Label is the human caption of the frame's window.
func (tf TimeFrame) Label() string {
	switch tf {
	case FrameToday:
		return "Past 24 Hours"
	case FrameWeek:
		return "Past 7 Days"
	case FrameMonth:
		return "Past 30 Days"
	}
	return ""
}

// Next cycles today -> week -> month -> today; Prev goes the other way.
func (tf TimeFrame) Next() TimeFrame {
	for i, f := range TimeFrames {
		if f == tf {
			return TimeFrames[(i+1)%len(TimeFrames)]
		}
	}
	return FrameToday
}

func (tf TimeFrame) Prev() TimeFrame {
	for i, f := range TimeFrames {
		if f == tf {
			return TimeFrames[(i+len(TimeFrames)-1)%len(TimeFrames)]
		}
	}
	return FrameToday
}

func ParseTimeFrame(s string) (TimeFrame, error) {
	tf := TimeFrame(strings.ToLower(strings.TrimSpace(s)))
	if !tf.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownTimeFrame, s)
	}
	return tf, nil
}

// ColorToken names a theme colour; the presentation layer resolves it.
type ColorToken string

const (
	ColorAccent  ColorToken = "accent"
	ColorDanger  ColorToken = "danger"
	ColorWarning ColorToken = "warning"
)

// SeriesPoint is one bucket of generated telemetry. Occupancy is 0 or 1.
type SeriesPoint struct {
	Time      string     `json:"time"`
	CO2       int        `json:"co2"`
	Temp      float64    `json:"temp"`
	Humidity  int        `json:"humidity"`
	TVOC      int        `json:"tvoc"`
	Occupancy int        `json:"occupancy"`
	Usage     int        `json:"usage"`
	Color     ColorToken `json:"color,omitempty"`
}

type View string

const (
	ViewDashboard View = "dashboard"
	ViewAnalytics View = "analytics"
	ViewFloorplan View = "floorplan"
)

var Views = []View{ViewDashboard, ViewAnalytics, ViewFloorplan}

func (v View) Valid() bool {
	switch v {
	case ViewDashboard, ViewAnalytics, ViewFloorplan:
		return true
	}
	return false
}

func ParseView(s string) (View, error) {
	v := View(strings.ToLower(strings.TrimSpace(s)))
	if !v.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownView, s)
	}
	return v, nil
}

// ViewState is the navigation state of one dashboard session. Empty ids mean
// "nothing selected".
type ViewState struct {
	CurrentView   View   `json:"current_view"`
	SelectedPodID string `json:"selected_pod_id,omitempty"`
	ModalPodID    string `json:"modal_pod_id,omitempty"`
	ModalOpen     bool   `json:"modal_open"`
	DarkMode      bool   `json:"dark_mode"`
}
