// Package floorplan turns pointer events on the floorplan canvas into pod
// position updates. It is the only place raw pointer coordinates are mapped
// into the normalised [0,100] space.
package floorplan

import "math"

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Rect is the canvas in pointer coordinates. Width and Height are the span
// from the first to the last addressable point.
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Contains reports whether a pointer position lies on the canvas.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Left+r.Width && y >= r.Top && y <= r.Top+r.Height
}

// Valid reports whether the canvas spans a positive width and height.
func (r Rect) Valid() bool {
	return r.Width > 0 && r.Height > 0
}

// Positioner commits a clamped position.
type Positioner interface {
	SetPosition(id string, x, y float64) bool
}

// Interaction is the drag state machine plus the two independent UI flags
// that live next to it: edit mode and the inline popover.
type Interaction struct {
	pods Positioner

	editMode bool
	dragging string
	popover  string
}

func New(pods Positioner) *Interaction {
	return &Interaction{pods: pods}
}

func (f *Interaction) State() State {
	if f.dragging != "" {
		return Dragging
	}
	return Idle
}

func (f *Interaction) EditMode() bool { return f.editMode }

func (f *Interaction) DraggingID() string { return f.dragging }

func (f *Interaction) PopoverID() string { return f.popover }

// ToggleEditMode flips layout editing. Leaving edit mode ends any drag;
// entering it dismisses the popover.
func (f *Interaction) ToggleEditMode() bool {
	f.editMode = !f.editMode
	if f.editMode {
		f.popover = ""
	} else {
		f.dragging = ""
	}
	return f.editMode
}

// PointerDown on a pod starts a drag in edit mode; otherwise it toggles the
// pod's popover.
func (f *Interaction) PointerDown(id string) {
	if id == "" {
		return
	}
	if f.editMode {
		f.dragging = id
		return
	}
	if f.popover == id {
		f.popover = ""
	} else {
		f.popover = id
	}
}

// PointerMove commits the normalised position of the dragged pod. It reports
// the stored coordinates and whether anything was written. A canvas without
// area commits nothing.
func (f *Interaction) PointerMove(clientX, clientY float64, canvas Rect) (x, y float64, moved bool) {
	if f.dragging == "" || !canvas.Valid() {
		return 0, 0, false
	}
	x = Normalize(clientX, canvas.Left, canvas.Width)
	y = Normalize(clientY, canvas.Top, canvas.Height)
	return x, y, f.pods.SetPosition(f.dragging, x, y)
}

func (f *Interaction) PointerUp() {
	f.dragging = ""
}

// PointerLeave ends a drag exactly like PointerUp.
func (f *Interaction) PointerLeave() {
	f.PointerUp()
}

// ClosePopover dismisses the inline popover.
func (f *Interaction) ClosePopover() {
	f.popover = ""
}

// Normalize maps a pointer coordinate into [0,100] relative to a span.
func Normalize(client, origin, span float64) float64 {
	if span <= 0 || math.IsNaN(client) {
		return 0
	}
	return Clamp((client - origin) / span * 100)
}

// Clamp bounds v to [0,100].
func Clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}
