// Package coordinator owns the navigation state of a dashboard session:
// which list view is shown, which pod detail is open, the status override
// modal and the colour scheme. Every transition is synchronous.
package coordinator

import (
	"fmt"

	"github.com/HaPhanBaoMinh/podmon/internal/domain"
	"github.com/HaPhanBaoMinh/podmon/internal/guard"
)

// Pods is the slice of the registry the coordinator needs.
type Pods interface {
	Get(id string) (domain.Pod, bool)
	SetStatus(id string, s domain.Status) bool
}

type Coordinator struct {
	pods  Pods
	state domain.ViewState
}

func New(pods Pods) *Coordinator {
	return &Coordinator{
		pods:  pods,
		state: domain.ViewState{CurrentView: domain.ViewDashboard},
	}
}

// State returns a copy of the current view state.
func (c *Coordinator) State() domain.ViewState {
	return c.state
}

// SelectPod routes a selection through the maintenance guard and applies
// its decision. An empty id clears the selection.
func (c *Coordinator) SelectPod(id string) guard.Decision {
	d := guard.Select(c.pods, id)
	switch d.Action {
	case guard.OpenDetail:
		c.state.SelectedPodID = d.PodID
	case guard.OpenConfirmation:
		c.openModal(d.PodID)
	default:
		c.state.SelectedPodID = ""
	}
	return d
}

// ClearSelection leaves the detail view.
func (c *Coordinator) ClearSelection() {
	c.state.SelectedPodID = ""
}

// SetView switches the list view. Entering any list view exits the detail
// view; the modal is left alone.
func (c *Coordinator) SetView(v domain.View) error {
	if !v.Valid() {
		return fmt.Errorf("coordinator: %w: %q", domain.ErrUnknownView, v)
	}
	c.state.CurrentView = v
	c.state.SelectedPodID = ""
	return nil
}

// OpenStatusModal opens the override modal for id without consulting the
// guard. This is the entry point used by the detail view's status badge.
func (c *Coordinator) OpenStatusModal(id string) bool {
	if _, ok := c.pods.Get(id); !ok {
		return false
	}
	c.openModal(id)
	return true
}

// ConfirmStatus applies the chosen status to the modal's pod and closes the
// modal. It reports false if no modal was open.
func (c *Coordinator) ConfirmStatus(s domain.Status) (bool, error) {
	if !s.Valid() {
		return false, fmt.Errorf("coordinator: %w: %q", domain.ErrUnknownStatus, s)
	}
	if !c.state.ModalOpen {
		return false, nil
	}
	applied := c.pods.SetStatus(c.state.ModalPodID, s)
	c.CloseModal()
	return applied, nil
}

// CloseModal dismisses the modal without touching the fleet.
func (c *Coordinator) CloseModal() {
	c.state.ModalOpen = false
	c.state.ModalPodID = ""
}

func (c *Coordinator) ToggleDarkMode() bool {
	c.state.DarkMode = !c.state.DarkMode
	return c.state.DarkMode
}

// SelectedPod resolves the open detail view, if any.
func (c *Coordinator) SelectedPod() (domain.Pod, bool) {
	if c.state.SelectedPodID == "" {
		return domain.Pod{}, false
	}
	return c.pods.Get(c.state.SelectedPodID)
}

// ModalPod resolves the pod shown in the open modal, if any.
func (c *Coordinator) ModalPod() (domain.Pod, bool) {
	if !c.state.ModalOpen {
		return domain.Pod{}, false
	}
	return c.pods.Get(c.state.ModalPodID)
}

func (c *Coordinator) openModal(id string) {
	c.state.ModalPodID = id
	c.state.ModalOpen = true
}
