// Package guard decides what selecting a pod does. Pods under maintenance
// must pass through the status override prompt before their detail view
// can be opened.
package guard

import "github.com/HaPhanBaoMinh/podmon/internal/domain"

type Action int

const (
	ClearSelection Action = iota
	OpenDetail
	OpenConfirmation
)

func (a Action) String() string {
	switch a {
	case OpenDetail:
		return "open_detail"
	case OpenConfirmation:
		return "open_confirmation"
	default:
		return "clear_selection"
	}
}

func (a Action) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Decision is the outcome of a selection. PodID is empty for ClearSelection.
type Decision struct {
	Action Action `json:"action"`
	PodID  string `json:"pod_id,omitempty"`
}

// Lookup is the read side of the pod registry.
type Lookup interface {
	Get(id string) (domain.Pod, bool)
}

// Select routes a pod selection. An empty id clears the selection; so does
// an id the registry does not know, since there is no detail view to open.
func Select(pods Lookup, id string) Decision {
	if id == "" {
		return Decision{Action: ClearSelection}
	}
	p, ok := pods.Get(id)
	if !ok {
		return Decision{Action: ClearSelection}
	}
	if p.Status == domain.StatusMaintenance {
		return Decision{Action: OpenConfirmation, PodID: id}
	}
	return Decision{Action: OpenDetail, PodID: id}
}
