package memory

import (
	"fmt"
	"math"
	"sync"

	"github.com/HaPhanBaoMinh/podmon/internal/domain"
)

// Registry is the in-memory fleet. Every mutation swaps in a new slice with
// the one changed record, so snapshots handed out earlier never change.
type Registry struct {
	mu   sync.RWMutex
	pods []domain.Pod
}

// New seeds the registry. The seed is validated and copied; pods are never
// created or removed afterwards.
func New(seed []domain.Pod) (*Registry, error) {
	seen := make(map[string]struct{}, len(seed))
	for i, p := range seed {
		if p.ID == "" {
			return nil, fmt.Errorf("memory: pod #%d has empty id", i)
		}
		if _, dup := seen[p.ID]; dup {
			return nil, fmt.Errorf("memory: duplicate pod id %q", p.ID)
		}
		seen[p.ID] = struct{}{}
		if !p.Status.Valid() {
			return nil, fmt.Errorf("memory: pod %q: %w: %q", p.ID, domain.ErrUnknownStatus, p.Status)
		}
		if !inRange(p.X) || !inRange(p.Y) {
			return nil, fmt.Errorf("memory: pod %q position (%v,%v) outside [0,100]", p.ID, p.X, p.Y)
		}
	}
	pods := make([]domain.Pod, len(seed))
	copy(pods, seed)
	return &Registry{pods: pods}, nil
}

// List returns the pods in seed order.
func (r *Registry) List() []domain.Pod {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Pod, len(r.pods))
	copy(out, r.pods)
	return out
}

func (r *Registry) Get(id string) (domain.Pod, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if i := r.index(id); i >= 0 {
		return r.pods[i], true
	}
	return domain.Pod{}, false
}

// SetStatus replaces the status of pod id. Unknown ids and invalid statuses
// leave the fleet untouched and report false.
func (r *Registry) SetStatus(id string, s domain.Status) bool {
	if !s.Valid() {
		return false
	}
	return r.replace(id, func(p *domain.Pod) { p.Status = s })
}

// SetPosition replaces the floorplan position of pod id. Callers clamp;
// coordinates outside [0,100] are refused.
func (r *Registry) SetPosition(id string, x, y float64) bool {
	if !inRange(x) || !inRange(y) {
		return false
	}
	return r.replace(id, func(p *domain.Pod) { p.X, p.Y = x, y })
}

func (r *Registry) replace(id string, edit func(*domain.Pod)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := r.index(id)
	if i < 0 {
		return false
	}
	next := make([]domain.Pod, len(r.pods))
	copy(next, r.pods)
	edit(&next[i])
	r.pods = next
	return true
}

func (r *Registry) index(id string) int {
	for i := range r.pods {
		if r.pods[i].ID == id {
			return i
		}
	}
	return -1
}

func inRange(f float64) bool {
	return !math.IsNaN(f) && f >= 0 && f <= 100
}
