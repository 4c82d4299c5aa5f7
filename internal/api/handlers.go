package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/HaPhanBaoMinh/podmon/internal/analytics"
	"github.com/HaPhanBaoMinh/podmon/internal/domain"
	"github.com/HaPhanBaoMinh/podmon/internal/floorplan"
	"github.com/HaPhanBaoMinh/podmon/internal/guard"
)

type statusRequest struct {
	Status string `json:"status"`
}

type positionRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type viewRequest struct {
	View string `json:"view"`
}

type selectRequest struct {
	ID *string `json:"id"`
}

type modalOpenRequest struct {
	ID string `json:"id"`
}

type pointerRequest struct {
	Type      string        `json:"type"`
	PodID     string        `json:"pod_id,omitempty"`
	ClientX   float64       `json:"client_x"`
	ClientY   float64       `json:"client_y"`
	Container containerRect `json:"container"`
}

type containerRect struct {
	Left   float64 `json:"left"`
	Top    float64 `json:"top"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type seriesResponse struct {
	Frame              domain.TimeFrame     `json:"frame"`
	Label              string               `json:"label"`
	BusinessHoursOnly  bool                 `json:"business_hours"`
	Points             []domain.SeriesPoint `json:"points"`
	AverageUtilization int                  `json:"average_utilization"`
	PeakLabel          string               `json:"peak_label"`
	Peak               domain.SeriesPoint   `json:"peak"`
	WorkStart          string               `json:"work_start,omitempty"`
	WorkEnd            string               `json:"work_end,omitempty"`
}

type sessionResponse struct {
	domain.ViewState
	EditMode   bool   `json:"edit_mode"`
	Dragging   string `json:"dragging,omitempty"`
	PopoverPod string `json:"popover_pod,omitempty"`
}

type pointerResponse struct {
	State string      `json:"state"`
	Pod   *domain.Pod `json:"pod,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListPods(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.pods.List())
}

func (s *Server) handleGetPod(w http.ResponseWriter, r *http.Request) {
	p, ok := s.pods.Get(mux.Vars(r)["id"])
	if !ok {
		writeError(w, http.StatusNotFound, "pod not found")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSetStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}
	st, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.pods.SetStatus(id, st) {
		writeError(w, http.StatusNotFound, "pod not found")
		return
	}
	s.statusChanged(id, st)
	p, _ := s.pods.Get(id)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSetPosition(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req positionRequest
	if !decode(w, r, &req) {
		return
	}
	if !s.pods.SetPosition(id, floorplan.Clamp(req.X), floorplan.Clamp(req.Y)) {
		writeError(w, http.StatusNotFound, "pod not found")
		return
	}
	s.metrics.PositionUpdate()
	p, _ := s.pods.Get(id)
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleSeries(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	frame := domain.FrameToday
	if v := q.Get("frame"); v != "" {
		tf, err := domain.ParseTimeFrame(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		frame = tf
	}
	businessHours := false
	if v := q.Get("business_hours"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "business_hours must be a boolean")
			return
		}
		businessHours = b
	}
	pts, err := s.series.Generate(frame, businessHours)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.metrics.SeriesGenerated(frame)

	resp := seriesResponse{
		Frame:              frame,
		Label:              frame.Label(),
		BusinessHoursOnly:  businessHours,
		Points:             pts,
		AverageUtilization: analytics.AverageUtilization(pts),
		PeakLabel:          analytics.PeakLabel(frame),
		Peak:               analytics.Peak(pts),
	}
	if analytics.ShowDemarcation(frame, businessHours) {
		resp.WorkStart, resp.WorkEnd = analytics.Demarcation(pts)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, analytics.Summarize(s.pods.List()))
}

func (s *Server) handleGetView(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.session())
}

func (s *Server) handleSetView(w http.ResponseWriter, r *http.Request) {
	var req viewRequest
	if !decode(w, r, &req) {
		return
	}
	v, err := domain.ParseView(req.View)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.nav.SetView(v); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.log.Debug().Str("view", string(v)).Msg("view switched")
	writeJSON(w, http.StatusOK, s.session())
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !decode(w, r, &req) {
		return
	}
	id := ""
	if req.ID != nil {
		id = *req.ID
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.nav.SelectPod(id)
	writeJSON(w, http.StatusOK, struct {
		Decision guard.Decision  `json:"decision"`
		Session  sessionResponse `json:"session"`
	}{d, s.session()})
}

func (s *Server) handleDarkMode(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.ToggleDarkMode()
	writeJSON(w, http.StatusOK, s.session())
}

func (s *Server) handleModalOpen(w http.ResponseWriter, r *http.Request) {
	var req modalOpenRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.nav.OpenStatusModal(req.ID) {
		writeError(w, http.StatusNotFound, "pod not found")
		return
	}
	writeJSON(w, http.StatusOK, s.session())
}

func (s *Server) handleModalConfirm(w http.ResponseWriter, r *http.Request) {
	var req statusRequest
	if !decode(w, r, &req) {
		return
	}
	st, err := domain.ParseStatus(req.Status)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	state := s.nav.State()
	if !state.ModalOpen {
		writeError(w, http.StatusConflict, "no status modal is open")
		return
	}
	applied, err := s.nav.ConfirmStatus(st)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	id := state.ModalPodID
	if applied {
		s.statusChanged(id, st)
	}
	writeJSON(w, http.StatusOK, s.session())
}

func (s *Server) handleModalCancel(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nav.CloseModal()
	writeJSON(w, http.StatusOK, s.session())
}

func (s *Server) handleEditMode(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	on := s.floor.ToggleEditMode()
	s.log.Debug().Bool("edit_mode", on).Msg("floorplan edit mode")
	writeJSON(w, http.StatusOK, s.session())
}

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	var req pointerRequest
	if !decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	resp := pointerResponse{}
	switch req.Type {
	case "down":
		if _, ok := s.pods.Get(req.PodID); !ok {
			writeError(w, http.StatusNotFound, "pod not found")
			return
		}
		s.floor.PointerDown(req.PodID)
	case "move":
		id := s.floor.DraggingID()
		canvas := floorplan.Rect{
			Left:   req.Container.Left,
			Top:    req.Container.Top,
			Width:  req.Container.Width,
			Height: req.Container.Height,
		}
		if !canvas.Valid() {
			writeError(w, http.StatusBadRequest, "container width and height must be positive")
			return
		}
		if _, _, moved := s.floor.PointerMove(req.ClientX, req.ClientY, canvas); moved {
			s.metrics.PositionUpdate()
			if p, ok := s.pods.Get(id); ok {
				resp.Pod = &p
			}
		}
	case "up":
		s.floor.PointerUp()
	case "leave":
		s.floor.PointerLeave()
	default:
		writeError(w, http.StatusBadRequest, "type must be one of down, move, up, leave")
		return
	}
	resp.State = s.floor.State().String()
	writeJSON(w, http.StatusOK, resp)
}

// session must be called with mu held.
func (s *Server) session() sessionResponse {
	return sessionResponse{
		ViewState:  s.nav.State(),
		EditMode:   s.floor.EditMode(),
		Dragging:   s.floor.DraggingID(),
		PopoverPod: s.floor.PopoverID(),
	}
}

func (s *Server) statusChanged(id string, st domain.Status) {
	s.metrics.StatusOverride(st)
	s.metrics.ObserveFleet(s.pods.List())
	s.log.Info().Str("pod", id).Str("status", string(st)).Msg("status override")
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		msg := "invalid JSON body"
		var syn *json.SyntaxError
		if errors.As(err, &syn) {
			msg = "malformed JSON body"
		}
		writeError(w, http.StatusBadRequest, msg)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
