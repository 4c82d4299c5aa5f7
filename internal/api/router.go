package api

import (
	"io"
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
)

func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	route := func(path string, h http.HandlerFunc, methods ...string) {
		r.Handle(path, s.metrics.Middleware(path, h)).Methods(methods...)
	}

	route("/health", s.handleHealth, http.MethodGet)

	route("/api/pods", s.handleListPods, http.MethodGet)
	route("/api/pods/{id}", s.handleGetPod, http.MethodGet)
	route("/api/pods/{id}/status", s.handleSetStatus, http.MethodPut)
	route("/api/pods/{id}/position", s.handleSetPosition, http.MethodPut)

	route("/api/series", s.handleSeries, http.MethodGet)
	route("/api/summary", s.handleSummary, http.MethodGet)

	route("/api/view", s.handleGetView, http.MethodGet)
	route("/api/view", s.handleSetView, http.MethodPut)
	route("/api/select", s.handleSelect, http.MethodPost)
	route("/api/dark-mode", s.handleDarkMode, http.MethodPost)

	route("/api/modal/open", s.handleModalOpen, http.MethodPost)
	route("/api/modal/confirm", s.handleModalConfirm, http.MethodPost)
	route("/api/modal/cancel", s.handleModalCancel, http.MethodPost)

	route("/api/floorplan/edit-mode", s.handleEditMode, http.MethodPost)
	route("/api/floorplan/pointer", s.handlePointer, http.MethodPost)

	r.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	var h http.Handler = r
	h = rateLimit(newClientLimiter(s.cfg.RateLimit, s.cfg.Burst), s.log)(h)
	h = handlers.CustomLoggingHandler(io.Discard, h, s.accessLog)
	h = requestID(h)
	if len(s.cfg.AllowedOrigins) > 0 {
		h = handlers.CORS(
			handlers.AllowedOrigins(s.cfg.AllowedOrigins),
			handlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut}),
			handlers.AllowedHeaders([]string{"Content-Type", requestIDHeader}),
		)(h)
	}
	h = handlers.CompressHandler(h)
	return handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{s.log}))(h)
}
