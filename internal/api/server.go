// Package api serves the dashboard core as JSON so a browser front-end can
// render it. One session is shared by all clients; its transitions run one
// at a time behind mu.
package api

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/HaPhanBaoMinh/podmon/internal/config"
	"github.com/HaPhanBaoMinh/podmon/internal/coordinator"
	"github.com/HaPhanBaoMinh/podmon/internal/domain"
	"github.com/HaPhanBaoMinh/podmon/internal/floorplan"
	"github.com/HaPhanBaoMinh/podmon/internal/metrics"
)

type Server struct {
	pods    domain.PodRepo
	series  domain.SeriesRepo
	metrics *metrics.Metrics
	log     zerolog.Logger
	cfg     config.APIConfig

	mu    sync.Mutex
	nav   *coordinator.Coordinator
	floor *floorplan.Interaction
}

func New(cfg config.APIConfig, pods domain.PodRepo, series domain.SeriesRepo, m *metrics.Metrics, log zerolog.Logger) *Server {
	s := &Server{
		pods:    pods,
		series:  series,
		metrics: m,
		log:     log.With().Str("component", "api").Logger(),
		cfg:     cfg,
		nav:     coordinator.New(pods),
		floor:   floorplan.New(pods),
	}
	m.ObserveFleet(pods.List())
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("api listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.log.Info().Msg("api shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
