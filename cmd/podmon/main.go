package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/HaPhanBaoMinh/podmon/internal/api"
	"github.com/HaPhanBaoMinh/podmon/internal/app"
	"github.com/HaPhanBaoMinh/podmon/internal/config"
	"github.com/HaPhanBaoMinh/podmon/internal/infrastructure/memory"
	"github.com/HaPhanBaoMinh/podmon/internal/infrastructure/mock"
	"github.com/HaPhanBaoMinh/podmon/internal/logging"
	"github.com/HaPhanBaoMinh/podmon/internal/metrics"
)

func main() {
	var (
		configPath string
		serve      bool
		addr       string
		logLevel   string
		seed       int64
	)
	flag.StringVar(&configPath, "config", config.DefaultPath(), "path to config.yaml")
	flag.BoolVar(&serve, "serve", false, "run the headless HTTP API instead of the terminal UI")
	flag.StringVar(&addr, "addr", "", "API listen address (overrides api.addr)")
	flag.StringVar(&logLevel, "log-level", "", "log level (overrides log.level)")
	flag.Int64Var(&seed, "seed", 0, "telemetry generator seed, 0 = time based")
	flag.Parse()

	if err := run(configPath, serve, addr, logLevel, seed); err != nil {
		fmt.Fprintln(os.Stderr, "podmon:", err)
		os.Exit(1)
	}
}

func run(configPath string, serve bool, addr, logLevel string, seed int64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.API.Addr = addr
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}

	log, closer, err := logging.New(logging.Options{
		Path:    cfg.Log.Path,
		Level:   cfg.Log.Level,
		Console: serve,
	})
	if err != nil {
		return err
	}
	defer closer.Close()

	source := cfg.Source
	if source == "" {
		source = "defaults"
	}
	log.Info().Str("config", source).Bool("serve", serve).Msg("starting")

	pods, err := cfg.SeedPods()
	if err != nil {
		return err
	}
	registry, err := memory.New(pods)
	if err != nil {
		return err
	}
	generator := mock.New()
	if seed != 0 {
		generator = mock.NewWithSource(time.Now, rand.New(rand.NewSource(seed)))
	}

	if serve {
		return serveAPI(cfg, registry, generator, log)
	}

	m := app.New(cfg, registry, generator, log)
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		log.Error().Err(err).Msg("tui exited")
		return err
	}
	return nil
}

func serveAPI(cfg config.Config, registry *memory.Registry, generator *mock.Repo, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := api.New(cfg.API, registry, generator, metrics.New(), log)
	if err := srv.Run(ctx); err != nil {
		log.Error().Err(err).Msg("api stopped")
		return err
	}
	log.Info().Msg("bye")
	return nil
}
