package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HaPhanBaoMinh/podmon/internal/domain"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(strings.TrimSpace(body)), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Source != "" {
		t.Fatalf("defaults must not report a source, got %q", cfg.Source)
	}
	pods, err := cfg.SeedPods()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if len(pods) != 5 {
		t.Fatalf("expected 5 seed pods, got %d", len(pods))
	}
	if pods[2].ID != "3" || pods[2].Status != domain.StatusMaintenance {
		t.Fatalf("pod 3 must start in maintenance: %+v", pods[2])
	}
	if pods[0].Metrics.Noise != 55 || !pods[0].Metrics.Occupancy {
		t.Fatalf("pod 1 metrics not seeded: %+v", pods[0].Metrics)
	}
}

func TestLoadParsesYaml(t *testing.T) {
	path := writeConfig(t, `
theme:
  accent: "#112233"
pods:
  - id: a
    name: Alpha
    location: Lab
    status: Occupied
    metrics: {co2: 600, temp: 21.2, humidity: 44, tvoc: 80, occupancy: true}
    x: 12.5
    y: 90
log:
  level: debug
api:
  addr: 127.0.0.1:9000
  allowed_origins: ["http://localhost:5173"]
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Source != path {
		t.Fatalf("source = %q", cfg.Source)
	}
	if cfg.Theme.Accent != "#112233" || cfg.Theme.Danger != "#FF6B6B" {
		t.Fatalf("theme overlay wrong: %+v", cfg.Theme)
	}
	pods, err := cfg.SeedPods()
	if err != nil {
		t.Fatal(err)
	}
	if len(pods) != 1 || pods[0].Status != domain.StatusOccupied || pods[0].X != 12.5 {
		t.Fatalf("unexpected pods %+v", pods)
	}
	if cfg.Log.Level != "debug" || cfg.API.Addr != "127.0.0.1:9000" || cfg.API.Burst != 200 {
		t.Fatalf("unexpected log/api config: %+v %+v", cfg.Log, cfg.API)
	}
	if len(cfg.API.AllowedOrigins) != 1 {
		t.Fatalf("allowed origins not parsed")
	}
}

func TestLoadValidation(t *testing.T) {
	tests := map[string]string{
		"bad status": `
pods:
  - {id: a, status: broken}
`,
		"duplicate id": `
pods:
  - {id: a, status: available}
  - {id: a, status: occupied}
`,
		"out of range": `
pods:
  - {id: a, status: available, x: 120}
`,
		"bad colour": `
theme:
  danger: red
`,
		"bad limit": `
api:
  rate_limit: 0
`,
		"empty fleet": `
pods: []
`,
	}
	for name, body := range tests {
		if _, err := Load(writeConfig(t, body)); err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
	}
}

func TestSeedErrorsWrapSentinel(t *testing.T) {
	cfg := Default()
	cfg.Pods = []PodEntry{{ID: " ", Status: "available"}}
	if _, err := cfg.SeedPods(); !errors.Is(err, ErrInvalidSeed) {
		t.Fatalf("expected ErrInvalidSeed, got %v", err)
	}
}

func TestThemeTokens(t *testing.T) {
	th := Default().Theme
	if th.Color(domain.ColorDanger) != "#FF6B6B" || th.Color(domain.ColorWarning) != "#FACC15" || th.Color("") != "#00D68F" {
		t.Fatalf("token resolution wrong")
	}
	if th.Background(true) != "#1E1E1E" || th.Background(false) != "#FFFFFF" {
		t.Fatalf("background tokens wrong")
	}
}
