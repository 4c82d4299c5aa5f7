// internal/config/config.go
//
// Runtime configuration for podmon: the seed fleet, theme tokens, logging
// and the headless API. Everything lives in one YAML file; a missing file
// means the built-in defaults below.

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/HaPhanBaoMinh/podmon/help"
	"github.com/HaPhanBaoMinh/podmon/internal/domain"
)

// Dir is the per-user directory holding config.yaml and the log file.
const Dir = ".podmon"

var ErrInvalidSeed = errors.New("invalid seed pod")

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

type Theme struct {
	Accent        string `yaml:"accent"`
	Danger        string `yaml:"danger"`
	Warning       string `yaml:"warning"`
	DarkBg        string `yaml:"dark_bg"`
	LightBg       string `yaml:"light_bg"`
	TextSecondary string `yaml:"text_secondary"`
}

// Color resolves a colour token to its hex value.
func (t Theme) Color(tok domain.ColorToken) string {
	switch tok {
	case domain.ColorDanger:
		return t.Danger
	case domain.ColorWarning:
		return t.Warning
	default:
		return t.Accent
	}
}

// Background returns the canvas colour for the given scheme.
func (t Theme) Background(dark bool) string {
	if dark {
		return t.DarkBg
	}
	return t.LightBg
}

type MetricsEntry struct {
	CO2       int     `yaml:"co2"`
	Temp      float64 `yaml:"temp"`
	Humidity  int     `yaml:"humidity"`
	TVOC      int     `yaml:"tvoc"`
	Noise     int     `yaml:"noise"`
	Occupancy bool    `yaml:"occupancy"`
}

// PodEntry declares one seed pod.
type PodEntry struct {
	ID       string       `yaml:"id"`
	Name     string       `yaml:"name"`
	Location string       `yaml:"location"`
	Status   string       `yaml:"status"`
	Metrics  MetricsEntry `yaml:"metrics"`
	X        float64      `yaml:"x"`
	Y        float64      `yaml:"y"`
}

type LogConfig struct {
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

type APIConfig struct {
	Addr           string   `yaml:"addr"`
	RateLimit      float64  `yaml:"rate_limit"`
	Burst          int      `yaml:"burst"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"`
}

type Config struct {
	Theme Theme      `yaml:"theme"`
	Pods  []PodEntry `yaml:"pods"`
	Log   LogConfig  `yaml:"log"`
	API   APIConfig  `yaml:"api"`

	// Source is the file the config was read from; empty for defaults.
	Source string `yaml:"-"`
}

// DefaultPath is ~/.podmon/config.yaml.
func DefaultPath() string {
	return filepath.Join(help.HomeDir(), Dir, "config.yaml")
}

func Default() Config {
	return Config{
		Theme: Theme{
			Accent:        "#00D68F",
			Danger:        "#FF6B6B",
			Warning:       "#FACC15",
			DarkBg:        "#1E1E1E",
			LightBg:       "#FFFFFF",
			TextSecondary: "#94A3B8",
		},
		Pods: []PodEntry{
			{ID: "1", Name: "Pod 1", Location: "Goswell Road", Status: "occupied",
				Metrics: MetricsEntry{CO2: 850, Temp: 22.4, Humidity: 45, TVOC: 120, Noise: 55, Occupancy: true}, X: 20, Y: 30},
			{ID: "2", Name: "Pod 1+", Location: "Goswell Road", Status: "available",
				Metrics: MetricsEntry{CO2: 420, Temp: 21.8, Humidity: 40, TVOC: 45, Noise: 30}, X: 35, Y: 30},
			{ID: "3", Name: "Quad+", Location: "Goswell Road", Status: "maintenance",
				Metrics: MetricsEntry{CO2: 405, Temp: 20.1, Humidity: 40, TVOC: 15}, X: 60, Y: 60},
			{ID: "4", Name: "Tuesday", Location: "Shoreditch High", Status: "available",
				Metrics: MetricsEntry{CO2: 450, Temp: 21.0, Humidity: 38, TVOC: 50, Noise: 35}, X: 80, Y: 20},
			{ID: "5", Name: "Pod 2", Location: "Shoreditch High", Status: "maintenance",
				Metrics: MetricsEntry{CO2: 410, Temp: 20.5, Humidity: 42, TVOC: 20, Noise: 25}, X: 20, Y: 70},
		},
		Log: LogConfig{
			Path:  filepath.Join(help.HomeDir(), Dir, "podmon.log"),
			Level: "info",
		},
		API: APIConfig{
			Addr:      ":8090",
			RateLimit: 100,
			Burst:     200,
		},
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.Source = path
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks theme tokens, the seed fleet and API limits.
func (c Config) Validate() error {
	tokens := map[string]string{
		"accent":         c.Theme.Accent,
		"danger":         c.Theme.Danger,
		"warning":        c.Theme.Warning,
		"dark_bg":        c.Theme.DarkBg,
		"light_bg":       c.Theme.LightBg,
		"text_secondary": c.Theme.TextSecondary,
	}
	for name, v := range tokens {
		if !hexColor.MatchString(v) {
			return fmt.Errorf("theme.%s: %q is not a #RRGGBB colour", name, v)
		}
	}
	if _, err := c.SeedPods(); err != nil {
		return err
	}
	if c.API.RateLimit <= 0 || c.API.Burst <= 0 {
		return fmt.Errorf("api: rate_limit and burst must be positive")
	}
	return nil
}

// SeedPods converts the pod entries into domain pods.
func (c Config) SeedPods() ([]domain.Pod, error) {
	if len(c.Pods) == 0 {
		return nil, fmt.Errorf("%w: fleet is empty", ErrInvalidSeed)
	}
	seen := map[string]bool{}
	out := make([]domain.Pod, 0, len(c.Pods))
	for i, e := range c.Pods {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			return nil, fmt.Errorf("%w: pods[%d] has no id", ErrInvalidSeed, i)
		}
		if seen[id] {
			return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidSeed, id)
		}
		seen[id] = true
		st, err := domain.ParseStatus(e.Status)
		if err != nil {
			return nil, fmt.Errorf("%w: pod %q: %v", ErrInvalidSeed, id, err)
		}
		if e.X < 0 || e.X > 100 || e.Y < 0 || e.Y > 100 {
			return nil, fmt.Errorf("%w: pod %q position (%v,%v) outside [0,100]", ErrInvalidSeed, id, e.X, e.Y)
		}
		out = append(out, domain.Pod{
			ID:       id,
			Name:     e.Name,
			Location: e.Location,
			Status:   st,
			Metrics: domain.Metrics{
				CO2:       e.Metrics.CO2,
				Temp:      e.Metrics.Temp,
				Humidity:  e.Metrics.Humidity,
				TVOC:      e.Metrics.TVOC,
				Noise:     e.Metrics.Noise,
				Occupancy: e.Metrics.Occupancy,
			},
			X: e.X,
			Y: e.Y,
		})
	}
	return out, nil
}
