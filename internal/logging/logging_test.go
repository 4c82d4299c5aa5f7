package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "podmon.log")
	l, closer, err := New(Options{Path: path, Level: "debug"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info().Str("pod", "3").Msg("status override")
	l.Debug().Msg("view switched")
	if err := closer.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	out := string(data)
	for _, want := range []string{`"message":"status override"`, `"pod":"3"`, `"app":"podmon"`, `"message":"view switched"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %s:\n%s", want, out)
		}
	}
}

func TestLevelFiltersLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "podmon.log")
	l, closer, err := New(Options{Path: path, Level: "warn"})
	if err != nil {
		t.Fatal(err)
	}
	l.Info().Msg("hidden")
	l.Warn().Msg("shown")
	closer.Close()
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "hidden") || !strings.Contains(string(data), "shown") {
		t.Fatalf("unexpected log contents: %s", data)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel(""); err != nil || lvl != zerolog.InfoLevel {
		t.Fatalf("empty level: %v %v", lvl, err)
	}
	if _, err := ParseLevel("chatty"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestNoOutputsIsNop(t *testing.T) {
	l, closer, err := New(Options{})
	if err != nil {
		t.Fatal(err)
	}
	defer closer.Close()
	if l.GetLevel() != zerolog.Disabled {
		t.Fatalf("expected disabled logger, got %s", l.GetLevel())
	}
}
