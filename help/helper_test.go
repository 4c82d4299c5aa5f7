package help

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/ops")
	tests := map[string]string{
		"~":                 "/home/ops",
		"~/.podmon/x.yaml":  "/home/ops/.podmon/x.yaml",
		"/etc/podmon.yaml":  "/etc/podmon.yaml",
		"relative/~/config": "relative/~/config",
	}
	for in, want := range tests {
		if got := ExpandHome(in); got != want {
			t.Fatalf("ExpandHome(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestEnsureParent(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "a", "b", "podmon.log")
	if err := EnsureParent(p); err != nil {
		t.Fatalf("ensure parent: %v", err)
	}
	if st, err := os.Stat(filepath.Dir(p)); err != nil || !st.IsDir() {
		t.Fatalf("parent dir missing: %v", err)
	}
}
