package help

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// HomeDir resolves the user's home, falling back to the working directory.
func HomeDir() string {
	if h := os.Getenv("HOME"); h != "" {
		return h
	}
	if u, err := user.Current(); err == nil && u.HomeDir != "" {
		return u.HomeDir
	}
	if h := os.Getenv("USERPROFILE"); h != "" {
		return h
	}
	return "."
}

// ExpandHome rewrites a leading "~/" (as typed in flags or YAML) to HomeDir.
func ExpandHome(p string) string {
	if p == "~" {
		return HomeDir()
	}
	if strings.HasPrefix(p, "~/") {
		return filepath.Join(HomeDir(), p[2:])
	}
	return p
}

// EnsureParent creates the directory that will hold file p.
func EnsureParent(p string) error {
	return os.MkdirAll(filepath.Dir(p), 0o755)
}
