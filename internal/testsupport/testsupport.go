// Package testsupport provides shared fixtures for package tests.
package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"aifm/internal/config"
)

// NewConfig produces a config pointing every path at unique temp
// directories so tests never touch the real user environment.
func NewConfig(t testing.TB) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Defaults.Author = "Test Author"
	cfg.Ledger.Path = filepath.Join(base, "ledger.db")
	return &cfg
}

// WriteFile creates path (and any parent directories) with the given
// contents and returns path for convenience.
func WriteFile(t testing.TB, path string, contents []byte) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, contents, 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
