package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/watersort/internal/games/watersort/levels"
)

func withLevelsFlag(t *testing.T, value string) {
	t.Helper()
	old := flagLevelsDir
	flagLevelsDir = value
	t.Cleanup(func() { flagLevelsDir = old })
}

func TestLevelsFlagDefaultsToHomeDir(t *testing.T) {
	f := rootCmd.PersistentFlags().Lookup("levels")
	if f == nil {
		t.Fatal("--levels flag not registered")
	}
	if f.DefValue != "~/.watersort/levels" {
		t.Errorf("--levels default = %q, expected %q", f.DefValue, "~/.watersort/levels")
	}
}

func TestLevelsDirExpandsHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		flag     string
		expected string
	}{
		{"~/.watersort/levels", filepath.Join(home, ".watersort", "levels")},
		{"/srv/levels", "/srv/levels"},
		{"", ""},
	}

	for _, tt := range tests {
		withLevelsFlag(t, tt.flag)
		if got := levelsDir(); got != tt.expected {
			t.Errorf("levelsDir() with %q = %q, expected %q", tt.flag, got, tt.expected)
		}
	}
}

func TestLevelLoadersReadHomeLevels(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	withLevelsFlag(t, "~/.watersort/levels")

	dir := filepath.Join(home, ".watersort", "levels")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	level := "id: home1\ncapacity: 2\ntubes:\n  - [red, blue]\n  - [blue, red]\n  - []\n"
	if err := os.WriteFile(filepath.Join(dir, "home1.yaml"), []byte(level), 0o644); err != nil {
		t.Fatal(err)
	}

	catalog, err := levels.Catalog(levelLoaders()...)
	if err != nil {
		t.Fatalf("Catalog() error: %v", err)
	}
	if _, err := levels.Find(catalog, "home1"); err != nil {
		t.Errorf("level from the home directory missing: %v", err)
	}
	if _, err := levels.Find(catalog, "01"); err != nil {
		t.Errorf("built-in level missing: %v", err)
	}
}

func TestLevelLoadersMissingHomeDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	withLevelsFlag(t, "~/.watersort/levels")

	catalog, err := levels.Catalog(levelLoaders()...)
	if err != nil {
		t.Fatalf("Catalog() error with missing directory: %v", err)
	}
	if len(catalog) == 0 {
		t.Error("built-in levels should still load")
	}
}
