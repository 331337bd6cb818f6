package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestInitShiftboardDirCreatesLayout(t *testing.T) {
	storeDir := t.TempDir()
	if err := InitShiftboardDir(storeDir); err != nil {
		t.Fatalf("InitShiftboardDir returned error: %v", err)
	}
	for _, sub := range []string{"logs", "state", "exports"} {
		if _, err := os.Stat(filepath.Join(storeDir, ShiftboardDir, sub)); err != nil {
			t.Fatalf("expected %s directory: %v", sub, err)
		}
	}
	data, err := os.ReadFile(filepath.Join(storeDir, ShiftboardDir, "config.yaml"))
	if err != nil {
		t.Fatalf("expected seeded config.yaml: %v", err)
	}
	if !strings.Contains(string(data), "pinned_rules") {
		t.Fatalf("seeded config missing pinned_rules: %s", data)
	}
}

func TestNewDefaultsWhenMissing(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if c.Settings.Version != 1 {
		t.Fatalf("expected default version == 1, got %d", c.Settings.Version)
	}
	if c.SaveDelay() != 1200*time.Millisecond {
		t.Fatalf("unexpected save delay: %v", c.SaveDelay())
	}
	if len(c.PinnedRules()) == 0 {
		t.Fatalf("expected default pinned rules")
	}
	if c.Heuristics().OvernightStart != 20 {
		t.Fatalf("heuristics not defaulted: %+v", c.Heuristics())
	}
}

func TestNewParsesYaml(t *testing.T) {
	storeDir := t.TempDir()
	home := filepath.Join(storeDir, ShiftboardDir)
	if err := os.MkdirAll(home, 0755); err != nil {
		t.Fatal(err)
	}
	settingsYAML := strings.TrimSpace(`
version: 1
save_delay_ms: 500
pinned_rules: [42]
heuristics:
  overnight_start: 21
  early_role_keywords: [baker]
`)
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte(settingsYAML), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := New(storeDir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if c.SaveDelay() != 500*time.Millisecond {
		t.Fatalf("save delay override lost: %v", c.SaveDelay())
	}
	if len(c.PinnedRules()) != 1 || c.PinnedRules()[0] != 42 {
		t.Fatalf("pinned override lost: %v", c.PinnedRules())
	}
	h := c.Heuristics()
	if h.OvernightStart != 21 {
		t.Fatalf("heuristic override lost: %+v", h)
	}
	if h.OpenStart != 4 {
		t.Fatalf("partial heuristics should keep defaults elsewhere: %+v", h)
	}
}

func TestNewRejectsBadHours(t *testing.T) {
	storeDir := t.TempDir()
	home := filepath.Join(storeDir, ShiftboardDir)
	if err := os.MkdirAll(home, 0755); err != nil {
		t.Fatal(err)
	}
	bad := "version: 1\nheuristics:\n  close_start: 30\n  close_end: 31\n"
	if err := os.WriteFile(filepath.Join(home, "config.yaml"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := New(storeDir); err == nil {
		t.Fatalf("expected validation error but got none")
	}
}

func TestSaveRoundTrips(t *testing.T) {
	c, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	c.Settings.SaveDelayMS = 900
	if err := c.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	again, err := New(c.StoreDir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.SaveDelay() != 900*time.Millisecond {
		t.Fatalf("save delay did not round-trip: %v", again.SaveDelay())
	}
}
