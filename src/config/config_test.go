package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	path := writeFile(t, "elevsim.yaml", "TickInterval: 250ms\nIdleTimeout: 3s\nSeed: 42\n")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.TickInterval != 250*time.Millisecond || c.IdleTimeout != 3*time.Second || c.Seed != 42 {
		t.Errorf("Unexpected values from file: %+v", c)
	}
	if c.ExitWindow != Default().ExitWindow || c.EntryWindow != Default().EntryWindow {
		t.Errorf("Expected missing keys to keep defaults, got %+v", c)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"bad duration", "ExitWindow: soon\n", "decode"},
		{"zero tick", "TickInterval: 0s\n", "TickInterval"},
		{"negative animation", "AnimationDuration: -1s\n", "AnimationDuration"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, "elevsim.yaml", tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
}

func TestApplyEnv(t *testing.T) {
	path := writeFile(t, ".env", "ELEVSIM_SEED=7\nELEVSIM_EXIT_WINDOW=2s\nELEVSIM_ANIMATION_DURATION=0s\n")
	c := Default()
	if err := ApplyEnv(&c, path); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if c.Seed != 7 || c.ExitWindow != 2*time.Second || c.AnimationDuration != 0 {
		t.Errorf("Unexpected overrides: %+v", c)
	}
	if c.TickInterval != Default().TickInterval {
		t.Errorf("Expected TickInterval untouched, got %v", c.TickInterval)
	}
}

func TestApplyEnvRejectsBadValues(t *testing.T) {
	for _, content := range []string{"ELEVSIM_SEED=-1\n", "ELEVSIM_TICK_INTERVAL=fast\n", "ELEVSIM_IDLE_TIMEOUT=-5s\n"} {
		c := Default()
		if err := ApplyEnv(&c, writeFile(t, ".env", content)); err == nil {
			t.Errorf("Expected error for %q", content)
		}
	}
}

func TestValidFloor(t *testing.T) {
	for floor, want := range map[int]bool{-1: false, 0: true, NumFloors - 1: true, NumFloors: false} {
		if got := ValidFloor(floor); got != want {
			t.Errorf("ValidFloor(%d) = %v, want %v", floor, got, want)
		}
	}
}
