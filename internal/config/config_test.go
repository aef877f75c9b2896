package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Model != "oscillator" {
		t.Errorf("expected model oscillator, got %s", cfg.Model)
	}
	if cfg.Order != 4 {
		t.Errorf("expected order 4, got %d", cfg.Order)
	}
	if cfg.Step <= 0 {
		t.Error("step should be positive")
	}
	if cfg.T1 <= cfg.T0 {
		t.Error("default span should run forward")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := &Config{
		Model: "vanderpol", Order: 3, Step: 0.05, T0: 1, T1: 9,
		Y0:     []float64{2, 0},
		Params: map[string]float64{"mu": 2.5},
	}
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Model != cfg.Model || got.Order != cfg.Order || got.Step != cfg.Step ||
		got.T0 != cfg.T0 || got.T1 != cfg.T1 {
		t.Errorf("round trip changed the run: %+v", got)
	}
	if len(got.Y0) != 2 || got.Y0[0] != 2 {
		t.Errorf("y0 lost: %v", got.Y0)
	}
	if got.Params["mu"] != 2.5 {
		t.Errorf("params lost: %v", got.Params)
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("step: 0.5\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Step != 0.5 {
		t.Errorf("step = %v, want 0.5", cfg.Step)
	}
	if cfg.Model != DefaultModel || cfg.Order != DefaultOrder {
		t.Errorf("partial file should keep defaults: %+v", cfg)
	}
}

func TestLoadRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("step: [not a number\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestValidateAcceptsDefaults(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestValidateRejectsBadRuns(t *testing.T) {
	cases := map[string]func(*Config){
		"unknown model": func(c *Config) { c.Model = "pendulum" },
		"order zero":    func(c *Config) { c.Order = 0 },
		"order five":    func(c *Config) { c.Order = 5 },
		"zero step":     func(c *Config) { c.Step = 0 },
		"nan step":      func(c *Config) { c.Step = math.NaN() },
		"inf step":      func(c *Config) { c.Step = math.Inf(1) },
		"step sign":     func(c *Config) { c.Step = -0.1 },
		"backward span": func(c *Config) { c.T0 = 10; c.T1 = 0 },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Errorf("%s: expected a validation error", name)
		}
	}
}

func TestValidateAllowsBackwardIntegration(t *testing.T) {
	cfg := DefaultConfig()
	cfg.T0, cfg.T1, cfg.Step = 10, 0, -0.5
	if err := cfg.Validate(); err != nil {
		t.Errorf("negative step over a backward span should validate: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("oscillator", "curtis118")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Step != 1.0 || cfg.T1 != 110 {
		t.Errorf("curtis118 carries step 1 over [0,110], got step %v t1 %v", cfg.Step, cfg.T1)
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("oscillator", "nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if cfg := GetPreset("nonexistent", "curtis118"); cfg != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets("oscillator")
	if len(presets) == 0 {
		t.Error("expected presets for oscillator")
	}
	for i := 1; i < len(presets); i++ {
		if presets[i-1] >= presets[i] {
			t.Errorf("presets not sorted: %v", presets)
		}
	}

	if presets := ListPresets("nonexistent"); presets != nil {
		t.Error("expected nil for nonexistent model")
	}
}

func TestGetPresetReturnsCopy(t *testing.T) {
	a := GetPreset("vanderpol", "relaxation")
	a.Params["mu"] = 99
	a.Y0[0] = 99

	b := GetPreset("vanderpol", "relaxation")
	if b.Params["mu"] != 5.0 || b.Y0[0] != 2 {
		t.Error("presets share mutable state across GetPreset calls")
	}
}
