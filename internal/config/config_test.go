package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Root != "." {
		t.Errorf("expected default root %q, got %q", ".", cfg.Root)
	}
	if cfg.Port != 5173 {
		t.Errorf("expected default port 5173, got %d", cfg.Port)
	}
	if cfg.Vue != 3 {
		t.Errorf("expected default vue version 3, got %d", cfg.Vue)
	}
	if cfg.ToggleButtonVisibility != VisibilityActive {
		t.Errorf("expected default visibility %q, got %q", VisibilityActive, cfg.ToggleButtonVisibility)
	}
	if cfg.ToggleButtonPos != PosTopRight {
		t.Errorf("expected default button pos %q, got %q", PosTopRight, cfg.ToggleButtonPos)
	}
	if cfg.MaxConcurrency != 4 {
		t.Errorf("expected default max_concurrency 4, got %d", cfg.MaxConcurrency)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.vinspect.yml")

	original := DefaultConfig()
	original.Port = 3000
	original.Vue = 2
	original.Enabled = true
	original.ToggleComboKey = "meta-shift"
	original.AppendTo = "src/main.js"
	original.Include = []string{"src/**/*.vue", "src/**/*.tsx"}

	// Save.
	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Load back.
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// Verify round-trip.
	if loaded.Port != original.Port {
		t.Errorf("port: got %d, want %d", loaded.Port, original.Port)
	}
	if loaded.Vue != original.Vue {
		t.Errorf("vue: got %d, want %d", loaded.Vue, original.Vue)
	}
	if loaded.Enabled != original.Enabled {
		t.Errorf("enabled: got %v, want %v", loaded.Enabled, original.Enabled)
	}
	if loaded.ToggleComboKey != original.ToggleComboKey {
		t.Errorf("toggle_combo_key: got %q, want %q", loaded.ToggleComboKey, original.ToggleComboKey)
	}
	if loaded.AppendTo != original.AppendTo {
		t.Errorf("append_to: got %q, want %q", loaded.AppendTo, original.AppendTo)
	}
	if len(loaded.Include) != len(original.Include) {
		t.Errorf("include length: got %d, want %d", len(loaded.Include), len(original.Include))
	}
	for i, v := range loaded.Include {
		if v != original.Include[i] {
			t.Errorf("include[%d]: got %q, want %q", i, v, original.Include[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Port != 5173 {
		t.Errorf("expected default port, got %d", cfg.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Override the port via env var.
	os.Setenv("VINSPECT_PORT", "4000")
	defer os.Unsetenv("VINSPECT_PORT")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Port != 4000 {
		t.Errorf("env override failed: got %d, want 4000", loaded.Port)
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}

	cfg.ToggleComboKey = "ctrl-alt-i"
	if err := cfg.Validate(); err != nil {
		t.Errorf("combo %q should be valid, got: %v", cfg.ToggleComboKey, err)
	}

	cfg.ToggleComboKey = "false"
	if err := cfg.Validate(); err != nil {
		t.Errorf("disabled combo should be valid, got: %v", err)
	}
}

func TestValidateInvalidVueVersion(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Vue = 4
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for vue version 4")
	}
}

func TestValidateInvalidVisibility(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ToggleButtonVisibility = "sometimes"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid visibility")
	}
}

func TestValidateInvalidButtonPos(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ToggleButtonPos = "center"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for invalid button pos")
	}
}

func TestValidateInvalidCombo(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ToggleComboKey = "hyper-x"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown modifier")
	}
}

func TestValidateInvalidPort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for port 0")
	}
}

func TestValidateNegativeConcurrency(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxConcurrency = -1
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for negative max_concurrency")
	}
}

func TestApplyPlatformDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ApplyPlatformDefaults("darwin")
	if cfg.ToggleComboKey != "meta-shift" {
		t.Errorf("darwin combo = %q, want meta-shift", cfg.ToggleComboKey)
	}

	cfg = DefaultConfig()
	cfg.ApplyPlatformDefaults("linux")
	if cfg.ToggleComboKey != "control-shift" {
		t.Errorf("linux combo = %q, want control-shift", cfg.ToggleComboKey)
	}

	// An explicit value survives.
	cfg.ToggleComboKey = "ctrl-alt-i"
	cfg.ApplyPlatformDefaults("darwin")
	if cfg.ToggleComboKey != "ctrl-alt-i" {
		t.Errorf("explicit combo overwritten: %q", cfg.ToggleComboKey)
	}
}

func TestComboDisabled(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ToggleComboKey = "off"
	if !cfg.ComboDisabled() {
		t.Error("ComboDisabled() = false for off, want true")
	}
	cfg.ToggleComboKey = "meta-shift"
	if cfg.ComboDisabled() {
		t.Error("ComboDisabled() = true for meta-shift, want false")
	}
}
