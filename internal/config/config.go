package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/baiwusanyu-c/vinspect/internal/overlay"
)

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (VINSPECT_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: VINSPECT_PORT -> port, etc.
	if err := k.Load(env.Provider("VINSPECT_", ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, "VINSPECT_"))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validVisibilities is the set of recognized toggle button visibility values.
var validVisibilities = map[Visibility]bool{
	VisibilityAlways: true,
	VisibilityActive: true,
	VisibilityNever:  true,
}

// validPositions is the set of recognized toggle button corner values.
var validPositions = map[ButtonPos]bool{
	PosTopLeft:     true,
	PosTopRight:    true,
	PosBottomLeft:  true,
	PosBottomRight: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port %d out of range", c.Port)
	}

	if c.Vue != 2 && c.Vue != 3 {
		return fmt.Errorf("invalid vue version %d: must be 2 or 3", c.Vue)
	}

	if !validVisibilities[c.ToggleButtonVisibility] {
		return fmt.Errorf("invalid toggle_button_visibility %q: must be one of always, active, never", c.ToggleButtonVisibility)
	}

	if !validPositions[c.ToggleButtonPos] {
		return fmt.Errorf("invalid toggle_button_pos %q: must be a corner like top-right", c.ToggleButtonPos)
	}

	if c.ToggleComboKey != "" && !overlay.Disabled(c.ToggleComboKey) {
		if _, err := overlay.ParseCombo(c.ToggleComboKey); err != nil {
			return fmt.Errorf("invalid toggle_combo_key: %w", err)
		}
	}

	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be non-negative")
	}

	return nil
}

// ApplyPlatformDefaults fills fields whose default depends on the host
// platform. Call once at startup with runtime.GOOS.
func (c *Config) ApplyPlatformDefaults(goos string) {
	if c.ToggleComboKey == "" {
		c.ToggleComboKey = overlay.DefaultCombo(goos)
	}
}

// ComboDisabled reports whether the configured toggle shortcut is turned
// off rather than set to a key combination.
func (c *Config) ComboDisabled() bool {
	return overlay.Disabled(c.ToggleComboKey)
}
