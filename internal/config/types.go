package config

// Visibility controls when the browser toggle button is shown.
type Visibility string

const (
	VisibilityAlways Visibility = "always"
	VisibilityActive Visibility = "active"
	VisibilityNever  Visibility = "never"
)

// ButtonPos anchors the toggle button to a viewport corner.
type ButtonPos string

const (
	PosTopLeft     ButtonPos = "top-left"
	PosTopRight    ButtonPos = "top-right"
	PosBottomLeft  ButtonPos = "bottom-left"
	PosBottomRight ButtonPos = "bottom-right"
)

// Config is the top-level vinspect configuration, corresponding to .vinspect.yml.
type Config struct {
	Root string `yaml:"root" koanf:"root"`
	Port int    `yaml:"port" koanf:"port"`
	Open bool   `yaml:"open" koanf:"open"`

	Vue                    int        `yaml:"vue" koanf:"vue"`
	Enabled                bool       `yaml:"enabled" koanf:"enabled"`
	ToggleComboKey         string     `yaml:"toggle_combo_key" koanf:"toggle_combo_key"`
	ToggleButtonVisibility Visibility `yaml:"toggle_button_visibility" koanf:"toggle_button_visibility"`
	ToggleButtonPos        ButtonPos  `yaml:"toggle_button_pos" koanf:"toggle_button_pos"`
	AppendTo               string     `yaml:"append_to" koanf:"append_to"`

	Include []string `yaml:"include" koanf:"include"`
	Exclude []string `yaml:"exclude" koanf:"exclude"`

	Editor         string `yaml:"editor" koanf:"editor"`
	MaxConcurrency int    `yaml:"max_concurrency" koanf:"max_concurrency"`
}
