package config

// DefaultIncludes are the component source patterns scanned by check.
var DefaultIncludes = []string{
	"**/*.vue",
	"**/*.jsx",
	"**/*.tsx",
}

// DefaultExcludes are glob patterns never scanned for component files.
var DefaultExcludes = []string{
	"node_modules/**",
	"dist/**",
	"build/**",
	".git/**",
	"coverage/**",
	"public/**",
}

// DefaultConfig returns a Config with sensible defaults. The combo key is
// left empty here because its default depends on the host platform; see
// ApplyPlatformDefaults.
func DefaultConfig() *Config {
	return &Config{
		Root:                   ".",
		Port:                   5173,
		Open:                   false,
		Vue:                    3,
		Enabled:                false,
		ToggleComboKey:         "",
		ToggleButtonVisibility: VisibilityActive,
		ToggleButtonPos:        PosTopRight,
		Include:                DefaultIncludes,
		Exclude:                DefaultExcludes,
		MaxConcurrency:         4,
	}
}
