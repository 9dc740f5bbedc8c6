package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"github.com/baiwusanyu-c/vinspect/internal/overlay"
)

// detectVueVersion sniffs package.json for a Vue 2 dependency. Defaults to
// 3 when nothing conclusive is found.
func detectVueVersion(root string) int {
	data, err := os.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return 3
	}
	for _, marker := range []string{`"vue": "^2`, `"vue": "~2`, `"vue": "2`} {
		if strings.Contains(string(data), marker) {
			return 2
		}
	}
	return 3
}

// RunWizard runs an interactive configuration wizard and returns the
// resulting Config. It also saves the config to .vinspect.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to vinspect! Let's configure your project.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Project root.
	rootPrompt := promptui.Prompt{
		Label:   "Project root to serve",
		Default: ".",
	}
	root, err := rootPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("project root: %w", err)
	}
	cfg.Root = root

	detected := detectVueVersion(root)
	fmt.Printf("Detected Vue version: %d\n\n", detected)

	// 2. Vue major version.
	vuePrompt := promptui.Select{
		Label: "Vue version",
		Items: []string{"3", "2"},
	}
	if detected == 2 {
		vuePrompt.CursorPos = 1
	}
	_, vueStr, err := vuePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("vue version: %w", err)
	}
	cfg.Vue, _ = strconv.Atoi(vueStr)

	// 3. Dev server port.
	portPrompt := promptui.Prompt{
		Label:   "Dev server port",
		Default: strconv.Itoa(cfg.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("enter a port between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("port: %w", err)
	}
	cfg.Port, _ = strconv.Atoi(portStr)

	// 4. Toggle combo key.
	comboPrompt := promptui.Prompt{
		Label:   "Toggle combo key (false disables the shortcut)",
		Default: overlay.DefaultCombo(runtime.GOOS),
		Validate: func(s string) error {
			if s == "" || overlay.Disabled(s) {
				return nil
			}
			_, err := overlay.ParseCombo(s)
			return err
		},
	}
	combo, err := comboPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("combo key: %w", err)
	}
	cfg.ToggleComboKey = combo

	// 5. Toggle button visibility.
	visPrompt := promptui.Select{
		Label: "Toggle button visibility",
		Items: []string{
			"active (visible while the inspector is enabled)",
			"always (always visible)",
			"never (hidden entirely)",
		},
	}
	visIdx, _, err := visPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("button visibility: %w", err)
	}
	cfg.ToggleButtonVisibility = []Visibility{VisibilityActive, VisibilityAlways, VisibilityNever}[visIdx]

	// 6. Editor override.
	editorPrompt := promptui.Prompt{
		Label:   "Editor command (leave blank to auto-detect)",
		Default: "",
	}
	editor, err := editorPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}
	cfg.Editor = editor

	if cfg.Editor == "" && os.Getenv("LAUNCH_EDITOR") == "" && os.Getenv("VISUAL") == "" && os.Getenv("EDITOR") == "" {
		fmt.Println("\nNote: no editor configured; vinspect will pick the first known editor on PATH.")
	}

	// Save to .vinspect.yml.
	configPath := ".vinspect.yml"
	if err := cfg.Save(configPath); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", configPath)
	return cfg, nil
}
