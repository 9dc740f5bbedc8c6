package inspector

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/baiwusanyu-c/vinspect/internal/overlay"
)

// printBanner runs once after the server starts listening, below the host's
// own address line.
func (p *Plugin) printBanner() {
	name := color.New(color.FgGreen, color.Bold).Sprint("vinspect")
	combo := p.cfg.ToggleComboKey
	if combo == "" || overlay.Disabled(combo) {
		fmt.Printf("  %s  toggle shortcut disabled; use the overlay button\n", name)
		return
	}
	keys := color.New(color.FgCyan, color.Bold).Sprint(comboLabel(combo))
	fmt.Printf("  %s  press %s in the page to toggle the inspector\n", name, keys)
}

// comboLabel renders a combo for humans: "control-shift" -> "Control+Shift".
func comboLabel(combo string) string {
	parts := strings.Split(combo, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "+")
}
