package cmd

import (
	"fmt"

	"github.com/baiwusanyu-c/vinspect/internal/config"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `vinspect init` to create a config file", err)
	}
	return cfg, nil
}
