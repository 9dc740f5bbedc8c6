package cmd

import (
	"github.com/spf13/cobra"

	"github.com/baiwusanyu-c/vinspect/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize vinspect configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure vinspect for your project and generates a .vinspect.yml file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard()
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
