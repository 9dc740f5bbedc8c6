package cmd

import (
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "vinspect",
	Short: "Click-to-source inspector dev server for Vue-style projects",
	Long: `vinspect serves a component project with an inspector overlay: click
any rendered element in the browser and your editor opens at the exact
file, line, and column that produced it. Component sources are annotated
on the fly; nothing on disk is modified.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", ".vinspect.yml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
