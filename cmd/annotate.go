package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/baiwusanyu-c/vinspect/internal/compiler"
)

var annotateCmd = &cobra.Command{
	Use:   "annotate <file>",
	Short: "Print one file's instrumented output to stdout",
	Long: `Runs the location-injecting compiler over a single component file and
prints the annotated source. The file on disk is not modified.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotate,
}

func init() {
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(args[0])
	if err != nil {
		return err
	}
	kind, ok := compiler.Eligible(path, false)
	if !ok {
		return fmt.Errorf("%s: not a component source (.vue, .jsx, .tsx)", args[0])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	out, err := compiler.Compile(string(data), path, kind)
	if err != nil {
		cmd.SilenceUsage = true
		return err
	}
	fmt.Print(out)
	return nil
}
