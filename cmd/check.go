package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/baiwusanyu-c/vinspect/internal/check"
	"github.com/baiwusanyu-c/vinspect/internal/progress"
	"github.com/baiwusanyu-c/vinspect/internal/walker"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Compile-check every component file with instrumentation",
	Long: `Walks the project, runs the location-injecting compiler over every
component source, and reports files the transform cannot handle. Exits
non-zero when any file fails.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().Int("concurrency", 0, "override the configured max_concurrency")
	checkCmd.Flags().BoolP("quiet", "q", false, "suppress per-file progress output")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: cfg.Root,
		Include: cfg.Include,
		Exclude: cfg.Exclude,
	})
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Println("No component files found.")
		return nil
	}

	concurrency := cfg.MaxConcurrency
	if c, _ := cmd.Flags().GetInt("concurrency"); c > 0 {
		concurrency = c
	}

	quiet, _ := cmd.Flags().GetBool("quiet")
	reporter := progress.New(quiet)
	reporter.Start(len(files))
	runner := check.NewRunner(concurrency, func(current, total int, relPath string) {
		reporter.FileDone(current, relPath)
	})
	result := runner.Run(cmd.Context(), files)
	reporter.Finish()

	for _, fr := range result.Files {
		if fr.Err != nil {
			fmt.Fprintf(os.Stderr, "  %s: %v\n", fr.RelPath, fr.Err)
		} else if verbose {
			fmt.Printf("  %s: %d elements\n", fr.RelPath, fr.Annotations)
		}
	}
	fmt.Printf("Checked %d files: %d elements annotated, %d failures\n",
		len(result.Files), result.Annotations, result.Failures)

	if result.Failures > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%d of %d files failed", result.Failures, len(result.Files))
	}
	return nil
}
