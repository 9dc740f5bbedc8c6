package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/baiwusanyu-c/vinspect/internal/devserver"
	"github.com/baiwusanyu-c/vinspect/internal/editor"
	"github.com/baiwusanyu-c/vinspect/internal/inspector"
	"github.com/baiwusanyu-c/vinspect/internal/overlay"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dev server with the inspector enabled",
	Long: `Serves the project root with the inspector overlay injected into every
page. Component sources are annotated with their origin on the fly;
clicking an element in the browser opens your editor at its source.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "override the configured port")
	serveCmd.Flags().String("root", "", "override the configured project root")
	serveCmd.Flags().Bool("open", false, "open the browser once the server is ready")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if port, _ := cmd.Flags().GetInt("port"); port > 0 {
		cfg.Port = port
	}
	if root, _ := cmd.Flags().GetString("root"); root != "" {
		cfg.Root = root
	}
	if open, _ := cmd.Flags().GetBool("open"); open {
		cfg.Open = true
	}

	cfg.ApplyPlatformDefaults(runtime.GOOS)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("resolving root: %w", err)
	}

	var combo *overlay.Combo
	if !cfg.ComboDisabled() {
		c, err := overlay.ParseCombo(cfg.ToggleComboKey)
		if err != nil {
			return fmt.Errorf("invalid toggle_combo_key: %w", err)
		}
		combo = &c
	}

	launcher := editor.New(root, cfg.Editor)
	hub := overlay.NewHub(overlay.Options{
		EnabledByDefault: cfg.Enabled,
		Combo:            combo,
	}, func(file string, line, column int) {
		if err := launcher.Open(file, line, column); err != nil {
			log.Printf("serve: opening editor: %v", err)
		}
	})

	plugin := inspector.New(cfg, launcher, hub)
	srv, err := devserver.New(devserver.Config{Root: root, Port: cfg.Port}, plugin)
	if err != nil {
		return err
	}

	// File changes recompile on the next request and reload open pages.
	watcher, err := devserver.NewWatcher(root, func(path string) {
		srv.Invalidate(path)
		hub.BroadcastReload()
	})
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer watcher.Close()

	if cfg.Open {
		srv.OnReady(func() { go openBrowser(srv.URL()) })
	}

	// Graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		fmt.Fprintln(os.Stderr, "\nShutting down...")
		srv.Shutdown(context.Background())
	}()

	cmd.SilenceUsage = true
	return srv.Start()
}

// openBrowser opens the given URL in the default browser.
func openBrowser(url string) {
	var c *exec.Cmd
	switch runtime.GOOS {
	case "windows":
		c = exec.Command("cmd", "/c", "start", url)
	case "darwin":
		c = exec.Command("open", url)
	default:
		c = exec.Command("xdg-open", url)
	}
	_ = c.Start()
}
