// Package editor opens the developer's editor at an exact source location.
// It backs both the HTTP endpoint the page calls and the overlay machine's
// click handling.
package editor

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// knownEditors is the PATH probe order when nothing is configured. GUI
// editors first; terminal editors are a last resort since they need the
// server's terminal.
var knownEditors = []string{
	"code",
	"code-insiders",
	"cursor",
	"codium",
	"subl",
	"zed",
	"hx",
	"webstorm",
	"idea",
	"goland",
	"nvim",
	"vim",
	"emacs",
}

// Launcher starts editor processes. Root resolves relative file paths;
// Editor forces a command and skips detection when non-empty.
type Launcher struct {
	Root   string
	Editor string
}

func New(root, editor string) *Launcher {
	return &Launcher{Root: root, Editor: editor}
}

// Open launches the editor at file:line:column. Lines and columns below 1
// are clamped to 1. The process is started detached: the caller gets the
// spawn error, never the editor's exit status, and concurrent opens race
// freely with the last one winning the user's focus.
func (l *Launcher) Open(file string, line, column int) error {
	if !filepath.IsAbs(file) {
		file = filepath.Join(l.Root, file)
	}
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("editor: target %s: %w", file, err)
	}

	editor, err := l.pickEditor()
	if err != nil {
		return err
	}
	bin, args := launchArgs(editor, file, line, column)

	cmd := exec.Command(bin, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("editor: starting %s: %w", bin, err)
	}
	go cmd.Wait() // reap; the server never blocks on the editor

	log.Printf("editor: opened %s:%d:%d with %s", file, line, column, bin)
	return nil
}

// pickEditor resolves which editor to launch: the configured command, the
// conventional environment variables, then the first known editor on PATH.
func (l *Launcher) pickEditor() (string, error) {
	if l.Editor != "" {
		return l.Editor, nil
	}
	for _, name := range []string{"LAUNCH_EDITOR", "VISUAL", "EDITOR"} {
		if v := os.Getenv(name); v != "" {
			return v, nil
		}
	}
	for _, name := range knownEditors {
		if _, err := exec.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("editor: none configured and no known editor on PATH")
}

// launchArgs splits a configured editor command into binary and flags
// ("code --reuse-window" keeps its flag), clamps the position, and appends
// the editor-specific location arguments.
func launchArgs(editor, file string, line, column int) (string, []string) {
	if line < 1 {
		line = 1
	}
	if column < 1 {
		column = 1
	}
	parts := strings.Fields(editor)
	bin := parts[0]
	args := append([]string{}, parts[1:]...)
	return bin, append(args, positionArgs(bin, file, line, column)...)
}

// positionArgs builds the location arguments in the editor's own syntax.
// Editors not recognized here get the bare file path and still open, just
// not at the exact position.
func positionArgs(bin, file string, line, column int) []string {
	switch editorFamily(bin) {
	case "code", "code-insiders", "codium", "vscodium", "cursor":
		return []string{"--goto", fmt.Sprintf("%s:%d:%d", file, line, column)}
	case "subl", "sublime_text", "zed", "hx", "helix":
		return []string{fmt.Sprintf("%s:%d:%d", file, line, column)}
	case "webstorm", "idea", "idea64", "phpstorm", "goland", "pycharm", "clion", "rider", "rubymine":
		return []string{"--line", strconv.Itoa(line), "--column", strconv.Itoa(column), file}
	case "vim", "nvim", "gvim", "mvim":
		return []string{fmt.Sprintf("+call cursor(%d,%d)", line, column), file}
	case "emacs", "emacsclient":
		return []string{fmt.Sprintf("+%d:%d", line, column), file}
	}
	return []string{file}
}

// editorFamily normalizes a binary reference ("/usr/local/bin/code",
// "Code.cmd") to the name the argument tables key on.
func editorFamily(bin string) string {
	base := strings.ToLower(filepath.Base(bin))
	return strings.TrimSuffix(base, filepath.Ext(base))
}
