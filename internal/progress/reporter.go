// Package progress renders check's per-file feedback: a live bar on a
// developer terminal, plain lines where CI captures the output, nothing in
// quiet mode.
package progress

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
)

// Reporter receives check's walk through the project. Start is called once
// with the file count, FileDone once per compiled file in completion order,
// Finish once at the end regardless of failures.
type Reporter interface {
	Start(total int)
	FileDone(current int, relPath string)
	Finish()
}

// New picks the reporter for the current run. Quiet wins over everything;
// CI logs get one line per file; an interactive run gets the bar.
func New(quiet bool) Reporter {
	if quiet {
		return nopReporter{}
	}
	if os.Getenv("CI") != "" || os.Getenv("GITHUB_ACTIONS") != "" {
		return &lineReporter{}
	}
	return &barReporter{}
}

type barReporter struct {
	bar *progressbar.ProgressBar
}

func (r *barReporter) Start(total int) {
	r.bar = progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Checking components"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (r *barReporter) FileDone(current int, relPath string) {
	if r.bar == nil {
		return
	}
	r.bar.Describe(relPath)
	_ = r.bar.Set(current)
}

func (r *barReporter) Finish() {
	if r.bar != nil {
		_ = r.bar.Finish()
	}
}

// lineReporter writes one line per file so CI logs stay readable; the
// summary line comes from the command itself.
type lineReporter struct {
	total int
}

func (r *lineReporter) Start(total int) {
	r.total = total
	fmt.Fprintf(os.Stderr, "Checking %d component files\n", total)
}

func (r *lineReporter) FileDone(current int, relPath string) {
	fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", current, r.total, relPath)
}

func (r *lineReporter) Finish() {}

type nopReporter struct{}

func (nopReporter) Start(int)            {}
func (nopReporter) FileDone(int, string) {}
func (nopReporter) Finish()              {}
