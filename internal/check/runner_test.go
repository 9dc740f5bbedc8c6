package check

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/baiwusanyu-c/vinspect/internal/walker"
)

func writeFixtures(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for name, content := range files {
		full := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func walkAll(t *testing.T, root string) []walker.FileInfo {
	t.Helper()
	files, err := walker.Walk(walker.WalkerConfig{RootDir: root})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	return files
}

const goodVue = `<template>
  <div>
    <span>hi</span>
  </div>
</template>
`

const goodJSX = `export default () => (
  <div>
    <span>hi</span>
  </div>
)
`

const badJSX = `const msg = "unterminated
export default () => <div/>
`

func TestRunCompilesAll(t *testing.T) {
	root := writeFixtures(t, map[string]string{
		"App.vue":    goodVue,
		"Widget.jsx": goodJSX,
	})
	files := walkAll(t, root)

	var calls int64
	r := NewRunner(2, func(current, total int, relPath string) {
		atomic.AddInt64(&calls, 1)
		if total != 2 {
			t.Errorf("progress total = %d, want 2", total)
		}
	})
	result := r.Run(context.Background(), files)

	if result.Failures != 0 {
		t.Fatalf("Failures = %d, want 0: %+v", result.Failures, result.Files)
	}
	if result.Annotations != 4 {
		t.Errorf("Annotations = %d, want 4", result.Annotations)
	}
	if len(result.Files) != 2 {
		t.Errorf("len(Files) = %d, want 2", len(result.Files))
	}
	if n := atomic.LoadInt64(&calls); n != 2 {
		t.Errorf("progress callbacks = %d, want 2", n)
	}
}

func TestRunReportsFailures(t *testing.T) {
	root := writeFixtures(t, map[string]string{
		"App.vue": goodVue,
		"Bad.jsx": badJSX,
	})
	files := walkAll(t, root)

	result := NewRunner(4, nil).Run(context.Background(), files)

	if result.Failures != 1 {
		t.Fatalf("Failures = %d, want 1", result.Failures)
	}
	if result.Files[0].RelPath != "App.vue" || result.Files[1].RelPath != "Bad.jsx" {
		t.Fatalf("results not sorted by path: %+v", result.Files)
	}
	if err := result.Files[1].Err; err == nil {
		t.Error("Bad.jsx: want compile error")
	}
	if result.Files[0].Err != nil {
		t.Errorf("App.vue: unexpected error %v", result.Files[0].Err)
	}
	if result.Annotations != 2 {
		t.Errorf("Annotations = %d, want 2 (failed files contribute none)", result.Annotations)
	}
}

func TestRunEmptyProject(t *testing.T) {
	result := NewRunner(4, nil).Run(context.Background(), nil)
	if len(result.Files) != 0 || result.Failures != 0 || result.Annotations != 0 {
		t.Errorf("empty run produced %+v", result)
	}
}

func TestNewRunnerConcurrencyFloor(t *testing.T) {
	if r := NewRunner(0, nil); r.concurrency != 1 {
		t.Errorf("concurrency = %d, want 1", r.concurrency)
	}
}
