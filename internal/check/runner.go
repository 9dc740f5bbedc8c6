// Package check compiles every component source in a project and reports
// which files the location-injecting transform cannot handle.
package check

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/baiwusanyu-c/vinspect/internal/compiler"
	"github.com/baiwusanyu-c/vinspect/internal/walker"
)

// ProgressFunc receives completion updates during a run.
type ProgressFunc func(current, total int, relPath string)

// Runner compiles files concurrently with configurable parallelism.
type Runner struct {
	concurrency int
	onProgress  ProgressFunc
}

// NewRunner creates a Runner with the given concurrency limit.
func NewRunner(concurrency int, onProgress ProgressFunc) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		concurrency: concurrency,
		onProgress:  onProgress,
	}
}

// FileResult is the outcome of compiling one file.
type FileResult struct {
	RelPath     string
	Kind        compiler.Kind
	Annotations int
	Err         error
}

// Result aggregates a whole run.
type Result struct {
	Files       []FileResult
	Annotations int
	Failures    int
}

// Run compiles every file and collects per-file outcomes. Files are
// processed concurrently; results come back sorted by relative path.
func (r *Runner) Run(ctx context.Context, files []walker.FileInfo) *Result {
	total := len(files)
	result := &Result{}
	if total == 0 {
		return result
	}

	sem := make(chan struct{}, r.concurrency)
	var mu sync.Mutex
	var processed int64

	var wg sync.WaitGroup
	for _, file := range files {
		select {
		case <-ctx.Done():
			mu.Lock()
			result.Files = append(result.Files, FileResult{
				RelPath: file.RelPath,
				Kind:    file.Kind,
				Err:     ctx.Err(),
			})
			mu.Unlock()
			count := atomic.AddInt64(&processed, 1)
			if r.onProgress != nil {
				r.onProgress(int(count), total, file.RelPath)
			}
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(f walker.FileInfo) {
			defer wg.Done()
			defer func() { <-sem }()

			fr := FileResult{RelPath: f.RelPath, Kind: f.Kind}
			content, err := os.ReadFile(f.Path)
			if err != nil {
				fr.Err = fmt.Errorf("read %s: %w", f.RelPath, err)
			} else {
				out, err := compiler.Compile(string(content), f.Path, f.Kind)
				if err != nil {
					fr.Err = err
				} else {
					fr.Annotations = compiler.CountAnnotations(out)
				}
			}

			mu.Lock()
			result.Files = append(result.Files, fr)
			mu.Unlock()

			count := atomic.AddInt64(&processed, 1)
			if r.onProgress != nil {
				r.onProgress(int(count), total, f.RelPath)
			}
		}(file)
	}

	wg.Wait()

	sort.Slice(result.Files, func(i, j int) bool {
		return result.Files[i].RelPath < result.Files[j].RelPath
	})
	for _, fr := range result.Files {
		if fr.Err != nil {
			result.Failures++
			continue
		}
		result.Annotations += fr.Annotations
	}
	return result
}
