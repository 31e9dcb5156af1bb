package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"
	"time"

	modernblog "github.com/alnah/go-modernblog"
	"github.com/alnah/go-modernblog/internal/config"
)

// Sentinel errors for batch operations.
var (
	ErrReadPost    = errors.New("failed to read post")
	ErrWriteOutput = errors.New("failed to write output")
)

// PostBuilder is the interface for the post build service.
type PostBuilder interface {
	Build(ctx context.Context, src modernblog.Source) (*modernblog.Page, error)
}

// Compile-time interface implementation check.
var _ PostBuilder = (*modernblog.Builder)(nil)

// BuildResult holds the outcome of a single post build.
type BuildResult struct {
	InputPath string
	Page      *modernblog.Page
	Err       error
	Duration  time.Duration
}

// buildBatch builds files concurrently with at most workers goroutines.
// The Builder is shared; results keep the order of files.
func buildBatch(ctx context.Context, builder PostBuilder, files []string, workers int) []BuildResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := workers
	if concurrency < 1 {
		concurrency = 1
	}
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]BuildResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = BuildResult{InputPath: files[idx], Err: ctx.Err()}
					continue
				}
				results[idx] = buildFile(ctx, builder, files[idx])
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// buildFile reads and builds a single post.
func buildFile(ctx context.Context, builder PostBuilder, path string) BuildResult {
	start := time.Now()
	result := BuildResult{InputPath: path}

	data, err := os.ReadFile(path) // #nosec G304 -- discovered path
	if err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrReadPost, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Page, result.Err = builder.Build(ctx, modernblog.Source{Path: path, Content: data})
	result.Duration = time.Since(start)
	return result
}

// ResultSummary holds the count of built, skipped and failed posts.
type ResultSummary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

// countResults tallies build outcomes. Unpublished pages count as skipped
// unless drafts are built.
func countResults(results []BuildResult, drafts bool) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		switch {
		case r.Err != nil:
			summary.Failed++
		case !r.Page.Meta.Published && !drafts:
			summary.Skipped++
		default:
			summary.Succeeded++
		}
	}
	return summary
}

// resolveWorkers determines the worker count.
// Priority: explicit setting > GOMAXPROCS (adjusted by automaxprocs for containers).
func resolveWorkers(configured int) int {
	if configured > 0 {
		return configured
	}
	n := runtime.GOMAXPROCS(0)
	if n < 1 {
		return 1
	}
	if n > config.MaxWorkers {
		return config.MaxWorkers
	}
	return n
}
