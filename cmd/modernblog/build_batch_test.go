package main

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"testing"

	modernblog "github.com/alnah/go-modernblog"
	"github.com/alnah/go-modernblog/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Mock builder
// ---------------------------------------------------------------------------

// mockBuilder records calls and fails for sources containing "FAIL".
type mockBuilder struct {
	calls atomic.Int32
}

func (m *mockBuilder) Build(_ context.Context, src modernblog.Source) (*modernblog.Page, error) {
	m.calls.Add(1)
	if strings.Contains(string(src.Content), "FAIL") {
		return nil, errors.New("mock failure")
	}
	name := strings.TrimSuffix(filepath.Base(src.Path), ".md")
	return &modernblog.Page{Meta: modernblog.PostMeta{Slug: name, Published: !strings.Contains(name, "draft")}}, nil
}

// ---------------------------------------------------------------------------
// TestBuildBatch - Worker pool
// ---------------------------------------------------------------------------

func TestBuildBatch(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{
		"a.md":     "ok",
		"b.md":     "FAIL",
		"c.md":     "ok",
		"draft.md": "ok",
	})
	files := []string{
		filepath.Join(dir, "a.md"),
		filepath.Join(dir, "b.md"),
		filepath.Join(dir, "c.md"),
		filepath.Join(dir, "draft.md"),
		filepath.Join(dir, "missing.md"),
	}

	mock := &mockBuilder{}
	results := buildBatch(context.Background(), mock, files, 3)

	if len(results) != len(files) {
		t.Fatalf("got %d results, want %d", len(results), len(files))
	}
	for i, r := range results {
		if r.InputPath != files[i] {
			t.Errorf("results[%d].InputPath = %q, want %q", i, r.InputPath, files[i])
		}
	}
	if results[0].Err != nil || results[0].Page.Meta.Slug != "a" {
		t.Errorf("results[0] = %+v", results[0])
	}
	if results[1].Err == nil {
		t.Error("results[1] should fail")
	}
	if !errors.Is(results[4].Err, ErrReadPost) {
		t.Errorf("results[4].Err = %v, want ErrReadPost", results[4].Err)
	}
	if got := mock.calls.Load(); got != 4 {
		t.Errorf("Build called %d times, want 4", got)
	}

	if got := countResults(results, false); got != (ResultSummary{Succeeded: 2, Skipped: 1, Failed: 2}) {
		t.Errorf("countResults(drafts=false) = %+v", got)
	}
	if got := countResults(results, true); got != (ResultSummary{Succeeded: 3, Failed: 2}) {
		t.Errorf("countResults(drafts=true) = %+v", got)
	}
}

func TestBuildBatch_Empty(t *testing.T) {
	t.Parallel()

	if results := buildBatch(context.Background(), &mockBuilder{}, nil, 4); results != nil {
		t.Errorf("buildBatch(nil) = %v, want nil", results)
	}
}

func TestBuildBatch_Cancelled(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, map[string]string{"a.md": "ok", "b.md": "ok"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mock := &mockBuilder{}
	results := buildBatch(ctx, mock, []string{filepath.Join(dir, "a.md"), filepath.Join(dir, "b.md")}, 0)

	for i, r := range results {
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("results[%d].Err = %v, want context.Canceled", i, r.Err)
		}
	}
	if mock.calls.Load() != 0 {
		t.Error("Build called after cancellation")
	}
}

// ---------------------------------------------------------------------------
// TestResolveWorkers
// ---------------------------------------------------------------------------

func TestResolveWorkers(t *testing.T) {
	t.Parallel()

	if got := resolveWorkers(5); got != 5 {
		t.Errorf("resolveWorkers(5) = %d", got)
	}

	want := min(max(runtime.GOMAXPROCS(0), 1), config.MaxWorkers)
	if got := resolveWorkers(0); got != want {
		t.Errorf("resolveWorkers(0) = %d, want %d", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestCollectPages
// ---------------------------------------------------------------------------

func TestCollectPages(t *testing.T) {
	t.Parallel()

	page := func(slug string, published bool) *modernblog.Page {
		return &modernblog.Page{Meta: modernblog.PostMeta{Slug: slug, Published: published}}
	}

	results := []BuildResult{
		{InputPath: "a.md", Page: page("a", true)},
		{InputPath: "b.md", Err: errors.New("bad")},
		{InputPath: "c.md", Page: page("c", false)},
	}

	pages, err := collectPages(results, false)
	if err != nil || len(pages) != 1 {
		t.Errorf("collectPages(drafts=false) = %d pages, %v", len(pages), err)
	}
	pages, err = collectPages(results, true)
	if err != nil || len(pages) != 2 {
		t.Errorf("collectPages(drafts=true) = %d pages, %v", len(pages), err)
	}

	results = append(results, BuildResult{InputPath: "a2.md", Page: page("a", true)})
	if _, err := collectPages(results, false); !errors.Is(err, ErrDuplicateSlug) {
		t.Errorf("collectPages() error = %v, want ErrDuplicateSlug", err)
	}
}
