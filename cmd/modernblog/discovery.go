package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"github.com/alnah/go-modernblog/internal/content"
	"github.com/alnah/go-modernblog/internal/fileutil"
	"github.com/alnah/go-modernblog/internal/hints"
)

// discoverPosts returns the markdown files of the blog collection under
// contentDir, sorted by path.
func discoverPosts(contentDir string) ([]string, error) {
	dir := content.Dir(contentDir, content.CollectionBlog)
	if !fileutil.DirExists(dir) {
		return nil, fmt.Errorf("%w: %s%s", ErrNoContent, dir, hints.ForContentDir(contentDir))
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanning %s: %w", path, err)
		}
		if d.IsDir() || !content.IsMarkdown(path) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	slices.Sort(files)
	return files, nil
}

// loadSignature returns the body of the signature marked current in the
// signatures collection, or "" when there is none.
func loadSignature(contentDir string) (string, error) {
	dir := content.Dir(contentDir, content.CollectionSignatures)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("reading signatures: %w", err)
	}

	for _, e := range entries {
		if e.IsDir() || !content.IsMarkdown(e.Name()) {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path) // #nosec G304 -- discovered path
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrReadPost, err)
		}
		sig, body, err := content.ParseSignature(data)
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		if sig.Current {
			return string(body), nil
		}
	}
	return "", nil
}
