package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testEnv returns an Environment reading variables from vars only, with
// captured output.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	env := &Environment{
		Now:    func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
		Stdout: stdout,
		Stderr: stderr,
		LookupEnv: func(key string) (string, bool) {
			v, ok := vars[key]
			return v, ok
		},
		Environ: func() []string {
			var out []string
			for k, v := range vars {
				out = append(out, k+"="+v)
			}
			return out
		},
	}
	return env, stdout, stderr
}

// setupTestDir creates a temp directory with the given file structure.
// Files map paths to content. Returns the temp directory path.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	tempDir := t.TempDir()

	for path, content := range files {
		fullPath := filepath.Join(tempDir, filepath.FromSlash(path))
		if err := os.MkdirAll(filepath.Dir(fullPath), 0750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", path, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write %s: %v", path, err)
		}
	}

	return tempDir
}

// readFile returns the content of path or fails the test.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

// sampleSite is a content tree with published and unpublished posts,
// an image and a current signature.
var sampleSite = map[string]string{
	"content/blog/hello.md": "---\ntitle: Hello\ndate: \"2024-03-01\"\n---\n" +
		"<img src=\"Images/cat.png\" alt=\"cat\">\n\nAnd <img src='/Images/dog.png'>.\n",
	"content/blog/older.md":   "---\ntitle: Older\ndate: \"2023-01-01\"\n---\nOld news.\n",
	"content/blog/draft.md":   "---\ntitle: Draft\npublished: false\n---\nNot yet.\n",
	"content/signatures/a.md": "---\ncurrent: false\n---\nOld signature\n",
	"content/signatures/b.md": "---\ncurrent: true\n---\n*Thanks for reading*\n",
	"public/Images/cat.png":   "png",
	"public/Images/dog.png":   "png",
}

// siteArgs returns the flags pointing a command at a site under root.
func siteArgs(root string) []string {
	return []string{
		"--content", filepath.Join(root, "content"),
		"--images", filepath.Join(root, "public", "Images"),
		"--output", filepath.Join(root, "dist"),
	}
}
