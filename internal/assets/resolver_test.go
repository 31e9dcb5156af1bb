package assets

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// TestAssetResolver - Theme directory over built-in theme
// ---------------------------------------------------------------------------

func TestNewAssetResolver(t *testing.T) {
	t.Parallel()

	r, err := NewAssetResolver("")
	if err != nil {
		t.Fatalf("NewAssetResolver(\"\") error = %v", err)
	}
	if len(r.layers) != 1 {
		t.Errorf("layers = %d, want built-in only", len(r.layers))
	}

	if _, err := NewAssetResolver(filepath.Join(t.TempDir(), "missing")); !errors.Is(err, ErrInvalidBasePath) {
		t.Errorf("NewAssetResolver(missing) error = %v, want ErrInvalidBasePath", err)
	}
}

func TestAssetResolver_Fallback(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"styles/default.css":          "/* override */",
		"styles/print.css":            "/* print */",
		"templates/custom/post.html":  "<p>{{.Body}}</p>",
		"templates/custom/index.html": "<ol></ol>",
		"templates/half/post.html":    "<p></p>",
	})
	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}

	tests := []struct {
		name    string
		load    func() (string, error)
		want    string
		wantErr error
	}{
		{
			name: "custom style overrides built-in",
			load: func() (string, error) { return r.LoadStyle("default") },
			want: "/* override */",
		},
		{
			name: "custom only style",
			load: func() (string, error) { return r.LoadStyle("print") },
			want: "/* print */",
		},
		{
			name:    "style missing everywhere",
			load:    func() (string, error) { return r.LoadStyle("nope") },
			wantErr: ErrStyleNotFound,
		},
		{
			name:    "invalid name not fallen back",
			load:    func() (string, error) { return r.LoadStyle("../default") },
			wantErr: ErrInvalidAssetName,
		},
		{
			name: "custom template set",
			load: func() (string, error) { return postOf(r.LoadTemplateSet("custom")) },
			want: "<p>{{.Body}}</p>",
		},
		{
			name: "built-in set when directory lacks it",
			load: func() (string, error) { return postOf(r.LoadTemplateSet("default")) },
			want: "{{.Body}}",
		},
		{
			name:    "incomplete custom set not fallen back",
			load:    func() (string, error) { return postOf(r.LoadTemplateSet("half")) },
			wantErr: ErrIncompleteTemplateSet,
		},
		{
			name:    "set missing everywhere",
			load:    func() (string, error) { return postOf(r.LoadTemplateSet("nope")) },
			wantErr: ErrTemplateSetNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := tt.load()
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
			if tt.wantErr == nil && !strings.Contains(got, tt.want) {
				t.Errorf("got %q, want to contain %q", got, tt.want)
			}
		})
	}
}

func TestAssetResolver_ReadErrorNotFallenBack(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// A directory where a stylesheet is expected fails the read.
	if err := os.MkdirAll(filepath.Join(dir, "styles", "default.css"), 0o755); err != nil {
		t.Fatal(err)
	}
	r, err := NewAssetResolver(dir)
	if err != nil {
		t.Fatalf("NewAssetResolver() error = %v", err)
	}
	if _, err := r.LoadStyle("default"); !errors.Is(err, ErrAssetRead) {
		t.Errorf("LoadStyle() error = %v, want ErrAssetRead", err)
	}
}

func TestIsNotFound(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{ErrStyleNotFound, true},
		{ErrTemplateSetNotFound, true},
		{errors.Join(errors.New("ctx"), ErrStyleNotFound), true},
		{ErrIncompleteTemplateSet, false},
		{ErrInvalidAssetName, false},
		{ErrAssetRead, false},
		{ErrPathTraversal, false},
	}
	for _, tt := range tests {
		if got := isNotFound(tt.err); got != tt.want {
			t.Errorf("isNotFound(%v) = %v, want %v", tt.err, got, tt.want)
		}
	}
}

func postOf(ts *TemplateSet, err error) (string, error) {
	if err != nil {
		return "", err
	}
	return ts.Post, nil
}
