package assets

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

//go:embed styles templates
var builtinFS embed.FS

// Theme loads assets from a theme file tree.
type Theme struct {
	fsys fs.FS
	root string // on-disk root, empty for the built-in theme
}

// Builtin returns the theme embedded in the binary.
func Builtin() *Theme {
	return &Theme{fsys: builtinFS}
}

// OpenTheme returns the theme rooted at dir.
// Returns ErrInvalidBasePath if dir is not a readable directory.
func OpenTheme(dir string) (*Theme, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}
	info, err := os.Stat(root)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, root)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, root)
	}
	if _, err := os.ReadDir(root); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}
	return &Theme{fsys: os.DirFS(root), root: root}, nil
}

// LoadStyle implements AssetLoader.
func (t *Theme) LoadStyle(name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := t.read(path.Join(stylesDir, name+".css"))
	if errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("%w: %q", ErrStyleNotFound, name)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// LoadTemplateSet implements AssetLoader.
// A set with neither template is not found; a set with only one is incomplete.
func (t *Theme) LoadTemplateSet(name string) (*TemplateSet, error) {
	if err := ValidateAssetName(name); err != nil {
		return nil, err
	}
	dir := path.Join(templatesDir, name)
	post, postErr := t.read(path.Join(dir, postTemplateFile))
	index, indexErr := t.read(path.Join(dir, indexTemplateFile))

	postMissing := errors.Is(postErr, fs.ErrNotExist)
	indexMissing := errors.Is(indexErr, fs.ErrNotExist)
	switch {
	case postMissing && indexMissing:
		return nil, fmt.Errorf("%w: %q", ErrTemplateSetNotFound, name)
	case postErr != nil && !postMissing:
		return nil, postErr
	case indexErr != nil && !indexMissing:
		return nil, indexErr
	case postMissing:
		return nil, fmt.Errorf("%w: %q has no %s", ErrIncompleteTemplateSet, name, postTemplateFile)
	case indexMissing:
		return nil, fmt.Errorf("%w: %q has no %s", ErrIncompleteTemplateSet, name, indexTemplateFile)
	}
	return &TemplateSet{Name: name, Post: string(post), Index: string(index)}, nil
}

// read returns the file at the slash-separated path p.
// Absent files return an error wrapping fs.ErrNotExist.
func (t *Theme) read(p string) ([]byte, error) {
	if err := t.contain(p); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(t.fsys, p)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s: %v", ErrAssetRead, p, err)
	}
	return data, err
}

// contain rejects on-disk paths whose symlinks resolve outside the root.
func (t *Theme) contain(p string) error {
	if t.root == "" {
		return nil
	}
	resolved, err := filepath.EvalSymlinks(filepath.Join(t.root, filepath.FromSlash(p)))
	if err != nil {
		return nil // absent or unreadable, reported by the read
	}
	rel, err := filepath.Rel(t.root, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: %s", ErrPathTraversal, p)
	}
	return nil
}
