// Package content declares the blog's content collections and parses their
// front matter.
//
// Two collections exist under the content directory:
//
//	content/
//	├── blog/          # posts, one markdown file each
//	└── signatures/    # author signature snippets appended to posts
//
// Front matter is YAML between "---" lines. Posts are validated against
// the blog schema before they are rendered.
package content

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/alnah/go-modernblog/internal/yamlutil"
)

// Collection names, which are also the directory names under the content root.
const (
	CollectionBlog       = "blog"
	CollectionSignatures = "signatures"
)

// Sentinel errors for content parsing.
var (
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	ErrSchema             = errors.New("front matter does not match schema")
)

// yamlFormat decodes "---" delimited front matter with the project's YAML
// library instead of the frontmatter package default.
var yamlFormat = frontmatter.NewFormat("---", "---", yamlutil.DecodeFrontMatter)

// Markdown file extensions recognized in collections.
var markdownExts = map[string]bool{".md": true, ".markdown": true}

// IsMarkdown reports whether path has a markdown extension.
func IsMarkdown(path string) bool {
	return markdownExts[strings.ToLower(filepath.Ext(path))]
}

// Dir returns the directory of a collection under the content root.
func Dir(root, collection string) string {
	return filepath.Join(root, collection)
}

// splitFrontMatter decodes the front matter of src into v and returns the body.
// A document without front matter is returned whole and v is left untouched.
func splitFrontMatter(src []byte, v any) ([]byte, error) {
	body, err := frontmatter.Parse(bytes.NewReader(src), v, yamlFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}
	return body, nil
}

var slugUnsafe = regexp.MustCompile(`[^a-z0-9]+`)

// SlugFromPath derives a URL slug from a file name: lowercase, runs of
// anything but letters and digits collapsed to "-".
//
//	"posts/Hello World.md" -> "hello-world"
func SlugFromPath(path string) string {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	slug := slugUnsafe.ReplaceAllString(strings.ToLower(name), "-")
	return strings.Trim(slug, "-")
}
