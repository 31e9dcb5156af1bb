package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// Sentinel errors for template rendering.
var (
	ErrPostRender  = errors.New("post template rendering failed")
	ErrIndexRender = errors.New("index template rendering failed")
)

// PostPage holds the data rendered by the post template.
type PostPage struct {
	SiteTitle     string
	Title         string
	Description   string
	Date          string // YYYY-MM-DD, for <time datetime>
	DisplayDate   string // Date formatted for readers
	Tags          []string
	CanonicalURL  string
	Base          string // Site base path, ends with "/"
	StylesheetURL string
	Body          template.HTML // Rendered post fragment
	Signature     template.HTML // Rendered author signature, may be empty
}

// IndexEntry is one post listed on the index page.
type IndexEntry struct {
	Title       string
	URL         string
	Date        string
	DisplayDate string
	Description string
	Tags        []string
}

// IndexPage holds the data rendered by the index template.
type IndexPage struct {
	SiteTitle     string
	Base          string
	StylesheetURL string
	Posts         []IndexEntry
}

// PageRenderer wraps rendered posts and the post index in HTML documents.
type PageRenderer struct {
	post  *template.Template
	index *template.Template
}

// templateFuncs are available to page templates.
var templateFuncs = template.FuncMap{
	"join": strings.Join,
}

// NewPageRenderer parses the post and index template sources.
// Returns error if either template cannot be parsed.
func NewPageRenderer(postTmpl, indexTmpl string) (*PageRenderer, error) {
	post, err := template.New("post").Funcs(templateFuncs).Parse(postTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing post template: %w", err)
	}
	index, err := template.New("index").Funcs(templateFuncs).Parse(indexTmpl)
	if err != nil {
		return nil, fmt.Errorf("parsing index template: %w", err)
	}
	return &PageRenderer{post: post, index: index}, nil
}

// RenderPost renders a complete post document.
func (p *PageRenderer) RenderPost(ctx context.Context, data *PostPage) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if data == nil {
		return "", fmt.Errorf("%w: nil page data", ErrPostRender)
	}

	var buf bytes.Buffer
	if err := p.post.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrPostRender, err)
	}
	return buf.String(), nil
}

// RenderIndex renders the post listing document.
func (p *PageRenderer) RenderIndex(ctx context.Context, data *IndexPage) (string, error) {
	if ctx.Err() != nil {
		return "", ctx.Err()
	}
	if data == nil {
		return "", fmt.Errorf("%w: nil page data", ErrIndexRender)
	}

	var buf bytes.Buffer
	if err := p.index.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrIndexRender, err)
	}
	return buf.String(), nil
}
