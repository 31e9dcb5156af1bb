package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"

	"github.com/alnah/go-modernblog/internal/basepath"
	"github.com/alnah/go-modernblog/internal/imagepath"
	"github.com/alnah/go-modernblog/internal/mdast"
)

// ErrHTMLConversion indicates HTML conversion failed.
var ErrHTMLConversion = errors.New("HTML conversion failed")

// HighlightStyle is the chroma style used for code block CSS.
const HighlightStyle = "github"

// HTMLConverter abstracts Markdown to HTML conversion.
type HTMLConverter interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// TreeParser abstracts Markdown parsing into an mdast tree.
type TreeParser interface {
	ParseTree(ctx context.Context, content string) (*mdast.Node, error)
}

// GoldmarkConverter converts Markdown to HTML fragments using goldmark.
// Raw HTML written by authors is kept, with image references rewritten by
// the converter's imagepath.Rewriter.
type GoldmarkConverter struct {
	md       goldmark.Markdown
	rewriter *imagepath.Rewriter
}

// NewGoldmarkConverter creates a GoldmarkConverter with GFM extensions, syntax
// highlighting and image path rewriting. A nil rewriter targets the default
// base path.
func NewGoldmarkConverter(rewriter *imagepath.Rewriter) *GoldmarkConverter {
	if rewriter == nil {
		rewriter = imagepath.New(basepath.Default)
	}
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,      // Tables, strikethrough, autolinks, task lists
			extension.Footnote, // [^1] footnotes
			highlighting.NewHighlighting(
				highlighting.WithStyle(HighlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(true), // Classes keep post HTML small; CSS ships with the site
				),
			),
			&imagePathExtension{rewriter: rewriter},
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithXHTML(),
			// Posts embed <img> tags directly, so raw HTML must be rendered.
			html.WithUnsafe(),
		),
	)
	return &GoldmarkConverter{md: md, rewriter: rewriter}
}

// Rewriter returns the image path rewriter used when rendering.
func (c *GoldmarkConverter) Rewriter() *imagepath.Rewriter {
	return c.rewriter
}

// ToHTML converts Markdown content to an HTML fragment.
// Supports context cancellation via goroutine + select pattern since
// Goldmark doesn't natively support context.
func (c *GoldmarkConverter) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := c.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: ConvertMarkPlaceholders(buf.String())}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}

// ParseTree parses Markdown content into an mdast tree and rewrites its
// image references with the converter's rewriter. The tree reflects what
// ToHTML renders for the same content.
func (c *GoldmarkConverter) ParseTree(ctx context.Context, content string) (*mdast.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source := []byte(content)
	doc := c.md.Parser().Parse(text.NewReader(source))
	tree := mdast.FromGoldmark(doc, source)
	c.rewriter.Rewrite(tree)
	return tree, nil
}

// HighlightCSS returns the stylesheet for the classes emitted on code blocks.
func HighlightCSS() (string, error) {
	var buf bytes.Buffer
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	if err := formatter.WriteCSS(&buf, styles.Get(HighlightStyle)); err != nil {
		return "", fmt.Errorf("writing highlight CSS: %w", err)
	}
	return buf.String(), nil
}
