package pipeline

// Notes:
// - ToHTML is tested on rendered output with substring checks; goldmark's
//   exact whitespace is not part of the contract.
// - The tree/HTML agreement test is the guard that the renderer hook and the
//   mdast rewrite use the same matcher.

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/alnah/go-modernblog/internal/imagepath"
	"github.com/alnah/go-modernblog/internal/mdast"
)

// ---------------------------------------------------------------------------
// TestToHTML - Rendering with image path rewriting
// ---------------------------------------------------------------------------

func TestToHTML(t *testing.T) {
	t.Parallel()

	converter := NewGoldmarkConverter(imagepath.New("/blog/"))

	tests := []struct {
		name         string
		markdown     string
		wantContains []string
		wantExcludes []string
	}{
		{
			name:         "html block bare path",
			markdown:     "Intro\n\n<img src=\"Images/cat.png\" alt=\"cat\">\n",
			wantContains: []string{`<img src="/blog/Images/cat.png" alt="cat">`},
		},
		{
			name:         "inline html legacy path",
			markdown:     "A dog <img src='/Images/dog.png'> here.\n",
			wantContains: []string{`<img src='/blog/Images/dog.png'>`},
		},
		{
			name:         "default canonical path replaced",
			markdown:     "<img src=\"/ModernBlog/Images/x.png\">\n",
			wantContains: []string{`src="/blog/Images/x.png"`},
			wantExcludes: []string{"ModernBlog"},
		},
		{
			name:         "html block spanning lines",
			markdown:     "<figure>\n  <img src=\"Images/a.png?v=2\">\n  <figcaption>A</figcaption>\n</figure>\n",
			wantContains: []string{`<img src="/blog/Images/a.png?v=2">`, "<figcaption>A</figcaption>"},
		},
		{
			name:         "markdown image syntax left alone",
			markdown:     "![alt](Images/a.png)\n",
			wantContains: []string{`src="Images/a.png"`},
		},
		{
			name:         "code span not rewritten",
			markdown:     "Use `<img src=\"Images/a.png\">` in posts.\n",
			wantExcludes: []string{"/blog/Images/a.png"},
		},
		{
			name:         "fenced code not rewritten",
			markdown:     "```html\n<img src=\"Images/a.png\">\n```\n",
			wantExcludes: []string{"/blog/Images/a.png"},
		},
		{
			name:         "non image html untouched",
			markdown:     "Some <b>bold</b> text.\n",
			wantContains: []string{"<b>bold</b>"},
		},
		{
			name:         "highlight converted",
			markdown:     "This is ==important== text.\n",
			wantContains: []string{"important"},
		},
		{
			name:         "heading ids generated",
			markdown:     "## Hello World\n",
			wantContains: []string{`id="hello-world"`},
		},
		{
			name:         "gfm table rendered",
			markdown:     "| a | b |\n|---|---|\n| 1 | 2 |\n",
			wantContains: []string{"<table>", "<td>1</td>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := converter.ToHTML(context.Background(), tt.markdown)
			if err != nil {
				t.Fatalf("ToHTML() error = %v", err)
			}

			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("ToHTML() = %q, want to contain %q", got, want)
				}
			}
			for _, exclude := range tt.wantExcludes {
				if strings.Contains(got, exclude) {
					t.Errorf("ToHTML() = %q, should not contain %q", got, exclude)
				}
			}
		})
	}
}

func TestToHTML_DefaultRewriter(t *testing.T) {
	t.Parallel()

	converter := NewGoldmarkConverter(nil)
	got, err := converter.ToHTML(context.Background(), "<img src=\"Images/a.png\">\n")
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if !strings.Contains(got, `src="/ModernBlog/Images/a.png"`) {
		t.Errorf("ToHTML() = %q, want default base path", got)
	}
	if converter.Rewriter().Base() != "/ModernBlog/" {
		t.Errorf("Rewriter().Base() = %q", converter.Rewriter().Base())
	}
}

func TestToHTML_Idempotent(t *testing.T) {
	t.Parallel()

	converter := NewGoldmarkConverter(imagepath.New("/blog/"))
	ctx := context.Background()

	first, err := converter.ToHTML(ctx, "<img src=\"Images/a.png\">\n")
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	second, err := converter.ToHTML(ctx, first)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}
	if first != second {
		t.Errorf("rendering rendered output changed it:\nfirst:  %q\nsecond: %q", first, second)
	}
}

func TestToHTML_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewGoldmarkConverter(nil).ToHTML(ctx, "# Title")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ToHTML() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestParseTree - mdast tree with rewritten raw nodes
// ---------------------------------------------------------------------------

func TestParseTree(t *testing.T) {
	t.Parallel()

	converter := NewGoldmarkConverter(imagepath.New("/custom/"))
	tree, err := converter.ParseTree(context.Background(),
		"# Title\n\n<img src='/Images/dog.png'>\n\nText <img src=\"Images/cat.png\"> inline.\n")
	if err != nil {
		t.Fatalf("ParseTree() error = %v", err)
	}

	var raw []string
	mdast.Walk(tree, func(n *mdast.Node) {
		if n.IsRaw() {
			raw = append(raw, n.Value)
		}
	})

	want := []string{
		"<img src='/custom/Images/dog.png'>",
		`<img src="/custom/Images/cat.png">`,
	}
	if len(raw) != len(want) {
		t.Fatalf("raw nodes = %q, want %q", raw, want)
	}
	for i := range want {
		if raw[i] != want[i] {
			t.Errorf("raw[%d] = %q, want %q", i, raw[i], want[i])
		}
	}
}

func TestParseTree_AgreesWithHTML(t *testing.T) {
	t.Parallel()

	converter := NewGoldmarkConverter(imagepath.New("/blog/"))
	ctx := context.Background()
	markdown := strings.Join([]string{
		"# Post",
		"",
		"<div class=\"gallery\">",
		"<img src=\"Images/a.png\">",
		"<img src='/Images/b.png'>",
		"</div>",
		"",
		"Inline <img src=\"/ModernBlog/Images/c.png?v=3\"> image.",
		"",
	}, "\n")

	tree, err := converter.ParseTree(ctx, markdown)
	if err != nil {
		t.Fatalf("ParseTree() error = %v", err)
	}
	html, err := converter.ToHTML(ctx, markdown)
	if err != nil {
		t.Fatalf("ToHTML() error = %v", err)
	}

	mdast.Walk(tree, func(n *mdast.Node) {
		if n.IsRaw() && !strings.Contains(html, n.Value) {
			t.Errorf("rendered HTML missing rewritten raw node %q:\n%s", n.Value, html)
		}
	})
}

func TestParseTree_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := NewGoldmarkConverter(nil).ParseTree(ctx, "# Title"); !errors.Is(err, context.Canceled) {
		t.Errorf("ParseTree() error = %v, want context.Canceled", err)
	}
}

// ---------------------------------------------------------------------------
// TestHighlightCSS
// ---------------------------------------------------------------------------

func TestHighlightCSS(t *testing.T) {
	t.Parallel()

	css, err := HighlightCSS()
	if err != nil {
		t.Fatalf("HighlightCSS() error = %v", err)
	}
	if !strings.Contains(css, ".chroma") {
		t.Errorf("HighlightCSS() missing .chroma rules:\n%s", css)
	}
}
