package pipeline

import (
	"context"
	"errors"
	"html/template"
	"strings"
	"testing"
)

const (
	testPostTmpl  = `<title>{{.Title}} | {{.SiteTitle}}</title><link href="{{.StylesheetURL}}"><p>{{join .Tags ", "}}</p>{{.Body}}`
	testIndexTmpl = `<h1>{{.SiteTitle}}</h1>{{range .Posts}}<a href="{{.URL}}">{{.Title}}</a>{{end}}`
)

func TestNewPageRenderer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		post    string
		index   string
		wantErr bool
	}{
		{"valid templates", testPostTmpl, testIndexTmpl, false},
		{"broken post template", "{{.Title", testIndexTmpl, true},
		{"broken index template", testPostTmpl, "{{range .Posts}}", true},
		{"unknown function", "{{shout .Title}}", testIndexTmpl, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewPageRenderer(tt.post, tt.index)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewPageRenderer() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRenderPost(t *testing.T) {
	t.Parallel()

	r, err := NewPageRenderer(testPostTmpl, testIndexTmpl)
	if err != nil {
		t.Fatalf("NewPageRenderer() error = %v", err)
	}

	got, err := r.RenderPost(context.Background(), &PostPage{
		SiteTitle:     "Modern Blog",
		Title:         "Cats & Dogs",
		Tags:          []string{"pets", "animals"},
		StylesheetURL: "/blog/style.css",
		Body:          template.HTML(`<img src="/blog/Images/cat.png">`),
	})
	if err != nil {
		t.Fatalf("RenderPost() error = %v", err)
	}

	for _, want := range []string{
		"<title>Cats &amp; Dogs | Modern Blog</title>",
		`href="/blog/style.css"`,
		"<p>pets, animals</p>",
		`<img src="/blog/Images/cat.png">`,
	} {
		if !strings.Contains(got, want) {
			t.Errorf("RenderPost() = %q, want to contain %q", got, want)
		}
	}
}

func TestRenderPost_Errors(t *testing.T) {
	t.Parallel()

	r, err := NewPageRenderer(testPostTmpl, testIndexTmpl)
	if err != nil {
		t.Fatalf("NewPageRenderer() error = %v", err)
	}

	t.Run("nil data", func(t *testing.T) {
		t.Parallel()
		if _, err := r.RenderPost(context.Background(), nil); !errors.Is(err, ErrPostRender) {
			t.Errorf("RenderPost(nil) error = %v, want ErrPostRender", err)
		}
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if _, err := r.RenderPost(ctx, &PostPage{}); !errors.Is(err, context.Canceled) {
			t.Errorf("RenderPost() error = %v, want context.Canceled", err)
		}
	})

	t.Run("execution failure", func(t *testing.T) {
		t.Parallel()
		bad, err := NewPageRenderer(`{{.Missing}}`, testIndexTmpl)
		if err != nil {
			t.Fatalf("NewPageRenderer() error = %v", err)
		}
		if _, err := bad.RenderPost(context.Background(), &PostPage{}); !errors.Is(err, ErrPostRender) {
			t.Errorf("RenderPost() error = %v, want ErrPostRender", err)
		}
	})
}

func TestRenderIndex(t *testing.T) {
	t.Parallel()

	r, err := NewPageRenderer(testPostTmpl, testIndexTmpl)
	if err != nil {
		t.Fatalf("NewPageRenderer() error = %v", err)
	}

	got, err := r.RenderIndex(context.Background(), &IndexPage{
		SiteTitle: "Modern Blog",
		Posts: []IndexEntry{
			{Title: "Second", URL: "/blog/second/"},
			{Title: "First", URL: "/blog/first/"},
		},
	})
	if err != nil {
		t.Fatalf("RenderIndex() error = %v", err)
	}

	want := `<h1>Modern Blog</h1><a href="/blog/second/">Second</a><a href="/blog/first/">First</a>`
	if got != want {
		t.Errorf("RenderIndex() = %q, want %q", got, want)
	}

	if _, err := r.RenderIndex(context.Background(), nil); !errors.Is(err, ErrIndexRender) {
		t.Errorf("RenderIndex(nil) error = %v, want ErrIndexRender", err)
	}
}
