package modernblog

import (
	"cmp"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/alnah/go-modernblog/internal/basepath"
	"github.com/alnah/go-modernblog/internal/content"
	"github.com/alnah/go-modernblog/internal/dateutil"
	"github.com/alnah/go-modernblog/internal/fileutil"
	"github.com/alnah/go-modernblog/internal/imagepath"
	"github.com/alnah/go-modernblog/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.MarkdownPreprocessor = (*pipeline.PostPreprocessor)(nil)
	_ pipeline.HTMLConverter        = (*pipeline.GoldmarkConverter)(nil)
	_ pipeline.TreeParser           = (*pipeline.GoldmarkConverter)(nil)
)

// StylesheetFile is the name of the site stylesheet in the output root.
const StylesheetFile = "style.css"

// Builder turns markdown posts into HTML pages for one deployment.
// Create with NewBuilder. A Builder is immutable after creation and safe
// for concurrent use by multiple goroutines.
type Builder struct {
	cfg           builderConfig
	base          basepath.BasePath
	assetLoader   AssetLoader
	preprocessor  pipeline.MarkdownPreprocessor
	converter     *pipeline.GoldmarkConverter
	renderer      *pipeline.PageRenderer
	dates         *dateutil.Layout
	stylesheet    string
	signatureHTML template.HTML
	logger        *slog.Logger
}

// NewBuilder creates a Builder with default configuration.
// Use options to customize behavior (e.g., WithBasePath, WithStyle, WithAssetPath).
// Returns error if asset loading, template parsing or the date format fails.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg: builderConfig{
			siteTitle:  defaultSiteTitle,
			styleInput: DefaultStyle,
			logger:     slog.New(slog.DiscardHandler),
		},
		preprocessor: &pipeline.PostPreprocessor{},
	}

	for _, opt := range opts {
		opt(b)
	}

	b.logger = b.cfg.logger
	b.base = basepath.Normalize(b.cfg.basePath)
	rewriter := imagepath.New(b.base, imagepath.WithLogger(b.logger))
	b.converter = pipeline.NewGoldmarkConverter(rewriter)

	dates, err := dateutil.Compile(b.cfg.dateFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDateFormat, err)
	}
	b.dates = dates

	if b.assetLoader == nil {
		loader, err := NewAssetLoader(b.cfg.assetPath)
		if err != nil {
			return nil, err
		}
		b.assetLoader = loader
	}

	if err := b.resolveStyle(); err != nil {
		return nil, err
	}

	templateSet := b.cfg.templateSet
	if templateSet == nil {
		templateSet, err = b.assetLoader.LoadTemplateSet(DefaultTemplateSet)
		if err != nil {
			return nil, fmt.Errorf("loading default template set: %w", err)
		}
	}

	renderer, err := pipeline.NewPageRenderer(templateSet.Post, templateSet.Index)
	if err != nil {
		return nil, fmt.Errorf("initializing page templates: %w", err)
	}
	b.renderer = renderer

	if b.cfg.signature != "" {
		sig, err := b.renderFragment(context.Background(), b.cfg.signature)
		if err != nil {
			return nil, fmt.Errorf("rendering signature: %w", err)
		}
		b.signatureHTML = template.HTML(sig) // #nosec G203 -- goldmark output
	}

	return b, nil
}

// BasePath returns the normalized deployment base path.
func (b *Builder) BasePath() string {
	return b.base.String()
}

// Stylesheet returns the site CSS: the configured style followed by the
// code highlighting rules.
func (b *Builder) Stylesheet() string {
	return b.stylesheet
}

// StylesheetURL returns the absolute URL path of the site stylesheet.
func (b *Builder) StylesheetURL() string {
	return b.base.Join(StylesheetFile)
}

// Build parses, validates and renders one post.
// The post's image references are rewritten under the base path in both the
// syntax tree and the rendered HTML.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (b *Builder) Build(ctx context.Context, src Source) (page *Page, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if len(strings.TrimSpace(string(src.Content))) == 0 {
		return nil, ErrEmptySource
	}

	post, body, err := content.ParsePost(src.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPost, src.Path, err)
	}

	displayDate, err := b.dates.FormatDate(post.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPost, src.Path, err)
	}

	slug := post.Slug(src.Path)
	if slug == "" {
		return nil, fmt.Errorf("%w: %s: file name yields an empty URL slug, set urlSlug in front matter",
			ErrInvalidPost, src.Path)
	}

	markdown := b.preprocessor.PreprocessMarkdown(ctx, string(body))
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	tree, err := b.converter.ParseTree(ctx, markdown)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", src.Path, err)
	}

	fragment, err := b.converter.ToHTML(ctx, markdown)
	if err != nil {
		return nil, fmt.Errorf("converting %s to HTML: %w", src.Path, err)
	}

	images, err := pipeline.ImageSources(fragment)
	if err != nil {
		return nil, fmt.Errorf("collecting images of %s: %w", src.Path, err)
	}

	meta := PostMeta{
		Title:        post.Title,
		Slug:         slug,
		Date:         post.Date,
		DisplayDate:  displayDate,
		Tags:         post.Tags,
		Published:    post.Published,
		Description:  post.Description,
		CanonicalURL: post.CanonicalURL,
	}

	doc, err := b.renderer.RenderPost(ctx, &pipeline.PostPage{
		SiteTitle:     b.cfg.siteTitle,
		Title:         meta.Title,
		Description:   meta.Description,
		Date:          meta.Date,
		DisplayDate:   meta.DisplayDate,
		Tags:          meta.Tags,
		CanonicalURL:  meta.CanonicalURL,
		Base:          b.base.String(),
		StylesheetURL: b.StylesheetURL(),
		Body:          template.HTML(fragment), // #nosec G203 -- goldmark output
		Signature:     b.signatureHTML,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPostRender, src.Path, err)
	}

	b.logger.Debug("built post",
		slog.String("path", src.Path),
		slog.String("slug", meta.Slug),
		slog.Int("images", len(images)))

	return &Page{
		Meta:     meta,
		URL:      b.base.Join(meta.Slug + "/"),
		Path:     meta.Slug + "/index.html",
		HTML:     []byte(doc),
		Fragment: fragment,
		Images:   images,
		tree:     tree,
	}, nil
}

// BuildIndex renders the post listing. Unpublished pages are left out and
// the rest are sorted by date, newest first, then by title.
func (b *Builder) BuildIndex(ctx context.Context, pages []*Page) ([]byte, error) {
	listed := make([]*Page, 0, len(pages))
	for _, p := range pages {
		if p != nil && p.Meta.Published {
			listed = append(listed, p)
		}
	}
	SortPages(listed)

	entries := make([]pipeline.IndexEntry, 0, len(listed))
	for _, p := range listed {
		entries = append(entries, pipeline.IndexEntry{
			Title:       p.Meta.Title,
			URL:         p.URL,
			Date:        p.Meta.Date,
			DisplayDate: p.Meta.DisplayDate,
			Description: p.Meta.Description,
			Tags:        p.Meta.Tags,
		})
	}

	doc, err := b.renderer.RenderIndex(ctx, &pipeline.IndexPage{
		SiteTitle:     b.cfg.siteTitle,
		Base:          b.base.String(),
		StylesheetURL: b.StylesheetURL(),
		Posts:         entries,
	})
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %v", ErrIndexRender, err)
	}
	return []byte(doc), nil
}

// SortPages orders pages newest first. Undated pages sort last; ties are
// broken by title.
func SortPages(pages []*Page) {
	slices.SortStableFunc(pages, func(a, b *Page) int {
		if c := cmp.Compare(b.Meta.Date, a.Meta.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.Meta.Title, b.Meta.Title)
	})
}

// LocalImage maps an image src found in a built page to its path relative
// to the images directory. ok is false for external or foreign-base images.
func (b *Builder) LocalImage(src string) (rel string, ok bool) {
	rel, ok = pipeline.LocalImagePath(src, b.base.String())
	rel = strings.TrimPrefix(rel, "Images/")
	if !ok || rel == "" {
		return "", false
	}
	return rel, true
}

// renderFragment converts a markdown snippet with the post pipeline.
func (b *Builder) renderFragment(ctx context.Context, markdown string) (string, error) {
	return b.converter.ToHTML(ctx, b.preprocessor.PreprocessMarkdown(ctx, markdown))
}

// resolveStyle resolves the style input (name or path) to CSS content and
// appends the highlighting rules.
// Called during NewBuilder after options are applied and the asset loader is configured.
func (b *Builder) resolveStyle() error {
	var css string
	input := b.cfg.styleInput

	switch {
	case input == "":
		// no style, highlighting rules only
	case fileutil.IsFilePath(input):
		data, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrStyleLoad, input, err)
		}
		css = string(data)
	default:
		loaded, err := b.assetLoader.LoadStyle(input)
		if err != nil {
			return fmt.Errorf("loading style %q: %w", input, err)
		}
		css = loaded
	}

	highlight, err := pipeline.HighlightCSS()
	if err != nil {
		return fmt.Errorf("%w: highlighting rules: %v", ErrStyleLoad, err)
	}

	if css == "" {
		b.stylesheet = highlight
	} else {
		b.stylesheet = css + "\n" + highlight
	}
	return nil
}
