package modernblog

import (
	"log/slog"

	"github.com/alnah/go-modernblog/internal/mdast"
)

// Source is one markdown post to build.
type Source struct {
	Path    string // File path, used to derive the slug when urlSlug is unset
	Content []byte // Markdown with YAML front matter
}

// PostMeta is the validated front matter of a post.
type PostMeta struct {
	Title        string
	Slug         string
	Date         string // YYYY-MM-DD, empty when unset
	DisplayDate  string // Date formatted with the configured date format
	Tags         []string
	Published    bool
	Description  string
	CanonicalURL string
}

// Page is a built post.
type Page struct {
	Meta     PostMeta
	URL      string   // Absolute URL path, e.g. "/ModernBlog/hello/"
	Path     string   // Output path relative to the site root, e.g. "hello/index.html"
	HTML     []byte   // Complete HTML document
	Fragment string   // Rendered post body
	Images   []string // img src values found in the rendered body

	tree *mdast.Node
}

// TreeJSON returns the post's rewritten syntax tree as indented JSON.
func (p *Page) TreeJSON() ([]byte, error) {
	return mdast.MarshalIndent(p.tree)
}

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds internal configuration for Builder.
type builderConfig struct {
	basePath    string
	siteTitle   string
	dateFormat  string
	styleInput  string
	assetPath   string
	signature   string
	templateSet *TemplateSet
	logger      *slog.Logger
}

// defaultSiteTitle is used when no title is specified.
const defaultSiteTitle = "Modern Blog"

// WithBasePath sets the deployment base path, e.g. "/blog/".
// It is normalized to start and end with a single "/". An empty value
// keeps the default "/ModernBlog/".
func WithBasePath(base string) Option {
	return func(b *Builder) {
		b.cfg.basePath = base
	}
}

// WithSiteTitle sets the site title shown on every page.
func WithSiteTitle(title string) Option {
	return func(b *Builder) {
		b.cfg.siteTitle = title
	}
}

// WithDateFormat sets the display date format: a preset (iso, european,
// us, long) or a token string such as "D MMM YYYY".
func WithDateFormat(format string) Option {
	return func(b *Builder) {
		b.cfg.dateFormat = format
	}
}

// WithStyle sets the stylesheet: a style name resolved by the asset loader,
// or a path to a CSS file.
func WithStyle(style string) Option {
	return func(b *Builder) {
		b.cfg.styleInput = style
	}
}

// WithAssetPath loads styles and templates from a theme directory,
// falling back to the embedded theme for missing files.
func WithAssetPath(path string) Option {
	return func(b *Builder) {
		b.cfg.assetPath = path
	}
}

// WithAssetLoader sets a custom asset loader. It takes precedence over
// WithAssetPath.
func WithAssetLoader(loader AssetLoader) Option {
	return func(b *Builder) {
		b.assetLoader = loader
	}
}

// WithTemplateSet uses ts instead of loading the default template set.
func WithTemplateSet(ts *TemplateSet) Option {
	return func(b *Builder) {
		b.cfg.templateSet = ts
	}
}

// WithSignature appends a markdown signature to every post.
func WithSignature(markdown string) Option {
	return func(b *Builder) {
		b.cfg.signature = markdown
	}
}

// WithLogger sets the logger for debug records about image path rewrites
// and built pages. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.cfg.logger = logger
		}
	}
}
