// Package modernblog builds the pages of a static blog from markdown posts.
//
// # Quick Start
//
// Create a builder for the deployment base path and build each post:
//
//	b, err := modernblog.NewBuilder(modernblog.WithBasePath("/blog/"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	page, err := b.Build(ctx, modernblog.Source{
//	    Path:    "content/blog/hello.md",
//	    Content: data,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile(filepath.Join("dist", page.Path), page.HTML, 0644)
//
// # Build Pipeline
//
// Each post goes through these stages:
//
//  1. Front matter parsing and validation against the blog schema
//  2. Markdown preprocessing (line normalization, ==highlight== syntax)
//  3. Parsing to a syntax tree and rewriting raw <img> image paths
//  4. HTML rendering via Goldmark (GFM, footnotes, syntax highlighting)
//  5. Wrapping the fragment in the theme's post template
//
// # Image Paths
//
// Authors embed images as raw HTML using any of three forms:
//
//	<img src="Images/cat.png">              bare relative
//	<img src="/Images/cat.png">             legacy absolute
//	<img src="/ModernBlog/Images/cat.png">  default canonical
//
// All three are rewritten to <base>Images/cat.png, so pages resolve images
// under the deployment base path. Markdown image syntax, code spans and
// fenced code are never touched.
//
// # Configuration
//
// Use functional options to customize the builder:
//
//	b, err := modernblog.NewBuilder(
//	    modernblog.WithBasePath("/blog/"),
//	    modernblog.WithSiteTitle("Field Notes"),
//	    modernblog.WithDateFormat("long"),
//	    modernblog.WithAssetPath("/path/to/theme"),
//	)
//
// # Concurrency
//
// A Builder is immutable once created. Build may be called from many
// goroutines at once; each call works on its own syntax tree.
//
// # Custom Themes
//
// Override the built-in stylesheet and templates using AssetLoader:
//
//	loader, err := modernblog.NewAssetLoader("/path/to/theme")
//	b, err := modernblog.NewBuilder(modernblog.WithAssetLoader(loader))
//
// Theme directory structure:
//
//	theme/
//	├── styles/
//	│   └── custom.css
//	└── templates/
//	    └── default/
//	        ├── post.html
//	        └── index.html
package modernblog
