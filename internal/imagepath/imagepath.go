// Package imagepath rewrites image references embedded as raw HTML in
// Markdown documents so they resolve under the site base path.
//
// Authors reference images in three ways:
//
//	<img src="Images/cat.png">              bare relative
//	<img src="/Images/cat.png">             legacy absolute
//	<img src="/ModernBlog/Images/cat.png">  default canonical
//
// All three become "<base>Images/cat.png". A reference that already carries
// the configured base is left as is, so rewriting is idempotent.
package imagepath

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/alnah/go-modernblog/internal/basepath"
	"github.com/alnah/go-modernblog/internal/mdast"
)

// imagesDir is the directory segment every recognized reference contains.
const imagesDir = "Images/"

// Submatch indexes in the compiled pattern.
const (
	groupLead   = 1 // start of content or whitespace before src
	groupDouble = 2 // rest of a double-quoted value
	groupSingle = 3 // rest of a single-quoted value
)

// Rewriter rewrites image src attributes for a fixed base path.
// A Rewriter is immutable after New and safe for concurrent use.
type Rewriter struct {
	base    basepath.BasePath
	pattern *regexp.Regexp
	logger  *slog.Logger
}

// Option configures a Rewriter.
type Option func(*Rewriter)

// WithLogger attaches a logger receiving one debug record per changed node.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Rewriter) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a Rewriter targeting base. The base is normalized, so a value
// missing its trailing slash is still safe to pass.
func New(base basepath.BasePath, opts ...Option) *Rewriter {
	b := basepath.Normalize(string(base))
	r := &Rewriter{
		base:    b,
		pattern: compilePattern(b),
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// compilePattern builds the src matcher for base.
// RE2 has no backreferences, so each quote style is its own alternative.
// The value may not contain '<' or '>', so an unclosed quote never swallows
// the next tag.
func compilePattern(base basepath.BasePath) *regexp.Regexp {
	prefixes := []string{regexp.QuoteMeta(string(basepath.Default))}
	if base != basepath.Default && base != "/" {
		prefixes = append(prefixes, regexp.QuoteMeta(string(base)))
	}
	prefixes = append(prefixes, "/")

	prefix := "(?:" + strings.Join(prefixes, "|") + ")?"
	dir := regexp.QuoteMeta(imagesDir)

	return regexp.MustCompile(
		`(^|\s)src=(?:"` + prefix + dir + `([^"<>]+)"|'` + prefix + dir + `([^'<>]+)')`,
	)
}

// Base returns the normalized base path.
func (r *Rewriter) Base() basepath.BasePath {
	return r.base
}

// RewriteMarkup returns s with every recognized image src rewritten.
// Text that does not match is returned byte for byte.
func (r *Rewriter) RewriteMarkup(s string) string {
	out, _ := r.rewrite(s)
	return out
}

// rewrite returns the rewritten markup and the number of references that
// changed value.
func (r *Rewriter) rewrite(s string) (string, int) {
	if s == "" || !strings.Contains(s, imagesDir) {
		return s, 0
	}

	changed := 0
	out := r.pattern.ReplaceAllStringFunc(s, func(match string) string {
		m := r.pattern.FindStringSubmatch(match)
		if m == nil {
			return match
		}

		quote, rest := `"`, m[groupDouble]
		if rest == "" {
			quote, rest = "'", m[groupSingle]
		}

		replaced := m[groupLead] + "src=" + quote + string(r.base) + imagesDir + rest + quote
		if replaced != match {
			changed++
		}
		return replaced
	})
	return out, changed
}

// Rewrite walks the tree rooted at root and rewrites the value of every raw
// markup node in place. Tree shape and node kinds are never changed.
func (r *Rewriter) Rewrite(root *mdast.Node) {
	mdast.Walk(root, func(n *mdast.Node) {
		if !n.IsRaw() || n.Value == "" {
			return
		}
		out, changed := r.rewrite(n.Value)
		if changed == 0 {
			return
		}
		r.logger.Debug("rewrote image paths",
			"base", string(r.base),
			"references", changed,
			"before", n.Value,
			"after", out,
		)
		n.Value = out
	})
}

// Rewrite is a convenience wrapper for New(base).Rewrite(root).
func Rewrite(root *mdast.Node, base basepath.BasePath) {
	New(base).Rewrite(root)
}
