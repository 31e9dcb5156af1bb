// Package pipeline implements the Markdown-to-HTML stages of a site build.
//
// This package handles:
//   - Markdown preprocessing (line normalization, highlight syntax)
//   - Parsing Markdown into an mdast tree
//   - Markdown to HTML conversion via Goldmark, with embedded image
//     references rewritten under the site base path
//   - Extracting image references from rendered HTML
//   - Wrapping rendered posts and the post index in page templates
//
// File discovery, front matter validation and writing the output tree are
// handled by the root modernblog package and the CLI.
package pipeline
