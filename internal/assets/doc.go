// Package assets provides stylesheets and page templates for the built site.
//
// A theme is a file tree laid out as
//
//	styles/{name}.css
//	templates/{name}/post.html
//	templates/{name}/index.html
//
// The built-in theme is embedded in the binary. OpenTheme reads the same
// layout from a directory on disk. AssetResolver stacks a theme directory
// over the built-in theme, so a directory only carries the files it
// overrides.
//
// Names are restricted to letters, digits, '-' and '_'. Directory themes
// refuse files whose symlinks resolve outside the theme root.
package assets
