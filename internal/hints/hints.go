// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-modernblog/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	// Find a user config path (contains .config/go-modernblog) to suggest
	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), ".config/go-modernblog") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForStyleNotFound returns hints for style not found errors.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForDomain returns hints for a missing or malformed CNAME domain.
func ForDomain() string {
	return formatHints([]string{
		"set site.domain in the config file or MODERNBLOG_DOMAIN",
		"use a bare host name such as blog.example.com",
	})
}

// ForContentDir returns hints when the blog collection cannot be found.
func ForContentDir(dir string) string {
	return format("create " + filepath.Join(dir, "blog") + " or use --content")
}

// ForFrontMatter returns hints for posts rejected by the content schema.
func ForFrontMatter() string {
	return format("posts start with a --- block holding at least \"title:\"; dates use YYYY-MM-DD")
}

// ForMissingImage returns hints for image references without a file.
func ForMissingImage(imagesDir string) string {
	return format("place the file under " + imagesDir + " and reference it as Images/<name>")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
