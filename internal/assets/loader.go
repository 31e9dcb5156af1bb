package assets

import (
	"errors"
	"fmt"
)

// AssetLoader loads stylesheets and page templates by name.
type AssetLoader interface {
	// LoadStyle returns the CSS of styles/{name}.css.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet returns the post and index templates of templates/{name}.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the page templates of a theme.
type TemplateSet struct {
	Name  string
	Post  string // Single post page template
	Index string // Post listing template
}

// Built-in asset names.
const (
	DefaultTemplateSetName = "default"
	DefaultStyleName       = "default"
)

const (
	stylesDir         = "styles"
	templatesDir      = "templates"
	postTemplateFile  = "post.html"
	indexTemplateFile = "index.html"
)

var (
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set incomplete")
	ErrInvalidAssetName      = errors.New("invalid asset name")
	ErrInvalidBasePath       = errors.New("invalid theme directory")
	ErrAssetRead             = errors.New("asset read failed")
	ErrPathTraversal         = errors.New("asset path escapes theme directory")
)

// ValidateAssetName reports whether name can be used as a style or template
// set name.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	for _, r := range name {
		if !isNameRune(r) {
			return fmt.Errorf("%w: %q contains %q", ErrInvalidAssetName, name, r)
		}
	}
	return nil
}

func isNameRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_':
		return true
	}
	return false
}

// isNotFound reports whether err means the asset is absent, as opposed to
// present but unusable.
func isNotFound(err error) bool {
	return errors.Is(err, ErrStyleNotFound) || errors.Is(err, ErrTemplateSetNotFound)
}
