package modernblog

import (
	"errors"

	"github.com/alnah/go-modernblog/internal/assets"
)

// Names of the built-in stylesheet and template set.
const (
	DefaultStyle       = "default"
	DefaultTemplateSet = "default"
)

// AssetLoader supplies the site stylesheet and page templates.
// NewAssetLoader covers theme directories; implement it to serve themes
// from elsewhere.
type AssetLoader interface {
	// LoadStyle returns the CSS named name. A missing style is
	// ErrStyleNotFound.
	LoadStyle(name string) (string, error)

	// LoadTemplateSet returns the post and index templates named name.
	// A missing set is ErrTemplateSetNotFound; a set lacking one of its two
	// templates is ErrIncompleteTemplateSet.
	LoadTemplateSet(name string) (*TemplateSet, error)
}

// TemplateSet holds the html/template sources of a theme.
// Post is executed with the fields of a built post and Index with the post
// listing; the built-in theme shows every field in use.
type TemplateSet struct {
	Name  string
	Post  string
	Index string
}

// NewTemplateSet bundles post and index template sources under name.
func NewTemplateSet(name, post, index string) *TemplateSet {
	return &TemplateSet{Name: name, Post: post, Index: index}
}

// NewAssetLoader returns a loader for the theme directory themeDir, laid
// out as styles/{name}.css and templates/{name}/{post,index}.html.
// Anything the directory lacks comes from the built-in theme, and an empty
// themeDir uses the built-in theme alone.
// A themeDir that is not a readable directory is ErrInvalidAssetPath.
func NewAssetLoader(themeDir string) (AssetLoader, error) {
	resolver, err := assets.NewAssetResolver(themeDir)
	if err != nil {
		return nil, publicAssetError(err)
	}
	return themeLoader{resolver}, nil
}

type themeLoader struct {
	resolver *assets.AssetResolver
}

func (l themeLoader) LoadStyle(name string) (string, error) {
	css, err := l.resolver.LoadStyle(name)
	return css, publicAssetError(err)
}

func (l themeLoader) LoadTemplateSet(name string) (*TemplateSet, error) {
	ts, err := l.resolver.LoadTemplateSet(name)
	if err != nil {
		return nil, publicAssetError(err)
	}
	return NewTemplateSet(ts.Name, ts.Post, ts.Index), nil
}

// assetSentinels pairs internal asset errors with the exported error they
// surface as. An invalid name cannot name an existing style.
var assetSentinels = []struct {
	internal, public error
}{
	{assets.ErrStyleNotFound, ErrStyleNotFound},
	{assets.ErrTemplateSetNotFound, ErrTemplateSetNotFound},
	{assets.ErrIncompleteTemplateSet, ErrIncompleteTemplateSet},
	{assets.ErrInvalidBasePath, ErrInvalidAssetPath},
	{assets.ErrPathTraversal, ErrInvalidAssetPath},
	{assets.ErrInvalidAssetName, ErrStyleNotFound},
}

// publicAssetError re-labels err with its exported sentinel. Unmapped
// errors, such as read failures, pass through.
func publicAssetError(err error) error {
	if err == nil {
		return nil
	}
	for _, s := range assetSentinels {
		if errors.Is(err, s.internal) {
			return &assetError{public: s.public, msg: err.Error()}
		}
	}
	return err
}

// assetError keeps the internal message but matches only the exported
// sentinel under errors.Is.
type assetError struct {
	public error
	msg    string
}

func (e *assetError) Error() string { return e.msg }

func (e *assetError) Unwrap() error { return e.public }
