package assets

// AssetResolver stacks an optional theme directory over the built-in theme.
// Lookups fall through to the next layer only when an asset is absent;
// invalid names, incomplete sets and read failures stop the lookup.
type AssetResolver struct {
	layers []AssetLoader
}

// NewAssetResolver returns a resolver for themeDir.
// An empty themeDir resolves against the built-in theme only.
func NewAssetResolver(themeDir string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if themeDir != "" {
		theme, err := OpenTheme(themeDir)
		if err != nil {
			return nil, err
		}
		r.layers = append(r.layers, theme)
	}
	r.layers = append(r.layers, Builtin())
	return r, nil
}

// LoadStyle implements AssetLoader.
func (r *AssetResolver) LoadStyle(name string) (string, error) {
	return firstFound(r.layers, func(l AssetLoader) (string, error) {
		return l.LoadStyle(name)
	})
}

// LoadTemplateSet implements AssetLoader.
func (r *AssetResolver) LoadTemplateSet(name string) (*TemplateSet, error) {
	return firstFound(r.layers, func(l AssetLoader) (*TemplateSet, error) {
		return l.LoadTemplateSet(name)
	})
}

// firstFound returns the first layer result that is not a not-found error.
func firstFound[T any](layers []AssetLoader, load func(AssetLoader) (T, error)) (T, error) {
	var (
		v   T
		err error
	)
	for _, l := range layers {
		v, err = load(l)
		if err == nil || !isNotFound(err) {
			return v, err
		}
	}
	return v, err
}
