package modernblog

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptySource = errors.New("source content cannot be empty")
	ErrInvalidPost = errors.New("invalid post")
	ErrPostRender  = errors.New("post rendering failed")
	ErrIndexRender = errors.New("index rendering failed")

	// Configuration errors.
	ErrInvalidDateFormat = errors.New("invalid date format")
	ErrStyleLoad         = errors.New("failed to load style")

	// Asset loading errors.
	ErrStyleNotFound         = errors.New("style not found")
	ErrTemplateSetNotFound   = errors.New("template set not found")
	ErrIncompleteTemplateSet = errors.New("template set missing required template")
	ErrInvalidAssetPath      = errors.New("invalid asset path")
)
