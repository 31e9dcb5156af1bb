// Package yamlutil decodes the two YAML documents a site reads: the config
// file and post front matter.
package yamlutil

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"
)

// MaxDocumentSize bounds a decoded document.
const MaxDocumentSize = 1 << 20

var (
	ErrNilTarget = errors.New("yamlutil: nil decode target")
	ErrTooLarge  = errors.New("yamlutil: document too large")
	ErrMalformed = errors.New("yamlutil: malformed document")
)

// DecodeConfig decodes a config file into v. Keys that v does not declare
// are rejected so typos surface instead of silently keeping defaults.
// A blank document leaves v untouched.
func DecodeConfig(data []byte, v any) error {
	return decode(data, v, yaml.Strict())
}

// DecodeFrontMatter decodes a front matter block into v. Unknown keys are
// ignored since posts carry fields the build does not use.
// A blank block, as in "---\n---", leaves v untouched.
func DecodeFrontMatter(data []byte, v any) error {
	return decode(data, v)
}

func decode(data []byte, v any, opts ...yaml.DecodeOption) error {
	switch {
	case v == nil:
		return ErrNilTarget
	case len(data) > MaxDocumentSize:
		return fmt.Errorf("%w: %d bytes, limit %d", ErrTooLarge, len(data), MaxDocumentSize)
	case len(bytes.TrimSpace(data)) == 0:
		return nil
	}

	err := yaml.UnmarshalWithOptions(data, v, opts...)
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMalformed, yaml.FormatError(err, false, false))
}
