// Package cname writes the CNAME file that binds a GitHub Pages
// deployment to a custom domain.
package cname

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/alnah/go-modernblog/internal/fileutil"
)

// FileName is the name GitHub Pages looks for at the site root.
const FileName = "CNAME"

// Sentinel errors for CNAME generation.
var (
	ErrEmptyDomain   = errors.New("domain cannot be empty")
	ErrInvalidDomain = errors.New("invalid domain")
)

// DefaultPath returns the CNAME location inside a build output directory.
func DefaultPath(outDir string) string {
	return filepath.Join(outDir, FileName)
}

// ValidateDomain checks that domain is a bare host name such as
// "blog.example.com". Schemes, paths, ports and whitespace are rejected.
func ValidateDomain(domain string) error {
	if err := validation.Validate(domain, validation.Required); err != nil {
		return fmt.Errorf("%w: %v", ErrEmptyDomain, err)
	}
	if strings.Contains(domain, "://") {
		return fmt.Errorf("%w: %q has a scheme, use the host name only", ErrInvalidDomain, domain)
	}
	if err := validation.Validate(domain, is.Domain); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidDomain, domain, err)
	}
	return nil
}

// Write writes domain followed by a newline to path.
func Write(path, domain string) error {
	domain = strings.TrimSpace(domain)
	if err := ValidateDomain(domain); err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(path, []byte(domain+"\n"), fileutil.FilePerm); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
