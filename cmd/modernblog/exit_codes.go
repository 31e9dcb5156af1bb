package main

import (
	"errors"
	"os"

	flag "github.com/spf13/pflag"

	modernblog "github.com/alnah/go-modernblog"
	"github.com/alnah/go-modernblog/internal/cname"
	"github.com/alnah/go-modernblog/internal/config"
	"github.com/alnah/go-modernblog/internal/fileutil"
)

// Exit codes for the modernblog CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful build
	ExitGeneral = 1 // General/unexpected error, failed posts
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // File not found, permission denied
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoContent) ||
		errors.Is(err, ErrReadPost) ||
		errors.Is(err, ErrWriteOutput) ||
		errors.Is(err, fileutil.ErrNotDir) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, flag.ErrHelp) ||
		errors.Is(err, ErrInvalidFlag) ||
		errors.Is(err, ErrUnexpectedArgs) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, cname.ErrEmptyDomain) ||
		errors.Is(err, cname.ErrInvalidDomain) ||
		errors.Is(err, fileutil.ErrSameSource) ||
		errors.Is(err, modernblog.ErrInvalidDateFormat) ||
		errors.Is(err, modernblog.ErrStyleNotFound) ||
		errors.Is(err, modernblog.ErrStyleLoad) ||
		errors.Is(err, modernblog.ErrTemplateSetNotFound) ||
		errors.Is(err, modernblog.ErrIncompleteTemplateSet) ||
		errors.Is(err, modernblog.ErrInvalidAssetPath) {
		return ExitUsage
	}

	return ExitGeneral
}
