package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-modernblog/internal/config"
)

// ErrInvalidFlag is returned for unknown flags and malformed flag values.
var ErrInvalidFlag = errors.New("invalid flag")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// siteFlags holds flags that override the site configuration.
type siteFlags struct {
	basePath string
	content  string
	images   string
	output   string
	domain   string
}

// buildFlags holds all flags for the build command.
type buildFlags struct {
	common  commonFlags
	site    siteFlags
	workers int
	style   string
	theme   string
	emitAST bool
	drafts  bool

	workersSet bool
}

// checkFlags holds all flags for the check command.
type checkFlags struct {
	common commonFlags
	site   siteFlags
	drafts bool
}

// cnameFlags holds all flags for the cname command.
type cnameFlags struct {
	common commonFlags
	site   siteFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed progress")
}

// addSiteFlags adds site override flags to a FlagSet.
func addSiteFlags(fs *flag.FlagSet, f *siteFlags) {
	fs.StringVarP(&f.basePath, "base-path", "b", "", "deployment base path (default /ModernBlog/)")
	fs.StringVar(&f.content, "content", "", "content directory")
	fs.StringVar(&f.images, "images", "", "images directory")
	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.StringVar(&f.domain, "domain", "", "custom domain for the CNAME file")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, usage func(io.Writer), w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parseBuildFlags parses build command flags and returns positional args.
func parseBuildFlags(args []string, w io.Writer) (*buildFlags, []string, error) {
	f := &buildFlags{}
	fs := newFlagSet("build", printBuildUsage, w)

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVar(&f.style, "style", "", "CSS style name or file path")
	fs.StringVar(&f.theme, "theme", "", "theme directory with styles/ and templates/")
	fs.BoolVar(&f.emitAST, "emit-ast", false, "write the syntax tree of each post as JSON")
	fs.BoolVar(&f.drafts, "drafts", false, "also build unpublished posts")

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	f.workersSet = fs.Changed("workers")

	return f, fs.Args(), nil
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string, w io.Writer) (*checkFlags, []string, error) {
	f := &checkFlags{}
	fs := newFlagSet("check", printCheckUsage, w)

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)
	fs.BoolVar(&f.drafts, "drafts", false, "also check unpublished posts")

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCnameFlags parses cname command flags and returns positional args.
func parseCnameFlags(args []string, w io.Writer) (*cnameFlags, []string, error) {
	f := &cnameFlags{}
	fs := newFlagSet("cname", printCnameUsage, w)

	addCommonFlags(fs, &f.common)
	addSiteFlags(fs, &f.site)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parse parses args, marking failures other than a help request as usage errors.
func parse(fs *flag.FlagSet, args []string) error {
	err := fs.Parse(args)
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrInvalidFlag, err)
}

// mergeSiteFlags applies explicitly set site flags to cfg.
func mergeSiteFlags(f *siteFlags, cfg *config.Config) {
	if f.basePath != "" {
		cfg.Site.BasePath = f.basePath
	}
	if f.domain != "" {
		cfg.Site.Domain = f.domain
	}
	if f.content != "" {
		cfg.Content.Dir = f.content
	}
	if f.images != "" {
		cfg.Content.ImagesDir = f.images
	}
	if f.output != "" {
		cfg.Output.Dir = f.output
	}
}

// mergeBuildFlags applies build flags to cfg. CLI wins over everything else.
func mergeBuildFlags(f *buildFlags, cfg *config.Config) {
	mergeSiteFlags(&f.site, cfg)
	if f.workersSet {
		cfg.Build.Workers = f.workers
	}
	if f.style != "" {
		cfg.Build.Style = f.style
	}
	if f.theme != "" {
		cfg.Assets.BasePath = f.theme
	}
	if f.emitAST {
		cfg.Build.EmitAST = true
	}
	if f.drafts {
		cfg.Build.Drafts = true
	}
}
