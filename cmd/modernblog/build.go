package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	modernblog "github.com/alnah/go-modernblog"
	"github.com/alnah/go-modernblog/internal/cname"
	"github.com/alnah/go-modernblog/internal/config"
	"github.com/alnah/go-modernblog/internal/fileutil"
	"github.com/alnah/go-modernblog/internal/hints"
)

// Sentinel errors for the build command.
var (
	ErrBuildFailed   = errors.New("build failed")
	ErrDuplicateSlug = errors.New("duplicate post slug")
)

// imagesOutputDir is the images directory name in the output root.
const imagesOutputDir = "Images"

// runBuild builds the whole site into the output directory.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := noArgs("build", positional); err != nil {
		return err
	}

	cfg, err := loadSettings(&flags.common, env, func(c *config.Config) { mergeBuildFlags(flags, c) })
	if err != nil {
		return err
	}

	start := env.Now()
	workers := resolveWorkers(cfg.Build.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Base path: %s\n", cfg.Site.BasePath)
		fmt.Fprintf(env.Stderr, "Workers: %d\n", workers)
	}

	files, err := discoverPosts(cfg.Content.Dir)
	if err != nil {
		return err
	}

	builder, err := newSiteBuilder(cfg, flags.common.verbose, env)
	if err != nil {
		return err
	}

	results := buildBatch(ctx, builder, files, workers)
	if ctx.Err() != nil {
		return ctx.Err()
	}

	pages, err := collectPages(results, cfg.Build.Drafts)
	reportResults(results, cfg.Build.Drafts, flags.common, env)
	if err != nil {
		return err
	}

	if err := writeSite(ctx, builder, pages, cfg, flags.common, env); err != nil {
		return err
	}

	summary := countResults(results, cfg.Build.Drafts)
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "\n%d built, %d skipped, %d failed in %v\n",
			summary.Succeeded, summary.Skipped, summary.Failed, env.Now().Sub(start).Round(time.Millisecond))
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%w: %d of %d posts failed", ErrBuildFailed, summary.Failed, len(results))
	}
	return nil
}

// newSiteBuilder creates the Builder for cfg.
func newSiteBuilder(cfg *config.Config, verbose bool, env *Environment) (*modernblog.Builder, error) {
	signature, err := loadSignature(cfg.Content.Dir)
	if err != nil {
		return nil, err
	}

	builder, err := modernblog.NewBuilder(
		modernblog.WithBasePath(cfg.Site.BasePath),
		modernblog.WithSiteTitle(cfg.Site.Title),
		modernblog.WithDateFormat(cfg.Site.DateFormat),
		modernblog.WithAssetPath(cfg.Assets.BasePath),
		modernblog.WithStyle(cfg.Build.Style),
		modernblog.WithSignature(signature),
		modernblog.WithLogger(newLogger(env.Stderr, verbose)),
	)
	if err != nil {
		if errors.Is(err, modernblog.ErrStyleNotFound) {
			return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound([]string{modernblog.DefaultStyle}))
		}
		return nil, err
	}
	return builder, nil
}

// collectPages returns the pages to publish: successful results, without
// unpublished posts unless drafts is set.
// Two pages with the same slug are an error.
func collectPages(results []BuildResult, drafts bool) ([]*modernblog.Page, error) {
	var pages []*modernblog.Page
	seen := make(map[string]string)
	for _, r := range results {
		if r.Err != nil || (!r.Page.Meta.Published && !drafts) {
			continue
		}
		if prev, ok := seen[r.Page.Meta.Slug]; ok {
			return nil, fmt.Errorf("%w: %q used by %s and %s", ErrDuplicateSlug, r.Page.Meta.Slug, prev, r.InputPath)
		}
		seen[r.Page.Meta.Slug] = r.InputPath
		pages = append(pages, r.Page)
	}
	return pages, nil
}

// writeSite writes pages, the index, the stylesheet, images and CNAME.
func writeSite(ctx context.Context, builder *modernblog.Builder, pages []*modernblog.Page, cfg *config.Config, common commonFlags, env *Environment) error {
	out := cfg.Output.Dir

	for _, p := range pages {
		if err := writeOutput(filepath.Join(out, filepath.FromSlash(p.Path)), p.HTML); err != nil {
			return err
		}
		if cfg.Build.EmitAST {
			tree, err := p.TreeJSON()
			if err != nil {
				return fmt.Errorf("encoding syntax tree of %s: %w", p.Meta.Slug, err)
			}
			if err := writeOutput(astPath(out, p), tree); err != nil {
				return err
			}
		}
	}

	index, err := builder.BuildIndex(ctx, pages)
	if err != nil {
		return err
	}
	if err := writeOutput(filepath.Join(out, "index.html"), index); err != nil {
		return err
	}

	if err := writeOutput(filepath.Join(out, modernblog.StylesheetFile), []byte(builder.Stylesheet())); err != nil {
		return err
	}

	if fileutil.DirExists(cfg.Content.ImagesDir) {
		n, err := fileutil.CopyDir(cfg.Content.ImagesDir, filepath.Join(out, imagesOutputDir))
		if err != nil {
			return fmt.Errorf("copying images: %w", err)
		}
		if common.verbose {
			fmt.Fprintf(env.Stderr, "Copied %d images from %s\n", n, cfg.Content.ImagesDir)
		}
	} else if common.verbose {
		fmt.Fprintf(env.Stderr, "No images directory at %s\n", cfg.Content.ImagesDir)
	}

	if domain := strings.TrimSpace(cfg.Site.Domain); domain != "" {
		if err := cname.Write(cname.DefaultPath(out), domain); err != nil {
			return fmt.Errorf("writing CNAME: %w%s", err, hints.ForDomain())
		}
		if !common.quiet {
			fmt.Fprintf(env.Stdout, "Generated CNAME file: %s\n", domain)
		}
	}

	return nil
}

// astPath returns the syntax tree dump path, next to the page.
func astPath(out string, p *modernblog.Page) string {
	return filepath.Join(out, filepath.FromSlash(p.Meta.Slug), p.Meta.Slug+".ast.json")
}

// writeOutput writes data atomically, creating parent directories.
func writeOutput(path string, data []byte) error {
	if err := fileutil.WriteFileAtomic(path, data, fileutil.FilePerm); err != nil {
		return fmt.Errorf("%w: %s: %v%s", ErrWriteOutput, path, err, hints.ForOutputDirectory())
	}
	return nil
}

// reportResults prints one line per post.
func reportResults(results []BuildResult, drafts bool, common commonFlags, env *Environment) {
	for _, r := range results {
		if r.Err != nil {
			msg := fmt.Sprintf("FAILED %s: %v", r.InputPath, r.Err)
			if errors.Is(r.Err, modernblog.ErrInvalidPost) {
				msg += hints.ForFrontMatter()
			}
			fmt.Fprintln(env.Stderr, msg)
			continue
		}
		if common.quiet {
			continue
		}
		switch {
		case !r.Page.Meta.Published && !drafts:
			fmt.Fprintf(env.Stdout, "Skipped %s (unpublished)\n", r.InputPath)
		case common.verbose:
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.InputPath, r.Page.URL, r.Duration.Round(time.Millisecond))
		default:
			fmt.Fprintf(env.Stdout, "Built %s\n", r.Page.URL)
		}
	}
}
