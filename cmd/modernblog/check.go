package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	modernblog "github.com/alnah/go-modernblog"
	"github.com/alnah/go-modernblog/internal/config"
	"github.com/alnah/go-modernblog/internal/fileutil"
	"github.com/alnah/go-modernblog/internal/hints"
)

// ErrCheckFailed is returned when check finds invalid posts or missing images.
var ErrCheckFailed = errors.New("check failed")

// runCheck validates every post and reports image references whose file
// is missing from the images directory. Nothing is written.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if err := noArgs("check", positional); err != nil {
		return err
	}

	cfg, err := loadSettings(&flags.common, env, func(c *config.Config) {
		mergeSiteFlags(&flags.site, c)
		if flags.drafts {
			c.Build.Drafts = true
		}
	})
	if err != nil {
		return err
	}

	files, err := discoverPosts(cfg.Content.Dir)
	if err != nil {
		return err
	}

	builder, err := modernblog.NewBuilder(
		modernblog.WithBasePath(cfg.Site.BasePath),
		modernblog.WithDateFormat(cfg.Site.DateFormat),
		modernblog.WithLogger(newLogger(env.Stderr, flags.common.verbose)),
	)
	if err != nil {
		return err
	}

	results := buildBatch(ctx, builder, files, resolveWorkers(cfg.Build.Workers))
	if ctx.Err() != nil {
		return ctx.Err()
	}

	var problems int
	for _, r := range results {
		if r.Err != nil {
			problems++
			msg := fmt.Sprintf("INVALID %s: %v", r.InputPath, r.Err)
			if errors.Is(r.Err, modernblog.ErrInvalidPost) {
				msg += hints.ForFrontMatter()
			}
			fmt.Fprintln(env.Stderr, msg)
			continue
		}
		if !r.Page.Meta.Published && !cfg.Build.Drafts {
			continue
		}

		missing := missingImages(builder, r.Page, cfg.Content.ImagesDir)
		for _, src := range missing {
			fmt.Fprintf(env.Stderr, "MISSING %s: %s%s\n", r.InputPath, src, hints.ForMissingImage(cfg.Content.ImagesDir))
		}
		problems += len(missing)

		if flags.common.verbose && len(missing) == 0 {
			fmt.Fprintf(env.Stdout, "OK %s (%d images)\n", r.InputPath, len(r.Page.Images))
		}
	}

	if problems > 0 {
		return fmt.Errorf("%w: %d problems in %d posts", ErrCheckFailed, problems, len(results))
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "%d posts checked, no problems found\n", len(results))
	}
	return nil
}

// missingImages returns the image sources of page that point into the
// site's images directory but have no file under imagesDir.
func missingImages(builder *modernblog.Builder, page *modernblog.Page, imagesDir string) []string {
	var missing []string
	for _, src := range page.Images {
		rel, ok := builder.LocalImage(src)
		if !ok {
			continue
		}
		if !fileutil.FileExists(filepath.Join(imagesDir, filepath.FromSlash(rel))) {
			missing = append(missing, src)
		}
	}
	return missing
}
