package main

import (
	"fmt"
	"strings"

	"github.com/alnah/go-modernblog/internal/cname"
	"github.com/alnah/go-modernblog/internal/config"
	"github.com/alnah/go-modernblog/internal/hints"
)

// runCname writes the CNAME file for the configured domain.
// The optional argument overrides the default <output>/CNAME path.
func runCname(args []string, env *Environment) error {
	flags, positional, err := parseCnameFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return noArgs("cname", positional[1:])
	}

	cfg, err := loadSettings(&flags.common, env, func(c *config.Config) { mergeSiteFlags(&flags.site, c) })
	if err != nil {
		return err
	}

	path := cname.DefaultPath(cfg.Output.Dir)
	if len(positional) == 1 {
		path = positional[0]
	}

	domain := strings.TrimSpace(cfg.Site.Domain)
	if err := cname.Write(path, domain); err != nil {
		return fmt.Errorf("writing CNAME: %w%s", err, hints.ForDomain())
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Generated CNAME file: %s\n", domain)
	}
	return nil
}
