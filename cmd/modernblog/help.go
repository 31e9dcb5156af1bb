package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: modernblog <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build the site into the output directory")
	fmt.Fprintln(w, "  check      Validate posts and report missing images")
	fmt.Fprintln(w, "  cname      Write the CNAME file for the custom domain")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'modernblog help <command>' for details on a specific command.")
}

// printSiteFlags prints the flags shared by all site commands.
func printSiteFlags(w io.Writer) {
	fmt.Fprintln(w, "Site:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -b, --base-path <path>    Deployment base path (default /ModernBlog/)")
	fmt.Fprintln(w, "      --content <dir>       Content directory (default content)")
	fmt.Fprintln(w, "      --images <dir>        Images directory (default public/Images)")
	fmt.Fprintln(w, "  -o, --output <dir>        Output directory (default dist)")
	fmt.Fprintln(w, "      --domain <host>       Custom domain for the CNAME file")
}

// printOutputControl prints the output control flags.
func printOutputControl(w io.Writer) {
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed progress")
}

// printEnvironment prints the recognized environment variables.
func printEnvironment(w io.Writer) {
	fmt.Fprintln(w, "Environment (also read from .env):")
	fmt.Fprintln(w, "  MODERNBLOG_BASE_PATH      Deployment base path")
	fmt.Fprintln(w, "  MODERNBLOG_DOMAIN         Custom domain")
	fmt.Fprintln(w, "  MODERNBLOG_CONFIG         Config file name or path")
	fmt.Fprintln(w, "  MODERNBLOG_CONTENT_DIR    Content directory")
	fmt.Fprintln(w, "  MODERNBLOG_OUTPUT_DIR     Output directory")
	fmt.Fprintln(w, "  MODERNBLOG_WORKERS        Parallel workers")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: modernblog build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build every post under <content>/blog into <output>/<slug>/index.html,")
	fmt.Fprintln(w, "then write the index, style.css, the Images directory and CNAME.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "      --style <name|path>   CSS style name or file path")
	fmt.Fprintln(w, "      --theme <dir>         Theme directory with styles/ and templates/")
	fmt.Fprintln(w, "      --emit-ast            Write <slug>.ast.json next to each page")
	fmt.Fprintln(w, "      --drafts              Also build posts with published: false")
	fmt.Fprintln(w)
	printOutputControl(w)
	fmt.Fprintln(w)
	printEnvironment(w)
}

// printCheckUsage prints usage for the check command.
func printCheckUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: modernblog check [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Validate every post and report images missing from the images directory.")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w, "      --drafts              Also check posts with published: false")
	fmt.Fprintln(w)
	printOutputControl(w)
}

// printCnameUsage prints usage for the cname command.
func printCnameUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: modernblog cname [path] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Write the custom domain to path (default <output>/CNAME).")
	fmt.Fprintln(w)
	printSiteFlags(w)
	fmt.Fprintln(w)
	printOutputControl(w)
}

// runHelp prints help for a specific command and returns the exit code.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "check":
		printCheckUsage(env.Stdout)
	case "cname":
		printCnameUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: modernblog version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: modernblog help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
