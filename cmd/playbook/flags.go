package main

import (
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// assetFlags holds style and template selection flags.
type assetFlags struct {
	style     string
	template  string
	assetPath string
}

// convertFlags holds all flags for the render and pdf commands.
type convertFlags struct {
	common  commonFlags
	output  string
	workers int
	timeout string
	title   string
	css     string
	page    pageFlags
	assets  assetFlags
}

// serveFlags holds all flags for the serve command.
type serveFlags struct {
	common    commonFlags
	addr      string
	source    string
	assetsDir string
	title     string
	workers   int
	timeout   string
	noPDF     bool
	logFormat string
	page      pageFlags
	assets    assetFlags
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// addAssetFlags adds style and template flags to a FlagSet.
func addAssetFlags(fs *flag.FlagSet, f *assetFlags) {
	fs.StringVar(&f.style, "style", "", "CSS style name")
	fs.StringVar(&f.template, "template", "", "template set name")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
}

// newFlagSet creates a FlagSet that reports errors instead of exiting.
func newFlagSet(name string, w io.Writer, usage func(io.Writer)) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	fs.Usage = func() { usage(w) }
	return fs
}

// parse runs fs over args and wraps failures as usage errors.
// flag.ErrHelp is returned unwrapped.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return err
		}
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

// parseConvertFlags parses render/pdf flags and returns positional args.
func parseConvertFlags(name string, args []string, w io.Writer) (*convertFlags, []string, error) {
	usage := printRenderUsage
	if name == "pdf" {
		usage = printPDFUsage
	}
	fs := newFlagSet(name, w, usage)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.title, "title", "", "document title")
	fs.StringVar(&f.css, "css", "", "extra CSS file appended to the style")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addAssetFlags(fs, &f.assets)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseServeFlags parses serve flags and returns positional args.
func parseServeFlags(args []string, w io.Writer) (*serveFlags, []string, error) {
	fs := newFlagSet("serve", w, printServeUsage)
	f := &serveFlags{}

	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default from config or PORT)")
	fs.StringVarP(&f.source, "source", "s", "", "playbook text file")
	fs.StringVar(&f.assetsDir, "assets-dir", "", "directory served under /assets/")
	fs.StringVar(&f.title, "title", "", "document title")
	fs.IntVarP(&f.workers, "workers", "w", 0, "PDF export workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.noPDF, "no-pdf", false, "disable PDF export")
	fs.StringVar(&f.logFormat, "log-format", "json", "log format: json, text")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addAssetFlags(fs, &f.assets)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// parseCommonFlags parses commands that only take common flags.
func parseCommonFlags(name string, args []string, w io.Writer, usage func(io.Writer)) (*commonFlags, []string, error) {
	fs := newFlagSet(name, w, usage)
	f := &commonFlags{}
	addCommonFlags(fs, f)

	if err := parse(fs, args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
