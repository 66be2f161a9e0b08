package main

import (
	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// numberingFlags holds shuffle and numbering flags.
type numberingFlags struct {
	seed   uint64
	stable bool
	first  int
}

// renderFlags holds HTML and PDF rendering flags.
type renderFlags struct {
	title     string
	style     string
	assetPath string
	pageSize  string
	timeout   string
}

// logFlags holds run log flags.
type logFlags struct {
	file  string
	level string
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common    commonFlags
	output    string
	format    string
	workers   int
	numbering numberingFlags
	render    renderFlags
	log       logFlags

	// changed records which flags were set on the command line, so zero
	// values such as --seed 0 or --first 0 still override the config.
	changed func(name string) bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show seeds and timing")
}

// addNumberingFlags adds shuffle and numbering flags to a FlagSet.
func addNumberingFlags(fs *flag.FlagSet, f *numberingFlags) {
	fs.Uint64Var(&f.seed, "seed", 0, "shuffle seed, for reproducible numbering")
	fs.BoolVar(&f.stable, "stable", false, "derive the seed from the manuscript content")
	fs.IntVar(&f.first, "first", 1, "number of the first paragraph")
}

// addRenderFlags adds HTML and PDF flags to a FlagSet.
func addRenderFlags(fs *flag.FlagSet, f *renderFlags) {
	fs.StringVar(&f.title, "title", "", "document title for html and pdf")
	fs.StringVar(&f.style, "style", "", "CSS style name, file path, or raw CSS")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory searched for styles first")
	fs.StringVarP(&f.pageSize, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "conversion time limit (e.g., 30s, 2m)")
}

// addLogFlags adds run log flags to a FlagSet.
func addLogFlags(fs *flag.FlagSet, f *logFlags) {
	fs.StringVar(&f.file, "log-file", "", "write a JSON run log to this file")
	fs.StringVar(&f.level, "log-level", "", "log level: debug, info, warn, error")
}

// parseConvertFlags parses convert command flags and returns positional args.
// Help output is printed by the caller, not by pflag.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	fs.Usage = func() {}
	f := &convertFlags{changed: fs.Changed}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (- = stdout)")
	fs.StringVarP(&f.format, "format", "f", "", "output format: text, html, pdf")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")

	addCommonFlags(fs, &f.common)
	addNumberingFlags(fs, &f.numbering)
	addRenderFlags(fs, &f.render)
	addLogFlags(fs, &f.log)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
