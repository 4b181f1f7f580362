package main

import (
	"os"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// convertFlags holds all flags for the convert command.
type convertFlags struct {
	common        commonFlags
	output        string
	workers       int
	timeout       string
	pandoc        string
	mediaFolder   string
	unwrapSpans   []string
	splitPattern  string
	noPostprocess bool
	langAliases   bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show detailed timing")
}

// parseConvertFlags parses convert command flags from args.
func parseConvertFlags(args []string) (*convertFlags, []string, error) {
	fs := flag.NewFlagSet("convert", flag.ContinueOnError)
	f := &convertFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output file or directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "per-file conversion timeout (e.g., 30s, 2m)")
	fs.StringVar(&f.pandoc, "pandoc", "", "pandoc executable path")
	fs.StringVar(&f.mediaFolder, "media-folder", "", "image directory name referenced by the source")
	fs.StringSliceVar(&f.unwrapSpans, "unwrap-span", nil, "span class to unwrap (repeatable)")
	fs.StringVar(&f.splitPattern, "split", "", "regexp splitting output into per-section files")
	fs.BoolVar(&f.noPostprocess, "no-postprocess", false, "skip text-level markdown cleanup")
	fs.BoolVar(&f.langAliases, "lang-aliases", false, "canonicalize code block language names")

	addCommonFlags(fs, &f.common)

	fs.Usage = func() { printConvertUsage(os.Stderr) }

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	return f, fs.Args(), nil
}
