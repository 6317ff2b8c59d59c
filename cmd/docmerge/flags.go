package main

import (
	"fmt"

	flag "github.com/spf13/pflag"
)

// mergeFlags holds all flags for the docmerge CLI.
type mergeFlags struct {
	config       string
	output       string
	titles       []string
	toc          bool
	pageNumbers  bool
	numberFormat string
	startPage    int
	onError      string
	retryCap     int
	workers      int
	renderBin    string
	verbose      bool
	version      bool

	// set tracks which flags were passed explicitly, so unset flags do not
	// clobber config-file values.
	set *flag.FlagSet
}

// parseFlags parses the command line. Positional arguments are the input
// documents (Word or PDF), in merge order.
func parseFlags(args []string) (*mergeFlags, []string, error) {
	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() { printUsage(fs) }

	f := &mergeFlags{set: fs}
	fs.StringVarP(&f.config, "config", "c", "", "config name or path (YAML)")
	fs.StringVarP(&f.output, "output", "o", "merged.pdf", "output PDF path")
	fs.StringSliceVar(&f.titles, "title", nil, "display title per input, in order (default: file name)")
	fs.BoolVar(&f.toc, "toc", false, "prepend a generated table of contents")
	fs.BoolVarP(&f.pageNumbers, "page-numbers", "n", false, "stamp page numbers on content pages")
	fs.StringVar(&f.numberFormat, "number-format", "arabic", "page number format: arabic or roman")
	fs.IntVar(&f.startPage, "start-page", 1, "displayed number of the first content page")
	fs.StringVar(&f.onError, "on-error", "skip", "per-document failure policy: skip or abort")
	fs.IntVar(&f.retryCap, "retry-cap", 3, "wrong-password attempts per document")
	fs.IntVarP(&f.workers, "workers", "w", 0, "renderer pool size (0 = auto)")
	fs.StringVar(&f.renderBin, "render-bin", "", "LibreOffice binary path (default: search PATH)")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "verbose progress output on stderr")
	fs.BoolVar(&f.version, "version", false, "print version and exit")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}

// changed reports whether a flag was passed explicitly.
func (f *mergeFlags) changed(name string) bool {
	return f.set.Changed(name)
}

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `Usage: docmerge [flags] input...

Merges Word and PDF documents, in the given order, into a single PDF.
Word inputs are rendered through headless LibreOffice first.

Flags:
%s`, fs.FlagUsages())
}
