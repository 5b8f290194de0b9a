package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kk-code-lab/hilite/internal/config"
	"github.com/kk-code-lab/hilite/internal/debuglog"
	"github.com/kk-code-lab/hilite/internal/findtext"
	"github.com/kk-code-lab/hilite/internal/fs"
	"github.com/kk-code-lab/hilite/internal/htmldoc"
	"github.com/kk-code-lab/hilite/internal/ui/pager"
)

const usage = `hilite - fuzzy phrase highlighting for HTML and text documents

USAGE:
    hilite [OPTIONS] FILE [QUERY...]

FILE may be "-" for stdin. Without -html or -i the number of matches is
printed.

OPTIONS:
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	configPath string
	root       string
	tag        string
	gotoIndex  int
	html       bool
	interact   bool
	file       string
	query      string
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	var opts options
	fset := flag.NewFlagSet("hilite", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.Usage = func() {
		fmt.Fprint(stderr, usage)
		fset.PrintDefaults()
	}
	fset.StringVar(&opts.configPath, "config", "", "TOML config file (default $XDG_CONFIG_HOME/hilite/config.toml)")
	fset.StringVar(&opts.root, "root", "", "search only under this element (#id or tag name)")
	fset.StringVar(&opts.tag, "tag", "", "element used for highlights")
	fset.IntVar(&opts.gotoIndex, "goto", -1, "activate match N (0-based) after searching")
	fset.BoolVar(&opts.html, "html", false, "write the highlighted document as HTML")
	fset.BoolVar(&opts.interact, "i", false, "browse the document interactively")
	if err := fset.Parse(args); err != nil {
		return opts, err
	}

	rest := fset.Args()
	if len(rest) == 0 {
		fset.Usage()
		return opts, errors.New("missing FILE")
	}
	opts.file = rest[0]
	opts.query = strings.Join(rest[1:], " ")
	if opts.query == "" && !opts.interact && !opts.html {
		fset.Usage()
		return opts, errors.New("missing QUERY")
	}
	return opts, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseArgs(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading config: %v\n", err)
		return 1
	}
	if opts.root != "" {
		cfg.Document.Root = opts.root
	}
	if opts.tag != "" {
		cfg.Highlight.Tag = opts.tag
	}
	logger := debuglog.New(cfg.Debug.File)

	src, err := fs.Load(opts.file)
	if err != nil {
		fmt.Fprintf(stderr, "Error reading document: %v\n", err)
		return 1
	}
	doc, err := htmldoc.ParseString(src.HTML, cfg.DocumentOptions())
	if err != nil {
		fmt.Fprintf(stderr, "Error loading document: %v\n", err)
		return 1
	}
	logger.Printf("loaded %s markup=%v root=%q", src.Path, src.Markup, cfg.Document.Root)

	finder := findtext.New(doc, findtext.WithLogger(logger.Func()))
	// Find clears every highlight-tag element first, including ones the
	// input already carried, even when the query is blank.
	count, searched := finder.Find(opts.query)
	if opts.gotoIndex >= 0 {
		finder.GotoMatch(opts.gotoIndex)
	}

	switch {
	case opts.interact:
		p, err := pager.New(doc, finder, pager.Options{
			Title: src.Path,
			Theme: cfg.Theme(),
			Logf:  logger.Func(),
		})
		if err == nil {
			err = p.Run()
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error running pager: %v\n", err)
			return 1
		}
	case opts.html:
		if err := doc.Render(stdout); err != nil {
			fmt.Fprintf(stderr, "Error writing html: %v\n", err)
			return 1
		}
		fmt.Fprintln(stdout)
	case searched:
		fmt.Fprintln(stdout, count)
	}
	return 0
}
