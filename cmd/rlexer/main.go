// SPDX-License-Identifier: MIT

// Command rlexer tokenizes R source files & prints the token sequence, error list and tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/rlexer/batch"
	"gitlab.com/fisherprime/rlexer/report"
	"gitlab.com/fisherprime/rlexer/samples"
)

const (
	exitOK = iota
	exitFailure
	exitUsage
)

type options struct {
	debug   bool
	dump    bool
	list    bool
	example string
	workers int

	tables  bool
	program bool
	clean   bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options

	fs := flag.NewFlagSet(filepath.Base(os.Args[0]), flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&opts.dump, "dump", false, "Dump the raw tokens")
	fs.BoolVar(&opts.list, "list", false, "List the bundled example programs")
	fs.StringVar(&opts.example, "example", "", "Tokenize a bundled example program instead of files")
	fs.IntVar(&opts.workers, "workers", 0, "Number of concurrent scans (default: number of CPUs)")
	fs.BoolVar(&opts.tables, "tables", false, "Print the lexeme tables")
	fs.BoolVar(&opts.program, "program", false, "Print the lexeme program")
	fs.BoolVar(&opts.clean, "clean", false, "Print the lexeme program without annotations")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] <file.R>...\n", fs.Name())
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	if opts.debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	if opts.list {
		for _, name := range samples.Names() {
			title, _ := samples.Title(name)
			fmt.Fprintf(stdout, "%-16s %s\n", name, title)
		}

		return exitOK
	}

	sources, err := loadSources(opts.example, fs.Args())
	if err != nil {
		logger.Error(err)
		return exitFailure
	}
	if len(sources) < 1 {
		fs.Usage()
		return exitUsage
	}

	results, err := batch.Tokenize(ctx, &batch.Config{
		Logger:  logger,
		Debug:   opts.debug,
		Workers: opts.workers,
	}, sources)
	if err != nil {
		logger.Error(err)
		return exitFailure
	}

	code := exitOK
	for _, res := range results {
		if res.Err != nil {
			logger.WithField("source", res.Name).Error(res.Err)
			code = exitFailure

			continue
		}

		printResult(stdout, res, opts)
	}

	return code
}

// loadSources reads the example program or the files at paths.
func loadSources(example string, paths []string) ([]batch.Source, error) {
	if example == "" {
		return batch.Load(paths...)
	}

	text, err := samples.Get(example)
	if err != nil {
		return nil, err
	}

	return []batch.Source{{Name: example, Text: text}}, nil
}

func printResult(w io.Writer, res batch.Result, opts options) {
	l := res.Lexer
	tokens := l.Tokens()

	fmt.Fprintf(w, "%s\n%s\n", res.Name, strings.Repeat("=", len(res.Name)))
	fmt.Fprintln(w, report.Sequence(tokens))

	if errs := l.Errors(); len(errs) > 0 {
		fmt.Fprintf(w, "Errors (%d):\n", len(errs))
		for _, e := range errs {
			fmt.Fprintf(w, "  %s\n", e)
		}
	} else {
		fmt.Fprintln(w, "No errors")
	}

	stats := report.NewStats(l)
	fmt.Fprintf(w, "\nTokens: %d, identifiers: %d, numbers: %d, strings: %d, comments: %d, errors: %d\n",
		stats.Tokens, stats.Identifiers, stats.Numbers, stats.Strings, stats.Comments, stats.Errors)

	if opts.program {
		fmt.Fprintf(w, "\n%s\n", report.Program(l))
	}
	if opts.clean {
		fmt.Fprintf(w, "\n%s\n", report.CleanProgram(l.Source(), tokens))
	}
	if opts.tables {
		fmt.Fprintf(w, "\n%s\n", report.Tables(l))
	}
	if opts.dump {
		spew.Fdump(w, tokens)
	}

	fmt.Fprintln(w)
}
