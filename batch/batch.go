// SPDX-License-Identifier: MIT

// Package batch tokenizes multiple sources concurrently on a worker pool.
package batch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/davecgh/go-spew/spew"
	"github.com/panjf2000/ants/v2"
	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/rlexer/lexer"
)

type (
	// Config defines configuration options for a batch Tokenize operation.
	Config struct {
		// Logger for batch & Lexer messages.
		//
		// Preferring a public field to allow for sharing.
		Logger logrus.FieldLogger
		Debug  bool

		// Workers is the size of the goroutine pool.
		Workers int
	}

	// Source is a named source text.
	Source struct {
		Name string
		Text string
	}

	// Result holds the Lexer that scanned a Source.
	Result struct {
		Name  string
		Lexer *lexer.Lexer
		Err   error
	}
)

// Batch operation errors.
var (
	ErrPool     = errors.New("lexer pool failure")
	ErrPanicked = errors.New("recovery from panic")
	ErrRead     = errors.New("failed to read source")
)

// DefConfig obtains the package's default Config.
func DefConfig() *Config {
	return &Config{
		Logger:  logrus.New(),
		Workers: runtime.NumCPU(),
	}
}

// Validate populates missing Config entries with defaults.
func (c *Config) Validate() {
	if c.Logger == nil {
		c.Logger = logrus.New()
	}
	if c.Workers < 1 {
		c.Workers = runtime.NumCPU()
	}
}

// Load reads the files at paths into Sources named after their base names.
func Load(paths ...string) (sources []Source, err error) {
	sources = make([]Source, 0, len(paths))

	for _, path := range paths {
		var data []byte
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrRead, err)
		}

		sources = append(sources, Source{Name: filepath.Base(path), Text: string(data)})
	}

	return
}

// Tokenize scans every Source with its own Lexer, on a pool of Config.Workers goroutines.
//
// Results are in input order. A cancelled ctx stops the submission of pending Sources, their
// Results lack a Lexer.
func Tokenize(ctx context.Context, cfg *Config, sources []Source) (results []Result, err error) {
	if cfg == nil {
		cfg = DefConfig()
	}
	cfg.Validate()

	results = make([]Result, len(sources))
	if len(sources) < 1 {
		return
	}

	pool, err := ants.NewPool(cfg.Workers,
		ants.WithLogger(cfg.Logger),
		ants.WithPanicHandler(func(r interface{}) {
			cfg.Logger.Errorf("%v in lexer pool: %v", ErrPanicked, r)
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPool, err)
	}
	defer pool.Release()

	wg := new(sync.WaitGroup)

submit:
	for index := range sources {
		select {
		case <-ctx.Done():
			err = ctx.Err()
			break submit
		default:
		}

		index := index
		results[index].Name = sources[index].Name

		wg.Add(1)
		if err = pool.Submit(func() {
			defer wg.Done()
			results[index] = scan(cfg, sources[index])
		}); err != nil {
			wg.Done()
			err = fmt.Errorf("%w: %w", ErrPool, err)

			break
		}
	}
	wg.Wait()

	if cfg.Debug {
		cfg.Logger.WithFields(logrus.Fields{
			"sources": len(sources),
			"workers": cfg.Workers,
		}).Debug("batch tokenize complete")
	}

	return
}

// scan tokenizes a single Source, recovering from panics.
func scan(cfg *Config, src Source) (res Result) {
	res.Name = src.Name

	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("%w: %v", ErrPanicked, r)

			// Skip expensive operation if not debug.
			if cfg.Debug {
				cfg.Logger.Debugf("source: %s", spew.Sdump(src))
			}
		}
	}()

	res.Lexer = lexer.New(
		lexer.WithLogger(cfg.Logger.WithField("source", src.Name)),
		lexer.WithDebug(cfg.Debug),
	)
	res.Lexer.Tokenize(src.Text)

	return
}
