// SPDX-License-Identifier: MIT
package lexer

import (
	"github.com/sirupsen/logrus"
)

type (
	// Opts defines options for the Lexer's operations.
	Opts struct {
		Debug  bool
		Logger logrus.FieldLogger
	}

	// Option defines the Lexer functional option type
	Option func(*Lexer)
)

// NewOpts configures the lexer's Opts.
func NewOpts() *Opts {
	return &Opts{
		Logger: logrus.New(),
	}
}

// Validate populates missing Opts entries with defaults.
func (o *Opts) Validate() {
	if o.Logger == nil {
		o.Logger = logrus.New()
	}
}

// WithOpts configures the Lexer from an Opts.
func WithOpts(opts Opts) Option {
	return func(l *Lexer) {
		opts.Validate()
		l.debug, l.logger = opts.Debug, opts.Logger
	}
}

// WithDebug configures the debug option.
func WithDebug(debug bool) Option { return func(l *Lexer) { l.debug = debug } }

// WithLogger configures the logger option.
func WithLogger(logger logrus.FieldLogger) Option { return func(l *Lexer) { l.logger = logger } }
