// SPDX-License-Identifier: MIT
package lexer

// REF: https://go.dev/talks/2011/lex.slide
// REF: https://gitlab.com/fisherprime/go-ddbms/-/blob/master/internal/v1/lexer.go

import (
	"fmt"
	"unicode"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

type (
	// NextOperation type for the next function to be executed
	NextOperation func(*cursor) NextOperation

	// ValidationFunction type for functions that validate rune identities
	ValidationFunction func(rune) bool

	// Lexer splits R-like source text into Tokens.
	//
	// A Lexer holds the state of one scan at a time, concurrent scans need separate instances.
	Lexer struct {
		debug  bool
		logger logrus.FieldLogger

		// Static tables, populated by New.
		keywords   *Table[string]
		delimiters *Table[string]
		operators  *Table[string]

		// Dynamic tables, cleared by Reset.
		identifiers *Table[string]
		numbers     *Table[string]
		strs        *Table[string]
		comments    *Table[string]

		source string
		tokens []Token
		errors []string
	}
)

const (
	commentMarker  = '#'
	maxOperatorLen = 4

	errorFmt = "Line %d, column %d: %v - '%s'"
)

// Improves on performance compared to ORs.
var identSymbols = [256]bool{
	'_': true,
	'.': true,
}

// New creates a Lexer with its static tables populated.
func New(opts ...Option) *Lexer {
	l := &Lexer{
		logger: logrus.New(),

		keywords:   newKeywordTable(),
		delimiters: newDelimiterTable(),
		operators:  newOperatorTable(),

		identifiers: NewTable[string](),
		numbers:     NewTable[string](),
		strs:        NewTable[string](),
		comments:    NewTable[string](),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Reset clears the dynamic tables, Tokens & Errors of the previous scan.
//
// Slices returned by a previous Tokenize call remain valid.
func (l *Lexer) Reset() {
	l.identifiers.reset()
	l.numbers.reset()
	l.strs.reset()
	l.comments.reset()

	l.source, l.tokens, l.errors = "", nil, nil
}

// Tokenize resets the Lexer & scans source in a single pass.
//
// Malformed lexemes become KindError tokens; the scan always runs to the end of the input.
func (l *Lexer) Tokenize(source string) []Token {
	l.Reset()
	l.source = source

	c := newCursor(source)
	for stateFunction := l.lexAny; stateFunction != nil; {
		stateFunction = stateFunction(c)
	}

	l.logger.WithFields(logrus.Fields{
		"tokens": len(l.tokens),
		"errors": len(l.errors),
	}).Debug("lexer scan complete")

	if l.debug && len(l.errors) > 0 {
		l.logger.Debugf("lexer errors: %s", spew.Sdump(l.errors))
	}

	return l.tokens
}

// Source obtains the text of the last scan.
func (l *Lexer) Source() string { return l.source }

// Tokens obtains the Token sequence of the last scan.
func (l *Lexer) Tokens() []Token { return slices.Clone(l.tokens) }

// Errors obtains the formatted error list of the last scan.
func (l *Lexer) Errors() []string { return slices.Clone(l.errors) }

// Keywords obtains the static keyword table.
func (l *Lexer) Keywords() *Table[string] { return l.keywords }

// Delimiters obtains the static delimiter table.
func (l *Lexer) Delimiters() *Table[string] { return l.delimiters }

// Operators obtains the static operator table.
func (l *Lexer) Operators() *Table[string] { return l.operators }

// Identifiers obtains the identifier table of the last scan.
func (l *Lexer) Identifiers() *Table[string] { return l.identifiers }

// Numbers obtains the number table of the last scan.
func (l *Lexer) Numbers() *Table[string] { return l.numbers }

// Strings obtains the string table of the last scan.
func (l *Lexer) Strings() *Table[string] { return l.strs }

// Comments obtains the comment table of the last scan.
func (l *Lexer) Comments() *Table[string] { return l.comments }

// Logger obtains the logger.
func (l *Lexer) Logger() logrus.FieldLogger { return l.logger }

// lexAny selects the sub-scanner for the rune under the cursor.
//
// The case order decides ambiguous '.' runes.
func (l *Lexer) lexAny(c *cursor) NextOperation {
	if c.eof() {
		return nil
	}

	r := c.peek()
	switch {
	case isWhitespace(r):
		// Ignore white spaces, discard instead of emit.
		c.acceptWhile(isWhitespace)
		return l.lexAny
	case r == commentMarker:
		return l.lexComment
	case isQuote(r):
		return l.lexString
	case r == '.' && c.peekAt(1) == '.':
		// Covers both the ellipsis & the two-dot run.
		return l.lexDots
	case isDigit(r), r == '.' && isDigit(c.peekAt(1)):
		return l.lexNumber
	case isAlpha(r), r == '_', r == '.' && c.has(2):
		return l.lexIdentifier
	default:
		return l.lexOperator
	}
}

// lexComment consumes a line comment, excluding the line break.
func (l *Lexer) lexComment(c *cursor) NextOperation {
	start := c.mark()
	c.acceptUntil('\n')

	comment := c.since(start)
	l.emit(start, comment, KindComment, l.comments.intern(comment))

	return l.lexAny
}

// lexString consumes a quoted string, keeping escape sequences verbatim.
func (l *Lexer) lexString(c *cursor) NextOperation {
	start := c.mark()
	quote := c.next()

	for !c.eof() && c.peek() != quote {
		if c.peek() == '\\' && c.has(2) {
			c.next()
		}
		c.next()
	}

	if c.eof() {
		l.emitError(start, c.since(start), ErrIDUnterminatedString, ErrUnterminatedString)
		return l.lexAny
	}
	c.next()

	str := c.since(start)
	l.emit(start, str, KindString, l.strs.intern(str))

	return l.lexAny
}

// lexDots consumes a run starting with two or more '.' runes.
//
// The run is an identifier (e.g. the `...` variadic marker) unless it directly follows a digit.
func (l *Lexer) lexDots(c *cursor) NextOperation {
	afterDigit := isDigit(c.prev())

	start := c.mark()
	c.next()
	c.next()
	c.acceptWhile(isNumberTail)

	run := c.since(start)
	if afterDigit {
		l.emitError(start, run, ErrIDInvalidNumber, fmt.Errorf("%w: %w", ErrInvalidNumber, ErrRepeatedDecimalPoint))
		return l.lexAny
	}
	l.emit(start, run, KindIdentifier, l.identifiers.intern(run))

	return l.lexAny
}

// lexIdentifier consumes an identifier or keyword; dotted names are single identifiers.
func (l *Lexer) lexIdentifier(c *cursor) NextOperation {
	start := c.mark()
	c.acceptWhile(isIdentifier)

	word := c.since(start)
	if id, ok := l.keywords.Lookup(word); ok {
		l.emit(start, word, KindKeyword, id)
		return l.lexAny
	}
	l.emit(start, word, KindIdentifier, l.identifiers.intern(word))

	return l.lexAny
}

// lexOperator matches the longest operator, then single rune delimiters & operators.
func (l *Lexer) lexOperator(c *cursor) NextOperation {
	start := c.mark()

	for n := maxOperatorLen; n > 0; n-- {
		candidate, ok := c.peekN(n)
		if !ok {
			continue
		}

		if id, ok := l.operators.Lookup(candidate); ok {
			c.skip(n)
			l.emit(start, candidate, KindOperation, id)

			return l.lexAny
		}
	}

	symbol := string(c.next())
	if id, ok := l.delimiters.Lookup(symbol); ok {
		l.emit(start, symbol, KindDelimiter, id)
		return l.lexAny
	}

	if id, ok := l.operators.Lookup(symbol); ok {
		l.emit(start, symbol, KindOperation, id)
		return l.lexAny
	}
	l.emitError(start, symbol, ErrIDUnknownSymbol, ErrUnknownSymbol)

	return l.lexAny
}

// emit appends a Token for the lexeme starting at start.
func (l *Lexer) emit(start position, val string, kind Kind, id int) {
	l.push(Token{
		Code:   code(kind, id),
		Val:    val,
		Kind:   kind,
		ID:     id,
		Pos:    start.pos,
		Line:   start.line,
		Column: start.column,
	})
}

// emitError appends an error Token & its formatted message.
func (l *Lexer) emitError(start position, val string, id int, err error) {
	l.push(Token{
		Err:    err,
		Code:   code(KindError, id),
		Val:    val,
		Kind:   KindError,
		ID:     id,
		Pos:    start.pos,
		Line:   start.line,
		Column: start.column,
	})

	l.errors = append(l.errors, fmt.Sprintf(errorFmt, start.line, start.column, err, val))
}

func (l *Lexer) push(t Token) {
	if l.debug {
		// Debug operation makes this operation un-inlinable.
		l.logger.WithFields(logrus.Fields{
			"code":   t.Code,
			"kind":   t.Kind,
			"line":   t.Line,
			"column": t.Column,
		}).Debugf("lexer emit: %q", t.Val)
	}

	l.tokens = append(l.tokens, t)
}

// isWhitespace return true for whitespace, newline & carrier return.
func isWhitespace(r rune) bool { return unicode.IsSpace(r) }

// isAlpha return true for a letter.
func isAlpha(r rune) bool { return unicode.IsLetter(r) }

// isDigit return true for a decimal digit.
func isDigit(r rune) bool { return unicode.IsDigit(r) }

func isAlphaNumeric(r rune) bool { return isAlpha(r) || isDigit(r) }

// isIdentifier return true for runes allowed past the start of an identifier.
func isIdentifier(r rune) bool { return isAlphaNumeric(r) || (r < 256 && identSymbols[r]) }

// isNumberTail return true for runes swallowed by a malformed number or a dot run.
func isNumberTail(r rune) bool { return isAlphaNumeric(r) || r == '.' }

func isQuote(r rune) bool { return r == '"' || r == '\'' }

func isSign(r rune) bool { return r == '+' || r == '-' }

// isExponent return true for an exponent marker.
func isExponent(r rune) bool { return r == 'e' || r == 'E' }

// startsExponent return true for runes allowed after an exponent marker.
func startsExponent(r rune) bool { return isDigit(r) || isSign(r) }
