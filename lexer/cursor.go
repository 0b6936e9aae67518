// SPDX-License-Identifier: MIT
package lexer

type (
	// cursor tracks the scan position over the source.
	//
	// The cursor only moves forward; next is the sole place line & column change.
	cursor struct {
		src []rune

		pos    int // index of the next rune in src
		line   int
		column int
	}

	// position marks the start of a lexeme.
	position struct {
		pos    int
		line   int
		column int
	}
)

const emptyRune rune = 0

func newCursor(source string) *cursor {
	return &cursor{src: []rune(source), line: 1, column: 1}
}

// eof reports whether the source is exhausted.
func (c *cursor) eof() bool { return c.pos >= len(c.src) }

// has reports whether n more runes (counting the current one) remain.
func (c *cursor) has(n int) bool { return c.pos+n <= len(c.src) }

// peek returns the current rune without consuming it.
func (c *cursor) peek() rune { return c.peekAt(0) }

// peekAt returns the rune n positions ahead, emptyRune past the end.
func (c *cursor) peekAt(n int) rune {
	if index := c.pos + n; index >= 0 && index < len(c.src) {
		return c.src[index]
	}

	return emptyRune
}

// prev returns the last consumed rune, emptyRune at the start of input.
func (c *cursor) prev() rune { return c.peekAt(-1) }

// next consumes the current rune.
func (c *cursor) next() (r rune) {
	if c.eof() {
		return emptyRune
	}

	r = c.src[c.pos]
	c.pos++

	if r == '\n' {
		c.line++
		c.column = 1
		return
	}
	c.column++

	return
}

// peekN returns the next n runes without consuming them; ok is false when fewer remain.
func (c *cursor) peekN(n int) (s string, ok bool) {
	if n < 1 || !c.has(n) {
		return
	}

	return string(c.src[c.pos : c.pos+n]), true
}

// skip consumes n runes.
func (c *cursor) skip(n int) {
	for ; n > 0; n-- {
		c.next()
	}
}

// acceptWhile consumes runes while the condition holds.
func (c *cursor) acceptWhile(fn ValidationFunction) {
	for !c.eof() && fn(c.peek()) {
		c.next()
	}
}

// acceptUntil consumes runes up to (excluding) r or the end of input.
func (c *cursor) acceptUntil(r rune) {
	for !c.eof() && c.peek() != r {
		c.next()
	}
}

// mark records the current position as a lexeme start.
func (c *cursor) mark() position { return position{pos: c.pos, line: c.line, column: c.column} }

// since returns the text consumed from start up to the cursor.
func (c *cursor) since(start position) string { return string(c.src[start.pos:c.pos]) }
