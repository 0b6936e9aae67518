// SPDX-License-Identifier: MIT
package lexer

import (
	"fmt"
	"strings"
)

// lexNumber consumes a numeric literal, then validates its structure.
//
// A letter that is not an exponent marker ends the literal as an ErrLettersInNumber token,
// swallowing the remaining alphanumeric & '.' runes.
func (l *Lexer) lexNumber(c *cursor) NextOperation {
	start := c.mark()

	for !c.eof() {
		r := c.peek()

		switch {
		case isDigit(r):
		case r == '.':
			// Leave an ellipsis to lexDots.
			if c.peekAt(1) == '.' && c.peekAt(2) == '.' {
				return l.emitNumber(c, start)
			}
		case isSign(r):
			if c.pos == start.pos || !isExponent(c.prev()) {
				return l.emitNumber(c, start)
			}
		case isAlpha(r):
			if isExponent(r) && c.pos > start.pos && startsExponent(c.peekAt(1)) {
				break
			}

			c.next()
			c.acceptWhile(isNumberTail)
			l.emitError(start, c.since(start), ErrIDLettersInNumber, ErrLettersInNumber)

			return l.lexAny
		default:
			return l.emitNumber(c, start)
		}

		c.next()
	}

	return l.emitNumber(c, start)
}

// emitNumber emits the literal consumed since start as a Number or an ErrInvalidNumber token.
func (l *Lexer) emitNumber(c *cursor, start position) NextOperation {
	lexeme := c.since(start)

	if err := validateNumber(lexeme); err != nil {
		l.emitError(start, lexeme, ErrIDInvalidNumber, fmt.Errorf("%w: %w", ErrInvalidNumber, err))
		return l.lexAny
	}
	l.emit(start, lexeme, KindNumber, l.numbers.intern(lexeme))

	return l.lexAny
}

// validateNumber checks the structure of a consumed numeric literal.
//
// A nil error marks a valid literal.
func validateNumber(lexeme string) error {
	if lexeme == "" {
		return ErrEmptyNumber
	}

	if strings.Contains(lexeme, "..") {
		return ErrRepeatedDecimalPoint
	}

	hasExponent := strings.ContainsAny(lexeme, "eE")
	if strings.Count(lexeme, ".") > 1 {
		if !hasExponent {
			return ErrMultipleSeparators
		}

		parts := splitExponent(lexeme)
		if len(parts) != 2 {
			return ErrMalformedExponent
		}
		if err := validateExponentParts(parts[0], parts[1]); err != nil {
			return err
		}
	}

	runes := []rune(lexeme)
	for index, r := range runes {
		if !isAlpha(r) {
			continue
		}

		if isExponent(r) && index > 0 && index < len(runes)-1 && startsExponent(runes[index+1]) {
			continue
		}

		return fmt.Errorf("%w '%c'", ErrNumberLetter, r)
	}

	if !hasExponent {
		return nil
	}

	parts := splitExponent(lexeme)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return ErrMalformedExponent
	}
	if err := validateExponentParts(parts[0], parts[1]); err != nil {
		return err
	}

	exponent := parts[1]
	if isSign(rune(exponent[0])) {
		exponent = exponent[1:]
	}
	if exponent == "" || !allDigits(exponent) {
		return ErrMalformedExponent
	}

	return nil
}

// validateExponentParts checks the decimal separators on both sides of an exponent marker.
func validateExponentParts(mantissa, exponent string) error {
	if strings.Count(mantissa, ".") > 1 {
		return ErrMantissaSeparators
	}
	if strings.Contains(exponent, ".") {
		return ErrExponentDecimalPoint
	}

	return nil
}

// splitExponent splits a literal on every exponent marker, keeping empty parts.
func splitExponent(lexeme string) []string {
	return strings.Split(strings.ReplaceAll(lexeme, "E", "e"), "e")
}

func allDigits(s string) bool {
	for _, r := range s {
		if !isDigit(r) {
			return false
		}
	}

	return true
}
