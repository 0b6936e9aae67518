// SPDX-License-Identifier: MIT
package lexer

import "errors"

// Lexing errors, carried by KindError tokens.
var (
	ErrUnterminatedString = errors.New("unterminated string")
	ErrLettersInNumber    = errors.New("malformed number, contains letters")
	ErrInvalidNumber      = errors.New("invalid number structure")
	ErrUnknownSymbol      = errors.New("unknown symbol")
)

// Number validation errors.
var (
	ErrEmptyNumber          = errors.New("empty number")
	ErrRepeatedDecimalPoint = errors.New("multiple use of decimal point")
	ErrMultipleSeparators   = errors.New("invalid decimal point usage, the number has multiple decimal separators")
	ErrMantissaSeparators   = errors.New("invalid decimal point usage, the mantissa has multiple decimal separators")
	ErrExponentDecimalPoint = errors.New("invalid decimal point usage, decimal point in the exponent")
	ErrNumberLetter         = errors.New("malformed number, contains a letter")
	ErrMalformedExponent    = errors.New("malformed exponent notation")
)
