// SPDX-License-Identifier: MIT
package lexer

import "strconv"

type (
	// Kind classifies a lexeme.
	Kind int

	// Token holds a classified lexeme & its position in the source.
	Token struct {
		Err  error  // Set for KindError tokens.
		Code string // Kind letter followed by ID, e.g. "I7".
		Val  string // The lexeme as it appears in the source.

		Kind Kind
		ID   int // Table id, or the error subtype for KindError tokens.

		Pos    int // The starting position, (in runes) of this Token.
		Line   int // 1-based.
		Column int // 1-based.
	}
)

// iota is used to define an incrementing number sequence for const
// declarations
const (
	_              Kind = iota // Consume 0 to start actual numbering at 1.
	KindKeyword                // Static keyword table entry.
	KindDelimiter              // Static delimiter table entry.
	KindOperation              // Static operator table entry.
	KindIdentifier             // Identifier table entry.
	KindNumber                 // Number table entry.
	KindString                 // String table entry.
	KindComment                // Comment table entry.
	KindError                  // Malformed or unknown lexeme.
)

// Error subtypes, used as the ID of KindError tokens.
const (
	ErrIDUnterminatedString = 1
	ErrIDLettersInNumber    = 3
	ErrIDInvalidNumber      = 4
	ErrIDUnknownSymbol      = 5
)

// Error token codes.
var (
	CodeUnterminatedString = code(KindError, ErrIDUnterminatedString)
	CodeLettersInNumber    = code(KindError, ErrIDLettersInNumber)
	CodeInvalidNumber      = code(KindError, ErrIDInvalidNumber)
	CodeUnknownSymbol      = code(KindError, ErrIDUnknownSymbol)
)

var (
	kindLetters = [...]byte{
		KindKeyword:    'W',
		KindDelimiter:  'R',
		KindOperation:  'O',
		KindIdentifier: 'I',
		KindNumber:     'N',
		KindString:     'S',
		KindComment:    'C',
		KindError:      'E',
	}

	kindNames = [...]string{
		KindKeyword:    "keyword",
		KindDelimiter:  "delimiter",
		KindOperation:  "operation",
		KindIdentifier: "identifier",
		KindNumber:     "number",
		KindString:     "string",
		KindComment:    "comment",
		KindError:      "error",
	}
)

// Letter obtains the code prefix of a Kind.
func (k Kind) Letter() byte {
	if k < KindKeyword || k > KindError {
		return '?'
	}

	return kindLetters[k]
}

func (k Kind) String() string {
	if k < KindKeyword || k > KindError {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}

	return kindNames[k]
}

// IsError reports whether the Token is an error token.
func (t Token) IsError() bool { return t.Kind == KindError }

// ErrMsg obtains the error message of an error Token, empty otherwise.
func (t Token) ErrMsg() string {
	if t.Err == nil {
		return ""
	}

	return t.Err.Error()
}

// End obtains the position (in runes) immediately after the Token.
func (t Token) End() int { return t.Pos + len([]rune(t.Val)) }

// code derives a Token code from its kind & id.
func code(k Kind, id int) string { return string(k.Letter()) + strconv.Itoa(id) }
