// SPDX-License-Identifier: MIT
package lexer

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"

	"gitlab.com/fisherprime/rlexer/samples"
)

// lexeme is the comparable part of a Token.
type lexeme struct {
	Code   string
	Val    string
	Line   int
	Column int
}

func lexemes(tokens []Token) (list []lexeme) {
	list = make([]lexeme, len(tokens))
	for index, t := range tokens {
		list[index] = lexeme{Code: t.Code, Val: t.Val, Line: t.Line, Column: t.Column}
	}

	return
}

func TestLexer_Tokenize(t *testing.T) {
	tests := []struct {
		name    string
		source  string
		want    []lexeme
		wantErr []error
	}{
		{
			name:   "integer",
			source: "123",
			want:   []lexeme{{"N1", "123", 1, 1}},
		},
		{
			name:   "scientific notation",
			source: "2.5e-3",
			want:   []lexeme{{"N1", "2.5e-3", 1, 1}},
		},
		{
			name:    "multiple decimal separators",
			source:  "123.23.3",
			want:    []lexeme{{CodeInvalidNumber, "123.23.3", 1, 1}},
			wantErr: []error{ErrInvalidNumber, ErrMultipleSeparators},
		},
		{
			name:    "letters in number",
			source:  "123a",
			want:    []lexeme{{CodeLettersInNumber, "123a", 1, 1}},
			wantErr: []error{ErrLettersInNumber},
		},
		{
			name:   "keyword",
			source: "if",
			want:   []lexeme{{"W21", "if", 1, 1}},
		},
		{
			name:    "unterminated string",
			source:  `"unterminated`,
			want:    []lexeme{{CodeUnterminatedString, `"unterminated`, 1, 1}},
			wantErr: []error{ErrUnterminatedString},
		},
		{
			name:    "unknown symbol",
			source:  "§",
			want:    []lexeme{{CodeUnknownSymbol, "§", 1, 1}},
			wantErr: []error{ErrUnknownSymbol},
		},
		{
			name:    "ellipsis after a number",
			source:  "1...",
			want:    []lexeme{{"N1", "1", 1, 1}, {CodeInvalidNumber, "...", 1, 2}},
			wantErr: []error{ErrInvalidNumber, ErrRepeatedDecimalPoint},
		},
		{
			name:    "two dots in a number",
			source:  "1..5",
			want:    []lexeme{{CodeInvalidNumber, "1..5", 1, 1}},
			wantErr: []error{ErrInvalidNumber, ErrRepeatedDecimalPoint},
		},
		{
			name:    "dot in the exponent",
			source:  "3e2.5",
			want:    []lexeme{{CodeInvalidNumber, "3e2.5", 1, 1}},
			wantErr: []error{ErrInvalidNumber, ErrExponentDecimalPoint},
		},
		{
			name:    "dots in the mantissa",
			source:  "1.2.3e5",
			want:    []lexeme{{CodeInvalidNumber, "1.2.3e5", 1, 1}},
			wantErr: []error{ErrInvalidNumber, ErrMantissaSeparators},
		},
		{
			name:    "missing exponent digits",
			source:  "1.5e-",
			want:    []lexeme{{CodeInvalidNumber, "1.5e-", 1, 1}},
			wantErr: []error{ErrInvalidNumber, ErrMalformedExponent},
		},
		{
			name:    "repeated exponent",
			source:  "1e5e3",
			want:    []lexeme{{CodeInvalidNumber, "1e5e3", 1, 1}},
			wantErr: []error{ErrInvalidNumber, ErrMalformedExponent},
		},
		{
			name:    "letter after the exponent",
			source:  "4e2a",
			want:    []lexeme{{CodeLettersInNumber, "4e2a", 1, 1}},
			wantErr: []error{ErrLettersInNumber},
		},
		{
			name:    "dangling exponent marker",
			source:  ".5e",
			want:    []lexeme{{CodeLettersInNumber, ".5e", 1, 1}},
			wantErr: []error{ErrLettersInNumber},
		},
		{
			name:   "sign after the exponent ends the number",
			source: "x <- 1e-5-3",
			want: []lexeme{
				{"I1", "x", 1, 1}, {"O18", "<-", 1, 3}, {"N1", "1e-5", 1, 6}, {"O2", "-", 1, 10},
				{"N2", "3", 1, 11},
			},
		},
		{
			name:   "dot classification",
			source: ".5 . .x ...",
			want:   []lexeme{{"N1", ".5", 1, 1}, {"I1", ".", 1, 4}, {"I2", ".x", 1, 6}, {"I3", "...", 1, 9}},
		},
		{
			name:   "trailing dot",
			source: ".",
			want:   []lexeme{{"R1", ".", 1, 1}},
		},
		{
			name:   "variadic marker",
			source: "data.frame(...)",
			want:   []lexeme{{"W14", "data.frame", 1, 1}, {"R7", "(", 1, 11}, {"I1", "...", 1, 12}, {"R8", ")", 1, 15}},
		},
		{
			name:   "call",
			source: "f(a, b) %in% c",
			want: []lexeme{
				{"I1", "f", 1, 1}, {"R7", "(", 1, 2}, {"I2", "a", 1, 3}, {"R2", ",", 1, 4},
				{"I3", "b", 1, 6}, {"R8", ")", 1, 7}, {"O10", "%in%", 1, 9}, {"W11", "c", 1, 14},
			},
		},
		{
			name:   "longest operator",
			source: "x <<- y ->> z",
			want: []lexeme{
				{"I1", "x", 1, 1}, {"O19", "<<-", 1, 3}, {"I2", "y", 1, 7}, {"O21", "->>", 1, 9},
				{"I3", "z", 1, 13},
			},
		},
		{
			name:   "four rune operator",
			source: "a %T>% b",
			want:   []lexeme{{"I1", "a", 1, 1}, {"O32", "%T>%", 1, 3}, {"I2", "b", 1, 8}},
		},
		{
			name:   "operators before delimiters",
			source: "a::b",
			want:   []lexeme{{"I1", "a", 1, 1}, {"O28", ":", 1, 2}, {"O28", ":", 1, 3}, {"I2", "b", 1, 4}},
		},
		{
			name:   "single rune symbols",
			source: "`x` $ @ ~ !",
			want: []lexeme{
				{"R17", "`", 1, 1}, {"I1", "x", 1, 2}, {"R17", "`", 1, 3}, {"O29", "$", 1, 5},
				{"O30", "@", 1, 7}, {"O27", "~", 1, 9}, {"O24", "!", 1, 11},
			},
		},
		{
			name:   "escaped quote",
			source: `'a\'b'`,
			want:   []lexeme{{"S1", `'a\'b'`, 1, 1}},
		},
		{
			name:   "comments",
			source: "# note\nx <- 'a'\n# note",
			want: []lexeme{
				{"C1", "# note", 1, 1}, {"I1", "x", 2, 1}, {"O18", "<-", 2, 3}, {"S1", "'a'", 2, 6},
				{"C1", "# note", 3, 1},
			},
		},
		{
			name:   "multi-line string",
			source: "s <- 'a\nb'\ny",
			want:   []lexeme{{"I1", "s", 1, 1}, {"O18", "<-", 1, 3}, {"S1", "'a\nb'", 1, 6}, {"I2", "y", 3, 1}},
		},
		{
			name:   "repeated identifier",
			source: "x + x",
			want:   []lexeme{{"I1", "x", 1, 1}, {"O1", "+", 1, 3}, {"I1", "x", 1, 5}},
		},
		{
			name:   "mixed case keywords",
			source: "TRUE && NA || NaN",
			want:   []lexeme{{"W6", "TRUE", 1, 1}, {"O25", "&&", 1, 6}, {"W3", "NA", 1, 9}, {"O26", "||", 1, 12}, {"W5", "NaN", 1, 15}},
		},
		{
			name:   "empty",
			source: " \t\n ",
			want:   []lexeme{},
		},
	}

	l := New(WithLogger(logrus.New()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := l.Tokenize(tt.source)

			if gotLexemes := lexemes(got); !reflect.DeepEqual(gotLexemes, tt.want) {
				t.Errorf("Lexer.Tokenize() = %+v, want %+v", gotLexemes, tt.want)
				return
			}

			var errToken *Token
			for index := range got {
				if got[index].IsError() {
					errToken = &got[index]
					break
				}
			}

			if len(tt.wantErr) < 1 {
				if errToken != nil || len(l.Errors()) > 0 {
					t.Errorf("Lexer.Tokenize() errors = %v, want none", l.Errors())
				}
				return
			}

			if errToken == nil {
				t.Errorf("Lexer.Tokenize() missing error token, want %v", tt.wantErr)
				return
			}
			for _, wantErr := range tt.wantErr {
				if !errors.Is(errToken.Err, wantErr) {
					t.Errorf("Lexer.Tokenize() error = %v, want %v", errToken.Err, wantErr)
				}
			}
		})
	}
}

func TestLexer_Errors(t *testing.T) {
	l := New()
	l.Tokenize("a <- 123..45\nb <- \"open")

	want := []string{
		fmt.Sprintf("Line 1, column 6: %v: %v - '123..45'", ErrInvalidNumber, ErrRepeatedDecimalPoint),
		fmt.Sprintf("Line 2, column 6: %v - '\"open'", ErrUnterminatedString),
	}
	if got := l.Errors(); !reflect.DeepEqual(got, want) {
		t.Errorf("Lexer.Errors() = %q, want %q", got, want)
	}
}

func TestLexer_Reset(t *testing.T) {
	l := New()
	first := l.Tokenize("x <- 'a' # c\n1 ? 2")

	l.Reset()
	if l.Identifiers().Len() != 0 || l.Numbers().Len() != 0 || l.Strings().Len() != 0 || l.Comments().Len() != 0 {
		t.Errorf("Lexer.Reset() left dynamic table entries")
	}
	if len(l.Tokens()) != 0 || len(l.Errors()) != 0 {
		t.Errorf("Lexer.Reset() left tokens %v, errors %v", l.Tokens(), l.Errors())
	}
	if l.Keywords().Len() != len(keywordList) || l.Operators().Len() != len(operatorList) {
		t.Errorf("Lexer.Reset() modified the static tables")
	}

	if len(first) != 7 {
		t.Errorf("Lexer.Reset() invalidated the previous scan: %v", first)
	}

	// Dynamic ids restart from 1 on every scan.
	got := l.Tokenize("y x")
	if want := []string{"I1", "I2"}; got[0].Code != want[0] || got[1].Code != want[1] {
		t.Errorf("Lexer.Tokenize() after Reset = %+v, want codes %v", got, want)
	}
}

func TestLexer_Tokenize_samples(t *testing.T) {
	tests := []struct {
		sample      string
		wantTokens  int
		wantErrors  int
		identifiers int
		numbers     int
	}{
		{sample: samples.Correct, wantTokens: 79, identifiers: 13, numbers: 5},
		{sample: samples.CorrectNumbers, wantTokens: 57, identifiers: 15, numbers: 16},
		{sample: samples.Errors, wantTokens: 37, wantErrors: 12, identifiers: 11},
		{sample: samples.Dots, wantTokens: 46, wantErrors: 4, identifiers: 13, numbers: 8},
		{sample: samples.Letters, wantTokens: 49, wantErrors: 9, identifiers: 15, numbers: 7},
	}

	for _, tt := range tests {
		t.Run(tt.sample, func(t *testing.T) {
			src, err := samples.Get(tt.sample)
			if err != nil {
				t.Fatalf("samples.Get() error = %v", err)
			}

			l := New()
			got := l.Tokenize(src)

			if len(got) != tt.wantTokens {
				t.Errorf("Lexer.Tokenize() tokens = %d, want %d", len(got), tt.wantTokens)
			}
			if errs := l.Errors(); len(errs) != tt.wantErrors {
				t.Errorf("Lexer.Errors() = %d %q, want %d", len(errs), errs, tt.wantErrors)
			}
			if n := l.Identifiers().Len(); n != tt.identifiers {
				t.Errorf("Lexer.Identifiers().Len() = %d, want %d", n, tt.identifiers)
			}
			if n := l.Numbers().Len(); n != tt.numbers {
				t.Errorf("Lexer.Numbers().Len() = %d, want %d", n, tt.numbers)
			}
			if n := l.Comments().Len(); n != 1 {
				t.Errorf("Lexer.Comments().Len() = %d, want 1", n)
			}

			assertCoverage(t, src, got)
		})
	}
}

// assertCoverage checks that Tokens span the source in order, leaving only whitespace gaps.
func assertCoverage(t *testing.T, src string, tokens []Token) {
	t.Helper()

	runes := []rune(src)
	prevEnd := 0
	for _, tok := range tokens {
		if tok.Pos < prevEnd {
			t.Errorf("token %+v overlaps the previous token ending at %d", tok, prevEnd)
			return
		}

		if gap := string(runes[prevEnd:tok.Pos]); strings.TrimSpace(gap) != "" {
			t.Errorf("non-whitespace gap %q before token %+v", gap, tok)
			return
		}

		if end := tok.End(); end > len(runes) || string(runes[tok.Pos:end]) != tok.Val {
			t.Errorf("token %+v does not match the source span", tok)
			return
		}
		prevEnd = tok.End()
	}

	if tail := string(runes[prevEnd:]); strings.TrimSpace(tail) != "" {
		t.Errorf("non-whitespace tail %q", tail)
	}
}

func TestLexer_Tokenize_deterministic(t *testing.T) {
	for _, name := range samples.Names() {
		src, err := samples.Get(name)
		if err != nil {
			t.Fatalf("samples.Get() error = %v", err)
		}

		reused := New()
		first := reused.Tokenize(src)
		firstErrs := reused.Errors()

		second := reused.Tokenize(src)
		fresh := New().Tokenize(src)

		if !reflect.DeepEqual(first, second) || !reflect.DeepEqual(first, fresh) {
			t.Errorf("%s: Lexer.Tokenize() is not deterministic", name)
		}
		if !reflect.DeepEqual(firstErrs, reused.Errors()) {
			t.Errorf("%s: Lexer.Errors() = %q, want %q", name, reused.Errors(), firstErrs)
		}
	}
}

func TestLexer_Tokenize_idStability(t *testing.T) {
	src, err := samples.Get(samples.Correct)
	if err != nil {
		t.Fatalf("samples.Get() error = %v", err)
	}

	codes := make(map[string]string)
	for _, tok := range New().Tokenize(src) {
		if tok.IsError() {
			continue
		}

		if prev, ok := codes[tok.Val]; ok && prev != tok.Code {
			t.Errorf("lexeme %q has codes %s & %s", tok.Val, prev, tok.Code)
		}
		codes[tok.Val] = tok.Code
	}
}

func BenchmarkLexer_Tokenize(b *testing.B) {
	src, err := samples.Get(samples.Correct)
	if err != nil {
		b.Fatalf("samples.Get() error = %v", err)
	}

	l := New(WithLogger(logrus.New()))

	b.ReportAllocs()
	b.SetBytes(int64(len(src)))
	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		l.Tokenize(src)
	}
}
