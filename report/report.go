// SPDX-License-Identifier: MIT

// Package report renders the results of a lexer scan for display.
package report

import (
	"errors"
	"fmt"
	"strings"

	"gitlab.com/fisherprime/rlexer/lexer"
)

type (
	// Scan is the read-only view of a finished scan; implemented by *lexer.Lexer.
	Scan interface {
		Source() string
		Tokens() []lexer.Token
		Errors() []string

		Keywords() *lexer.Table[string]
		Delimiters() *lexer.Table[string]
		Operators() *lexer.Table[string]
		Identifiers() *lexer.Table[string]
		Numbers() *lexer.Table[string]
		Strings() *lexer.Table[string]
		Comments() *lexer.Table[string]
	}

	// Stats counts a scan's tokens & table entries.
	Stats struct {
		Tokens      int
		Identifiers int
		Numbers     int
		Strings     int
		Comments    int
		Keywords    int
		Operations  int
		Errors      int
	}

	// ErrorStats splits a scan's errors by cause.
	ErrorStats struct {
		Total        int
		DecimalPoint int
		Letters      int
		Other        int
	}

	section struct {
		title  string
		letter byte
		table  *lexer.Table[string]
		empty  string
	}
)

// Number classes.
const (
	ClassInteger       = "integer"
	ClassFixedPoint    = "fixed-point"
	ClassFloatingPoint = "floating-point"
)

const (
	summaryLimit = 10
	ruleWidth    = 80
	subRuleWidth = 40
)

var (
	rule    = strings.Repeat("=", ruleWidth)
	subRule = strings.Repeat("-", subRuleWidth)

	decimalPointErrs = []error{
		lexer.ErrRepeatedDecimalPoint,
		lexer.ErrMultipleSeparators,
		lexer.ErrMantissaSeparators,
		lexer.ErrExponentDecimalPoint,
	}
	letterErrs = []error{lexer.ErrLettersInNumber, lexer.ErrNumberLetter}
)

// ClassifyNumber names the class of a valid numeric literal.
func ClassifyNumber(num string) string {
	switch {
	case !strings.Contains(num, "."):
		return ClassInteger
	case strings.ContainsAny(num, "eE"):
		return ClassFloatingPoint
	default:
		return ClassFixedPoint
	}
}

// NewStats counts the tokens & table entries of a scan.
func NewStats(s Scan) (stats Stats) {
	tokens := s.Tokens()

	stats = Stats{
		Tokens:      len(tokens),
		Identifiers: s.Identifiers().Len(),
		Numbers:     s.Numbers().Len(),
		Strings:     s.Strings().Len(),
		Comments:    s.Comments().Len(),
	}

	for _, t := range tokens {
		switch t.Kind {
		case lexer.KindKeyword:
			stats.Keywords++
		case lexer.KindOperation:
			stats.Operations++
		case lexer.KindError:
			stats.Errors++
		}
	}

	return
}

// NewErrorStats classifies the error tokens of a scan.
func NewErrorStats(tokens []lexer.Token) (stats ErrorStats) {
	for _, t := range tokens {
		if !t.IsError() {
			continue
		}
		stats.Total++

		switch {
		case isAny(t.Err, decimalPointErrs):
			stats.DecimalPoint++
		case isAny(t.Err, letterErrs):
			stats.Letters++
		default:
			stats.Other++
		}
	}

	return
}

func isAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}

	return false
}

// Sequence renders the numbered token listing.
func Sequence(tokens []lexer.Token) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%-6s %-8s %-25s %-8s %-8s %s\n", "#", "Code", "Value", "Line", "Column", "Status")
	b.WriteString(strings.Repeat("-", 90) + "\n")

	for index, t := range tokens {
		status := "OK"
		if t.IsError() {
			status = "ERROR"
		}

		fmt.Fprintf(&b, "%6d | %-8s | %-25s | %8d | %8d | %s\n", index+1, t.Code, t.Val, t.Line, t.Column, status)
		if t.Err != nil {
			fmt.Fprintf(&b, "       └─ %s\n", t.ErrMsg())
		}
	}

	return b.String()
}

// Program renders each source line with its lexemes replaced by their codes, followed by a
// summary of the tables.
func Program(s Scan) string {
	tokens := s.Tokens()
	if len(tokens) < 1 {
		return "No data to display, run the analysis first."
	}

	var b strings.Builder
	b.WriteString(rule + "\nLEXEME PROGRAM\n" + rule + "\n\n")

	lines := byLine(tokens)
	for _, line := range lineNumbers(tokens) {
		fmt.Fprintf(&b, "Line %3d: %s\n", line, substitute(lines[line]))
	}

	b.WriteString("\n" + rule + "\nLEXEME MAPPING:\n" + subRule + "\n")

	truncated := false
	for _, sec := range []section{
		{title: "Keywords", letter: lexer.KindKeyword.Letter(), table: s.Keywords()},
		{title: "Identifiers", letter: lexer.KindIdentifier.Letter(), table: s.Identifiers()},
		{title: "Numbers", letter: lexer.KindNumber.Letter(), table: s.Numbers()},
		{title: "Comments", letter: lexer.KindComment.Letter(), table: s.Comments()},
	} {
		fmt.Fprintf(&b, "\n%s:\n", sec.title)

		entries := sec.table.Entries()
		if len(entries) > summaryLimit {
			entries, truncated = entries[:summaryLimit], true
		}
		for _, e := range entries {
			fmt.Fprintf(&b, "  %c%4d : %s\n", sec.letter, e.ID, e.Key)
		}
	}

	if truncated {
		b.WriteString("\n... and more (see the full tables)\n")
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// CleanProgram renders one line per source line with lexemes replaced by their codes.
func CleanProgram(source string, tokens []lexer.Token) string {
	if source == "" || len(tokens) < 1 {
		return ""
	}

	lines := byLine(tokens)
	srcLines := strings.Split(strings.TrimSuffix(source, "\n"), "\n")

	out := make([]string, len(srcLines))
	for index := range srcLines {
		out[index] = substitute(lines[index+1])
	}

	return strings.Join(out, "\n")
}

// Tables renders every lexer table & the error statistics.
func Tables(s Scan) string {
	var b strings.Builder
	b.WriteString(rule + "\nLEXEME TABLES\n" + rule + "\n")

	sections := []section{
		{title: "1. KEYWORDS", letter: lexer.KindKeyword.Letter(), table: s.Keywords()},
		{title: "2. DELIMITERS", letter: lexer.KindDelimiter.Letter(), table: s.Delimiters()},
		{title: "3. OPERATIONS", letter: lexer.KindOperation.Letter(), table: s.Operators()},
		{title: "4. IDENTIFIERS", letter: lexer.KindIdentifier.Letter(), table: s.Identifiers(), empty: "No identifiers"},
		{title: "5. NUMBERS", letter: lexer.KindNumber.Letter(), table: s.Numbers(), empty: "No numbers"},
		{title: "6. STRINGS", letter: lexer.KindString.Letter(), table: s.Strings(), empty: "No strings"},
		{title: "7. COMMENTS", letter: lexer.KindComment.Letter(), table: s.Comments(), empty: "No comments"},
	}

	for _, sec := range sections {
		fmt.Fprintf(&b, "\n%s:\n%s\n", sec.title, subRule)

		entries := sec.table.Entries()
		if len(entries) < 1 && sec.empty != "" {
			fmt.Fprintf(&b, "  %s\n", sec.empty)
			continue
		}

		for _, e := range entries {
			switch sec.letter {
			case lexer.KindDelimiter.Letter():
				// Quote whitespace delimiters.
				fmt.Fprintf(&b, "  %c%4d : %s\n", sec.letter, e.ID, strings.Trim(fmt.Sprintf("%q", e.Key), `"`))
			case lexer.KindNumber.Letter():
				fmt.Fprintf(&b, "  %c%4d : %-15s - %s\n", sec.letter, e.ID, e.Key, ClassifyNumber(e.Key))
			default:
				fmt.Fprintf(&b, "  %c%4d : %s\n", sec.letter, e.ID, e.Key)
			}
		}
	}

	stats := NewErrorStats(s.Tokens())
	fmt.Fprintf(&b, "\n8. ERROR STATISTICS:\n%s\n", subRule)
	fmt.Fprintf(&b, "  Total errors: %d\n", stats.Total)
	fmt.Fprintf(&b, "  - Invalid decimal point usage: %d\n", stats.DecimalPoint)
	fmt.Fprintf(&b, "  - Letters in numbers: %d\n", stats.Letters)
	fmt.Fprintf(&b, "  - Other errors: %d", stats.Other)

	return b.String()
}

// byLine groups tokens by their starting line, keeping scan order.
func byLine(tokens []lexer.Token) map[int][]lexer.Token {
	lines := make(map[int][]lexer.Token)
	for _, t := range tokens {
		lines[t.Line] = append(lines[t.Line], t)
	}

	return lines
}

// lineNumbers lists the distinct token lines in ascending order.
func lineNumbers(tokens []lexer.Token) (numbers []int) {
	for _, t := range tokens {
		if len(numbers) < 1 || numbers[len(numbers)-1] != t.Line {
			numbers = append(numbers, t.Line)
		}
	}

	return
}

// substitute renders a line's tokens at their source columns.
func substitute(tokens []lexer.Token) string {
	var b strings.Builder

	current := 1
	for _, t := range tokens {
		if t.Column > current {
			b.WriteString(strings.Repeat(" ", t.Column-current))
		}

		if t.IsError() {
			fmt.Fprintf(&b, "[%s:%s]", t.Code, t.Val)
		} else {
			b.WriteString(t.Code)
		}
		current = t.Column + len([]rune(t.Val))
	}

	return b.String()
}
