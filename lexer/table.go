// SPDX-License-Identifier: MIT
package lexer

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// Constraint is a wrapper interface containing comparable & constraints.Ordered.
type Constraint interface {
	comparable
	constraints.Ordered
}

type (
	// Table maps literals to positive ids, preserving insertion order.
	//
	// Only the Lexer mutates a Table; callers get a read-only view.
	Table[K Constraint] struct {
		entries []Entry[K]
		ids     map[K]int
	}

	// Entry is a single Table row.
	Entry[K Constraint] struct {
		Key K
		ID  int
	}
)

// Static table contents.
var (
	keywordList = []string{
		"if", "else", "while", "for", "in", "next", "break",
		"function", "return", "TRUE", "FALSE", "NULL", "NA",
		"Inf", "NaN", "repeat", "switch", "try", "tryCatch",
		"stop", "warning", "require", "library", "source",
		"setwd", "getwd", "list", "matrix", "data.frame",
		"c", "cbind", "rbind", "length", "nrow", "ncol",
		"summary", "print", "cat", "paste", "sprintf",
		"subset", "merge", "apply", "lapply", "sapply",
		"tapply", "mapply", "aggregate", "plot", "ggplot",
		"lm", "glm", "summary.lm", "anova", "predict",
	}

	delimiterList = []string{
		".", ",", ";", ":", "::", ":::",
		"(", ")", "[", "]", "[[", "]]",
		"{", "}", "'", "\"", "`", "$", "@",
		"\\", "\n", "\t", " ", "\r",
	}

	operatorList = []string{
		"+", "-", "*", "/", "^", "**",
		"%%", "%/%", "%*%", "%in%",
		"<", ">", "<=", ">=", "==", "!=",
		"=", "<-", "<<-", "->", "->>",
		"&", "|", "!", "&&", "||",
		"~", ":", "$", "@",
		"%>%", "%T>%", "%<>%", "%$%",
	}
)

// NewTable instantiates an empty Table.
func NewTable[K Constraint]() *Table[K] {
	return &Table[K]{ids: make(map[K]int)}
}

// newStaticTable numbers keys in the given order, starting at 1.
func newStaticTable[K Constraint](keys []K) *Table[K] {
	t := NewTable[K]()
	for index, key := range keys {
		t.set(key, index+1)
	}

	return t
}

// newKeywordTable numbers the keywords after a byte-wise (case-sensitive) sort.
func newKeywordTable() *Table[string] {
	keys := slices.Clone(keywordList)
	slices.Sort(keys)

	return newStaticTable(keys)
}

func newDelimiterTable() *Table[string] { return newStaticTable(delimiterList) }

func newOperatorTable() *Table[string] { return newStaticTable(operatorList) }

// Lookup obtains the id of a key.
func (t *Table[K]) Lookup(key K) (id int, ok bool) {
	id, ok = t.ids[key]
	return
}

// Len is the number of entries in the Table.
func (t *Table[K]) Len() int { return len(t.entries) }

// Entries lists the Table's rows in insertion order.
func (t *Table[K]) Entries() []Entry[K] { return slices.Clone(t.entries) }

// intern returns the id of key, assigning the next free id on first sight.
func (t *Table[K]) intern(key K) int {
	if id, ok := t.ids[key]; ok {
		return id
	}

	id := len(t.entries) + 1
	t.set(key, id)

	return id
}

// set assigns an explicit id; a repeated key keeps its row & takes the new id.
func (t *Table[K]) set(key K, id int) {
	if _, ok := t.ids[key]; ok {
		for index := range t.entries {
			if t.entries[index].Key == key {
				t.entries[index].ID = id
				break
			}
		}
	} else {
		t.entries = append(t.entries, Entry[K]{Key: key, ID: id})
	}

	t.ids[key] = id
}

// reset clears the Table, keeping its allocations.
func (t *Table[K]) reset() {
	t.entries = t.entries[:0]
	for key := range t.ids {
		delete(t.ids, key)
	}
}
