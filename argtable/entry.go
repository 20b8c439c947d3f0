// Package argtable implements a table driven option parser in the style of the
// argtable family of C libraries. A command describes its options as an ordered
// Table of entries terminated by an End sentinel, Parse fills the entries from a
// token vector and records any problems in the sentinel.
package argtable

import (
	"fmt"
	"strings"
)

// Kind identifies what an entry consumes.
type Kind int

const (
	KindInt Kind = iota
	KindStr
	KindLit
	KindEnd
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindStr:
		return "str"
	case KindLit:
		return "lit"
	case KindEnd:
		return "end"
	default:
		return "unknown"
	}
}

// Entry is one slot of a parser table.
type Entry struct {
	kind Kind

	Short    string // Zero or more single letter aliases, e.g. "m" or "vV"
	Long     string // Long alias without the leading dashes
	DataType string // Value placeholder shown in syntax and glossary
	Glossary string // Description shown in help output

	MinCount int
	MaxCount int

	ints  []int
	strs  []string
	count int

	// end sentinel state
	errors    []ParseError
	maxErrors int
	nerrors   int
}

// Int0 creates an optional integer entry.
func Int0(short, long, datatype, glossary string) *Entry {
	return newEntry(KindInt, 0, 1, short, long, datatype, glossary)
}

// Int1 creates a required integer entry.
func Int1(short, long, datatype, glossary string) *Entry {
	return newEntry(KindInt, 1, 1, short, long, datatype, glossary)
}

// Str0 creates an optional string entry.
func Str0(short, long, datatype, glossary string) *Entry {
	return newEntry(KindStr, 0, 1, short, long, datatype, glossary)
}

// Str1 creates a required string entry.
func Str1(short, long, datatype, glossary string) *Entry {
	return newEntry(KindStr, 1, 1, short, long, datatype, glossary)
}

// Lit0 creates an optional literal flag.
func Lit0(short, long, glossary string) *Entry {
	return newEntry(KindLit, 0, 1, short, long, "", glossary)
}

// Lit1 creates a required literal flag.
func Lit1(short, long, glossary string) *Entry {
	return newEntry(KindLit, 1, 1, short, long, "", glossary)
}

// End creates the sentinel that terminates a table and stores up to maxErrors parse errors.
func End(maxErrors int) *Entry {
	if maxErrors < 1 {
		maxErrors = 1
	}

	return &Entry{
		kind:      KindEnd,
		maxErrors: maxErrors,
		errors:    make([]ParseError, 0, maxErrors),
	}
}

func newEntry(kind Kind, minCount, maxCount int, short, long, datatype, glossary string) *Entry {
	if datatype == "" {
		switch kind {
		case KindInt:
			datatype = "<int>"
		case KindStr:
			datatype = "<string>"
		}
	}

	return &Entry{
		kind:     kind,
		Short:    strings.TrimLeft(short, "-"),
		Long:     strings.TrimLeft(long, "-"),
		DataType: datatype,
		Glossary: glossary,
		MinCount: minCount,
		MaxCount: maxCount,
	}
}

func (e *Entry) Kind() Kind {
	return e.kind
}

// Count returns how often the entry was seen during the last Parse.
func (e *Entry) Count() int {
	return e.count
}

// Int returns the i-th integer value, or 0 when there is none.
func (e *Entry) Int(i int) int {
	if i < 0 || i >= len(e.ints) {
		return 0
	}
	return e.ints[i]
}

// Str returns the i-th string value, or "" when there is none.
func (e *Entry) Str(i int) string {
	if i < 0 || i >= len(e.strs) {
		return ""
	}
	return e.strs[i]
}

// Positional reports whether the entry binds bare tokens instead of options.
func (e *Entry) Positional() bool {
	return e.Short == "" && e.Long == "" && e.kind != KindLit && e.kind != KindEnd
}

// Errors returns the recorded errors of an end sentinel.
func (e *Entry) Errors() []ParseError {
	return e.errors
}

// ErrorCount returns every error seen during the last parse, stored or not.
func (e *Entry) ErrorCount() int {
	return e.nerrors
}

// MaxErrors returns the capacity of an end sentinel.
func (e *Entry) MaxErrors() int {
	return e.maxErrors
}

func (e *Entry) hasShort(c byte) bool {
	return strings.IndexByte(e.Short, c) >= 0
}

func (e *Entry) reset() {
	e.count = 0
	e.ints = e.ints[:0]
	e.strs = e.strs[:0]
	if e.kind == KindEnd {
		e.errors = e.errors[:0]
		e.nerrors = 0
	}
}

func (e *Entry) scan(value string) error {
	switch e.kind {
	case KindInt:
		v, err := ParseInt(value)
		if err != nil {
			return err
		}
		e.ints = append(e.ints, v)
	case KindStr:
		e.strs = append(e.strs, value)
	case KindLit:
	default:
		return fmt.Errorf("entry of kind %s cannot hold values", e.kind)
	}

	e.count++
	return nil
}

func (e *Entry) record(pe ParseError) {
	e.nerrors++
	if len(e.errors) < e.maxErrors {
		e.errors = append(e.errors, pe)
	}
}
