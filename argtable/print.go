package argtable

import (
	"fmt"
	"io"
	"strings"
)

// DefaultGlossaryFormat lays out one option per line, alias column first.
const DefaultGlossaryFormat = "  %-20s %s\n"

// PrintErrors writes the errors recorded in end, one line each, prefixed with progname.
func PrintErrors(w io.Writer, end *Entry, progname string) {
	if end == nil || end.kind != KindEnd {
		return
	}

	for _, pe := range end.errors {
		fmt.Fprintf(w, "%s: %s\n", progname, pe.Error())
	}

	if dropped := end.nerrors - len(end.errors); dropped > 0 {
		fmt.Fprintf(w, "%s: too many errors (%d not shown)\n", progname, dropped)
	}
}

// Syntax renders the compact usage line of t, optional entries in brackets.
func Syntax(t *Table) string {
	if t.Freed() {
		return ""
	}

	parts := make([]string, 0, len(t.entries)-1)
	for _, e := range t.options() {
		s := optionSyntax(e)
		if e.MinCount == 0 {
			s = "[" + s + "]"
		}
		parts = append(parts, s)
	}

	return strings.Join(parts, " ")
}

// Glossary writes one line per entry using format, which receives the alias
// column and the glossary text.
func Glossary(w io.Writer, t *Table, format string) {
	if t.Freed() {
		return
	}
	if format == "" {
		format = DefaultGlossaryFormat
	}

	for _, e := range t.options() {
		if e.Glossary == "" {
			continue
		}
		fmt.Fprintf(w, format, glossaryAlias(e), e.Glossary)
	}
}

func optionSyntax(e *Entry) string {
	if e == nil {
		return ""
	}
	if e.Positional() {
		return e.DataType
	}

	var b strings.Builder
	if e.Short != "" {
		b.WriteString("-")
		b.WriteByte(e.Short[0])
	}
	if e.Long != "" {
		if b.Len() > 0 {
			b.WriteString("|")
		}
		b.WriteString("--")
		b.WriteString(e.Long)
	}

	if e.DataType != "" {
		if e.Long != "" {
			b.WriteString("=")
		} else {
			b.WriteString(" ")
		}
		b.WriteString(e.DataType)
	}

	return b.String()
}

func glossaryAlias(e *Entry) string {
	if e.Positional() {
		return e.DataType
	}

	var aliases []string
	for i := 0; i < len(e.Short); i++ {
		aliases = append(aliases, "-"+e.Short[i:i+1])
	}
	if e.Long != "" {
		aliases = append(aliases, "--"+e.Long)
	}

	alias := strings.Join(aliases, ", ")
	if e.DataType != "" {
		if e.Long != "" {
			alias += "=" + e.DataType
		} else {
			alias += " " + e.DataType
		}
	}

	return alias
}
