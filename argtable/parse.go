package argtable

import "strings"

// Parse resets every entry of t and fills it from argv. argv[0] is the program
// name and is skipped. The returned value is the number of errors found; the
// errors themselves are kept in the End sentinel up to its capacity.
func Parse(t *Table, argv []string) int {
	if t.Freed() {
		return 1
	}

	t.reset()
	end := t.End()

	if len(argv) == 0 {
		return 0
	}

	args := argv[1:]
	var positional []string

	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}

		if strings.HasPrefix(arg, "--") {
			i = parseLong(t, end, args, i)
			continue
		}

		if strings.HasPrefix(arg, "-") && len(arg) > 1 {
			i = parseShort(t, end, args, i)
			continue
		}

		positional = append(positional, arg)
	}

	bindPositional(t, end, positional)

	for _, e := range t.options() {
		if e.count < e.MinCount {
			end.record(ParseError{Code: ErrMissingOption, Entry: e})
		}
	}

	return end.nerrors
}

func parseLong(t *Table, end *Entry, args []string, i int) int {
	arg := args[i]
	name, value, hasValue := strings.Cut(arg[2:], "=")

	e := t.findLong(name)
	if e == nil {
		end.record(ParseError{Code: ErrUnknownOption, Arg: arg})
		return i
	}

	if e.kind == KindLit {
		if hasValue {
			end.record(ParseError{Code: ErrUnexpectedValue, Entry: e, Arg: "--" + name})
			return i
		}
		_ = e.scan("")
		return i
	}

	if !hasValue {
		if i+1 >= len(args) {
			end.record(ParseError{Code: ErrMissingValue, Entry: e, Arg: "--" + name})
			return i
		}
		i++
		value = args[i]
	}

	if err := e.scan(value); err != nil {
		end.record(ParseError{Code: ErrInvalidValue, Entry: e, Arg: value})
	}
	return i
}

func parseShort(t *Table, end *Entry, args []string, i int) int {
	letters := args[i][1:]

	for j := 0; j < len(letters); j++ {
		e := t.findShort(letters[j])
		if e == nil {
			end.record(ParseError{Code: ErrUnknownOption, Arg: "-" + letters[j:j+1]})
			continue
		}

		if e.kind == KindLit {
			_ = e.scan("")
			continue
		}

		var value string
		switch {
		case j+1 < len(letters):
			value = letters[j+1:]
		case i+1 < len(args):
			i++
			value = args[i]
		default:
			end.record(ParseError{Code: ErrMissingValue, Entry: e, Arg: "-" + letters[j:j+1]})
			return i
		}

		if err := e.scan(value); err != nil {
			end.record(ParseError{Code: ErrInvalidValue, Entry: e, Arg: value})
		}
		return i
	}

	return i
}

func bindPositional(t *Table, end *Entry, tokens []string) {
	var slots []*Entry
	for _, e := range t.options() {
		if e.Positional() {
			slots = append(slots, e)
		}
	}

	next := 0
	for _, token := range tokens {
		for next < len(slots) && slots[next].count >= slots[next].MaxCount {
			next++
		}
		if next >= len(slots) {
			end.record(ParseError{Code: ErrUnexpectedArg, Arg: token})
			continue
		}

		if err := slots[next].scan(token); err != nil {
			end.record(ParseError{Code: ErrInvalidValue, Entry: slots[next], Arg: token})
		}
	}
}
