package cliapi

import (
	"fmt"

	"github.com/mwantia/cliapi/argtable"
)

// allocEntry creates the parser entry for a single argument.
// Tests replace it to simulate allocation failures.
var allocEntry = func(a Arg) (*argtable.Entry, error) {
	return newEntry(a), nil
}

func newEntry(a Arg) *argtable.Entry {
	switch a.Kind {
	case ArgInt:
		if a.Required {
			return argtable.Int1(a.Short, a.Long, a.DataType, a.Description)
		}
		return argtable.Int0(a.Short, a.Long, a.DataType, a.Description)
	case ArgString:
		if a.Required {
			return argtable.Str1(a.Short, a.Long, a.DataType, a.Description)
		}
		return argtable.Str0(a.Short, a.Long, a.DataType, a.Description)
	default:
		if a.Required {
			return argtable.Lit1(a.Short, a.Long, a.Description)
		}
		return argtable.Lit0(a.Short, a.Long, a.Description)
	}
}

// buildTable translates the arguments of cmd into a parser table of
// len(cmd.Args)+1 entries. The sentinel can record len(cmd.Args)+1 errors.
func buildTable(cmd *Command) (*argtable.Table, error) {
	n := len(cmd.Args)
	entries := make([]*argtable.Entry, 0, n+1)

	for i, a := range cmd.Args {
		entry, err := allocEntry(a)
		if err != nil || entry == nil {
			clear(entries)
			return nil, fmt.Errorf("%w: argument %d of command %q", ErrOutOfMemory, i, cmd.Name)
		}
		entries = append(entries, entry)
	}

	table, err := argtable.NewTable(append(entries, argtable.End(n+1))...)
	if err != nil {
		clear(entries)
		return nil, fmt.Errorf("%w: command %q: %v", ErrInvalidArgument, cmd.Name, err)
	}

	return table, nil
}
