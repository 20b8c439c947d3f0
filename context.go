package cliapi

import (
	"context"
	"io"
)

// Value is the parsed result of one argument.
// Unsupplied arguments have Count 0 and the zero value of their kind.
type Value struct {
	Kind  ArgKind
	Count int
	Int   int
	Str   string
	Flag  bool
}

// Context is handed to a Handler. Args is aligned with Command.Args.
// Strings in Args are only valid for the duration of the call.
type Context struct {
	Argc     int
	Argv     []string
	Args     []Value
	ArgCount int

	// Ctx is the context Run was called with
	Ctx context.Context

	// Out is the console output
	Out io.Writer
}

func (c *Context) value(i int) Value {
	if i < 0 || i >= len(c.Args) {
		return Value{}
	}
	return c.Args[i]
}

// Count returns how often argument i was given.
func (c *Context) Count(i int) int {
	return c.value(i).Count
}

func (c *Context) Int(i int) int {
	return c.value(i).Int
}

func (c *Context) Str(i int) string {
	return c.value(i).Str
}

func (c *Context) Flag(i int) bool {
	return c.value(i).Flag
}
