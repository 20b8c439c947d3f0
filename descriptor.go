package cliapi

import (
	"fmt"
	"strings"
	"unicode"
)

// ArgKind is the type of value an argument carries.
type ArgKind int

const (
	ArgInt ArgKind = iota
	ArgString
	ArgFlag
)

func (k ArgKind) String() string {
	switch k {
	case ArgInt:
		return "int"
	case ArgString:
		return "string"
	case ArgFlag:
		return "flag"
	default:
		return fmt.Sprintf("ArgKind(%d)", int(k))
	}
}

// Arg declares one option or positional argument of a command.
// A positional argument leaves Short and Long empty and sets DataType.
type Arg struct {
	Short       string // Single letter, without the dash
	Long        string // Without the leading dashes
	DataType    string // Shown in help, e.g. "<text>"
	Description string
	Kind        ArgKind
	Required    bool
}

// Positional reports whether a is bound by position instead of by name.
func (a Arg) Positional() bool {
	return a.Short == "" && a.Long == ""
}

func (a Arg) validate() error {
	switch a.Kind {
	case ArgInt, ArgString, ArgFlag:
	default:
		return fmt.Errorf("unknown kind %s", a.Kind)
	}

	if a.Description == "" {
		return fmt.Errorf("missing description")
	}
	if len(a.Short) > 1 {
		return fmt.Errorf("short name %q must be a single letter", a.Short)
	}
	if a.Short != "" && !unicode.IsLetter(rune(a.Short[0])) && !unicode.IsDigit(rune(a.Short[0])) {
		return fmt.Errorf("short name %q must be a letter", a.Short)
	}
	if strings.ContainsAny(a.Long, " \t=") || strings.HasPrefix(a.Long, "-") {
		return fmt.Errorf("invalid long name %q", a.Long)
	}

	if a.Positional() {
		if a.Kind == ArgFlag {
			return fmt.Errorf("flag %q needs a short or long name", a.Description)
		}
		if a.DataType == "" {
			return fmt.Errorf("positional argument %q needs a data type", a.Description)
		}
	}

	return nil
}

// Handler is the callback of a declared command.
type Handler func(ctx *Context) int

// RawHandler receives the unparsed argument vector. argv[0] is the command name.
type RawHandler func(argv []string) int

// Command declares a command and its arguments. The registry keeps a reference
// to a registered Command, so it must not be modified afterwards.
type Command struct {
	Name string
	Help string
	Hint string // Optional, derived from the arguments when empty
	Func Handler
	Args []Arg
}

func (c *Command) validate(maxArgs int) error {
	if c == nil {
		return fmt.Errorf("%w: command is nil", ErrInvalidArgument)
	}
	if c.Name == "" {
		return fmt.Errorf("%w: command name is empty", ErrInvalidArgument)
	}
	if c.Func == nil {
		return fmt.Errorf("%w: command %q has no callback", ErrInvalidArgument, c.Name)
	}
	if len(c.Args) > maxArgs {
		return fmt.Errorf("%w: command %q declares %d arguments, at most %d allowed", ErrInvalidArgument, c.Name, len(c.Args), maxArgs)
	}

	for i, a := range c.Args {
		if err := a.validate(); err != nil {
			return fmt.Errorf("%w: command %q argument %d: %v", ErrInvalidArgument, c.Name, i, err)
		}
	}

	return nil
}
