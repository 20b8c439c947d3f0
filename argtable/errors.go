package argtable

import (
	"errors"
	"fmt"
)

var (
	ErrNoEnd     = errors.New("argtable: table is not terminated by an end entry")
	ErrFreed     = errors.New("argtable: table already freed")
	ErrDuplicate = errors.New("argtable: option alias used twice")
	ErrBadInt    = errors.New("argtable: invalid integer")
)

// ErrorCode classifies a parse error.
type ErrorCode int

const (
	ErrMissingOption ErrorCode = iota + 1
	ErrUnknownOption
	ErrMissingValue
	ErrInvalidValue
	ErrUnexpectedArg
	ErrUnexpectedValue
)

// ParseError is one problem found while parsing a token vector.
type ParseError struct {
	Code  ErrorCode
	Entry *Entry // nil for unknown options and unexpected arguments
	Arg   string
}

func (pe ParseError) Error() string {
	switch pe.Code {
	case ErrMissingOption:
		return fmt.Sprintf("missing option %s", optionSyntax(pe.Entry))
	case ErrUnknownOption:
		return fmt.Sprintf("invalid option \"%s\"", pe.Arg)
	case ErrMissingValue:
		return fmt.Sprintf("option \"%s\" requires an argument", pe.Arg)
	case ErrInvalidValue:
		return fmt.Sprintf("invalid argument \"%s\" to option %s", pe.Arg, optionSyntax(pe.Entry))
	case ErrUnexpectedArg:
		return fmt.Sprintf("unexpected argument \"%s\"", pe.Arg)
	case ErrUnexpectedValue:
		return fmt.Sprintf("option \"%s\" does not take an argument", pe.Arg)
	default:
		return "unknown error"
	}
}
