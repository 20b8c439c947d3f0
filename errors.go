package cliapi

import (
	"context"
	"errors"

	"github.com/mwantia/cliapi/host"
	"github.com/mwantia/cliapi/nvs"
	"github.com/mwantia/cliapi/storage"
	"github.com/mwantia/cliapi/transport"
)

var (
	// Registration errors
	ErrInvalidArgument        = errors.New("cliapi: invalid argument")
	ErrOutOfMemory            = errors.New("cliapi: out of memory")
	ErrHostRegistrationFailed = errors.New("cliapi: host registration failed")

	// Lifecycle errors
	ErrInvalidState = errors.New("cliapi: invalid state")
	ErrNotFound     = errors.New("cliapi: not found")
)

// ReturnCode is the integer a command returns, read as a firmware error code.
type ReturnCode int

const (
	CodeOK           ReturnCode = 0
	CodeFail         ReturnCode = -1
	CodeNoMem        ReturnCode = 0x101
	CodeInvalidArg   ReturnCode = 0x102
	CodeInvalidState ReturnCode = 0x103
	CodeInvalidSize  ReturnCode = 0x104
	CodeNotFound     ReturnCode = 0x105
	CodeNotSupported ReturnCode = 0x106
	CodeTimeout      ReturnCode = 0x107
)

var codeNames = map[ReturnCode]string{
	CodeOK:           "ESP_OK",
	CodeFail:         "ESP_FAIL",
	CodeNoMem:        "ESP_ERR_NO_MEM",
	CodeInvalidArg:   "ESP_ERR_INVALID_ARG",
	CodeInvalidState: "ESP_ERR_INVALID_STATE",
	CodeInvalidSize:  "ESP_ERR_INVALID_SIZE",
	CodeNotFound:     "ESP_ERR_NOT_FOUND",
	CodeNotSupported: "ESP_ERR_NOT_SUPPORTED",
	CodeTimeout:      "ESP_ERR_TIMEOUT",
}

// Name returns the symbolic name of the code, or "UNKNOWN ERROR".
func (rc ReturnCode) Name() string {
	if name, ok := codeNames[rc]; ok {
		return name
	}
	return "UNKNOWN ERROR"
}

// Code maps err onto the closest firmware error code.
func Code(err error) ReturnCode {
	switch {
	case err == nil:
		return CodeOK
	case errors.Is(err, ErrOutOfMemory), errors.Is(err, nvs.ErrNoFreePages):
		return CodeNoMem
	case errors.Is(err, ErrInvalidArgument), errors.Is(err, host.ErrInvalidArgument), errors.Is(err, host.ErrSyntax), errors.Is(err, nvs.ErrInvalidName):
		return CodeInvalidArg
	case errors.Is(err, ErrInvalidState), errors.Is(err, host.ErrInvalidState), errors.Is(err, nvs.ErrNotOpen), errors.Is(err, storage.ErrNotMounted):
		return CodeInvalidState
	case errors.Is(err, ErrNotFound), errors.Is(err, host.ErrNotFound), errors.Is(err, nvs.ErrNotFound), errors.Is(err, storage.ErrNotExist):
		return CodeNotFound
	case errors.Is(err, transport.ErrUnsupported):
		return CodeNotSupported
	case errors.Is(err, context.DeadlineExceeded):
		return CodeTimeout
	default:
		return CodeFail
	}
}

// ErrorName returns the symbolic firmware name for err.
func ErrorName(err error) string {
	return Code(err).Name()
}
