// Package transport provides the byte streams a console runs on.
package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

var (
	ErrNoEscapes   = errors.New("transport: terminal does not support escape sequences")
	ErrNotOpen     = errors.New("transport: not open")
	ErrUnsupported = errors.New("transport: not supported on this platform")
)

// Kind names the peripheral a console is attached to.
type Kind int

const (
	UART Kind = iota
	USBCDC
	USBSerialJTAG
)

func (k Kind) String() string {
	switch k {
	case UART:
		return "uart"
	case USBCDC:
		return "usb-cdc"
	case USBSerialJTAG:
		return "usb-serial-jtag"
	default:
		return "unknown"
	}
}

func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "uart":
		return UART, nil
	case "usb-cdc", "cdc", "usbcdc":
		return USBCDC, nil
	case "usb-serial-jtag", "jtag", "usbserialjtag":
		return USBSerialJTAG, nil
	default:
		return UART, fmt.Errorf("unknown transport kind: %q", s)
	}
}

type Transport interface {
	io.Reader
	io.Writer

	Kind() Kind

	// Open configures line endings and unbuffered input.
	Open(ctx context.Context) error

	// Probe returns nil when the remote terminal understands escape sequences.
	Probe() error

	// LocalEcho reports whether received characters must be echoed by the reader.
	LocalEcho() bool

	Close() error
}

// ErrorStream is implemented by transports that carry diagnostics on a
// stream separate from the console output.
type ErrorStream interface {
	Stderr() io.Writer
}
