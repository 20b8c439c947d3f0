//go:build !linux

package transport

import "context"

// Serial device nodes are only configurable on Linux.
type Serial struct {
	kind Kind
}

func NewSerial(device string, baud int, kind Kind) *Serial {
	return &Serial{kind: kind}
}

func (s *Serial) Open(ctx context.Context) error { return ErrUnsupported }
func (s *Serial) Read(p []byte) (int, error)     { return 0, ErrUnsupported }
func (s *Serial) Write(p []byte) (int, error)    { return 0, ErrUnsupported }
func (s *Serial) Kind() Kind                     { return s.kind }
func (s *Serial) Probe() error                   { return ErrUnsupported }
func (s *Serial) LocalEcho() bool                { return true }
func (s *Serial) Close() error                   { return nil }
