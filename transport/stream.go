package transport

import (
	"context"
	"io"
)

// Stream runs a console over an arbitrary reader and writer. Received line
// endings are translated, output is written to w untouched.
type Stream struct {
	r     io.Reader
	w     io.Writer
	kind  Kind
	smart bool
}

func NewStream(r io.Reader, w io.Writer, kind Kind, smart bool) *Stream {
	return &Stream{
		r:     NewReader(r),
		w:     w,
		kind:  kind,
		smart: smart,
	}
}

func (s *Stream) Read(p []byte) (int, error) {
	return s.r.Read(p)
}

func (s *Stream) Write(p []byte) (int, error) {
	return s.w.Write(p)
}

func (s *Stream) Kind() Kind {
	return s.kind
}

func (s *Stream) Open(ctx context.Context) error {
	return ctx.Err()
}

func (s *Stream) Probe() error {
	if !s.smart {
		return ErrNoEscapes
	}
	return nil
}

func (s *Stream) LocalEcho() bool {
	return false
}

func (s *Stream) Close() error {
	if c, ok := s.w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
