package transport

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"
)

// Stdio is the process terminal, reported as the given peripheral kind.
type Stdio struct {
	in   *os.File
	out  *os.File
	err  *os.File
	kind Kind
	r    io.Reader
}

func NewStdio(kind Kind) *Stdio {
	return &Stdio{
		in:   os.Stdin,
		out:  os.Stdout,
		err:  os.Stderr,
		kind: kind,
	}
}

func (s *Stdio) Read(p []byte) (int, error) {
	if s.r == nil {
		return 0, ErrNotOpen
	}
	return s.r.Read(p)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) Kind() Kind {
	return s.kind
}

// Stderr is the process error stream.
func (s *Stdio) Stderr() io.Writer {
	return s.err
}

func (s *Stdio) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.r = NewReader(s.in)
	return nil
}

// Terminal reports whether both ends of the process stdio are terminals.
func (s *Stdio) Terminal() bool {
	return term.IsTerminal(int(s.in.Fd())) && term.IsTerminal(int(s.out.Fd()))
}

func (s *Stdio) Probe() error {
	if !s.Terminal() {
		return ErrNoEscapes
	}

	switch os.Getenv("TERM") {
	case "", "dumb", "cons25", "emacs":
		return ErrNoEscapes
	}
	return nil
}

func (s *Stdio) LocalEcho() bool {
	return false
}

func (s *Stdio) Close() error {
	s.r = nil
	return nil
}
