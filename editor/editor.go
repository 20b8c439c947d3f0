// Package editor reads command lines from the user, either through a full line
// editing terminal or through a plain reader for terminals without escape sequences.
package editor

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mwantia/cliapi/transport"
)

var (
	ErrEmptyLine = errors.New("editor: empty line")
	ErrAborted   = errors.New("editor: prompt aborted")
)

type Config struct {
	MultiLine   bool
	HistorySize int
	MaxLineLen  int
	AllowEmpty  bool
	Dumb        bool
	Echo        bool // Write the received line back, for links without local echo
}

// Completer returns candidate completions for the current line.
type Completer func(line string) []string

// Hinter returns the usage hint for a line naming a command, together with
// the ANSI colour code and weight to draw it with. An empty hint shows nothing.
type Hinter func(line string) (hint string, color int, bold bool)

type Editor interface {
	// Prompt shows prompt and reads one line. It returns ErrEmptyLine for an
	// empty line when empty lines are not allowed, io.EOF at end of input and
	// ErrAborted when the user interrupts the prompt.
	Prompt(prompt string) (string, error)

	// AppendHistory adds line to the in-memory history.
	AppendHistory(line string)

	SetCompleter(c Completer)

	// SetHinter binds the hint shown after a line that names a command.
	SetHinter(h Hinter)

	History() *History

	Close() error
}

// Factory creates the editor for a transport once the terminal mode is known.
type Factory func(t transport.Transport, cfg Config, history *History) (Editor, error)

// DefaultFactory uses the line editing terminal when the transport is the
// process terminal and escape sequences are supported. Everything else gets
// the plain editor.
func DefaultFactory(t transport.Transport, cfg Config, history *History) (Editor, error) {
	if !cfg.Dumb {
		if stdio, ok := t.(*transport.Stdio); ok && stdio.Terminal() && SmartSupported() {
			smart, err := NewSmart(cfg, history)
			if err != nil {
				return nil, err
			}
			return smart, nil
		}
	}

	return NewPlain(t, t, cfg, history), nil
}

func truncate(line string, limit int) string {
	if limit > 0 && len(line) > limit {
		return line[:limit]
	}
	return line
}

// writeHint prints the usage hint for line on its own line. Colour is only
// applied when colored is set.
func writeHint(w io.Writer, h Hinter, line string, colored bool) {
	if h == nil || line == "" {
		return
	}

	hint, code, bold := h(line)
	if hint == "" {
		return
	}

	text := "Usage: " + line + hint
	if colored {
		c := color.New(color.Attribute(code))
		if bold {
			c.Add(color.Bold)
		}
		c.EnableColor()
		text = c.Sprint(text)
	}
	fmt.Fprintln(w, text)
}
