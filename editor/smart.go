package editor

import (
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// Smart edits lines on an escape sequence capable terminal.
type Smart struct {
	state   *liner.State
	out     io.Writer
	cfg     Config
	history *History
	hinter  Hinter
}

// SmartSupported reports whether the process terminal can host a Smart editor.
func SmartSupported() bool {
	return liner.TerminalSupported()
}

func NewSmart(cfg Config, history *History) (*Smart, error) {
	if history == nil {
		history = NewHistory(cfg.HistorySize)
	}

	state := liner.NewLiner()
	state.SetMultiLineMode(cfg.MultiLine)
	state.SetCtrlCAborts(true)
	state.SetTabCompletionStyle(liner.TabPrints)

	s := &Smart{
		state:   state,
		out:     os.Stdout,
		cfg:     cfg,
		history: history,
	}

	if err := s.reload(); err != nil {
		state.Close()
		return nil, err
	}

	return s, nil
}

func (s *Smart) Prompt(prompt string) (string, error) {
	line, err := s.state.Prompt(prompt)
	if err == liner.ErrPromptAborted {
		return "", ErrAborted
	}
	if err != nil {
		return "", err
	}

	line = truncate(line, s.cfg.MaxLineLen)
	if line == "" && !s.cfg.AllowEmpty {
		return "", ErrEmptyLine
	}

	writeHint(s.out, s.hinter, line, true)
	return line, nil
}

func (s *Smart) AppendHistory(line string) {
	full := s.history.Len() == s.history.Max()
	if !s.history.Add(line) {
		return
	}

	if full {
		// liner keeps its own unbounded copy, rebuild it from the bounded one
		_ = s.reload()
		return
	}
	s.state.AppendHistory(line)
}

func (s *Smart) SetCompleter(c Completer) {
	if c == nil {
		s.state.SetCompleter(nil)
		return
	}
	s.state.SetCompleter(func(line string) []string {
		return c(line)
	})
}

// SetHinter stores h. liner cannot draw text right of the cursor, so the
// coloured hint is printed below the line once it has been entered.
func (s *Smart) SetHinter(h Hinter) {
	s.hinter = h
}

func (s *Smart) History() *History {
	return s.history
}

func (s *Smart) Close() error {
	return s.state.Close()
}

func (s *Smart) reload() error {
	s.state.ClearHistory()

	var b strings.Builder
	if err := s.history.Save(&b); err != nil {
		return err
	}

	_, err := s.state.ReadHistory(strings.NewReader(b.String()))
	if err == io.EOF {
		return nil
	}
	return err
}
