package editor

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Plain is the editor used in dumb mode: it prints the prompt and reads raw
// lines. Backspace and delete characters edit the pending line.
type Plain struct {
	r       *bufio.Reader
	w       io.Writer
	cfg     Config
	history *History

	completer Completer
	hinter    Hinter
}

func NewPlain(r io.Reader, w io.Writer, cfg Config, history *History) *Plain {
	if history == nil {
		history = NewHistory(cfg.HistorySize)
	}

	return &Plain{
		r:       bufio.NewReader(r),
		w:       w,
		cfg:     cfg,
		history: history,
	}
}

func (p *Plain) Prompt(prompt string) (string, error) {
	if _, err := io.WriteString(p.w, prompt); err != nil {
		return "", err
	}

	raw, err := p.r.ReadString('\n')
	if err != nil && (err != io.EOF || raw == "") {
		return "", err
	}

	line := truncate(applyErase(strings.TrimRight(raw, "\r\n")), p.cfg.MaxLineLen)
	if p.cfg.Echo {
		fmt.Fprintf(p.w, "%s\n", line)
	}

	if line == "" && !p.cfg.AllowEmpty {
		return "", ErrEmptyLine
	}

	writeHint(p.w, p.hinter, line, false)
	return line, nil
}

func (p *Plain) AppendHistory(line string) {
	p.history.Add(line)
}

// SetCompleter stores c. Dumb terminals cannot redraw the line, so completion
// is only offered through Complete.
func (p *Plain) SetCompleter(c Completer) {
	p.completer = c
}

// SetHinter stores h. The hint is printed uncoloured once a line naming a
// command has been read.
func (p *Plain) SetHinter(h Hinter) {
	p.hinter = h
}

// Complete returns the candidates of the configured completer.
func (p *Plain) Complete(line string) []string {
	if p.completer == nil {
		return nil
	}
	return p.completer(line)
}

func (p *Plain) History() *History {
	return p.history
}

func (p *Plain) Close() error {
	return nil
}

func applyErase(line string) string {
	if !strings.ContainsAny(line, "\b\x7f") {
		return line
	}

	buf := make([]byte, 0, len(line))
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '\b', 0x7f:
			if len(buf) > 0 {
				buf = buf[:len(buf)-1]
			}
		default:
			buf = append(buf, line[i])
		}
	}
	return string(buf)
}
