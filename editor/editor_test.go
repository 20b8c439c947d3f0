package editor

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mwantia/cliapi/transport"
)

func TestHistoryBounded(t *testing.T) {
	h := NewHistory(3)

	for _, line := range []string{"a", "b", "b", "", "c", "d"} {
		h.Add(line)
	}

	if got := strings.Join(h.Lines(), ","); got != "b,c,d" {
		t.Fatalf("Lines = %q, want b,c,d", got)
	}
}

func TestHistoryLoadSave(t *testing.T) {
	h := NewHistory(2)
	if err := h.Load(strings.NewReader("one\r\ntwo\nthree\n")); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	var buf bytes.Buffer
	if err := h.Save(&buf); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if buf.String() != "two\nthree\n" {
		t.Fatalf("Save wrote %q", buf.String())
	}
}

func TestPlainPrompt(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("hello\n\nab\x7fc\n" + strings.Repeat("x", 20) + "\nlast")
	p := NewPlain(in, &out, Config{MaxLineLen: 8, HistorySize: 10}, nil)

	steps := []struct {
		line string
		err  error
	}{
		{line: "hello"},
		{err: ErrEmptyLine},
		{line: "ac"},
		{line: "xxxxxxxx"},
		{line: "last"},
		{err: io.EOF},
	}

	for i, step := range steps {
		line, err := p.Prompt("esp> ")
		if !errors.Is(err, step.err) {
			t.Fatalf("step %d: err = %v, want %v", i, err, step.err)
		}
		if line != step.line {
			t.Fatalf("step %d: line = %q, want %q", i, line, step.line)
		}
	}

	if strings.Count(out.String(), "esp> ") != len(steps) {
		t.Fatalf("Prompt written %d times: %q", strings.Count(out.String(), "esp> "), out.String())
	}
}

func TestPlainAllowEmptyAndEcho(t *testing.T) {
	var out bytes.Buffer
	p := NewPlain(strings.NewReader("\nls\n"), &out, Config{AllowEmpty: true, Echo: true}, nil)

	if line, err := p.Prompt("> "); err != nil || line != "" {
		t.Fatalf("Prompt = %q, %v", line, err)
	}
	if line, err := p.Prompt("> "); err != nil || line != "ls" {
		t.Fatalf("Prompt = %q, %v", line, err)
	}
	if out.String() != "> \n> ls\n" {
		t.Fatalf("Echoed output %q", out.String())
	}
}

func TestPlainCompleteAndHistory(t *testing.T) {
	p := NewPlain(strings.NewReader(""), io.Discard, Config{HistorySize: 5}, nil)
	p.SetCompleter(func(line string) []string {
		return []string{line + "lo"}
	})

	if got := p.Complete("hel"); len(got) != 1 || got[0] != "hello" {
		t.Fatalf("Complete = %v", got)
	}

	p.AppendHistory("hello")
	if p.History().Len() != 1 {
		t.Fatalf("History has %d entries", p.History().Len())
	}
}

func TestPlainHint(t *testing.T) {
	var out bytes.Buffer
	p := NewPlain(strings.NewReader("calc\ncalc -a 1\nhelp\n"), &out, Config{HistorySize: 5}, nil)
	p.SetHinter(func(line string) (string, int, bool) {
		if line == "calc" {
			return " -a <num> -b <num>", 39, false
		}
		return "", 0, false
	})

	for range 3 {
		if _, err := p.Prompt("> "); err != nil {
			t.Fatalf("Prompt failed: %v", err)
		}
	}
	if out.String() != "> Usage: calc -a <num> -b <num>\n> > " {
		t.Fatalf("Unexpected output %q", out.String())
	}
}

func TestWriteHintColored(t *testing.T) {
	var out bytes.Buffer
	writeHint(&out, func(string) (string, int, bool) { return " [<string>]", 36, true }, "help", true)

	if out.String() != "\x1b[36;1mUsage: help [<string>]\x1b[0m\n" {
		t.Fatalf("Unexpected hint %q", out.String())
	}

	out.Reset()
	writeHint(&out, nil, "help", true)
	if out.Len() != 0 {
		t.Fatalf("Nil hinter wrote %q", out.String())
	}
}

func TestDefaultFactoryPlainForStreams(t *testing.T) {
	tr := transport.NewStream(strings.NewReader("hello\r"), io.Discard, transport.UART, true)

	ed, err := DefaultFactory(tr, Config{HistorySize: 4}, nil)
	if err != nil {
		t.Fatalf("DefaultFactory failed: %v", err)
	}
	if _, ok := ed.(*Plain); !ok {
		t.Fatalf("DefaultFactory returned %T, want *Plain", ed)
	}

	line, err := ed.Prompt("")
	if err != nil || line != "hello" {
		t.Fatalf("Prompt = %q, %v", line, err)
	}
}
