package main

import (
	"strings"
	"testing"
)

func TestHelpText(t *testing.T) {
	text := helpText(false)

	for _, want := range []string{
		"cliapi console [OPTIONS]",
		"-c, --config",
		"--log-level",
		"-t, --transport",
		"-d, --device",
		"Serial device, the process terminal when empty",
		"--no-history",
		"-h, --help",
		"cliapi console -c bench.toml",
	} {
		if !strings.Contains(text, want) {
			t.Fatalf("Help is missing %q:\n%s", want, text)
		}
	}
	if n := strings.Count(text, "--help "); n != 1 {
		t.Fatalf("Help lists --help %d times:\n%s", n, text)
	}

	if llm := helpText(true); !strings.Contains(llm, "--device") {
		t.Fatalf("LLM help is missing flags:\n%s", llm)
	}
}

func TestHelpRequested(t *testing.T) {
	tests := map[string]struct {
		args      []string
		help, llm bool
	}{
		"none":       {args: []string{"-d", "/dev/ttyUSB0"}},
		"short":      {args: []string{"-h"}, help: true},
		"long":       {args: []string{"-b", "9600", "--help"}, help: true},
		"llm":        {args: []string{"--help-llm"}, help: true, llm: true},
		"terminated": {args: []string{"--", "--help"}},
	}

	for name, tt := range tests {
		t.Run(name, func(tst *testing.T) {
			help, llm := helpRequested(tt.args)
			if help != tt.help || llm != tt.llm {
				tst.Fatalf("helpRequested(%q) = %v %v, want %v %v", tt.args, help, llm, tt.help, tt.llm)
			}
		})
	}
}
