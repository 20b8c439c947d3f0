package editor

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// History is a bounded list of entered lines, oldest first.
type History struct {
	max   int
	lines []string
}

func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}

	return &History{
		max:   size,
		lines: make([]string, 0, size),
	}
}

// Add appends line and drops the oldest entry when full. Empty lines and
// repeats of the most recent line are not stored.
func (h *History) Add(line string) bool {
	if line == "" {
		return false
	}
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return false
	}

	if len(h.lines) == h.max {
		copy(h.lines, h.lines[1:])
		h.lines = h.lines[:len(h.lines)-1]
	}

	h.lines = append(h.lines, line)
	return true
}

func (h *History) Lines() []string {
	lines := make([]string, len(h.lines))
	copy(lines, h.lines)
	return lines
}

func (h *History) Len() int {
	return len(h.lines)
}

func (h *History) Max() int {
	return h.max
}

func (h *History) Clear() {
	h.lines = h.lines[:0]
}

// Load reads one line per entry from r.
func (h *History) Load(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		h.Add(strings.TrimRight(scanner.Text(), "\r"))
	}

	return scanner.Err()
}

// Save writes the stored entries to w, one per line.
func (h *History) Save(w io.Writer) error {
	for _, line := range h.lines {
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}
