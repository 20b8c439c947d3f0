package argtable

import (
	"fmt"
	"math"
	"math/bits"
	"strconv"
	"strings"
)

// Table is an ordered list of entries whose last element is the End sentinel.
type Table struct {
	entries []*Entry
	freed   bool
}

// NewTable validates and assembles entries into a table.
// The last entry must be an End sentinel and aliases must be unique.
func NewTable(entries ...*Entry) (*Table, error) {
	if len(entries) == 0 || entries[len(entries)-1] == nil || entries[len(entries)-1].kind != KindEnd {
		return nil, ErrNoEnd
	}

	shorts := make(map[byte]struct{})
	longs := make(map[string]struct{})
	for i, e := range entries[:len(entries)-1] {
		if e == nil {
			return nil, fmt.Errorf("argtable: entry %d is nil", i)
		}
		if e.kind == KindEnd {
			return nil, fmt.Errorf("argtable: entry %d is an end entry before the last slot", i)
		}

		for j := 0; j < len(e.Short); j++ {
			if _, exists := shorts[e.Short[j]]; exists {
				return nil, fmt.Errorf("%w: -%c", ErrDuplicate, e.Short[j])
			}
			shorts[e.Short[j]] = struct{}{}
		}

		if e.Long != "" {
			if _, exists := longs[e.Long]; exists {
				return nil, fmt.Errorf("%w: --%s", ErrDuplicate, e.Long)
			}
			longs[e.Long] = struct{}{}
		}
	}

	return &Table{entries: entries}, nil
}

// Len returns the number of live entries including the sentinel.
func (t *Table) Len() int {
	if t == nil || t.freed {
		return 0
	}
	return len(t.entries)
}

// Entry returns the entry at index i.
func (t *Table) Entry(i int) *Entry {
	if t == nil || t.freed || i < 0 || i >= len(t.entries) {
		return nil
	}
	return t.entries[i]
}

// End returns the sentinel.
func (t *Table) End() *Entry {
	if t == nil || t.freed || len(t.entries) == 0 {
		return nil
	}
	return t.entries[len(t.entries)-1]
}

// Free releases every entry. A freed table has no entries.
func (t *Table) Free() {
	if t == nil || t.freed {
		return
	}

	for i := range t.entries {
		t.entries[i] = nil
	}
	t.entries = nil
	t.freed = true
}

func (t *Table) Freed() bool {
	return t == nil || t.freed
}

func (t *Table) options() []*Entry {
	return t.entries[:len(t.entries)-1]
}

func (t *Table) findShort(c byte) *Entry {
	for _, e := range t.options() {
		if e.hasShort(c) {
			return e
		}
	}
	return nil
}

func (t *Table) findLong(name string) *Entry {
	for _, e := range t.options() {
		if e.Long != "" && e.Long == name {
			return e
		}
	}
	return nil
}

func (t *Table) reset() {
	for _, e := range t.entries {
		e.reset()
	}
}

// ParseInt converts an integer the way integer entries do: optional sign,
// 0x hex, 0o octal, 0b binary or decimal, with optional KB, MB or GB suffix.
func ParseInt(s string) (int, error) {
	value := strings.TrimSpace(s)
	if value == "" {
		return 0, fmt.Errorf("%w: %q", ErrBadInt, s)
	}

	multiplier := uint64(1)
	upper := strings.ToUpper(value)
	for _, suffix := range []struct {
		text string
		mul  uint64
	}{{"KB", 1 << 10}, {"MB", 1 << 20}, {"GB", 1 << 30}} {
		if strings.HasSuffix(upper, suffix.text) {
			multiplier = suffix.mul
			value = value[:len(value)-len(suffix.text)]
			break
		}
	}

	negative := false
	switch {
	case strings.HasPrefix(value, "-"):
		negative = true
		value = value[1:]
	case strings.HasPrefix(value, "+"):
		value = value[1:]
	}

	base := 10
	if len(value) > 2 && value[0] == '0' {
		switch value[1] {
		case 'x', 'X':
			base, value = 16, value[2:]
		case 'o', 'O':
			base, value = 8, value[2:]
		case 'b', 'B':
			base, value = 2, value[2:]
		}
	}

	magnitude, err := strconv.ParseUint(value, base, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadInt, s)
	}

	hi, lo := bits.Mul64(magnitude, multiplier)
	limit := uint64(math.MaxInt)
	if negative {
		limit++
	}
	if hi != 0 || lo > limit {
		return 0, fmt.Errorf("%w: %q out of range", ErrBadInt, s)
	}

	if negative {
		return int(-int64(lo)), nil
	}
	return int(lo), nil
}
