package cliapi

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/mwantia/cliapi/argtable"
	"github.com/mwantia/cliapi/log"
	"github.com/mwantia/cliapi/transport"
)

func testConsole(t *testing.T) *Console {
	t.Helper()

	stream := transport.NewStream(strings.NewReader(""), &bytes.Buffer{}, transport.UART, false)
	c, err := New(WithLogger(log.Nop()), WithTransport(stream), WithLogColors(false))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if err := c.Init(t.Context(), &Config{}); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() {
		c.Deinit(t.Context())
	})
	return c
}

func sampleCommand() *Command {
	return &Command{
		Name: "sample",
		Func: func(ctx *Context) int { return 0 },
		Args: []Arg{
			{Short: "a", DataType: "<n>", Description: "First", Kind: ArgInt, Required: true},
			{Long: "name", DataType: "<name>", Description: "Name", Kind: ArgString},
			{Short: "v", Description: "Verbose", Kind: ArgFlag},
		},
	}
}

func TestBuildTable(t *testing.T) {
	cmd := sampleCommand()

	table, err := buildTable(cmd)
	if err != nil {
		t.Fatalf("buildTable failed: %v", err)
	}

	if table.Len() != len(cmd.Args)+1 {
		t.Fatalf("Table has %d entries, want %d", table.Len(), len(cmd.Args)+1)
	}
	if table.End().Kind() != argtable.KindEnd || table.End().MaxErrors() != len(cmd.Args)+1 {
		t.Fatalf("Unexpected sentinel: %v %d", table.End().Kind(), table.End().MaxErrors())
	}

	kinds := []argtable.Kind{argtable.KindInt, argtable.KindStr, argtable.KindLit}
	for i, want := range kinds {
		entry := table.Entry(i)
		if entry.Kind() != want {
			t.Fatalf("Entry %d has kind %s, want %s", i, entry.Kind(), want)
		}
		if required := entry.MinCount > 0; required != cmd.Args[i].Required {
			t.Fatalf("Entry %d required = %v", i, required)
		}
		if entry.MaxCount != 1 {
			t.Fatalf("Entry %d max count %d", i, entry.MaxCount)
		}
	}
}

func TestBuildTableAllocationFailure(t *testing.T) {
	defaultAlloc := allocEntry
	defer func() { allocEntry = defaultAlloc }()

	calls := 0
	allocEntry = func(a Arg) (*argtable.Entry, error) {
		calls++
		if calls == 3 {
			return nil, errors.New("no memory")
		}
		return newEntry(a), nil
	}

	c := testConsole(t)
	cmd := sampleCommand()

	if err := c.RegisterCommand(cmd); !errors.Is(err, ErrOutOfMemory) {
		t.Fatalf("Expected ErrOutOfMemory, got %v", err)
	}
	if c.Registered() != 0 {
		t.Fatalf("Registered = %d after failed build", c.Registered())
	}
	if _, ok := c.host.Lookup(cmd.Name); ok {
		t.Fatalf("Command reached the host after failed build")
	}

	allocEntry = defaultAlloc
	if err := c.RegisterCommand(cmd); err != nil {
		t.Fatalf("Retry failed: %v", err)
	}
}

func TestDeinitFreesTables(t *testing.T) {
	c := testConsole(t)

	if err := c.RegisterCommand(sampleCommand()); err != nil {
		t.Fatalf("RegisterCommand failed: %v", err)
	}
	table := c.registry.find("sample").table
	if table.Freed() {
		t.Fatalf("Table freed while registered")
	}

	if err := c.Deinit(t.Context()); err != nil {
		t.Fatalf("Deinit failed: %v", err)
	}
	if !table.Freed() {
		t.Fatalf("Table survived Deinit")
	}
	if c.registry.len() != 0 {
		t.Fatalf("Registry holds %d records", c.registry.len())
	}
}

func TestDispatchUnknownCommand(t *testing.T) {
	c := testConsole(t)

	if ret := c.dispatch(nil); ret != 1 {
		t.Fatalf("Empty argv returned %d", ret)
	}
	if ret := c.dispatch([]string{"ghost"}); ret != 1 {
		t.Fatalf("Unregistered command returned %d", ret)
	}
}

func TestDispatchParseErrors(t *testing.T) {
	c := testConsole(t)

	var errOut bytes.Buffer
	c.errOut = &errOut

	called := false
	cmd := sampleCommand()
	cmd.Func = func(ctx *Context) int {
		called = true
		return 0
	}
	if err := c.RegisterCommand(cmd); err != nil {
		t.Fatalf("RegisterCommand failed: %v", err)
	}

	if ret := c.dispatch([]string{"sample", "--name", "x"}); ret != 1 {
		t.Fatalf("Missing required option returned %d", ret)
	}
	if called {
		t.Fatalf("Callback ran despite parse errors")
	}
	if !strings.Contains(errOut.String(), "sample: missing option -a <n>") {
		t.Fatalf("Unexpected error output: %q", errOut.String())
	}

	if ret := c.dispatch([]string{"sample", "-a", "5"}); ret != 0 || !called {
		t.Fatalf("Valid line returned %d, called %v", ret, called)
	}
}
