package cliapi_test

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/mwantia/cliapi"
	"github.com/mwantia/cliapi/cmd/builtin"
	"github.com/mwantia/cliapi/host"
	"github.com/mwantia/cliapi/log"
	"github.com/mwantia/cliapi/nvs/sqlite"
	"github.com/mwantia/cliapi/storage/local"
	"github.com/mwantia/cliapi/transport"
)

func newConsole(t *testing.T, input string, opts ...cliapi.ConsoleOption) (*cliapi.Console, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	stream := transport.NewStream(strings.NewReader(input), out, transport.UART, false)

	base := []cliapi.ConsoleOption{
		cliapi.WithLogger(log.Nop()),
		cliapi.WithTransport(stream),
		cliapi.WithLogColors(false),
	}

	c, err := cliapi.New(append(base, opts...)...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return c, out
}

func initConsole(t *testing.T, c *cliapi.Console, config *cliapi.Config) {
	t.Helper()

	if err := c.Init(t.Context(), config); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(func() {
		c.Deinit(t.Context())
	})
}

func runConsole(t *testing.T, c *cliapi.Console) {
	t.Helper()

	if err := c.Run(t.Context()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
}

func TestHelloCommand(t *testing.T) {
	c, out := newConsole(t, "hello\n")
	initConsole(t, c, nil)

	if err := c.RegisterSimple("hello", "Prints Hello World", builtin.Hello(c.Output())); err != nil {
		t.Fatalf("RegisterSimple failed: %v", err)
	}
	if c.Registered() != 0 {
		t.Fatalf("Simple command took a registry slot: %d", c.Registered())
	}

	runConsole(t, c)

	if n := strings.Count(out.String(), "Hello World! Welcome to ESP32 console!\n"); n != 1 {
		t.Fatalf("Greeting printed %d times in %q", n, out.String())
	}
}

func TestEchoCommand(t *testing.T) {
	c, out := newConsole(t, "echo -m hi -n 3\necho -m hi -u\necho -n 2\n")
	initConsole(t, c, nil)

	if err := c.RegisterCommand(builtin.Echo()); err != nil {
		t.Fatalf("RegisterCommand failed: %v", err)
	}

	runConsole(t, c)

	for _, want := range []string{
		"esp> hi\nhi\nhi\nesp> ",
		"esp> HI\nesp> ",
		"echo: missing option -m|--msg=<text>\n",
		"Command returned error: 0x1 (UNKNOWN ERROR)\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("Output is missing %q:\n%s", want, out.String())
		}
	}
}

func TestCalcCommand(t *testing.T) {
	c, out := newConsole(t, "calc -a 7 -b 3\ncalc -a 7 -b 0 -v\n")
	initConsole(t, c, nil)

	if err := c.RegisterCommand(builtin.Calc()); err != nil {
		t.Fatalf("RegisterCommand failed: %v", err)
	}

	runConsole(t, c)

	for _, want := range []string{
		"Sum: 10\n",
		"Calculating operations with A=7 and B=0\n",
		"  Multiplication:  7 * 0 = 0\n",
		"  Division:        undefined (B=0)\n",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("Output is missing %q:\n%s", want, out.String())
		}
	}
}

func TestRegistryCapacity(t *testing.T) {
	c, _ := newConsole(t, "")
	initConsole(t, c, &cliapi.Config{})

	limits := cliapi.DefaultLimits()
	cmds := make([]cliapi.Command, limits.MaxCommands+1)
	for i := range cmds {
		cmds[i] = cliapi.Command{
			Name: fmt.Sprintf("cmd%02d", i),
			Func: func(ctx *cliapi.Context) int { return 0 },
			Args: []cliapi.Arg{
				{Short: "x", Description: "Value", Kind: cliapi.ArgInt},
			},
		}
	}

	if err := c.RegisterCommands(cmds[:limits.MaxCommands]); err != nil {
		t.Fatalf("RegisterCommands failed: %v", err)
	}
	if err := c.RegisterCommand(&cmds[limits.MaxCommands]); !errors.Is(err, cliapi.ErrOutOfMemory) {
		t.Fatalf("Expected ErrOutOfMemory, got %v", err)
	}

	if c.Registered() != limits.MaxCommands {
		t.Fatalf("Registered = %d, want %d", c.Registered(), limits.MaxCommands)
	}
	for i := range limits.MaxCommands {
		if _, ok := c.Lookup(cmds[i].Name); !ok {
			t.Fatalf("%s not reachable", cmds[i].Name)
		}
	}
	if _, ok := c.Lookup(cmds[limits.MaxCommands].Name); ok {
		t.Fatalf("Rejected command is reachable")
	}
}

func TestRegisterValidation(t *testing.T) {
	c, _ := newConsole(t, "")
	initConsole(t, c, &cliapi.Config{})

	noop := func(ctx *cliapi.Context) int { return 0 }
	tooMany := make([]cliapi.Arg, cliapi.DefaultLimits().MaxArgs+1)
	for i := range tooMany {
		tooMany[i] = cliapi.Arg{Short: string(rune('a' + i)), Description: "Flag", Kind: cliapi.ArgFlag}
	}

	tests := map[string]*cliapi.Command{
		"nil":             nil,
		"empty-name":      {Func: noop},
		"nil-callback":    {Name: "nocb"},
		"too-many":        {Name: "many", Func: noop, Args: tooMany},
		"unknown-kind":    {Name: "kind", Func: noop, Args: []cliapi.Arg{{Short: "k", Description: "Kind", Kind: cliapi.ArgKind(7)}}},
		"no-description":  {Name: "desc", Func: noop, Args: []cliapi.Arg{{Short: "d", Kind: cliapi.ArgInt}}},
		"bare-positional": {Name: "pos", Func: noop, Args: []cliapi.Arg{{Description: "Value", Kind: cliapi.ArgString}}},
		"duplicate-alias": {Name: "alias", Func: noop, Args: []cliapi.Arg{
			{Short: "a", Description: "First", Kind: cliapi.ArgInt},
			{Short: "a", Description: "Second", Kind: cliapi.ArgInt},
		}},
	}

	for name, cmd := range tests {
		t.Run(name, func(tst *testing.T) {
			if err := c.RegisterCommand(cmd); !errors.Is(err, cliapi.ErrInvalidArgument) {
				tst.Fatalf("Expected ErrInvalidArgument, got %v", err)
			}
			if c.Registered() != 0 {
				tst.Fatalf("Registry changed: %d", c.Registered())
			}
		})
	}
}

func TestRegisterDuplicateAndMaxArgs(t *testing.T) {
	c, _ := newConsole(t, "")
	initConsole(t, c, &cliapi.Config{})

	args := make([]cliapi.Arg, cliapi.DefaultLimits().MaxArgs)
	for i := range args {
		args[i] = cliapi.Arg{Short: string(rune('a' + i)), Description: "Flag", Kind: cliapi.ArgFlag}
	}

	full := &cliapi.Command{Name: "full", Func: func(ctx *cliapi.Context) int { return 0 }, Args: args}
	if err := c.RegisterCommand(full); err != nil {
		t.Fatalf("RegisterCommand with MaxArgs failed: %v", err)
	}

	again := &cliapi.Command{Name: "full", Func: func(ctx *cliapi.Context) int { return 1 }}
	if err := c.RegisterCommand(again); !errors.Is(err, cliapi.ErrInvalidArgument) {
		t.Fatalf("Expected ErrInvalidArgument for duplicate, got %v", err)
	}
	if c.Registered() != 1 {
		t.Fatalf("Registered = %d, want 1", c.Registered())
	}
}

func TestRegisterCommandsStopsAtFirstFailure(t *testing.T) {
	c, _ := newConsole(t, "")
	initConsole(t, c, &cliapi.Config{})

	noop := func(ctx *cliapi.Context) int { return 0 }
	if err := c.RegisterCommands(nil); !errors.Is(err, cliapi.ErrInvalidArgument) {
		t.Fatalf("Expected ErrInvalidArgument for empty input, got %v", err)
	}

	err := c.RegisterCommands([]cliapi.Command{
		{Name: "first", Func: noop},
		{Name: "", Func: noop},
		{Name: "third", Func: noop},
	})
	if !errors.Is(err, cliapi.ErrInvalidArgument) {
		t.Fatalf("Expected ErrInvalidArgument, got %v", err)
	}

	if _, ok := c.Lookup("first"); !ok {
		t.Fatalf("Earlier command was rolled back")
	}
	if _, ok := c.Lookup("third"); ok {
		t.Fatalf("Later command was registered")
	}
}

func TestRegisterBeforeInit(t *testing.T) {
	c, _ := newConsole(t, "")

	err := c.RegisterCommand(builtin.Echo())
	if !errors.Is(err, cliapi.ErrHostRegistrationFailed) || !errors.Is(err, host.ErrInvalidState) {
		t.Fatalf("Expected ErrHostRegistrationFailed, got %v", err)
	}
	if c.Registered() != 0 {
		t.Fatalf("Registry changed: %d", c.Registered())
	}
}

func TestDispatchValues(t *testing.T) {
	c, _ := newConsole(t, "probe --name first -v --name second\nprobe\n")
	initConsole(t, c, &cliapi.Config{})

	var seen []cliapi.Context
	cmd := &cliapi.Command{
		Name: "probe",
		Func: func(ctx *cliapi.Context) int {
			seen = append(seen, *ctx)
			return 0
		},
		Args: []cliapi.Arg{
			{Short: "c", Long: "count", DataType: "<N>", Description: "Count", Kind: cliapi.ArgInt},
			{Long: "name", DataType: "<name>", Description: "Name", Kind: cliapi.ArgString},
			{Short: "v", Long: "verbose", Description: "Verbose", Kind: cliapi.ArgFlag},
		},
	}
	if err := c.RegisterCommand(cmd); err != nil {
		t.Fatalf("RegisterCommand failed: %v", err)
	}

	runConsole(t, c)

	if len(seen) != 2 {
		t.Fatalf("Callback ran %d times, want 2", len(seen))
	}

	first := seen[0]
	if first.Argc != 6 || first.ArgCount != 3 || len(first.Args) != 3 {
		t.Fatalf("Unexpected context shape: %+v", first)
	}
	if first.Count(1) != 2 || first.Str(1) != "first" {
		t.Fatalf("Repeated string = %d %q, want 2 first", first.Count(1), first.Str(1))
	}
	if !first.Flag(2) || first.Count(2) != 1 {
		t.Fatalf("Flag = %v %d, want true 1", first.Flag(2), first.Count(2))
	}
	if first.Count(0) != 0 || first.Int(0) != 0 {
		t.Fatalf("Absent int = %d %d, want 0 0", first.Count(0), first.Int(0))
	}

	second := seen[1]
	for i, v := range second.Args {
		if v.Count != 0 || v.Int != 0 || v.Str != "" || v.Flag {
			t.Fatalf("Argument %d not absent: %+v", i, v)
		}
		if v.Kind != cmd.Args[i].Kind {
			t.Fatalf("Argument %d kind %s, want %s", i, v.Kind, cmd.Args[i].Kind)
		}
	}
}

func TestZeroArgumentCommand(t *testing.T) {
	c, _ := newConsole(t, "reboot now\n")
	initConsole(t, c, &cliapi.Config{})

	var got *cliapi.Context
	cmd := &cliapi.Command{
		Name: "reboot",
		Func: func(ctx *cliapi.Context) int {
			got = ctx
			return 0
		},
	}
	if err := c.RegisterCommand(cmd); err != nil {
		t.Fatalf("RegisterCommand failed: %v", err)
	}
	if c.Registered() != 1 {
		t.Fatalf("Registered = %d, want 1", c.Registered())
	}

	runConsole(t, c)

	if got == nil || got.ArgCount != 0 || got.Argc != 2 {
		t.Fatalf("Unexpected context: %+v", got)
	}
}

func TestRunReportsResults(t *testing.T) {
	c, out := newConsole(t, "nosuch\nbad\nfail\n\"unbalanced\nok\n")
	initConsole(t, c, &cliapi.Config{})

	results := map[string]cliapi.ReturnCode{
		"bad":  cliapi.CodeInvalidArg,
		"fail": cliapi.CodeFail,
		"ok":   cliapi.CodeOK,
	}
	for name, code := range results {
		fn := func(argv []string) int { return int(code) }
		if err := c.RegisterSimple(name, "", fn); err != nil {
			t.Fatalf("RegisterSimple failed: %v", err)
		}
	}

	runConsole(t, c)

	want := "esp> Command not recognized\n" +
		"esp> Command returned error: 0x102 (ESP_ERR_INVALID_ARG)\n" +
		"esp> Command returned error: 0xffffffff (ESP_FAIL)\n" +
		"esp> Invalid command line: host: syntax error: EOF found when expecting closing quote\n" +
		"esp> esp> "
	if !strings.HasSuffix(out.String(), want) {
		t.Fatalf("Output does not end with %q:\n%q", want, out.String())
	}
}

func TestUsageHint(t *testing.T) {
	c, out := newConsole(t, "echo\necho -m hi\nhello\n")
	initConsole(t, c, &cliapi.Config{})

	if err := c.RegisterCommand(builtin.Echo()); err != nil {
		t.Fatalf("RegisterCommand failed: %v", err)
	}
	if err := c.RegisterSimple("hello", "", builtin.Hello(c.Output())); err != nil {
		t.Fatalf("RegisterSimple failed: %v", err)
	}

	runConsole(t, c)

	hint := "Usage: echo -m|--msg=<text> [-n|--repeat=<N>] [-u|--uppercase]\n"
	if n := strings.Count(out.String(), hint); n != 1 {
		t.Fatalf("Hint printed %d times in:\n%s", n, out.String())
	}
	if !strings.Contains(out.String(), "esp> "+hint) {
		t.Fatalf("Hint does not follow the bare command line:\n%q", out.String())
	}
	if strings.Contains(out.String(), "Usage: hello") {
		t.Fatalf("Hint printed for a command without arguments")
	}
}

type splitStream struct {
	*transport.Stream
	errs *bytes.Buffer
}

func (s splitStream) Stderr() io.Writer {
	return s.errs
}

func TestParseErrorsUseErrorStream(t *testing.T) {
	out, errs := &bytes.Buffer{}, &bytes.Buffer{}
	stream := splitStream{
		Stream: transport.NewStream(strings.NewReader("echo -n 2\n"), out, transport.UART, false),
		errs:   errs,
	}

	c, err := cliapi.New(cliapi.WithLogger(log.Nop()), cliapi.WithTransport(stream), cliapi.WithLogColors(false))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	initConsole(t, c, &cliapi.Config{})
	if err := c.RegisterCommand(builtin.Echo()); err != nil {
		t.Fatalf("RegisterCommand failed: %v", err)
	}
	runConsole(t, c)

	if !strings.Contains(errs.String(), "echo: missing option -m|--msg=<text>\n") {
		t.Fatalf("Error stream is missing the listing: %q", errs.String())
	}
	if strings.Contains(out.String(), "missing option") {
		t.Fatalf("Listing leaked into the console output:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Command returned error: 0x1 (UNKNOWN ERROR)\n") {
		t.Fatalf("Result missing from the console output:\n%s", out.String())
	}
}

func TestRunEmptyLines(t *testing.T) {
	for name, ignore := range map[string]bool{"ignore": true, "stop": false} {
		t.Run(name, func(tst *testing.T) {
			c, out := newConsole(tst, "\nhello\n", cliapi.WithIgnoreEmptyLines(ignore))
			initConsole(tst, c, &cliapi.Config{})

			if err := c.RegisterSimple("hello", "", builtin.Hello(c.Output())); err != nil {
				tst.Fatalf("RegisterSimple failed: %v", err)
			}
			runConsole(tst, c)

			if got := strings.Contains(out.String(), "Hello World!"); got != ignore {
				tst.Fatalf("Greeting printed = %v, want %v", got, ignore)
			}
		})
	}
}

func TestRunRequiresInit(t *testing.T) {
	c, _ := newConsole(t, "")
	if err := c.Run(t.Context()); !errors.Is(err, cliapi.ErrInvalidState) {
		t.Fatalf("Expected ErrInvalidState, got %v", err)
	}
}

func TestInitDeinitTwice(t *testing.T) {
	var logs bytes.Buffer
	logger := log.NewLoggerWriter("cli-api", log.Debug, &logs, "", false)
	logger.NoColor = true

	c, _ := newConsole(t, "", cliapi.WithLogger(logger))
	ctx := t.Context()

	for round := range 2 {
		if err := c.Init(ctx, nil); err != nil {
			t.Fatalf("Init %d failed: %v", round, err)
		}
		if err := c.Init(ctx, nil); err != nil {
			t.Fatalf("Second Init %d failed: %v", round, err)
		}
		if err := c.RegisterCommand(builtin.Echo()); err != nil {
			t.Fatalf("RegisterCommand %d failed: %v", round, err)
		}
		if err := c.Deinit(ctx); err != nil {
			t.Fatalf("Deinit %d failed: %v", round, err)
		}
		if err := c.Deinit(ctx); err != nil {
			t.Fatalf("Second Deinit %d failed: %v", round, err)
		}
		if c.Registered() != 0 {
			t.Fatalf("Registered = %d after Deinit", c.Registered())
		}
	}

	for _, want := range []string{"CLI already initialized", "CLI successfully initialized", "CLI finalized"} {
		if !strings.Contains(logs.String(), want) {
			t.Fatalf("Log is missing %q:\n%s", want, logs.String())
		}
	}
}

func TestHistoryPersistsAcrossRestart(t *testing.T) {
	dir := t.TempDir()
	lines := []string{"hello", "echo -m persisted", "calc -a 1 -b 2"}
	input := strings.Join(lines, "\n") + "\n"

	c, _ := newConsole(t, input, cliapi.WithFilesystem(local.New(dir)))
	if err := c.Init(t.Context(), cliapi.DefaultConfig()); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if err := builtin.Register(c, nil); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	runConsole(t, c)
	if err := c.Deinit(t.Context()); err != nil {
		t.Fatalf("Deinit failed: %v", err)
	}

	content, err := os.ReadFile(dir + "/history.txt")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	stored := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(stored) < 3 || strings.Join(stored[len(stored)-3:], "|") != strings.Join(lines, "|") {
		t.Fatalf("History file holds %q", stored)
	}

	restarted, _ := newConsole(t, "", cliapi.WithFilesystem(local.New(dir)))
	initConsole(t, restarted, cliapi.DefaultConfig())

	if got := strings.Join(restarted.History().Lines(), "|"); got != strings.Join(lines, "|") {
		t.Fatalf("Reloaded history = %q", got)
	}
}

func TestHistoryDisabledOnMountFailure(t *testing.T) {
	file := t.TempDir() + "/not-a-dir"
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	c, out := newConsole(t, "hello\n", cliapi.WithFilesystem(local.New(file)))
	initConsole(t, c, cliapi.DefaultConfig())

	if err := c.RegisterSimple("hello", "", builtin.Hello(c.Output())); err != nil {
		t.Fatalf("RegisterSimple failed: %v", err)
	}
	runConsole(t, c)

	if !strings.Contains(out.String(), "Hello World!") {
		t.Fatalf("Console did not run: %q", out.String())
	}
	if c.History().Len() != 1 {
		t.Fatalf("In-memory history has %d entries", c.History().Len())
	}
}

func TestInitFailsWithoutStore(t *testing.T) {
	store := sqlite.New(t.TempDir()+"/missing/dir/nvs.db", 0)

	c, _ := newConsole(t, "", cliapi.WithStore(store))
	if err := c.Init(t.Context(), nil); err == nil {
		c.Deinit(t.Context())
		t.Fatalf("Init succeeded without a usable store")
	}
	if c.Initialized() {
		t.Fatalf("Console reports initialized")
	}
}

func TestBannerAndPrompt(t *testing.T) {
	c, out := newConsole(t, "", cliapi.WithLogColors(true))
	initConsole(t, c, &cliapi.Config{Prompt: strings.Repeat("p", 100), Banner: "Bench console"})

	if !strings.HasPrefix(out.String(), "\nBench console\nTerminal does not support escape sequences.\n") {
		t.Fatalf("Unexpected banner: %q", out.String())
	}
	if len(c.Prompt()) != cliapi.DefaultLimits().PromptMaxLen-1 {
		t.Fatalf("Prompt length %d", len(c.Prompt()))
	}
	if strings.Contains(c.Prompt(), "\x1b[") {
		t.Fatalf("Dumb terminal prompt is coloured: %q", c.Prompt())
	}
}

func TestSmartTerminalPrompt(t *testing.T) {
	out := &bytes.Buffer{}
	stream := transport.NewStream(strings.NewReader(""), out, transport.UART, true)

	c, err := cliapi.New(cliapi.WithLogger(log.Nop()), cliapi.WithTransport(stream))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	initConsole(t, c, nil)

	if c.Dumb() {
		t.Fatalf("Smart stream detected as dumb")
	}
	if c.Prompt() != "\x1b[32mesp> \x1b[0m" {
		t.Fatalf("Prompt = %q", c.Prompt())
	}
	if strings.Contains(out.String(), "Terminal does not support") {
		t.Fatalf("Dumb notice printed on smart terminal")
	}
	if !strings.Contains(out.String(), "ESP32 CLI Console\n") {
		t.Fatalf("Default banner missing: %q", out.String())
	}
}

func TestSerialJTAGSkipsProbe(t *testing.T) {
	stream := transport.NewStream(strings.NewReader(""), io.Discard, transport.USBSerialJTAG, false)

	c, err := cliapi.New(cliapi.WithLogger(log.Nop()), cliapi.WithTransport(stream))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	initConsole(t, c, nil)

	if c.Dumb() {
		t.Fatalf("Serial JTAG console fell back to dumb mode")
	}
}

func TestHelpCommand(t *testing.T) {
	c, out := newConsole(t, "help\nhelp calc\nhelp nosuch\n")
	initConsole(t, c, cliapi.DefaultConfig())

	if err := c.RegisterCommands([]cliapi.Command{*builtin.Echo(), *builtin.Calc()}); err != nil {
		t.Fatalf("RegisterCommands failed: %v", err)
	}
	runConsole(t, c)

	for _, want := range []string{
		"echo -m|--msg=<text> [-n|--repeat=<N>] [-u|--uppercase]\n",
		"calc -a <num> -b <num> [-v|--verbose]\n",
		"help: Unrecognized command 'nosuch'",
	} {
		if !strings.Contains(out.String(), want) {
			t.Fatalf("Output is missing %q:\n%s", want, out.String())
		}
	}
}

func TestErrorNames(t *testing.T) {
	tests := map[error]string{
		nil:                    "ESP_OK",
		cliapi.ErrOutOfMemory:  "ESP_ERR_NO_MEM",
		cliapi.ErrInvalidState: "ESP_ERR_INVALID_STATE",
		host.ErrNotFound:       "ESP_ERR_NOT_FOUND",
		errors.New("other"):    "ESP_FAIL",

		fmt.Errorf("wrap: %w", host.ErrInvalidArgument): "ESP_ERR_INVALID_ARG",
		fmt.Errorf("wrap: %w", host.ErrSyntax):          "ESP_ERR_INVALID_ARG",
	}

	for err, want := range tests {
		if got := cliapi.ErrorName(err); got != want {
			t.Fatalf("ErrorName(%v) = %s, want %s", err, got, want)
		}
	}

	if cliapi.ReturnCode(0x1234).Name() != "UNKNOWN ERROR" {
		t.Fatalf("Unknown code has name %s", cliapi.ReturnCode(0x1234).Name())
	}
}

func TestCustomLimits(t *testing.T) {
	if _, err := cliapi.New(cliapi.WithLimits(cliapi.Limits{})); !errors.Is(err, cliapi.ErrInvalidArgument) {
		t.Fatalf("Expected ErrInvalidArgument for zero limits, got %v", err)
	}

	limits := cliapi.DefaultLimits()
	limits.MaxCommands = 2
	limits.MaxArgs = 1

	c, _ := newConsole(t, "", cliapi.WithLimits(limits))
	initConsole(t, c, &cliapi.Config{})

	noop := func(ctx *cliapi.Context) int { return 0 }
	two := []cliapi.Arg{
		{Short: "a", Description: "A", Kind: cliapi.ArgFlag},
		{Short: "b", Description: "B", Kind: cliapi.ArgFlag},
	}
	if err := c.RegisterCommand(&cliapi.Command{Name: "wide", Func: noop, Args: two}); !errors.Is(err, cliapi.ErrInvalidArgument) {
		t.Fatalf("Expected ErrInvalidArgument above MaxArgs, got %v", err)
	}

	err := c.RegisterCommands([]cliapi.Command{
		{Name: "one", Func: noop},
		{Name: "two", Func: noop},
		{Name: "three", Func: noop},
	})
	if !errors.Is(err, cliapi.ErrOutOfMemory) {
		t.Fatalf("Expected ErrOutOfMemory, got %v", err)
	}
	if c.Registered() != 2 {
		t.Fatalf("Registered = %d, want 2", c.Registered())
	}
}
