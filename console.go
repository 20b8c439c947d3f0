// Package cliapi registers declarative commands on a serial console, parses
// their arguments and dispatches them to typed callbacks.
package cliapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/mwantia/cliapi/editor"
	"github.com/mwantia/cliapi/host"
	"github.com/mwantia/cliapi/log"
	"github.com/mwantia/cliapi/nvs"
	nvsmemory "github.com/mwantia/cliapi/nvs/memory"
	"github.com/mwantia/cliapi/storage"
	storagememory "github.com/mwantia/cliapi/storage/memory"
	"github.com/mwantia/cliapi/transport"
)

// Console is the single command line of a process. It is not safe for
// concurrent use.
type Console struct {
	opts   *ConsoleOptions
	limits Limits
	log    *log.Logger

	host      *host.Host
	registry  *registry
	fs        *storage.FileSystem
	transport transport.Transport
	editor    editor.Editor
	out       io.Writer
	errOut    io.Writer

	runCtx       context.Context
	session      uuid.UUID
	prompt       string
	dumb         bool
	storeHistory bool
	mounted      bool
	initialized  bool
}

func New(opts ...ConsoleOption) (*Console, error) {
	options := newDefaultConsoleOptions()
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}

	if options.Logger == nil {
		options.Logger = log.NewLogger("cli-api", log.Info, "", false)
	}
	if options.Store == nil {
		options.Store = nvsmemory.New(nvsmemory.Config{})
	}
	if options.Filesystem == nil {
		options.Filesystem = storagememory.New()
	}
	if options.Transport == nil {
		options.Transport = transport.NewStdio(transport.UART)
	}

	c := &Console{
		opts:      options,
		limits:    options.Limits,
		log:       options.Logger,
		registry:  newRegistry(options.Limits.MaxCommands),
		fs:        storage.New(),
		transport: options.Transport,
		out:       options.Output,
		errOut:    options.ErrorOutput,
		runCtx:    context.Background(),
	}

	if c.out == nil {
		c.out = c.transport
		if es, ok := c.transport.(transport.ErrorStream); ok && c.errOut == nil {
			c.errOut = es.Stderr()
		}
	}
	if c.errOut == nil {
		c.errOut = c.out
	}

	c.host = host.New(host.Config{
		MaxCmdArgs: c.limits.MaxCmdArgs(),
		MaxCmdLen:  c.limits.MaxCmdLine,
		HintColor:  39,
		Output:     c.out,
	}, c.log.Named("host"))

	return c, nil
}

// Init brings up the key/value store, the history filesystem, the transport
// and the line editor. A nil config means DefaultConfig. Calling Init on an
// initialized console only logs a warning.
func (c *Console) Init(ctx context.Context, config *Config) error {
	if c.initialized {
		c.log.Warn("CLI already initialized")
		return nil
	}
	if config == nil {
		config = DefaultConfig()
	}

	if err := nvs.Init(ctx, c.opts.Store, c.log.Named("nvs")); err != nil {
		return fmt.Errorf("failed to initialize nvs: %w", err)
	}

	c.storeHistory = config.StoreHistory
	if c.storeHistory {
		if err := c.fs.Mount(ctx, MountPath, c.opts.Filesystem); err != nil {
			c.log.Warn("Failed to mount filesystem, history disabled")
			c.log.Debug("Mount error: %v", err)
			c.storeHistory = false
		} else {
			c.mounted = true
			c.log.Info("FATFS mounted at %s", MountPath)
		}
	}

	if err := c.transport.Open(ctx); err != nil {
		c.release(ctx)
		return fmt.Errorf("failed to open %s transport: %w", c.transport.Kind(), err)
	}

	if err := c.host.Init(); err != nil {
		c.release(ctx)
		return fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	// The serial JTAG peripheral always drives a smart terminal
	c.dumb = false
	if c.transport.Kind() != transport.USBSerialJTAG {
		if err := c.transport.Probe(); err != nil {
			c.log.Debug("Terminal probe failed: %v", err)
			c.dumb = true
		}
	}

	ed, err := c.opts.EditorFactory(c.transport, editor.Config{
		MultiLine:   true,
		HistorySize: c.limits.HistorySize,
		MaxLineLen:  c.limits.MaxCmdLine,
		AllowEmpty:  false,
		Dumb:        c.dumb,
		Echo:        c.transport.LocalEcho(),
	}, c.loadHistory(ctx))
	if err != nil {
		c.release(ctx)
		return fmt.Errorf("failed to create line editor: %w", err)
	}
	ed.SetCompleter(c.host.Complete)
	ed.SetHinter(c.host.Hint)
	c.editor = ed

	c.prompt = c.formatPrompt(config.Prompt)

	if config.RegisterHelp {
		if err := c.host.RegisterHelpCommand(); err != nil {
			c.release(ctx)
			return fmt.Errorf("%w: help: %w", ErrHostRegistrationFailed, err)
		}
	}

	if config.Banner != "" {
		fmt.Fprintf(c.out, "\n%s\n", config.Banner)
	} else {
		io.WriteString(c.out, defaultBanner)
	}
	if c.dumb {
		io.WriteString(c.out, dumbNotice)
	}

	c.session = uuid.New()
	c.initialized = true
	c.log.Info("CLI successfully initialized")
	c.log.Debug("Console session %s on %s", c.session, c.transport.Kind())
	return nil
}

// Run reads and executes lines until end of input. It returns ErrInvalidState
// when the console is not initialized.
func (c *Console) Run(ctx context.Context) error {
	if !c.initialized {
		return ErrInvalidState
	}

	c.runCtx = ctx
	defer func() { c.runCtx = context.Background() }()

	for ctx.Err() == nil {
		line, err := c.editor.Prompt(c.prompt)
		if errors.Is(err, editor.ErrEmptyLine) {
			if c.opts.IgnoreEmptyLines {
				continue
			}
			break
		}
		if errors.Is(err, editor.ErrAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			c.log.Error("Failed to read line: %v", err)
			break
		}

		c.editor.AppendHistory(line)
		if c.storeHistory {
			c.saveHistory(ctx)
		}

		c.execute(line)
	}

	c.log.Info("Console terminated")
	return ctx.Err()
}

func (c *Console) execute(line string) {
	ret, err := c.host.Run(line)
	switch {
	case errors.Is(err, host.ErrNotFound):
		io.WriteString(c.out, "Command not recognized\n")
	case errors.Is(err, host.ErrSyntax):
		fmt.Fprintf(c.out, "Invalid command line: %v\n", err)
	case errors.Is(err, host.ErrInvalidArgument):
	case err == nil && ret != 0:
		fmt.Fprintf(c.out, "Command returned error: 0x%x (%s)\n", uint32(ret), ReturnCode(ret).Name())
	case err != nil:
		fmt.Fprintf(c.out, "Internal error: %s\n", ErrorName(err))
	}
}

// Deinit tears down everything Init brought up and clears the registry.
// It is a no-op on a console that is not initialized.
func (c *Console) Deinit(ctx context.Context) error {
	if !c.initialized {
		return nil
	}

	err := c.release(ctx)
	c.initialized = false

	c.log.Info("CLI finalized")
	return err
}

func (c *Console) release(ctx context.Context) error {
	var errs []error

	if c.editor != nil {
		if err := c.editor.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close editor: %w", err))
		}
		c.editor = nil
	}
	if c.host.Initialized() {
		if err := c.host.Deinit(); err != nil {
			errs = append(errs, err)
		}
	}
	c.registry.reset()

	if c.mounted {
		if err := c.fs.Unmount(ctx, MountPath); err != nil {
			errs = append(errs, fmt.Errorf("failed to unmount %s: %w", MountPath, err))
		}
		c.mounted = false
	}
	c.storeHistory = false

	if err := c.transport.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close transport: %w", err))
	}
	if err := c.opts.Store.Close(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to close nvs: %w", err))
	}

	return errors.Join(errs...)
}

func (c *Console) formatPrompt(prompt string) string {
	if prompt == "" {
		prompt = DefaultPrompt
	}
	if c.opts.LogColors && !c.dumb {
		prompt = log.Color(log.Info).Sprint(prompt)
	}

	if limit := c.limits.PromptMaxLen - 1; len(prompt) > limit {
		prompt = prompt[:limit]
	}
	return prompt
}

func (c *Console) loadHistory(ctx context.Context) *editor.History {
	history := editor.NewHistory(c.limits.HistorySize)
	if !c.storeHistory {
		return history
	}

	content, err := c.fs.ReadFile(ctx, HistoryPath)
	if err != nil {
		if !errors.Is(err, storage.ErrNotExist) {
			c.log.Warn("Failed to load history: %v", err)
		}
		return history
	}

	if err := history.Load(bytes.NewReader(content)); err != nil {
		c.log.Warn("Failed to load history: %v", err)
	}
	return history
}

func (c *Console) saveHistory(ctx context.Context) {
	var buf bytes.Buffer
	if err := c.editor.History().Save(&buf); err != nil {
		c.log.Warn("Failed to save history: %v", err)
		return
	}

	if err := c.fs.WriteFile(ctx, HistoryPath, buf.Bytes()); err != nil {
		c.log.Warn("Failed to save history: %v", err)
	}
}

// Prompt returns the prompt as shown by the editor.
func (c *Console) Prompt() string {
	return c.prompt
}

// Store returns the key/value partition.
func (c *Console) Store() nvs.Store {
	return c.opts.Store
}

// History returns the in-memory history, or nil before Init.
func (c *Console) History() *editor.History {
	if c.editor == nil {
		return nil
	}
	return c.editor.History()
}

// Registered returns the number of declared commands in the registry.
func (c *Console) Registered() int {
	return c.registry.len()
}

// Lookup returns the declared command registered under name.
func (c *Console) Lookup(name string) (*Command, bool) {
	rec := c.registry.find(name)
	if rec == nil {
		return nil, false
	}
	return rec.cmd, true
}

// Output returns where console messages are written.
func (c *Console) Output() io.Writer {
	return c.out
}

func (c *Console) Initialized() bool {
	return c.initialized
}

// Dumb reports whether the terminal lacks escape sequence support.
func (c *Console) Dumb() bool {
	return c.dumb
}
