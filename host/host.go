// Package host maps command names to functions and runs input lines against them.
package host

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/google/shlex"
	"github.com/mwantia/cliapi/argtable"
	"github.com/mwantia/cliapi/log"
	"github.com/tidwall/btree"
)

var (
	ErrInvalidState    = errors.New("host: not initialized")
	ErrInvalidArgument = errors.New("host: invalid argument")
	ErrNotFound        = errors.New("host: command not found")
	ErrSyntax          = errors.New("host: syntax error")
)

// Func is the entry point of a command. argv[0] is the command name.
type Func func(argv []string) int

// Command is a single registration.
type Command struct {
	Name     string
	Help     string
	Hint     string
	Func     Func
	ArgTable *argtable.Table // Optional, used for hints and help output
}

type Config struct {
	MaxCmdArgs int
	MaxCmdLen  int
	HintColor  int // ANSI colour code returned with hints, 0 for none
	HintBold   bool
	Output     io.Writer // Destination of help output
}

func DefaultConfig() Config {
	return Config{
		MaxCmdArgs: 17,
		MaxCmdLen:  256,
		HintColor:  36,
		Output:     os.Stdout,
	}
}

type Host struct {
	cfg  Config
	log  *log.Logger
	cmds *btree.Map[string, *Command]

	initialized bool
}

func New(cfg Config, logger *log.Logger) *Host {
	def := DefaultConfig()
	if cfg.MaxCmdArgs <= 0 {
		cfg.MaxCmdArgs = def.MaxCmdArgs
	}
	if cfg.MaxCmdLen <= 0 {
		cfg.MaxCmdLen = def.MaxCmdLen
	}
	if cfg.Output == nil {
		cfg.Output = def.Output
	}
	if logger == nil {
		logger = log.Nop()
	}

	return &Host{
		cfg:  cfg,
		log:  logger,
		cmds: btree.NewMap[string, *Command](0),
	}
}

// Init prepares the host for registrations. Calling it twice is an error.
func (h *Host) Init() error {
	if h.initialized {
		return fmt.Errorf("%w: already initialized", ErrInvalidState)
	}

	h.initialized = true
	return nil
}

// Deinit drops every registration.
func (h *Host) Deinit() error {
	if !h.initialized {
		return ErrInvalidState
	}

	h.cmds.Clear()
	h.initialized = false
	return nil
}

func (h *Host) Initialized() bool {
	return h.initialized
}

// Register adds cmd, replacing any earlier registration of the same name.
func (h *Host) Register(cmd Command) error {
	if !h.initialized {
		return ErrInvalidState
	}

	if cmd.Name == "" || cmd.Func == nil {
		return ErrInvalidArgument
	}
	if strings.IndexFunc(cmd.Name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%w: command name %q contains whitespace", ErrInvalidArgument, cmd.Name)
	}

	if cmd.Hint == "" && cmd.ArgTable != nil {
		cmd.Hint = " " + argtable.Syntax(cmd.ArgTable)
	}

	if _, exists := h.cmds.Get(cmd.Name); exists {
		h.log.Debug("Replacing command '%s'", cmd.Name)
	}

	h.cmds.Set(cmd.Name, &cmd)
	return nil
}

// Lookup returns the registration for name.
func (h *Host) Lookup(name string) (Command, bool) {
	cmd, ok := h.cmds.Get(name)
	if !ok {
		return Command{}, false
	}
	return *cmd, true
}

// Commands returns every registration in name order.
func (h *Host) Commands() []Command {
	commands := make([]Command, 0, h.cmds.Len())
	h.cmds.Scan(func(_ string, cmd *Command) bool {
		commands = append(commands, *cmd)
		return true
	})

	return commands
}

// Split tokenizes line into an argument vector, honouring quotes and escapes.
func (h *Host) Split(line string) ([]string, error) {
	if len(line) > h.cfg.MaxCmdLen {
		line = line[:h.cfg.MaxCmdLen]
	}

	argv, err := shlex.Split(line)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	if len(argv) > h.cfg.MaxCmdArgs {
		argv = argv[:h.cfg.MaxCmdArgs]
	}

	return argv, nil
}

// Run executes line and returns the command's result.
// An empty line yields ErrInvalidArgument, broken quoting ErrSyntax and an
// unknown command ErrNotFound.
func (h *Host) Run(line string) (int, error) {
	if !h.initialized {
		return 0, ErrInvalidState
	}

	argv, err := h.Split(line)
	if err != nil {
		return 0, err
	}
	if len(argv) == 0 {
		return 0, ErrInvalidArgument
	}

	cmd, ok := h.cmds.Get(argv[0])
	if !ok {
		return 0, ErrNotFound
	}

	return cmd.Func(argv), nil
}

// Complete returns the command names starting with line.
func (h *Host) Complete(line string) []string {
	if line == "" {
		return nil
	}

	var matches []string
	h.cmds.Ascend(line, func(name string, _ *Command) bool {
		if !strings.HasPrefix(name, line) {
			return false
		}
		matches = append(matches, name)
		return true
	})

	return matches
}

// Hint returns the hint of the command named exactly line.
func (h *Host) Hint(line string) (string, int, bool) {
	cmd, ok := h.cmds.Get(line)
	if !ok || cmd.Hint == "" {
		return "", 0, false
	}

	return cmd.Hint, h.cfg.HintColor, h.cfg.HintBold
}
