package cliapi

import "fmt"

const (
	DefaultPrompt = "esp> "

	// MountPath is where the history filesystem is attached.
	MountPath   = "/data"
	HistoryPath = MountPath + "/history.txt"
)

const defaultBanner = "\n" +
	"ESP32 CLI Console\n" +
	"Type 'help' to get the list of commands.\n" +
	"Use UP/DOWN arrows to navigate through command history.\n" +
	"Press TAB when typing command name to auto-complete.\n" +
	"\n"

const dumbNotice = "Terminal does not support escape sequences.\n" +
	"Line editing and history features are disabled.\n\n"

// Config is passed to Console.Init.
type Config struct {
	Prompt       string // Empty means DefaultPrompt
	Banner       string // Empty means the built-in banner
	RegisterHelp bool
	StoreHistory bool
}

func DefaultConfig() *Config {
	return &Config{
		Prompt:       DefaultPrompt,
		RegisterHelp: true,
		StoreHistory: true,
	}
}

// Limits are fixed when the console is created.
type Limits struct {
	MaxArgs      int
	MaxCommands  int
	MaxCmdLine   int
	PromptMaxLen int
	HistorySize  int
}

func DefaultLimits() Limits {
	return Limits{
		MaxArgs:      8,
		MaxCommands:  32,
		MaxCmdLine:   256,
		PromptMaxLen: 64,
		HistorySize:  100,
	}
}

// MaxCmdArgs is the number of tokens the host splits a line into: every
// argument as option plus value, and the command name.
func (l Limits) MaxCmdArgs() int {
	return 2*l.MaxArgs + 1
}

func (l Limits) validate() error {
	if l.MaxArgs <= 0 || l.MaxCommands <= 0 || l.MaxCmdLine <= 0 || l.HistorySize <= 0 {
		return fmt.Errorf("%w: limits must be positive: %+v", ErrInvalidArgument, l)
	}
	if l.PromptMaxLen < 2 {
		return fmt.Errorf("%w: prompt limit %d too small", ErrInvalidArgument, l.PromptMaxLen)
	}
	return nil
}
