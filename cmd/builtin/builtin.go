// Package builtin holds the demo commands of the console binary.
package builtin

import (
	"github.com/mwantia/cliapi"
	"github.com/mwantia/cliapi/log"
)

// Register adds every demo command to console.
func Register(console *cliapi.Console, logger *log.Logger) error {
	if logger == nil {
		logger = log.Nop()
	}
	out := console.Output()

	simple := []struct {
		name string
		help string
		fn   cliapi.RawHandler
	}{
		{"hello", "Prints Hello World", Hello(out)},
		{"status", "Prints system status", Status(out)},
		{"about", "Prints project info", About(out)},
	}
	for _, s := range simple {
		if err := console.RegisterSimple(s.name, s.help, s.fn); err != nil {
			return err
		}
	}

	for _, cmd := range []*cliapi.Command{
		Echo(),
		Calc(),
		NewGPIO(console.Store(), logger).Command(),
		History(console),
	} {
		if err := console.RegisterCommand(cmd); err != nil {
			return err
		}
	}

	if err := console.RegisterCommands(NewNVS(console.Store()).Commands()); err != nil {
		return err
	}

	logger.Info("Example commands registered: hello, status, about, echo, calc, gpio, history, nvs")
	return nil
}
