package main

import (
	"github.com/shayne/yargs"
)

const (
	commandName    = "cliapi"
	consoleCommand = "console"
)

func helpConfig() yargs.HelpConfig {
	return yargs.HelpConfig{
		Command: yargs.CommandInfo{
			Name:        commandName,
			Description: "ESP32 style command line console over a terminal or serial link.",
		},
		SubCommands: map[string]yargs.SubCommandInfo{
			consoleCommand: {
				Name:        consoleCommand,
				Description: "Run the interactive console. This is the default command.",
				Examples: []string{
					"cliapi",
					"cliapi console -c bench.toml",
					"cliapi console -d /dev/ttyUSB0 -b 921600 -t usb-serial-jtag",
				},
			},
		},
	}
}

// helpText renders the console help from the flag tags.
func helpText(llm bool) string {
	if llm {
		return yargs.GenerateSubCommandHelpLLM(helpConfig(), consoleCommand, struct{}{}, flags{}, struct{}{})
	}
	return yargs.GenerateSubCommandHelp(helpConfig(), consoleCommand, struct{}{}, flags{}, struct{}{})
}

// helpRequested reports whether args ask for help, and for which format.
func helpRequested(args []string) (help bool, llm bool) {
	for _, arg := range args {
		switch arg {
		case "--":
			return help, llm
		case "-h", "--help":
			help = true
		case "--help-llm":
			help, llm = true, true
		}
	}
	return help, llm
}
