package host

import (
	"fmt"
	"io"
	"strings"

	"github.com/mwantia/cliapi/argtable"
)

const helpWrapWidth = 78

// RegisterHelpCommand registers "help [<string>]", listing all commands or a single one.
func (h *Host) RegisterHelpCommand() error {
	name := argtable.Str0("", "", "<string>", "Name of command")
	table, err := argtable.NewTable(name, argtable.End(1))
	if err != nil {
		return err
	}

	return h.Register(Command{
		Name: "help",
		Help: "Print the summary of all registered commands if no arguments " +
			"are given, otherwise print summary of given command.",
		ArgTable: table,
		Func: func(argv []string) int {
			if argtable.Parse(table, argv) != 0 {
				argtable.PrintErrors(h.cfg.Output, table.End(), argv[0])
				return 1
			}

			if name.Count() == 0 {
				for _, cmd := range h.Commands() {
					printCommandHelp(h.cfg.Output, cmd)
				}
				return 0
			}

			cmd, ok := h.Lookup(name.Str(0))
			if !ok {
				fmt.Fprintf(h.cfg.Output, "help: Unrecognized command '%s'. Type 'help' to list the available commands\n", name.Str(0))
				return 1
			}

			printCommandHelp(h.cfg.Output, cmd)
			return 0
		},
	})
}

func printCommandHelp(w io.Writer, cmd Command) {
	fmt.Fprintf(w, "%s %s\n", cmd.Name, strings.TrimSpace(cmd.Hint))

	if cmd.Help != "" {
		for _, line := range wrap(cmd.Help, helpWrapWidth-2) {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
	if cmd.ArgTable != nil {
		argtable.Glossary(w, cmd.ArgTable, "  %12s  %s\n")
	}

	fmt.Fprintln(w)
}

func wrap(text string, width int) []string {
	var lines []string
	var current strings.Builder

	for _, word := range strings.Fields(text) {
		if current.Len() > 0 && current.Len()+1+len(word) > width {
			lines = append(lines, current.String())
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteByte(' ')
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}
	return lines
}
