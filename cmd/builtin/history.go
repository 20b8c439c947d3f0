package builtin

import (
	"fmt"

	"github.com/mwantia/cliapi"
)

// History prints the in-memory history of console, oldest first.
func History(console *cliapi.Console) *cliapi.Command {
	return &cliapi.Command{
		Name: "history",
		Help: "Print the command history",
		Func: func(ctx *cliapi.Context) int {
			history := console.History()
			if history == nil {
				return int(cliapi.CodeInvalidState)
			}

			limit := history.Len()
			if ctx.Count(0) > 0 && ctx.Int(0) < limit {
				limit = max(ctx.Int(0), 0)
			}

			lines := history.Lines()
			start := len(lines) - limit
			for i, line := range lines[start:] {
				fmt.Fprintf(ctx.Out, "%4d  %s\n", start+i+1, line)
			}
			return 0
		},
		Args: []cliapi.Arg{
			{Short: "n", Long: "last", DataType: "<N>", Description: "Only print the last N entries", Kind: cliapi.ArgInt},
		},
	}
}
