package builtin

import (
	"fmt"
	"strings"

	"github.com/mwantia/cliapi"
)

// Echo repeats a message. Usage: echo -m <text> [-n <N>] [-u]
func Echo() *cliapi.Command {
	return &cliapi.Command{
		Name: "echo",
		Help: "Repeats a message N times",
		Func: echo,
		Args: []cliapi.Arg{
			{Short: "m", Long: "msg", DataType: "<text>", Description: "Message to be displayed", Kind: cliapi.ArgString, Required: true},
			{Short: "n", Long: "repeat", DataType: "<N>", Description: "Number of repetitions (default: 1)", Kind: cliapi.ArgInt},
			{Short: "u", Long: "uppercase", Description: "Converts to uppercase", Kind: cliapi.ArgFlag},
		},
	}
}

func echo(ctx *cliapi.Context) int {
	msg := ctx.Str(0)

	repeat := 1
	if ctx.Count(1) > 0 {
		repeat = ctx.Int(1)
	}
	if ctx.Flag(2) {
		msg = strings.ToUpper(msg)
	}

	for range repeat {
		fmt.Fprintf(ctx.Out, "%s\n", msg)
	}
	return 0
}
