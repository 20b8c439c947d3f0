package builtin

import (
	"fmt"

	"github.com/mwantia/cliapi"
)

// Calc adds two numbers, or shows every operation with -v.
func Calc() *cliapi.Command {
	return &cliapi.Command{
		Name: "calc",
		Help: "Simple calculator (addition, subtraction, multiplication, division)",
		Func: calc,
		Args: []cliapi.Arg{
			{Short: "a", DataType: "<num>", Description: "First number", Kind: cliapi.ArgInt, Required: true},
			{Short: "b", DataType: "<num>", Description: "Second number", Kind: cliapi.ArgInt, Required: true},
			{Short: "v", Long: "verbose", Description: "Shows all operations", Kind: cliapi.ArgFlag},
		},
	}
}

func calc(ctx *cliapi.Context) int {
	a, b := ctx.Int(0), ctx.Int(1)
	w := ctx.Out

	if !ctx.Flag(2) {
		fmt.Fprintf(w, "Sum: %d\n", a+b)
		return 0
	}

	fmt.Fprintf(w, "Calculating operations with A=%d and B=%d\n", a, b)
	fmt.Fprintf(w, "  Addition:        %d + %d = %d\n", a, b, a+b)
	fmt.Fprintf(w, "  Subtraction:     %d - %d = %d\n", a, b, a-b)
	fmt.Fprintf(w, "  Multiplication:  %d * %d = %d\n", a, b, a*b)
	if b != 0 {
		fmt.Fprintf(w, "  Division:        %d / %d = %d\n", a, b, a/b)
	} else {
		fmt.Fprint(w, "  Division:        undefined (B=0)\n")
	}
	return 0
}
