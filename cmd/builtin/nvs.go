package builtin

import (
	"errors"
	"fmt"

	"github.com/mwantia/cliapi"
	"github.com/mwantia/cliapi/nvs"
)

// NVS exposes the key/value partition as console commands.
type NVS struct {
	store nvs.Store
}

func NewNVS(store nvs.Store) *NVS {
	return &NVS{store: store}
}

// Commands returns nvs_set, nvs_get, nvs_keys and nvs_erase bound to n.
func (n *NVS) Commands() []cliapi.Command {
	return []cliapi.Command{
		{
			Name: "nvs_set",
			Help: "Store a string value in the key/value partition",
			Func: n.set,
			Args: []cliapi.Arg{
				{DataType: "<namespace>", Description: "Namespace of the entry", Kind: cliapi.ArgString, Required: true},
				{DataType: "<key>", Description: "Key of the entry", Kind: cliapi.ArgString, Required: true},
				{DataType: "<value>", Description: "Value to store", Kind: cliapi.ArgString, Required: true},
			},
		},
		{
			Name: "nvs_get",
			Help: "Print a value of the key/value partition",
			Func: n.get,
			Args: []cliapi.Arg{
				{DataType: "<namespace>", Description: "Namespace of the entry", Kind: cliapi.ArgString, Required: true},
				{DataType: "<key>", Description: "Key of the entry", Kind: cliapi.ArgString, Required: true},
			},
		},
		{
			Name: "nvs_keys",
			Help: "List the keys of a namespace",
			Func: n.keys,
			Args: []cliapi.Arg{
				{DataType: "<namespace>", Description: "Namespace to list", Kind: cliapi.ArgString, Required: true},
			},
		},
		{
			Name: "nvs_erase",
			Help: "Erase the whole key/value partition",
			Func: n.erase,
		},
	}
}

func (n *NVS) set(ctx *cliapi.Context) int {
	if err := n.store.Set(ctx.Ctx, ctx.Str(0), ctx.Str(1), []byte(ctx.Str(2))); err != nil {
		fmt.Fprintf(ctx.Out, "Failed to set %s/%s: %v\n", ctx.Str(0), ctx.Str(1), err)
		return int(cliapi.Code(err))
	}
	return 0
}

func (n *NVS) get(ctx *cliapi.Context) int {
	value, err := n.store.Get(ctx.Ctx, ctx.Str(0), ctx.Str(1))
	if errors.Is(err, nvs.ErrNotFound) {
		fmt.Fprintf(ctx.Out, "%s/%s not found\n", ctx.Str(0), ctx.Str(1))
		return int(cliapi.CodeNotFound)
	}
	if err != nil {
		fmt.Fprintf(ctx.Out, "Failed to get %s/%s: %v\n", ctx.Str(0), ctx.Str(1), err)
		return int(cliapi.Code(err))
	}

	fmt.Fprintf(ctx.Out, "%s\n", value)
	return 0
}

func (n *NVS) keys(ctx *cliapi.Context) int {
	keys, err := n.store.Keys(ctx.Ctx, ctx.Str(0))
	if err != nil {
		fmt.Fprintf(ctx.Out, "Failed to list %s: %v\n", ctx.Str(0), err)
		return int(cliapi.Code(err))
	}

	for _, key := range keys {
		fmt.Fprintf(ctx.Out, "%s\n", key)
	}
	return 0
}

// erase wipes the partition and opens it again so the console keeps working.
func (n *NVS) erase(ctx *cliapi.Context) int {
	if err := n.store.Erase(ctx.Ctx); err != nil {
		fmt.Fprintf(ctx.Out, "Failed to erase partition: %v\n", err)
		return int(cliapi.Code(err))
	}
	if err := n.store.Open(ctx.Ctx); err != nil {
		fmt.Fprintf(ctx.Out, "Failed to reopen partition: %v\n", err)
		return int(cliapi.Code(err))
	}

	fmt.Fprint(ctx.Out, "Partition erased\n")
	return 0
}
